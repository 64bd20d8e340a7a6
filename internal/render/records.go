package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/dbsmedya/goschedule/internal/bank"
)

// Records renders stored problems as an aligned listing, newest first.
func Records(records []bank.Record, opts *Options) string {
	if opts == nil {
		opts = DefaultOptions()
	}
	if len(records) == 0 {
		return "No problems stored.\n"
	}

	header := []string{"ID", "SEED", "SCHEDULE", "CS", "SER", "S2PL", "CREATED"}
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			fmt.Sprintf("%d", r.ID),
			fmt.Sprintf("%d", r.Seed),
			r.Schedule,
			yesNo(r.ConflictSerializable),
			yesNo(r.Serializable),
			yesNo(r.S2PL),
			r.CreatedAt.Format("2006-01-02 15:04"),
		}
	}

	widths := make([]int, len(header))
	for c, h := range header {
		widths[c] = runewidth.StringWidth(h)
		for _, row := range rows {
			if w := runewidth.StringWidth(row[c]); w > widths[c] {
				widths[c] = w
			}
		}
	}

	var b strings.Builder
	writeListingRow(&b, header, widths)
	for i, row := range rows {
		// Colour after padding so escape codes do not skew the widths.
		padded := make([]string, len(row))
		for c, cell := range row {
			padded[c] = runewidth.FillRight(cell, widths[c])
		}
		if opts.Color {
			r := records[i]
			padded[3] = colorize(r.ConflictSerializable, padded[3])
			padded[4] = colorize(r.Serializable, padded[4])
			padded[5] = colorize(r.S2PL, padded[5])
		}
		b.WriteString(strings.TrimRight(strings.Join(padded, "  "), " "))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nTotal: %d problem(s)\n", len(records))
	return b.String()
}

func writeListingRow(b *strings.Builder, cells []string, widths []int) {
	padded := make([]string, len(cells))
	for c, cell := range cells {
		padded[c] = runewidth.FillRight(cell, widths[c])
	}
	b.WriteString(strings.TrimRight(strings.Join(padded, "  "), " "))
	b.WriteString("\n")
}

func yesNo(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}

// RecordsYAML renders stored problems as a YAML sequence.
func RecordsYAML(records []bank.Record) (string, error) {
	if records == nil {
		records = []bank.Record{}
	}
	out, err := yaml.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to marshal problems: %w", err)
	}
	return string(out), nil
}

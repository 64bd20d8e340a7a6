package render

import (
	"fmt"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/dbsmedya/goschedule/internal/analysis"
	"github.com/dbsmedya/goschedule/internal/schedule"
	"github.com/dbsmedya/goschedule/internal/search"
)

var questions = []string{
	"Is the schedule conflict-serializable?",
	"Is the schedule serializable?",
	"Could the schedule have been produced under strict two-phase locking?",
}

// Text renders p as a schedule table followed by the exercise questions and,
// when opts.Solution is set, the answers with explanations.
// If opts is nil, DefaultOptions is used.
func Text(p *search.Problem, opts *Options) string {
	if opts == nil {
		opts = DefaultOptions()
	}

	var b strings.Builder
	if p.Seed != 0 {
		fmt.Fprintf(&b, "Schedule (seed %d)\n\n", p.Seed)
	} else {
		b.WriteString("Schedule\n\n")
	}
	b.WriteString(Table(p.Table))
	fmt.Fprintf(&b, "\nNotation: %s\n", schedule.Format(p.Schedule))

	b.WriteString("\nQuestions:\n")
	for i, q := range questions {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, q)
	}

	if opts.Solution {
		b.WriteString("\nSolution:\n")
		writeSolution(&b, p.Schedule, p.Classification, opts)
	}

	return b.String()
}

// Table renders a schedule table with one column per position.
func Table(t schedule.Table) string {
	cols := t.Columns()

	header := make([]string, cols+1)
	rows := [2][]string{make([]string, cols+1), make([]string, cols+1)}
	widths := make([]int, cols+1)

	for r, row := range t.Rows {
		rows[r][0] = string(row.Txn)
	}
	for c := 1; c <= cols; c++ {
		header[c] = fmt.Sprintf("%d", c)
		for r, row := range t.Rows {
			if op := row.Cells[c-1]; op != nil {
				rows[r][c] = op.String()
			}
		}
	}

	for c := range widths {
		widths[c] = runewidth.StringWidth(header[c])
		for r := range rows {
			if w := runewidth.StringWidth(rows[r][c]); w > widths[c] {
				widths[c] = w
			}
		}
	}

	var b strings.Builder
	writeRow(&b, header, widths)
	sep := make([]string, len(widths))
	for c, w := range widths {
		sep[c] = strings.Repeat("-", w)
	}
	b.WriteString(strings.Join(sep, "-+-"))
	b.WriteString("\n")
	for _, row := range rows {
		writeRow(&b, row, widths)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string, widths []int) {
	padded := make([]string, len(cells))
	for c, cell := range cells {
		padded[c] = runewidth.FillRight(cell, widths[c])
	}
	b.WriteString(strings.TrimRight(strings.Join(padded, " | "), " "))
	b.WriteString("\n")
}

// Classification renders the verdicts for s without a table or questions.
func Classification(s schedule.Schedule, c analysis.Classification, opts *Options) string {
	if opts == nil {
		opts = DefaultOptions()
	}
	var b strings.Builder
	writeSolution(&b, s, c, opts)
	return b.String()
}

func writeSolution(b *strings.Builder, s schedule.Schedule, c analysis.Classification, opts *Options) {
	fmt.Fprintf(b, "  Conflict-serializable: %s\n", verdict(c.ConflictSerializable, opts))
	writeConflictExplanation(b, c.Conflict, opts)

	fmt.Fprintf(b, "  Serializable: %s\n", verdict(c.Serializable, opts))
	writeEquivalenceExplanation(b, c.Equivalence)

	fmt.Fprintf(b, "  Strict 2PL: %s\n", verdict(c.S2PL, opts))
	writeLockingExplanation(b, s, c.Locking)
}

func verdict(ok bool, opts *Options) string {
	if opts.Color {
		return colorize(ok, yesNo(ok))
	}
	return yesNo(ok)
}

// colorize paints s green when ok and red otherwise.
func colorize(ok bool, s string) string {
	if ok {
		return color.Green.Sprint(s)
	}
	return color.Red.Sprint(s)
}

func writeConflictExplanation(b *strings.Builder, r analysis.ConflictReport, opts *Options) {
	if len(r.Conflicts) == 0 {
		b.WriteString("    no conflicting operations\n")
	}
	for _, line := range strings.Split(strings.TrimRight(ConflictGraph(r, opts), "\n"), "\n") {
		if line != "" {
			fmt.Fprintf(b, "    %s\n", line)
		}
	}

	switch {
	case len(r.CyclePath) > 0:
		fmt.Fprintf(b, "    cycle: %s\n", strings.Join(r.CyclePath, " -> "))
	case len(r.SerialOrder) > 0:
		fmt.Fprintf(b, "    conflict-equivalent to %s\n", strings.Join(r.SerialOrder, " -> "))
	}
}

func writeEquivalenceExplanation(b *strings.Builder, r analysis.EquivalenceReport) {
	for k, name := range analysis.OrderNames {
		if r.Matches[k] {
			fmt.Fprintf(b, "    same result as serial %s on %d random databases\n", name, r.Trials)
			continue
		}
		if m := r.Mismatches[k]; m != nil {
			fmt.Fprintf(b, "    differs from serial %s: from %s the schedule gives %s, the serial order %s\n",
				name, m.Initial, m.Schedule, m.Serial)
		}
	}
}

func writeLockingExplanation(b *strings.Builder, s schedule.Schedule, r analysis.S2PLReport) {
	if r.Compliant || r.FailedAt < 0 || r.FailedAt >= len(s) {
		return
	}
	fmt.Fprintf(b, "    %s at position %d is refused", s[r.FailedAt], r.FailedAt+1)
	if r.Conflict != nil {
		fmt.Fprintf(b, ": %s", r.Conflict.Error())
	}
	b.WriteString("\n")
}

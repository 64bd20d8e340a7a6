package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dbsmedya/goschedule/internal/analysis"
)

// ConflictGraph draws one arrow per conflict edge, annotated with the first
// operation pair that produced it:
//
//	T1 ──▶ T2  R-W on A (positions 1, 4)
func ConflictGraph(r analysis.ConflictReport, opts *Options) string {
	if opts == nil {
		opts = DefaultOptions()
	}

	arrow := " ──▶ "
	if opts.UseASCII {
		arrow = " --> "
	}

	lines := make([]string, len(r.Conflicts))
	width := 0
	for i, c := range r.Conflicts {
		lines[i] = c.From + arrow + c.To
		if w := runewidth.StringWidth(lines[i]); w > width {
			width = w
		}
	}

	var b strings.Builder
	for i, c := range r.Conflicts {
		fmt.Fprintf(&b, "%s  %s on %s (positions %d, %d)\n",
			runewidth.FillRight(lines[i], width), c.Kind, c.Object, c.FromIndex+1, c.ToIndex+1)
	}
	return b.String()
}

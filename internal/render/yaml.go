package render

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dbsmedya/goschedule/internal/analysis"
	"github.com/dbsmedya/goschedule/internal/schedule"
	"github.com/dbsmedya/goschedule/internal/search"
)

type problemDoc struct {
	Seed     int64           `yaml:"seed"`
	Schedule string          `yaml:"schedule"`
	Table    []rowDoc        `yaml:"table"`
	Targets  search.Targets  `yaml:"targets"`
	Attempts search.Attempts `yaml:"attempts"`
	Solution *solutionDoc    `yaml:"solution,omitempty"`
}

type rowDoc struct {
	Txn   string   `yaml:"txn"`
	Cells []string `yaml:"cells,flow"`
}

type solutionDoc struct {
	ConflictSerializable bool          `yaml:"conflict_serializable"`
	Serializable         bool          `yaml:"serializable"`
	S2PL                 bool          `yaml:"s2pl"`
	Conflicts            []conflictDoc `yaml:"conflicts,omitempty"`
	SerialOrder          []string      `yaml:"serial_order,omitempty,flow"`
	CyclePath            []string      `yaml:"cycle,omitempty,flow"`
	MatchingOrders       []string      `yaml:"matching_orders,omitempty,flow"`
	LockFailure          *lockDoc      `yaml:"lock_failure,omitempty"`
}

type conflictDoc struct {
	From   string `yaml:"from"`
	To     string `yaml:"to"`
	Kind   string `yaml:"kind"`
	Object string `yaml:"object"`
}

type lockDoc struct {
	Position  int    `yaml:"position"`
	Operation string `yaml:"operation"`
	Reason    string `yaml:"reason"`
}

// YAML renders p as a YAML document. The solution block is included only
// when opts.Solution is set.
func YAML(p *search.Problem, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	doc := problemDoc{
		Seed:     p.Seed,
		Schedule: schedule.Format(p.Schedule),
		Targets:  p.Targets,
		Attempts: p.Attempts,
	}
	for _, row := range p.Table.Rows {
		rd := rowDoc{Txn: string(row.Txn), Cells: make([]string, len(row.Cells))}
		for i, op := range row.Cells {
			if op != nil {
				rd.Cells[i] = op.String()
			}
		}
		doc.Table = append(doc.Table, rd)
	}
	if opts.Solution {
		doc.Solution = newSolutionDoc(p.Schedule, p.Classification)
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal problem: %w", err)
	}
	return string(out), nil
}

func newSolutionDoc(s schedule.Schedule, c analysis.Classification) *solutionDoc {
	sd := &solutionDoc{
		ConflictSerializable: c.ConflictSerializable,
		Serializable:         c.Serializable,
		S2PL:                 c.S2PL,
		SerialOrder:          c.Conflict.SerialOrder,
		CyclePath:            c.Conflict.CyclePath,
	}
	for _, cf := range c.Conflict.Conflicts {
		sd.Conflicts = append(sd.Conflicts, conflictDoc{From: cf.From, To: cf.To, Kind: cf.Kind, Object: cf.Object})
	}
	for k, name := range analysis.OrderNames {
		if c.Equivalence.Matches[k] {
			sd.MatchingOrders = append(sd.MatchingOrders, name)
		}
	}
	if l := c.Locking; !l.Compliant && l.FailedAt >= 0 && l.FailedAt < len(s) {
		sd.LockFailure = &lockDoc{Position: l.FailedAt + 1, Operation: s[l.FailedAt].String()}
		if l.Conflict != nil {
			sd.LockFailure.Reason = l.Conflict.Error()
		}
	}
	return sd
}

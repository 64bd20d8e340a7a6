// Package analysis classifies schedules as conflict-serializable,
// serializable and strict-2PL compliant.
package analysis

import (
	"github.com/dbsmedya/goschedule/internal/graph"
	"github.com/dbsmedya/goschedule/internal/schedule"
)

// Conflict is one directed edge of the conflict graph with the first
// operation pair that produced it.
type Conflict struct {
	graph.Edge
	graph.EdgeMeta
}

// ConflictReport is the result of the conflict-serializability check.
type ConflictReport struct {
	Serializable bool
	Conflicts    []Conflict
	SerialOrder  []string // conflict-equivalent serial order, when Serializable
	CyclePath    []string // e.g. [T1 T2 T1], when not Serializable
}

// CheckConflict builds the conflict graph of s and reports whether it is
// acyclic. With two transactions this holds iff conflicts are observed in at
// most one direction.
func CheckConflict(s schedule.Schedule) ConflictReport {
	g, err := graph.BuildFromSchedule(s)
	if err != nil {
		// An empty schedule has no conflicts.
		return ConflictReport{Serializable: true}
	}

	report := ConflictReport{}
	for _, e := range g.AllEdges() {
		report.Conflicts = append(report.Conflicts, Conflict{Edge: e, EdgeMeta: *g.GetEdgeMeta(e.From, e.To)})
	}

	order, err := g.SerialOrder()
	if err != nil {
		report.CyclePath = g.DetectIncompleteProcessing().CyclePath
		return report
	}

	report.Serializable = true
	report.SerialOrder = order
	return report
}

// IsConflictSerializable reports whether s is conflict-serializable.
func IsConflictSerializable(s schedule.Schedule) bool {
	return CheckConflict(s).Serializable
}

package graph

import (
	"fmt"

	"github.com/dbsmedya/goschedule/internal/schedule"
)

// Builder constructs a conflict graph from a schedule.
type Builder struct {
	sched schedule.Schedule
}

// NewBuilder creates a new graph builder for the given schedule.
func NewBuilder(s schedule.Schedule) *Builder {
	return &Builder{sched: s}
}

// Build adds one node per transaction, then compares every pair of positions
// i < j and adds the edge txn(i) -> txn(j) when the two operations conflict.
// A cyclic result is returned as is; callers decide what a cycle means.
func (b *Builder) Build() (*Graph, error) {
	if len(b.sched) == 0 {
		return nil, fmt.Errorf("schedule is empty")
	}

	g := NewGraph()
	for _, id := range []schedule.TxnID{schedule.T1, schedule.T2} {
		g.AddNode(string(id), &Node{Ops: len(b.sched.Pick(id))})
	}

	for i, earlier := range b.sched {
		for j := i + 1; j < len(b.sched); j++ {
			later := b.sched[j]
			if !earlier.ConflictsWith(later) {
				continue
			}
			g.AddEdgeWithMeta(string(earlier.Txn), string(later.Txn), EdgeMeta{
				Object:    string(earlier.Object),
				FromIndex: i,
				ToIndex:   j,
				Kind:      earlier.Kind.String() + "-" + later.Kind.String(),
			})
		}
	}

	return g, nil
}

// BuildFromSchedule is a convenience function that builds a graph directly
// from a schedule.
func BuildFromSchedule(s schedule.Schedule) (*Graph, error) {
	return NewBuilder(s).Build()
}

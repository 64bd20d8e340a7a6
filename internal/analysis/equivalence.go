package analysis

import (
	"github.com/dbsmedya/goschedule/internal/execution"
	"github.com/dbsmedya/goschedule/internal/randutil"
	"github.com/dbsmedya/goschedule/internal/schedule"
)

// DefaultTrials is the number of random initial databases each schedule is
// executed against.
const DefaultTrials = 10

// Serial order indexes into EquivalenceReport.Matches and Mismatches.
const (
	OrderT1T2 = 0
	OrderT2T1 = 1
)

// OrderNames labels the two serial orders.
var OrderNames = [2]string{"T1 -> T2", "T2 -> T1"}

// Mismatch records one initial database on which a serial order and the
// schedule end in different states.
type Mismatch struct {
	Initial  *execution.Snapshot
	Schedule *execution.Snapshot
	Serial   *execution.Snapshot
}

// EquivalenceReport is the result of the output-equivalence check.
type EquivalenceReport struct {
	Serializable bool
	Trials       int
	Matches      [2]bool      // per serial order: equal on every trial
	Mismatches   [2]*Mismatch // first counterexample per serial order
}

// CheckEquivalence runs s and both serial orders of its transactions against
// trials random initial databases. A serial order matches if every trial ends
// in the same state as s; s is serializable if at least one order matches.
func CheckEquivalence(rng *randutil.Rand, s schedule.Schedule, trials int) EquivalenceReport {
	if trials <= 0 {
		trials = DefaultTrials
	}

	states := make([]*execution.Snapshot, trials)
	for i := range states {
		states[i] = execution.GenInitDB(rng, s)
	}

	t1, t2 := s.Split()
	serials := schedule.SerialOrders(t1, t2)

	report := EquivalenceReport{Trials: trials}
	for k, serial := range serials {
		report.Matches[k] = true
		for _, init := range states {
			got := execution.Execute(s, init)
			want := execution.Execute(serial, init)
			if !got.Equal(want) {
				report.Matches[k] = false
				report.Mismatches[k] = &Mismatch{Initial: init, Schedule: got, Serial: want}
				break
			}
		}
	}

	report.Serializable = report.Matches[OrderT1T2] || report.Matches[OrderT2T1]
	return report
}

// IsSerializable reports whether s is output-equivalent to a serial order
// over DefaultTrials random initial databases.
func IsSerializable(rng *randutil.Rand, s schedule.Schedule) bool {
	return CheckEquivalence(rng, s, DefaultTrials).Serializable
}

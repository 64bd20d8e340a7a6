package execution

import (
	"github.com/dbsmedya/goschedule/internal/randutil"
	"github.com/dbsmedya/goschedule/internal/schedule"
)

// Initial values drawn by GenInitDB lie in [MinInitValue, MaxInitValue).
const (
	MinInitValue = 0
	MaxInitValue = 50
)

// Execute applies the writes of s, in order, to a copy of init and returns
// the copy. Reads do not change state. init is never modified.
func Execute(s schedule.Schedule, init *Snapshot) *Snapshot {
	state := init.Clone()
	for _, op := range s {
		if op.IsWrite() {
			state.Set(op.Object, op.Value)
		}
	}
	return state
}

// GenInitDB draws a random initial value for every object referenced by s,
// in first-occurrence order.
func GenInitDB(rng *randutil.Rand, s schedule.Schedule) *Snapshot {
	db := NewSnapshot()
	for _, obj := range s.Objects() {
		db.Set(obj, rng.Int(MinInitValue, MaxInitValue))
	}
	return db
}

package analysis

import (
	"github.com/dbsmedya/goschedule/internal/randutil"
	"github.com/dbsmedya/goschedule/internal/schedule"
)

// Classification holds all three verdicts for a schedule together with the
// evidence behind each.
type Classification struct {
	ConflictSerializable bool
	Serializable         bool
	S2PL                 bool

	Conflict    ConflictReport
	Equivalence EquivalenceReport
	Locking     S2PLReport
}

// Classify runs every checker on s.
func Classify(rng *randutil.Rand, s schedule.Schedule, trials int) Classification {
	c := Classification{
		Conflict:    CheckConflict(s),
		Equivalence: CheckEquivalence(rng, s, trials),
		Locking:     CheckS2PL(s),
	}
	c.ConflictSerializable = c.Conflict.Serializable
	c.Serializable = c.Equivalence.Serializable
	c.S2PL = c.Locking.Compliant
	return c
}

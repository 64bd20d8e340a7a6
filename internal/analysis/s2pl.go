package analysis

import (
	"errors"

	"github.com/dbsmedya/goschedule/internal/lock"
	"github.com/dbsmedya/goschedule/internal/schedule"
)

// S2PLReport is the result of the strict two-phase locking check.
type S2PLReport struct {
	Compliant bool
	FailedAt  int                 // position of the refused operation, -1 if compliant
	Conflict  *lock.ConflictError // refused request, nil if compliant
}

// CheckS2PL replays s against a fresh lock table. Reads take Shared locks and
// writes take Exclusive locks. A transaction releases all of its locks right
// after its last operation in s. The first refused request ends the check.
func CheckS2PL(s schedule.Schedule) S2PLReport {
	locks := lock.NewTable(s.Objects())

	for i, op := range s {
		if err := locks.AcquireOrFail(op.Txn, op.Object, lock.ModeFor(op.Kind)); err != nil {
			var conflict *lock.ConflictError
			errors.As(err, &conflict)
			return S2PLReport{FailedAt: i, Conflict: conflict}
		}

		if s.IsLastOf(op.Txn, i) {
			locks.ReleaseAll(op.Txn)
		}
	}

	return S2PLReport{Compliant: true, FailedAt: -1}
}

// IsS2PL reports whether s could have been produced under strict 2PL.
func IsS2PL(s schedule.Schedule) bool {
	return CheckS2PL(s).Compliant
}

package schedule

import "github.com/dbsmedya/goschedule/internal/randutil"

// Compose interleaves the operations of t1 and t2. At every step one of the
// two non-empty queues is picked with equal probability and its head is
// emitted; once a queue drains, the rest of the other is appended in order.
// Each transaction's own order is preserved.
func Compose(rng *randutil.Rand, t1, t2 Transaction) Schedule {
	q1, q2 := t1.Ops, t2.Ops
	out := make(Schedule, 0, len(q1)+len(q2))

	for len(q1) > 0 && len(q2) > 0 {
		if rng.Bool() {
			out = append(out, q1[0])
			q1 = q1[1:]
		} else {
			out = append(out, q2[0])
			q2 = q2[1:]
		}
	}

	out = append(out, q1...)
	out = append(out, q2...)
	return out
}

// Serial returns first's operations followed by second's.
func Serial(first, second Transaction) Schedule {
	out := make(Schedule, 0, first.Len()+second.Len())
	out = append(out, first.Ops...)
	out = append(out, second.Ops...)
	return out
}

// SerialOrders returns the two serial schedules T1-then-T2 and T2-then-T1.
func SerialOrders(t1, t2 Transaction) [2]Schedule {
	return [2]Schedule{Serial(t1, t2), Serial(t2, t1)}
}

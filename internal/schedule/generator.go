package schedule

import "github.com/dbsmedya/goschedule/internal/randutil"

// Options controls the shape of generated transactions.
type Options struct {
	ObjectCount int // distinct objects in the universe (default 2)
	MaxOps      int // maximum operations per transaction (default 5, at least 3)
}

// Normalize fills defaults and clamps values into their supported ranges.
func (o Options) Normalize() Options {
	if o.ObjectCount <= 0 {
		o.ObjectCount = DefaultObjectCount
	}
	if o.ObjectCount > MaxObjectCount {
		o.ObjectCount = MaxObjectCount
	}
	if o.MaxOps == 0 {
		o.MaxOps = DefaultMaxOps
	}
	if o.MaxOps < MinOps {
		o.MaxOps = MinOps
	}
	return o
}

var kinds = []Kind{Read, Write}

// GenerateTransaction builds a transaction of MinOps..MaxOps operations, each
// on a uniformly chosen object with a uniformly chosen kind. Write values are
// left unset; see StampWrites.
func GenerateTransaction(rng *randutil.Rand, id TxnID, opts Options) Transaction {
	opts = opts.Normalize()
	universe := Universe(opts.ObjectCount)

	n := rng.Int(MinOps, opts.MaxOps+1)
	ops := make([]Operation, n)
	for i := range ops {
		ops[i] = Operation{
			Txn:    id,
			Object: randutil.Choice(rng, universe),
			Kind:   randutil.Choice(rng, kinds),
		}
	}
	return Transaction{ID: id, Ops: ops}
}

// GeneratePair builds T1 and T2 and stamps their write values.
func GeneratePair(rng *randutil.Rand, opts Options) (Transaction, Transaction) {
	t1 := GenerateTransaction(rng, T1, opts)
	t2 := GenerateTransaction(rng, T2, opts)
	StampWrites(&t1, &t2)
	return t1, t2
}

// StampWrites sets every write's value to its position in the concatenation
// of t1's and t2's operations, making each write distinguishable.
func StampWrites(t1, t2 *Transaction) {
	pos := 0
	for _, t := range []*Transaction{t1, t2} {
		for i := range t.Ops {
			if t.Ops[i].IsWrite() {
				t.Ops[i].Value = pos
			} else {
				t.Ops[i].Value = 0
			}
			pos++
		}
	}
}

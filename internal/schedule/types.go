// Package schedule provides the transaction and schedule data model together
// with random transaction generation and schedule composition.
package schedule

import "strings"

// Alphabet lists every object a problem may reference, in universe order.
const Alphabet = "ABCDEF"

// Generation bounds.
const (
	DefaultObjectCount = 2
	MaxObjectCount     = len(Alphabet)
	DefaultMaxOps      = 5
	MinOps             = 3
)

// ObjectID identifies a database key.
type ObjectID string

// TxnID identifies one of the two transactions of a schedule.
type TxnID string

// Transaction labels.
const (
	T1 TxnID = "T1"
	T2 TxnID = "T2"
)

// Number returns the transaction's ordinal (1 for T1, 2 for T2).
func (id TxnID) Number() string {
	return strings.TrimPrefix(string(id), "T")
}

// Kind is the type of an operation.
type Kind int

const (
	Read Kind = iota
	Write
)

// String returns "R" or "W".
func (k Kind) String() string {
	if k == Write {
		return "W"
	}
	return "R"
}

// Operation is a single read or write by a transaction.
type Operation struct {
	Txn    TxnID
	Object ObjectID
	Kind   Kind
	Value  int // write value; zero and unused for reads
}

// IsWrite reports whether the operation is a write.
func (o Operation) IsWrite() bool {
	return o.Kind == Write
}

// ConflictsWith reports whether o and other belong to different transactions,
// touch the same object and at least one of them is a write.
func (o Operation) ConflictsWith(other Operation) bool {
	return o.Txn != other.Txn &&
		o.Object == other.Object &&
		(o.IsWrite() || other.IsWrite())
}

// String renders the operation in textbook notation, e.g. "W1(A)".
func (o Operation) String() string {
	return o.Kind.String() + o.Txn.Number() + "(" + string(o.Object) + ")"
}

// Transaction is an ordered list of operations issued by one transaction.
type Transaction struct {
	ID  TxnID
	Ops []Operation
}

// Len returns the number of operations.
func (t Transaction) Len() int {
	return len(t.Ops)
}

// Schedule is an interleaving of the operations of two transactions.
type Schedule []Operation

// Pick returns the operations of txn in schedule order.
func (s Schedule) Pick(txn TxnID) []Operation {
	var ops []Operation
	for _, op := range s {
		if op.Txn == txn {
			ops = append(ops, op)
		}
	}
	return ops
}

// Split recovers the two transactions of the schedule.
func (s Schedule) Split() (Transaction, Transaction) {
	return Transaction{ID: T1, Ops: s.Pick(T1)}, Transaction{ID: T2, Ops: s.Pick(T2)}
}

// Objects returns the distinct objects referenced, in first-occurrence order.
func (s Schedule) Objects() []ObjectID {
	seen := make(map[ObjectID]bool)
	var objs []ObjectID
	for _, op := range s {
		if !seen[op.Object] {
			seen[op.Object] = true
			objs = append(objs, op.Object)
		}
	}
	return objs
}

// IsLastOf reports whether no operation of txn follows position idx.
func (s Schedule) IsLastOf(txn TxnID, idx int) bool {
	for _, op := range s[idx+1:] {
		if op.Txn == txn {
			return false
		}
	}
	return true
}

// IsSerial reports whether one transaction's operations all precede the other's.
func (s Schedule) IsSerial() bool {
	switches := 0
	for i := 1; i < len(s); i++ {
		if s[i].Txn != s[i-1].Txn {
			switches++
		}
	}
	return switches <= 1
}

// String renders the schedule in textbook notation.
func (s Schedule) String() string {
	return Format(s)
}

// Universe returns the first n objects of the alphabet.
func Universe(n int) []ObjectID {
	if n < 1 {
		n = 1
	}
	if n > MaxObjectCount {
		n = MaxObjectCount
	}
	objs := make([]ObjectID, n)
	for i := 0; i < n; i++ {
		objs[i] = ObjectID(Alphabet[i : i+1])
	}
	return objs
}

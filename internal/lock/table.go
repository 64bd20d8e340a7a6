// Package lock provides the shared/exclusive lock table used to check
// schedules against strict two-phase locking.
package lock

import (
	"errors"
	"fmt"

	"github.com/dbsmedya/goschedule/internal/schedule"
)

// ErrLockConflict is returned when a lock request is incompatible with the
// lock another transaction holds.
var ErrLockConflict = errors.New("lock conflict")

// Mode is a lock mode.
type Mode int

const (
	None Mode = iota
	Shared
	Exclusive
)

// String returns "-", "S" or "X".
func (m Mode) String() string {
	switch m {
	case Shared:
		return "S"
	case Exclusive:
		return "X"
	default:
		return "-"
	}
}

// ModeFor returns the mode an operation needs: Shared for reads,
// Exclusive for writes.
func ModeFor(k schedule.Kind) Mode {
	if k == schedule.Write {
		return Exclusive
	}
	return Shared
}

// Entry is the lock state of one object. An unheld object has an empty
// Holder and Mode None.
type Entry struct {
	Holder schedule.TxnID
	Mode   Mode
}

// Held reports whether some transaction holds the lock.
func (e Entry) Held() bool {
	return e.Holder != ""
}

// ConflictError describes a refused lock request.
type ConflictError struct {
	Object    schedule.ObjectID
	Requester schedule.TxnID
	Requested Mode
	Held      Entry
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s requested %s lock on %s held %s by %s",
		ErrLockConflict, e.Requester, e.Requested, e.Object, e.Held.Mode, e.Held.Holder)
}

// Unwrap allows errors.Is(err, ErrLockConflict).
func (e *ConflictError) Unwrap() error {
	return ErrLockConflict
}

// Table maps objects to their lock state. A Table belongs to a single check
// and is not safe for concurrent use.
type Table struct {
	entries map[schedule.ObjectID]*Entry
}

// NewTable creates a table in which every object starts unheld.
func NewTable(objects []schedule.ObjectID) *Table {
	t := &Table{entries: make(map[schedule.ObjectID]*Entry, len(objects))}
	for _, obj := range objects {
		t.entries[obj] = &Entry{}
	}
	return t
}

func (t *Table) entry(obj schedule.ObjectID) *Entry {
	e, ok := t.entries[obj]
	if !ok {
		e = &Entry{}
		t.entries[obj] = e
	}
	return e
}

// TryAcquire requests a lock on obj for txn and reports whether it was granted.
//
// Rules:
//   - unheld: granted to txn in the requested mode
//   - held by txn: granted; upgraded to Exclusive if requested, never downgraded
//   - held by another transaction: granted only if both modes are Shared,
//     in which case the recorded holder does not change
func (t *Table) TryAcquire(txn schedule.TxnID, obj schedule.ObjectID, mode Mode) bool {
	e := t.entry(obj)

	switch {
	case !e.Held():
		e.Holder = txn
		e.Mode = mode
		return true
	case e.Holder == txn:
		if mode == Exclusive {
			e.Mode = Exclusive
		}
		return true
	default:
		return e.Mode == Shared && mode == Shared
	}
}

// AcquireOrFail is TryAcquire returning a *ConflictError when the request is
// refused.
func (t *Table) AcquireOrFail(txn schedule.TxnID, obj schedule.ObjectID, mode Mode) error {
	held := t.Get(obj)
	if !t.TryAcquire(txn, obj, mode) {
		return &ConflictError{Object: obj, Requester: txn, Requested: mode, Held: held}
	}
	return nil
}

// ReleaseAll releases every lock recorded for txn and returns how many were
// released.
func (t *Table) ReleaseAll(txn schedule.TxnID) int {
	released := 0
	for _, e := range t.entries {
		if e.Holder == txn {
			e.Holder = ""
			e.Mode = None
			released++
		}
	}
	return released
}

// Get returns a copy of obj's lock state.
func (t *Table) Get(obj schedule.ObjectID) Entry {
	if e, ok := t.entries[obj]; ok {
		return *e
	}
	return Entry{}
}

// HeldBy returns the objects on which txn is the recorded holder.
func (t *Table) HeldBy(txn schedule.TxnID) []schedule.ObjectID {
	var objs []schedule.ObjectID
	for _, obj := range schedule.Universe(schedule.MaxObjectCount) {
		if e, ok := t.entries[obj]; ok && e.Holder == txn {
			objs = append(objs, obj)
		}
	}
	return objs
}

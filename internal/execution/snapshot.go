// Package execution applies schedules to database snapshots.
package execution

import (
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/goschedule/internal/schedule"
)

// Snapshot maps objects to integer values. Keys keep their insertion order,
// which for generated snapshots is the schedule's first-reference order.
type Snapshot struct {
	values *orderedmap.OrderedMap[schedule.ObjectID, int]
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{values: orderedmap.NewOrderedMap[schedule.ObjectID, int]()}
}

// Set assigns a value to obj. New keys are appended to the key order.
func (s *Snapshot) Set(obj schedule.ObjectID, value int) {
	s.values.Set(obj, value)
}

// Get returns the value of obj and whether it is present.
func (s *Snapshot) Get(obj schedule.ObjectID) (int, bool) {
	return s.values.Get(obj)
}

// Len returns the number of objects in the snapshot.
func (s *Snapshot) Len() int {
	return s.values.Len()
}

// Keys returns the objects in insertion order.
func (s *Snapshot) Keys() []schedule.ObjectID {
	keys := make([]schedule.ObjectID, 0, s.values.Len())
	for el := s.values.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Key)
	}
	return keys
}

// Clone returns an independent copy with the same key order.
func (s *Snapshot) Clone() *Snapshot {
	c := NewSnapshot()
	for el := s.values.Front(); el != nil; el = el.Next() {
		c.values.Set(el.Key, el.Value)
	}
	return c
}

// Equal reports whether both snapshots hold the same objects with the same
// values. Key order is not compared.
func (s *Snapshot) Equal(other *Snapshot) bool {
	if s.values.Len() != other.values.Len() {
		return false
	}
	for el := s.values.Front(); el != nil; el = el.Next() {
		v, ok := other.values.Get(el.Key)
		if !ok || v != el.Value {
			return false
		}
	}
	return true
}

// String renders the snapshot as "{A=3 B=17}".
func (s *Snapshot) String() string {
	parts := make([]string, 0, s.values.Len())
	for el := s.values.Front(); el != nil; el = el.Next() {
		parts = append(parts, fmt.Sprintf("%s=%d", el.Key, el.Value))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

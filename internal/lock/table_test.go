package lock

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/goschedule/internal/schedule"
)

func newTable() *Table {
	return NewTable([]schedule.ObjectID{"A", "B"})
}

func TestModeFor(t *testing.T) {
	assert.Equal(t, Shared, ModeFor(schedule.Read))
	assert.Equal(t, Exclusive, ModeFor(schedule.Write))
	assert.Equal(t, "S", Shared.String())
	assert.Equal(t, "X", Exclusive.String())
	assert.Equal(t, "-", None.String())
}

func TestNewTable_StartsUnheld(t *testing.T) {
	tbl := newTable()
	assert.False(t, tbl.Get("A").Held())
	assert.Equal(t, None, tbl.Get("B").Mode)
}

func TestTryAcquire(t *testing.T) {
	tests := []struct {
		name      string
		held      Entry
		requester schedule.TxnID
		requested Mode
		granted   bool
		after     Entry
	}{
		{"unheld shared", Entry{}, "T1", Shared, true, Entry{"T1", Shared}},
		{"unheld exclusive", Entry{}, "T2", Exclusive, true, Entry{"T2", Exclusive}},
		{"own shared upgrades", Entry{"T1", Shared}, "T1", Exclusive, true, Entry{"T1", Exclusive}},
		{"own exclusive never downgrades", Entry{"T1", Exclusive}, "T1", Shared, true, Entry{"T1", Exclusive}},
		{"foreign shared is compatible", Entry{"T1", Shared}, "T2", Shared, true, Entry{"T1", Shared}},
		{"foreign shared blocks exclusive", Entry{"T1", Shared}, "T2", Exclusive, false, Entry{"T1", Shared}},
		{"foreign exclusive blocks shared", Entry{"T1", Exclusive}, "T2", Shared, false, Entry{"T1", Exclusive}},
		{"foreign exclusive blocks exclusive", Entry{"T1", Exclusive}, "T2", Exclusive, false, Entry{"T1", Exclusive}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := newTable()
			*tbl.entries["A"] = tt.held

			assert.Equal(t, tt.granted, tbl.TryAcquire(tt.requester, "A", tt.requested))
			assert.Equal(t, tt.after, tbl.Get("A"))
		})
	}
}

func TestTryAcquire_UnknownObject(t *testing.T) {
	tbl := newTable()
	assert.True(t, tbl.TryAcquire("T1", "F", Exclusive))
	assert.Equal(t, Entry{"T1", Exclusive}, tbl.Get("F"))
}

func TestAcquireOrFail(t *testing.T) {
	tbl := newTable()
	require.NoError(t, tbl.AcquireOrFail("T1", "A", Exclusive))

	err := tbl.AcquireOrFail("T2", "A", Shared)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLockConflict))

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, schedule.ObjectID("A"), conflict.Object)
	assert.Equal(t, schedule.TxnID("T2"), conflict.Requester)
	assert.Equal(t, Entry{"T1", Exclusive}, conflict.Held)
	assert.Contains(t, err.Error(), "T2 requested S lock on A held X by T1")
}

func TestReleaseAll(t *testing.T) {
	tbl := newTable()
	tbl.TryAcquire("T1", "A", Shared)
	tbl.TryAcquire("T1", "B", Exclusive)
	assert.Equal(t, []schedule.ObjectID{"A", "B"}, tbl.HeldBy("T1"))

	assert.Equal(t, 2, tbl.ReleaseAll("T1"))
	assert.False(t, tbl.Get("A").Held())
	assert.False(t, tbl.Get("B").Held())
	assert.Empty(t, tbl.HeldBy("T1"))
	assert.Equal(t, 0, tbl.ReleaseAll("T1"))
}

func TestReleaseAll_SharedCoHolderKeepsNothing(t *testing.T) {
	tbl := newTable()
	tbl.TryAcquire("T1", "A", Shared)
	require.True(t, tbl.TryAcquire("T2", "A", Shared))

	// Only the recorded holder is tracked, so releasing T1 frees the object.
	tbl.ReleaseAll("T1")
	assert.True(t, tbl.TryAcquire("T1", "A", Exclusive))
}

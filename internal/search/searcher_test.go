package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dbsmedya/goschedule/internal/analysis"
	"github.com/dbsmedya/goschedule/internal/logger"
	"github.com/dbsmedya/goschedule/internal/randutil"
	"github.com/dbsmedya/goschedule/internal/schedule"
)

func boolPtr(b bool) *bool { return &b }

func TestTargetsValidate(t *testing.T) {
	assert.NoError(t, Targets{ConflictSerializable: true, Serializable: true}.Validate())
	assert.NoError(t, Targets{ConflictSerializable: false, Serializable: true}.Validate())
	assert.NoError(t, Targets{ConflictSerializable: false, Serializable: false}.Validate())

	err := Targets{ConflictSerializable: true, Serializable: false}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidOptions))
}

func TestNewSearcher_RejectsImpossibleTargets(t *testing.T) {
	_, err := NewSearcher(Options{
		ConflictSerializable: boolPtr(true),
		Serializable:         boolPtr(false),
	}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidOptions))
}

func TestOptionsNormalize(t *testing.T) {
	opts := Options{}.Normalize()
	assert.Equal(t, schedule.DefaultObjectCount, opts.Generation.ObjectCount)
	assert.Equal(t, schedule.DefaultMaxOps, opts.Generation.MaxOps)
	assert.Equal(t, analysis.DefaultTrials, opts.Trials)
	assert.Equal(t, DefaultOuterAttempts, opts.OuterAttempts)
	assert.Equal(t, DefaultInnerAttempts, opts.InnerAttempts)
}

func TestResolveTargets(t *testing.T) {
	tests := []struct {
		name   string
		opts   Options
		verify func(t *testing.T, got Targets)
	}{
		{
			name: "random targets respect implication",
			opts: Options{},
			verify: func(t *testing.T, got Targets) {
				assert.NoError(t, got.Validate())
			},
		},
		{
			name: "forced conflict serializable implies serializable",
			opts: Options{ConflictSerializable: boolPtr(true)},
			verify: func(t *testing.T, got Targets) {
				assert.Equal(t, Targets{ConflictSerializable: true, Serializable: true}, got)
			},
		},
		{
			name: "forced non-serializable implies non-conflict-serializable",
			opts: Options{Serializable: boolPtr(false)},
			verify: func(t *testing.T, got Targets) {
				assert.Equal(t, Targets{ConflictSerializable: false, Serializable: false}, got)
			},
		},
		{
			name: "both forced",
			opts: Options{ConflictSerializable: boolPtr(false), Serializable: boolPtr(true)},
			verify: func(t *testing.T, got Targets) {
				assert.Equal(t, Targets{ConflictSerializable: false, Serializable: true}, got)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := int64(1); seed <= 50; seed++ {
				tt.verify(t, tt.opts.resolveTargets(randutil.New(seed)))
			}
		})
	}
}

func TestGenerate_MatchesTargets(t *testing.T) {
	combos := []Targets{
		{ConflictSerializable: true, Serializable: true},
		{ConflictSerializable: false, Serializable: true},
		{ConflictSerializable: false, Serializable: false},
	}

	for _, want := range combos {
		t.Run(want.String(), func(t *testing.T) {
			s, err := NewSearcher(Options{
				Seed:                 1234,
				ConflictSerializable: boolPtr(want.ConflictSerializable),
				Serializable:         boolPtr(want.Serializable),
			}, nil)
			require.NoError(t, err)

			p, err := s.Generate(context.Background())
			require.NoError(t, err)
			require.NotNil(t, p)

			assert.Equal(t, want, p.Targets)
			assert.Equal(t, want.ConflictSerializable, p.ConflictSerializable)
			assert.Equal(t, want.Serializable, p.Serializable)
			assert.Equal(t, int64(1234), p.Seed)
			assert.Equal(t, analysis.IsConflictSerializable(p.Schedule), p.ConflictSerializable)
			assert.Equal(t, analysis.IsS2PL(p.Schedule), p.S2PL)
			assert.Equal(t, len(p.Schedule), p.Table.Columns())
			assert.GreaterOrEqual(t, p.Attempts.Outer, 1)
			assert.GreaterOrEqual(t, p.Attempts.Inner, 1)

			t1, t2 := p.Schedule.Split()
			assert.GreaterOrEqual(t, t1.Len(), schedule.MinOps)
			assert.GreaterOrEqual(t, t2.Len(), schedule.MinOps)
		})
	}
}

func TestGenerate_SameSeedSameProblem(t *testing.T) {
	s, err := NewSearcher(Options{Seed: 99}, nil)
	require.NoError(t, err)

	first, err := s.Generate(context.Background())
	require.NoError(t, err)
	second, err := s.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, schedule.Format(first.Schedule), schedule.Format(second.Schedule))
	assert.Equal(t, first.Targets, second.Targets)
	assert.Equal(t, first.Attempts, second.Attempts)
}

func TestGenerate_ExhaustionReturnsErrNoProblem(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s, err := NewSearcher(Options{
		Seed:                 7,
		OuterAttempts:        3,
		InnerAttempts:        4,
		ConflictSerializable: boolPtr(false),
	}, logger.FromZap(zap.New(core)))
	require.NoError(t, err)

	// Serial schedules are always conflict-serializable.
	calls := 0
	s.compose = func(_ *randutil.Rand, t1, t2 schedule.Transaction) schedule.Schedule {
		calls++
		return schedule.Serial(t1, t2)
	}

	p, err := s.Generate(context.Background())
	assert.Nil(t, p)
	assert.True(t, errors.Is(err, ErrNoProblem))
	assert.Equal(t, 12, calls)
	assert.Equal(t, 1, logs.FilterMessage("Search exhausted").Len())
}

func TestGenerate_CancelledContext(t *testing.T) {
	s, err := NewSearcher(Options{Seed: 5}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p, err := s.Generate(ctx)
	assert.Nil(t, p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, errors.Is(err, ErrNoProblem))
}

func TestGenerate_NilContext(t *testing.T) {
	s, err := NewSearcher(Options{}, nil)
	require.NoError(t, err)

	//nolint:staticcheck // nil context is the case under test
	_, err = s.Generate(nil)
	assert.Error(t, err)
}

// Package search drives random schedule generation until a schedule with the
// requested classification is found.
package search

import (
	"errors"
	"fmt"

	"github.com/dbsmedya/goschedule/internal/analysis"
	"github.com/dbsmedya/goschedule/internal/randutil"
	"github.com/dbsmedya/goschedule/internal/schedule"
)

const (
	DefaultOuterAttempts = 70
	DefaultInnerAttempts = 500
)

var (
	// ErrNoProblem is returned when the attempt budget runs out without a match.
	ErrNoProblem = errors.New("could not generate a problem")

	// ErrInvalidOptions is returned for options the search cannot satisfy.
	ErrInvalidOptions = errors.New("invalid search options")
)

// Targets is the classification a generated schedule must have.
type Targets struct {
	ConflictSerializable bool `yaml:"conflict_serializable"`
	Serializable         bool `yaml:"serializable"`
}

// Validate rejects combinations no schedule can have.
func (t Targets) Validate() error {
	if t.ConflictSerializable && !t.Serializable {
		return fmt.Errorf("%w: a conflict-serializable schedule is always serializable", ErrInvalidOptions)
	}
	return nil
}

func (t Targets) String() string {
	return fmt.Sprintf("conflict_serializable=%t serializable=%t", t.ConflictSerializable, t.Serializable)
}

// Options configures a Searcher. Zero values select the defaults.
type Options struct {
	Generation    schedule.Options
	Trials        int
	OuterAttempts int
	InnerAttempts int
	Seed          int64

	// Forced targets. A nil field is drawn at random, subject to
	// conflict-serializable implying serializable.
	ConflictSerializable *bool
	Serializable         *bool
}

// Normalize fills in defaults.
func (o Options) Normalize() Options {
	o.Generation = o.Generation.Normalize()
	if o.Trials <= 0 {
		o.Trials = analysis.DefaultTrials
	}
	if o.OuterAttempts <= 0 {
		o.OuterAttempts = DefaultOuterAttempts
	}
	if o.InnerAttempts <= 0 {
		o.InnerAttempts = DefaultInnerAttempts
	}
	return o
}

// Validate checks that the forced targets are satisfiable.
func (o Options) Validate() error {
	if o.ConflictSerializable != nil && o.Serializable != nil {
		return Targets{
			ConflictSerializable: *o.ConflictSerializable,
			Serializable:         *o.Serializable,
		}.Validate()
	}
	return nil
}

// resolveTargets draws the unforced targets from rng.
func (o Options) resolveTargets(rng *randutil.Rand) Targets {
	var t Targets

	switch {
	case o.ConflictSerializable != nil:
		t.ConflictSerializable = *o.ConflictSerializable
	case o.Serializable != nil && !*o.Serializable:
		t.ConflictSerializable = false
	default:
		t.ConflictSerializable = rng.Bool()
	}

	switch {
	case o.Serializable != nil:
		t.Serializable = *o.Serializable
	case t.ConflictSerializable:
		t.Serializable = true
	default:
		t.Serializable = rng.Bool()
	}

	return t
}

// Attempts records where in the search budget a problem was found.
type Attempts struct {
	Outer int `yaml:"outer"`
	Inner int `yaml:"inner"`
}

// Problem is an accepted schedule together with its classification.
type Problem struct {
	Schedule schedule.Schedule
	Table    schedule.Table

	ConflictSerializable bool
	Serializable         bool
	S2PL                 bool

	Classification analysis.Classification
	Seed           int64
	Targets        Targets
	Attempts       Attempts
}

// NewProblem wraps a classified schedule.
func NewProblem(s schedule.Schedule, c analysis.Classification) *Problem {
	return &Problem{
		Schedule:             s,
		Table:                schedule.ToTable(s),
		ConflictSerializable: c.ConflictSerializable,
		Serializable:         c.Serializable,
		S2PL:                 c.S2PL,
		Classification:       c,
	}
}

package search

import (
	"context"
	"fmt"

	"github.com/dbsmedya/goschedule/internal/analysis"
	"github.com/dbsmedya/goschedule/internal/logger"
	"github.com/dbsmedya/goschedule/internal/randutil"
	"github.com/dbsmedya/goschedule/internal/schedule"
)

// Searcher looks for a schedule matching the requested targets within a
// bounded number of attempts. A Searcher may be reused; every Generate call
// starts from its own random source.
type Searcher struct {
	opts   Options
	logger *logger.Logger

	compose func(rng *randutil.Rand, t1, t2 schedule.Transaction) schedule.Schedule
}

// NewSearcher validates opts and returns a Searcher. A nil logger discards output.
func NewSearcher(opts Options, log *logger.Logger) (*Searcher, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Searcher{
		opts:    opts.Normalize(),
		logger:  log,
		compose: schedule.Compose,
	}, nil
}

// Options returns the normalized options.
func (s *Searcher) Options() Options {
	return s.opts
}

// Generate runs the search. It returns ErrNoProblem when the budget is
// exhausted and the context error when ctx is cancelled between pairs.
func (s *Searcher) Generate(ctx context.Context) (*Problem, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context is nil")
	}

	rng := randutil.New(s.opts.Seed)
	log := s.logger.WithSeed(rng.Seed())
	targets := s.opts.resolveTargets(rng)

	log.Infow("Searching for schedule",
		"conflict_serializable", targets.ConflictSerializable,
		"serializable", targets.Serializable,
		"objects", s.opts.Generation.ObjectCount,
		"max_ops", s.opts.Generation.MaxOps,
		"budget", s.opts.OuterAttempts*s.opts.InnerAttempts,
	)

	for outer := 1; outer <= s.opts.OuterAttempts; outer++ {
		if err := ctx.Err(); err != nil {
			log.Warnw("Search aborted", "attempt", outer, "error", err)
			return nil, fmt.Errorf("search aborted: %w", err)
		}

		t1, t2 := schedule.GeneratePair(rng, s.opts.Generation)
		pairLog := log.WithAttempt(outer)
		pairLog.Debugw("Drew transaction pair",
			"t1", schedule.Schedule(t1.Ops).String(),
			"t2", schedule.Schedule(t2.Ops).String(),
		)

		for inner := 1; inner <= s.opts.InnerAttempts; inner++ {
			candidate := s.compose(rng, t1, t2)

			c, ok := s.classifyTowards(rng, candidate, targets)
			if !ok {
				continue
			}

			p := NewProblem(candidate, c)
			p.Seed = rng.Seed()
			p.Targets = targets
			p.Attempts = Attempts{Outer: outer, Inner: inner}

			pairLog.Infow("Accepted schedule",
				"schedule", schedule.Format(candidate),
				"inner", inner,
				"s2pl", p.S2PL,
			)
			return p, nil
		}
	}

	log.Warnw("Search exhausted",
		"outer_attempts", s.opts.OuterAttempts,
		"inner_attempts", s.opts.InnerAttempts,
		"targets", targets.String(),
	)
	return nil, ErrNoProblem
}

// classifyTowards checks candidate against targets, stopping at the first
// verdict that disagrees. The S2PL verdict is computed only for a match.
func (s *Searcher) classifyTowards(rng *randutil.Rand, candidate schedule.Schedule, targets Targets) (analysis.Classification, bool) {
	var c analysis.Classification

	c.Conflict = analysis.CheckConflict(candidate)
	c.ConflictSerializable = c.Conflict.Serializable
	if c.ConflictSerializable != targets.ConflictSerializable {
		return c, false
	}

	c.Equivalence = analysis.CheckEquivalence(rng, candidate, s.opts.Trials)
	c.Serializable = c.Equivalence.Serializable
	if c.Serializable != targets.Serializable {
		return c, false
	}

	c.Locking = analysis.CheckS2PL(candidate)
	c.S2PL = c.Locking.Compliant
	return c, true
}

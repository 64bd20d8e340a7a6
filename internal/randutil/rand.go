// Package randutil provides the seedable pseudorandom primitives used by
// schedule generation and the equivalence checker.
package randutil

import (
	"math"
	"math/rand"
	"time"
)

// Rand is a seeded pseudorandom source. It is not safe for concurrent use;
// create one per goroutine.
type Rand struct {
	r    *rand.Rand
	seed int64
}

// New creates a Rand seeded with seed. A zero seed is replaced with a
// time-based one so that unseeded runs still differ.
func New(seed int64) *Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Rand{
		r:    rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the seed the source was created with.
func (r *Rand) Seed() int64 {
	return r.seed
}

// Int returns a uniform integer in the half-open range [min, max).
// Returns min if the range is empty.
func (r *Rand) Int(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.r.Intn(max-min)
}

// Bool returns true or false with equal probability.
func (r *Rand) Bool() bool {
	return r.r.Intn(2) == 1
}

// Exp returns a power of ten between 10 and 100000.
func (r *Rand) Exp() int {
	return int(math.Pow10(r.Int(1, 6)))
}

// Choice returns a uniformly chosen element of items.
// It panics if items is empty.
func Choice[T any](r *Rand, items []T) T {
	if len(items) == 0 {
		panic("randutil: Choice called with no items")
	}
	return items[r.Int(0, len(items))]
}

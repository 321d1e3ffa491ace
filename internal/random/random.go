package random

import (
	"math/rand"
	"time"
)

// RNG is the random source consumed by the generation engine.
//
// It is deliberately minimal: two primitives are enough to build every
// draw the engine needs, and a two-method interface is trivial to fake
// in tests.
type RNG interface {
	// Float64 returns a uniform value in [0.0, 1.0).
	Float64() float64

	// IntN returns a uniform value in [0, n). Panics if n <= 0.
	IntN(n int) int
}

// Source is a math/rand-backed RNG.
//
// Thread Safety: a Source is NOT safe for concurrent use. Each generation
// run owns its own Source; the engine is single-threaded by design.
type Source struct {
	rnd *rand.Rand
}

// New creates a Source from the given seed.
//
// A seed of 0 means "non-deterministic": the source is seeded from the
// wall clock. Any other seed produces a fully reproducible stream.
func New(seed int64) *Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Source{rnd: rand.New(rand.NewSource(seed))}
}

// Float64 returns a uniform value in [0.0, 1.0).
func (s *Source) Float64() float64 {
	return s.rnd.Float64()
}

// IntN returns a uniform value in [0, n).
func (s *Source) IntN(n int) int {
	return s.rnd.Intn(n)
}

// Between returns a uniform value in [lo, hi]. If hi <= lo it returns lo.
func Between(r RNG, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}

// IntBetween returns a uniform integer in [lo, hi] inclusive.
// If hi <= lo it returns lo.
func IntBetween(r RNG, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

// Choice returns a uniformly chosen element of items.
// Panics if items is empty, matching the contract of RNG.IntN.
func Choice[T any](r RNG, items []T) T {
	return items[r.IntN(len(items))]
}

// Sample draws n elements from items without replacement.
//
// The input slice is not modified. If n >= len(items) a shuffled copy of
// the whole slice is returned.
func Sample[T any](r RNG, items []T, n int) []T {
	cpy := make([]T, len(items))
	copy(cpy, items)
	Shuffle(r, cpy)
	if n >= len(cpy) {
		return cpy
	}
	return cpy[:n]
}

// Shuffle permutes items in place using a Fisher-Yates walk.
func Shuffle[T any](r RNG, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

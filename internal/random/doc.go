// Package random provides the seedable random source used by the show
// generation engine.
//
// All engine randomness flows through the RNG interface so that a fixed seed
// produces byte-identical shows. Production code seeds from the wall clock
// (seed 0); tests and replayable generations pass an explicit seed.
//
// # Key Types
//
//   - RNG: the minimal interface the engine consumes (Float64, IntN)
//   - Source: math/rand-backed implementation
//
// Helpers (Choice, Sample, Shuffle, Between, IntBetween) are generic
// functions over any RNG rather than interface methods, so the interface
// stays small enough to fake in tests.
package random

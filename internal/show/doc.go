// Package show provides the show generation engine for Skyfire Core.
//
// Given a fixed pool of addressable output channels, a target duration,
// and a percentage plan across acts and shot types, the engine synthesizes
// a complete, time-ordered firing cue list in which every output fires
// exactly once.
//
// Architecture:
//
//	┌──────────────────────────────────────────────────────────┐
//	│               Generator (orchestrator.go)                 │
//	│  Repeated attempts within attempt/wall-clock budgets      │
//	│                                                           │
//	│  per attempt:                                             │
//	│  1. Allocate outputs to acts       (allocator.go)         │
//	│  2. Allocate acts to shot types    (allocator.go)         │
//	│  3. Synthesize cues per segment    (synthesizer.go,       │
//	│     pattern-driven or evenly spaced, internal/rhythm)     │
//	│  4. Sort by time, renumber         (types.go)             │
//	│  5. Score the candidate            (score.go)             │
//	│                                                           │
//	│  best candidate → final invariant check (verifier.go)     │
//	└──────────────────────────────────────────────────────────┘
//
// # Key Types
//
//   - Config: immutable input plan (duration, pool size, acts, shot types)
//   - Cue / Row: one firing instruction and its downstream record
//   - State: per-attempt claimed-output set and cue list, never shared
//   - Generator: the attempt loop; Result carries cues, score, and report
//   - VerifyReport: invariants recomputed from the cue list alone
//
// # Thread Safety
//
// The engine is single-threaded and CPU-bound. A Generator is safe to run
// from a worker goroutine so a host UI stays responsive, but individual
// values (Generator, State, the random source) must not be shared across
// goroutines. Cancellation is cooperative: the context and wall clock are
// checked between attempts, so an in-progress attempt always completes.
//
// # Determinism
//
// All randomness flows through an injected random source. The same Config
// and seed produce byte-identical cue lists; an unseeded source varies but
// still satisfies every invariant.
//
// # Usage
//
//	cfg := show.Config{ ... }
//	gen := show.NewGenerator(cfg, random.New(0), log)
//
//	result, err := gen.Generate(ctx)
//	if err != nil {
//	    return err // invalid configuration
//	}
//	for _, row := range result.Rows() {
//	    // feed the firing table / executor
//	}
package show

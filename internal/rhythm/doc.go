// Package rhythm provides the pattern catalog used to impose non-uniform
// firing cadences on generated cue sequences.
//
// A pattern is a pair of parallel, equal-length sequences: Onsets marks the
// steps on which a cue fires, Multipliers scales the base step delay. The
// synthesizer walks a pattern cyclically (index modulo length), so patterns
// can be shorter than the cue sequences they drive.
//
// The catalog is static and read-only. The one exception is Random, which
// synthesizes a fresh pattern per call from an injected random source so
// repeated generations stay reproducible under a fixed seed.
//
// # Key Types
//
//   - Pattern: named onset/delay-multiplier template
//   - Get / Names: catalog lookup
//   - Random: per-call pattern generator
package rhythm

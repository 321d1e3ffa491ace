package show

import (
	"math"

	"github.com/nerrad567/skyfire-core/internal/random"
	"github.com/nerrad567/skyfire-core/internal/rhythm"
)

// Synthesis constants.
const (
	// delayIncrement is the resolution run delays are rounded to. Firing
	// hardware schedules on 125 ms ticks.
	delayIncrement = 0.125

	// fallbackBaseDelay paces pattern steps when a shot type carries no
	// usable delay range.
	fallbackBaseDelay = 0.5

	// False finale shape: share of outputs spent on the build-up, share of
	// the window the build-up occupies, and the dead-air pause before the
	// real finale.
	falseFinaleBuildOutputs  = 0.4
	falseFinaleBuildDuration = 0.3
	falseFinalePauseSeconds  = 2.0
)

// Synthesizer turns an allocated output subset plus a time window into a
// sequence of cues, either pattern-driven or evenly spaced.
//
// It advances a local time cursor from the window start and never exceeds
// the window end except for the bounded flush tail that places any outputs
// still unclaimed when the pacing loop hits its step ceiling.
type Synthesizer struct {
	rng    random.RNG
	logger Logger
}

// NewSynthesizer creates a synthesizer drawing randomness from rng.
func NewSynthesizer(rng random.RNG, logger Logger) *Synthesizer {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Synthesizer{rng: rng, logger: logger}
}

// Synthesize emits cues for one act/shot-type pass over the given outputs.
//
// If the act enables special effects, one is chosen uniformly and the pass
// is pattern-driven; the false finale effect triggers its own three-phase
// sub-synthesis. Acts without effects get evenly spaced cues.
func (s *Synthesizer) Synthesize(st *State, act Act, actCfg ActConfig, shot ShotType, outputs []int, start, duration float64) {
	if len(outputs) == 0 {
		return
	}
	q := newOutputQueue(outputs)
	stCfg := actCfg.ShotTypes[shot]

	effects := actCfg.enabledEffects()
	if len(effects) == 0 {
		s.regularCues(st, shot, stCfg, q, start, duration)
		return
	}

	name := random.Choice(s.rng, effects)
	s.logger.Debug("effect selected", "act", act, "shot_type", shot, "effect", name)

	if name == rhythm.FalseFinale {
		s.falseFinale(st, shot, stCfg, q, start, duration)
		return
	}
	s.effectSequence(st, shot, stCfg, q, start, duration, s.resolvePattern(name))
}

// resolvePattern maps an effect name to a pattern, synthesizing a fresh one
// for the random effect.
func (s *Synthesizer) resolvePattern(name string) rhythm.Pattern {
	if name == rhythm.RandomName {
		return rhythm.Random(s.rng)
	}
	p, ok := rhythm.Get(name)
	if !ok {
		// Validation rejects unknown effects; an unknown name here means a
		// catalog regression. Degrade to a generated pattern.
		s.logger.Error("unknown effect pattern, generating one", "effect", name)
		return rhythm.Random(s.rng)
	}
	return p
}

// effectSequence walks a rhythm pattern cyclically over the output queue.
//
// The base step delay starts at the midpoint of the shot type's delay range
// and shrinks so a full walk fits the window. Silent steps advance the
// cursor by base × multiplier without emitting; onset steps emit one cue of
// the shot-type-appropriate shape. Whatever the pattern leaves unplaced is
// handed to the regular path.
func (s *Synthesizer) effectSequence(st *State, shot ShotType, cfg ShotTypeConfig, q *outputQueue, start, duration float64, pattern rhythm.Pattern) {
	onsets := pattern.OnsetsPerCycle()
	if onsets == 0 {
		s.regularCues(st, shot, cfg, q, start, duration)
		return
	}

	base := (cfg.MinDelay + cfg.MaxDelay) / 2
	if base <= 0 {
		base = fallbackBaseDelay
	}

	cuesNeeded := int(math.Ceil(float64(q.Len()) / s.averageConsumption(shot, cfg)))
	cycles := int(math.Ceil(float64(cuesNeeded) / float64(onsets)))
	steps := pattern.Len() * cycles
	if steps > 0 && float64(steps)*base > duration {
		base = duration / float64(steps)
	}

	end := start + duration
	cursor := start
	for step := 0; step < steps && q.Len() > 0; step++ {
		if cursor > end {
			break
		}
		if pattern.OnsetAt(step) {
			typ, outs, delay := s.nextCue(q, shot, cfg)
			st.Emit(typ, outs, delay, cursor)
		}
		cursor += base * pattern.MultiplierAt(step)
	}

	if q.Len() > 0 {
		s.regularCues(st, shot, cfg, q, cursor, end-cursor)
	}
}

// falseFinale performs the three-phase finale fake-out: a regular build-up
// on 40% of the outputs over 30% of the window, a fixed pause, then a
// gallop-driven finale on the rest.
func (s *Synthesizer) falseFinale(st *State, shot ShotType, cfg ShotTypeConfig, q *outputQueue, start, duration float64) {
	buildCount := int(math.Round(float64(q.Len()) * falseFinaleBuildOutputs))
	buildDur := duration * falseFinaleBuildDuration

	build := newOutputQueue(q.Pop(buildCount))
	s.regularCues(st, shot, cfg, build, start, buildDur)

	finaleStart := start + buildDur + falseFinalePauseSeconds
	finaleDur := duration - buildDur - falseFinalePauseSeconds
	if finaleDur < 0 {
		finaleDur = 0
	}

	gallop, _ := rhythm.Get(rhythm.Gallop)
	s.effectSequence(st, shot, cfg, q, finaleStart, finaleDur, gallop)
}

// regularCues emits evenly spaced cues over the queue.
//
// The inter-cue gap derives from the configured delay range for shot types
// (scaled down when the window is too tight) and from the window itself for
// run types, whose configured delays pace outputs within a cue. The pacing
// loop is capped at 2 × queue length steps; anything still queued after the
// cap or the window is flushed as a final batch, still shaped per shot type.
func (s *Synthesizer) regularCues(st *State, shot ShotType, cfg ShotTypeConfig, q *outputQueue, start, duration float64) {
	if q.Len() == 0 {
		return
	}
	if duration < 0 {
		duration = 0
	}

	cuesNeeded := int(math.Ceil(float64(q.Len()) / s.averageConsumption(shot, cfg)))
	if cuesNeeded < 1 {
		cuesNeeded = 1
	}
	gapLo, gapHi := s.cueGapRange(shot, cfg, duration, cuesNeeded)

	end := start + duration
	cursor := start
	maxSteps := q.Len() * 2

	for step := 0; step < maxSteps && q.Len() > 0; step++ {
		if cursor > end {
			break
		}
		typ, outs, delay := s.nextCue(q, shot, cfg)
		st.Emit(typ, outs, delay, cursor)
		cursor += random.Between(s.rng, gapLo, gapHi)
	}

	// Flush tail: every iteration consumes at least one output, so this
	// terminates when the queue empties.
	for q.Len() > 0 {
		typ, outs, delay := s.nextCue(q, shot, cfg)
		st.Emit(typ, outs, delay, cursor)
		cursor += gapLo
	}
}

// cueGapRange computes the inter-cue gap bounds for the regular path.
func (s *Synthesizer) cueGapRange(shot ShotType, cfg ShotTypeConfig, duration float64, cuesNeeded int) (lo, hi float64) {
	avg := duration / float64(cuesNeeded)

	if shot.IsRun() || cfg.MaxDelay <= 0 {
		// Run delays pace outputs inside a cue, not cues themselves, so the
		// gap comes from spreading the cue count over the window.
		return avg * 0.5, avg * 1.5
	}

	lo, hi = cfg.MinDelay, cfg.MaxDelay
	mid := (lo + hi) / 2
	if mid*float64(cuesNeeded) > duration && mid > 0 {
		f := duration / (mid * float64(cuesNeeded))
		lo *= f
		hi *= f
	}
	return lo, hi
}

// nextCue pops the shot-type-appropriate number of outputs for one cue,
// degrading gracefully when the queue cannot satisfy the requested shape:
// DOUBLE RUN falls back to DOUBLE SHOT then SINGLE SHOT, SINGLE RUN to
// SINGLE SHOT, DOUBLE SHOT to SINGLE SHOT. Run cues carry a delay drawn
// from the configured range, rounded to the hardware tick.
func (s *Synthesizer) nextCue(q *outputQueue, shot ShotType, cfg ShotTypeConfig) (ShotType, []int, float64) {
	switch shot {
	case DoubleShot:
		if q.Len() >= 2 {
			return DoubleShot, q.Pop(2), 0
		}

	case SingleRun:
		if q.Len() >= cfg.MinLength && cfg.MinLength >= 1 {
			want := random.IntBetween(s.rng, cfg.MinLength, cfg.MaxLength)
			if want > q.Len() {
				want = q.Len()
			}
			return SingleRun, q.Pop(want), s.runDelay(cfg)
		}

	case DoubleRun:
		availPairs := q.Len() / 2
		if availPairs >= cfg.MinLength && cfg.MinLength >= 1 {
			pairs := random.IntBetween(s.rng, cfg.MinLength, cfg.MaxLength)
			if pairs > availPairs {
				pairs = availPairs
			}
			return DoubleRun, q.Pop(pairs * 2), s.runDelay(cfg)
		}
		if q.Len() >= 2 {
			return DoubleShot, q.Pop(2), 0
		}
	}

	return SingleShot, q.Pop(1), 0
}

// runDelay draws the inter-output delay for a run cue and rounds it to the
// scheduling increment.
func (s *Synthesizer) runDelay(cfg ShotTypeConfig) float64 {
	d := random.Between(s.rng, cfg.MinDelay, cfg.MaxDelay)
	return roundToIncrement(d, delayIncrement)
}

// roundToIncrement rounds v to the nearest multiple of step.
func roundToIncrement(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Round(v/step) * step
}

// averageConsumption estimates outputs consumed per cue for a shot type,
// used to size cue counts against a time window.
func (s *Synthesizer) averageConsumption(shot ShotType, cfg ShotTypeConfig) float64 {
	switch shot {
	case DoubleShot:
		return 2
	case SingleRun:
		avg := float64(cfg.MinLength+cfg.MaxLength) / 2
		if avg < 1 {
			avg = 1
		}
		return avg
	case DoubleRun:
		avg := float64(cfg.MinLength + cfg.MaxLength) // pairs midpoint × 2 outputs
		if avg < 2 {
			avg = 2
		}
		return avg
	default:
		return 1
	}
}

// outputQueue is the FIFO work queue of unplaced outputs for one pass.
// Draining it (or hitting the pacing step ceiling) is the loop termination
// condition for every synthesis path.
type outputQueue struct {
	items []int
}

// newOutputQueue copies outputs into a fresh queue.
func newOutputQueue(outputs []int) *outputQueue {
	items := make([]int, len(outputs))
	copy(items, outputs)
	return &outputQueue{items: items}
}

// Len returns the number of queued outputs.
func (q *outputQueue) Len() int {
	return len(q.items)
}

// Pop removes and returns up to n outputs from the front of the queue.
func (q *outputQueue) Pop(n int) []int {
	if n > len(q.items) {
		n = len(q.items)
	}
	if n <= 0 {
		return nil
	}
	out := q.items[:n]
	q.items = q.items[n:]
	return out
}

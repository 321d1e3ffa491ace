package show

import (
	"context"
	"math"
	"time"

	"github.com/nerrad567/skyfire-core/internal/random"
)

// Generation defaults.
const (
	// DefaultMaxAttempts bounds how many candidate generations a run tries.
	DefaultMaxAttempts = 5

	// DefaultMaxDuration is the wall-clock budget for a run, checked at
	// attempt boundaries only (cooperative, never preemptive).
	DefaultMaxDuration = 10 * time.Second

	// DefaultSegments is how many slices each act's time window is divided
	// into so shot types interleave instead of clustering.
	DefaultSegments = 10
)

// Options tunes the generation loop.
//
// MaxDuration is honored literally: a zero budget still runs exactly one
// attempt (an in-progress attempt always completes), then stops.
type Options struct {
	MaxAttempts int
	MaxDuration time.Duration
	Segments    int
}

// DefaultOptions returns the standard generation limits.
func DefaultOptions() Options {
	return Options{
		MaxAttempts: DefaultMaxAttempts,
		MaxDuration: DefaultMaxDuration,
		Segments:    DefaultSegments,
	}
}

// Result is one completed generation run: the best candidate found, its
// fitness, and the final verification of its invariants.
type Result struct {
	// ID uniquely identifies the run for logging and downstream tracking.
	ID string

	// Cues is the best candidate's cue list, time-ordered and renumbered.
	Cues []Cue

	// Score is the best candidate's fitness in [0, 100].
	Score float64

	// Attempts is how many candidates were generated.
	Attempts int

	// Elapsed is the wall-clock time the run took.
	Elapsed time.Duration

	// Report is the final invariant check, recomputed from Cues alone.
	Report VerifyReport
}

// Rows returns the downstream-facing records for the result's cues.
func (r *Result) Rows() []Row {
	return Rows(r.Cues)
}

// Generator drives repeated generation attempts and keeps the best one.
//
// Each attempt owns a fresh State; nothing is shared or carried over
// between attempts. The generator itself is single-threaded and CPU-bound:
// it is safe to run on a worker goroutine but exposes no concurrency.
type Generator struct {
	cfg    Config
	rng    random.RNG
	synth  *Synthesizer
	logger Logger
	opts   Options
}

// NewGenerator creates a generator with the default limits.
func NewGenerator(cfg Config, rng random.RNG, logger Logger) *Generator {
	return NewGeneratorWithOptions(cfg, rng, logger, DefaultOptions())
}

// NewGeneratorWithOptions creates a generator with explicit limits.
// MaxAttempts and Segments are floored at 1; MaxDuration is taken as-is.
func NewGeneratorWithOptions(cfg Config, rng random.RNG, logger Logger, opts Options) *Generator {
	if logger == nil {
		logger = noopLogger{}
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	if opts.Segments < 1 {
		opts.Segments = 1
	}
	return &Generator{
		cfg:    cfg,
		rng:    rng,
		synth:  NewSynthesizer(rng, logger),
		logger: logger,
		opts:   opts,
	}
}

// Generate runs the attempt loop and returns the best candidate.
//
// The loop stops at the first perfect score, after MaxAttempts attempts,
// once the wall-clock budget is spent, or when ctx is cancelled — whichever
// comes first, always checked between attempts. Budget exhaustion is never
// an error: the best candidate found so far is returned.
//
// The only error condition is invalid configuration.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	if err := ValidateConfig(g.cfg); err != nil {
		return nil, err
	}

	runID := GenerateID()
	start := time.Now()

	g.logger.Info("generation started",
		"run_id", runID,
		"outputs", g.cfg.TotalOutputs,
		"target_seconds", g.cfg.TotalSeconds,
		"max_attempts", g.opts.MaxAttempts,
	)

	var (
		best      *State
		bestAlloc *Allocation
		bestScore = -1.0
		attempts  = 0
	)

	for {
		attempts++
		state, alloc := g.attempt()
		score := Evaluate(state.Cues, g.cfg, alloc)

		g.logger.Debug("attempt complete",
			"run_id", runID,
			"attempt", attempts,
			"score", score,
			"cues", len(state.Cues),
		)

		if score > bestScore {
			best, bestAlloc, bestScore = state, alloc, score
		}

		if bestScore >= perfectScore {
			break
		}
		if attempts >= g.opts.MaxAttempts {
			break
		}
		if time.Since(start) >= g.opts.MaxDuration {
			g.logger.Warn("generation time budget spent, keeping best candidate",
				"run_id", runID, "attempts", attempts, "score", bestScore)
			break
		}
		if ctx.Err() != nil {
			g.logger.Warn("generation cancelled, keeping best candidate",
				"run_id", runID, "attempts", attempts)
			break
		}
	}

	report := Verify(best.Cues, g.cfg, bestAlloc)
	elapsed := time.Since(start)

	g.logger.Info("generation complete",
		"run_id", runID,
		"attempts", attempts,
		"score", bestScore,
		"cues", len(best.Cues),
		"verified", report.Pass,
		"elapsed_ms", elapsed.Milliseconds(),
	)

	return &Result{
		ID:       runID,
		Cues:     best.Cues,
		Score:    bestScore,
		Attempts: attempts,
		Elapsed:  elapsed,
		Report:   report,
	}, nil
}

// attempt performs one complete allocate → synthesize → sort pass.
func (g *Generator) attempt() (*State, *Allocation) {
	state := NewState(g.cfg.TotalOutputs)
	alloc := Allocate(g.rng, g.cfg, g.logger)

	var acts []Act
	pcts := make([]float64, 0, len(g.cfg.Acts))
	for _, act := range ActOrder() {
		if actCfg, ok := g.cfg.Acts[act]; ok {
			acts = append(acts, act)
			pcts = append(pcts, actCfg.Percentage)
		}
	}
	fractions := normalizeFractions(pcts, "act windows", noopLogger{})

	actStart := 0.0
	for i, act := range acts {
		actDur := g.cfg.TotalSeconds * fractions[i]
		g.synthesizeAct(state, act, g.cfg.Acts[act], alloc.ShotTypes[act], actStart, actDur)
		actStart += actDur
	}

	state.SortAndRenumber()
	return state, alloc
}

// synthesizeAct divides the act's window into segments and, within each
// segment, round-robins across the act's shot types in proportion to their
// remaining output counts. The even drain (ceil(remaining / segments left)
// per segment) guarantees every output is placed by the final segment and
// keeps any one shot type from clustering at one point in time.
func (g *Generator) synthesizeAct(state *State, act Act, actCfg ActConfig, byShotType map[ShotType][]int, start, duration float64) {
	var order []ShotType
	remaining := make(map[ShotType][]int, len(byShotType))
	for _, st := range ShotTypeOrder() {
		if outputs, ok := byShotType[st]; ok && len(outputs) > 0 {
			order = append(order, st)
			remaining[st] = outputs
		}
	}
	if len(order) == 0 {
		return
	}

	segments := g.opts.Segments
	segDur := duration / float64(segments)

	for seg := 0; seg < segments; seg++ {
		segmentsLeft := segments - seg

		// Decide this segment's chunk per shot type first so time shares
		// reflect what actually fires in the segment.
		chunks := make(map[ShotType][]int, len(order))
		total := 0
		for _, st := range order {
			left := remaining[st]
			if len(left) == 0 {
				continue
			}
			n := int(math.Ceil(float64(len(left)) / float64(segmentsLeft)))
			chunks[st] = left[:n]
			remaining[st] = left[n:]
			total += n
		}
		if total == 0 {
			continue
		}

		segStart := start + float64(seg)*segDur
		offset := 0.0
		for _, st := range order {
			chunk := chunks[st]
			if len(chunk) == 0 {
				continue
			}
			share := segDur * float64(len(chunk)) / float64(total)
			g.synth.Synthesize(state, act, actCfg, st, chunk, segStart+offset, share)
			offset += share
		}
	}
}

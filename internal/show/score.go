package show

import "math"

// Scoring weights. A candidate starts at 100 and loses points per missed
// constraint; see Evaluate.
const (
	perfectScore = 100.0

	missingOutputsPenalty  = 50.0 // scaled by global missing fraction
	actMissingPenalty      = 10.0 // scaled per act
	shotTypeMissingPenalty = 5.0  // scaled per act/shot-type allocation
	runBoundsPenalty       = 2.0  // per out-of-bounds run cue
	oddDoubleRunPenalty    = 5.0  // per odd-length DOUBLE RUN cue
	durationPenalty        = 10.0 // scaled by relative deviation

	// durationTolerance is how far the realized show may drift from the
	// target before the duration penalty applies, in seconds.
	durationTolerance = 30.0
)

// Evaluate scores a completed candidate cue list against the configured
// allocation and timing constraints, returning a fitness in [0, 100].
//
// It is a pure function of the candidate: it never mutates cues, config,
// or allocation. A score of 100 means every output was placed, every act
// and shot type received exactly its allocation, every run cue respects
// its bounds, and the realized duration is within tolerance.
func Evaluate(cues []Cue, cfg Config, alloc *Allocation) float64 {
	score := perfectScore

	claimed := make(map[int]bool)
	for _, c := range cues {
		for _, o := range c.Outputs {
			claimed[o] = true
		}
	}

	score -= missingOutputsDeduction(claimed, cfg.TotalOutputs)
	score -= allocationDeductions(claimed, alloc)
	score -= runShapeDeductions(cues, cfg, alloc)
	score -= durationDeduction(cues, cfg.TotalSeconds)

	return clampScore(score)
}

// missingOutputsDeduction penalizes globally unclaimed outputs, up to
// missingOutputsPenalty for a fully empty show.
func missingOutputsDeduction(claimed map[int]bool, total int) float64 {
	if total <= 0 {
		return 0
	}
	missing := 0
	for o := 1; o <= total; o++ {
		if !claimed[o] {
			missing++
		}
	}
	return missingOutputsPenalty * float64(missing) / float64(total)
}

// allocationDeductions penalizes per-act and per-shot-type holes in the
// claimed set, proportional to each allocation's missing fraction.
func allocationDeductions(claimed map[int]bool, alloc *Allocation) float64 {
	deduction := 0.0

	for _, outputs := range alloc.Acts {
		deduction += actMissingPenalty * missingFraction(claimed, outputs)
	}
	for _, byShotType := range alloc.ShotTypes {
		for _, outputs := range byShotType {
			deduction += shotTypeMissingPenalty * missingFraction(claimed, outputs)
		}
	}

	return deduction
}

// missingFraction returns the share of outputs absent from claimed.
func missingFraction(claimed map[int]bool, outputs []int) float64 {
	if len(outputs) == 0 {
		return 0
	}
	missing := 0
	for _, o := range outputs {
		if !claimed[o] {
			missing++
		}
	}
	return float64(missing) / float64(len(outputs))
}

// runShapeDeductions penalizes run cues whose length falls outside the
// owning act's configured bounds, plus odd-length double runs.
func runShapeDeductions(cues []Cue, cfg Config, alloc *Allocation) float64 {
	deduction := 0.0

	for _, c := range cues {
		if !c.Type.IsRun() || len(c.Outputs) == 0 {
			continue
		}

		act, ok := alloc.ActOf(c.Outputs[0])
		if !ok {
			continue
		}
		stCfg, ok := cfg.Acts[act].ShotTypes[c.Type]
		if !ok {
			continue
		}

		switch c.Type {
		case SingleRun:
			n := len(c.Outputs)
			if n < stCfg.MinLength || n > stCfg.MaxLength {
				deduction += runBoundsPenalty
			}
		case DoubleRun:
			if len(c.Outputs)%2 != 0 {
				deduction += oddDoubleRunPenalty
			}
			pairs := len(c.Outputs) / 2
			if pairs < stCfg.MinLength || pairs > stCfg.MaxLength {
				deduction += runBoundsPenalty
			}
		}
	}

	return deduction
}

// durationDeduction penalizes realized durations that drift more than the
// tolerance from the target, up to durationPenalty for drift on the order
// of the whole show.
func durationDeduction(cues []Cue, target float64) float64 {
	deviation := math.Abs(realizedDuration(cues) - target)
	if deviation <= durationTolerance || target <= 0 {
		return 0
	}
	return durationPenalty * math.Min(1, deviation/target)
}

// realizedDuration returns when the last output of the last cue fires.
func realizedDuration(cues []Cue) float64 {
	end := 0.0
	for _, c := range cues {
		t := c.ExecuteAt
		if len(c.Outputs) > 1 {
			t += c.Delay * float64(len(c.Outputs)-1)
		}
		if t > end {
			end = t
		}
	}
	return end
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > perfectScore {
		return perfectScore
	}
	return v
}

package show

import (
	"fmt"
	"math"
	"sort"
)

// CountMismatch records an allocation count the emitted cues failed to meet.
type CountMismatch struct {
	Scope    string `json:"scope"` // "act:finale" or "act:finale/DOUBLE RUN"
	Expected int    `json:"expected"`
	Actual   int    `json:"actual"`
}

// VerifyReport is the structured result of the final invariant check.
//
// The verifier never rejects a candidate; accepting an imperfect result is
// the caller's policy decision.
type VerifyReport struct {
	Pass bool `json:"pass"`

	// Output coverage, recomputed from the cue list alone.
	MissingOutputs   []int `json:"missing_outputs,omitempty"`
	DuplicateOutputs []int `json:"duplicate_outputs,omitempty"`

	// Cue numbering: true when numbers form 1..len(cues) in time order.
	NumberingValid bool `json:"numbering_valid"`

	// Allocation counts the cues failed to reproduce.
	Mismatches []CountMismatch `json:"mismatches,omitempty"`

	// DurationDeviation is |realized − target| in seconds.
	DurationDeviation float64 `json:"duration_deviation"`

	// Problems is the human-readable summary of every failure above.
	Problems []string `json:"problems,omitempty"`
}

// Verify recomputes every hard invariant directly from the emitted cue
// list — the cues are the source of truth, not the allocator's bookkeeping —
// and reports the result. It does not mutate its inputs.
func Verify(cues []Cue, cfg Config, alloc *Allocation) VerifyReport {
	report := VerifyReport{NumberingValid: true}

	used := make(map[int]int)
	for _, c := range cues {
		for _, o := range c.Outputs {
			used[o]++
		}
	}

	for o := 1; o <= cfg.TotalOutputs; o++ {
		if used[o] == 0 {
			report.MissingOutputs = append(report.MissingOutputs, o)
		}
	}
	for o, n := range used {
		if n > 1 || o < 1 || o > cfg.TotalOutputs {
			report.DuplicateOutputs = append(report.DuplicateOutputs, o)
		}
	}
	sort.Ints(report.DuplicateOutputs)

	if len(report.MissingOutputs) > 0 {
		report.Problems = append(report.Problems,
			fmt.Sprintf("%d outputs never fired", len(report.MissingOutputs)))
	}
	if len(report.DuplicateOutputs) > 0 {
		report.Problems = append(report.Problems,
			fmt.Sprintf("%d outputs fired more than once or lie outside 1..%d",
				len(report.DuplicateOutputs), cfg.TotalOutputs))
	}

	verifyNumbering(cues, &report)
	verifyAllocation(used, alloc, &report)

	report.DurationDeviation = math.Abs(realizedDuration(cues) - cfg.TotalSeconds)
	if report.DurationDeviation > durationTolerance {
		report.Problems = append(report.Problems,
			fmt.Sprintf("show duration off target by %.1fs", report.DurationDeviation))
	}

	report.Pass = len(report.MissingOutputs) == 0 &&
		len(report.DuplicateOutputs) == 0 &&
		report.NumberingValid &&
		len(report.Mismatches) == 0

	return report
}

// verifyNumbering checks that cue numbers form the contiguous permutation
// 1..len(cues) and agree with execution-time order.
func verifyNumbering(cues []Cue, report *VerifyReport) {
	seen := make(map[int]bool, len(cues))
	for _, c := range cues {
		if c.Number < 1 || c.Number > len(cues) || seen[c.Number] {
			report.NumberingValid = false
			report.Problems = append(report.Problems,
				fmt.Sprintf("cue number %d is out of range or duplicated", c.Number))
			return
		}
		seen[c.Number] = true
	}

	ordered := make([]Cue, len(cues))
	copy(ordered, cues)
	sortCuesByTime(ordered)
	for i, c := range ordered {
		if c.Number != i+1 {
			report.NumberingValid = false
			report.Problems = append(report.Problems,
				"cue numbers do not follow execution-time order")
			return
		}
	}
}

// verifyAllocation compares the fired output counts against what the
// allocator assigned each act and shot type.
func verifyAllocation(used map[int]int, alloc *Allocation, report *VerifyReport) {
	if alloc == nil {
		return
	}

	for _, act := range ActOrder() {
		outputs, ok := alloc.Acts[act]
		if !ok {
			continue
		}
		if actual := countFired(used, outputs); actual != len(outputs) {
			report.Mismatches = append(report.Mismatches, CountMismatch{
				Scope:    "act:" + string(act),
				Expected: len(outputs),
				Actual:   actual,
			})
		}

		for _, st := range ShotTypeOrder() {
			stOutputs, ok := alloc.ShotTypes[act][st]
			if !ok {
				continue
			}
			if actual := countFired(used, stOutputs); actual != len(stOutputs) {
				report.Mismatches = append(report.Mismatches, CountMismatch{
					Scope:    fmt.Sprintf("act:%s/%s", act, st),
					Expected: len(stOutputs),
					Actual:   actual,
				})
			}
		}
	}

	for _, m := range report.Mismatches {
		report.Problems = append(report.Problems,
			fmt.Sprintf("%s fired %d of %d allocated outputs", m.Scope, m.Actual, m.Expected))
	}
}

// countFired returns how many of the given outputs appear in the fired set.
func countFired(used map[int]int, outputs []int) int {
	n := 0
	for _, o := range outputs {
		if used[o] > 0 {
			n++
		}
	}
	return n
}

package rhythm

import (
	"sort"

	"github.com/nerrad567/skyfire-core/internal/random"
)

// Pattern names available as special-effect flags in act configuration.
const (
	RockBallad  = "rock_ballad"
	MetalBallad = "metal_ballad"
	Trot        = "trot"
	Gallop      = "gallop"
	Step        = "step"
	Chase       = "chase"
	FalseFinale = "false_finale"
	RandomName  = "random"
)

// Pattern is an onset/delay template consumed cyclically by the synthesizer.
//
// Onsets and Multipliers always have equal length. A true onset means a cue
// fires on that step; the multiplier scales the base delay advanced after
// the step, fired or not.
type Pattern struct {
	Name        string
	Onsets      []bool
	Multipliers []float64
}

// catalog holds the static patterns. Multipliers stay within (0, 1] so a
// pattern can only tighten the base cadence, never stretch past it.
var catalog = map[string]Pattern{
	RockBallad: {
		Name:        RockBallad,
		Onsets:      []bool{true, false, true, false, true, true, false, false},
		Multipliers: []float64{1.0, 0.5, 1.0, 0.5, 0.75, 0.75, 1.0, 1.0},
	},
	MetalBallad: {
		Name:        MetalBallad,
		Onsets:      []bool{true, true, false, true, true, false, true, false},
		Multipliers: []float64{0.5, 0.5, 0.75, 0.5, 0.5, 0.75, 0.5, 1.0},
	},
	Trot: {
		Name:        Trot,
		Onsets:      []bool{true, true, false},
		Multipliers: []float64{0.5, 0.5, 1.0},
	},
	Gallop: {
		Name:        Gallop,
		Onsets:      []bool{true, true, true, false},
		Multipliers: []float64{0.25, 0.25, 0.5, 1.0},
	},
	Step: {
		Name:        Step,
		Onsets:      []bool{true, false},
		Multipliers: []float64{1.0, 1.0},
	},
	Chase: {
		Name:        Chase,
		Onsets:      []bool{true, true, true, true, true, true, true, true},
		Multipliers: []float64{0.25, 0.25, 0.25, 0.25, 0.25, 0.25, 0.25, 0.25},
	},
	FalseFinale: {
		Name:        FalseFinale,
		Onsets:      []bool{true, true, true, true, false, true, true, true, true, false, false, false},
		Multipliers: []float64{0.25, 0.25, 0.25, 0.5, 1.0, 0.25, 0.25, 0.25, 0.5, 1.0, 1.0, 1.0},
	},
}

// randomOnsetProbability is the Bernoulli parameter for Random's onsets.
const randomOnsetProbability = 0.75

// Random pattern lengths, inclusive.
const (
	randomMinSteps = 8
	randomMaxSteps = 16
)

// Len returns the number of steps in the pattern.
func (p Pattern) Len() int {
	return len(p.Onsets)
}

// OnsetAt reports whether step i fires, indexing cyclically.
func (p Pattern) OnsetAt(i int) bool {
	return p.Onsets[i%len(p.Onsets)]
}

// MultiplierAt returns the delay multiplier for step i, indexing cyclically.
func (p Pattern) MultiplierAt(i int) float64 {
	return p.Multipliers[i%len(p.Multipliers)]
}

// OnsetsPerCycle returns how many steps of one full cycle fire a cue.
func (p Pattern) OnsetsPerCycle() int {
	n := 0
	for _, on := range p.Onsets {
		if on {
			n++
		}
	}
	return n
}

// Get looks up a catalog pattern by name.
//
// The RandomName pattern is not in the catalog; callers that allow it must
// call Random with their own source instead.
func Get(name string) (Pattern, bool) {
	p, ok := catalog[name]
	return p, ok
}

// Names returns all selectable pattern names (catalog plus RandomName),
// sorted for deterministic iteration.
func Names() []string {
	names := make([]string, 0, len(catalog)+1)
	for name := range catalog {
		names = append(names, name)
	}
	names = append(names, RandomName)
	sort.Strings(names)
	return names
}

// Known reports whether name is a selectable pattern name.
func Known(name string) bool {
	if name == RandomName {
		return true
	}
	_, ok := catalog[name]
	return ok
}

// Random synthesizes a fresh pattern from rng.
//
// Each step fires with ~75% probability and carries a delay multiplier drawn
// uniformly from [0.25, 1.0]. At least one onset is guaranteed so the
// synthesizer always makes progress.
func Random(rng random.RNG) Pattern {
	steps := random.IntBetween(rng, randomMinSteps, randomMaxSteps)

	p := Pattern{
		Name:        RandomName,
		Onsets:      make([]bool, steps),
		Multipliers: make([]float64, steps),
	}

	hasOnset := false
	for i := 0; i < steps; i++ {
		p.Onsets[i] = rng.Float64() < randomOnsetProbability
		p.Multipliers[i] = random.Between(rng, 0.25, 1.0)
		if p.Onsets[i] {
			hasOnset = true
		}
	}
	if !hasOnset {
		p.Onsets[0] = true
	}

	return p
}

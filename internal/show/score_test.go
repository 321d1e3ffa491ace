package show

import (
	"math"
	"testing"
)

// scoreNear fails unless got is within a hair of want; deductions are exact
// fractions so only float noise is tolerated.
func scoreNear(t *testing.T, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("score = %v, want %v", got, want)
	}
}

func singleActAllocation(outputs []int) *Allocation {
	return &Allocation{
		Acts: map[Act][]int{ActOpening: outputs},
		ShotTypes: map[Act]map[ShotType][]int{
			ActOpening: {SingleShot: outputs},
		},
	}
}

func TestEvaluate_PerfectShow(t *testing.T) {
	cfg := singleShotConfig(10, 100, map[Act]float64{ActOpening: 100})
	outputs := sequentialOutputs(1, 10)
	alloc := singleActAllocation(outputs)

	cues := make([]Cue, 0, 10)
	for i, o := range outputs {
		cues = append(cues, Cue{Number: i + 1, Type: SingleShot, Outputs: []int{o}, ExecuteAt: float64(i) * 10})
	}

	scoreNear(t, Evaluate(cues, cfg, alloc), 100)
}

func TestEvaluate_MissingOutputsStackGlobalActAndShotType(t *testing.T) {
	// 2 of 10 outputs never fire. The hole costs the global, act, and shot
	// type deductions together: (50 + 10 + 5) × 0.2 = 13.
	cfg := singleShotConfig(10, 100, map[Act]float64{ActOpening: 100})
	outputs := sequentialOutputs(1, 10)
	alloc := singleActAllocation(outputs)

	var cues []Cue
	for i, o := range outputs[:8] {
		cues = append(cues, Cue{Number: i + 1, Type: SingleShot, Outputs: []int{o}, ExecuteAt: float64(i) * 12})
	}

	scoreNear(t, Evaluate(cues, cfg, alloc), 87)
}

func TestEvaluate_OddDoubleRunPenalized(t *testing.T) {
	// One DOUBLE RUN cue carrying 3 outputs: odd parity costs 5 and the
	// single pair falls below MinLength 2 for another 2.
	cfg := Config{
		TotalSeconds: 60,
		TotalOutputs: 3,
		Acts: map[Act]ActConfig{
			ActOpening: {
				Percentage: 100,
				ShotTypes: map[ShotType]ShotTypeConfig{
					DoubleRun: {Enabled: true, Percentage: 100, MinDelay: 0.25, MaxDelay: 0.5, MinLength: 2, MaxLength: 4},
				},
			},
		},
	}
	outputs := []int{1, 2, 3}
	alloc := &Allocation{
		Acts: map[Act][]int{ActOpening: outputs},
		ShotTypes: map[Act]map[ShotType][]int{
			ActOpening: {DoubleRun: outputs},
		},
	}
	cues := []Cue{{Number: 1, Type: DoubleRun, Outputs: outputs, Delay: 0.25, ExecuteAt: 50}}

	scoreNear(t, Evaluate(cues, cfg, alloc), 93)
}

func TestEvaluate_DurationDriftPenalized(t *testing.T) {
	// Target 100s, last cue at 200s: deviation 100 exceeds the 30s
	// tolerance, costing 10 × min(1, 100/100) = 10.
	cfg := singleShotConfig(2, 100, map[Act]float64{ActOpening: 100})
	outputs := []int{1, 2}
	alloc := singleActAllocation(outputs)
	cues := []Cue{
		{Number: 1, Type: SingleShot, Outputs: []int{1}, ExecuteAt: 0},
		{Number: 2, Type: SingleShot, Outputs: []int{2}, ExecuteAt: 200},
	}

	scoreNear(t, Evaluate(cues, cfg, alloc), 90)
}

func TestEvaluate_RunTailExtendsRealizedDuration(t *testing.T) {
	// The run's last output fires at 95 + 0.5 × 9 = 99.5, inside the 30s
	// tolerance of the 100s target. The cue start alone would not be.
	cfg := Config{
		TotalSeconds: 100,
		TotalOutputs: 10,
		Acts: map[Act]ActConfig{
			ActOpening: {
				Percentage: 100,
				ShotTypes: map[ShotType]ShotTypeConfig{
					SingleRun: {Enabled: true, Percentage: 100, MinDelay: 0.25, MaxDelay: 0.5, MinLength: 2, MaxLength: 10},
				},
			},
		},
	}
	outputs := sequentialOutputs(1, 10)
	alloc := &Allocation{
		Acts: map[Act][]int{ActOpening: outputs},
		ShotTypes: map[Act]map[ShotType][]int{
			ActOpening: {SingleRun: outputs},
		},
	}
	cues := []Cue{{Number: 1, Type: SingleRun, Outputs: outputs, Delay: 0.5, ExecuteAt: 95}}

	scoreNear(t, Evaluate(cues, cfg, alloc), 100)
}

func TestEvaluate_EmptyShowClampsToZero(t *testing.T) {
	cfg := fullConfig(100, 300)
	alloc := Allocate(testRNG(), cfg, nil)

	if got := Evaluate(nil, cfg, alloc); got != 0 {
		t.Errorf("empty show scored %v, want 0", got)
	}
}

func TestEvaluate_DoesNotMutateInputs(t *testing.T) {
	cfg := singleShotConfig(2, 100, map[Act]float64{ActOpening: 100})
	outputs := []int{1, 2}
	alloc := singleActAllocation(outputs)
	cues := []Cue{
		{Number: 1, Type: SingleShot, Outputs: []int{1}, ExecuteAt: 5},
		{Number: 2, Type: SingleShot, Outputs: []int{2}, ExecuteAt: 10},
	}

	Evaluate(cues, cfg, alloc)

	if cues[0].Number != 1 || cues[1].ExecuteAt != 10 {
		t.Error("Evaluate mutated the cue list")
	}
	if len(alloc.Acts[ActOpening]) != 2 {
		t.Error("Evaluate mutated the allocation")
	}
}

package show

import (
	"testing"

	"github.com/nerrad567/skyfire-core/internal/random"
)

// ─── Shared Fixtures ────────────────────────────────────────────────────────

// singleShotConfig builds a show where every act enables only SINGLE SHOT.
// Handy for allocation tests where shapes must stay trivial.
func singleShotConfig(totalOutputs int, totalSeconds float64, percentages map[Act]float64) Config {
	acts := make(map[Act]ActConfig, len(percentages))
	for act, pct := range percentages {
		acts[act] = ActConfig{
			Percentage: pct,
			ShotTypes: map[ShotType]ShotTypeConfig{
				SingleShot: {Enabled: true, Percentage: 100, MinDelay: 1, MaxDelay: 2},
			},
		}
	}
	return Config{
		TotalSeconds: totalSeconds,
		TotalOutputs: totalOutputs,
		Sequential:   true,
		Acts:         acts,
	}
}

// fullConfig builds a three-act show exercising every shot type and a few
// effects, the shape a real generation run sees.
func fullConfig(totalOutputs int, totalSeconds float64) Config {
	return Config{
		TotalSeconds: totalSeconds,
		TotalOutputs: totalOutputs,
		Sequential:   true,
		Acts: map[Act]ActConfig{
			ActOpening: {
				Percentage: 30,
				ShotTypes: map[ShotType]ShotTypeConfig{
					SingleShot: {Enabled: true, Percentage: 60, MinDelay: 1, MaxDelay: 3},
					SingleRun:  {Enabled: true, Percentage: 40, MinDelay: 0.25, MaxDelay: 1, MinLength: 3, MaxLength: 6},
				},
				Effects: map[string]bool{"step": true},
			},
			ActBuildup: {
				Percentage: 40,
				ShotTypes: map[ShotType]ShotTypeConfig{
					DoubleShot: {Enabled: true, Percentage: 50, MinDelay: 0.75, MaxDelay: 2},
					DoubleRun:  {Enabled: true, Percentage: 50, MinDelay: 0.25, MaxDelay: 0.75, MinLength: 2, MaxLength: 4},
				},
			},
			ActFinale: {
				Percentage: 30,
				ShotTypes: map[ShotType]ShotTypeConfig{
					SingleRun: {Enabled: true, Percentage: 40, MinDelay: 0.125, MaxDelay: 0.5, MinLength: 4, MaxLength: 8},
					DoubleRun: {Enabled: true, Percentage: 60, MinDelay: 0.125, MaxDelay: 0.375, MinLength: 2, MaxLength: 5},
				},
				Effects: map[string]bool{"false_finale": true, "chase": true},
			},
		},
	}
}

// claimedOutputs collects every output referenced by the cues, failing the
// test on duplicates.
func claimedOutputs(t *testing.T, cues []Cue) map[int]bool {
	t.Helper()
	seen := make(map[int]bool)
	for _, c := range cues {
		for _, o := range c.Outputs {
			if seen[o] {
				t.Fatalf("output %d fired more than once", o)
			}
			seen[o] = true
		}
	}
	return seen
}

func testRNG() random.RNG {
	return random.New(42)
}

package show

import "testing"

func TestAllocateActs_ExactPercentages(t *testing.T) {
	cfg := singleShotConfig(10, 300, map[Act]float64{
		ActOpening: 50,
		ActBuildup: 30,
		ActFinale:  20,
	})

	acts := AllocateActs(testRNG(), cfg, nil)

	if got := len(acts[ActOpening]); got != 5 {
		t.Errorf("opening got %d outputs, want 5", got)
	}
	if got := len(acts[ActBuildup]); got != 3 {
		t.Errorf("buildup got %d outputs, want 3", got)
	}
	if got := len(acts[ActFinale]); got != 2 {
		t.Errorf("finale got %d outputs, want 2", got)
	}
}

func TestAllocateActs_SequentialRanges(t *testing.T) {
	cfg := singleShotConfig(10, 300, map[Act]float64{
		ActOpening: 50,
		ActBuildup: 30,
		ActFinale:  20,
	})

	acts := AllocateActs(testRNG(), cfg, nil)

	for i, o := range acts[ActOpening] {
		if o != i+1 {
			t.Fatalf("opening outputs not contiguous from 1: %v", acts[ActOpening])
		}
	}
	for i, o := range acts[ActBuildup] {
		if o != i+6 {
			t.Fatalf("buildup outputs not contiguous from 6: %v", acts[ActBuildup])
		}
	}
	if acts[ActFinale][0] != 9 || acts[ActFinale][1] != 10 {
		t.Fatalf("finale outputs = %v, want [9 10]", acts[ActFinale])
	}
}

func TestAllocateActs_NormalizesDriftingPercentages(t *testing.T) {
	// Percentages sum to 120; the allocator must normalize and still
	// partition the pool exactly.
	cfg := singleShotConfig(99, 300, map[Act]float64{
		ActOpening: 40,
		ActBuildup: 40,
		ActFinale:  40,
	})

	acts := AllocateActs(testRNG(), cfg, nil)

	total := 0
	for _, outputs := range acts {
		total += len(outputs)
	}
	if total != 99 {
		t.Fatalf("partition total = %d, want 99", total)
	}

	// Even three-way split of 99: each act deviates by at most 1 from 33.
	for act, outputs := range acts {
		if len(outputs) < 32 || len(outputs) > 34 {
			t.Errorf("%s got %d outputs, want ~33", act, len(outputs))
		}
	}
}

func TestAllocateActs_RandomDrawPartitionsExactly(t *testing.T) {
	cfg := singleShotConfig(97, 300, map[Act]float64{
		ActOpening: 25,
		ActBuildup: 35,
		ActFinale:  40,
	})
	cfg.Sequential = false

	acts := AllocateActs(testRNG(), cfg, nil)

	seen := make(map[int]Act)
	for act, outputs := range acts {
		for _, o := range outputs {
			if owner, dup := seen[o]; dup {
				t.Fatalf("output %d assigned to both %s and %s", o, owner, act)
			}
			seen[o] = act
		}
	}
	for o := 1; o <= 97; o++ {
		if _, ok := seen[o]; !ok {
			t.Errorf("output %d never assigned", o)
		}
	}
}

func TestAllocateActs_ZeroPercentagesSplitEvenly(t *testing.T) {
	cfg := singleShotConfig(30, 300, map[Act]float64{
		ActOpening: 0,
		ActBuildup: 0,
		ActFinale:  0,
	})

	acts := AllocateActs(testRNG(), cfg, nil)

	total := 0
	for act, outputs := range acts {
		if len(outputs) != 10 {
			t.Errorf("%s got %d outputs, want 10", act, len(outputs))
		}
		total += len(outputs)
	}
	if total != 30 {
		t.Errorf("partition total = %d, want 30", total)
	}
}

func TestAllocateShotTypes_RemainderToLastEnabled(t *testing.T) {
	actCfg := ActConfig{
		Percentage: 100,
		ShotTypes: map[ShotType]ShotTypeConfig{
			SingleShot: {Enabled: true, Percentage: 33},
			DoubleShot: {Enabled: true, Percentage: 33},
			SingleRun:  {Enabled: true, Percentage: 33, MinLength: 2, MaxLength: 4},
		},
	}
	outputs := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	byType := AllocateShotTypes(testRNG(), ActOpening, outputs, actCfg, true, nil)

	total := 0
	for _, subset := range byType {
		total += len(subset)
	}
	if total != 10 {
		t.Fatalf("shot type partition total = %d, want 10", total)
	}

	// 33/33/33 normalized over 10: first two round to 3, the last enabled
	// type absorbs the remainder of 4.
	if got := len(byType[SingleRun]); got != 4 {
		t.Errorf("last enabled shot type got %d outputs, want remainder 4", got)
	}
}

func TestAllocateShotTypes_NoneEnabledCollapsesToSingleShot(t *testing.T) {
	actCfg := ActConfig{
		Percentage: 100,
		ShotTypes: map[ShotType]ShotTypeConfig{
			DoubleRun: {Enabled: false, Percentage: 100, MinLength: 2, MaxLength: 4},
		},
	}
	outputs := []int{4, 5, 6}

	byType := AllocateShotTypes(testRNG(), ActBuildup, outputs, actCfg, true, nil)

	if len(byType) != 1 {
		t.Fatalf("expected only the SingleShot fallback, got %d shot types", len(byType))
	}
	if got := byType[SingleShot]; len(got) != 3 {
		t.Fatalf("SingleShot fallback got %v, want all 3 outputs", got)
	}
}

func TestAllocate_CombinedStagesCoverPool(t *testing.T) {
	cfg := fullConfig(80, 300)
	cfg.Sequential = false

	alloc := Allocate(testRNG(), cfg, nil)

	seen := make(map[int]bool)
	for act, byType := range alloc.ShotTypes {
		for _, outputs := range byType {
			for _, o := range outputs {
				if seen[o] {
					t.Fatalf("output %d appears in multiple shot type allocations", o)
				}
				seen[o] = true
			}
		}
		// Every shot-type output must belong to the act's own set.
		actSet := make(map[int]bool, len(alloc.Acts[act]))
		for _, o := range alloc.Acts[act] {
			actSet[o] = true
		}
		for _, outputs := range byType {
			for _, o := range outputs {
				if !actSet[o] {
					t.Fatalf("output %d allocated to %s shot type but not to the act", o, act)
				}
			}
		}
	}
	if len(seen) != 80 {
		t.Fatalf("shot type allocations cover %d outputs, want 80", len(seen))
	}
}

func TestAllocation_ActOf(t *testing.T) {
	alloc := &Allocation{
		Acts: map[Act][]int{
			ActOpening: {1, 2},
			ActFinale:  {3},
		},
	}

	if act, ok := alloc.ActOf(3); !ok || act != ActFinale {
		t.Errorf("ActOf(3) = %v, %v; want finale, true", act, ok)
	}
	if _, ok := alloc.ActOf(99); ok {
		t.Error("ActOf(99) reported ownership for an unallocated output")
	}
}

package show

import (
	"math"
	"sort"

	"github.com/nerrad567/skyfire-core/internal/random"
)

// percentTolerance is how far the configured percentage sum may drift from
// 100 before the allocator logs a normalization warning.
const percentTolerance = 0.01

// AllocateActs partitions the full output pool 1..TotalOutputs across the
// configured acts, proportionally to their percentages.
//
// Percentages are normalized to sum to exactly 100 and the last configured
// act in ActOrder absorbs the rounding remainder, so the partition is always
// exact. Configuration drift is corrected, never fatal: over-allocation is
// absorbed by clamping to the remaining pool, with a warning logged.
//
// With Sequential set, acts receive contiguous ascending ranges in act
// order; otherwise each act's quota is drawn without replacement from the
// remaining pool.
func AllocateActs(rng random.RNG, cfg Config, logger Logger) map[Act][]int {
	if logger == nil {
		logger = noopLogger{}
	}

	var acts []Act
	for _, act := range ActOrder() {
		if _, ok := cfg.Acts[act]; ok {
			acts = append(acts, act)
		}
	}

	pcts := make([]float64, len(acts))
	for i, act := range acts {
		pcts[i] = cfg.Acts[act].Percentage
	}
	fractions := normalizeFractions(pcts, "acts", logger)

	pool := makePool(cfg.TotalOutputs)
	parts := partitionPool(rng, pool, fractions, cfg.TotalOutputs, cfg.Sequential, logger)

	result := make(map[Act][]int, len(acts))
	for i, act := range acts {
		result[act] = parts[i]
		logger.Debug("act allocation", "act", act, "outputs", len(parts[i]))
	}
	return result
}

// AllocateShotTypes partitions one act's output set across its enabled shot
// types, using the same normalize-and-remainder algorithm as AllocateActs;
// the last enabled shot type absorbs the remainder.
//
// If the act enables no shot types at all, the entire allocation collapses
// to SingleShot. This is an explicit fallback, not an error.
func AllocateShotTypes(rng random.RNG, act Act, actOutputs []int, actCfg ActConfig, sequential bool, logger Logger) map[ShotType][]int {
	if logger == nil {
		logger = noopLogger{}
	}

	enabled := actCfg.enabledShotTypes()
	if len(enabled) == 0 {
		logger.Warn("no shot types enabled, falling back to single shot", "act", act)
		fallback := make([]int, len(actOutputs))
		copy(fallback, actOutputs)
		return map[ShotType][]int{SingleShot: fallback}
	}

	pcts := make([]float64, len(enabled))
	for i, st := range enabled {
		pcts[i] = actCfg.ShotTypes[st].Percentage
	}
	fractions := normalizeFractions(pcts, string(act)+" shot types", logger)

	pool := make([]int, len(actOutputs))
	copy(pool, actOutputs)
	parts := partitionPool(rng, pool, fractions, len(actOutputs), sequential, logger)

	result := make(map[ShotType][]int, len(enabled))
	for i, st := range enabled {
		result[st] = parts[i]
		logger.Debug("shot type allocation", "act", act, "shot_type", st, "outputs", len(parts[i]))
	}
	return result
}

// Allocate runs both allocation stages and returns the combined record for
// one attempt.
func Allocate(rng random.RNG, cfg Config, logger Logger) *Allocation {
	alloc := &Allocation{
		Acts:      AllocateActs(rng, cfg, logger),
		ShotTypes: make(map[Act]map[ShotType][]int, len(cfg.Acts)),
	}
	for act, actCfg := range cfg.Acts {
		alloc.ShotTypes[act] = AllocateShotTypes(rng, act, alloc.Acts[act], actCfg, cfg.Sequential, logger)
	}
	return alloc
}

// normalizeFractions converts raw percentages into fractions summing to 1.
//
// A sum that drifts from 100 is corrected by dividing through; a zero sum
// degrades to an even split. Both are warned about, never fatal.
func normalizeFractions(pcts []float64, scope string, logger Logger) []float64 {
	sum := 0.0
	for _, p := range pcts {
		sum += p
	}

	fractions := make([]float64, len(pcts))
	if sum <= 0 {
		if len(pcts) > 0 {
			logger.Warn("percentages sum to zero, using even split", "scope", scope)
			for i := range fractions {
				fractions[i] = 1.0 / float64(len(pcts))
			}
		}
		return fractions
	}

	if math.Abs(sum-100) > percentTolerance {
		logger.Warn("percentages do not sum to 100, normalizing",
			"scope", scope, "sum", sum)
	}
	for i, p := range pcts {
		fractions[i] = p / sum
	}
	return fractions
}

// partitionPool splits pool into len(fractions) parts. Every part except
// the last gets round(total × fraction), clamped to what remains; the last
// part takes the exact remainder. Each part is returned ascending.
func partitionPool(rng random.RNG, pool []int, fractions []float64, total int, sequential bool, logger Logger) [][]int {
	parts := make([][]int, len(fractions))
	if len(fractions) == 0 {
		return parts
	}

	for i := range fractions {
		var count int
		if i == len(fractions)-1 {
			count = len(pool)
		} else {
			count = int(math.Round(float64(total) * fractions[i]))
			if count > len(pool) {
				logger.Warn("rounding over-allocated outputs, clamping to remaining pool",
					"requested", count, "remaining", len(pool))
				count = len(pool)
			}
		}

		var taken []int
		taken, pool = takeFromPool(rng, pool, count, sequential)
		sort.Ints(taken)
		parts[i] = taken
	}

	return parts
}

// takeFromPool removes count outputs from pool: the leading range when
// sequential, a without-replacement sample otherwise. Returns the taken
// outputs and the surviving pool.
func takeFromPool(rng random.RNG, pool []int, count int, sequential bool) (taken, rest []int) {
	if count >= len(pool) {
		return pool, nil
	}
	if sequential {
		return pool[:count], pool[count:]
	}

	taken = random.Sample(rng, pool, count)
	picked := make(map[int]bool, len(taken))
	for _, o := range taken {
		picked[o] = true
	}
	rest = make([]int, 0, len(pool)-count)
	for _, o := range pool {
		if !picked[o] {
			rest = append(rest, o)
		}
	}
	return taken, rest
}

// makePool returns the ascending output pool 1..total.
func makePool(total int) []int {
	pool := make([]int, total)
	for i := range pool {
		pool[i] = i + 1
	}
	return pool
}

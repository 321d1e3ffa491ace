package show

// Logger defines the logging interface used by the engine components.
// It matches the infrastructure logging package's method set.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Act identifies a show phase. Acts always run in ActOrder.
type Act string

const (
	ActOpening Act = "opening"
	ActBuildup Act = "buildup"
	ActFinale  Act = "finale"
)

// ActOrder returns the acts in show order. The last configured act in this
// order absorbs allocation rounding remainders.
func ActOrder() []Act {
	return []Act{ActOpening, ActBuildup, ActFinale}
}

// ShotType identifies a firing topology. The string values are the exact
// cue-type labels downstream consumers (firing tables, executors) expect.
type ShotType string

const (
	// SingleShot fires one output.
	SingleShot ShotType = "SINGLE SHOT"

	// DoubleShot fires two outputs simultaneously.
	DoubleShot ShotType = "DOUBLE SHOT"

	// SingleRun fires an ordered chain of outputs with a per-link delay.
	SingleRun ShotType = "SINGLE RUN"

	// DoubleRun fires a chain of output pairs with a per-pair delay.
	// Its output count is always even.
	DoubleRun ShotType = "DOUBLE RUN"
)

// ShotTypeOrder returns the shot types in their fixed iteration order. The
// last enabled shot type in this order absorbs allocation remainders.
func ShotTypeOrder() []ShotType {
	return []ShotType{SingleShot, DoubleShot, SingleRun, DoubleRun}
}

// IsRun reports whether the shot type chains outputs with a per-link delay.
func (s ShotType) IsRun() bool {
	return s == SingleRun || s == DoubleRun
}

// Config is the complete input to a generation run.
//
// It is built once from external configuration and never mutated by the
// engine; every attempt reads the same Config.
type Config struct {
	// TotalSeconds is the target show duration.
	TotalSeconds float64

	// TotalOutputs is the size of the output pool; outputs are numbered
	// 1..TotalOutputs and each is fired exactly once.
	TotalOutputs int

	// Sequential assigns contiguous output ranges in act order instead of
	// drawing outputs randomly from the pool.
	Sequential bool

	// Acts maps each configured act to its settings. Missing acts simply
	// receive no outputs and no time window.
	Acts map[Act]ActConfig
}

// ActConfig describes one act's share of the show.
type ActConfig struct {
	// Percentage of outputs (and show time) this act receives.
	// Percentages across acts are normalized to sum to 100.
	Percentage float64

	// ShotTypes configures each firing topology within the act.
	ShotTypes map[ShotType]ShotTypeConfig

	// Effects flags which rhythm patterns may drive this act's synthesis,
	// keyed by pattern name (see the rhythm package catalog).
	Effects map[string]bool
}

// ShotTypeConfig describes one shot type within an act.
type ShotTypeConfig struct {
	// Enabled includes this shot type in the act's allocation.
	Enabled bool

	// Percentage of the act's outputs this shot type receives.
	Percentage float64

	// MinDelay/MaxDelay bound the inter-output delay for run types and the
	// inter-cue gap for shot types, in seconds.
	MinDelay float64
	MaxDelay float64

	// MinLength/MaxLength bound the chain length for run types: outputs
	// per cue for SINGLE RUN, pairs per cue for DOUBLE RUN. Ignored for
	// shot types.
	MinLength int
	MaxLength int
}

// enabledShotTypes returns the act's enabled shot types in iteration order.
func (a ActConfig) enabledShotTypes() []ShotType {
	var enabled []ShotType
	for _, st := range ShotTypeOrder() {
		if cfg, ok := a.ShotTypes[st]; ok && cfg.Enabled {
			enabled = append(enabled, st)
		}
	}
	return enabled
}

// enabledEffects returns the act's enabled effect names sorted for
// deterministic selection under a fixed seed.
func (a ActConfig) enabledEffects() []string {
	var names []string
	for name, on := range a.Effects {
		if on {
			names = append(names, name)
		}
	}
	sortStrings(names)
	return names
}

// Allocation records which outputs each act and shot type received.
// The verifier and scorer compare emitted cues against it.
type Allocation struct {
	// Acts maps each act to its output set, ascending.
	Acts map[Act][]int

	// ShotTypes maps act -> shot type -> output set, ascending.
	ShotTypes map[Act]map[ShotType][]int

	actOf map[int]Act
}

// ActOf returns the act that owns the given output.
func (a *Allocation) ActOf(output int) (Act, bool) {
	if a.actOf == nil {
		a.actOf = make(map[int]Act)
		for act, outputs := range a.Acts {
			for _, o := range outputs {
				a.actOf[o] = act
			}
		}
	}
	act, ok := a.actOf[output]
	return act, ok
}

// State is the per-attempt generation state. A fresh State is created at
// the top of every attempt; nothing carries over between attempts.
type State struct {
	totalOutputs int
	claimed      map[int]bool
	nextNumber   int

	// Cues accumulates emitted cues in emission order until
	// SortAndRenumber orders them by execution time.
	Cues []Cue
}

// NewState creates an empty attempt state for a pool of totalOutputs.
func NewState(totalOutputs int) *State {
	return &State{
		totalOutputs: totalOutputs,
		claimed:      make(map[int]bool, totalOutputs),
		nextNumber:   1,
	}
}

// Claimed reports whether the output has already been consumed by a cue.
func (s *State) Claimed(output int) bool {
	return s.claimed[output]
}

// ClaimedCount returns how many outputs have been consumed so far.
func (s *State) ClaimedCount() int {
	return len(s.claimed)
}

// Emit appends a cue for the given outputs, claiming each one.
//
// Outputs already claimed are dropped from the cue; if none survive, no cue
// is emitted. This is the single gate that upholds the exactly-once
// invariant inside an attempt.
func (s *State) Emit(shotType ShotType, outputs []int, delay, executeAt float64) bool {
	kept := make([]int, 0, len(outputs))
	for _, o := range outputs {
		if s.claimed[o] {
			continue
		}
		s.claimed[o] = true
		kept = append(kept, o)
	}
	if len(kept) == 0 {
		return false
	}

	s.Cues = append(s.Cues, Cue{
		Number:    s.nextNumber,
		Type:      shotType,
		Outputs:   kept,
		Delay:     delay,
		ExecuteAt: executeAt,
	})
	s.nextNumber++
	return true
}

// SortAndRenumber orders cues by execution time and assigns contiguous cue
// numbers 1..len(cues). Cues are never mutated after this.
func (s *State) SortAndRenumber() {
	sortCuesByTime(s.Cues)
	for i := range s.Cues {
		s.Cues[i].Number = i + 1
	}
}

package show

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Cue is one timed firing instruction.
//
// Cues are created by the synthesizer, renumbered once after the global
// time sort, and never mutated after that.
type Cue struct {
	// Number is the cue's position in execution order, 1-based and
	// contiguous after SortAndRenumber.
	Number int

	// Type is the firing topology.
	Type ShotType

	// Outputs lists the consumed output channels. Order is significant for
	// run types: it is the firing order along the chain.
	Outputs []int

	// Delay is the inter-output delay in seconds for run types, 0 for
	// shot types.
	Delay float64

	// ExecuteAt is the cue's start time in seconds from show start.
	ExecuteAt float64
}

// Row is the downstream-facing record for one cue: the exact five fields
// firing tables and executors consume.
type Row struct {
	Number      int
	Type        string
	Outputs     string
	Delay       float64
	ExecuteTime string
}

// Row converts the cue into its downstream record.
func (c Cue) Row() Row {
	return Row{
		Number:      c.Number,
		Type:        string(c.Type),
		Outputs:     formatOutputs(c.Outputs),
		Delay:       c.Delay,
		ExecuteTime: FormatExecuteTime(c.ExecuteAt),
	}
}

// Rows converts a cue list into downstream records, preserving order.
func Rows(cues []Cue) []Row {
	rows := make([]Row, len(cues))
	for i, c := range cues {
		rows[i] = c.Row()
	}
	return rows
}

// FormatExecuteTime renders seconds-from-start as "MM:SS.mmm".
// Negative inputs are clamped to zero.
func FormatExecuteTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}

	// Round to milliseconds first so 59.9996s carries into the minute field
	// instead of printing as 60.000.
	millis := int64(math.Round(seconds * 1000))
	minutes := millis / 60000
	rem := millis % 60000

	return fmt.Sprintf("%02d:%02d.%03d", minutes, rem/1000, rem%1000)
}

// formatOutputs renders an output list as "1, 2, 3".
func formatOutputs(outputs []int) string {
	parts := make([]string, len(outputs))
	for i, o := range outputs {
		parts[i] = strconv.Itoa(o)
	}
	return strings.Join(parts, ", ")
}

// sortCuesByTime orders cues by execution time, breaking ties by original
// emission order so sorting is stable across runs with the same seed.
func sortCuesByTime(cues []Cue) {
	sort.SliceStable(cues, func(i, j int) bool {
		return cues[i].ExecuteAt < cues[j].ExecuteAt
	})
}

// sortStrings sorts a string slice ascending.
func sortStrings(names []string) {
	sort.Strings(names)
}

package show

import "testing"

func TestFormatExecuteTime(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{"zero", 0, "00:00.000"},
		{"sub-second", 0.125, "00:00.125"},
		{"seconds only", 42.5, "00:42.500"},
		{"minute boundary", 60, "01:00.000"},
		{"minutes and millis", 75.5, "01:15.500"},
		{"rounds into the minute", 59.9996, "01:00.000"},
		{"long show", 3725.25, "62:05.250"},
		{"negative clamps to zero", -3, "00:00.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatExecuteTime(tt.seconds); got != tt.want {
				t.Errorf("FormatExecuteTime(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestCue_Row(t *testing.T) {
	c := Cue{
		Number:    7,
		Type:      DoubleRun,
		Outputs:   []int{12, 13, 14, 15},
		Delay:     0.25,
		ExecuteAt: 95.125,
	}

	row := c.Row()

	if row.Number != 7 {
		t.Errorf("Number = %d, want 7", row.Number)
	}
	if row.Type != "DOUBLE RUN" {
		t.Errorf("Type = %q, want \"DOUBLE RUN\"", row.Type)
	}
	if row.Outputs != "12, 13, 14, 15" {
		t.Errorf("Outputs = %q, want \"12, 13, 14, 15\"", row.Outputs)
	}
	if row.Delay != 0.25 {
		t.Errorf("Delay = %v, want 0.25", row.Delay)
	}
	if row.ExecuteTime != "01:35.125" {
		t.Errorf("ExecuteTime = %q, want \"01:35.125\"", row.ExecuteTime)
	}
}

func TestState_EmitClaimsAndFilters(t *testing.T) {
	st := NewState(10)

	if !st.Emit(SingleShot, []int{1}, 0, 5) {
		t.Fatal("Emit rejected a fresh output")
	}
	if !st.Claimed(1) {
		t.Error("output 1 not marked claimed after Emit")
	}

	// Reusing a claimed output drops it from the cue.
	if !st.Emit(DoubleShot, []int{1, 2}, 0, 6) {
		t.Fatal("Emit rejected a cue with one fresh output")
	}
	last := st.Cues[len(st.Cues)-1]
	if len(last.Outputs) != 1 || last.Outputs[0] != 2 {
		t.Errorf("claimed output leaked into cue: %v", last.Outputs)
	}

	// A cue with nothing fresh is not emitted at all.
	if st.Emit(SingleShot, []int{1}, 0, 7) {
		t.Error("Emit produced a cue with zero surviving outputs")
	}
	if len(st.Cues) != 2 {
		t.Errorf("cue count = %d, want 2", len(st.Cues))
	}
}

func TestState_SortAndRenumber(t *testing.T) {
	st := NewState(5)
	st.Emit(SingleShot, []int{1}, 0, 30)
	st.Emit(SingleShot, []int{2}, 0, 10)
	st.Emit(SingleShot, []int{3}, 0, 20)

	st.SortAndRenumber()

	wantTimes := []float64{10, 20, 30}
	for i, c := range st.Cues {
		if c.Number != i+1 {
			t.Errorf("cue %d has number %d, want %d", i, c.Number, i+1)
		}
		if c.ExecuteAt != wantTimes[i] {
			t.Errorf("cue %d at %v, want %v", i, c.ExecuteAt, wantTimes[i])
		}
	}
}

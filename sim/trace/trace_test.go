package trace

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSimulationTrace_RecordAdmission_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN an admission record is recorded
	rec := AdmissionRecord{
		TrainID:   "Spr1",
		StationID: "Breda",
		Clock:     5,
		FromX:     3,
		FromY:     4,
		ToX:       7,
		ToY:       5,
		Outcome:   OutcomeReserved,
		Occupied:  1,
		Depth:     2,
	}
	st.RecordAdmission(rec)

	// THEN the trace contains exactly that record
	if diff := cmp.Diff([]AdmissionRecord{rec}, st.Admissions); diff != "" {
		t.Errorf("admissions mismatch (-want +got):\n%s", diff)
	}
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	// GIVEN a trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN records of every kind are added
	st.RecordAdmission(AdmissionRecord{TrainID: "A", Clock: 1, Outcome: OutcomeReserved})
	st.RecordAdmission(AdmissionRecord{TrainID: "B", Clock: 2, Outcome: OutcomeRejected})
	st.RecordEviction(EvictionRecord{StationID: "Breda", TrainID: "A", Clock: 5})
	st.RecordBackfill(BackfillRecord{StationID: "Breda", TrainID: "B", Clock: 6})

	// THEN order and counts are preserved
	if len(st.Admissions) != 2 || st.Admissions[0].TrainID != "A" || st.Admissions[1].TrainID != "B" {
		t.Errorf("admission order not preserved: %+v", st.Admissions)
	}
	if len(st.Evictions) != 1 || st.Evictions[0].TrainID != "A" {
		t.Errorf("eviction record mismatch: %+v", st.Evictions)
	}
	if len(st.Backfills) != 1 || st.Backfills[0].TrainID != "B" {
		t.Errorf("backfill record mismatch: %+v", st.Backfills)
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"decisions", true},
		{"", true},
		{"all", false},
		{"DECISIONS", false},
	}
	for _, tt := range tests {
		if got := IsValidTraceLevel(tt.level); got != tt.valid {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.valid)
		}
	}
}

func TestTraceConfig_Enabled(t *testing.T) {
	if (TraceConfig{Level: TraceLevelNone}).Enabled() {
		t.Error("none must be disabled")
	}
	if (TraceConfig{}).Enabled() {
		t.Error("empty level must be disabled")
	}
	if !(TraceConfig{Level: TraceLevelDecisions}).Enabled() {
		t.Error("decisions must be enabled")
	}
}

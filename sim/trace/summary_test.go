package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_NilTrace_ReturnsZeroSummary(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.TotalDecisions)
	assert.NotNil(t, s.RejectionsByStation)
	assert.NotNil(t, s.EvictionsByStation)
}

func TestSummarize_CountsOutcomesAndStations(t *testing.T) {
	// GIVEN a trace with a mix of outcomes
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})
	st.RecordAdmission(AdmissionRecord{TrainID: "A", StationID: "Breda", Outcome: OutcomeReserved})
	st.RecordAdmission(AdmissionRecord{TrainID: "B", StationID: "Breda", Outcome: OutcomeReserved})
	st.RecordAdmission(AdmissionRecord{TrainID: "C", StationID: "Breda", Outcome: OutcomeRejected})
	st.RecordAdmission(AdmissionRecord{TrainID: "D", StationID: "Arnhem", Outcome: OutcomeRejected})
	st.RecordAdmission(AdmissionRecord{TrainID: "E", Outcome: OutcomeFree})
	st.RecordAdmission(AdmissionRecord{TrainID: "E", Outcome: OutcomeIgnored})
	st.RecordAdmission(AdmissionRecord{TrainID: "A", StationID: "Breda", Outcome: OutcomeStay})
	st.RecordEviction(EvictionRecord{StationID: "Breda", TrainID: "A"})
	st.RecordEviction(EvictionRecord{StationID: "Breda", TrainID: "B"})
	st.RecordBackfill(BackfillRecord{StationID: "Breda", TrainID: "C"})

	// WHEN summarized
	s := Summarize(st)

	// THEN every counter matches
	assert.Equal(t, 7, s.TotalDecisions)
	assert.Equal(t, 2, s.ReservedCount)
	assert.Equal(t, 2, s.RejectedCount)
	assert.Equal(t, 1, s.FreeCount)
	assert.Equal(t, 1, s.IgnoredCount)
	assert.Equal(t, 1, s.StayCount)
	assert.Equal(t, 2, s.Evictions)
	assert.Equal(t, 1, s.Backfills)
	assert.Equal(t, map[string]int{"Breda": 1, "Arnhem": 1}, s.RejectionsByStation)
	assert.Equal(t, map[string]int{"Breda": 2}, s.EvictionsByStation)
}

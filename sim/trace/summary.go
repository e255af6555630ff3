package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions      int
	ReservedCount       int
	RejectedCount       int
	FreeCount           int
	IgnoredCount        int
	StayCount           int
	Evictions           int
	Backfills           int
	RejectionsByStation map[string]int // station ID → no-go enqueues
	EvictionsByStation  map[string]int // station ID → trains sent away
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		RejectionsByStation: make(map[string]int),
		EvictionsByStation:  make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDecisions = len(st.Admissions)
	for _, a := range st.Admissions {
		switch a.Outcome {
		case OutcomeReserved:
			summary.ReservedCount++
		case OutcomeRejected:
			summary.RejectedCount++
			summary.RejectionsByStation[a.StationID]++
		case OutcomeFree:
			summary.FreeCount++
		case OutcomeIgnored:
			summary.IgnoredCount++
		case OutcomeStay:
			summary.StayCount++
		}
	}

	summary.Evictions = len(st.Evictions)
	for _, e := range st.Evictions {
		summary.EvictionsByStation[e.StationID]++
	}
	summary.Backfills = len(st.Backfills)

	return summary
}

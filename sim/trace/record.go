// Package trace provides decision-trace recording for station admission analysis.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// Admission outcomes recorded for every move decision.
const (
	OutcomeReserved = "reserved" // destination station had a free slot
	OutcomeRejected = "no-go"    // destination station full, train queued
	OutcomeFree     = "free"     // destination is open track, or train already queued there
	OutcomeIgnored  = "ignored"  // train already in transit
	OutcomeStay     = "stay"     // train already held at the destination
)

// AdmissionRecord captures a single move decision at departure time.
type AdmissionRecord struct {
	TrainID   string
	StationID string // destination station; empty for open track
	Clock     int64
	FromX     int
	FromY     int
	ToX       int
	ToY       int
	Outcome   string
	Occupied  int // reserved + held at the destination before the decision
	Depth     int
}

// EvictionRecord captures a stationmaster sending a train away from a full station.
type EvictionRecord struct {
	StationID string
	TrainID   string
	Clock     int64
	ToX       int
	ToY       int
}

// BackfillRecord captures a stationmaster recalling a no-go train into a free slot.
type BackfillRecord struct {
	StationID string
	TrainID   string
	Clock     int64
	Slot      int // 0-based index of the empty slot this train was offered
	Waiting   int // no-go queue length after the pop
}

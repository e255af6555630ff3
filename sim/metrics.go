// Tracks simulation-wide and per-station admission metrics such as
// departures, arrivals, no-go rejections, evictions and backfills.

package sim

import (
	"fmt"
	"io"
	"sort"
)

// Metrics aggregates statistics about the simulation for final reporting.
type Metrics struct {
	Departures    int   // transits that left their origin
	Arrivals      int   // transits that reached their destination
	ReservedMoves int   // departures into a reserved station slot
	FreeMoves     int   // departures onto open track
	Rejections    int   // no-go enqueues
	IgnoredMoves  int   // move requests for a train already in transit
	StayMoves     int   // move requests for the station the train is already held in
	Evictions     int   // trains sent away by a stationmaster
	Backfills     int   // no-go trains recalled by a stationmaster
	TransitTicks  int64 // sum of travel time over all departures

	PeakOccupied map[string]int // station ID → max reserved+held observed
	PeakPresent  map[string]int // station ID → max trains physically present at a stationmaster wake

	SimEndedTime int64
}

// NewMetrics creates a Metrics with initialized maps.
func NewMetrics() *Metrics {
	return &Metrics{
		PeakOccupied: make(map[string]int),
		PeakPresent:  make(map[string]int),
	}
}

func (m *Metrics) observeOccupied(s *Station) {
	if n := s.Occupied(); n > m.PeakOccupied[s.ID] {
		m.PeakOccupied[s.ID] = n
	}
}

func (m *Metrics) observePresent(s *Station, present int) {
	if present > m.PeakPresent[s.ID] {
		m.PeakPresent[s.ID] = present
	}
}

// Print writes aggregated metrics at the end of the simulation.
func (m *Metrics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Simulation ended     : %d ticks\n", m.SimEndedTime)
	fmt.Fprintf(w, "Departures           : %d (reserved %d, free %d)\n", m.Departures, m.ReservedMoves, m.FreeMoves)
	fmt.Fprintf(w, "Arrivals             : %d\n", m.Arrivals)
	fmt.Fprintf(w, "No-go rejections     : %d\n", m.Rejections)
	fmt.Fprintf(w, "Ignored moves        : %d\n", m.IgnoredMoves)
	fmt.Fprintf(w, "Evictions            : %d\n", m.Evictions)
	fmt.Fprintf(w, "Backfills            : %d\n", m.Backfills)
	if m.Departures > 0 {
		fmt.Fprintf(w, "Average transit      : %.2f ticks\n", float64(m.TransitTicks)/float64(m.Departures))
	}
	ids := make([]string, 0, len(m.PeakOccupied))
	for id := range m.PeakOccupied {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(w, "Peak %-16s: occupied %d, present %d\n", id, m.PeakOccupied[id], m.PeakPresent[id])
	}
}

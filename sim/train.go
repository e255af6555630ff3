package sim

// Train is a single vehicle in the simulation.
//
// Pos is mutated only by the transit process. While a move is in flight Pos
// holds TransitSentinel and transit points at the in-flight Transit.
type Train struct {
	ID      string
	Pos     Coord
	Logging bool // journal entries for this train are emitted at info instead of debug

	berth   *Station // station whose reserved-or-hold set contains this train
	transit *Transit
}

// NewTrain creates a train at pos. The train is not registered anywhere.
func NewTrain(id string, pos Coord) *Train {
	return &Train{ID: id, Pos: pos}
}

// InTransit reports whether the train is between stable locations.
func (t *Train) InTransit() bool {
	return t.Pos.IsSentinel()
}

// Berth returns the station that currently has this train reserved or held,
// or nil if the train is not committed to any station.
func (t *Train) Berth() *Station {
	return t.berth
}

// Transit returns the in-flight transit, or nil when the train is at rest.
func (t *Train) Transit() *Transit {
	return t.transit
}

func (t *Train) String() string {
	return t.ID
}

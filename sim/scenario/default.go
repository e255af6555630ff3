package scenario

// Default returns the reference scenario: an intercity and nine sprinters
// all ordered to Breda at tick 0, with stationmasters at Breda and Arnhem
// evicting to either a random point or the Arnhem depot.
func Default() *Spec {
	settle := int64(1)
	noMaster := false
	return &Spec{
		Version: "1",
		Seed:    421,
		Horizon: 300,
		Stationmaster: StationmasterSpec{
			Interval: 5,
			Settle:   &settle,
			Policy:   "random-or-depot",
			Bounds:   BoundsSpec{Min: 1, Max: 50},
			Depot:    CoordSpec{X: 20, Y: 20},
		},
		Stations: []StationSpec{
			{ID: "Den Helder", Position: CoordSpec{X: 1, Y: 33}, Depth: intPtr(1), Stationmaster: &noMaster},
			{ID: "Breda", Position: CoordSpec{X: 7, Y: 5}, DepthRange: &BoundsSpec{Min: 2, Max: 4}},
			{ID: "Arnhem", Position: CoordSpec{X: 20, Y: 20}, Depth: intPtr(2)},
		},
		Trains: []TrainSpec{
			{ID: "Ic01", Position: CoordSpec{X: 33, Y: 33}, Logging: true},
		},
		Fleets: []FleetSpec{
			{Prefix: "Spr", Count: 9, Bounds: BoundsSpec{Min: 1, Max: 20}, Logging: true},
		},
		Moves: []MoveSpec{
			{Train: AllTrains, To: CoordSpec{X: 7, Y: 5}},
		},
	}
}

func intPtr(v int) *int { return &v }

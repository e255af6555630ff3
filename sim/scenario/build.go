package scenario

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/wannli/trainmaster/sim"
	"github.com/wannli/trainmaster/sim/trace"
)

// maxPlacementDraws bounds the redraws when placing a fleet train.
const maxPlacementDraws = 1000

// Options carries run-time settings that are not part of the scenario file.
type Options struct {
	RunID   string            // empty = random UUID
	Trace   trace.TraceConfig // decision tracing
	Journal sim.Journal       // nil = logrus standard logger
}

// Build validates the scenario and assembles a ready-to-run simulator:
// stations and trains registered, starting trains matched into their
// stations, moves spawned and stationmasters installed.
func (s *Spec) Build(opts Options) (*sim.Simulator, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	reg := sim.NewRegistry()
	simulator := sim.NewSimulator(sim.SimConfig{
		RunConfig: sim.RunConfig{
			Horizon: s.Horizon,
			Seed:    s.Seed,
			RunID:   opts.RunID,
		},
		Stationmaster: s.StationmasterConfig(),
		Trace:         opts.Trace,
		Journal:       opts.Journal,
	}, reg)
	rng := simulator.RNG.ForSubsystem(sim.SubsystemScenario)

	for _, st := range s.Stations {
		var depth int
		if st.Depth != nil {
			depth = *st.Depth
		} else {
			depth = st.DepthRange.Min + rng.Intn(st.DepthRange.Max-st.DepthRange.Min+1)
		}
		if err := reg.RegisterStation(sim.NewStation(st.ID, st.Position.Coord(), depth)); err != nil {
			return nil, fmt.Errorf("building stations: %w", err)
		}
		logrus.Debugf("station %s at %s depth %d", st.ID, st.Position.Coord(), depth)
	}

	placed := make(map[sim.Coord]int)
	for _, tr := range s.Trains {
		t := sim.NewTrain(tr.ID, tr.Position.Coord())
		t.Logging = tr.Logging
		if err := reg.RegisterTrain(t); err != nil {
			return nil, fmt.Errorf("building trains: %w", err)
		}
		placed[t.Pos]++
	}
	for i, f := range s.Fleets {
		for n := 0; n < f.Count; n++ {
			pos, err := placeFleetTrain(rng, f.Bounds, reg, placed)
			if err != nil {
				return nil, fmt.Errorf("fleets[%d]: %w", i, err)
			}
			t := sim.NewTrain(fleetTrainID(f.Prefix, n), pos)
			t.Logging = f.Logging
			if err := reg.RegisterTrain(t); err != nil {
				return nil, fmt.Errorf("building fleets: %w", err)
			}
			placed[pos]++
		}
	}

	if err := reg.Match(); err != nil {
		return nil, err
	}

	for _, mv := range s.Moves {
		to := mv.To.Coord()
		if mv.Train == AllTrains {
			for _, t := range reg.Trains() {
				simulator.SpawnAt(mv.At, t, to)
			}
			continue
		}
		t, _ := reg.Train(mv.Train)
		simulator.SpawnAt(mv.At, t, to)
	}

	for _, st := range s.Stations {
		if st.Stationmaster != nil && !*st.Stationmaster {
			continue
		}
		station, _ := reg.Station(st.ID)
		simulator.AddStationmaster(station, nil)
	}
	return simulator, nil
}

// placeFleetTrain draws a starting position inside b, avoiding the transit
// sentinel and stations that are already full of starting trains.
func placeFleetTrain(rng *rand.Rand, b BoundsSpec, reg *sim.Registry, placed map[sim.Coord]int) (sim.Coord, error) {
	for i := 0; i < maxPlacementDraws; i++ {
		pos := sim.Coord{
			X: b.Min + rng.Intn(b.Max-b.Min+1),
			Y: b.Min + rng.Intn(b.Max-b.Min+1),
		}
		if pos.IsSentinel() {
			continue
		}
		if st, ok := reg.FindStation(pos); ok && placed[pos] >= st.Depth {
			continue
		}
		return pos, nil
	}
	return sim.Coord{}, fmt.Errorf("no free starting position in [%d,%d] after %d draws", b.Min, b.Max, maxPlacementDraws)
}

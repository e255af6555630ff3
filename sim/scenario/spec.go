// Package scenario loads, validates and builds simulation scenarios:
// which stations exist, where trains start, and what they are told to do.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wannli/trainmaster/sim"
)

// AllTrains is the Move.Train wildcard addressing every train.
const AllTrains = "*"

// Spec is the top-level scenario configuration.
// Loaded from YAML via Load(path).
type Spec struct {
	Version       string            `yaml:"version"`
	Seed          int64             `yaml:"seed"`
	Horizon       int64             `yaml:"horizon"`
	Stationmaster StationmasterSpec `yaml:"stationmaster"`
	Stations      []StationSpec     `yaml:"stations"`
	Trains        []TrainSpec       `yaml:"trains,omitempty"`
	Fleets        []FleetSpec       `yaml:"fleets,omitempty"`
	Moves         []MoveSpec        `yaml:"moves,omitempty"`
}

// StationmasterSpec configures every stationmaster in the scenario.
type StationmasterSpec struct {
	Interval int64      `yaml:"interval"`         // 0 = sim.DefaultStationmasterInterval
	Settle   *int64     `yaml:"settle,omitempty"` // nil = sim.DefaultStationmasterSettle
	Policy   string     `yaml:"policy"`
	Bounds   BoundsSpec `yaml:"bounds"`
	Depot    CoordSpec  `yaml:"depot"`
}

// CoordSpec is a grid coordinate.
type CoordSpec struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// BoundsSpec is an inclusive range.
type BoundsSpec struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// StationSpec declares one station. Exactly one of Depth and DepthRange is
// used; DepthRange draws the depth from the scenario RNG.
type StationSpec struct {
	ID            string      `yaml:"id"`
	Position      CoordSpec   `yaml:"position"`
	Depth         *int        `yaml:"depth,omitempty"`
	DepthRange    *BoundsSpec `yaml:"depth_range,omitempty"`
	Stationmaster *bool       `yaml:"stationmaster,omitempty"` // nil = true
}

// TrainSpec declares one train at a fixed position.
type TrainSpec struct {
	ID       string    `yaml:"id"`
	Position CoordSpec `yaml:"position"`
	Logging  bool      `yaml:"logging,omitempty"`
}

// FleetSpec declares Count trains named Prefix0..Prefix{Count-1}, each
// placed uniformly at random inside Bounds on both axes.
type FleetSpec struct {
	Prefix  string     `yaml:"prefix"`
	Count   int        `yaml:"count"`
	Bounds  BoundsSpec `yaml:"bounds"`
	Logging bool       `yaml:"logging,omitempty"`
}

// MoveSpec orders a train (or every train, with "*") to To at tick At.
type MoveSpec struct {
	Train string    `yaml:"train"`
	To    CoordSpec `yaml:"to"`
	At    int64     `yaml:"at,omitempty"`
}

// Coord converts to the simulation coordinate type.
func (c CoordSpec) Coord() sim.Coord {
	return sim.Coord{X: c.X, Y: c.Y}
}

// Bounds converts to the simulation bounds type.
func (b BoundsSpec) Bounds() sim.Bounds {
	return sim.Bounds{Min: b.Min, Max: b.Max}
}

// Load reads a scenario YAML file with strict field checking.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes scenario YAML. Unknown fields are errors so typos surface.
func Parse(data []byte) (*Spec, error) {
	var spec Spec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if spec.Version == "" {
		spec.Version = "1"
	}
	return &spec, nil
}

// Marshal encodes the scenario as YAML.
func (s *Spec) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encoding scenario: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding scenario: %w", err)
	}
	return buf.Bytes(), nil
}

// StationmasterConfig resolves the stationmaster section into engine config.
func (s *Spec) StationmasterConfig() sim.StationmasterConfig {
	settle := sim.DefaultStationmasterSettle
	if s.Stationmaster.Settle != nil {
		settle = *s.Stationmaster.Settle
	}
	interval := s.Stationmaster.Interval
	if interval == 0 {
		interval = sim.DefaultStationmasterInterval
	}
	bounds := s.Stationmaster.Bounds.Bounds()
	if bounds == (sim.Bounds{}) {
		bounds = sim.DefaultDestinationBounds
	}
	return sim.StationmasterConfig{
		Interval: interval,
		Settle:   settle,
		Policy: sim.DestinationConfig{
			Policy: s.Stationmaster.Policy,
			Bounds: bounds,
			Depot:  s.Stationmaster.Depot.Coord(),
		},
	}
}

// Validate checks the scenario for structural errors. It does not draw
// random values, so fleet placement collisions surface only in Build.
func (s *Spec) Validate() error {
	if s.Version != "1" {
		return fmt.Errorf("unsupported scenario version %q", s.Version)
	}
	if s.Horizon <= 0 {
		return fmt.Errorf("horizon must be positive, got %d", s.Horizon)
	}
	if s.Stationmaster.Interval < 0 {
		return fmt.Errorf("stationmaster.interval must be non-negative, got %d", s.Stationmaster.Interval)
	}
	if s.Stationmaster.Settle != nil && *s.Stationmaster.Settle < 0 {
		return fmt.Errorf("stationmaster.settle must be non-negative, got %d", *s.Stationmaster.Settle)
	}
	if err := s.StationmasterConfig().Policy.Validate(); err != nil {
		return fmt.Errorf("stationmaster: %w", err)
	}

	var errs []error
	stationIDs := make(map[string]bool)
	positions := make(map[CoordSpec]string)
	for i, st := range s.Stations {
		if err := validateStation(&st, i); err != nil {
			errs = append(errs, err)
		}
		if stationIDs[st.ID] {
			errs = append(errs, fmt.Errorf("stations[%d]: %q: %w", i, st.ID, sim.ErrDuplicateID))
		}
		stationIDs[st.ID] = true
		if other, ok := positions[st.Position]; ok {
			errs = append(errs, fmt.Errorf("stations[%d]: %q shares position with %q: %w", i, st.ID, other, sim.ErrDuplicatePosition))
		}
		positions[st.Position] = st.ID
	}

	trainIDs := make(map[string]bool)
	for i, tr := range s.Trains {
		if tr.ID == "" {
			errs = append(errs, fmt.Errorf("trains[%d]: id is required", i))
		}
		if tr.ID == AllTrains {
			errs = append(errs, fmt.Errorf("trains[%d]: id %q is reserved", i, AllTrains))
		}
		if tr.Position.Coord().IsSentinel() {
			errs = append(errs, fmt.Errorf("trains[%d]: %q: %w", i, tr.ID, sim.ErrSentinelPosition))
		}
		if trainIDs[tr.ID] {
			errs = append(errs, fmt.Errorf("trains[%d]: %q: %w", i, tr.ID, sim.ErrDuplicateID))
		}
		trainIDs[tr.ID] = true
	}
	for i, f := range s.Fleets {
		if f.Prefix == "" {
			errs = append(errs, fmt.Errorf("fleets[%d]: prefix is required", i))
		}
		if f.Count < 0 {
			errs = append(errs, fmt.Errorf("fleets[%d]: count must be non-negative, got %d", i, f.Count))
		}
		if err := validateBounds(f.Bounds); err != nil {
			errs = append(errs, fmt.Errorf("fleets[%d]: %w", i, err))
		}
		for n := 0; n < f.Count; n++ {
			id := fleetTrainID(f.Prefix, n)
			if trainIDs[id] {
				errs = append(errs, fmt.Errorf("fleets[%d]: %q: %w", i, id, sim.ErrDuplicateID))
			}
			trainIDs[id] = true
		}
	}

	for i, mv := range s.Moves {
		if mv.Train != AllTrains && !trainIDs[mv.Train] {
			errs = append(errs, fmt.Errorf("moves[%d]: train %q: %w", i, mv.Train, sim.ErrUnknownTrain))
		}
		if mv.To.Coord().IsSentinel() {
			errs = append(errs, fmt.Errorf("moves[%d]: %w", i, sim.ErrSentinelPosition))
		}
		if mv.At < 0 {
			errs = append(errs, fmt.Errorf("moves[%d]: at must be non-negative, got %d", i, mv.At))
		}
	}
	return errors.Join(errs...)
}

func validateStation(st *StationSpec, idx int) error {
	if st.ID == "" {
		return fmt.Errorf("stations[%d]: id is required", idx)
	}
	if st.Position.Coord().IsSentinel() {
		return fmt.Errorf("stations[%d]: %q: %w", idx, st.ID, sim.ErrSentinelPosition)
	}
	switch {
	case st.Depth != nil && st.DepthRange != nil:
		return fmt.Errorf("stations[%d]: %q: depth and depth_range are mutually exclusive", idx, st.ID)
	case st.Depth == nil && st.DepthRange == nil:
		return fmt.Errorf("stations[%d]: %q: one of depth or depth_range is required", idx, st.ID)
	case st.Depth != nil && *st.Depth < 0:
		return fmt.Errorf("stations[%d]: %q depth %d: %w", idx, st.ID, *st.Depth, sim.ErrInvalidDepth)
	case st.DepthRange != nil:
		if st.DepthRange.Min < 0 {
			return fmt.Errorf("stations[%d]: %q depth_range min %d: %w", idx, st.ID, st.DepthRange.Min, sim.ErrInvalidDepth)
		}
		if st.DepthRange.Min > st.DepthRange.Max {
			return fmt.Errorf("stations[%d]: %q depth_range min %d > max %d", idx, st.ID, st.DepthRange.Min, st.DepthRange.Max)
		}
	}
	return nil
}

func validateBounds(b BoundsSpec) error {
	if b.Min > b.Max {
		return fmt.Errorf("bounds min %d > max %d", b.Min, b.Max)
	}
	if b.Min == 0 && b.Max == 0 {
		return fmt.Errorf("bounds [0,0] only contain the transit sentinel")
	}
	return nil
}

func fleetTrainID(prefix string, n int) string {
	return fmt.Sprintf("%s%d", prefix, n)
}

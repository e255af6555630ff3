package sim

import (
	"errors"
	"fmt"
	"iter"
)

// Registry is the simulation context's index of every Train and Station.
// It holds lookup references only; stations own their membership state.
type Registry struct {
	trains        []*Train
	trainsByID    map[string]*Train
	stations      []*Station
	stationsByID  map[string]*Station
	stationsByPos map[Coord]*Station
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		trainsByID:    make(map[string]*Train),
		stationsByID:  make(map[string]*Station),
		stationsByPos: make(map[Coord]*Station),
	}
}

// RegisterTrain adds t. Registration order breaks ties wherever trains are enumerated.
func (r *Registry) RegisterTrain(t *Train) error {
	if _, ok := r.trainsByID[t.ID]; ok {
		return fmt.Errorf("train %q: %w", t.ID, ErrDuplicateID)
	}
	if t.Pos.IsSentinel() {
		return fmt.Errorf("train %q at %s: %w", t.ID, t.Pos, ErrSentinelPosition)
	}
	r.trains = append(r.trains, t)
	r.trainsByID[t.ID] = t
	return nil
}

// RegisterStation adds s. At most one station may occupy a coordinate.
func (r *Registry) RegisterStation(s *Station) error {
	if _, ok := r.stationsByID[s.ID]; ok {
		return fmt.Errorf("station %q: %w", s.ID, ErrDuplicateID)
	}
	if s.Pos.IsSentinel() {
		return fmt.Errorf("station %q at %s: %w", s.ID, s.Pos, ErrSentinelPosition)
	}
	if other, ok := r.stationsByPos[s.Pos]; ok {
		return fmt.Errorf("station %q at %s collides with %q: %w", s.ID, s.Pos, other.ID, ErrDuplicatePosition)
	}
	if s.Depth < 0 {
		return fmt.Errorf("station %q depth %d: %w", s.ID, s.Depth, ErrInvalidDepth)
	}
	r.stations = append(r.stations, s)
	r.stationsByID[s.ID] = s
	r.stationsByPos[s.Pos] = s
	return nil
}

// FindStation returns the station at pos. A miss is a normal outcome.
func (r *Registry) FindStation(pos Coord) (*Station, bool) {
	s, ok := r.stationsByPos[pos]
	return s, ok
}

// TrainsAt yields, in registration order, every train positioned exactly at pos.
// Positions are read lazily, so each iteration reflects the current state.
func (r *Registry) TrainsAt(pos Coord) iter.Seq[*Train] {
	return func(yield func(*Train) bool) {
		for _, t := range r.trains {
			if t.Pos == pos {
				if !yield(t) {
					return
				}
			}
		}
	}
}

// CountAt returns the number of trains positioned exactly at pos.
func (r *Registry) CountAt(pos Coord) int {
	n := 0
	for range r.TrainsAt(pos) {
		n++
	}
	return n
}

// Train looks up a train by ID.
func (r *Registry) Train(id string) (*Train, bool) {
	t, ok := r.trainsByID[id]
	return t, ok
}

// Station looks up a station by ID.
func (r *Registry) Station(id string) (*Station, bool) {
	s, ok := r.stationsByID[id]
	return s, ok
}

// Trains returns all trains in registration order.
// The returned slice is internal storage and MUST NOT be modified.
func (r *Registry) Trains() []*Train { return r.trains }

// Stations returns all stations in registration order.
// The returned slice is internal storage and MUST NOT be modified.
func (r *Registry) Stations() []*Station { return r.stations }

// Match berths every train that starts inside a station directly into its
// hold set. Call once, after registration and before the first move.
func (r *Registry) Match() error {
	for _, s := range r.stations {
		for t := range r.TrainsAt(s.Pos) {
			if t.berth == s {
				continue
			}
			if err := s.admit(t); err != nil {
				return fmt.Errorf("matching trains to stations: %w", err)
			}
		}
	}
	return nil
}

// CheckInvariants verifies the capacity bound of every station and that no
// train is reserved or held at more than one station.
func (r *Registry) CheckInvariants() error {
	var errs []error
	seen := make(map[*Train]*Station)
	for _, s := range r.stations {
		if err := s.CheckCapacity(); err != nil {
			errs = append(errs, err)
		}
		for t, m := range s.members {
			if m != MemberReserved && m != MemberHeld {
				continue
			}
			if prev, ok := seen[t]; ok {
				errs = append(errs, fmt.Errorf("train %s in %s and %s: %w", t.ID, prev.ID, s.ID, ErrMembershipBreach))
				continue
			}
			seen[t] = s
			if t.berth != s {
				errs = append(errs, fmt.Errorf("train %s is %s at %s but berthed elsewhere: %w", t.ID, m, s.ID, ErrMembershipBreach))
			}
		}
	}
	return errors.Join(errs...)
}

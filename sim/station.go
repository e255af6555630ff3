package sim

import "fmt"

// Membership is the state of one train relative to one station.
type Membership int

const (
	MemberNone Membership = iota
	MemberReserved
	MemberHeld
	MemberNoGo
)

func (m Membership) String() string {
	switch m {
	case MemberNone:
		return "none"
	case MemberReserved:
		return "reserved"
	case MemberHeld:
		return "held"
	case MemberNoGo:
		return "no-go"
	default:
		return fmt.Sprintf("Membership(%d)", int(m))
	}
}

// Station is a fixed-capacity location on the grid.
//
// Each train has at most one Membership per station, so the reserved, hold
// and no-go sets are disjoint by construction. The three queues only keep
// insertion order for reporting and FIFO backfill.
//
// Not safe for concurrent use: PermitEntry followed by Reserve is a
// check-then-act pair that relies on the single-goroutine event loop.
type Station struct {
	ID    string
	Pos   Coord
	Depth int

	members  map[*Train]Membership
	reserved TrainQueue
	hold     TrainQueue
	noGo     TrainQueue
}

// NewStation creates a station with the given capacity.
func NewStation(id string, pos Coord, depth int) *Station {
	return &Station{
		ID:      id,
		Pos:     pos,
		Depth:   depth,
		members: make(map[*Train]Membership),
	}
}

// Occupied returns |reserved| + |hold|, the capacity currently claimed.
func (s *Station) Occupied() int {
	return s.reserved.Len() + s.hold.Len()
}

// PermitEntry reports whether one more train may reserve a slot.
// It must be re-evaluated immediately before every Reserve.
func (s *Station) PermitEntry() bool {
	return s.Occupied() < s.Depth
}

// Membership returns t's state relative to this station.
func (s *Station) Membership(t *Train) Membership {
	return s.members[t]
}

// Reserve claims a slot for t ahead of its physical arrival.
// A train waiting in this station's no-go queue is promoted out of it.
func (s *Station) Reserve(t *Train) error {
	if t.berth != nil {
		return fmt.Errorf("reserve %s at %s (berthed at %s): %w", t.ID, s.ID, t.berth.ID, ErrAlreadyBerthed)
	}
	if !s.PermitEntry() {
		return fmt.Errorf("reserve %s at %s (%d/%d): %w", t.ID, s.ID, s.Occupied(), s.Depth, ErrStationFull)
	}
	if s.members[t] == MemberNoGo {
		s.noGo.Remove(t)
	}
	s.members[t] = MemberReserved
	s.reserved.Enqueue(t)
	t.berth = s
	return nil
}

// Enter converts t's reservation into physical occupancy.
// Occupied() is unchanged.
func (s *Station) Enter(t *Train) error {
	if s.members[t] != MemberReserved {
		return fmt.Errorf("enter %s at %s (%s): %w", t.ID, s.ID, s.members[t], ErrNotReserved)
	}
	s.reserved.Remove(t)
	s.hold.Enqueue(t)
	s.members[t] = MemberHeld
	return nil
}

// Exit releases the slot held by t.
func (s *Station) Exit(t *Train) error {
	if s.members[t] != MemberHeld {
		return fmt.Errorf("exit %s at %s (%s): %w", t.ID, s.ID, s.members[t], ErrNotHeld)
	}
	s.hold.Remove(t)
	delete(s.members, t)
	t.berth = nil
	return nil
}

// admit places t straight into hold, bypassing reserve/enter. Used only when
// matching trains that start inside the station.
func (s *Station) admit(t *Train) error {
	if t.berth != nil {
		return fmt.Errorf("admit %s at %s (berthed at %s): %w", t.ID, s.ID, t.berth.ID, ErrAlreadyBerthed)
	}
	if !s.PermitEntry() {
		return fmt.Errorf("admit %s at %s (%d/%d): %w", t.ID, s.ID, s.Occupied(), s.Depth, ErrStationFull)
	}
	if s.members[t] == MemberNoGo {
		s.noGo.Remove(t)
	}
	s.members[t] = MemberHeld
	s.hold.Enqueue(t)
	t.berth = s
	return nil
}

// EnqueueNoGo appends t to the no-go queue. It returns false without change
// if t is already queued here.
func (s *Station) EnqueueNoGo(t *Train) (bool, error) {
	switch s.members[t] {
	case MemberNoGo:
		return false, nil
	case MemberReserved, MemberHeld:
		return false, fmt.Errorf("no-go %s at %s (%s): %w", t.ID, s.ID, s.members[t], ErrAlreadyBerthed)
	}
	s.members[t] = MemberNoGo
	s.noGo.Enqueue(t)
	return true, nil
}

// InNoGo reports whether t is waiting in the no-go queue.
func (s *Station) InNoGo(t *Train) bool {
	return s.members[t] == MemberNoGo
}

// PopNoGo removes and returns the oldest no-go train.
func (s *Station) PopNoGo() (*Train, bool) {
	t := s.noGo.Dequeue()
	if t == nil {
		return nil, false
	}
	delete(s.members, t)
	return t, true
}

// Reserved returns the reserved trains in reservation order.
func (s *Station) Reserved() []*Train { return s.reserved.Items() }

// Held returns the held trains in arrival order.
func (s *Station) Held() []*Train { return s.hold.Items() }

// NoGo returns the no-go queue, oldest first.
func (s *Station) NoGo() []*Train { return s.noGo.Items() }

// CheckCapacity returns ErrCapacityBreach if the station holds more than its depth.
func (s *Station) CheckCapacity() error {
	if s.Occupied() > s.Depth {
		return fmt.Errorf("station %s: %d reserved + %d held > depth %d: %w",
			s.ID, s.reserved.Len(), s.hold.Len(), s.Depth, ErrCapacityBreach)
	}
	return nil
}

func (s *Station) String() string {
	return fmt.Sprintf("%s%s reserved=%s hold=%s no_go=%s depth=%d",
		s.ID, s.Pos, s.reserved.String(), s.hold.String(), s.noGo.String(), s.Depth)
}

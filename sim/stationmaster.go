package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/wannli/trainmaster/sim/trace"
)

// Stationmaster is the periodic controller of one station. Every Interval
// ticks it wakes; if the number of trains physically at the station equals
// its depth, it sends all of them to destinations chosen by Policy. Settle
// ticks later it recounts the trains present and recalls one no-go train,
// oldest first, for each empty slot.
//
// Occupancy is measured spatially, not from the hold set. An evicted train
// counts as gone as soon as it departs, so the backfill may offer a slot
// before the evicted train's own transit has completed; the recalled train
// still has to pass PermitEntry on departure, which keeps the capacity bound.
type Stationmaster struct {
	Station  *Station
	Interval int64
	Settle   int64
	Policy   DestinationPolicy

	wakes int
}

// AddStationmaster installs a stationmaster for s and schedules its first
// wake Interval ticks from now. A nil policy is built from the simulator's
// DestinationConfig, drawing from the station's own RNG subsystem.
func (sim *Simulator) AddStationmaster(s *Station, policy DestinationPolicy) *Stationmaster {
	if rs, ok := sim.Registry.Station(s.ID); !ok || rs != s {
		panic(fmt.Sprintf("AddStationmaster: station %q is not registered", s.ID))
	}
	if policy == nil {
		policy = NewDestinationPolicy(sim.config.Stationmaster.Policy, sim.RNG.ForSubsystem(SubsystemStationmaster(s.ID)))
	}
	m := &Stationmaster{
		Station:  s,
		Interval: sim.config.Stationmaster.Interval,
		Settle:   sim.config.Stationmaster.Settle,
		Policy:   policy,
	}
	sim.masters = append(sim.masters, m)
	sim.Schedule(&StationmasterWakeEvent{time: sim.Clock + m.Interval, Master: m})
	return m
}

// Stationmasters returns the installed stationmasters in installation order.
func (sim *Simulator) Stationmasters() []*Stationmaster {
	return sim.masters
}

// Wakes returns how many times the stationmaster has woken.
func (m *Stationmaster) Wakes() int {
	return m.wakes
}

func (m *Stationmaster) wake(sim *Simulator) {
	m.wakes++
	s := m.Station
	var present []*Train
	for t := range sim.Registry.TrainsAt(s.Pos) {
		present = append(present, t)
	}
	sim.Metrics.observePresent(s, len(present))

	if s.Depth > 0 && len(present) == s.Depth {
		sim.recordStation(s, logrus.InfoLevel, "%s at capacity", s.ID)
		for _, t := range present {
			dest := m.Policy.Destination(t, s)
			sim.Metrics.Evictions++
			if sim.Trace != nil {
				sim.Trace.RecordEviction(trace.EvictionRecord{
					StationID: s.ID,
					TrainID:   t.ID,
					Clock:     sim.Clock,
					ToX:       dest.X,
					ToY:       dest.Y,
				})
			}
			sim.record(t, logrus.DebugLevel, "evicted from %s to %s", s.ID, dest)
			sim.Spawn(t, dest)
		}
	}
	sim.Schedule(&StationmasterBackfillEvent{time: sim.Clock + m.Settle, Master: m})
}

func (m *Stationmaster) backfill(sim *Simulator) {
	s := m.Station
	empty := s.Depth - sim.Registry.CountAt(s.Pos)
	for slot := 0; slot < empty; slot++ {
		t, ok := s.PopNoGo()
		if !ok {
			break
		}
		sim.Metrics.Backfills++
		if sim.Trace != nil {
			sim.Trace.RecordBackfill(trace.BackfillRecord{
				StationID: s.ID,
				TrainID:   t.ID,
				Clock:     sim.Clock,
				Slot:      slot,
				Waiting:   len(s.NoGo()),
			})
		}
		sim.record(t, logrus.DebugLevel, "recalled to %s from no-go", s.ID)
		sim.Spawn(t, s.Pos)
	}
	sim.Schedule(&StationmasterWakeEvent{time: sim.Clock + m.Interval, Master: m})
}

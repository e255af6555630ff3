package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/wannli/trainmaster/sim/trace"
)

// MoveOutcome is the result of a move decision.
type MoveOutcome int

const (
	// MoveReserved: the destination station had a free slot; the train
	// reserved it and departed.
	MoveReserved MoveOutcome = iota
	// MoveRejected: the destination station was full; the train joined its
	// no-go queue and stayed put.
	MoveRejected
	// MoveFree: the destination is open track, or the train was already
	// waiting in the full destination's no-go queue; it departed without a
	// reservation.
	MoveFree
	// MoveIgnored: the train was already in transit.
	MoveIgnored
	// MoveStay: the train is already held at the destination station.
	MoveStay
)

var moveOutcomeNames = map[MoveOutcome]string{
	MoveReserved: trace.OutcomeReserved,
	MoveRejected: trace.OutcomeRejected,
	MoveFree:     trace.OutcomeFree,
	MoveIgnored:  trace.OutcomeIgnored,
	MoveStay:     trace.OutcomeStay,
}

func (o MoveOutcome) String() string {
	if name, ok := moveOutcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("MoveOutcome(%d)", int(o))
}

// TransitPhase is the state of an in-flight transit.
type TransitPhase int

const (
	TransitAxis1   TransitPhase = iota // travelling along x
	TransitAxis2                       // travelling along y
	TransitArrived                     // at destination
)

// Transit is one move of one train. It is driven by TransitLegEvent and
// TransitArrivalEvent; the two legs take |Δx| and |Δy| ticks.
type Transit struct {
	Train    *Train
	Origin   Coord
	Dest     Coord
	Station  *Station // reserved destination; nil for a free move
	Phase    TransitPhase
	Departed int64
}

// Move runs the departure decision for t towards dest at the current tick.
//
// A destination station with a free slot is reserved before the train
// leaves, so a later departure cannot take a slot this train has already
// committed to. A full destination puts the train in its no-go queue,
// unless it is already there, in which case it moves onto the coordinate
// without a reservation like any open-track move.
func (sim *Simulator) Move(t *Train, dest Coord) (MoveOutcome, error) {
	if t.InTransit() {
		sim.Metrics.IgnoredMoves++
		sim.traceAdmission(t, nil, t.Pos, dest, MoveIgnored)
		sim.record(t, logrus.WarnLevel, "move to %s ignored: already in transit", dest)
		return MoveIgnored, fmt.Errorf("move %s to %s: %w", t.ID, dest, ErrTrainInTransit)
	}
	if dest.IsSentinel() {
		return MoveIgnored, fmt.Errorf("move %s to %s: %w", t.ID, dest, ErrSentinelPosition)
	}
	if rt, ok := sim.Registry.Train(t.ID); !ok || rt != t {
		return MoveIgnored, fmt.Errorf("move %s: %w", t.ID, ErrUnknownTrain)
	}

	origin := t.Pos
	from, _ := sim.Registry.FindStation(origin)
	to, isStation := sim.Registry.FindStation(dest)

	if isStation && t.berth == to && to.Membership(t) == MemberHeld {
		sim.Metrics.StayMoves++
		sim.traceAdmission(t, to, origin, dest, MoveStay)
		sim.record(t, logrus.DebugLevel, "already held at %s", to.ID)
		return MoveStay, nil
	}

	switch {
	case isStation && to.PermitEntry():
		sim.traceAdmission(t, to, origin, dest, MoveReserved)
		if err := sim.leave(t, from); err != nil {
			return MoveIgnored, err
		}
		if err := to.Reserve(t); err != nil {
			panic(fmt.Sprintf("Move: reserve after PermitEntry failed: %v", err))
		}
		sim.Metrics.ReservedMoves++
		sim.depart(t, origin, dest, to)
		return MoveReserved, nil

	case isStation && !to.InNoGo(t):
		sim.traceAdmission(t, to, origin, dest, MoveRejected)
		if _, err := to.EnqueueNoGo(t); err != nil {
			return MoveIgnored, fmt.Errorf("move %s to %s: %w", t.ID, to.ID, err)
		}
		sim.Metrics.Rejections++
		sim.record(t, logrus.InfoLevel, "No-go to %s", to.ID)
		return MoveRejected, nil

	default:
		sim.traceAdmission(t, to, origin, dest, MoveFree)
		if err := sim.leave(t, from); err != nil {
			return MoveIgnored, err
		}
		sim.Metrics.FreeMoves++
		sim.depart(t, origin, dest, nil)
		return MoveFree, nil
	}
}

// leave releases t's slot at its origin station, if it holds one there.
// A train parked on a station coordinate without a slot just drives off.
func (sim *Simulator) leave(t *Train, from *Station) error {
	if from == nil || from.Membership(t) != MemberHeld {
		return nil
	}
	if err := from.Exit(t); err != nil {
		return fmt.Errorf("leaving %s: %w", from.ID, err)
	}
	return nil
}

func (sim *Simulator) depart(t *Train, origin, dest Coord, station *Station) {
	tr := &Transit{
		Train:    t,
		Origin:   origin,
		Dest:     dest,
		Station:  station,
		Phase:    TransitAxis1,
		Departed: sim.Clock,
	}
	t.transit = tr
	t.Pos = TransitSentinel
	sim.Metrics.Departures++
	sim.Metrics.TransitTicks += Distance(origin, dest)
	sim.record(t, logrus.InfoLevel, "D %s->%s", origin, dest)
	sim.Schedule(&TransitLegEvent{time: sim.Clock + absDelta(dest.X, origin.X), Transit: tr})
}

func (sim *Simulator) completeLeg(tr *Transit) {
	if tr.Phase != TransitAxis1 {
		panic(fmt.Sprintf("completeLeg: transit of %s in phase %d", tr.Train.ID, tr.Phase))
	}
	tr.Phase = TransitAxis2
	sim.Schedule(&TransitArrivalEvent{time: sim.Clock + absDelta(tr.Dest.Y, tr.Origin.Y), Transit: tr})
}

func (sim *Simulator) arrive(tr *Transit) {
	if tr.Phase != TransitAxis2 {
		panic(fmt.Sprintf("arrive: transit of %s in phase %d", tr.Train.ID, tr.Phase))
	}
	t := tr.Train
	tr.Phase = TransitArrived
	t.Pos = tr.Dest
	t.transit = nil
	if tr.Station != nil {
		if err := tr.Station.Enter(t); err != nil {
			panic(fmt.Sprintf("arrive: %v", err))
		}
	}
	sim.Metrics.Arrivals++
	sim.record(t, logrus.InfoLevel, "A %s<-%s", tr.Dest, tr.Origin)
}

func (sim *Simulator) traceAdmission(t *Train, to *Station, from, dest Coord, outcome MoveOutcome) {
	if sim.Trace == nil {
		return
	}
	rec := trace.AdmissionRecord{
		TrainID: t.ID,
		Clock:   sim.Clock,
		FromX:   from.X,
		FromY:   from.Y,
		ToX:     dest.X,
		ToY:     dest.Y,
		Outcome: outcome.String(),
	}
	if to != nil {
		rec.StationID = to.ID
		rec.Occupied = to.Occupied()
		rec.Depth = to.Depth
	}
	sim.Trace.RecordAdmission(rec)
}

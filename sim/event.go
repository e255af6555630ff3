package sim

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// Event defines the interface for all simulation events.
// Each event must have a Timestamp (in ticks) and an Execute method
// that advances simulation state when invoked.
type Event interface {
	Timestamp() int64
	Execute(*Simulator)
}

// MoveRequestEvent starts a transit process for Train towards Dest.
// It is how a move is spawned: the decision runs when the event fires,
// not when it is scheduled.
type MoveRequestEvent struct {
	time  int64
	Train *Train
	Dest  Coord
}

// Timestamp returns the scheduled time of the MoveRequestEvent.
func (e *MoveRequestEvent) Timestamp() int64 {
	return e.time
}

// Execute runs the departure decision. Move already reports requests for
// trains in transit; every other refusal is reported here.
func (e *MoveRequestEvent) Execute(sim *Simulator) {
	if _, err := sim.Move(e.Train, e.Dest); err != nil && !errors.Is(err, ErrTrainInTransit) {
		sim.record(e.Train, logrus.WarnLevel, "move to %s refused: %v", e.Dest, err)
	}
}

// TransitLegEvent fires when a transit finishes its first (x-axis) leg.
type TransitLegEvent struct {
	time    int64
	Transit *Transit
}

// Timestamp returns the scheduled time of the TransitLegEvent.
func (e *TransitLegEvent) Timestamp() int64 {
	return e.time
}

// Execute starts the second leg.
func (e *TransitLegEvent) Execute(sim *Simulator) {
	sim.completeLeg(e.Transit)
}

// TransitArrivalEvent fires when a transit finishes its second (y-axis) leg.
type TransitArrivalEvent struct {
	time    int64
	Transit *Transit
}

// Timestamp returns the scheduled time of the TransitArrivalEvent.
func (e *TransitArrivalEvent) Timestamp() int64 {
	return e.time
}

// Execute places the train at its destination.
func (e *TransitArrivalEvent) Execute(sim *Simulator) {
	sim.arrive(e.Transit)
}

// StationmasterWakeEvent fires on a stationmaster's tick cadence.
type StationmasterWakeEvent struct {
	time   int64
	Master *Stationmaster
}

// Timestamp returns the scheduled time of the StationmasterWakeEvent.
func (e *StationmasterWakeEvent) Timestamp() int64 {
	return e.time
}

// Execute evicts trains if the station is full and schedules the backfill.
func (e *StationmasterWakeEvent) Execute(sim *Simulator) {
	e.Master.wake(sim)
}

// StationmasterBackfillEvent fires Settle ticks after a wake.
type StationmasterBackfillEvent struct {
	time   int64
	Master *Stationmaster
}

// Timestamp returns the scheduled time of the StationmasterBackfillEvent.
func (e *StationmasterBackfillEvent) Timestamp() int64 {
	return e.time
}

// Execute recalls no-go trains into empty slots and schedules the next wake.
func (e *StationmasterBackfillEvent) Execute(sim *Simulator) {
	e.Master.backfill(sim)
}

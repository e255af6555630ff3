// sim/simulator.go
package sim

import (
	"container/heap"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wannli/trainmaster/sim/trace"
)

// eventEntry wraps an Event with a sequence ID for deterministic FIFO
// tie-breaking when timestamps are equal.
type eventEntry struct {
	event Event
	seqID int64
}

// EventQueue is a min-heap ordered by (Timestamp, seqID).
// Implements heap.Interface.
type EventQueue []eventEntry

func (q EventQueue) Len() int { return len(q) }

func (q EventQueue) Less(i, j int) bool {
	if q[i].event.Timestamp() != q[j].event.Timestamp() {
		return q[i].event.Timestamp() < q[j].event.Timestamp()
	}
	return q[i].seqID < q[j].seqID
}

func (q EventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *EventQueue) Push(x any) {
	*q = append(*q, x.(eventEntry))
}

func (q *EventQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Simulator is the simulation context: it owns the clock, the event queue,
// the registry of trains and stations, and the stationmasters.
//
// Thread-safety: NOT thread-safe. All events run on the calling goroutine,
// which is what makes each PermitEntry/Reserve pair atomic.
type Simulator struct {
	Clock    int64
	Horizon  int64
	RunID    string
	Registry *Registry
	Metrics  *Metrics
	Trace    *trace.SimulationTrace // nil when tracing is disabled
	RNG      *PartitionedRNG

	config  SimConfig
	journal Journal
	events  EventQueue
	seq     int64
	masters []*Stationmaster
	hasRun  bool
}

// NewSimulator creates a simulator over reg. Trains and stations must already
// be registered; call Registry.Match before the first move fires.
// Panics if the stationmaster interval is not positive, the settle delay is
// negative, or the destination policy config does not validate.
func NewSimulator(cfg SimConfig, reg *Registry) *Simulator {
	if reg == nil {
		panic("NewSimulator: registry must not be nil")
	}
	if cfg.Stationmaster.Interval <= 0 {
		panic(fmt.Sprintf("NewSimulator: stationmaster interval must be > 0, got %d", cfg.Stationmaster.Interval))
	}
	if cfg.Stationmaster.Settle < 0 {
		panic(fmt.Sprintf("NewSimulator: stationmaster settle must be >= 0, got %d", cfg.Stationmaster.Settle))
	}
	if err := cfg.Stationmaster.Policy.Validate(); err != nil {
		panic(fmt.Sprintf("NewSimulator: invalid stationmaster policy: %v", err))
	}
	runID := cfg.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	journal := cfg.Journal
	if journal == nil {
		journal = NewLogJournal(nil, runID)
	}
	s := &Simulator{
		Horizon:  cfg.Horizon,
		RunID:    runID,
		Registry: reg,
		Metrics:  NewMetrics(),
		RNG:      NewPartitionedRNG(NewSimulationKey(cfg.Seed)),
		config:   cfg,
		journal:  journal,
		events:   make(EventQueue, 0),
	}
	if cfg.Trace.Enabled() {
		tc := cfg.Trace
		tc.RunID = runID
		s.Trace = trace.NewSimulationTrace(tc)
	}
	return s
}

// Now returns the current simulation tick.
func (sim *Simulator) Now() int64 {
	return sim.Clock
}

// Schedule pushes an event into the event queue. Events with equal
// timestamps fire in the order they were scheduled.
func (sim *Simulator) Schedule(ev Event) {
	if ev.Timestamp() < sim.Clock {
		panic(fmt.Sprintf("Schedule: %T at tick %d is before clock %d", ev, ev.Timestamp(), sim.Clock))
	}
	sim.seq++
	heap.Push(&sim.events, eventEntry{event: ev, seqID: sim.seq})
}

// Spawn requests a move of t to dest, decided at the current tick after
// every event already scheduled for this tick.
func (sim *Simulator) Spawn(t *Train, dest Coord) {
	sim.SpawnAt(sim.Clock, t, dest)
}

// SpawnAt requests a move of t to dest at tick at.
func (sim *Simulator) SpawnAt(at int64, t *Train, dest Coord) {
	sim.Schedule(&MoveRequestEvent{time: at, Train: t, Dest: dest})
}

// PendingEvents returns the number of events waiting in the queue.
func (sim *Simulator) PendingEvents() int {
	return len(sim.events)
}

// Step executes the next event. It returns false, without executing anything,
// when the queue is empty or the next event lies at or beyond the horizon.
func (sim *Simulator) Step() bool {
	if len(sim.events) == 0 {
		return false
	}
	if sim.events[0].event.Timestamp() >= sim.Horizon {
		return false
	}
	ev := heap.Pop(&sim.events).(eventEntry).event
	sim.Clock = ev.Timestamp()
	logrus.Tracef("[tick %05d] Executing %T", sim.Clock, ev)
	ev.Execute(sim)
	for _, s := range sim.Registry.Stations() {
		sim.Metrics.observeOccupied(s)
	}
	return true
}

// Run executes events until the queue drains or the horizon is reached.
// Panics if called more than once.
func (sim *Simulator) Run() {
	if sim.hasRun {
		panic("Simulator.Run() called more than once")
	}
	sim.hasRun = true
	logrus.Infof("[tick %05d] Simulation %s started: %d trains, %d stations, %d stationmasters",
		sim.Clock, sim.RunID, len(sim.Registry.Trains()), len(sim.Registry.Stations()), len(sim.masters))
	for sim.Step() {
	}
	if len(sim.events) > 0 {
		sim.Clock = sim.Horizon
	}
	sim.Metrics.SimEndedTime = sim.Clock
	logrus.Infof("[tick %05d] Simulation ended", sim.Clock)
}

// record forwards a journal entry. Entries about trains without the logging
// flag are demoted to debug.
func (sim *Simulator) record(t *Train, level logrus.Level, format string, args ...any) {
	if t != nil && !t.Logging && level == logrus.InfoLevel {
		level = logrus.DebugLevel
	}
	subject := "===="
	if t != nil {
		subject = t.ID
	}
	sim.journal.Record(sim.Clock, subject, level, fmt.Sprintf(format, args...))
}

// recordStation forwards a journal entry about a station.
func (sim *Simulator) recordStation(s *Station, level logrus.Level, format string, args ...any) {
	sim.journal.Record(sim.Clock, s.ID, level, fmt.Sprintf(format, args...))
}

package sim

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/wannli/trainmaster/sim/trace"
)

type journalEntry struct {
	Tick    int64
	Subject string
	Level   logrus.Level
	Msg     string
}

// recordingJournal keeps every entry in memory for assertions.
type recordingJournal struct {
	entries []journalEntry
}

func (j *recordingJournal) Record(tick int64, subject string, level logrus.Level, msg string) {
	j.entries = append(j.entries, journalEntry{Tick: tick, Subject: subject, Level: level, Msg: msg})
}

func (j *recordingJournal) bySubject(subject string) []journalEntry {
	var out []journalEntry
	for _, e := range j.entries {
		if e.Subject == subject {
			out = append(out, e)
		}
	}
	return out
}

func testConfig(horizon int64) SimConfig {
	return SimConfig{
		RunConfig: RunConfig{Horizon: horizon, Seed: 421, RunID: "test"},
		Stationmaster: StationmasterConfig{
			Interval: DefaultStationmasterInterval,
			Settle:   DefaultStationmasterSettle,
			Policy:   DestinationConfig{Policy: "uniform", Bounds: Bounds{Min: 1, Max: 50}},
		},
		Trace: trace.TraceConfig{Level: trace.TraceLevelDecisions},
	}
}

// newTestSimulator returns a simulator with an empty registry, decision
// tracing on and a recording journal.
func newTestSimulator(t *testing.T, horizon int64) (*Simulator, *recordingJournal) {
	t.Helper()
	j := &recordingJournal{}
	cfg := testConfig(horizon)
	cfg.Journal = j
	return NewSimulator(cfg, NewRegistry()), j
}

func addStation(t *testing.T, sim *Simulator, id string, x, y, depth int) *Station {
	t.Helper()
	s := NewStation(id, Coord{X: x, Y: y}, depth)
	require.NoError(t, sim.Registry.RegisterStation(s))
	return s
}

func addTrain(t *testing.T, sim *Simulator, id string, x, y int) *Train {
	t.Helper()
	tr := NewTrain(id, Coord{X: x, Y: y})
	require.NoError(t, sim.Registry.RegisterTrain(tr))
	return tr
}

// runAll steps the simulator until it stops, checking invariants after every event.
func runAll(t *testing.T, sim *Simulator) {
	t.Helper()
	for sim.Step() {
		require.NoError(t, sim.Registry.CheckInvariants(), "tick %d", sim.Clock)
	}
}

package sim

import "github.com/wannli/trainmaster/sim/trace"

// Defaults for the stationmaster cadence.
const (
	DefaultStationmasterInterval int64 = 5 // ticks between stationmaster wakes
	DefaultStationmasterSettle   int64 = 1 // ticks between eviction and backfill
)

// RunConfig groups engine-level parameters.
type RunConfig struct {
	Horizon int64  // events scheduled at or after this tick are not executed
	Seed    int64  // master seed for PartitionedRNG
	RunID   string // stamped on journal entries and the trace; empty = random UUID
}

// StationmasterConfig groups stationmaster cadence and eviction policy.
type StationmasterConfig struct {
	Interval int64             // ticks between wakes (must be > 0)
	Settle   int64             // ticks between eviction and backfill (must be >= 0)
	Policy   DestinationConfig // where evicted trains are sent
}

// SimConfig is the full configuration for NewSimulator.
type SimConfig struct {
	RunConfig
	Stationmaster StationmasterConfig
	Trace         trace.TraceConfig
	Journal       Journal // nil = LogJournal on the logrus standard logger
}

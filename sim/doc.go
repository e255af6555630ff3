// Package sim provides the discrete-event simulation of trains moving
// between capacity-limited stations on a grid.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - station.go: the admission state machine (PermitEntry, Reserve, Enter, Exit, no-go queue)
//   - transit.go: a train's move, reserving its destination slot at departure
//   - stationmaster.go: the periodic eviction and no-go backfill controller
//   - simulator.go: the event loop and the simulation context
//
// # Architecture
//
// The Simulator owns a Registry of trains and stations and a heap of events
// ordered by (tick, scheduling order). Everything runs on one goroutine, so
// the code between two timed events is atomic with respect to every other
// train and stationmaster. Sub-packages:
//   - sim/scenario/: YAML scenario files, the default scenario, and the builder
//   - sim/trace/: decision trace recording
//
// # Key Interfaces
//
//   - Event: anything the event loop can fire
//   - DestinationPolicy: where a stationmaster sends evicted trains
//   - Journal: side-effect-only narration sink (logrus-backed by default)
package sim

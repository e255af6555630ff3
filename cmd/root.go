package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/wannli/trainmaster/sim"
	"github.com/wannli/trainmaster/sim/scenario"
	"github.com/wannli/trainmaster/sim/trace"
)

var (
	// CLI flags for the run command
	scenarioPath      string // Scenario YAML; empty = built-in default
	seed              int64  // Master seed, overrides the scenario
	simulationHorizon int64  // Tick at which the run stops, overrides the scenario
	interval          int64  // Ticks between stationmaster wakes, overrides the scenario
	policy            string // Destination policy for evictions, overrides the scenario
	logLevel          string // Log verbosity level
	logFormat         string // text or json
	traceLevel        string // Decision trace level
	runID             string // Run identifier; empty = random UUID
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "trainmaster",
	Short: "Discrete-event simulator for train admission at capacity-limited stations",
}

// runCmd executes a scenario using parameters from the scenario file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a train admission scenario",
	Run: func(cmd *cobra.Command, args []string) {
		if err := configureLogging(logLevel, logFormat); err != nil {
			logrus.Fatalf("%v", err)
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Unknown trace level %q; valid: none, decisions", traceLevel)
		}

		spec, err := loadScenario(scenarioPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		applyOverrides(cmd.Flags(), spec)

		startTime := time.Now()
		s, err := runScenario(cmd.OutOrStdout(), spec, scenario.Options{
			RunID: runID,
			Trace: trace.TraceConfig{Level: trace.TraceLevel(traceLevel)},
		})
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Infof("Simulation %s complete in %s", s.RunID, time.Since(startTime))
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// configureLogging sets the global logrus level and formatter.
func configureLogging(level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logrus.SetLevel(lvl)
	switch format {
	case "", "text":
		logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{DisableTimestamp: true})
	default:
		return fmt.Errorf("invalid log format %q; valid: text, json", format)
	}
	return nil
}

// loadScenario reads path, or returns the built-in scenario when path is empty.
func loadScenario(path string) (*scenario.Spec, error) {
	if path == "" {
		logrus.Info("No --scenario given, using the built-in default")
		return scenario.Default(), nil
	}
	spec, err := scenario.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return spec, nil
}

// applyOverrides copies explicitly set flags onto spec. Flags left at their
// defaults never override scenario values.
func applyOverrides(fs *pflag.FlagSet, spec *scenario.Spec) {
	if fs.Changed("seed") {
		v, _ := fs.GetInt64("seed")
		logrus.Infof("CLI --seed %d overrides scenario seed %d", v, spec.Seed)
		spec.Seed = v
	}
	if fs.Changed("horizon") {
		v, _ := fs.GetInt64("horizon")
		spec.Horizon = v
	}
	if fs.Changed("interval") {
		v, _ := fs.GetInt64("interval")
		spec.Stationmaster.Interval = v
	}
	if fs.Changed("policy") {
		v, _ := fs.GetString("policy")
		spec.Stationmaster.Policy = v
	}
}

// runScenario builds and runs spec, then writes metrics and, when tracing,
// the trace summary to w.
func runScenario(w io.Writer, spec *scenario.Spec, opts scenario.Options) (*sim.Simulator, error) {
	s, err := spec.Build(opts)
	if err != nil {
		return nil, err
	}
	logrus.Infof("Starting simulation with %d stations, %d trains, horizon=%d ticks, seed=%d",
		len(s.Registry.Stations()), len(s.Registry.Trains()), s.Horizon, spec.Seed)
	s.Run()
	s.Metrics.Print(w)
	if s.Trace != nil {
		printTraceSummary(w, trace.Summarize(s.Trace))
	}
	return s, nil
}

func printTraceSummary(w io.Writer, summary *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Trace Summary ===")
	fmt.Fprintf(w, "Admission decisions  : %d (reserved %d, no-go %d, free %d, ignored %d, stay %d)\n",
		summary.TotalDecisions, summary.ReservedCount, summary.RejectedCount,
		summary.FreeCount, summary.IgnoredCount, summary.StayCount)
	fmt.Fprintf(w, "Evictions            : %d\n", summary.Evictions)
	fmt.Fprintf(w, "Backfills            : %d\n", summary.Backfills)
	ids := make([]string, 0, len(summary.RejectionsByStation))
	for id := range summary.RejectionsByStation {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(w, "No-go %-15s: %d\n", id, summary.RejectionsByStation[id])
	}
}

// addRunFlags registers the run command's flags on fs.
func addRunFlags(fs *pflag.FlagSet) {
	fs.StringVar(&scenarioPath, "scenario", "", "Path to scenario YAML (default: built-in scenario)")
	fs.Int64Var(&seed, "seed", 421, "Master seed; overrides the scenario when set")
	fs.Int64Var(&simulationHorizon, "horizon", 300, "Tick at which the run stops (exclusive); overrides the scenario when set")
	fs.Int64Var(&interval, "interval", sim.DefaultStationmasterInterval, "Ticks between stationmaster wakes; overrides the scenario when set")
	fs.StringVar(&policy, "policy", "random-or-depot", fmt.Sprintf("Eviction destination policy %v; overrides the scenario when set", sim.DestinationPolicyNames()))
	fs.StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	fs.StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
	fs.StringVar(&traceLevel, "trace-level", "none", "Decision trace level (none, decisions)")
	fs.StringVar(&runID, "run-id", "", "Run identifier stamped on log entries (default: random UUID)")
}

// init sets up CLI flags and subcommands
func init() {
	addRunFlags(runCmd.Flags())

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(defaultsCmd)
}

package main

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"rexbench/internal/compare"
	"rexbench/internal/config"
	"rexbench/internal/engine"
	"rexbench/internal/harness"
	"rexbench/internal/history"
	"rexbench/internal/schema"
)

var (
	benchEngine   string
	benchOutput   string
	benchSave     bool
	benchWarmup   int
	benchWindowMs int
	benchMaxOuter int
)

// benchOpenHistory allows mocking the history store in tests.
var benchOpenHistory = history.Open

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run the benchmark suite against a regex engine",
	Long: `Runs every benchmark in the curated suite against the selected engine
using an adaptive timing loop, prints a summary table, and writes the
measurements as an interchange JSON file.`,
	RunE: runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().StringVarP(&benchEngine, "engine", "e", "go-regexp", "Engine to measure (go-regexp, regexp2)")
	benchCmd.Flags().StringVarP(&benchOutput, "output", "o", "", "Output JSON path (default <results_dir>/<engine>_results.json)")
	benchCmd.Flags().BoolVar(&benchSave, "save", false, "Archive the run in the history database")
	benchCmd.Flags().IntVar(&benchWarmup, "warmup", 0, "Discarded warmup repetitions (overrides config)")
	benchCmd.Flags().IntVar(&benchWindowMs, "target-window-ms", 0, "Accumulated timing window per benchmark in ms (overrides config)")
	benchCmd.Flags().IntVar(&benchMaxOuter, "max-outer-iterations", 0, "Outer iteration cap per benchmark (overrides config)")
}

func runBench(cmd *cobra.Command, args []string) error {
	eng, err := engine.ByName(benchEngine)
	if err != nil {
		return err
	}

	settings := config.Current()
	opts := harness.Options{
		Warmup:             settings.Warmup,
		TargetWindow:       settings.TargetWindow,
		MaxOuterIterations: settings.MaxOuterIterations,
	}
	if cmd.Flags().Changed("warmup") {
		opts.Warmup = benchWarmup
	}
	if cmd.Flags().Changed("target-window-ms") {
		opts.TargetWindow = time.Duration(benchWindowMs) * time.Millisecond
	}
	if cmd.Flags().Changed("max-outer-iterations") {
		opts.MaxOuterIterations = benchMaxOuter
	}

	suite := engine.Suite()
	fmt.Fprintf(cmd.OutOrStdout(), "Running %d benchmarks against %s\n", len(suite), eng.Name())

	session := harness.NewSession(opts, cmd.ErrOrStderr())
	failed := 0
	for _, c := range suite {
		if settings.Verbose {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", c.Name)
		}

		m, err := eng.Compile(c.Pattern)
		if err != nil {
			return fmt.Errorf("benchmark %s: %w", c.Name, err)
		}

		probe := engine.NewProbe(m, c.Op, c.Text)
		if err := session.Measure(c.Name, harness.InternalIterations(c.Name), c.RequireMatch, probe); err != nil {
			// Already reported on stderr; skip the benchmark, keep the suite.
			failed++
		}
	}

	rs := session.ResultSet(eng.Name())
	printRun(cmd, rs)
	if failed > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %d benchmark(s) skipped\n", failed)
	}

	output := benchOutput
	if output == "" {
		output = filepath.Join(settings.ResultsDir, eng.Name()+"_results.json")
	}
	if err := rs.Save(output); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nResults written to %s\n", output)

	if benchSave {
		store, err := benchOpenHistory(settings.HistoryPath)
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.Save(rs)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Run archived as #%d in %s\n", id, settings.HistoryPath)
	}

	return nil
}

func printRun(cmd *cobra.Command, rs *schema.ResultSet) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "BENCHMARK\tTIME\tITERATIONS")
	for _, name := range rs.Names() {
		rec := rs.Results[name]
		fmt.Fprintf(w, "%s\t%s\t%d\n", name, compare.FormatTime(rec.TimeMs), rec.Iterations)
	}
	w.Flush()
}

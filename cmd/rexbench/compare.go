package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"rexbench/internal/compare"
	"rexbench/internal/config"
	"rexbench/internal/schema"
)

var (
	compareBaselineLabel  string
	compareCandidateLabel string
	compareInferRoles     bool
	compareOutput         string
)

var compareCmd = &cobra.Command{
	Use:   "compare BASELINE CANDIDATE",
	Short: "Compare two measurement files and report speedups",
	Long: `Loads two interchange JSON files, computes per-benchmark speedups and
aggregate statistics over the benchmarks present in both, prints a styled
text report, and writes the full comparison artifact as JSON.

With --infer-roles, known engine identifiers decide which file is the
baseline regardless of argument order.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringVar(&compareBaselineLabel, "baseline-label", "", "Display label for the baseline engine")
	compareCmd.Flags().StringVar(&compareCandidateLabel, "candidate-label", "", "Display label for the candidate engine")
	compareCmd.Flags().BoolVar(&compareInferRoles, "infer-roles", true, "Assign baseline/candidate roles from known engine identifiers")
	compareCmd.Flags().StringVarP(&compareOutput, "output", "o", "", "Comparison artifact path (default <results_dir>/comparison.json)")
}

func runCompare(cmd *cobra.Command, args []string) error {
	baseline, err := schema.Load(args[0])
	if err != nil {
		return err
	}
	candidate, err := schema.Load(args[1])
	if err != nil {
		return err
	}

	if compareInferRoles {
		var inferred bool
		baseline, candidate, inferred = compare.InferRoles(baseline, candidate)
		if inferred && config.Current().Verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "Roles inferred: baseline=%s candidate=%s\n", baseline.Engine, candidate.Engine)
		}
	}

	c := compare.Compare(baseline, candidate, compare.Options{
		BaselineLabel:  compareBaselineLabel,
		CandidateLabel: compareCandidateLabel,
	})

	if c.Summary.TotalCompared == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning: no common benchmarks between the two result sets")
	}

	fmt.Fprintln(cmd.OutOrStdout(), c.Report)

	output := compareOutput
	if output == "" {
		output = filepath.Join(config.Current().ResultsDir, "comparison.json")
	}
	if err := c.Save(output); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Comparison artifact written to %s\n", output)
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rexbench/internal/compare"
	"rexbench/internal/config"
	"rexbench/internal/viz"
)

var (
	vizDir    string
	vizPrefix string
)

var visualizeCmd = &cobra.Command{
	Use:   "visualize ARTIFACT",
	Short: "Render charts from a comparison artifact",
	Long: `Reads a comparison artifact produced by 'rexbench compare' and renders
three PNG charts: per-benchmark speedups, absolute execution times on a
log scale, and per-category aggregates.`,
	Args: cobra.ExactArgs(1),
	RunE: runVisualize,
}

func init() {
	rootCmd.AddCommand(visualizeCmd)
	visualizeCmd.Flags().StringVarP(&vizDir, "dir", "d", "", "Directory to write charts into (default <results_dir>)")
	visualizeCmd.Flags().StringVar(&vizPrefix, "prefix", "", "Filename prefix for the chart files")
}

func runVisualize(cmd *cobra.Command, args []string) error {
	c, err := compare.LoadArtifact(args[0])
	if err != nil {
		return err
	}

	dir := vizDir
	if dir == "" {
		dir = config.Current().ResultsDir
	}

	paths, err := viz.RenderAll(c, dir, vizPrefix)
	if err != nil {
		return err
	}

	for _, p := range paths {
		fmt.Fprintf(cmd.OutOrStdout(), "Chart written to %s\n", p)
	}
	return nil
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"rexbench/internal/parser"
)

var (
	parseEngine string
	parseOutput string
)

var parseCmd = &cobra.Command{
	Use:   "parse [FILE]",
	Short: "Extract benchmark results from a free-text report",
	Long: `Scans a benchmark report (a file, or stdin when no argument is given) for
result table rows and converts them into the interchange JSON format. Lines
that do not look like result rows are ignored.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEngine, "engine", "e", "", "Engine identifier to tag the results with (required)")
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "", "Output JSON path (default stdout)")
	parseCmd.MarkFlagRequired("engine")
}

func runParse(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open report: %w", err)
		}
		defer f.Close()
		in = f
	}

	rs, err := parser.ParseToResultSet(in, parseEngine)
	if err != nil {
		if !errors.Is(err, parser.ErrNoRecords) {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning: no benchmark results found in input")
	}

	if parseOutput == "" {
		data, err := json.MarshalIndent(rs, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if err := rs.Save(parseOutput); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Parsed %d result(s) to %s\n", len(rs.Results), parseOutput)
	return nil
}

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"rexbench/internal/config"
	"rexbench/internal/history"
)

var (
	historyPath string
	pruneKeep   int
	exportOut   string
)

// historyOpen allows mocking the store in tests.
var historyOpen = history.Open

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect archived benchmark runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived runs, newest first",
	RunE:  runHistoryList,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old runs, keeping the newest per engine",
	RunE:  runHistoryPrune,
}

var historyExportCmd = &cobra.Command{
	Use:   "export ID",
	Short: "Write an archived run back out as interchange JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryExport,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyPruneCmd, historyExportCmd)

	historyCmd.PersistentFlags().StringVar(&historyPath, "db", "", "History database path (overrides config)")
	historyPruneCmd.Flags().IntVar(&pruneKeep, "keep", 5, "Runs to keep per engine")
	historyExportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "Output JSON path (required)")
	historyExportCmd.MarkFlagRequired("output")
}

func openHistory() (*history.Store, error) {
	path := historyPath
	if path == "" {
		path = config.Current().HistoryPath
	}
	return historyOpen(path)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No archived runs.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tENGINE\tTIMESTAMP\tBENCHMARKS")
	for _, r := range runs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", r.ID, r.Engine, r.Timestamp, r.Count)
	}
	return w.Flush()
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	deleted, err := store.Prune(pruneKeep)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d run(s), keeping the newest %d per engine\n", deleted, pruneKeep)
	return nil
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	var id int64
	if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
		return fmt.Errorf("invalid run id %q", args[0])
	}

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	rs, err := store.Get(id)
	if err != nil {
		return err
	}
	if err := rs.Save(exportOut); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Run #%d written to %s\n", id, exportOut)
	return nil
}

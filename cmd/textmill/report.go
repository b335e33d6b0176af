// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/textmill/internal/report"
	"github.com/pdiddy/textmill/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show or export the history of past conversion runs",
	Long: `Report reads the run ledger written by convert --report-dir and lists
past runs with their counters. With --yaml or --json it exports the full
history, including per-file outcomes, next to the ledger database.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().String("report-dir", "reports", "directory holding the run ledger")
	reportCmd.Flags().Int("limit", 0, "maximum number of runs to show (default 20)")
	reportCmd.Flags().Bool("yaml", false, "export run history to export.yaml")
	reportCmd.Flags().Bool("json", false, "export run history to export.json")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	reportDir, _ := cmd.Flags().GetString("report-dir")
	limit, _ := cmd.Flags().GetInt("limit")
	asYAML, _ := cmd.Flags().GetBool("yaml")
	asJSON, _ := cmd.Flags().GetBool("json")

	store, err := report.NewStore(types.ReportConfig{ReportDir: reportDir, MaxRuns: limit})
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()

	if asYAML {
		if err := store.ExportYAML(ctx, limit); err != nil {
			return err
		}
		fmt.Println("Wrote export.yaml")
	}
	if asJSON {
		if err := store.ExportJSON(ctx, limit); err != nil {
			return err
		}
		fmt.Println("Wrote export.json")
	}
	if asYAML || asJSON {
		return nil
	}

	runs, err := store.Runs(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	for _, r := range runs {
		fmt.Printf("#%d  %s  total=%d success=%d skipped=%d failed=%d  %.2fs  %s -> %s\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"),
			r.Summary.Total, r.Summary.Success, r.Summary.Skipped, r.Summary.Failed,
			r.Summary.Elapsed.Seconds(), r.InputRoot, r.OutputRoot)
	}
	return nil
}

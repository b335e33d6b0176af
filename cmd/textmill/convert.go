// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/textmill/internal/batch"
	"github.com/pdiddy/textmill/internal/extract"
	"github.com/pdiddy/textmill/internal/report"
	"github.com/pdiddy/textmill/internal/resolve"
	"github.com/pdiddy/textmill/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert every PDF under a directory tree to text",
	Long: `Convert walks the input directory, converts each matching document to a
text file mirrored under the output directory, and prints a summary.

Existing outputs are skipped unless --overwrite is set. --skip-existing
also skips existing outputs; the two flags are kept separate for
compatibility with existing automation.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("input", "", "input directory containing PDF files (required)")
	convertCmd.Flags().String("output", "", "output directory for text files (required)")
	convertCmd.Flags().Int("workers", runtime.NumCPU(), "number of concurrent workers")
	convertCmd.Flags().Bool("overwrite", false, "overwrite existing output files")
	convertCmd.Flags().Bool("skip-existing", false, "skip files whose output already exists")
	convertCmd.Flags().String("ext", resolve.DefaultExtension, "document extension to match (case-sensitive)")
	convertCmd.Flags().String("report-dir", "", "record the run in a ledger under this directory")
	convertCmd.MarkFlagRequired("input")
	convertCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputDir, _ := cmd.Flags().GetString("input")
	outputDir, _ := cmd.Flags().GetString("output")
	reportDir, _ := cmd.Flags().GetString("report-dir")
	if reportDir == "" {
		reportDir = viper.GetString("report_dir")
	}
	cfg := convertConfig(cmd)

	items, err := resolve.Resolve(inputDir, outputDir, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Found %d PDF files.\n", len(items))
	if len(items) > 0 {
		fmt.Printf("Using %d worker(s).\n\n", cfg.Workers)
	}

	progress := &batch.WriterObserver{W: os.Stdout}
	collector := &report.Collector{}
	observer := batch.MultiObserver{progress, collector}

	started := time.Now()
	summary := batch.Run(context.Background(), items, extract.NewDefaultPolicy(), batch.Options{
		Workers:  cfg.Workers,
		Observer: observer,
	})

	printSummary(summary)

	if reportDir != "" {
		if err := recordRun(reportDir, started, inputDir, outputDir, summary, collector.Outcomes); err != nil {
			fmt.Fprintf(os.Stderr, "warning: recording run: %v\n", err)
		}
	}

	return nil
}

func convertConfig(cmd *cobra.Command) types.ConvertConfig {
	workers, _ := cmd.Flags().GetInt("workers")
	overwrite, _ := cmd.Flags().GetBool("overwrite")
	skipExisting, _ := cmd.Flags().GetBool("skip-existing")
	ext, _ := cmd.Flags().GetString("ext")

	return types.ConvertConfig{
		Workers:      workers,
		Overwrite:    overwrite,
		SkipExisting: skipExisting,
		Extension:    ext,
	}
}

func printSummary(s types.RunSummary) {
	fmt.Println("\n========= SUMMARY =========")
	fmt.Printf("Total Files : %d\n", s.Total)
	fmt.Printf("Success     : %d\n", s.Success)
	fmt.Printf("Skipped     : %d\n", s.Skipped)
	fmt.Printf("Failed      : %d\n", s.Failed)
	fmt.Printf("Time Taken  : %.2f seconds\n", s.Elapsed.Seconds())
	fmt.Println("===========================")
}

func recordRun(reportDir string, started time.Time, inputDir, outputDir string, summary types.RunSummary, outcomes []types.Outcome) error {
	store, err := report.NewStore(types.ReportConfig{ReportDir: reportDir})
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.RecordRun(context.Background(), started, inputDir, outputDir, summary, outcomes)
	return err
}

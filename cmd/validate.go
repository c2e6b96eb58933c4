// =============================================================================
// Compute Sales - Validate Command
// =============================================================================
//
// This file defines the 'validate' command: a dry run of the pipeline that
// loads both documents, applies every validation, and prints what would be
// processed, without producing or persisting a report.
//
// COMMAND USAGE:
//   compute-sales validate <priceCatalogue.json> <salesRecord.json>
//
// The same fatal conditions apply as for a real run (unreadable file, bad
// JSON, non-array top level, empty catalogue), so the command doubles as an
// input check with a meaningful exit status.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salesmetrics/compute-sales/internal/compute"
	"github.com/salesmetrics/compute-sales/internal/config"
	"github.com/salesmetrics/compute-sales/internal/diag"
)

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate <priceCatalogue.json> <salesRecord.json>",
	Short: "Validate the input documents without producing a report",
	Long: `The validate command runs the loading, catalogue construction and sales
aggregation stages against the given documents and prints a summary of what
a real run would process. No report is written.

Per-record warnings appear on standard error exactly as they would during a
real run.`,

	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd, args[0], args[1])
	},
}

// init registers the validate command with the root command.
func init() {
	rootCmd.AddCommand(validateCmd)
}

// runValidate runs the pipeline in summary mode and prints the counts.
func runValidate(cmd *cobra.Command, cataloguePath, salesPath string) error {
	cfg, err := config.Load(cfgFile, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}

	logger, err := diag.NewLogger(cfg.LogLevel, verbose)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush on exit

	runner := compute.New(cataloguePath, salesPath, false, diag.NewLogSink(logger), logger)
	result, err := runner.Run()
	if err != nil {
		return err
	}

	stats := result.Stats
	fmt.Println("=== Input Validation ===")
	fmt.Printf("Catalogue:   %d record(s), %d valid product(s)\n", stats.ProductsRead, stats.ProductsValid)
	fmt.Printf("Sales:       %d record(s), %d valid line(s) in %d sale(s)\n", stats.LinesRead, stats.LinesAccepted, stats.SalesCreated)
	fmt.Printf("Skipped:     %d record(s)\n", stats.RecordsSkipped)
	fmt.Printf("Grand total: $%s\n", result.GrandTotal.StringFixed(2))

	return nil
}

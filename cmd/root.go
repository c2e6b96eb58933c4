// =============================================================================
// Compute Sales - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command
// itself runs the reporting pipeline; the auxiliary commands hang off it:
//
//   compute-sales <catalogue.json> <sales.json>   (report, summary by default)
//   ├── compute-sales validate <catalogue.json> <sales.json>
//   └── compute-sales version
//
// FLAGS:
//   --total    : Summary-only report, just the grand total (default)
//   --detail   : Full itemized report
//   --config   : Path to the runtime configuration file
//   --verbose  : Debug-level diagnostics on stderr
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/salesmetrics/compute-sales/internal/config"
)

// =============================================================================
// GLOBAL FLAGS
// =============================================================================

// cfgFile holds the path to the runtime configuration file.
var cfgFile string

// verbose enables debug-level diagnostics when set to true.
var verbose bool

// totalOnly requests the summary-only report. This is the default; the flag
// exists so the two report modes are spelled symmetrically.
var totalOnly bool

// detailed requests the full itemized report.
var detailed bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd is the entry point: it takes the two input documents as positional
// arguments and produces the sales report.
var rootCmd = &cobra.Command{
	Use:   "compute-sales [flags] <priceCatalogue.json> <salesRecord.json>",
	Short: "Aggregate sales transactions against a product price catalogue",
	Long: `compute-sales reads a JSON product price catalogue and a JSON sales record,
joins them in memory, and produces a textual sales report.

The report is printed to standard output and persisted to a text file in the
working directory (SalesResults.txt unless configured otherwise). Invalid
records in either document are skipped with a warning on standard error;
they never abort the run.

Example Usage:
  compute-sales priceCatalogue.json salesRecord.json            # grand total only
  compute-sales priceCatalogue.json salesRecord.json --detail   # itemized report
  compute-sales validate priceCatalogue.json salesRecord.json   # check inputs only`,

	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, args[0], args[1])
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. Called by main.main(). Any fatal condition
// terminates the process with a non-zero status and a message on stderr.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global and report flags.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultPath,
		"Path to the runtime configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug-level diagnostics",
	)

	rootCmd.Flags().BoolVar(
		&totalOnly,
		"total",
		false,
		"Show only the grand total (default)",
	)

	rootCmd.Flags().BoolVar(
		&detailed,
		"detail",
		false,
		"Show the full itemized report",
	)

	rootCmd.MarkFlagsMutuallyExclusive("total", "detail")
}

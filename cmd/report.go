// =============================================================================
// Compute Sales - Report Execution
// =============================================================================
//
// This file wires the reporting pipeline to the process boundary: runtime
// configuration, the zap-backed diagnostic stream, stdout for the report,
// and the persisted report file.
//
// OUTPUT CONTRACT:
//   - The report always goes to stdout first.
//   - It is then persisted to the configured report file, followed by a
//     confirmation line naming that file.
//   - A persistence or archival failure is reported as a diagnostic but
//     does not change the process outcome: the console report has already
//     satisfied the primary contract.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salesmetrics/compute-sales/internal/compute"
	"github.com/salesmetrics/compute-sales/internal/config"
	"github.com/salesmetrics/compute-sales/internal/diag"
	"github.com/salesmetrics/compute-sales/pkg/fileutil"
)

// runReport executes the full pipeline and handles the output sinks.
func runReport(cmd *cobra.Command, cataloguePath, salesPath string) error {
	// =========================================================================
	// STEP 1: CONFIGURATION AND DIAGNOSTICS
	// =========================================================================

	cfg, err := config.Load(cfgFile, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}

	logger, err := diag.NewLogger(cfg.LogLevel, verbose)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush on exit

	// =========================================================================
	// STEP 2: RUN THE PIPELINE
	// =========================================================================

	runner := compute.New(cataloguePath, salesPath, detailed, diag.NewLogSink(logger), logger)
	result, err := runner.Run()
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 3: OUTPUT SINKS
	// =========================================================================
	// Console first, then the report file, then the optional archive copy.

	fmt.Println(result.Report)

	if err := fileutil.WriteReport(cfg.ReportFile, result.Report); err != nil {
		logger.Errorw("could not persist report", "file", cfg.ReportFile, "error", err)
		return nil
	}

	fmt.Printf("\nResults saved to %s\n", cfg.ReportFile)

	if cfg.ArchiveDir != "" {
		archived, err := fileutil.ArchiveReport(cfg.ArchiveDir, cfg.ReportFile)
		if err != nil {
			logger.Warnw("could not archive report", "dir", cfg.ArchiveDir, "error", err)
		} else {
			logger.Debugw("archived report", "file", archived)
		}
	}

	return nil
}

// =============================================================================
// Compute Sales - Main Entry Point
// =============================================================================
//
// compute-sales is a single-pass batch reporting tool: it reads a JSON
// product price catalogue and a JSON sales record, validates and joins them
// in memory, and produces a textual sales report on stdout and in a report
// file in the working directory.
//
// USAGE:
//   compute-sales <catalogue.json> <sales.json>             - summary report
//   compute-sales <catalogue.json> <sales.json> --detail    - itemized report
//   compute-sales validate <catalogue.json> <sales.json>    - check inputs
//   compute-sales version                                   - show version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : core pipeline stages (loader, catalogue, sales, report)
//   - pkg/       : shared file utilities
//
// =============================================================================

package main

import (
	"github.com/salesmetrics/compute-sales/cmd"
)

// main delegates to the cmd package, which initializes and runs the CLI.
func main() {
	cmd.Execute()
}

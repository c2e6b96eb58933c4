// =============================================================================
// Compute Sales - Pipeline Orchestrator
// =============================================================================
//
// This module runs the whole reporting pipeline for one invocation:
//
//   1. Load the catalogue document (fatal on unreadable / bad JSON / non-array)
//   2. Load the sales document (same fatal conditions)
//   3. Build the price catalogue (per-record skip; fatal if empty)
//   4. Aggregate the sale lines against the catalogue (per-record skip)
//   5. Render the report text
//
// The stages run sequentially to completion; each stage's accumulator is
// private to it and the data flows strictly one way. The elapsed time in
// the report covers loading and aggregation, not presentation.
//
// Fatal conditions surface as errors to the caller; recoverable anomalies
// are absorbed as warning events on the diagnostic sink.
//
// =============================================================================

package compute

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/salesmetrics/compute-sales/internal/catalogue"
	"github.com/salesmetrics/compute-sales/internal/diag"
	"github.com/salesmetrics/compute-sales/internal/loader"
	"github.com/salesmetrics/compute-sales/internal/report"
	"github.com/salesmetrics/compute-sales/internal/sales"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result is the outcome of a successful pipeline run.
type Result struct {
	// Report is the formatted report text.
	Report string

	// GrandTotal is the unrounded sum of all valid line totals.
	GrandTotal decimal.Decimal

	// Stats describes what was processed.
	Stats Stats
}

// Stats contains counts gathered while processing.
type Stats struct {
	// ProductsRead is the number of records in the catalogue document.
	ProductsRead int

	// ProductsValid is the number of catalogue entries after filtering.
	ProductsValid int

	// LinesRead is the number of records in the sales document.
	LinesRead int

	// LinesAccepted is the number of sale lines that passed validation.
	LinesAccepted int

	// SalesCreated is the number of distinct sales with at least one
	// valid line.
	SalesCreated int

	// RecordsSkipped is the number of warnings emitted across both stages.
	RecordsSkipped int

	// Elapsed covers loading and aggregation.
	Elapsed time.Duration
}

// =============================================================================
// RUNNER
// =============================================================================

// Runner executes the pipeline for one pair of input documents.
type Runner struct {
	cataloguePath string
	salesPath     string
	detailed      bool
	sink          diag.Sink
	log           *zap.SugaredLogger
}

// New creates a Runner.
//
// PARAMETERS:
//   - cataloguePath: Path to the JSON product catalogue document.
//   - salesPath:     Path to the JSON sales record document.
//   - detailed:      Whether the report includes per-sale itemization.
//   - sink:          Diagnostic stream for per-record warnings.
//   - log:           Logger for progress diagnostics.
func New(cataloguePath, salesPath string, detailed bool, sink diag.Sink, log *zap.SugaredLogger) *Runner {
	return &Runner{
		cataloguePath: cataloguePath,
		salesPath:     salesPath,
		detailed:      detailed,
		sink:          sink,
		log:           log,
	}
}

// Run executes the pipeline and returns the rendered report.
func (r *Runner) Run() (*Result, error) {
	start := time.Now()

	// Count skips alongside whatever sink the caller wired.
	recorder := diag.NewRecorder()
	sink := diag.Multi(r.sink, recorder)

	// =========================================================================
	// STEP 1-2: LOAD INPUT DOCUMENTS
	// =========================================================================

	products, err := loader.LoadDocument(r.cataloguePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load product catalogue: %w", err)
	}
	r.log.Debugw("loaded catalogue document", "file", r.cataloguePath, "records", len(products))

	records, err := loader.LoadDocument(r.salesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales record: %w", err)
	}
	r.log.Debugw("loaded sales document", "file", r.salesPath, "records", len(records))

	// =========================================================================
	// STEP 3: BUILD CATALOGUE
	// =========================================================================
	// An empty catalogue after filtering is fatal: no sale line could ever
	// be validly priced, so there is nothing to report on.

	cat := catalogue.Build(products, sink)
	if len(cat) == 0 {
		return nil, catalogue.ErrEmpty
	}
	r.log.Debugw("built catalogue", "products", len(cat))

	// =========================================================================
	// STEP 4: AGGREGATE SALES
	// =========================================================================

	summary := sales.Aggregate(cat, records, sink)
	elapsed := time.Since(start)
	r.log.Debugw("aggregated sales",
		"sales", len(summary.Sales),
		"lines", summary.LinesAccepted,
		"grand_total", summary.GrandTotal.StringFixed(2),
	)

	// =========================================================================
	// STEP 5: RENDER REPORT
	// =========================================================================

	text := report.Render(summary, elapsed, r.detailed)

	return &Result{
		Report:     text,
		GrandTotal: summary.GrandTotal,
		Stats: Stats{
			ProductsRead:   len(products),
			ProductsValid:  len(cat),
			LinesRead:      len(records),
			LinesAccepted:  summary.LinesAccepted,
			SalesCreated:   len(summary.Sales),
			RecordsSkipped: recorder.Count(),
			Elapsed:        elapsed,
		},
	}, nil
}

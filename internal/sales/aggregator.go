// =============================================================================
// Compute Sales - Sales Aggregator
// =============================================================================
//
// This module joins the raw sale-line records against the price catalogue,
// grouping lines by sale identifier and accumulating per-sale and grand
// totals. Each record passes through an ordered validation chain; the first
// failing check determines the skip reason and short-circuits the rest:
//
//   1. SALE_ID absent (null or missing key; a present zero counts as present)
//   2. Product missing or empty
//   3. Quantity not parseable as an integer
//   4. Product not priced in the catalogue
//
// On success, line_total = unit_price * quantity is appended to the sale's
// item list (insertion order preserved) and both the sale total and the
// grand total are incremented. A SaleAggregate is created lazily on the
// first valid line for its SALE_ID; its date is the SALE_Date of that first
// line (or "N/A" when absent) and is never updated by later lines.
//
// No rounding is applied during accumulation. Ordering for display is the
// report formatter's responsibility.
//
// =============================================================================

package sales

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/salesmetrics/compute-sales/internal/catalogue"
	"github.com/salesmetrics/compute-sales/internal/diag"
	"github.com/salesmetrics/compute-sales/internal/loader"
)

// =============================================================================
// DATA STRUCTURES
// =============================================================================

// SaleID is the canonical string form of a sale identifier. Numeric
// identifiers render without a decimal point, so the JSON number 1 and the
// JSON string "1" name the same sale.
type SaleID string

// DateNotAvailable is the sentinel date used when a sale's first valid line
// carries no SALE_Date.
const DateNotAvailable = "N/A"

// LineItem is one validated, priced sale line. Immutable once appended.
type LineItem struct {
	// Product is the catalogue title this line references.
	Product string

	// Quantity is the integer quantity sold.
	Quantity int64

	// UnitPrice is the catalogue price at aggregation time.
	UnitPrice decimal.Decimal

	// LineTotal is UnitPrice * Quantity, unrounded.
	LineTotal decimal.Decimal
}

// SaleAggregate is the grouped, totaled view of all valid lines sharing a
// SALE_ID.
type SaleAggregate struct {
	// ID is the sale identifier.
	ID SaleID

	// Date is the SALE_Date seen on the first valid line for this sale.
	// Later lines never update it, even when they carry a different date.
	Date string

	// Items are the sale's line items in input order.
	Items []LineItem

	// Total is the running sum of the items' line totals.
	Total decimal.Decimal
}

// Summary is the full aggregation result for one run.
type Summary struct {
	// Sales maps each SALE_ID to its aggregate. No entry exists for a sale
	// with zero valid lines.
	Sales map[SaleID]*SaleAggregate

	// GrandTotal is the running sum of every line total across all sales.
	GrandTotal decimal.Decimal

	// LinesAccepted is the number of sale-line records that passed
	// validation and contributed to a total.
	LinesAccepted int
}

// =============================================================================
// AGGREGATION
// =============================================================================

// Aggregate processes the raw sale-line records against the catalogue, in
// input order. Invalid records are skipped with one warning each; Aggregate
// never fails. Running it twice on the same inputs yields identical results.
//
// PARAMETERS:
//   - cat:     The validated price catalogue.
//   - records: The raw records from the sales document.
//   - sink:    The diagnostic stream receiving one event per skipped record.
func Aggregate(cat catalogue.Catalogue, records []loader.Record, sink diag.Sink) *Summary {
	summary := &Summary{
		Sales:      make(map[SaleID]*SaleAggregate),
		GrandTotal: decimal.Zero,
	}

	for idx, record := range records {
		rawID, ok := record.Field("SALE_ID")
		if !ok {
			sink.Warn(diag.Warning{
				Stage:   diag.StageSales,
				Reason:  diag.ReasonMissingSaleID,
				Index:   idx,
				Message: fmt.Sprintf("record at index %d has no SALE_ID, skipping", idx),
			})
			continue
		}
		saleID := formatSaleID(rawID)

		product, ok := extractProduct(record)
		if !ok {
			sink.Warn(diag.Warning{
				Stage:   diag.StageSales,
				Reason:  diag.ReasonMissingProduct,
				Index:   idx,
				Subject: string(saleID),
				Message: fmt.Sprintf("record at index %d (sale %s) has no Product, skipping", idx, saleID),
			})
			continue
		}

		rawQty, _ := record.Field("Quantity")
		quantity, err := parseQuantity(rawQty)
		if err != nil {
			sink.Warn(diag.Warning{
				Stage:   diag.StageSales,
				Reason:  diag.ReasonInvalidQuantity,
				Index:   idx,
				Subject: string(saleID),
				Message: fmt.Sprintf("record at index %d (sale %s) has invalid Quantity '%v', skipping", idx, saleID, rawQty),
			})
			continue
		}

		unitPrice, ok := cat.Price(product)
		if !ok {
			sink.Warn(diag.Warning{
				Stage:   diag.StageSales,
				Reason:  diag.ReasonUnknownProduct,
				Index:   idx,
				Subject: product,
				Message: fmt.Sprintf("product %q not found in catalogue, skipping record at index %d", product, idx),
			})
			continue
		}

		lineTotal := unitPrice.Mul(decimal.NewFromInt(quantity))

		sale, exists := summary.Sales[saleID]
		if !exists {
			sale = &SaleAggregate{
				ID:    saleID,
				Date:  extractDate(record),
				Total: decimal.Zero,
			}
			summary.Sales[saleID] = sale
		}

		sale.Items = append(sale.Items, LineItem{
			Product:   product,
			Quantity:  quantity,
			UnitPrice: unitPrice,
			LineTotal: lineTotal,
		})
		sale.Total = sale.Total.Add(lineTotal)
		summary.GrandTotal = summary.GrandTotal.Add(lineTotal)
		summary.LinesAccepted++
	}

	return summary
}

// =============================================================================
// ORDERING
// =============================================================================

// SortedIDs returns the sale identifiers in ascending natural order:
// numeric identifiers compare numerically and sort as a block before
// non-numeric identifiers, which compare lexically.
func (s *Summary) SortedIDs() []SaleID {
	ids := make([]SaleID, 0, len(s.Sales))
	for id := range s.Sales {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return lessSaleID(ids[i], ids[j])
	})
	return ids
}

// lessSaleID imposes a total order. Comparing the class first keeps the
// order transitive when numeric and non-numeric identifiers coexist;
// comparing pairwise by kind would not.
func lessSaleID(a, b SaleID) bool {
	na, errA := strconv.ParseFloat(string(a), 64)
	nb, errB := strconv.ParseFloat(string(b), 64)
	switch {
	case errA == nil && errB == nil:
		if na != nb {
			return na < nb
		}
		return a < b
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}

// =============================================================================
// FIELD EXTRACTION
// =============================================================================

// formatSaleID renders the identifier value. Presence has already been
// established, so any scalar shape is accepted; non-scalar values fall back
// to their default formatting to stay distinct.
func formatSaleID(raw any) SaleID {
	if s, ok := loader.ScalarString(raw); ok {
		return SaleID(s)
	}
	return SaleID(fmt.Sprint(raw))
}

// extractProduct pulls a non-empty product name from the record.
func extractProduct(record loader.Record) (string, bool) {
	raw, ok := record.Field("Product")
	if !ok {
		return "", false
	}
	product, ok := loader.ScalarString(raw)
	if !ok || product == "" {
		return "", false
	}
	return product, true
}

// parseQuantity converts a loosely typed quantity to an integer. A JSON
// number truncates toward zero; a string must spell a base-10 integer.
// Converting a float64 outside the int64 range is not defined in Go, so
// out-of-range numbers are rejected rather than converted.
func parseQuantity(raw any) (int64, error) {
	switch v := raw.(type) {
	case float64:
		if math.IsNaN(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, fmt.Errorf("out of integer range")
		}
		return int64(v), nil
	case string:
		qty, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("not an integer: %w", err)
		}
		return qty, nil
	case nil:
		return 0, fmt.Errorf("quantity is missing")
	default:
		return 0, fmt.Errorf("unsupported quantity type %T", raw)
	}
}

// extractDate pulls the optional SALE_Date, defaulting to the sentinel.
func extractDate(record loader.Record) string {
	raw, ok := record.Field("SALE_Date")
	if !ok {
		return DateNotAvailable
	}
	if date, ok := loader.ScalarString(raw); ok && date != "" {
		return date
	}
	return DateNotAvailable
}

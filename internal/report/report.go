// =============================================================================
// Compute Sales - Report Formatter
// =============================================================================
//
// This module renders the aggregation result into the fixed-layout text
// report. It is pure text production: no I/O, no side effects, same output
// for the same inputs.
//
// LAYOUT (detail mode):
//
//   **** SALES REPORT ****
//
//   Sale ID: 1  |  Date: 2024-01-05
//   ------------------------------------------------------------
//     Product                              Qty    Unit $    Total $
//     ----------------------------------- ---- --------- ----------
//     Pen                                    4      1.50       6.00
//                                                    ----------
//                                         Sale Total       6.00
//
//   ============================================================
//     GRAND TOTAL: $6.00
//   ============================================================
//     Time elapsed: 0.0042 seconds
//   ============================================================
//
// Summary mode omits the per-sale blocks and keeps the banner section.
// Sales are ordered by identifier (ascending, natural order); line items
// within a sale keep their input order. Currency fields are rounded to two
// decimal places here and only here; the grand total additionally gets
// thousands separators.
//
// =============================================================================

package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salesmetrics/compute-sales/internal/sales"
)

// =============================================================================
// LAYOUT CONSTANTS
// =============================================================================

const (
	titleLine = "**** SALES REPORT ****"

	// reportWidth is the width of the separator and banner lines.
	reportWidth = 60

	// Column widths for the itemized rows.
	productColWidth = 35
	qtyColWidth     = 4
	unitColWidth    = 9
	totalColWidth   = 10
)

// =============================================================================
// RENDERING
// =============================================================================

// Render produces the formatted report text (without a trailing newline).
//
// PARAMETERS:
//   - summary:  The aggregation result.
//   - elapsed:  Time spent loading and aggregating, shown with four decimals.
//   - detailed: When true, include the per-sale itemization.
func Render(summary *sales.Summary, elapsed time.Duration, detailed bool) string {
	separator := strings.Repeat("=", reportWidth)

	lines := []string{
		titleLine,
		"",
	}

	if detailed {
		for _, id := range summary.SortedIDs() {
			lines = append(lines, renderSale(summary.Sales[id])...)
		}
	}

	lines = append(lines,
		separator,
		fmt.Sprintf("  GRAND TOTAL: $%s", withThousands(summary.GrandTotal)),
		separator,
		fmt.Sprintf("  Time elapsed: %.4f seconds", elapsed.Seconds()),
		separator,
	)

	return strings.Join(lines, "\n")
}

// renderSale produces the itemized block for a single sale.
func renderSale(sale *sales.SaleAggregate) []string {
	lines := []string{
		fmt.Sprintf("Sale ID: %s  |  Date: %s", sale.ID, sale.Date),
		strings.Repeat("-", reportWidth),
		fmt.Sprintf("  %-*s %*s %*s %*s",
			productColWidth, "Product",
			qtyColWidth, "Qty",
			unitColWidth, "Unit $",
			totalColWidth, "Total $"),
		fmt.Sprintf("  %s %s %s %s",
			strings.Repeat("-", productColWidth),
			strings.Repeat("-", qtyColWidth),
			strings.Repeat("-", unitColWidth),
			strings.Repeat("-", totalColWidth)),
	}

	for _, item := range sale.Items {
		lines = append(lines, fmt.Sprintf("  %-*s %*d %*s %*s",
			productColWidth, item.Product,
			qtyColWidth, item.Quantity,
			unitColWidth, item.UnitPrice.StringFixed(2),
			totalColWidth, item.LineTotal.StringFixed(2)))
	}

	lines = append(lines,
		fmt.Sprintf("  %50s %10s", "", strings.Repeat("-", totalColWidth)),
		fmt.Sprintf("  %50s %10s", "Sale Total", sale.Total.StringFixed(2)),
		"",
	)

	return lines
}

// =============================================================================
// NUMBER FORMATTING
// =============================================================================

// withThousands renders a decimal with two fixed decimal places and a comma
// every three digits in the integer part. Example: 1234567.8 -> "1,234,567.80".
func withThousands(d decimal.Decimal) string {
	s := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart := s[:len(s)-3]
	fracPart := s[len(s)-3:]

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(fracPart)

	return b.String()
}

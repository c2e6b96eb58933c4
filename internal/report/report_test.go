package report_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesmetrics/compute-sales/internal/catalogue"
	"github.com/salesmetrics/compute-sales/internal/diag"
	"github.com/salesmetrics/compute-sales/internal/loader"
	"github.com/salesmetrics/compute-sales/internal/report"
	"github.com/salesmetrics/compute-sales/internal/sales"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func penSummary(t *testing.T) *sales.Summary {
	t.Helper()
	cat := catalogue.Build([]loader.Record{
		{"title": "Pen", "price": 1.5},
	}, diag.NewRecorder())
	return sales.Aggregate(cat, []loader.Record{
		{"SALE_ID": 1.0, "Product": "Pen", "Quantity": 4.0, "SALE_Date": "2024-01-05"},
	}, diag.NewRecorder())
}

func emptySummary() *sales.Summary {
	return &sales.Summary{
		Sales:      map[sales.SaleID]*sales.SaleAggregate{},
		GrandTotal: decimal.Zero,
	}
}

// =============================================================================
// SUMMARY MODE
// =============================================================================

func TestRender_SummaryMode(t *testing.T) {
	text := report.Render(penSummary(t), 1500*time.Millisecond, false)

	assert.True(t, strings.HasPrefix(text, "**** SALES REPORT ****\n"))
	assert.Contains(t, text, "GRAND TOTAL: $6.00")
	assert.Contains(t, text, "Time elapsed: 1.5000 seconds")
	assert.NotContains(t, text, "Sale ID:", "summary mode must not itemize")

	separator := strings.Repeat("=", 60)
	assert.Equal(t, 3, strings.Count(text, separator), "three banner lines")
}

func TestRender_EmptySummaryShowsZeroTotal(t *testing.T) {
	text := report.Render(emptySummary(), 0, false)
	assert.Contains(t, text, "GRAND TOTAL: $0.00")
}

// =============================================================================
// DETAIL MODE
// =============================================================================

func TestRender_DetailMode(t *testing.T) {
	text := report.Render(penSummary(t), time.Millisecond, true)

	assert.Contains(t, text, "Sale ID: 1  |  Date: 2024-01-05")
	assert.Contains(t, text, fmt.Sprintf("  %-35s %4s %9s %10s", "Product", "Qty", "Unit $", "Total $"))
	assert.Contains(t, text, fmt.Sprintf("  %-35s %4d %9s %10s", "Pen", 4, "1.50", "6.00"))
	assert.Contains(t, text, fmt.Sprintf("  %50s %10s", "Sale Total", "6.00"))
	assert.Contains(t, text, "GRAND TOTAL: $6.00")
}

func TestRender_DetailModeOrdersSalesByID(t *testing.T) {
	cat := catalogue.Build([]loader.Record{
		{"title": "Pen", "price": 1.0},
	}, diag.NewRecorder())
	summary := sales.Aggregate(cat, []loader.Record{
		{"SALE_ID": 10.0, "Product": "Pen", "Quantity": 1.0},
		{"SALE_ID": 2.0, "Product": "Pen", "Quantity": 1.0},
	}, diag.NewRecorder())

	text := report.Render(summary, 0, true)

	require.Contains(t, text, "Sale ID: 2")
	require.Contains(t, text, "Sale ID: 10")
	assert.Less(t,
		strings.Index(text, "Sale ID: 2"),
		strings.Index(text, "Sale ID: 10"),
		"sales must appear in ascending identifier order")
}

func TestRender_LineItemsKeepInputOrder(t *testing.T) {
	cat := catalogue.Build([]loader.Record{
		{"title": "Zebra", "price": 1.0},
		{"title": "Apple", "price": 1.0},
	}, diag.NewRecorder())
	summary := sales.Aggregate(cat, []loader.Record{
		{"SALE_ID": 1.0, "Product": "Zebra", "Quantity": 1.0},
		{"SALE_ID": 1.0, "Product": "Apple", "Quantity": 1.0},
	}, diag.NewRecorder())

	text := report.Render(summary, 0, true)

	assert.Less(t, strings.Index(text, "Zebra"), strings.Index(text, "Apple"))
}

// =============================================================================
// NUMBER FORMATTING
// =============================================================================

func TestRender_GrandTotalUsesThousandsSeparators(t *testing.T) {
	summary := emptySummary()
	summary.GrandTotal = decimal.RequireFromString("1234567.891")

	text := report.Render(summary, 0, false)

	assert.Contains(t, text, "GRAND TOTAL: $1,234,567.89")
}

func TestRender_GrandTotalSmallAmounts(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "$0.00"},
		{"999.995", "$1,000.00"}, // display rounding happens here, not earlier
		{"100", "$100.00"},
		{"1000", "$1,000.00"},
	}

	for _, tc := range tests {
		summary := emptySummary()
		summary.GrandTotal = decimal.RequireFromString(tc.amount)
		text := report.Render(summary, 0, false)
		assert.Contains(t, text, "GRAND TOTAL: "+tc.want, "amount %s", tc.amount)
	}
}

func TestRender_ElapsedHasFourDecimals(t *testing.T) {
	text := report.Render(emptySummary(), 123456*time.Microsecond, false)
	assert.Contains(t, text, "Time elapsed: 0.1235 seconds")
}

func TestRender_IsPure(t *testing.T) {
	summary := penSummary(t)
	assert.Equal(t,
		report.Render(summary, time.Second, true),
		report.Render(summary, time.Second, true))
}

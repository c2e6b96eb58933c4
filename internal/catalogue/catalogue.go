// =============================================================================
// Compute Sales - Catalogue Builder
// =============================================================================
//
// This module converts the raw product records from the price catalogue
// document into a validated title -> price mapping. Each record passes
// through an ordered chain of checks; the first failing check determines
// why the record is skipped, and one warning event is emitted per skip:
//
//   1. title missing or empty          -> skip (missing_title)
//   2. price absent                    -> skip (missing_price)
//   3. price not parseable as a number -> skip (invalid_price)
//   4. price negative                  -> skip (negative_price)
//   5. otherwise insert/overwrite catalogue[title] = price
//
// A later record with a duplicate title silently overrides the earlier one.
// A price of exactly zero is valid. Prices are held as decimals so totals
// accumulate exactly; rounding happens only at display time.
//
// An empty catalogue after filtering means no sale line can ever be priced,
// which the caller must treat as fatal (see ErrEmpty).
//
// =============================================================================

package catalogue

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/salesmetrics/compute-sales/internal/diag"
	"github.com/salesmetrics/compute-sales/internal/loader"
)

// =============================================================================
// CATALOGUE TYPE
// =============================================================================

// Catalogue maps a product title to its validated, non-negative unit price.
// It is built once per run and read-only afterwards.
type Catalogue map[string]decimal.Decimal

// ErrEmpty reports a catalogue with zero valid entries after filtering.
var ErrEmpty = errors.New("no valid products found in catalogue")

// Price returns the unit price for a title and whether the title is priced.
func (c Catalogue) Price(title string) (decimal.Decimal, bool) {
	price, ok := c[title]
	return price, ok
}

// =============================================================================
// BUILDER
// =============================================================================

// Build constructs a Catalogue from the raw product records, in input order.
// Invalid records are skipped with one warning each; Build never fails.
//
// PARAMETERS:
//   - products: The raw records from the catalogue document.
//   - sink:     The diagnostic stream receiving one event per skipped record.
func Build(products []loader.Record, sink diag.Sink) Catalogue {
	catalogue := make(Catalogue, len(products))

	for idx, product := range products {
		title, ok := extractTitle(product)
		if !ok {
			sink.Warn(diag.Warning{
				Stage:   diag.StageCatalogue,
				Reason:  diag.ReasonMissingTitle,
				Index:   idx,
				Message: fmt.Sprintf("product at index %d has no title, skipping", idx),
			})
			continue
		}

		raw, ok := product.Field("price")
		if !ok {
			sink.Warn(diag.Warning{
				Stage:   diag.StageCatalogue,
				Reason:  diag.ReasonMissingPrice,
				Index:   idx,
				Subject: title,
				Message: fmt.Sprintf("product %q has no price, skipping", title),
			})
			continue
		}

		price, err := parsePrice(raw)
		if err != nil {
			sink.Warn(diag.Warning{
				Stage:   diag.StageCatalogue,
				Reason:  diag.ReasonInvalidPrice,
				Index:   idx,
				Subject: title,
				Message: fmt.Sprintf("product %q has invalid price '%v', skipping", title, raw),
			})
			continue
		}

		if price.IsNegative() {
			sink.Warn(diag.Warning{
				Stage:   diag.StageCatalogue,
				Reason:  diag.ReasonNegativePrice,
				Index:   idx,
				Subject: title,
				Message: fmt.Sprintf("product %q has negative price, skipping", title),
			})
			continue
		}

		// Later duplicates override earlier entries without a warning.
		catalogue[title] = price
	}

	return catalogue
}

// =============================================================================
// FIELD EXTRACTION
// =============================================================================

// extractTitle pulls a non-empty title string from the record.
func extractTitle(product loader.Record) (string, bool) {
	raw, ok := product.Field("title")
	if !ok {
		return "", false
	}
	title, ok := loader.ScalarString(raw)
	if !ok || title == "" {
		return "", false
	}
	return title, true
}

// parsePrice converts a loosely typed price value to a decimal. JSON numbers
// and numeric strings are accepted; everything else is an error.
func parsePrice(raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		price, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero, fmt.Errorf("not a number: %w", err)
		}
		return price, nil
	default:
		return decimal.Zero, fmt.Errorf("unsupported price type %T", raw)
	}
}

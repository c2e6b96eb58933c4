package catalogue_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesmetrics/compute-sales/internal/catalogue"
	"github.com/salesmetrics/compute-sales/internal/diag"
	"github.com/salesmetrics/compute-sales/internal/loader"
)

// =============================================================================
// VALID RECORDS
// =============================================================================

func TestBuild_ValidProducts(t *testing.T) {
	sink := diag.NewRecorder()

	cat := catalogue.Build([]loader.Record{
		{"title": "Pen", "price": 1.5},
		{"title": "Notebook", "price": "3.25"}, // numeric string is accepted
	}, sink)

	require.Len(t, cat, 2)
	assert.Zero(t, sink.Count())

	price, ok := cat.Price("Pen")
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.NewFromFloat(1.5)))

	price, ok = cat.Price("Notebook")
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.RequireFromString("3.25")))
}

func TestBuild_ZeroPriceIsValid(t *testing.T) {
	sink := diag.NewRecorder()

	cat := catalogue.Build([]loader.Record{
		{"title": "Flyer", "price": 0.0},
	}, sink)

	price, ok := cat.Price("Flyer")
	require.True(t, ok)
	assert.True(t, price.IsZero())
	assert.Zero(t, sink.Count())
}

func TestBuild_DuplicateTitleOverridesSilently(t *testing.T) {
	sink := diag.NewRecorder()

	cat := catalogue.Build([]loader.Record{
		{"title": "Pen", "price": 1.5},
		{"title": "Pen", "price": 2.0},
	}, sink)

	require.Len(t, cat, 1)
	assert.Zero(t, sink.Count(), "duplicate titles must not warn")

	price, _ := cat.Price("Pen")
	assert.True(t, price.Equal(decimal.NewFromInt(2)), "later record wins")
}

// =============================================================================
// SKIPPED RECORDS
// =============================================================================

func TestBuild_SkipsRecordWithoutTitle(t *testing.T) {
	sink := diag.NewRecorder()

	cat := catalogue.Build([]loader.Record{
		{"price": 1.0},
		{"title": "", "price": 1.0},
		{"title": nil, "price": 1.0},
	}, sink)

	assert.Empty(t, cat)
	assert.Equal(t, 3, sink.CountReason(diag.ReasonMissingTitle))
}

func TestBuild_SkipsRecordWithoutPrice(t *testing.T) {
	sink := diag.NewRecorder()

	cat := catalogue.Build([]loader.Record{
		{"title": "Pen"},
		{"title": "Pencil", "price": nil}, // explicit null counts as absent
	}, sink)

	assert.Empty(t, cat)
	assert.Equal(t, 2, sink.CountReason(diag.ReasonMissingPrice))
}

func TestBuild_SkipsUnparseablePrice(t *testing.T) {
	sink := diag.NewRecorder()

	cat := catalogue.Build([]loader.Record{
		{"title": "Pen", "price": "abc"},
		{"title": "Pencil", "price": []any{1.5}},
	}, sink)

	assert.Empty(t, cat)
	require.Equal(t, 2, sink.CountReason(diag.ReasonInvalidPrice))
	assert.Equal(t, "Pen", sink.Warnings[0].Subject)
}

func TestBuild_SkipsNegativePrice(t *testing.T) {
	sink := diag.NewRecorder()

	cat := catalogue.Build([]loader.Record{
		{"title": "Refund", "price": -3.0},
		{"title": "Pen", "price": 1.5},
	}, sink)

	require.Len(t, cat, 1)
	_, ok := cat.Price("Refund")
	assert.False(t, ok, "negative-priced product must not enter the catalogue")
	assert.Equal(t, 1, sink.CountReason(diag.ReasonNegativePrice))
}

func TestBuild_FirstFailingCheckDeterminesReason(t *testing.T) {
	// A record missing both title and price reports only the title.
	sink := diag.NewRecorder()

	catalogue.Build([]loader.Record{{}}, sink)

	require.Equal(t, 1, sink.Count())
	assert.Equal(t, diag.ReasonMissingTitle, sink.Warnings[0].Reason)
}

func TestBuild_EmptyInputYieldsEmptyCatalogue(t *testing.T) {
	cat := catalogue.Build(nil, diag.NewRecorder())
	assert.Empty(t, cat)
}

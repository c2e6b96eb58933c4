package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesmetrics/compute-sales/internal/diag"
)

func TestRecorder_CollectsAndCounts(t *testing.T) {
	rec := diag.NewRecorder()
	rec.Warn(diag.Warning{Stage: diag.StageCatalogue, Reason: diag.ReasonMissingTitle, Index: 0})
	rec.Warn(diag.Warning{Stage: diag.StageSales, Reason: diag.ReasonUnknownProduct, Index: 3})
	rec.Warn(diag.Warning{Stage: diag.StageSales, Reason: diag.ReasonUnknownProduct, Index: 4})

	assert.Equal(t, 3, rec.Count())
	assert.Equal(t, 2, rec.CountReason(diag.ReasonUnknownProduct))
	assert.Equal(t, 1, rec.CountReason(diag.ReasonMissingTitle))
	assert.Zero(t, rec.CountReason(diag.ReasonNegativePrice))
}

func TestMulti_FansOut(t *testing.T) {
	a := diag.NewRecorder()
	b := diag.NewRecorder()
	sink := diag.Multi(a, b)

	sink.Warn(diag.Warning{Reason: diag.ReasonMissingPrice, Index: 7})

	require.Equal(t, 1, a.Count())
	require.Equal(t, 1, b.Count())
	assert.Equal(t, a.Warnings[0], b.Warnings[0])
}

func TestWarning_String(t *testing.T) {
	w := diag.Warning{Message: "product at index 2 has no title, skipping"}
	assert.Equal(t, "Warning: product at index 2 has no title, skipping", w.String())
}

func TestNewLogger_RejectsInvalidLevel(t *testing.T) {
	_, err := diag.NewLogger("loud", false)
	assert.Error(t, err)
}

func TestNewLogger_ValidLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		log, err := diag.NewLogger(level, false)
		require.NoError(t, err, "level %s", level)
		require.NotNil(t, log)
	}
}

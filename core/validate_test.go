package core

import (
	"testing"

	"github.com/huangsam/secpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidateField tests single-field validation in check order.
func TestValidateField(t *testing.T) {
	pct := schema.FieldSchema{Key: "p", Label: "Patch compliance (%)", Kind: schema.PercentageField}
	cnt := schema.FieldSchema{Key: "c", Label: "Total alerts", Kind: schema.CountField}
	cur := schema.FieldSchema{Key: "m", Label: "Annual budget", Kind: schema.CurrencyField}

	t.Run("required", func(t *testing.T) {
		assert.Equal(t, "Total alerts is required", ValidateField(cnt, ""))
		assert.Equal(t, "Total alerts is required", ValidateField(cnt, "   "))
	})

	t.Run("numeric", func(t *testing.T) {
		assert.Equal(t, "Total alerts must be a valid number", ValidateField(cnt, "abc"))
		assert.Equal(t, "Total alerts must be a valid number", ValidateField(cnt, "12x"))
		// ParseFloat accepts NaN and Inf spellings; both must be rejected.
		assert.Equal(t, "Total alerts must be a valid number", ValidateField(cnt, "NaN"))
		assert.Equal(t, "Total alerts must be a valid number", ValidateField(cnt, "+Inf"))
	})

	t.Run("percentage range", func(t *testing.T) {
		assert.Equal(t, "Patch compliance (%) must be between 0 and 100", ValidateField(pct, "-1"))
		assert.Equal(t, "Patch compliance (%) must be between 0 and 100", ValidateField(pct, "100.5"))
		assert.Empty(t, ValidateField(pct, "0"))
		assert.Empty(t, ValidateField(pct, "100"))
	})

	t.Run("count and currency reject negatives only", func(t *testing.T) {
		assert.Equal(t, "Total alerts must be non-negative", ValidateField(cnt, "-3"))
		assert.Equal(t, "Annual budget must be non-negative", ValidateField(cur, "-0.01"))
		// Fractional counts are fine: averages produce them.
		assert.Empty(t, ValidateField(cnt, "2.5"))
		assert.Empty(t, ValidateField(cur, "125000.50"))
		assert.Empty(t, ValidateField(cnt, "1e4"))
	})
}

// TestValidateStep tests fail-fast step validation.
func TestValidateStep(t *testing.T) {
	step := schema.Step{
		Title: "Fleet",
		Fields: []schema.FieldSchema{
			{Key: "total", Label: "Total endpoints", Kind: schema.CountField},
			{Key: "monitored", Label: "Monitored endpoints", Kind: schema.CountField},
			{Key: "patch", Label: "Patch compliance (%)", Kind: schema.PercentageField},
		},
		Rules: []schema.CrossFieldRule{
			{
				Fields:  []string{"monitored", "total"},
				Message: "Monitored endpoints cannot exceed total endpoints",
				Check:   func(v map[string]float64) bool { return v["monitored"] <= v["total"] },
			},
		},
	}

	t.Run("all valid", func(t *testing.T) {
		res := ValidateStep(step, schema.RawInputs{"total": "100", "monitored": "80", "patch": "95"})
		assert.True(t, res.OK)
		assert.Empty(t, res.Violations)
	})

	t.Run("first violation wins", func(t *testing.T) {
		// Second field blank AND third field out of range: only the earlier
		// field's violation is reported.
		res := ValidateStep(step, schema.RawInputs{"total": "100", "monitored": "", "patch": "150"})
		assert.False(t, res.OK)
		require.Len(t, res.Violations, 1)
		assert.Equal(t, "Monitored endpoints is required", res.First())
	})

	t.Run("field violations precede rule violations", func(t *testing.T) {
		res := ValidateStep(step, schema.RawInputs{"total": "abc", "monitored": "200", "patch": "95"})
		assert.False(t, res.OK)
		assert.Equal(t, "Total endpoints must be a valid number", res.First())
	})

	t.Run("cross-field rule", func(t *testing.T) {
		res := ValidateStep(step, schema.RawInputs{"total": "100", "monitored": "150", "patch": "95"})
		assert.False(t, res.OK)
		assert.Equal(t, "Monitored endpoints cannot exceed total endpoints", res.First())
	})

	t.Run("boundary satisfies rule", func(t *testing.T) {
		res := ValidateStep(step, schema.RawInputs{"total": "100", "monitored": "100", "patch": "95"})
		assert.True(t, res.OK)
	})
}

// TestRuleApplies tests that rules are skipped when referenced values are absent.
func TestRuleApplies(t *testing.T) {
	rule := schema.CrossFieldRule{Fields: []string{"a", "b"}}

	assert.True(t, ruleApplies(rule, map[string]float64{"a": 1, "b": 2}))
	assert.False(t, ruleApplies(rule, map[string]float64{"a": 1}))
	assert.False(t, ruleApplies(rule, map[string]float64{}))
}

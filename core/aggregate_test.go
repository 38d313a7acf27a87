package core

import (
	"testing"

	"github.com/huangsam/secpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAssessment() *schema.AssessmentDefinition {
	return &schema.AssessmentDefinition{
		Title: "Posture",
		Options: []schema.AnswerOption{
			{Value: "yes", Label: "Yes", Score: 100},
			{Value: "partial", Label: "Partially", Score: 50},
			{Value: "no", Label: "No", Score: 0},
		},
		Categories: []schema.Category{
			{Name: "Access", Questions: []string{"q1", "q2"}},
			{Name: "Network", Questions: []string{"q1", "q2"}},
		},
	}
}

// TestAggregatorSelect tests selection, replacement and toggling.
func TestAggregatorSelect(t *testing.T) {
	agg := NewAggregator([]*schema.AssessmentDefinition{testAssessment()})

	t.Run("select accumulates", func(t *testing.T) {
		require.NoError(t, agg.Select("Posture", "Access", 0, "yes"))
		require.NoError(t, agg.Select("Posture", "Access", 1, "yes"))
		assert.Equal(t, 200.0, agg.CategoryScore("Posture", "Access"))
	})

	t.Run("replace adjusts by the difference", func(t *testing.T) {
		require.NoError(t, agg.Select("Posture", "Access", 0, "partial"))
		assert.Equal(t, 150.0, agg.CategoryScore("Posture", "Access"))

		v, ok := agg.Selection("Posture", "Access", 0)
		require.True(t, ok)
		assert.Equal(t, "partial", v)
	})

	t.Run("same answer toggles off", func(t *testing.T) {
		require.NoError(t, agg.Select("Posture", "Access", 0, "partial"))
		assert.Equal(t, 100.0, agg.CategoryScore("Posture", "Access"))

		_, ok := agg.Selection("Posture", "Access", 0)
		assert.False(t, ok)
	})

	t.Run("zero-score answers still count as answered", func(t *testing.T) {
		require.NoError(t, agg.Select("Posture", "Network", 0, "no"))
		assert.Equal(t, 0.0, agg.CategoryScore("Posture", "Network"))

		answered, total := agg.Progress("Posture")
		assert.Equal(t, 2, answered)
		assert.Equal(t, 4, total)
	})
}

// TestAggregatorSelectErrors tests rejection of unknown references.
func TestAggregatorSelectErrors(t *testing.T) {
	agg := NewAggregator([]*schema.AssessmentDefinition{testAssessment()})

	assert.Error(t, agg.Select("Nope", "Access", 0, "yes"))
	assert.Error(t, agg.Select("Posture", "Nope", 0, "yes"))
	assert.Error(t, agg.Select("Posture", "Access", 9, "yes"))
	assert.Error(t, agg.Select("Posture", "Access", -1, "yes"))
	assert.Error(t, agg.Select("Posture", "Access", 0, "maybe"))

	// Failed selections must not perturb scores.
	assert.Equal(t, 0.0, agg.CategoryScore("Posture", "Access"))
}

// TestAggregatorReport tests report assembly and overall classification.
func TestAggregatorReport(t *testing.T) {
	agg := NewAggregator([]*schema.AssessmentDefinition{testAssessment()})
	require.NoError(t, agg.Select("Posture", "Access", 0, "yes"))
	require.NoError(t, agg.Select("Posture", "Access", 1, "partial"))
	require.NoError(t, agg.Select("Posture", "Network", 0, "yes"))

	report, err := agg.Report("Posture")
	require.NoError(t, err)

	assert.Equal(t, 250.0, report.Earned)
	assert.Equal(t, 400.0, report.Max)
	assert.Equal(t, 3, report.Answered)
	assert.Equal(t, 4, report.Questions)
	require.Len(t, report.Categories, 2)
	assert.Equal(t, 150.0, report.Categories[0].Earned)
	assert.Equal(t, 2, report.Categories[0].Answered)

	// 250/400 = 62.5% which is a C.
	assert.Equal(t, schema.RankC, report.Overall.Rank)
	assert.InDelta(t, 62.5, report.Overall.Percentage, 1e-9)

	t.Run("unknown assessment", func(t *testing.T) {
		_, err := agg.Report("Nope")
		assert.Error(t, err)
	})
}

// TestAggregatorOverall tests that unattempted assessments are excluded.
func TestAggregatorOverall(t *testing.T) {
	second := testAssessment()
	second.Title = "Cloud"
	agg := NewAggregator([]*schema.AssessmentDefinition{testAssessment(), second})

	require.NoError(t, agg.Select("Posture", "Access", 0, "yes"))
	require.NoError(t, agg.Select("Posture", "Access", 1, "yes"))
	require.NoError(t, agg.Select("Posture", "Network", 0, "yes"))
	require.NoError(t, agg.Select("Posture", "Network", 1, "yes"))

	// Cloud untouched: overall max counts only Posture's 400 points.
	overall := agg.Overall()
	assert.Equal(t, schema.RankS, overall.Rank)
	assert.InDelta(t, 100.0, overall.Percentage, 1e-9)

	// One Cloud answer pulls Cloud's full maximum into the denominator.
	require.NoError(t, agg.Select("Cloud", "Access", 0, "no"))
	overall = agg.Overall()
	assert.InDelta(t, 50.0, overall.Percentage, 1e-9)
	assert.Equal(t, schema.RankD, overall.Rank)
}

// TestAggregatorReset tests the full state replacement.
func TestAggregatorReset(t *testing.T) {
	agg := NewAggregator([]*schema.AssessmentDefinition{testAssessment()})
	require.NoError(t, agg.Select("Posture", "Access", 0, "yes"))

	agg.Reset("Posture")

	assert.Equal(t, 0.0, agg.CategoryScore("Posture", "Access"))
	assert.False(t, agg.Attempted("Posture"))

	// The aggregator stays usable after a reset.
	require.NoError(t, agg.Select("Posture", "Access", 0, "partial"))
	assert.Equal(t, 50.0, agg.CategoryScore("Posture", "Access"))
}

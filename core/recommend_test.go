package core

import (
	"testing"

	"github.com/huangsam/secpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestApplyRules tests that every firing rule contributes advice.
func TestApplyRules(t *testing.T) {
	rules := []RecommendRule{
		{
			When:     func(v map[string]float64) bool { return v["fpRate"] > 40 },
			Severity: schema.HighSeverity,
			Message:  "Tune noisy rules.",
		},
		{
			When:     func(v map[string]float64) bool { return v["triage"] < 50 },
			Severity: schema.MediumSeverity,
			Message:  "Add playbooks.",
		},
		{
			When:     func(v map[string]float64) bool { return v["escalation"] > 30 },
			Severity: schema.LowSeverity,
			Message:  "Empower tier one.",
		},
	}

	t.Run("none fire", func(t *testing.T) {
		recs := ApplyRules(rules, map[string]float64{"fpRate": 10, "triage": 80, "escalation": 5})
		assert.Empty(t, recs)
	})

	t.Run("all fire, not first-match", func(t *testing.T) {
		recs := ApplyRules(rules, map[string]float64{"fpRate": 60, "triage": 20, "escalation": 50})
		require.Len(t, recs, 3)
		assert.Equal(t, schema.HighSeverity, recs[0].Severity)
		assert.Equal(t, schema.LowSeverity, recs[2].Severity)
	})

	t.Run("declaration order preserved", func(t *testing.T) {
		recs := ApplyRules(rules, map[string]float64{"fpRate": 60, "triage": 20, "escalation": 0})
		require.Len(t, recs, 2)
		assert.Equal(t, "Tune noisy rules.", recs[0].Message)
		assert.Equal(t, "Add playbooks.", recs[1].Message)
	})
}

// TestRegistry tests the shared metrics registry.
func TestRegistry(t *testing.T) {
	r := NewMetricsRegistry()

	m1 := schema.NewMetrics()
	m1.Values["composite"] = 80
	r.Record("alerts", m1)

	m2 := schema.NewMetrics()
	m2.Values["composite"] = 60
	r.Record("coverage", m2)

	t.Run("names sorted", func(t *testing.T) {
		assert.Equal(t, []string{"alerts", "coverage"}, r.Names())
	})

	t.Run("record replaces", func(t *testing.T) {
		m3 := schema.NewMetrics()
		m3.Values["composite"] = 90
		r.Record("alerts", m3)
		assert.Equal(t, 90.0, r.Snapshot()["alerts"].Values["composite"])
	})

	t.Run("snapshot is a copy", func(t *testing.T) {
		snap := r.Snapshot()
		delete(snap, "alerts")
		assert.Len(t, r.Names(), 2)
	})

	t.Run("clear", func(t *testing.T) {
		r.Clear()
		assert.Empty(t, r.Names())
	})
}

package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/secpulse/internal/contract"
	"github.com/huangsam/secpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDefinition() *schema.CalculatorDefinition {
	return &schema.CalculatorDefinition{
		Name:  "alerts",
		Title: "Alert Triage Efficiency",
	}
}

func sampleMetrics() schema.Metrics {
	m := schema.NewMetrics()
	m.Values["composite"] = 71
	m.Values["accuracy"] = 80
	m.Values["fpRate"] = 20
	m.Labels["composite"] = schema.FairStatus
	m.Labels["accuracy"] = schema.GoodStatus
	m.Recommendations = []schema.Recommendation{
		{Severity: schema.MediumSeverity, Message: "Tune detection rules to cut false positives"},
	}
	return m
}

func TestWriteMetricsTable(t *testing.T) {
	cfg := &contract.Config{
		Output:    schema.TextOut,
		Precision: 1,
		UseColors: false,
		Width:     120,
	}

	var buf bytes.Buffer
	err := writeMetricsTable(&buf, sampleDefinition(), sampleMetrics(), cfg, createFormatter(cfg.Precision), 100*time.Millisecond)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Alert Triage Efficiency")
	assert.Contains(t, output, "composite")
	assert.Contains(t, output, "71.0")
	assert.Contains(t, output, "Fair")
	assert.Contains(t, output, "Recommendations:")
	assert.Contains(t, output, "[medium] Tune detection rules to cut false positives")
	assert.Contains(t, output, "Evaluated 3 metrics")

	// The composite row must come before the alphabetical rest.
	assert.Less(t, strings.Index(output, "composite"), strings.Index(output, "accuracy"))
}

func TestWriteMetricsCSV(t *testing.T) {
	var buf bytes.Buffer
	err := writeMetricsCSV(&buf, sampleDefinition(), sampleMetrics(), createFormatter(1))
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // header plus three metrics

	assert.Equal(t, []string{"calculator", "metric", "value", "status"}, records[0])
	assert.Equal(t, []string{"alerts", "composite", "71.0", "Fair"}, records[1])
	assert.Equal(t, []string{"alerts", "accuracy", "80.0", "Good"}, records[2])
	assert.Equal(t, []string{"alerts", "fpRate", "20.0", ""}, records[3])
}

func TestWriteMetricsJSON(t *testing.T) {
	var buf bytes.Buffer
	err := writeMetricsJSON(&buf, sampleDefinition(), sampleMetrics())
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))

	assert.Equal(t, "alerts", result["calculator"])
	assert.Equal(t, "Alert Triage Efficiency", result["title"])
	values := result["values"].(map[string]any)
	assert.Equal(t, 71.0, values["composite"])
	labels := result["labels"].(map[string]any)
	assert.Equal(t, "Fair", labels["composite"])
}

// Package parquet exports secpulse metric snapshots and evaluation history
// to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/secpulse/schema"
	"github.com/parquet-go/parquet-go"
)

// MetricRow represents one derived metric from a calculator evaluation.
type MetricRow struct {
	// Calculator is the calculator that produced the metric
	Calculator string `parquet:"calculator,snappy"`

	// Metric is the derived metric name
	Metric string `parquet:"metric,snappy"`

	// Value is the derived metric value
	Value float64 `parquet:"value,snappy"`

	// Status is the qualitative label for the metric, empty when unlabeled
	Status string `parquet:"status,snappy"`

	// ExportTime is when the export was produced
	ExportTime time.Time `parquet:"export_time,snappy"`
}

// EvaluationRow represents one stored evaluation from the history store.
type EvaluationRow struct {
	// ID is the history store row identifier
	ID int64 `parquet:"id,snappy"`

	// Calculator is the calculator that was evaluated
	Calculator string `parquet:"calculator,snappy"`

	// Composite is the clamped composite score
	Composite float64 `parquet:"composite,snappy"`

	// Status is the composite's qualitative label
	Status string `parquet:"status,snappy"`

	// CreatedAt is when the evaluation was recorded
	CreatedAt time.Time `parquet:"created_at,snappy"`
}

// ExportMetrics writes one evaluation's derived metrics to a Parquet file.
func ExportMetrics(path, calculator string, m schema.Metrics) error {
	now := time.Now().UTC()
	rows := make([]MetricRow, 0, len(m.Values))
	for name, value := range m.Values {
		status := ""
		if label, ok := m.Labels[name]; ok {
			status = string(label)
		}
		rows = append(rows, MetricRow{
			Calculator: calculator,
			Metric:     name,
			Value:      value,
			Status:     status,
			ExportTime: now,
		})
	}
	return writeRows(path, rows)
}

// ReportRow represents one category from a scored assessment report.
type ReportRow struct {
	// Assessment is the assessment title
	Assessment string `parquet:"assessment,snappy"`

	// Category is the category name, or "overall:<rank>" for the summary row
	Category string `parquet:"category,snappy"`

	// Answered is how many questions were answered
	Answered int32 `parquet:"answered,snappy"`

	// Total is how many questions the category holds
	Total int32 `parquet:"total,snappy"`

	// Earned is the points earned
	Earned float64 `parquet:"earned,snappy"`

	// Max is the points available
	Max float64 `parquet:"max,snappy"`

	// ExportTime is when the export was produced
	ExportTime time.Time `parquet:"export_time,snappy"`
}

// ExportReport writes one scored assessment report to a Parquet file, one
// row per category plus a final overall row.
func ExportReport(path string, report schema.AssessmentReport) error {
	now := time.Now().UTC()
	rows := make([]ReportRow, 0, len(report.Categories)+1)
	for _, cat := range report.Categories {
		rows = append(rows, ReportRow{
			Assessment: report.Title,
			Category:   cat.Name,
			Answered:   int32(cat.Answered),
			Total:      int32(cat.Total),
			Earned:     cat.Earned,
			Max:        cat.Max,
			ExportTime: now,
		})
	}
	rows = append(rows, ReportRow{
		Assessment: report.Title,
		Category:   "overall:" + string(report.Overall.Rank),
		Answered:   int32(report.Answered),
		Total:      int32(report.Questions),
		Earned:     report.Earned,
		Max:        report.Max,
		ExportTime: now,
	})
	return writeRows(path, rows)
}

// ExportEvaluations writes history store evaluations to a Parquet file.
func ExportEvaluations(path string, recs []schema.EvaluationRecord) error {
	rows := make([]EvaluationRow, len(recs))
	for i, rec := range recs {
		rows[i] = EvaluationRow{
			ID:         rec.ID,
			Calculator: rec.Calculator,
			Composite:  rec.Composite,
			Status:     string(rec.Status),
			CreatedAt:  rec.CreatedAt,
		}
	}
	return writeRows(path, rows)
}

// writeRows writes any row slice to a Parquet file with snappy compression.
func writeRows[T any](path string, rows []T) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

package schema

import "time"

// HistoryStatus reports status information about the evaluation history store.
type HistoryStatus struct {
	Backend        string    `json:"backend"`
	Connected      bool      `json:"connected"`
	TotalRuns      int       `json:"total_runs"`
	LastRunTime    time.Time `json:"last_run_time"`
	OldestRunTime  time.Time `json:"oldest_run_time"`
	TableSizeBytes int64     `json:"table_size_bytes"`
}

// EvaluationRecord is one stored calculator evaluation.
type EvaluationRecord struct {
	ID         int64              `json:"id"`
	Calculator string             `json:"calculator"`
	Composite  float64            `json:"composite"`
	Status     StatusLabel        `json:"status"`
	Values     map[string]float64 `json:"values"`
	CreatedAt  time.Time          `json:"created_at"`
}

// ReportRecord is one stored assessment report.
type ReportRecord struct {
	ID         int64     `json:"id"`
	Assessment string    `json:"assessment"`
	Percentage float64   `json:"percentage"`
	Rank       Rank      `json:"rank"`
	CreatedAt  time.Time `json:"created_at"`
}

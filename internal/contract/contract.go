// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"github.com/huangsam/secpulse/schema"
)

// HistoryStore defines the interface for recording and querying evaluation
// history. This allows the persistence layer to be mocked for testing and
// disabled entirely with the "none" backend.
type HistoryStore interface {
	// RecordEvaluation stores one calculator evaluation and returns its ID.
	RecordEvaluation(rec schema.EvaluationRecord) (int64, error)

	// RecordReport stores one assessment report and returns its ID.
	RecordReport(rec schema.ReportRecord) (int64, error)

	// ListEvaluations returns the most recent evaluations, newest first.
	ListEvaluations(limit int) ([]schema.EvaluationRecord, error)

	// ListReports returns the most recent assessment reports, newest first.
	ListReports(limit int) ([]schema.ReportRecord, error)

	// GetStatus returns status information about the store.
	GetStatus() (schema.HistoryStatus, error)

	// Clear removes all stored history.
	Clear() error

	// Close releases the underlying resources.
	Close() error
}

// ChatClient defines the upstream completion call used by the chat endpoint.
// Implementations must map any transport failure to (fallback, false)
// rather than surfacing errors to callers.
type ChatClient interface {
	Complete(message string) (completion string, ok bool)
}

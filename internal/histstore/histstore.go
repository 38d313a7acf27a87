// Package histstore persists evaluation and assessment history to a local
// or remote database. The "none" backend is a no-op so the rest of the
// program never branches on whether history is enabled.
package histstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/huangsam/secpulse/internal/contract"
	"github.com/huangsam/secpulse/schema"
)

// GetHistoryDBFilePath returns the default SQLite database location,
// creating the parent directory if needed.
func GetHistoryDBFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".secpulse-history.db"
	}
	dir := filepath.Join(home, ".secpulse")
	_ = os.MkdirAll(dir, 0o755)
	return filepath.Join(dir, "history.db")
}

// Open creates a history store for the given backend. An empty connection
// string with the sqlite backend uses the default file path.
func Open(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	switch backend {
	case schema.NoneBackend:
		return &NoopStore{}, nil
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend:
		return newSQLStore(backend, connStr)
	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}
}

// NoopStore discards all history operations.
type NoopStore struct{}

var _ contract.HistoryStore = &NoopStore{} // Compile-time check

// RecordEvaluation is a no-op.
func (s *NoopStore) RecordEvaluation(schema.EvaluationRecord) (int64, error) { return 0, nil }

// RecordReport is a no-op.
func (s *NoopStore) RecordReport(schema.ReportRecord) (int64, error) { return 0, nil }

// ListEvaluations returns no records.
func (s *NoopStore) ListEvaluations(int) ([]schema.EvaluationRecord, error) { return nil, nil }

// ListReports returns no records.
func (s *NoopStore) ListReports(int) ([]schema.ReportRecord, error) { return nil, nil }

// GetStatus reports a disconnected store.
func (s *NoopStore) GetStatus() (schema.HistoryStatus, error) {
	return schema.HistoryStatus{Backend: string(schema.NoneBackend)}, nil
}

// Clear is a no-op.
func (s *NoopStore) Clear() error { return nil }

// Close is a no-op.
func (s *NoopStore) Close() error { return nil }

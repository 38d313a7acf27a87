package histstore_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/secpulse/internal/contract"
	"github.com/huangsam/secpulse/internal/histstore"
	"github.com/huangsam/secpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTempStore(t *testing.T) contract.HistoryStore {
	t.Helper()
	store, err := histstore.Open(schema.SQLiteBackend, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// TestSQLStoreEvaluations tests the evaluation round trip against SQLite.
func TestSQLStoreEvaluations(t *testing.T) {
	store := openTempStore(t)

	first, err := store.RecordEvaluation(schema.EvaluationRecord{
		Calculator: "alerts",
		Composite:  71,
		Status:     schema.FairStatus,
		Values:     map[string]float64{"composite": 71, "accuracy": 80},
	})
	require.NoError(t, err)
	assert.Positive(t, first)

	second, err := store.RecordEvaluation(schema.EvaluationRecord{
		Calculator: "coverage",
		Composite:  91.7,
		Status:     schema.ExcellentStatus,
		Values:     map[string]float64{"composite": 91.7},
		CreatedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Greater(t, second, first)

	t.Run("newest first", func(t *testing.T) {
		recs, err := store.ListEvaluations(10)
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, "coverage", recs[0].Calculator)
		assert.Equal(t, "alerts", recs[1].Calculator)
		assert.Equal(t, schema.FairStatus, recs[1].Status)
		assert.InDelta(t, 80, recs[1].Values["accuracy"], 1e-9)
	})

	t.Run("limit applies", func(t *testing.T) {
		recs, err := store.ListEvaluations(1)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "coverage", recs[0].Calculator)
	})

	t.Run("non-positive limit means all rows", func(t *testing.T) {
		recs, err := store.ListEvaluations(0)
		require.NoError(t, err)
		assert.Len(t, recs, 2)
	})
}

// TestSQLStoreReports tests the assessment report round trip.
func TestSQLStoreReports(t *testing.T) {
	store := openTempStore(t)

	id, err := store.RecordReport(schema.ReportRecord{
		Assessment: "Security Posture Assessment",
		Percentage: 62.5,
		Rank:       schema.RankC,
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	recs, err := store.ListReports(10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Security Posture Assessment", recs[0].Assessment)
	assert.InDelta(t, 62.5, recs[0].Percentage, 1e-9)
	assert.Equal(t, schema.RankC, recs[0].Rank)
	assert.False(t, recs[0].CreatedAt.IsZero())
}

// TestSQLStoreStatusAndClear tests status reporting and the clear operation.
func TestSQLStoreStatusAndClear(t *testing.T) {
	store := openTempStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, string(schema.SQLiteBackend), status.Backend)
	assert.Zero(t, status.TotalRuns)

	_, err = store.RecordEvaluation(schema.EvaluationRecord{Calculator: "cost", Composite: 85, Status: schema.GoodStatus})
	require.NoError(t, err)
	_, err = store.RecordReport(schema.ReportRecord{Assessment: "Cloud Security Assessment", Percentage: 50, Rank: schema.RankD})
	require.NoError(t, err)

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalRuns)

	require.NoError(t, store.Clear())

	recs, err := store.ListEvaluations(0)
	require.NoError(t, err)
	assert.Empty(t, recs)
	reports, err := store.ListReports(0)
	require.NoError(t, err)
	assert.Empty(t, reports)
}

// TestNoopStore tests that the disabled backend swallows everything.
func TestNoopStore(t *testing.T) {
	store := &histstore.NoopStore{}

	id, err := store.RecordEvaluation(schema.EvaluationRecord{Calculator: "alerts"})
	require.NoError(t, err)
	assert.Zero(t, id)

	recs, err := store.ListEvaluations(10)
	require.NoError(t, err)
	assert.Empty(t, recs)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.Equal(t, string(schema.NoneBackend), status.Backend)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Close())
}

// TestOpenUnsupportedBackend tests backend dispatch.
func TestOpenUnsupportedBackend(t *testing.T) {
	_, err := histstore.Open(schema.DatabaseBackend("oracle"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}

package cmd

import (
	"fmt"

	"github.com/huangsam/secpulse/internal/contract"
	"github.com/huangsam/secpulse/internal/histstore"
	"github.com/huangsam/secpulse/internal/outwriter"
	"github.com/huangsam/secpulse/internal/parquet"
	"github.com/huangsam/secpulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads minimal configuration needed for history operations.
// This avoids the full shared setup (ladder overrides, serve config) for
// simple store management commands.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Get output-related config values (used by list/export commands)
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Precision = viper.GetInt("precision")
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	store, err := histstore.Open(backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}
	historyStore = store

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT open the store or create tables,
// allowing migrations to run on a fresh database.
func historyMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = histstore.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for migrate command.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// historyCmd focused on evaluation history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage stored evaluation and assessment history",
	Long: `Manage the history of calculator evaluations and assessment reports.

When enabled, SecPulse records every evaluation, storing:
- The calculator name and all derived metric values
- The composite score and its status label
- Assessment percentages and letter ranks

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show history storage statistics
  list    - List recent evaluations or reports
  export  - Export data to Parquet for analytics
  clear   - Remove all history
  migrate - Run database schema migrations

Examples:
  # Check history status
  secpulse history status

  # Export for analysis in pandas/DuckDB
  secpulse history export --output-file history.parquet`,
}

// historyStatusCmd shows history storage status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history storage statistics and connection details",
	Long: `Show detailed information about the history store.

Displays:
- Backend type and connection status
- Total evaluations and reports stored
- Database table sizes

Examples:
  # Check history storage status
  secpulse history status`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := historyStore.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		histstore.PrintHistoryStatus(status)
	},
}

// historyListCmd lists recent history records.
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent calculator evaluations or assessment reports",
	Long: `List the most recent history records, newest first.

By default, calculator evaluations are shown. Pass --reports to list
assessment reports instead.

Examples:
  # Last 25 evaluations
  secpulse history list

  # Last 5 assessment reports as JSON
  secpulse history list --reports --limit 5 --output json`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		limit := viper.GetInt("limit")
		if viper.GetBool("reports") {
			recs, err := historyStore.ListReports(limit)
			if err != nil {
				contract.LogFatal("Failed to list reports", err)
			}
			if err := outwriter.WriteReportHistory(recs, cfg); err != nil {
				contract.LogFatal("Failed to write reports", err)
			}
			return
		}
		recs, err := historyStore.ListEvaluations(limit)
		if err != nil {
			contract.LogFatal("Failed to list evaluations", err)
		}
		if err := outwriter.WriteEvaluationHistory(recs, cfg); err != nil {
			contract.LogFatal("Failed to write evaluations", err)
		}
	},
}

// historyExportCmd exports history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export historical evaluations to Parquet for BI tools",
	Long: `Export all stored calculator evaluations to Parquet format.

Parquet enables fast querying with DuckDB, Apache Spark and pandas, and
direct import into BI tools.

Requires: --output-file parameter

Examples:
  # Export all evaluations
  secpulse history export --output-file secpulse-history.parquet

  # Use with DuckDB for trend analysis
  duckdb -c "SELECT * FROM read_parquet('secpulse-history.parquet') LIMIT 10"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.OutputFile == "" {
			contract.LogFatal("Failed to export history", fmt.Errorf("--output-file is required"))
		}
		recs, err := historyStore.ListEvaluations(0)
		if err != nil {
			contract.LogFatal("Failed to load evaluations", err)
		}
		if err := parquet.ExportEvaluations(cfg.OutputFile, recs); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
		fmt.Printf("💾 Exported %d evaluations to %s\n", len(recs), cfg.OutputFile)
	},
}

// historyClearCmd clears the history data.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored evaluation and report history",
	Long: `Delete all stored evaluations and assessment reports.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  secpulse history export --output-file backup.parquet
  secpulse history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := historyStore.Clear(); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("History cleared successfully.")
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  secpulse history migrate

  # Rollback to initial state
  secpulse history migrate --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := histstore.Migrate(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}

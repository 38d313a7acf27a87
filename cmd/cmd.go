// Package cmd defines the command-line interface for secpulse.
package cmd

import (
	"github.com/huangsam/secpulse/internal/contract"
	"github.com/huangsam/secpulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(wizardCmd)
	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.SQLiteBackend), "History backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of calcCmd to Viper
	calcCmd.Flags().StringP("input", "i", "", "JSON file mapping field keys to raw values (blank fields use defaults)")
	if err := viper.BindPFlags(calcCmd.Flags()); err != nil {
		contract.LogFatal("Error binding calc flags", err)
	}

	// Bind all flags of assessCmd to Viper
	assessCmd.Flags().StringP("answers", "a", "", "JSON file mapping category names to answer values, one per question")
	assessCmd.Flags().String("rank-floor", "", "Minimum acceptable rank for CI/CD gating (S, A, B, C, D, E, F)")
	if err := viper.BindPFlags(assessCmd.Flags()); err != nil {
		contract.LogFatal("Error binding assess flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultServeAddr, "Listen address for the HTTP API")
	serveCmd.Flags().String("chat-upstream", "", "Upstream URL for chat completions (empty disables the proxy)")
	serveCmd.Flags().String("email-upstream", "", "Upstream URL for contact form delivery (empty accepts and discards)")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of historyListCmd to Viper
	historyListCmd.Flags().IntP("limit", "l", contract.DefaultHistoryList, "Number of records to display")
	historyListCmd.Flags().Bool("reports", false, "List assessment reports instead of calculator evaluations")
	if err := viper.BindPFlags(historyListCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history list flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}

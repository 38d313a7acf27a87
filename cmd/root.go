package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/huangsam/secpulse/internal/contract"
	"github.com/huangsam/secpulse/internal/histstore"
	"github.com/huangsam/secpulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// historyStore is the global history persistence instance. It starts as a
// no-op so commands that never reach sharedSetup can still run.
var historyStore contract.HistoryStore = &histstore.NoopStore{}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "secpulse",
	Short:              "Score your security operations with calculators and assessments.",
	Long:               `SecPulse turns raw SOC counters into normalized efficiency scores, status labels and a letter rank for your overall posture.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Set environment variable prefix
	viper.SetEnvPrefix("SECPULSE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("color", "yes")
	viper.SetDefault("history-backend", schema.SQLiteBackend)
	viper.SetDefault("history-db-connect", "")
	viper.SetDefault("addr", contract.DefaultServeAddr)
	viper.SetDefault("limit", contract.DefaultHistoryList)
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".secpulse") // Name of config file (without extension)
		viper.SetConfigType("yaml")      // We'll use YAML format
		viper.AddConfigPath(".")         // Look in the current directory
		viper.AddConfigPath("$HOME")     // Look in the home directory
	}

	// Load config file if present
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	return nil
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ context.Context, _ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	// This function now populates the global 'cfg' from 'input'.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// 4. Apply any config-file status ladder overrides before scoring.
	applyLadderOverrides(cfg.StatusOverrides)

	// 5. Initialize history persistence with validated config.
	store, err := histstore.Open(cfg.HistoryBackend, cfg.HistoryDBConnect)
	if err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}
	historyStore = store

	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// applyLadderOverrides swaps the built-in status cut points for any ladder
// families the config file overrode.
func applyLadderOverrides(overrides map[string]schema.StatusLadder) {
	if l, ok := overrides["default"]; ok {
		schema.DefaultLadder = l
	}
	if l, ok := overrides["coverage"]; ok {
		schema.CoverageLadder = l
	}
	if l, ok := overrides["time"]; ok {
		schema.TimeLadder = l
	}
	if l, ok := overrides["cost"]; ok {
		schema.CostLadder = l
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

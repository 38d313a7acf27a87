package cmd

import (
	"github.com/huangsam/secpulse/core/catalog"
	"github.com/huangsam/secpulse/internal/contract"
	"github.com/huangsam/secpulse/internal/outwriter"
	"github.com/spf13/cobra"
)

// catalogCmd lists the built-in calculators and assessments.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the available calculators and assessments.",
	Long: `Show every built-in calculator and assessment with its steps, field
counts and categories.

No scoring is performed - this is purely informational.

Examples:
  # Human-readable catalog
  secpulse catalog

  # Feed the catalog to other tooling
  secpulse catalog --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := outwriter.WriteCatalog(catalog.Calculators(), catalog.Assessments(), cfg); err != nil {
			contract.LogFatal("Cannot list catalog", err)
		}
	},
}

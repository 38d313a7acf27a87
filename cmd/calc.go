package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/huangsam/secpulse/core"
	"github.com/huangsam/secpulse/core/catalog"
	"github.com/huangsam/secpulse/internal/contract"
	"github.com/huangsam/secpulse/internal/outwriter"
	"github.com/huangsam/secpulse/schema"
	"github.com/spf13/cobra"
)

// calcCmd evaluates one calculator non-interactively from a JSON input file.
var calcCmd = &cobra.Command{
	Use:   "calc <calculator>",
	Short: "Evaluate a calculator from raw inputs and show derived metrics.",
	Long: `Validate raw field inputs for a calculator, compute its derived metrics,
and print each value with a qualitative status label.

Available calculators:
- alerts:    SOC alert triage efficiency
- incidents: Incident response efficiency
- coverage:  Security tooling coverage
- cost:      Security spend efficiency and ROI

Inputs are read from the --input JSON file; fields left out fall back to
their documented defaults. Validation follows the wizard's rules exactly,
so the first violation aborts the run with a non-zero exit.

Examples:
  # Evaluate alert triage metrics from a file
  secpulse calc alerts --input alerts.json

  # Export results for tracking
  secpulse calc coverage --input cov.json --output csv --output-file cov.csv

  # Columnar export for BI tools
  secpulse calc cost --input cost.json --output parquet --output-file cost.parquet`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := runCalc(args[0]); err != nil {
			contract.LogFatal("Cannot evaluate calculator", err)
		}
	},
}

// loadRawInputs reads a flat key-to-string JSON object. An empty path means
// every field uses its default.
func loadRawInputs(path string) (schema.RawInputs, error) {
	raw := schema.RawInputs{}
	if path == "" {
		return raw, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read input file: %w", err)
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid input JSON: %w", err)
	}
	return raw, nil
}

func runCalc(name string) error {
	def, ok := catalog.Calculator(name)
	if !ok {
		return fmt.Errorf("unknown calculator %q (valid: %s)", name, strings.Join(catalog.CalculatorNames(), ", "))
	}

	raw, err := loadRawInputs(cfg.InputFile)
	if err != nil {
		return err
	}
	core.PrefillDefaults(def, raw)

	for _, step := range def.Steps {
		if res := core.ValidateStep(step, raw); !res.OK {
			return fmt.Errorf("step %q: %s", step.Title, res.First())
		}
	}

	start := time.Now()
	m := core.Evaluate(def, raw)

	if _, err := historyStore.RecordEvaluation(schema.EvaluationRecord{
		Calculator: def.Name,
		Composite:  m.Values[catalog.MetricComposite],
		Status:     m.Labels[catalog.MetricComposite],
		Values:     m.Values,
	}); err != nil {
		contract.LogWarning(fmt.Sprintf("failed to record evaluation: %v", err))
	}

	return outwriter.WriteCalculatorResult(def, m, cfg, time.Since(start))
}

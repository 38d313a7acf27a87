package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/secpulse/core"
	"github.com/huangsam/secpulse/core/catalog"
	"github.com/huangsam/secpulse/internal/contract"
	"github.com/huangsam/secpulse/internal/outwriter"
	"github.com/huangsam/secpulse/schema"
	"github.com/spf13/cobra"
)

// wizardCmd walks through a calculator's steps interactively.
var wizardCmd = &cobra.Command{
	Use:   "wizard <calculator>",
	Short: "Fill in a calculator step by step with live validation.",
	Long: `Walk through a calculator's input steps one page at a time.

Each field shows its label and default; press Enter to accept the default.
Invalid entries are reported immediately and the step will not advance
until every field passes. Type 'back' to return to the previous step.

Examples:
  # Interactive incident response scoring
  secpulse wizard incidents

  # Wizard with CSV export at the end
  secpulse wizard alerts --output csv --output-file alerts.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := runWizard(args[0]); err != nil {
			contract.LogFatal("Cannot run wizard", err)
		}
	},
}

func runWizard(name string) error {
	def, ok := catalog.Calculator(name)
	if !ok {
		return fmt.Errorf("unknown calculator %q (valid: %s)", name, strings.Join(catalog.CalculatorNames(), ", "))
	}

	w := core.NewWizard(def)
	scanner := bufio.NewScanner(os.Stdin)
	start := time.Now()

	fmt.Printf("🧮 %s\n%s\n", def.Title, def.Description)

	for !w.Done() {
		step := w.CurrentStep()
		fmt.Printf("\nStep %d of %d: %s\n", w.StepIndex()+1, len(def.Steps), step.Title)

		switch promptStep(w, step, scanner) {
		case promptEOF:
			return fmt.Errorf("input closed before wizard finished")
		case promptBack:
			// The wizard already stepped back; re-prompt that page.
			continue
		}

		if res := w.Validate(); !res.OK {
			fmt.Printf("❗ %s\n", res.First())
			continue
		}
		w.Next()
	}

	m, _ := w.Result()
	if _, err := historyStore.RecordEvaluation(schema.EvaluationRecord{
		Calculator: def.Name,
		Composite:  m.Values[catalog.MetricComposite],
		Status:     m.Labels[catalog.MetricComposite],
		Values:     m.Values,
	}); err != nil {
		contract.LogWarning(fmt.Sprintf("failed to record evaluation: %v", err))
	}

	fmt.Println()
	return outwriter.WriteCalculatorResult(def, m, cfg, time.Since(start))
}

// Outcomes of prompting one wizard page.
const (
	promptDone = iota
	promptBack
	promptEOF
)

// promptStep collects every field on the current page. Typing 'back' steps
// the wizard to the previous page.
func promptStep(w *core.Wizard, step schema.Step, scanner *bufio.Scanner) int {
	for _, f := range step.Fields {
		for {
			current := w.Input(f.Key)
			if current == "" {
				fmt.Printf("  %s [%g]: ", f.Label, f.Default)
			} else {
				fmt.Printf("  %s [%s]: ", f.Label, current)
			}
			if !scanner.Scan() {
				return promptEOF
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				// Enter keeps the current entry, or takes the default.
				if current != "" {
					break
				}
				line = strconv.FormatFloat(f.Default, 'f', -1, 64)
			}
			if line == "back" {
				if w.Prev() {
					return promptBack
				}
				fmt.Println("  Already on the first step.")
				continue
			}
			if msg := w.SetInput(f.Key, line); msg != "" {
				fmt.Printf("  ❗ %s\n", msg)
				continue
			}
			break
		}
	}
	return promptDone
}

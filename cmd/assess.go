package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/secpulse/core"
	"github.com/huangsam/secpulse/core/catalog"
	"github.com/huangsam/secpulse/internal/contract"
	"github.com/huangsam/secpulse/internal/outwriter"
	"github.com/huangsam/secpulse/schema"
	"github.com/spf13/cobra"
)

// assessCmd scores a questionnaire assessment from an answers file.
var assessCmd = &cobra.Command{
	Use:   "assess <assessment>",
	Short: "Score an assessment from answers and classify the overall rank.",
	Long: `Score a questionnaire assessment from selected answers and classify the
overall percentage into a letter rank from S down to F.

The --answers JSON file maps category names to arrays of answer values
(yes, partial, no), one entry per question in order. An empty string skips
a question; only attempted categories count toward the overall percentage.

With --rank-floor set, the command exits non-zero when the achieved rank
falls below the floor. Use this to gate CI/CD pipelines on posture.

Examples:
  # Score the security posture questionnaire
  secpulse assess "Security Posture" --answers posture.json

  # Gate a pipeline on at least a B rank
  secpulse assess "Security Posture" --answers posture.json --rank-floor B

  # Machine-readable report
  secpulse assess "Cloud Security" --answers cloud.json --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := runAssess(args[0]); err != nil {
			contract.LogFatal("Cannot score assessment", err)
		}
	},
}

// loadAnswers reads the category-to-answers JSON file.
func loadAnswers(path string) (map[string][]string, error) {
	if path == "" {
		return nil, fmt.Errorf("an answers file is required (--answers)")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read answers file: %w", err)
	}
	answers := map[string][]string{}
	if err := json.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("invalid answers JSON: %w", err)
	}
	return answers, nil
}

func runAssess(title string) error {
	def, ok := catalog.Assessment(title)
	if !ok {
		return fmt.Errorf("unknown assessment %q (valid: %s)", title, strings.Join(catalog.AssessmentTitles(), ", "))
	}

	answers, err := loadAnswers(cfg.AnswersFile)
	if err != nil {
		return err
	}

	agg := core.NewAggregator([]*schema.AssessmentDefinition{def})
	for cat, values := range answers {
		for i, v := range values {
			if v == "" {
				continue
			}
			if err := agg.Select(title, cat, i, v); err != nil {
				return fmt.Errorf("invalid selection: %w", err)
			}
		}
	}

	report, err := agg.Report(title)
	if err != nil {
		return err
	}

	if _, err := historyStore.RecordReport(schema.ReportRecord{
		Assessment: title,
		Percentage: report.Overall.Percentage,
		Rank:       report.Overall.Rank,
	}); err != nil {
		contract.LogWarning(fmt.Sprintf("failed to record report: %v", err))
	}

	if err := outwriter.WriteAssessmentReport(report, cfg); err != nil {
		return err
	}

	if cfg.RankFloor != "" && !contract.RankAtLeast(report.Overall.Rank, cfg.RankFloor) {
		fmt.Fprintf(os.Stderr, "❌ Rank %s is below the required floor %s\n", report.Overall.Rank, cfg.RankFloor)
		os.Exit(1)
	}
	return nil
}

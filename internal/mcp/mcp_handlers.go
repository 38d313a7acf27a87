package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/secpulse/core"
	"github.com/huangsam/secpulse/core/catalog"
	"github.com/huangsam/secpulse/internal/contract"
	"github.com/huangsam/secpulse/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   contract.HistoryStore
}

func (h *toolHandler) handleEvaluateCalculator(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("calculator", "")
	def, ok := catalog.Calculator(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown calculator %q", name)), nil
	}

	raw := schema.RawInputs{}
	if s := request.GetString("inputs", ""); s != "" {
		if err := json.Unmarshal([]byte(s), &raw); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid inputs JSON: %v", err)), nil
		}
	}

	core.PrefillDefaults(def, raw)
	for _, step := range def.Steps {
		if res := core.ValidateStep(step, raw); !res.OK {
			return mcp.NewToolResultError(fmt.Sprintf("validation failed: %s", res.First())), nil
		}
	}

	m := core.Evaluate(def, raw)
	if _, err := h.store.RecordEvaluation(schema.EvaluationRecord{
		Calculator: name,
		Composite:  m.Values[catalog.MetricComposite],
		Status:     m.Labels[catalog.MetricComposite],
		Values:     m.Values,
	}); err != nil {
		contract.LogWarning(fmt.Sprintf("failed to record evaluation for %s: %v", name, err))
	}

	jsonData, _ := json.MarshalIndent(m, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleScoreAssessment(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := request.GetString("assessment", "")
	def, ok := catalog.Assessment(title)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown assessment %q", title)), nil
	}

	answers := map[string][]string{}
	if s := request.GetString("answers", ""); s != "" {
		if err := json.Unmarshal([]byte(s), &answers); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid answers JSON: %v", err)), nil
		}
	}

	agg := core.NewAggregator([]*schema.AssessmentDefinition{def})
	for cat, values := range answers {
		for i, v := range values {
			if v == "" {
				continue
			}
			if err := agg.Select(title, cat, i, v); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid selection: %v", err)), nil
			}
		}
	}

	report, err := agg.Report(title)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("report failed: %v", err)), nil
	}
	if _, err := h.store.RecordReport(schema.ReportRecord{
		Assessment: title,
		Percentage: report.Overall.Percentage,
		Rank:       report.Overall.Rank,
	}); err != nil {
		contract.LogWarning(fmt.Sprintf("failed to record report for %s: %v", title, err))
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListCatalog(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type calcEntry struct {
		Name        string `json:"name"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Steps       int    `json:"steps"`
		Fields      int    `json:"fields"`
	}
	type assessEntry struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Categories  int    `json:"categories"`
		Questions   int    `json:"questions"`
	}
	payload := struct {
		Calculators []calcEntry   `json:"calculators"`
		Assessments []assessEntry `json:"assessments"`
	}{}
	for _, def := range catalog.Calculators() {
		payload.Calculators = append(payload.Calculators, calcEntry{
			Name:        def.Name,
			Title:       def.Title,
			Description: def.Description,
			Steps:       len(def.Steps),
			Fields:      def.FieldCount(),
		})
	}
	for _, def := range catalog.Assessments() {
		payload.Assessments = append(payload.Assessments, assessEntry{
			Title:       def.Title,
			Description: def.Description,
			Categories:  len(def.Categories),
			Questions:   def.QuestionCount(),
		})
	}

	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleClassifyRank(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	earned := request.GetFloat("earned", 0)
	max := request.GetFloat("max", 0)

	result := core.Classify(earned, max)
	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

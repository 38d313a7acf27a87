package core

import (
	"math"
	"strconv"
	"strings"

	"github.com/huangsam/secpulse/schema"
)

// ValidateField checks a single raw value against its field schema and
// returns a human-readable violation, or empty when the value passes.
// Check order is fixed: required, then numeric, then kind-specific range.
// This is the live-validation entry point, called on every keystroke.
func ValidateField(f schema.FieldSchema, raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return f.Label + " is required"
	}

	num, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(num) || math.IsInf(num, 0) {
		return f.Label + " must be a valid number"
	}

	switch f.Kind {
	case schema.PercentageField:
		if num < 0 || num > 100 {
			return f.Label + " must be between 0 and 100"
		}
	default: // count and currency reject negatives only; fractional is fine
		if num < 0 {
			return f.Label + " must be non-negative"
		}
	}
	return ""
}

// ValidateStep validates every field of a step in declaration order, then
// the step's cross-field rules in declaration order. Evaluation stops at the
// first violation, so at most one message is ever reported per pass. This is
// the navigation-gating entry point; it shares all rules with ValidateField.
func ValidateStep(step schema.Step, inputs schema.RawInputs) schema.StepResult {
	for _, f := range step.Fields {
		if msg := ValidateField(f, inputs[f.Key]); msg != "" {
			return schema.StepResult{Violations: []string{msg}}
		}
	}

	values := parseStepValues(step, inputs)
	for _, rule := range step.Rules {
		if !ruleApplies(rule, values) {
			continue
		}
		if !rule.Check(values) {
			return schema.StepResult{Violations: []string{rule.Message}}
		}
	}
	return schema.StepResult{OK: true}
}

// parseStepValues collects the parseable numeric values of a step. Fields
// that are blank or non-numeric are simply absent from the result.
func parseStepValues(step schema.Step, inputs schema.RawInputs) map[string]float64 {
	values := make(map[string]float64, len(step.Fields))
	for _, f := range step.Fields {
		raw := strings.TrimSpace(inputs[f.Key])
		if raw == "" {
			continue
		}
		num, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(num) || math.IsInf(num, 0) {
			continue
		}
		values[f.Key] = num
	}
	return values
}

// ruleApplies reports whether every field the rule references is present.
func ruleApplies(rule schema.CrossFieldRule, values map[string]float64) bool {
	for _, key := range rule.Fields {
		if _, ok := values[key]; !ok {
			return false
		}
	}
	return true
}

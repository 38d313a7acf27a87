package core

import (
	"math"
	"strconv"
	"strings"

	"github.com/huangsam/secpulse/schema"
)

// ClampPercent clamps a percentage score to [0, 100]. Efficiency composites
// are always clamped; monetary metrics like ROI are not.
func ClampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Ratio returns part/whole as a percentage, or 0 when the denominator is
// zero. Every divide in the calculators routes through here so a validated
// zero denominator can never blow up a score.
func Ratio(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}

// TimeEfficiency converts a time-based metric to an efficiency score using
// 100 - min(100, actual/baseline*100). Lower times score higher: an actual
// of zero scores exactly 100, and anything at or beyond the baseline scores
// exactly 0.
func TimeEfficiency(actual, baseline float64) float64 {
	if baseline <= 0 {
		return 0
	}
	return 100 - math.Min(100, actual/baseline*100)
}

// WeightedMean combines sub-scores with the given weights and clamps the
// result. Weights are expected to sum to 1; the pairing is positional.
func WeightedMean(scores, weights []float64) float64 {
	var sum float64
	for i, s := range scores {
		sum += s * weights[i]
	}
	return ClampPercent(sum)
}

// PrefillDefaults fills blank or missing raw fields with their declared
// defaults before validation, the same way the wizard pre-populates every
// page before the user edits it. Every non-interactive evaluation surface
// runs this so omitted optional fields never fail as required.
func PrefillDefaults(def *schema.CalculatorDefinition, raw schema.RawInputs) {
	for _, step := range def.Steps {
		for _, f := range step.Fields {
			if strings.TrimSpace(raw[f.Key]) == "" {
				raw[f.Key] = strconv.FormatFloat(f.Default, 'f', -1, 64)
			}
		}
	}
}

// ApplyDefaults converts raw inputs into the numeric inputs a scoring
// function consumes, substituting each field's declared default for blank or
// unparsable values. By contract this only runs after the final step has
// validated, so "unparsable" here covers optional fields the user skipped.
func ApplyDefaults(def *schema.CalculatorDefinition, raw schema.RawInputs) schema.Inputs {
	in := make(schema.Inputs, def.FieldCount())
	for _, step := range def.Steps {
		for _, f := range step.Fields {
			v := strings.TrimSpace(raw[f.Key])
			if v == "" {
				in[f.Key] = f.Default
				continue
			}
			num, err := strconv.ParseFloat(v, 64)
			if err != nil || math.IsNaN(num) || math.IsInf(num, 0) {
				in[f.Key] = f.Default
				continue
			}
			in[f.Key] = num
		}
	}
	return in
}

// Evaluate runs a calculator against raw inputs and returns fresh metrics.
// It never returns an error: the caller guarantees the inputs already passed
// ValidateStep for every step.
func Evaluate(def *schema.CalculatorDefinition, raw schema.RawInputs) schema.Metrics {
	return def.Score(ApplyDefaults(def, raw))
}

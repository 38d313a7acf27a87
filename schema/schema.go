// Package schema has models, typed constants and static tables for all parts of secpulse.
package schema

// FieldSchema describes a single calculator input field. The key is unique
// within its step; the kind drives range validation and the default is
// substituted when the user leaves the field blank.
type FieldSchema struct {
	Key     string    `json:"key"`
	Label   string    `json:"label"`
	Kind    FieldKind `json:"kind"`
	Default float64   `json:"default,omitempty"`
}

// CrossFieldRule is a consistency check spanning multiple fields in one step.
// Check receives parsed values for every key in Fields and returns true when
// the rule holds. The rule is skipped unless all referenced fields parsed.
type CrossFieldRule struct {
	Fields  []string
	Message string
	Check   func(values map[string]float64) bool `json:"-"`
}

// Step groups related fields onto one wizard page, with optional
// cross-field rules evaluated after every field passes on its own.
type Step struct {
	Title  string
	Fields []FieldSchema
	Rules  []CrossFieldRule
}

// RawInputs maps field keys to what the user typed. Empty string means the
// field was left blank.
type RawInputs map[string]string

// Inputs maps field keys to parsed, default-substituted numeric values.
// This is what calculator scoring functions consume.
type Inputs map[string]float64

// Recommendation is a single piece of advice triggered by a metrics rule.
type Recommendation struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Metrics holds the full output of one calculator evaluation: a flat map of
// derived numeric values, qualitative labels per metric family, and the
// recommendations whose predicates fired. It is replaced wholesale on every
// evaluation, never patched.
type Metrics struct {
	Values          map[string]float64     `json:"values"`
	Labels          map[string]StatusLabel `json:"labels"`
	Recommendations []Recommendation       `json:"recommendations,omitempty"`
}

// NewMetrics returns an empty Metrics value ready for population.
func NewMetrics() Metrics {
	return Metrics{
		Values: make(map[string]float64),
		Labels: make(map[string]StatusLabel),
	}
}

// CalculatorDefinition is a static, reusable description of one multi-step
// calculator: its input steps plus a pure scoring function. Definitions hold
// no mutable state and are shared across sessions.
type CalculatorDefinition struct {
	Name        string
	Title       string
	Description string
	Steps       []Step
	Score       func(in Inputs) Metrics
}

// Field returns the schema for a key, searching all steps.
func (d *CalculatorDefinition) Field(key string) (FieldSchema, bool) {
	for _, step := range d.Steps {
		for _, f := range step.Fields {
			if f.Key == key {
				return f, true
			}
		}
	}
	return FieldSchema{}, false
}

// FieldCount returns the total number of fields across all steps.
func (d *CalculatorDefinition) FieldCount() int {
	n := 0
	for _, step := range d.Steps {
		n += len(step.Fields)
	}
	return n
}

// StepResult holds the outcome of validating one step. Violations are in
// field-declaration order followed by rule-declaration order; callers surface
// only the first one.
type StepResult struct {
	OK         bool
	Violations []string
}

// First returns the primary violation message, or empty when the step passed.
func (r StepResult) First() string {
	if len(r.Violations) == 0 {
		return ""
	}
	return r.Violations[0]
}

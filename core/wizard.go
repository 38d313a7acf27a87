package core

import "github.com/huangsam/secpulse/schema"

// Wizard sequences a calculator's steps, gating forward navigation on step
// validation and computing metrics when the final step is submitted. All
// transitions are synchronous no-ops when their precondition fails; the
// wizard never panics and never returns an error.
type Wizard struct {
	def    *schema.CalculatorDefinition
	step   int
	inputs schema.RawInputs
	result *schema.Metrics
}

// NewWizard creates a wizard positioned at the first step with empty inputs.
func NewWizard(def *schema.CalculatorDefinition) *Wizard {
	return &Wizard{def: def, inputs: make(schema.RawInputs)}
}

// Definition returns the calculator this wizard runs.
func (w *Wizard) Definition() *schema.CalculatorDefinition { return w.def }

// StepIndex returns the zero-based index of the current step.
func (w *Wizard) StepIndex() int { return w.step }

// CurrentStep returns the step the wizard is positioned at.
func (w *Wizard) CurrentStep() schema.Step { return w.def.Steps[w.step] }

// Done reports whether the wizard has reached the result state.
func (w *Wizard) Done() bool { return w.result != nil }

// SetInput records a keystroke for a field and returns the live validation
// message for that field, or empty when the value is acceptable. Only the
// current step is re-validated; fields outside it are stored untouched.
func (w *Wizard) SetInput(key, raw string) string {
	w.inputs[key] = raw
	for _, f := range w.CurrentStep().Fields {
		if f.Key == key {
			return ValidateField(f, raw)
		}
	}
	return ""
}

// Input returns the raw value stored for a field key.
func (w *Wizard) Input(key string) string { return w.inputs[key] }

// Validate runs full validation against the current step.
func (w *Wizard) Validate() schema.StepResult {
	return ValidateStep(w.CurrentStep(), w.inputs)
}

// Next advances to the following step when the current one validates. On the
// final step it computes the metrics and moves to the result state instead.
// It returns false, changing nothing, when validation fails or the wizard is
// already done.
func (w *Wizard) Next() bool {
	if w.Done() {
		return false
	}
	if res := w.Validate(); !res.OK {
		return false
	}
	if w.step < len(w.def.Steps)-1 {
		w.step++
		return true
	}
	m := Evaluate(w.def, w.inputs)
	w.result = &m
	return true
}

// Prev moves back one step unconditionally. Going backward never validates
// and never discards entered data. It returns false at the first step or
// once the result is shown.
func (w *Wizard) Prev() bool {
	if w.Done() || w.step == 0 {
		return false
	}
	w.step--
	return true
}

// Reset clears all inputs and any computed result, returning to the first
// step. This is a full state replacement, the "Start Over" action.
func (w *Wizard) Reset() {
	w.step = 0
	w.inputs = make(schema.RawInputs)
	w.result = nil
}

// Result returns the computed metrics once the wizard is done.
func (w *Wizard) Result() (schema.Metrics, bool) {
	if w.result == nil {
		return schema.Metrics{}, false
	}
	return *w.result, true
}

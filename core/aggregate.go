package core

import (
	"fmt"

	"github.com/huangsam/secpulse/schema"
)

// Aggregator tracks per-assessment, per-category, per-question selections
// and maintains running category scores. Selections toggle: choosing the
// same option twice clears the answer. Category scores are adjusted only
// inside Select, which is the single permitted mutation path; the running
// total therefore always equals the sum of the selected options' scores.
//
// State is owned by one session and mutated by synchronous calls only.
type Aggregator struct {
	defs       map[string]*schema.AssessmentDefinition
	selections map[string]map[string]map[int]string
	scores     map[string]map[string]float64
}

// NewAggregator creates an empty aggregator over the given assessment
// definitions, keyed by title.
func NewAggregator(defs []*schema.AssessmentDefinition) *Aggregator {
	byTitle := make(map[string]*schema.AssessmentDefinition, len(defs))
	for _, d := range defs {
		byTitle[d.Title] = d
	}
	return &Aggregator{
		defs:       byTitle,
		selections: make(map[string]map[string]map[int]string),
		scores:     make(map[string]map[string]float64),
	}
}

// Select records an answer for a question, replacing any prior selection.
// Selecting the value already held deselects the question and subtracts its
// score. Unknown assessments, categories, options or out-of-range question
// indices are rejected.
func (a *Aggregator) Select(assessment, category string, question int, value string) error {
	def, ok := a.defs[assessment]
	if !ok {
		return fmt.Errorf("unknown assessment %q", assessment)
	}
	cat, ok := def.Category(category)
	if !ok {
		return fmt.Errorf("unknown category %q in %q", category, assessment)
	}
	if question < 0 || question >= len(cat.Questions) {
		return fmt.Errorf("question index %d out of range for %q", question, category)
	}
	opt, ok := def.Option(value)
	if !ok {
		return fmt.Errorf("unknown option %q in %q", value, assessment)
	}

	catSel := a.categorySelections(assessment, category)
	if prev, answered := catSel[question]; answered {
		prevOpt, _ := def.Option(prev)
		if prev == value {
			// Toggle off: same answer clicked twice clears the question.
			delete(catSel, question)
			a.scores[assessment][category] -= prevOpt.Score
			return nil
		}
		catSel[question] = value
		a.scores[assessment][category] += opt.Score - prevOpt.Score
		return nil
	}

	catSel[question] = value
	a.scores[assessment][category] += opt.Score
	return nil
}

// Selection returns the option value chosen for a question, if any.
func (a *Aggregator) Selection(assessment, category string, question int) (string, bool) {
	catSel, ok := a.selections[assessment][category]
	if !ok {
		return "", false
	}
	v, ok := catSel[question]
	return v, ok
}

// CategoryScore returns the running score for one category.
func (a *Aggregator) CategoryScore(assessment, category string) float64 {
	return a.scores[assessment][category]
}

// Progress returns how many questions have a selection for an assessment,
// regardless of which option was chosen, alongside the question total.
func (a *Aggregator) Progress(assessment string) (answered, total int) {
	def, ok := a.defs[assessment]
	if !ok {
		return 0, 0
	}
	for _, cat := range def.Categories {
		answered += len(a.selections[assessment][cat.Name])
	}
	return answered, def.QuestionCount()
}

// Attempted reports whether the assessment has at least one selection.
func (a *Aggregator) Attempted(assessment string) bool {
	answered, _ := a.Progress(assessment)
	return answered > 0
}

// Report builds the scored report for one assessment, classifying the
// overall percentage against the full question count.
func (a *Aggregator) Report(assessment string) (schema.AssessmentReport, error) {
	def, ok := a.defs[assessment]
	if !ok {
		return schema.AssessmentReport{}, fmt.Errorf("unknown assessment %q", assessment)
	}

	report := schema.AssessmentReport{
		Title:     def.Title,
		Max:       def.MaxScore(),
		Questions: def.QuestionCount(),
	}
	for _, cat := range def.Categories {
		earned := a.scores[assessment][cat.Name]
		report.Categories = append(report.Categories, schema.CategoryReport{
			Name:     cat.Name,
			Answered: len(a.selections[assessment][cat.Name]),
			Total:    len(cat.Questions),
			Earned:   earned,
			Max:      float64(len(cat.Questions)) * 100,
		})
		report.Earned += earned
		report.Answered += len(a.selections[assessment][cat.Name])
	}
	report.Overall = Classify(report.Earned, report.Max)
	return report, nil
}

// Overall classifies the combined score across every attempted assessment.
// The possible maximum counts only assessments with at least one answer.
func (a *Aggregator) Overall() schema.RankResult {
	var earned, max float64
	for title, def := range a.defs {
		if !a.Attempted(title) {
			continue
		}
		max += def.MaxScore()
		for _, cat := range def.Categories {
			earned += a.scores[title][cat.Name]
		}
	}
	return Classify(earned, max)
}

// Reset clears every selection and score for one assessment.
func (a *Aggregator) Reset(assessment string) {
	delete(a.selections, assessment)
	delete(a.scores, assessment)
}

// categorySelections returns the selection map for a category, creating the
// nested maps on first use.
func (a *Aggregator) categorySelections(assessment, category string) map[int]string {
	if a.selections[assessment] == nil {
		a.selections[assessment] = make(map[string]map[int]string)
		a.scores[assessment] = make(map[string]float64)
	}
	if a.selections[assessment][category] == nil {
		a.selections[assessment][category] = make(map[int]string)
	}
	return a.selections[assessment][category]
}

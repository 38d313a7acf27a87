package catalog

import "github.com/huangsam/secpulse/schema"

// Calculators returns every calculator definition in display order.
func Calculators() []*schema.CalculatorDefinition {
	return []*schema.CalculatorDefinition{
		alertsCalculator,
		incidentsCalculator,
		coverageCalculator,
		costCalculator,
	}
}

// Calculator returns the calculator with the given name.
func Calculator(name string) (*schema.CalculatorDefinition, bool) {
	for _, def := range Calculators() {
		if def.Name == name {
			return def, true
		}
	}
	return nil, false
}

// CalculatorNames returns the names of all calculators in display order.
func CalculatorNames() []string {
	defs := Calculators()
	names := make([]string, len(defs))
	for i, def := range defs {
		names[i] = def.Name
	}
	return names
}

// Assessments returns every assessment definition in display order.
func Assessments() []*schema.AssessmentDefinition {
	return []*schema.AssessmentDefinition{
		postureAssessment,
		readinessAssessment,
		cloudAssessment,
	}
}

// Assessment returns the assessment with the given title.
func Assessment(title string) (*schema.AssessmentDefinition, bool) {
	for _, def := range Assessments() {
		if def.Title == title {
			return def, true
		}
	}
	return nil, false
}

// AssessmentTitles returns the titles of all assessments in display order.
func AssessmentTitles() []string {
	defs := Assessments()
	titles := make([]string, len(defs))
	for i, def := range defs {
		titles[i] = def.Title
	}
	return titles
}

package core

import "github.com/huangsam/secpulse/schema"

// RecommendRule pairs a predicate over derived metric values with the advice
// to emit when it fires.
type RecommendRule struct {
	When     func(values map[string]float64) bool
	Severity schema.Severity
	Message  string
}

// ApplyRules evaluates every rule independently and returns the advice for
// all that fired. This is deliberately not first-match: a bad week can
// trigger several recommendations at once.
func ApplyRules(rules []RecommendRule, values map[string]float64) []schema.Recommendation {
	var recs []schema.Recommendation
	for _, rule := range rules {
		if rule.When(values) {
			recs = append(recs, schema.Recommendation{
				Severity: rule.Severity,
				Message:  rule.Message,
			})
		}
	}
	return recs
}

package schema

// AnswerOption is one choice in an assessment question. The same option set
// is shared by every category of an assessment.
type AnswerOption struct {
	Value string  `json:"value"`
	Label string  `json:"label"`
	Score float64 `json:"score"` // 0-100
	Color string  `json:"color"`
}

// Category is a named group of questions within an assessment. Question
// indices are positional and stable; order is significant.
type Category struct {
	Name      string   `json:"name"`
	Icon      string   `json:"icon"`
	Color     string   `json:"color"`
	Questions []string `json:"questions"`
}

// AssessmentDefinition is a static questionnaire: categories of questions
// plus the shared answer options. Loaded once, read-only across sessions.
type AssessmentDefinition struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Categories  []Category     `json:"categories"`
	Options     []AnswerOption `json:"options"`
}

// Option returns the answer option with the given value.
func (d *AssessmentDefinition) Option(value string) (AnswerOption, bool) {
	for _, opt := range d.Options {
		if opt.Value == value {
			return opt, true
		}
	}
	return AnswerOption{}, false
}

// Category returns the category with the given name.
func (d *AssessmentDefinition) Category(name string) (Category, bool) {
	for _, cat := range d.Categories {
		if cat.Name == name {
			return cat, true
		}
	}
	return Category{}, false
}

// QuestionCount returns the total number of questions across all categories.
func (d *AssessmentDefinition) QuestionCount() int {
	n := 0
	for _, cat := range d.Categories {
		n += len(cat.Questions)
	}
	return n
}

// MaxScore returns the maximum possible earned score for the assessment,
// which is one hundred points per question.
func (d *AssessmentDefinition) MaxScore() float64 {
	return float64(d.QuestionCount()) * 100
}

// CategoryReport summarizes one category inside an assessment report.
type CategoryReport struct {
	Name     string  `json:"name"`
	Answered int     `json:"answered"`
	Total    int     `json:"total"`
	Earned   float64 `json:"earned"`
	Max      float64 `json:"max"`
}

// RankResult is the outcome of classifying an overall percentage.
type RankResult struct {
	Percentage  float64 `json:"percentage"`
	Rank        Rank    `json:"rank"`
	Description string  `json:"description"`
}

// AssessmentReport is the full scored report for one assessment.
type AssessmentReport struct {
	Title      string           `json:"title"`
	Earned     float64          `json:"earned"`
	Max        float64          `json:"max"`
	Answered   int              `json:"answered"`
	Questions  int              `json:"questions"`
	Categories []CategoryReport `json:"categories"`
	Overall    RankResult       `json:"overall"`
}

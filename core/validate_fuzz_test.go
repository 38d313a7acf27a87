package core

import (
	"testing"

	"github.com/huangsam/secpulse/schema"
)

// FuzzValidateField fuzzes single-field validation with arbitrary raw input.
func FuzzValidateField(f *testing.F) {
	seeds := []struct {
		raw  string
		kind string
	}{
		{"42", "count"},
		{"", "count"},
		{"-1", "percentage"},
		{"100.0001", "percentage"},
		{"NaN", "currency"},
		{"1e308", "count"},
		{"0x1p-2", "percentage"},
	}
	for _, seed := range seeds {
		f.Add(seed.raw, seed.kind)
	}

	f.Fuzz(func(t *testing.T, raw string, kind string) {
		field := schema.FieldSchema{Key: "k", Label: "Field", Kind: schema.FieldKind(kind)}
		msg := ValidateField(field, raw)

		// A value that validates must survive default substitution as a
		// usable number for whatever rule checks come next.
		if msg == "" {
			values := parseStepValues(schema.Step{Fields: []schema.FieldSchema{field}}, schema.RawInputs{"k": raw})
			if _, ok := values["k"]; !ok {
				t.Errorf("value %q passed validation but did not parse", raw)
			}
		}
	})
}

// FuzzValidateStep fuzzes a full step to confirm at most one violation is
// ever reported, regardless of how many fields are broken.
func FuzzValidateStep(f *testing.F) {
	f.Add("100", "80", "95")
	f.Add("", "", "")
	f.Add("abc", "-5", "200")
	f.Add("1e9", "1e10", "50")

	step := schema.Step{
		Fields: []schema.FieldSchema{
			{Key: "total", Label: "Total", Kind: schema.CountField},
			{Key: "part", Label: "Part", Kind: schema.CountField},
			{Key: "pct", Label: "Pct", Kind: schema.PercentageField},
		},
		Rules: []schema.CrossFieldRule{
			{
				Fields:  []string{"part", "total"},
				Message: "Part cannot exceed Total",
				Check:   func(v map[string]float64) bool { return v["part"] <= v["total"] },
			},
		},
	}

	f.Fuzz(func(t *testing.T, total, part, pct string) {
		res := ValidateStep(step, schema.RawInputs{"total": total, "part": part, "pct": pct})
		if len(res.Violations) > 1 {
			t.Errorf("expected at most one violation, got %v", res.Violations)
		}
		if res.OK != (len(res.Violations) == 0) {
			t.Errorf("OK flag inconsistent with violations %v", res.Violations)
		}
	})
}

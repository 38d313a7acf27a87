package outwriter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/secpulse/internal/contract"
	"github.com/huangsam/secpulse/schema"

	"github.com/olekukonko/tablewriter"
)

// WriteCatalog lists the available calculators and assessments.
func WriteCatalog(calcs []*schema.CalculatorDefinition, assessments []*schema.AssessmentDefinition, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCatalogJSON(w, calcs, assessments)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCatalogTables(w, calcs, assessments)
	}, "Wrote table")
}

func writeCatalogTables(w io.Writer, calcs []*schema.CalculatorDefinition, assessments []*schema.AssessmentDefinition) error {
	if _, err := fmt.Fprintln(w, "Calculators:"); err != nil {
		return err
	}
	calcTable := tablewriter.NewWriter(w)
	calcTable.Header([]string{"Name", "Title", "Steps", "Fields"})
	var calcData [][]string
	for _, def := range calcs {
		calcData = append(calcData, []string{
			def.Name,
			def.Title,
			strconv.Itoa(len(def.Steps)),
			strconv.Itoa(def.FieldCount()),
		})
	}
	if err := calcTable.Bulk(calcData); err != nil {
		return err
	}
	if err := calcTable.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "Assessments:"); err != nil {
		return err
	}
	assessTable := tablewriter.NewWriter(w)
	assessTable.Header([]string{"Title", "Categories", "Questions"})
	var assessData [][]string
	for _, def := range assessments {
		assessData = append(assessData, []string{
			def.Title,
			strconv.Itoa(len(def.Categories)),
			strconv.Itoa(def.QuestionCount()),
		})
	}
	if err := assessTable.Bulk(assessData); err != nil {
		return err
	}
	return assessTable.Render()
}

func writeCatalogJSON(w io.Writer, calcs []*schema.CalculatorDefinition, assessments []*schema.AssessmentDefinition) error {
	type calcEntry struct {
		Name        string        `json:"name"`
		Title       string        `json:"title"`
		Description string        `json:"description"`
		Steps       []schema.Step `json:"steps"`
	}
	type payload struct {
		Calculators []calcEntry                    `json:"calculators"`
		Assessments []*schema.AssessmentDefinition `json:"assessments"`
	}
	entries := make([]calcEntry, len(calcs))
	for i, def := range calcs {
		entries[i] = calcEntry{Name: def.Name, Title: def.Title, Description: def.Description, Steps: def.Steps}
	}
	return writeJSON(w, payload{Calculators: entries, Assessments: assessments})
}

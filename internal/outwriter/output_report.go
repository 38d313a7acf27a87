package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/huangsam/secpulse/internal/contract"
	"github.com/huangsam/secpulse/internal/parquet"
	"github.com/huangsam/secpulse/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteAssessmentReport outputs one scored assessment report, dispatching
// based on the output format configured.
func WriteAssessmentReport(report schema.AssessmentReport, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportCSV(w, report, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		if err := parquet.ExportReport(cfg.OutputFile, report); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote parquet to %s\n", cfg.OutputFile)
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportTable(w, report, cfg, fmtFloat)
		}, "Wrote table")
	}
}

// writeReportTable generates and writes the human-readable report table.
func writeReportTable(w io.Writer, report schema.AssessmentReport, cfg *contract.Config, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintf(w, "%s\n", report.Title); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Category", "Answered", "Earned", "Max", "Pct"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, cat := range report.Categories {
		pct := 0.0
		if cat.Max > 0 {
			pct = cat.Earned / cat.Max * 100
		}
		data = append(data, []string{
			cat.Name,
			fmt.Sprintf("%d/%d", cat.Answered, cat.Total),
			fmtFloat(cat.Earned),
			fmtFloat(cat.Max),
			fmtFloat(pct),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Overall: %s (%s%%) - %s\n",
		colorRank(report.Overall.Rank, cfg.UseColors),
		fmtFloat(report.Overall.Percentage),
		report.Overall.Description); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Answered %d of %d questions\n", report.Answered, report.Questions)
	return err
}

// writeReportCSV writes the report in CSV format, one row per category plus
// a final overall row.
func writeReportCSV(w io.Writer, report schema.AssessmentReport, fmtFloat func(float64) string) error {
	header := []string{"assessment", "category", "answered", "total", "earned", "max"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, cat := range report.Categories {
			rec := []string{
				report.Title,
				cat.Name,
				strconv.Itoa(cat.Answered),
				strconv.Itoa(cat.Total),
				fmtFloat(cat.Earned),
				fmtFloat(cat.Max),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		overall := []string{
			report.Title,
			"overall:" + string(report.Overall.Rank),
			strconv.Itoa(report.Answered),
			strconv.Itoa(report.Questions),
			fmtFloat(report.Earned),
			fmtFloat(report.Max),
		}
		return cw.Write(overall)
	})
}

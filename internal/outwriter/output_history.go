package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/huangsam/secpulse/internal/contract"
	"github.com/huangsam/secpulse/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

const historyTimeFormat = "2006-01-02 15:04:05"

// WriteEvaluationHistory outputs stored calculator evaluations, newest first.
func WriteEvaluationHistory(recs []schema.EvaluationRecord, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, recs)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"id", "calculator", "composite", "status", "created_at"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, rec := range recs {
					row := []string{
						strconv.FormatInt(rec.ID, 10),
						rec.Calculator,
						fmtFloat(rec.Composite),
						string(rec.Status),
						rec.CreatedAt.Format(historyTimeFormat),
					}
					if err := cw.Write(row); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			table := tablewriter.NewWriter(w)
			table.Header([]string{"ID", "Calculator", "Composite", "Status", "Recorded"})
			table.Configure(func(tcfg *tablewriter.Config) {
				tcfg.Row.Alignment.Global = tw.AlignRight
			})
			var data [][]string
			for _, rec := range recs {
				data = append(data, []string{
					strconv.FormatInt(rec.ID, 10),
					rec.Calculator,
					fmtFloat(rec.Composite),
					colorStatus(rec.Status, cfg.UseColors),
					rec.CreatedAt.Format(historyTimeFormat),
				})
			}
			if err := table.Bulk(data); err != nil {
				return err
			}
			return table.Render()
		}, "Wrote table")
	}
}

// WriteReportHistory outputs stored assessment reports, newest first.
func WriteReportHistory(recs []schema.ReportRecord, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, recs)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"id", "assessment", "percentage", "rank", "created_at"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, rec := range recs {
					row := []string{
						strconv.FormatInt(rec.ID, 10),
						rec.Assessment,
						fmtFloat(rec.Percentage),
						string(rec.Rank),
						rec.CreatedAt.Format(historyTimeFormat),
					}
					if err := cw.Write(row); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			table := tablewriter.NewWriter(w)
			table.Header([]string{"ID", "Assessment", "Pct", "Rank", "Recorded"})
			table.Configure(func(tcfg *tablewriter.Config) {
				tcfg.Row.Alignment.Global = tw.AlignRight
			})
			var data [][]string
			for _, rec := range recs {
				data = append(data, []string{
					strconv.FormatInt(rec.ID, 10),
					rec.Assessment,
					fmtFloat(rec.Percentage),
					colorRank(rec.Rank, cfg.UseColors),
					rec.CreatedAt.Format(historyTimeFormat),
				})
			}
			if err := table.Bulk(data); err != nil {
				return err
			}
			return table.Render()
		}, "Wrote table")
	}
}

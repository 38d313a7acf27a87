package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/secpulse/internal/contract"
	"github.com/huangsam/secpulse/internal/parquet"
	"github.com/huangsam/secpulse/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteCalculatorResult outputs one calculator evaluation, dispatching based
// on the output format configured.
func WriteCalculatorResult(def *schema.CalculatorDefinition, m schema.Metrics, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsJSON(w, def, m)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsCSV(w, def, m, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		if err := parquet.ExportMetrics(cfg.OutputFile, def.Name, m); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote parquet to %s\n", cfg.OutputFile)
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsTable(w, def, m, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeMetricsTable generates and writes the human-readable result table.
func writeMetricsTable(w io.Writer, def *schema.CalculatorDefinition, m schema.Metrics, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	if _, err := fmt.Fprintf(w, "%s\n", def.Title); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Value", "Status"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, key := range sortedMetricKeys(m.Values) {
		status := ""
		if label, ok := m.Labels[key]; ok {
			status = colorStatus(label, cfg.UseColors)
		}
		data = append(data, []string{key, fmtFloat(m.Values[key]), status})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if len(m.Recommendations) > 0 {
		if _, err := fmt.Fprintln(w, "Recommendations:"); err != nil {
			return err
		}
		msgWidth := getTerminalWidth(cfg) - 12 // severity tag and indent
		for _, rec := range m.Recommendations {
			msg := truncateText(rec.Message, msgWidth)
			if _, err := fmt.Fprintf(w, "  [%s] %s\n", colorSeverity(rec.Severity, cfg.UseColors), msg); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w, "Evaluated %d metrics in %v\n", len(m.Values), duration)
	return err
}

// writeMetricsCSV writes the evaluation in CSV format.
func writeMetricsCSV(w io.Writer, def *schema.CalculatorDefinition, m schema.Metrics, fmtFloat func(float64) string) error {
	header := []string{"calculator", "metric", "value", "status"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, key := range sortedMetricKeys(m.Values) {
			status := ""
			if label, ok := m.Labels[key]; ok {
				status = string(label)
			}
			rec := []string{def.Name, key, fmtFloat(m.Values[key]), status}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeMetricsJSON writes the evaluation in JSON format.
func writeMetricsJSON(w io.Writer, def *schema.CalculatorDefinition, m schema.Metrics) error {
	type JSONResult struct {
		Calculator string `json:"calculator"`
		Title      string `json:"title"`
		schema.Metrics
	}
	return writeJSON(w, JSONResult{Calculator: def.Name, Title: def.Title, Metrics: m})
}

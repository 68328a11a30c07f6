package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/huangsam/voltview/internal/contract"
	"github.com/huangsam/voltview/schema"

	"github.com/olekukonko/tablewriter"
)

type metricRow struct {
	schema.MetricDescriptor
	Checked bool `json:"checked"`
}

// PrintMetricsDefinitions displays the metric registry with the configured checked set.
func PrintMetricsDefinitions(cfg *contract.Config) error {
	rows := buildMetricRows(cfg.Metrics)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVMetrics(w, rows)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only supported by export")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsTable(w, rows)
		}, "Wrote table")
	}
}

func buildMetricRows(checked []string) []metricRow {
	rows := make([]metricRow, 0, len(schema.Metrics))
	for _, m := range schema.Metrics {
		rows = append(rows, metricRow{MetricDescriptor: m, Checked: slices.Contains(checked, m.ID)})
	}
	return rows
}

func writeCSVMetrics(w io.Writer, rows []metricRow) error {
	header := []string{"id", "display_name", "field", "color", "checked"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range rows {
			if err := cw.Write([]string{r.ID, r.DisplayName, r.FieldKey, r.Color, strconv.FormatBool(r.Checked)}); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

func writeMetricsTable(w io.Writer, rows []metricRow) error {
	if _, err := fmt.Fprintf(w, "⚡ Voltview Metrics\n"); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Name", "Field", "Color", "Checked"})
	var data [][]string
	for _, r := range rows {
		checked := ""
		if r.Checked {
			checked = "✓"
		}
		data = append(data, []string{r.ID, r.DisplayName, r.FieldKey, r.Color, checked})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

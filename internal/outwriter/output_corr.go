package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/voltview/internal/contract"
	"github.com/huangsam/voltview/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// topPairs is how many of the strongest pairs the text summary lists.
const topPairs = 5

// PrintCorrelation outputs a correlation report, dispatching based on the output format configured.
func PrintCorrelation(report schema.CorrelationReport, cfg *contract.Config) error {
	fmtFloat := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONCorrelation(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVCorrelation(w, report, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only supported by export")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCorrelationTable(w, report, cfg, fmtFloat)
		}, "Wrote table")
	}
}

type correlationJSON struct {
	schema.CorrelationReport
	Pairs []pairJSON `json:"pairs"`
}

type pairJSON struct {
	schema.CorrelationPair
	Label string `json:"label"`
}

// writeJSONCorrelation writes the matrix plus its labelled pairs.
func writeJSONCorrelation(w io.Writer, report schema.CorrelationReport) error {
	out := correlationJSON{CorrelationReport: report, Pairs: []pairJSON{}}
	for _, p := range report.Matrix.Pairs() {
		out.Pairs = append(out.Pairs, pairJSON{CorrelationPair: p, Label: contract.GetPlainLabel(p.R)})
	}
	return writeJSON(w, out)
}

// writeCSVCorrelation writes the matrix in long form, one row per ordered pair.
func writeCSVCorrelation(w io.Writer, report schema.CorrelationReport, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, []string{"a", "b", "r", "label"}, func(cw *csv.Writer) error {
		m := report.Matrix
		for i, a := range m.Keys {
			for j, b := range m.Keys {
				r := m.Values[i][j]
				if err := cw.Write([]string{a, b, fmtFloat(r), contract.GetPlainLabel(r)}); err != nil {
					return fmt.Errorf("failed to write CSV record: %w", err)
				}
			}
		}
		return nil
	})
}

// writeCorrelationTable renders the matrix as a grid followed by the strongest pairs.
func writeCorrelationTable(w io.Writer, report schema.CorrelationReport, cfg *contract.Config, fmtFloat func(float64) string) error {
	m := report.Matrix
	if _, err := fmt.Fprintf(w, "Correlation over %s (%d records)\n", report.Window, report.Records); err != nil {
		return err
	}
	if report.Records == 0 {
		_, err := fmt.Fprintln(w, "no data available in this range")
		return err
	}

	labelWidth := getMaxLabelWidth(cfg, len(m.Keys))
	table := tablewriter.NewWriter(w)

	headers := []string{""}
	for _, k := range m.Keys {
		headers = append(headers, truncateLabel(k, labelWidth))
	}
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, k := range m.Keys {
		row := []string{truncateLabel(k, labelWidth)}
		for _, r := range m.Values[i] {
			if cfg.UseColors {
				row = append(row, contract.GetColorValue(r, cfg.Precision))
			} else {
				row = append(row, fmtFloat(r))
			}
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	pairs := m.Pairs()
	if len(pairs) > topPairs {
		pairs = pairs[:topPairs]
	}
	if _, err := fmt.Fprintln(w, "Strongest pairs:"); err != nil {
		return err
	}
	for _, p := range pairs {
		if _, err := fmt.Fprintf(w, "  %s ~ %s: %s (%s)\n", p.A, p.B, fmtFloat(p.R), contract.GetPlainLabel(p.R)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Color domain over full dataset: [%s, %s]\n", fmtFloat(report.Min), fmtFloat(report.Max)); err != nil {
		return err
	}
	return nil
}

package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/voltview/core/selector"
	"github.com/huangsam/voltview/internal/contract"
	"github.com/huangsam/voltview/schema"

	"github.com/olekukonko/tablewriter"
)

// PrintWeeks outputs the week grid, dispatching based on the output format configured.
func PrintWeeks(buttons []selector.WeekButton, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, buttons)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWeeks(w, buttons)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only supported by export")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeWeeksTable(w, buttons, cfg)
		}, "Wrote table")
	}
}

func writeCSVWeeks(w io.Writer, buttons []selector.WeekButton) error {
	header := []string{"week", "month", "start", "end", "in_range", "selected", "current"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, b := range buttons {
			record := []string{
				b.Label,
				b.Start.Month().String(),
				b.Start.Format(schema.TimestampLayout),
				b.End.Format(schema.TimestampLayout),
				strconv.FormatBool(b.InRange),
				strconv.FormatBool(b.Selected),
				strconv.FormatBool(b.Current),
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

func writeWeeksTable(w io.Writer, buttons []selector.WeekButton, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Week", "Month", "Start", "End", "In Range"})

	var data [][]string
	inRange := 0
	for _, b := range buttons {
		mark := ""
		if b.InRange {
			inRange++
			mark = "●"
			if cfg.UseColors {
				mark = contract.PositiveColor.Sprint(mark)
			}
		}
		if b.Selected {
			mark += " (selected)"
		}
		if b.Current {
			mark += " (current)"
		}
		data = append(data, []string{
			b.Label,
			b.Start.Format("Jan"),
			b.Start.Format(schema.DateLayout),
			b.End.Format(schema.DateLayout),
			mark,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d of %d weeks inside the window\n", inRange, len(buttons))
	return err
}

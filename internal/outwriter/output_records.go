package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/voltview/internal/contract"
	"github.com/huangsam/voltview/internal/parquet"
	"github.com/huangsam/voltview/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// maxTableRecords caps how many rows the text table shows.
const maxTableRecords = 50

// PrintRecords exports records projected onto keys, dispatching based on the output format configured.
func PrintRecords(records []schema.Record, keys []string, cfg *contract.Config) error {
	fmtFloat := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, records)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVRecords(w, records, keys, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteTelemetry(w, parquet.FromRecords(records))
		}, "Wrote Parquet")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRecordsTable(w, records, keys, fmtFloat)
		}, "Wrote table")
	}
}

func writeCSVRecords(w io.Writer, records []schema.Record, keys []string, fmtFloat func(float64) string) error {
	header := append([]string{schema.TimestampField}, keys...)
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range records {
			row := []string{r.Timestamp()}
			for _, k := range keys {
				row = append(row, fmtFloat(r.FloatOrZero(k)))
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

func writeRecordsTable(w io.Writer, records []schema.Record, keys []string, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header(append([]string{"Timestamp"}, keys...))
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	shown := records
	if len(shown) > maxTableRecords {
		shown = shown[:maxTableRecords]
	}
	var data [][]string
	for _, r := range shown {
		row := []string{r.Timestamp()}
		for _, k := range keys {
			row = append(row, fmtFloat(r.FloatOrZero(k)))
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d of %d records\n", len(shown), len(records))
	return err
}

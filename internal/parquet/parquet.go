// Package parquet provides the columnar layout of telemetry records and
// reads and writes it using github.com/parquet-go/parquet-go.
package parquet

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/voltview/schema"
	"github.com/parquet-go/parquet-go"
)

// TelemetryRow is one telemetry record in columnar form.
// Metric columns are optional so absent fields survive a round trip.
type TelemetryRow struct {
	// Timestamp is the raw fecha_servidor value
	Timestamp string `parquet:"fecha_servidor,snappy"`

	Voltage     *float64 `parquet:"voltaje,optional,snappy"`
	Current     *float64 `parquet:"corriente,optional,snappy"`
	Power       *float64 `parquet:"potencia,optional,snappy"`
	Frequency   *float64 `parquet:"frecuencia,optional,snappy"`
	Energy      *float64 `parquet:"energia,optional,snappy"`
	Temperature *float64 `parquet:"ESP32_temp,optional,snappy"`
	PowerFactor *float64 `parquet:"fp,optional,snappy"`
	Consumption *float64 `parquet:"consumo,optional,snappy"`

	WorkstationCPU *float64 `parquet:"WORKSTATION_CPU_POWER,optional,snappy"`
	WorkstationGPU *float64 `parquet:"WORKSTATION_GPU_POWER,optional,snappy"`
	WorkstationRAM *float64 `parquet:"WORKSTATION_RAM_POWER,optional,snappy"`
}

// columns pairs each record field with its row slot.
func (r *TelemetryRow) columns() map[string]**float64 {
	return map[string]**float64{
		"voltaje":                  &r.Voltage,
		"corriente":                &r.Current,
		"potencia":                 &r.Power,
		"frecuencia":               &r.Frequency,
		"energia":                  &r.Energy,
		"ESP32_temp":               &r.Temperature,
		"fp":                       &r.PowerFactor,
		"consumo":                  &r.Consumption,
		schema.WorkstationCPUField: &r.WorkstationCPU,
		schema.WorkstationGPUField: &r.WorkstationGPU,
		schema.WorkstationRAMField: &r.WorkstationRAM,
	}
}

// FromRecord converts a record. Non-numeric values become null.
func FromRecord(rec schema.Record) TelemetryRow {
	row := TelemetryRow{Timestamp: rec.Timestamp()}
	for key, slot := range row.columns() {
		if v, ok := rec.Float(key); ok {
			*slot = &v
		}
	}
	return row
}

// ToRecord converts a row back, omitting null columns.
func (r TelemetryRow) ToRecord() schema.Record {
	rec := schema.Record{schema.TimestampField: r.Timestamp}
	for key, slot := range r.columns() {
		if *slot != nil {
			rec[key] = **slot
		}
	}
	return rec
}

// FromRecords converts a dataset.
func FromRecords(records []schema.Record) []TelemetryRow {
	rows := make([]TelemetryRow, len(records))
	for i, rec := range records {
		rows[i] = FromRecord(rec)
	}
	return rows
}

// WriteTelemetry writes rows to w.
func WriteTelemetry(w io.Writer, rows []TelemetryRow) error {
	writer := parquet.NewGenericWriter[TelemetryRow](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteTelemetryParquet writes rows to a new file at outputPath.
func WriteTelemetryParquet(rows []TelemetryRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return WriteTelemetry(file, rows)
}

// ReadTelemetryParquet reads every row of the file at path as records.
func ReadTelemetryParquet(path string) ([]schema.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[TelemetryRow](file)
	defer func() { _ = reader.Close() }()

	rows := make([]TelemetryRow, reader.NumRows())
	if len(rows) == 0 {
		return nil, nil
	}
	n, err := reader.Read(rows)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read parquet rows: %w", err)
	}

	records := make([]schema.Record, n)
	for i := range n {
		records[i] = rows[i].ToRecord()
	}
	return records, nil
}

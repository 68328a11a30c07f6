package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/voltview/core/selector"
	"github.com/huangsam/voltview/core/window"
	"github.com/huangsam/voltview/internal/contract"
	"github.com/huangsam/voltview/internal/parquet"
	"github.com/huangsam/voltview/schema"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() schema.CorrelationReport {
	return schema.CorrelationReport{
		Window: schema.TimeWindow{
			Start: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2023, 1, 7, 23, 59, 59, 0, time.UTC),
		},
		Records: 3,
		Matrix: schema.CorrelationMatrix{
			Keys:   []string{"voltaje", "corriente"},
			Values: [][]float64{{1, -0.8}, {-0.8, 1}},
		},
		Min: -0.8,
		Max: 1,
	}
}

func TestWriteJSONCorrelation(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSONCorrelation(&buf, sampleReport()))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, float64(3), got["records"])
	pairs, ok := got["pairs"].([]any)
	require.True(t, ok)
	require.Len(t, pairs, 1)
	pair := pairs[0].(map[string]any)
	assert.Equal(t, "voltaje", pair["a"])
	assert.Equal(t, -0.8, pair["r"])
	assert.Equal(t, contract.StrongValue, pair["label"])
}

func TestWriteCSVCorrelation(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCSVCorrelation(&buf, sampleReport(), createFormatters(2)))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"a", "b", "r", "label"}, rows[0])
	assert.Equal(t, []string{"voltaje", "corriente", "-0.80", "Strong"}, rows[2])
}

func TestWriteCorrelationTable(t *testing.T) {
	cfg := &contract.Config{Precision: 2, Width: 120}

	var buf bytes.Buffer
	require.NoError(t, writeCorrelationTable(&buf, sampleReport(), cfg, createFormatters(2)))
	out := buf.String()
	assert.Contains(t, out, "Correlation over 2023-01-01T00:00:00 - 2023-01-07T23:59:59 (3 records)")
	assert.Contains(t, out, "-0.80")
	assert.Contains(t, out, "voltaje ~ corriente: -0.80 (Strong)")
	assert.Contains(t, out, "[-0.80, 1.00]")

	empty := sampleReport()
	empty.Records = 0
	buf.Reset()
	require.NoError(t, writeCorrelationTable(&buf, empty, cfg, createFormatters(2)))
	assert.Contains(t, buf.String(), "no data available in this range")
}

func TestLabelWidth(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		columns int
		want    int
	}{
		{"wide terminal caps at 16", 400, 2, 16},
		{"narrow terminal keeps a numeric cell", 40, 8, 8},
		{"medium", 100, 8, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tt.width, Precision: 2}
			assert.Equal(t, tt.want, getMaxLabelWidth(cfg, tt.columns))
		})
	}

	assert.Equal(t, "voltaje", truncateLabel("voltaje", 8))
	assert.Equal(t, "ESP32_t…", truncateLabel("ESP32_temp", 8))
}

func TestWriteCSVWeeks(t *testing.T) {
	store := window.NewStore(schema.DefaultWindow(2023, time.UTC))
	grid := selector.NewWeekGrid(store, 2023, time.UTC)
	_, err := grid.Click(t.Context(), 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeCSVWeeks(&buf, grid.Buttons()))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, selector.WeeksPerGrid+1)
	assert.Equal(t, []string{"1", "January", "2023-01-01T00:00:00", "2023-01-07T23:59:59", "true", "true", "false"}, rows[1])
	assert.Equal(t, "false", rows[2][4])
}

func TestBuildMetricRows(t *testing.T) {
	rows := buildMetricRows([]string{"power"})
	require.Len(t, rows, len(schema.Metrics))
	for _, r := range rows {
		assert.Equal(t, r.ID == "power", r.Checked, r.ID)
	}

	var buf bytes.Buffer
	require.NoError(t, writeMetricsTable(&buf, rows))
	assert.Contains(t, buf.String(), "potencia")
}

func telemetry() []schema.Record {
	return []schema.Record{
		{schema.TimestampField: "2023-01-01T00:00:00", "voltaje": 120.0, "corriente": "1.5"},
		{schema.TimestampField: "2023-01-01T00:00:10", "voltaje": 121.0},
	}
}

func TestWriteCSVRecords(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCSVRecords(&buf, telemetry(), []string{"voltaje", "corriente"}, createFormatters(1)))
	assert.Equal(t, strings.Join([]string{
		"fecha_servidor,voltaje,corriente",
		"2023-01-01T00:00:00,120.0,1.5",
		"2023-01-01T00:00:10,121.0,0.0",
	}, "\n")+"\n", buf.String())
}

func TestPrintRecordsCompressedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json.zst")
	cfg := &contract.Config{Output: schema.JSONOut, OutputFile: path, Precision: 2}
	require.NoError(t, PrintRecords(telemetry(), []string{"voltaje"}, cfg))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	dec, err := zstd.NewReader(f)
	require.NoError(t, err)
	defer dec.Close()

	var got []schema.Record
	require.NoError(t, json.NewDecoder(dec).Decode(&got))
	require.Len(t, got, 2)
	assert.Equal(t, "2023-01-01T00:00:10", got[1].Timestamp())
}

func TestPrintRecordsParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.parquet")
	cfg := &contract.Config{Output: schema.ParquetOut, OutputFile: path}
	require.NoError(t, PrintRecords(telemetry(), []string{"voltaje"}, cfg))

	got, err := parquet.ReadTelemetryParquet(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1.5, got[0]["corriente"])
}

func TestParquetOnlyForExport(t *testing.T) {
	cfg := &contract.Config{Output: schema.ParquetOut}
	assert.Error(t, PrintCorrelation(sampleReport(), cfg))
	assert.Error(t, PrintMetricsDefinitions(cfg))
}

package filter

import (
	"testing"
	"time"

	"github.com/huangsam/voltview/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(s string) time.Time {
	t, err := time.ParseInLocation(schema.TimestampLayout, s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func TestByWindowMiddleRecord(t *testing.T) {
	records := []schema.Record{
		{schema.TimestampField: "2021-05-05T10:00:00", "voltaje": 120.0},
		{schema.TimestampField: "2021-05-05T10:00:10", "voltaje": 121.0},
		{schema.TimestampField: "2021-05-05T10:00:20", "voltaje": 122.0},
	}
	w := schema.TimeWindow{Start: ts("2021-05-05T10:00:05"), End: ts("2021-05-05T10:00:15")}

	got := ByWindow(records, w, time.UTC)
	require.Len(t, got, 1)
	assert.Equal(t, 121.0, got[0]["voltaje"])
}

func TestByWindowInclusiveAndSkipsBadTimestamps(t *testing.T) {
	records := []schema.Record{
		{schema.TimestampField: "2021-05-05T10:00:00"},
		{schema.TimestampField: "garbage"},
		{"voltaje": 1.0},
		{schema.TimestampField: "2021-05-05T10:00:20"},
	}
	w := schema.TimeWindow{Start: ts("2021-05-05T10:00:00"), End: ts("2021-05-05T10:00:20")}

	got := ByWindow(records, w, time.UTC)
	assert.Len(t, got, 2)
	assert.Equal(t, got, ByWindow(got, w, time.UTC))
}

func TestByWindowEmpty(t *testing.T) {
	w := schema.DefaultWindow(2023, time.UTC)
	assert.Empty(t, ByWindow(nil, w, time.UTC))
}

func TestProjectShape(t *testing.T) {
	records := []schema.Record{
		{schema.TimestampField: "2021-05-05T10:00:00", "voltaje": 120.0, "corriente": "1.5", "extra": "drop me"},
		{schema.TimestampField: "2021-05-05T10:00:10", "voltaje": "n/a"},
	}
	keys := []string{"voltaje", "corriente"}

	got := Project(records, keys)
	require.Len(t, got, len(records))
	for _, r := range got {
		assert.Len(t, r, len(keys)+1)
		assert.Contains(t, r, schema.TimestampField)
	}
	assert.Equal(t, 1.5, got[0]["corriente"])
	assert.Equal(t, 0.0, got[1]["voltaje"])
	assert.Equal(t, 0.0, got[1]["corriente"])
	assert.NotContains(t, got[0], "extra")
}

func TestDownsample(t *testing.T) {
	records := make([]schema.Record, 25)
	for i := range records {
		records[i] = schema.Record{"i": i}
	}

	got := Downsample(records, DefaultStride)
	require.Len(t, got, 3)
	assert.Equal(t, 0, got[0]["i"])
	assert.Equal(t, 10, got[1]["i"])
	assert.Equal(t, 20, got[2]["i"])
	assert.Len(t, Downsample(records, 1), 25)
}

func TestWorkstationRequiresAllPositive(t *testing.T) {
	records := []schema.Record{
		{schema.TimestampField: "2021-05-05T10:00:00", schema.WorkstationCPUField: 40.0, schema.WorkstationGPUField: 90.0, schema.WorkstationRAMField: 5.0},
		{schema.TimestampField: "2021-05-05T10:00:10", schema.WorkstationCPUField: 40.0, schema.WorkstationGPUField: 0.0, schema.WorkstationRAMField: 5.0},
		{schema.TimestampField: "2021-05-05T10:00:20", schema.WorkstationCPUField: 40.0, schema.WorkstationRAMField: 5.0},
	}

	got := Workstation(records, time.UTC)
	require.Len(t, got, 1)
	assert.Equal(t, 90.0, got[0].GPU)
	assert.Equal(t, ts("2021-05-05T10:00:00"), got[0].At)
}

func TestBounds(t *testing.T) {
	records := []schema.Record{
		{schema.TimestampField: "2021-05-05T10:00:10"},
		{schema.TimestampField: "2021-05-05T10:00:00"},
		{schema.TimestampField: "bad"},
	}
	w, ok := Bounds(records, time.UTC)
	require.True(t, ok)
	assert.Equal(t, ts("2021-05-05T10:00:00"), w.Start)
	assert.Equal(t, ts("2021-05-05T10:00:10"), w.End)

	_, ok = Bounds(nil, time.UTC)
	assert.False(t, ok)
}

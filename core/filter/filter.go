// Package filter selects and reshapes telemetry records for the derived views.
package filter

import (
	"time"

	"github.com/huangsam/voltview/schema"
)

// DefaultStride is the line chart sampling step: every 10th record is kept.
const DefaultStride = 10

// ByWindow keeps records whose timestamp lies in the closed window, preserving order.
// Records with a missing or unparseable timestamp are excluded.
func ByWindow(records []schema.Record, w schema.TimeWindow, loc *time.Location) []schema.Record {
	out := make([]schema.Record, 0, len(records))
	for _, r := range records {
		t, ok := r.Time(loc)
		if !ok || !w.Contains(t) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Project keeps the timestamp plus keys for every record, substituting 0 for
// absent or non-numeric values. The output has the same length as the input.
func Project(records []schema.Record, keys []string) []schema.Record {
	out := make([]schema.Record, len(records))
	for i, r := range records {
		p := make(schema.Record, len(keys)+1)
		p[schema.TimestampField] = r.Timestamp()
		for _, k := range keys {
			p[k] = r.FloatOrZero(k)
		}
		out[i] = p
	}
	return out
}

// Series extracts one numeric column, 0 for absent or non-numeric values.
func Series(records []schema.Record, key string) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.FloatOrZero(key)
	}
	return out
}

// Downsample keeps every stride-th record starting with the first.
func Downsample(records []schema.Record, stride int) []schema.Record {
	if stride <= 1 {
		return records
	}
	out := make([]schema.Record, 0, len(records)/stride+1)
	for i := 0; i < len(records); i += stride {
		out = append(out, records[i])
	}
	return out
}

// Workstation returns the samples whose CPU, GPU and RAM power are all strictly positive.
func Workstation(records []schema.Record, loc *time.Location) []schema.WorkstationSample {
	var out []schema.WorkstationSample
	for _, r := range records {
		cpu, ok1 := r.Float(schema.WorkstationCPUField)
		gpu, ok2 := r.Float(schema.WorkstationGPUField)
		ram, ok3 := r.Float(schema.WorkstationRAMField)
		if !ok1 || !ok2 || !ok3 || cpu <= 0 || gpu <= 0 || ram <= 0 {
			continue
		}
		t, _ := r.Time(loc)
		out = append(out, schema.WorkstationSample{At: t, CPU: cpu, GPU: gpu, RAM: ram})
	}
	return out
}

// Bounds returns the earliest and latest parseable timestamps.
func Bounds(records []schema.Record, loc *time.Location) (schema.TimeWindow, bool) {
	var w schema.TimeWindow
	found := false
	for _, r := range records {
		t, ok := r.Time(loc)
		if !ok {
			continue
		}
		if !found || t.Before(w.Start) {
			w.Start = t
		}
		if !found || t.After(w.End) {
			w.End = t
		}
		found = true
	}
	return w, found
}

// Package schema has the models, metric registry and constants shared by all parts of voltview.
package schema

import "time"

// TimestampField is the mandatory timestamp key of every telemetry record.
const TimestampField = "fecha_servidor"

// TimestampLayout is the canonical layout of TimestampField values.
const TimestampLayout = "2006-01-02T15:04:05"

// DateLayout is the date-only layout accepted for window bounds on the CLI.
const DateLayout = "2006-01-02"

// Record is one telemetry sample: a flat mapping from field name to value.
// Records are immutable once loaded; the ordered sequence is the dataset of record.
type Record map[string]any

// TimeWindow is the closed interval [Start, End] selected by the user.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// CorrelationMatrix holds pairwise Pearson coefficients for Keys.
// Values[i][j] is the coefficient between Keys[i] and Keys[j].
type CorrelationMatrix struct {
	Keys   []string    `json:"keys"`
	Values [][]float64 `json:"values"`
}

// WorkstationSample is one positive CPU/GPU/RAM power reading.
type WorkstationSample struct {
	At  time.Time `json:"at"`
	CPU float64   `json:"cpu"`
	GPU float64   `json:"gpu"`
	RAM float64   `json:"ram"`
}

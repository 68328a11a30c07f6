// Package corr computes Pearson correlation matrices over telemetry records.
package corr

import (
	"math"

	"github.com/huangsam/voltview/core/filter"
	"github.com/huangsam/voltview/schema"
)

// Pearson returns the correlation coefficient of x and y over their common prefix.
// A zero denominator (constant series or fewer than two samples) yields 0.
func Pearson(x, y []float64) float64 {
	n := min(len(x), len(y))
	if n < 2 {
		return 0
	}
	x, y = x[:n], y[:n]

	var mx, my float64
	for i := range n {
		mx += x[i]
		my += y[i]
	}
	mx /= float64(n)
	my /= float64(n)

	var num, sx, sy float64
	for i := range n {
		dx, dy := x[i]-mx, y[i]-my
		num += dx * dy
		sx += dx * dx
		sy += dy * dy
	}
	den := math.Sqrt(sx * sy)
	if den == 0 {
		return 0
	}
	r := num / den
	if math.IsNaN(r) {
		return 0
	}
	return math.Max(-1, math.Min(1, r))
}

// Compute builds the symmetric matrix for keys. Absent or non-numeric values count as 0.
func Compute(records []schema.Record, keys []string) schema.CorrelationMatrix {
	series := make([][]float64, len(keys))
	for i, k := range keys {
		series[i] = filter.Series(records, k)
	}

	values := make([][]float64, len(keys))
	for i := range values {
		values[i] = make([]float64, len(keys))
	}
	for i := range keys {
		for j := i; j < len(keys); j++ {
			r := Pearson(series[i], series[j])
			values[i][j] = r
			values[j][i] = r
		}
	}

	return schema.CorrelationMatrix{Keys: append([]string(nil), keys...), Values: values}
}

// Domain returns the smallest and largest entries of m.
// An empty or uniform matrix widens to [-1, 1] so the color scale stays usable.
func Domain(m schema.CorrelationMatrix) (lo, hi float64) {
	first := true
	for _, row := range m.Values {
		for _, v := range row {
			if first {
				lo, hi = v, v
				first = false
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if first || lo == hi {
		return -1, 1
	}
	return lo, hi
}

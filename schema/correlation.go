package schema

import (
	"math"
	"sort"
)

// CorrelationPair is one off-diagonal entry of a correlation matrix.
type CorrelationPair struct {
	A string  `json:"a"`
	B string  `json:"b"`
	R float64 `json:"r"`
}

// CorrelationReport is a correlation matrix computed over a window.
type CorrelationReport struct {
	Window  TimeWindow        `json:"window"`
	Records int               `json:"records"`
	Matrix  CorrelationMatrix `json:"matrix"`
	Min     float64           `json:"color_min"`
	Max     float64           `json:"color_max"`
}

// Pairs returns the upper-triangle entries ordered by descending |r|.
// Ties keep key order.
func (m CorrelationMatrix) Pairs() []CorrelationPair {
	var pairs []CorrelationPair
	for i := range m.Keys {
		for j := i + 1; j < len(m.Keys); j++ {
			pairs = append(pairs, CorrelationPair{A: m.Keys[i], B: m.Keys[j], R: m.Values[i][j]})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return math.Abs(pairs[i].R) > math.Abs(pairs[j].R)
	})
	return pairs
}

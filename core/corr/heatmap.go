package corr

import "github.com/huangsam/voltview/schema"

// Heatmap pairs the windowed matrix with a color domain taken from the full dataset,
// so colors stay comparable while the window changes.
type Heatmap struct {
	Matrix schema.CorrelationMatrix `json:"matrix"`
	Min    float64                  `json:"min"`
	Max    float64                  `json:"max"`
	Empty  bool                     `json:"empty"`
}

// NewHeatmap computes the displayed values from windowed and the color domain from full.
func NewHeatmap(windowed, full []schema.Record, keys []string) Heatmap {
	lo, hi := Domain(Compute(full, keys))
	return Heatmap{
		Matrix: Compute(windowed, keys),
		Min:    lo,
		Max:    hi,
		Empty:  len(windowed) == 0,
	}
}

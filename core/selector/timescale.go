package selector

import (
	"time"

	"github.com/huangsam/voltview/schema"
)

// TimeScale maps instants of Domain linearly onto pixels [0, Width].
type TimeScale struct {
	Domain schema.TimeWindow
	Width  float64
}

// Map returns the pixel of t. A degenerate domain maps every instant to 0.
func (s TimeScale) Map(t time.Time) float64 {
	span := s.Domain.Duration()
	if span <= 0 || s.Width <= 0 {
		return 0
	}
	return float64(t.Sub(s.Domain.Start)) / float64(span) * s.Width
}

// Invert returns the instant at pixel x, at millisecond precision.
// A degenerate domain inverts every pixel to Domain.Start.
func (s TimeScale) Invert(x float64) time.Time {
	span := s.Domain.Duration()
	if span <= 0 || s.Width <= 0 {
		return s.Domain.Start
	}
	offset := time.Duration(x / s.Width * float64(span))
	return s.Domain.Start.Add(offset).Round(time.Millisecond)
}

// Clamp limits x to [0, Width].
func (s TimeScale) Clamp(x float64) float64 {
	return min(max(x, 0), max(s.Width, 0))
}

package selector

import "time"

// Gradation thresholds, inclusive upper bounds.
const (
	fiveMinutes = 5 * time.Minute
	oneHour     = time.Hour
	twoHours    = 2 * time.Hour
	oneDay      = 24 * time.Hour
	oneWeek     = 7 * oneDay
	oneMonth    = 30 * oneDay
	threeMonths = 90 * oneDay
)

// Gradation describes the tick marks of the timeline for one window duration.
type Gradation struct {
	Major  Interval
	Minor  Interval // zero when the gradation draws no minor ticks
	Layout string
}

// GradationFor picks the tick interval for a window of duration d. Finer wins on ties.
func GradationFor(d time.Duration) Gradation {
	switch {
	case d <= fiveMinutes:
		return Gradation{Major: Interval{Second, 15}, Layout: "15:04:05"}
	case d <= oneHour:
		return Gradation{Major: Interval{Minute, 5}, Minor: Interval{Second, 15}, Layout: "15:04"}
	case d <= twoHours:
		return Gradation{Major: Interval{Minute, 15}, Minor: Interval{Second, 15}, Layout: "15:04"}
	case d <= oneDay:
		return Gradation{Major: Interval{Hour, 1}, Minor: Interval{Minute, 15}, Layout: "15:04"}
	case d <= oneWeek:
		return Gradation{Major: Interval{Hour, 6}, Minor: Interval{Minute, 15}, Layout: "Jan 02 15:04"}
	case d <= oneMonth:
		return Gradation{Major: Interval{Day, 1}, Layout: "Jan 02"}
	case d <= threeMonths:
		return Gradation{Major: Interval{Week, 1}, Layout: "Jan 02"}
	default:
		return Gradation{Major: Interval{Month, 1}, Layout: "Jan 2006"}
	}
}

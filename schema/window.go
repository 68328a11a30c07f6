package schema

import "time"

// NewTimeWindow returns the window spanning a and b, swapping them when out of order.
func NewTimeWindow(a, b time.Time) TimeWindow {
	if b.Before(a) {
		a, b = b, a
	}
	return TimeWindow{Start: a, End: b}
}

// DefaultWindow spans the calendar year: [Jan 1 00:00:00, Dec 31 23:59:59].
func DefaultWindow(year int, loc *time.Location) TimeWindow {
	if loc == nil {
		loc = time.Local
	}
	return TimeWindow{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, loc),
		End:   time.Date(year, time.December, 31, 23, 59, 59, 0, loc),
	}
}

// Duration returns End - Start.
func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Contains reports whether t lies in the closed interval.
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Covers reports whether o lies entirely inside w.
func (w TimeWindow) Covers(o TimeWindow) bool {
	return w.Contains(o.Start) && w.Contains(o.End)
}

// Equal compares both endpoints as instants.
func (w TimeWindow) Equal(o TimeWindow) bool {
	return w.Start.Equal(o.Start) && w.End.Equal(o.End)
}

// Endpoint returns the instant at e.
func (w TimeWindow) Endpoint(e Endpoint) time.Time {
	if e == EndEndpoint {
		return w.End
	}
	return w.Start
}

// String renders both endpoints in TimestampLayout.
func (w TimeWindow) String() string {
	return w.Start.Format(TimestampLayout) + " - " + w.End.Format(TimestampLayout)
}

package selector

import "time"

// Unit is the calendar field an Interval steps over.
type Unit int

// Interval units, finest first.
const (
	Second Unit = iota
	Minute
	Hour
	Day
	Week
	Month
)

// maxTicks bounds Range so a mismatched interval cannot allocate without limit.
const maxTicks = 10000

// Interval is a calendar-aligned step such as "every 15 seconds" or "every Sunday".
type Interval struct {
	Unit Unit
	Step int
}

// IsZero reports an unset interval.
func (iv Interval) IsZero() bool {
	return iv.Step <= 0
}

// Floor returns the latest boundary of iv at or before t.
func (iv Interval) Floor(t time.Time) time.Time {
	step := max(iv.Step, 1)
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	loc := t.Location()

	switch iv.Unit {
	case Second:
		return time.Date(y, mo, d, h, mi, s-s%step, 0, loc)
	case Minute:
		return time.Date(y, mo, d, h, mi-mi%step, 0, 0, loc)
	case Hour:
		return time.Date(y, mo, d, h-h%step, 0, 0, 0, loc)
	case Day:
		return time.Date(y, mo, d-(d-1)%step, 0, 0, 0, 0, loc)
	case Week:
		return time.Date(y, mo, d-int(t.Weekday()), 0, 0, 0, 0, loc)
	default:
		m := int(mo) - 1
		return time.Date(y, time.Month(m-m%step+1), 1, 0, 0, 0, 0, loc)
	}
}

// Ceil returns the earliest boundary of iv at or after t.
func (iv Interval) Ceil(t time.Time) time.Time {
	f := iv.Floor(t)
	if f.Before(t) {
		return iv.next(f)
	}
	return f
}

// Range lists every boundary b with start <= b < end.
func (iv Interval) Range(start, end time.Time) []time.Time {
	if iv.IsZero() || !start.Before(end) {
		return nil
	}
	var out []time.Time
	for t := iv.Ceil(start); t.Before(end) && len(out) < maxTicks; t = iv.next(t) {
		out = append(out, t)
	}
	return out
}

func (iv Interval) next(t time.Time) time.Time {
	step := max(iv.Step, 1)
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	loc := t.Location()

	switch iv.Unit {
	case Second:
		return time.Date(y, mo, d, h, mi, s+step, 0, loc)
	case Minute:
		return time.Date(y, mo, d, h, mi+step, 0, 0, loc)
	case Hour:
		return time.Date(y, mo, d, h+step, 0, 0, 0, loc)
	case Day:
		return time.Date(y, mo, d+step, 0, 0, 0, 0, loc)
	case Week:
		return time.Date(y, mo, d+7*step, 0, 0, 0, 0, loc)
	default:
		return time.Date(y, mo+time.Month(step), 1, 0, 0, 0, 0, loc)
	}
}

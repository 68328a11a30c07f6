package selector

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/huangsam/voltview/core/window"
	"github.com/huangsam/voltview/schema"
)

// Clock face geometry in SVG user units.
const (
	ClockRadius    = 50.0
	HourHandLength = 30.0
	ClockCenter    = ClockRadius
	degreesPerHour = 15.0
)

// TimeOfDayLayout is the text shown beside each clock.
const TimeOfDayLayout = "15:04:05"

// ClockMark is one of the 24 hour marks around the face.
type ClockMark struct {
	Hour   int     `json:"hour"`
	X1     float64 `json:"x1"`
	Y1     float64 `json:"y1"`
	X2     float64 `json:"x2"`
	Y2     float64 `json:"y2"`
	Label  string  `json:"label,omitempty"`
	LabelX float64 `json:"label_x"`
	LabelY float64 `json:"label_y"`
}

// ClockView is everything needed to draw one dial.
type ClockView struct {
	ID       string      `json:"id"`
	Endpoint string      `json:"endpoint"`
	HandX    float64     `json:"hand_x"`
	HandY    float64     `json:"hand_y"`
	Text     string      `json:"text"`
	Marks    []ClockMark `json:"marks"`
}

// Clock is a 24-hour dial bound to one window endpoint.
type Clock struct {
	store    *window.Store
	endpoint schema.Endpoint

	mu       sync.Mutex
	dragging bool
}

// NewClock binds a dial to endpoint e of store.
func NewClock(store *window.Store, e schema.Endpoint) *Clock {
	return &Clock{store: store, endpoint: e}
}

// Endpoint returns the bound endpoint.
func (c *Clock) Endpoint() schema.Endpoint {
	return c.endpoint
}

// HandAngle returns the hour hand angle in degrees, 15 per hour.
func HandAngle(t time.Time) float64 {
	return (float64(t.Hour()) + float64(t.Minute())/60) * degreesPerHour
}

// HandTip returns the end point of the hour hand for t.
func HandTip(t time.Time) (x, y float64) {
	rad := (HandAngle(t) - 90) * math.Pi / 180
	return ClockCenter + HourHandLength*math.Cos(rad), ClockCenter + HourHandLength*math.Sin(rad)
}

// HourAt maps a pointer position on the face to the nearest hour, 24 wrapping to 0.
func HourAt(x, y float64) int {
	deg := math.Atan2(y-ClockCenter, x-ClockCenter) * 180 / math.Pi
	deg = math.Mod(deg+90+360, 360)
	h := int(math.Round(deg / degreesPerHour))
	if h == 24 {
		h = 0
	}
	return h
}

// Press starts an angle drag and applies the pointer position.
func (c *Clock) Press(ctx context.Context, x, y float64) (schema.TimeWindow, error) {
	c.mu.Lock()
	c.dragging = true
	c.mu.Unlock()
	return c.store.SetHour(ctx, c.endpoint, HourAt(x, y))
}

// Drag applies a pointer move. Moves while idle are ignored and report false.
func (c *Clock) Drag(ctx context.Context, x, y float64) (schema.TimeWindow, bool, error) {
	c.mu.Lock()
	dragging := c.dragging
	c.mu.Unlock()
	if !dragging {
		return c.store.Get(), false, nil
	}
	w, err := c.store.SetHour(ctx, c.endpoint, HourAt(x, y))
	return w, err == nil, err
}

// Release ends the angle drag.
func (c *Clock) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dragging = false
}

// Commit parses "HH:MM" or "HH:MM:SS" and writes it to the endpoint.
// On failure the store is untouched and the error wraps window.ErrInvalidTimeOfDay;
// Text then still returns the last valid value for the input to reset to.
func (c *Clock) Commit(ctx context.Context, text string) (schema.TimeWindow, error) {
	h, m, s, err := ParseTimeOfDay(text)
	if err != nil {
		return c.store.Get(), err
	}
	return c.store.SetTimeOfDay(ctx, c.endpoint, h, m, s)
}

// Text is the endpoint's current time-of-day.
func (c *Clock) Text() string {
	return c.store.Get().Endpoint(c.endpoint).Format(TimeOfDayLayout)
}

// View draws the dial for the current window.
func (c *Clock) View() ClockView {
	t := c.store.Get().Endpoint(c.endpoint)
	x, y := HandTip(t)
	id := schema.StartClockID
	if c.endpoint == schema.EndEndpoint {
		id = schema.EndClockID
	}
	return ClockView{
		ID:       id,
		Endpoint: string(c.endpoint),
		HandX:    x,
		HandY:    y,
		Text:     t.Format(TimeOfDayLayout),
		Marks:    hourMarks(),
	}
}

// ParseTimeOfDay validates "HH:MM[:SS]" with h < 24, m < 60, s < 60.
func ParseTimeOfDay(text string) (hour, minute, second int, err error) {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: %q", window.ErrInvalidTimeOfDay, text)
	}
	limits := []int{24, 60, 60}
	vals := make([]int, 3)
	for i, p := range parts {
		n, convErr := strconv.Atoi(p)
		if convErr != nil || n < 0 || n >= limits[i] {
			return 0, 0, 0, fmt.Errorf("%w: %q", window.ErrInvalidTimeOfDay, text)
		}
		vals[i] = n
	}
	return vals[0], vals[1], vals[2], nil
}

func hourMarks() []ClockMark {
	marks := make([]ClockMark, 24)
	for h := range marks {
		rad := (float64(h)*degreesPerHour - 90) * math.Pi / 180
		cos, sin := math.Cos(rad), math.Sin(rad)
		mark := ClockMark{
			Hour: h,
			X1:   ClockCenter + (ClockRadius-5)*cos,
			Y1:   ClockCenter + (ClockRadius-5)*sin,
			X2:   ClockCenter + ClockRadius*cos,
			Y2:   ClockCenter + ClockRadius*sin,
		}
		if h%3 == 0 {
			mark.Label = strconv.Itoa(h)
			mark.LabelX = ClockCenter + (ClockRadius-15)*cos
			mark.LabelY = ClockCenter + (ClockRadius-15)*sin
		}
		marks[h] = mark
	}
	return marks
}

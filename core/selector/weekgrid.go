package selector

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/huangsam/voltview/core/window"
	"github.com/huangsam/voltview/schema"
)

// WeeksPerGrid is the number of week buttons.
const WeeksPerGrid = 52

// ErrWeekOutOfRange is returned for week indices outside 0..51.
var ErrWeekOutOfRange = errors.New("week index out of range")

// WeekButton is the state of one week in the grid.
type WeekButton struct {
	Index    int       `json:"index"`
	Label    string    `json:"label"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	InRange  bool      `json:"in_range"`
	Selected bool      `json:"selected"`
	Current  bool      `json:"current"`
}

// MonthGroup holds the buttons whose week starts in Month.
type MonthGroup struct {
	Month   time.Month   `json:"month"`
	Name    string       `json:"name"`
	Buttons []WeekButton `json:"buttons"`
}

type weekDrag struct {
	origin  int
	hovered int
}

// WeekGrid is the 52-week selector anchored at Jan 1 of its reference year.
type WeekGrid struct {
	store  *window.Store
	anchor time.Time

	mu   sync.Mutex
	drag *weekDrag // nil when idle
}

// NewWeekGrid creates a grid for year in loc.
func NewWeekGrid(store *window.Store, year int, loc *time.Location) *WeekGrid {
	if loc == nil {
		loc = time.Local
	}
	return &WeekGrid{store: store, anchor: time.Date(year, time.January, 1, 0, 0, 0, 0, loc)}
}

// WeekSpan returns [anchor+7i days, anchor+7(i+1) days - 1s].
func (g *WeekGrid) WeekSpan(i int) schema.TimeWindow {
	start := g.anchor.AddDate(0, 0, 7*i)
	end := g.anchor.AddDate(0, 0, 7*(i+1)).Add(-time.Second)
	return schema.TimeWindow{Start: start, End: end}
}

// SpanFor covers weeks a through b inclusive, in either order.
func (g *WeekGrid) SpanFor(a, b int) schema.TimeWindow {
	lo, hi := min(a, b), max(a, b)
	return schema.TimeWindow{Start: g.WeekSpan(lo).Start, End: g.WeekSpan(hi).End}
}

// WeekIndex returns the week containing t, derived from its day of year.
func (g *WeekGrid) WeekIndex(t time.Time) (int, bool) {
	t = t.In(g.anchor.Location())
	if t.Year() != g.anchor.Year() {
		return 0, false
	}
	i := (t.YearDay() - 1) / 7
	if i >= WeeksPerGrid {
		return 0, false
	}
	return i, true
}

// MarkCurrent flags the button of the week containing now. Times outside the grid mark nothing.
func (g *WeekGrid) MarkCurrent(buttons []WeekButton, now time.Time) {
	if i, ok := g.WeekIndex(now); ok && i < len(buttons) {
		buttons[i].Current = true
	}
}

// Press starts a drag on week i.
func (g *WeekGrid) Press(i int) error {
	if err := checkWeek(i); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.drag = &weekDrag{origin: i, hovered: i}
	return nil
}

// Enter moves the hovered week. Enters while idle are ignored and report false.
func (g *WeekGrid) Enter(i int) bool {
	if checkWeek(i) != nil {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.drag == nil {
		return false
	}
	g.drag.hovered = i
	return true
}

// Release commits the span between the origin and hovered weeks.
// Release while idle is a no-op reporting false.
func (g *WeekGrid) Release(ctx context.Context) (schema.TimeWindow, bool) {
	g.mu.Lock()
	drag := g.drag
	g.drag = nil
	g.mu.Unlock()

	if drag == nil {
		return g.store.Get(), false
	}
	span := g.SpanFor(drag.origin, drag.hovered)
	return g.store.Set(ctx, span.Start, span.End), true
}

// Click selects the single week i.
func (g *WeekGrid) Click(ctx context.Context, i int) (schema.TimeWindow, error) {
	if err := g.Press(i); err != nil {
		return g.store.Get(), err
	}
	w, _ := g.Release(ctx)
	return w, nil
}

// Dragging reports whether a drag is in progress.
func (g *WeekGrid) Dragging() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.drag != nil
}

// Buttons returns the 52 buttons highlighted against the pending drag span,
// or against the store window when idle.
func (g *WeekGrid) Buttons() []WeekButton {
	active := g.store.Get()
	g.mu.Lock()
	if g.drag != nil {
		active = g.SpanFor(g.drag.origin, g.drag.hovered)
	}
	g.mu.Unlock()

	buttons := make([]WeekButton, WeeksPerGrid)
	for i := range buttons {
		span := g.WeekSpan(i)
		buttons[i] = WeekButton{
			Index:    i,
			Label:    strconv.Itoa(i + 1),
			Start:    span.Start,
			End:      span.End,
			InRange:  active.Covers(span),
			Selected: active.Equal(span),
		}
	}
	return buttons
}

// Months groups Buttons by the month of each week's start date.
func (g *WeekGrid) Months() []MonthGroup {
	var groups []MonthGroup
	for _, b := range g.Buttons() {
		m := b.Start.Month()
		if len(groups) == 0 || groups[len(groups)-1].Month != m {
			groups = append(groups, MonthGroup{Month: m, Name: m.String()})
		}
		last := &groups[len(groups)-1]
		last.Buttons = append(last.Buttons, b)
	}
	return groups
}

func checkWeek(i int) error {
	if i < 0 || i >= WeeksPerGrid {
		return fmt.Errorf("%w: %d", ErrWeekOutOfRange, i)
	}
	return nil
}

package selector

import (
	"context"
	"sync"
	"time"

	"github.com/huangsam/voltview/core/window"
	"github.com/huangsam/voltview/schema"
)

// TimelineHeight is the drawn height of the timeline strip in pixels.
const TimelineHeight = 50

// Tick is one gradation mark on the timeline.
type Tick struct {
	At    time.Time `json:"at"`
	X     float64   `json:"x"`
	Label string    `json:"label,omitempty"`
}

// Rect is the live drag selection rectangle.
type Rect struct {
	X     float64 `json:"x"`
	Width float64 `json:"width"`
}

// TimelineView is everything needed to draw the timeline.
type TimelineView struct {
	Width     float64           `json:"width"`
	Height    float64           `json:"height"`
	Domain    schema.TimeWindow `json:"domain"`
	Major     []Tick            `json:"major"`
	Minor     []Tick            `json:"minor"`
	Selection *Rect             `json:"selection,omitempty"`
}

type timelineDrag struct {
	originX  float64
	currentX float64
}

// Timeline is the drag-to-zoom selector. Its scale is always rebuilt from the current window.
type Timeline struct {
	store *window.Store
	width float64

	mu   sync.Mutex
	drag *timelineDrag // nil when idle
}

// NewTimeline creates a timeline of the given pixel width over store.
func NewTimeline(store *window.Store, width float64) *Timeline {
	return &Timeline{store: store, width: width}
}

// Scale returns the pixel mapping of the current window.
func (tl *Timeline) Scale() TimeScale {
	return TimeScale{Domain: tl.store.Get(), Width: tl.width}
}

// Press starts a drag at x.
func (tl *Timeline) Press(x float64) {
	x = tl.Scale().Clamp(x)
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.drag = &timelineDrag{originX: x, currentX: x}
}

// Move updates the selection rectangle. It reports false while idle.
func (tl *Timeline) Move(x float64) bool {
	x = tl.Scale().Clamp(x)
	tl.mu.Lock()
	defer tl.mu.Unlock()
	if tl.drag == nil {
		return false
	}
	tl.drag.currentX = x
	return true
}

// Release ends the drag at x and writes the inverted span to the store.
// It reports false when idle or when the drag has zero width.
func (tl *Timeline) Release(ctx context.Context, x float64) (schema.TimeWindow, bool) {
	scale := tl.Scale()
	x = scale.Clamp(x)

	tl.mu.Lock()
	drag := tl.drag
	tl.drag = nil
	tl.mu.Unlock()

	if drag == nil || drag.originX == x {
		return scale.Domain, false
	}
	lo, hi := min(drag.originX, x), max(drag.originX, x)
	return tl.store.Set(ctx, scale.Invert(lo), scale.Invert(hi)), true
}

// Cancel abandons any drag in progress.
func (tl *Timeline) Cancel() {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.drag = nil
}

// View computes ticks for the current window and the live selection rectangle.
func (tl *Timeline) View() TimelineView {
	scale := tl.Scale()
	g := GradationFor(scale.Domain.Duration())

	view := TimelineView{
		Width:  tl.width,
		Height: TimelineHeight,
		Domain: scale.Domain,
	}
	for _, t := range g.Major.Range(scale.Domain.Start, scale.Domain.End) {
		view.Major = append(view.Major, Tick{At: t, X: scale.Map(t), Label: t.Format(g.Layout)})
	}
	if !g.Minor.IsZero() {
		for _, t := range g.Minor.Range(scale.Domain.Start, scale.Domain.End) {
			view.Minor = append(view.Minor, Tick{At: t, X: scale.Map(t)})
		}
	}

	tl.mu.Lock()
	if tl.drag != nil {
		lo, hi := min(tl.drag.originX, tl.drag.currentX), max(tl.drag.originX, tl.drag.currentX)
		view.Selection = &Rect{X: lo, Width: hi - lo}
	}
	tl.mu.Unlock()

	return view
}

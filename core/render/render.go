// Package render re-derives every dashboard view from the current window,
// the checked metrics and the full dataset.
package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/huangsam/voltview/core/filter"
	"github.com/huangsam/voltview/core/selector"
	"github.com/huangsam/voltview/core/window"
	"github.com/huangsam/voltview/internal/contract"
	"github.com/huangsam/voltview/schema"
)

// ErrStaleRender is returned when a newer render started while this one was fetching.
var ErrStaleRender = errors.New("stale render")

// Render outcomes reported to Options.Observe.
const (
	ResultOK    = "ok"
	ResultStale = "stale"
	ResultError = "error"
)

// Sink receives each completed dashboard and replaces its previous one.
type Sink interface {
	Publish(d *Dashboard)
}

// Widgets are the selector widgets whose state is part of every render.
type Widgets struct {
	Grid     *selector.WeekGrid
	Timeline *selector.Timeline
	Start    *selector.Clock
	End      *selector.Clock
}

// Options tunes derivation and reporting.
type Options struct {
	Stride          int
	Location        *time.Location
	CorrelationKeys []string
	Logger          *slog.Logger
	Observe         func(result string, elapsed time.Duration)
	Now             func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Stride == 0 {
		o.Stride = filter.DefaultStride
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.CorrelationKeys == nil {
		o.CorrelationKeys = schema.CorrelationKeys()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Dispatcher runs full render cycles. Each cycle takes a new generation and
// is dropped if another cycle started before it finished fetching.
type Dispatcher struct {
	store     *window.Store
	selection *window.Selection
	widgets   Widgets
	fetcher   contract.Fetcher
	sink      Sink
	opts      Options

	generation atomic.Uint64

	publishMu sync.Mutex
	published uint64
}

// NewDispatcher wires a dispatcher. Call Bind to render on every state change.
func NewDispatcher(
	store *window.Store,
	selection *window.Selection,
	widgets Widgets,
	fetcher contract.Fetcher,
	sink Sink,
	opts Options,
) *Dispatcher {
	return &Dispatcher{
		store:     store,
		selection: selection,
		widgets:   widgets,
		fetcher:   fetcher,
		sink:      sink,
		opts:      opts.withDefaults(),
	}
}

// Bind subscribes the dispatcher to the window store and the metric selection.
func (d *Dispatcher) Bind() {
	d.store.Subscribe(func(ctx context.Context, _ schema.TimeWindow) {
		d.renderAndLog(ctx)
	})
	d.selection.Subscribe(func(ctx context.Context, _ []string) {
		d.renderAndLog(ctx)
	})
}

// Generation returns the number of the most recently started cycle.
func (d *Dispatcher) Generation() uint64 {
	return d.generation.Load()
}

func (d *Dispatcher) renderAndLog(ctx context.Context) {
	if _, err := d.RenderAll(ctx); err != nil && !errors.Is(err, ErrStaleRender) {
		d.opts.Logger.Error("render failed", "trigger", TriggerFrom(ctx), "error", err)
	}
}

// RenderAll runs one render cycle and publishes the result to the sink.
func (d *Dispatcher) RenderAll(ctx context.Context) (*Dashboard, error) {
	started := time.Now()
	gen := d.generation.Add(1)
	snap := d.snapshot(gen)

	records, err := d.fetcher.Fetch(ctx)
	if err != nil {
		d.observe(ResultError, started)
		return nil, fmt.Errorf("failed to fetch telemetry: %w", err)
	}
	if d.generation.Load() != gen {
		d.observe(ResultStale, started)
		return nil, ErrStaleRender
	}
	snap.Records = records
	dash := Build(snap, d.opts)

	if !d.publish(gen, dash) {
		d.observe(ResultStale, started)
		return nil, ErrStaleRender
	}
	d.observe(ResultOK, started)
	d.opts.Logger.Debug("rendered dashboard",
		"generation", gen,
		"trigger", TriggerFrom(ctx),
		"records", dash.RecordsInWindow,
		"charts", len(dash.Lines),
	)
	return dash, nil
}

func (d *Dispatcher) snapshot(gen uint64) Snapshot {
	snap := Snapshot{
		Generation: gen,
		Window:     d.store.Get(),
		Checked:    d.selection.Checked(),
	}
	if d.widgets.Grid != nil {
		snap.Weeks = d.widgets.Grid.Months()
	}
	if d.widgets.Timeline != nil {
		snap.Timeline = d.widgets.Timeline.View()
	}
	if d.widgets.Start != nil {
		snap.StartClock = d.widgets.Start.View()
	}
	if d.widgets.End != nil {
		snap.EndClock = d.widgets.End.View()
	}
	return snap
}

// publish hands dash to the sink unless a newer cycle already started or published.
func (d *Dispatcher) publish(gen uint64, dash *Dashboard) bool {
	d.publishMu.Lock()
	defer d.publishMu.Unlock()
	if gen <= d.published || d.generation.Load() != gen {
		return false
	}
	d.published = gen
	d.sink.Publish(dash)
	return true
}

func (d *Dispatcher) observe(result string, started time.Time) {
	if d.opts.Observe != nil {
		d.opts.Observe(result, time.Since(started))
	}
}

// Board is a Sink that keeps the latest dashboard.
type Board struct {
	mu     sync.RWMutex
	latest *Dashboard
}

var _ Sink = &Board{} // Compile-time check

// Publish implements Sink.
func (b *Board) Publish(d *Dashboard) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.latest = d
}

// Latest returns the last published dashboard, or nil before the first render.
func (b *Board) Latest() *Dashboard {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.latest
}

package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/huangsam/voltview/core/corr"
	"github.com/huangsam/voltview/core/filter"
	"github.com/huangsam/voltview/core/render"
	"github.com/huangsam/voltview/core/selector"
	"github.com/huangsam/voltview/core/window"
	"github.com/huangsam/voltview/internal/contract"
	"github.com/huangsam/voltview/schema"
)

// Session is the single dashboard owned by the process: the window, the
// checked metrics, the selector widgets and the latest render.
type Session struct {
	cfg     *contract.Config
	fetcher contract.Fetcher

	Store      *window.Store
	Selection  *window.Selection
	Grid       *selector.WeekGrid
	Timeline   *selector.Timeline
	StartClock *selector.Clock
	EndClock   *selector.Clock
	Board      *render.Board
	Dispatcher *render.Dispatcher
}

// NewSession wires every component of the dashboard and binds the render dispatcher.
// observe may be nil.
func NewSession(cfg *contract.Config, fetcher contract.Fetcher, logger *slog.Logger, observe func(string, time.Duration)) (*Session, error) {
	selection, err := window.NewSelection(cfg.Metrics)
	if err != nil {
		return nil, err
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	initial := cfg.Window
	if initial.Start.IsZero() && initial.End.IsZero() {
		initial = schema.DefaultWindow(cfg.Year, loc)
	}

	store := window.NewStore(initial)
	s := &Session{
		cfg:        cfg,
		fetcher:    fetcher,
		Store:      store,
		Selection:  selection,
		Grid:       selector.NewWeekGrid(store, cfg.Year, loc),
		Timeline:   selector.NewTimeline(store, cfg.TimelineWidth),
		StartClock: selector.NewClock(store, schema.StartEndpoint),
		EndClock:   selector.NewClock(store, schema.EndEndpoint),
		Board:      &render.Board{},
	}
	s.Dispatcher = render.NewDispatcher(store, selection, render.Widgets{
		Grid:     s.Grid,
		Timeline: s.Timeline,
		Start:    s.StartClock,
		End:      s.EndClock,
	}, fetcher, s.Board, render.Options{
		Stride:   cfg.Stride,
		Location: loc,
		Logger:   logger,
		Observe:  observe,
	})
	s.Dispatcher.Bind()
	return s, nil
}

// Location is the zone timestamps are interpreted in.
func (s *Session) Location() *time.Location {
	if s.cfg.Location == nil {
		return time.Local
	}
	return s.cfg.Location
}

// Clock returns the dial bound to endpoint e.
func (s *Session) Clock(e schema.Endpoint) (*selector.Clock, error) {
	switch e {
	case schema.StartEndpoint:
		return s.StartClock, nil
	case schema.EndEndpoint:
		return s.EndClock, nil
	default:
		return nil, fmt.Errorf("unknown clock endpoint: %s", e)
	}
}

// Dashboard returns the latest render, rendering first when nothing was published yet.
func (s *Session) Dashboard(ctx context.Context) (*render.Dashboard, error) {
	if d := s.Board.Latest(); d != nil {
		return d, nil
	}
	return s.Refresh(ctx)
}

// Refresh forces a render cycle. A stale result falls back to the newer published dashboard.
func (s *Session) Refresh(ctx context.Context) (*render.Dashboard, error) {
	d, err := s.Dispatcher.RenderAll(ctx)
	if errors.Is(err, render.ErrStaleRender) {
		if latest := s.Board.Latest(); latest != nil {
			return latest, nil
		}
	}
	return d, err
}

// Records returns the records inside the current window.
func (s *Session) Records(ctx context.Context) ([]schema.Record, error) {
	all, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch telemetry: %w", err)
	}
	return filter.ByWindow(all, s.Store.Get(), s.Location()), nil
}

// Correlation computes the correlation report for the current window.
func (s *Session) Correlation(ctx context.Context) (schema.CorrelationReport, error) {
	all, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return schema.CorrelationReport{}, fmt.Errorf("failed to fetch telemetry: %w", err)
	}
	w := s.Store.Get()
	keys := schema.CorrelationKeys()
	windowed := filter.Project(filter.ByWindow(all, w, s.Location()), keys)
	hm := corr.NewHeatmap(windowed, all, keys)
	return schema.CorrelationReport{
		Window:  w,
		Records: len(windowed),
		Matrix:  hm.Matrix,
		Min:     hm.Min,
		Max:     hm.Max,
	}, nil
}

// Package window owns the shared TimeWindow and the checked-metric set.
// Both are observable: every successful write notifies subscribers
// synchronously, in registration order, after the lock is released.
package window

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/huangsam/voltview/schema"
)

// ErrInvalidTimeOfDay is returned when a time-of-day is outside 00:00:00..23:59:59.
var ErrInvalidTimeOfDay = errors.New("invalid time of day")

// Listener is called after every successful window write.
type Listener func(ctx context.Context, w schema.TimeWindow)

type listenerEntry struct {
	id int
	fn Listener
}

// Store is the single source of truth for the selected TimeWindow.
type Store struct {
	mu        sync.RWMutex
	win       schema.TimeWindow
	listeners []listenerEntry
	nextID    int
}

// NewStore creates a store holding initial, normalized so Start <= End.
func NewStore(initial schema.TimeWindow) *Store {
	return &Store{win: schema.NewTimeWindow(initial.Start, initial.End)}
}

// Get returns the current window.
func (s *Store) Get() schema.TimeWindow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.win
}

// Set replaces both endpoints, swapping them when start is after end.
func (s *Store) Set(ctx context.Context, start, end time.Time) schema.TimeWindow {
	s.mu.Lock()
	s.win = schema.NewTimeWindow(start, end)
	w := s.win
	listeners := s.snapshot()
	s.mu.Unlock()

	notify(ctx, listeners, w)
	return w
}

// SetTimeOfDay overwrites the time-of-day of one endpoint and keeps its date.
// The window is swapped afterwards when the endpoints cross.
func (s *Store) SetTimeOfDay(ctx context.Context, e schema.Endpoint, hour, minute, second int) (schema.TimeWindow, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return s.Get(), fmt.Errorf("%w: %02d:%02d:%02d", ErrInvalidTimeOfDay, hour, minute, second)
	}
	return s.updateEndpoint(ctx, e, func(t time.Time) time.Time {
		return withTimeOfDay(t, hour, minute, second)
	}), nil
}

// SetHour overwrites only the hour of one endpoint, keeping minutes, seconds and date.
func (s *Store) SetHour(ctx context.Context, e schema.Endpoint, hour int) (schema.TimeWindow, error) {
	if hour < 0 || hour > 23 {
		return s.Get(), fmt.Errorf("%w: hour %d", ErrInvalidTimeOfDay, hour)
	}
	return s.updateEndpoint(ctx, e, func(t time.Time) time.Time {
		return withTimeOfDay(t, hour, t.Minute(), t.Second())
	}), nil
}

// updateEndpoint rewrites one endpoint with fn under a single lock, then notifies.
func (s *Store) updateEndpoint(ctx context.Context, e schema.Endpoint, fn func(time.Time) time.Time) schema.TimeWindow {
	s.mu.Lock()
	start, end := s.win.Start, s.win.End
	if e == schema.EndEndpoint {
		end = fn(end)
	} else {
		start = fn(start)
	}
	s.win = schema.NewTimeWindow(start, end)
	w := s.win
	listeners := s.snapshot()
	s.mu.Unlock()

	notify(ctx, listeners, w)
	return w
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// snapshot must be called with the lock held.
func (s *Store) snapshot() []Listener {
	out := make([]Listener, len(s.listeners))
	for i, l := range s.listeners {
		out[i] = l.fn
	}
	return out
}

func notify(ctx context.Context, listeners []Listener, w schema.TimeWindow) {
	for _, fn := range listeners {
		fn(ctx, w)
	}
}

func withTimeOfDay(t time.Time, hour, minute, second int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, second, 0, t.Location())
}

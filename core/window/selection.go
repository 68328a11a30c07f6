package window

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/huangsam/voltview/schema"
)

// ErrUnknownMetric is returned for ids missing from the metric registry.
var ErrUnknownMetric = errors.New("unknown metric")

// SelectionListener is called after every checked-set change with the checked ids in registry order.
type SelectionListener func(ctx context.Context, checked []string)

// Selection is the observable set of checked metrics.
type Selection struct {
	mu        sync.RWMutex
	checked   map[string]bool
	listeners []SelectionListener
}

// NewSelection checks the given ids. A nil slice checks every registry metric.
func NewSelection(ids []string) (*Selection, error) {
	if ids == nil {
		ids = schema.MetricIDs()
	}
	checked := make(map[string]bool, len(ids))
	for _, id := range ids {
		m, ok := schema.LookupMetric(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownMetric, id)
		}
		checked[m.ID] = true
	}
	return &Selection{checked: checked}, nil
}

// Toggle sets the checked state of one metric. Unchanged states do not notify.
func (s *Selection) Toggle(ctx context.Context, id string, checked bool) error {
	m, ok := schema.LookupMetric(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMetric, id)
	}

	s.mu.Lock()
	if s.checked[m.ID] == checked {
		s.mu.Unlock()
		return nil
	}
	if checked {
		s.checked[m.ID] = true
	} else {
		delete(s.checked, m.ID)
	}
	ids := s.orderedLocked()
	listeners := append([]SelectionListener(nil), s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(ctx, ids)
	}
	return nil
}

// IsChecked reports whether the metric is checked.
func (s *Selection) IsChecked(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.checked[id]
}

// Checked returns the checked ids in registry order.
func (s *Selection) Checked() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orderedLocked()
}

// Subscribe registers fn for checked-set changes.
func (s *Selection) Subscribe(fn SelectionListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Selection) orderedLocked() []string {
	ids := make([]string, 0, len(s.checked))
	for _, m := range schema.Metrics {
		if s.checked[m.ID] {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

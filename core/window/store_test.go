package window

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/huangsam/voltview/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d, h, m, s int) time.Time {
	return time.Date(2023, time.March, d, h, m, s, 0, time.UTC)
}

func TestStoreSetSwapsOutOfOrder(t *testing.T) {
	s := NewStore(schema.DefaultWindow(2023, time.UTC))

	w := s.Set(context.Background(), day(10, 0, 0, 0), day(2, 0, 0, 0))
	assert.Equal(t, day(2, 0, 0, 0), w.Start)
	assert.Equal(t, day(10, 0, 0, 0), w.End)
	assert.Equal(t, w, s.Get())
}

func TestNewStoreNormalizes(t *testing.T) {
	s := NewStore(schema.TimeWindow{Start: day(9, 0, 0, 0), End: day(1, 0, 0, 0)})
	assert.False(t, s.Get().End.Before(s.Get().Start))
}

func TestStoreSetTimeOfDay(t *testing.T) {
	tests := []struct {
		name      string
		endpoint  schema.Endpoint
		h, m, sec int
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"start keeps date", schema.StartEndpoint, 8, 30, 0, day(2, 8, 30, 0), day(5, 18, 0, 0)},
		{"end keeps date", schema.EndEndpoint, 23, 59, 59, day(2, 6, 0, 0), day(5, 23, 59, 59)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(schema.NewTimeWindow(day(2, 6, 0, 0), day(5, 18, 0, 0)))
			w, err := s.SetTimeOfDay(context.Background(), tt.endpoint, tt.h, tt.m, tt.sec)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, w.Start)
			assert.Equal(t, tt.wantEnd, w.End)
		})
	}
}

func TestStoreSetTimeOfDaySwapsOnSameDay(t *testing.T) {
	s := NewStore(schema.NewTimeWindow(day(2, 6, 0, 0), day(2, 18, 0, 0)))

	w, err := s.SetTimeOfDay(context.Background(), schema.StartEndpoint, 20, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, day(2, 18, 0, 0), w.Start)
	assert.Equal(t, day(2, 20, 0, 0), w.End)
}

func TestStoreSetTimeOfDayRejectsOutOfRange(t *testing.T) {
	initial := schema.NewTimeWindow(day(2, 6, 0, 0), day(5, 18, 0, 0))
	s := NewStore(initial)
	calls := 0
	s.Subscribe(func(context.Context, schema.TimeWindow) { calls++ })

	for _, hms := range [][3]int{{24, 0, 0}, {12, 60, 0}, {12, 0, 60}, {-1, 0, 0}} {
		_, err := s.SetTimeOfDay(context.Background(), schema.StartEndpoint, hms[0], hms[1], hms[2])
		assert.ErrorIs(t, err, ErrInvalidTimeOfDay)
	}
	assert.Equal(t, initial, s.Get())
	assert.Zero(t, calls)
}

func TestStoreSetHourKeepsMinutesAndSeconds(t *testing.T) {
	s := NewStore(schema.NewTimeWindow(day(2, 6, 15, 30), day(5, 18, 0, 0)))

	w, err := s.SetHour(context.Background(), schema.StartEndpoint, 9)
	require.NoError(t, err)
	assert.Equal(t, day(2, 9, 15, 30), w.Start)
}

func TestStoreSetHourRejectsOutOfRange(t *testing.T) {
	initial := schema.NewTimeWindow(day(2, 6, 15, 30), day(5, 18, 0, 0))
	s := NewStore(initial)

	_, err := s.SetHour(context.Background(), schema.EndEndpoint, 24)
	assert.ErrorIs(t, err, ErrInvalidTimeOfDay)
	assert.Equal(t, initial, s.Get())
}

func TestStoreSetHourKeepsConcurrentMinutes(t *testing.T) {
	s := NewStore(schema.NewTimeWindow(day(2, 0, 0, 0), day(5, 18, 0, 0)))

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.SetHour(context.Background(), schema.StartEndpoint, 5)
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = s.SetTimeOfDay(context.Background(), schema.StartEndpoint, 5, 30, 15)
	}()
	wg.Wait()

	assert.Equal(t, day(2, 5, 30, 15), s.Get().Start)
}

func TestStoreNotifiesInRegistrationOrder(t *testing.T) {
	s := NewStore(schema.DefaultWindow(2023, time.UTC))
	var order []int
	var seen schema.TimeWindow

	s.Subscribe(func(_ context.Context, w schema.TimeWindow) {
		order = append(order, 1)
		seen = w
		// Reading from a listener must not deadlock.
		assert.Equal(t, w, s.Get())
	})
	s.Subscribe(func(context.Context, schema.TimeWindow) { order = append(order, 2) })

	w := s.Set(context.Background(), day(1, 0, 0, 0), day(3, 0, 0, 0))
	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, w, seen)
}

func TestStoreUnsubscribe(t *testing.T) {
	s := NewStore(schema.DefaultWindow(2023, time.UTC))
	calls := 0
	cancel := s.Subscribe(func(context.Context, schema.TimeWindow) { calls++ })

	s.Set(context.Background(), day(1, 0, 0, 0), day(2, 0, 0, 0))
	cancel()
	s.Set(context.Background(), day(1, 0, 0, 0), day(3, 0, 0, 0))
	assert.Equal(t, 1, calls)
}

func TestStoreConcurrentWritesKeepInvariant(t *testing.T) {
	s := NewStore(schema.DefaultWindow(2023, time.UTC))
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Set(context.Background(), day(1+i%20, 0, 0, 0), day(20-i%20, 0, 0, 0))
		}(i)
	}
	wg.Wait()

	w := s.Get()
	assert.False(t, w.End.Before(w.Start))
}

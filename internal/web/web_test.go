package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/voltview/core"
	"github.com/huangsam/voltview/core/render"
	"github.com/huangsam/voltview/internal/contract"
	"github.com/huangsam/voltview/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func telemetry() []schema.Record {
	return []schema.Record{
		{schema.TimestampField: "2023-01-02T00:00:00", "voltaje": 120.0, "corriente": 1.0},
		{schema.TimestampField: "2023-01-02T00:00:10", "voltaje": 122.0, "corriente": 2.0},
		{schema.TimestampField: "2023-07-01T00:00:00", "voltaje": 200.0, "corriente": 0.5},
	}
}

func newTestServer(t *testing.T) (*Server, *core.Session) {
	t.Helper()
	return newTestServerWith(t, telemetry())
}

func newTestServerWith(t *testing.T, records []schema.Record) (*Server, *core.Session) {
	t.Helper()
	f := new(contract.MockFetcher)
	f.On("Fetch", mock.Anything).Return(records, nil)

	metrics := NewMetrics()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &contract.Config{Year: 2023, Location: time.UTC, TimelineWidth: 960, Metrics: []string{"voltage"}, Stride: 1}
	session, err := core.NewSession(cfg, f, logger, metrics.ObserveRender)
	require.NoError(t, err)
	return NewServer(session, metrics, logger), session
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeEvent(t *testing.T, rec *httptest.ResponseRecorder) eventResponse {
	t.Helper()
	var ev eventResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&ev))
	return ev
}

func TestHealthAndRequestID(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestDashboardEndpoints(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	rec := do(t, h, http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var d render.Dashboard
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&d))
	assert.Equal(t, uint64(1), d.Generation)
	assert.Equal(t, 3, d.TotalRecords)
	assert.Equal(t, []string{"voltage"}, d.Checked)

	rec = do(t, h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="time-grid"`)

	rec = do(t, h, http.MethodGet, "/charts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "echarts")

	rec = do(t, h, http.MethodGet, "/api/correlation", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pairs"`)
}

func TestDashboardWithNonNumericStrings(t *testing.T) {
	s, _ := newTestServerWith(t, []schema.Record{
		{schema.TimestampField: "2023-01-02T00:00:00", "ESP32_temp": "nan", "voltaje": "inf"},
		{schema.TimestampField: "2023-01-02T00:00:10", "ESP32_temp": 30.0, "voltaje": 121.0},
	})
	h := s.Handler()

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/metrics/temperature", `{"checked":true}`).Code)

	rec := do(t, h, http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var d render.Dashboard
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&d))

	temp, ok := d.Line("temperature")
	require.True(t, ok)
	require.NotEmpty(t, temp.Points)
	assert.Equal(t, 0.0, temp.Points[0].Value)

	volt, ok := d.Line("voltage")
	require.True(t, ok)
	assert.Equal(t, 121.0, volt.Max)
}

func TestWriteJSONEncodeFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, map[string]float64{"value": math.NaN()})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body.Error, "failed to encode response")
}

func TestWindowEndpoints(t *testing.T) {
	s, session := newTestServer(t)
	h := s.Handler()

	rec := do(t, h, http.MethodPut, "/api/window", `{"start":"2023-03-01T00:00:00Z","end":"2023-02-01T00:00:00Z"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	ev := decodeEvent(t, rec)
	assert.True(t, ev.Changed)
	assert.Equal(t, time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), session.Store.Get().Start)

	rec = do(t, h, http.MethodPut, "/api/window", `{"start":"2023-03-01T00:00:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/window", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var w schema.TimeWindow
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&w))
	assert.True(t, w.Equal(session.Store.Get()))
}

func TestMetricToggle(t *testing.T) {
	s, session := newTestServer(t)
	h := s.Handler()

	rec := do(t, h, http.MethodPost, "/api/metrics/current", `{"checked":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeEvent(t, rec).Changed)
	assert.True(t, session.Selection.IsChecked("current"))

	d := session.Board.Latest()
	require.NotNil(t, d)
	_, ok := d.Line("current")
	assert.True(t, ok)

	rec = do(t, h, http.MethodPost, "/api/metrics/current", `{"checked":true}`)
	assert.False(t, decodeEvent(t, rec).Changed)

	rec = do(t, h, http.MethodPost, "/api/metrics/bogus", `{"checked":true}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/metrics/current", `{"checked":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWeekEvents(t *testing.T) {
	s, session := newTestServer(t)
	h := s.Handler()

	rec := do(t, h, http.MethodPost, "/api/weeks/0/click", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, session.Store.Get().Equal(session.Grid.WeekSpan(0)))

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/weeks/1/press", "").Code)
	ev := decodeEvent(t, do(t, h, http.MethodPost, "/api/weeks/3/enter", ""))
	assert.True(t, ev.Changed)
	assert.True(t, session.Store.Get().Equal(session.Grid.WeekSpan(0)))

	rec = do(t, h, http.MethodPost, "/api/pointerup", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeEvent(t, rec).Changed)
	assert.True(t, session.Store.Get().Equal(session.Grid.SpanFor(1, 3)))

	rec = do(t, h, http.MethodPost, "/api/pointerup", "")
	assert.False(t, decodeEvent(t, rec).Changed)

	rec = do(t, h, http.MethodPost, "/api/weeks/99/press", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/weeks/abc/press", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTimelineEvents(t *testing.T) {
	s, session := newTestServer(t)
	h := s.Handler()
	before := session.Store.Get()

	do(t, h, http.MethodPost, "/api/timeline/press", `{"x":100}`)
	ev := decodeEvent(t, do(t, h, http.MethodPost, "/api/timeline/release", `{"x":100}`))
	assert.False(t, ev.Changed)
	assert.True(t, session.Store.Get().Equal(before))

	do(t, h, http.MethodPost, "/api/timeline/press", `{"x":0}`)
	assert.True(t, decodeEvent(t, do(t, h, http.MethodPost, "/api/timeline/move", `{"x":240}`)).Changed)
	ev = decodeEvent(t, do(t, h, http.MethodPost, "/api/timeline/release", `{"x":480}`))
	assert.True(t, ev.Changed)
	assert.Equal(t, before.Start, session.Store.Get().Start)
	assert.True(t, session.Store.Get().End.Before(before.End))

	ev = decodeEvent(t, do(t, h, http.MethodPost, "/api/timeline/move", `{"x":10}`))
	assert.False(t, ev.Changed)
}

func TestTimelineReleaseSurvivesPointerUp(t *testing.T) {
	s, session := newTestServer(t)
	h := s.Handler()
	before := session.Store.Get()

	do(t, h, http.MethodPost, "/api/timeline/press", `{"x":100}`)
	do(t, h, http.MethodPost, "/api/timeline/move", `{"x":300}`)
	require.False(t, decodeEvent(t, do(t, h, http.MethodPost, "/api/pointerup", "")).Changed)

	ev := decodeEvent(t, do(t, h, http.MethodPost, "/api/timeline/release", `{"x":300}`))
	assert.True(t, ev.Changed)
	assert.True(t, session.Store.Get().Start.After(before.Start))
	assert.True(t, session.Store.Get().End.Before(before.End))
}

func TestTimelineCancel(t *testing.T) {
	s, session := newTestServer(t)
	h := s.Handler()
	before := session.Store.Get()

	do(t, h, http.MethodPost, "/api/timeline/press", `{"x":100}`)
	do(t, h, http.MethodPost, "/api/timeline/move", `{"x":300}`)
	rec := do(t, h, http.MethodPost, "/api/timeline/cancel", "")
	require.Equal(t, http.StatusOK, rec.Code)

	ev := decodeEvent(t, do(t, h, http.MethodPost, "/api/timeline/release", `{"x":300}`))
	assert.False(t, ev.Changed)
	assert.True(t, session.Store.Get().Equal(before))
}

func TestClockEvents(t *testing.T) {
	s, session := newTestServer(t)
	h := s.Handler()

	rec := do(t, h, http.MethodPost, "/api/clocks/start/time", `{"text":"08:30"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	start := session.Store.Get().Start
	assert.Equal(t, 8, start.Hour())
	assert.Equal(t, 30, start.Minute())

	rec = do(t, h, http.MethodPost, "/api/clocks/start/time", `{"text":"25:99"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var er errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&er))
	assert.Equal(t, session.StartClock.Text(), er.Text)
	assert.Equal(t, start, session.Store.Get().Start)

	rec = do(t, h, http.MethodPost, "/api/clocks/end/drag", `{"x":0,"y":-80}`)
	assert.False(t, decodeEvent(t, rec).Changed)

	rec = do(t, h, http.MethodPost, "/api/clocks/end/release", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/clocks/middle/press", `{"x":0,"y":0}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	do(t, h, http.MethodGet, "/api/dashboard", "")
	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `voltview_renders_total{result="ok"} 1`)
	assert.Contains(t, body, `voltview_http_requests_total{route="/api/dashboard",status="200"} 1`)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s, _ := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

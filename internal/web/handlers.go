package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/huangsam/voltview/core/render"
	"github.com/huangsam/voltview/core/selector"
	"github.com/huangsam/voltview/core/window"
	"github.com/huangsam/voltview/internal/chart"
	"github.com/huangsam/voltview/schema"
)

// eventResponse is returned by every widget event.
type eventResponse struct {
	Window     schema.TimeWindow `json:"window"`
	Changed    bool              `json:"changed"`
	Generation uint64            `json:"generation"`
}

type errorResponse struct {
	Error string `json:"error"`
	Text  string `json:"text,omitempty"`
}

type pointBody struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type toggleBody struct {
	Checked bool `json:"checked"`
}

type textBody struct {
	Text string `json:"text"`
}

type windowBody struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(errorResponse{Error: fmt.Sprintf("failed to encode response: %v", err)})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// decodeBody reads an optional JSON body. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func (s *Server) event(w http.ResponseWriter, win schema.TimeWindow, changed bool) {
	writeJSON(w, http.StatusOK, eventResponse{
		Window:     win,
		Changed:    changed,
		Generation: s.session.Dispatcher.Generation(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleShell(w http.ResponseWriter, r *http.Request) {
	d, err := s.session.Dashboard(render.WithTrigger(r.Context(), "page.load"))
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := chart.RenderShell(w, d); err != nil {
		s.logger.Error("failed to render shell", "error", err)
	}
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	d, err := s.session.Dashboard(render.WithTrigger(r.Context(), "charts.load"))
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := chart.RenderPage(w, d); err != nil {
		s.logger.Error("failed to render charts", "error", err)
	}
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.session.Dashboard(render.WithTrigger(r.Context(), "api.dashboard"))
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleGetWindow(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Store.Get())
}

func (s *Server) handleSetWindow(w http.ResponseWriter, r *http.Request) {
	var body windowBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.Start.IsZero() || body.End.IsZero() {
		writeError(w, http.StatusBadRequest, errors.New("start and end are required"))
		return
	}
	before := s.session.Store.Get()
	win := s.session.Store.Set(render.WithTrigger(r.Context(), "api.window"), body.Start, body.End)
	s.event(w, win, !before.Equal(win))
}

func (s *Server) handleCorrelation(w http.ResponseWriter, r *http.Request) {
	report, err := s.session.Correlation(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		schema.CorrelationReport
		Pairs []schema.CorrelationPair `json:"pairs"`
	}{report, report.Matrix.Pairs()})
}

func (s *Server) handleToggleMetric(w http.ResponseWriter, r *http.Request) {
	var body toggleBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	id := mux.Vars(r)["id"]
	changed := s.session.Selection.IsChecked(id) != body.Checked
	ctx := render.WithTrigger(r.Context(), "metric."+id)
	if err := s.session.Selection.Toggle(ctx, id, body.Checked); err != nil {
		if errors.Is(err, window.ErrUnknownMetric) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.event(w, s.session.Store.Get(), changed)
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	var body pointBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	tl := s.session.Timeline
	switch action := mux.Vars(r)["action"]; action {
	case "press":
		tl.Press(body.X)
		s.event(w, s.session.Store.Get(), false)
	case "move":
		s.event(w, s.session.Store.Get(), tl.Move(body.X))
	case "release":
		win, changed := tl.Release(render.WithTrigger(r.Context(), "timeline.release"), body.X)
		if !changed {
			win = s.session.Store.Get()
		}
		s.event(w, win, changed)
	case "cancel":
		tl.Cancel()
		s.event(w, s.session.Store.Get(), false)
	}
}

func (s *Server) handleWeek(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	i, err := strconv.Atoi(vars["index"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	grid := s.session.Grid
	switch vars["action"] {
	case "press":
		err = grid.Press(i)
		if err == nil {
			s.event(w, s.session.Store.Get(), false)
		}
	case "enter":
		s.event(w, s.session.Store.Get(), grid.Enter(i))
	case "click":
		var win schema.TimeWindow
		win, err = grid.Click(render.WithTrigger(r.Context(), "weeks.click"), i)
		if err == nil {
			s.event(w, win, true)
		}
	}
	if errors.Is(err, selector.ErrWeekOutOfRange) {
		writeError(w, http.StatusBadRequest, err)
	}
}

// handlePointerUp ends a week drag and any clock drag when the pointer is released outside its widget.
// A timeline drag only ends on the timeline's own release.
func (s *Server) handlePointerUp(w http.ResponseWriter, r *http.Request) {
	win, changed := s.session.Grid.Release(render.WithTrigger(r.Context(), "weeks.release"))
	s.session.StartClock.Release()
	s.session.EndClock.Release()
	if !changed {
		win = s.session.Store.Get()
	}
	s.event(w, win, changed)
}

func (s *Server) handleClock(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	clock, err := s.session.Clock(schema.Endpoint(vars["endpoint"]))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	ctx := render.WithTrigger(r.Context(), "clock."+vars["endpoint"])

	switch vars["action"] {
	case "press":
		var body pointBody
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		win, err := clock.Press(ctx, body.X, body.Y)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		s.event(w, win, true)
	case "drag":
		var body pointBody
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		win, changed, err := clock.Drag(ctx, body.X, body.Y)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		s.event(w, win, changed)
	case "release":
		clock.Release()
		s.event(w, s.session.Store.Get(), false)
	case "time":
		var body textBody
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		win, err := clock.Commit(ctx, body.Text)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Text: clock.Text()})
			return
		}
		s.event(w, win, true)
	}
}

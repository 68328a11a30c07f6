package chart

import (
	"bytes"
	"testing"
	"time"

	"github.com/huangsam/voltview/core/render"
	"github.com/huangsam/voltview/core/selector"
	"github.com/huangsam/voltview/core/window"
	"github.com/huangsam/voltview/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dashboard(t *testing.T) *render.Dashboard {
	t.Helper()
	records := []schema.Record{
		{schema.TimestampField: "2023-01-02T00:00:00", "voltaje": 120.0, "corriente": 1.0,
			schema.WorkstationCPUField: 10.0, schema.WorkstationGPUField: 20.0, schema.WorkstationRAMField: 3.0},
		{schema.TimestampField: "2023-01-02T00:00:10", "voltaje": 124.0, "corriente": 2.0,
			schema.WorkstationCPUField: 30.0, schema.WorkstationGPUField: 40.0, schema.WorkstationRAMField: 5.0},
	}
	store := window.NewStore(schema.DefaultWindow(2023, time.UTC))
	grid := selector.NewWeekGrid(store, 2023, time.UTC)
	_, err := grid.Click(t.Context(), 0)
	require.NoError(t, err)
	timeline := selector.NewTimeline(store, 600)
	timeline.Press(100)
	timeline.Move(200)

	return render.Build(render.Snapshot{
		Generation: 7,
		Window:     store.Get(),
		Checked:    []string{"voltage"},
		Records:    records,
		Weeks:      grid.Months(),
		Timeline:   timeline.View(),
		StartClock: selector.NewClock(store, schema.StartEndpoint).View(),
		EndClock:   selector.NewClock(store, schema.EndEndpoint).View(),
	}, render.Options{Location: time.UTC, Stride: 1})
}

func TestRenderPageEmitsContainers(t *testing.T) {
	d := dashboard(t)

	var buf bytes.Buffer
	require.NoError(t, RenderPage(&buf, d))
	out := buf.String()
	for _, id := range ContainerIDs(d) {
		assert.Contains(t, out, id)
	}
	assert.NotContains(t, out, "chart-current")
	assert.Contains(t, out, `"opacity":0.6`)
	assert.Equal(t, []string{"chart-voltage", schema.BreakdownChartID, schema.StackedAreaChartID, schema.CorrelationChartID}, ContainerIDs(d))
}

func TestPlaceholderTitle(t *testing.T) {
	empty := render.LineView{ContainerID: "chart-power", Title: "potencia", Empty: true, Placeholder: render.Placeholder}
	cfg := LineConfig(empty)
	assert.Equal(t, "chart-power", cfg.ContainerID)

	title := titleFor(cfg.Title, cfg.Placeholder)
	assert.Equal(t, "potencia", title.Title)
	assert.Equal(t, render.Placeholder, title.Subtitle)
	assert.Equal(t, "center", title.Left)

	assert.Empty(t, titleFor("voltaje", "").Subtitle)

	var buf bytes.Buffer
	require.NoError(t, NewLine(cfg).Render(&buf))
	assert.Contains(t, buf.String(), render.Placeholder)
}

func TestRenderShellWidgets(t *testing.T) {
	d := dashboard(t)

	var buf bytes.Buffer
	require.NoError(t, RenderShell(&buf, d))
	out := buf.String()

	assert.Contains(t, out, `id="voltage-checkbox" data-metric="voltage" checked`)
	assert.Contains(t, out, `id="current-checkbox" data-metric="current">`)
	assert.Contains(t, out, `id="time-grid"`)
	assert.Contains(t, out, `id="timeline"`)
	assert.Contains(t, out, `id="start-clock"`)
	assert.Contains(t, out, `id="end-clock"`)
	assert.Contains(t, out, `class="week in-range selected" data-week="0"`)
	assert.Contains(t, out, `class="selection" x="100"`)
	assert.Contains(t, out, `value="23:59:59"`)
	assert.Contains(t, out, "render #7")
}

func TestToggles(t *testing.T) {
	toggles := Toggles([]string{"energy"})
	require.Len(t, toggles, len(schema.Metrics))
	for _, tg := range toggles {
		assert.Equal(t, tg.ID == "energy", tg.Checked)
	}
}

package chart

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"slices"

	"github.com/huangsam/voltview/core/render"
	"github.com/huangsam/voltview/core/selector"
	"github.com/huangsam/voltview/schema"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var shellTemplate = template.Must(template.ParseFS(templatesFS, "templates/dashboard.html.tmpl"))

// MetricToggle is one metric checkbox.
type MetricToggle struct {
	schema.MetricDescriptor
	Checked bool
}

// shellView is the data behind the dashboard shell template.
type shellView struct {
	*render.Dashboard
	Toggles    []MetricToggle
	Clocks     []selector.ClockView
	TimeGridID string
	TimelineID string
}

// Toggles pairs every registered metric with its checked state.
func Toggles(checked []string) []MetricToggle {
	out := make([]MetricToggle, 0, len(schema.Metrics))
	for _, m := range schema.Metrics {
		out = append(out, MetricToggle{MetricDescriptor: m, Checked: slices.Contains(checked, m.ID)})
	}
	return out
}

// RenderShell writes the dashboard page: checkboxes, week grid, timeline and clocks as SVG,
// with the chart page embedded below.
func RenderShell(w io.Writer, d *render.Dashboard) error {
	view := shellView{
		Dashboard:  d,
		Toggles:    Toggles(d.Checked),
		Clocks:     []selector.ClockView{d.StartClock, d.EndClock},
		TimeGridID: schema.TimeGridID,
		TimelineID: schema.TimelineID,
	}
	if err := shellTemplate.Execute(w, view); err != nil {
		return fmt.Errorf("failed to render dashboard: %w", err)
	}
	return nil
}

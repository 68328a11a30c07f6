package render

import (
	"time"

	"github.com/huangsam/voltview/core/corr"
	"github.com/huangsam/voltview/core/filter"
	"github.com/huangsam/voltview/core/selector"
	"github.com/huangsam/voltview/schema"
)

// Snapshot is the state a render is derived from.
type Snapshot struct {
	Generation uint64
	Window     schema.TimeWindow
	Checked    []string
	Records    []schema.Record // full dataset
	Weeks      []selector.MonthGroup
	Timeline   selector.TimelineView
	StartClock selector.ClockView
	EndClock   selector.ClockView
}

// Build derives every view from snap. It has no side effects.
func Build(snap Snapshot, opts Options) *Dashboard {
	opts = opts.withDefaults()
	windowed := filter.ByWindow(snap.Records, snap.Window, opts.Location)

	d := &Dashboard{
		Generation:      snap.Generation,
		RenderedAt:      opts.Now(),
		Window:          snap.Window,
		Checked:         append([]string{}, snap.Checked...),
		Weeks:           snap.Weeks,
		Timeline:        snap.Timeline,
		StartClock:      snap.StartClock,
		EndClock:        snap.EndClock,
		Lines:           []LineView{},
		TotalRecords:    len(snap.Records),
		RecordsInWindow: len(windowed),
	}
	if r, ok := filter.Bounds(snap.Records, opts.Location); ok {
		d.DataRange = &r
	}

	sampled := filter.Downsample(windowed, opts.Stride)
	for _, id := range snap.Checked {
		m, ok := schema.LookupMetric(id)
		if !ok {
			continue
		}
		d.Lines = append(d.Lines, buildLine(m, sampled, opts.Location))
	}

	samples := filter.Workstation(windowed, opts.Location)
	d.Breakdown = buildPie(samples)
	d.Stacked = buildStacked(samples, opts.Stride)

	keys := opts.CorrelationKeys
	d.Correlation = HeatmapView{
		ContainerID: schema.CorrelationChartID,
		Heatmap:     corr.NewHeatmap(filter.Project(windowed, keys), snap.Records, keys),
	}
	if d.Correlation.Empty {
		d.Correlation.Placeholder = Placeholder
	}
	return d
}

func buildLine(m schema.MetricDescriptor, records []schema.Record, loc *time.Location) LineView {
	v := LineView{
		ContainerID: m.ContainerID(),
		Metric:      m.ID,
		Title:       m.Title,
		Color:       m.Color,
		Points:      make([]Point, 0, len(records)),
	}
	for _, r := range records {
		t, ok := r.Time(loc)
		if !ok {
			continue
		}
		val := r.FloatOrZero(m.FieldKey)
		v.Points = append(v.Points, Point{At: t, Value: val})
		if val > v.Max {
			v.Max = val
		}
	}
	if len(v.Points) == 0 {
		v.Empty = true
		v.Placeholder = Placeholder
	}
	return v
}

type workstationPart struct {
	name  string
	field string
	value func(schema.WorkstationSample) float64
}

var workstationParts = []workstationPart{
	{"CPU", schema.WorkstationCPUField, func(s schema.WorkstationSample) float64 { return s.CPU }},
	{"GPU", schema.WorkstationGPUField, func(s schema.WorkstationSample) float64 { return s.GPU }},
	{"RAM", schema.WorkstationRAMField, func(s schema.WorkstationSample) float64 { return s.RAM }},
}

func buildPie(samples []schema.WorkstationSample) PieView {
	v := PieView{ContainerID: schema.BreakdownChartID, Samples: len(samples)}
	if len(samples) == 0 {
		v.Empty = true
		v.Placeholder = Placeholder
		return v
	}
	for _, p := range workstationParts {
		var sum float64
		for _, s := range samples {
			sum += p.value(s)
		}
		v.Slices = append(v.Slices, Slice{
			Name:  p.name,
			Field: p.field,
			Color: schema.WorkstationColors[p.field],
			Value: sum / float64(len(samples)),
		})
	}
	return v
}

func buildStacked(samples []schema.WorkstationSample, stride int) StackedView {
	v := StackedView{ContainerID: schema.StackedAreaChartID}
	if len(samples) == 0 {
		v.Empty = true
		v.Placeholder = Placeholder
		return v
	}
	if stride < 1 {
		stride = 1
	}
	for i := 0; i < len(samples); i += stride {
		v.Times = append(v.Times, samples[i].At)
	}
	for _, p := range workstationParts {
		s := StackSeries{Name: p.name, Field: p.field, Color: schema.WorkstationColors[p.field]}
		for i := 0; i < len(samples); i += stride {
			s.Values = append(s.Values, p.value(samples[i]))
		}
		v.Series = append(v.Series, s)
	}
	return v
}

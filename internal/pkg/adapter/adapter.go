// Package adapter turns traces, table rows and a chart config into a render-ready chart description.
//
// The description is made of pixel dimensions, a series set, axis limits and a complete set of
// presentation options. It does not depend on any rendering library.
//
// Line, bar and scatter charts share the dimension and option merging logic. They differ in how
// series are shaped and how axis limits are computed.
package adapter

import (
	"slices"

	"github.com/fredbi/chartcraft/internal/pkg/config"
	"github.com/fredbi/chartcraft/internal/pkg/model"
)

// Adapter computes the rendering of a chart. It is a pure transform: no IO, and safe to call
// repeatedly and concurrently.
//
// The chart kind is the kind of the first trace. Without traces, the chart is a line chart.
type Adapter struct {
	options

	traces []model.Trace
	config config.ChartConfig
	kind   model.Kind
	impl   kind
}

// Rendering bundles everything needed to draw a chart.
type Rendering struct {
	Dimensions Dimensions   `json:"dimensions"`
	Data       Data         `json:"data"`
	Limits     Limits       `json:"limits"`
	Options    ChartOptions `json:"options"`
}

// New [Adapter] for a list of traces and a chart config.
func New(traces []model.Trace, cfg config.ChartConfig, opts ...Option) *Adapter {
	primary := model.KindLine
	if len(traces) > 0 {
		primary = traces[0].Kind
	}

	k, impl := kindOf(primary)

	return &Adapter{
		options: optionsWithDefaults(opts),
		traces:  slices.Clone(traces),
		config:  cfg,
		kind:    k,
		impl:    impl,
	}
}

// Kind returns the chart kind.
func (a *Adapter) Kind() model.Kind {
	return a.kind
}

// Dimensions of the chart, which never exceed the bounding box.
func (a *Adapter) Dimensions() Dimensions {
	return dimensions(a.config, a.bounds)
}

// Data shapes the rows into one dataset per trace, sorted by x.
//
// Without traces, a single empty "No data" dataset is returned, never an empty dataset list.
func (a *Adapter) Data(rows []model.Row) Data {
	if len(a.traces) == 0 {
		return placeholderData(a.kind)
	}

	return a.impl.shapeSeries(a.traces, rows)
}

// AxisLimits computes the axis bounds of a series set, with a 10% padding.
//
// Values that are not numeric are ignored. When there is nothing to scale on, the [-10, 10]
// window applies.
func (a *Adapter) AxisLimits(data Data) Limits {
	return a.impl.axisLimits(data)
}

// Options merges the chart config with defaults into a complete set of presentation options.
func (a *Adapter) Options(dims Dimensions, data Data) ChartOptions {
	opts := chartOptions(a.config, dims, a.AxisLimits(data), a.impl.xScale())
	a.impl.adjustOptions(&opts)

	return opts
}

// Render computes the full rendering of the rows.
func (a *Adapter) Render(rows []model.Row) Rendering {
	dims := a.Dimensions()
	data := a.Data(rows)
	opts := a.Options(dims, data)

	return Rendering{
		Dimensions: dims,
		Data:       data,
		Limits: Limits{
			XMin: opts.X.Min,
			XMax: opts.X.Max,
			YMin: opts.Y.Min,
			YMax: opts.Y.Max,
		},
		Options: opts,
	}
}

package chart

import (
	"fmt"

	"github.com/fredbi/chartcraft/internal/pkg/adapter"
	"github.com/fredbi/chartcraft/internal/pkg/config"
	"github.com/fredbi/chartcraft/internal/pkg/model"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	echartsopts "github.com/go-echarts/go-echarts/v2/opts"
)

const (
	edgeMargin     = "5"
	legendOffset   = "35"
	gridMargin     = "70"
	gridSideMargin = "150"
	xAxisNameGap   = 30
	yAxisNameGap   = 45
	valueAxis      = "value"
	categoryAxis   = "category"
)

// Chart renders an [adapter.Rendering] with go-echarts.
type Chart struct {
	options

	Rendering adapter.Rendering
}

// NewChart creates a new chart for a computed rendering.
func NewChart(rendering adapter.Rendering, opts ...Option) *Chart {
	return &Chart{
		options:   optionsWithDefaults(opts),
		Rendering: rendering,
	}
}

// Build creates the ECharts chart: a [charts.Line], [charts.Bar] or [charts.Scatter],
// depending on the kind of the rendering.
//
// Datasets of another kind than the chart are overlapped on the same axes.
func (c *Chart) Build() components.Charter {
	s := c.buildSeries()
	global := c.globalOptions()
	scripts := c.scripts()

	switch c.Rendering.Data.Kind {
	case model.KindBar:
		s.bar.SetGlobalOptions(global...)
		s.bar.SetXAxis(c.Rendering.Data.Labels)
		s.bar.Overlap(s.others(model.KindBar)...)
		s.bar.AddJSFuncStrs(scripts...)

		return s.bar
	case model.KindScatter:
		s.scatter.SetGlobalOptions(global...)
		s.scatter.Overlap(s.others(model.KindScatter)...)
		s.scatter.AddJSFuncStrs(scripts...)

		return s.scatter
	default:
		s.line.SetGlobalOptions(global...)
		s.line.Overlap(s.others(model.KindLine)...)
		s.line.AddJSFuncStrs(scripts...)

		return s.line
	}
}

// isCategory reports whether the x axis is a category axis, on which series are aligned on the labels.
func (c *Chart) isCategory() bool {
	return c.Rendering.Options.X.Type == adapter.ScaleCategory
}

func (c *Chart) globalOptions() []charts.GlobalOpts {
	o := c.Rendering.Options

	global := []charts.GlobalOpts{
		charts.WithInitializationOpts(echartsopts.Initialization{
			Theme:  c.Theme,
			Width:  fmt.Sprintf("%dpx", c.Rendering.Dimensions.Width),
			Height: fmt.Sprintf("%dpx", c.Rendering.Dimensions.Height),
		}),
		charts.WithTitleOpts(c.titleOptions()),
		charts.WithLegendOpts(c.legendOptions()),
		charts.WithGridOpts(c.gridOptions()),
		charts.WithXAxisOpts(c.xAxisOptions()),
		charts.WithYAxisOpts(c.yAxisOptions()),
		charts.WithTooltipOpts(c.tooltipOptions()),
	}

	if c.Toolbox {
		global = append(global, charts.WithToolboxOpts(echartsopts.Toolbox{
			Right: edgeMargin,
			Feature: &echartsopts.ToolBoxFeature{
				SaveAsImage: &echartsopts.ToolBoxFeatureSaveAsImage{
					Title: "Save as image",
					Name:  o.Title.Text,
				},
			},
		}))
	}

	return global
}

func (c *Chart) titleOptions() echartsopts.Title {
	o := c.Rendering.Options.Title

	title := echartsopts.Title{
		Show:       echartsopts.Bool(o.Display),
		Title:      o.Text,
		Left:       "center",
		TitleStyle: textStyle(o),
	}

	if o.Position == config.PositionBottom {
		title.Bottom = edgeMargin
	} else {
		title.Top = edgeMargin
	}

	if c.Subtitle != "" {
		title.Subtitle = c.Subtitle
		title.SubtitleStyle = &echartsopts.TextStyle{
			FontStyle: adapter.FontStyleItalic,
			FontSize:  o.Font.Size * 3 / 4,
		}
	}

	return title
}

func (c *Chart) legendOptions() echartsopts.Legend {
	o := c.Rendering.Options
	legend := echartsopts.Legend{
		Show: echartsopts.Bool(o.Legend.Display),
	}

	// the legend moves away from a title on the same side
	offset := func(side config.Position) string {
		if o.Title.Position == side || (o.Title.Position == "" && side == config.PositionTop) {
			return legendOffset
		}

		return edgeMargin
	}

	switch o.Legend.Position {
	case config.PositionBottom:
		legend.Bottom = offset(config.PositionBottom)
	case config.PositionLeft:
		legend.Left = edgeMargin
		legend.Top = "middle"
		legend.Orient = "vertical"
	case config.PositionRight:
		legend.Right = edgeMargin
		legend.Top = "middle"
		legend.Orient = "vertical"
	default:
		legend.Top = offset(config.PositionTop)
	}

	return legend
}

func (c *Chart) gridOptions() echartsopts.Grid {
	o := c.Rendering.Options
	grid := echartsopts.Grid{
		Top:          gridMargin,
		Bottom:       gridMargin,
		Left:         gridMargin,
		Right:        gridMargin,
		ContainLabel: echartsopts.Bool(true),
	}

	if o.Legend.Display {
		switch o.Legend.Position {
		case config.PositionLeft:
			grid.Left = gridSideMargin
		case config.PositionRight:
			grid.Right = gridSideMargin
		}
	}

	return grid
}

func (c *Chart) tooltipOptions() echartsopts.Tooltip {
	trigger := "axis"
	if c.Rendering.Data.Kind == model.KindScatter {
		trigger = "item"
	}

	return echartsopts.Tooltip{
		Show:    echartsopts.Bool(true),
		Trigger: trigger,
	}
}

func (c *Chart) xAxisOptions() echartsopts.XAxis {
	o := c.Rendering.Options.X

	axis := echartsopts.XAxis{
		Name:         o.Title.Text,
		NameLocation: "middle",
		NameGap:      xAxisNameGap,
		Position:     string(o.Position),
		Type:         valueAxis,
		AxisTick: &echartsopts.AxisTick{
			Show: echartsopts.Bool(o.Ticks.Display),
		},
		AxisLabel: &echartsopts.AxisLabel{
			Show:  echartsopts.Bool(o.Ticks.Display),
			Color: o.Ticks.Color,
		},
		SplitLine: splitLine(o.Grid),
	}

	if c.isCategory() {
		axis.Type = categoryAxis
		axis.AxisTick.AlignWithLabel = echartsopts.Bool(true)

		return axis
	}

	axis.Min, axis.Max = o.Min, o.Max
	axis.SplitNumber = o.Ticks.Count
	axis.MinInterval, axis.MaxInterval = o.Ticks.Step, o.Ticks.Step

	return axis
}

func (c *Chart) yAxisOptions() echartsopts.YAxis {
	o := c.Rendering.Options.Y

	axis := echartsopts.YAxis{
		Name:         o.Title.Text,
		NameLocation: "middle",
		NameGap:      yAxisNameGap,
		Position:     string(o.Position),
		Type:         valueAxis,
		Min:          o.Min,
		Max:          o.Max,
		SplitNumber:  o.Ticks.Count,
		MinInterval:  o.Ticks.Step,
		MaxInterval:  o.Ticks.Step,
		AxisLabel: &echartsopts.AxisLabel{
			Show:  echartsopts.Bool(o.Ticks.Display),
			Color: o.Ticks.Color,
		},
		SplitLine: splitLine(o.Grid),
	}

	if o.BeginAtZero {
		axis.Min = min(0, o.Min)
		axis.Max = max(0, o.Max)
	}

	return axis
}

func splitLine(grid adapter.GridOptions) *echartsopts.SplitLine {
	return &echartsopts.SplitLine{
		Show: echartsopts.Bool(grid.Display),
		LineStyle: &echartsopts.LineStyle{
			Color: grid.Color,
		},
	}
}

func textStyle(o adapter.TitleOptions) *echartsopts.TextStyle {
	return &echartsopts.TextStyle{
		Color:      o.Color,
		FontSize:   o.Font.Size,
		FontStyle:  o.Font.Style,
		FontWeight: fontWeight(o.Font),
	}
}

func fontWeight(f adapter.Font) string {
	if f.IsBold() {
		return "bold"
	}

	return "normal"
}

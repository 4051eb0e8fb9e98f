package chart

import (
	"fmt"
	"math"

	"github.com/fredbi/chartcraft/internal/pkg/adapter"
	"github.com/fredbi/chartcraft/internal/pkg/model"
	"github.com/go-echarts/go-echarts/v2/charts"
	echartsopts "github.com/go-echarts/go-echarts/v2/opts"
)

// missing is the echarts notation for a gap in a series.
const missing = "-"

const placeholderID = "no-data"

// echarts symbols for the markers without a built-in shape.
const (
	crossSymbol = "path://M4,0 L6,0 L6,4 L10,4 L10,6 L6,6 L6,10 L4,10 L4,6 L0,6 L0,4 L4,4 Z"
	starSymbol  = "path://M5,0 L6.2,3.6 L10,3.6 L7,5.9 L8.1,9.5 L5,7.3 L1.9,9.5 L3,5.9 L0,3.6 L3.8,3.6 Z"
)

// seriesSet collects the series of a chart, one go-echarts chart per kind of series.
type seriesSet struct {
	line    *charts.Line
	bar     *charts.Bar
	scatter *charts.Scatter
	counts  map[model.Kind]int
}

// others returns the non-empty charts of another kind than k, to overlap on the chart of kind k.
func (s seriesSet) others(k model.Kind) []charts.Overlaper {
	var overlaps []charts.Overlaper

	if k != model.KindLine && s.counts[model.KindLine] > 0 {
		overlaps = append(overlaps, s.line)
	}
	if k != model.KindBar && s.counts[model.KindBar] > 0 {
		overlaps = append(overlaps, s.bar)
	}
	if k != model.KindScatter && s.counts[model.KindScatter] > 0 {
		overlaps = append(overlaps, s.scatter)
	}

	return overlaps
}

func (c *Chart) buildSeries() seriesSet {
	s := seriesSet{
		line:    charts.NewLine(),
		bar:     charts.NewBar(),
		scatter: charts.NewScatter(),
		counts:  make(map[model.Kind]int, 3),
	}

	for _, ds := range c.Rendering.Data.Datasets {
		values := c.seriesValues(ds)
		style := ds.Style.WithDefaults()
		id := seriesID(ds)

		switch ds.Kind {
		case model.KindBar:
			data := make([]echartsopts.BarData, 0, len(values))
			for _, v := range values {
				data = append(data, echartsopts.BarData{Value: v})
			}

			s.bar.AddSeries(ds.Label, data,
				charts.WithSeriesId(id),
				charts.WithItemStyleOpts(echartsopts.ItemStyle{
					Color:       style.MarkerColor,
					BorderColor: style.LineColor,
					BorderWidth: float32(style.LineWidth),
				}),
				charts.WithBarChartOpts(echartsopts.BarChart{
					BarWidth: fmt.Sprintf("%g", style.MarkerSize),
				}),
			)
		case model.KindScatter:
			data := make([]echartsopts.ScatterData, 0, len(values))
			for _, v := range values {
				data = append(data, echartsopts.ScatterData{Value: v})
			}

			s.scatter.AddSeries(ds.Label, data,
				charts.WithSeriesId(id),
				charts.WithItemStyleOpts(echartsopts.ItemStyle{
					Color: style.MarkerColor,
				}),
				charts.WithScatterChartOpts(echartsopts.ScatterChart{
					Symbol:     symbol(style.MarkerStyle),
					SymbolSize: style.MarkerSize,
				}),
			)
		default:
			data := make([]echartsopts.LineData, 0, len(values))
			for _, v := range values {
				data = append(data, echartsopts.LineData{Value: v})
			}

			s.line.AddSeries(ds.Label, data,
				charts.WithSeriesId(id),
				charts.WithLineStyleOpts(echartsopts.LineStyle{
					Color: style.LineColor,
					Width: float32(style.LineWidth),
					Type:  string(style.LineStyle),
				}),
				charts.WithItemStyleOpts(echartsopts.ItemStyle{
					Color: style.MarkerColor,
				}),
				charts.WithLineChartOpts(echartsopts.LineChart{
					Symbol:     symbol(style.MarkerStyle),
					SymbolSize: style.MarkerSize,
					ShowSymbol: echartsopts.Bool(true),
					Smooth:     echartsopts.Bool(c.Rendering.Options.Tension > 0),
				}),
			)
		}

		s.counts[ds.Kind]++
	}

	return s
}

// seriesValues converts the points of a dataset into echarts data values.
//
// On a category axis, values are aligned on the shared labels. On a value axis, each value is an
// [x, y] pair: points with a non-numeric x cannot be placed and are dropped.
// Gaps break lines and bars, and are omitted from scatter series.
func (c *Chart) seriesValues(ds adapter.Dataset) []any {
	if c.isCategory() {
		ys := ds.ValuesByLabel(c.Rendering.Data.Labels)
		values := make([]any, 0, len(ys))
		for _, y := range ys {
			values = append(values, yValue(y))
		}

		return values
	}

	values := make([]any, 0, len(ds.Points))
	for _, p := range ds.Points {
		if !p.XNumeric {
			continue
		}

		if !p.HasY() && ds.Kind == model.KindScatter {
			continue
		}

		values = append(values, []any{p.XValue, yValue(p.Y)})
	}

	return values
}

func yValue(y float64) any {
	if math.IsNaN(y) {
		return missing
	}

	return y
}

func seriesID(ds adapter.Dataset) string {
	if ds.Placeholder || ds.TraceID == "" {
		return placeholderID
	}

	return ds.TraceID
}

func symbol(marker model.MarkerStyle) string {
	switch marker {
	case model.MarkerCross:
		return crossSymbol
	case model.MarkerStar:
		return starSymbol
	case "":
		return string(model.MarkerCircle)
	default:
		return string(marker)
	}
}

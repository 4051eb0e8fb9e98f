package adapter

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/fredbi/chartcraft/internal/pkg/config"
	"github.com/fredbi/chartcraft/internal/pkg/model"

	"github.com/go-openapi/testify/v2/assert"
	"github.com/go-openapi/testify/v2/require"
)

const epsilon = 1e-9

func TestMixedTracesScenario(t *testing.T) {
	traces := []model.Trace{
		trace(model.KindLine, "a", "b"),
		trace(model.KindScatter, "a", "c"),
	}
	rows := rowsOf(
		map[string]model.Value{"a": "1", "b": "5", "c": "9"},
		map[string]model.Value{"a": "3", "b": "2", "c": "4"},
	)

	for _, input := range [][]model.Row{rows, {rows[1], rows[0]}} {
		a := New(traces, config.ChartConfig{})
		r := a.Render(input)
		t.Log(spew.Sdump(r.Limits))

		assert.Equal(t, model.KindLine, a.Kind(), "the chart kind is the kind of the first trace")
		require.Len(t, r.Data.Datasets, 2)
		assert.Equal(t, []string{"1", "3"}, r.Data.Labels)

		line := r.Data.Datasets[0]
		assert.Equal(t, "a vs b", line.Label)
		assert.Equal(t, model.KindLine, line.Kind)
		assert.Equal(t, []float64{5, 2}, line.Values())

		scatter := r.Data.Datasets[1]
		assert.Equal(t, model.KindScatter, scatter.Kind)
		assert.Equal(t, []float64{9, 4}, scatter.Values())
		assert.Equal(t, []model.Value{"1", "3"}, xs(scatter))

		assert.InDelta(t, 0.8, r.Limits.XMin, epsilon)
		assert.InDelta(t, 3.2, r.Limits.XMax, epsilon)
		assert.InDelta(t, 1.3, r.Limits.YMin, epsilon)
		assert.InDelta(t, 9.7, r.Limits.YMax, epsilon)
	}
}

func TestDimensions(t *testing.T) {
	tests := []struct {
		name   string
		cfg    config.ChartConfig
		bounds Bounds
		want   Dimensions
	}{
		{name: "default is 16:9", want: Dimensions{800, 450}},
		{name: "unknown ratio is 16:9", cfg: config.ChartConfig{AspectRatio: "21:9"}, want: Dimensions{800, 450}},
		{name: "16:9", cfg: ratio(config.AspectRatioWide), want: Dimensions{800, 450}},
		{name: "4:3", cfg: ratio(config.AspectRatioStandard), want: Dimensions{800, 600}},
		{name: "3:2", cfg: ratio(config.AspectRatioPhoto), want: Dimensions{800, 533}},
		{name: "1:1 fits the smallest side", cfg: ratio(config.AspectRatioSquare), want: Dimensions{600, 600}},
		{
			name:   "4:3 falls back on max height",
			cfg:    ratio(config.AspectRatioStandard),
			bounds: Bounds{MaxWidth: 800, MaxHeight: 300},
			want:   Dimensions{400, 300},
		},
		{
			name:   "16:9 in a narrow box",
			cfg:    ratio(config.AspectRatioWide),
			bounds: Bounds{MaxWidth: 400, MaxHeight: 600},
			want:   Dimensions{400, 225},
		},
		{
			name: "custom is downscaled preserving the ratio",
			cfg:  config.ChartConfig{AspectRatio: config.AspectRatioCustom, CustomWidth: 2000, CustomHeight: 500},
			want: Dimensions{800, 200},
		},
		{
			name: "custom within bounds is kept",
			cfg:  config.ChartConfig{AspectRatio: config.AspectRatioCustom, CustomWidth: 400, CustomHeight: 300},
			want: Dimensions{400, 300},
		},
		{
			name: "custom square is downscaled to the smallest side",
			cfg:  config.ChartConfig{AspectRatio: config.AspectRatioCustom, CustomWidth: 1000, CustomHeight: 1000},
			want: Dimensions{600, 600},
		},
		{
			name: "custom without sizes is the bounding box",
			cfg:  config.ChartConfig{AspectRatio: config.AspectRatioCustom},
			want: Dimensions{800, 600},
		},
		{
			name: "custom with a missing height",
			cfg:  config.ChartConfig{AspectRatio: config.AspectRatioCustom, CustomWidth: 1600},
			want: Dimensions{800, 300},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []Option
			if tt.bounds != (Bounds{}) {
				opts = append(opts, WithBounds(tt.bounds))
			}

			assert.Equal(t, tt.want, New(nil, tt.cfg, opts...).Dimensions())
		})
	}
}

func TestDimensionsProperties(t *testing.T) {
	boxes := []Bounds{
		DefaultBounds(),
		{MaxWidth: 1024, MaxHeight: 768},
		{MaxWidth: 300, MaxHeight: 900},
		{MaxWidth: 1920, MaxHeight: 200},
	}
	expected := map[config.AspectRatio]float64{
		config.AspectRatioSquare:   1,
		config.AspectRatioWide:     16.0 / 9.0,
		config.AspectRatioStandard: 4.0 / 3.0,
		config.AspectRatioPhoto:    3.0 / 2.0,
	}

	for _, box := range boxes {
		for r, want := range expected {
			t.Run(fmt.Sprintf("%s in %dx%d", r, box.MaxWidth, box.MaxHeight), func(t *testing.T) {
				dims := New(nil, ratio(r), WithBounds(box)).Dimensions()

				assert.LessOrEqual(t, dims.Width, box.MaxWidth)
				assert.LessOrEqual(t, dims.Height, box.MaxHeight)
				assert.True(t, dims.Width == box.MaxWidth || dims.Height == box.MaxHeight, "the chart fills one side of the box")

				// within rounding of one pixel on the derived side
				got := float64(dims.Width) / float64(dims.Height)
				assert.InDelta(t, want, got, want/float64(min(dims.Width, dims.Height)))
			})
		}
	}
}

func TestWithBoundsIgnoresInvalidBox(t *testing.T) {
	a := New(nil, config.ChartConfig{}, WithBounds(Bounds{MaxWidth: 0, MaxHeight: 100}))
	assert.Equal(t, DefaultBounds(), a.bounds)
}

func TestNoData(t *testing.T) {
	rows := rowsOf(map[string]model.Value{"x": "1", "y": "2"})

	for _, input := range [][]model.Row{nil, rows} {
		data := New(nil, config.ChartConfig{}).Data(input)

		require.Len(t, data.Datasets, 1)
		placeholder := data.Datasets[0]
		assert.Equal(t, NoDataLabel, placeholder.Label)
		assert.True(t, placeholder.Placeholder)
		assert.Equal(t, NoDataColor, placeholder.Style.LineColor)
		assert.Equal(t, NoDataColor, placeholder.Style.MarkerColor)
		assert.NotNil(t, placeholder.Points)
		assert.Empty(t, placeholder.Points)
	}

	t.Run("traces over no rows keep one dataset per trace", func(t *testing.T) {
		for _, k := range model.AllKinds() {
			data := New([]model.Trace{trace(k, "x", "y"), trace(k, "x", "z")}, config.ChartConfig{}).Data(nil)
			require.Len(t, data.Datasets, 2)
			assert.Equal(t, FallbackLimits(), New(nil, config.ChartConfig{}).AxisLimits(data))
		}
	})
}

func TestFallbackLimits(t *testing.T) {
	for _, k := range model.AllKinds() {
		t.Run(string(k), func(t *testing.T) {
			a := New([]model.Trace{trace(k, "x", "y")}, config.ChartConfig{})

			assert.Equal(t, FallbackLimits(), a.AxisLimits(Data{}), "no datasets")
			assert.Equal(t, FallbackLimits(), a.AxisLimits(a.Data(nil)), "only empty datasets")

			r := New(nil, config.ChartConfig{}).Render(nil)
			assert.Equal(t, FallbackLimits(), r.Limits, "placeholder dataset")
		})
	}

	t.Run("an axis without numeric values falls back alone", func(t *testing.T) {
		rows := rowsOf(
			map[string]model.Value{"x": "jan", "y": "10"},
			map[string]model.Value{"x": "feb", "y": "20"},
		)
		a := New([]model.Trace{trace(model.KindLine, "x", "y")}, config.ChartConfig{})
		limits := a.AxisLimits(a.Data(rows))

		assert.InDelta(t, -10.0, limits.XMin, epsilon)
		assert.InDelta(t, 10.0, limits.XMax, epsilon)
		assert.InDelta(t, 9.0, limits.YMin, epsilon)
		assert.InDelta(t, 21.0, limits.YMax, epsilon)
	})
}

func TestNonNumericValuesAreIgnored(t *testing.T) {
	rows := rowsOf(
		map[string]model.Value{"x": "1", "y": "abc"},
		map[string]model.Value{"x": "2", "y": "10"},
		map[string]model.Value{"x": "3", "y": ""},
		map[string]model.Value{"x": "4", "y": "NaN"},
		map[string]model.Value{"x": "5", "y": "20"},
		map[string]model.Value{"x": "oops", "y": "1000"},
		map[string]model.Value{"y": "-1000"},
		map[string]model.Value{"x": "6"},
	)

	t.Run("line", func(t *testing.T) {
		a := New([]model.Trace{trace(model.KindLine, "x", "y")}, config.ChartConfig{})
		data := a.Data(rows)

		require.Len(t, data.Datasets, 1)
		ds := data.Datasets[0]
		assert.Len(t, ds.Points, 7, "rows without x are skipped")
		assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "oops"}, data.Labels)
		assert.False(t, ds.Points[0].HasY())

		limits := a.AxisLimits(data)
		assert.InDelta(t, 0.5, limits.XMin, epsilon)
		assert.InDelta(t, 6.5, limits.XMax, epsilon)
		assert.InDelta(t, 10.0-99.0, limits.YMin, epsilon, "y of the non-numeric x row still counts")
		assert.InDelta(t, 1000.0+99.0, limits.YMax, epsilon)
	})

	t.Run("scatter", func(t *testing.T) {
		a := New([]model.Trace{trace(model.KindScatter, "x", "y")}, config.ChartConfig{})
		limits := a.AxisLimits(a.Data(rows))

		assert.InDelta(t, 0.5, limits.XMin, epsilon)
		assert.InDelta(t, 6.5, limits.XMax, epsilon)
		assert.False(t, math.IsNaN(limits.YMin))
		assert.False(t, math.IsNaN(limits.YMax))
	})

	t.Run("missing columns degrade to empty series", func(t *testing.T) {
		a := New([]model.Trace{trace(model.KindLine, "nope", "y"), trace(model.KindLine, "x", "nope")}, config.ChartConfig{})
		var r Rendering
		require.NotPanics(t, func() {
			r = a.Render(rows)
		})

		require.Len(t, r.Data.Datasets, 2)
		assert.Empty(t, r.Data.Datasets[0].Points)
		assert.Empty(t, r.Data.Labels, "labels come from the first trace")
		for _, p := range r.Data.Datasets[1].Points {
			assert.False(t, p.HasY())
		}
		assert.Equal(t, -10.0, r.Limits.XMin)
		assert.Equal(t, -10.0, r.Limits.YMin)
	})
}

func TestSortIsStableAndIdempotent(t *testing.T) {
	rows := rowsOf(
		map[string]model.Value{"x": "b", "y": "1"},
		map[string]model.Value{"x": "2", "y": "2"},
		map[string]model.Value{"x": "10", "y": "3"},
		map[string]model.Value{"x": "a", "y": "4"},
		map[string]model.Value{"x": "2", "y": "5"},
		map[string]model.Value{"x": "-1", "y": "6"},
	)
	a := New([]model.Trace{trace(model.KindScatter, "x", "y")}, config.ChartConfig{})

	ds := a.Data(rows).Datasets[0]
	assert.Equal(t, []model.Value{"-1", "2", "2", "10", "b", "a"}, xs(ds))
	assert.Equal(t, []float64{6, 2, 5, 3, 1, 4}, ds.Values(), "equal keys keep their input order")

	again := append([]Point(nil), ds.Points...)
	sortPoints(again)
	assert.Equal(t, ds.Points, again)

	// sorting the already sorted rows again yields the same series
	sorted := make([]model.Row, 0, len(ds.Points))
	for i, p := range ds.Points {
		sorted = append(sorted, model.Row{ID: i + 1, Cells: map[string]model.Value{"x": p.X, "y": model.Value(fmt.Sprint(p.Y))}})
	}
	assert.Equal(t, ds.Points, a.Data(sorted).Datasets[0].Points)
}

func TestDatasetLabels(t *testing.T) {
	titled := trace(model.KindLine, "m", "a")
	titled.Title = "Revenue"
	untitled := trace(model.KindLine, "m", "b")

	r := New([]model.Trace{titled, untitled}, config.ChartConfig{}).Render(rowsOf(
		map[string]model.Value{"m": "1", "a": "10", "b": "100"},
	))

	require.Len(t, r.Data.Datasets, 2)
	assert.Equal(t, "Revenue", r.Data.Datasets[0].Label)
	assert.Equal(t, "m vs b", r.Data.Datasets[1].Label)
}

func TestBarChart(t *testing.T) {
	rows := rowsOf(
		map[string]model.Value{"m": "3", "a": "30", "b": "300"},
		map[string]model.Value{"m": "1", "a": "10"},
		map[string]model.Value{"m": "2", "a": "20", "b": "200"},
		map[string]model.Value{"m": "2", "a": "25", "b": "250"},
	)
	a := New([]model.Trace{trace(model.KindBar, "m", "a"), trace(model.KindBar, "m", "b")}, config.ChartConfig{})
	r := a.Render(rows)

	assert.Equal(t, model.KindBar, r.Data.Kind)
	assert.Equal(t, []string{"1", "2", "3"}, r.Data.Labels)
	assert.Equal(t, []float64{10, 20, 25, 30}, r.Data.Datasets[0].Values())
	assert.Equal(t, []float64{10, 20, 30}, r.Data.Datasets[0].ValuesByLabel(r.Data.Labels))

	aligned := r.Data.Datasets[1].ValuesByLabel(r.Data.Labels)
	require.Len(t, aligned, 3)
	assert.True(t, math.IsNaN(aligned[0]), "a gap where the dataset has no value")
	assert.Equal(t, []float64{200, 300}, aligned[1:])

	assert.Equal(t, ScaleCategory, r.Options.X.Type)
	assert.Equal(t, ScaleLinear, r.Options.Y.Type)
	assert.True(t, r.Options.Y.BeginAtZero)
	assert.Zero(t, r.Options.Tension)
}

func TestOptionsDefaults(t *testing.T) {
	a := New([]model.Trace{trace(model.KindLine, "x", "y")}, config.ChartConfig{})
	r := a.Render(nil)
	o := r.Options

	assert.Equal(t, 800, o.Width)
	assert.Equal(t, 450, o.Height)

	assert.True(t, o.Title.Display)
	assert.Equal(t, DefaultTitle, o.Title.Text)
	assert.Equal(t, config.PositionTop, o.Title.Position)
	assert.Equal(t, DefaultTextColor, o.Title.Color)
	assert.Equal(t, Font{Size: 16, Weight: 400, Style: "normal"}, o.Title.Font)

	assert.True(t, o.Legend.Display)
	assert.Equal(t, config.PositionTop, o.Legend.Position)

	assert.Equal(t, ScaleLinear, o.X.Type)
	assert.Equal(t, config.PositionBottom, o.X.Position)
	assert.Equal(t, DefaultXAxisLabel, o.X.Title.Text)
	assert.Equal(t, config.PositionLeft, o.Y.Position)
	assert.Equal(t, DefaultYAxisLabel, o.Y.Title.Text)
	assert.Equal(t, DefaultTextColor, o.Y.Title.Color)

	for _, axis := range []AxisOptions{o.X, o.Y} {
		assert.True(t, axis.Ticks.Display)
		assert.Zero(t, axis.Ticks.Count)
		assert.Zero(t, axis.Ticks.Step)
		assert.True(t, axis.Grid.Display)
		assert.Equal(t, "rgba(0, 0, 0, 0.1)", axis.Grid.Color)
		assert.False(t, axis.BeginAtZero)
	}

	assert.False(t, o.Border.Display)
	assert.Equal(t, DefaultBorderColor, o.Border.Color)
	assert.InDelta(t, 1.0, o.Border.Width, epsilon)
	assert.Empty(t, o.Border.Dash)

	assert.InDelta(t, 0.4, o.Tension, epsilon)
	assert.Equal(t, FallbackLimits(), Limits{XMin: o.X.Min, XMax: o.X.Max, YMin: o.Y.Min, YMax: o.Y.Max})
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.ChartConfig{
		AspectRatio:    config.AspectRatioSquare,
		Title:          "Sales",
		TitleColor:     "#ff0000",
		TitlePosition:  config.PositionBottom,
		TitleFontSize:  24,
		TitleFontStyle: config.FontStyleBoldItalic,
		XAxisLabel:     "Month",
		XAxisPosition:  config.PositionTop,
		XAxisColor:     "#00ff00",
		XAxisFontStyle: config.FontStyleBold,
		ShowXTicks:     config.Bool(false),
		XTicksCount:    4,
		YAxisLabel:     "Revenue",
		YAxisPosition:  config.PositionRight,
		YAxisFontSize:  10,
		YAxisFontStyle: config.FontStyleItalic,
		YTicksStep:     2.5,
		ShowGrid:       config.Bool(false),
		ShowYGrid:      config.Bool(true),
		ShowLegend:     config.Bool(false),
		LegendPosition: config.PositionRight,
		Border: config.Border{
			Display:    config.Bool(true),
			Color:      "#333333",
			Width:      2,
			Style:      config.BorderStyleDashed,
			DashOffset: 3,
		},
	}

	o := New([]model.Trace{trace(model.KindScatter, "x", "y")}, cfg).Render(nil).Options

	assert.Equal(t, 600, o.Width)
	assert.Equal(t, 600, o.Height)

	assert.Equal(t, "Sales", o.Title.Text)
	assert.Equal(t, "#ff0000", o.Title.Color)
	assert.Equal(t, config.PositionBottom, o.Title.Position)
	assert.Equal(t, Font{Size: 24, Weight: 700, Style: "italic"}, o.Title.Font)

	assert.Equal(t, "Month", o.X.Title.Text)
	assert.Equal(t, config.PositionTop, o.X.Position)
	assert.Equal(t, "#00ff00", o.X.Title.Color)
	assert.Equal(t, "#00ff00", o.X.Ticks.Color)
	assert.Equal(t, Font{Size: 16, Weight: 700, Style: "normal"}, o.X.Title.Font)
	assert.False(t, o.X.Ticks.Display)
	assert.Equal(t, 4, o.X.Ticks.Count)
	assert.False(t, o.X.Grid.Display, "the legacy flag applies when the per-axis flag is unset")

	assert.Equal(t, "Revenue", o.Y.Title.Text)
	assert.Equal(t, config.PositionRight, o.Y.Position)
	assert.Equal(t, Font{Size: 10, Weight: 400, Style: "italic"}, o.Y.Title.Font)
	assert.InDelta(t, 2.5, o.Y.Ticks.Step, epsilon)
	assert.True(t, o.Y.Grid.Display, "the per-axis flag wins over the legacy flag")

	assert.False(t, o.Legend.Display)
	assert.Equal(t, config.PositionRight, o.Legend.Position)

	assert.True(t, o.Border.Display)
	assert.True(t, o.Border.IsDashed())
	assert.Equal(t, "#333333", o.Border.Color)
	assert.InDelta(t, 2.0, o.Border.Width, epsilon)
	assert.Equal(t, []float64{5, 5}, o.Border.Dash)
	assert.InDelta(t, 3.0, o.Border.DashOffset, epsilon)

	assert.Zero(t, o.Tension, "no tension for scatter charts")
}

func TestFontDerivation(t *testing.T) {
	tests := []struct {
		style      config.FontStyle
		wantWeight int
		wantStyle  string
	}{
		{"", 400, "normal"},
		{config.FontStyleNormal, 400, "normal"},
		{config.FontStyleBold, 700, "normal"},
		{config.FontStyleItalic, 400, "italic"},
		{config.FontStyleBoldItalic, 700, "italic"},
	}

	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			f := font(0, tt.style)
			assert.Equal(t, tt.wantWeight, f.Weight)
			assert.Equal(t, tt.wantStyle, f.Style)
			assert.Equal(t, DefaultFontSize, f.Size)
		})
	}
}

func TestBorderDashIsCopied(t *testing.T) {
	dash := []float64{1, 2}
	cfg := config.ChartConfig{Border: config.Border{Style: config.BorderStyleDashed, Dash: dash}}

	o := New(nil, cfg).Render(nil).Options
	require.Equal(t, []float64{1, 2}, o.Border.Dash)

	o.Border.Dash[0] = 99
	assert.InDelta(t, 1.0, dash[0], epsilon)

	solid := New(nil, config.ChartConfig{Border: config.Border{Dash: dash}}).Render(nil).Options
	assert.Empty(t, solid.Border.Dash, "a solid border has no dash pattern")
	assert.False(t, solid.Border.IsDashed())
}

func TestUnknownKindIsALineChart(t *testing.T) {
	a := New([]model.Trace{trace("pie", "x", "y")}, config.ChartConfig{})
	assert.Equal(t, model.KindLine, a.Kind())

	data := a.Data(rowsOf(map[string]model.Value{"x": "1", "y": "1"}))
	assert.Equal(t, model.KindLine, data.Kind)
	assert.Equal(t, model.KindLine, data.Datasets[0].Kind)
}

func TestRenderingJSON(t *testing.T) {
	rows := rowsOf(
		map[string]model.Value{"x": "1", "y": "gap"},
		map[string]model.Value{"x": "2", "y": "4"},
	)
	r := New([]model.Trace{trace(model.KindLine, "x", "y")}, config.ChartConfig{}).Render(rows)

	buf, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded struct {
		Data struct {
			Datasets []struct {
				Points []struct {
					X string   `json:"x"`
					Y *float64 `json:"y"`
				} `json:"points"`
			} `json:"datasets"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf, &decoded))
	require.Len(t, decoded.Data.Datasets, 1)

	points := decoded.Data.Datasets[0].Points
	require.Len(t, points, 2)
	assert.Nil(t, points[0].Y)
	require.NotNil(t, points[1].Y)
	assert.InDelta(t, 4.0, *points[1].Y, epsilon)
}

func trace(k model.Kind, x, y string) model.Trace {
	return model.NewTrace(k, x, y)
}

func ratio(r config.AspectRatio) config.ChartConfig {
	return config.ChartConfig{AspectRatio: r}
}

func rowsOf(cells ...map[string]model.Value) []model.Row {
	rows := make([]model.Row, 0, len(cells))
	for i, c := range cells {
		rows = append(rows, model.Row{ID: i + 1, Cells: c})
	}

	return rows
}

func xs(ds Dataset) []model.Value {
	out := make([]model.Value, 0, len(ds.Points))
	for _, p := range ds.Points {
		out = append(out, p.X)
	}

	return out
}

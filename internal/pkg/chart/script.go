package chart

import (
	"encoding/json"
	"fmt"

	"github.com/fredbi/chartcraft/internal/pkg/adapter"
	"github.com/fredbi/chartcraft/internal/pkg/model"
	"github.com/go-echarts/go-echarts/v2/types"
)

// echartsInstance is replaced by the echarts instance of the chart when rendering.
const echartsInstance = "%MY_ECHARTS%"

const borderID = "chart-area-border"

// optionPatch holds the echarts options that go-echarts does not expose.
// It is merged into the chart options once the chart is initialized.
type optionPatch struct {
	XAxis  []axisPatch   `json:"xAxis"`
	YAxis  []axisPatch   `json:"yAxis"`
	Series []seriesPatch `json:"series,omitempty"`
}

type axisPatch struct {
	NameTextStyle nameTextStyle `json:"nameTextStyle"`
	AxisTick      axisTick      `json:"axisTick"`
}

type nameTextStyle struct {
	Color      string `json:"color"`
	FontSize   int    `json:"fontSize"`
	FontWeight string `json:"fontWeight"`
	FontStyle  string `json:"fontStyle"`
}

type axisTick struct {
	Show bool `json:"show"`
}

type seriesPatch struct {
	ID     string  `json:"id"`
	Smooth float64 `json:"smooth"`
}

// borderStyle is the style of the echarts graphic rectangle drawn around the chart area.
type borderStyle struct {
	Fill           string    `json:"fill"`
	Stroke         string    `json:"stroke"`
	LineWidth      float64   `json:"lineWidth"`
	LineDash       []float64 `json:"lineDash,omitempty"`
	LineDashOffset float64   `json:"lineDashOffset,omitempty"`
}

// scripts returns the JavaScript snippets run after the chart is initialized.
func (c *Chart) scripts() []types.FuncStr {
	fns := []types.FuncStr{c.patchScript()}

	if c.Rendering.Options.Border.Display {
		fns = append(fns, c.borderScript())
	}

	return fns
}

func (c *Chart) patchScript() types.FuncStr {
	o := c.Rendering.Options
	patch := optionPatch{
		XAxis: []axisPatch{axisStyle(o.X)},
		YAxis: []axisPatch{axisStyle(o.Y)},
	}

	if o.Tension > 0 {
		for _, ds := range c.Rendering.Data.Datasets {
			if ds.Kind != model.KindLine {
				continue
			}

			patch.Series = append(patch.Series, seriesPatch{ID: seriesID(ds), Smooth: o.Tension})
		}
	}

	return types.FuncStr(fmt.Sprintf("%s.setOption(%s);", echartsInstance, mustJSON(patch)))
}

// borderScript draws a rectangle around the grid, following its position as the chart is laid out again.
func (c *Chart) borderScript() types.FuncStr {
	b := c.Rendering.Options.Border
	style := borderStyle{
		Fill:      "none",
		Stroke:    b.Color,
		LineWidth: b.Width,
	}

	if b.IsDashed() {
		style.LineDash = b.Dash
		style.LineDashOffset = b.DashOffset
	}

	return types.FuncStr(fmt.Sprintf(
		`(function (chart) {`+
			`var last = '';`+
			`var draw = function () {`+
			`var grid = chart.getModel().getComponent('grid');`+
			`if (!grid || !grid.coordinateSystem) { return; }`+
			`var r = grid.coordinateSystem.getRect();`+
			`var key = [r.x, r.y, r.width, r.height].join(',');`+
			`if (key === last) { return; }`+
			`last = key;`+
			`chart.setOption({graphic: [{id: '%s', type: 'rect', silent: true, z: 100,`+
			`shape: {x: r.x, y: r.y, width: r.width, height: r.height}, style: %s}]});`+
			`};`+
			`chart.on('finished', draw);`+
			`draw();`+
			`})(%s);`,
		borderID, mustJSON(style), echartsInstance,
	))
}

func axisStyle(o adapter.AxisOptions) axisPatch {
	return axisPatch{
		NameTextStyle: nameTextStyle{
			Color:      o.Title.Color,
			FontSize:   o.Title.Font.Size,
			FontWeight: fontWeight(o.Title.Font),
			FontStyle:  o.Title.Font.Style,
		},
		AxisTick: axisTick{Show: o.Ticks.Display},
	}
}

func mustJSON(v any) string {
	buf, err := json.Marshal(v)
	if err != nil {
		// only plain structs of strings and numbers are marshaled here
		panic(fmt.Errorf("marshaling chart script: %w", err))
	}

	return string(buf)
}

// Package preview rasterizes a chart rendering to PNG natively, without a browser.
//
// The preview draws the chart area only: grid lines, axis lines and ticks, series and border.
// Texts (titles, legends, tick labels) are left to the browser rendering.
package preview

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/fredbi/chartcraft/internal/pkg/adapter"
	"github.com/fredbi/chartcraft/internal/pkg/config"
	"github.com/fredbi/chartcraft/internal/pkg/model"
	"github.com/gogpu/gg"
)

const (
	axisColor  = "#6e7079"
	tickLength = 5.0
)

// Renderer draws chart renderings as PNG images.
type Renderer struct {
	options

	l *slog.Logger
}

// New preview [Renderer].
func New(opts ...Option) *Renderer {
	return &Renderer{
		options: optionsWithDefaults(opts),
		l:       slog.Default().With(slog.String("module", "preview")),
	}
}

// Render draws the rendering and writes it to w as a PNG image of the rendering dimensions.
func (r *Renderer) Render(w io.Writer, rendering adapter.Rendering) error {
	dims := rendering.Dimensions
	if dims.Width <= 0 || dims.Height <= 0 {
		return fmt.Errorf("invalid preview dimensions %dx%d", dims.Width, dims.Height)
	}

	dc := gg.NewContext(dims.Width, dims.Height)
	defer func() {
		_ = dc.Close()
	}()

	c := &canvas{dc: dc}
	c.draw(r.options, rendering)
	if c.err != nil {
		return fmt.Errorf("drawing preview: %w", c.err)
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encoding preview: %w", err)
	}

	r.l.Info("preview rendered",
		slog.Int("width", dims.Width),
		slog.Int("height", dims.Height),
		slog.Int("datasets", len(rendering.Data.Datasets)),
	)

	return nil
}

// canvas wraps a drawing context and keeps the first drawing error.
type canvas struct {
	dc  *gg.Context
	err error
}

func (c *canvas) draw(o options, rendering adapter.Rendering) {
	background, ok := parseColor(o.Background)
	if !ok {
		background = gg.White
	}
	c.dc.ClearWithColor(background)

	a := plotArea(rendering.Dimensions, o.Margin)
	p := newPlot(rendering, a)
	opts := rendering.Options

	c.grid(p, opts)
	c.axes(p, opts)

	c.dc.DrawRectangle(a.X, a.Y, a.W, a.H)
	c.dc.Clip()
	c.series(p, rendering.Data)
	c.dc.ResetClip()

	if opts.Border.Display {
		c.border(a, opts.Border)
	}
}

func (c *canvas) setColor(color string) {
	rgba, ok := parseColor(color)
	if !ok {
		rgba = gg.RGBA{A: 1}
	}
	c.dc.SetRGBA(rgba.R, rgba.G, rgba.B, rgba.A)
}

func (c *canvas) stroke() {
	if err := c.dc.Stroke(); err != nil && c.err == nil {
		c.err = err
	}
}

func (c *canvas) fill() {
	if err := c.dc.Fill(); err != nil && c.err == nil {
		c.err = err
	}
}

func (c *canvas) line(x1, y1, x2, y2 float64) {
	c.dc.MoveTo(x1, y1)
	c.dc.LineTo(x2, y2)
	c.stroke()
}

// xTicks returns the pixel positions of the x ticks.
func xTicks(p plot, o adapter.AxisOptions) []float64 {
	if p.category {
		positions := make([]float64, 0, len(p.labels))
		for i := range p.labels {
			positions = append(positions, p.slotX(i))
		}

		return positions
	}

	values := p.x.ticks(o.Ticks.Count, o.Ticks.Step)
	positions := make([]float64, 0, len(values))
	for _, v := range values {
		positions = append(positions, p.px(v))
	}

	return positions
}

func yTicks(p plot, o adapter.AxisOptions) []float64 {
	values := p.y.ticks(o.Ticks.Count, o.Ticks.Step)
	positions := make([]float64, 0, len(values))
	for _, v := range values {
		positions = append(positions, p.py(v))
	}

	return positions
}

func (c *canvas) grid(p plot, o adapter.ChartOptions) {
	c.dc.SetLineWidth(1)
	c.dc.ClearDash()
	a := p.area

	if o.X.Grid.Display {
		c.setColor(o.X.Grid.Color)
		for _, x := range xTicks(p, o.X) {
			c.line(x, a.Y, x, a.bottom())
		}
	}

	if o.Y.Grid.Display {
		c.setColor(o.Y.Grid.Color)
		for _, y := range yTicks(p, o.Y) {
			c.line(a.X, y, a.right(), y)
		}
	}
}

func (c *canvas) axes(p plot, o adapter.ChartOptions) {
	a := p.area
	c.dc.SetLineWidth(1)
	c.setColor(axisColor)

	baseY := a.bottom()
	if o.X.Position == config.PositionTop {
		baseY = a.Y
	}
	c.line(a.X, baseY, a.right(), baseY)

	baseX := a.X
	if o.Y.Position == config.PositionRight {
		baseX = a.right()
	}
	c.line(baseX, a.Y, baseX, a.bottom())

	if o.X.Ticks.Display {
		direction := 1.0
		if baseY == a.Y {
			direction = -1
		}

		for _, x := range xTicks(p, o.X) {
			c.line(x, baseY, x, baseY+direction*tickLength)
		}
	}

	if o.Y.Ticks.Display {
		direction := -1.0
		if baseX != a.X {
			direction = 1
		}

		for _, y := range yTicks(p, o.Y) {
			c.line(baseX, y, baseX+direction*tickLength, y)
		}
	}
}

func (c *canvas) series(p plot, data adapter.Data) {
	bars := 0
	for _, ds := range data.Datasets {
		if ds.Kind == model.KindBar {
			bars++
		}
	}

	bar := 0
	for _, ds := range data.Datasets {
		style := ds.Style.WithDefaults()
		vertices := p.vertices(ds)

		switch ds.Kind {
		case model.KindBar:
			c.bars(p, vertices, style, bar, bars)
			bar++
		case model.KindScatter:
			c.markers(vertices, style)
		default:
			c.polyline(vertices, style)
			c.markers(vertices, style)
		}
	}
}

// polyline joins consecutive points, breaking the line at gaps.
func (c *canvas) polyline(vertices []vertex, style model.TraceStyle) {
	width := max(style.LineWidth, 0.5)
	c.dc.SetLineWidth(width)
	c.setColor(style.LineColor)

	switch style.LineStyle {
	case model.LineStyleDashed:
		c.dc.SetDash(4*width, 2*width)
	case model.LineStyleDotted:
		c.dc.SetDash(width, width)
	default:
		c.dc.ClearDash()
	}
	defer c.dc.ClearDash()

	started, open := false, false
	for _, v := range vertices {
		if v.Gap {
			if open {
				c.stroke()
			}
			c.dc.ClearPath()
			started, open = false, false

			continue
		}

		if !started {
			c.dc.MoveTo(v.X, v.Y)
			started = true

			continue
		}

		c.dc.LineTo(v.X, v.Y)
		open = true
	}

	if open {
		c.stroke()
	}
	c.dc.ClearPath()
}

func (c *canvas) markers(vertices []vertex, style model.TraceStyle) {
	size := style.MarkerSize
	if size <= 0 {
		return
	}

	c.dc.ClearDash()
	c.dc.SetLineWidth(max(size/4, 1))
	c.setColor(style.MarkerColor)

	for _, v := range vertices {
		if v.Gap {
			continue
		}

		c.marker(style.MarkerStyle, v.X, v.Y, size/2)
	}
}

func (c *canvas) marker(shape model.MarkerStyle, x, y, r float64) {
	switch shape {
	case model.MarkerRect:
		c.dc.DrawRectangle(x-r, y-r, 2*r, 2*r)
		c.fill()
	case model.MarkerTriangle:
		c.dc.DrawRegularPolygon(3, x, y, r, -math.Pi/2)
		c.fill()
	case model.MarkerDiamond:
		c.dc.DrawRegularPolygon(4, x, y, r, 0)
		c.fill()
	case model.MarkerCross:
		c.line(x-r, y, x+r, y)
		c.line(x, y-r, x, y+r)
	case model.MarkerStar:
		c.star(x, y, r)
		c.fill()
	default:
		c.dc.DrawCircle(x, y, r)
		c.fill()
	}
}

// star outlines a five-pointed star, alternating outer and inner vertices.
func (c *canvas) star(x, y, r float64) {
	const points = 5
	inner := r * 0.45

	for i := range 2 * points {
		radius := r
		if i%2 == 1 {
			radius = inner
		}

		angle := -math.Pi/2 + float64(i)*math.Pi/points
		px, py := x+radius*math.Cos(angle), y+radius*math.Sin(angle)
		if i == 0 {
			c.dc.MoveTo(px, py)

			continue
		}
		c.dc.LineTo(px, py)
	}
	c.dc.ClosePath()
}

// bars draws the bars of the index-th bar dataset out of count, side by side within each category slot.
func (c *canvas) bars(p plot, vertices []vertex, style model.TraceStyle, index, count int) {
	width := style.MarkerSize
	if width <= 0 {
		return
	}

	if p.category {
		// bars never overflow their slot
		width = min(width, p.slotWidth()/float64(max(1, count)))
	}
	offset := (float64(index) - float64(count-1)/2) * width
	base := p.baseline()

	c.dc.ClearDash()
	for _, v := range vertices {
		if v.Gap {
			continue
		}

		x := v.X + offset - width/2
		top, height := min(v.Y, base), math.Abs(base-v.Y)

		c.setColor(style.MarkerColor)
		c.dc.DrawRectangle(x, top, width, height)
		c.fill()

		if style.LineWidth > 0 {
			c.dc.SetLineWidth(style.LineWidth)
			c.setColor(style.LineColor)
			c.dc.DrawRectangle(x, top, width, height)
			c.stroke()
		}
	}
}

func (c *canvas) border(a area, b adapter.BorderOptions) {
	c.dc.SetLineWidth(max(b.Width, 0.5))
	c.setColor(b.Color)

	if b.IsDashed() {
		c.dc.SetDash(b.Dash...)
		c.dc.SetDashOffset(b.DashOffset)
	} else {
		c.dc.ClearDash()
	}
	defer c.dc.ClearDash()

	c.dc.DrawRectangle(a.X, a.Y, a.W, a.H)
	c.stroke()
}

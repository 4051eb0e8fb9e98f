package preview

import (
	"math"

	"github.com/fredbi/chartcraft/internal/pkg/adapter"
)

const (
	defaultTicks = 5
	maxTicks     = 100
)

// area is the rectangle of the chart area, in pixels.
type area struct {
	X, Y, W, H float64
}

func (a area) right() float64  { return a.X + a.W }
func (a area) bottom() float64 { return a.Y + a.H }

// plotArea is the image minus the margins, or the full image when the margins leave no room.
func plotArea(dims adapter.Dimensions, margin float64) area {
	w, h := float64(dims.Width), float64(dims.Height)
	if w-2*margin <= 0 || h-2*margin <= 0 {
		return area{W: w, H: h}
	}

	return area{X: margin, Y: margin, W: w - 2*margin, H: h - 2*margin}
}

// axisRange is the numeric window of an axis, never empty.
type axisRange struct {
	min, max float64
}

func newAxisRange(lo, hi float64) axisRange {
	if hi <= lo {
		return axisRange{min: lo - 1, max: lo + 1}
	}

	return axisRange{min: lo, max: hi}
}

func (r axisRange) ratio(v float64) float64 {
	return (v - r.min) / (r.max - r.min)
}

// clamp restricts v to the window.
func (r axisRange) clamp(v float64) float64 {
	return min(max(v, r.min), r.max)
}

// ticks returns the tick values within the window.
//
// A positive step places ticks on multiples of the step. Otherwise, count intervals split the window evenly.
func (r axisRange) ticks(count int, step float64) []float64 {
	if step > 0 {
		first := math.Ceil(r.min/step) * step
		values := make([]float64, 0, defaultTicks+1)
		for v := first; v <= r.max+step*1e-9 && len(values) < maxTicks; v += step {
			values = append(values, v)
		}

		return values
	}

	if count <= 0 {
		count = defaultTicks
	}
	count = min(count, maxTicks)

	values := make([]float64, 0, count+1)
	for i := range count + 1 {
		values = append(values, r.min+(r.max-r.min)*float64(i)/float64(count))
	}

	return values
}

// plot maps data values to pixels.
type plot struct {
	area     area
	x, y     axisRange
	category bool
	labels   []string
}

func newPlot(rendering adapter.Rendering, a area) plot {
	o := rendering.Options
	p := plot{
		area:     a,
		x:        newAxisRange(o.X.Min, o.X.Max),
		category: o.X.Type == adapter.ScaleCategory,
		labels:   rendering.Data.Labels,
	}

	yMin, yMax := o.Y.Min, o.Y.Max
	if o.Y.BeginAtZero {
		yMin, yMax = min(0, yMin), max(0, yMax)
	}
	p.y = newAxisRange(yMin, yMax)

	return p
}

// slotWidth is the width of one category on a category axis.
func (p plot) slotWidth() float64 {
	return p.area.W / float64(max(1, len(p.labels)))
}

// slotX is the pixel center of the i-th category.
func (p plot) slotX(i int) float64 {
	return p.area.X + (float64(i)+0.5)*p.slotWidth()
}

func (p plot) px(x float64) float64 {
	return p.area.X + p.x.ratio(x)*p.area.W
}

func (p plot) py(y float64) float64 {
	return p.area.bottom() - p.y.ratio(y)*p.area.H
}

// baseline is the pixel height of bars starting from zero, kept within the chart area.
func (p plot) baseline() float64 {
	return p.py(p.y.clamp(0))
}

// vertex is a point of a series, in pixels. A gap breaks a polyline.
type vertex struct {
	X, Y float64
	Gap  bool
}

// vertices places the points of a dataset. Points that cannot be placed on the x axis are dropped.
func (p plot) vertices(ds adapter.Dataset) []vertex {
	if p.category {
		ys := ds.ValuesByLabel(p.labels)
		out := make([]vertex, 0, len(ys))
		for i, y := range ys {
			if math.IsNaN(y) {
				out = append(out, vertex{X: p.slotX(i), Gap: true})

				continue
			}
			out = append(out, vertex{X: p.slotX(i), Y: p.py(y)})
		}

		return out
	}

	out := make([]vertex, 0, len(ds.Points))
	for _, pt := range ds.Points {
		if !pt.XNumeric {
			continue
		}

		if !pt.HasY() {
			out = append(out, vertex{X: p.px(pt.XValue), Gap: true})

			continue
		}
		out = append(out, vertex{X: p.px(pt.XValue), Y: p.py(pt.Y)})
	}

	return out
}

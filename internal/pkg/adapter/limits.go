package adapter

import (
	"math"
	"strconv"
	"strings"
)

const (
	limitsPadding = 0.1
	fallbackLimit = 10.0
)

// Limits are the numeric bounds of both chart axes.
type Limits struct {
	XMin float64 `json:"x_min"`
	XMax float64 `json:"x_max"`
	YMin float64 `json:"y_min"`
	YMax float64 `json:"y_max"`
}

// FallbackLimits is the [-10, 10] window used when there is nothing to scale on.
func FallbackLimits() Limits {
	return Limits{XMin: -fallbackLimit, XMax: fallbackLimit, YMin: -fallbackLimit, YMax: fallbackLimit}
}

// span accumulates the raw extent of the finite values fed to it.
type span struct {
	min, max float64
	seen     bool
}

func (s *span) add(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}

	if !s.seen {
		s.min, s.max, s.seen = v, v, true

		return
	}

	s.min = math.Min(s.min, v)
	s.max = math.Max(s.max, v)
}

// padded returns the extent widened by 10% on each side, or [-10, 10] if no value was seen.
func (s span) padded() (lo, hi float64) {
	if !s.seen {
		return -fallbackLimit, fallbackLimit
	}

	pad := (s.max - s.min) * limitsPadding

	return s.min - pad, s.max + pad
}

// allEmpty reports whether there is no point to scale on.
func allEmpty(datasets []Dataset) bool {
	for _, ds := range datasets {
		if !ds.IsEmpty() {
			return false
		}
	}

	return true
}

// labelLimits scales the x axis on the numeric shared labels, and the y axis on every dataset.
func labelLimits(data Data) Limits {
	if allEmpty(data.Datasets) {
		return FallbackLimits()
	}

	var x, y span
	for _, label := range data.Labels {
		if f, err := strconv.ParseFloat(strings.TrimSpace(label), 64); err == nil {
			x.add(f)
		}
	}

	for _, ds := range data.Datasets {
		for _, p := range ds.Points {
			y.add(p.Y)
		}
	}

	return limitsFromSpans(x, y)
}

// pointLimits scales both axes independently on every point.
func pointLimits(data Data) Limits {
	if allEmpty(data.Datasets) {
		return FallbackLimits()
	}

	var x, y span
	for _, ds := range data.Datasets {
		for _, p := range ds.Points {
			if p.XNumeric {
				x.add(p.XValue)
			}
			y.add(p.Y)
		}
	}

	return limitsFromSpans(x, y)
}

func limitsFromSpans(x, y span) Limits {
	var l Limits
	l.XMin, l.XMax = x.padded()
	l.YMin, l.YMax = y.padded()

	return l
}

package model

import (
	"github.com/google/uuid"
)

// Kind tags the chart kind of a [Trace].
type Kind string

// Supported chart kinds.
const (
	KindLine    Kind = "line"
	KindBar     Kind = "bar"
	KindScatter Kind = "scatter"
)

// String returns the kind as a plain string.
func (k Kind) String() string {
	return string(k)
}

// IsValid reports whether the kind is one of the supported chart kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindLine, KindBar, KindScatter:
		return true
	default:
		return false
	}
}

// AllKinds returns all supported chart kinds.
func AllKinds() []Kind {
	return []Kind{
		KindLine,
		KindBar,
		KindScatter,
	}
}

// LineStyle is the stroke pattern of a series line.
type LineStyle string

// Supported line styles.
const (
	LineStyleSolid  LineStyle = "solid"
	LineStyleDashed LineStyle = "dashed"
	LineStyleDotted LineStyle = "dotted"
)

// IsValid reports whether the line style is supported.
func (s LineStyle) IsValid() bool {
	switch s {
	case LineStyleSolid, LineStyleDashed, LineStyleDotted:
		return true
	default:
		return false
	}
}

// MarkerStyle is the symbol drawn at each data point.
type MarkerStyle string

// Supported marker styles.
const (
	MarkerCircle   MarkerStyle = "circle"
	MarkerRect     MarkerStyle = "rect"
	MarkerTriangle MarkerStyle = "triangle"
	MarkerDiamond  MarkerStyle = "diamond"
	MarkerCross    MarkerStyle = "cross"
	MarkerStar     MarkerStyle = "star"
)

// IsValid reports whether the marker style is supported.
func (s MarkerStyle) IsValid() bool {
	switch s {
	case MarkerCircle, MarkerRect, MarkerTriangle, MarkerDiamond, MarkerCross, MarkerStar:
		return true
	default:
		return false
	}
}

// TraceStyle is the visual style of a [Trace].
type TraceStyle struct {
	LineColor   string      `json:"line_color"`
	MarkerColor string      `json:"marker_color"`
	LineWidth   float64     `json:"line_width"`
	MarkerSize  float64     `json:"marker_size"`
	LineStyle   LineStyle   `json:"line_style"`
	MarkerStyle MarkerStyle `json:"marker_style"`
}

// DefaultTraceStyle is the style given to new traces.
func DefaultTraceStyle() TraceStyle {
	return TraceStyle{
		LineColor:   "#1a73e8",
		MarkerColor: "#1a73e8",
		LineWidth:   2,
		MarkerSize:  6,
		LineStyle:   LineStyleSolid,
		MarkerStyle: MarkerCircle,
	}
}

// WithDefaults fills unset or invalid fields from [DefaultTraceStyle].
func (s TraceStyle) WithDefaults() TraceStyle {
	d := DefaultTraceStyle()

	if s.LineColor == "" {
		s.LineColor = d.LineColor
	}
	if s.MarkerColor == "" {
		s.MarkerColor = d.MarkerColor
	}
	if s.LineWidth <= 0 {
		s.LineWidth = d.LineWidth
	}
	if s.MarkerSize <= 0 {
		s.MarkerSize = d.MarkerSize
	}
	if !s.LineStyle.IsValid() {
		s.LineStyle = d.LineStyle
	}
	if !s.MarkerStyle.IsValid() {
		s.MarkerStyle = d.MarkerStyle
	}

	return s
}

// Trace maps two columns of a table to a series on a chart.
//
// Column references are not checked against any table: a trace pointing to a missing
// column yields an empty series.
type Trace struct {
	ID      string     `json:"id"`
	Kind    Kind       `json:"kind"`
	XColumn string     `json:"x_column"`
	YColumn string     `json:"y_column"`
	Title   string     `json:"title,omitempty"`
	Style   TraceStyle `json:"style"`
}

// NewTrace builds a [Trace] with a fresh unique ID and the default style.
func NewTrace(kind Kind, xColumn, yColumn string) Trace {
	return Trace{
		ID:      NewTraceID(),
		Kind:    kind,
		XColumn: xColumn,
		YColumn: yColumn,
		Style:   DefaultTraceStyle(),
	}
}

// NewTraceID returns an opaque unique trace identifier.
func NewTraceID() string {
	return uuid.NewString()
}

// Label is the legend label of the trace: its title, or "<x> vs <y>" when untitled.
func (t Trace) Label() string {
	if t.Title != "" {
		return t.Title
	}

	return t.XColumn + " vs " + t.YColumn
}

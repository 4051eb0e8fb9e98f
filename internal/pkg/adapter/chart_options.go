package adapter

import (
	"slices"

	"github.com/fredbi/chartcraft/internal/pkg/config"
)

// Defaults applied to a [config.ChartConfig] field left unset.
const (
	DefaultTitle       = "My Chart"
	DefaultXAxisLabel  = "X Axis"
	DefaultYAxisLabel  = "Y Axis"
	DefaultTextColor   = "#000000"
	DefaultFontSize    = 16
	DefaultGridColor   = "rgba(0, 0, 0, 0.1)"
	DefaultBorderColor = "#000000"
	DefaultBorderWidth = 1.0

	FontWeightNormal = 400
	FontWeightBold   = 700

	FontStyleNormal = "normal"
	FontStyleItalic = "italic"
)

// DefaultBorderDash is the dash pattern of a dashed border with no explicit pattern.
func DefaultBorderDash() []float64 {
	return []float64{5, 5}
}

// ChartOptions is the complete, render-agnostic set of presentation options of a chart.
//
// Every field is resolved: defaults are already applied.
type ChartOptions struct {
	Width   int           `json:"width"`
	Height  int           `json:"height"`
	Title   TitleOptions  `json:"title"`
	Legend  LegendOptions `json:"legend"`
	X       AxisOptions   `json:"x"`
	Y       AxisOptions   `json:"y"`
	Border  BorderOptions `json:"border"`
	Tension float64       `json:"tension,omitempty"`
}

// Font of a text element.
type Font struct {
	Size   int    `json:"size"`
	Weight int    `json:"weight"`
	Style  string `json:"style"`
}

// IsBold reports whether the font weight is bold.
func (f Font) IsBold() bool {
	return f.Weight >= FontWeightBold
}

// IsItalic reports whether the font is slanted.
func (f Font) IsItalic() bool {
	return f.Style == FontStyleItalic
}

// TitleOptions configures the chart title.
type TitleOptions struct {
	Display  bool            `json:"display"`
	Text     string          `json:"text"`
	Position config.Position `json:"position"`
	Color    string          `json:"color"`
	Font     Font            `json:"font"`
}

// LegendOptions configures the legend.
type LegendOptions struct {
	Display  bool            `json:"display"`
	Position config.Position `json:"position"`
}

// AxisOptions configures one axis.
type AxisOptions struct {
	Type        ScaleType       `json:"type"`
	Position    config.Position `json:"position"`
	Title       TitleOptions    `json:"title"`
	Min         float64         `json:"min"`
	Max         float64         `json:"max"`
	BeginAtZero bool            `json:"begin_at_zero,omitempty"`
	Ticks       TicksOptions    `json:"ticks"`
	Grid        GridOptions     `json:"grid"`
}

// TicksOptions configures the ticks of an axis.
//
// A zero Count or Step lets the renderer decide.
type TicksOptions struct {
	Display bool    `json:"display"`
	Count   int     `json:"count,omitempty"`
	Step    float64 `json:"step,omitempty"`
	Color   string  `json:"color"`
}

// GridOptions configures the grid lines drawn from an axis.
type GridOptions struct {
	Display bool   `json:"display"`
	Color   string `json:"color"`
}

// BorderOptions configures the border drawn around the chart area.
//
// Dash is empty for a solid border.
type BorderOptions struct {
	Display    bool               `json:"display"`
	Color      string             `json:"color"`
	Width      float64            `json:"width"`
	Style      config.BorderStyle `json:"style"`
	Dash       []float64          `json:"dash,omitempty"`
	DashOffset float64            `json:"dash_offset,omitempty"`
}

// IsDashed reports whether the border is drawn with a dash pattern.
func (b BorderOptions) IsDashed() bool {
	return b.Style == config.BorderStyleDashed && len(b.Dash) > 0
}

// chartOptions merges the chart config with defaults. Kind-specific adjustments are applied by the caller.
func chartOptions(cfg config.ChartConfig, dims Dimensions, limits Limits, xScale ScaleType) ChartOptions {
	return ChartOptions{
		Width:  dims.Width,
		Height: dims.Height,
		Title: TitleOptions{
			Display:  true,
			Text:     orDefault(cfg.Title, DefaultTitle),
			Position: orDefault(cfg.TitlePosition, config.PositionTop),
			Color:    orDefault(cfg.TitleColor, DefaultTextColor),
			Font:     font(cfg.TitleFontSize, cfg.TitleFontStyle),
		},
		Legend: LegendOptions{
			Display:  config.Flag(cfg.ShowLegend, true),
			Position: orDefault(cfg.LegendPosition, config.PositionTop),
		},
		X: AxisOptions{
			Type:     xScale,
			Position: orDefault(cfg.XAxisPosition, config.PositionBottom),
			Title:    axisTitle(cfg.XAxisLabel, DefaultXAxisLabel, cfg.XAxisColor, cfg.XAxisFontSize, cfg.XAxisFontStyle),
			Min:      limits.XMin,
			Max:      limits.XMax,
			Ticks: TicksOptions{
				Display: config.Flag(cfg.ShowXTicks, true),
				Count:   cfg.XTicksCount,
				Step:    cfg.XTicksStep,
				Color:   orDefault(cfg.XAxisColor, DefaultTextColor),
			},
			Grid: GridOptions{
				Display: cfg.XGridVisible(),
				Color:   DefaultGridColor,
			},
		},
		Y: AxisOptions{
			Type:     ScaleLinear,
			Position: orDefault(cfg.YAxisPosition, config.PositionLeft),
			Title:    axisTitle(cfg.YAxisLabel, DefaultYAxisLabel, cfg.YAxisColor, cfg.YAxisFontSize, cfg.YAxisFontStyle),
			Min:      limits.YMin,
			Max:      limits.YMax,
			Ticks: TicksOptions{
				Display: config.Flag(cfg.ShowYTicks, true),
				Count:   cfg.YTicksCount,
				Step:    cfg.YTicksStep,
				Color:   orDefault(cfg.YAxisColor, DefaultTextColor),
			},
			Grid: GridOptions{
				Display: cfg.YGridVisible(),
				Color:   DefaultGridColor,
			},
		},
		Border: border(cfg.Border),
	}
}

func axisTitle(text, defaultText, color string, size int, style config.FontStyle) TitleOptions {
	return TitleOptions{
		Display: true,
		Text:    orDefault(text, defaultText),
		Color:   orDefault(color, DefaultTextColor),
		Font:    font(size, style),
	}
}

func font(size int, style config.FontStyle) Font {
	f := Font{
		Size:   size,
		Weight: FontWeightNormal,
		Style:  FontStyleNormal,
	}

	if f.Size <= 0 {
		f.Size = DefaultFontSize
	}
	if style.IsBold() {
		f.Weight = FontWeightBold
	}
	if style.IsItalic() {
		f.Style = FontStyleItalic
	}

	return f
}

func border(b config.Border) BorderOptions {
	opts := BorderOptions{
		Display: config.Flag(b.Display, false),
		Color:   orDefault(b.Color, DefaultBorderColor),
		Width:   b.Width,
		Style:   orDefault(b.Style, config.BorderStyleSolid),
	}

	if opts.Width <= 0 {
		opts.Width = DefaultBorderWidth
	}

	if opts.Style == config.BorderStyleDashed {
		opts.Dash = slices.Clone(b.Dash)
		if len(opts.Dash) == 0 {
			opts.Dash = DefaultBorderDash()
		}
		opts.DashOffset = b.DashOffset
	}

	return opts
}

func orDefault[T comparable](value, def T) T {
	var zero T
	if value == zero {
		return def
	}

	return value
}

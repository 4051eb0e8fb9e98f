package config

import (
	"errors"
	"fmt"
	"slices"
)

// ChartConfig is the flat record of presentation options applied to a chart.
//
// Every field is optional: the zero value (or a nil pointer for flags) means "not set",
// and consumers apply their own defaults.
//
// A [ChartConfig] is always replaced as a whole, never patched field by field.
type ChartConfig struct {
	// Dimensions
	AspectRatio  AspectRatio
	CustomWidth  int
	CustomHeight int

	// Title
	Title          string
	TitleColor     string
	TitlePosition  Position
	TitleFontSize  int
	TitleFontStyle FontStyle

	// X axis
	XAxisLabel     string
	XAxisPosition  Position
	XAxisColor     string
	XAxisFontSize  int
	XAxisFontStyle FontStyle
	ShowXTicks     *bool
	XTicksCount    int
	XTicksStep     float64

	// Y axis
	YAxisLabel     string
	YAxisPosition  Position
	YAxisColor     string
	YAxisFontSize  int
	YAxisFontStyle FontStyle
	ShowYTicks     *bool
	YTicksCount    int
	YTicksStep     float64

	// Grid and legend.
	//
	// ShowGrid is the legacy single flag: it is only consulted when the per-axis flag is not set.
	ShowGrid       *bool
	ShowXGrid      *bool
	ShowYGrid      *bool
	ShowLegend     *bool
	LegendPosition Position

	Border Border
}

// Border configures the optional border drawn around the chart area.
type Border struct {
	Display    *bool
	Color      string
	Width      float64
	Style      BorderStyle
	Dash       []float64
	DashOffset float64
}

// XGridVisible resolves the visibility of vertical grid lines.
func (c ChartConfig) XGridVisible() bool {
	return firstFlag(true, c.ShowXGrid, c.ShowGrid)
}

// YGridVisible resolves the visibility of horizontal grid lines.
func (c ChartConfig) YGridVisible() bool {
	return firstFlag(true, c.ShowYGrid, c.ShowGrid)
}

// field is a named config value, checked in declaration order.
type field[T any] struct {
	name  string
	value T
}

// Validate checks enumerated tags and sizes.
func (c ChartConfig) Validate() error {
	var errs []error

	if !c.AspectRatio.IsValid() {
		errs = append(errs, fmt.Errorf("invalid chart: aspectRatio=%q (should be one of %v)", c.AspectRatio, AllAspectRatios()))
	}

	if c.CustomWidth < 0 || c.CustomHeight < 0 {
		errs = append(errs, fmt.Errorf("invalid chart: custom dimensions must not be negative: %dx%d", c.CustomWidth, c.CustomHeight))
	}

	if !c.TitlePosition.IsVertical() {
		errs = append(errs, fmt.Errorf("invalid chart: titlePosition=%q (should be top or bottom)", c.TitlePosition))
	}

	if !c.XAxisPosition.IsVertical() {
		errs = append(errs, fmt.Errorf("invalid chart: xAxisPosition=%q (should be top or bottom)", c.XAxisPosition))
	}

	if !c.YAxisPosition.IsHorizontal() {
		errs = append(errs, fmt.Errorf("invalid chart: yAxisPosition=%q (should be left or right)", c.YAxisPosition))
	}

	if !c.LegendPosition.IsValid() {
		errs = append(errs, fmt.Errorf("invalid chart: legendPosition=%q", c.LegendPosition))
	}

	for _, f := range []field[FontStyle]{
		{"titleFontStyle", c.TitleFontStyle},
		{"xAxisFontStyle", c.XAxisFontStyle},
		{"yAxisFontStyle", c.YAxisFontStyle},
	} {
		if !f.value.IsValid() {
			errs = append(errs, fmt.Errorf("invalid chart: %s=%q", f.name, f.value))
		}
	}

	for _, f := range []field[int]{
		{"titleFontSize", c.TitleFontSize},
		{"xAxisFontSize", c.XAxisFontSize},
		{"yAxisFontSize", c.YAxisFontSize},
		{"xTicksCount", c.XTicksCount},
		{"yTicksCount", c.YTicksCount},
	} {
		if f.value < 0 {
			errs = append(errs, fmt.Errorf("invalid chart: %s must not be negative: %d", f.name, f.value))
		}
	}

	if c.XTicksStep < 0 || c.YTicksStep < 0 {
		errs = append(errs, errors.New("invalid chart: ticks step must not be negative"))
	}

	if !c.Border.Style.IsValid() {
		errs = append(errs, fmt.Errorf("invalid chart: border.style=%q (should be solid or dashed)", c.Border.Style))
	}

	if c.Border.Width < 0 {
		errs = append(errs, fmt.Errorf("invalid chart: border.width must not be negative: %v", c.Border.Width))
	}

	for i, d := range c.Border.Dash {
		if d < 0 {
			errs = append(errs, fmt.Errorf("invalid chart: border.dash[%d] must not be negative: %v", i, d))
		}
	}

	return errors.Join(errs...)
}

// Clone returns a deep copy of the record: flags and the dash pattern are not shared.
func (c ChartConfig) Clone() ChartConfig {
	clone := c
	clone.ShowXTicks = cloneFlag(c.ShowXTicks)
	clone.ShowYTicks = cloneFlag(c.ShowYTicks)
	clone.ShowGrid = cloneFlag(c.ShowGrid)
	clone.ShowXGrid = cloneFlag(c.ShowXGrid)
	clone.ShowYGrid = cloneFlag(c.ShowYGrid)
	clone.ShowLegend = cloneFlag(c.ShowLegend)
	clone.Border.Display = cloneFlag(c.Border.Display)
	clone.Border.Dash = slices.Clone(c.Border.Dash)

	return clone
}

// Bool returns a pointer to b, to set optional flags of a [ChartConfig].
func Bool(b bool) *bool {
	return &b
}

// Flag resolves an optional flag to its value, or to def when not set.
func Flag(flag *bool, def bool) bool {
	if flag == nil {
		return def
	}

	return *flag
}

func firstFlag(def bool, flags ...*bool) bool {
	for _, flag := range flags {
		if flag != nil {
			return *flag
		}
	}

	return def
}

func cloneFlag(flag *bool) *bool {
	if flag == nil {
		return nil
	}

	return Bool(*flag)
}

package config

import "github.com/go-echarts/go-echarts/v2/types"

// AspectRatio selects how chart dimensions are derived from the bounding box.
type AspectRatio string

// Supported aspect ratios.
const (
	AspectRatioSquare   AspectRatio = "1:1"
	AspectRatioWide     AspectRatio = "16:9"
	AspectRatioStandard AspectRatio = "4:3"
	AspectRatioPhoto    AspectRatio = "3:2"
	AspectRatioCustom   AspectRatio = "custom"
)

// IsValid reports whether the aspect ratio is one of the supported ratios.
//
// The empty ratio is valid and means "use the default".
func (r AspectRatio) IsValid() bool {
	switch r {
	case "", AspectRatioSquare, AspectRatioWide, AspectRatioStandard, AspectRatioPhoto, AspectRatioCustom:
		return true
	default:
		return false
	}
}

// AllAspectRatios returns all supported aspect ratios.
func AllAspectRatios() []AspectRatio {
	return []AspectRatio{
		AspectRatioSquare,
		AspectRatioWide,
		AspectRatioStandard,
		AspectRatioPhoto,
		AspectRatioCustom,
	}
}

// FontStyle combines font weight and slant in a single tag.
type FontStyle string

// Supported font styles.
const (
	FontStyleNormal     FontStyle = "normal"
	FontStyleBold       FontStyle = "bold"
	FontStyleItalic     FontStyle = "italic"
	FontStyleBoldItalic FontStyle = "bolditalic"
)

// IsValid reports whether the font style is supported. The empty style is valid.
func (s FontStyle) IsValid() bool {
	switch s {
	case "", FontStyleNormal, FontStyleBold, FontStyleItalic, FontStyleBoldItalic:
		return true
	default:
		return false
	}
}

// IsBold reports whether the style implies a bold weight.
func (s FontStyle) IsBold() bool {
	return s == FontStyleBold || s == FontStyleBoldItalic
}

// IsItalic reports whether the style implies an italic slant.
func (s FontStyle) IsItalic() bool {
	return s == FontStyleItalic || s == FontStyleBoldItalic
}

// Position places a chart element along the edges of the chart.
type Position string

// Supported positions. Not every element supports every position.
const (
	PositionTop    Position = "top"
	PositionBottom Position = "bottom"
	PositionLeft   Position = "left"
	PositionRight  Position = "right"
)

// IsVertical reports whether the position is top or bottom (or unset).
func (p Position) IsVertical() bool {
	return p == "" || p == PositionTop || p == PositionBottom
}

// IsHorizontal reports whether the position is left or right (or unset).
func (p Position) IsHorizontal() bool {
	return p == "" || p == PositionLeft || p == PositionRight
}

// IsValid reports whether the position is any of the supported positions (or unset).
func (p Position) IsValid() bool {
	return p.IsVertical() || p.IsHorizontal()
}

// BorderStyle is the stroke pattern of the chart-area border.
type BorderStyle string

// Supported border styles.
const (
	BorderStyleSolid  BorderStyle = "solid"
	BorderStyleDashed BorderStyle = "dashed"
)

// IsValid reports whether the border style is supported. The empty style is valid.
func (s BorderStyle) IsValid() bool {
	switch s {
	case "", BorderStyleSolid, BorderStyleDashed:
		return true
	default:
		return false
	}
}

// ThemeWhite is the plain echarts theme, used by default.
const ThemeWhite = "white"

// IsValidTheme reports whether the theme is the default white theme or one of the go-echarts preset themes.
// The empty theme is valid.
func IsValidTheme(theme string) bool {
	return theme == "" || theme == ThemeWhite || types.PresetTheme(theme)
}

// PageLayout arranges the charts of a page.
type PageLayout string

// Supported page layouts.
const (
	PageLayoutFlex   PageLayout = "flex"
	PageLayoutCenter PageLayout = "center"
	PageLayoutNone   PageLayout = "none"
)

// IsValid reports whether the layout is supported. The empty layout is valid.
func (l PageLayout) IsValid() bool {
	switch l {
	case "", PageLayoutFlex, PageLayoutCenter, PageLayoutNone:
		return true
	default:
		return false
	}
}

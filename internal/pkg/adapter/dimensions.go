package adapter

import (
	"math"

	"github.com/fredbi/chartcraft/internal/pkg/config"
)

// Default bounding box of a chart, in pixels.
const (
	DefaultMaxWidth  = 800
	DefaultMaxHeight = 600
)

// Bounds is the bounding box that chart dimensions never exceed.
type Bounds struct {
	MaxWidth  int
	MaxHeight int
}

// DefaultBounds is the 800x600 bounding box.
func DefaultBounds() Bounds {
	return Bounds{MaxWidth: DefaultMaxWidth, MaxHeight: DefaultMaxHeight}
}

// Dimensions of a chart, in pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ratios maps each recognized aspect ratio to its width/height factors.
var ratios = map[config.AspectRatio][2]float64{
	config.AspectRatioWide:     {16, 9},
	config.AspectRatioStandard: {4, 3},
	config.AspectRatioPhoto:    {3, 2},
}

// dimensions derives the chart size from the aspect ratio settings.
//
// Ratios start from the maximum width and fall back to scaling from the maximum height when the
// derived height overflows. A square fits the smallest side of the box. Custom sizes default to
// the box for a missing side and are uniformly downscaled to fit.
// An absent or unrecognized ratio behaves as 16:9.
func dimensions(cfg config.ChartConfig, bounds Bounds) Dimensions {
	maxWidth, maxHeight := bounds.MaxWidth, bounds.MaxHeight

	switch cfg.AspectRatio {
	case config.AspectRatioSquare:
		side := min(maxWidth, maxHeight)

		return Dimensions{Width: side, Height: side}

	case config.AspectRatioCustom:
		width, height := cfg.CustomWidth, cfg.CustomHeight
		if width <= 0 {
			width = maxWidth
		}
		if height <= 0 {
			height = maxHeight
		}

		if width > maxWidth || height > maxHeight {
			scale := math.Min(float64(maxWidth)/float64(width), float64(maxHeight)/float64(height))
			width = round(float64(width) * scale)
			height = round(float64(height) * scale)
		}

		return Dimensions{Width: width, Height: height}

	default:
		ratio, ok := ratios[cfg.AspectRatio]
		if !ok {
			ratio = ratios[config.AspectRatioWide]
		}

		return fitRatio(ratio[0], ratio[1], maxWidth, maxHeight)
	}
}

func fitRatio(w, h float64, maxWidth, maxHeight int) Dimensions {
	height := round(float64(maxWidth) * h / w)
	if height <= maxHeight {
		return Dimensions{Width: maxWidth, Height: height}
	}

	return Dimensions{Width: min(maxWidth, round(float64(maxHeight)*w/h)), Height: maxHeight}
}

func round(f float64) int {
	return int(math.Round(f))
}

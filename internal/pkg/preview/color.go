package preview

import (
	"strconv"
	"strings"

	"github.com/gogpu/gg"
)

// parseColor reads the CSS colors produced by the chart adapter: "#rrggbb" hex colors
// (with short and alpha variants) and rgb()/rgba() functions.
func parseColor(s string) (gg.RGBA, bool) {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "#") {
		c, err := gg.ParseHex(s)

		return c, err == nil
	}

	var args string
	switch {
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		args = s[len("rgba(") : len(s)-1]
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		args = s[len("rgb(") : len(s)-1]
	default:
		return gg.RGBA{}, false
	}

	parts := strings.Split(args, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return gg.RGBA{}, false
	}

	values := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return gg.RGBA{}, false
		}
		values = append(values, v)
	}

	alpha := 1.0
	if len(values) == 4 {
		alpha = clamp(values[3], 0, 1)
	}

	return gg.RGBA2(
		clamp(values[0], 0, 255)/255,
		clamp(values[1], 0, 255)/255,
		clamp(values[2], 0, 255)/255,
		alpha,
	), true
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}

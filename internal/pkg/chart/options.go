package chart

import "github.com/fredbi/chartcraft/internal/pkg/config"

// ThemeWhite is the default theme: go-echarts preset themes are accepted as well.
const ThemeWhite = config.ThemeWhite

// Option configures a [Chart].
type Option func(*options)

type options struct {
	Theme    string
	Subtitle string
	Toolbox  bool
}

// WithTheme sets the color theme.
//
// Trace colors always win over the theme palette.
func WithTheme(theme string) Option {
	return func(c *options) {
		if theme == "" {
			return
		}

		c.Theme = theme
	}
}

// WithSubtitle sets the chart subtitle.
func WithSubtitle(subtitle string) Option {
	return func(c *options) {
		c.Subtitle = subtitle
	}
}

// WithToolbox enables or disables the "save as image" toolbox.
func WithToolbox(enabled bool) Option {
	return func(c *options) {
		c.Toolbox = enabled
	}
}

func optionsWithDefaults(opts []Option) options {
	o := options{
		Theme:   ThemeWhite,
		Toolbox: true,
	}

	for _, apply := range opts {
		apply(&o)
	}

	return o
}

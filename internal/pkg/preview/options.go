package preview

// Option tunes the preview rendering.
type Option func(*options)

type options struct {
	Background string
	Margin     float64
}

const (
	defaultBackground = "#ffffff"
	defaultMargin     = 60
)

func optionsWithDefaults(opts []Option) options {
	o := options{
		Background: defaultBackground,
		Margin:     defaultMargin,
	}

	for _, apply := range opts {
		apply(&o)
	}

	return o
}

// WithBackground sets the background color, as a hex or rgb()/rgba() color.
//
// Defaults to white.
func WithBackground(color string) Option {
	return func(o *options) {
		if color == "" {
			return
		}

		o.Background = color
	}
}

// WithMargin sets the space in pixels between the image edges and the chart area,
// where a browser rendering would draw titles, legends and axis labels.
//
// Defaults to 60.
func WithMargin(margin float64) Option {
	return func(o *options) {
		if margin < 0 {
			return
		}

		o.Margin = margin
	}
}

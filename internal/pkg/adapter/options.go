package adapter

// Option configures an [Adapter].
type Option func(*options)

type options struct {
	bounds Bounds
}

// WithBounds sets the bounding box that chart dimensions never exceed.
//
// Non-positive bounds are ignored and the default 800x600 box applies.
func WithBounds(bounds Bounds) Option {
	return func(o *options) {
		if bounds.MaxWidth <= 0 || bounds.MaxHeight <= 0 {
			return
		}

		o.bounds = bounds
	}
}

func optionsWithDefaults(opts []Option) options {
	o := options{
		bounds: DefaultBounds(),
	}

	for _, apply := range opts {
		apply(&o)
	}

	return o
}

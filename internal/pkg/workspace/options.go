package workspace

import (
	"slices"

	"github.com/fredbi/chartcraft/internal/pkg/config"
	"github.com/fredbi/chartcraft/internal/pkg/editor"
	"github.com/fredbi/chartcraft/internal/pkg/model"
)

// Option configures the initial state of a [Workspace].
type Option func(*options)

type options struct {
	data   model.Table
	traces []model.Trace
	chart  config.ChartConfig
}

// WithData sets the initial table.
//
// By default, the workspace holds the default table of the editor.
func WithData(table model.Table) Option {
	return func(o *options) {
		o.data = table.Clone()
	}
}

// WithTraces sets the initial traces.
func WithTraces(traces ...model.Trace) Option {
	return func(o *options) {
		o.traces = slices.Clone(traces)
	}
}

// WithChartConfig sets the initial chart config.
func WithChartConfig(cfg config.ChartConfig) Option {
	return func(o *options) {
		o.chart = cfg.Clone()
	}
}

func optionsWithDefaults(opts []Option) options {
	o := options{
		data: editor.DefaultTable(),
	}

	for _, apply := range opts {
		apply(&o)
	}

	return o
}

// Package workspace holds the state of a charting session: the table, the traces plotted from it
// and the chart config.
//
// All reads return copies, and all changes go through the update methods of a [Workspace].
package workspace

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/fredbi/chartcraft/internal/pkg/adapter"
	"github.com/fredbi/chartcraft/internal/pkg/config"
	"github.com/fredbi/chartcraft/internal/pkg/model"
)

// ErrTraceNotFound is returned when referring to an unknown trace id.
var ErrTraceNotFound = errors.New("trace not found")

// Workspace owns the application state.
//
// A [Workspace] is safe for concurrent use.
type Workspace struct {
	mu     sync.RWMutex
	data   model.Table
	traces []model.Trace
	chart  config.ChartConfig
	l      *slog.Logger
}

// New [Workspace].
func New(opts ...Option) *Workspace {
	o := optionsWithDefaults(opts)

	return &Workspace{
		data:   o.data,
		traces: o.traces,
		chart:  o.chart,
		l:      slog.Default().With(slog.String("module", "workspace")),
	}
}

// Data returns a copy of the current table.
func (w *Workspace) Data() model.Table {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.data.Clone()
}

// SetData replaces the current table.
//
// Traces are kept as they are, even when they refer to columns that no longer exist.
func (w *Workspace) SetData(table model.Table) {
	clone := table.Clone()

	w.mu.Lock()
	defer w.mu.Unlock()

	w.data = clone
}

// Traces returns a copy of the traces, in plotting order.
func (w *Workspace) Traces() []model.Trace {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return slices.Clone(w.traces)
}

// AddTrace appends a new trace of the given kind with the default style.
//
// Both axes of the new trace refer to the first column of the table, if any.
func (w *Workspace) AddTrace(kind model.Kind) model.Trace {
	w.mu.Lock()
	defer w.mu.Unlock()

	var field string
	if len(w.data.Columns) > 0 {
		field = w.data.Columns[0].Field
	}

	trace := model.NewTrace(kind, field, field)
	w.traces = append(w.traces, trace)
	w.l.Info("trace added", slog.String("id", trace.ID), slog.String("kind", kind.String()))

	return trace
}

// AddTraces appends existing traces.
func (w *Workspace) AddTraces(traces ...model.Trace) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.traces = append(w.traces, traces...)
}

// UpdateTrace applies fn to the trace with the given id.
//
// The trace id cannot be changed by fn.
func (w *Workspace) UpdateTrace(id string, fn func(*model.Trace)) (model.Trace, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx := w.traceIndex(id)
	if idx < 0 {
		return model.Trace{}, fmt.Errorf("update trace %q: %w", id, ErrTraceNotFound)
	}

	trace := w.traces[idx]
	fn(&trace)
	trace.ID = id
	w.traces[idx] = trace

	return trace, nil
}

// RemoveTrace removes the trace with the given id.
func (w *Workspace) RemoveTrace(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx := w.traceIndex(id)
	if idx < 0 {
		return fmt.Errorf("remove trace %q: %w", id, ErrTraceNotFound)
	}

	w.traces = slices.Delete(w.traces, idx, idx+1)

	return nil
}

// ChartConfig returns a copy of the chart config.
func (w *Workspace) ChartConfig() config.ChartConfig {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.chart.Clone()
}

// UpdateChartConfig replaces the chart config as a whole.
func (w *Workspace) UpdateChartConfig(cfg config.ChartConfig) {
	clone := cfg.Clone()

	w.mu.Lock()
	defer w.mu.Unlock()

	w.chart = clone
}

// Render computes the chart of the current state, sized within the given bounds.
func (w *Workspace) Render(bounds adapter.Bounds) adapter.Rendering {
	w.mu.RLock()
	traces := slices.Clone(w.traces)
	chart := w.chart.Clone()
	data := w.data.Clone()
	w.mu.RUnlock()

	w.checkTraces(traces, data)

	return adapter.New(traces, chart, adapter.WithBounds(bounds)).Render(data.Rows)
}

// checkTraces warns about traces that will render as degraded series.
func (w *Workspace) checkTraces(traces []model.Trace, data model.Table) {
	if len(traces) == 0 {
		w.l.Warn("no trace defined: rendering an empty chart")

		return
	}

	for _, trace := range traces {
		for _, field := range []string{trace.XColumn, trace.YColumn} {
			if !data.HasColumn(field) {
				w.l.Warn("trace refers to a missing column",
					slog.String("trace", trace.ID),
					slog.String("column", field),
				)
			}
		}
	}
}

func (w *Workspace) traceIndex(id string) int {
	return slices.IndexFunc(w.traces, func(t model.Trace) bool {
		return t.ID == id
	})
}

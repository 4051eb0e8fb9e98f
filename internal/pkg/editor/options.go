package editor

import (
	"github.com/fredbi/chartcraft/internal/pkg/history"
	"github.com/fredbi/chartcraft/internal/pkg/model"
)

// Option configures an [Editor].
type Option func(*options)

type options struct {
	capacity int
	initial  *model.Table
	onChange func(model.Table)
}

// WithCapacity sets the number of table snapshots retained for undo/redo.
//
// The default is [history.DefaultCapacity]. A non-positive capacity makes [New] fail.
func WithCapacity(capacity int) Option {
	return func(o *options) {
		o.capacity = capacity
	}
}

// WithInitialTable sets the table the editor starts with.
//
// By default, the editor starts with two empty columns "x" and "y" and three empty rows.
func WithInitialTable(table model.Table) Option {
	return func(o *options) {
		clone := table.Clone()
		o.initial = &clone
	}
}

// WithOnChange registers a callback invoked with a copy of the table after every change,
// including undo and redo.
//
// Callbacks run one at a time, in the order of the changes. A callback must not call the editor.
func WithOnChange(fn func(model.Table)) Option {
	return func(o *options) {
		o.onChange = fn
	}
}

func optionsWithDefaults(opts []Option) options {
	o := options{
		capacity: history.DefaultCapacity,
	}

	for _, apply := range opts {
		apply(&o)
	}

	return o
}

// DefaultTable is the empty table the editor starts with when no initial table is given.
func DefaultTable() model.Table {
	const emptyRows = 3

	table := model.Table{
		Columns: []model.Column{
			model.NewColumn("x", "X"),
			model.NewColumn("y", "Y"),
		},
		Rows: make([]model.Row, 0, emptyRows),
	}

	for i := range emptyRows {
		table.Rows = append(table.Rows, model.Row{
			ID:    i + 1,
			Cells: map[string]model.Value{"x": "", "y": ""},
		})
	}

	return table
}

// Package editor implements an editable table with a bounded undo/redo history.
//
// Every successful mutation records exactly one snapshot of the table after the change.
// A failed mutation leaves both the table and its history untouched.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/fredbi/chartcraft/internal/pkg/history"
	"github.com/fredbi/chartcraft/internal/pkg/model"
)

var (
	// ErrRowNotFound is returned when a mutation refers to an unknown row id.
	ErrRowNotFound = errors.New("row not found")

	// ErrColumnNotFound is returned when a mutation refers to an unknown column field.
	ErrColumnNotFound = errors.New("column not found")

	// ErrMinimumReached is returned when removing the last remaining row or column.
	ErrMinimumReached = errors.New("at least one row and one column must remain")

	// ErrImportInFlight is returned when an import is requested while another one is still running.
	ErrImportInFlight = errors.New("an import is already in progress")
)

// ParseFunc produces a table to import, e.g. by parsing a file.
type ParseFunc func(context.Context) (model.Table, error)

// Editor owns an editable [model.Table] and its undo/redo history.
//
// An [Editor] is safe for concurrent use. Change notifications are delivered in mutation order,
// one at a time: the change callback must not call the editor.
type Editor struct {
	options

	mu        sync.Mutex
	notifyMu  sync.Mutex
	table     model.Table
	history   *history.History[model.Table]
	nextRowID int
	importing atomic.Bool
	l         *slog.Logger
}

// New [Editor], with the initial table recorded as the first history entry.
func New(opts ...Option) (*Editor, error) {
	o := optionsWithDefaults(opts)

	h, err := history.New[model.Table](o.capacity)
	if err != nil {
		return nil, fmt.Errorf("editor history: %w", err)
	}

	table := DefaultTable()
	if o.initial != nil {
		table = *o.initial
	}

	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("initial table: %w", err)
	}

	e := &Editor{
		options:   o,
		table:     table,
		history:   h,
		nextRowID: table.NextRowID(),
		l:         slog.Default().With(slog.String("module", "editor")),
	}
	e.history.Record(table.Clone())

	return e, nil
}

// Table returns a copy of the current table.
func (e *Editor) Table() model.Table {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.table.Clone()
}

// SetCell sets the value of a single cell.
func (e *Editor) SetCell(rowID int, field string, value model.Value) error {
	return e.mutate("set cell", func(t *model.Table) error {
		if !t.HasColumn(field) {
			return fmt.Errorf("%w: %q", ErrColumnNotFound, field)
		}

		idx := t.RowIndex(rowID)
		if idx < 0 {
			return fmt.Errorf("%w: %d", ErrRowNotFound, rowID)
		}

		t.Rows[idx].Cells[field] = value

		return nil
	})
}

// AddRow appends a row with an empty cell for every column and returns its id.
//
// Row ids are never reused, even after the row is removed.
func (e *Editor) AddRow() (int, error) {
	var id int

	err := e.mutate("add row", func(t *model.Table) error {
		id = e.nextRowID
		e.nextRowID++

		row := model.Row{
			ID:    id,
			Cells: make(map[string]model.Value, len(t.Columns)),
		}
		for _, col := range t.Columns {
			row.Cells[col.Field] = ""
		}
		t.Rows = append(t.Rows, row)

		return nil
	})

	return id, err
}

// RemoveRows removes the rows with the given ids.
//
// Without ids, the last row is removed, as long as more than one row remains.
func (e *Editor) RemoveRows(ids ...int) error {
	return e.mutate("remove rows", func(t *model.Table) error {
		if len(ids) == 0 {
			if len(t.Rows) <= 1 {
				return ErrMinimumReached
			}

			t.Rows = t.Rows[:len(t.Rows)-1]

			return nil
		}

		for _, id := range ids {
			if t.RowIndex(id) < 0 {
				return fmt.Errorf("%w: %d", ErrRowNotFound, id)
			}
		}

		t.Rows = slices.DeleteFunc(t.Rows, func(row model.Row) bool {
			return slices.Contains(ids, row.ID)
		})

		return nil
	})
}

// AddColumn appends a column named "col_<n>" and returns its field.
//
// Every row gets an empty cell for the new column.
func (e *Editor) AddColumn() (string, error) {
	var field string

	err := e.mutate("add column", func(t *model.Table) error {
		n := len(t.Columns) + 1
		for t.HasColumn("col_" + strconv.Itoa(n)) {
			n++
		}

		field = "col_" + strconv.Itoa(n)
		t.Columns = append(t.Columns, model.NewColumn(field, "Column "+strconv.Itoa(n)))
		for _, row := range t.Rows {
			row.Cells[field] = ""
		}

		return nil
	})

	return field, err
}

// DeleteLastColumn removes the last column and its cells, as long as more than one column remains.
func (e *Editor) DeleteLastColumn() error {
	return e.mutate("delete column", func(t *model.Table) error {
		if len(t.Columns) <= 1 {
			return ErrMinimumReached
		}

		last := t.Columns[len(t.Columns)-1].Field
		t.Columns = t.Columns[:len(t.Columns)-1]
		for _, row := range t.Rows {
			delete(row.Cells, last)
		}

		return nil
	})
}

// RenameColumn changes the field of a column. Cells are moved to the new field.
func (e *Editor) RenameColumn(field, newField string) error {
	return e.mutate("rename column", func(t *model.Table) error {
		if newField == "" {
			return errors.New("a column field cannot be empty")
		}

		idx := slices.IndexFunc(t.Columns, func(col model.Column) bool {
			return col.Field == field
		})
		if idx < 0 {
			return fmt.Errorf("%w: %q", ErrColumnNotFound, field)
		}

		if newField != field && t.HasColumn(newField) {
			return fmt.Errorf("%w: %q", model.ErrDuplicateField, newField)
		}

		col := t.Columns[idx]
		if col.HeaderName == col.Field {
			col.HeaderName = newField
		}
		col.Field = newField
		t.Columns[idx] = col

		for _, row := range t.Rows {
			v, ok := row.Cells[field]
			if !ok {
				continue
			}

			delete(row.Cells, field)
			row.Cells[newField] = v
		}

		return nil
	})
}

// Replace the whole table, e.g. with imported data.
func (e *Editor) Replace(table model.Table) error {
	if err := table.Validate(); err != nil {
		return err
	}

	return e.mutate("replace", func(t *model.Table) error {
		*t = table.Clone()
		e.nextRowID = max(e.nextRowID, t.NextRowID())

		return nil
	})
}

// Undo restores the previous snapshot, reporting false when there is nothing to undo.
func (e *Editor) Undo() bool {
	return e.travel("undo", e.history.Undo)
}

// Redo restores the next snapshot, reporting false when there is nothing to redo.
func (e *Editor) Redo() bool {
	return e.travel("redo", e.history.Redo)
}

// CanUndo reports whether [Editor.Undo] would change the table.
func (e *Editor) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.history.CanUndo()
}

// CanRedo reports whether [Editor.Redo] would change the table.
func (e *Editor) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.history.CanRedo()
}

// HistoryLen returns the number of retained snapshots.
func (e *Editor) HistoryLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.history.Len()
}

// Import runs parse and replaces the table with its result.
//
// Only one import may be in flight: a concurrent call fails immediately with [ErrImportInFlight].
// When parse fails or the context is done before the table is replaced, the table is left unchanged.
func (e *Editor) Import(ctx context.Context, parse ParseFunc) error {
	if !e.importing.CompareAndSwap(false, true) {
		return ErrImportInFlight
	}
	defer e.importing.Store(false)

	return e.runImport(ctx, parse)
}

// ImportAsync runs [Editor.Import] in the background.
//
// The returned channel receives the outcome of the import, then is closed.
// When another import is in flight, the channel receives [ErrImportInFlight] right away.
func (e *Editor) ImportAsync(ctx context.Context, parse ParseFunc) <-chan error {
	done := make(chan error, 1)

	if !e.importing.CompareAndSwap(false, true) {
		done <- ErrImportInFlight
		close(done)

		return done
	}

	go func() {
		defer close(done)
		defer e.importing.Store(false)

		done <- e.runImport(ctx, parse)
	}()

	return done
}

// IsImporting reports whether an import is in flight.
func (e *Editor) IsImporting() bool {
	return e.importing.Load()
}

func (e *Editor) runImport(ctx context.Context, parse ParseFunc) error {
	table, err := parse(ctx)
	if err != nil {
		e.l.Warn("import failed, table left unchanged", slog.String("error", err.Error()))

		return fmt.Errorf("import: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("import: %w", err)
	}

	if err := e.Replace(table); err != nil {
		return fmt.Errorf("import: %w", err)
	}

	return nil
}

// mutate applies fn to a copy of the table, then records the result.
func (e *Editor) mutate(op string, fn func(*model.Table) error) error {
	e.mu.Lock()

	next := e.table.Clone()
	if err := fn(&next); err != nil {
		e.mu.Unlock()

		return err
	}

	e.table = next
	evicted := e.history.Record(next.Clone())
	snapshot := next.Clone()

	// callbacks run in mutation order: take the notifier before releasing the table
	e.notifyMu.Lock()
	e.mu.Unlock()
	defer e.notifyMu.Unlock()

	e.l.Debug("history recorded",
		slog.String("operation", op),
		slog.Int("rows", len(snapshot.Rows)),
		slog.Int("columns", len(snapshot.Columns)),
		slog.Int("evicted", evicted),
	)
	e.notify(snapshot)

	return nil
}

func (e *Editor) travel(op string, step func() (model.Table, bool)) bool {
	e.mu.Lock()

	entry, ok := step()
	if !ok {
		e.mu.Unlock()

		return false
	}

	e.table = entry.Clone()
	e.nextRowID = max(e.nextRowID, e.table.NextRowID())
	snapshot := entry.Clone()

	e.notifyMu.Lock()
	e.mu.Unlock()
	defer e.notifyMu.Unlock()

	e.l.Debug("history applied", slog.String("operation", op))
	e.notify(snapshot)

	return true
}

func (e *Editor) notify(table model.Table) {
	if e.onChange != nil {
		e.onChange(table)
	}
}

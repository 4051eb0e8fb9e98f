package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrDuplicateField is returned when two columns would share the same field.
	ErrDuplicateField = errors.New("duplicate column field")

	// ErrDuplicateRowID is returned when two rows would share the same id.
	ErrDuplicateRowID = errors.New("duplicate row id")
)

// Value is a single cell value, kept as it was entered or parsed.
//
// Numeric interpretation is deferred to [Value.Float]: a value is numeric when it parses as a finite float.
type Value string

// Float returns the numeric interpretation of the cell.
//
// Empty, non-numeric and NaN values report false.
func (v Value) Float() (float64, bool) {
	s := strings.TrimSpace(string(v))
	if s == "" {
		return math.NaN(), false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return math.NaN(), false
	}

	return f, true
}

// IsEmpty reports whether the cell holds only blanks.
func (v Value) IsEmpty() bool {
	return strings.TrimSpace(string(v)) == ""
}

// String returns the value as a plain string.
func (v Value) String() string {
	return string(v)
}

// Column describes one data column.
//
// Field is the unique key of the column within a [Table]. HeaderName is for display only.
type Column struct {
	Field      string `json:"field"`
	HeaderName string `json:"header_name"`
	Editable   bool   `json:"editable"`
	Sortable   bool   `json:"sortable"`
	Filterable bool   `json:"filterable"`
}

// NewColumn builds an editable, sortable and filterable [Column].
func NewColumn(field, header string) Column {
	if header == "" {
		header = field
	}

	return Column{
		Field:      field,
		HeaderName: header,
		Editable:   true,
		Sortable:   true,
		Filterable: true,
	}
}

// Row maps column fields to cell values.
//
// The ID is assigned when the row is created and is never reassigned.
type Row struct {
	ID    int              `json:"id"`
	Cells map[string]Value `json:"cells"`
}

// Get the value of a cell, reporting whether the field is present in this row.
func (r Row) Get(field string) (Value, bool) {
	v, ok := r.Cells[field]

	return v, ok
}

// Clone returns a deep copy of the row.
func (r Row) Clone() Row {
	cells := make(map[string]Value, len(r.Cells))
	for k, v := range r.Cells {
		cells[k] = v
	}

	return Row{ID: r.ID, Cells: cells}
}

// Table holds rows and column descriptors.
type Table struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Clone returns a deep copy of the table, suitable as an immutable snapshot.
func (t Table) Clone() Table {
	clone := Table{
		Columns: make([]Column, len(t.Columns)),
		Rows:    make([]Row, 0, len(t.Rows)),
	}
	copy(clone.Columns, t.Columns)

	for _, row := range t.Rows {
		clone.Rows = append(clone.Rows, row.Clone())
	}

	return clone
}

// Column retrieves a column descriptor by its field.
func (t Table) Column(field string) (Column, bool) {
	for _, col := range t.Columns {
		if col.Field == field {
			return col, true
		}
	}

	return Column{}, false
}

// HasColumn reports whether a column with this field exists.
func (t Table) HasColumn(field string) bool {
	_, ok := t.Column(field)

	return ok
}

// Fields returns the column fields in display order.
func (t Table) Fields() []string {
	fields := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		fields = append(fields, col.Field)
	}

	return fields
}

// RowIndex returns the position of the row with the given id, or -1.
func (t Table) RowIndex(id int) int {
	for i, row := range t.Rows {
		if row.ID == id {
			return i
		}
	}

	return -1
}

// Row retrieves a row by its id.
func (t Table) Row(id int) (Row, bool) {
	idx := t.RowIndex(id)
	if idx < 0 {
		return Row{}, false
	}

	return t.Rows[idx], true
}

// NextRowID returns an id greater than any id in the table.
func (t Table) NextRowID() int {
	next := 1
	for _, row := range t.Rows {
		if row.ID >= next {
			next = row.ID + 1
		}
	}

	return next
}

// IsEmpty reports whether the table has neither rows nor columns.
func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0 && len(t.Columns) == 0
}

// Validate checks that column fields and row ids are unique.
func (t Table) Validate() error {
	fields := make(map[string]struct{}, len(t.Columns))
	for i, col := range t.Columns {
		if col.Field == "" {
			return fmt.Errorf("invalid table: empty field: columns[%d]", i)
		}
		if _, ok := fields[col.Field]; ok {
			return fmt.Errorf("invalid table: %w: %q", ErrDuplicateField, col.Field)
		}
		fields[col.Field] = struct{}{}
	}

	ids := make(map[int]struct{}, len(t.Rows))
	for _, row := range t.Rows {
		if _, ok := ids[row.ID]; ok {
			return fmt.Errorf("invalid table: %w: %d", ErrDuplicateRowID, row.ID)
		}
		ids[row.ID] = struct{}{}
	}

	return nil
}

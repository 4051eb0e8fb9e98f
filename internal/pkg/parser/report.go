package parser

import (
	"github.com/fredbi/chartcraft/internal/pkg/model"
)

// TableReport allows to inspect the contents of a parsed table.
type TableReport struct {
	NumberOfRows int            `json:"rows"`
	Columns      []ColumnReport `json:"columns"`
}

// ColumnReport summarizes the values found in a column.
type ColumnReport struct {
	Field   string  `json:"field"`
	Header  string  `json:"header"`
	Count   int     `json:"values_count"`
	Numeric int     `json:"numeric_count"`
	Min     float64 `json:"min_value,omitempty"`
	Max     float64 `json:"max_value,omitempty"`
}

// IsNumeric reports whether every non-empty value of the column is numeric.
func (c ColumnReport) IsNumeric() bool {
	return c.Count > 0 && c.Count == c.Numeric
}

// Report produces a [TableReport], which allows for closer inspection of the content
// of a parsed table.
func Report(table model.Table) TableReport {
	r := TableReport{
		NumberOfRows: len(table.Rows),
		Columns:      make([]ColumnReport, 0, len(table.Columns)),
	}

	for _, col := range table.Columns {
		c := ColumnReport{
			Field:  col.Field,
			Header: col.HeaderName,
		}

		for _, row := range table.Rows {
			v, ok := row.Get(col.Field)
			if !ok || v.IsEmpty() {
				continue
			}
			c.Count++

			f, isNumeric := v.Float()
			if !isNumeric {
				continue
			}

			if c.Numeric == 0 || f < c.Min {
				c.Min = f
			}
			if c.Numeric == 0 || f > c.Max {
				c.Max = f
			}
			c.Numeric++
		}

		r.Columns = append(r.Columns, c)
	}

	return r
}

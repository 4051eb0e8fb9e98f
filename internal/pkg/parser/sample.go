package parser

import (
	"math/rand/v2"
	"strconv"

	"github.com/fredbi/chartcraft/internal/pkg/model"
)

// SampleTitle is the display name of the generated sample table.
const SampleTitle = "Sample Data"

// Sample generates a table of random integers in [0, 100).
//
// Columns are named col1..colN, with headers "Column 1".."Column N".
func Sample(opts ...SampleOption) model.Table {
	const maxValue = 100

	o := sampleOptionsWithDefaults(opts)
	seed := o.seed
	if seed == 0 {
		seed = rand.Uint64() //nolint:gosec // sample data, not a secret
	}
	rnd := rand.New(rand.NewPCG(seed, seed)) //nolint:gosec // sample data, not a secret

	table := model.Table{
		Columns: make([]model.Column, 0, o.columns),
		Rows:    make([]model.Row, 0, o.rows),
	}

	for i := range o.columns {
		n := strconv.Itoa(i + 1)
		table.Columns = append(table.Columns, model.NewColumn("col"+n, "Column "+n))
	}

	for i := range o.rows {
		row := model.Row{
			ID:    i + 1,
			Cells: make(map[string]model.Value, o.columns),
		}

		for _, col := range table.Columns {
			row.Cells[col.Field] = model.Value(strconv.Itoa(rnd.IntN(maxValue)))
		}

		table.Rows = append(table.Rows, row)
	}

	return table
}

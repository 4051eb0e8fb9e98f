package parser //nolint:revive // it's okay for an internal package to use this name

// Format is the encoding of tabular input.
type Format string

// Supported input formats.
const (
	FormatAuto Format = "auto"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Option configures a [TableParser].
type Option func(*options)

type options struct {
	format Format
	sheet  string
	comma  rune
}

// WithFormat forces the input format. By default, the format is inferred.
func WithFormat(format Format) Option {
	return func(o *options) {
		if format == "" {
			format = FormatAuto
		}

		o.format = format
	}
}

// WithSheet selects the spreadsheet sheet to read. By default, the first sheet is used.
func WithSheet(sheet string) Option {
	return func(o *options) {
		o.sheet = sheet
	}
}

// WithComma sets the CSV field delimiter. The default is ','.
func WithComma(comma rune) Option {
	return func(o *options) {
		if comma == 0 {
			return
		}

		o.comma = comma
	}
}

func optionsWithDefaults(opts []Option) options {
	o := options{
		format: FormatAuto,
		comma:  ',',
	}

	for _, apply := range opts {
		apply(&o)
	}

	return o
}

// SampleOption configures the [Sample] table generator.
type SampleOption func(*sampleOptions)

type sampleOptions struct {
	rows    int
	columns int
	seed    uint64
}

// WithSampleRows sets the number of generated rows (default: 10).
func WithSampleRows(rows int) SampleOption {
	return func(o *sampleOptions) {
		if rows > 0 {
			o.rows = rows
		}
	}
}

// WithSampleColumns sets the number of generated columns (default: 3).
func WithSampleColumns(columns int) SampleOption {
	return func(o *sampleOptions) {
		if columns > 0 {
			o.columns = columns
		}
	}
}

// WithSampleSeed makes the generated values deterministic. A zero seed picks a random one.
func WithSampleSeed(seed uint64) SampleOption {
	return func(o *sampleOptions) {
		o.seed = seed
	}
}

func sampleOptionsWithDefaults(opts []SampleOption) sampleOptions {
	const (
		defaultRows    = 10
		defaultColumns = 3
	)

	o := sampleOptions{
		rows:    defaultRows,
		columns: defaultColumns,
	}

	for _, apply := range opts {
		apply(&o)
	}

	return o
}

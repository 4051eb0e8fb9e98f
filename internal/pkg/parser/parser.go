package parser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fredbi/chartcraft/internal/pkg/config"
	"github.com/fredbi/chartcraft/internal/pkg/model"
	"github.com/xuri/excelize/v2"
)

// ErrNoRows is returned when the input holds no data row after the header.
var ErrNoRows = errors.New("no data rows found")

// zip local file header, which starts any xlsx document
var xlsxMagic = []byte("PK\x03\x04")

// TableParser reads CSV or XLSX input into a [model.Table].
//
// The first record is the header: it defines the column fields. Rows are assigned ids 1..n
// in input order.
type TableParser struct {
	options

	l *slog.Logger
}

// New [TableParser] ready to parse tabular files.
func New(opts ...Option) *TableParser {
	return &TableParser{
		options: optionsWithDefaults(opts),
		l:       slog.Default().With(slog.String("module", "parser")),
	}
}

// ParseFile parses a file. The name "-" stands for the standard input.
//
// When the format is not forced, it is inferred from the file extension.
func (p *TableParser) ParseFile(file string) (model.Table, error) {
	var (
		reader io.ReadCloser
		err    error
	)

	if file == "-" {
		reader = io.NopCloser(os.Stdin)
	} else {
		reader, err = os.Open(file)
		if err != nil {
			return model.Table{}, fmt.Errorf("input file %q: %w", file, err)
		}
	}
	defer func() {
		_ = reader.Close()
	}()

	format := p.format
	if format == FormatAuto && file != "-" {
		format = formatFromExtension(file)
	}

	table, err := p.parse(reader, format)
	if err != nil {
		return model.Table{}, fmt.Errorf("input file %q: %w", file, err)
	}

	p.l.Info("table input parsed",
		slog.String("file", file),
		slog.Int("columns", len(table.Columns)),
		slog.Int("rows", len(table.Rows)),
	)

	return table, nil
}

// ParseInput parses a table from a reader.
func (p *TableParser) ParseInput(r io.Reader) (model.Table, error) {
	return p.parse(r, p.format)
}

func (p *TableParser) parse(r io.Reader, format Format) (model.Table, error) {
	if format == FormatAuto {
		buffered := bufio.NewReader(r)
		magic, _ := buffered.Peek(len(xlsxMagic))
		if bytes.Equal(magic, xlsxMagic) {
			format = FormatXLSX
		} else {
			format = FormatCSV
		}
		r = buffered
	}

	switch format {
	case FormatXLSX:
		return p.parseXLSX(r)
	case FormatCSV:
		return p.parseCSV(r)
	default:
		return model.Table{}, fmt.Errorf("unsupported input format: %q", format)
	}
}

func (p *TableParser) parseCSV(r io.Reader) (model.Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = p.comma
	reader.FieldsPerRecord = -1 // ragged records are padded or truncated to the header

	records, err := reader.ReadAll()
	if err != nil {
		return model.Table{}, fmt.Errorf("parsing CSV: %w", err)
	}

	return buildTable(records)
}

func (p *TableParser) parseXLSX(r io.Reader) (model.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return model.Table{}, fmt.Errorf("opening spreadsheet: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheet := p.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return model.Table{}, ErrNoRows
		}

		sheet = sheets[0]
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return model.Table{}, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	p.l.Debug("spreadsheet sheet read", slog.String("sheet", sheet), slog.Int("records", len(records)))

	return buildTable(records)
}

// buildTable turns raw records into a table, the first record being the header.
func buildTable(records [][]string) (model.Table, error) {
	if len(records) == 0 {
		return model.Table{}, ErrNoRows
	}

	fields := headerFields(records[0])
	table := model.Table{
		Columns: make([]model.Column, 0, len(fields)),
		Rows:    make([]model.Row, 0, len(records)-1),
	}

	for _, field := range fields {
		table.Columns = append(table.Columns, model.NewColumn(field, config.Titleize(field)))
	}

	for _, record := range records[1:] {
		if isBlank(record) {
			continue
		}

		row := model.Row{
			ID:    len(table.Rows) + 1,
			Cells: make(map[string]model.Value, len(fields)),
		}

		for i, field := range fields {
			var cell string
			if i < len(record) {
				cell = record[i]
			}

			row.Cells[field] = model.Value(cell)
		}

		table.Rows = append(table.Rows, row)
	}

	if len(table.Rows) == 0 {
		return model.Table{}, ErrNoRows
	}

	return table, nil
}

// headerFields derives unique, non-empty column fields from a header record.
func headerFields(header []string) []string {
	fields := make([]string, 0, len(header))
	seen := make(map[string]struct{}, len(header))

	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff") // byte order mark
		}
		field := strings.TrimSpace(name)
		if field == "" {
			field = "column_" + strconv.Itoa(i+1)
		}

		candidate := field
		for k := 2; ; k++ {
			if _, taken := seen[candidate]; !taken {
				break
			}

			candidate = field + "_" + strconv.Itoa(k)
		}

		seen[candidate] = struct{}{}
		fields = append(fields, candidate)
	}

	return fields
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

func formatFromExtension(file string) Format {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return FormatXLSX
	case ".csv", ".txt", ".tsv":
		return FormatCSV
	default:
		return FormatAuto
	}
}

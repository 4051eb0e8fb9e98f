// Package cmd owns the implementation details of the CLI command.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/fredbi/chartcraft/internal/pkg/adapter"
	"github.com/fredbi/chartcraft/internal/pkg/chart"
	"github.com/fredbi/chartcraft/internal/pkg/config"
	"github.com/fredbi/chartcraft/internal/pkg/editor"
	"github.com/fredbi/chartcraft/internal/pkg/image"
	"github.com/fredbi/chartcraft/internal/pkg/model"
	"github.com/fredbi/chartcraft/internal/pkg/parser"
	"github.com/fredbi/chartcraft/internal/pkg/preview"
	"github.com/fredbi/chartcraft/internal/pkg/workspace"
)

const stdio = "-"

// Command holds command line flags and executes the chartcraft command.
//
// It knows how to load a configuration file in a [config.Config] and manage CLI flag configuration overrides.
//
// The main purpose of this package is to deal with io's: opening and closing files.
//
// All other invoked functionalities deal with streams or in-memory tables.
type Command struct {
	Config     string
	OutputFile string
	Sheet      string
	Sample     bool
	Report     bool
	Png        bool
	Preview    bool
	L          *slog.Logger
}

// Report is the JSON document produced by the -report flag.
type Report struct {
	Table     parser.TableReport `json:"table"`
	Rendering adapter.Rendering  `json:"rendering"`
}

// NewCommand builds a CLI command with registered flags and an injected logger.
func NewCommand() *Command {
	// inject a structured logger
	cli := &Command{
		L: slog.Default().With(slog.String("module", "main")),
	}

	cli.registerFlags()

	return cli
}

// Parse command line flags and arguments.
func (*Command) Parse() error {
	return flag.CommandLine.Parse(os.Args[1:])
}

// Fatalf logs an error message then exits. The output is spewed on both stderr and the structured logger output.
func (c *Command) Fatalf(err error) {
	c.L.Error(err.Error())
	log.Fatalf("%v", err)
}

// Execute the CLI with flags and extra arguments.
//
// If no argument is passed, command line arguments (i.e. [os.Args]) are used.
func (c *Command) Execute(args ...string) error {
	return c.ExecuteContext(context.Background(), args...)
}

// ExecuteContext is like [Command.Execute], with a context that cancels the import and the screenshot.
func (c *Command) ExecuteContext(ctx context.Context, args ...string) error {
	if args == nil { // passing explicit args allows for testing Execute without altering [os.Args]
		args = c.args()
	}
	if len(args) > 1 {
		return fmt.Errorf("expected at most one input file, got %d", len(args))
	}
	if len(args) == 0 && !c.Sample { // no file is provided: assume stdin
		args = append(args, stdio)
	}

	cfg, cleanup, err := c.prepareConfig()
	if err != nil {
		return err
	}
	defer cleanup()

	// 1. load the table, then compute the chart from the table and the configured traces
	ws, err := c.loadWorkspace(ctx, cfg, args)
	if err != nil {
		return err
	}

	rendering := ws.Render(adapter.Bounds{
		MaxWidth:  cfg.Render.MaxWidth,
		MaxHeight: cfg.Render.MaxHeight,
	})

	if c.Report {
		// just want to report about the content of the table and the computed chart
		return c.report(ws.Data(), rendering)
	}

	// 2. render the page as HTML, possibly to stdout, possibly to temp file
	page := chart.New(cfg).BuildPage("", rendering)

	htmlWriter, htmlCloser, err := getWriter(cfg.Outputs.HTMLFile, "HTML")
	if err != nil {
		return err
	}

	if err := page.Render(htmlWriter); err != nil {
		htmlCloser()
		return fmt.Errorf("rendering page: %w", err)
	}

	htmlCloser()

	// 3. draw the native preview
	if cfg.Outputs.PreviewFile != "" {
		if err := renderPreview(cfg.Outputs.PreviewFile, rendering); err != nil {
			return err
		}
	}

	if cfg.Outputs.PngFile == "" {
		// html only: we're done
		return nil
	}

	// 4. convert the HTML page to a PNG image, possibly to stdout
	return renderImage(ctx, cfg)
}

func (*Command) args() []string {
	return flag.CommandLine.Args()
}

func (c *Command) registerFlags() {
	defaults := Command{
		Config:     config.DefaultFile,
		OutputFile: stdio,
		Png:        false,
		Preview:    false,
		Sample:     false,
		Report:     false,
	}

	flag.StringVar(&c.Config, "config", defaults.Config, "project config file")
	flag.StringVar(&c.Config, "c", defaults.Config, "project config file (shorthand)")
	flag.StringVar(&c.OutputFile, "output", defaults.OutputFile, "HTML file output or - for standard output")
	flag.StringVar(&c.OutputFile, "o", defaults.OutputFile, "HTML file output or - for standard output (shorthand)")
	flag.StringVar(&c.Sheet, "sheet", defaults.Sheet, "spreadsheet sheet to read (default: the first sheet)")
	flag.BoolVar(&c.Sample, "sample", defaults.Sample, "chart a generated sample table instead of an input file")
	flag.BoolVar(&c.Report, "r", defaults.Report, "report table contents and chart computations only, no rendering (shorthand)")
	flag.BoolVar(&c.Report, "report", defaults.Report, "report table contents and chart computations only")
	flag.BoolVar(&c.Png, "png", defaults.Png, "enable PNG screenshot output")
	flag.BoolVar(&c.Preview, "preview", defaults.Preview, "enable native PNG preview output, without a browser")
}

func (c *Command) prepareConfig() (cfg *config.Config, cleanup func(), err error) {
	cfg, err = c.loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	if err = c.setConfig(cfg); err != nil {
		return nil, nil, fmt.Errorf("preparing config: %w", err)
	}

	if cfg.Outputs.IsTemp && !c.Report {
		cleanup = func() {
			_ = os.Remove(cfg.Outputs.HTMLFile)
		}

		return cfg, cleanup, err
	}

	return cfg, func() {}, err
}

// loadConfig loads the project file. A missing default project file falls back to the embedded defaults.
func (c *Command) loadConfig() (*config.Config, error) {
	file := c.Config
	if file == "" {
		file = config.DefaultFile
	}

	if file == config.DefaultFile {
		if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
			c.L.Info("no project file found, using defaults", slog.String("file", file))

			return config.LoadDefaults()
		}
	}

	return config.Load(file)
}

// apply CLI flags overrides to YAML config.
func (c *Command) setConfig(cfg *config.Config) error {
	if c.Sheet != "" {
		cfg.Input.Sheet = c.Sheet
	}

	if c.OutputFile != "" && c.OutputFile != stdio {
		// an outfile is defined: infer the PNG files from the HTML file provided
		cfg.Outputs.HTMLFile = inferHTMLFile(c.OutputFile)
		if cfg.Outputs.PngFile == "" && c.Png {
			cfg.Outputs.PngFile = inferImageFile(cfg.Outputs.HTMLFile)
		}
		if cfg.Outputs.PreviewFile == "" && c.Preview {
			cfg.Outputs.PreviewFile = inferPreviewFile(cfg.Outputs.HTMLFile)
		}
	}

	if c.Report {
		return nil
	}

	switch {
	case cfg.Outputs.HTMLFile == "" && cfg.Outputs.PngFile == "":
		c.L.Info("output sent to standard output as HTML, no PNG image rendered")
		if c.Png || c.Preview {
			c.L.Info("set an output file to render a PNG image")
		}
		cfg.Outputs.HTMLFile = stdio
	case cfg.Outputs.HTMLFile == "" && cfg.Outputs.PngFile != "":
		c.L.Info("HTML generated as a temporary file to produce PNG")
		tmp, err := os.CreateTemp("", "chartcraft.*.html")
		if err != nil {
			return err
		}
		cfg.Outputs.HTMLFile = tmp.Name()
		cfg.Outputs.IsTemp = true
		_ = tmp.Close()
	}

	return nil
}

// loadWorkspace imports the input table through the editor, which feeds the workspace.
func (c *Command) loadWorkspace(ctx context.Context, cfg *config.Config, args []string) (*workspace.Workspace, error) {
	ws := workspace.New(
		workspace.WithTraces(cfg.ModelTraces()...),
		workspace.WithChartConfig(cfg.Chart),
	)

	ed, err := editor.New(
		editor.WithCapacity(cfg.History.Capacity),
		editor.WithOnChange(ws.SetData),
	)
	if err != nil {
		return nil, fmt.Errorf("creating table editor: %w", err)
	}

	t0 := time.Now()
	if err := ed.Import(ctx, c.parseFunc(cfg, args)); err != nil {
		return nil, fmt.Errorf("loading table: %w", err)
	}
	c.L.Info("loaded input table", slog.Duration("duration", time.Since(t0)))

	if len(ws.Traces()) == 0 {
		c.addDefaultTrace(ws)
	}

	return ws, nil
}

func (c *Command) parseFunc(cfg *config.Config, args []string) editor.ParseFunc {
	if c.Sample {
		return func(context.Context) (model.Table, error) {
			return parser.Sample(
				parser.WithSampleRows(cfg.Input.Sample.Rows),
				parser.WithSampleColumns(cfg.Input.Sample.Columns),
				parser.WithSampleSeed(cfg.Input.Sample.Seed),
			), nil
		}
	}

	p := parser.New(
		parser.WithSheet(cfg.Input.Sheet),
		parser.WithComma(cfg.Input.CommaRune()),
	)

	return func(context.Context) (model.Table, error) {
		return p.ParseFile(args[0])
	}
}

// addDefaultTrace plots the second column against the first one, when no trace is configured.
func (c *Command) addDefaultTrace(ws *workspace.Workspace) {
	fields := ws.Data().Fields()
	if len(fields) < 2 {
		c.L.Info("no trace configured and not enough columns for a default trace")

		return
	}

	trace := ws.AddTrace(model.KindLine)
	if _, err := ws.UpdateTrace(trace.ID, func(t *model.Trace) {
		t.YColumn = fields[1]
	}); err != nil {
		c.L.Warn("could not set default trace", slog.String("error", err.Error()))
	}
}

// report produces a JSON report that explores the input table and the computed chart.
func (c *Command) report(table model.Table, rendering adapter.Rendering) error {
	w, closer, err := getWriter(c.OutputFile, "report")
	if err != nil {
		return err
	}
	defer closer()

	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")

	return enc.Encode(Report{
		Table:     parser.Report(table),
		Rendering: rendering,
	})
}

func renderImage(ctx context.Context, cfg *config.Config) error {
	htmlReader, htmlCloser, err := getReader(cfg.Outputs.HTMLFile, "HTML")
	if err != nil {
		return err
	}
	defer htmlCloser()

	pngWriter, pngCloser, err := getWriter(cfg.Outputs.PngFile, "PNG")
	if err != nil {
		return err
	}
	defer pngCloser()

	r := image.New(
		image.WithSleep(cfg.Render.Screenshot.SleepDuration()),
		image.WithSelector(image.ChartSelector),
	)

	if err = r.Render(ctx, pngWriter, htmlReader); err != nil {
		return fmt.Errorf("rendering image: %w", err)
	}

	return nil
}

func renderPreview(file string, rendering adapter.Rendering) error {
	w, closer, err := getWriter(file, "preview")
	if err != nil {
		return err
	}
	defer closer()

	if err := preview.New().Render(w, rendering); err != nil {
		return fmt.Errorf("rendering preview: %w", err)
	}

	return nil
}

func getReader(file, kind string) (rdr io.Reader, cleanup func(), err error) {
	if file == stdio {
		return os.Stdin, func() {}, nil
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s file: %q: %w", kind, file, err)
	}

	cleanup = func() {
		_ = f.Close()
	}

	return f, cleanup, nil
}

func getWriter(file, kind string) (wrt io.Writer, cleanup func(), err error) {
	if file == "" || file == stdio {
		return os.Stdout, func() {}, nil
	}

	f, err := os.Create(file)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s file for writing: %q: %w", kind, file, err)
	}

	cleanup = func() {
		_ = f.Close()
	}

	return f, cleanup, nil
}

func inferHTMLFile(base string) string {
	return trimExt(base) + ".html"
}

func inferImageFile(base string) string {
	return trimExt(base) + ".png"
}

func inferPreviewFile(base string) string {
	return trimExt(base) + ".preview.png"
}

func trimExt(base string) string {
	ext := path.Ext(base)
	trimmed, _ := strings.CutSuffix(base, ext)

	return trimmed
}

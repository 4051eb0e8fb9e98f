package config

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fredbi/chartcraft/internal/pkg/model"
	"github.com/go-viper/mapstructure/v2"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed default_config.yaml
var efs embed.FS

// DefaultFile is the project file looked up when none is specified.
const DefaultFile = "chartcraft.yaml"

// Config holds the configuration for chartcraft.
type Config struct {
	Name    string
	Chart   ChartConfig
	Traces  []TraceDef
	Render  Rendering
	Input   Input
	History History
	Outputs Output `mapstructure:"-"`

	traceIndex map[string]int
}

// GetTrace retrieves a trace definition by its ID.
func (c Config) GetTrace(id string) (TraceDef, bool) {
	idx, ok := c.traceIndex[id]
	if !ok {
		return TraceDef{}, false
	}

	return c.Traces[idx], true
}

// ModelTraces returns the configured traces as [model.Trace] values, in declaration order.
func (c Config) ModelTraces() []model.Trace {
	traces := make([]model.Trace, 0, len(c.Traces))
	for _, def := range c.Traces {
		traces = append(traces, def.Trace())
	}

	return traces
}

// EncodeYAML serializes a [Config] to YAML into the provided writer.
//
// Runtime-only fields (Outputs) are excluded from the output.
func (c *Config) EncodeYAML(w io.Writer) error {
	var raw map[string]any

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Squash: true,
		Deep:   true,
		Result: &raw,
	})
	if err != nil {
		return fmt.Errorf("creating mapstructure decoder: %w", err)
	}

	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("decoding config to map: %w", err)
	}

	return yaml.NewEncoder(w).Encode(raw)
}

// TraceDef declares a trace in the project file.
type TraceDef struct {
	ID    string
	Title string
	Kind  model.Kind
	X     string
	Y     string
	Style model.TraceStyle
}

// Trace converts the definition into a [model.Trace].
func (d TraceDef) Trace() model.Trace {
	return model.Trace{
		ID:      d.ID,
		Kind:    d.Kind,
		XColumn: d.X,
		YColumn: d.Y,
		Title:   d.Title,
		Style:   d.Style.WithDefaults(),
	}
}

// Rendering holds chart rendering settings (theme, page layout, bounding box, screenshot).
type Rendering struct {
	Theme      string
	Layout     PageLayout
	MaxWidth   int
	MaxHeight  int
	Screenshot Screenshot
}

// Screenshot configures the headless Chrome screenshot used for PNG rendering.
type Screenshot struct {
	Sleep string
}

// SleepDuration parses the Sleep field as a [time.Duration].
func (s Screenshot) SleepDuration() time.Duration {
	d, err := time.ParseDuration(s.Sleep)
	if d == 0 || err != nil {
		return 0
	}

	return d
}

// Input holds settings for reading tabular data.
type Input struct {
	Sheet  string
	Comma  string
	Sample Sample
}

// CommaRune returns the CSV field delimiter, defaulting to ','.
func (i Input) CommaRune() rune {
	if i.Comma == "" {
		return ','
	}

	r, _ := utf8.DecodeRuneInString(i.Comma)

	return r
}

// Sample configures the generated sample table.
type Sample struct {
	Rows    int
	Columns int
	Seed    uint64
}

// History configures the undo/redo log of the table editor.
type History struct {
	Capacity int
}

// Output holds the resolved output file paths for HTML and PNG rendering.
type Output struct {
	HTMLFile    string
	PngFile     string
	PreviewFile string
	IsTemp      bool
}

// Load a configuration file from the local file system.
func Load(file string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, fmt.Errorf("loading default config: %w", err)
	}

	fsys := os.DirFS(filepath.Dir(file))
	pth := filepath.Join(".", filepath.Base(file))

	return load(fsys, pth, cfg)
}

// LoadDefaults loads the default configuration from the embedded default_config.yaml.
func LoadDefaults() (*Config, error) {
	return loadDefaults()
}

func loadDefaults() (*Config, error) {
	return load(efs, "default_config.yaml", &Config{})
}

func load(fsys fs.FS, file string, cfg *Config) (*Config, error) {
	content, err := fs.ReadFile(fsys, file)
	if err != nil {
		return nil, err
	}

	var raw any
	err = yaml.Unmarshal(content, &raw)
	if err != nil {
		return nil, err
	}

	err = mapstructure.Decode(raw, cfg)
	if err != nil {
		return nil, err
	}

	if err = cfg.validateChart(); err != nil {
		return nil, err
	}

	if err = cfg.validateTraces(); err != nil {
		return nil, err
	}

	if err = cfg.validateRender(); err != nil {
		return nil, err
	}

	if err = cfg.validateInput(); err != nil {
		return nil, err
	}

	if err = cfg.validateHistory(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validateChart() error {
	return c.Chart.Validate()
}

func (c *Config) validateTraces() error {
	c.traceIndex = make(map[string]int, len(c.Traces))

	for i, v := range c.Traces {
		if v.ID == "" {
			v.ID = model.NewTraceID()
		}
		if _, ok := c.traceIndex[v.ID]; ok {
			return fmt.Errorf("invalid traces: duplicate ID key found: %s", v.ID)
		}
		if v.Kind == "" {
			v.Kind = model.KindLine
		}
		if !v.Kind.IsValid() {
			return fmt.Errorf("invalid traces: invalid kind: traces[%d]=%v (should be one of %v)", i, v.Kind, model.AllKinds())
		}
		if v.X == "" || v.Y == "" {
			return fmt.Errorf("invalid traces: x and y columns are required: traces[%d]", i)
		}
		if v.Title == "" {
			v.Title = titleize(v.X) + " vs " + titleize(v.Y)
		}
		if v.Style.LineStyle != "" && !v.Style.LineStyle.IsValid() {
			return fmt.Errorf("invalid traces: invalid line style: traces.%s.style.lineStyle=%v", v.ID, v.Style.LineStyle)
		}
		if v.Style.MarkerStyle != "" && !v.Style.MarkerStyle.IsValid() {
			return fmt.Errorf("invalid traces: invalid marker style: traces.%s.style.markerStyle=%v", v.ID, v.Style.MarkerStyle)
		}
		v.Style = v.Style.WithDefaults()

		c.traceIndex[v.ID] = i
		c.Traces[i] = v
	}

	return nil
}

func (c *Config) validateRender() error {
	if !IsValidTheme(c.Render.Theme) {
		return fmt.Errorf("invalid render: unknown theme: %q", c.Render.Theme)
	}

	if !c.Render.Layout.IsValid() {
		return fmt.Errorf("invalid render: layout=%q (should be flex, center or none)", c.Render.Layout)
	}

	if c.Render.MaxWidth <= 0 || c.Render.MaxHeight <= 0 {
		return fmt.Errorf("invalid render: maxWidth and maxHeight must be positive: %dx%d", c.Render.MaxWidth, c.Render.MaxHeight)
	}

	if c.Render.Screenshot.Sleep != "" {
		if _, err := time.ParseDuration(c.Render.Screenshot.Sleep); err != nil {
			return fmt.Errorf("invalid render: screenshot.sleep: %w", err)
		}
	}

	return nil
}

func (c *Config) validateInput() error {
	if utf8.RuneCountInString(c.Input.Comma) > 1 {
		return fmt.Errorf("invalid input: comma must be a single character: %q", c.Input.Comma)
	}

	if c.Input.Comma == "\n" || c.Input.Comma == "\r" || c.Input.Comma == `"` {
		return fmt.Errorf("invalid input: unsupported comma: %q", c.Input.Comma)
	}

	if c.Input.Sample.Rows < 0 || c.Input.Sample.Columns < 0 {
		return errors.New("invalid input: sample dimensions must not be negative")
	}

	return nil
}

func (c *Config) validateHistory() error {
	if c.History.Capacity <= 0 {
		return fmt.Errorf("invalid history: capacity must be positive: %d", c.History.Capacity)
	}

	return nil
}

type str interface {
	~string
}

// Titleize turns a field name into a display title, e.g. "unit_price" into "Unit Price".
func Titleize(in string) string {
	return titleize(in)
}

func titleize[T str](in T) string {
	caser := cases.Title(language.English, cases.NoLower) // the case is stateful: cannot declare it globally

	return caser.String(strings.Map(func(r rune) rune {
		switch r {
		case '_', '-':
			return ' '
		default:
			return r
		}
	}, string(in),
	))
}

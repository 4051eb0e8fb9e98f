package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/fredbi/chartcraft/internal/pkg/model"
	"github.com/go-viper/mapstructure/v2"
	"go.yaml.in/yaml/v3"

	"github.com/go-openapi/testify/v2/assert"
	"github.com/go-openapi/testify/v2/require"
)

func TestLoadDefault(t *testing.T) {
	cfg, err := loadDefaults()
	require.NoError(t, err)

	require.NoError(t, dumpConfig(os.Stdout, cfg))
}

func TestLoadDefaultContent(t *testing.T) {
	cfg, err := LoadDefaults()
	require.NoError(t, err)

	assert.Equal(t, "Chartcraft", cfg.Name)
	assert.Equal(t, "white", cfg.Render.Theme)
	assert.Equal(t, PageLayoutFlex, cfg.Render.Layout)
	assert.Equal(t, 800, cfg.Render.MaxWidth)
	assert.Equal(t, 600, cfg.Render.MaxHeight)
	assert.Equal(t, time.Second, cfg.Render.Screenshot.SleepDuration())
	assert.Equal(t, 5, cfg.History.Capacity)
	assert.Equal(t, 10, cfg.Input.Sample.Rows)
	assert.Equal(t, 3, cfg.Input.Sample.Columns)
	assert.Equal(t, ',', cfg.Input.CommaRune())
	assert.Empty(t, cfg.Traces)
	assert.Equal(t, ChartConfig{}, cfg.Chart)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(minimalValidYAML()), 0o600))

	cfg, err := Load(file)
	require.NoError(t, err)

	t.Log(spew.Sdump(cfg.Chart))

	t.Run("user settings override defaults", func(t *testing.T) {
		assert.Equal(t, "Sales", cfg.Name)
		assert.Equal(t, 1024, cfg.Render.MaxWidth)
		assert.Equal(t, 600, cfg.Render.MaxHeight, "unset keys keep their default")
		assert.Equal(t, 5, cfg.History.Capacity)
	})

	t.Run("chart config is decoded", func(t *testing.T) {
		chart := cfg.Chart
		assert.Equal(t, AspectRatioStandard, chart.AspectRatio)
		assert.Equal(t, "Monthly sales", chart.Title)
		assert.Equal(t, FontStyleBoldItalic, chart.TitleFontStyle)
		assert.Equal(t, PositionRight, chart.YAxisPosition)
		assert.Equal(t, 5, chart.XTicksCount)
		assert.InDelta(t, 0.5, chart.YTicksStep, 1e-9)

		require.NotNil(t, chart.ShowLegend)
		assert.False(t, *chart.ShowLegend)
		assert.Nil(t, chart.ShowXTicks)

		require.NotNil(t, chart.Border.Display)
		assert.True(t, *chart.Border.Display)
		assert.Equal(t, BorderStyleDashed, chart.Border.Style)
		assert.Equal(t, []float64{4, 2}, chart.Border.Dash)
		assert.InDelta(t, 1.5, chart.Border.Width, 1e-9)
	})

	t.Run("traces are decoded and indexed", func(t *testing.T) {
		require.Len(t, cfg.Traces, 2)

		revenue, ok := cfg.GetTrace("revenue")
		require.True(t, ok)
		assert.Equal(t, model.KindBar, revenue.Kind)
		assert.Equal(t, "Month vs Revenue", revenue.Title)
		assert.Equal(t, "#ff0000", revenue.Style.LineColor)
		assert.Equal(t, model.DefaultTraceStyle().MarkerColor, revenue.Style.MarkerColor)

		second := cfg.Traces[1]
		assert.NotEmpty(t, second.ID, "a missing ID is generated")
		assert.Equal(t, model.KindLine, second.Kind, "kind defaults to line")

		traces := cfg.ModelTraces()
		require.Len(t, traces, 2)
		assert.Equal(t, "revenue", traces[0].ID)
		assert.Equal(t, "month", traces[0].XColumn)
		assert.Equal(t, "revenue", traces[0].YColumn)
		assert.Equal(t, "Month vs Cost", traces[1].Label(), "titles default to the titleized columns")
		assert.Equal(t, "Month vs Revenue", traces[0].Title)
	})

	_, ok := cfg.GetTrace("unknown")
	assert.False(t, ok)
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := load(os.DirFS(dir), "nonexistent.yaml", &Config{})
	require.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(file, []byte(":\n  :\n    - [invalid"), 0o600))

	_, err := load(os.DirFS(dir), "bad.yaml", &Config{})
	require.Error(t, err)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "duplicate trace ID",
			yaml: `
traces:
  - id: t1
    x: a
    y: b
  - id: t1
    x: a
    y: c
`,
			wantErr: "duplicate ID",
		},
		{
			name: "invalid trace kind",
			yaml: `
traces:
  - kind: pie
    x: a
    y: b
`,
			wantErr: "invalid kind",
		},
		{
			name: "missing trace column",
			yaml: `
traces:
  - kind: line
    x: a
`,
			wantErr: "x and y columns are required",
		},
		{
			name: "invalid marker style",
			yaml: `
traces:
  - x: a
    y: b
    style:
      markerStyle: hexagon
`,
			wantErr: "invalid marker style",
		},
		{
			name: "invalid aspect ratio",
			yaml: `
chart:
  aspectRatio: "21:9"
`,
			wantErr: "aspectRatio",
		},
		{
			name: "invalid axis position",
			yaml: `
chart:
  xAxisPosition: left
`,
			wantErr: "xAxisPosition",
		},
		{
			name: "invalid border style",
			yaml: `
chart:
  border:
    style: dotted
`,
			wantErr: "border.style",
		},
		{
			name: "negative font size",
			yaml: `
chart:
  titleFontSize: -1
`,
			wantErr: "titleFontSize",
		},
		{
			name: "zero history capacity",
			yaml: `
history:
  capacity: 0
`,
			wantErr: "invalid history",
		},
		{
			name: "empty bounding box",
			yaml: `
render:
  maxWidth: 0
`,
			wantErr: "invalid render",
		},
		{
			name: "unknown theme",
			yaml: `
render:
  theme: neon
`,
			wantErr: "unknown theme",
		},
		{
			name: "invalid layout",
			yaml: `
render:
  layout: grid
`,
			wantErr: "layout",
		},
		{
			name: "invalid sleep",
			yaml: `
render:
  screenshot:
    sleep: soon
`,
			wantErr: "screenshot.sleep",
		},
		{
			name: "multi-character comma",
			yaml: `
input:
  comma: ";;"
`,
			wantErr: "single character",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadFromString(t, tt.yaml)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestRenderSettings(t *testing.T) {
	cfg, err := loadFromString(t, `
render:
  theme: roma
  layout: center
`)
	require.NoError(t, err)

	assert.Equal(t, "roma", cfg.Render.Theme)
	assert.Equal(t, PageLayoutCenter, cfg.Render.Layout)
}

func TestChartConfigFlags(t *testing.T) {
	t.Run("grid defaults to visible", func(t *testing.T) {
		var c ChartConfig
		assert.True(t, c.XGridVisible())
		assert.True(t, c.YGridVisible())
	})

	t.Run("legacy flag applies to both axes", func(t *testing.T) {
		c := ChartConfig{ShowGrid: Bool(false)}
		assert.False(t, c.XGridVisible())
		assert.False(t, c.YGridVisible())
	})

	t.Run("per-axis flags win over the legacy flag", func(t *testing.T) {
		c := ChartConfig{ShowGrid: Bool(false), ShowXGrid: Bool(true)}
		assert.True(t, c.XGridVisible())
		assert.False(t, c.YGridVisible())
	})

	t.Run("Flag", func(t *testing.T) {
		assert.True(t, Flag(nil, true))
		assert.False(t, Flag(Bool(false), true))
	})

	t.Run("Clone does not share flags", func(t *testing.T) {
		c := ChartConfig{ShowLegend: Bool(true), Border: Border{Display: Bool(true), Dash: []float64{2, 4}}}
		clone := c.Clone()
		require.Equal(t, c, clone)

		*clone.ShowLegend = false
		*clone.Border.Display = false
		clone.Border.Dash[0] = 8

		assert.True(t, *c.ShowLegend)
		assert.True(t, *c.Border.Display)
		assert.Equal(t, []float64{2, 4}, c.Border.Dash)
		assert.Nil(t, clone.ShowGrid)
	})
}

func TestEnums(t *testing.T) {
	for _, r := range AllAspectRatios() {
		assert.True(t, r.IsValid(), "expected %q to be valid", r)
	}
	assert.False(t, AspectRatio("2:1").IsValid())

	assert.True(t, FontStyleBold.IsBold())
	assert.True(t, FontStyleBoldItalic.IsBold())
	assert.True(t, FontStyleBoldItalic.IsItalic())
	assert.False(t, FontStyleItalic.IsBold())
	assert.False(t, FontStyleNormal.IsItalic())
	assert.False(t, FontStyle("oblique").IsValid())

	assert.True(t, PositionTop.IsVertical())
	assert.False(t, PositionTop.IsHorizontal())
	assert.True(t, PositionRight.IsHorizontal())
	assert.False(t, Position("center").IsValid())

	assert.True(t, BorderStyleDashed.IsValid())
	assert.False(t, BorderStyle("dotted").IsValid())

	assert.True(t, IsValidTheme(""))
	assert.True(t, IsValidTheme(ThemeWhite))
	assert.True(t, IsValidTheme("roma"))
	assert.False(t, IsValidTheme("neon"))

	assert.True(t, PageLayoutCenter.IsValid())
	assert.False(t, PageLayout("full").IsValid())
}

func TestChartConfigValidateIsStable(t *testing.T) {
	cfg := ChartConfig{
		TitleFontStyle: "oblique",
		YAxisFontStyle: "heavy",
		TitleFontSize:  -1,
		YTicksCount:    -2,
	}

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()

	for range 20 {
		assert.Equal(t, msg, cfg.Validate().Error(), "errors are reported in the same order on every call")
	}

	order := []string{"titleFontStyle", "yAxisFontStyle", "titleFontSize", "yTicksCount"}
	last := -1
	for _, name := range order {
		idx := strings.Index(msg, name)
		require.Greater(t, idx, last, "%s is reported in declaration order", name)
		last = idx
	}
}

func TestTitleize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"unit_price", "Unit Price"},
		{"x-axis", "X Axis"},
		{"already Title", "Already Title"},
		{"camelCase", "CamelCase"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Titleize(tt.input))
		})
	}
}

func TestEncodeYAML(t *testing.T) {
	cfg := mustLoadTestConfig(t, minimalValidYAML())
	cfg.Outputs = Output{HTMLFile: "out.html"}

	var buf bytes.Buffer
	require.NoError(t, cfg.EncodeYAML(&buf))
	assert.NotContains(t, buf.String(), "out.html")

	dir := t.TempDir()
	file := filepath.Join(dir, "generated.yaml")
	require.NoError(t, os.WriteFile(file, buf.Bytes(), 0o600))

	// the YAML can be loaded back as an equivalent config
	loaded, err := Load(file)
	require.NoError(t, err)

	assert.Equal(t, cfg.Name, loaded.Name)
	assert.Equal(t, cfg.Render, loaded.Render)
	assert.Equal(t, cfg.Traces, loaded.Traces)
	assert.Equal(t, cfg.Chart, loaded.Chart)
}

func TestSleepDuration(t *testing.T) {
	assert.Equal(t, time.Duration(0), Screenshot{}.SleepDuration())
	assert.Equal(t, time.Duration(0), Screenshot{Sleep: "invalid"}.SleepDuration())
	assert.Equal(t, 2*time.Second, Screenshot{Sleep: "2s"}.SleepDuration())
}

func dumpConfig(w io.Writer, cfg *Config) error {
	var raw map[string]any
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Squash: true,
		Deep:   true,
		Result: &raw,
	})
	if err != nil {
		return err
	}

	err = dec.Decode(cfg)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)

	return enc.Encode(raw)
}

func loadFromString(t *testing.T, yamlContent string) (*Config, error) {
	t.Helper()
	cfg, err := loadDefaults()
	require.NoError(t, err)

	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(yamlContent), 0o600))

	return load(os.DirFS(dir), "config.yaml", cfg)
}

func mustLoadTestConfig(t *testing.T, yamlContent string) *Config {
	t.Helper()
	cfg, err := loadFromString(t, yamlContent)
	require.NoError(t, err)

	return cfg
}

func minimalValidYAML() string {
	return `
name: Sales
render:
  maxWidth: 1024
chart:
  aspectRatio: "4:3"
  title: Monthly sales
  titleFontStyle: bolditalic
  yAxisPosition: right
  xTicksCount: 5
  yTicksStep: 0.5
  showLegend: false
  border:
    display: true
    style: dashed
    width: 1.5
    dash: [4, 2]
traces:
  - id: revenue
    kind: bar
    x: month
    y: revenue
    style:
      lineColor: "#ff0000"
  - x: month
    y: cost
`
}

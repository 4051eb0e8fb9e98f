package chart

import (
	"log/slog"

	"github.com/fredbi/chartcraft/internal/pkg/adapter"
	"github.com/fredbi/chartcraft/internal/pkg/config"
)

// Builder constructs chart pages from computed renderings.
type Builder struct {
	cfg *config.Config
	l   *slog.Logger
}

// New creates a new chart [Builder], given a [config.Config].
//
// The builder embeds a [slog.Logger] to croak about warnings and issues.
func New(cfg *config.Config) *Builder {
	return &Builder{
		cfg: cfg,
		l:   slog.Default().With(slog.String("module", "chart")),
	}
}

// BuildPage creates a page with one chart per rendering.
//
// An empty title defaults to the name of the project. Charts are laid out as configured in the render settings.
func (b *Builder) BuildPage(title string, renderings ...adapter.Rendering) *Page {
	if title == "" {
		title = b.cfg.Name
	}

	page := NewPage(title, WithLayout(b.cfg.Render.Layout))

	for i, rendering := range renderings {
		if isPlaceholder(rendering.Data) {
			b.l.Warn("chart has no data", slog.Int("chart", i))
		}

		page.AddChart(NewChart(rendering, WithTheme(b.cfg.Render.Theme)))
		b.l.Info("added chart",
			slog.Int("chart", i),
			slog.String("kind", rendering.Data.Kind.String()),
			slog.Int("series", len(rendering.Data.Datasets)),
		)
	}

	b.l.Info("added charts", slog.Int("charts", len(page.Charts)))

	return page
}

func isPlaceholder(data adapter.Data) bool {
	return len(data.Datasets) == 1 && data.Datasets[0].Placeholder
}

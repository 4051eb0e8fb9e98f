package chart

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/components"

	"github.com/fredbi/chartcraft/internal/pkg/config"
)

// Page is an HTML document that lays out one or more charts.
//
// A [Page] knows how to [Page.Render] as HTML.
type Page struct {
	Title  string
	Layout components.Layout
	Charts []*Chart
}

// PageOption configures a [Page].
type PageOption func(*Page)

// WithLayout arranges the charts of the page. The empty layout keeps the flex layout.
func WithLayout(layout config.PageLayout) PageOption {
	return func(p *Page) {
		if layout == "" {
			return
		}

		p.Layout = components.Layout(layout)
	}
}

// NewPage creates a new page with the given title, laying out its charts as a wrapping row.
func NewPage(title string, opts ...PageOption) *Page {
	p := &Page{
		Title:  title,
		Layout: components.PageFlexLayout,
	}

	for _, apply := range opts {
		apply(p)
	}

	return p
}

// AddChart appends a chart to the page.
func (p *Page) AddChart(c *Chart) {
	p.Charts = append(p.Charts, c)
}

// Render writes the page HTML to the given writer.
func (p *Page) Render(w io.Writer) error {
	page := components.NewPage()
	page.SetLayout(p.Layout)
	page.SetPageTitle(p.Title)

	for _, c := range p.Charts {
		page.AddCharts(c.Build())
	}

	return page.Render(w)
}

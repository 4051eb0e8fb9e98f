// Package image converts a HTML chart page into a PNG screenshot, using a headless Chrome browser.
package image

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/device"
)

// ChartSelector selects the first chart of a page rendered with go-echarts.
const ChartSelector = ".container"

// Renderer knows how to take a screenshot from a HTML input and writes it as PNG.
type Renderer struct {
	options

	l *slog.Logger
}

// New builds an image [Renderer] from HTML.
func New(opts ...Option) *Renderer {
	return &Renderer{
		options: optionsWithDefaults(opts),
		l:       slog.Default().With(slog.String("module", "image")),
	}
}

// Render a PNG image as a screenshot from a HTML input [io.Reader].
//
// The browser is stopped when the context is cancelled.
func (r *Renderer) Render(ctx context.Context, dest io.Writer, source io.Reader) error {
	screenshot, err := r.screenshot(ctx, source)
	if err != nil {
		return fmt.Errorf("taking screenshot: %w", err)
	}

	_, err = dest.Write(screenshot)
	if err != nil {
		return fmt.Errorf("writing screenshot: %w", err)
	}

	r.l.Info("screenshot taken", slog.Int("bytes", len(screenshot)))

	return nil
}

func (r *Renderer) screenshot(parent context.Context, reader io.Reader) ([]byte, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}

	ctx, cancel := chromedp.NewContext(parent)
	defer cancel()

	// colors such as "#1a73e8" would be read as an URL fragment in a plain data URL
	url := "data:text/html;base64," + base64.StdEncoding.EncodeToString(content)

	var screenshot []byte
	const qualityPNG = 100 // 100 to force PNG

	var capture chromedp.Action = chromedp.FullScreenshot(&screenshot, qualityPNG)
	if r.Selector != "" {
		capture = chromedp.Screenshot(r.Selector, &screenshot, chromedp.NodeVisible, chromedp.ByQuery)
	}

	err = chromedp.Run(ctx,
		chromedp.Emulate(device.Info{
			Height:    r.Height,
			Width:     r.Width,
			Landscape: true,
		}),
		chromedp.Navigate(url),
		chromedp.Sleep(r.SleepDuration), // we need to wait some time to get the rendering done
		capture,
	)
	if err != nil {
		return nil, err
	}

	return screenshot, nil
}

// Package browser simulates a web browser for page tests. Pages are parsed
// with goquery, the body onload handler runs through a small script runner
// that understands alert and confirm, and forms are submitted by following
// their action.
package browser

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

const fileScheme = "file:"

type Browser struct {
	conn           WebConnection
	alertHandler   AlertHandler
	confirmHandler ConfirmHandler
	logger         zerolog.Logger
}

func (b *Browser) SetWebConnection(conn WebConnection) {
	b.conn = conn
}

func (b *Browser) SetAlertHandler(h AlertHandler) {
	b.alertHandler = h
}

func (b *Browser) SetConfirmHandler(h ConfirmHandler) {
	b.confirmHandler = h
}

// GetPage loads url and runs the body onload handler. URLs starting with
// "file:" are read from disk; everything else goes through the web
// connection.
func (b *Browser) GetPage(ctx context.Context, url string) (*Page, error) {
	html, err := b.load(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", url, err)
	}

	page := &Page{
		browser:   b,
		url:       url,
		doc:       doc,
		functions: scriptFunctions(doc),
	}

	if onload, ok := doc.Find("body").Attr("onload"); ok {
		if err := page.run(onload, 0); err != nil {
			b.logger.Warn().Err(err).Str("url", url).Msg("onload script failed")
		}
	}
	return page, nil
}

func (b *Browser) load(ctx context.Context, url string) (string, error) {
	if strings.HasPrefix(url, fileScheme) {
		html, err := os.ReadFile(strings.TrimPrefix(url, fileScheme))
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", url, err)
		}
		return string(html), nil
	}
	return b.conn.GetResponse(ctx, url)
}

func (b *Browser) alert(page *Page, message string) {
	if b.alertHandler == nil {
		b.logger.Debug().Str("message", message).Msg("alert ignored")
		return
	}
	b.alertHandler(page, message)
}

// confirm accepts the dialog when no handler is set.
func (b *Browser) confirm(page *Page, message string) bool {
	if b.confirmHandler == nil {
		return true
	}
	return b.confirmHandler(page, message)
}

func NewBrowser(conn WebConnection, logger zerolog.Logger) *Browser {
	return &Browser{
		conn:   conn,
		logger: logger,
	}
}

// Package urlfetch resolves a URL-reference artifact: fetch the page with a
// browser-like identity, strip the boilerplate markup, and collapse what is
// left to visible text.
package urlfetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/rsharda/civic-translator/internal/core/domain"
)

const (
	DefaultTimeout   = 10 * time.Second
	DefaultTextLimit = 15000

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

type Extractor struct {
	httpClient *http.Client
	textLimit  int
	log        *slog.Logger
}

func New(timeout time.Duration, textLimit int, log *slog.Logger) *Extractor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if textLimit <= 0 {
		textLimit = DefaultTextLimit
	}
	if log == nil {
		log = slog.Default()
	}
	return &Extractor{
		// Redirects are followed by default; the deadline covers the
		// whole fetch including redirect hops.
		httpClient: &http.Client{Timeout: timeout},
		textLimit:  textLimit,
		log:        log,
	}
}

func (e *Extractor) Extract(ctx context.Context, data []byte) (domain.Extraction, error) {
	url := strings.TrimSpace(string(data))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Extraction{}, domain.WrapError(domain.ErrFetch, "fetch url", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return domain.Extraction{}, domain.WrapError(domain.ErrFetch, "fetch url", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Extraction{}, domain.WrapError(domain.ErrFetch, "fetch url",
			fmt.Errorf("upstream returned %s for %s", resp.Status, url))
	}

	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return domain.Extraction{}, domain.WrapError(domain.ErrFetch, "decode response", err)
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return domain.Extraction{}, domain.WrapError(domain.ErrFetch, "parse html", err)
	}

	doc.Find("script,style,nav,header,footer,noscript").Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})

	text := collapseText(doc.Text())
	if runes := []rune(text); len(runes) > e.textLimit {
		text = string(runes[:e.textLimit])
	}

	e.log.Debug("url_fetch_complete", "url", url, "text_length", len(text))
	return domain.Extraction{
		Text:       text,
		Confidence: domain.ConfidenceURLFetch,
	}, nil
}

// collapseText normalizes extracted markup text: each line trimmed, runs of
// inline whitespace collapsed, empty lines dropped.
func collapseText(raw string) string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		collapsed := strings.Join(strings.Fields(line), " ")
		if collapsed != "" {
			lines = append(lines, collapsed)
		}
	}
	return strings.Join(lines, "\n")
}

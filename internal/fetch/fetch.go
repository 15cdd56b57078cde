// Package fetch downloads web pages and extracts their readable article text.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
)

// minTextLength is the shortest extracted text accepted as an article.
const minTextLength = 100

// maxBodySize caps how much of a page is read.
const maxBodySize = 5 << 20

// ErrNoContent is returned when a page has no extractable article text.
var ErrNoContent = errors.New("no extractable article content")

// Page is an extracted article.
type Page struct {
	URL   string
	Title string
	Text  string
}

// Content returns the page formatted for analysis: title, blank line, text.
func (p Page) Content() string {
	if p.Title == "" {
		return p.Text
	}
	return p.Title + "\n\n" + p.Text
}

// HTTPError is returned for 4xx/5xx responses.
type HTTPError struct {
	Code int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d %s", e.Code, http.StatusText(e.Code))
}

// Fetcher fetches full article text via HTTP + readability extraction.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a new fetcher.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
	}
}

// Extract downloads articleURL and returns its readable content.
func (f *Fetcher) Extract(ctx context.Context, articleURL string) (Page, error) {
	parsedURL, err := url.Parse(articleURL)
	if err != nil || (parsedURL.Scheme != "http" && parsedURL.Scheme != "https") {
		return Page{}, fmt.Errorf("invalid article URL %q", articleURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, nil)
	if err != nil {
		return Page{}, err
	}
	req.Header.Set("User-Agent", "climatenews/1.0 (article reader)")

	resp, err := f.client.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("fetching %s: %w", articleURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return Page{}, &HTTPError{Code: resp.StatusCode}
	}

	article, err := readability.FromReader(io.LimitReader(resp.Body, maxBodySize), parsedURL)
	if err != nil {
		return Page{}, fmt.Errorf("extracting %s: %w", articleURL, err)
	}

	text := strings.TrimSpace(article.TextContent)
	if len(text) < minTextLength {
		return Page{}, ErrNoContent
	}
	return Page{
		URL:   articleURL,
		Title: strings.TrimSpace(article.Title),
		Text:  text,
	}, nil
}

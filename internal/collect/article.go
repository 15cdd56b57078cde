package collect

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
)

// Article is a news item shown in the feed. Articles are not persisted.
type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"publishedAt"`
	Tags        []string  `json:"tags"`
}

// Source is a keyed news API.
type Source interface {
	Name() string
	IsConfigured() bool
	Fetch(ctx context.Context) ([]Article, error)
}

// stripHTML reduces an HTML fragment to its whitespace-normalised text.
func stripHTML(text string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return strings.Join(strings.Fields(text), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// parseDate parses a publish date in any common layout, falling back to
// fallback when s is empty or unparseable.
func parseDate(s string, fallback time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return fallback
	}
	return t
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

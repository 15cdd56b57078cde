package collect

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/TobiSchelling/climatenews/internal/config"
)

const defaultMaxPerFeed = 5

// FeedParser parses the configured RSS/Atom feeds.
type FeedParser struct {
	feeds      []config.Feed
	maxPerFeed int
	rules      []config.TagRule
	client     *http.Client
	now        func() time.Time
}

// NewFeedParser creates a new FeedParser. maxPerFeed caps the items taken
// from each feed.
func NewFeedParser(feeds []config.Feed, maxPerFeed int, rules []config.TagRule) *FeedParser {
	if maxPerFeed <= 0 {
		maxPerFeed = defaultMaxPerFeed
	}
	return &FeedParser{
		feeds:      feeds,
		maxPerFeed: maxPerFeed,
		rules:      rules,
		client:     &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
}

// ParseAll parses every feed. A feed that fails is logged and skipped.
func (fp *FeedParser) ParseAll(ctx context.Context) []Article {
	var all []Article

	parser := gofeed.NewParser()
	parser.Client = fp.client
	for _, fc := range fp.feeds {
		name := fc.Name
		if name == "" {
			name = extractSourceName(fc.URL)
		}

		articles, err := fp.parseFeed(ctx, parser, fc.URL, name)
		if err != nil {
			log.Printf("Failed to parse feed %s: %v", fc.URL, err)
			continue
		}
		all = append(all, articles...)
		log.Printf("Parsed %d entries from %s", len(articles), name)
	}

	return all
}

func (fp *FeedParser) parseFeed(ctx context.Context, parser *gofeed.Parser, feedURL, sourceName string) ([]Article, error) {
	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	now := fp.now()
	var articles []Article
	for _, item := range feed.Items {
		if len(articles) >= fp.maxPerFeed {
			break
		}
		if a, ok := fp.parseItem(item, sourceName, now); ok {
			articles = append(articles, a)
		}
	}

	return articles, nil
}

func (fp *FeedParser) parseItem(item *gofeed.Item, source string, now time.Time) (Article, bool) {
	itemURL := item.Link
	if itemURL == "" {
		itemURL = item.GUID
	}
	if itemURL == "" {
		return Article{}, false
	}

	title := strings.TrimSpace(item.Title)
	if title == "" {
		return Article{}, false
	}

	var published time.Time
	switch {
	case item.PublishedParsed != nil:
		published = *item.PublishedParsed
	case item.UpdatedParsed != nil:
		published = *item.UpdatedParsed
	default:
		published = parseDate(item.Published, now)
	}

	var desc string
	if item.Description != "" {
		desc = stripHTML(item.Description)
	} else if item.Content != "" {
		desc = stripHTML(item.Content)
	}

	return Article{
		Title:       title,
		Description: firstNonEmpty(desc, "No description available"),
		URL:         itemURL,
		Source:      source,
		PublishedAt: published,
		Tags:        ExtractTags(title, desc, fp.rules),
	}, true
}

func extractSourceName(feedURL string) string {
	u, err := url.Parse(feedURL)
	if err != nil || u.Hostname() == "" {
		return feedURL
	}
	host := strings.ToLower(u.Hostname())

	for _, prefix := range []string{"www.", "blog.", "blogs.", "rss.", "feeds."} {
		host = strings.TrimPrefix(host, prefix)
	}

	name := host
	if parts := strings.Split(host, "."); len(parts) >= 2 {
		name = parts[len(parts)-2]
	}
	if name == "" {
		return feedURL
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

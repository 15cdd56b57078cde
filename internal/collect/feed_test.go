package collect

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/TobiSchelling/climatenews/internal/config"
)

func rssFeed(items ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Test</title>` + strings.Join(items, "") + `</channel></rss>`
}

func rssItem(title, link, desc string) string {
	return fmt.Sprintf(`<item><title>%s</title><link>%s</link><description><![CDATA[%s]]></description><pubDate>Mon, 02 Mar 2026 09:00:00 GMT</pubDate></item>`, title, link, desc)
}

func serveFeed(t *testing.T, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestFeedParserCapsItems(t *testing.T) {
	var items []string
	for i := 0; i < 7; i++ {
		items = append(items, rssItem(fmt.Sprintf("Story %d", i), fmt.Sprintf("https://f/%d", i), "text"))
	}
	url := serveFeed(t, rssFeed(items...))

	fp := NewFeedParser([]config.Feed{{URL: url, Name: "Feed"}}, 5, defaultRules())
	articles := fp.ParseAll(context.Background())
	if len(articles) != 5 {
		t.Errorf("expected 5 articles, got %d", len(articles))
	}
}

func TestFeedParserItemFields(t *testing.T) {
	url := serveFeed(t, rssFeed(
		rssItem("Wildfire season", "https://f/a", "<p>Smoke &amp; <b>heat</b></p>"),
		rssItem("", "https://f/b", "untitled items are skipped"),
	))

	fp := NewFeedParser([]config.Feed{{URL: url, Name: "Feed"}}, 5, defaultRules())
	articles := fp.ParseAll(context.Background())
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}

	a := articles[0]
	if a.Description != "Smoke & heat" {
		t.Errorf("expected stripped description, got %q", a.Description)
	}
	if a.Source != "Feed" || a.URL != "https://f/a" {
		t.Errorf("unexpected article: %+v", a)
	}
	if a.PublishedAt.Year() != 2026 || a.PublishedAt.Month() != 3 {
		t.Errorf("unexpected publish date %v", a.PublishedAt)
	}
	if len(a.Tags) == 0 || a.Tags[0] != "extreme weather" {
		t.Errorf("expected extreme weather tag, got %v", a.Tags)
	}
}

func TestFeedParserSkipsBrokenFeed(t *testing.T) {
	good := serveFeed(t, rssFeed(rssItem("Ocean heat", "https://f/ok", "x")))
	bad := serveFeed(t, "not xml")

	fp := NewFeedParser([]config.Feed{{URL: bad, Name: "Bad"}, {URL: good, Name: "Good"}}, 5, nil)
	articles := fp.ParseAll(context.Background())
	if len(articles) != 1 || articles[0].Source != "Good" {
		t.Errorf("expected only the good feed's article, got %+v", articles)
	}
}

func TestStripHTML(t *testing.T) {
	got := stripHTML("<div>Hello&nbsp;<i>world</i>\n\n &lt;3</div>")
	if got != "Hello world <3" {
		t.Errorf("unexpected text %q", got)
	}
}

func TestExtractSourceName(t *testing.T) {
	cases := map[string]string{
		"https://www.carbonbrief.org/feed":    "Carbonbrief",
		"https://insideclimatenews.org/feed/": "Insideclimatenews",
		"https://blog.example.com/rss":        "Example",
		"https://www./rss":                    "https://www./rss",
		"https://feeds..com/x":                "https://feeds..com/x",
	}
	for in, want := range cases {
		if got := extractSourceName(in); got != want {
			t.Errorf("extractSourceName(%q) = %q, want %q", in, got, want)
		}
	}
}

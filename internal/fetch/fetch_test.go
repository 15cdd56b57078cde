package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const articleHTML = `<!DOCTYPE html>
<html><head><title>Glaciers in retreat</title></head>
<body>
<nav>Home | World | Climate</nav>
<article>
<h1>Glaciers in retreat</h1>
<p>Alpine glaciers lost a record share of their remaining ice this summer, according to a survey published on Tuesday by a network of monitoring stations across the range.</p>
<p>Researchers said the losses were driven by a long heatwave and low winter snowfall, and warned that several smaller glaciers could disappear entirely within a decade.</p>
<p>Local communities depend on meltwater for drinking water, farming and hydropower, and planners are already preparing for lower summer river flows.</p>
</article>
<footer>Copyright</footer>
</body></html>`

func TestExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("User-Agent"), "climatenews/") {
			t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	page, err := NewFetcher(0).Extract(context.Background(), srv.URL+"/story")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(page.Text, "Alpine glaciers lost a record share") {
		t.Errorf("expected article text, got %q", page.Text)
	}
	if page.Title == "" {
		t.Error("expected a title")
	}
	if !strings.HasPrefix(page.Content(), page.Title+"\n\n") {
		t.Errorf("expected content to start with title, got %q", page.Content())
	}
}

func TestExtractHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewFetcher(0).Extract(context.Background(), srv.URL)
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected HTTPError 404, got %v", err)
	}
}

func TestExtractNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>Too short.</p></body></html>`))
	}))
	defer srv.Close()

	_, err := NewFetcher(0).Extract(context.Background(), srv.URL)
	if !errors.Is(err, ErrNoContent) {
		t.Errorf("expected ErrNoContent, got %v", err)
	}
}

func TestExtractInvalidURL(t *testing.T) {
	if _, err := NewFetcher(0).Extract(context.Background(), "ftp://example.com/x"); err == nil {
		t.Error("expected error for non-http URL")
	}
}

func TestPageContentWithoutTitle(t *testing.T) {
	p := Page{Text: "body"}
	if p.Content() != "body" {
		t.Errorf("expected body only, got %q", p.Content())
	}
}

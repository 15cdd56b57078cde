package collect

import (
	"testing"
	"time"
)

func sampleArticles() []Article {
	base := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	return []Article{
		{Title: "Old solar story", Description: "solar solar", Source: "Zeta", URL: "a", PublishedAt: base.Add(-48 * time.Hour), Tags: []string{"renewable energy"}},
		{Title: "New flood warning", Description: "storm surge", Source: "Alpha", URL: "b", PublishedAt: base, Tags: []string{"extreme weather"}},
		{Title: "Solar tariffs", Description: "policy debate", Source: "Mid", URL: "c", PublishedAt: base.Add(-24 * time.Hour), Tags: []string{"renewable energy", "climate policy"}},
	}
}

func urls(articles []Article) string {
	var s string
	for _, a := range articles {
		s += a.URL
	}
	return s
}

func TestFilterNoCriteriaSortsByDate(t *testing.T) {
	got := Filter(sampleArticles(), "", "", SortSource)
	if urls(got) != "bca" {
		t.Errorf("expected date order bca, got %s", urls(got))
	}
}

func TestFilterByTag(t *testing.T) {
	got := Filter(sampleArticles(), "RENEWABLE", "", SortDate)
	if urls(got) != "ca" {
		t.Errorf("expected ca, got %s", urls(got))
	}

	got = Filter(sampleArticles(), "policy", "", SortDate)
	if urls(got) != "c" {
		t.Errorf("expected tag substring match c, got %s", urls(got))
	}
}

func TestFilterByKeyword(t *testing.T) {
	got := Filter(sampleArticles(), "", "solar", SortDate)
	if urls(got) != "ca" {
		t.Errorf("expected ca, got %s", urls(got))
	}

	got = Filter(sampleArticles(), "", "alpha", SortDate)
	if urls(got) != "b" {
		t.Errorf("expected source match b, got %s", urls(got))
	}
}

func TestFilterRelevance(t *testing.T) {
	got := Filter(sampleArticles(), "", "solar", SortRelevance)
	if urls(got) != "ac" {
		t.Errorf("expected relevance order ac, got %s", urls(got))
	}
}

func TestFilterSource(t *testing.T) {
	got := Filter(sampleArticles(), "", "s", SortSource)
	if urls(got) != "bca" {
		t.Errorf("expected source order bca, got %s", urls(got))
	}
}

func TestFilterTagAndKeyword(t *testing.T) {
	got := Filter(sampleArticles(), "renewable", "tariffs", SortDate)
	if urls(got) != "c" {
		t.Errorf("expected c, got %s", urls(got))
	}
}

func TestFilterNoMatch(t *testing.T) {
	got := Filter(sampleArticles(), "migration", "", SortDate)
	if len(got) != 0 {
		t.Errorf("expected no articles, got %d", len(got))
	}
}

func TestParseSortMode(t *testing.T) {
	cases := map[string]SortMode{"": SortDate, "date": SortDate, "Relevance": SortRelevance, " source ": SortSource}
	for in, want := range cases {
		got, err := ParseSortMode(in)
		if err != nil || got != want {
			t.Errorf("ParseSortMode(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseSortMode("random"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

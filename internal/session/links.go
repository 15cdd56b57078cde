package session

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/TobiSchelling/climatenews/internal/agent"
)

// maxLinks is the most reference links shown beside an analysis.
const maxLinks = 4

var urlPattern = regexp.MustCompile("(?i)https?://[^\\s<>\"{}|\\\\^`\\[\\]]+")

// Link is a reference shown with an analysis.
type Link struct {
	URL   string
	Title string
}

// Links collects up to four references for an analysis: URLs quoted in the
// article (at most three) followed by searches derived from the analysis.
func Links(content string, a *agent.AnalysisResponse) []Link {
	var links []Link

	for _, raw := range urlPattern.FindAllString(content, 3) {
		raw = strings.TrimRight(raw, ".,;:!?)'")
		title := raw
		if u, err := url.Parse(raw); err == nil && u.Hostname() != "" {
			title = strings.TrimPrefix(u.Hostname(), "www.")
		}
		links = append(links, Link{URL: raw, Title: title})
	}

	links = append(links, searchLinks(a)...)
	if len(links) > maxLinks {
		links = links[:maxLinks]
	}
	return links
}

func searchLinks(a *agent.AnalysisResponse) []Link {
	if a == nil {
		return nil
	}
	var links []Link

	terms := make([]string, 0, len(a.KeyTermsExplained))
	for term := range a.KeyTermsExplained {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	if len(terms) > 2 {
		terms = terms[:2]
	}
	for _, term := range terms {
		links = append(links, Link{
			URL:   "https://www.google.com/search?q=" + url.QueryEscape(term+" climate news"),
			Title: "Search: " + term,
		})
	}

	if level := a.RiskLevel(); level != "" {
		links = append(links, Link{
			URL:   "https://news.google.com/search?q=" + url.QueryEscape("climate "+level+" risk"),
			Title: "Related Climate News",
		})
	}

	if len(links) > 3 {
		links = links[:3]
	}
	return links
}

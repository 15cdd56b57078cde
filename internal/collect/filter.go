package collect

import (
	"fmt"
	"sort"
	"strings"
)

// SortMode orders filtered articles when a keyword is present.
type SortMode string

const (
	SortDate      SortMode = "date"
	SortRelevance SortMode = "relevance"
	SortSource    SortMode = "source"
)

// ParseSortMode converts s to a SortMode. Empty means SortDate.
func ParseSortMode(s string) (SortMode, error) {
	switch m := SortMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return SortDate, nil
	case SortDate, SortRelevance, SortSource:
		return m, nil
	default:
		return "", fmt.Errorf("unknown sort mode %q (expected date, relevance or source)", s)
	}
}

// Filter returns the articles matching tag and keyword. Either may be empty.
// A tag matches when it is a case-insensitive substring of any article tag.
// A keyword matches against title, description and source. Results are
// ordered newest first unless a keyword is present, in which case mode
// decides the order.
func Filter(articles []Article, tag, keyword string, mode SortMode) []Article {
	tag = strings.ToLower(strings.TrimSpace(tag))
	keyword = strings.ToLower(strings.TrimSpace(keyword))

	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if tag != "" && !hasTag(a, tag) {
			continue
		}
		if keyword != "" && hits(a, keyword) == 0 {
			continue
		}
		out = append(out, a)
	}

	if keyword == "" {
		mode = SortDate
	}
	byDate := func(i, j int) bool { return out[i].PublishedAt.After(out[j].PublishedAt) }

	switch mode {
	case SortRelevance:
		sort.SliceStable(out, func(i, j int) bool {
			hi, hj := hits(out[i], keyword), hits(out[j], keyword)
			if hi != hj {
				return hi > hj
			}
			return byDate(i, j)
		})
	case SortSource:
		sort.SliceStable(out, func(i, j int) bool {
			si, sj := strings.ToLower(out[i].Source), strings.ToLower(out[j].Source)
			if si != sj {
				return si < sj
			}
			return byDate(i, j)
		})
	default:
		sort.SliceStable(out, byDate)
	}
	return out
}

func hasTag(a Article, tag string) bool {
	for _, t := range a.Tags {
		if strings.Contains(strings.ToLower(t), tag) {
			return true
		}
	}
	return false
}

// hits counts keyword occurrences in title, description and source.
func hits(a Article, keyword string) int {
	return strings.Count(strings.ToLower(a.Title), keyword) +
		strings.Count(strings.ToLower(a.Description), keyword) +
		strings.Count(strings.ToLower(a.Source), keyword)
}

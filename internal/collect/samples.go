package collect

import (
	"time"

	"github.com/TobiSchelling/climatenews/internal/config"
)

// Samples builds the fallback articles, dated relative to now.
func Samples(samples []config.Sample, rules []config.TagRule, now time.Time) []Article {
	out := make([]Article, 0, len(samples))
	for _, s := range samples {
		tags := s.Tags
		if len(tags) == 0 {
			tags = ExtractTags(s.Title, s.Description, rules)
		}
		out = append(out, Article{
			Title:       s.Title,
			Description: s.Description,
			URL:         s.URL,
			Source:      s.Source,
			PublishedAt: now.Add(-time.Duration(s.AgeDays) * 24 * time.Hour),
			Tags:        append([]string(nil), tags...),
		})
	}
	return out
}

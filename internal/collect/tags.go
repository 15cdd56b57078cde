package collect

import (
	"strings"

	"github.com/TobiSchelling/climatenews/internal/config"
)

// maxTags is the most tags derived for one article.
const maxTags = 3

// ExtractTags derives topical tags from an article's title and description.
// A rule matches when any of its keywords is a substring of the lower-cased
// text. Tags are returned in rule order.
func ExtractTags(title, description string, rules []config.TagRule) []string {
	text := strings.ToLower(title + " " + description)

	tags := []string{}
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				tags = append(tags, rule.Tag)
				break
			}
		}
		if len(tags) == maxTags {
			break
		}
	}
	return tags
}

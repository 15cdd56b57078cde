package collect

import (
	"reflect"
	"testing"

	"github.com/TobiSchelling/climatenews/internal/config"
)

func defaultRules() []config.TagRule {
	return config.Default().News.Tags
}

func TestExtractTagsSingle(t *testing.T) {
	got := ExtractTags("Solar power surge", "Wind farms", defaultRules())
	want := []string{"renewable energy"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtractTagsCappedInRuleOrder(t *testing.T) {
	got := ExtractTags("Carbon emissions policy hits wildlife", "and glacier retreat", defaultRules())
	want := []string{"climate policy", "emissions", "biodiversity"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtractTagsSubstringMatch(t *testing.T) {
	// "un" is a keyword, so any word containing it matches.
	got := ExtractTags("Sunday market", "", defaultRules())
	want := []string{"climate policy"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtractTagsCaseInsensitive(t *testing.T) {
	got := ExtractTags("HURRICANE season", "", defaultRules())
	if len(got) != 1 || got[0] != "extreme weather" {
		t.Errorf("expected [extreme weather], got %v", got)
	}
}

func TestExtractTagsNone(t *testing.T) {
	got := ExtractTags("Local bakery opens", "", defaultRules())
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

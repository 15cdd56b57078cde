package agent

import (
	"encoding/json"
	"reflect"
	"testing"
)

func sampleAnalysis() AnalysisResponse {
	return AnalysisResponse{
		PersonalizedHighlights: &Highlights{
			KeyPoints:            []string{"Sea levels rising faster", "Coastal cities at risk"},
			RelevanceExplanation: "You follow coastal impacts",
		},
		RiskAssessment:       &RiskAssessment{RiskLevel: "high", Explanation: "Accelerating melt"},
		PlainLanguageSummary: "Ice is melting quicker than expected.",
		WhyThisMattersToYou:  "Your region is low-lying.",
		KeyTermsExplained:    map[string]string{"ice sheet": "A large mass of glacial ice"},
		SentimentAnalysis:    &SentimentAnalysis{Tone: "concerned", EmotionalImpact: "moderate"},
	}
}

func TestNormalizeStringifiedObject(t *testing.T) {
	want := sampleAnalysis()
	inner, _ := json.Marshal(want)
	outer, _ := json.Marshal(string(inner))

	got := NormalizeResponseField[AnalysisResponse](outer)
	if !got.IsParsed() {
		t.Fatalf("expected parsed result, got raw %q", got.Raw)
	}
	if !reflect.DeepEqual(*got.Parsed, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", *got.Parsed, want)
	}
}

func TestNormalizeObject(t *testing.T) {
	want := sampleAnalysis()
	data, _ := json.Marshal(want)

	got := NormalizeResponseField[AnalysisResponse](data)
	if !got.IsParsed() {
		t.Fatalf("expected parsed result, got raw %q", got.Raw)
	}
	if !reflect.DeepEqual(*got.Parsed, want) {
		t.Errorf("mismatch:\n got %+v\nwant %+v", *got.Parsed, want)
	}
}

func TestNormalizeNonJSONString(t *testing.T) {
	for _, s := range []string{"not json at all", "{broken", "", "  spaced  "} {
		raw, _ := json.Marshal(s)
		got := NormalizeResponseField[AnalysisResponse](raw)
		if got.IsParsed() {
			t.Errorf("%q: expected raw fallback", s)
			continue
		}
		if got.Raw != s {
			t.Errorf("expected raw %q unchanged, got %q", s, got.Raw)
		}
	}
}

func TestNormalizePartialObject(t *testing.T) {
	got := NormalizeResponseField[AnalysisResponse](json.RawMessage(`{"plain_language_summary":"Short."}`))
	if !got.IsParsed() {
		t.Fatal("expected parsed result")
	}
	if got.Parsed.PlainLanguageSummary != "Short." {
		t.Errorf("unexpected summary %q", got.Parsed.PlainLanguageSummary)
	}
	if got.Parsed.RiskAssessment != nil {
		t.Error("expected absent risk assessment to stay nil")
	}
	if got.Parsed.RiskLevel() != "" {
		t.Error("expected empty risk level for absent section")
	}
}

func TestNormalizeMismatchedShape(t *testing.T) {
	got := NormalizeResponseField[AnalysisResponse](json.RawMessage(`[1,2,3]`))
	if got.IsParsed() {
		t.Fatal("expected raw fallback for array payload")
	}
	if got.Raw != "[1,2,3]" {
		t.Errorf("expected literal JSON, got %q", got.Raw)
	}
}

func TestNormalizeStringTarget(t *testing.T) {
	got := NormalizeResponseField[string](json.RawMessage(`"Hello there"`))
	if got.IsParsed() {
		t.Fatal("plain prose should not decode as a JSON string")
	}
	if got.Raw != "Hello there" {
		t.Errorf("expected 'Hello there', got %q", got.Raw)
	}
}

func TestNormalizeNull(t *testing.T) {
	got := NormalizeResponseField[AnalysisResponse](json.RawMessage(`null`))
	if got.IsParsed() || got.Raw != "" {
		t.Errorf("expected zero field for null, got %+v", got)
	}
}

func TestNormalizeStringifiedNull(t *testing.T) {
	for _, raw := range []string{`"null"`, `" null "`} {
		got := NormalizeResponseField[AnalysisResponse](json.RawMessage(raw))
		if got.IsParsed() || got.Raw != "" {
			t.Errorf("expected zero field for %s, got %+v", raw, got)
		}
	}
}

func TestIsEmpty(t *testing.T) {
	var nilAnalysis *AnalysisResponse
	if !nilAnalysis.IsEmpty() {
		t.Error("nil analysis should be empty")
	}
	if !(&AnalysisResponse{RiskAssessment: &RiskAssessment{}}).IsEmpty() {
		t.Error("analysis with blank sections should be empty")
	}
	a := sampleAnalysis()
	if a.IsEmpty() {
		t.Error("sample analysis should not be empty")
	}
}

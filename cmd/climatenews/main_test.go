package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TobiSchelling/climatenews/internal/agent"
	"github.com/TobiSchelling/climatenews/internal/history"
)

func TestPrintItemSections(t *testing.T) {
	item := history.Item{
		ID:      "abc",
		Title:   "Floods in Europe",
		Content: "Floods in Europe. See https://example.org/report for details.",
		Analysis: &agent.AnalysisResponse{
			PlainLanguageSummary: "Rivers rose.",
			RiskAssessment:       &agent.RiskAssessment{RiskLevel: "high", Explanation: "More rain expected."},
			KeyTermsExplained:    map[string]string{"runoff": "Water flowing over land", "basin": "Drainage area"},
		},
	}

	var buf bytes.Buffer
	printItem(&buf, item)
	out := buf.String()

	for _, want := range []string{"== Summary ==", "Rivers rose.", "== Risk Level ==\nHIGH", "More rain expected.", "example.org"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Index(out, "Summary") > strings.Index(out, "Risk Level") {
		t.Error("expected summary before risk level")
	}
	if strings.Index(out, "basin") > strings.Index(out, "runoff") {
		t.Error("expected key terms in alphabetical order")
	}
	if strings.Contains(out, "Sentiment") {
		t.Error("expected empty sections to be omitted")
	}
}

func TestPrintItemRawAnalysis(t *testing.T) {
	var buf bytes.Buffer
	printItem(&buf, history.Item{ID: "x", Title: "t", RawAnalysis: "plain reply"})
	if !strings.Contains(buf.String(), "plain reply") {
		t.Errorf("expected raw analysis in output, got %q", buf.String())
	}
}

func TestArticleContentSources(t *testing.T) {
	defer func() { analyzeFile, analyzeURL = "", "" }()

	got, err := articleContent(context.Background(), nil, []string{"sea", "levels", "rise"})
	if err != nil || got != "sea levels rise" {
		t.Errorf("expected joined args, got %q (%v)", got, err)
	}

	path := filepath.Join(t.TempDir(), "article.txt")
	if err := os.WriteFile(path, []byte("from a file"), 0o644); err != nil {
		t.Fatal(err)
	}
	analyzeFile = path
	got, err = articleContent(context.Background(), nil, nil)
	if err != nil || got != "from a file" {
		t.Errorf("expected file content, got %q (%v)", got, err)
	}

	analyzeFile = filepath.Join(t.TempDir(), "missing.txt")
	if _, err := articleContent(context.Background(), nil, nil); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestNoticeErrorHints(t *testing.T) {
	rejected := noticeError(&agent.APIError{Status: 401, Message: "API request failed: Unauthorized"}, "KITH_API_TOKEN")
	if !strings.Contains(rejected.Error(), "check KITH_API_TOKEN") {
		t.Errorf("expected token hint for rejected call, got %q", rejected)
	}

	quota := noticeError(&agent.APIError{Status: 402, Message: agent.QuotaExceededMessage}, "KITH_API_TOKEN")
	if !strings.HasPrefix(quota.Error(), "API Limit Reached: ") || strings.Contains(quota.Error(), "check") {
		t.Errorf("unexpected quota message %q", quota)
	}

	other := noticeError(errors.New("connection refused"), "KITH_API_TOKEN")
	if other.Error() != "Error: connection refused" {
		t.Errorf("unexpected message %q", other)
	}
}

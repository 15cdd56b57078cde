package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TobiSchelling/climatenews/internal/fetch"
	"github.com/TobiSchelling/climatenews/internal/history"
	"github.com/TobiSchelling/climatenews/internal/session"
)

var (
	analyzeFile string
	analyzeURL  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Analyze a climate article against your profile",
	Long: `Analyze a climate article and store the result in history.

The article is taken from the arguments, from --file ("-" reads stdin),
or extracted from the page at --url.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		content, err := articleContent(cmd.Context(), app.pages, args)
		if err != nil {
			return err
		}

		if strings.TrimSpace(content) != "" && !app.agent.IsConfigured() {
			return fmt.Errorf("%s is not set; run 'climatenews init' for setup instructions", cfg.Agent.TokenEnv)
		}
		if !app.profiles.IsComplete() {
			fmt.Println("Tip: set up your profile for personalized analysis (climatenews profile set)")
		}

		item, err := app.workspace.Analyze(cmd.Context(), content)
		if err != nil {
			return noticeError(err, cfg.Agent.TokenEnv)
		}

		printItem(os.Stdout, item)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Read the article from a file (\"-\" for stdin)")
	analyzeCmd.Flags().StringVarP(&analyzeURL, "url", "u", "", "Extract the article from a web page")
	analyzeCmd.MarkFlagsMutuallyExclusive("file", "url")
}

func articleContent(ctx context.Context, pages *fetch.Fetcher, args []string) (string, error) {
	switch {
	case analyzeURL != "":
		page, err := pages.Extract(ctx, analyzeURL)
		if err != nil {
			return "", fmt.Errorf("extracting %s: %w", analyzeURL, err)
		}
		return page.Content(), nil
	case analyzeFile == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	case analyzeFile != "":
		data, err := os.ReadFile(analyzeFile)
		if err != nil {
			return "", fmt.Errorf("reading article: %w", err)
		}
		return string(data), nil
	}
	return strings.Join(args, " "), nil
}

// printItem writes an analysis in the same section order as the web view.
func printItem(w io.Writer, item history.Item) {
	fmt.Fprintf(w, "%s\n", item.Title)
	fmt.Fprintf(w, "ID: %s\n", item.ID)

	a := item.Analysis
	if a == nil {
		if item.RawAnalysis != "" {
			fmt.Fprintf(w, "\n%s\n", item.RawAnalysis)
		}
		return
	}

	section := func(title, body string) {
		if body == "" {
			return
		}
		fmt.Fprintf(w, "\n== %s ==\n%s\n", title, body)
	}

	section("Summary", a.PlainLanguageSummary)
	if a.RiskAssessment != nil && a.RiskAssessment.RiskLevel != "" {
		section("Risk Level", strings.ToUpper(a.RiskAssessment.RiskLevel))
	}
	if h := a.PersonalizedHighlights; h != nil {
		var b strings.Builder
		for _, p := range h.KeyPoints {
			fmt.Fprintf(&b, "  - %s\n", p)
		}
		if h.RelevanceExplanation != "" {
			b.WriteString(h.RelevanceExplanation)
		}
		section("Key Findings", strings.TrimRight(b.String(), "\n"))
	}
	section("Why This Matters to You", a.WhyThisMattersToYou)
	if a.RiskAssessment != nil {
		section("Risk Assessment Details", a.RiskAssessment.Explanation)
	}
	if len(a.KeyTermsExplained) > 0 {
		terms := make([]string, 0, len(a.KeyTermsExplained))
		for term := range a.KeyTermsExplained {
			terms = append(terms, term)
		}
		sort.Strings(terms)
		var b strings.Builder
		for _, term := range terms {
			fmt.Fprintf(&b, "  %s: %s\n", term, a.KeyTermsExplained[term])
		}
		section("Key Terms", strings.TrimRight(b.String(), "\n"))
	}
	if s := a.SentimentAnalysis; s != nil {
		section("Sentiment", strings.TrimSpace(s.Tone+"\n"+s.EmotionalImpact))
	}

	links := session.Links(item.Content, a)
	if len(links) > 0 {
		var b strings.Builder
		for _, l := range links {
			fmt.Fprintf(&b, "  %s <%s>\n", l.Title, l.URL)
		}
		section("Further Reading", strings.TrimRight(b.String(), "\n"))
	}
}

package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/TobiSchelling/climatenews/internal/config"
)

const newsAPIBaseURL = "https://newsapi.org/v2/everything"

// NewsAPIClient fetches articles from NewsAPI.
type NewsAPIClient struct {
	apiKey   string
	baseURL  string
	query    string
	pageSize int
	rules    []config.TagRule
	client   *http.Client
	now      func() time.Time
}

// NewNewsAPIClient creates a new NewsAPI client.
func NewNewsAPIClient(cfg config.NewsAPIConfig, rules []config.TagRule) *NewsAPIClient {
	return &NewsAPIClient{
		apiKey:   os.Getenv(cfg.APIKeyEnv),
		baseURL:  newsAPIBaseURL,
		query:    cfg.Query,
		pageSize: cfg.PageSize,
		rules:    rules,
		client:   &http.Client{Timeout: 30 * time.Second},
		now:      time.Now,
	}
}

func (c *NewsAPIClient) Name() string { return "NewsAPI" }

// IsConfigured returns whether the API key is available.
func (c *NewsAPIClient) IsConfigured() bool {
	return c.apiKey != ""
}

// Fetch searches for the configured query, newest first.
func (c *NewsAPIClient) Fetch(ctx context.Context) ([]Article, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("NewsAPI key not configured")
	}

	pageSize := c.pageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 100
	}
	query := c.query
	if query == "" {
		query = "climate change"
	}

	params := url.Values{
		"q":        {query},
		"language": {"en"},
		"pageSize": {strconv.Itoa(pageSize)},
		"sortBy":   {"publishedAt"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("NewsAPI request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NewsAPI HTTP error: %d", resp.StatusCode)
	}

	var result struct {
		Status   string `json:"status"`
		Articles []struct {
			URL         string `json:"url"`
			Title       string `json:"title"`
			PublishedAt string `json:"publishedAt"`
			Content     string `json:"content"`
			Description string `json:"description"`
			Source      struct {
				Name string `json:"name"`
			} `json:"source"`
		} `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding NewsAPI response: %w", err)
	}
	if result.Status != "ok" {
		return nil, fmt.Errorf("NewsAPI status: %s", result.Status)
	}

	now := c.now()
	var articles []Article
	for _, a := range result.Articles {
		if a.URL == "" || a.Title == "" {
			continue
		}
		if a.Title == "[Removed]" || a.URL == "https://removed.com" {
			continue
		}

		title := strings.TrimSpace(a.Title)
		desc := firstNonEmpty(a.Description, a.Content)
		articles = append(articles, Article{
			Title:       title,
			Description: firstNonEmpty(desc, "No description available"),
			URL:         a.URL,
			Source:      firstNonEmpty(a.Source.Name, "NewsAPI"),
			PublishedAt: parseDate(a.PublishedAt, now),
			Tags:        ExtractTags(title, desc, c.rules),
		})
	}

	log.Printf("Fetched %d articles from NewsAPI for query: %s", len(articles), query)
	return articles, nil
}

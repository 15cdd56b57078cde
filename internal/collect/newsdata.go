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
	"sync"
	"time"

	"github.com/TobiSchelling/climatenews/internal/config"
)

const newsDataBaseURL = "https://newsdata.io/api/1/news"

// NewsDataClient fetches articles from NewsData.io. Each successful fetch
// advances to the next result page, so repeated refreshes load new articles.
type NewsDataClient struct {
	apiKey   string
	baseURL  string
	query    string
	category string
	language string
	size     int
	rules    []config.TagRule
	client   *http.Client
	now      func() time.Time

	mu       sync.Mutex
	nextPage string
}

// NewNewsDataClient creates a NewsData.io client.
func NewNewsDataClient(cfg config.NewsDataConfig, rules []config.TagRule) *NewsDataClient {
	return &NewsDataClient{
		apiKey:   os.Getenv(cfg.APIKeyEnv),
		baseURL:  newsDataBaseURL,
		query:    cfg.Query,
		category: cfg.Category,
		language: cfg.Language,
		size:     cfg.Size,
		rules:    rules,
		client:   &http.Client{Timeout: 30 * time.Second},
		now:      time.Now,
	}
}

func (c *NewsDataClient) Name() string { return "NewsData.io" }

// IsConfigured returns whether the API key is available.
func (c *NewsDataClient) IsConfigured() bool {
	return c.apiKey != ""
}

// Fetch loads the next page of results.
func (c *NewsDataClient) Fetch(ctx context.Context) ([]Article, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("NewsData.io API key not configured")
	}

	params := url.Values{"apikey": {c.apiKey}}
	if c.query != "" {
		params.Set("q", c.query)
	}
	if c.language != "" {
		params.Set("language", c.language)
	}
	if c.category != "" {
		params.Set("category", c.category)
	}
	if c.size > 0 {
		params.Set("size", strconv.Itoa(c.size))
	}
	c.mu.Lock()
	if c.nextPage != "" {
		params.Set("page", c.nextPage)
	}
	c.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("NewsData.io request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NewsData.io HTTP error: %d", resp.StatusCode)
	}

	var result struct {
		Status  string `json:"status"`
		Results []struct {
			Title       string `json:"title"`
			Link        string `json:"link"`
			Description string `json:"description"`
			Content     string `json:"content"`
			PubDate     string `json:"pubDate"`
			SourceName  string `json:"source_name"`
			SourceID    string `json:"source_id"`
		} `json:"results"`
		NextPage string `json:"nextPage"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding NewsData.io response: %w", err)
	}
	if result.Status != "" && result.Status != "success" {
		return nil, fmt.Errorf("NewsData.io status: %s", result.Status)
	}

	c.mu.Lock()
	c.nextPage = result.NextPage
	c.mu.Unlock()

	now := c.now()
	var articles []Article
	for _, r := range result.Results {
		if r.Link == "" {
			continue
		}
		title := firstNonEmpty(r.Title, "Untitled")
		desc := firstNonEmpty(r.Description, r.Content, "No description available")
		articles = append(articles, Article{
			Title:       title,
			Description: desc,
			URL:         r.Link,
			Source:      firstNonEmpty(r.SourceName, r.SourceID, "Unknown"),
			PublishedAt: parseDate(r.PubDate, now),
			Tags:        ExtractTags(r.Title, firstNonEmpty(r.Description, r.Content), c.rules),
		})
	}

	log.Printf("Fetched %d articles from NewsData.io", len(articles))
	return articles, nil
}

// Package agent is a client for the external AI agent service that
// analyses articles and assists with profile setup.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Analyzer analyses article text against profile variables.
type Analyzer interface {
	AnalyzeArticle(ctx context.Context, vars ArticleAnalysisVariables) (Field[AnalysisResponse], error)
}

// ProfileAssistant answers free-form profile setup messages.
type ProfileAssistant interface {
	ProfileSetup(ctx context.Context, vars ProfileSetupVariables, sessionID string) (string, error)
}

// Options configures a Client.
type Options struct {
	BaseURL               string
	Token                 string
	AgentUUID             string
	ProfileSetupPrompt    string
	ArticleAnalysisPrompt string
	Timeout               time.Duration
}

// Client calls the agent's prompt endpoints.
type Client struct {
	opts   Options
	client *http.Client
}

// NewClient creates a new agent client.
func NewClient(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &Client{
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout},
	}
}

// NewClientFromEnv creates a client whose bearer token is read from tokenEnv.
func NewClientFromEnv(opts Options, tokenEnv string) *Client {
	opts.Token = os.Getenv(tokenEnv)
	return NewClient(opts)
}

// IsConfigured reports whether a bearer token is available.
func (c *Client) IsConfigured() bool {
	return c.opts.Token != ""
}

type promptRequest struct {
	AgentUUID string `json:"agent_uuid"`
	Variables any    `json:"variables"`
	SessionID string `json:"session_id,omitempty"`
}

type promptResponse struct {
	Success    bool            `json:"success"`
	Response   json.RawMessage `json:"response"`
	Error      string          `json:"error,omitempty"`
	AgentName  string          `json:"agent_name,omitempty"`
	PromptName string          `json:"prompt_name,omitempty"`
	PromptID   string          `json:"prompt_id,omitempty"`
	SessionID  string          `json:"session_id,omitempty"`
}

// AnalyzeArticle submits article text for personalised analysis.
func (c *Client) AnalyzeArticle(ctx context.Context, vars ArticleAnalysisVariables) (Field[AnalysisResponse], error) {
	resp, err := c.prompt(ctx, c.opts.ArticleAnalysisPrompt, promptRequest{
		AgentUUID: c.opts.AgentUUID,
		Variables: vars,
	})
	if err != nil {
		return Field[AnalysisResponse]{}, err
	}
	if !resp.Success {
		return Field[AnalysisResponse]{}, failure(resp.Error, "Analysis failed")
	}
	return NormalizeResponseField[AnalysisResponse](resp.Response), nil
}

// ProfileSetup sends a profile assistant message and returns the reply text.
// An empty sessionID is replaced with a fresh one.
func (c *Client) ProfileSetup(ctx context.Context, vars ProfileSetupVariables, sessionID string) (string, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	resp, err := c.prompt(ctx, c.opts.ProfileSetupPrompt, promptRequest{
		AgentUUID: c.opts.AgentUUID,
		Variables: vars,
		SessionID: sessionID,
	})
	if err != nil {
		return "", err
	}
	if !resp.Success {
		return "", failure(resp.Error, "Unknown error occurred")
	}

	field := NormalizeResponseField[string](resp.Response)
	if field.IsParsed() {
		return *field.Parsed, nil
	}
	return field.Raw, nil
}

func (c *Client) prompt(ctx context.Context, promptID string, body promptRequest) (*promptResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.opts.BaseURL+"/prompt/"+promptID, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.opts.Token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("agent request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode)
	}

	var result promptResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &result, nil
}

func failure(upstream, fallback string) error {
	if upstream != "" {
		return errors.New(upstream)
	}
	return errors.New(fallback)
}

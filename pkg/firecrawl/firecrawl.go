// Package firecrawl is a minimal client for the Firecrawl scrape API,
// covering only the JSON structured-extraction mode this service uses.
package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxResponseSizeBytes = 4 << 20

type Config struct {
	APIKey  string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	BaseURL string        `envconfig:"BASE_URL" split_words:"true" default:"https://api.firecrawl.dev"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"3m"`
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// JSONOptions configures one structured-extraction scrape. Schema is a JSON
// Schema document describing the expected output; Prompt is the
// natural-language extraction instruction; TimeoutMS bounds page rendering on
// the provider side.
type JSONOptions struct {
	Schema          map[string]any
	Prompt          string
	TimeoutMS       int
	OnlyMainContent bool
}

type scrapeRequest struct {
	URL             string       `json:"url"`
	Formats         []string     `json:"formats"`
	OnlyMainContent bool         `json:"onlyMainContent"`
	Timeout         int          `json:"timeout,omitempty"`
	JSONOptions     *jsonOptions `json:"jsonOptions,omitempty"`
}

type jsonOptions struct {
	Schema map[string]any `json:"schema,omitempty"`
	Prompt string         `json:"prompt,omitempty"`
}

type scrapeResponse struct {
	Success bool       `json:"success"`
	Error   string     `json:"error"`
	Data    scrapeData `json:"data"`
}

type scrapeData struct {
	JSON json.RawMessage `json:"json"`
}

func NewClient(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("firecrawl api key is required")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("firecrawl base url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid firecrawl base url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Minute
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func MustNew(cfg Config) *Client {
	client, err := NewClient(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

// ScrapeJSON scrapes targetURL in JSON extraction mode and returns the raw
// extracted document. The shape of the result is whatever the schema asked
// for; callers normalize it themselves.
func (c *Client) ScrapeJSON(ctx context.Context, targetURL string, opts JSONOptions) (json.RawMessage, error) {
	if strings.TrimSpace(targetURL) == "" {
		return nil, errors.New("target url is required")
	}

	reqBody := scrapeRequest{
		URL:             targetURL,
		Formats:         []string{"json"},
		OnlyMainContent: opts.OnlyMainContent,
		Timeout:         opts.TimeoutMS,
	}
	if opts.Schema != nil || opts.Prompt != "" {
		reqBody.JSONOptions = &jsonOptions{
			Schema: opts.Schema,
			Prompt: opts.Prompt,
		}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal scrape request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/scrape", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build scrape request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute scrape request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return nil, fmt.Errorf("read scrape response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("firecrawl http status=%d body=%s", resp.StatusCode, string(raw))
	}

	var parsed scrapeResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode scrape response: %w", err)
	}
	if !parsed.Success {
		if parsed.Error != "" {
			return nil, fmt.Errorf("firecrawl scrape failed: %s", parsed.Error)
		}
		return nil, errors.New("firecrawl scrape failed")
	}

	return parsed.Data.JSON, nil
}

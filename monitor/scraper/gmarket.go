// Package scraper extracts live marketplace offers through the Firecrawl
// structured-extraction API.
package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/yeonjae-dev/price-monitor-mcp/monitor/contract"
	firecrawlx "github.com/yeonjae-dev/price-monitor-mcp/pkg/firecrawl"
)

const defaultExtractionPrompt = `Extract each product listing from the search results page:
- price: the sale price (number only)
- seller: the seller name
- url: link to the product detail page
- title: the product name (if present)`

type Config struct {
	SearchURL string `envconfig:"SEARCH_URL" split_words:"true" default:"https://www.gmarket.co.kr/n/search"`
	Prompt    string `envconfig:"PROMPT" split_words:"true"`
	TimeoutMS int    `envconfig:"TIMEOUT_MS" split_words:"true" default:"180000"`
}

// GmarketScraper implements contract.OfferSource for Gmarket search pages.
type GmarketScraper struct {
	client    *firecrawlx.Client
	searchURL string
	prompt    string
	timeoutMS int
}

func New(client *firecrawlx.Client, cfg Config) (*GmarketScraper, error) {
	if client == nil {
		return nil, fmt.Errorf("firecrawl client is required")
	}

	searchURL := strings.TrimRight(strings.TrimSpace(cfg.SearchURL), "/")
	if searchURL == "" {
		return nil, fmt.Errorf("search url is required")
	}

	prompt := strings.TrimSpace(cfg.Prompt)
	if prompt == "" {
		prompt = defaultExtractionPrompt
	}

	timeoutMS := cfg.TimeoutMS
	if timeoutMS <= 0 {
		timeoutMS = 180000
	}

	return &GmarketScraper{
		client:    client,
		searchURL: searchURL,
		prompt:    prompt,
		timeoutMS: timeoutMS,
	}, nil
}

// Scrape fetches the raw extraction payload for the product's search page.
// The payload is whatever the provider returned against the offer schema;
// normalization happens separately in contract.DecodeOffers.
func (s *GmarketScraper) Scrape(ctx context.Context, productCode string) (json.RawMessage, error) {
	code := strings.TrimSpace(productCode)
	if code == "" {
		return nil, fmt.Errorf("%w: product code is required", contractx.ErrExtraction)
	}

	target := fmt.Sprintf("%s?keyword=%s&s=1", s.searchURL, url.QueryEscape(code))
	log.Debug().Str("product_code", code).Str("url", target).Msg("scraping search page")

	raw, err := s.client.ScrapeJSON(ctx, target, firecrawlx.JSONOptions{
		Schema:          offerSchema(),
		Prompt:          s.prompt,
		TimeoutMS:       s.timeoutMS,
		OnlyMainContent: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrExtraction, err)
	}

	return raw, nil
}

// ScrapeOffers runs the full extraction: scrape, normalize, and sort by
// ascending price. An empty result is ErrNoOffers.
func (s *GmarketScraper) ScrapeOffers(ctx context.Context, productCode string) ([]contractx.Offer, error) {
	raw, err := s.Scrape(ctx, productCode)
	if err != nil {
		return nil, err
	}

	offers, err := contractx.DecodeOffers(raw)
	if err != nil {
		return nil, err
	}
	if len(offers) == 0 {
		return nil, fmt.Errorf("%w: product_code=%s", contractx.ErrNoOffers, strings.TrimSpace(productCode))
	}

	log.Debug().Str("product_code", productCode).Int("offers", len(offers)).Msg("offers extracted")
	return offers, nil
}

// offerSchema is the fixed extraction schema: an array of offers with
// required price/seller/url and optional title.
func offerSchema() map[string]any {
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"price":  map[string]any{"type": "number"},
				"seller": map[string]any{"type": "string"},
				"url":    map[string]any{"type": "string"},
				"title":  map[string]any{"type": "string"},
			},
			"required": []string{"price", "seller", "url"},
		},
	}
}

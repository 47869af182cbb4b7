package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// ErrNoAPIKey is returned when a SerpAPI operation runs without a configured
// key. Routes backed by SerpAPI treat it like any other upstream failure.
var ErrNoAPIKey = errors.New("serpapi: api key not configured")

// SerpAPI adapts the SerpAPI Google Finance engines.
type SerpAPI struct {
	client  *Client
	baseURL string
	apiKey  string
}

// NewSerpAPI creates the SerpAPI adapter.
func NewSerpAPI(client *Client, baseURL, apiKey string) *SerpAPI {
	return &SerpAPI{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// Markets fetches the google_finance_markets index trends.
func (serpAPI *SerpAPI) Markets(ctx context.Context) ([]map[string]interface{}, error) {
	if serpAPI.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	var payload struct {
		MarketTrends []map[string]interface{} `json:"market_trends"`
		Error        string                   `json:"error"`
	}

	requestURL := fmt.Sprintf("%s?engine=google_finance_markets&trend=indexes&api_key=%s", serpAPI.baseURL, url.QueryEscape(serpAPI.apiKey))
	if fetchError := serpAPI.client.GetJSON(ctx, "SerpAPI", requestURL, nil, &payload); fetchError != nil {
		return nil, fetchError
	}
	if payload.Error != "" {
		return nil, &UpstreamError{Provider: "SerpAPI", Err: errors.New(payload.Error)}
	}
	return payload.MarketTrends, nil
}

// FinanceQuote fetches google_finance quotes for one query (e.g. "TCS:NSE").
func (serpAPI *SerpAPI) FinanceQuote(ctx context.Context, query string) ([]map[string]interface{}, error) {
	if serpAPI.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	var payload struct {
		Quotes []map[string]interface{} `json:"quotes"`
		Error  string                   `json:"error"`
	}

	requestURL := fmt.Sprintf("%s?engine=google_finance&q=%s&api_key=%s", serpAPI.baseURL, url.QueryEscape(query), url.QueryEscape(serpAPI.apiKey))
	if fetchError := serpAPI.client.GetJSON(ctx, "SerpAPI", requestURL, nil, &payload); fetchError != nil {
		return nil, fetchError
	}
	if payload.Error != "" {
		return nil, &UpstreamError{Provider: "SerpAPI", Err: errors.New(payload.Error)}
	}
	return payload.Quotes, nil
}

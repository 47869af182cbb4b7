// Package upstream holds one HTTP adapter per third-party provider. Adapters
// perform exactly one network call per invocation, never retry and never
// cache; retries and fallbacks are the caller's responsibility.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// UpstreamError represents a failed provider call. Status is zero when the
// failure happened before a response arrived (network error, timeout).
type UpstreamError struct {
	Provider string
	Status   int
	Err      error
}

func (upstreamError *UpstreamError) Error() string {
	if upstreamError.Status != 0 {
		return fmt.Sprintf("%s returned status %d", upstreamError.Provider, upstreamError.Status)
	}
	return fmt.Sprintf("%s request failed: %v", upstreamError.Provider, upstreamError.Err)
}

func (upstreamError *UpstreamError) Unwrap() error {
	return upstreamError.Err
}

// browserHeaders imitates a desktop browser; NSE and StockEdge reject
// requests without them.
var browserHeaders = map[string]string{
	"Accept":          "application/json",
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Accept-Language": "en-US,en;q=0.9",
	"Connection":      "keep-alive",
}

// Client is the shared HTTP client for all adapters, with an explicit
// request timeout and a tuned transport.
type Client struct {
	httpClient *http.Client
}

// NewClient creates the shared upstream HTTP client.
func NewClient(timeout time.Duration) *Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 3 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		ForceAttemptHTTP2:     true,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   3 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// GetJSON issues one GET against rawURL and decodes the body into out.
// extraHeaders are applied on top of the browser header set.
func (client *Client) GetJSON(ctx context.Context, provider, rawURL string, extraHeaders map[string]string, out interface{}) error {
	request, requestError := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if requestError != nil {
		return &UpstreamError{Provider: provider, Err: fmt.Errorf("failed to create request: %w", requestError)}
	}

	for key, value := range browserHeaders {
		request.Header.Set(key, value)
	}
	for key, value := range extraHeaders {
		request.Header.Set(key, value)
	}

	response, responseError := client.httpClient.Do(request)
	if responseError != nil {
		return &UpstreamError{Provider: provider, Err: responseError}
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return &UpstreamError{Provider: provider, Status: response.StatusCode}
	}

	body, readError := io.ReadAll(response.Body)
	if readError != nil {
		return &UpstreamError{Provider: provider, Err: fmt.Errorf("failed to read response body: %w", readError)}
	}

	if unmarshalError := json.Unmarshal(body, out); unmarshalError != nil {
		return &UpstreamError{Provider: provider, Err: fmt.Errorf("failed to parse response: %w", unmarshalError)}
	}

	return nil
}

// Package testutils provides shared helpers for package tests: a quiet
// logger, a config wired to a mock upstream server, and a counting HTTP
// server that plays all five providers.
package testutils

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"stock-market-api/internal/config"
	"stock-market-api/internal/logger"
)

// MockLogger creates a quiet logger for testing
func MockLogger() *logger.Logger {
	return logger.New("error")
}

// MockConfig creates a configuration pointing every provider at serverURL.
func MockConfig(serverURL string) *config.Config {
	return &config.Config{
		Port:     "8081",
		LogLevel: "error",

		NSEBaseURL:       serverURL,
		NSEQuoteAPIURL:   serverURL + "/api",
		BSEBaseURL:       serverURL,
		StockEdgeBaseURL: serverURL,
		SerpAPIBaseURL:   serverURL + "/search.json",
		SerpAPIKey:       "test-api-key",
		YahooBaseURL:     serverURL,
		UpstreamTimeout:  5 * time.Second,

		QuoteCacheTTL:   60 * time.Second,
		IndicesCacheTTL: 300 * time.Second,

		SnapshotInterval: 15 * time.Minute,
		SnapshotFile:     "data/corporate_announcements.json",

		RateLimitEnabled:  false,
		RateLimitRequests: 100,
		RateLimitWindow:   900 * time.Second,
	}
}

// UpstreamServer is a counting mock of the provider APIs. Each registered
// path serves a fixed body; everything else answers 404.
type UpstreamServer struct {
	Server *httptest.Server

	mutex     sync.Mutex
	responses map[string]string
	statuses  map[string]int
	counts    map[string]int
}

// NewUpstreamServer starts an empty mock upstream.
func NewUpstreamServer() *UpstreamServer {
	upstreamServer := &UpstreamServer{
		responses: make(map[string]string),
		statuses:  make(map[string]int),
		counts:    make(map[string]int),
	}

	upstreamServer.Server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		upstreamServer.mutex.Lock()
		upstreamServer.counts[request.URL.Path]++
		body, hasBody := upstreamServer.responses[request.URL.Path]
		status, hasStatus := upstreamServer.statuses[request.URL.Path]
		upstreamServer.mutex.Unlock()

		if hasStatus {
			writer.WriteHeader(status)
			return
		}
		if !hasBody {
			writer.WriteHeader(http.StatusNotFound)
			return
		}

		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(body))
	}))

	return upstreamServer
}

// Handle registers a JSON body for a path.
func (upstreamServer *UpstreamServer) Handle(path, body string) {
	upstreamServer.mutex.Lock()
	defer upstreamServer.mutex.Unlock()
	upstreamServer.responses[path] = body
	delete(upstreamServer.statuses, path)
}

// HandleStatus makes a path answer with a bare status code.
func (upstreamServer *UpstreamServer) HandleStatus(path string, status int) {
	upstreamServer.mutex.Lock()
	defer upstreamServer.mutex.Unlock()
	upstreamServer.statuses[path] = status
}

// Count reports how many requests a path has received.
func (upstreamServer *UpstreamServer) Count(path string) int {
	upstreamServer.mutex.Lock()
	defer upstreamServer.mutex.Unlock()
	return upstreamServer.counts[path]
}

// URL returns the mock server's base URL.
func (upstreamServer *UpstreamServer) URL() string {
	return upstreamServer.Server.URL
}

// Close shuts the mock server down.
func (upstreamServer *UpstreamServer) Close() {
	upstreamServer.Server.Close()
}

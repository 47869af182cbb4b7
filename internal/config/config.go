package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Port     string
	LogLevel string

	// Upstream providers
	NSEBaseURL       string
	NSEQuoteAPIURL   string
	BSEBaseURL       string
	StockEdgeBaseURL string
	SerpAPIBaseURL   string
	SerpAPIKey       string
	YahooBaseURL     string
	UpstreamTimeout  time.Duration

	// Response caching
	QuoteCacheTTL   time.Duration
	IndicesCacheTTL time.Duration

	// Snapshot job
	SnapshotInterval time.Duration
	SnapshotFile     string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", "3000"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		NSEBaseURL:       getEnv("NSE_BASE_URL", "https://www.nseindia.com"),
		NSEQuoteAPIURL:   getEnv("NSE_QUOTE_API_URL", "https://www.nseindia.com/api"),
		BSEBaseURL:       getEnv("BSE_BASE_URL", "https://api.bseindia.com"),
		StockEdgeBaseURL: getEnv("STOCKEDGE_BASE_URL", "https://api.stockedge.com/Api"),
		SerpAPIBaseURL:   getEnv("SERPAPI_BASE_URL", "https://serpapi.com/search.json"),
		SerpAPIKey:       getEnv("SERPAPI_API_KEY", ""),
		YahooBaseURL:     getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
		UpstreamTimeout:  time.Duration(mustAtoi(getEnv("UPSTREAM_TIMEOUT_SECONDS", "10"))) * time.Second,

		QuoteCacheTTL:   time.Duration(mustAtoi(getEnv("QUOTE_CACHE_TTL_SECONDS", "60"))) * time.Second,
		IndicesCacheTTL: time.Duration(mustAtoi(getEnv("INDICES_CACHE_TTL_SECONDS", "300"))) * time.Second,

		SnapshotInterval: time.Duration(mustAtoi(getEnv("SNAPSHOT_INTERVAL_MINUTES", "15"))) * time.Minute,
		SnapshotFile:     getEnv("SNAPSHOT_FILE", "data/corporate_announcements.json"),

		RateLimitEnabled:  getEnv("RATE_LIMIT_ENABLED", "true") == "true",
		RateLimitRequests: mustAtoi(getEnv("RATE_LIMIT_REQUESTS", "100")),
		RateLimitWindow:   time.Duration(mustAtoi(getEnv("RATE_LIMIT_WINDOW_SECONDS", "900"))) * time.Second,
	}, nil
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func mustAtoi(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 60
	}
	return i
}

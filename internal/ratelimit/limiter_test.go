package ratelimit

import (
	"testing"
	"time"

	"stock-market-api/internal/config"
	"stock-market-api/internal/logger"
)

func testConfig(requests int, window time.Duration) *config.Config {
	return &config.Config{
		RateLimitEnabled:  true,
		RateLimitRequests: requests,
		RateLimitWindow:   window,
	}
}

func TestLimiterAllowsUpToLimit(t *testing.T) {
	rateLimiter := NewLimiter(testConfig(3, time.Hour), logger.New("error"))

	for request := 0; request < 3; request++ {
		if !rateLimiter.Allow() {
			t.Fatalf("Expected request %d to be allowed", request+1)
		}
	}

	if rateLimiter.Allow() {
		t.Error("Expected request over the limit to be rejected")
	}
	if remaining := rateLimiter.Remaining(); remaining != 0 {
		t.Errorf("Expected 0 remaining, got %d", remaining)
	}
}

func TestLimiterWindowReset(t *testing.T) {
	rateLimiter := NewLimiter(testConfig(1, 20*time.Millisecond), logger.New("error"))

	if !rateLimiter.Allow() {
		t.Fatal("Expected first request to be allowed")
	}
	if rateLimiter.Allow() {
		t.Fatal("Expected second request in the same window to be rejected")
	}

	time.Sleep(30 * time.Millisecond)

	if !rateLimiter.Allow() {
		t.Error("Expected request in a fresh window to be allowed")
	}
}

func TestLimiterDisabled(t *testing.T) {
	configuration := testConfig(1, time.Hour)
	configuration.RateLimitEnabled = false
	rateLimiter := NewLimiter(configuration, logger.New("error"))

	for request := 0; request < 10; request++ {
		if !rateLimiter.Allow() {
			t.Fatal("Expected every request to be allowed when limiting is disabled")
		}
	}
}

func TestLimiterRemaining(t *testing.T) {
	rateLimiter := NewLimiter(testConfig(5, time.Hour), logger.New("error"))

	if remaining := rateLimiter.Remaining(); remaining != 5 {
		t.Errorf("Expected 5 remaining before any request, got %d", remaining)
	}

	rateLimiter.Allow()
	rateLimiter.Allow()

	if remaining := rateLimiter.Remaining(); remaining != 3 {
		t.Errorf("Expected 3 remaining after two requests, got %d", remaining)
	}
}

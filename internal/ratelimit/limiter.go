package ratelimit

import (
	"sync"
	"time"

	"stock-market-api/internal/config"
	"stock-market-api/internal/logger"
)

// Limiter is a process-wide fixed-window rate limiter. It admits or rejects
// requests before they reach cache or adapter logic; there is no per-client
// state.
type Limiter struct {
	Configuration *config.Config
	logger        *logger.Logger

	windowMutex  sync.Mutex
	windowStart  time.Time
	requestCount int
}

// NewLimiter creates a new rate limiter
func NewLimiter(configuration *config.Config, logger *logger.Logger) *Limiter {
	return &Limiter{
		Configuration: configuration,
		logger:        logger,
		windowStart:   time.Now(),
	}
}

// Allow reports whether another request is admitted in the current window.
func (rateLimiter *Limiter) Allow() bool {
	if !rateLimiter.Configuration.RateLimitEnabled {
		return true
	}

	rateLimiter.windowMutex.Lock()
	defer rateLimiter.windowMutex.Unlock()

	currentTime := time.Now()
	if currentTime.Sub(rateLimiter.windowStart) >= rateLimiter.Configuration.RateLimitWindow {
		rateLimiter.windowStart = currentTime
		rateLimiter.requestCount = 0
	}

	if rateLimiter.requestCount >= rateLimiter.Configuration.RateLimitRequests {
		return false
	}

	rateLimiter.requestCount++
	return true
}

// Remaining returns how many requests the current window still admits.
func (rateLimiter *Limiter) Remaining() int {
	rateLimiter.windowMutex.Lock()
	defer rateLimiter.windowMutex.Unlock()

	if time.Since(rateLimiter.windowStart) >= rateLimiter.Configuration.RateLimitWindow {
		return rateLimiter.Configuration.RateLimitRequests
	}

	remaining := rateLimiter.Configuration.RateLimitRequests - rateLimiter.requestCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// WindowReset returns when the current window ends.
func (rateLimiter *Limiter) WindowReset() time.Time {
	rateLimiter.windowMutex.Lock()
	defer rateLimiter.windowMutex.Unlock()

	return rateLimiter.windowStart.Add(rateLimiter.Configuration.RateLimitWindow)
}

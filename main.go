package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"stock-market-api/internal/api"
	"stock-market-api/internal/cache"
	"stock-market-api/internal/config"
	"stock-market-api/internal/logger"
	"stock-market-api/internal/ratelimit"
	"stock-market-api/internal/resolver"
	"stock-market-api/internal/snapshot"
	"stock-market-api/internal/upstream"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	// Initialize shared infrastructure
	responseCache := cache.New()

	var rateLimiter *ratelimit.Limiter
	if cfg.RateLimitEnabled {
		rateLimiter = ratelimit.NewLimiter(cfg, logger)
	}

	// Initialize upstream adapters
	upstreamClient := upstream.NewClient(cfg.UpstreamTimeout)
	nse := upstream.NewNSE(upstreamClient, cfg.NSEBaseURL, cfg.NSEQuoteAPIURL)
	bse := upstream.NewBSE(upstreamClient, cfg.BSEBaseURL)
	stockEdge := upstream.NewStockEdge(upstreamClient, cfg.StockEdgeBaseURL)
	serpAPI := upstream.NewSerpAPI(upstreamClient, cfg.SerpAPIBaseURL, cfg.SerpAPIKey)
	yahoo := upstream.NewYahoo(upstreamClient, cfg.YahooBaseURL)

	// Initialize failover resolvers
	quoteResolver := resolver.NewQuoteResolver(nse, yahoo, serpAPI, logger)
	trendsResolver := resolver.NewTrendsResolver(nse, serpAPI, logger)

	// Initialize the corporate-announcements snapshot job
	snapshotStore, err := snapshot.NewStore(cfg.SnapshotFile)
	if err != nil {
		logger.Fatalf("Failed to initialize snapshot store: %v", err)
	}
	snapshotJob := snapshot.NewJob(snapshotStore, stockEdge.CorporateAnnouncements, logger)
	if err := snapshotJob.Start(cfg.SnapshotInterval.String()); err != nil {
		logger.Fatalf("Failed to start snapshot job: %v", err)
	}

	// Initialize HTTP handlers
	handlerConfig := api.HandlerConfig{
		Logger:         logger,
		Configuration:  cfg,
		Cache:          responseCache,
		RateLimiter:    rateLimiter,
		NSE:            nse,
		BSE:            bse,
		StockEdge:      stockEdge,
		SerpAPI:        serpAPI,
		SnapshotJob:    snapshotJob,
		QuoteResolver:  quoteResolver,
		TrendsResolver: trendsResolver,
	}
	handlers := api.NewHandlers(handlerConfig)

	// Setup Gin router
	router := handlers.SetupRoutes()

	// Setup HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting stock market API on port " + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for an interrupt or termination signal
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-shutdownCtx.Done()

	logger.Info("Shutting down server...")

	// Stop background work
	snapshotJob.Stop()
	responseCache.Stop()

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}

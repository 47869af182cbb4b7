package api

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"stock-market-api/internal/cache"
	"stock-market-api/internal/config"
	"stock-market-api/internal/logger"
	"stock-market-api/internal/middleware"
	"stock-market-api/internal/models"
	"stock-market-api/internal/ratelimit"
	"stock-market-api/internal/resolver"
	"stock-market-api/internal/snapshot"
	"stock-market-api/internal/upstream"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	logger        *logger.Logger
	configuration *config.Config
	responseCache *cache.Cache
	rateLimiter   *ratelimit.Limiter

	nse            *upstream.NSE
	bse            *upstream.BSE
	stockEdge      *upstream.StockEdge
	serpAPI        *upstream.SerpAPI
	snapshotJob    *snapshot.Job
	quoteResolver  *resolver.QuoteResolver
	trendsResolver *resolver.TrendsResolver

	startTime time.Time
	now       func() time.Time
}

// HandlerConfig bundles the handlers' dependencies.
type HandlerConfig struct {
	Logger         *logger.Logger
	Configuration  *config.Config
	Cache          *cache.Cache
	RateLimiter    *ratelimit.Limiter
	NSE            *upstream.NSE
	BSE            *upstream.BSE
	StockEdge      *upstream.StockEdge
	SerpAPI        *upstream.SerpAPI
	SnapshotJob    *snapshot.Job
	QuoteResolver  *resolver.QuoteResolver
	TrendsResolver *resolver.TrendsResolver
}

// NewHandlers creates a new handlers instance
func NewHandlers(handlerConfig HandlerConfig) *Handlers {
	return &Handlers{
		logger:         handlerConfig.Logger,
		configuration:  handlerConfig.Configuration,
		responseCache:  handlerConfig.Cache,
		rateLimiter:    handlerConfig.RateLimiter,
		nse:            handlerConfig.NSE,
		bse:            handlerConfig.BSE,
		stockEdge:      handlerConfig.StockEdge,
		serpAPI:        handlerConfig.SerpAPI,
		snapshotJob:    handlerConfig.SnapshotJob,
		quoteResolver:  handlerConfig.QuoteResolver,
		trendsResolver: handlerConfig.TrendsResolver,
		startTime:      time.Now(),
		now:            time.Now,
	}
}

// SetupRoutes configures all the routes using Gin
func (handlers *Handlers) SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(middleware.RequestLogger(handlers.logger))
	router.Use(gin.CustomRecovery(func(ginContext *gin.Context, recovered interface{}) {
		handlers.logger.Errorf("Panic recovered: %v", recovered)
		ginContext.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Something broke!"})
	}))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestID())
	router.Use(handlers.corsMiddleware())

	if handlers.rateLimiter != nil {
		router.Use(handlers.rateLimitMiddleware())
	}

	quoteTTL := handlers.configuration.QuoteCacheTTL
	indicesTTL := handlers.configuration.IndicesCacheTTL

	router.GET("/health", handlers.HealthCheck)

	// NSE routes
	router.GET("/get_market_status", middleware.CacheByURL(handlers.responseCache, quoteTTL), handlers.GetMarketStatus)
	router.GET("/nse/get_indices", middleware.CacheByURL(handlers.responseCache, indicesTTL), handlers.GetNSEIndices)
	router.GET("/nse/get_quote_info", middleware.CacheByURL(handlers.responseCache, quoteTTL), handlers.GetNSEQuoteInfo)
	router.GET("/nse/search_stocks", handlers.SearchNSEStocks)
	router.GET("/nse/get_intra_day_data", middleware.CacheByURL(handlers.responseCache, quoteTTL), handlers.GetNSEIntraDayData)
	router.GET("/nse/get_gainers", handlers.GetNSEGainers)
	router.GET("/nse/get_losers", handlers.GetNSELosers)
	router.GET("/nse/get_incline_decline", handlers.GetNSEInclineDecline)
	router.GET("/nse/get_index_stocks", handlers.GetNSEIndexStocks)
	router.GET("/nse/get_52_week_high", handlers.GetNSE52WeekHigh)
	router.GET("/nse/get_52_week_low", handlers.GetNSE52WeekLow)

	// BSE routes
	router.GET("/bse/get_indices", handlers.GetBSEIndices)
	router.GET("/bse/getIndexInfo", handlers.GetBSEIndexInfo)
	router.GET("/bse/get_gainers", handlers.GetBSEGainers)
	router.GET("/bse/get_losers", handlers.GetBSELosers)
	router.GET("/bse/getTopTurnOvers", handlers.GetBSETopTurnovers)
	router.GET("/bse/get_company_info", handlers.GetBSECompanyInfo)

	// StockEdge routes
	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/stockedge/indices", handlers.GetStockEdgeIndices)
		apiGroup.GET("/stockedge/price-movers", handlers.GetStockEdgePriceMovers)
		apiGroup.GET("/stockedge/index-gainers", handlers.GetStockEdgeIndexGainers)
		apiGroup.GET("/stockedge/trending-stocks", handlers.GetStockEdgeTrendingStocks)
		apiGroup.GET("/stockedge/most-visited", handlers.GetStockEdgeMostVisited)
		apiGroup.GET("/stockedge/stock/:symbol", handlers.GetStockEdgeStock)
		apiGroup.GET("/stockedge/stock/:symbol/history", handlers.GetStockEdgeStockHistory)
		apiGroup.GET("/stockedge/insider-deals", handlers.GetStockEdgeInsiderDeals)
		apiGroup.GET("/stockedge/search", handlers.SearchStockEdge)
		apiGroup.GET("/stockedge/corporate-announcements", handlers.GetCorporateAnnouncements)
		apiGroup.GET("/nse/stock/:symbol", handlers.GetNSEStockDetail)
		apiGroup.GET("/finance/quote/:symbol", handlers.GetFinanceQuote)
		apiGroup.GET("/finance/trends", handlers.GetFinanceTrends)
	}

	// Google Finance markets via SerpAPI
	router.GET("/google_finance/markets", handlers.GetGoogleFinanceMarkets)

	// Unknown routes serve the static 404 page
	router.NoRoute(func(ginContext *gin.Context) {
		page, readError := os.ReadFile("public/404.html")
		if readError != nil {
			ginContext.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Not found"})
			return
		}
		ginContext.Data(http.StatusNotFound, "text/html; charset=utf-8", page)
	})

	return router
}

// HealthCheck handles health check requests
func (handlers *Handlers) HealthCheck(ginContext *gin.Context) {
	healthCheckResponse := models.HealthCheck{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(handlers.startTime).String(),
	}

	ginContext.JSON(http.StatusOK, healthCheckResponse)
}

// writeErrorResponse writes an error response using Gin context
func (handlers *Handlers) writeErrorResponse(ginContext *gin.Context, statusCode int, errorMessage string) {
	ginContext.JSON(statusCode, models.ErrorResponse{Error: errorMessage})
}

// corsMiddleware adds CORS headers using Gin middleware
func (handlers *Handlers) corsMiddleware() gin.HandlerFunc {
	return func(ginContext *gin.Context) {
		ginContext.Header("Access-Control-Allow-Origin", "*")
		ginContext.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		ginContext.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if ginContext.Request.Method == "OPTIONS" {
			ginContext.AbortWithStatus(http.StatusOK)
			return
		}

		ginContext.Next()
	}
}

// rateLimitMiddleware rejects requests over the process-wide window limit.
func (handlers *Handlers) rateLimitMiddleware() gin.HandlerFunc {
	return func(ginContext *gin.Context) {
		if !handlers.rateLimiter.Allow() {
			handlers.logger.Warn("Rate limit exceeded")
			ginContext.Header("X-RateLimit-Limit", strconv.Itoa(handlers.rateLimiter.Configuration.RateLimitRequests))
			ginContext.Header("X-RateLimit-Remaining", "0")
			ginContext.Header("X-RateLimit-Reset", strconv.FormatInt(handlers.rateLimiter.WindowReset().Unix(), 10))
			ginContext.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			ginContext.Abort()
			return
		}

		ginContext.Next()
	}
}

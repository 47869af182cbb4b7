package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stock-market-api/internal/fallback"
	"stock-market-api/internal/resolver"
)

// GetFinanceQuote resolves one quote across the provider failover chain.
// When every provider fails the route still answers 200 with synthetic data.
func (handlers *Handlers) GetFinanceQuote(ginContext *gin.Context) {
	symbol := strings.ToUpper(ginContext.Param("symbol"))

	resolved, resolveError := handlers.quoteResolver.Resolve(ginContext.Request.Context(), symbol)
	if resolveError != nil {
		if !errors.Is(resolveError, resolver.ErrAllProvidersFailed) {
			handlers.logger.Errorf("Quote resolution failed for %s: %v", symbol, resolveError)
		}
		ginContext.JSON(http.StatusOK, fallback.ResolvedQuote(symbol, handlers.now()))
		return
	}

	ginContext.JSON(http.StatusOK, resolved)
}

// GetFinanceTrends resolves market trends across the provider failover chain,
// answering synthetic trends when every provider fails.
func (handlers *Handlers) GetFinanceTrends(ginContext *gin.Context) {
	trends, resolveError := handlers.trendsResolver.Resolve(ginContext.Request.Context())
	if resolveError != nil {
		if !errors.Is(resolveError, resolver.ErrAllProvidersFailed) {
			handlers.logger.Errorf("Trend resolution failed: %v", resolveError)
		}
		ginContext.JSON(http.StatusOK, fallback.MarketTrends(handlers.now()))
		return
	}

	ginContext.JSON(http.StatusOK, trends)
}

// GetGoogleFinanceMarkets proxies the raw Google Finance market trends from
// SerpAPI. No fallback is defined for this route; failure surfaces as 500.
func (handlers *Handlers) GetGoogleFinanceMarkets(ginContext *gin.Context) {
	marketTrends, fetchError := handlers.serpAPI.Markets(ginContext.Request.Context())
	if fetchError != nil {
		handlers.logger.Errorf("Failed to fetch Google Finance markets: %v", fetchError)
		handlers.writeErrorResponse(ginContext, http.StatusInternalServerError, "Failed to fetch Google Finance Markets data")
		return
	}

	ginContext.JSON(http.StatusOK, gin.H{"markets": marketTrends})
}

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"stock-market-api/internal/fallback"
	"stock-market-api/internal/models"
	"stock-market-api/internal/normalize"
)

// GetStockEdgeIndices returns the normalized StockEdge index snapshot.
func (handlers *Handlers) GetStockEdgeIndices(ginContext *gin.Context) {
	const cacheKey = "stockedge-indices"
	if cached, isCached := handlers.responseCache.Get(cacheKey); isCached {
		ginContext.JSON(http.StatusOK, cached)
		return
	}

	raw, fetchError := handlers.stockEdge.IndexQuotes(ginContext.Request.Context())

	var payload []models.StockEdgeIndex
	if fetchError != nil || len(raw) == 0 {
		if fetchError != nil {
			handlers.logger.Errorf("Failed to fetch StockEdge indices: %v", fetchError)
		}
		payload = fallback.StockEdgeIndices()
	} else {
		payload = normalize.StockEdgeIndices(raw)
	}

	handlers.responseCache.Set(cacheKey, payload, handlers.configuration.IndicesCacheTTL)
	ginContext.JSON(http.StatusOK, payload)
}

// GetStockEdgePriceMovers returns the normalized top price movers.
func (handlers *Handlers) GetStockEdgePriceMovers(ginContext *gin.Context) {
	const cacheKey = "stockedge-price-movers"
	if cached, isCached := handlers.responseCache.Get(cacheKey); isCached {
		ginContext.JSON(http.StatusOK, cached)
		return
	}

	raw, fetchError := handlers.stockEdge.TopPriceMovers(ginContext.Request.Context())

	var payload []models.PriceMover
	if fetchError != nil || len(raw) == 0 {
		if fetchError != nil {
			handlers.logger.Errorf("Failed to fetch StockEdge price movers: %v", fetchError)
		}
		payload = fallback.PriceMovers()
	} else {
		payload = normalize.PriceMovers(raw)
	}

	handlers.responseCache.Set(cacheKey, payload, handlers.configuration.IndicesCacheTTL)
	ginContext.JSON(http.StatusOK, payload)
}

// GetStockEdgeIndexGainers returns the normalized gaining indices.
func (handlers *Handlers) GetStockEdgeIndexGainers(ginContext *gin.Context) {
	const cacheKey = "stockedge-index-gainers"
	if cached, isCached := handlers.responseCache.Get(cacheKey); isCached {
		ginContext.JSON(http.StatusOK, cached)
		return
	}

	raw, fetchError := handlers.stockEdge.IndexGainers(ginContext.Request.Context())

	var payload []models.StockEdgeIndex
	if fetchError != nil || len(raw) == 0 {
		if fetchError != nil {
			handlers.logger.Errorf("Failed to fetch StockEdge index gainers: %v", fetchError)
		}
		payload = fallback.IndexGainers()
	} else {
		payload = normalize.StockEdgeIndices(raw)
	}

	handlers.responseCache.Set(cacheKey, payload, handlers.configuration.IndicesCacheTTL)
	ginContext.JSON(http.StatusOK, payload)
}

// GetStockEdgeTrendingStocks returns the normalized trending stocks list.
func (handlers *Handlers) GetStockEdgeTrendingStocks(ginContext *gin.Context) {
	const cacheKey = "stockedge-trending-stocks"
	if cached, isCached := handlers.responseCache.Get(cacheKey); isCached {
		ginContext.JSON(http.StatusOK, cached)
		return
	}

	raw, fetchError := handlers.stockEdge.TrendingStocks(ginContext.Request.Context())

	var payload []models.TrendingStock
	if fetchError != nil || len(raw) == 0 {
		if fetchError != nil {
			handlers.logger.Errorf("Failed to fetch StockEdge trending stocks: %v", fetchError)
		}
		payload = fallback.TrendingStocks()
	} else {
		payload = normalize.TrendingStocks(raw)
	}

	handlers.responseCache.Set(cacheKey, payload, handlers.configuration.IndicesCacheTTL)
	ginContext.JSON(http.StatusOK, payload)
}

// GetStockEdgeMostVisited returns the normalized most-visited stocks list.
func (handlers *Handlers) GetStockEdgeMostVisited(ginContext *gin.Context) {
	const cacheKey = "stockedge-most-visited"
	if cached, isCached := handlers.responseCache.Get(cacheKey); isCached {
		ginContext.JSON(http.StatusOK, cached)
		return
	}

	raw, fetchError := handlers.stockEdge.MostVisited(ginContext.Request.Context())

	var payload []models.VisitedStock
	if fetchError != nil || len(raw) == 0 {
		if fetchError != nil {
			handlers.logger.Errorf("Failed to fetch StockEdge most visited: %v", fetchError)
		}
		payload = fallback.MostVisited()
	} else {
		payload = normalize.MostVisited(raw)
	}

	handlers.responseCache.Set(cacheKey, payload, handlers.configuration.IndicesCacheTTL)
	ginContext.JSON(http.StatusOK, payload)
}

// GetStockEdgeStock returns one normalized stock quote.
func (handlers *Handlers) GetStockEdgeStock(ginContext *gin.Context) {
	symbol := strings.ToUpper(ginContext.Param("symbol"))
	cacheKey := "stockedge-stock-" + symbol
	if cached, isCached := handlers.responseCache.Get(cacheKey); isCached {
		ginContext.JSON(http.StatusOK, cached)
		return
	}

	raw, fetchError := handlers.stockEdge.StockQuotes(ginContext.Request.Context(), symbol)

	var payload models.StockQuote
	if fetchError != nil || len(raw) == 0 {
		if fetchError != nil {
			handlers.logger.Errorf("Failed to fetch StockEdge quote for %s: %v", symbol, fetchError)
		}
		payload = fallback.StockQuote(symbol)
	} else {
		payload = normalize.StockEdgeQuote(raw[0])
	}

	handlers.responseCache.Set(cacheKey, payload, handlers.configuration.IndicesCacheTTL)
	ginContext.JSON(http.StatusOK, payload)
}

// GetStockEdgeStockHistory returns normalized historical bars for a symbol.
func (handlers *Handlers) GetStockEdgeStockHistory(ginContext *gin.Context) {
	symbol := strings.ToUpper(ginContext.Param("symbol"))
	timeframe := ginContext.DefaultQuery("timeframe", "1D")

	cacheKey := "stockedge-stock-history-" + symbol + "-" + timeframe
	if cached, isCached := handlers.responseCache.Get(cacheKey); isCached {
		ginContext.JSON(http.StatusOK, cached)
		return
	}

	raw, fetchError := handlers.stockEdge.History(ginContext.Request.Context(), symbol, timeframe)

	var payload []models.HistoryBar
	if fetchError != nil || len(raw) == 0 {
		if fetchError != nil {
			handlers.logger.Errorf("Failed to fetch StockEdge history for %s: %v", symbol, fetchError)
		}
		payload = fallback.History(symbol, timeframe, handlers.now())
	} else {
		payload = normalize.History(raw)
	}

	handlers.responseCache.Set(cacheKey, payload, handlers.configuration.IndicesCacheTTL)
	ginContext.JSON(http.StatusOK, payload)
}

// GetStockEdgeInsiderDeals returns a page of normalized insider deals.
func (handlers *Handlers) GetStockEdgeInsiderDeals(ginContext *gin.Context) {
	exchange := strings.ToUpper(ginContext.DefaultQuery("exchange", "BSE"))
	exchangeCode := 2
	if exchange == "NSE" {
		exchangeCode = 1
	}

	page, pageError := strconv.Atoi(ginContext.DefaultQuery("page", "1"))
	if pageError != nil || page < 1 {
		page = 1
	}
	pageSize, sizeError := strconv.Atoi(ginContext.DefaultQuery("pageSize", "10"))
	if sizeError != nil || pageSize < 1 {
		pageSize = 10
	}
	transactionType := ginContext.Query("transactionType")
	dealMode := ginContext.Query("dealMode")

	cacheKey := fmt.Sprintf("stockedge-insider-deals-%d-%d-%d-%s-%s", exchangeCode, page, pageSize, transactionType, dealMode)
	if cached, isCached := handlers.responseCache.Get(cacheKey); isCached {
		ginContext.JSON(http.StatusOK, cached)
		return
	}

	raw, fetchError := handlers.stockEdge.InsiderDeals(ginContext.Request.Context(), exchangeCode, page, pageSize, transactionType, dealMode)

	var payload models.InsiderDealsPage
	if fetchError != nil || len(raw) == 0 {
		if fetchError != nil {
			handlers.logger.Errorf("Failed to fetch StockEdge insider deals: %v", fetchError)
		}
		payload = fallback.InsiderDeals()
	} else {
		payload = normalize.InsiderDeals(raw)
	}

	handlers.responseCache.Set(cacheKey, payload, handlers.configuration.IndicesCacheTTL)
	ginContext.JSON(http.StatusOK, payload)
}

// SearchStockEdge returns normalized security matches for a query.
func (handlers *Handlers) SearchStockEdge(ginContext *gin.Context) {
	query := strings.TrimSpace(ginContext.Query("q"))
	cacheKey := "stockedge-search-" + query
	if cached, isCached := handlers.responseCache.Get(cacheKey); isCached {
		ginContext.JSON(http.StatusOK, cached)
		return
	}

	raw, fetchError := handlers.stockEdge.Search(ginContext.Request.Context(), query)

	var payload []models.SearchResult
	if fetchError != nil || len(raw) == 0 {
		if fetchError != nil {
			handlers.logger.Errorf("Failed to search StockEdge for %s: %v", query, fetchError)
		}
		payload = fallback.SearchResults()
	} else {
		payload = normalize.SearchResults(raw)
	}

	handlers.responseCache.Set(cacheKey, payload, handlers.configuration.IndicesCacheTTL)
	ginContext.JSON(http.StatusOK, payload)
}

// GetCorporateAnnouncements serves one page of the stored announcements
// snapshot. The snapshot job owns freshness; this handler only paginates.
func (handlers *Handlers) GetCorporateAnnouncements(ginContext *gin.Context) {
	page, pageError := strconv.Atoi(ginContext.DefaultQuery("page", "1"))
	if pageError != nil || page < 1 {
		page = 1
	}
	pageSize, sizeError := strconv.Atoi(ginContext.DefaultQuery("pageSize", "19"))
	if sizeError != nil || pageSize < 1 {
		pageSize = 19
	}

	records, fetchError := handlers.snapshotJob.Announcements(ginContext.Request.Context())
	if fetchError != nil {
		handlers.logger.Errorf("Failed to fetch corporate announcements: %v", fetchError)
		ginContext.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to fetch corporate announcements",
			Details: fetchError.Error(),
		})
		return
	}

	total := len(records)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	ginContext.JSON(http.StatusOK, models.AnnouncementsPage{
		Data:       records[start:end],
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

// GetNSEStockDetail returns the normalized full quotation for one NSE symbol.
func (handlers *Handlers) GetNSEStockDetail(ginContext *gin.Context) {
	symbol := strings.ToUpper(ginContext.Param("symbol"))
	cacheKey := "nse-stock-" + symbol
	if cached, isCached := handlers.responseCache.Get(cacheKey); isCached {
		ginContext.JSON(http.StatusOK, cached)
		return
	}

	raw, fetchError := handlers.nse.QuoteEquity(ginContext.Request.Context(), symbol)

	var payload models.QuoteDetail
	if fetchError != nil || len(raw) == 0 {
		if fetchError != nil {
			handlers.logger.Errorf("Failed to fetch NSE stock detail for %s: %v", symbol, fetchError)
		}
		payload = fallback.QuoteDetail(symbol)
	} else {
		payload = normalize.QuoteDetail(symbol, raw)
	}

	handlers.responseCache.Set(cacheKey, payload, handlers.configuration.IndicesCacheTTL)
	ginContext.JSON(http.StatusOK, payload)
}

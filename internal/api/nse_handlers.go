package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"stock-market-api/internal/fallback"
	"stock-market-api/internal/models"
	"stock-market-api/internal/normalize"
)

func marketStatusBody(status string, currentTime time.Time, nextOpen *string) models.MarketStatus {
	return models.MarketStatus{
		MarketStatus: status,
		LastUpdated:  currentTime.UTC().Format(time.RFC3339),
		NextOpen:     nextOpen,
	}
}

// GetMarketStatus reports whether the market is open, computed from the
// local clock (weekend plus 09:00-15:59 trading window). The upstream call
// only decides whether the degraded path is logged; both paths return 200.
func (handlers *Handlers) GetMarketStatus(ginContext *gin.Context) {
	requestContext := ginContext.Request.Context()
	currentTime := handlers.now()

	_, fetchError := handlers.nse.MarketStatus(requestContext)
	if fetchError != nil {
		handlers.logger.Warnf("Market status upstream failed, using local clock: %v", fetchError)
		nextOpen := nextMarketOpen(currentTime)
		ginContext.JSON(http.StatusOK, marketStatusBody("CLOSED", currentTime, &nextOpen))
		return
	}

	weekend := isWeekend(currentTime)
	marketHours := currentTime.Hour() >= 9 && currentTime.Hour() <= 15

	status := "CLOSED"
	if !weekend && marketHours {
		status = "OPEN"
	}

	var nextOpen *string
	if weekend {
		computed := nextMarketOpen(currentTime)
		nextOpen = &computed
	}

	ginContext.JSON(http.StatusOK, marketStatusBody(status, currentTime, nextOpen))
}

// GetNSEIndices returns the normalized index watch, sorted by volume.
func (handlers *Handlers) GetNSEIndices(ginContext *gin.Context) {
	requestContext := ginContext.Request.Context()

	raw, fetchError := handlers.nse.Indices(requestContext)
	if fetchError != nil || len(raw) == 0 {
		if fetchError != nil {
			handlers.logger.Errorf("Failed to fetch NSE indices: %v", fetchError)
		}
		ginContext.JSON(http.StatusOK, fallback.Indices(handlers.now()))
		return
	}

	ginContext.JSON(http.StatusOK, normalize.Indices(raw, handlers.now()))
}

// GetNSEQuoteInfo proxies the raw quotation payload for one company. No
// fallback is defined for this route; upstream failure surfaces as 500.
func (handlers *Handlers) GetNSEQuoteInfo(ginContext *gin.Context) {
	requestContext := ginContext.Request.Context()
	companyName := ginContext.Query("companyName")

	raw, fetchError := handlers.nse.QuoteInfo(requestContext, companyName)
	if fetchError != nil {
		handlers.logger.Errorf("Failed to fetch quote info for %s: %v", companyName, fetchError)
		handlers.writeErrorResponse(ginContext, http.StatusInternalServerError, "Failed to fetch quote info")
		return
	}

	ginContext.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

// SearchNSEStocks returns normalized matches for a keyword, sorted by market
// cap descending.
func (handlers *Handlers) SearchNSEStocks(ginContext *gin.Context) {
	keyword := strings.ToUpper(strings.TrimSpace(ginContext.Query("keyword")))
	if keyword == "" {
		handlers.writeErrorResponse(ginContext, http.StatusBadRequest, "Please provide a search keyword")
		return
	}

	requestContext := ginContext.Request.Context()

	raw, fetchError := handlers.nse.SearchStocks(requestContext, keyword)
	if fetchError != nil || len(raw) == 0 {
		if fetchError != nil {
			handlers.logger.Errorf("Failed to search stocks for %s: %v", keyword, fetchError)
		}
		ginContext.JSON(http.StatusOK, fallback.SearchStocks(handlers.now()))
		return
	}

	ginContext.JSON(http.StatusOK, normalize.SearchStocks(raw, handlers.now()))
}

// GetNSEIntraDayData returns normalized intraday samples for one company,
// sorted by time.
func (handlers *Handlers) GetNSEIntraDayData(ginContext *gin.Context) {
	companyName := strings.ToUpper(strings.TrimSpace(ginContext.Query("companyName")))
	if companyName == "" {
		handlers.writeErrorResponse(ginContext, http.StatusBadRequest, "Please provide a company name")
		return
	}
	timeParam := ginContext.DefaultQuery("time", "1")

	requestContext := ginContext.Request.Context()

	raw, fetchError := handlers.nse.IntraDay(requestContext, companyName, timeParam)
	if fetchError != nil || len(raw) == 0 {
		if fetchError != nil {
			handlers.logger.Errorf("Failed to fetch intraday data for %s: %v", companyName, fetchError)
		}
		ginContext.JSON(http.StatusOK, fallback.IntradaySeries(companyName, handlers.now()))
		return
	}

	ginContext.JSON(http.StatusOK, normalize.Intraday(raw, handlers.now()))
}

// passthroughHandler proxies a raw upstream payload, surfacing failures as
// 500 with a structured error body.
func (handlers *Handlers) passthroughHandler(ginContext *gin.Context, errorMessage string, fetch func(ctx context.Context) (json.RawMessage, error)) {
	raw, fetchError := fetch(ginContext.Request.Context())
	if fetchError != nil {
		handlers.logger.Errorf("%s: %v", errorMessage, fetchError)
		handlers.writeErrorResponse(ginContext, http.StatusInternalServerError, errorMessage)
		return
	}

	ginContext.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

// GetNSEGainers proxies the NSE top gainers.
func (handlers *Handlers) GetNSEGainers(ginContext *gin.Context) {
	handlers.passthroughHandler(ginContext, "Failed to fetch gainers", handlers.nse.Gainers)
}

// GetNSELosers proxies the NSE top losers.
func (handlers *Handlers) GetNSELosers(ginContext *gin.Context) {
	handlers.passthroughHandler(ginContext, "Failed to fetch losers", handlers.nse.Losers)
}

// GetNSEInclineDecline proxies the NSE advances/declines payload.
func (handlers *Handlers) GetNSEInclineDecline(ginContext *gin.Context) {
	handlers.passthroughHandler(ginContext, "Failed to fetch incline decline data", handlers.nse.InclineDecline)
}

// GetNSEIndexStocks proxies the constituents of one NSE index.
func (handlers *Handlers) GetNSEIndexStocks(ginContext *gin.Context) {
	indexSlug := ginContext.Query("symbol")
	handlers.passthroughHandler(ginContext, "Failed to fetch index stocks", func(ctx context.Context) (json.RawMessage, error) {
		return handlers.nse.IndexStocks(ctx, indexSlug)
	})
}

// GetNSE52WeekHigh proxies the NSE 52-week-high payload.
func (handlers *Handlers) GetNSE52WeekHigh(ginContext *gin.Context) {
	handlers.passthroughHandler(ginContext, "Failed to fetch 52 week high stocks", handlers.nse.FiftyTwoWeekHigh)
}

// GetNSE52WeekLow proxies the NSE 52-week-low payload.
func (handlers *Handlers) GetNSE52WeekLow(ginContext *gin.Context) {
	handlers.passthroughHandler(ginContext, "Failed to fetch 52 week low stocks", handlers.nse.FiftyTwoWeekLow)
}

func isWeekend(currentTime time.Time) bool {
	return currentTime.Weekday() == time.Saturday || currentTime.Weekday() == time.Sunday
}

// nextMarketOpen computes the next 09:00 trading-day open after currentTime.
func nextMarketOpen(currentTime time.Time) string {
	nextOpen := time.Date(currentTime.Year(), currentTime.Month(), currentTime.Day(), 9, 0, 0, 0, currentTime.Location())

	if currentTime.Hour() >= 15 {
		nextOpen = nextOpen.AddDate(0, 0, 1)
	}

	switch nextOpen.Weekday() {
	case time.Sunday:
		nextOpen = nextOpen.AddDate(0, 0, 1)
	case time.Saturday:
		nextOpen = nextOpen.AddDate(0, 0, 2)
	}

	return nextOpen.UTC().Format(time.RFC3339)
}

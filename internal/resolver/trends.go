package resolver

import (
	"context"
	"time"

	"stock-market-api/internal/logger"
	"stock-market-api/internal/models"
	"stock-market-api/internal/normalize"
	"stock-market-api/internal/upstream"
)

// TrendsResolver serves market-trend records from NSE market state first,
// falling back to the SerpAPI Google Finance markets engine.
type TrendsResolver struct {
	nse     *upstream.NSE
	serpAPI *upstream.SerpAPI
	logger  *logger.Logger
}

// NewTrendsResolver creates the trends failover chain.
func NewTrendsResolver(nse *upstream.NSE, serpAPI *upstream.SerpAPI, logger *logger.Logger) *TrendsResolver {
	return &TrendsResolver{
		nse:     nse,
		serpAPI: serpAPI,
		logger:  logger,
	}
}

// Resolve returns the first non-empty trend set in priority order.
func (trendsResolver *TrendsResolver) Resolve(ctx context.Context) ([]models.MarketTrend, error) {
	marketState, nseError := trendsResolver.nse.MarketState(ctx)
	if nseError == nil {
		trends := normalize.MarketTrends(marketState, time.Now())
		if len(trends) > 0 {
			return trends, nil
		}
		trendsResolver.logger.Warn("NSE market state had no capital-market entries")
	} else {
		trendsResolver.logger.Warnf("NSE market state failed: %v", nseError)
	}

	marketTrends, serpError := trendsResolver.serpAPI.Markets(ctx)
	if serpError != nil {
		trendsResolver.logger.Warnf("SerpAPI markets failed: %v", serpError)
		return nil, ErrAllProvidersFailed
	}
	if len(marketTrends) == 0 {
		return nil, ErrAllProvidersFailed
	}
	return normalize.SerpMarketTrends(marketTrends, time.Now()), nil
}

// Package resolver tries quote providers in a fixed priority order and
// accepts the first response that passes that provider's usable-data
// predicate. Providers are never merged or cross-validated; the winning
// provider tags the result with its source identifier.
package resolver

import (
	"context"
	"errors"
	"time"

	"stock-market-api/internal/logger"
	"stock-market-api/internal/models"
	"stock-market-api/internal/normalize"
	"stock-market-api/internal/upstream"
)

// ErrAllProvidersFailed is returned when every provider either failed or
// produced unusable data. Callers fall through to the fallback generator.
var ErrAllProvidersFailed = errors.New("resolver: all providers failed")

// QuoteProvider is one source in the failover chain.
type QuoteProvider interface {
	Name() string
	Fetch(ctx context.Context, symbol string) (map[string]interface{}, error)
	Usable(raw map[string]interface{}) bool
	Normalize(symbol string, raw map[string]interface{}, now time.Time) models.ResolvedQuote
}

// QuoteResolver walks its providers in order for a single symbol.
type QuoteResolver struct {
	providers []QuoteProvider
	logger    *logger.Logger
}

// NewQuoteResolver builds the fixed-priority chain: NSE, then Yahoo, then
// SerpAPI Google Finance.
func NewQuoteResolver(nse *upstream.NSE, yahoo *upstream.Yahoo, serpAPI *upstream.SerpAPI, logger *logger.Logger) *QuoteResolver {
	return &QuoteResolver{
		providers: []QuoteProvider{
			&nseProvider{adapter: nse},
			&yahooProvider{adapter: yahoo},
			&serpProvider{adapter: serpAPI},
		},
		logger: logger,
	}
}

// Resolve returns the first usable quote in priority order. Later providers
// are never invoked once one succeeds.
func (quoteResolver *QuoteResolver) Resolve(ctx context.Context, symbol string) (models.ResolvedQuote, error) {
	for _, provider := range quoteResolver.providers {
		raw, fetchError := provider.Fetch(ctx, symbol)
		if fetchError != nil {
			quoteResolver.logger.Warnf("Provider %s failed for %s: %v", provider.Name(), symbol, fetchError)
			continue
		}
		if raw == nil || !provider.Usable(raw) {
			quoteResolver.logger.Warnf("Provider %s returned unusable data for %s", provider.Name(), symbol)
			continue
		}
		return provider.Normalize(symbol, raw, time.Now()), nil
	}
	return models.ResolvedQuote{}, ErrAllProvidersFailed
}

// nseProvider requires the nested priceInfo substructure.
type nseProvider struct {
	adapter *upstream.NSE
}

func (provider *nseProvider) Name() string { return "NSE" }

func (provider *nseProvider) Fetch(ctx context.Context, symbol string) (map[string]interface{}, error) {
	return provider.adapter.QuoteEquity(ctx, symbol)
}

func (provider *nseProvider) Usable(raw map[string]interface{}) bool {
	_, hasPriceInfo := raw["priceInfo"].(map[string]interface{})
	return hasPriceInfo
}

func (provider *nseProvider) Normalize(symbol string, raw map[string]interface{}, now time.Time) models.ResolvedQuote {
	info, _ := raw["info"].(map[string]interface{})
	priceInfo, _ := raw["priceInfo"].(map[string]interface{})
	highLow, _ := priceInfo["intraDayHighLow"].(map[string]interface{})

	return models.ResolvedQuote{
		Symbol:        symbol,
		Name:          normalize.String(info["companyName"], symbol),
		Price:         normalize.Float(priceInfo["lastPrice"]),
		Change:        normalize.Float(priceInfo["change"]),
		ChangePercent: normalize.Float(priceInfo["pChange"]),
		MarketCap:     normalize.Float(priceInfo["marketCap"]),
		Volume:        normalize.Int(priceInfo["totalTradedVolume"]),
		High:          normalize.Float(highLow["max"]),
		Low:           normalize.Float(highLow["min"]),
		Open:          normalize.Float(priceInfo["open"]),
		PreviousClose: normalize.Float(priceInfo["previousClose"]),
		Timestamp:     now.UTC().Format(time.RFC3339),
		Source:        "NSE",
	}
}

// yahooProvider requires a top-level regularMarketPrice field.
type yahooProvider struct {
	adapter *upstream.Yahoo
}

func (provider *yahooProvider) Name() string { return "Yahoo Finance" }

func (provider *yahooProvider) Fetch(ctx context.Context, symbol string) (map[string]interface{}, error) {
	return provider.adapter.Quote(ctx, symbol)
}

func (provider *yahooProvider) Usable(raw map[string]interface{}) bool {
	return normalize.Float(raw["regularMarketPrice"]) != 0
}

func (provider *yahooProvider) Normalize(symbol string, raw map[string]interface{}, now time.Time) models.ResolvedQuote {
	return models.ResolvedQuote{
		Symbol:        symbol,
		Name:          normalize.String(raw["longName"], symbol),
		Price:         normalize.Float(raw["regularMarketPrice"]),
		Change:        normalize.Float(raw["regularMarketChange"]),
		ChangePercent: normalize.Float(raw["regularMarketChangePercent"]),
		MarketCap:     normalize.Float(raw["marketCap"]),
		Volume:        normalize.Int(raw["regularMarketVolume"]),
		High:          normalize.Float(raw["regularMarketDayHigh"]),
		Low:           normalize.Float(raw["regularMarketDayLow"]),
		Open:          normalize.Float(raw["regularMarketOpen"]),
		PreviousClose: normalize.Float(raw["regularMarketPreviousClose"]),
		Timestamp:     now.UTC().Format(time.RFC3339),
		Source:        "Yahoo Finance",
	}
}

// serpProvider requires a non-empty quotes list from the finance engine.
type serpProvider struct {
	adapter *upstream.SerpAPI
}

func (provider *serpProvider) Name() string { return "Google Finance" }

func (provider *serpProvider) Fetch(ctx context.Context, symbol string) (map[string]interface{}, error) {
	quotes, fetchError := provider.adapter.FinanceQuote(ctx, symbol+":NSE")
	if fetchError != nil {
		return nil, fetchError
	}
	if len(quotes) == 0 {
		return nil, nil
	}
	return quotes[0], nil
}

func (provider *serpProvider) Usable(raw map[string]interface{}) bool {
	return normalize.Float(raw["price"]) != 0
}

func (provider *serpProvider) Normalize(symbol string, raw map[string]interface{}, now time.Time) models.ResolvedQuote {
	return models.ResolvedQuote{
		Symbol:        normalize.String(raw["symbol"], symbol),
		Name:          normalize.String(raw["name"], symbol),
		Price:         normalize.Float(raw["price"]),
		Change:        normalize.Float(raw["change"]),
		ChangePercent: normalize.Float(raw["change_percent"]),
		MarketCap:     normalize.Float(raw["market_cap"]),
		Volume:        normalize.Int(raw["volume"]),
		High:          normalize.Float(raw["high"]),
		Low:           normalize.Float(raw["low"]),
		Open:          normalize.Float(raw["open"]),
		PreviousClose: normalize.Float(raw["previous_close"]),
		Timestamp:     now.UTC().Format(time.RFC3339),
		Source:        "Google Finance",
	}
}

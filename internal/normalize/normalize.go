// Package normalize reshapes provider-specific payloads into the service's
// stable output schema. Every function here is pure and never fails:
// malformed numeric fields degrade to 0, absent strings to "Unknown".
// Callers are responsible for routing absent or empty payloads to the
// fallback generators instead of calling in here.
package normalize

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"stock-market-api/internal/models"
)

const unknown = "Unknown"

// Float coerces an arbitrary decoded JSON value to float64, defaulting to 0.
func Float(value interface{}) float64 {
	switch typed := value.(type) {
	case float64:
		return typed
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	case string:
		parsed, parseError := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(typed, ",", "")), 64)
		if parseError != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// Int coerces an arbitrary decoded JSON value to int64, defaulting to 0.
func Int(value interface{}) int64 {
	switch typed := value.(type) {
	case float64:
		return int64(typed)
	case int:
		return int64(typed)
	case int64:
		return typed
	case string:
		parsed, parseError := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(typed, ",", "")), 64)
		if parseError != nil {
			return 0
		}
		return int64(parsed)
	default:
		return 0
	}
}

// String coerces an arbitrary decoded JSON value to a non-empty string,
// defaulting to fallback.
func String(value interface{}, fallback string) string {
	if typed, isString := value.(string); isString && typed != "" {
		return typed
	}
	return fallback
}

// nested returns raw[key] as an object, or an empty map.
func nested(raw map[string]interface{}, key string) map[string]interface{} {
	if child, isObject := raw[key].(map[string]interface{}); isObject {
		return child
	}
	return map[string]interface{}{}
}

// Indices normalizes the NSE index watch payload, sorted by volume descending.
func Indices(raw []map[string]interface{}, now time.Time) []models.IndexQuote {
	lastUpdated := now.UTC().Format(time.RFC3339)
	indices := make([]models.IndexQuote, 0, len(raw))
	for _, record := range raw {
		indices = append(indices, models.IndexQuote{
			IndexName:     String(record["indexName"], unknown),
			Last:          Float(record["last"]),
			PercChange:    Float(record["percChange"]),
			Open:          Float(record["open"]),
			High:          Float(record["high"]),
			Low:           Float(record["low"]),
			PreviousClose: Float(record["previousClose"]),
			Volume:        Int(record["volume"]),
			LastUpdated:   lastUpdated,
		})
	}

	sort.SliceStable(indices, func(i, j int) bool {
		return indices[i].Volume > indices[j].Volume
	})

	return indices
}

// SearchStocks normalizes NSE stock search results, sorted by market cap
// descending.
func SearchStocks(raw []map[string]interface{}, now time.Time) []models.StockSummary {
	lastUpdated := now.UTC().Format(time.RFC3339)
	stocks := make([]models.StockSummary, 0, len(raw))
	for _, record := range raw {
		stocks = append(stocks, models.StockSummary{
			Symbol:      String(record["symbol"], unknown),
			LastPrice:   Float(record["lastPrice"]),
			Change:      Float(record["change"]),
			Volume:      Int(record["volume"]),
			MarketCap:   Int(record["marketCap"]),
			LastUpdated: lastUpdated,
		})
	}

	sort.SliceStable(stocks, func(i, j int) bool {
		return stocks[i].MarketCap > stocks[j].MarketCap
	})

	return stocks
}

// Intraday normalizes intraday samples, sorted by time ascending.
func Intraday(raw []map[string]interface{}, now time.Time) []models.PricePoint {
	lastUpdated := now.UTC().Format(time.RFC3339)
	points := make([]models.PricePoint, 0, len(raw))
	for _, record := range raw {
		points = append(points, models.PricePoint{
			Time:        String(record["time"], lastUpdated),
			Price:       Float(record["price"]),
			Volume:      Int(record["volume"]),
			LastUpdated: lastUpdated,
		})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Time < points[j].Time
	})

	return points
}

// StockEdgeIndices normalizes the StockEdge latest-index-quotes payload.
func StockEdgeIndices(raw []map[string]interface{}) []models.StockEdgeIndex {
	indices := make([]models.StockEdgeIndex, 0, len(raw))
	for _, record := range raw {
		indices = append(indices, models.StockEdgeIndex{
			IndexName:     String(record["IndexName"], unknown),
			Current:       Float(record["Close"]),
			Change:        Float(record["Change"]),
			ChangePercent: Float(record["ChangePercentage"]),
			High:          Float(record["High"]),
			Low:           Float(record["Low"]),
		})
	}
	return indices
}

// PriceMovers normalizes the StockEdge top-price-movers payload.
func PriceMovers(raw []map[string]interface{}) []models.PriceMover {
	movers := make([]models.PriceMover, 0, len(raw))
	for _, record := range raw {
		movers = append(movers, models.PriceMover{
			Symbol:        String(record["SecurityName"], unknown),
			Name:          String(record["CompanyName"], unknown),
			Sector:        String(record["SectorName"], unknown),
			Price:         Float(record["Close"]),
			Change:        Float(record["Change"]),
			ChangePercent: Float(record["ChangePercentage"]),
		})
	}
	return movers
}

// StockEdgeQuote normalizes one StockEdge latest-stock-quotes record.
func StockEdgeQuote(record map[string]interface{}) models.StockQuote {
	return models.StockQuote{
		Symbol:        String(record["SecurityName"], unknown),
		Name:          String(record["CompanyName"], unknown),
		Price:         Float(record["Close"]),
		Change:        Float(record["Change"]),
		ChangePercent: Float(record["ChangePercentage"]),
		High:          Float(record["High"]),
		Low:           Float(record["Low"]),
		Open:          Float(record["Open"]),
		Volume:        Int(record["Volume"]),
	}
}

// History normalizes StockEdge historical bars.
func History(raw []map[string]interface{}) []models.HistoryBar {
	bars := make([]models.HistoryBar, 0, len(raw))
	for _, record := range raw {
		bars = append(bars, models.HistoryBar{
			Timestamp: String(record["Date"], ""),
			Open:      Float(record["Open"]),
			High:      Float(record["High"]),
			Low:       Float(record["Low"]),
			Close:     Float(record["Close"]),
			Volume:    Int(record["Volume"]),
		})
	}
	return bars
}

// InsiderDeals normalizes the StockEdge insider-trading payload into a page.
func InsiderDeals(raw []map[string]interface{}) models.InsiderDealsPage {
	deals := make([]models.InsiderDeal, 0, len(raw))
	for _, record := range raw {
		deals = append(deals, models.InsiderDeal{
			Name:              String(record["ClientName"], unknown),
			Category:          String(record["PersonCategory"], unknown),
			TransactionType:   String(record["DealTransactionType"], unknown),
			StockName:         String(record["SecurityName"], unknown),
			Exchange:          String(record["ExchangeName"], unknown),
			Quantity:          Float(record["DealQuantity"]),
			Value:             Float(record["TotalDealValue"]),
			PricePerShare:     Float(record["ValuePerShare"]),
			HoldingPostDeal:   Float(record["HoldingPostDeal"]),
			HoldingPercentage: Float(record["HoldingPostDealG"]),
			DealDate:          String(record["TransactionFromDate"], ""),
			DealMode:          String(record["DealMode"], unknown),
		})
	}
	return models.InsiderDealsPage{
		TotalRecords: len(deals),
		Deals:        deals,
	}
}

// SearchResults normalizes StockEdge search hits.
func SearchResults(raw []map[string]interface{}) []models.SearchResult {
	results := make([]models.SearchResult, 0, len(raw))
	for _, record := range raw {
		results = append(results, models.SearchResult{
			ID:       Int(record["ID"]),
			Security: String(record["SecurityName"], unknown),
			Industry: String(record["IndustryName"], unknown),
			Sector:   String(record["SectorName"], unknown),
			MCAP:     Float(record["MCAP"]),
		})
	}
	return results
}

// TrendingStocks normalizes the all-time-high trending payload.
func TrendingStocks(raw []map[string]interface{}) []models.TrendingStock {
	stocks := make([]models.TrendingStock, 0, len(raw))
	for _, record := range raw {
		stocks = append(stocks, models.TrendingStock{
			Name:          String(record["Name"], unknown),
			Symbol:        String(record["Symbol"], unknown),
			Exchange:      String(record["Exchange"], unknown),
			Sector:        String(record["Sector"], unknown),
			CurrentPrice:  Float(record["C"]),
			ChangePercent: Float(record["CZG"]),
		})
	}
	return stocks
}

// MostVisited normalizes the most-visited-stocks payload.
func MostVisited(raw []map[string]interface{}) []models.VisitedStock {
	stocks := make([]models.VisitedStock, 0, len(raw))
	for _, record := range raw {
		stocks = append(stocks, models.VisitedStock{
			ID:            Int(record["SecurityID"]),
			Name:          String(record["SecurityName"], unknown),
			Sector:        String(record["SectorName"], unknown),
			Price:         Float(record["LTP"]),
			Exchange:      String(record["Exchange"], unknown),
			Change:        Float(record["CZ"]),
			ChangePercent: Float(record["CZG"]),
		})
	}
	return stocks
}

// QuoteDetail normalizes the NSE quote-equity payload into the nested
// info/priceInfo/marketCap/volume/fundamentals shape.
func QuoteDetail(symbol string, raw map[string]interface{}) models.QuoteDetail {
	info := nested(raw, "info")
	priceInfo := nested(raw, "priceInfo")
	marketCapInfo := nested(raw, "marketCapInfo")
	fundamentalInfo := nested(raw, "fundamentalInfo")

	return models.QuoteDetail{
		Info: models.QuoteInfo{
			Symbol:      String(info["symbol"], symbol),
			CompanyName: String(info["companyName"], symbol+" Ltd"),
			Industry:    String(info["industry"], unknown),
			Sector:      String(info["sector"], unknown),
		},
		PriceInfo: models.QuotePriceInfo{
			LastPrice:     Float(priceInfo["lastPrice"]),
			Change:        Float(priceInfo["change"]),
			PChange:       Float(priceInfo["pChange"]),
			DayHigh:       Float(priceInfo["dayHigh"]),
			DayLow:        Float(priceInfo["dayLow"]),
			Open:          Float(priceInfo["open"]),
			PreviousClose: Float(priceInfo["previousClose"]),
		},
		MarketCap: models.QuoteMarketCap{
			Value: Float(marketCapInfo["marketCap"]),
			Label: String(marketCapInfo["label"], unknown),
		},
		Volume: models.QuoteVolume{
			TotalTradedVolume: Int(priceInfo["totalTradedVolume"]),
			TotalTradedValue:  Float(priceInfo["totalTradedValue"]),
		},
		Fundamentals: models.QuoteFundamental{
			PE:            Float(fundamentalInfo["pe"]),
			BookValue:     Float(fundamentalInfo["bookValue"]),
			DividendYield: Float(fundamentalInfo["dividendYield"]),
		},
	}
}

// MarketTrends normalizes the NSE market-state payload into trend records,
// keeping only capital-market entries that name an index.
func MarketTrends(raw []map[string]interface{}, now time.Time) []models.MarketTrend {
	timestamp := now.UTC().Format(time.RFC3339)
	trends := make([]models.MarketTrend, 0, len(raw))
	for _, record := range raw {
		if String(record["market"], "") != "Capital Market" {
			continue
		}
		indexName := String(record["index"], "")
		if indexName == "" {
			continue
		}
		trends = append(trends, models.MarketTrend{
			Symbol:        strings.ReplaceAll(indexName, " ", ""),
			Name:          indexName,
			Price:         Float(record["last"]),
			Change:        Float(record["variation"]),
			ChangePercent: Float(record["percentChange"]),
			MarketStatus:  String(record["marketStatus"], unknown),
			TradeDate:     String(record["tradeDate"], ""),
			Message:       String(record["marketStatusMessage"], ""),
			Region:        "India",
			Timestamp:     timestamp,
			Source:        "NSE",
		})
	}
	return trends
}

// SerpMarketTrends normalizes the SerpAPI google_finance_markets payload.
func SerpMarketTrends(raw []map[string]interface{}, now time.Time) []models.MarketTrend {
	timestamp := now.UTC().Format(time.RFC3339)
	trends := make([]models.MarketTrend, 0, len(raw))
	for _, record := range raw {
		trends = append(trends, models.MarketTrend{
			Symbol:        String(record["symbol"], unknown),
			Name:          String(record["name"], unknown),
			Price:         Float(record["price"]),
			Change:        Float(record["change"]),
			ChangePercent: Float(record["change_percent"]),
			Region:        String(record["region"], unknown),
			Timestamp:     timestamp,
			Source:        "Google Finance",
		})
	}
	return trends
}

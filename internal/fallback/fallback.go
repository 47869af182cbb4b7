// Package fallback produces synthetic datasets served when an upstream call
// fails or returns unusable data. Shapes are deterministic (field sets and
// record counts are fixed per endpoint); values are randomized around a
// per-symbol base price with bounded jitter, so partial upstream outages
// degrade data realism rather than availability.
package fallback

import (
	"math"
	"math/rand"
	"strings"
	"time"

	"stock-market-api/internal/models"
)

// jitterFraction bounds randomized values to +/-5% of the base price.
const jitterFraction = 0.05

// basePrices anchors synthetic values per index or symbol.
var basePrices = map[string]float64{
	"NIFTY 50":     18500,
	"NIFTY BANK":   43500,
	"NIFTY IT":     32500,
	"NIFTY AUTO":   18500,
	"NIFTY PHARMA": 12500,
	"NIFTY FMCG":   28500,
	"SENSEX":       61500,
	"RELIANCE":     2750,
	"TCS":          3850,
	"HDFCBANK":     1650,
	"INFY":         1450,
	"ICICIBANK":    950,
	"HINDUNILVR":   2450,
	"ITC":          425,
	"SBIN":         650,
	"BHARTIARTL":   1150,
	"KOTAKBANK":    1750,
}

// BasePrice returns the anchor price for a symbol, randomized within
// 1000-10000 for symbols without a configured base.
func BasePrice(symbol string) float64 {
	if base, known := basePrices[symbol]; known {
		return base
	}
	return 1000 + rand.Float64()*9000
}

// jitter returns base shifted by a uniform random amount within the bound.
func jitter(base float64) float64 {
	return base * (1 + (rand.Float64()-0.5)*2*jitterFraction)
}

func randomVolume() int64 {
	return 100000 + rand.Int63n(900000)
}

// Indices builds three synthetic NSE index records.
func Indices(now time.Time) []models.IndexQuote {
	lastUpdated := now.UTC().Format(time.RFC3339)
	names := []string{"NIFTY 50", "NIFTY BANK", "NIFTY IT"}
	volumes := []int64{150000000, 120000000, 80000000}

	indices := make([]models.IndexQuote, 0, len(names))
	for position, name := range names {
		base := BasePrice(name)
		last := jitter(base)
		indices = append(indices, models.IndexQuote{
			IndexName:     name,
			Last:          round2(last),
			PercChange:    round2((last - base) / base * 100),
			Open:          round2(jitter(base)),
			High:          round2(last * 1.01),
			Low:           round2(last * 0.99),
			PreviousClose: round2(base),
			Volume:        volumes[position],
			LastUpdated:   lastUpdated,
		})
	}
	return indices
}

// SearchStocks builds three synthetic NSE search results.
func SearchStocks(now time.Time) []models.StockSummary {
	lastUpdated := now.UTC().Format(time.RFC3339)
	symbols := []string{"TCS", "INFY", "HDFCBANK"}
	marketCaps := []int64{1500000000000, 800000000000, 1200000000000}

	stocks := make([]models.StockSummary, 0, len(symbols))
	for position, symbol := range symbols {
		base := BasePrice(symbol)
		stocks = append(stocks, models.StockSummary{
			Symbol:      symbol,
			LastPrice:   round2(jitter(base)),
			Change:      round2((rand.Float64() - 0.5) * 4),
			Volume:      randomVolume(),
			MarketCap:   marketCaps[position],
			LastUpdated: lastUpdated,
		})
	}
	return stocks
}

// IntradaySeries builds 24 hourly synthetic samples for a symbol.
func IntradaySeries(symbol string, now time.Time) []models.PricePoint {
	lastUpdated := now.UTC().Format(time.RFC3339)
	base := BasePrice(symbol)

	points := make([]models.PricePoint, 0, 24)
	for hour := 0; hour < 24; hour++ {
		sampleTime := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
		points = append(points, models.PricePoint{
			Time:        sampleTime.UTC().Format(time.RFC3339),
			Price:       round2(jitter(base)),
			Volume:      randomVolume(),
			LastUpdated: lastUpdated,
		})
	}
	return points
}

// historyIntervals maps a timeframe to its synthetic bar count.
var historyIntervals = map[string]int{
	"1D": 24,
	"5D": 5,
	"1M": 30,
	"1Y": 12,
}

// History builds a synthetic OHLCV series sized by timeframe. Unrecognized
// timeframes get the 1D sizing.
func History(symbol, timeframe string, now time.Time) []models.HistoryBar {
	intervals, known := historyIntervals[timeframe]
	if !known {
		intervals = historyIntervals["1D"]
	}

	base := BasePrice(symbol)
	bars := make([]models.HistoryBar, 0, intervals)
	for position := 0; position < intervals; position++ {
		barTime := now.AddDate(0, 0, -(intervals - position))
		closePrice := jitter(base)
		bars = append(bars, models.HistoryBar{
			Timestamp: barTime.UTC().Format(time.RFC3339),
			Open:      round2(closePrice - rand.Float64()*10),
			High:      round2(closePrice + rand.Float64()*10),
			Low:       round2(closePrice - rand.Float64()*10),
			Close:     round2(closePrice),
			Volume:    rand.Int63n(1000000),
		})
	}
	return bars
}

// StockEdgeIndices builds two synthetic StockEdge index quotes.
func StockEdgeIndices() []models.StockEdgeIndex {
	names := []string{"NIFTY 50", "NIFTY BANK"}
	indices := make([]models.StockEdgeIndex, 0, len(names))
	for _, name := range names {
		base := BasePrice(name)
		current := jitter(base)
		indices = append(indices, models.StockEdgeIndex{
			IndexName:     name,
			Current:       round2(current),
			Change:        round2(current - base),
			ChangePercent: round2((current - base) / base * 100),
			High:          round2(current * 1.005),
			Low:           round2(current * 0.995),
		})
	}
	return indices
}

// IndexGainers builds two synthetic gaining index quotes.
func IndexGainers() []models.StockEdgeIndex {
	names := []string{"NIFTY AUTO", "NIFTY IT"}
	indices := make([]models.StockEdgeIndex, 0, len(names))
	for _, name := range names {
		base := BasePrice(name)
		gain := rand.Float64() * base * jitterFraction
		current := base + gain
		indices = append(indices, models.StockEdgeIndex{
			IndexName:     name,
			Current:       round2(current),
			Change:        round2(gain),
			ChangePercent: round2(gain / base * 100),
			High:          round2(current * 1.005),
			Low:           round2(base * 0.995),
		})
	}
	return indices
}

// PriceMovers builds two synthetic top price movers.
func PriceMovers() []models.PriceMover {
	movers := []struct {
		symbol string
		name   string
		sector string
	}{
		{"RELIANCE", "Reliance Industries Ltd", "Energy"},
		{"TCS", "Tata Consultancy Services Ltd", "IT"},
	}

	records := make([]models.PriceMover, 0, len(movers))
	for _, mover := range movers {
		base := BasePrice(mover.symbol)
		price := jitter(base)
		records = append(records, models.PriceMover{
			Symbol:        mover.symbol,
			Name:          mover.name,
			Sector:        mover.sector,
			Price:         round2(price),
			Change:        round2(price - base),
			ChangePercent: round2((price - base) / base * 100),
		})
	}
	return records
}

// StockQuote builds one synthetic quote for a symbol.
func StockQuote(symbol string) models.StockQuote {
	base := BasePrice(symbol)
	price := jitter(base)
	return models.StockQuote{
		Symbol:        symbol,
		Name:          symbol + " Ltd",
		Price:         round2(price),
		Change:        round2(price - base),
		ChangePercent: round2((price - base) / base * 100),
		High:          round2(price * 1.01),
		Low:           round2(price * 0.99),
		Open:          round2(jitter(base)),
		Volume:        randomVolume(),
	}
}

// InsiderDeals builds the empty insider-deals page.
func InsiderDeals() models.InsiderDealsPage {
	return models.InsiderDealsPage{
		TotalRecords: 0,
		Deals:        []models.InsiderDeal{},
	}
}

// SearchResults builds two synthetic StockEdge search hits.
func SearchResults() []models.SearchResult {
	return []models.SearchResult{
		{ID: 1, Security: "RELIANCE", Industry: "Energy", Sector: "Oil & Gas", MCAP: 1500000000000},
		{ID: 2, Security: "TCS", Industry: "IT", Sector: "Technology", MCAP: 1200000000000},
	}
}

// TrendingStocks builds two synthetic trending records.
func TrendingStocks() []models.TrendingStock {
	symbols := []string{"RELIANCE", "TCS"}
	sectors := []string{"Energy", "IT"}

	stocks := make([]models.TrendingStock, 0, len(symbols))
	for position, symbol := range symbols {
		stocks = append(stocks, models.TrendingStock{
			Name:          symbol,
			Symbol:        symbol,
			Exchange:      "NSE",
			Sector:        sectors[position],
			CurrentPrice:  round2(jitter(BasePrice(symbol))),
			ChangePercent: round2((rand.Float64() - 0.5) * 5),
		})
	}
	return stocks
}

// MostVisited builds two synthetic most-visited records.
func MostVisited() []models.VisitedStock {
	symbols := []string{"RELIANCE", "TCS"}
	sectors := []string{"Energy", "IT"}

	stocks := make([]models.VisitedStock, 0, len(symbols))
	for position, symbol := range symbols {
		base := BasePrice(symbol)
		price := jitter(base)
		stocks = append(stocks, models.VisitedStock{
			ID:            int64(position + 1),
			Name:          symbol,
			Sector:        sectors[position],
			Price:         round2(price),
			Exchange:      "NSE",
			Change:        round2(price - base),
			ChangePercent: round2((price - base) / base * 100),
		})
	}
	return stocks
}

// QuoteDetail builds a full synthetic nested quote for a symbol.
func QuoteDetail(symbol string) models.QuoteDetail {
	base := BasePrice(symbol)
	price := jitter(base)
	volume := randomVolume()

	return models.QuoteDetail{
		Info: models.QuoteInfo{
			Symbol:      symbol,
			CompanyName: symbol + " Ltd",
			Industry:    "Unknown",
			Sector:      "Unknown",
		},
		PriceInfo: models.QuotePriceInfo{
			LastPrice:     round2(price),
			Change:        round2(price - base),
			PChange:       round2((price - base) / base * 100),
			DayHigh:       round2(price * 1.01),
			DayLow:        round2(price * 0.99),
			Open:          round2(jitter(base)),
			PreviousClose: round2(base),
		},
		MarketCap: models.QuoteMarketCap{
			Value: round2(price * float64(volume)),
			Label: "1,00,000 Cr",
		},
		Volume: models.QuoteVolume{
			TotalTradedVolume: volume,
			TotalTradedValue:  round2(price * float64(volume)),
		},
		Fundamentals: models.QuoteFundamental{
			PE:            round2(15 + rand.Float64()*10),
			BookValue:     round2(base / 4),
			DividendYield: round2(rand.Float64() * 3),
		},
	}
}

// ResolvedQuote builds one synthetic multi-source quote, tagged as mock data.
func ResolvedQuote(symbol string, now time.Time) models.ResolvedQuote {
	base := BasePrice(symbol)
	price := jitter(base)
	change := price - base
	volume := randomVolume()

	return models.ResolvedQuote{
		Symbol:        symbol,
		Name:          symbol + " Company",
		Price:         round2(price),
		Change:        round2(change),
		ChangePercent: round2(change / base * 100),
		MarketCap:     round2(price * float64(volume)),
		Volume:        volume,
		High:          round2(price * 1.01),
		Low:           round2(price * 0.99),
		Open:          round2(jitter(base)),
		PreviousClose: round2(base),
		Timestamp:     now.UTC().Format(time.RFC3339),
		Source:        "Mock Data",
	}
}

// MarketTrends builds four synthetic index trend records.
func MarketTrends(now time.Time) []models.MarketTrend {
	timestamp := now.UTC().Format(time.RFC3339)
	names := []string{"NIFTY 50", "NIFTY BANK", "SENSEX", "NIFTY IT"}

	trends := make([]models.MarketTrend, 0, len(names))
	for _, name := range names {
		base := BasePrice(name)
		price := jitter(base)
		trends = append(trends, models.MarketTrend{
			Symbol:        strings.ReplaceAll(name, " ", ""),
			Name:          name,
			Price:         round2(price),
			Change:        round2(price - base),
			ChangePercent: round2((price - base) / base * 100),
			MarketStatus:  "Closed",
			TradeDate:     now.Format("02-Jan-2006"),
			Message:       "Market is Closed",
			Region:        "India",
			Timestamp:     timestamp,
			Source:        "Mock Data",
		})
	}
	return trends
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

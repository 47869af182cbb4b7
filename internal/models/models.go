package models

import "time"

// MarketStatus is the normalized /get_market_status body. NextOpen is nil
// outside weekends on the live path and always set on the fallback path.
type MarketStatus struct {
	MarketStatus string  `json:"marketStatus"`
	LastUpdated  string  `json:"lastUpdated"`
	NextOpen     *string `json:"nextOpen"`
}

// IndexQuote is the normalized NSE index record.
type IndexQuote struct {
	IndexName     string  `json:"indexName"`
	Last          float64 `json:"last"`
	PercChange    float64 `json:"percChange"`
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	PreviousClose float64 `json:"previousClose"`
	Volume        int64   `json:"volume"`
	LastUpdated   string  `json:"lastUpdated"`
}

// StockSummary is the normalized NSE search result record.
type StockSummary struct {
	Symbol      string  `json:"symbol"`
	LastPrice   float64 `json:"lastPrice"`
	Change      float64 `json:"change"`
	Volume      int64   `json:"volume"`
	MarketCap   int64   `json:"marketCap"`
	LastUpdated string  `json:"lastUpdated"`
}

// PricePoint is one normalized intraday sample.
type PricePoint struct {
	Time        string  `json:"time"`
	Price       float64 `json:"price"`
	Volume      int64   `json:"volume"`
	LastUpdated string  `json:"lastUpdated"`
}

// StockEdgeIndex is the normalized StockEdge index quote.
type StockEdgeIndex struct {
	IndexName     string  `json:"indexName"`
	Current       float64 `json:"current"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
}

// PriceMover is the normalized StockEdge top price mover record.
type PriceMover struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Sector        string  `json:"sector"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// StockQuote is the normalized single-stock quote served by
// /api/stockedge/stock/:symbol.
type StockQuote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Open          float64 `json:"open"`
	Volume        int64   `json:"volume"`
}

// HistoryBar is one normalized OHLCV bar.
type HistoryBar struct {
	Timestamp string  `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    int64   `json:"volume"`
}

// InsiderDeal is one normalized insider-trading deal.
type InsiderDeal struct {
	Name              string  `json:"name"`
	Category          string  `json:"category"`
	TransactionType   string  `json:"transactionType"`
	StockName         string  `json:"stockName"`
	Exchange          string  `json:"exchange"`
	Quantity          float64 `json:"quantity"`
	Value             float64 `json:"value"`
	PricePerShare     float64 `json:"pricePerShare"`
	HoldingPostDeal   float64 `json:"holdingPostDeal"`
	HoldingPercentage float64 `json:"holdingPercentage"`
	DealDate          string  `json:"dealDate"`
	DealMode          string  `json:"dealMode"`
}

// InsiderDealsPage wraps a page of insider deals.
type InsiderDealsPage struct {
	TotalRecords int           `json:"totalRecords"`
	Deals        []InsiderDeal `json:"deals"`
}

// SearchResult is one normalized StockEdge search hit. The upstream uses
// short uppercase keys and the public shape preserved them.
type SearchResult struct {
	ID       int64   `json:"ID"`
	Security string  `json:"Security"`
	Industry string  `json:"Industry"`
	Sector   string  `json:"Sector"`
	MCAP     float64 `json:"MCAP"`
}

// TrendingStock is the normalized all-time-high trending record.
type TrendingStock struct {
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol"`
	Exchange      string  `json:"exchange"`
	Sector        string  `json:"sector"`
	CurrentPrice  float64 `json:"currentPrice"`
	ChangePercent float64 `json:"changePercent"`
}

// VisitedStock is the normalized most-visited record.
type VisitedStock struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Sector        string  `json:"sector"`
	Price         float64 `json:"price"`
	Exchange      string  `json:"exchange"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// QuoteDetail is the nested normalized body of /api/nse/stock/:symbol.
type QuoteDetail struct {
	Info         QuoteInfo        `json:"info"`
	PriceInfo    QuotePriceInfo   `json:"priceInfo"`
	MarketCap    QuoteMarketCap   `json:"marketCap"`
	Volume       QuoteVolume      `json:"volume"`
	Fundamentals QuoteFundamental `json:"fundamentals"`
}

type QuoteInfo struct {
	Symbol      string `json:"symbol"`
	CompanyName string `json:"companyName"`
	Industry    string `json:"industry"`
	Sector      string `json:"sector"`
}

type QuotePriceInfo struct {
	LastPrice     float64 `json:"lastPrice"`
	Change        float64 `json:"change"`
	PChange       float64 `json:"pChange"`
	DayHigh       float64 `json:"dayHigh"`
	DayLow        float64 `json:"dayLow"`
	Open          float64 `json:"open"`
	PreviousClose float64 `json:"previousClose"`
}

type QuoteMarketCap struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

type QuoteVolume struct {
	TotalTradedVolume int64   `json:"totalTradedVolume"`
	TotalTradedValue  float64 `json:"totalTradedValue"`
}

type QuoteFundamental struct {
	PE            float64 `json:"pe"`
	BookValue     float64 `json:"bookValue"`
	DividendYield float64 `json:"dividendYield"`
}

// ResolvedQuote is the multi-source quote produced by the failover resolver.
// Source names the provider that supplied the data.
type ResolvedQuote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	MarketCap     float64 `json:"marketCap"`
	Volume        int64   `json:"volume"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Open          float64 `json:"open"`
	PreviousClose float64 `json:"previousClose"`
	Timestamp     string  `json:"timestamp"`
	Source        string  `json:"source"`
}

// MarketTrend is one normalized market-trend record.
type MarketTrend struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	MarketStatus  string  `json:"marketStatus,omitempty"`
	TradeDate     string  `json:"tradeDate,omitempty"`
	Message       string  `json:"message,omitempty"`
	Region        string  `json:"region"`
	Timestamp     string  `json:"timestamp"`
	Source        string  `json:"source"`
}

// AnnouncementsPage is the paginated corporate-announcements body.
type AnnouncementsPage struct {
	Data       []map[string]interface{} `json:"data"`
	Total      int                      `json:"total"`
	Page       int                      `json:"page"`
	PageSize   int                      `json:"pageSize"`
	TotalPages int                      `json:"totalPages"`
}

// ErrorResponse is the JSON error body for API routes.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// HealthCheck represents the health check response
type HealthCheck struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
}

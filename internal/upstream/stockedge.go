package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// stockEdgeHeaders supplements the browser set; the StockEdge API checks the
// origin of requests.
var stockEdgeHeaders = map[string]string{
	"Origin":  "https://stockedge.com",
	"Referer": "https://stockedge.com/",
}

// StockEdge adapts the StockEdge dashboard API.
type StockEdge struct {
	client  *Client
	baseURL string
}

// NewStockEdge creates the StockEdge adapter.
func NewStockEdge(client *Client, baseURL string) *StockEdge {
	return &StockEdge{
		client:  client,
		baseURL: baseURL,
	}
}

func (stockEdge *StockEdge) getRecords(ctx context.Context, path string) ([]map[string]interface{}, error) {
	var payload []map[string]interface{}
	if fetchError := stockEdge.client.GetJSON(ctx, "StockEdge", stockEdge.baseURL+path, stockEdgeHeaders, &payload); fetchError != nil {
		return nil, fetchError
	}
	return payload, nil
}

// IndexQuotes fetches the latest index quotes.
func (stockEdge *StockEdge) IndexQuotes(ctx context.Context) ([]map[string]interface{}, error) {
	return stockEdge.getRecords(ctx, "/DailyDashboardApi/GetLatestIndexQuotes?page=1&pageSize=19&exchange=NSE&priceChangePeriodType=1&lang=en")
}

// IndexGainers fetches the latest gaining index quotes.
func (stockEdge *StockEdge) IndexGainers(ctx context.Context) ([]map[string]interface{}, error) {
	return stockEdge.getRecords(ctx, "/DailyDashboardApi/GetLatestIndexQuotesForGainers?page=1&pageSize=19&exchange=NSE&priceChangePeriodType=1&lang=en")
}

// TopPriceMovers fetches the top price movers.
func (stockEdge *StockEdge) TopPriceMovers(ctx context.Context) ([]map[string]interface{}, error) {
	return stockEdge.getRecords(ctx, "/MarketHomeDashboardApi/GetTopPriceMovers?gainerLosersTypeEnum=2&lang=en")
}

// StockQuotes fetches the latest quotes for one symbol.
func (stockEdge *StockEdge) StockQuotes(ctx context.Context, symbol string) ([]map[string]interface{}, error) {
	path := fmt.Sprintf("/DailyDashboardApi/GetLatestStockQuotes?symbol=%s&exchange=NSE&priceChangePeriodType=1&lang=en", url.QueryEscape(symbol))
	return stockEdge.getRecords(ctx, path)
}

// History fetches historical bars for one symbol and timeframe.
func (stockEdge *StockEdge) History(ctx context.Context, symbol, timeframe string) ([]map[string]interface{}, error) {
	path := fmt.Sprintf("/ChartApi/GetHistoricalData?symbol=%s&exchange=NSE&timeframe=%s&lang=en", url.QueryEscape(symbol), url.QueryEscape(timeframe))
	return stockEdge.getRecords(ctx, path)
}

// InsiderDeals fetches the latest insider-trading deals. exchangeCode is 1
// for NSE and 2 for BSE.
func (stockEdge *StockEdge) InsiderDeals(ctx context.Context, exchangeCode, page, pageSize int, transactionType, dealMode string) ([]map[string]interface{}, error) {
	path := fmt.Sprintf("/DealsDashboardApi/GetLatestInsidertradingDeals?exchange=%d&page=%d&pageSize=%d&insiderDealTransactionTypes=%s&dealModeTypes=%s&lang=en",
		exchangeCode, page, pageSize, url.QueryEscape(transactionType), url.QueryEscape(dealMode))
	return stockEdge.getRecords(ctx, path)
}

// Search fetches search hits for a query.
func (stockEdge *StockEdge) Search(ctx context.Context, query string) ([]map[string]interface{}, error) {
	path := fmt.Sprintf("/SearchApi/GetSearchResults?searchText=%s&page=1&pageSize=10&lang=en", url.QueryEscape(query))
	return stockEdge.getRecords(ctx, path)
}

// TrendingStocks fetches the stocks at all-time highs.
func (stockEdge *StockEdge) TrendingStocks(ctx context.Context) ([]map[string]interface{}, error) {
	return stockEdge.getRecords(ctx, "/TrendingStocksApi/GetCurrentAllTimeHighLow?highLowTypeEnum=1&page=1&pageSize=19&lang=en")
}

// MostVisited fetches the most visited stocks.
func (stockEdge *StockEdge) MostVisited(ctx context.Context) ([]map[string]interface{}, error) {
	return stockEdge.getRecords(ctx, "/TrendingStocksApi/GetMostVisitedStocks?lang=en")
}

// CorporateAnnouncements fetches the daily corporate-announcements dataset
// consumed by the snapshot job. A single-object body is wrapped into a
// one-record slice so the snapshot file is always a flat array.
func (stockEdge *StockEdge) CorporateAnnouncements(ctx context.Context) ([]map[string]interface{}, error) {
	var payload json.RawMessage
	path := "/DailyDashboardApi/GetCorporateAnnouncementDailyInfo/2?page=1&pageSize=19&lang=en"
	if fetchError := stockEdge.client.GetJSON(ctx, "StockEdge", stockEdge.baseURL+path, stockEdgeHeaders, &payload); fetchError != nil {
		return nil, fetchError
	}

	var records []map[string]interface{}
	if unmarshalError := json.Unmarshal(payload, &records); unmarshalError == nil {
		return records, nil
	}

	var single map[string]interface{}
	if unmarshalError := json.Unmarshal(payload, &single); unmarshalError != nil {
		return nil, &UpstreamError{Provider: "StockEdge", Err: fmt.Errorf("failed to parse response: %w", unmarshalError)}
	}
	return []map[string]interface{}{single}, nil
}

package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// NSE adapts the National Stock Exchange data feeds: the legacy live-market
// JSON endpoints plus the newer quote-equity API.
type NSE struct {
	client      *Client
	baseURL     string
	quoteAPIURL string
}

// NewNSE creates the NSE adapter.
func NewNSE(client *Client, baseURL, quoteAPIURL string) *NSE {
	return &NSE{
		client:      client,
		baseURL:     baseURL,
		quoteAPIURL: quoteAPIURL,
	}
}

// MarketStatus fetches the raw market open/closed payload.
func (nse *NSE) MarketStatus(ctx context.Context) (map[string]interface{}, error) {
	var payload map[string]interface{}
	requestURL := nse.baseURL + "/live_market/dynaContent/live_watch/get_market_status.json"
	if fetchError := nse.client.GetJSON(ctx, "NSE", requestURL, nil, &payload); fetchError != nil {
		return nil, fetchError
	}
	return payload, nil
}

// Indices fetches the raw index watch records.
func (nse *NSE) Indices(ctx context.Context) ([]map[string]interface{}, error) {
	var payload []map[string]interface{}
	requestURL := nse.baseURL + "/live_market/dynaContent/live_watch/stock_watch/liveIndexWatchData.json"
	if fetchError := nse.client.GetJSON(ctx, "NSE", requestURL, nil, &payload); fetchError != nil {
		return nil, fetchError
	}
	return payload, nil
}

// QuoteInfo fetches the raw quotation payload for one symbol. The body is
// passed through to the caller untouched.
func (nse *NSE) QuoteInfo(ctx context.Context, symbol string) (json.RawMessage, error) {
	var payload json.RawMessage
	requestURL := fmt.Sprintf("%s/live_market/dynaContent/live_watch/get_quote/GetQuote.json?symbol=%s", nse.baseURL, url.QueryEscape(symbol))
	if fetchError := nse.client.GetJSON(ctx, "NSE", requestURL, nil, &payload); fetchError != nil {
		return nil, fetchError
	}
	return payload, nil
}

// SearchStocks fetches raw matches for a keyword.
func (nse *NSE) SearchStocks(ctx context.Context, keyword string) ([]map[string]interface{}, error) {
	var payload []map[string]interface{}
	requestURL := fmt.Sprintf("%s/live_market/dynaContent/live_watch/stock_watch/searchStockData.json?keyword=%s", nse.baseURL, url.QueryEscape(keyword))
	if fetchError := nse.client.GetJSON(ctx, "NSE", requestURL, nil, &payload); fetchError != nil {
		return nil, fetchError
	}
	return payload, nil
}

// IntraDay fetches raw intraday samples for a symbol. timeParam follows the
// upstream convention ("1", "5", "15", "month", ...).
func (nse *NSE) IntraDay(ctx context.Context, symbol, timeParam string) ([]map[string]interface{}, error) {
	var payload []map[string]interface{}
	requestURL := fmt.Sprintf("%s/ChartData/intraday?symbol=%s&time=%s", nse.baseURL, url.QueryEscape(symbol), url.QueryEscape(timeParam))
	if fetchError := nse.client.GetJSON(ctx, "NSE", requestURL, nil, &payload); fetchError != nil {
		return nil, fetchError
	}
	return payload, nil
}

// QuoteEquity fetches the nested equity detail from the newer NSE API.
func (nse *NSE) QuoteEquity(ctx context.Context, symbol string) (map[string]interface{}, error) {
	var payload map[string]interface{}
	requestURL := fmt.Sprintf("%s/quote-equity?symbol=%s", nse.quoteAPIURL, url.QueryEscape(symbol))
	if fetchError := nse.client.GetJSON(ctx, "NSE", requestURL, nil, &payload); fetchError != nil {
		return nil, fetchError
	}
	return payload, nil
}

// MarketState fetches the capital-market state records used for trends.
func (nse *NSE) MarketState(ctx context.Context) ([]map[string]interface{}, error) {
	var payload struct {
		MarketState []map[string]interface{} `json:"marketState"`
	}
	requestURL := nse.quoteAPIURL + "/marketStatus"
	if fetchError := nse.client.GetJSON(ctx, "NSE", requestURL, nil, &payload); fetchError != nil {
		return nil, fetchError
	}
	return payload.MarketState, nil
}

// passthrough fetches a raw legacy endpoint without reshaping.
func (nse *NSE) passthrough(ctx context.Context, path string) (json.RawMessage, error) {
	var payload json.RawMessage
	if fetchError := nse.client.GetJSON(ctx, "NSE", nse.baseURL+path, nil, &payload); fetchError != nil {
		return nil, fetchError
	}
	return payload, nil
}

// Gainers fetches the raw top-gainers payload.
func (nse *NSE) Gainers(ctx context.Context) (json.RawMessage, error) {
	return nse.passthrough(ctx, "/live_market/dynaContent/live_analysis/gainers/niftyGainers1.json")
}

// Losers fetches the raw top-losers payload.
func (nse *NSE) Losers(ctx context.Context) (json.RawMessage, error) {
	return nse.passthrough(ctx, "/live_market/dynaContent/live_analysis/losers/niftyLosers1.json")
}

// InclineDecline fetches the raw advances/declines payload.
func (nse *NSE) InclineDecline(ctx context.Context) (json.RawMessage, error) {
	return nse.passthrough(ctx, "/live_market/dynaContent/live_analysis/changePercentage.json")
}

// IndexStocks fetches the raw constituents of one index slug.
func (nse *NSE) IndexStocks(ctx context.Context, indexSlug string) (json.RawMessage, error) {
	return nse.passthrough(ctx, "/live_market/dynaContent/live_watch/stock_watch/"+url.PathEscape(indexSlug)+"StockWatch.json")
}

// FiftyTwoWeekHigh fetches the raw 52-week-high payload.
func (nse *NSE) FiftyTwoWeekHigh(ctx context.Context) (json.RawMessage, error) {
	return nse.passthrough(ctx, "/products/dynaContent/equities/equities/json/online52NewHigh.json")
}

// FiftyTwoWeekLow fetches the raw 52-week-low payload.
func (nse *NSE) FiftyTwoWeekLow(ctx context.Context) (json.RawMessage, error) {
	return nse.passthrough(ctx, "/products/dynaContent/equities/equities/json/online52NewLow.json")
}

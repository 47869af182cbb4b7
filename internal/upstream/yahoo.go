package upstream

import (
	"context"
	"fmt"
	"net/url"
)

// Yahoo adapts the Yahoo Finance v7 quote API. NSE symbols are addressed
// with the ".NS" suffix.
type Yahoo struct {
	client  *Client
	baseURL string
}

// NewYahoo creates the Yahoo adapter.
func NewYahoo(client *Client, baseURL string) *Yahoo {
	return &Yahoo{
		client:  client,
		baseURL: baseURL,
	}
}

// Quote fetches the raw quote record for one NSE symbol. Returns nil without
// error when Yahoo knows nothing about the symbol.
func (yahoo *Yahoo) Quote(ctx context.Context, symbol string) (map[string]interface{}, error) {
	var payload struct {
		QuoteResponse struct {
			Result []map[string]interface{} `json:"result"`
		} `json:"quoteResponse"`
	}

	requestURL := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", yahoo.baseURL, url.QueryEscape(symbol+".NS"))
	if fetchError := yahoo.client.GetJSON(ctx, "Yahoo", requestURL, nil, &payload); fetchError != nil {
		return nil, fetchError
	}

	if len(payload.QuoteResponse.Result) == 0 {
		return nil, nil
	}
	return payload.QuoteResponse.Result[0], nil
}

package upstream

import (
	"context"
	"encoding/json"
	"net/url"
)

// BSE adapts the Bombay Stock Exchange API. Every operation passes the raw
// body through; the routes backed by these calls do no reshaping.
type BSE struct {
	client  *Client
	baseURL string
}

// NewBSE creates the BSE adapter.
func NewBSE(client *Client, baseURL string) *BSE {
	return &BSE{
		client:  client,
		baseURL: baseURL,
	}
}

func (bse *BSE) passthrough(ctx context.Context, path string) (json.RawMessage, error) {
	var payload json.RawMessage
	if fetchError := bse.client.GetJSON(ctx, "BSE", bse.baseURL+path, nil, &payload); fetchError != nil {
		return nil, fetchError
	}
	return payload, nil
}

// Indices fetches all BSE index records.
func (bse *BSE) Indices(ctx context.Context) (json.RawMessage, error) {
	return bse.passthrough(ctx, "/BseIndiaAPI/api/GetSensexData/w")
}

// IndexInfo fetches one index by its numeric id (e.g. 16 for SENSEX).
func (bse *BSE) IndexInfo(ctx context.Context, indexID string) (json.RawMessage, error) {
	return bse.passthrough(ctx, "/BseIndiaAPI/api/IndexArchDaily/w?index="+url.QueryEscape(indexID))
}

// Gainers fetches the BSE top gainers.
func (bse *BSE) Gainers(ctx context.Context) (json.RawMessage, error) {
	return bse.passthrough(ctx, "/BseIndiaAPI/api/MktRGainerData/w?flag=G")
}

// Losers fetches the BSE top losers.
func (bse *BSE) Losers(ctx context.Context) (json.RawMessage, error) {
	return bse.passthrough(ctx, "/BseIndiaAPI/api/MktRGainerData/w?flag=L")
}

// TopTurnovers fetches the BSE top turnover records.
func (bse *BSE) TopTurnovers(ctx context.Context) (json.RawMessage, error) {
	return bse.passthrough(ctx, "/BseIndiaAPI/api/MktCapBoard/w?type=turnover")
}

// CompanyInfo fetches one company by its security code.
func (bse *BSE) CompanyInfo(ctx context.Context, companyKey string) (json.RawMessage, error) {
	return bse.passthrough(ctx, "/BseIndiaAPI/api/CompHeaderNew/w?scripcode="+url.QueryEscape(companyKey))
}

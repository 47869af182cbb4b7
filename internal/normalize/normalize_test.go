package normalize

import (
	"testing"
	"time"
)

func TestFloatCoercion(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  float64
	}{
		{"float", 12.5, 12.5},
		{"int", 7, 7},
		{"numeric string", "42.75", 42.75},
		{"string with commas", "1,234.50", 1234.5},
		{"string with spaces", " 99.9 ", 99.9},
		{"non-numeric string", "N/A", 0},
		{"nil", nil, 0},
		{"bool", true, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Float(test.input); got != test.want {
				t.Errorf("Float(%v) = %v, want %v", test.input, got, test.want)
			}
		})
	}
}

func TestIntCoercion(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  int64
	}{
		{"float", 1500.9, 1500},
		{"numeric string", "2,500", 2500},
		{"decimal string", "10.7", 10},
		{"non-numeric string", "--", 0},
		{"nil", nil, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Int(test.input); got != test.want {
				t.Errorf("Int(%v) = %v, want %v", test.input, got, test.want)
			}
		})
	}
}

func TestStringCoercion(t *testing.T) {
	if got := String("NIFTY 50", "Unknown"); got != "NIFTY 50" {
		t.Errorf("Expected passthrough, got %s", got)
	}
	if got := String("", "Unknown"); got != "Unknown" {
		t.Errorf("Expected fallback for empty string, got %s", got)
	}
	if got := String(nil, "Unknown"); got != "Unknown" {
		t.Errorf("Expected fallback for nil, got %s", got)
	}
	if got := String(42, "Unknown"); got != "Unknown" {
		t.Errorf("Expected fallback for non-string, got %s", got)
	}
}

func TestIndicesSortedByVolumeDescending(t *testing.T) {
	raw := []map[string]interface{}{
		{"indexName": "NIFTY IT", "last": "32,500.00", "volume": "100"},
		{"indexName": "NIFTY 50", "last": "18,500.00", "volume": "300"},
		{"indexName": "NIFTY BANK", "last": "43,500.00", "volume": "200"},
	}

	indices := Indices(raw, time.Now())

	if len(indices) != 3 {
		t.Fatalf("Expected 3 indices, got %d", len(indices))
	}
	if indices[0].IndexName != "NIFTY 50" || indices[1].IndexName != "NIFTY BANK" || indices[2].IndexName != "NIFTY IT" {
		t.Errorf("Expected volume-descending order, got %s, %s, %s",
			indices[0].IndexName, indices[1].IndexName, indices[2].IndexName)
	}
	if indices[0].Last != 18500 {
		t.Errorf("Expected comma-stripped last price 18500, got %v", indices[0].Last)
	}
}

func TestIndicesDegradesMalformedFields(t *testing.T) {
	raw := []map[string]interface{}{
		{"last": "garbage", "volume": nil},
	}

	indices := Indices(raw, time.Now())

	if indices[0].IndexName != "Unknown" {
		t.Errorf("Expected Unknown index name, got %s", indices[0].IndexName)
	}
	if indices[0].Last != 0 || indices[0].Volume != 0 {
		t.Errorf("Expected malformed numerics to degrade to 0, got %v / %v", indices[0].Last, indices[0].Volume)
	}
}

func TestSearchStocksSortedByMarketCapDescending(t *testing.T) {
	raw := []map[string]interface{}{
		{"symbol": "INFY", "marketCap": 100.0},
		{"symbol": "TCS", "marketCap": 300.0},
		{"symbol": "HDFCBANK", "marketCap": 200.0},
	}

	stocks := SearchStocks(raw, time.Now())

	if stocks[0].Symbol != "TCS" || stocks[1].Symbol != "HDFCBANK" || stocks[2].Symbol != "INFY" {
		t.Errorf("Expected market-cap-descending order, got %s, %s, %s",
			stocks[0].Symbol, stocks[1].Symbol, stocks[2].Symbol)
	}
}

func TestIntradaySortedByTimeAscending(t *testing.T) {
	raw := []map[string]interface{}{
		{"time": "2026-01-02T11:00:00Z", "price": 101.0},
		{"time": "2026-01-02T09:00:00Z", "price": 100.0},
		{"time": "2026-01-02T10:00:00Z", "price": 102.0},
	}

	points := Intraday(raw, time.Now())

	if points[0].Time != "2026-01-02T09:00:00Z" || points[2].Time != "2026-01-02T11:00:00Z" {
		t.Errorf("Expected time-ascending order, got %s .. %s", points[0].Time, points[2].Time)
	}
}

func TestStockEdgeIndicesFieldMapping(t *testing.T) {
	raw := []map[string]interface{}{
		{
			"IndexName":        "NIFTY 50",
			"Close":            18500.5,
			"Change":           120.25,
			"ChangePercentage": 0.65,
			"High":             18600.0,
			"Low":              18400.0,
		},
	}

	indices := StockEdgeIndices(raw)

	index := indices[0]
	if index.IndexName != "NIFTY 50" || index.Current != 18500.5 || index.ChangePercent != 0.65 {
		t.Errorf("Unexpected mapping: %+v", index)
	}
}

func TestInsiderDealsPage(t *testing.T) {
	raw := []map[string]interface{}{
		{
			"ClientName":          "Promoter A",
			"DealTransactionType": "Buy",
			"SecurityName":        "RELIANCE",
			"DealQuantity":        1000.0,
			"TotalDealValue":      2750000.0,
		},
		{
			"ClientName": "Promoter B",
		},
	}

	page := InsiderDeals(raw)

	if page.TotalRecords != 2 {
		t.Errorf("Expected 2 total records, got %d", page.TotalRecords)
	}
	if page.Deals[0].Name != "Promoter A" || page.Deals[0].Quantity != 1000 {
		t.Errorf("Unexpected first deal: %+v", page.Deals[0])
	}
	if page.Deals[1].TransactionType != "Unknown" {
		t.Errorf("Expected Unknown transaction type, got %s", page.Deals[1].TransactionType)
	}
}

func TestMarketTrendsFiltersCapitalMarket(t *testing.T) {
	raw := []map[string]interface{}{
		{"market": "Capital Market", "index": "NIFTY 50", "last": 18500.0, "variation": 100.0, "percentChange": 0.5},
		{"market": "Currency", "index": "USDINR"},
		{"market": "Capital Market", "index": ""},
	}

	trends := MarketTrends(raw, time.Now())

	if len(trends) != 1 {
		t.Fatalf("Expected 1 trend, got %d", len(trends))
	}
	if trends[0].Symbol != "NIFTY50" {
		t.Errorf("Expected spaces stripped from symbol, got %s", trends[0].Symbol)
	}
	if trends[0].Source != "NSE" || trends[0].Region != "India" {
		t.Errorf("Unexpected source/region: %s / %s", trends[0].Source, trends[0].Region)
	}
}

func TestSerpMarketTrendsMapping(t *testing.T) {
	raw := []map[string]interface{}{
		{"symbol": "NIFTY_50", "name": "NIFTY 50", "price": 18500.0, "change_percent": 0.4, "region": "India"},
	}

	trends := SerpMarketTrends(raw, time.Now())

	if trends[0].Source != "Google Finance" {
		t.Errorf("Expected Google Finance source, got %s", trends[0].Source)
	}
	if trends[0].ChangePercent != 0.4 {
		t.Errorf("Expected change percent 0.4, got %v", trends[0].ChangePercent)
	}
}

func TestQuoteDetailDefaults(t *testing.T) {
	detail := QuoteDetail("TCS", map[string]interface{}{})

	if detail.Info.Symbol != "TCS" {
		t.Errorf("Expected symbol fallback TCS, got %s", detail.Info.Symbol)
	}
	if detail.Info.CompanyName != "TCS Ltd" {
		t.Errorf("Expected company name fallback, got %s", detail.Info.CompanyName)
	}
	if detail.PriceInfo.LastPrice != 0 {
		t.Errorf("Expected zero last price for empty payload, got %v", detail.PriceInfo.LastPrice)
	}
}

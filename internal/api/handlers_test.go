package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"stock-market-api/internal/cache"
	"stock-market-api/internal/models"
	"stock-market-api/internal/ratelimit"
	"stock-market-api/internal/resolver"
	"stock-market-api/internal/snapshot"
	"stock-market-api/internal/testutils"
	"stock-market-api/internal/upstream"
)

const (
	nseIndicesPath      = "/live_market/dynaContent/live_watch/stock_watch/liveIndexWatchData.json"
	nseSearchPath       = "/live_market/dynaContent/live_watch/stock_watch/searchStockData.json"
	nseMarketStatusPath = "/live_market/dynaContent/live_watch/get_market_status.json"
	nseQuotePath        = "/live_market/dynaContent/live_watch/get_quote/GetQuote.json"
	bseSensexPath       = "/BseIndiaAPI/api/GetSensexData/w"
	stockEdgeIndexPath  = "/DailyDashboardApi/GetLatestIndexQuotes"
)

type testEnv struct {
	handlers       *Handlers
	router         *gin.Engine
	upstreamServer *testutils.UpstreamServer
	snapshotStore  *snapshot.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	upstreamServer := testutils.NewUpstreamServer()
	t.Cleanup(upstreamServer.Close)

	cfg := testutils.MockConfig(upstreamServer.URL())
	cfg.SnapshotFile = filepath.Join(t.TempDir(), "announcements.json")

	testLogger := testutils.MockLogger()

	responseCache := cache.New()
	t.Cleanup(responseCache.Stop)

	client := upstream.NewClient(cfg.UpstreamTimeout)
	nse := upstream.NewNSE(client, cfg.NSEBaseURL, cfg.NSEQuoteAPIURL)
	bse := upstream.NewBSE(client, cfg.BSEBaseURL)
	stockEdge := upstream.NewStockEdge(client, cfg.StockEdgeBaseURL)
	serpAPI := upstream.NewSerpAPI(client, cfg.SerpAPIBaseURL, cfg.SerpAPIKey)
	yahoo := upstream.NewYahoo(client, cfg.YahooBaseURL)

	snapshotStore, storeError := snapshot.NewStore(cfg.SnapshotFile)
	if storeError != nil {
		t.Fatalf("NewStore failed: %v", storeError)
	}
	snapshotJob := snapshot.NewJob(snapshotStore, stockEdge.CorporateAnnouncements, testLogger)

	handlers := NewHandlers(HandlerConfig{
		Logger:         testLogger,
		Configuration:  cfg,
		Cache:          responseCache,
		NSE:            nse,
		BSE:            bse,
		StockEdge:      stockEdge,
		SerpAPI:        serpAPI,
		SnapshotJob:    snapshotJob,
		QuoteResolver:  resolver.NewQuoteResolver(nse, yahoo, serpAPI, testLogger),
		TrendsResolver: resolver.NewTrendsResolver(nse, serpAPI, testLogger),
	})

	return &testEnv{
		handlers:       handlers,
		router:         handlers.SetupRoutes(),
		upstreamServer: upstreamServer,
		snapshotStore:  snapshotStore,
	}
}

func (env *testEnv) get(path string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", path, nil)
	env.router.ServeHTTP(recorder, request)
	return recorder
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.get("/health")
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", recorder.Code)
	}

	var health models.HealthCheck
	if decodeError := json.Unmarshal(recorder.Body.Bytes(), &health); decodeError != nil {
		t.Fatalf("Failed to decode health response: %v", decodeError)
	}
	if health.Status != "healthy" {
		t.Errorf("Expected healthy status, got %s", health.Status)
	}
}

func TestSearchStocksRequiresKeyword(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.get("/nse/search_stocks")
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", recorder.Code)
	}

	var errorResponse models.ErrorResponse
	if decodeError := json.Unmarshal(recorder.Body.Bytes(), &errorResponse); decodeError != nil {
		t.Fatalf("Failed to decode error response: %v", decodeError)
	}
	if errorResponse.Error != "Please provide a search keyword" {
		t.Errorf("Unexpected error message: %s", errorResponse.Error)
	}
}

func TestSearchStocksSortedByMarketCap(t *testing.T) {
	env := newTestEnv(t)
	env.upstreamServer.Handle(nseSearchPath, `[
		{"symbol": "INFY", "lastPrice": 1450.0, "marketCap": 100.0},
		{"symbol": "TCS", "lastPrice": 3850.0, "marketCap": 300.0}
	]`)

	recorder := env.get("/nse/search_stocks?keyword=t")
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", recorder.Code)
	}

	var stocks []models.StockSummary
	if decodeError := json.Unmarshal(recorder.Body.Bytes(), &stocks); decodeError != nil {
		t.Fatalf("Failed to decode search response: %v", decodeError)
	}
	if len(stocks) != 2 || stocks[0].Symbol != "TCS" {
		t.Errorf("Expected TCS first by market cap, got %+v", stocks)
	}
}

func TestIndicesCachedResponseIsIdentical(t *testing.T) {
	env := newTestEnv(t)
	env.upstreamServer.Handle(nseIndicesPath, `[
		{"indexName": "NIFTY 50", "last": 18500.0, "volume": 300},
		{"indexName": "NIFTY IT", "last": 32500.0, "volume": 100}
	]`)

	first := env.get("/nse/get_indices")
	second := env.get("/nse/get_indices")

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("Expected 200 on both requests, got %d and %d", first.Code, second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Error("Expected byte-identical bodies within the cache TTL")
	}
	if count := env.upstreamServer.Count(nseIndicesPath); count != 1 {
		t.Errorf("Expected one upstream call for two requests, got %d", count)
	}
}

func TestIndicesFallbackOnUpstreamFailure(t *testing.T) {
	env := newTestEnv(t)
	env.upstreamServer.HandleStatus(nseIndicesPath, 500)

	recorder := env.get("/nse/get_indices")
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200 with synthetic data, got %d", recorder.Code)
	}

	var indices []models.IndexQuote
	if decodeError := json.Unmarshal(recorder.Body.Bytes(), &indices); decodeError != nil {
		t.Fatalf("Failed to decode indices response: %v", decodeError)
	}
	if len(indices) != 3 {
		t.Errorf("Expected 3 synthetic indices, got %d", len(indices))
	}
	if indices[0].IndexName != "NIFTY 50" {
		t.Errorf("Expected NIFTY 50 first, got %s", indices[0].IndexName)
	}
}

func TestMarketStatusOnWeekend(t *testing.T) {
	env := newTestEnv(t)
	env.upstreamServer.Handle(nseMarketStatusPath, `{}`)

	// Saturday noon
	env.handlers.now = func() time.Time {
		return time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)
	}

	recorder := env.get("/get_market_status")
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", recorder.Code)
	}

	var status models.MarketStatus
	if decodeError := json.Unmarshal(recorder.Body.Bytes(), &status); decodeError != nil {
		t.Fatalf("Failed to decode market status: %v", decodeError)
	}
	if status.MarketStatus != "CLOSED" {
		t.Errorf("Expected CLOSED on Saturday, got %s", status.MarketStatus)
	}
	if status.NextOpen == nil {
		t.Fatal("Expected next-open timestamp on a weekend")
	}
	if *status.NextOpen != "2026-08-31T09:00:00Z" {
		t.Errorf("Expected next open Monday 09:00, got %s", *status.NextOpen)
	}
}

func TestMarketStatusDuringTradingHours(t *testing.T) {
	env := newTestEnv(t)
	env.upstreamServer.Handle(nseMarketStatusPath, `{}`)

	// Wednesday mid-morning
	env.handlers.now = func() time.Time {
		return time.Date(2026, time.August, 26, 10, 30, 0, 0, time.UTC)
	}

	recorder := env.get("/get_market_status")

	var status models.MarketStatus
	if decodeError := json.Unmarshal(recorder.Body.Bytes(), &status); decodeError != nil {
		t.Fatalf("Failed to decode market status: %v", decodeError)
	}
	if status.MarketStatus != "OPEN" {
		t.Errorf("Expected OPEN during weekday trading hours, got %s", status.MarketStatus)
	}
	if status.NextOpen != nil {
		t.Errorf("Expected no next-open on a trading day, got %s", *status.NextOpen)
	}
}

func TestQuoteInfoUpstreamFailureIs500(t *testing.T) {
	env := newTestEnv(t)
	env.upstreamServer.HandleStatus(nseQuotePath, 502)

	recorder := env.get("/nse/get_quote_info?companyName=TCS")
	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", recorder.Code)
	}

	var errorResponse models.ErrorResponse
	if decodeError := json.Unmarshal(recorder.Body.Bytes(), &errorResponse); decodeError != nil {
		t.Fatalf("Failed to decode error response: %v", decodeError)
	}
	if errorResponse.Error != "Failed to fetch quote info" {
		t.Errorf("Unexpected error message: %s", errorResponse.Error)
	}
}

func TestBSEPassthrough(t *testing.T) {
	env := newTestEnv(t)
	env.upstreamServer.Handle(bseSensexPath, `{"Sensex": 61500.25}`)

	recorder := env.get("/bse/get_indices")
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", recorder.Code)
	}

	var payload map[string]interface{}
	if decodeError := json.Unmarshal(recorder.Body.Bytes(), &payload); decodeError != nil {
		t.Fatalf("Failed to decode passthrough body: %v", decodeError)
	}
	if payload["Sensex"] != 61500.25 {
		t.Errorf("Expected untouched upstream body, got %v", payload)
	}
}

func TestStockEdgeIndicesFallbackIsCached(t *testing.T) {
	env := newTestEnv(t)
	env.upstreamServer.HandleStatus(stockEdgeIndexPath, 500)

	first := env.get("/api/stockedge/indices")
	second := env.get("/api/stockedge/indices")

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("Expected 200 on both requests, got %d and %d", first.Code, second.Code)
	}

	var indices []models.StockEdgeIndex
	if decodeError := json.Unmarshal(first.Body.Bytes(), &indices); decodeError != nil {
		t.Fatalf("Failed to decode indices: %v", decodeError)
	}
	if len(indices) != 2 {
		t.Errorf("Expected 2 synthetic StockEdge indices, got %d", len(indices))
	}
	if count := env.upstreamServer.Count(stockEdgeIndexPath); count != 1 {
		t.Errorf("Expected one upstream call for two requests, got %d", count)
	}
}

func TestCorporateAnnouncementsPagination(t *testing.T) {
	env := newTestEnv(t)

	records := []map[string]interface{}{
		{"Title": "A"}, {"Title": "B"}, {"Title": "C"}, {"Title": "D"}, {"Title": "E"},
	}
	if writeError := env.snapshotStore.Write(records); writeError != nil {
		t.Fatalf("Failed to seed snapshot: %v", writeError)
	}

	recorder := env.get("/api/stockedge/corporate-announcements?page=2&pageSize=2")
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", recorder.Code)
	}

	var page models.AnnouncementsPage
	if decodeError := json.Unmarshal(recorder.Body.Bytes(), &page); decodeError != nil {
		t.Fatalf("Failed to decode page: %v", decodeError)
	}
	if page.Total != 5 || page.Page != 2 || page.PageSize != 2 || page.TotalPages != 3 {
		t.Errorf("Unexpected page math: %+v", page)
	}
	if len(page.Data) != 2 || page.Data[0]["Title"] != "C" {
		t.Errorf("Expected second page [C, D], got %v", page.Data)
	}
}

func TestFinanceQuoteFallsBackToMockData(t *testing.T) {
	env := newTestEnv(t)
	// No provider paths registered, so every provider 404s.

	recorder := env.get("/api/finance/quote/tcs")
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200 with synthetic quote, got %d", recorder.Code)
	}

	var quote models.ResolvedQuote
	if decodeError := json.Unmarshal(recorder.Body.Bytes(), &quote); decodeError != nil {
		t.Fatalf("Failed to decode quote: %v", decodeError)
	}
	if quote.Source != "Mock Data" {
		t.Errorf("Expected Mock Data source, got %s", quote.Source)
	}
	if quote.Symbol != "TCS" {
		t.Errorf("Expected uppercased symbol, got %s", quote.Symbol)
	}
}

func TestStockEdgeStockCachedForIndicesTTL(t *testing.T) {
	env := newTestEnv(t)
	env.upstreamServer.Handle("/DailyDashboardApi/GetLatestStockQuotes", `[
		{"SecurityName": "TCS", "CompanyName": "Tata Consultancy Services Ltd", "Close": 3850.5}
	]`)
	env.upstreamServer.Handle("/api/quote-equity", `{
		"info": {"companyName": "Tata Consultancy Services Limited"},
		"priceInfo": {"lastPrice": 3850.5}
	}`)

	// The per-stock routes hold entries for the long indices TTL, not the
	// short quote TTL.
	cfg := env.handlers.configuration
	cfg.QuoteCacheTTL = time.Millisecond
	cfg.IndicesCacheTTL = time.Hour

	for _, path := range []string{"/api/stockedge/stock/TCS", "/api/nse/stock/TCS"} {
		if recorder := env.get(path); recorder.Code != http.StatusOK {
			t.Fatalf("Expected 200 for %s, got %d", path, recorder.Code)
		}
	}

	time.Sleep(10 * time.Millisecond)

	for _, path := range []string{"/api/stockedge/stock/TCS", "/api/nse/stock/TCS"} {
		if recorder := env.get(path); recorder.Code != http.StatusOK {
			t.Fatalf("Expected 200 for %s, got %d", path, recorder.Code)
		}
	}

	if count := env.upstreamServer.Count("/DailyDashboardApi/GetLatestStockQuotes"); count != 1 {
		t.Errorf("Expected stock quote entry to outlive the quote TTL, got %d upstream calls", count)
	}
	if count := env.upstreamServer.Count("/api/quote-equity"); count != 1 {
		t.Errorf("Expected stock detail entry to outlive the quote TTL, got %d upstream calls", count)
	}
}

func TestSearchStockEdgeWithoutQueryFallsBack(t *testing.T) {
	env := newTestEnv(t)
	// No search path registered, so the upstream call 404s.

	recorder := env.get("/api/stockedge/search")
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200 with synthetic results, got %d", recorder.Code)
	}

	var results []models.SearchResult
	if decodeError := json.Unmarshal(recorder.Body.Bytes(), &results); decodeError != nil {
		t.Fatalf("Failed to decode search results: %v", decodeError)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 synthetic results, got %d", len(results))
	}
	if results[0].Security != "RELIANCE" {
		t.Errorf("Unexpected first result: %+v", results[0])
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.get("/no/such/route")
	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", recorder.Code)
	}
}

func TestRateLimitExceeded(t *testing.T) {
	env := newTestEnv(t)

	cfg := env.handlers.configuration
	cfg.RateLimitEnabled = true
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Hour
	env.handlers.rateLimiter = ratelimit.NewLimiter(cfg, testutils.MockLogger())
	router := env.handlers.SetupRoutes()

	for request := 0; request < 2; request++ {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest("GET", "/health", nil))
		if recorder.Code != http.StatusOK {
			t.Fatalf("Expected request %d admitted, got %d", request+1, recorder.Code)
		}
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/health", nil))
	if recorder.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429 over the limit, got %d", recorder.Code)
	}
	if remaining := recorder.Header().Get("X-RateLimit-Remaining"); remaining != "0" {
		t.Errorf("Expected X-RateLimit-Remaining 0, got %s", remaining)
	}
}

func TestSecurityHeadersPresent(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.get("/health")
	if header := recorder.Header().Get("X-Content-Type-Options"); header != "nosniff" {
		t.Errorf("Expected nosniff header, got %s", header)
	}
	if header := recorder.Header().Get("X-Request-ID"); header == "" {
		t.Error("Expected a generated request ID header")
	}
	if header := recorder.Header().Get("Access-Control-Allow-Origin"); header != "*" {
		t.Errorf("Expected permissive CORS origin, got %s", header)
	}
}

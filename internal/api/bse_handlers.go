package api

import (
	"context"
	"encoding/json"

	"github.com/gin-gonic/gin"
)

// GetBSEIndices proxies the BSE sensex index payload.
func (handlers *Handlers) GetBSEIndices(ginContext *gin.Context) {
	handlers.passthroughHandler(ginContext, "Failed to fetch BSE indices", handlers.bse.Indices)
}

// GetBSEIndexInfo proxies the detail payload for one BSE index.
func (handlers *Handlers) GetBSEIndexInfo(ginContext *gin.Context) {
	indexID := ginContext.Query("indexId")
	handlers.passthroughHandler(ginContext, "Failed to fetch BSE index info", func(ctx context.Context) (json.RawMessage, error) {
		return handlers.bse.IndexInfo(ctx, indexID)
	})
}

// GetBSEGainers proxies the BSE top gainers.
func (handlers *Handlers) GetBSEGainers(ginContext *gin.Context) {
	handlers.passthroughHandler(ginContext, "Failed to fetch BSE gainers", handlers.bse.Gainers)
}

// GetBSELosers proxies the BSE top losers.
func (handlers *Handlers) GetBSELosers(ginContext *gin.Context) {
	handlers.passthroughHandler(ginContext, "Failed to fetch BSE losers", handlers.bse.Losers)
}

// GetBSETopTurnovers proxies the BSE top turnovers.
func (handlers *Handlers) GetBSETopTurnovers(ginContext *gin.Context) {
	handlers.passthroughHandler(ginContext, "Failed to fetch BSE top turnovers", handlers.bse.TopTurnovers)
}

// GetBSECompanyInfo proxies the detail payload for one BSE listed company.
func (handlers *Handlers) GetBSECompanyInfo(ginContext *gin.Context) {
	companyKey := ginContext.Query("companyKey")
	handlers.passthroughHandler(ginContext, "Failed to fetch BSE company info", func(ctx context.Context) (json.RawMessage, error) {
		return handlers.bse.CompanyInfo(ctx, companyKey)
	})
}

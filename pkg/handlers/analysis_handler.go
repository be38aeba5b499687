package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"msme-ai-engine/pkg/models"
	"msme-ai-engine/pkg/services"
	"msme-ai-engine/pkg/storage"
)

// AnalysisHandler serves the liveness probe, the store probe and the
// analysis endpoints.
type AnalysisHandler struct {
	service  *services.RecommendationService
	products storage.ProductStore
	history  storage.HistoryStore
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(service *services.RecommendationService, products storage.ProductStore, history storage.HistoryStore) *AnalysisHandler {
	return &AnalysisHandler{
		service:  service,
		products: products,
		history:  history,
	}
}

// HealthCheck reports service liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "MSME AI backend is running",
	})
}

// TestDB probes product-store connectivity. A failing store is reported in
// the envelope, never as a transport error.
func (h *AnalysisHandler) TestDB(c *gin.Context) {
	count, err := h.products.Count(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Connected to product store",
		"product_count": count,
	})
}

// Analyze runs one recommendation analysis.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	result, err := h.service.Analyze(c.Request.Context(), &req)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, services.ErrInvalidProductID), errors.Is(err, services.ErrProductNotFound):
			// Business-rule failures keep HTTP 200; callers read the envelope.
			status = http.StatusOK
		case errors.Is(err, services.ErrInvalidRequest):
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// GetHistory returns the most recent prediction-history records.
func (h *AnalysisHandler) GetHistory(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	records, err := h.history.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    records,
		"count":   len(records),
	})
}

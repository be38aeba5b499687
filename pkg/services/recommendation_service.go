package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"msme-ai-engine/pkg/models"
	"msme-ai-engine/pkg/storage"
)

// Caller-visible analysis errors. Handlers map these onto the response
// envelope; anything else is an internal failure.
var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrInvalidProductID = errors.New("Invalid product_id format")
	ErrProductNotFound  = errors.New("Product not found")
)

// RecommendationService orchestrates one analysis call: product lookup,
// feature construction, the three model invocations, alert evaluation and
// the history write.
type RecommendationService struct {
	products   storage.ProductStore
	history    storage.HistoryStore
	predictors *PredictorSet
}

// NewRecommendationService creates a new RecommendationService.
func NewRecommendationService(products storage.ProductStore, history storage.HistoryStore, predictors *PredictorSet) *RecommendationService {
	return &RecommendationService{
		products:   products,
		history:    history,
		predictors: predictors,
	}
}

// Analyze runs the full recommendation flow for one request.
func (s *RecommendationService) Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalysisResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	productID, err := uuid.Parse(strings.TrimSpace(req.ProductID))
	if err != nil {
		return nil, ErrInvalidProductID
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("product lookup failed: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	row := BuildFeatureRow(product, req)

	price, err := s.predictors.Price.Predict(ProjectFeatures(row, s.predictors.Price.ExpectedFeatures()))
	if err != nil {
		return nil, fmt.Errorf("price model failed: %w", err)
	}
	demand, err := s.predictors.Demand.Predict(ProjectFeatures(row, s.predictors.Demand.ExpectedFeatures()))
	if err != nil {
		return nil, fmt.Errorf("demand model failed: %w", err)
	}
	stock, err := s.predictors.Stock.Predict(ProjectFeatures(row, s.predictors.Stock.ExpectedFeatures()))
	if err != nil {
		return nil, fmt.Errorf("stock model failed: %w", err)
	}
	if demand.Label == "" {
		return nil, fmt.Errorf("demand model %s returned no class label", s.predictors.Demand.Name())
	}
	if stock.Label == "" {
		return nil, fmt.Errorf("stock model %s returned no class label", s.predictors.Stock.Name())
	}

	// The feature row defaults missing stock to 50 for the models, while
	// alerting reads the raw attribute and treats absent as 0. The trained
	// pipeline behaves this way; keep both defaults in sync with it.
	alerts := EvaluateAlerts(AlertInput{
		RecommendedPrice: price.Value,
		CompetitorPrice:  req.CompetitorPrice,
		DemandLevel:      demand.Label,
		CurrentStock:     product.StockQuantityOr(0),
		Discount:         req.Discount,
		MarketingEffect:  req.MarketingEffect,
		IsHoliday:        req.IsHoliday,
	})

	roundedPrice := roundPrice(price.Value)

	record := models.HistoryRecord{
		ProductID:        product.ID,
		RecommendedPrice: roundedPrice,
		DemandLevel:      demand.Label,
		InventoryAction:  stock.Label,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.history.Append(ctx, record); err != nil {
		// The prediction is the caller's value; history is an audit trail.
		// Log the failure and still return the result.
		log.Printf("⚠ Failed to append prediction history for product %s: %v", product.ID, err)
	}

	return &models.AnalysisResult{
		ProductName:      product.Name,
		RecommendedPrice: roundedPrice,
		PricingFlag:      alerts.PricingFlag,
		DemandLevel:      demand.Label,
		InventoryAction:  stock.Label,
		CustomerBehavior: alerts.CustomerBehavior,
		Alerts:           alerts.Alerts,
	}, nil
}

// validateRequest enforces the request contract before any lookup or
// feature construction, independent of transport-level binding.
func validateRequest(req *models.AnalyzeRequest) error {
	if strings.TrimSpace(req.ProductID) == "" {
		return fmt.Errorf("%w: product_id is required", ErrInvalidRequest)
	}
	if req.CompetitorPrice <= 0 {
		return fmt.Errorf("%w: competitor_price must be greater than 0", ErrInvalidRequest)
	}
	if req.Discount < 0 || req.Discount > 1 {
		return fmt.Errorf("%w: discount must be between 0 and 1", ErrInvalidRequest)
	}
	if req.MarketingEffect < 0.5 || req.MarketingEffect > 2.0 {
		return fmt.Errorf("%w: marketing_effect must be between 0.5 and 2.0", ErrInvalidRequest)
	}
	return nil
}

// roundPrice rounds a price to 2 decimal places.
func roundPrice(value float64) float64 {
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

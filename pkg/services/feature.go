package services

import (
	"msme-ai-engine/pkg/models"
)

// Feature column names as the training pipeline produced them.
const (
	FeatureBaseSales         = "Base_Sales"
	FeatureMarketingEffect   = "Marketing_Effect"
	FeatureSeasonalEffect    = "Seasonal_Effect"
	FeatureDiscount          = "Discount"
	FeatureCompetitorPrice   = "Competitor_Price"
	FeatureStockAvailability = "Stock_Availability"
	FeaturePublicHoliday     = "Public_Holiday"
)

// Defaults applied when the product record lacks an attribute.
const (
	defaultBaseSales     = 100.0
	defaultStockQuantity = 50.0
)

// FeatureRow maps feature names to numeric values for one analysis call.
type FeatureRow map[string]float64

// BuildFeatureRow derives the shared feature row from the product record
// and the request fields.
func BuildFeatureRow(product *models.Product, req *models.AnalyzeRequest) FeatureRow {
	seasonalEffect := 1.0
	publicHoliday := 0.0
	if req.IsHoliday {
		seasonalEffect = 1.2
		publicHoliday = 1.0
	}

	return FeatureRow{
		FeatureBaseSales:         product.BaseSalesOr(defaultBaseSales),
		FeatureMarketingEffect:   req.MarketingEffect,
		FeatureSeasonalEffect:    seasonalEffect,
		FeatureDiscount:          req.Discount,
		FeatureCompetitorPrice:   req.CompetitorPrice,
		FeatureStockAvailability: product.StockQuantityOr(defaultStockQuantity),
		FeaturePublicHoliday:     publicHoliday,
	}
}

// ProjectFeatures selects the expected columns from the row in order,
// substituting 0 for any column the row does not carry. Each predictor gets
// its own projection, so schema drift in one model never touches the others.
func ProjectFeatures(row FeatureRow, expected []string) []float64 {
	vector := make([]float64, len(expected))
	for i, name := range expected {
		vector[i] = row[name]
	}
	return vector
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Demand levels produced by the demand model.
const (
	DemandHigh   = "High"
	DemandMedium = "Medium"
	DemandLow    = "Low"
)

// Pricing flags relative to the competitor price.
const (
	PricingTooHigh     = "Too High"
	PricingTooLow      = "Too Low"
	PricingCompetitive = "Competitive"
)

// Customer behavior labels.
const (
	BehaviorPriceSensitive  = "Price Sensitive"
	BehaviorSeasonalDriven  = "Seasonal Driven"
	BehaviorPromotionDriven = "Promotion Driven"
	BehaviorStableDemand    = "Stable Demand"
)

// AnalyzeRequest represents an incoming analysis request
type AnalyzeRequest struct {
	ProductID       string  `json:"product_id" binding:"required"`
	CompetitorPrice float64 `json:"competitor_price" binding:"required,gt=0"`
	Discount        float64 `json:"discount" binding:"gte=0,lte=1"`
	MarketingEffect float64 `json:"marketing_effect" binding:"required,gte=0.5,lte=2"`
	IsHoliday       bool    `json:"is_holiday"`
}

// Product is a read-only product record from the product store.
// BaseSales and StockQuantity are nil when the record does not carry them;
// defaults are resolved by the caller, not here.
type Product struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"product_name"`
	BaseSales     *float64  `json:"base_sales,omitempty"`
	StockQuantity *float64  `json:"stock_quantity,omitempty"`
}

// BaseSalesOr returns the base sales figure, or def when absent.
func (p *Product) BaseSalesOr(def float64) float64 {
	if p.BaseSales == nil {
		return def
	}
	return *p.BaseSales
}

// StockQuantityOr returns the stock quantity, or def when absent.
func (p *Product) StockQuantityOr(def float64) float64 {
	if p.StockQuantity == nil {
		return def
	}
	return *p.StockQuantity
}

// AnalysisResult represents the recommendation bundle for one analysis call
type AnalysisResult struct {
	ProductName      string   `json:"product_name"`
	RecommendedPrice float64  `json:"recommended_price"`
	PricingFlag      string   `json:"pricing_flag"`
	DemandLevel      string   `json:"demand_level"`
	InventoryAction  string   `json:"inventory_action"`
	CustomerBehavior string   `json:"customer_behavior"`
	Alerts           []string `json:"alerts"`
}

// HistoryRecord is one immutable prediction-history entry
type HistoryRecord struct {
	ProductID        uuid.UUID `json:"product_id"`
	RecommendedPrice float64   `json:"recommended_price"`
	DemandLevel      string    `json:"demand_level"`
	InventoryAction  string    `json:"inventory_action"`
	CreatedAt        time.Time `json:"created_at"`
}

package services

import (
	"msme-ai-engine/pkg/models"
)

// Alert thresholds.
const (
	priceTooHighRatio     = 1.15
	priceTooLowRatio      = 0.85
	urgentRestockStock    = 20.0
	monitorStock          = 15.0
	overstockStock        = 120.0
	heavyDiscount         = 0.3
	priceSensitiveLevel   = 0.2
	highMarketingSpend    = 1.5
	promotionDrivenEffect = 1.2
)

// AlertInput carries the fields the alert rules read. RecommendedPrice is
// the raw model output; rounding happens at the response boundary only.
type AlertInput struct {
	RecommendedPrice float64
	CompetitorPrice  float64
	DemandLevel      string
	CurrentStock     float64
	Discount         float64
	MarketingEffect  float64
	IsHoliday        bool
}

// AlertResult is the output of one rule-engine evaluation.
type AlertResult struct {
	PricingFlag      string
	Alerts           []string
	CustomerBehavior string
}

// EvaluateAlerts applies the deterministic business rules to one prediction.
// Alert order is fixed: pricing, demand/inventory, discount, marketing.
// The demand/inventory rules form a priority chain so at most one of them
// fires; the discount and marketing rules are independent and may co-occur.
func EvaluateAlerts(in AlertInput) AlertResult {
	result := AlertResult{Alerts: []string{}}

	switch {
	case in.RecommendedPrice > in.CompetitorPrice*priceTooHighRatio:
		result.PricingFlag = models.PricingTooHigh
		result.Alerts = append(result.Alerts, "⚠ Price significantly higher than competitor — risk of losing customers")
	case in.RecommendedPrice < in.CompetitorPrice*priceTooLowRatio:
		result.PricingFlag = models.PricingTooLow
		result.Alerts = append(result.Alerts, "⚠ Price too low — margin risk")
	default:
		result.PricingFlag = models.PricingCompetitive
	}

	switch {
	case in.DemandLevel == models.DemandHigh && in.CurrentStock < urgentRestockStock:
		result.Alerts = append(result.Alerts, "🚨 Urgent: High demand but very low stock — restock immediately")
	case in.DemandLevel == models.DemandMedium && in.CurrentStock < monitorStock:
		result.Alerts = append(result.Alerts, "⚠ Moderate demand with limited stock — monitor closely")
	case in.DemandLevel == models.DemandLow && in.CurrentStock > overstockStock:
		result.Alerts = append(result.Alerts, "📦 Overstock risk — consider promotions")
	}

	if in.Discount > heavyDiscount {
		result.Alerts = append(result.Alerts, "💰 Heavy discount applied — check profit margins")
	}

	if in.MarketingEffect > highMarketingSpend && in.DemandLevel == models.DemandLow {
		result.Alerts = append(result.Alerts, "📉 Marketing spending high but demand still low — review campaign strategy")
	}

	switch {
	case in.Discount > priceSensitiveLevel:
		result.CustomerBehavior = models.BehaviorPriceSensitive
	case in.IsHoliday:
		result.CustomerBehavior = models.BehaviorSeasonalDriven
	case in.MarketingEffect > promotionDrivenEffect:
		result.CustomerBehavior = models.BehaviorPromotionDriven
	default:
		result.CustomerBehavior = models.BehaviorStableDemand
	}

	return result
}

package services

import (
	"strings"
	"testing"

	"msme-ai-engine/pkg/models"
)

func TestPricingFlagThresholds(t *testing.T) {
	testCases := []struct {
		name          string
		price         float64
		competitor    float64
		expectedFlag  string
		expectedAlert bool
	}{
		{"well above competitor", 120, 100, models.PricingTooHigh, true},
		{"well below competitor", 80, 100, models.PricingTooLow, true},
		{"matching competitor", 100, 100, models.PricingCompetitive, false},
		{"exactly at 1.15x boundary", 115, 100, models.PricingCompetitive, false},
		{"exactly at 0.85x boundary", 85, 100, models.PricingCompetitive, false},
		{"just above 1.15x", 115.01, 100, models.PricingTooHigh, true},
		{"just below 0.85x", 84.99, 100, models.PricingTooLow, true},
	}

	for _, tc := range testCases {
		result := EvaluateAlerts(AlertInput{
			RecommendedPrice: tc.price,
			CompetitorPrice:  tc.competitor,
			DemandLevel:      models.DemandMedium,
			CurrentStock:     50,
		})

		if result.PricingFlag != tc.expectedFlag {
			t.Errorf("%s: PricingFlag = %q, expected %q", tc.name, result.PricingFlag, tc.expectedFlag)
		}

		hasPricingAlert := false
		for _, alert := range result.Alerts {
			if strings.Contains(alert, "Price") {
				hasPricingAlert = true
			}
		}
		if hasPricingAlert != tc.expectedAlert {
			t.Errorf("%s: pricing alert present = %v, expected %v", tc.name, hasPricingAlert, tc.expectedAlert)
		}
	}
}

func TestDemandInventoryPriorityChain(t *testing.T) {
	demandAlertCount := func(alerts []string) int {
		count := 0
		for _, alert := range alerts {
			if strings.Contains(alert, "restock immediately") ||
				strings.Contains(alert, "monitor closely") ||
				strings.Contains(alert, "Overstock risk") {
				count++
			}
		}
		return count
	}

	testCases := []struct {
		name     string
		demand   string
		stock    float64
		expected string
	}{
		{"high demand low stock", models.DemandHigh, 10, "restock immediately"},
		{"medium demand limited stock", models.DemandMedium, 10, "monitor closely"},
		{"low demand overstock", models.DemandLow, 130, "Overstock risk"},
		{"high demand enough stock", models.DemandHigh, 50, ""},
		{"medium demand enough stock", models.DemandMedium, 30, ""},
		{"low demand normal stock", models.DemandLow, 60, ""},
	}

	for _, tc := range testCases {
		result := EvaluateAlerts(AlertInput{
			RecommendedPrice: 100,
			CompetitorPrice:  100,
			DemandLevel:      tc.demand,
			CurrentStock:     tc.stock,
		})

		count := demandAlertCount(result.Alerts)
		if tc.expected == "" {
			if count != 0 {
				t.Errorf("%s: expected no demand/inventory alert, got %v", tc.name, result.Alerts)
			}
			continue
		}

		if count != 1 {
			t.Errorf("%s: expected exactly one demand/inventory alert, got %d (%v)", tc.name, count, result.Alerts)
		}
		found := false
		for _, alert := range result.Alerts {
			if strings.Contains(alert, tc.expected) {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: expected alert containing %q, got %v", tc.name, tc.expected, result.Alerts)
		}
	}
}

func TestDiscountRiskAlert(t *testing.T) {
	result := EvaluateAlerts(AlertInput{
		RecommendedPrice: 100,
		CompetitorPrice:  100,
		DemandLevel:      models.DemandMedium,
		CurrentStock:     50,
		Discount:         0.35,
	})

	found := false
	for _, alert := range result.Alerts {
		if strings.Contains(alert, "Heavy discount") {
			found = true
		}
	}
	if !found {
		t.Errorf("discount=0.35: expected heavy-discount alert, got %v", result.Alerts)
	}
}

func TestMarketingEfficiencyAlert(t *testing.T) {
	lowDemand := EvaluateAlerts(AlertInput{
		RecommendedPrice: 100,
		CompetitorPrice:  100,
		DemandLevel:      models.DemandLow,
		CurrentStock:     50,
		MarketingEffect:  1.6,
	})

	found := false
	for _, alert := range lowDemand.Alerts {
		if strings.Contains(alert, "review campaign strategy") {
			found = true
		}
	}
	if !found {
		t.Errorf("marketing=1.6, demand=Low: expected campaign alert, got %v", lowDemand.Alerts)
	}

	highDemand := EvaluateAlerts(AlertInput{
		RecommendedPrice: 100,
		CompetitorPrice:  100,
		DemandLevel:      models.DemandHigh,
		CurrentStock:     50,
		MarketingEffect:  1.6,
	})
	for _, alert := range highDemand.Alerts {
		if strings.Contains(alert, "review campaign strategy") {
			t.Errorf("marketing=1.6, demand=High: campaign alert must not fire, got %v", highDemand.Alerts)
		}
	}
}

func TestCustomerBehaviorChain(t *testing.T) {
	testCases := []struct {
		name            string
		discount        float64
		isHoliday       bool
		marketingEffect float64
		expected        string
	}{
		{"discount wins over holiday and marketing", 0.25, true, 1.6, models.BehaviorPriceSensitive},
		{"discount wins alone", 0.25, false, 0.8, models.BehaviorPriceSensitive},
		{"holiday wins over marketing", 0.1, true, 1.6, models.BehaviorSeasonalDriven},
		{"marketing driven", 0.1, false, 1.3, models.BehaviorPromotionDriven},
		{"stable demand", 0.1, false, 1.0, models.BehaviorStableDemand},
		{"discount exactly 0.2 falls through", 0.2, false, 1.0, models.BehaviorStableDemand},
		{"marketing exactly 1.2 falls through", 0.0, false, 1.2, models.BehaviorStableDemand},
	}

	for _, tc := range testCases {
		result := EvaluateAlerts(AlertInput{
			RecommendedPrice: 100,
			CompetitorPrice:  100,
			DemandLevel:      models.DemandMedium,
			CurrentStock:     50,
			Discount:         tc.discount,
			MarketingEffect:  tc.marketingEffect,
			IsHoliday:        tc.isHoliday,
		})

		if result.CustomerBehavior != tc.expected {
			t.Errorf("%s: CustomerBehavior = %q, expected %q", tc.name, result.CustomerBehavior, tc.expected)
		}
	}
}

func TestAlertOrdering(t *testing.T) {
	// Too High pricing, overstock, heavy discount and inefficient marketing
	// all at once: order must be pricing, inventory, discount, marketing.
	result := EvaluateAlerts(AlertInput{
		RecommendedPrice: 200,
		CompetitorPrice:  100,
		DemandLevel:      models.DemandLow,
		CurrentStock:     130,
		Discount:         0.4,
		MarketingEffect:  1.6,
	})

	if len(result.Alerts) != 4 {
		t.Fatalf("expected 4 alerts, got %d: %v", len(result.Alerts), result.Alerts)
	}

	expectedOrder := []string{"higher than competitor", "Overstock risk", "Heavy discount", "review campaign strategy"}
	for i, fragment := range expectedOrder {
		if !strings.Contains(result.Alerts[i], fragment) {
			t.Errorf("alert %d = %q, expected it to contain %q", i, result.Alerts[i], fragment)
		}
	}
}

package revelations

import (
	"fmt"
	"math"

	"github.com/growthlab-hq/growth-backend/internal/assessment/domain"
)

// Config holds the fallback rates used when enrichment brought no market data.
type Config struct {
	DefaultHourlyRate float64
	WeeksPerYear      float64
	AssumedCostRatio  float64
}

func DefaultConfig() Config {
	return Config{
		DefaultHourlyRate: 100,
		WeeksPerYear:      48,
		AssumedCostRatio:  0.55,
	}
}

// Engine derives the secondary heatmap metrics (founder tax, unit economics)
// from intake plus whatever enrichment produced. Pure; enrichment may be nil
// entirely.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Compute returns the revelations map persisted under the scores object.
// An error here degrades the stage: the key is omitted, the run continues.
func (e *Engine) Compute(intake domain.Intake, enrichment *domain.EnrichmentResult) (map[string]any, error) {
	annual := intake.AnnualRevenue
	if annual <= 0 {
		annual = intake.MonthlyRevenue * 12
	}

	if annual <= 0 && intake.FounderDeliveryHours <= 0 {
		return nil, fmt.Errorf("insufficient intake data for revelations")
	}

	rate := e.cfg.DefaultHourlyRate
	confidence := "estimated"
	if enrichment != nil && enrichment.Market != nil && enrichment.Market.AvgHourlyRate > 0 {
		rate = enrichment.Market.AvgHourlyRate
		confidence = "market"
	}

	out := map[string]any{
		"confidence": confidence,
	}

	if intake.FounderDeliveryHours > 0 {
		founderTax := intake.FounderDeliveryHours * rate * e.cfg.WeeksPerYear
		tax := map[string]any{
			"annual_cost":  round2(founderTax),
			"weekly_hours": intake.FounderDeliveryHours,
			"hourly_rate":  rate,
		}
		if annual > 0 {
			tax["share_of_revenue"] = round2(founderTax / annual)
		}
		out["founder_tax"] = tax
	}

	if annual > 0 {
		unit := map[string]any{
			"annual_revenue":   round2(annual),
			"estimated_margin": round2(annual * (1 - e.cfg.AssumedCostRatio)),
		}
		if intake.ClientCount > 0 {
			unit["revenue_per_client"] = round2(annual / float64(intake.ClientCount))
		}
		out["unit_economics"] = unit
	}

	if enrichment != nil && len(enrichment.Competitors) > 0 {
		out["competitor_count"] = len(enrichment.Competitors)
	}

	return out, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package scoring

import (
	"fmt"
	"math"

	"github.com/growthlab-hq/growth-backend/internal/assessment/domain"
)

// Zone groups the self-assessment questions feeding one zone score.
type Zone struct {
	Name      string
	Questions []string
	Weight    float64
}

// Config is the immutable zone/weight scheme. Injected so the weighting is
// independently testable.
type Config struct {
	Zones []Zone
}

// DefaultConfig returns the production zone scheme for growth_assessment_v2.
func DefaultConfig() Config {
	return Config{
		Zones: []Zone{
			{
				Name:      "acquisition",
				Questions: []string{"acq_pipeline", "acq_channels", "acq_referrals"},
				Weight:    0.25,
			},
			{
				Name:      "conversion",
				Questions: []string{"conv_process", "conv_proposals", "conv_pricing"},
				Weight:    0.2,
			},
			{
				Name:      "delivery",
				Questions: []string{"del_quality", "del_capacity", "del_founder_dependence"},
				Weight:    0.25,
			},
			{
				Name:      "retention",
				Questions: []string{"ret_recurring", "ret_expansion"},
				Weight:    0.15,
			},
			{
				Name:      "operations",
				Questions: []string{"ops_systems", "ops_finance", "ops_team"},
				Weight:    0.15,
			},
		},
	}
}

// Engine is the deterministic scorer. No I/O; a failure here is a defect and
// propagates as a hard error of the submission.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Score computes per-zone scores and the weighted overall from the intake's
// 1-5 self-assessment answers. Answers outside a zone's question list are
// ignored; a zone with no answers scores zero rather than being dropped.
func (e *Engine) Score(intake domain.Intake) (map[string]float64, float64, error) {
	if len(e.cfg.Zones) == 0 {
		return nil, 0, fmt.Errorf("scoring config has no zones")
	}

	zones := make(map[string]float64, len(e.cfg.Zones))
	var overall, totalWeight float64

	for _, zone := range e.cfg.Zones {
		score := zoneScore(zone, intake.Answers)
		zones[zone.Name] = score
		overall += score * zone.Weight
		totalWeight += zone.Weight
	}

	if totalWeight <= 0 {
		return nil, 0, fmt.Errorf("scoring config weights sum to zero")
	}

	return zones, round1(overall / totalWeight), nil
}

func zoneScore(zone Zone, answers map[string]int) float64 {
	var sum, n float64
	for _, q := range zone.Questions {
		v, ok := answers[q]
		if !ok {
			continue
		}
		sum += clampAnswer(v)
		n++
	}
	if n == 0 {
		return 0
	}
	// 1-5 answers land on 0-100.
	return round1(clamp(sum/n*20, 0, 100))
}

func clampAnswer(v int) float64 {
	return clamp(float64(v), 0, 5)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

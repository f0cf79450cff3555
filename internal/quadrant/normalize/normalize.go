// Package normalize maps each tool's native score scale onto the common
// 0-100 range the fusion engine blends on.
package normalize

import (
	"math"

	"github.com/growthlab-hq/growth-backend/internal/quadrant/domain"
)

// BriefWeights is the discovery-brief depth heuristic: credit for having any
// brief at all, bounded credit for volume, a flat bonus for the deep-dive
// variant, and a proportional bonus for how complete the richest brief is.
type BriefWeights struct {
	BaseCredit        float64
	PerExtraRecord    float64
	ExtraRecordCap    float64
	DeepBonus         float64
	CompletenessBonus float64
}

func DefaultBriefWeights() BriefWeights {
	return BriefWeights{
		BaseCredit:        40,
		PerExtraRecord:    10,
		ExtraRecordCap:    30,
		DeepBonus:         10,
		CompletenessBonus: 20,
	}
}

// Clamp bounds a score to [0, 100].
func Clamp(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}

// FromFive rescales a 0-5 score onto 0-100.
func FromFive(v float64) float64 {
	return Clamp(v * 20)
}

// FromTen rescales a 0-10 score onto 0-100.
func FromTen(v float64) float64 {
	return Clamp(v * 10)
}

// CallScore combines the 0-10 call score with its 0-100 conversion-rate
// companion, 70/30. Without a companion the rescaled call score stands alone.
func CallScore(snap domain.CallSnapshot) float64 {
	score := FromTen(snap.Score)
	if snap.ConversionRate == nil {
		return score
	}
	return Clamp(score*0.7 + Clamp(*snap.ConversionRate)*0.3)
}

// BriefDepth turns brief volume and structure into a 0-100 score. The tool
// has no single native score, so depth of engagement stands in for one.
func BriefDepth(stats domain.BriefStats, w BriefWeights) float64 {
	if stats.Count <= 0 {
		return 0
	}

	score := w.BaseCredit

	extra := float64(stats.Count-1) * w.PerExtraRecord
	score += math.Min(extra, w.ExtraRecordCap)

	if stats.HasDeep {
		score += w.DeepBonus
	}

	if stats.TotalSections > 0 {
		ratio := float64(stats.RichestSections) / float64(stats.TotalSections)
		score += math.Min(ratio, 1) * w.CompletenessBonus
	}

	return Clamp(score)
}

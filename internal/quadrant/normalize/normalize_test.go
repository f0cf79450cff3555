package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/growthlab-hq/growth-backend/internal/quadrant/domain"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-12))
	assert.Equal(t, 55.5, Clamp(55.5))
	assert.Equal(t, 100.0, Clamp(140))
}

func TestFromFive(t *testing.T) {
	assert.Equal(t, 0.0, FromFive(0))
	assert.Equal(t, 70.0, FromFive(3.5))
	assert.Equal(t, 100.0, FromFive(5))
	assert.Equal(t, 100.0, FromFive(6))
}

func TestFromTen(t *testing.T) {
	assert.Equal(t, 85.0, FromTen(8.5))
	assert.Equal(t, 100.0, FromTen(12))
}

func TestCallScore_WithoutConversionRate(t *testing.T) {
	got := CallScore(domain.CallSnapshot{Score: 8})
	assert.Equal(t, 80.0, got)
}

func TestCallScore_BlendsConversionRate(t *testing.T) {
	rate := 40.0
	got := CallScore(domain.CallSnapshot{Score: 8, ConversionRate: &rate})
	// 80 x 0.7 + 40 x 0.3
	assert.Equal(t, 68.0, got)
}

func TestCallScore_ClampsWildConversionRate(t *testing.T) {
	rate := 250.0
	got := CallScore(domain.CallSnapshot{Score: 10, ConversionRate: &rate})
	assert.Equal(t, 100.0, got)
}

func TestBriefDepth_NoBriefsIsZero(t *testing.T) {
	got := BriefDepth(domain.BriefStats{}, DefaultBriefWeights())
	assert.Equal(t, 0.0, got)
}

func TestBriefDepth_SingleShallowBrief(t *testing.T) {
	got := BriefDepth(domain.BriefStats{Count: 1}, DefaultBriefWeights())
	assert.Equal(t, 40.0, got)
}

func TestBriefDepth_VolumeCreditCaps(t *testing.T) {
	// 9 extra briefs would earn 90; the cap holds it at 30.
	got := BriefDepth(domain.BriefStats{Count: 10}, DefaultBriefWeights())
	assert.Equal(t, 70.0, got)
}

func TestBriefDepth_DeepAndCompleteMaxesOut(t *testing.T) {
	got := BriefDepth(domain.BriefStats{
		Count:           4,
		HasDeep:         true,
		RichestSections: 8,
		TotalSections:   8,
	}, DefaultBriefWeights())
	// 40 base + 30 volume + 10 deep + 20 completeness.
	assert.Equal(t, 100.0, got)
}

func TestBriefDepth_PartialCompleteness(t *testing.T) {
	got := BriefDepth(domain.BriefStats{
		Count:           1,
		RichestSections: 4,
		TotalSections:   8,
	}, DefaultBriefWeights())
	assert.Equal(t, 50.0, got)
}

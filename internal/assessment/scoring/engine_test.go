package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growthlab-hq/growth-backend/internal/assessment/domain"
)

func fullAnswers(v int) map[string]int {
	answers := map[string]int{}
	for _, zone := range DefaultConfig().Zones {
		for _, q := range zone.Questions {
			answers[q] = v
		}
	}
	return answers
}

func TestScore_AllFivesIsPerfect(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	zones, overall, err := engine.Score(domain.Intake{Answers: fullAnswers(5)})
	require.NoError(t, err)

	assert.Equal(t, 100.0, overall)
	for name, score := range zones {
		assert.Equal(t, 100.0, score, "zone %s", name)
	}
}

func TestScore_AllOnesIsFloor(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	zones, overall, err := engine.Score(domain.Intake{Answers: fullAnswers(1)})
	require.NoError(t, err)

	assert.Equal(t, 20.0, overall)
	for name, score := range zones {
		assert.Equal(t, 20.0, score, "zone %s", name)
	}
}

func TestScore_UnansweredZoneScoresZero(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	answers := fullAnswers(5)
	for _, q := range []string{"ret_recurring", "ret_expansion"} {
		delete(answers, q)
	}

	zones, overall, err := engine.Score(domain.Intake{Answers: answers})
	require.NoError(t, err)

	assert.Equal(t, 0.0, zones["retention"])
	// Retention (weight 0.15) drops out of the numerator but not the
	// denominator.
	assert.Equal(t, 85.0, overall)
}

func TestScore_PartialZoneAveragesPresentAnswers(t *testing.T) {
	engine := NewEngine(Config{Zones: []Zone{
		{Name: "acquisition", Questions: []string{"a", "b", "c"}, Weight: 1},
	}})

	zones, overall, err := engine.Score(domain.Intake{Answers: map[string]int{"a": 4, "b": 2}})
	require.NoError(t, err)

	assert.Equal(t, 60.0, zones["acquisition"])
	assert.Equal(t, 60.0, overall)
}

func TestScore_OutOfRangeAnswersClamped(t *testing.T) {
	engine := NewEngine(Config{Zones: []Zone{
		{Name: "z", Questions: []string{"q"}, Weight: 1},
	}})

	_, overall, err := engine.Score(domain.Intake{Answers: map[string]int{"q": 9}})
	require.NoError(t, err)
	assert.Equal(t, 100.0, overall)

	_, overall, err = engine.Score(domain.Intake{Answers: map[string]int{"q": -3}})
	require.NoError(t, err)
	assert.Equal(t, 0.0, overall)
}

func TestScore_UnknownAnswersIgnored(t *testing.T) {
	engine := NewEngine(Config{Zones: []Zone{
		{Name: "z", Questions: []string{"q"}, Weight: 1},
	}})

	_, overall, err := engine.Score(domain.Intake{Answers: map[string]int{"q": 5, "stray": 1}})
	require.NoError(t, err)
	assert.Equal(t, 100.0, overall)
}

func TestScore_EmptyConfigErrors(t *testing.T) {
	engine := NewEngine(Config{})

	_, _, err := engine.Score(domain.Intake{Answers: fullAnswers(3)})
	assert.Error(t, err)
}

func TestDefaultConfig_WeightsSumToOne(t *testing.T) {
	var total float64
	for _, zone := range DefaultConfig().Zones {
		total += zone.Weight
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

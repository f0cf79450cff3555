package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageResult_OK(t *testing.T) {
	res := StageOK(map[string]any{"confidence": "market"})

	assert.True(t, res.Ok())
	assert.Nil(t, res.Cause())

	v, ok := res.Value()
	assert.True(t, ok)
	assert.Equal(t, "market", v["confidence"])
}

func TestStageResult_Degraded(t *testing.T) {
	cause := errors.New("gateway down")
	res := StageDegraded[map[string]any]("enriching", cause)

	assert.False(t, res.Ok())

	v, ok := res.Value()
	assert.False(t, ok)
	assert.Nil(t, v)

	require.NotNil(t, res.Cause())
	assert.Equal(t, "enriching", res.Cause().Stage)
	assert.ErrorIs(t, res.Cause(), cause)
}

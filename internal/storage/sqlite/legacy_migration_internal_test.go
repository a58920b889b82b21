package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLegacyToFSRSSeedsStabilityFromInterval(t *testing.T) {
	interval := 12.0
	easeFactor := 2.5
	got := legacyToFSRS(legacySchedulerState{Interval: &interval, EaseFactor: &easeFactor})
	assert.Equal(t, 12.0, got.Stability)
	assert.InDelta(t, 2.8, got.Difficulty, 0.01)
}

func TestLegacyToFSRSDefaultsWhenFieldsMissing(t *testing.T) {
	got := legacyToFSRS(legacySchedulerState{})
	assert.Equal(t, 1.0, got.Stability)
	assert.Equal(t, 5.0, got.Difficulty)
}

func TestLegacyToFSRSClampsDifficultyRange(t *testing.T) {
	tiny := 0.1
	got := legacyToFSRS(legacySchedulerState{EaseFactor: &tiny})
	assert.LessOrEqual(t, got.Difficulty, 10.0)
	assert.GreaterOrEqual(t, got.Difficulty, 1.0)
}

func TestClampFloat(t *testing.T) {
	assert.Equal(t, 1.0, clampFloat(-5, 1, 10))
	assert.Equal(t, 10.0, clampFloat(99, 1, 10))
	assert.Equal(t, 5.0, clampFloat(5, 1, 10))
}

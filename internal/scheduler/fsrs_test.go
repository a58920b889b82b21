package scheduler_test

import (
	"testing"
	"time"

	"github.com/Talia-12/hippocampus/internal/jsonvalue"
	"github.com/Talia-12/hippocampus/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSRSMonotonicAcrossRatings(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	lastReview := now.Add(-3 * 24 * time.Hour)

	states := []scheduler.State{
		{},
		mustFSRSState(t, 1.0, 5.0),
		mustFSRSState(t, 30.0, 2.0),
		mustFSRSState(t, 0.5, 9.5),
	}

	for _, state := range states {
		var prev time.Time
		for _, r := range []scheduler.Rating{scheduler.RatingAgain, scheduler.RatingHard, scheduler.RatingGood, scheduler.RatingEasy} {
			res, err := scheduler.FSRS{}.Schedule(now, &lastReview, state, r)
			require.NoError(t, err)
			if !prev.IsZero() {
				assert.True(t, res.NextReview.After(prev), "rating %d should schedule strictly later than the previous rating", r)
			}
			prev = res.NextReview
		}
	}
}

func TestFSRSNeverReviewedInitializes(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	res, err := scheduler.FSRS{}.Schedule(now, nil, scheduler.State{}, scheduler.RatingGood)
	require.NoError(t, err)
	assert.True(t, res.NextReview.After(now))

	var decoded struct {
		Stability  float64 `json:"stability"`
		Difficulty float64 `json:"difficulty"`
	}
	require.NoError(t, res.NewState.Decode(&decoded))
	assert.Greater(t, decoded.Stability, 0.0)
	assert.GreaterOrEqual(t, decoded.Difficulty, 1.0)
	assert.LessOrEqual(t, decoded.Difficulty, 10.0)
}

func TestFSRSInvalidRating(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	_, err := scheduler.FSRS{}.Schedule(now, nil, scheduler.State{}, scheduler.Rating(5))
	require.Error(t, err)
	assert.ErrorAs(t, err, &scheduler.ErrInvalidRating{})
}

func TestFSRSPreviewMatchesSchedule(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	lastReview := now.Add(-24 * time.Hour)
	state := mustFSRSState(t, 5.0, 4.0)

	preview, err := scheduler.FSRS{}.Preview(now, &lastReview, state)
	require.NoError(t, err)

	for i, r := range []scheduler.Rating{scheduler.RatingAgain, scheduler.RatingHard, scheduler.RatingGood, scheduler.RatingEasy} {
		direct, err := scheduler.FSRS{}.Schedule(now, &lastReview, state, r)
		require.NoError(t, err)
		assert.Equal(t, direct.NextReview, preview[i].NextReview)
	}
}

func mustFSRSState(t *testing.T, stability, difficulty float64) scheduler.State {
	t.Helper()
	v, err := jsonvalue.New(struct {
		Stability  float64 `json:"stability"`
		Difficulty float64 `json:"difficulty"`
	}{stability, difficulty})
	require.NoError(t, err)
	return v
}

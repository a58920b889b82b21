package scheduler

import (
	"math"
	"time"

	"github.com/Talia-12/hippocampus/internal/jsonvalue"
)

// IncrementalQueue is the todo-style scheduler variant (spec §4.3.2): state
// is minimal, and "review" models task deferral rather than memory
// retention. Rating 4 (Easy) is the workflow's "done" signal; the review
// recorder (internal/review) is responsible for calling SetCardSuspended
// when it sees rating 4 against an incremental_queue-typed card — the
// scheduler itself only computes the deferral, since it must stay a pure
// function of (state, rating).
type IncrementalQueue struct{}

// incrementalQueueState tracks how many times the item has been deferred,
// so repeated "Hard" ratings push it out progressively further rather than
// by the same fixed amount each time.
type incrementalQueueState struct {
	DeferralCount int `json:"deferral_count"`
}

// perRatingHours is fixed, strictly increasing, strictly positive — the
// same monotonic-by-construction technique as FSRS, scaled to a
// todo cadence of hours to a few days instead of long-range spaced repetition.
var perRatingHours = [5]float64{
	0,   // unused
	1,   // Again: revisit soon
	4,   // Hard
	24,  // Good
	72,  // Easy / done
}

const minDeferralCommonFactor = 0.5

func (IncrementalQueue) Schedule(now time.Time, lastReview *time.Time, state State, rating Rating) (Result, error) {
	if !rating.Valid() {
		return Result{}, ErrInvalidRating{Rating: rating}
	}

	cur, err := decodeIncrementalQueueState(state)
	if err != nil {
		return Result{}, err
	}

	// commonFactor grows slowly with how many times this item has already
	// been deferred, independent of the rating being applied now.
	commonFactor := math.Max(1+math.Log1p(float64(cur.DeferralCount))*0.25, minDeferralCommonFactor)

	intervalHours := commonFactor * perRatingHours[rating]
	next := now.Add(time.Duration(intervalHours * float64(time.Hour)))

	newCount := cur.DeferralCount
	if rating <= RatingHard {
		newCount++
	}
	newState, err := jsonvalue.New(incrementalQueueState{DeferralCount: newCount})
	if err != nil {
		return Result{}, err
	}
	return Result{NextReview: next, NewState: newState}, nil
}

func (q IncrementalQueue) Preview(now time.Time, lastReview *time.Time, state State) ([4]Result, error) {
	return previewAll(now, lastReview, state, q)
}

func decodeIncrementalQueueState(state State) (incrementalQueueState, error) {
	if state.IsNull() {
		return incrementalQueueState{}, nil
	}
	var s incrementalQueueState
	if err := state.Decode(&s); err != nil {
		return incrementalQueueState{}, err
	}
	return s, nil
}

package scheduler

import (
	"math"
	"time"

	"github.com/Talia-12/hippocampus/internal/jsonvalue"
)

// FSRS is the default scheduler variant (spec §4.3.1): a memory-model
// scheduler tracking stability and difficulty.
type FSRS struct{}

// fsrsState is the JSON shape of a card's scheduler_data once
// fsrs-scheduled: {"stability": float, "difficulty": float}.
type fsrsState struct {
	Stability  float64 `json:"stability"`
	Difficulty float64 `json:"difficulty"`
}

// perRatingFactor is fixed, strictly increasing, and strictly positive.
// Multiplying any strictly-positive, rating-independent common factor by
// this array's entry guarantees invariant M unconditionally: the ordering
// of the product is exactly the ordering of the array, regardless of
// stability, difficulty, or elapsed time.
var perRatingFactor = [5]float64{
	0,    // unused (ratings are 1-indexed)
	0.5,  // Again: card was forgotten, shrink the interval
	1.0,  // Hard
	2.5,  // Good
	4.5,  // Easy
}

// minCommonFactorDays floors the rating-independent scalar so it can never
// collapse to zero or go negative, which would break the strict ordering
// multiplication relies on.
const minCommonFactorDays = 0.2

func (FSRS) Schedule(now time.Time, lastReview *time.Time, state State, rating Rating) (Result, error) {
	if !rating.Valid() {
		return Result{}, ErrInvalidRating{Rating: rating}
	}

	cur, err := decodeFSRSState(state)
	if err != nil {
		return Result{}, err
	}

	elapsedDays := 1.0
	if lastReview != nil {
		d := now.Sub(*lastReview).Hours() / 24
		if d > 0 {
			elapsedDays = d
		}
	}

	// commonFactor blends the retrievability decay implied by elapsed time
	// against stability and difficulty, but does not depend on rating —
	// only perRatingFactor does. retrievability is the classic exponential
	// forgetting curve R = exp(-elapsed/stability); harder cards (higher
	// difficulty) decay the common factor further, independent of rating.
	retrievability := math.Exp(-elapsedDays / math.Max(cur.Stability, 0.1))
	commonFactor := math.Max(cur.Stability*retrievability/math.Max(cur.Difficulty, 1), minCommonFactorDays)

	intervalDays := commonFactor * perRatingFactor[rating]
	next := now.Add(time.Duration(intervalDays * float64(24*time.Hour)))

	newStability, newDifficulty := updateFSRSState(cur, rating, elapsedDays)
	newState, err := jsonvalue.New(fsrsState{Stability: newStability, Difficulty: newDifficulty})
	if err != nil {
		return Result{}, err
	}
	return Result{NextReview: next, NewState: newState}, nil
}

func (f FSRS) Preview(now time.Time, lastReview *time.Time, state State) ([4]Result, error) {
	return previewAll(now, lastReview, state, f)
}

// decodeFSRSState treats an empty/absent state as "never reviewed",
// initializing stability and difficulty to neutral defaults (spec §4.3.1:
// "When absent (first review), treated as uninitialized").
func decodeFSRSState(state State) (fsrsState, error) {
	if state.IsNull() {
		return fsrsState{Stability: 1.0, Difficulty: 5.0}, nil
	}
	var s fsrsState
	if err := state.Decode(&s); err != nil {
		return fsrsState{}, err
	}
	if s.Stability <= 0 {
		s.Stability = 1.0
	}
	if s.Difficulty <= 0 {
		s.Difficulty = 5.0
	}
	return s, nil
}

// updateFSRSState derives post-review stability/difficulty. Stability
// grows with successful (higher) ratings and the time since the last
// review; difficulty moves toward 1 on easy ratings and toward 10 on
// Again, clamped to FSRS's conventional [1,10] range. This update feeds
// into the *next* review's commonFactor, not into this review's interval
// decision, so it has no bearing on invariant M.
func updateFSRSState(cur fsrsState, rating Rating, elapsedDays float64) (stability, difficulty float64) {
	growth := 1 + (float64(rating)-2.5)*0.3 + math.Log1p(elapsedDays)*0.05
	stability = math.Max(cur.Stability*growth, 0.1)

	difficultyDelta := map[Rating]float64{
		RatingAgain: 1.2,
		RatingHard:  0.4,
		RatingGood:  -0.2,
		RatingEasy:  -0.8,
	}[rating]
	difficulty = cur.Difficulty + difficultyDelta
	if difficulty < 1 {
		difficulty = 1
	}
	if difficulty > 10 {
		difficulty = 10
	}
	return stability, difficulty
}

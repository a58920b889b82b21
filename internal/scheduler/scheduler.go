// Package scheduler computes the next review instant and updated scheduler
// state for a card, as a pure function of (current state, rating). It
// implements the two review-function variants named by an ItemType: fsrs
// and incremental_queue.
package scheduler

import (
	"fmt"
	"time"

	"github.com/Talia-12/hippocampus/internal/jsonvalue"
)

// Rating is review quality: 1 Again, 2 Hard, 3 Good, 4 Easy.
type Rating int

const (
	RatingAgain Rating = 1
	RatingHard  Rating = 2
	RatingGood  Rating = 3
	RatingEasy  Rating = 4
)

// Valid reports whether r is one of the four recognized ratings.
func (r Rating) Valid() bool {
	return r >= RatingAgain && r <= RatingEasy
}

// State is the opaque, scheduler-variant-specific stored state of a card.
// It round-trips through jsonvalue.Value exactly as stored in
// cards.scheduler_data; callers never interpret its shape directly.
type State = jsonvalue.Value

// Result is the outcome of one Schedule call.
type Result struct {
	NextReview time.Time
	NewState   State
}

// Scheduler maps (elapsed-time context, current state, rating) to (next
// review instant, updated state). now is the instant the review is
// recorded at; lastReview is the card's previous review time, or nil if
// the card has never been reviewed (the initialization path).
//
// Implementations must guarantee, for any lastReview/state and any
// r_lo < r_hi, that Schedule(now, lastReview, state, r_lo).NextReview is
// strictly before Schedule(now, lastReview, state, r_hi).NextReview —
// without clamping results after the fact. See FSRS and IncrementalQueue
// for how each variant achieves this by construction.
type Scheduler interface {
	Schedule(now time.Time, lastReview *time.Time, state State, rating Rating) (Result, error)

	// Preview returns the four hypothetical results for ratings 1..4
	// without mutating anything; used by preview_next_reviews.
	Preview(now time.Time, lastReview *time.Time, state State) ([4]Result, error)
}

// ErrInvalidRating is returned for ratings outside {1,2,3,4}.
type ErrInvalidRating struct {
	Rating Rating
}

func (e ErrInvalidRating) Error() string {
	return fmt.Sprintf("invalid rating %d: must be in 1..4", int(e.Rating))
}

// For selects the Scheduler implementation for a named review function.
func For(reviewFunction string) (Scheduler, bool) {
	switch reviewFunction {
	case "fsrs":
		return FSRS{}, true
	case "incremental_queue":
		return IncrementalQueue{}, true
	default:
		return nil, false
	}
}

func previewAll(now time.Time, lastReview *time.Time, state State, sched Scheduler) ([4]Result, error) {
	var out [4]Result
	for i, r := range []Rating{RatingAgain, RatingHard, RatingGood, RatingEasy} {
		res, err := sched.Schedule(now, lastReview, state, r)
		if err != nil {
			return out, err
		}
		out[i] = res
	}
	return out, nil
}

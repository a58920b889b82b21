// Package review orchestrates recording a review: validating the rating,
// invoking the scheduler for the card's ItemType variant, and persisting
// the review and card update atomically (spec §4.5).
package review

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Talia-12/hippocampus/internal/herrors"
	"github.com/Talia-12/hippocampus/internal/scheduler"
	"github.com/Talia-12/hippocampus/internal/storage"
	"github.com/Talia-12/hippocampus/internal/types"
)

// Recorder records reviews and previews scheduling outcomes.
type Recorder struct {
	store storage.Store
	now   func() time.Time
}

// New constructs a Recorder backed by store. now defaults to time.Now if
// nil; tests may substitute a fixed clock.
func New(store storage.Store, now func() time.Time) *Recorder {
	if now == nil {
		now = time.Now
	}
	return &Recorder{store: store, now: now}
}

func (r *Recorder) schedulerFor(ctx context.Context, card *types.Card) (scheduler.Scheduler, *types.ItemType, error) {
	item, err := r.store.GetItem(ctx, card.ItemID)
	if err != nil {
		return nil, nil, herrors.Wrap(herrors.KindNotFound, "item for card", err)
	}
	itemType, err := r.store.GetItemType(ctx, item.ItemTypeID)
	if err != nil {
		return nil, nil, herrors.Wrap(herrors.KindNotFound, "item type for card", err)
	}
	sched, ok := scheduler.For(string(itemType.ReviewFunction))
	if !ok {
		return nil, nil, herrors.Newf(herrors.KindInvalidReviewFunction, "unknown review function %q", itemType.ReviewFunction)
	}
	return sched, itemType, nil
}

// RecordReview validates rating, loads the card, invokes its scheduler,
// and persists the review and the card's updated scheduling fields
// atomically (spec §4.5, §9 atomicity resolution).
func (r *Recorder) RecordReview(ctx context.Context, cardID uuid.UUID, rating int) (*types.Review, error) {
	rr := scheduler.Rating(rating)
	if !rr.Valid() {
		return nil, herrors.Newf(herrors.KindInvalidRating, "rating %d not in 1..4", rating)
	}

	card, err := r.store.GetCard(ctx, cardID)
	if err != nil {
		return nil, herrors.Wrap(herrors.KindNotFound, "card", err)
	}

	sched, itemType, err := r.schedulerFor(ctx, card)
	if err != nil {
		return nil, err
	}

	now := r.now()
	result, err := sched.Schedule(now, card.LastReview, card.SchedulerData, rr)
	if err != nil {
		return nil, herrors.Wrap(herrors.KindInvalidRating, "schedule", err)
	}

	review, err := r.store.RecordReview(ctx, cardID, rating, now, storage.CardUpdate{
		LastReview:    now,
		NextReview:    result.NextReview,
		SchedulerData: result.NewState,
	})
	if err != nil {
		return nil, herrors.Database("record review", err)
	}

	// incremental_queue's completion path: an Easy rating on a todo-style
	// item is the workflow's "mark done" signal (spec §4.3.2). The
	// scheduler stays a pure function and leaves suspension to us.
	if itemType.ReviewFunction == types.ReviewFunctionIncrementalQueue && rr == scheduler.RatingEasy {
		if _, err := r.store.SetCardSuspended(ctx, cardID, true, now); err != nil {
			return nil, herrors.Database("suspend completed todo card", err)
		}
	}

	return review, nil
}

// Preview is one rating's [instant, new scheduler state] outcome;
// PreviewNextReviews returns four of them, the JSON-facing shape of
// preview_next_reviews (spec §4.5).
type Preview struct {
	Rating     int             `json:"rating"`
	NextReview time.Time       `json:"next_review"`
	NewState   scheduler.State `json:"scheduler_data"`
}

// PreviewNextReviews returns the four hypothetical outcomes for ratings
// 1..4 without persisting anything.
func (r *Recorder) PreviewNextReviews(ctx context.Context, cardID uuid.UUID) ([4]Preview, error) {
	var out [4]Preview

	card, err := r.store.GetCard(ctx, cardID)
	if err != nil {
		return out, herrors.Wrap(herrors.KindNotFound, "card", err)
	}
	sched, _, err := r.schedulerFor(ctx, card)
	if err != nil {
		return out, err
	}

	results, err := sched.Preview(r.now(), card.LastReview, card.SchedulerData)
	if err != nil {
		return out, herrors.Wrap(herrors.KindDatabase, "preview", err)
	}
	for i, res := range results {
		out[i] = Preview{Rating: i + 1, NextReview: res.NextReview, NewState: res.NewState}
	}
	return out, nil
}

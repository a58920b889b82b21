package review_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Talia-12/hippocampus/internal/herrors"
	"github.com/Talia-12/hippocampus/internal/jsonvalue"
	"github.com/Talia-12/hippocampus/internal/review"
	"github.com/Talia-12/hippocampus/internal/storage"
	"github.com/Talia-12/hippocampus/internal/types"
)

// fakeStore implements storage.Store over a fixed single item/itemType/card,
// enough to exercise the recorder without a real database. Embedding the
// interface lets unused methods panic loudly if a test path reaches them.
type fakeStore struct {
	storage.Store

	item            types.Item
	itemType        types.ItemType
	card            types.Card
	suspendedCalls  []bool
	recordedReviews []storage.CardUpdate
}

func (f *fakeStore) GetItem(ctx context.Context, id uuid.UUID) (*types.Item, error) {
	if id != f.item.ID {
		return nil, herrors.NotFound("item")
	}
	it := f.item
	return &it, nil
}

func (f *fakeStore) GetItemType(ctx context.Context, id uuid.UUID) (*types.ItemType, error) {
	if id != f.itemType.ID {
		return nil, herrors.NotFound("item type")
	}
	it := f.itemType
	return &it, nil
}

func (f *fakeStore) GetCard(ctx context.Context, id uuid.UUID) (*types.Card, error) {
	if id != f.card.ID {
		return nil, herrors.NotFound("card")
	}
	c := f.card
	return &c, nil
}

func (f *fakeStore) RecordReview(ctx context.Context, cardID uuid.UUID, rating int, now time.Time, update storage.CardUpdate) (*types.Review, error) {
	f.recordedReviews = append(f.recordedReviews, update)
	f.card.LastReview = &now
	f.card.NextReview = update.NextReview
	f.card.SchedulerData = update.SchedulerData
	return &types.Review{ID: uuid.New(), CardID: cardID, Rating: rating, ReviewTimestamp: now}, nil
}

func (f *fakeStore) SetCardSuspended(ctx context.Context, id uuid.UUID, suspend bool, now time.Time) (*types.Card, error) {
	f.suspendedCalls = append(f.suspendedCalls, suspend)
	if suspend {
		f.card.Suspended = &now
	} else {
		f.card.Suspended = nil
	}
	c := f.card
	return &c, nil
}

func newFakeStore(reviewFn types.ReviewFunction) *fakeStore {
	itemTypeID := uuid.New()
	itemID := uuid.New()
	cardID := uuid.New()
	return &fakeStore{
		itemType: types.ItemType{ID: itemTypeID, Name: "Fixture", ReviewFunction: reviewFn},
		item:     types.Item{ID: itemID, ItemTypeID: itemTypeID},
		card:     types.Card{ID: cardID, ItemID: itemID, SchedulerData: jsonvalue.Value{}},
	}
}

func TestRecordReviewRejectsInvalidRating(t *testing.T) {
	store := newFakeStore(types.ReviewFunctionFSRS)
	r := review.New(store, func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) })

	_, err := r.RecordReview(context.Background(), store.card.ID, 9)
	require.Error(t, err)
	e, ok := herrors.As(err)
	require.True(t, ok)
	assert.Equal(t, herrors.KindInvalidRating, e.Kind)
}

func TestRecordReviewUnknownCardIsNotFound(t *testing.T) {
	store := newFakeStore(types.ReviewFunctionFSRS)
	r := review.New(store, nil)

	_, err := r.RecordReview(context.Background(), uuid.New(), 3)
	require.Error(t, err)
	e, ok := herrors.As(err)
	require.True(t, ok)
	assert.Equal(t, herrors.KindNotFound, e.Kind)
}

func TestRecordReviewPersistsScheduledCardUpdate(t *testing.T) {
	store := newFakeStore(types.ReviewFunctionFSRS)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r := review.New(store, func() time.Time { return now })

	review, err := r.RecordReview(context.Background(), store.card.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, review.Rating)
	require.Len(t, store.recordedReviews, 1)
	assert.True(t, store.recordedReviews[0].NextReview.After(now))
}

func TestRecordReviewEasyOnIncrementalQueueSuspendsCard(t *testing.T) {
	store := newFakeStore(types.ReviewFunctionIncrementalQueue)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r := review.New(store, func() time.Time { return now })

	_, err := r.RecordReview(context.Background(), store.card.ID, 4)
	require.NoError(t, err)
	require.Len(t, store.suspendedCalls, 1)
	assert.True(t, store.suspendedCalls[0])
}

func TestRecordReviewGoodOnIncrementalQueueDoesNotSuspend(t *testing.T) {
	store := newFakeStore(types.ReviewFunctionIncrementalQueue)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r := review.New(store, func() time.Time { return now })

	_, err := r.RecordReview(context.Background(), store.card.ID, 3)
	require.NoError(t, err)
	assert.Empty(t, store.suspendedCalls)
}

func TestPreviewNextReviewsIsMonotonicAndDoesNotMutate(t *testing.T) {
	store := newFakeStore(types.ReviewFunctionFSRS)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r := review.New(store, func() time.Time { return now })

	previews, err := r.PreviewNextReviews(context.Background(), store.card.ID)
	require.NoError(t, err)

	for i := 1; i < len(previews); i++ {
		assert.True(t, previews[i].NextReview.After(previews[i-1].NextReview))
	}
	assert.Empty(t, store.recordedReviews, "preview must not persist anything")
	assert.Nil(t, store.card.LastReview, "preview must not mutate the card")
}

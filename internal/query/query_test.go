package query_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Talia-12/hippocampus/internal/query"
	"github.com/Talia-12/hippocampus/internal/storage"
	"github.com/Talia-12/hippocampus/internal/types"
)

type fakeStore struct {
	storage.Store

	cards             []types.Card
	itemsByID         map[uuid.UUID]types.Item
	itemsByType       map[uuid.UUID][]types.Item
	findCardsFilter   types.Filter
	listItemsByIDsArg []uuid.UUID
}

func (f *fakeStore) FindCards(ctx context.Context, filter types.Filter) ([]types.Card, error) {
	f.findCardsFilter = filter
	return f.cards, nil
}

func (f *fakeStore) ListItemsByType(ctx context.Context, itemTypeID uuid.UUID) ([]types.Item, error) {
	return f.itemsByType[itemTypeID], nil
}

func (f *fakeStore) ListItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]types.Item, error) {
	f.listItemsByIDsArg = ids
	out := make([]types.Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.itemsByID[id])
	}
	return out, nil
}

func TestFindCardsDelegatesToStore(t *testing.T) {
	want := []types.Card{{ID: uuid.New()}}
	store := &fakeStore{cards: want}
	e := query.New(store)

	filter := types.Filter{SuspendedFilter: types.SuspendedOnly}
	got, err := e.FindCards(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, filter, store.findCardsFilter)
}

func TestFindItemsOnlyItemTypeSetGoesDirectToListItemsByType(t *testing.T) {
	itemTypeID := uuid.New()
	item := types.Item{ID: uuid.New(), ItemTypeID: itemTypeID}
	store := &fakeStore{
		itemsByType: map[uuid.UUID][]types.Item{itemTypeID: {item}},
	}
	e := query.New(store)

	got, err := e.FindItems(context.Background(), types.Filter{ItemTypeID: &itemTypeID})
	require.NoError(t, err)
	assert.Equal(t, []types.Item{item}, got)
	assert.Nil(t, store.listItemsByIDsArg, "should not fall through to the card-based path")
}

func TestFindItemsDeduplicatesByItemID(t *testing.T) {
	itemID := uuid.New()
	otherItemID := uuid.New()
	store := &fakeStore{
		cards: []types.Card{
			{ID: uuid.New(), ItemID: itemID},
			{ID: uuid.New(), ItemID: itemID},
			{ID: uuid.New(), ItemID: otherItemID},
		},
		itemsByID: map[uuid.UUID]types.Item{
			itemID:      {ID: itemID},
			otherItemID: {ID: otherItemID},
		},
	}
	e := query.New(store)

	items, err := e.FindItems(context.Background(), types.Filter{SuspendedFilter: types.SuspendedInclude})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Len(t, store.listItemsByIDsArg, 2)
}

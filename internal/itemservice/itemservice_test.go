package itemservice_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Talia-12/hippocampus/internal/herrors"
	"github.com/Talia-12/hippocampus/internal/itemservice"
	"github.com/Talia-12/hippocampus/internal/jsonvalue"
	"github.com/Talia-12/hippocampus/internal/storage"
	"github.com/Talia-12/hippocampus/internal/types"
)

type fakeStore struct {
	storage.Store

	itemTypes       map[uuid.UUID]types.ItemType
	createdItem     *types.Item
	createdCards    []*types.Card
	deletedItemID   uuid.UUID
	updateItemTitle *string
}

func (f *fakeStore) GetItemType(ctx context.Context, id uuid.UUID) (*types.ItemType, error) {
	it, ok := f.itemTypes[id]
	if !ok {
		return nil, herrors.NotFound("item type")
	}
	return &it, nil
}

func (f *fakeStore) CreateItemWithCards(ctx context.Context, item *types.Item, cards []*types.Card) error {
	f.createdItem = item
	f.createdCards = cards
	return nil
}

func (f *fakeStore) UpdateItem(ctx context.Context, id uuid.UUID, title *string, itemData *jsonvalue.Value) (*types.Item, error) {
	f.updateItemTitle = title
	return &types.Item{ID: id, Title: derefOr(title, "")}, nil
}

func (f *fakeStore) DeleteItem(ctx context.Context, id uuid.UUID) error {
	f.deletedItemID = id
	return nil
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

func TestCreateItemMaterializesBasicCard(t *testing.T) {
	itemTypeID := uuid.New()
	store := &fakeStore{itemTypes: map[uuid.UUID]types.ItemType{
		itemTypeID: {ID: itemTypeID, Name: "Basic", ReviewFunction: types.ReviewFunctionFSRS},
	}}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := itemservice.New(store, func() time.Time { return now })

	item, cards, err := svc.CreateItem(context.Background(), itemTypeID, "Learn Go", jsonvalue.Value{})
	require.NoError(t, err)
	assert.Equal(t, "Learn Go", item.Title)
	assert.Equal(t, now, item.CreatedAt)
	require.Len(t, cards, 1)
	assert.NotNil(t, store.createdItem)
	assert.Len(t, store.createdCards, 1)
}

func TestCreateItemUnknownItemTypeIsNotFound(t *testing.T) {
	store := &fakeStore{itemTypes: map[uuid.UUID]types.ItemType{}}
	svc := itemservice.New(store, nil)

	_, _, err := svc.CreateItem(context.Background(), uuid.New(), "x", jsonvalue.Value{})
	require.Error(t, err)
	e, ok := herrors.As(err)
	require.True(t, ok)
	assert.Equal(t, herrors.KindNotFound, e.Kind)
}

func TestCreateItemUnmaterializableTypePropagatesError(t *testing.T) {
	itemTypeID := uuid.New()
	store := &fakeStore{itemTypes: map[uuid.UUID]types.ItemType{
		itemTypeID: {ID: itemTypeID, Name: "Mystery"},
	}}
	svc := itemservice.New(store, nil)

	_, _, err := svc.CreateItem(context.Background(), itemTypeID, "x", jsonvalue.Value{})
	require.Error(t, err)
	e, ok := herrors.As(err)
	require.True(t, ok)
	assert.Equal(t, herrors.KindInvalidItemType, e.Kind)
	assert.Nil(t, store.createdItem, "a materialization failure must not reach CreateItemWithCards")
}

func TestUpdateItemDelegatesToStore(t *testing.T) {
	store := &fakeStore{}
	svc := itemservice.New(store, nil)
	title := "New title"

	item, err := svc.UpdateItem(context.Background(), uuid.New(), &title, nil)
	require.NoError(t, err)
	assert.Equal(t, "New title", item.Title)
	assert.Equal(t, &title, store.updateItemTitle)
}

func TestDeleteItemDelegatesToStore(t *testing.T) {
	store := &fakeStore{}
	svc := itemservice.New(store, nil)
	id := uuid.New()

	require.NoError(t, svc.DeleteItem(context.Background(), id))
	assert.Equal(t, id, store.deletedItemID)
}

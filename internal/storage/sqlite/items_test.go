package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Talia-12/hippocampus/internal/jsonvalue"
	"github.com/Talia-12/hippocampus/internal/storage/sqlite"
	"github.com/Talia-12/hippocampus/internal/types"
)

func mustCreateItemType(t *testing.T, s *sqlite.Store, name string, fn types.ReviewFunction) *types.ItemType {
	t.Helper()
	it := &types.ItemType{ID: uuid.New(), Name: name, ReviewFunction: fn, CreatedAt: time.Now().UTC()}
	require.NoError(t, s.CreateItemType(context.Background(), it))
	return it
}

func basicItemFixture(t *testing.T, itemTypeID uuid.UUID) (*types.Item, []*types.Card) {
	t.Helper()
	now := time.Now().UTC()
	item := &types.Item{
		ID:         uuid.New(),
		ItemTypeID: itemTypeID,
		Title:      "Learn Go",
		ItemData:   jsonvalue.Value{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	card := &types.Card{
		ID:         uuid.New(),
		ItemID:     item.ID,
		CardIndex:  0,
		NextReview: now,
		Priority:   0.5,
	}
	return item, []*types.Card{card}
}

func TestCreateItemWithCardsIsAtomic(t *testing.T) {
	s := newTestStore(t)
	itemType := mustCreateItemType(t, s, "Basic", types.ReviewFunctionFSRS)
	item, cards := basicItemFixture(t, itemType.ID)

	require.NoError(t, s.CreateItemWithCards(context.Background(), item, cards))

	got, err := s.GetItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.Title, got.Title)

	storedCards, err := s.ListCardsByItem(context.Background(), item.ID)
	require.NoError(t, err)
	require.Len(t, storedCards, 1)
}

func TestUpdateItemTitleAndData(t *testing.T) {
	s := newTestStore(t)
	itemType := mustCreateItemType(t, s, "Basic", types.ReviewFunctionFSRS)
	item, cards := basicItemFixture(t, itemType.ID)
	require.NoError(t, s.CreateItemWithCards(context.Background(), item, cards))

	newTitle := "Learn Go Better"
	newData, err := jsonvalue.New(map[string]string{"note": "updated"})
	require.NoError(t, err)

	updated, err := s.UpdateItem(context.Background(), item.ID, &newTitle, &newData)
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	assert.True(t, updated.UpdatedAt.After(item.UpdatedAt) || updated.UpdatedAt.Equal(item.UpdatedAt))
}

func TestUpdateItemNotFound(t *testing.T) {
	s := newTestStore(t)
	title := "x"
	_, err := s.UpdateItem(context.Background(), uuid.New(), &title, nil)
	assert.Error(t, err)
}

func TestDeleteItemCascadesCards(t *testing.T) {
	s := newTestStore(t)
	itemType := mustCreateItemType(t, s, "Basic", types.ReviewFunctionFSRS)
	item, cards := basicItemFixture(t, itemType.ID)
	require.NoError(t, s.CreateItemWithCards(context.Background(), item, cards))

	require.NoError(t, s.DeleteItem(context.Background(), item.ID))

	_, err := s.GetItem(context.Background(), item.ID)
	assert.Error(t, err)

	remaining, err := s.ListCardsByItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestDeleteItemNotFound(t *testing.T) {
	s := newTestStore(t)
	err := s.DeleteItem(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestListItemsByTypeAndByIDs(t *testing.T) {
	s := newTestStore(t)
	itemType := mustCreateItemType(t, s, "Basic", types.ReviewFunctionFSRS)
	item1, cards1 := basicItemFixture(t, itemType.ID)
	require.NoError(t, s.CreateItemWithCards(context.Background(), item1, cards1))
	item2, cards2 := basicItemFixture(t, itemType.ID)
	require.NoError(t, s.CreateItemWithCards(context.Background(), item2, cards2))

	byType, err := s.ListItemsByType(context.Background(), itemType.ID)
	require.NoError(t, err)
	assert.Len(t, byType, 2)

	byIDs, err := s.ListItemsByIDs(context.Background(), []uuid.UUID{item1.ID})
	require.NoError(t, err)
	require.Len(t, byIDs, 1)
	assert.Equal(t, item1.ID, byIDs[0].ID)

	empty, err := s.ListItemsByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

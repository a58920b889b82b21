package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Talia-12/hippocampus/internal/storage/sqlite"
	"github.com/Talia-12/hippocampus/internal/types"
)

func TestAttachTagIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	itemType := mustCreateItemType(t, s, "Basic", types.ReviewFunctionFSRS)
	item, cards := basicItemFixture(t, itemType.ID)
	require.NoError(t, s.CreateItemWithCards(context.Background(), item, cards))

	tag := &types.Tag{ID: uuid.New(), Name: "go", Visible: true, CreatedAt: time.Now().UTC()}
	require.NoError(t, s.CreateTag(context.Background(), tag))

	require.NoError(t, s.AttachTag(context.Background(), item.ID, tag.ID))
	require.NoError(t, s.AttachTag(context.Background(), item.ID, tag.ID))

	tags, err := s.ListTagsForItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestDetachTagOnMissingAssociationIsNotFound(t *testing.T) {
	s := newTestStore(t)
	itemType := mustCreateItemType(t, s, "Basic", types.ReviewFunctionFSRS)
	item, cards := basicItemFixture(t, itemType.ID)
	require.NoError(t, s.CreateItemWithCards(context.Background(), item, cards))

	assert.ErrorIs(t, s.DetachTag(context.Background(), item.ID, uuid.New()), sqlite.ErrNotFound)
}

func TestListTagsForCard(t *testing.T) {
	s := newTestStore(t)
	itemType := mustCreateItemType(t, s, "Basic", types.ReviewFunctionFSRS)
	item, cards := basicItemFixture(t, itemType.ID)
	require.NoError(t, s.CreateItemWithCards(context.Background(), item, cards))

	tag := &types.Tag{ID: uuid.New(), Name: "go", Visible: true, CreatedAt: time.Now().UTC()}
	require.NoError(t, s.CreateTag(context.Background(), tag))
	require.NoError(t, s.AttachTag(context.Background(), item.ID, tag.ID))

	tags, err := s.ListTagsForCard(context.Background(), cards[0].ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, tag.ID, tags[0].ID)
}

func TestItemIDsMatchingAllTags(t *testing.T) {
	s := newTestStore(t)
	itemType := mustCreateItemType(t, s, "Basic", types.ReviewFunctionFSRS)
	itemBoth, cardsBoth := basicItemFixture(t, itemType.ID)
	require.NoError(t, s.CreateItemWithCards(context.Background(), itemBoth, cardsBoth))

	tagA := &types.Tag{ID: uuid.New(), Name: "a", Visible: true, CreatedAt: time.Now().UTC()}
	tagB := &types.Tag{ID: uuid.New(), Name: "b", Visible: true, CreatedAt: time.Now().UTC()}
	require.NoError(t, s.CreateTag(context.Background(), tagA))
	require.NoError(t, s.CreateTag(context.Background(), tagB))
	require.NoError(t, s.AttachTag(context.Background(), itemBoth.ID, tagA.ID))
	require.NoError(t, s.AttachTag(context.Background(), itemBoth.ID, tagB.ID))

	ids, err := s.ItemIDsMatchingAllTags(context.Background(), []uuid.UUID{tagA.ID, tagB.ID})
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, itemBoth.ID, ids[0])

	empty, err := s.ItemIDsMatchingAllTags(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestListTags(t *testing.T) {
	s := newTestStore(t)
	tag := &types.Tag{ID: uuid.New(), Name: "go", Visible: true, CreatedAt: time.Now().UTC()}
	require.NoError(t, s.CreateTag(context.Background(), tag))

	tags, err := s.ListTags(context.Background())
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "go", tags[0].Name)
}

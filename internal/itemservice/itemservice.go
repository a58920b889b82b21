// Package itemservice orchestrates item creation: materializing cards for
// a new item and persisting both atomically (spec §3 "Item" lifecycle,
// §4.4, §9 atomicity resolution).
package itemservice

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Talia-12/hippocampus/internal/herrors"
	"github.com/Talia-12/hippocampus/internal/jsonvalue"
	"github.com/Talia-12/hippocampus/internal/materializer"
	"github.com/Talia-12/hippocampus/internal/storage"
	"github.com/Talia-12/hippocampus/internal/types"
)

// Service creates, updates, and deletes items, keeping card materialization
// in step with the item lifecycle.
type Service struct {
	store storage.Store
	now   func() time.Time
}

// New constructs a Service backed by store.
func New(store storage.Store, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, now: now}
}

// CreateItem materializes cards for (itemTypeID, title, itemData) and
// persists the item with its cards in one transaction: an item is never
// observable without its cards (spec §3, §9).
func (s *Service) CreateItem(ctx context.Context, itemTypeID uuid.UUID, title string, itemData jsonvalue.Value) (*types.Item, []types.Card, error) {
	itemType, err := s.store.GetItemType(ctx, itemTypeID)
	if err != nil {
		return nil, nil, herrors.Wrap(herrors.KindNotFound, "item type", err)
	}

	now := s.now()
	item := &types.Item{
		ID:         uuid.New(),
		ItemTypeID: itemTypeID,
		Title:      title,
		ItemData:   itemData,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	cards, err := materializer.Materialize(*itemType, *item, now)
	if err != nil {
		return nil, nil, err
	}

	if err := s.store.CreateItemWithCards(ctx, item, cards); err != nil {
		return nil, nil, herrors.Database("create item with cards", err)
	}

	out := make([]types.Card, len(cards))
	for i, c := range cards {
		out[i] = *c
	}
	return item, out, nil
}

// UpdateItem updates title and/or item_data, refreshing updated_at (spec
// §3, §4.7 "update preserves state").
func (s *Service) UpdateItem(ctx context.Context, id uuid.UUID, title *string, itemData *jsonvalue.Value) (*types.Item, error) {
	item, err := s.store.UpdateItem(ctx, id, title, itemData)
	if err != nil {
		return nil, herrors.Wrap(herrors.KindNotFound, "item", err)
	}
	return item, nil
}

// DeleteItem removes the item; storage cascades the delete to its cards,
// reviews, and tag associations (spec §3 "Delete cascades to its cards").
func (s *Service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteItem(ctx, id); err != nil {
		return herrors.Wrap(herrors.KindNotFound, "item", err)
	}
	return nil
}

// Package storage defines the persistence contract used by the domain
// layer. The only implementation shipped is internal/storage/sqlite, but
// domain code never imports it directly. Domain-package tests substitute
// fake Store implementations; the sqlite and httpapi tests use an in-memory
// SQLite database.
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Talia-12/hippocampus/internal/jsonvalue"
	"github.com/Talia-12/hippocampus/internal/types"
)

// CardUpdate describes a change to a card's scheduling fields, applied
// atomically with the Review insert by RecordReview.
type CardUpdate struct {
	LastReview    time.Time
	NextReview    time.Time
	SchedulerData jsonvalue.Value
}

// Store is the persistence contract for every entity in spec §3.
//
// Every method here is expected to be wrapped in the retry adapter
// (spec §4.1) by the implementation; callers do not retry themselves.
type Store interface {
	// Item types
	CreateItemType(ctx context.Context, it *types.ItemType) error
	GetItemType(ctx context.Context, id uuid.UUID) (*types.ItemType, error)
	ListItemTypes(ctx context.Context) ([]types.ItemType, error)
	UpdateItemTypeReviewFunction(ctx context.Context, id uuid.UUID, fn types.ReviewFunction) (*types.ItemType, error)

	// Items. CreateItemWithCards persists the item and its materialized
	// cards in one transaction (spec §9 open-question resolution).
	CreateItemWithCards(ctx context.Context, item *types.Item, cards []*types.Card) error
	GetItem(ctx context.Context, id uuid.UUID) (*types.Item, error)
	UpdateItem(ctx context.Context, id uuid.UUID, title *string, itemData *jsonvalue.Value) (*types.Item, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	ListItemsByType(ctx context.Context, itemTypeID uuid.UUID) ([]types.Item, error)
	ListItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]types.Item, error)

	// Cards
	CreateCard(ctx context.Context, c *types.Card) error
	GetCard(ctx context.Context, id uuid.UUID) (*types.Card, error)
	ListCardsByItem(ctx context.Context, itemID uuid.UUID) ([]types.Card, error)
	UpdateCardPriority(ctx context.Context, id uuid.UUID, priority float64) (*types.Card, error)
	SetCardSuspended(ctx context.Context, id uuid.UUID, suspend bool, now time.Time) (*types.Card, error)
	FindCards(ctx context.Context, filter types.Filter) ([]types.Card, error)

	// Tags
	CreateTag(ctx context.Context, t *types.Tag) error
	ListTags(ctx context.Context) ([]types.Tag, error)
	ListTagsForItem(ctx context.Context, itemID uuid.UUID) ([]types.Tag, error)
	ListTagsForCard(ctx context.Context, cardID uuid.UUID) ([]types.Tag, error)
	AttachTag(ctx context.Context, itemID, tagID uuid.UUID) error
	DetachTag(ctx context.Context, itemID, tagID uuid.UUID) error
	ItemIDsMatchingAllTags(ctx context.Context, tagIDs []uuid.UUID) ([]uuid.UUID, error)

	// Reviews
	RecordReview(ctx context.Context, cardID uuid.UUID, rating int, now time.Time, update CardUpdate) (*types.Review, error)
	ListReviewsForCard(ctx context.Context, cardID uuid.UUID) ([]types.Review, error)

	// Metadata markers (one-shot migration flags, spec §4.3.1)
	GetMetadata(ctx context.Context, key string) (string, bool, error)
	SetMetadata(ctx context.Context, key, value string) error

	Close() error
}

// Package query implements the composable, AND-only card/item filter
// described in spec §4.2. It is a thin orchestration layer over
// storage.Store: tag-intersection and suspension semantics are pushed down
// into the store's SQL (internal/storage/sqlite.FindCards), but the
// item-listing de-duplication rule lives here, independent of storage.
package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/Talia-12/hippocampus/internal/storage"
	"github.com/Talia-12/hippocampus/internal/types"
)

// Engine evaluates types.Filter against a Store.
type Engine struct {
	store storage.Store
}

// New constructs an Engine backed by store.
func New(store storage.Store) *Engine {
	return &Engine{store: store}
}

// FindCards returns the cards matching filter, delegating entirely to the
// store's predicate pushdown.
func (e *Engine) FindCards(ctx context.Context, filter types.Filter) ([]types.Card, error) {
	return e.store.FindCards(ctx, filter)
}

// FindItems reuses FindCards for its predicates (spec §4.2 "Item
// listing"): when only ItemTypeID is set, items are queried directly;
// otherwise cards are found first, their item IDs collected and
// de-duplicated, and items loaded by ID.
func (e *Engine) FindItems(ctx context.Context, filter types.Filter) ([]types.Item, error) {
	if onlyItemTypeSet(filter) {
		if filter.ItemTypeID != nil {
			return e.store.ListItemsByType(ctx, *filter.ItemTypeID)
		}
		// No predicate at all: list items through all of their cards,
		// suspended ones included.
		filter.SuspendedFilter = types.SuspendedInclude
	}

	cards, err := e.store.FindCards(ctx, filter)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(cards))
	var ids []uuid.UUID
	for _, c := range cards {
		if !seen[c.ItemID] {
			seen[c.ItemID] = true
			ids = append(ids, c.ItemID)
		}
	}
	return e.store.ListItemsByIDs(ctx, ids)
}

// onlyItemTypeSet reports whether filter carries no card-level predicate
// beyond (optionally) ItemTypeID. SuspendedFilter's default (Exclude) does
// not count as a card-level predicate here: an unfiltered item listing
// still returns items whose cards are all suspended.
func onlyItemTypeSet(filter types.Filter) bool {
	return len(filter.TagIDs) == 0 &&
		filter.NextReviewBefore == nil &&
		filter.LastReviewAfter == nil &&
		(filter.SuspendedFilter == "" || filter.SuspendedFilter == types.SuspendedExclude) &&
		filter.SuspendedAfter == nil &&
		filter.SuspendedBefore == nil
}

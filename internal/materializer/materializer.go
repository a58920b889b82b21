// Package materializer produces a new Item's initial Cards, per the table
// in spec §4.4.
package materializer

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Talia-12/hippocampus/internal/herrors"
	"github.com/Talia-12/hippocampus/internal/jsonvalue"
	"github.com/Talia-12/hippocampus/internal/types"
)

// Materialize produces the initial cards for item, dispatched on
// itemType.Name. Every produced card has next_review = now (immediately
// due), last_review = nil, scheduler_data = nil, suspended = nil,
// priority_offset = 0, priority = 0.5.
//
// The name-containing-"Test" branch and the unconditional fallthrough
// failure for unrecognized names are kept exactly as the source describes
// them (spec §4.4, open question §9) rather than redesigned.
func Materialize(itemType types.ItemType, item types.Item, now time.Time) ([]*types.Card, error) {
	switch {
	case itemType.Name == "Basic":
		return newCards(item.ID, now, 1), nil

	case itemType.Name == "Cloze":
		n, err := clozeCount(item.ItemData)
		if err != nil {
			return nil, err
		}
		return newCards(item.ID, now, n), nil

	case itemType.Name == "Todo":
		return newCards(item.ID, now, 1), nil

	case strings.Contains(itemType.Name, "Test"):
		return newCards(item.ID, now, 2), nil

	default:
		return nil, herrors.Newf(herrors.KindInvalidItemType, "item type %q is not materializable", itemType.Name)
	}
}

// clozeCount reads len(item_data["clozes"]); a missing or non-array
// "clozes" field is a validation error, since a Cloze item with zero
// cards is not a useful outcome and the source's distillation gives no
// fallback behavior for it.
func clozeCount(itemData jsonvalue.Value) (int, error) {
	var parsed struct {
		Clozes []interface{} `json:"clozes"`
	}
	if itemData.IsNull() {
		return 0, herrors.New(herrors.KindInvalidItemType, `Cloze item_data must contain a "clozes" array`)
	}
	if err := itemData.Decode(&parsed); err != nil {
		return 0, herrors.Wrap(herrors.KindInvalidItemType, "invalid Cloze item_data", err)
	}
	if len(parsed.Clozes) == 0 {
		return 0, herrors.New(herrors.KindInvalidItemType, `Cloze item_data must contain a non-empty "clozes" array`)
	}
	return len(parsed.Clozes), nil
}

func newCards(itemID uuid.UUID, now time.Time, n int) []*types.Card {
	cards := make([]*types.Card, n)
	for i := 0; i < n; i++ {
		cards[i] = &types.Card{
			ID:             uuid.New(),
			ItemID:         itemID,
			CardIndex:      i,
			NextReview:     now,
			LastReview:     nil,
			SchedulerData:  jsonvalue.Value{},
			Priority:       0.5,
			Suspended:      nil,
			SortPosition:   nil,
			PriorityOffset: 0,
		}
	}
	return cards
}

// Package types defines the entities shared across storage, the query
// engine, the scheduler, and the HTTP API.
package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/Talia-12/hippocampus/internal/jsonvalue"
)

// ReviewFunction names the scheduler variant an ItemType uses.
type ReviewFunction string

const (
	ReviewFunctionFSRS              ReviewFunction = "fsrs"
	ReviewFunctionIncrementalQueue  ReviewFunction = "incremental_queue"
)

// Valid reports whether f is one of the two recognized review functions.
func (f ReviewFunction) Valid() bool {
	switch f {
	case ReviewFunctionFSRS, ReviewFunctionIncrementalQueue:
		return true
	default:
		return false
	}
}

// ItemType is a catalog entry determining how an Item's Cards are
// materialized and scheduled.
type ItemType struct {
	ID             uuid.UUID      `json:"id"`
	Name           string         `json:"name"`
	ReviewFunction ReviewFunction `json:"review_function"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Item is the user-facing knowledge unit; it owns one or more Cards.
type Item struct {
	ID         uuid.UUID      `json:"id"`
	ItemTypeID uuid.UUID      `json:"item_type_id"`
	Title      string         `json:"title"`
	ItemData   jsonvalue.Value `json:"item_data"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Card is one reviewable unit derived from an Item.
//
// PriorityOffset is deliberately unexported from JSON — see EffectivePriority.
type Card struct {
	ID             uuid.UUID       `json:"id"`
	ItemID         uuid.UUID       `json:"item_id"`
	CardIndex      int             `json:"card_index"`
	NextReview     time.Time       `json:"next_review"`
	LastReview     *time.Time      `json:"last_review"`
	SchedulerData  jsonvalue.Value `json:"scheduler_data"`
	Priority       float64         `json:"priority"`
	Suspended      *time.Time      `json:"suspended"`
	SortPosition   *float64        `json:"sort_position"`
	PriorityOffset float64         `json:"-"`
}

// EffectivePriority is the priority value exposed to clients:
// clamp(priority + priority_offset, 0, 1). The raw offset never leaves
// this package boundary.
func (c Card) EffectivePriority() float64 {
	p := c.Priority + c.PriorityOffset
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// MarshalJSON writes EffectivePriority as the card's "priority" field.
func (c Card) MarshalJSON() ([]byte, error) {
	type cardJSON Card
	out := cardJSON(c)
	out.Priority = c.EffectivePriority()
	return json.Marshal(out)
}

// IsSuspended reports whether the card is currently in the Suspended state.
func (c Card) IsSuspended() bool {
	return c.Suspended != nil
}

// Tag is an independent label that may be attached to any number of Items.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Visible   bool      `json:"visible"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemTag is the many-to-many association between Items and Tags.
type ItemTag struct {
	ItemID    uuid.UUID `json:"item_id"`
	TagID     uuid.UUID `json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Review is an immutable record of a single card review.
type Review struct {
	ID               uuid.UUID `json:"id"`
	CardID           uuid.UUID `json:"card_id"`
	Rating           int       `json:"rating"`
	ReviewTimestamp  time.Time `json:"review_timestamp"`
}

// SuspendedFilter selects how a query treats card suspension state.
type SuspendedFilter string

const (
	SuspendedExclude SuspendedFilter = "exclude" // default: omit suspended cards
	SuspendedInclude SuspendedFilter = "include" // ignore suspension entirely
	SuspendedOnly    SuspendedFilter = "only"    // only suspended cards
)

// Filter is the composable card/item query predicate described in spec §4.2.
// All set fields AND together.
type Filter struct {
	ItemTypeID       *uuid.UUID
	TagIDs           []uuid.UUID
	NextReviewBefore *time.Time
	LastReviewAfter  *time.Time
	SuspendedFilter  SuspendedFilter
	SuspendedAfter   *time.Time
	SuspendedBefore  *time.Time
}

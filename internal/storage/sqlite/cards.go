package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Talia-12/hippocampus/internal/jsonvalue"
	"github.com/Talia-12/hippocampus/internal/types"
)

func (s *Store) CreateCard(ctx context.Context, c *types.Card) error {
	return withRetry(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return wrapDBError("create card", err)
		}
		defer tx.Rollback()
		if err := insertCard(ctx, tx, c); err != nil {
			return wrapDBError("create card", err)
		}
		return wrapDBError("create card", tx.Commit())
	})
}

func (s *Store) GetCard(ctx context.Context, id uuid.UUID) (*types.Card, error) {
	var out *types.Card
	err := withRetry(ctx, func() error {
		row := s.db.QueryRowContext(ctx, cardSelect+` WHERE id = ?`, id.String())
		c, err := scanCard(row)
		if err != nil {
			return wrapDBError("get card", err)
		}
		out = c
		return nil
	})
	return out, err
}

func (s *Store) ListCardsByItem(ctx context.Context, itemID uuid.UUID) ([]types.Card, error) {
	var out []types.Card
	err := withRetry(ctx, func() error {
		rows, err := s.db.QueryContext(ctx, cardSelect+` WHERE item_id = ? ORDER BY card_index`, itemID.String())
		if err != nil {
			return wrapDBError("list cards by item", err)
		}
		defer rows.Close()
		out = nil
		for rows.Next() {
			c, err := scanCard(rows)
			if err != nil {
				return wrapDBError("list cards by item", err)
			}
			out = append(out, *c)
		}
		return wrapDBError("list cards by item", rows.Err())
	})
	return out, err
}

func (s *Store) UpdateCardPriority(ctx context.Context, id uuid.UUID, priority float64) (*types.Card, error) {
	var out *types.Card
	err := withRetry(ctx, func() error {
		res, err := s.db.ExecContext(ctx, `UPDATE cards SET priority = ? WHERE id = ?`, priority, id.String())
		if err != nil {
			return wrapDBError("update card priority", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return wrapDBError("update card priority", err)
		}
		if n == 0 {
			return wrapDBError("update card priority", ErrNotFound)
		}
		row := s.db.QueryRowContext(ctx, cardSelect+` WHERE id = ?`, id.String())
		c, err := scanCard(row)
		if err != nil {
			return wrapDBError("update card priority", err)
		}
		out = c
		return nil
	})
	return out, err
}

// SetCardSuspended is idempotent: suspending an already-suspended card (or
// resuming an already-active one) is a no-op that still returns the current
// row, per the state-machine idempotence requirement in spec §3.
func (s *Store) SetCardSuspended(ctx context.Context, id uuid.UUID, suspend bool, now time.Time) (*types.Card, error) {
	var out *types.Card
	err := withRetry(ctx, func() error {
		row := s.db.QueryRowContext(ctx, `SELECT suspended FROM cards WHERE id = ?`, id.String())
		var suspended sql.NullString
		if err := row.Scan(&suspended); err != nil {
			return wrapDBError("set card suspended", err)
		}

		alreadySuspended := suspended.Valid
		if suspend != alreadySuspended {
			var val any
			if suspend {
				val = formatTime(now)
			} else {
				val = nil
			}
			if _, err := s.db.ExecContext(ctx, `UPDATE cards SET suspended = ? WHERE id = ?`, val, id.String()); err != nil {
				return wrapDBError("set card suspended", err)
			}
		}

		r := s.db.QueryRowContext(ctx, cardSelect+` WHERE id = ?`, id.String())
		c, err := scanCard(r)
		if err != nil {
			return wrapDBError("set card suspended", err)
		}
		out = c
		return nil
	})
	return out, err
}

// FindCards implements the AND-only composable predicate of spec §4.2. Tag
// intersection is pushed down as a subquery so a card qualifies only when
// its item is associated with every requested tag (pairing-count equals
// len(TagIDs)), not merely one of them.
func (s *Store) FindCards(ctx context.Context, filter types.Filter) ([]types.Card, error) {
	query := cardSelect
	var where []string
	var args []any

	if filter.ItemTypeID != nil {
		where = append(where, `item_id IN (SELECT id FROM items WHERE item_type_id = ?)`)
		args = append(args, filter.ItemTypeID.String())
	}
	if len(filter.TagIDs) > 0 {
		placeholders := make([]string, len(filter.TagIDs))
		for i, t := range filter.TagIDs {
			placeholders[i] = "?"
			args = append(args, t.String())
		}
		where = append(where, fmt.Sprintf(
			`item_id IN (
				SELECT item_id FROM item_tags
				WHERE tag_id IN (%s)
				GROUP BY item_id
				HAVING COUNT(DISTINCT tag_id) = %d
			)`, strings.Join(placeholders, ","), len(filter.TagIDs)))
	}
	if filter.NextReviewBefore != nil {
		where = append(where, `next_review < ?`)
		args = append(args, formatTime(*filter.NextReviewBefore))
	}
	if filter.LastReviewAfter != nil {
		where = append(where, `last_review > ?`)
		args = append(args, formatTime(*filter.LastReviewAfter))
	}
	switch filter.SuspendedFilter {
	case types.SuspendedOnly:
		where = append(where, `suspended IS NOT NULL`)
	case types.SuspendedInclude:
		// no predicate: include both suspended and active cards
	default: // types.SuspendedExclude and the zero value
		where = append(where, `suspended IS NULL`)
	}
	if filter.SuspendedAfter != nil {
		where = append(where, `suspended > ?`)
		args = append(args, formatTime(*filter.SuspendedAfter))
	}
	if filter.SuspendedBefore != nil {
		where = append(where, `suspended < ?`)
		args = append(args, formatTime(*filter.SuspendedBefore))
	}

	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY next_review`

	var out []types.Card
	err := withRetry(ctx, func() error {
		rows, err := s.db.QueryContext(ctx, query, args...)
		if err != nil {
			return wrapDBError("find cards", err)
		}
		defer rows.Close()
		out = nil
		for rows.Next() {
			c, err := scanCard(rows)
			if err != nil {
				return wrapDBError("find cards", err)
			}
			out = append(out, *c)
		}
		return wrapDBError("find cards", rows.Err())
	})
	return out, err
}

const cardSelect = `SELECT id, item_id, card_index, next_review, last_review, scheduler_data, priority, suspended, sort_position, priority_offset FROM cards`

func scanCard(row rowScanner) (*types.Card, error) {
	var (
		idStr, itemIDStr, nextReview string
		cardIndex                    int
		lastReview, suspended        sql.NullString
		schedulerData                sql.NullString
		priority, priorityOffset     float64
		sortPosition                 sql.NullFloat64
	)
	if err := row.Scan(&idStr, &itemIDStr, &cardIndex, &nextReview, &lastReview, &schedulerData,
		&priority, &suspended, &sortPosition, &priorityOffset); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	itemID, err := uuid.Parse(itemIDStr)
	if err != nil {
		return nil, err
	}
	next, err := parseTime(nextReview)
	if err != nil {
		return nil, err
	}
	last, err := parseTimePtr(nullStringPtr(lastReview))
	if err != nil {
		return nil, err
	}
	susp, err := parseTimePtr(nullStringPtr(suspended))
	if err != nil {
		return nil, err
	}
	var schedData jsonvalue.Value
	if schedulerData.Valid {
		if err := schedData.Scan([]byte(schedulerData.String)); err != nil {
			return nil, err
		}
	}
	var sortPos *float64
	if sortPosition.Valid {
		v := sortPosition.Float64
		sortPos = &v
	}
	return &types.Card{
		ID:             id,
		ItemID:         itemID,
		CardIndex:      cardIndex,
		NextReview:     next,
		LastReview:     last,
		SchedulerData:  schedData,
		Priority:       priority,
		Suspended:      susp,
		SortPosition:   sortPos,
		PriorityOffset: priorityOffset,
	}, nil
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

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

// CreateItemWithCards persists item and cards in a single transaction, per
// the atomicity resolution in spec §9: a reader must never observe an item
// with zero materialized cards.
func (s *Store) CreateItemWithCards(ctx context.Context, item *types.Item, cards []*types.Card) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return withRetry(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return wrapDBError("create item with cards", err)
		}
		defer tx.Rollback()

		itemData, err := item.ItemData.Value()
		if err != nil {
			return wrapDBError("create item with cards", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO items (id, item_type_id, title, item_data, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
			item.ID.String(), item.ItemTypeID.String(), item.Title, itemData, formatTime(item.CreatedAt), formatTime(item.UpdatedAt)); err != nil {
			return wrapDBError("create item with cards", err)
		}

		for _, c := range cards {
			if err := insertCard(ctx, tx, c); err != nil {
				return wrapDBError("create item with cards", err)
			}
		}

		if err := tx.Commit(); err != nil {
			return wrapDBError("create item with cards", err)
		}
		return nil
	})
}

func insertCard(ctx context.Context, tx *sql.Tx, c *types.Card) error {
	schedData, err := c.SchedulerData.Value()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO cards (id, item_id, card_index, next_review, last_review, scheduler_data, priority, suspended, sort_position, priority_offset)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID.String(), c.ItemID.String(), c.CardIndex, formatTime(c.NextReview), formatTimePtr(c.LastReview),
		schedData, c.Priority, formatTimePtr(c.Suspended), c.SortPosition, c.PriorityOffset)
	return err
}

func (s *Store) GetItem(ctx context.Context, id uuid.UUID) (*types.Item, error) {
	var out *types.Item
	err := withRetry(ctx, func() error {
		row := s.db.QueryRowContext(ctx,
			`SELECT id, item_type_id, title, item_data, created_at, updated_at FROM items WHERE id = ?`, id.String())
		item, err := scanItem(row)
		if err != nil {
			return wrapDBError("get item", err)
		}
		out = item
		return nil
	})
	return out, err
}

func (s *Store) UpdateItem(ctx context.Context, id uuid.UUID, title *string, itemData *jsonvalue.Value) (*types.Item, error) {
	var out *types.Item
	err := withRetry(ctx, func() error {
		setClauses := []string{"updated_at = ?"}
		args := []any{formatTime(time.Now())}
		if title != nil {
			setClauses = append(setClauses, "title = ?")
			args = append(args, *title)
		}
		if itemData != nil {
			v, err := itemData.Value()
			if err != nil {
				return err
			}
			setClauses = append(setClauses, "item_data = ?")
			args = append(args, v)
		}
		args = append(args, id.String())
		query := fmt.Sprintf(`UPDATE items SET %s WHERE id = ?`, strings.Join(setClauses, ", "))

		res, err := s.db.ExecContext(ctx, query, args...)
		if err != nil {
			return wrapDBError("update item", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return wrapDBError("update item", err)
		}
		if n == 0 {
			return wrapDBError("update item", ErrNotFound)
		}
		row := s.db.QueryRowContext(ctx,
			`SELECT id, item_type_id, title, item_data, created_at, updated_at FROM items WHERE id = ?`, id.String())
		item, err := scanItem(row)
		if err != nil {
			return wrapDBError("update item", err)
		}
		out = item
		return nil
	})
	return out, err
}

// DeleteItem hard-deletes the item; ON DELETE CASCADE removes its cards,
// reviews, and tag associations.
func (s *Store) DeleteItem(ctx context.Context, id uuid.UUID) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return withRetry(ctx, func() error {
		res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id.String())
		if err != nil {
			return wrapDBError("delete item", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return wrapDBError("delete item", err)
		}
		if n == 0 {
			return wrapDBError("delete item", ErrNotFound)
		}
		return nil
	})
}

func (s *Store) ListItemsByType(ctx context.Context, itemTypeID uuid.UUID) ([]types.Item, error) {
	var out []types.Item
	err := withRetry(ctx, func() error {
		rows, err := s.db.QueryContext(ctx,
			`SELECT id, item_type_id, title, item_data, created_at, updated_at FROM items WHERE item_type_id = ? ORDER BY created_at`,
			itemTypeID.String())
		if err != nil {
			return wrapDBError("list items by type", err)
		}
		defer rows.Close()
		out = nil
		for rows.Next() {
			item, err := scanItem(rows)
			if err != nil {
				return wrapDBError("list items by type", err)
			}
			out = append(out, *item)
		}
		return wrapDBError("list items by type", rows.Err())
	})
	return out, err
}

// ListItemsByIDs preserves no particular order guarantee beyond created_at;
// callers that need de-duplication (the query engine, spec §4.2) handle it
// themselves since ids may already be de-duplicated by the caller.
func (s *Store) ListItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]types.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id.String()
	}
	query := fmt.Sprintf(`SELECT id, item_type_id, title, item_data, created_at, updated_at FROM items WHERE id IN (%s) ORDER BY created_at`,
		strings.Join(placeholders, ","))

	var out []types.Item
	err := withRetry(ctx, func() error {
		rows, err := s.db.QueryContext(ctx, query, args...)
		if err != nil {
			return wrapDBError("list items by ids", err)
		}
		defer rows.Close()
		out = nil
		for rows.Next() {
			item, err := scanItem(rows)
			if err != nil {
				return wrapDBError("list items by ids", err)
			}
			out = append(out, *item)
		}
		return wrapDBError("list items by ids", rows.Err())
	})
	return out, err
}

func scanItem(row rowScanner) (*types.Item, error) {
	var (
		idStr, itemTypeIDStr, title, createdAt, updatedAt string
		itemData                                          sql.NullString
	)
	if err := row.Scan(&idStr, &itemTypeIDStr, &title, &itemData, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	itemTypeID, err := uuid.Parse(itemTypeIDStr)
	if err != nil {
		return nil, err
	}
	created, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	updated, err := parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	var data jsonvalue.Value
	if itemData.Valid {
		if err := data.Scan([]byte(itemData.String)); err != nil {
			return nil, err
		}
	}
	return &types.Item{
		ID:         id,
		ItemTypeID: itemTypeID,
		Title:      title,
		ItemData:   data,
		CreatedAt:  created,
		UpdatedAt:  updated,
	}, nil
}

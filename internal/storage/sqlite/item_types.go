package sqlite

import (
	"context"

	"github.com/google/uuid"

	"github.com/Talia-12/hippocampus/internal/types"
)

func (s *Store) CreateItemType(ctx context.Context, it *types.ItemType) error {
	return withRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO item_types (id, name, review_function, created_at) VALUES (?, ?, ?, ?)`,
			it.ID.String(), it.Name, string(it.ReviewFunction), formatTime(it.CreatedAt))
		return wrapDBError("create item type", err)
	})
}

func (s *Store) GetItemType(ctx context.Context, id uuid.UUID) (*types.ItemType, error) {
	var out *types.ItemType
	err := withRetry(ctx, func() error {
		row := s.db.QueryRowContext(ctx,
			`SELECT id, name, review_function, created_at FROM item_types WHERE id = ?`, id.String())
		it, err := scanItemType(row)
		if err != nil {
			return wrapDBError("get item type", err)
		}
		out = it
		return nil
	})
	return out, err
}

func (s *Store) ListItemTypes(ctx context.Context) ([]types.ItemType, error) {
	var out []types.ItemType
	err := withRetry(ctx, func() error {
		rows, err := s.db.QueryContext(ctx, `SELECT id, name, review_function, created_at FROM item_types ORDER BY created_at`)
		if err != nil {
			return wrapDBError("list item types", err)
		}
		defer rows.Close()
		out = nil
		for rows.Next() {
			it, err := scanItemType(rows)
			if err != nil {
				return wrapDBError("list item types", err)
			}
			out = append(out, *it)
		}
		return wrapDBError("list item types", rows.Err())
	})
	return out, err
}

func (s *Store) UpdateItemTypeReviewFunction(ctx context.Context, id uuid.UUID, fn types.ReviewFunction) (*types.ItemType, error) {
	var out *types.ItemType
	err := withRetry(ctx, func() error {
		res, err := s.db.ExecContext(ctx, `UPDATE item_types SET review_function = ? WHERE id = ?`, string(fn), id.String())
		if err != nil {
			return wrapDBError("update item type review function", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return wrapDBError("update item type review function", err)
		}
		if n == 0 {
			return wrapDBError("update item type review function", ErrNotFound)
		}
		row := s.db.QueryRowContext(ctx, `SELECT id, name, review_function, created_at FROM item_types WHERE id = ?`, id.String())
		it, err := scanItemType(row)
		if err != nil {
			return wrapDBError("update item type review function", err)
		}
		out = it
		return nil
	})
	return out, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItemType(row rowScanner) (*types.ItemType, error) {
	var (
		idStr, name, fn, createdAt string
	)
	if err := row.Scan(&idStr, &name, &fn, &createdAt); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	created, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &types.ItemType{
		ID:             id,
		Name:           name,
		ReviewFunction: types.ReviewFunction(fn),
		CreatedAt:      created,
	}, nil
}

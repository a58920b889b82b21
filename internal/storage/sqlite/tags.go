package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Talia-12/hippocampus/internal/types"
)

func (s *Store) CreateTag(ctx context.Context, t *types.Tag) error {
	return withRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO tags (id, name, visible, created_at) VALUES (?, ?, ?, ?)`,
			t.ID.String(), t.Name, boolToInt(t.Visible), formatTime(t.CreatedAt))
		return wrapDBError("create tag", err)
	})
}

func (s *Store) ListTags(ctx context.Context) ([]types.Tag, error) {
	var out []types.Tag
	err := withRetry(ctx, func() error {
		rows, err := s.db.QueryContext(ctx, `SELECT id, name, visible, created_at FROM tags ORDER BY created_at`)
		if err != nil {
			return wrapDBError("list tags", err)
		}
		defer rows.Close()
		out = nil
		for rows.Next() {
			t, err := scanTag(rows)
			if err != nil {
				return wrapDBError("list tags", err)
			}
			out = append(out, *t)
		}
		return wrapDBError("list tags", rows.Err())
	})
	return out, err
}

func (s *Store) ListTagsForItem(ctx context.Context, itemID uuid.UUID) ([]types.Tag, error) {
	var out []types.Tag
	err := withRetry(ctx, func() error {
		rows, err := s.db.QueryContext(ctx,
			`SELECT t.id, t.name, t.visible, t.created_at FROM tags t
			 JOIN item_tags it ON it.tag_id = t.id
			 WHERE it.item_id = ? ORDER BY it.created_at`, itemID.String())
		if err != nil {
			return wrapDBError("list tags for item", err)
		}
		defer rows.Close()
		out = nil
		for rows.Next() {
			t, err := scanTag(rows)
			if err != nil {
				return wrapDBError("list tags for item", err)
			}
			out = append(out, *t)
		}
		return wrapDBError("list tags for item", rows.Err())
	})
	return out, err
}

func (s *Store) ListTagsForCard(ctx context.Context, cardID uuid.UUID) ([]types.Tag, error) {
	var out []types.Tag
	err := withRetry(ctx, func() error {
		rows, err := s.db.QueryContext(ctx,
			`SELECT t.id, t.name, t.visible, t.created_at FROM tags t
			 JOIN item_tags it ON it.tag_id = t.id
			 JOIN cards c ON c.item_id = it.item_id
			 WHERE c.id = ? ORDER BY t.created_at`, cardID.String())
		if err != nil {
			return wrapDBError("list tags for card", err)
		}
		defer rows.Close()
		out = nil
		for rows.Next() {
			t, err := scanTag(rows)
			if err != nil {
				return wrapDBError("list tags for card", err)
			}
			out = append(out, *t)
		}
		return wrapDBError("list tags for card", rows.Err())
	})
	return out, err
}

// AttachTag is a no-op (success) if the association already exists,
// matching the idempotent-association behavior noted in SPEC_FULL.md.
func (s *Store) AttachTag(ctx context.Context, itemID, tagID uuid.UUID) error {
	return withRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO item_tags (item_id, tag_id, created_at) VALUES (?, ?, ?)
			 ON CONFLICT (item_id, tag_id) DO NOTHING`,
			itemID.String(), tagID.String(), formatTime(time.Now()))
		return wrapDBError("attach tag", err)
	})
}

// DetachTag returns ErrNotFound if the (item_id, tag_id) pairing does not
// exist; removing a non-existent pairing is an error, not a no-op.
func (s *Store) DetachTag(ctx context.Context, itemID, tagID uuid.UUID) error {
	return withRetry(ctx, func() error {
		res, err := s.db.ExecContext(ctx,
			`DELETE FROM item_tags WHERE item_id = ? AND tag_id = ?`, itemID.String(), tagID.String())
		if err != nil {
			return wrapDBError("detach tag", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return wrapDBError("detach tag", err)
		}
		if n == 0 {
			return wrapDBError("detach tag", ErrNotFound)
		}
		return nil
	})
}

// ItemIDsMatchingAllTags returns the item IDs associated with every tag in
// tagIDs (intersection, spec §4.2's "pairing count equals |tagIDs|" rule).
// An empty tagIDs matches no items. The query engine does not call this:
// FindCards applies the same intersection rule in its own SQL.
func (s *Store) ItemIDsMatchingAllTags(ctx context.Context, tagIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(tagIDs))
	args := make([]any, len(tagIDs))
	for i, t := range tagIDs {
		placeholders[i] = "?"
		args[i] = t.String()
	}
	query := fmt.Sprintf(
		`SELECT item_id FROM item_tags WHERE tag_id IN (%s) GROUP BY item_id HAVING COUNT(DISTINCT tag_id) = %d`,
		strings.Join(placeholders, ","), len(tagIDs))

	var out []uuid.UUID
	err := withRetry(ctx, func() error {
		rows, err := s.db.QueryContext(ctx, query, args...)
		if err != nil {
			return wrapDBError("item ids matching all tags", err)
		}
		defer rows.Close()
		out = nil
		for rows.Next() {
			var idStr string
			if err := rows.Scan(&idStr); err != nil {
				return wrapDBError("item ids matching all tags", err)
			}
			id, err := uuid.Parse(idStr)
			if err != nil {
				return wrapDBError("item ids matching all tags", err)
			}
			out = append(out, id)
		}
		return wrapDBError("item ids matching all tags", rows.Err())
	})
	return out, err
}

func scanTag(row rowScanner) (*types.Tag, error) {
	var (
		idStr, name, createdAt string
		visible                int
	)
	if err := row.Scan(&idStr, &name, &visible, &createdAt); err != nil {
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
	return &types.Tag{
		ID:        id,
		Name:      name,
		Visible:   visible != 0,
		CreatedAt: created,
	}, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Talia-12/hippocampus/internal/storage"
	"github.com/Talia-12/hippocampus/internal/types"
)

// RecordReview inserts the Review row and applies the scheduler's card
// update in one transaction, per spec §9's atomicity resolution: a reader
// must never observe a review without the card's schedule reflecting it,
// or vice versa.
func (s *Store) RecordReview(ctx context.Context, cardID uuid.UUID, rating int, now time.Time, update storage.CardUpdate) (*types.Review, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var out *types.Review
	err := withRetry(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return wrapDBError("record review", err)
		}
		defer tx.Rollback()

		reviewID := uuid.New()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO reviews (id, card_id, rating, review_timestamp) VALUES (?, ?, ?, ?)`,
			reviewID.String(), cardID.String(), rating, formatTime(now)); err != nil {
			return wrapDBError("record review", err)
		}

		schedData, err := update.SchedulerData.Value()
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			`UPDATE cards SET last_review = ?, next_review = ?, scheduler_data = ? WHERE id = ?`,
			formatTime(update.LastReview), formatTime(update.NextReview), schedData, cardID.String())
		if err != nil {
			return wrapDBError("record review", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return wrapDBError("record review", err)
		}
		if n == 0 {
			return wrapDBError("record review", ErrNotFound)
		}

		if err := tx.Commit(); err != nil {
			return wrapDBError("record review", err)
		}
		out = &types.Review{
			ID:              reviewID,
			CardID:          cardID,
			Rating:          rating,
			ReviewTimestamp: now,
		}
		return nil
	})
	return out, err
}

func (s *Store) ListReviewsForCard(ctx context.Context, cardID uuid.UUID) ([]types.Review, error) {
	var out []types.Review
	err := withRetry(ctx, func() error {
		rows, err := s.db.QueryContext(ctx,
			`SELECT id, card_id, rating, review_timestamp FROM reviews WHERE card_id = ? ORDER BY review_timestamp, id`,
			cardID.String())
		if err != nil {
			return wrapDBError("list reviews for card", err)
		}
		defer rows.Close()
		out = nil
		for rows.Next() {
			r, err := scanReview(rows)
			if err != nil {
				return wrapDBError("list reviews for card", err)
			}
			out = append(out, *r)
		}
		return wrapDBError("list reviews for card", rows.Err())
	})
	return out, err
}

func scanReview(row rowScanner) (*types.Review, error) {
	var idStr, cardIDStr, ts string
	var rating int
	if err := row.Scan(&idStr, &cardIDStr, &rating, &ts); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	cardID, err := uuid.Parse(cardIDStr)
	if err != nil {
		return nil, err
	}
	t, err := parseTime(ts)
	if err != nil {
		return nil, err
	}
	return &types.Review{ID: id, CardID: cardID, Rating: rating, ReviewTimestamp: t}, nil
}

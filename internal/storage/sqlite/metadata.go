package sqlite

import "context"

// GetMetadata reads a one-shot migration marker (spec §4.3.1), e.g.
// metadata["sr-scheduler"] == "fsrs-1".
func (s *Store) GetMetadata(ctx context.Context, key string) (string, bool, error) {
	var value string
	found := false
	err := withRetry(ctx, func() error {
		row := s.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key)
		var v string
		if err := row.Scan(&v); err != nil {
			if isNotFound(wrapDBError("get metadata", err)) {
				found = false
				return nil
			}
			return wrapDBError("get metadata", err)
		}
		value = v
		found = true
		return nil
	})
	return value, found, err
}

func (s *Store) SetMetadata(ctx context.Context, key, value string) error {
	return withRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO metadata (key, value) VALUES (?, ?) ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
			key, value)
		return wrapDBError("set metadata", err)
	})
}

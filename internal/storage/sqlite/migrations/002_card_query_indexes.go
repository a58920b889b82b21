package migrations

import (
	"database/sql"
	"fmt"
)

// MigrateCardQueryIndexes adds indexes supporting the query engine's (spec
// §4.2) most common predicates: due-card scans and suspension-state scans.
func MigrateCardQueryIndexes(db *sql.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_cards_next_review ON cards(next_review)`,
		`CREATE INDEX IF NOT EXISTS idx_cards_last_review ON cards(last_review)`,
		`CREATE INDEX IF NOT EXISTS idx_cards_suspended ON cards(suspended)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return fmt.Errorf("card query indexes: %w", err)
		}
	}
	return nil
}

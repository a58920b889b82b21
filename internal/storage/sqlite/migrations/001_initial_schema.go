// Package migrations holds the forward-only, numbered schema migrations
// applied at storage startup (spec §6 "Persisted state").
package migrations

import (
	"database/sql"
	"fmt"
)

// MigrateInitialSchema creates the six entity tables of spec §3 plus the
// metadata key-value table used for one-shot migration markers (spec
// §4.3.1). The schema_migrations tracking table is created by the
// migration runner in the sqlite package, not here.
func MigrateInitialSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS item_types (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			review_function TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			item_type_id TEXT NOT NULL REFERENCES item_types(id),
			title TEXT NOT NULL,
			item_data TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_items_item_type_id ON items(item_type_id)`,
		`CREATE TABLE IF NOT EXISTS cards (
			id TEXT PRIMARY KEY,
			item_id TEXT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
			card_index INTEGER NOT NULL,
			next_review TEXT NOT NULL,
			last_review TEXT,
			scheduler_data TEXT,
			priority REAL NOT NULL DEFAULT 0.5,
			suspended TEXT,
			sort_position REAL,
			priority_offset REAL NOT NULL DEFAULT 0,
			UNIQUE(item_id, card_index)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cards_item_id ON cards(item_id)`,
		`CREATE TABLE IF NOT EXISTS tags (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			visible INTEGER NOT NULL DEFAULT 1,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS item_tags (
			item_id TEXT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
			tag_id TEXT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
			created_at TEXT NOT NULL,
			PRIMARY KEY (item_id, tag_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_item_tags_tag_id ON item_tags(tag_id)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id TEXT PRIMARY KEY,
			card_id TEXT NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
			rating INTEGER NOT NULL,
			review_timestamp TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_card_id ON reviews(card_id)`,
		`CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("initial schema: %w", err)
		}
	}
	return nil
}

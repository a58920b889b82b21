// Package sqlite is the storage.Store implementation backed by
// github.com/ncruces/go-sqlite3 — a pure-Go, cgo-free SQLite driver. It is
// the only storage.Store implementation in this module; tests and the HTTP
// server both construct it via New.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/ncruces/go-sqlite3/driver" // registers "sqlite3"
	_ "github.com/ncruces/go-sqlite3/embed"  // bundles the SQLite engine (no system lib needed)

	"github.com/Talia-12/hippocampus/internal/storage/sqlite/migrations"
)

// Store is the SQLite-backed storage.Store implementation.
//
// writeMu serializes the multi-statement writes (CreateItemWithCards,
// RecordReview) and DeleteItem at the process level.
// SQLite allows only one writer at a time regardless of connection count;
// taking this lock before issuing a write transaction turns "SQLITE_BUSY"
// from the common case into a rare one, with the retry adapter (retry.go)
// as the fallback for whatever contention still slips through (e.g. a
// second hippocampus process sharing the same file).
type Store struct {
	db      *sql.DB
	writeMu sync.Mutex
}

// New opens (creating if necessary) the SQLite database at path and applies
// all pending migrations. Pass ":memory:" for an ephemeral database, used
// throughout this module's own tests.
func New(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single SQLite file has one writer; keep the pool small so the
	// standard library doesn't hand out connections the driver would just
	// serialize anyway.
	db.SetMaxOpenConns(8)

	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := s.migrateLegacySchedulerState(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY, name TEXT NOT NULL)`); err != nil {
		return fmt.Errorf("migration tracking table: %w", err)
	}

	applied := map[int]bool{}
	rows, err := s.db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return fmt.Errorf("read applied migrations: %w", err)
	}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			_ = rows.Close()
			return fmt.Errorf("scan migration version: %w", err)
		}
		applied[v] = true
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}
	_ = rows.Close()

	for _, m := range registeredMigrations {
		if applied[m.version] {
			continue
		}
		if err := m.apply(s.db); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
		if _, err := s.db.Exec(`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`, m.version, m.name); err != nil {
			return fmt.Errorf("record migration %d: %w", m.version, err)
		}
	}
	return nil
}

type migration struct {
	version int
	name    string
	apply   func(*sql.DB) error
}

// registeredMigrations is the forward-only migration list, applied in
// order and tracked in schema_migrations so each runs exactly once.
var registeredMigrations = []migration{
	{1, "initial_schema", migrations.MigrateInitialSchema},
	{2, "card_query_indexes", migrations.MigrateCardQueryIndexes},
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

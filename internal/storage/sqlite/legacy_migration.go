package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
)

// schedulerMetadataKey gates the one-shot legacy scheduler-state migration
// described in SPEC_FULL.md §4.3.1. Once every card's scheduler_data has
// been rewritten from the {ease_factor,interval,repetitions} shape to
// {stability,difficulty}, this key is set to schedulerVersionFSRS1 and the
// migration never runs again.
const (
	schedulerMetadataKey = "sr-scheduler"
	schedulerVersionFSRS1 = "fsrs-1"
)

// legacySchedulerState is the pre-FSRS shape written by earlier versions of
// this project (SM-2-style ease factor and repetition count).
type legacySchedulerState struct {
	EaseFactor  *float64 `json:"ease_factor"`
	Interval    *float64 `json:"interval"`
	Repetitions *int     `json:"repetitions"`
}

// fsrsSchedulerState is the current shape (internal/scheduler's FSRS
// variant). Written here as a plain struct, independent of the scheduler
// package, to keep storage free of a domain-layer import cycle.
type fsrsSchedulerState struct {
	Stability  float64 `json:"stability"`
	Difficulty float64 `json:"difficulty"`
}

// migrateLegacySchedulerState rewrites every card's scheduler_data still in
// the legacy shape. It runs at every Store.New but is a no-op once the
// metadata marker is set, so it costs one SELECT on a fully migrated
// database.
func (s *Store) migrateLegacySchedulerState(ctx context.Context) error {
	version, found, err := s.GetMetadata(ctx, schedulerMetadataKey)
	if err != nil {
		return err
	}
	if found && version == schedulerVersionFSRS1 {
		return nil
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, scheduler_data FROM cards WHERE scheduler_data IS NOT NULL`)
	if err != nil {
		return wrapDBError("migrate legacy scheduler state", err)
	}
	type pending struct {
		id   string
		data string
	}
	var toMigrate []pending
	for rows.Next() {
		var id string
		var data sql.NullString
		if err := rows.Scan(&id, &data); err != nil {
			_ = rows.Close()
			return wrapDBError("migrate legacy scheduler state", err)
		}
		if data.Valid {
			toMigrate = append(toMigrate, pending{id: id, data: data.String})
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return wrapDBError("migrate legacy scheduler state", err)
	}
	_ = rows.Close()

	for _, p := range toMigrate {
		var legacy legacySchedulerState
		if err := json.Unmarshal([]byte(p.data), &legacy); err != nil {
			return wrapDBError("migrate legacy scheduler state", err)
		}
		if legacy.EaseFactor == nil && legacy.Interval == nil && legacy.Repetitions == nil {
			continue // already FSRS-shaped, or a card with no schedulable history
		}
		migrated := legacyToFSRS(legacy)
		b, err := json.Marshal(migrated)
		if err != nil {
			return wrapDBError("migrate legacy scheduler state", err)
		}
		if _, err := s.db.ExecContext(ctx, `UPDATE cards SET scheduler_data = ? WHERE id = ?`, string(b), p.id); err != nil {
			return wrapDBError("migrate legacy scheduler state", err)
		}
	}

	return s.SetMetadata(ctx, schedulerMetadataKey, schedulerVersionFSRS1)
}

// legacyToFSRS approximates FSRS state from the SM-2-style fields so
// existing review history doesn't reset to "never reviewed" once the
// scheduler switches families. Stability is seeded from the last interval
// (days); difficulty is derived from the ease factor, inverted and scaled
// into FSRS's roughly [1,10] difficulty range since a higher legacy ease
// factor means an easier (lower-difficulty) card.
func legacyToFSRS(legacy legacySchedulerState) fsrsSchedulerState {
	stability := 1.0
	if legacy.Interval != nil && *legacy.Interval > 0 {
		stability = *legacy.Interval
	}
	difficulty := 5.0
	if legacy.EaseFactor != nil && *legacy.EaseFactor > 0 {
		difficulty = clampFloat(10.0-(*legacy.EaseFactor-1.3)*6.0, 1, 10)
	}
	return fsrsSchedulerState{Stability: stability, Difficulty: difficulty}
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

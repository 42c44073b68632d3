// Package store persists the goal profile and configuration to sqlite.
// Profiles are written as whole snapshots: a save replaces every row,
// a load rebuilds the complete profile.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/stride-app/stride/internal/models"
	"github.com/stride-app/stride/internal/profile"
)

const configKey = "config"

// Store wraps the sqlite handle.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at path and applies
// the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createTables(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) createTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS goals (
			id INTEGER PRIMARY KEY,
			parent_id INTEGER,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			effort_to_date INTEGER NOT NULL DEFAULT 0,
			effort_to_complete INTEGER NOT NULL DEFAULT 0,
			focused INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY(parent_id) REFERENCES goals(id)
		);`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT
		);`,
	}
	for _, query := range queries {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("creating table: %w", err)
		}
	}
	return nil
}

// Close closes the underlying handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveProfile replaces the stored snapshot with the given profile.
func (s *Store) SaveProfile(ctx context.Context, p *profile.Profile) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM goals"); err != nil {
		return fmt.Errorf("clearing goals: %w", err)
	}
	for _, r := range p.Records() {
		var parentID any
		if r.ParentID != nil {
			parentID = int64(*r.ParentID)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO goals (id, parent_id, position, name, effort_to_date, effort_to_complete, focused)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			int64(r.ID), parentID, r.Position, r.Name, r.EffortToDate, r.EffortToComplete, r.Focused)
		if err != nil {
			return fmt.Errorf("inserting goal %d: %w", r.ID, err)
		}
	}
	return tx.Commit()
}

// LoadProfile rebuilds the stored profile. An empty table yields an
// empty profile, not an error.
func (s *Store) LoadProfile(ctx context.Context) (*profile.Profile, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, parent_id, position, name, effort_to_date, effort_to_complete, focused FROM goals")
	if err != nil {
		return nil, fmt.Errorf("querying goals: %w", err)
	}
	defer rows.Close()

	var records []profile.GoalRecord
	for rows.Next() {
		var (
			r        profile.GoalRecord
			id       int64
			parentID sql.NullInt64
		)
		if err := rows.Scan(&id, &parentID, &r.Position, &r.Name, &r.EffortToDate, &r.EffortToComplete, &r.Focused); err != nil {
			return nil, fmt.Errorf("scanning goal row: %w", err)
		}
		r.ID = models.GoalID(id)
		if parentID.Valid {
			pid := models.GoalID(parentID.Int64)
			r.ParentID = &pid
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading goal rows: %w", err)
	}
	return profile.FromRecords(records)
}

// SaveConfig persists the display configuration.
func (s *Store) SaveConfig(ctx context.Context, cfg models.Config) error {
	encoded, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		configKey, string(encoded))
	return err
}

// LoadConfig returns the persisted configuration, or the defaults when
// none has been saved yet.
func (s *Store) LoadConfig(ctx context.Context) (models.Config, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", configKey).Scan(&value)
	if err == sql.ErrNoRows {
		return models.DefaultConfig(), nil
	}
	if err != nil {
		return models.Config{}, fmt.Errorf("querying config: %w", err)
	}
	var cfg models.Config
	if err := json.Unmarshal([]byte(value), &cfg); err != nil {
		return models.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

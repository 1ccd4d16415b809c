// Package settings persists the two user facing settings, whether theming is
// enabled and which theme is selected, in a SQLite key/value table.
package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const (
	keyEnable = "enable"
	keyTheme  = "theme"
)

const schema = `CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// Settings is the persisted state. Theme is nil while no theme is selected.
type Settings struct {
	Enable bool    `json:"enable"`
	Theme  *string `json:"theme"`
}

// Defaults returns the settings used before anything was saved.
func Defaults() Settings {
	return Settings{Enable: false, Theme: nil}
}

// Store reads and writes Settings.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the settings database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create settings table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the current settings, falling back to Defaults for unset keys.
func (s *Store) Get(ctx context.Context) (Settings, error) {
	return get(ctx, s.db)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func get(ctx context.Context, q querier) (Settings, error) {
	out := Defaults()

	rows, err := q.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return out, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return out, fmt.Errorf("failed to scan setting: %w", err)
		}

		var target interface{}
		switch key {
		case keyEnable:
			target = &out.Enable
		case keyTheme:
			target = &out.Theme
		default:
			continue
		}
		if err := json.Unmarshal([]byte(value), target); err != nil {
			return out, fmt.Errorf("failed to decode setting %q: %w", key, err)
		}
	}

	return out, rows.Err()
}

// Apply writes the fields present in p and returns the resulting settings.
func (s *Store) Apply(ctx context.Context, p Patch) (Settings, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if p.Enable != nil {
		if err := put(ctx, tx, keyEnable, *p.Enable); err != nil {
			return Settings{}, err
		}
	}
	if p.Theme.Set {
		if err := put(ctx, tx, keyTheme, p.Theme.Value); err != nil {
			return Settings{}, err
		}
	}

	out, err := get(ctx, tx)
	if err != nil {
		return Settings{}, err
	}

	if err := tx.Commit(); err != nil {
		return Settings{}, fmt.Errorf("failed to commit settings: %w", err)
	}
	return out, nil
}

func put(ctx context.Context, tx *sql.Tx, key string, v interface{}) error {
	value, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode setting %q: %w", key, err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(value))
	if err != nil {
		return fmt.Errorf("failed to store setting %q: %w", key, err)
	}
	return nil
}

// Patch is a partial update. Nil Enable and unset Theme are left untouched.
type Patch struct {
	Enable *bool          `json:"enable"`
	Theme  OptionalString `json:"theme"`
}

// OptionalString tells an absent JSON field apart from an explicit null.
type OptionalString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked when the
// field is present in the document.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("theme must be a string or null")
	}
	o.Value = &s
	return nil
}

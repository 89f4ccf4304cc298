// Package prefs persists small user preferences (theme, onboarding
// visited flag) across sessions, backed by a SQLite database.
package prefs

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// Themes stored under the "theme" key.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// VisitedWindow is how long the visited flag suppresses the repeated
// onboarding notice.
const VisitedWindow = 7 * 24 * time.Hour

const schema = `
CREATE TABLE IF NOT EXISTS prefs (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// Store is a SQLite-backed key-value store for preferences.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the preferences database at dbPath, creating
// parent directories as needed.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// get returns the value and update time for key; ok is false when absent.
func (s *Store) get(key string) (value string, updated time.Time, ok bool, err error) {
	var ts int64
	row := s.db.QueryRow(`SELECT value, updated_at FROM prefs WHERE key = ?`, key)
	if err := row.Scan(&value, &ts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", time.Time{}, false, nil
		}
		return "", time.Time{}, false, err
	}
	return value, time.Unix(ts, 0), true, nil
}

// set upserts key with the current timestamp.
func (s *Store) set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO prefs (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.now().Unix(),
	)
	return err
}

// Theme returns the stored theme, defaulting to light.
func (s *Store) Theme() (string, error) {
	v, _, ok, err := s.get("theme")
	if err != nil {
		return "", err
	}
	if !ok || (v != ThemeLight && v != ThemeDark) {
		return ThemeLight, nil
	}
	return v, nil
}

// SetTheme stores the theme.
func (s *Store) SetTheme(theme string) error {
	return s.set("theme", theme)
}

// Visited reports whether the onboarding notice was acknowledged within
// the visited window. A flag older than the window counts as not visited.
func (s *Store) Visited() (bool, error) {
	v, updated, ok, err := s.get("visited")
	if err != nil {
		return false, err
	}
	if !ok || v != "true" {
		return false, nil
	}
	return s.now().Sub(updated) < VisitedWindow, nil
}

// MarkVisited records the onboarding notice as shown, starting a fresh
// visited window.
func (s *Store) MarkVisited() error {
	return s.set("visited", "true")
}

// Package session persists the small durable client state: the bearer
// token and the post-login redirect path. The backend owns everything else;
// this is the only thing the client keeps across restarts.
package session

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const (
	keyToken        = "token"
	keyRedirectPath = "redirect_path"
)

// Store wraps the SQLite database backing the session state.
type Store struct {
	conn *sql.DB
}

// Open creates (or reuses) the session database at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("session: ensure data dir: %w", err)
	}
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("session: open database: %w", err)
	}
	store := &Store{conn: conn}
	if err := store.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("session: migrate database: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS session_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// Token returns the persisted bearer token, or "" when none is stored.
func (s *Store) Token() (string, error) {
	return s.get(keyToken)
}

// SetToken persists the bearer token.
func (s *Store) SetToken(token string) error {
	return s.set(keyToken, token)
}

// ClearToken removes the persisted bearer token.
func (s *Store) ClearToken() error {
	return s.delete(keyToken)
}

// RedirectPath returns the stored "return here after login" path, or "".
func (s *Store) RedirectPath() (string, error) {
	return s.get(keyRedirectPath)
}

// SetRedirectPath stores the pre-login destination.
func (s *Store) SetRedirectPath(path string) error {
	return s.set(keyRedirectPath, path)
}

// ClearRedirectPath removes the stored destination.
func (s *Store) ClearRedirectPath() error {
	return s.delete(keyRedirectPath)
}

func (s *Store) get(key string) (string, error) {
	var value string
	err := s.conn.QueryRow(`SELECT value FROM session_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session: read %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) set(key, value string) error {
	_, err := s.conn.Exec(
		`INSERT INTO session_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("session: write %s: %w", key, err)
	}
	return nil
}

func (s *Store) delete(key string) error {
	_, err := s.conn.Exec(`DELETE FROM session_state WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("session: delete %s: %w", key, err)
	}
	return nil
}

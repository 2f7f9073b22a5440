package viewmode

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

// OpenSQLite opens (creating if needed) the preferences database at path.
func OpenSQLite(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sql.DB) error {
	createTable := `
CREATE TABLE IF NOT EXISTS view_preferences (
  client_id TEXT PRIMARY KEY,
  view_mode TEXT NOT NULL,
  updated_at TEXT NOT NULL
);`

	if _, err := db.Exec(createTable); err != nil {
		return fmt.Errorf("create view_preferences table: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, clientID string) (Mode, error) {
	var m string
	err := s.db.QueryRowContext(ctx,
		"SELECT view_mode FROM view_preferences WHERE client_id = ?", clientID,
	).Scan(&m)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoPreference
	}
	if err != nil {
		return "", fmt.Errorf("load view mode: %w", err)
	}
	return Mode(m), nil
}

func (s *SQLiteStore) Save(ctx context.Context, clientID string, m Mode) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO view_preferences (client_id, view_mode, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(client_id) DO UPDATE SET view_mode = excluded.view_mode, updated_at = excluded.updated_at`,
		clientID, string(m), s.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save view mode: %w", err)
	}
	return nil
}

// Package sqlite implements the preference store on a local SQLite file.
// Used when no Postgres DSN is configured (single-instance deployments).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vibpath/vibgate/internal/prefs"
)

// PreferenceStore implements prefs.Store backed by SQLite.
type PreferenceStore struct {
	db *sql.DB
}

// Open creates/opens the database file and ensures the schema exists.
func Open(path string) (*PreferenceStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// modernc sqlite is single-writer; one connection avoids SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(
		`CREATE TABLE IF NOT EXISTS user_preferences (
			user_id TEXT PRIMARY KEY,
			ai_reply_enabled INTEGER NOT NULL DEFAULT 1,
			last_updated TIMESTAMP NOT NULL
		)`,
	); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &PreferenceStore{db: db}, nil
}

func (s *PreferenceStore) GetStatus(ctx context.Context, userID string) bool {
	var enabled bool
	err := s.db.QueryRowContext(ctx,
		`SELECT ai_reply_enabled FROM user_preferences WHERE user_id = ?`,
		userID,
	).Scan(&enabled)
	if errors.Is(err, sql.ErrNoRows) {
		return prefs.DefaultEnabled
	}
	if err != nil {
		slog.Error("preference read failed, serving default", "user_id", userID, "error", err)
		return prefs.DefaultEnabled
	}
	return enabled
}

func (s *PreferenceStore) SetStatus(ctx context.Context, userID string, enabled bool) bool {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_preferences (user_id, ai_reply_enabled, last_updated)
		 VALUES (?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE
		 SET ai_reply_enabled = excluded.ai_reply_enabled,
		     last_updated = excluded.last_updated`,
		userID, enabled, time.Now().UTC(),
	)
	if err != nil {
		slog.Error("preference write failed", "user_id", userID, "enabled", enabled, "error", err)
		return false
	}
	return true
}

func (s *PreferenceStore) Delete(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM user_preferences WHERE user_id = ?`, userID,
	); err != nil {
		return &prefs.StoreError{Op: "delete", Err: err}
	}
	return nil
}

func (s *PreferenceStore) List(ctx context.Context) ([]prefs.UserPreference, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, ai_reply_enabled, last_updated
		 FROM user_preferences ORDER BY last_updated DESC`,
	)
	if err != nil {
		return nil, &prefs.StoreError{Op: "list", Err: err}
	}
	defer rows.Close()

	var out []prefs.UserPreference
	for rows.Next() {
		var p prefs.UserPreference
		if err := rows.Scan(&p.UserID, &p.AIReplyEnabled, &p.LastUpdated); err != nil {
			return nil, &prefs.StoreError{Op: "list scan", Err: err}
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, &prefs.StoreError{Op: "list rows", Err: err}
	}
	return out, nil
}

func (s *PreferenceStore) Connected() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.db.PingContext(ctx) == nil
}

func (s *PreferenceStore) Close() error { return s.db.Close() }

// Package pg implements the preference store on Postgres.
package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/vibpath/vibgate/internal/prefs"
)

// PreferenceStore implements prefs.Store backed by Postgres.
type PreferenceStore struct {
	db *sql.DB
}

// Open connects to Postgres and verifies the connection. A failed ping is
// returned as an error; callers that want degraded startup use the factory,
// which falls back to a disabled store.
func Open(dsn string) (*PreferenceStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(45 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &PreferenceStore{db: db}, nil
}

func (s *PreferenceStore) GetStatus(ctx context.Context, userID string) bool {
	var enabled bool
	err := s.db.QueryRowContext(ctx,
		`SELECT ai_reply_enabled FROM user_preferences WHERE user_id = $1`,
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
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE
		 SET ai_reply_enabled = EXCLUDED.ai_reply_enabled,
		     last_updated = EXCLUDED.last_updated`,
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
		`DELETE FROM user_preferences WHERE user_id = $1`, userID,
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

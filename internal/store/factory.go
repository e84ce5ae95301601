// Package store selects the preference store backend from config.
package store

import (
	"context"
	"log/slog"

	"github.com/vibpath/vibgate/internal/config"
	"github.com/vibpath/vibgate/internal/prefs"
	"github.com/vibpath/vibgate/internal/store/pg"
	"github.com/vibpath/vibgate/internal/store/sqlite"
)

// NewPreferenceStore picks a backend: Postgres when a DSN is set, SQLite when
// a file path is set, otherwise a disabled store. A backend that fails to
// open degrades to the disabled store rather than failing startup — the rest
// of the system keeps functioning on cache/default behavior.
func NewPreferenceStore(cfg *config.Config) prefs.Store {
	if dsn := cfg.Database.PostgresDSN; dsn != "" {
		s, err := pg.Open(dsn)
		if err != nil {
			slog.Error("postgres unavailable, preference store disabled", "error", err)
			return Disabled{}
		}
		slog.Info("preference store: postgres")
		return s
	}

	if path := cfg.Database.SQLitePath; path != "" {
		s, err := sqlite.Open(path)
		if err != nil {
			slog.Error("sqlite unavailable, preference store disabled", "path", path, "error", err)
			return Disabled{}
		}
		slog.Info("preference store: sqlite", "path", path)
		return s
	}

	slog.Warn("no database configured, preference store disabled (AI toggle will not persist)")
	return Disabled{}
}

// Disabled is the no-backend store: reads serve the default, writes report
// failure. It keeps the service functioning when no database is reachable.
type Disabled struct{}

func (Disabled) GetStatus(context.Context, string) bool { return prefs.DefaultEnabled }

func (Disabled) SetStatus(context.Context, string, bool) bool { return false }

func (Disabled) Delete(context.Context, string) error {
	return &prefs.StoreError{Op: "delete", Err: ErrStoreDisabled}
}

func (Disabled) List(context.Context) ([]prefs.UserPreference, error) {
	return nil, &prefs.StoreError{Op: "list", Err: ErrStoreDisabled}
}

func (Disabled) Connected() bool { return false }

func (Disabled) Close() error { return nil }

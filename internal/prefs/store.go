package prefs

import (
	"context"
	"fmt"
	"time"
)

// DefaultEnabled is the preference served when no record exists and when the
// store is unreachable: AI replies are on unless a user opted out.
const DefaultEnabled = true

// UserPreference is one durable per-user record. Created implicitly on first
// write (upsert).
type UserPreference struct {
	UserID         string    `json:"userId"`
	AIReplyEnabled bool      `json:"aiReplyEnabled"`
	LastUpdated    time.Time `json:"lastUpdated"`
}

// Store is the durable preference backend. Implementations must be
// constructible with the backing connection down: in that mode GetStatus
// returns the default, SetStatus reports failure, and the process keeps
// running on cache-only behavior.
type Store interface {
	// GetStatus never fails the caller: on any connectivity error it logs
	// and returns DefaultEnabled.
	GetStatus(ctx context.Context, userID string) bool
	// SetStatus upserts by user id. Failure is reported, not returned as an
	// error, so the service can react (cache invalidation).
	SetStatus(ctx context.Context, userID string, enabled bool) bool
	Delete(ctx context.Context, userID string) error
	List(ctx context.Context) ([]UserPreference, error)
	// Connected reports whether the backing store is reachable. The service
	// uses this to choose between authoritative reads and cache fallback.
	Connected() bool
	Close() error
}

// StoreError wraps failures from a store backend.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("preference store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

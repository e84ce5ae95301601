package prefs

import (
	"context"
	"log/slog"
)

// Service composes the durable store and the TTL cache into one consistent
// read/write API.
//
// Reads are store-first when the store is reachable (the cache is just
// acceleration); under a store outage reads fall back to the cache and then
// to the default. Writes go to the store first: success writes through to
// the cache, failure invalidates the cache entry so a later read is forced
// to re-resolve rather than serving a value that may disagree with the store.
type Service struct {
	store Store
	cache *Cache
}

func NewService(store Store, cache *Cache) *Service {
	return &Service{store: store, cache: cache}
}

// IsAIReplyEnabled returns the effective AI-reply flag for userID.
func (s *Service) IsAIReplyEnabled(ctx context.Context, userID string) bool {
	if s.store.Connected() {
		enabled := s.store.GetStatus(ctx, userID)
		s.cache.Set(userID, enabled)
		return enabled
	}

	if enabled, ok := s.cache.Get(userID); ok {
		slog.Debug("preference served from cache fallback", "user_id", userID, "enabled", enabled)
		return enabled
	}

	slog.Debug("preference store down and no cache entry, serving default", "user_id", userID)
	return DefaultEnabled
}

// SetAIReplyStatus persists the flag. Returns whether the durable write
// succeeded. On failure the cache entry is invalidated, not updated.
func (s *Service) SetAIReplyStatus(ctx context.Context, userID string, enabled bool) bool {
	if s.store.SetStatus(ctx, userID, enabled) {
		s.cache.Set(userID, enabled)
		return true
	}

	s.cache.Invalidate(userID)
	slog.Warn("preference write failed, cache entry invalidated", "user_id", userID)
	return false
}

// ToggleAIReply flips the flag and returns the new value. The returned value
// reflects the intended state even when the underlying write failed; a
// failed write is observable only through logs.
func (s *Service) ToggleAIReply(ctx context.Context, userID string) bool {
	next := !s.IsAIReplyEnabled(ctx, userID)
	s.SetAIReplyStatus(ctx, userID, next)
	return next
}

// Delete removes the durable record and invalidates the cache entry.
func (s *Service) Delete(ctx context.Context, userID string) error {
	if err := s.store.Delete(ctx, userID); err != nil {
		return err
	}
	s.cache.Invalidate(userID)
	return nil
}

// List returns all durable records (management API).
func (s *Service) List(ctx context.Context) ([]UserPreference, error) {
	return s.store.List(ctx)
}

// StoreConnected reports whether the durable backend is reachable.
func (s *Service) StoreConnected() bool { return s.store.Connected() }

// CacheStats exposes cache occupancy (management API).
func (s *Service) CacheStats() CacheStats { return s.cache.Stats() }

// ClearCache drops every cached entry (management API).
func (s *Service) ClearCache() { s.cache.Clear() }

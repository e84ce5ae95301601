package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration for the VibGate service.
type Config struct {
	Line      LineConfig      `json:"line"`
	Agent     AgentConfig     `json:"agent"`
	Database  DatabaseConfig  `json:"database,omitempty"`
	Admin     AdminConfig     `json:"admin,omitempty"`
	Server    ServerConfig    `json:"server"`
	Prefs     PrefsConfig     `json:"prefs,omitempty"`
	Telemetry TelemetryConfig `json:"telemetry,omitempty"`
}

// LineConfig holds LINE Messaging API credentials.
// Both values come from env only (secrets, never persisted to config.json).
type LineConfig struct {
	ChannelSecret string `json:"-"` // from env LINE_CHANNEL_SECRET
	ChannelToken  string `json:"-"` // from env LINE_CHANNEL_TOKEN
}

// AgentConfig configures the external conversational-agent runtime.
type AgentConfig struct {
	BaseURL        string `json:"base_url,omitempty"` // agent server endpoint
	APIKey         string `json:"-"`                  // from env AGENT_API_KEY only
	AppName        string `json:"app_name,omitempty"` // runtime app identifier
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
}

// DatabaseConfig selects the preference store backend.
// PostgresDSN is NEVER read from config.json (secret) — only from env
// VIBGATE_POSTGRES_DSN. When no DSN is set, SQLitePath is used; when neither
// is set the store runs disabled and every read serves the default preference.
type DatabaseConfig struct {
	PostgresDSN string `json:"-"`
	SQLitePath  string `json:"sqlite_path,omitempty"`
}

// AdminConfig holds the admin allow-list and pause timezone.
// UserIDs are loaded once at startup and immutable for the process lifetime.
type AdminConfig struct {
	UserIDs  []string `json:"-"` // from env ADMIN_USER_IDS only
	Timezone string   `json:"timezone,omitempty"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`
}

// PrefsConfig configures the preference cache.
type PrefsConfig struct {
	CacheTTLSeconds int    `json:"cache_ttl_seconds,omitempty"`
	SweepSchedule   string `json:"sweep_schedule,omitempty"` // cron expr for expired-entry cleanup
}

// TelemetryConfig configures OpenTelemetry export for traces.
// When enabled, spans are exported to an OTLP/HTTP-compatible backend
// (Jaeger, Tempo, Datadog, etc.).
type TelemetryConfig struct {
	Enabled     bool              `json:"enabled,omitempty"`
	Endpoint    string            `json:"endpoint,omitempty"`     // e.g. "localhost:4318"
	Insecure    bool              `json:"insecure,omitempty"`     // plain HTTP (local dev)
	ServiceName string            `json:"service_name,omitempty"` // default "vibgate"
	Headers     map[string]string `json:"headers,omitempty"`      // extra headers (auth tokens)
}

// ConfigurationError indicates required startup configuration is missing or
// invalid. It is fatal: the process must not start.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Agent: AgentConfig{
			AppName:        "vibgate",
			TimeoutSeconds: 90,
		},
		Admin: AdminConfig{
			Timezone: "Asia/Taipei",
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Prefs: PrefsConfig{
			CacheTTLSeconds: 600,
			SweepSchedule:   "*/10 * * * *",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "vibgate",
		},
	}
}

// Validate checks required fields. Returns *ConfigurationError on the first
// violation; callers treat this as fatal at startup.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Line.ChannelSecret) == "" {
		return &ConfigurationError{Field: "LINE_CHANNEL_SECRET", Reason: "must not be empty"}
	}
	if strings.TrimSpace(c.Line.ChannelToken) == "" {
		return &ConfigurationError{Field: "LINE_CHANNEL_TOKEN", Reason: "must not be empty"}
	}
	if c.Prefs.CacheTTLSeconds <= 0 {
		return &ConfigurationError{Field: "prefs.cache_ttl_seconds", Reason: "must be positive"}
	}
	if _, err := time.LoadLocation(c.Admin.Timezone); err != nil {
		return &ConfigurationError{Field: "admin.timezone", Reason: fmt.Sprintf("unknown timezone %q", c.Admin.Timezone)}
	}
	return nil
}

// Location resolves the configured pause timezone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Admin.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// CacheTTL returns the preference cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Prefs.CacheTTLSeconds) * time.Second
}

// AgentTimeout returns the per-call agent runtime timeout.
func (c *Config) AgentTimeout() time.Duration {
	return time.Duration(c.Agent.TimeoutSeconds) * time.Second
}

// IsAdmin reports whether userID is in the admin allow-list.
func (c *Config) IsAdmin(userID string) bool {
	for _, id := range c.Admin.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

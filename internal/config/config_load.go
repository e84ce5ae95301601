package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/titanous/json5"
)

// Load reads config from a JSON5 file, then overlays env vars (highest
// precedence). A missing file is not an error: defaults + env apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		} else if err := json5.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.ApplyEnvOverrides()
	return cfg, nil
}

// ApplyEnvOverrides overlays environment variables onto the config.
// Secrets (channel credentials, DSN, agent key, admin ids) are env-only.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("LINE_CHANNEL_SECRET"); v != "" {
		c.Line.ChannelSecret = v
	}
	if v := os.Getenv("LINE_CHANNEL_TOKEN"); v != "" {
		c.Line.ChannelToken = v
	}
	if v := os.Getenv("VIBGATE_POSTGRES_DSN"); v != "" {
		c.Database.PostgresDSN = v
	}
	if v := os.Getenv("VIBGATE_SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("AGENT_BASE_URL"); v != "" {
		c.Agent.BaseURL = v
	}
	if v := os.Getenv("AGENT_API_KEY"); v != "" {
		c.Agent.APIKey = v
	}
	if v := os.Getenv("ADMIN_USER_IDS"); v != "" {
		c.Admin.UserIDs = SplitAdminIDs(v)
	}
	if v := os.Getenv("TIMEZONE"); v != "" {
		c.Admin.Timezone = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("VIBGATE_CACHE_TTL_SECONDS"); v != "" {
		if ttl, err := strconv.Atoi(v); err == nil && ttl > 0 {
			c.Prefs.CacheTTLSeconds = ttl
		}
	}
	if v := os.Getenv("VIBGATE_OTLP_ENDPOINT"); v != "" {
		c.Telemetry.Enabled = true
		c.Telemetry.Endpoint = v
	}
}

// SplitAdminIDs parses the admin allow-list env value. The separator is
// auto-detected: colon first, then pipe, then comma.
func SplitAdminIDs(raw string) []string {
	sep := ","
	switch {
	case strings.Contains(raw, ":"):
		sep = ":"
	case strings.Contains(raw, "|"):
		sep = "|"
	}

	var ids []string
	for _, part := range strings.Split(raw, sep) {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

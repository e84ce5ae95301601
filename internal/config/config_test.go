package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSplitAdminIDs(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"a:b:c", []string{"a", "b", "c"}},
		{"a|b", []string{"a", "b"}},
		{"a,b", []string{"a", "b"}},
		{"single", []string{"single"}},
		{" a : b ", []string{"a", "b"}},
		{"a,,b", []string{"a", "b"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := SplitAdminIDs(tt.raw); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitAdminIDs(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want default 8080", cfg.Server.Port)
	}
	if cfg.Prefs.CacheTTLSeconds != 600 {
		t.Errorf("CacheTTLSeconds = %d, want 600", cfg.Prefs.CacheTTLSeconds)
	}
	if cfg.Admin.Timezone != "Asia/Taipei" {
		t.Errorf("Timezone = %q", cfg.Admin.Timezone)
	}
}

func TestLoad_FileAndEnvOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	// JSON5: comments and trailing commas are accepted.
	content := `{
		// local overrides
		server: {port: 9000},
		prefs: {cache_ttl_seconds: 120,},
	}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PORT", "9999")
	t.Setenv("LINE_CHANNEL_SECRET", "secret")
	t.Setenv("ADMIN_USER_IDS", "U1:U2")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	// Env wins over file.
	if cfg.Server.Port != 9999 {
		t.Errorf("Port = %d, want env override 9999", cfg.Server.Port)
	}
	// File wins over defaults.
	if cfg.Prefs.CacheTTLSeconds != 120 {
		t.Errorf("CacheTTLSeconds = %d, want 120", cfg.Prefs.CacheTTLSeconds)
	}
	if cfg.Line.ChannelSecret != "secret" {
		t.Errorf("ChannelSecret = %q", cfg.Line.ChannelSecret)
	}
	if !cfg.IsAdmin("U2") || cfg.IsAdmin("U3") {
		t.Errorf("admin list = %v", cfg.Admin.UserIDs)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Line.ChannelSecret = "s"
		cfg.Line.ChannelToken = "t"
		return cfg
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing secret", func(c *Config) { c.Line.ChannelSecret = "" }, "LINE_CHANNEL_SECRET"},
		{"missing token", func(c *Config) { c.Line.ChannelToken = " " }, "LINE_CHANNEL_TOKEN"},
		{"bad ttl", func(c *Config) { c.Prefs.CacheTTLSeconds = 0 }, "prefs.cache_ttl_seconds"},
		{"bad timezone", func(c *Config) { c.Admin.Timezone = "Mars/Olympus" }, "admin.timezone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			cfgErr, ok := err.(*ConfigurationError)
			if !ok {
				t.Fatalf("Validate() = %v, want *ConfigurationError", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.wantField)
			}
		})
	}
}

func TestSecretsNeverSerialized(t *testing.T) {
	cfg := Default()

	// The json:"-" tags keep secrets out of any marshalled form.
	assertDashTag(t, reflect.TypeOf(cfg.Line), "ChannelSecret")
	assertDashTag(t, reflect.TypeOf(cfg.Line), "ChannelToken")
	assertDashTag(t, reflect.TypeOf(cfg.Database), "PostgresDSN")
	assertDashTag(t, reflect.TypeOf(cfg.Agent), "APIKey")
	assertDashTag(t, reflect.TypeOf(cfg.Admin), "UserIDs")
}

func assertDashTag(t *testing.T, typ reflect.Type, field string) {
	t.Helper()
	f, ok := typ.FieldByName(field)
	if !ok {
		t.Fatalf("field %s not found on %s", field, typ.Name())
	}
	if tag := f.Tag.Get("json"); tag != "-" {
		t.Errorf("%s.%s json tag = %q, want \"-\"", typ.Name(), field, tag)
	}
}

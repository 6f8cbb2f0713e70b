package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()

	if cfg.Database.Driver != "redis" {
		t.Errorf("driver = %q", cfg.Database.Driver)
	}
	if cfg.Search.DefaultLimit != 50 || cfg.Search.MaxLimit != 500 {
		t.Errorf("limits = %d/%d", cfg.Search.DefaultLimit, cfg.Search.MaxLimit)
	}
	if cfg.Search.FetchLimit != 2000 {
		t.Errorf("fetch limit = %d", cfg.Search.FetchLimit)
	}
	if cfg.Search.FetchTimeout() != 5*time.Second {
		t.Errorf("fetch timeout = %v", cfg.Search.FetchTimeout())
	}
	if cfg.Search.DefaultSort != "relevance" {
		t.Errorf("default sort = %q", cfg.Search.DefaultSort)
	}
	if cfg.Cache.TTL() != time.Minute {
		t.Errorf("cache ttl = %v", cfg.Cache.TTL())
	}
	if cfg.Storage.KeyPrefix != "clinicdex:" {
		t.Errorf("key prefix = %q", cfg.Storage.KeyPrefix)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"bad port", func(c *Config) { c.HTTP.Port = 0 }, "http.port"},
		{"no addrs", func(c *Config) { c.Database.Addrs = nil }, "database.addrs"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "valkey" }, "database.driver"},
		{"default above max", func(c *Config) { c.Search.DefaultLimit = 600 }, "search.default_limit"},
		{"fetch limit too big", func(c *Config) { c.Search.FetchLimit = 10000 }, "search.fetch_limit"},
		{"distance default sort", func(c *Config) { c.Search.DefaultSort = "distance" }, "search.default_sort"},
		{"unknown sort", func(c *Config) { c.Search.DefaultSort = "popularity" }, "search.default_sort"},
		{"missing lexicon", func(c *Config) { c.Search.LexiconFile = "/nonexistent/lexicon.yaml" }, "lexicon_file"},
		{"rating sort ok", func(c *Config) { c.Search.DefaultSort = "rating" }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("CLINICDEX_TEST_ADDR", "redis:6379")

	tests := []struct {
		in, want string
	}{
		{"addr: ${CLINICDEX_TEST_ADDR}", "addr: redis:6379"},
		{"addr: ${CLINICDEX_TEST_UNSET:-localhost:6379}", "addr: localhost:6379"},
		{"addr: ${CLINICDEX_TEST_UNSET}", "addr: "},
		{"plain: value", "plain: value"},
	}
	for _, tt := range tests {
		if got := string(expandEnvVars([]byte(tt.in))); got != tt.want {
			t.Errorf("expandEnvVars(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o750); err != nil {
		t.Fatal(err)
	}
	yaml := `
http:
  port: ${CLINICDEX_TEST_PORT:-9090}
database:
  addrs: ["localhost:6379"]
search:
  default_sort: name
cache:
  enabled: true
  ttl_sec: 15
`
	if err := os.WriteFile(filepath.Join(dir, "config", "unittest.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := Load("unittest")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("port = %d", cfg.HTTP.Port)
	}
	if cfg.Search.DefaultSort != "name" {
		t.Errorf("default sort = %q", cfg.Search.DefaultSort)
	}
	if !cfg.Cache.Enabled || cfg.Cache.TTL() != 15*time.Second {
		t.Errorf("cache = %+v", cfg.Cache)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := Load("does-not-exist"); err == nil {
		t.Fatal("expected error for missing config")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("GetEnv() = %q, want local", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv() = %q, want prod", got)
	}
}

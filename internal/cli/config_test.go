package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// withConfigHome points XDG_CONFIG_HOME at a temp directory and returns
// the phylograph config directory inside it.
func withConfigHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	oldXdg := os.Getenv("XDG_CONFIG_HOME")
	os.Setenv("XDG_CONFIG_HOME", home)
	t.Cleanup(func() {
		if oldXdg != "" {
			os.Setenv("XDG_CONFIG_HOME", oldXdg)
		} else {
			os.Unsetenv("XDG_CONFIG_HOME")
		}
	})

	dir := filepath.Join(home, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll() error: %v", err)
	}
	return dir
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	withConfigHome(t)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	// Missing file yields zero-value defaults
	if cfg.Cache.Backend != "" {
		t.Errorf("Cache.Backend = %q, want empty", cfg.Cache.Backend)
	}
	if cfg.Store.Backend != "" {
		t.Errorf("Store.Backend = %q, want empty", cfg.Store.Backend)
	}
	if cfg.Render.Format != "" {
		t.Errorf("Render.Format = %q, want empty", cfg.Render.Format)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := withConfigHome(t)
	writeConfig(t, dir, `
[cache]
backend = "redis"
redis_url = "redis://localhost:6379/1"

[store]
backend = "mongo"
mongo_uri = "mongodb://localhost:27017"
mongo_database = "phylograph"

[render]
format = "dot"
style = "plain"
direction = "TB"
show_lengths = true
`)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	if cfg.Cache.Backend != backendRedis {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, backendRedis)
	}
	if cfg.Cache.RedisURL != "redis://localhost:6379/1" {
		t.Errorf("Cache.RedisURL = %q", cfg.Cache.RedisURL)
	}
	if cfg.Store.Backend != backendMongo {
		t.Errorf("Store.Backend = %q, want %q", cfg.Store.Backend, backendMongo)
	}
	if cfg.Store.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("Store.MongoURI = %q", cfg.Store.MongoURI)
	}
	if cfg.Store.MongoDatabase != "phylograph" {
		t.Errorf("Store.MongoDatabase = %q", cfg.Store.MongoDatabase)
	}
	if cfg.Render.Format != "dot" {
		t.Errorf("Render.Format = %q, want dot", cfg.Render.Format)
	}
	if cfg.Render.Style != "plain" {
		t.Errorf("Render.Style = %q, want plain", cfg.Render.Style)
	}
	if cfg.Render.Direction != "TB" {
		t.Errorf("Render.Direction = %q, want TB", cfg.Render.Direction)
	}
	if !cfg.Render.ShowLengths {
		t.Error("Render.ShowLengths = false, want true")
	}
}

func TestLoadConfigPartial(t *testing.T) {
	dir := withConfigHome(t)
	writeConfig(t, dir, `
[render]
format = "mermaid"
`)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	if cfg.Render.Format != "mermaid" {
		t.Errorf("Render.Format = %q, want mermaid", cfg.Render.Format)
	}
	if cfg.Cache.Backend != "" {
		t.Errorf("Cache.Backend = %q, want empty", cfg.Cache.Backend)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := withConfigHome(t)
	writeConfig(t, dir, `[cache`)

	_, err := loadConfig()
	if err == nil {
		t.Fatal("loadConfig() expected error for malformed TOML")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Errorf("error = %q, should mention parse config", err)
	}
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Backend names accepted in the config file.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendMongo = "mongo"
	backendNone  = "none"
)

// Config is the phylograph configuration file, read from
// ~/.config/phylograph/config.toml (XDG aware). All fields are optional;
// a missing file yields the defaults. Flags override config values.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Render RenderConfig `toml:"render"`
}

// CacheConfig selects the artifact and source cache backend.
type CacheConfig struct {
	// Backend is "file" (default), "redis", or "none".
	Backend string `toml:"backend"`

	// Dir overrides the file cache directory (default ~/.cache/phylograph/).
	Dir string `toml:"dir"`

	// RedisURL is the redis connection URL for the redis backend,
	// e.g. "redis://localhost:6379/0".
	RedisURL string `toml:"redis_url"`
}

// StoreConfig selects the graph store backend.
type StoreConfig struct {
	// Backend is "file" (default) or "mongo".
	Backend string `toml:"backend"`

	// Dir overrides the file store directory (default ~/.config/phylograph/graphs/).
	Dir string `toml:"dir"`

	// MongoURI and MongoDatabase configure the mongo backend.
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// RenderConfig sets default render options, overridable per command with flags.
type RenderConfig struct {
	Format      string `toml:"format"`
	Style       string `toml:"style"`
	Direction   string `toml:"direction"`
	ShowLengths bool   `toml:"show_lengths"`
}

// configPath returns the path of the config file.
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// loadConfig reads the config file, returning defaults when it does not exist.
func loadConfig() (Config, error) {
	var cfg Config

	path, err := configPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Package cli implements the phylograph command-line interface.
//
// This package provides commands for rendering ancestral recombination
// graphs, inspecting their structure, converting between document formats,
// persisting named graphs, and serving the HTTP API. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Generate DOT, Mermaid, SVG, PNG, or JSON output
//   - inspect: Summarize a graph and drill into single nodes
//   - convert: Convert between Newick and JSON documents
//   - examples: Emit the built-in example graphs
//   - store: Save, load, list, and delete named graphs
//   - serve: Start the HTTP API
//   - cache: Manage the artifact and source cache
//   - tui: Explore a graph interactively
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// is attached to the command context so helpers deep in a command body can
// recover it with loggerFromContext.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/arborlab/phylograph/pkg/buildinfo"
	"github.com/arborlab/phylograph/pkg/cache"
	"github.com/arborlab/phylograph/pkg/graph"
	"github.com/arborlab/phylograph/pkg/pipeline"
	"github.com/arborlab/phylograph/pkg/store"
)

// appName is the application name used for directories and display.
const appName = "phylograph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Phylograph visualizes ancestral recombination graphs",
		Long:         `Phylograph is a CLI tool for working with ancestral recombination graphs: parse Newick or JSON documents, inspect their structure, and render them as DOT, Mermaid, SVG, or PNG diagrams.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.examplesCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner and Store Factories
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
// The cache backend comes from the config file unless noCache disables it.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cch, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cch, nil, c.Logger), nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}

	cfg, err := loadConfig()
	if err != nil {
		c.Logger.Warn("config unreadable, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}

	switch cfg.Cache.Backend {
	case backendNone:
		return cache.NewNullCache(), nil
	case backendRedis:
		return cache.NewRedisCache(cfg.Cache.RedisURL)
	default:
		dir := cfg.Cache.Dir
		if dir == "" {
			dir, err = cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	}
}

// newStore opens the graph store selected by the config file.
// The caller is responsible for closing it.
func (c *CLI) newStore(cmd *cobra.Command) (store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if cfg.Store.Backend == backendMongo {
		return store.NewMongoStore(cmd.Context(), cfg.Store.MongoURI, cfg.Store.MongoDatabase)
	}
	return store.NewFileStore(cfg.Store.Dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/phylograph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/phylograph/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice,
// falling back to the configured default format.
func parseFormats(s, fallback string) []string {
	if s == "" {
		if fallback == "" {
			fallback = graph.FormatSVG
		}
		return []string{fallback}
	}
	return strings.Split(s, ",")
}

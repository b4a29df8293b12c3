// Package cli implements the skillboard command-line interface.
package cli

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/skillboard/skillboard/pkg/board"
	"github.com/skillboard/skillboard/pkg/buildinfo"
	"github.com/skillboard/skillboard/pkg/cache"
	"github.com/skillboard/skillboard/pkg/config"
	"github.com/skillboard/skillboard/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "skillboard"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath overrides the default config file location (--config).
	configPath string
	noCache    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "skillboard",
		Short:        "Skillboard packs skill labels into an animated board",
		Long:         `Skillboard fills fixed terminal lines with a random selection of skill labels and keeps the board alive by swapping small runs of labels in and out.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.SetLogLevel(log.DebugLevel)
			}
			c.installHooks()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/skillboard/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable feed and artifact caching")

	root.AddCommand(c.boardCommand())
	root.AddCommand(c.packCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.feedCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.prefsCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config and Runner Factories
// =============================================================================

// loadConfig reads the configuration file named by --config, or the
// default location when the flag is unset.
func (c *CLI) loadConfig() (config.Config, error) {
	path := c.configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

// newRunner creates a pipeline runner for CLI use. The feed cache TTL and
// the snapshot key scope both come from the loaded configuration.
func (c *CLI) newRunner(cfg config.Config) (*pipeline.Runner, error) {
	backend, err := c.newCache()
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(nil, snapshotScope(cfg.BoardConfig()))
	return pipeline.NewRunner(backend, keyer, c.Logger, cfg.CacheTTL.Duration), nil
}

// snapshotScope namespaces artifact cache keys by the packing tuning.
// Snapshot keys carry width, lines, and seed, but not gap, padding, or the
// fill thresholds; without the scope two configs differing only there would
// serve each other's cached renders.
func snapshotScope(cfg board.Config) string {
	data, _ := json.Marshal(cfg)
	return "cfg:" + cache.Hash(data)[:12] + ":"
}

func (c *CLI) newCache() (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/skillboard/).
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

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/backlogtree/pkg/buildinfo"
	"github.com/matzehuels/backlogtree/pkg/cache"
	"github.com/matzehuels/backlogtree/pkg/config"
	"github.com/matzehuels/backlogtree/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "backlogtree"
)

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

	// Config is loaded before any subcommand runs.
	Config config.Config
	// ConfigPath is the file Config was read from, empty for defaults.
	ConfigPath string

	verbose    bool
	configFlag string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "backlogtree draws backlogs as pannable, zoomable trees",
		Long: `backlogtree lays out a backlog of epics, features, stories and tasks as a tidy
tree of cards, renders it to SVG, PNG, Graphviz or text, and browses it
interactively in the terminal.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configFlag, "config", "", "config file (default $XDG_CONFIG_HOME/backlogtree/config.toml)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup applies --verbose, loads the config file and attaches the logger to
// the command context.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
	}

	var err error
	if c.configFlag != "" {
		c.Config, err = config.Load(c.configFlag)
		c.ConfigPath = c.configFlag
	} else {
		c.Config, c.ConfigPath, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}
	if c.ConfigPath != "" {
		c.Logger.Debug("loaded config", "path", c.ConfigPath)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc := c.Config.Cache
	if noCache {
		cc.Backend = config.BackendNone
	}
	store, err := newCache(ctx, cc)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(store, cache.NewScopedKeyer(nil, cc.Namespace), c.Logger)
	r.TTL = cc.TTL.Duration
	return r, nil
}

// newCache opens the configured backend. An unusable file cache directory
// disables caching rather than failing the command.
func newCache(ctx context.Context, cc config.CacheConfig) (cache.Cache, error) {
	switch cc.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cc.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect cache: %w", err)
		}
		return rc, nil
	}

	dir := cc.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			loggerFromContext(ctx).Warn("cache disabled", "err", err)
			return cache.NewNullCache(), nil
		}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		loggerFromContext(ctx).Warn("cache disabled", "dir", dir, "err", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/backlogtree/).
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

// =============================================================================
// Options Helpers
// =============================================================================

// baseOptions returns pipeline options seeded from the config file.
func (c *CLI) baseOptions() pipeline.Options {
	return pipeline.Options{
		Layout:   c.Config.Layout,
		Formats:  c.Config.Render.Formats,
		Theme:    c.Config.Render.Theme,
		Scale:    c.Config.Render.Scale,
		Font:     c.Config.Render.Font,
		Viewport: c.Config.Viewport,
		Logger:   c.Logger,
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

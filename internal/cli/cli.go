package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cityforest/pkg/buildinfo"
	"github.com/matzehuels/cityforest/pkg/cache"
	"github.com/matzehuels/cityforest/pkg/config"
	"github.com/matzehuels/cityforest/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "cityforest"

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
// The CLI logger is attached to every command's context.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Cityforest links cities into a degree-bounded nearest-neighbor forest",
		Long: `Cityforest connects every city of a data set to its nearest cities,
at most three connections each, searching the city's own state first and
bordering states when the state runs out of candidates.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.filterCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Keys are scoped by build
// version so an upgraded binary never reads networks built by older code.
func (c *CLI) newRunner(cfg config.Cache) *pipeline.Runner {
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CacheScope())
	return pipeline.NewRunner(c.newCache(cfg), keyer, c.Logger)
}

// newCache opens the file cache, falling back to no caching when the
// directory is unusable.
func (c *CLI) newCache(cfg config.Cache) cache.Cache {
	if cfg.Disabled || cfg.Dir == "" {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(cfg.Dir)
	if err != nil {
		c.Logger.Warn("cache disabled", "dir", cfg.Dir, "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the default cache directory (<user cache dir>/cityforest).
func cacheDir() string {
	var cfg config.Config
	cfg.SetDefaults()
	return cfg.Cache.Dir
}

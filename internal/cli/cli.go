// Package cli implements the sosatree command-line interface.
//
// This package provides commands for parsing GEDCOM files, computing pedigree
// chart layouts, rendering them as SVG/JSON/DOT/PNG, serving them over HTTP,
// and managing the local result cache. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - parse: Inspect a GEDCOM file and list its individuals
//   - chart: Run the full parse → layout → render pipeline
//   - layout: Compute chart geometry and save it as chart.json
//   - render: Re-render a saved chart.json without recomputing
//   - pick: Interactively choose a chart root from a GEDCOM file
//   - serve: Expose the pipeline as an HTTP API
//   - cache: Manage the local result cache
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sosatree/sosatree/pkg/buildinfo"
	"github.com/sosatree/sosatree/pkg/cache"
	"github.com/sosatree/sosatree/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "sosatree"

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

	// RedisAddr selects a shared Redis cache instead of the local file
	// cache. Set via --redis-addr or SOSATREE_REDIS_ADDR.
	RedisAddr string
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
		Use:          "sosatree",
		Short:        "Sosatree renders GEDCOM ancestry as pedigree charts",
		Long:         `Sosatree is a CLI tool for turning GEDCOM genealogy files into pedigree charts: binary ancestor trees laid out in four orientations with Sosa-Stradonitz numbering.`,
		Version: buildinfo.Version,
		// main prints the error with a program prefix; keep cobra quiet so
		// failures surface exactly once.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.RedisAddr, "redis-addr", os.Getenv("SOSATREE_REDIS_ADDR"),
		"redis address (host:port) for a shared result cache; default is a local file cache")

	// Register all subcommands
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.chartCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

// newCache picks the cache backend: none with --no-cache, Redis when an
// address is configured, otherwise a file cache in the XDG cache dir.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.RedisAddr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: c.RedisAddr})
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

// cacheDir returns the cache directory using XDG standard (~/.cache/sosatree/).
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

// themeDir returns the theme directory using XDG standard
// (~/.config/sosatree/themes/). Named themes resolve to TOML files here.
func themeDir() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "themes")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "themes")
}

// =============================================================================
// Flag Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .json, etc.), it strips that too,
// so multiple formats can share one base.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// Package cli implements the bugscope command-line interface.
//
// This package provides commands for generating triage reports from a
// Bugzilla issue graph, browsing unreachable bugs interactively, exporting
// the graph as DOT or SVG, and managing the query cache. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - report: Fetch bugs, analyze the graph, and write report artifacts
//   - browse: Interactively browse bugs that do not block the tracker
//   - graph: Export the issue graph as DOT or SVG
//   - cache: Manage the query response cache
//
// All commands support --verbose (-v) for debug-level logging and
// --config for a TOML configuration file.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bugscope/bugscope/pkg/buildinfo"
	"github.com/bugscope/bugscope/pkg/bugzilla"
	"github.com/bugscope/bugscope/pkg/cache"
	"github.com/bugscope/bugscope/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "bugscope"

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
		Short:        "Bugscope generates triage reports from a Bugzilla issue graph",
		Long:         `Bugscope fetches open bugs from a Bugzilla component, builds the blocks dependency graph rooted at a tracker bug, and reports which bugs fall outside the tracker and how work distributes across project bugs.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.reportCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner backed by a Bugzilla client.
func (c *CLI) newRunner(baseURL string, noCache bool) *pipeline.Runner {
	client := bugzilla.NewClient(baseURL, newCache(noCache))
	return pipeline.NewRunner(client, c.Logger)
}

func newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns the cache directory using XDG standard (~/.cache/bugscope/).
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

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatHTML}
	}
	return strings.Split(s, ",")
}

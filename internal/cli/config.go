package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/bugscope/bugscope/pkg/pipeline"
)

// Config holds settings loaded from a TOML configuration file.
// Flags always win over config values; config values win over built-in
// defaults.
type Config struct {
	BaseURL    string   `toml:"base_url"`
	Product    string   `toml:"product"`
	Component  string   `toml:"component"`
	Resolution string   `toml:"resolution"`
	RootAlias  string   `toml:"root_alias"`
	Formats    []string `toml:"formats"`
	Output     string   `toml:"output"`
}

// configDir returns the config directory using XDG standard (~/.config/bugscope/).
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

// loadConfig reads the config file at path. When path is empty, the
// default location is tried and a missing file yields an empty config.
// An explicitly given path must exist.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return &Config{}, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// queryOpts holds the command-line flags shared by every command that
// queries Bugzilla.
type queryOpts struct {
	baseURL    string
	product    string
	component  string
	resolution string
	rootAlias  string
	configPath string
	refresh    bool
	noCache    bool
}

// addQueryFlags registers the shared query flags on cmd.
func addQueryFlags(cmd *cobra.Command, o *queryOpts) {
	cmd.Flags().StringVar(&o.baseURL, "base-url", "", "Bugzilla instance URL (default https://bugzilla.mozilla.org)")
	cmd.Flags().StringVar(&o.product, "product", "", "Bugzilla product (default Core)")
	cmd.Flags().StringVar(&o.component, "component", "", "Bugzilla component (default \"Graphics: WebRender\")")
	cmd.Flags().StringVar(&o.resolution, "resolution", "", "bug resolution filter (default ---)")
	cmd.Flags().StringVar(&o.rootAlias, "root-alias", "", "alias of the root tracker bug (default wr-projects)")
	cmd.Flags().StringVar(&o.configPath, "config", "", "path to TOML config file")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "bypass the cache and fetch fresh data")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable caching")
}

// resolveOptions merges flags and config into pipeline options. Flags
// take precedence over config values. The returned base URL feeds the
// Bugzilla client; pipeline defaults fill whatever remains empty.
func resolveOptions(o *queryOpts) (pipeline.Options, string, *Config, error) {
	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return pipeline.Options{}, "", nil, err
	}

	pick := func(flag, config string) string {
		if flag != "" {
			return flag
		}
		return config
	}

	opts := pipeline.Options{
		Product:    pick(o.product, cfg.Product),
		Component:  pick(o.component, cfg.Component),
		Resolution: pick(o.resolution, cfg.Resolution),
		RootAlias:  pick(o.rootAlias, cfg.RootAlias),
		Refresh:    o.refresh,
	}
	return opts, pick(o.baseURL, cfg.BaseURL), cfg, nil
}

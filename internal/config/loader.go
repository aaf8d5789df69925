package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load discovers a config file, merges it with defaults, applies
// environment variable overrides, validates the result, and returns the
// final config.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return LoadFrom(cwd)
}

// LoadFrom loads config using the given directory as the project root
// for file discovery. This is the testable entry point — Load() calls
// it with os.Getwd().
func LoadFrom(dir string) (*Config, error) {
	cfg := DefaultConfig()

	path, err := discoverConfigPath(dir)
	if err != nil {
		return nil, fmt.Errorf("config discovery: %w", err)
	}

	if path != "" {
		override, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		merge(&cfg, override)
	}

	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigPath searches the discovery chain and returns the first
// config file that exists. Returns empty string if none found
// (defaults-only mode).
func discoverConfigPath(dir string) (string, error) {
	local := filepath.Join(dir, "devtop.yaml")
	if _, err := os.Stat(local); err == nil {
		return local, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil // can't resolve home, skip
	}
	user := filepath.Join(home, ".config", "devtop", "config.yaml")
	if _, err := os.Stat(user); err == nil {
		return user, nil
	}

	return "", nil
}

func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	return &cfg, nil
}

// merge deep-merges override onto base. Scalar fields override when
// non-zero; slices replace entirely when non-nil.
func merge(base *Config, override *Config) {
	if override.Project.Name != "" {
		base.Project.Name = override.Project.Name
	}
	if override.Project.Root != "" {
		base.Project.Root = override.Project.Root
	}

	if override.Server.Command != "" {
		base.Server.Command = override.Server.Command
	}
	if override.Server.Host != "" {
		base.Server.Host = override.Server.Host
	}
	if override.Server.Port != 0 {
		base.Server.Port = override.Server.Port
	}
	if override.Server.Protocol != "" {
		base.Server.Protocol = override.Server.Protocol
	}

	if override.Install.Command != "" {
		base.Install.Command = override.Install.Command
	}
	if override.Install.Marker != "" {
		base.Install.Marker = override.Install.Marker
	}

	if override.Watch.Paths != nil {
		base.Watch.Paths = override.Watch.Paths
	}
	if override.Watch.Ignore != nil {
		base.Watch.Ignore = override.Watch.Ignore
	}
	if override.Watch.DebounceMs != 0 {
		base.Watch.DebounceMs = override.Watch.DebounceMs
	}

	// The worker list replaces entirely: partial worker merges would be
	// ambiguous about ordering, which drives the render layout.
	if override.Workers != nil {
		base.Workers = override.Workers
	}

	if override.UI.Theme != "" {
		base.UI.Theme = override.UI.Theme
	}
}

// applyEnvOverrides applies DEVTOP_* environment variables on top of
// the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DEVTOP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		} else {
			fmt.Fprintf(os.Stderr, "warning: DEVTOP_PORT=%q is not a valid integer, ignoring\n", v)
		}
	}
	if v := os.Getenv("DEVTOP_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("DEVTOP_SERVER_COMMAND"); v != "" {
		cfg.Server.Command = v
	}
	if v := os.Getenv("DEVTOP_INSTALL_COMMAND"); v != "" {
		cfg.Install.Command = v
	}
}

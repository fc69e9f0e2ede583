package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/lxc/incus/shared/units"

	"llm-switch/src/registry"
)

// Config is the optional user configuration read from
// <UserConfigDir>/llm-switch/config.toml. A missing file yields defaults.
type Config struct {
	DefaultMethod   string              `toml:"default_method"`
	MinSize         string              `toml:"min_size"`
	ActiveModelFile string              `toml:"active_model_file"`
	Paths           map[string][]string `toml:"paths"`
	Backends        []BackendConfig     `toml:"backend"`
}

// BackendConfig declares a custom backend in the config file.
type BackendConfig struct {
	Name       string   `toml:"name"`
	Paths      []string `toml:"paths"`
	Extensions []string `toml:"extensions"`
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "llm-switch", "config.toml"), nil
}

// Load reads the config file at path. A missing file is not an error and
// returns a zero Config.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.DefaultMethod != "" && cfg.DefaultMethod != "copy" && cfg.DefaultMethod != "link" {
		return cfg, fmt.Errorf("%s: default_method must be copy or link, got %q", path, cfg.DefaultMethod)
	}
	if _, err := cfg.MinSizeBytes(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// MinSizeBytes parses the min_size threshold ("100MB", "1GiB", ...) into
// bytes. An empty setting disables the filter.
func (c Config) MinSizeBytes() (int64, error) {
	if c.MinSize == "" {
		return 0, nil
	}
	n, err := units.ParseByteSizeString(c.MinSize)
	if err != nil {
		return 0, fmt.Errorf("min_size: %w", err)
	}
	return n, nil
}

// Apply extends the registry with the config's extra paths and custom
// backends. Paths for unknown backend names create synthetic backends, same
// as interactive additions.
func (c Config) Apply(reg *registry.Registry) {
	for _, b := range c.Backends {
		reg.AddBackend(b.Name, b.Paths, b.Extensions)
	}
	// Map iteration order is random; sort so the registry (and therefore
	// discovery order) stays identical across runs.
	names := make([]string, 0, len(c.Paths))
	for name := range c.Paths {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, p := range c.Paths[name] {
			reg.AddDirectory(name, p)
		}
	}
}

// Package config provides reading and writing of swissknife configuration.
// Supports both global (~/.swissknife/config.yaml) and local (.swissknife/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Dir is the name of the per-user and per-project configuration directory.
const Dir = ".swissknife"

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.swissknife/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is project-specific config in .swissknife/config.yaml
	ScopeLocal
)

// Vault holds the note vault roots.
type Vault struct {
	Paths []string `yaml:"paths,omitempty"`
}

// Modules controls which extensions are loaded.
type Modules struct {
	Disabled []string `yaml:"disabled,omitempty"`
}

// WebSearch configures the external search command.
type WebSearch struct {
	Command       string `yaml:"command,omitempty"`
	FallbackModel string `yaml:"fallback_model,omitempty"`
}

// Fetch configures outbound HTTP requests.
type Fetch struct {
	UserAgent string `yaml:"user_agent,omitempty"`
	MaxBody   *int64 `yaml:"max_body,omitempty"`
}

// Limits holds size limit configuration options.
type Limits struct {
	MaxPath    *int   `yaml:"max_path,omitempty"`
	MaxContent *int64 `yaml:"max_content,omitempty"`
}

// Defaults applied when not configured.
const (
	DefaultWebSearchCommand = "gemini"
	DefaultFallbackModel    = "gemini-2.5-flash"
	DefaultUserAgent        = "swissknife (+https://github.com/jpl-au/swissknife)"
	DefaultMaxBody          = 10 * 1024 * 1024 // 10 MB
	DefaultMaxPath          = 1024
	DefaultMaxContent       = 10 * 1024 * 1024 // 10 MB
)

// Validation bounds for configuration values.
const (
	MinMaxBody    = 1024
	MaxMaxBody    = 1024 * 1024 * 1024 // 1 GB
	MinMaxPath    = 1
	MaxMaxPath    = 65536 // 64 KB - reasonable upper bound for paths
	MinMaxContent = 1
	MaxMaxContent = 1024 * 1024 * 1024 // 1 GB
)

// Config contains configuration for swissknife.
type Config struct {
	Vault     Vault     `yaml:"vault,omitempty"`
	Modules   Modules   `yaml:"modules,omitempty"`
	WebSearch WebSearch `yaml:"websearch,omitempty"`
	Fetch     Fetch     `yaml:"fetch,omitempty"`
	Limits    Limits    `yaml:"limits,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Fetch.MaxBody != nil {
		v := *c.Fetch.MaxBody
		if v < MinMaxBody || v > MaxMaxBody {
			return fmt.Errorf("%w: max_body must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxBody, MaxMaxBody, v)
		}
	}
	if c.Limits.MaxPath != nil {
		v := *c.Limits.MaxPath
		if v < MinMaxPath || v > MaxMaxPath {
			return fmt.Errorf("%w: max_path must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxPath, MaxMaxPath, v)
		}
	}
	if c.Limits.MaxContent != nil {
		v := *c.Limits.MaxContent
		if v < MinMaxContent || v > MaxMaxContent {
			return fmt.Errorf("%w: max_content must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxContent, MaxMaxContent, v)
		}
	}
	return nil
}

// VaultPaths returns the configured vault roots in order.
func (c *Config) VaultPaths() []string {
	return c.Vault.Paths
}

// DisabledModules returns the extensions the user switched off.
func (c *Config) DisabledModules() []string {
	return c.Modules.Disabled
}

// WebSearchCommand returns the search command line (defaults to "gemini").
func (c *Config) WebSearchCommand() string {
	if c.WebSearch.Command == "" {
		return DefaultWebSearchCommand
	}
	return c.WebSearch.Command
}

// FallbackModel returns the model used after a quota error.
func (c *Config) FallbackModel() string {
	if c.WebSearch.FallbackModel == "" {
		return DefaultFallbackModel
	}
	return c.WebSearch.FallbackModel
}

// UserAgent returns the User-Agent sent by the fetch tools.
func (c *Config) UserAgent() string {
	if c.Fetch.UserAgent == "" {
		return DefaultUserAgent
	}
	return c.Fetch.UserAgent
}

// MaxBody returns the largest response body the fetch tools accept.
func (c *Config) MaxBody() int64 {
	if c.Fetch.MaxBody == nil {
		return DefaultMaxBody
	}
	return *c.Fetch.MaxBody
}

// MaxPath returns the maximum note path length in bytes (defaults to 1024).
func (c *Config) MaxPath() int {
	if c.Limits.MaxPath == nil {
		return DefaultMaxPath
	}
	return *c.Limits.MaxPath
}

// MaxContent returns the maximum note size in bytes (defaults to 10 MB).
func (c *Config) MaxContent() int64 {
	if c.Limits.MaxContent == nil {
		return DefaultMaxContent
	}
	return *c.Limits.MaxContent
}

// LocalPath returns the path to the local (project) config file.
func LocalPath() string {
	return filepath.Join(Dir, "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.swissknife/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, Dir, "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}
	return loadPath(path, scope)
}

func loadPath(path string, scope Scope) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}

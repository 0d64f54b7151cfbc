// Package config provides reading and writing of editd configuration.
// Supports both global (~/.editd/config.yaml) and local (.editd/config.yaml).
// Reading: uses local if it exists, otherwise global.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jpl-au/editd/internal/duration"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Defaults applied when not configured.
const (
	DefaultTTL            = 5 * time.Minute
	DefaultBackupSuffix   = ".bak"
	DefaultMaxFileSize    = 10 * 1024 * 1024 // 10 MiB
	DefaultPatternNoMatch = "preview"
)

// Validation bounds for configuration values.
const (
	MinTTL         = time.Second
	MaxTTL         = 24 * time.Hour
	MinMaxFileSize = 1
	MaxMaxFileSize = 1024 * 1024 * 1024 // 1 GiB
)

// Limits holds size limit configuration options.
type Limits struct {
	MaxFileSize *int64 `yaml:"max_file_size,omitempty"`
}

// Config contains configuration for editd.
type Config struct {
	// TTL is how long a proposed edit stays approvable, e.g. "5m".
	TTL *string `yaml:"ttl,omitempty"`
	// BackupSuffix is appended to the original path for backup copies.
	BackupSuffix *string `yaml:"backup_suffix,omitempty"`
	// Root confines all edits to a directory tree when set.
	Root *string `yaml:"root,omitempty"`
	// PatternNoMatch is "preview" (zero-change preview) or "error".
	PatternNoMatch *string `yaml:"pattern_no_match,omitempty"`
	Limits         Limits  `yaml:"limits,omitempty"`

	// path is the file this config was loaded from (for Save)
	path string
}

// Load reads configuration, preferring local over global. A missing file is
// not an error: defaults apply.
func Load() (*Config, error) {
	for _, p := range searchPaths() {
		cfg, err := loadFile(p)
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load config %s: %w", p, err)
		}
	}
	return &Config{}, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	cfg.path = path
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config back to the file it was loaded from, or the local
// path for a fresh config.
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		path = localPath()
	}
	if path == "" {
		return ErrNoConfigPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) validate() error {
	if c.TTL != nil {
		d, err := duration.Parse(*c.TTL)
		if err != nil {
			return fmt.Errorf("%w: ttl %q: %v", ErrInvalidValue, *c.TTL, err)
		}
		if d < MinTTL || d > MaxTTL {
			return fmt.Errorf("%w: ttl %s out of range [%s, %s]", ErrInvalidValue, d, MinTTL, MaxTTL)
		}
	}
	if c.PatternNoMatch != nil {
		switch *c.PatternNoMatch {
		case "preview", "error":
		default:
			return fmt.Errorf("%w: pattern_no_match %q (valid: preview, error)", ErrInvalidValue, *c.PatternNoMatch)
		}
	}
	if c.Limits.MaxFileSize != nil {
		if *c.Limits.MaxFileSize < MinMaxFileSize || *c.Limits.MaxFileSize > MaxMaxFileSize {
			return fmt.Errorf("%w: max_file_size %d out of range", ErrInvalidValue, *c.Limits.MaxFileSize)
		}
	}
	return nil
}

// EffectiveTTL returns the configured TTL or the default.
func (c *Config) EffectiveTTL() time.Duration {
	if c.TTL == nil {
		return DefaultTTL
	}
	d, err := duration.Parse(*c.TTL)
	if err != nil {
		return DefaultTTL
	}
	return d
}

// EffectiveBackupSuffix returns the configured suffix or the default.
func (c *Config) EffectiveBackupSuffix() string {
	if c.BackupSuffix == nil || *c.BackupSuffix == "" {
		return DefaultBackupSuffix
	}
	return *c.BackupSuffix
}

// EffectiveRoot returns the configured root or "" for unconfined.
func (c *Config) EffectiveRoot() string {
	if c.Root == nil {
		return ""
	}
	return *c.Root
}

// EffectivePatternNoMatch returns the configured no-match policy.
func (c *Config) EffectivePatternNoMatch() string {
	if c.PatternNoMatch == nil {
		return DefaultPatternNoMatch
	}
	return *c.PatternNoMatch
}

// EffectiveMaxFileSize returns the configured limit or the default.
func (c *Config) EffectiveMaxFileSize() int64 {
	if c.Limits.MaxFileSize == nil {
		return DefaultMaxFileSize
	}
	return *c.Limits.MaxFileSize
}

func localPath() string {
	return filepath.Join(".editd", "config.yaml")
}

func globalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".editd", "config.yaml")
}

func searchPaths() []string {
	paths := []string{localPath()}
	if g := globalPath(); g != "" {
		paths = append(paths, g)
	}
	return paths
}

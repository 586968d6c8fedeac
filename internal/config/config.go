// Package config provides loading, validation and defaults for the colorset
// project manifest.
//
// The manifest is a TOML file (colorset.toml) in the project root. It lists
// targets: a container directory plus the accent and widget background
// colors to generate inside it. Container names may be doublestar glob
// patterns, expanded against the project root at generation time.
package config

//go:generate go run ../../cmd/genconfig

import (
	"bytes"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"tools.zach/dev/colorset/internal/atomicfile"
	"tools.zach/dev/colorset/internal/logger"
	"tools.zach/dev/colorset/internal/migrate"
	"tools.zach/dev/colorset/internal/paths"
)

// ///////////////////////////////////////////////
// Configuration Types
// ///////////////////////////////////////////////

// Config represents the top-level project manifest.
type Config struct {
	// Version is the manifest schema version used for migrations.
	Version int `toml:"version"`
	// Log holds logging settings.
	Log LogConfig `toml:"log"`
	// Targets lists the containers to generate colorsets for.
	Targets []Target `toml:"targets"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the minimum log level (trace, debug, info, warn, error, fail).
	Level string `toml:"level"`
	// File is an optional log file path, relative to the project root.
	// Empty logs to stderr only.
	File string `toml:"file,omitempty"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation.
	MaxSizeMB int `toml:"max_size_mb"`
}

// Target describes the colorsets generated inside one container.
type Target struct {
	// Container is the directory below the project root, or a glob pattern
	// matching several directories (e.g. "*Widget").
	Container string `toml:"container"`
	// Accent configures Assets.xcassets/AccentColor.colorset.
	Accent *ColorConfig `toml:"accent,omitempty"`
	// Background configures Assets.xcassets/WidgetBackground.colorset.
	Background *ColorConfig `toml:"background,omitempty"`
}

// ColorConfig is a light color with an optional dark-mode override.
type ColorConfig struct {
	// Color is any CSS color accepted by the parser.
	Color string `toml:"color"`
	// DarkColor is the optional dark-mode color.
	DarkColor string `toml:"dark_color,omitempty"`
}

// ///////////////////////////////////////////////
// Default Configuration
// ///////////////////////////////////////////////

// DefaultConfig returns a Config with default settings and no targets.
func DefaultConfig() *Config {
	return &Config{
		Version: migrate.Config.CurrentVersion,
		Log: LogConfig{
			Level:     "info",
			MaxSizeMB: 10,
		},
		Targets: []Target{},
	}
}

// ExampleConfig returns a Config suitable for generating colorset.default.toml.
func ExampleConfig() *Config {
	cfg := DefaultConfig()
	cfg.Targets = []Target{{
		Container:  "MyWidget",
		Accent:     &ColorConfig{Color: "#FF0000", DarkColor: "#000000"},
		Background: &ColorConfig{Color: "#FFFFFF", DarkColor: "#1C1C1E"},
	}}
	return cfg
}

// ///////////////////////////////////////////////
// PeekVersion
// ///////////////////////////////////////////////

// PeekVersion reads just the version field from raw TOML bytes.
// Returns 1 if the version field is missing or zero.
func PeekVersion(data []byte) int {
	var v struct {
		Version int `toml:"version"`
	}
	if err := toml.Unmarshal(data, &v); err != nil {
		return 1
	}
	if v.Version == 0 {
		return 1
	}
	return v.Version
}

// ///////////////////////////////////////////////
// Loading and Saving
// ///////////////////////////////////////////////

// Parse decodes, migrates and validates manifest bytes. migrated reports
// whether any schema migration ran. Blank input yields DefaultConfig and is
// never migrated, so a file caught mid-truncate is not rewritten.
func Parse(data []byte) (cfg *Config, migrated bool, err error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return DefaultConfig(), false, nil
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, false, fmt.Errorf("parse config: %w", err)
	}

	version := PeekVersion(data)
	if migrate.Config.NeedsMigration(version) {
		data, _, err = migrate.Config.Run(data, version)
		if err != nil {
			return nil, false, fmt.Errorf("migrate config: %w", err)
		}
		migrated = true
	}

	cfg = DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, false, fmt.Errorf("parse config: %w", err)
	}
	cfg.Version = migrate.Config.CurrentVersion

	if err := cfg.Validate(); err != nil {
		return nil, false, fmt.Errorf("validate config: %w", err)
	}
	return cfg, migrated, nil
}

// Load reads the manifest at path. A missing file yields DefaultConfig.
// When the file needed a migration, the original is copied to path.bak and
// the migrated manifest is written back.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg, migrated, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if migrated {
		if backupErr := os.WriteFile(path+paths.ConfigBackupExt, data, 0o644); backupErr != nil {
			slog.Warn("failed to write config backup", "error", backupErr)
		}
		if err := cfg.Save(path); err != nil {
			slog.Warn("failed to save migrated config", "error", err)
		}
	}
	return cfg, nil
}

// Save writes the config to disk as TOML using atomic file write.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return atomicfile.Write(path, buf.Bytes(), 0o644)
}

// ///////////////////////////////////////////////
// Validation
// ///////////////////////////////////////////////

// Validate checks settings and target shapes. Color strings are not parsed
// here; an unparseable color fails the generation step for its target.
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level: %w", err)
	}
	if c.Log.MaxSizeMB <= 0 {
		return fmt.Errorf("log.max_size_mb must be > 0, got %d", c.Log.MaxSizeMB)
	}
	for i, t := range c.Targets {
		if err := t.validate(); err != nil {
			return fmt.Errorf("targets[%d]: %w", i, err)
		}
	}
	return nil
}

func (t Target) validate() error {
	if t.Container == "" {
		return fmt.Errorf("container must not be empty")
	}
	if !filepath.IsLocal(filepath.FromSlash(t.Container)) {
		return fmt.Errorf("invalid container %q: must be a relative path inside the project", t.Container)
	}
	if !doublestar.ValidatePattern(t.Container) {
		return fmt.Errorf("invalid container pattern %q", t.Container)
	}
	if t.Accent == nil && t.Background == nil {
		return fmt.Errorf("container %q: at least one of accent or background is required", t.Container)
	}
	return nil
}

// ///////////////////////////////////////////////
// Container Expansion
// ///////////////////////////////////////////////

// IsPattern reports whether container contains glob metacharacters.
func IsPattern(container string) bool {
	return strings.ContainsAny(container, `*?[{\`)
}

// Containers resolves the target's container against projectRoot. A literal
// name is returned cleaned, whether or not the directory exists yet, so "W",
// "./W" and "W/" resolve to the same container. A pattern
// is expanded to the matching directories in sorted order; a pattern that
// matches no directory is an error.
func (t Target) Containers(projectRoot string) ([]string, error) {
	if !IsPattern(t.Container) {
		return []string{filepath.Clean(filepath.FromSlash(t.Container))}, nil
	}

	fsys := os.DirFS(projectRoot)
	matches, err := doublestar.Glob(fsys, t.Container)
	if err != nil {
		return nil, fmt.Errorf("expand container %q: %w", t.Container, err)
	}

	var dirs []string
	for _, m := range matches {
		info, err := fs.Stat(fsys, m)
		if err != nil || !info.IsDir() {
			continue
		}
		dirs = append(dirs, filepath.FromSlash(m))
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("container pattern %q matched no directories in %s", t.Container, projectRoot)
	}
	sort.Strings(dirs)
	return dirs, nil
}

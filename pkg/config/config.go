// Package config loads backlogtree settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/backlogtree/config.toml (usually
// ~/.config/backlogtree/config.toml) unless --config points elsewhere.
// Every key is optional; missing keys keep their defaults and command-line
// flags override whatever the file sets.
//
//	[layout]
//	card_width = 320
//	vertical_gap = 96
//
//	[viewport]
//	zoom_max = 3
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "72h"
//
//	[render]
//	formats = ["svg", "png"]
//	theme = "dark"
//	font = "mono"
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/backlogtree/pkg/cache"
	"github.com/matzehuels/backlogtree/pkg/errors"
	"github.com/matzehuels/backlogtree/pkg/fonts"
	"github.com/matzehuels/backlogtree/pkg/layout"
	"github.com/matzehuels/backlogtree/pkg/viewport"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Config is the full settings file.
type Config struct {
	Layout   layout.Config   `toml:"layout"`
	Viewport viewport.Config `toml:"viewport"`
	Cache    CacheConfig     `toml:"cache"`
	Render   RenderConfig    `toml:"render"`
}

// CacheConfig selects and tunes the cache backend.
type CacheConfig struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	RedisURL  string   `toml:"redis_url"`
	Namespace string   `toml:"namespace"`
	TTL       Duration `toml:"ttl"`
}

// RenderConfig holds defaults for the render command.
type RenderConfig struct {
	Formats []string `toml:"formats"`
	Theme   string   `toml:"theme"`
	Scale   float64  `toml:"scale"` // PNG pixel density
	Font    string   `toml:"font"`
}

// Duration is a time.Duration written as a string such as "90m".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Layout:   layout.DefaultConfig(),
		Viewport: viewport.DefaultConfig(),
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     Duration{cache.TTLLayout},
		},
		Render: RenderConfig{
			Formats: []string{"svg"},
			Theme:   ThemeLight,
			Scale:   1,
			Font:    fonts.Sans,
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "backlogtree", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "backlogtree", "config.toml"), nil
}

// Load reads the file at path on top of the defaults. A missing file is a
// FILE_NOT_FOUND error; use LoadDefault for the optional per-user file.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault loads the per-user file, returning the defaults and an empty
// path when it does not exist.
func LoadDefault() (Config, string, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), "", nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	if c.Viewport.ZoomMin > c.Viewport.ZoomMax {
		return errors.New(errors.ErrCodeInvalidConfig, "viewport.zoom_min %g exceeds zoom_max %g", c.Viewport.ZoomMin, c.Viewport.ZoomMax)
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache.backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if !slices.Contains([]string{ThemeLight, ThemeDark}, c.Render.Theme) {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown render.theme %q", c.Render.Theme)
	}
	if !fonts.Valid(c.Render.Font) {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown render.font %q", c.Render.Font)
	}
	if c.Render.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render.scale must be positive")
	}
	return nil
}

// Write encodes c as TOML.
func Write(w io.Writer, c Config) error {
	return toml.NewEncoder(w).Encode(c)
}

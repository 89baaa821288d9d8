package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/backlogtree/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
[layout]
card_width = 280
vertical_gap = 64

[viewport]
zoom_max = 3

[cache]
backend = "redis"
redis_url = "redis://localhost:6379/1"
namespace = "team-a:"
ttl = "90m"

[render]
formats = ["svg", "png"]
theme = "dark"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Layout.CardWidth != 280 || cfg.Layout.VerticalGap != 64 {
		t.Errorf("layout = %+v", cfg.Layout)
	}
	if cfg.Layout.CardHeight != 168 || cfg.Layout.HorizontalGap != 48 {
		t.Errorf("unset layout keys lost their defaults: %+v", cfg.Layout)
	}
	if cfg.Viewport.ZoomMax != 3 || cfg.Viewport.ZoomMin != 0.25 {
		t.Errorf("viewport = %+v", cfg.Viewport)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.TTL.Duration != 90*time.Minute {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if len(cfg.Render.Formats) != 2 || cfg.Render.Theme != ThemeDark || cfg.Render.Scale != 1 {
		t.Errorf("render = %+v", cfg.Render)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"syntax", "[layout\n", errors.ErrCodeInvalidConfig},
		{"unknown key", "[layout]\ncard_depth = 3\n", errors.ErrCodeInvalidConfig},
		{"negative size", "[layout]\ncard_width = -1\n", errors.ErrCodeInvalidConfig},
		{"redis without url", "[cache]\nbackend = \"redis\"\n", errors.ErrCodeInvalidConfig},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n", errors.ErrCodeInvalidConfig},
		{"bad ttl", "[cache]\nttl = \"soon\"\n", errors.ErrCodeInvalidConfig},
		{"bad theme", "[render]\ntheme = \"neon\"\n", errors.ErrCodeInvalidConfig},
		{"bad font", "[render]\nfont = \"comic\"\n", errors.ErrCodeInvalidConfig},
		{"zoom bounds", "[viewport]\nzoom_min = 2\nzoom_max = 1\n", errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, path, err := LoadDefault()
	if err != nil || path != "" {
		t.Fatalf("LoadDefault() without file = %q, %v", path, err)
	}
	if cfg.Layout != Default().Layout {
		t.Error("expected defaults")
	}

	want := filepath.Join(dir, "backlogtree", "config.toml")
	if err := os.MkdirAll(filepath.Dir(want), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(want, []byte("[render]\ntheme = \"dark\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, path, err = LoadDefault()
	if err != nil {
		t.Fatal(err)
	}
	if path != want || cfg.Render.Theme != ThemeDark {
		t.Errorf("LoadDefault() = %q, theme %q", path, cfg.Render.Theme)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Default()); err != nil {
		t.Fatal(err)
	}
	path := writeConfig(t, buf.String())
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(Write(Default())) error = %v\n%s", err, buf.String())
	}
	if cfg.Layout != Default().Layout || cfg.Cache.TTL != Default().Cache.TTL {
		t.Errorf("round trip mismatch: %+v", cfg)
	}
}

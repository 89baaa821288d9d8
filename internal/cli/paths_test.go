package cli

import (
	"io"
	"path/filepath"
	"testing"
)

func TestPaths(t *testing.T) {
	root := t.TempDir()
	home := filepath.Join(root, "home")

	tests := []struct {
		name       string
		xdgCache   string
		xdgConfig  string
		cacheDir   string // [cache] dir from the config file
		configFlag string
		wantCache  string
		wantConfig string
	}{
		{
			name:       "home fallback",
			wantCache:  filepath.Join(home, ".cache", "backlogtree"),
			wantConfig: filepath.Join(home, ".config", "backlogtree", "config.toml"),
		},
		{
			name:       "xdg dirs",
			xdgCache:   filepath.Join(root, "xc"),
			xdgConfig:  filepath.Join(root, "xg"),
			wantCache:  filepath.Join(root, "xc", "backlogtree"),
			wantConfig: filepath.Join(root, "xg", "backlogtree", "config.toml"),
		},
		{
			name:       "config overrides",
			xdgCache:   filepath.Join(root, "xc"),
			cacheDir:   filepath.Join(root, "cards"),
			configFlag: filepath.Join(root, "team.toml"),
			wantCache:  filepath.Join(root, "cards"),
			wantConfig: filepath.Join(root, "team.toml"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", home)
			t.Setenv("XDG_CACHE_HOME", tt.xdgCache)
			t.Setenv("XDG_CONFIG_HOME", tt.xdgConfig)

			c := New(io.Discard, LogInfo)
			c.Config.Cache.Dir = tt.cacheDir
			c.configFlag = tt.configFlag

			gotCache, err := c.fileCacheDir()
			if err != nil {
				t.Fatalf("fileCacheDir() error: %v", err)
			}
			if gotCache != tt.wantCache {
				t.Errorf("fileCacheDir() = %q, want %q", gotCache, tt.wantCache)
			}

			gotConfig, err := c.configPath()
			if err != nil {
				t.Fatalf("configPath() error: %v", err)
			}
			if gotConfig != tt.wantConfig {
				t.Errorf("configPath() = %q, want %q", gotConfig, tt.wantConfig)
			}
		})
	}
}

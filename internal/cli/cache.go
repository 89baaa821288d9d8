package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/backlogtree/pkg/cache"
	"github.com/matzehuels/backlogtree/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached layouts and renders",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached layout and render",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.clearCache(cmd.Context())
		},
	}
}

// clearCache empties the configured backend.
func (c *CLI) clearCache(ctx context.Context) error {
	cc := c.Config.Cache
	switch cc.Backend {
	case config.BackendNone:
		printInfo("Caching is disabled")
		return nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cc.RedisURL)
		if err != nil {
			return fmt.Errorf("connect cache: %w", err)
		}
		defer rc.Close()
		n, err := rc.Clear(ctx)
		if err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		printSuccess("Cleared %d cached entries", n)
		printDetail("Redis: %s", cc.RedisURL)
		return nil
	}

	dir, err := c.fileCacheDir()
	if err != nil {
		return fmt.Errorf("get cache dir: %w", err)
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	n, err := fc.Clear()
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	if n == 0 {
		printInfo("Cache is empty")
	} else {
		printSuccess("Cleared %d cached entries", n)
	}
	printDetail("Directory: %s", dir)
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.Config.Cache.Backend == config.BackendRedis {
				fmt.Fprintln(out, c.Config.Cache.RedisURL)
				return nil
			}
			dir, err := c.fileCacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(out, dir)
			return nil
		},
	}
}

// fileCacheDir returns the configured directory or the XDG default.
func (c *CLI) fileCacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/backlogtree/pkg/backlog"
	"github.com/matzehuels/backlogtree/pkg/cache"
	"github.com/matzehuels/backlogtree/pkg/layout"
	"github.com/matzehuels/backlogtree/pkg/observability"
)

// Cache key types reported to observability hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides cache.TTLLayout and cache.TTLArtifact when set.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, path string, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	// Stage 1: Parse
	loadStart := time.Now()
	items, err := Parse(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	loadTime := time.Since(loadStart)
	r.Logger.Info("loaded backlog", "items", len(items), "duration", loadTime)

	result, err := r.ExecuteItems(ctx, items, opts)
	if err != nil {
		return nil, err
	}
	result.Source = path
	result.Stats.LoadTime = loadTime
	return result, nil
}

// ExecuteItems runs layout and render over items already in memory.
func (r *Runner) ExecuteItems(ctx context.Context, items []backlog.Item, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Stats: Stats{ItemCount: len(items)}}

	// Stage 2: Build + Layout
	layoutStart := time.Now()
	l, hit, err := r.GenerateLayoutWithCacheInfo(ctx, items, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.InputHash = inputHash(items)
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.NodeCount = len(l.Nodes)
	result.Stats.EdgeCount = len(l.Edges)
	result.CacheInfo.LayoutHit = hit

	r.Logger.Info("computed layout",
		"nodes", len(l.Nodes),
		"edges", len(l.Edges),
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateLayoutWithCacheInfo builds and lays out items with caching and
// returns cache hit info.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, items []backlog.Item, opts Options) (layout.Result, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Result{}, false, err
	}

	cacheKey := r.Keyer.LayoutKey(inputHash(items), opts.LayoutKeyOpts())
	if cached, ok := r.get(ctx, keyTypeLayout, cacheKey); ok {
		l, err := layout.Unmarshal(cached)
		if err == nil {
			return l, true, nil
		}
		r.Logger.Debug("discarding unreadable cached layout", "error", err)
	}

	f, err := Build(items, opts)
	if err != nil {
		return layout.Result{}, false, err
	}
	l := GenerateLayout(ctx, f, opts)

	if data, err := layout.Marshal(l); err == nil {
		r.set(ctx, keyTypeLayout, cacheKey, data, cache.TTLLayout)
	}
	return l, false, nil
}

// GenerateLayout is a convenience wrapper that calls
// GenerateLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) GenerateLayout(ctx context.Context, items []backlog.Item, opts Options) (layout.Result, error) {
	l, _, err := r.GenerateLayoutWithCacheInfo(ctx, items, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info. The transform is resolved (see [ResolveTransform]) before keys are
// computed.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Result, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	opts.Transform = ResolveTransform(l, opts)

	layoutData, err := layout.Marshal(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, ok := r.get(ctx, keyTypeArtifact, key); ok {
			artifacts[format] = data
			continue
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	partial := opts
	partial.Formats = missing
	rendered, err := RenderFromLayout(ctx, l, partial)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		r.set(ctx, keyTypeArtifact, key, data, cache.TTLArtifact)
		artifacts[format] = data
	}
	return artifacts, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l layout.Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// get reads from the cache. Errors count as misses.
func (r *Runner) get(ctx context.Context, keyType, key string) ([]byte, bool) {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	switch {
	case err != nil:
		hooks.OnCacheError(ctx, keyType, "get", err)
		r.Logger.Debug("cache read failed", "type", keyType, "error", err)
		return nil, false
	case !hit:
		hooks.OnCacheMiss(ctx, keyType)
		return nil, false
	}
	hooks.OnCacheHit(ctx, keyType)
	return data, true
}

// set writes to the cache. Errors are logged, never returned.
func (r *Runner) set(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if r.TTL > 0 {
		ttl = r.TTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		observability.Cache().OnCacheError(ctx, keyType, "set", err)
		r.Logger.Debug("cache write failed", "type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// inputHash is the content identity of an item list.
func inputHash(items []backlog.Item) string {
	data, err := backlog.Marshal(items)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}

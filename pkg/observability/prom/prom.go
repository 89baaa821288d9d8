// Package prom implements the observability hooks with Prometheus metrics.
//
// backlogtree is a short-lived CLI, so metrics are not scraped over HTTP.
// Instead the collected registry is written once in the node_exporter
// textfile format when the command finishes (--metrics-file).
package prom

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/backlogtree/pkg/observability"
)

const namespace = "backlogtree"

// Hooks records pipeline, cache and watch events.
type Hooks struct {
	stageDuration *prometheus.HistogramVec
	stageErrors   *prometheus.CounterVec
	items         prometheus.Gauge
	edges         prometheus.Gauge
	cacheOps      *prometheus.CounterVec
	cacheBytes    *prometheus.CounterVec
	reloads       *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Hooks {
	h := &Hooks{
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "stage_duration_seconds",
				Help:      "Duration of pipeline stages.",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"stage"},
		),
		stageErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stage_errors_total",
				Help:      "Pipeline stages that returned an error.",
			},
			[]string{"stage"},
		),
		items: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "layout_nodes",
			Help:      "Nodes in the most recent layout.",
		}),
		edges: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "layout_edges",
			Help:      "Edges in the most recent layout.",
		}),
		cacheOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_operations_total",
				Help:      "Cache lookups and writes by entry kind and result.",
			},
			[]string{"kind", "result"},
		),
		cacheBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_written_bytes_total",
				Help:      "Bytes written to the cache.",
			},
			[]string{"kind"},
		),
		reloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reloads_total",
				Help:      "Input reloads triggered by file changes.",
			},
			[]string{"result"},
		),
	}
	reg.MustRegister(h.stageDuration, h.stageErrors, h.items, h.edges, h.cacheOps, h.cacheBytes, h.reloads)
	return h
}

// Install registers h as the global pipeline, cache and watch hooks.
func (h *Hooks) Install() {
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetWatchHooks(h)
}

// WriteTextfile writes every metric in g to path, atomically.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}

func (h *Hooks) stage(name string, d time.Duration, err error) {
	h.stageDuration.WithLabelValues(name).Observe(d.Seconds())
	if err != nil {
		h.stageErrors.WithLabelValues(name).Inc()
	}
}

// =============================================================================
// observability.PipelineHooks
// =============================================================================

func (h *Hooks) OnLoadStart(context.Context, string) {}

func (h *Hooks) OnLoadComplete(_ context.Context, _ string, _ int, d time.Duration, err error) {
	h.stage("load", d, err)
}

func (h *Hooks) OnLayoutStart(context.Context, int) {}

func (h *Hooks) OnLayoutComplete(_ context.Context, nodes, edges int, d time.Duration, err error) {
	h.stage("layout", d, err)
	if err == nil {
		h.items.Set(float64(nodes))
		h.edges.Set(float64(edges))
	}
}

func (h *Hooks) OnRenderStart(context.Context, []string) {}

func (h *Hooks) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	h.stage("render", d, err)
}

// =============================================================================
// observability.CacheHooks
// =============================================================================

func (h *Hooks) OnCacheHit(_ context.Context, kind string) {
	h.cacheOps.WithLabelValues(kind, "hit").Inc()
}

func (h *Hooks) OnCacheMiss(_ context.Context, kind string) {
	h.cacheOps.WithLabelValues(kind, "miss").Inc()
}

func (h *Hooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.cacheOps.WithLabelValues(kind, "set").Inc()
	h.cacheBytes.WithLabelValues(kind).Add(float64(size))
}

func (h *Hooks) OnCacheError(_ context.Context, kind, _ string, _ error) {
	h.cacheOps.WithLabelValues(kind, "error").Inc()
}

// =============================================================================
// observability.WatchHooks
// =============================================================================

func (h *Hooks) OnFileChange(context.Context, string) {}

func (h *Hooks) OnReload(_ context.Context, _ string, d time.Duration, err error) {
	h.stage("reload", d, err)
	result := "ok"
	if err != nil {
		result = "error"
	}
	h.reloads.WithLabelValues(result).Inc()
}

var (
	_ observability.PipelineHooks = (*Hooks)(nil)
	_ observability.CacheHooks    = (*Hooks)(nil)
	_ observability.WatchHooks    = (*Hooks)(nil)
)

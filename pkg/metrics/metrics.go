// Package metrics records build, pipeline and cache events as Prometheus
// metrics.
//
// A [Collector] implements the hook interfaces of package observability.
// [Collector.Install] registers it globally so every build in the process
// reports through it:
//
//	reg := prometheus.NewRegistry()
//	c, err := metrics.NewCollector(reg)
//	c.Install()
//	defer observability.Reset()
//
// The HTTP server exposes [Collector.Handler] at /metrics; batch runs write a
// node-exporter textfile with [Collector.WriteTextfile].
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/cityforest/pkg/observability"
)

const namespace = "cityforest"

// Collector bundles the Prometheus metrics of cityforest.
type Collector struct {
	gatherer prometheus.Gatherer

	Builds          *prometheus.CounterVec
	BuildDuration   prometheus.Histogram
	EdgesAdded      prometheus.Gauge
	Restarts        prometheus.Counter
	Localized       *prometheus.CounterVec
	Saturated       prometheus.Counter
	RegionsScanned  prometheus.Histogram
	StageDuration   *prometheus.HistogramVec
	CacheOperations *prometheus.CounterVec
}

var (
	_ observability.BuildHooks    = (*Collector)(nil)
	_ observability.PipelineHooks = (*Collector)(nil)
	_ observability.CacheHooks    = (*Collector)(nil)
)

// NewCollector registers the metrics against reg, defaulting to the global
// Prometheus registry when nil. Registering twice against the same registry
// reuses the existing metrics.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{gatherer: gatherer}
	var err error

	if c.Builds, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "builds_total",
		Help:      "Forest builds, labeled by result.",
	}, []string{"result"})); err != nil {
		return nil, err
	}
	if c.BuildDuration, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "build_duration_seconds",
		Help:      "Wall time of successful forest builds.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
	})); err != nil {
		return nil, err
	}
	if c.EdgesAdded, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_build_edges",
		Help:      "Edge entries added by the most recent successful build.",
	})); err != nil {
		return nil, err
	}
	if c.Restarts, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "build_restarts_total",
		Help:      "Times a build reseeded its queue from an unfinalized vertex.",
	})); err != nil {
		return nil, err
	}
	if c.Localized, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "localized_total",
		Help:      "Finalized vertices, labeled by whether the search left its own region.",
	}, []string{"search"})); err != nil {
		return nil, err
	}
	if c.Saturated, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "saturated_total",
		Help:      "Vertices finalized with open connection slots.",
	})); err != nil {
		return nil, err
	}
	if c.RegionsScanned, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "regions_scanned",
		Help:      "Regions scanned per local search.",
		Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 34, 55},
	})); err != nil {
		return nil, err
	}
	if c.StageDuration, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "stage_duration_seconds",
		Help:      "Pipeline stage latency, labeled by stage and result.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
	}, []string{"stage", "result"})); err != nil {
		return nil, err
	}
	if c.CacheOperations, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_operations_total",
		Help:      "Cache lookups and writes, labeled by operation and key type.",
	}, []string{"op", "key_type"})); err != nil {
		return nil, err
	}
	return c, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			return c, fmt.Errorf("collector already registered with incompatible type: %w", err)
		}
		return c, err
	}
	return c, nil
}

// Install makes c the process-wide receiver of build, pipeline and cache
// hooks. Undo with observability.Reset.
func (c *Collector) Install() {
	observability.SetBuildHooks(c)
	observability.SetPipelineHooks(c)
	observability.SetCacheHooks(c)
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// WriteTextfile writes the current metrics to path in the text exposition
// format, atomically replacing any existing file.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.gatherer)
}

// =============================================================================
// Hook implementations
// =============================================================================

// OnBuildStart implements observability.BuildHooks.
func (c *Collector) OnBuildStart(string, int) {}

// OnLocalize implements observability.BuildHooks.
func (c *Collector) OnLocalize(_, _, regionsScanned int, fallback, saturated bool) {
	search := "local"
	if fallback {
		search = "fallback"
	}
	c.Localized.WithLabelValues(search).Inc()
	c.RegionsScanned.Observe(float64(regionsScanned))
	if saturated {
		c.Saturated.Inc()
	}
}

// OnBuildComplete implements observability.BuildHooks.
func (c *Collector) OnBuildComplete(edgesAdded, restarts int, duration time.Duration, err error) {
	if err != nil {
		c.Builds.WithLabelValues("error").Inc()
		return
	}
	c.Builds.WithLabelValues("ok").Inc()
	c.BuildDuration.Observe(duration.Seconds())
	c.EdgesAdded.Set(float64(edgesAdded))
	c.Restarts.Add(float64(restarts))
}

// OnStageStart implements observability.PipelineHooks.
func (c *Collector) OnStageStart(context.Context, string) {}

// OnStageComplete implements observability.PipelineHooks.
func (c *Collector) OnStageComplete(_ context.Context, stage string, duration time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.StageDuration.WithLabelValues(stage, result).Observe(duration.Seconds())
}

// OnCacheHit implements observability.CacheHooks.
func (c *Collector) OnCacheHit(_ context.Context, keyType string) {
	c.CacheOperations.WithLabelValues("hit", keyType).Inc()
}

// OnCacheMiss implements observability.CacheHooks.
func (c *Collector) OnCacheMiss(_ context.Context, keyType string) {
	c.CacheOperations.WithLabelValues("miss", keyType).Inc()
}

// OnCacheSet implements observability.CacheHooks.
func (c *Collector) OnCacheSet(_ context.Context, keyType string, _ int) {
	c.CacheOperations.WithLabelValues("set", keyType).Inc()
}

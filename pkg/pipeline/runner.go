package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/cityforest/pkg/cache"
	"github.com/matzehuels/cityforest/pkg/export"
	"github.com/matzehuels/cityforest/pkg/forest"
	"github.com/matzehuels/cityforest/pkg/graph"
	"github.com/matzehuels/cityforest/pkg/loader"
	"github.com/matzehuels/cityforest/pkg/observability"
	"github.com/matzehuels/cityforest/pkg/regions"
	"github.com/matzehuels/cityforest/pkg/stats"
)

// Cache key types reported to observability hooks.
const (
	keyTypeNetwork  = "network"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
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

// Execute runs the complete load → build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1-4: network, from cache or built
	buildStart := time.Now()
	if err := r.network(ctx, opts, result); err != nil {
		return nil, err
	}
	result.Summary = stats.Summarize(result.Graph)

	r.Logger.Info("network ready",
		"cities", result.Summary.Vertices,
		"connections", result.Summary.Connections,
		"components", result.Summary.Components,
		"cached", result.CacheInfo.NetworkHit,
		"duration", time.Since(buildStart))

	// Stage 5: Render
	renderStart := time.Now()
	err := r.stage(ctx, StageRender, func() error {
		artifacts, hit, err := r.RenderWithCacheInfo(ctx, result, opts)
		if err != nil {
			return err
		}
		result.Artifacts = artifacts
		result.CacheInfo.RenderHit = hit
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Output.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// network fills result.Graph and result.Network, reading the cache first.
func (r *Runner) network(ctx context.Context, opts Options, result *Result) error {
	inputHash, err := cache.HashFiles(opts.Input.Cities, opts.Input.Regions, opts.Input.Adjacency)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	key := r.Keyer.NetworkKey(inputHash, networkKeyOpts(opts))
	result.CacheInfo.NetworkKey = key

	if !opts.Refresh {
		if net, ok := r.cachedNetwork(ctx, key); ok {
			g, err := net.Graph()
			if err == nil {
				result.Graph = g
				result.Network = net
				result.RunID = net.RunID
				result.CacheInfo.NetworkHit = true
				return nil
			}
			r.Logger.Warn("discarding unreadable cached network", "err", err)
		}
	}

	result.RunID = uuid.NewString()
	g, err := r.Build(ctx, opts, result)
	if err != nil {
		return err
	}
	result.Graph = g
	result.Network = export.FromGraph(g, result.RunID, opts.Forest.Start)

	var buf bytes.Buffer
	if err := export.WriteJSON(&buf, result.Network); err == nil {
		r.store(ctx, keyTypeNetwork, key, buf.Bytes(), opts.Cache.TTL)
	}
	return nil
}

// Build loads the inputs and grows the forest without touching the cache.
// When result is not nil, its build report and timings are filled in.
func (r *Runner) Build(ctx context.Context, opts Options, result *Result) (*graph.Graph, error) {
	if result == nil {
		result = &Result{}
	}

	var (
		g   *graph.Graph
		idx *regions.Index
	)

	loadStart := time.Now()
	err := r.stage(ctx, StageLoad, func() error {
		ds, err := loader.LoadDataset(ctx, loader.Paths{
			Cities:    opts.Input.Cities,
			Regions:   opts.Input.Regions,
			Adjacency: opts.Input.Adjacency,
		})
		if err != nil {
			return err
		}
		recs := loader.Dedupe(ds.Records, opts.Input.DropUnset)
		g, err = loader.BuildGraph(recs, loader.BuildOptions{Limit: opts.Input.Limit, Logger: r.Logger})
		if err != nil {
			return err
		}
		idx = regions.New(ds.Regions, ds.Pairs)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Stats.LoadTime = time.Since(loadStart)

	r.Logger.Info("loaded cities",
		"cities", g.VertexCount(),
		"duration", result.Stats.LoadTime)

	err = r.stage(ctx, StageIndex, func() error {
		idx.IndexVertices(g)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}
	r.Logger.Debug("indexed regions", "regions", idx.Len())

	buildStart := time.Now()
	err = r.stage(ctx, StageBuild, func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		b := forest.New(g, idx, forest.Options{
			MaxDegree: opts.Forest.MaxDegree,
			Tag:       opts.Forest.Tag,
			Logger:    r.Logger,
		})
		build := b.Build
		if opts.Forest.Spanning {
			build = b.SpanningTree
		}
		res, err := build(opts.Forest.Start)
		if err != nil {
			return err
		}
		result.Build = res
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}

	r.Logger.Info("built forest",
		"edges", result.Build.EdgesAdded,
		"fallbacks", result.Build.Fallbacks,
		"saturated", len(result.Build.Saturated),
		"restarts", result.Build.Restarts)

	if opts.Forest.Bridge {
		err = r.stage(ctx, StageBridge, func() error {
			n, err := forest.ConnectNearest(g)
			result.Bridged = n
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("bridge: %w", err)
		}
		r.Logger.Info("bridged nearest neighbors", "connections", result.Bridged)
	}

	if opts.Forest.Expand > 0 {
		g.Expand(opts.Forest.Expand)
	}
	result.Stats.BuildTime = time.Since(buildStart)
	return g, nil
}

func networkKeyOpts(opts Options) cache.NetworkKeyOpts {
	return cache.NetworkKeyOpts{
		Start:     opts.Forest.Start,
		MaxDegree: opts.Forest.MaxDegree,
		Limit:     opts.Input.Limit,
		DropUnset: opts.Input.DropUnset,
		Bridge:    opts.Forest.Bridge,
		Spanning:  opts.Forest.Spanning,
		Expand:    opts.Forest.Expand,
		Tag:       opts.Forest.Tag,
	}
}

// =============================================================================
// Helpers
// =============================================================================

// stage runs fn between pipeline hook notifications.
func (r *Runner) stage(ctx context.Context, name string, fn func() error) error {
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, name)
	start := time.Now()
	err := fn()
	hooks.OnStageComplete(ctx, name, time.Since(start), err)
	return err
}

func (r *Runner) cachedNetwork(ctx context.Context, key string) (*export.Network, bool) {
	data, ok := r.lookup(ctx, keyTypeNetwork, key)
	if !ok {
		return nil, false
	}
	net, err := export.ReadJSON(bytes.NewReader(data))
	if err != nil {
		r.Logger.Warn("discarding unreadable cached network", "err", err)
		return nil, false
	}
	return net, true
}

// lookup reads key from the cache. Cache errors are logged and treated as
// misses.
func (r *Runner) lookup(ctx context.Context, keyType, key string) ([]byte, bool) {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key_type", keyType, "err", err)
	}
	if err != nil || !hit {
		hooks.OnCacheMiss(ctx, keyType)
		return nil, false
	}
	hooks.OnCacheHit(ctx, keyType)
	return data, true
}

// store writes to the cache. Failures are logged, never returned.
func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key_type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

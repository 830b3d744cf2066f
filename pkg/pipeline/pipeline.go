// Package pipeline provides the build pipeline shared by the CLI and the
// HTTP server.
//
// # Architecture
//
// A run goes through these stages:
//
//  1. Load: read the city, region and adjacency files and create vertices
//  2. Index: group vertices by region and link bordering regions
//  3. Build: grow the nearest-neighbor forest from the start city
//  4. Bridge and Expand (optional): link nearest non-neighbors, spread the
//     drawing out
//  5. Render: produce the requested output formats
//
// Built networks and rendered artifacts are cached. A network key covers the
// content of all input files plus every build option, so a cache hit skips
// stages 1 to 4 entirely.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	opts := pipeline.Options{Config: cfg}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"time"

	"github.com/matzehuels/cityforest/pkg/config"
	"github.com/matzehuels/cityforest/pkg/export"
	"github.com/matzehuels/cityforest/pkg/forest"
	"github.com/matzehuels/cityforest/pkg/graph"
	"github.com/matzehuels/cityforest/pkg/stats"
)

// Stage names reported to observability hooks.
const (
	StageLoad   = "load"
	StageIndex  = "index"
	StageBuild  = "build"
	StageBridge = "bridge"
	StageRender = "render"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run.
type Options struct {
	config.Config

	// Refresh ignores cached networks and artifacts; fresh results are still
	// written back.
	Refresh bool
}

// ValidateAndSetDefaults applies defaults and validates the configuration.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	return o.Validate()
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the build that produced the network. On a cache hit it
	// is the id of the earlier run.
	RunID string

	// Graph is the built network.
	Graph *graph.Graph

	// Network is the serialized form of Graph.
	Network *export.Network

	// Build reports the builder's work. Nil when the network came from cache.
	Build *forest.Result

	// Bridged is the number of connections added by the bridge pass.
	Bridged int

	// Summary describes the network.
	Summary stats.Summary

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution timings.
type Stats struct {
	LoadTime   time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	NetworkKey string // Key the network is stored under
	NetworkHit bool   // Whether the network came from cache
	RenderHit  bool   // Whether all artifacts came from cache
}

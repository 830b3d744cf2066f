// Package pkg provides the core libraries for Cityforest.
//
// # Overview
//
// Cityforest links geo-located cities into a forest of short connections:
// every city is joined to its nearest cities, at most three connections
// each. The nearest-city search starts in the city's own region (a US state
// in the bundled data) and widens to bordering regions breadth-first only when
// the region has no candidates left.
//
// # Architecture
//
// The typical data flow through Cityforest:
//
//	cities.csv, states.txt, adjacency.txt
//	         ↓
//	    [loader] package (parse, deduplicate, create vertices)
//	         ↓
//	    [regions] package (region membership and adjacency)
//	         ↓
//	    [forest] package (grow the degree-bounded forest)
//	         ↓
//	    [export] package (JSON, DOT, SVG)
//
// [pipeline] runs these stages with caching and is shared by the CLI and the
// HTTP server.
//
// # Quick Start
//
//	ds, _ := loader.LoadDataset(ctx, loader.Paths{
//	    Cities:    "cities.csv.gz",
//	    Regions:   "states.txt",
//	    Adjacency: "adjacency.txt",
//	})
//	g, _ := loader.BuildGraph(loader.Dedupe(ds.Records, false), loader.BuildOptions{})
//	idx := regions.New(ds.Regions, ds.Pairs)
//	idx.IndexVertices(g)
//
//	res, err := forest.New(g, idx, forest.Options{}).Build("Lebanon")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.EdgesAdded, "connections")
//
// # Main Packages
//
// ## Domain
//
// [geo] - Coordinates, great-circle distance in miles, bearings and the
// projection used for drawing.
//
// [graph] - Vertices with weighted, tagged edges, name lookup, and the
// finalized-vertex set.
//
// [edgeheap] - Min-priority queue of edges by weight.
//
// [regions] - Region membership of vertices and region adjacency.
//
// [forest] - The forest builder and the nearest non-neighbor bridge pass.
//
// ## Input and Output
//
// [loader] - City CSV records (plain, gzip or zstd) and region files.
//
// [export] - JSON network format, Graphviz DOT, and SVG rendering.
//
// [stats] - Network summary: components, degrees, connection lengths.
//
// ## Infrastructure
//
// [pipeline] - Complete load → build → render pipeline with caching.
//
// [cache] - Cache interface with file and no-op implementations, plus key
// derivation.
//
// [config] - TOML and YAML run configuration.
//
// [errors] - Coded errors for CLI messages and HTTP status codes.
//
// [observability] - Hook interfaces for builds, pipeline stages and cache
// operations; [metrics] implements them with Prometheus.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./...                 # All tests
//	go test ./pkg/forest/...      # Specific package
//	go test -run Example ./pkg/... # Examples only
package pkg

// Package forest connects located vertices into a degree-bounded
// nearest-neighbor forest.
//
// # Overview
//
// The [Builder] walks the graph from a starting vertex. For each vertex it
// visits it runs a local search ([Builder.Localize]) that picks the closest
// eligible vertices, connects them, and finalizes the vertex. A vertex is
// eligible when it is not the searching vertex, is not already adjacent to
// it, and holds fewer than MaxDegree connections. No vertex ever ends a build
// with more than MaxDegree connections (3 by default).
//
// The result is a greedy heuristic, not a minimum spanning structure, and it
// may contain several disjoint trees.
//
// # Local Search
//
// Candidates come from the vertex's own region first, scanned in the region's
// stored vertex order. A fixed set of slots keeps the nearest candidates seen
// so far; on equal distance the earlier candidate keeps its slot. When the
// own region cannot fill every open slot, the search falls back to a
// breadth-first walk over bordering regions ([regions.Index.Adjacent]). Each
// region is scanned at most once per search, nearer rings before farther
// ones, and the walk stops as soon as the slots are full. If every reachable
// region is exhausted first, the vertex is connected to whatever was found,
// possibly nothing, and marked saturated. Saturation is an expected outcome
// near the end of a build, not an error.
//
// Connections are committed together at the end of a search, followed by
// finalization of the vertex.
//
// # Traversal
//
// [Builder.Build] localizes the start vertex, then processes a FIFO queue of
// newly connected neighbors. When the queue runs dry while vertices are still
// unfinalized, it restarts from the lowest unfinalized id, so every vertex is
// finalized exactly once and the build always terminates.
//
// # Bridging
//
// [ConnectNearest] is a separate, opt-in pass that links every vertex to its
// nearest non-neighbor using an [edgeheap.Heap]. It ignores the degree limit.
//
// # Concurrency
//
// A Builder mutates its graph and must not be shared between goroutines. Run
// at most one build per graph.
package forest

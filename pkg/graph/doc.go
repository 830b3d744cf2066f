// Package graph holds the located vertices and weighted connections that the
// forest builder works on.
//
// # Overview
//
// A [Graph] owns an ordered collection of [Vertex] records indexed by dense
// integer ids (0, 1, 2, ... in insertion order). Connections are stored by
// value inside each vertex and refer to their endpoints by id only, so the
// graph never holds cyclic pointers. Ids are never reused or renumbered.
//
// # Basic Usage
//
//	g := graph.New()
//	a, _ := g.AddVertex("Wichita Falls", "TX", geo.Coord{Lat: 33.91, Lon: -98.49})
//	b, _ := g.AddVertex("Lawton", "OK", geo.Coord{Lat: 34.60, Lon: -98.39})
//	_ = g.AddEdge(graph.Edge{From: a, To: b, Weight: 49.1})
//
// Undirected edges (the default) store a mirrored entry on the target vertex
// and count twice in [Graph.EdgeCount]. Directed edges store one entry.
//
// # Degree
//
// The graph does not enforce a degree limit. Callers that build bounded
// structures, such as package forest, check [Graph.Degree] themselves.
//
// # Finalization
//
// Each vertex carries a Finalized flag that the forest builder sets exactly
// once. The graph mirrors the flags in a roaring bitmap so that
// [Graph.AllFinalized] is O(1) and [Graph.FirstUnfinalized] does not scan
// the whole vertex list.
//
// # Concurrency
//
// Graph is not safe for concurrent mutation. Concurrent reads of a graph that
// is no longer being modified are safe.
package graph

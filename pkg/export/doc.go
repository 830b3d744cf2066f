// Package export writes a built network in its output formats.
//
// # Formats
//
//   - JSON: [Network], a self-contained description of vertices and
//     connections that [Network.Graph] turns back into a graph. The pipeline
//     cache stores networks in this form.
//   - DOT: [ToDOT] produces an undirected Graphviz graph with every vertex
//     pinned at its projected position.
//   - SVG: [RenderSVG] lays out DOT source in-process with the neato engine.
//
// # Usage
//
//	dot := export.ToDOT(g, export.DOTOptions{Labels: true})
//	svg, err := export.RenderSVG(ctx, dot)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for SVG rendering, which
// runs Graphviz compiled to WebAssembly and needs no system install.
package export

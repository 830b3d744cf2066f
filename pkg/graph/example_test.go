package graph_test

import (
	"fmt"

	"github.com/matzehuels/cityforest/pkg/geo"
	"github.com/matzehuels/cityforest/pkg/graph"
)

func ExampleGraph_basic() {
	g := graph.New()
	a, _ := g.AddVertex("Wichita Falls", "TX", geo.Coord{Lat: 33.91, Lon: -98.49})
	b, _ := g.AddVertex("Lawton", "OK", geo.Coord{Lat: 34.60, Lon: -98.39})
	_ = g.AddEdge(graph.Edge{From: a, To: b, Weight: 48, Tag: "forest"})

	fmt.Println("Vertices:", g.VertexCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Neighbors:", g.IsNeighbor(b, a))
	// Output:
	// Vertices: 2
	// Edges: 2
	// Neighbors: true
}

func ExampleGraph_Search() {
	g := graph.New()
	_, _ = g.AddVertex("Lebanon", "KS", geo.Coord{Lat: 39.81, Lon: -98.56})

	v, ok := g.Search("LEBANON")
	fmt.Println(ok, v.Label())
	// Output:
	// true Lebanon, KS
}

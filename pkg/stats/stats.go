// Package stats summarizes a built network: degrees, components and the
// distribution of connection lengths.
package stats

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/stat"

	"github.com/matzehuels/cityforest/pkg/geo"
	"github.com/matzehuels/cityforest/pkg/graph"
)

// Summary describes the shape of a network.
type Summary struct {
	Vertices    int   `json:"vertices"`
	Connections int   `json:"connections"` // each undirected connection once
	EdgeEntries int   `json:"edge_entries"`
	Finalized   int   `json:"finalized"`
	Components  int   `json:"components"`
	Largest     int   `json:"largest_component"`
	Isolated    []int `json:"isolated,omitempty"`
	// Degrees[d] counts vertices with exactly d connections. The slice is
	// as long as the highest degree plus one.
	Degrees []int     `json:"degrees"`
	Weights Weights   `json:"weights"`
	Center  geo.Coord `json:"center"`
}

// Weights describes connection lengths in miles.
type Weights struct {
	Total  float64 `json:"total"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stddev"`
}

// Summarize computes the summary of g.
func Summarize(g *graph.Graph) Summary {
	s := Summary{
		Vertices:    g.VertexCount(),
		EdgeEntries: g.EdgeCount(),
		Finalized:   g.FinalizedCount(),
		Degrees:     []int{},
	}
	box := g.Box()
	s.Center = box.Center()

	for _, v := range g.Vertices() {
		d := v.Degree()
		for len(s.Degrees) <= d {
			s.Degrees = append(s.Degrees, 0)
		}
		s.Degrees[d]++
		if d == 0 {
			s.Isolated = append(s.Isolated, v.ID)
		}
	}

	edges := g.UndirectedEdges()
	s.Connections = len(edges)
	s.Weights = summarizeWeights(edges)
	s.Components, s.Largest = components(g, edges)
	return s
}

func summarizeWeights(edges []graph.Edge) Weights {
	if len(edges) == 0 {
		return Weights{}
	}
	x := make([]float64, len(edges))
	for i, e := range edges {
		x[i] = e.Weight
	}
	slices.Sort(x)

	w := Weights{
		Min:    x[0],
		Max:    x[len(x)-1],
		Mean:   stat.Mean(x, nil),
		Median: stat.Quantile(0.5, stat.Empirical, x, nil),
	}
	for _, v := range x {
		w.Total += v
	}
	if len(x) > 1 {
		w.StdDev = stat.StdDev(x, nil)
	}
	if math.IsNaN(w.StdDev) {
		w.StdDev = 0
	}
	return w
}

// components counts connected components, treating every connection as
// undirected, and returns the size of the largest one.
func components(g *graph.Graph, edges []graph.Edge) (count, largest int) {
	ug := simple.NewUndirectedGraph()
	for _, v := range g.Vertices() {
		ug.AddNode(simple.Node(int64(v.ID)))
	}
	for _, e := range edges {
		if e.From == e.To {
			continue
		}
		ug.SetEdge(simple.Edge{F: simple.Node(int64(e.From)), T: simple.Node(int64(e.To))})
	}

	cc := topo.ConnectedComponents(ug)
	for _, c := range cc {
		largest = max(largest, len(c))
	}
	return len(cc), largest
}

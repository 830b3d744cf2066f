package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/cityforest/pkg/geo"
	"github.com/matzehuels/cityforest/pkg/graph"
)

// Network is the serialized form of a built graph.
type Network struct {
	RunID    string       `json:"run_id,omitempty"`
	Start    string       `json:"start,omitempty"`
	Vertices []VertexJSON `json:"vertices"`
	Edges    []graph.Edge `json:"edges"` // each connection once
}

// VertexJSON is one vertex of a Network.
type VertexJSON struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Region    string  `json:"region,omitempty"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Degree    int     `json:"degree"`
	Finalized bool    `json:"finalized,omitempty"`
	// Neighbors lists the connected ids in the order the vertex gained them.
	Neighbors []int `json:"neighbors,omitempty"`
}

// FromGraph captures g. Undirected connections are listed once, in their
// From < To orientation.
func FromGraph(g *graph.Graph, runID, start string) *Network {
	n := &Network{
		RunID:    runID,
		Start:    start,
		Vertices: make([]VertexJSON, 0, g.VertexCount()),
		Edges:    g.UndirectedEdges(),
	}
	for _, v := range g.Vertices() {
		var order []int
		if v.Degree() > 0 {
			order = v.Neighbors()
		}
		n.Vertices = append(n.Vertices, VertexJSON{
			ID:        v.ID,
			Name:      v.Name,
			Region:    v.Region,
			Lat:       v.Loc.Lat,
			Lon:       v.Loc.Lon,
			Degree:    v.Degree(),
			Finalized: v.Finalized,
			Neighbors: order,
		})
	}
	if n.Edges == nil {
		n.Edges = []graph.Edge{}
	}
	return n
}

// Graph rebuilds a graph from n. Vertex ids must be dense and in order. When
// vertices carry neighbor lists, each vertex's connections come back in that
// order, matching the graph the network was captured from.
func (n *Network) Graph() (*graph.Graph, error) {
	g := graph.New()
	for i, v := range n.Vertices {
		if v.ID != i {
			return nil, fmt.Errorf("vertex %q: id %d out of sequence, want %d", v.Name, v.ID, i)
		}
		if _, err := g.AddVertex(v.Name, v.Region, geo.Coord{Lat: v.Lat, Lon: v.Lon}); err != nil {
			return nil, fmt.Errorf("vertex %q: %w", v.Name, err)
		}
		if v.Finalized {
			g.Finalize(v.ID)
		}
	}
	for _, e := range n.Edges {
		if err := g.AddEdge(e); err != nil {
			return nil, fmt.Errorf("edge %d-%d: %w", e.From, e.To, err)
		}
	}
	for _, vj := range n.Vertices {
		if len(vj.Neighbors) == 0 {
			continue
		}
		v, _ := g.Vertex(vj.ID)
		if err := reorderEdges(v, vj.Neighbors); err != nil {
			return nil, fmt.Errorf("vertex %q: %w", vj.Name, err)
		}
	}
	return g, nil
}

// reorderEdges sorts v's connections to follow order. Repeated ids match
// repeated connections one by one.
func reorderEdges(v *graph.Vertex, order []int) error {
	if len(order) != len(v.Edges) {
		return fmt.Errorf("%d neighbors listed, %d connected", len(order), len(v.Edges))
	}
	used := make([]bool, len(v.Edges))
	sorted := make([]graph.Edge, 0, len(v.Edges))
	for _, id := range order {
		i := -1
		for j, e := range v.Edges {
			if !used[j] && e.To == id {
				i = j
				break
			}
		}
		if i < 0 {
			return fmt.Errorf("neighbor %d has no connection", id)
		}
		used[i] = true
		sorted = append(sorted, v.Edges[i])
	}
	v.Edges = sorted
	return nil
}

// WriteJSON encodes n as indented JSON.
func WriteJSON(w io.Writer, n *Network) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(n)
}

// ReadJSON decodes a Network written by WriteJSON.
func ReadJSON(r io.Reader) (*Network, error) {
	var n Network
	if err := json.NewDecoder(r).Decode(&n); err != nil {
		return nil, fmt.Errorf("decode network: %w", err)
	}
	return &n, nil
}

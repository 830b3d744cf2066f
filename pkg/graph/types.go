package graph

import (
	"fmt"

	"github.com/matzehuels/cityforest/pkg/geo"
)

// Edge is a weighted connection between two vertices.
type Edge struct {
	From     int     `json:"from"`
	To       int     `json:"to"`
	Weight   float64 `json:"weight"`             // Distance in miles, never negative
	Directed bool    `json:"directed,omitempty"` // When false, AddEdge also stores the mirror
	Tag      string  `json:"tag,omitempty"`      // Descriptive only, e.g. "forest"
}

// Reverse returns the mirrored edge.
func (e Edge) Reverse() Edge {
	return Edge{From: e.To, To: e.From, Weight: e.Weight, Directed: e.Directed, Tag: e.Tag}
}

// Vertex is a located, named node. Vertices are created by [Graph.AddVertex]
// and owned by the graph; other packages refer to them by ID.
type Vertex struct {
	ID        int
	Name      string
	Region    string
	Loc       geo.Coord
	Point     geo.Point // Projected position for drawing
	Edges     []Edge
	Finalized bool
}

// Degree returns the number of stored connections.
func (v *Vertex) Degree() int { return len(v.Edges) }

// Neighbors returns the target ids of v's connections in insertion order.
func (v *Vertex) Neighbors() []int {
	ids := make([]int, len(v.Edges))
	for i, e := range v.Edges {
		ids[i] = e.To
	}
	return ids
}

// HasNeighbor reports whether any of v's connections points at id.
func (v *Vertex) HasNeighbor(id int) bool {
	for _, e := range v.Edges {
		if e.To == id {
			return true
		}
	}
	return false
}

// Label returns "Name, Region".
func (v *Vertex) Label() string {
	if v.Region == "" {
		return v.Name
	}
	return v.Name + ", " + v.Region
}

// String implements fmt.Stringer.
func (v *Vertex) String() string {
	return fmt.Sprintf("(ID:%d, %s, %s, LatLon: %s, Edges:%d)", v.ID, v.Name, v.Region, v.Loc, len(v.Edges))
}

package graph

import (
	"errors"
	"iter"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/matzehuels/cityforest/pkg/geo"
)

var (
	// ErrInvalidName is returned by [Graph.AddVertex] when the name is empty.
	ErrInvalidName = errors.New("vertex name must not be empty")

	// ErrDuplicateName is returned by [Graph.AddVertex] when a vertex with the
	// same name already exists. Names are the lookup key and must be unique.
	ErrDuplicateName = errors.New("duplicate vertex name")

	// ErrUnknownVertex is returned by [Graph.AddEdge] when either endpoint id
	// was never allocated.
	ErrUnknownVertex = errors.New("unknown vertex id")

	// ErrNegativeWeight is returned by [Graph.AddEdge] for weights below zero.
	ErrNegativeWeight = errors.New("edge weight must not be negative")
)

// Graph is an arena of vertices addressed by dense integer ids.
//
// The zero value is not usable - use New.
type Graph struct {
	vertices  []*Vertex
	byName    map[string]int
	edgeCount int
	box       geo.Box
	finalized *roaring.Bitmap
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		byName:    make(map[string]int),
		finalized: roaring.New(),
	}
}

// AddVertex allocates the next sequential id for a vertex named name located
// at loc, extends the bounding box and returns the id.
//
// Coordinates are not validated: a loader that defaulted a missing value to
// 0.0 still gets its vertex inserted.
func (g *Graph) AddVertex(name, region string, loc geo.Coord) (int, error) {
	if name == "" {
		return -1, ErrInvalidName
	}
	if _, exists := g.byName[name]; exists {
		return -1, ErrDuplicateName
	}
	id := len(g.vertices)
	g.vertices = append(g.vertices, &Vertex{
		ID:     id,
		Name:   name,
		Region: region,
		Loc:    loc,
		Point:  geo.Project(loc),
	})
	g.byName[name] = id
	g.box.Add(loc)
	return id, nil
}

// AddEdge appends e to the source vertex. Unless e.Directed is set, the
// mirrored edge is appended to the target vertex too. The edge count grows by
// one for directed edges and two for undirected ones.
//
// AddEdge does not check degrees or duplicates; callers that need a bounded
// degree enforce it before calling.
func (g *Graph) AddEdge(e Edge) error {
	if !g.valid(e.From) || !g.valid(e.To) {
		return ErrUnknownVertex
	}
	if e.Weight < 0 {
		return ErrNegativeWeight
	}
	g.vertices[e.From].Edges = append(g.vertices[e.From].Edges, e)
	g.edgeCount++
	if !e.Directed {
		g.vertices[e.To].Edges = append(g.vertices[e.To].Edges, e.Reverse())
		g.edgeCount++
	}
	return nil
}

func (g *Graph) valid(id int) bool { return id >= 0 && id < len(g.vertices) }

// Vertex returns the vertex with the given id, or nil and false.
// The pointer refers to the graph's own record.
func (g *Graph) Vertex(id int) (*Vertex, bool) {
	if !g.valid(id) {
		return nil, false
	}
	return g.vertices[id], true
}

// Vertices returns all vertices ordered by id. The slice is shared with the
// graph and must not be modified.
func (g *Graph) Vertices() []*Vertex { return g.vertices }

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.vertices) }

// EdgeCount returns the number of stored edge entries (an undirected
// connection counts twice).
func (g *Graph) EdgeCount() int { return g.edgeCount }

// Degree returns the number of connections stored on id, or 0 for unknown ids.
func (g *Graph) Degree(id int) int {
	if !g.valid(id) {
		return 0
	}
	return len(g.vertices[id].Edges)
}

// IsNeighbor reports whether other appears among id's connections.
func (g *Graph) IsNeighbor(id, other int) bool {
	if !g.valid(id) {
		return false
	}
	return g.vertices[id].HasNeighbor(other)
}

// Lookup returns the id of the vertex with exactly the given name.
func (g *Graph) Lookup(name string) (int, bool) {
	id, ok := g.byName[name]
	return id, ok
}

// Search finds a vertex by name ignoring case. Exact matches win; otherwise
// the lowest id whose name folds equal to name is returned.
func (g *Graph) Search(name string) (*Vertex, bool) {
	if id, ok := g.byName[name]; ok {
		return g.vertices[id], true
	}
	for _, v := range g.vertices {
		if strings.EqualFold(v.Name, name) {
			return v, true
		}
	}
	return nil, false
}

// Box returns the bounding region of all vertex locations.
func (g *Graph) Box() geo.Box { return g.box }

// Finalize marks id as finalized. It returns true only on the first call for
// a given id; later calls and unknown ids return false.
func (g *Graph) Finalize(id int) bool {
	if !g.valid(id) || g.vertices[id].Finalized {
		return false
	}
	g.vertices[id].Finalized = true
	g.finalized.Add(uint32(id))
	return true
}

// IsFinalized reports whether id has been finalized.
func (g *Graph) IsFinalized(id int) bool {
	return g.valid(id) && g.vertices[id].Finalized
}

// FinalizedCount returns the number of finalized vertices.
func (g *Graph) FinalizedCount() int { return int(g.finalized.GetCardinality()) }

// AllFinalized reports whether every vertex is finalized. An empty graph is
// trivially finalized.
func (g *Graph) AllFinalized() bool {
	return g.FinalizedCount() == len(g.vertices)
}

// FirstUnfinalized returns the lowest id that is not yet finalized.
func (g *Graph) FirstUnfinalized() (int, bool) {
	if g.AllFinalized() {
		return -1, false
	}
	open := roaring.Flip(g.finalized, 0, uint64(len(g.vertices)))
	it := open.Iterator()
	if !it.HasNext() {
		return -1, false
	}
	return int(it.Next()), true
}

// Edges yields every stored edge entry, vertex by vertex in id order.
// Undirected connections appear once per direction.
func (g *Graph) Edges() iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for _, v := range g.vertices {
			for _, e := range v.Edges {
				if !yield(e) {
					return
				}
			}
		}
	}
}

// UndirectedEdges returns each connection once: directed edges as stored and
// undirected edges only in their From < To orientation. Self-loops are kept.
func (g *Graph) UndirectedEdges() []Edge {
	var out []Edge
	for e := range g.Edges() {
		if e.Directed || e.From <= e.To {
			out = append(out, e)
		}
	}
	return out
}

// Expand pushes every vertex miles further away from the center of the
// bounding box along the bearing from the center, then rebuilds the box.
// It only changes display geometry; edge weights are left as they were.
func (g *Graph) Expand(miles float64) {
	center := g.box.Center()
	g.box.Reset()
	for _, v := range g.vertices {
		brng := geo.Bearing(center, v.Loc)
		v.Loc = geo.Destination(v.Loc, miles, brng)
		v.Point = geo.Project(v.Loc)
		g.box.Add(v.Loc)
	}
}

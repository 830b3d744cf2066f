package regions

import (
	"slices"

	"github.com/tidwall/btree"

	"github.com/matzehuels/cityforest/pkg/graph"
)

// Pair declares that regions A and B border each other.
type Pair struct {
	A string
	B string
}

// Index maps regions to their bordering regions and to the vertices located
// in them. Build it with New.
type Index struct {
	adjacent map[string][]string
	members  btree.Map[string, []int]
}

// New builds an index from the valid region codes and the adjacency
// declarations. Each pair is inserted in both directions; repeated pairs and
// self-pairs are ignored. Regions named only in pairs are added implicitly.
// Adjacency lists keep declaration order.
func New(codes []string, pairs []Pair) *Index {
	idx := &Index{adjacent: make(map[string][]string, len(codes))}
	for _, c := range codes {
		idx.declare(c)
	}
	for _, p := range pairs {
		if p.A == "" || p.B == "" || p.A == p.B {
			continue
		}
		idx.declare(p.A)
		idx.declare(p.B)
		idx.link(p.A, p.B)
		idx.link(p.B, p.A)
	}
	return idx
}

func (idx *Index) declare(code string) {
	if code == "" {
		return
	}
	if _, ok := idx.adjacent[code]; !ok {
		idx.adjacent[code] = nil
	}
	if _, ok := idx.members.Get(code); !ok {
		idx.members.Set(code, nil)
	}
}

func (idx *Index) link(from, to string) {
	if slices.Contains(idx.adjacent[from], to) {
		return
	}
	idx.adjacent[from] = append(idx.adjacent[from], to)
}

// IndexVertices rebuilds region membership from g by scanning every vertex
// in id order. Vertices in undeclared regions get a region entry of their own
// with no neighbors.
func (idx *Index) IndexVertices(g *graph.Graph) {
	for _, code := range idx.Regions() {
		idx.members.Set(code, nil)
	}
	for _, v := range g.Vertices() {
		if v.Region == "" {
			continue
		}
		if _, ok := idx.adjacent[v.Region]; !ok {
			idx.adjacent[v.Region] = nil
		}
		ids, _ := idx.members.Get(v.Region)
		idx.members.Set(v.Region, append(ids, v.ID))
	}
}

// VerticesIn returns the vertex ids located in region in ascending order.
// The slice is shared with the index and must not be modified.
func (idx *Index) VerticesIn(region string) []int {
	ids, _ := idx.members.Get(region)
	return ids
}

// Adjacent returns the regions bordering region in declaration order.
// The slice is shared with the index and must not be modified.
func (idx *Index) Adjacent(region string) []string { return idx.adjacent[region] }

// Borders reports whether a and b were declared adjacent.
func (idx *Index) Borders(a, b string) bool { return slices.Contains(idx.adjacent[a], b) }

// Has reports whether region is known to the index.
func (idx *Index) Has(region string) bool {
	_, ok := idx.adjacent[region]
	return ok
}

// Regions returns every known region code in sorted order.
func (idx *Index) Regions() []string {
	codes := make([]string, 0, idx.members.Len())
	idx.members.Scan(func(code string, _ []int) bool {
		codes = append(codes, code)
		return true
	})
	return codes
}

// Len returns the number of known regions.
func (idx *Index) Len() int { return idx.members.Len() }

package forest

import (
	"errors"

	"github.com/matzehuels/cityforest/pkg/edgeheap"
	"github.com/matzehuels/cityforest/pkg/geo"
	"github.com/matzehuels/cityforest/pkg/graph"
)

// ConnectNearest links every vertex, in id order, to its nearest vertex that
// is not already a neighbor and sits at a positive distance. Edges carry
// BridgeTag. Because vertices are processed one at a time, a link made for an
// earlier vertex counts as a neighbor for later ones, so no pair is linked
// twice. The degree limit is not applied.
//
// It returns the number of connections created.
func ConnectNearest(g *graph.Graph) (int, error) {
	if g.VertexCount() == 0 {
		return 0, ErrEmptyGraph
	}

	var h edgeheap.Heap
	added := 0
	for _, v := range g.Vertices() {
		h.Clear()
		for _, u := range g.Vertices() {
			if u.ID == v.ID || v.HasNeighbor(u.ID) {
				continue
			}
			if d := geo.Distance(v.Loc, u.Loc); d > 0 {
				h.Insert(graph.Edge{From: v.ID, To: u.ID, Weight: d, Tag: BridgeTag})
			}
		}

		e, err := h.ExtractMin()
		if errors.Is(err, edgeheap.ErrEmpty) {
			continue
		}
		if err := g.AddEdge(e); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

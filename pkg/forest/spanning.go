package forest

import (
	"fmt"
	"time"

	"github.com/matzehuels/cityforest/pkg/edgeheap"
	"github.com/matzehuels/cityforest/pkg/geo"
	"github.com/matzehuels/cityforest/pkg/graph"
	"github.com/matzehuels/cityforest/pkg/observability"
)

// SpanningTree connects every vertex into a single minimum spanning tree
// rooted at the vertex named start. Candidate edges from the reached part of
// the graph go through an [edgeheap.Heap]; the lightest edge to an unreached
// vertex is committed each round. Regions and the degree limit are ignored,
// and co-located vertices are linked with zero-weight edges so the tree always
// spans the graph. Reached vertices are finalized.
//
// The graph should not already carry edges. Errors match [Builder.Build].
func (b *Builder) SpanningTree(start string) (*Result, error) {
	t0 := time.Now()
	hooks := observability.Build()

	if b.g.VertexCount() == 0 {
		hooks.OnBuildComplete(0, 0, time.Since(t0), ErrEmptyGraph)
		return nil, ErrEmptyGraph
	}
	s, ok := b.g.Lookup(start)
	if !ok {
		err := fmt.Errorf("%w: %q", ErrUnknownEntity, start)
		hooks.OnBuildComplete(0, 0, time.Since(t0), err)
		return nil, err
	}

	hooks.OnBuildStart(start, b.g.VertexCount())
	edgesBefore := b.g.EdgeCount()
	res := &Result{Start: s}

	reached := make([]bool, b.g.VertexCount())
	var h edgeheap.Heap
	reach := func(v *graph.Vertex) {
		reached[v.ID] = true
		if b.g.Finalize(v.ID) {
			res.Localized++
		}
		for _, u := range b.g.Vertices() {
			if !reached[u.ID] {
				h.Insert(graph.Edge{From: v.ID, To: u.ID, Weight: geo.Distance(v.Loc, u.Loc), Tag: b.tag})
			}
		}
	}

	sv, _ := b.g.Vertex(s)
	reach(sv)
	for remaining := b.g.VertexCount() - 1; remaining > 0; {
		e, err := h.ExtractMin()
		if err != nil {
			hooks.OnBuildComplete(0, 0, time.Since(t0), err)
			return nil, err
		}
		if reached[e.To] {
			continue
		}
		if err := b.g.AddEdge(e); err != nil {
			hooks.OnBuildComplete(0, 0, time.Since(t0), err)
			return nil, err
		}
		b.logger.Debug("spanning edge", "from", e.From, "to", e.To, "miles", e.Weight)
		v, _ := b.g.Vertex(e.To)
		reach(v)
		remaining--
	}

	res.EdgesAdded = b.g.EdgeCount() - edgesBefore
	res.Duration = time.Since(t0)
	hooks.OnBuildComplete(res.EdgesAdded, 0, res.Duration, nil)
	return res, nil
}

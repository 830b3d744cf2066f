package forest

import (
	"fmt"
	"time"

	"github.com/matzehuels/cityforest/pkg/observability"
)

// Result summarizes a build.
type Result struct {
	Start      int           // Id of the starting vertex
	Localized  int           // Vertices finalized by this build
	Fallbacks  int           // Local searches that left their own region
	Restarts   int           // Times the queue ran dry and was reseeded
	EdgesAdded int           // Edge entries added (two per connection)
	Saturated  []int         // Vertices finalized with open slots left
	Duration   time.Duration // Wall time of the build
}

// Build connects every vertex of the graph, starting from the vertex named
// start. It returns ErrEmptyGraph for a graph without vertices and
// ErrUnknownEntity when start does not resolve; in both cases the graph is
// left untouched.
func (b *Builder) Build(start string) (*Result, error) {
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

	var queue []int
	if sv, _ := b.g.Vertex(s); !sv.Finalized {
		res.record(b.localize(sv))
		queue = append(queue, sv.Neighbors()...)
	}

	for !b.g.AllFinalized() {
		if len(queue) == 0 {
			next, _ := b.g.FirstUnfinalized()
			b.logger.Debug("queue empty, restarting", "vertex", next)
			queue = append(queue, next)
			res.Restarts++
		}

		n := queue[0]
		queue = queue[1:]
		v, _ := b.g.Vertex(n)
		if v.Finalized {
			continue
		}

		step := b.localize(v)
		res.record(step)
		for _, id := range step.Added {
			if !b.g.IsFinalized(id) {
				queue = append(queue, id)
			}
		}
	}

	res.EdgesAdded = b.g.EdgeCount() - edgesBefore
	res.Duration = time.Since(t0)
	hooks.OnBuildComplete(res.EdgesAdded, res.Restarts, res.Duration, nil)
	return res, nil
}

func (r *Result) record(s Step) {
	r.Localized++
	if s.Fallback {
		r.Fallbacks++
	}
	if s.Saturated {
		r.Saturated = append(r.Saturated, s.Vertex)
	}
}

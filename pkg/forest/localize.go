package forest

import (
	"github.com/matzehuels/cityforest/pkg/geo"
	"github.com/matzehuels/cityforest/pkg/graph"
	"github.com/matzehuels/cityforest/pkg/observability"
)

// Step describes one local search.
type Step struct {
	Vertex int
	// Added lists the vertices connected by this step, nearest first.
	Added []int
	// Regions is the scan trace: the vertex's own region first, then
	// bordering regions in breadth-first order. No region repeats.
	Regions []string
	// Fallback is set when the search had to leave the vertex's own region.
	Fallback bool
	// Saturated is set when fewer connections were made than slots were open.
	Saturated bool
}

type candidate struct {
	id   int
	dist float64
}

// nearest keeps the k smallest candidates offered so far, ascending by
// distance. Equal distances keep the earlier offer first.
type nearest struct {
	k     int
	slots []candidate
}

func newNearest(k int) *nearest {
	return &nearest{k: k, slots: make([]candidate, 0, k)}
}

func (n *nearest) full() bool { return len(n.slots) == n.k }

func (n *nearest) offer(c candidate) {
	i := len(n.slots)
	for j, s := range n.slots {
		if c.dist < s.dist {
			i = j
			break
		}
	}
	if i == n.k {
		return
	}
	if !n.full() {
		n.slots = append(n.slots, candidate{})
	}
	copy(n.slots[i+1:], n.slots[i:len(n.slots)-1])
	n.slots[i] = c
}

// Localize runs the nearest-neighbor search for vertex id, connects it to the
// candidates found and finalizes it.
//
// It returns graph.ErrUnknownVertex for ids outside the graph and
// ErrFinalized for vertices that were already finalized.
func (b *Builder) Localize(id int) (Step, error) {
	v, ok := b.g.Vertex(id)
	if !ok {
		return Step{}, graph.ErrUnknownVertex
	}
	if v.Finalized {
		return Step{Vertex: id}, ErrFinalized
	}
	return b.localize(v), nil
}

func (b *Builder) localize(v *graph.Vertex) Step {
	step := Step{Vertex: v.ID}
	open := b.maxDegree - v.Degree()

	if open > 0 {
		best := newNearest(open)
		scan := func(region string) {
			step.Regions = append(step.Regions, region)
			for _, uid := range b.idx.VerticesIn(region) {
				u, _ := b.g.Vertex(uid)
				if !b.eligible(v, u) {
					continue
				}
				best.offer(candidate{id: uid, dist: geo.Distance(v.Loc, u.Loc)})
			}
		}

		scan(v.Region)
		if !best.full() {
			step.Fallback = true
			b.widen(v.Region, best, scan)
		}

		for _, c := range best.slots {
			err := b.g.AddEdge(graph.Edge{From: v.ID, To: c.id, Weight: c.dist, Tag: b.tag})
			if err != nil {
				b.logger.Error("connect failed", "from", v.ID, "to", c.id, "err", err)
				continue
			}
			step.Added = append(step.Added, c.id)
		}
		step.Saturated = len(step.Added) < open
	}

	b.g.Finalize(v.ID)

	observability.Build().OnLocalize(v.ID, len(step.Added), len(step.Regions), step.Fallback, step.Saturated)
	b.logger.Debug("localized",
		"vertex", v.Label(),
		"added", len(step.Added),
		"regions", len(step.Regions),
		"fallback", step.Fallback,
		"saturated", step.Saturated)
	return step
}

// widen walks bordering regions breadth-first from origin and scans each one
// until best is full or no unvisited region is reachable.
func (b *Builder) widen(origin string, best *nearest, scan func(string)) {
	visited := map[string]bool{origin: true}
	var frontier []string
	push := func(from string) {
		for _, r := range b.idx.Adjacent(from) {
			if !visited[r] {
				visited[r] = true
				frontier = append(frontier, r)
			}
		}
	}

	push(origin)
	for len(frontier) > 0 && !best.full() {
		r := frontier[0]
		frontier = frontier[1:]
		scan(r)
		push(r)
	}
}

func (b *Builder) eligible(v, u *graph.Vertex) bool {
	return u.ID != v.ID && u.Degree() < b.maxDegree && !v.HasNeighbor(u.ID)
}

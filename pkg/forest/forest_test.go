package forest

import (
	"io"
	"math/rand/v2"
	"strconv"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/cityforest/pkg/geo"
	"github.com/matzehuels/cityforest/pkg/graph"
	"github.com/matzehuels/cityforest/pkg/observability"
	"github.com/matzehuels/cityforest/pkg/regions"
)

type city struct {
	name   string
	region string
	lon    float64
}

// fixture places cities on the equator so distance grows with longitude.
func fixture(t *testing.T, cities []city, pairs ...regions.Pair) (*graph.Graph, *regions.Index) {
	t.Helper()
	g := graph.New()
	for _, c := range cities {
		_, err := g.AddVertex(c.name, c.region, geo.Coord{Lat: 0, Lon: c.lon})
		require.NoError(t, err)
	}
	idx := regions.New(nil, pairs)
	idx.IndexVertices(g)
	return g, idx
}

func quiet() *log.Logger { return log.New(io.Discard) }

func newBuilder(g *graph.Graph, idx *regions.Index) *Builder {
	return New(g, idx, Options{Logger: quiet()})
}

// =============================================================================
// Localize
// =============================================================================

func TestLocalizeUsesAllAvailableCandidates(t *testing.T) {
	g, idx := fixture(t, []city{
		{"a", "X", 0},
		{"b", "X", 10.0 / 69.09},
		{"c", "X", 20.0 / 69.09},
	})

	step, err := newBuilder(g, idx).Localize(0)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, step.Added)
	assert.Equal(t, 2, g.Degree(0))
	assert.True(t, step.Saturated)
	assert.True(t, g.IsFinalized(0))
}

func TestLocalizePicksThreeNearest(t *testing.T) {
	g, idx := fixture(t, []city{
		{"a", "X", 0},
		{"e", "X", 4},
		{"c", "X", 2},
		{"b", "X", 1},
		{"d", "X", 3},
	})

	step, err := newBuilder(g, idx).Localize(0)
	require.NoError(t, err)

	assert.Equal(t, []int{3, 2, 4}, step.Added, "nearest first: b, c, d")
	assert.False(t, g.IsNeighbor(0, 1), "e is fourth nearest")
	assert.Equal(t, 3, g.Degree(0))
	assert.False(t, step.Fallback)
	assert.False(t, step.Saturated)
	assert.Equal(t, []string{"X"}, step.Regions)
}

func TestLocalizeIsolatedRegion(t *testing.T) {
	g, idx := fixture(t, []city{
		{"lonely", "X", 0},
		{"far", "Y", 1},
	})

	step, err := newBuilder(g, idx).Localize(0)
	require.NoError(t, err)

	assert.Empty(t, step.Added)
	assert.Equal(t, 0, g.Degree(0))
	assert.True(t, step.Fallback)
	assert.True(t, step.Saturated)
	assert.True(t, g.IsFinalized(0))
	assert.Equal(t, []string{"X"}, step.Regions)
}

func TestLocalizeTiesKeepScanOrder(t *testing.T) {
	g, idx := fixture(t, []city{
		{"a", "X", 0},
		{"east", "X", 1},
		{"west", "X", -1},
	})

	b := New(g, idx, Options{MaxDegree: 1, Logger: quiet()})
	step, err := b.Localize(0)
	require.NoError(t, err)

	assert.Equal(t, []int{1}, step.Added)
}

func TestLocalizeSkipsExistingNeighbors(t *testing.T) {
	g, idx := fixture(t, []city{
		{"a", "X", 0},
		{"b", "X", 1},
		{"c", "X", 2},
		{"d", "X", 3},
		{"e", "X", 4},
	})
	require.NoError(t, g.AddEdge(graph.Edge{From: 0, To: 1, Weight: 69}))

	step, err := newBuilder(g, idx).Localize(0)
	require.NoError(t, err)

	assert.Equal(t, []int{2, 3}, step.Added, "one slot taken, b already adjacent")
	assert.Equal(t, 3, g.Degree(0))
	assert.False(t, step.Saturated)
}

func TestLocalizeSkipsFullVertices(t *testing.T) {
	g, idx := fixture(t, []city{
		{"a", "X", 0},
		{"hub", "X", 0.5},
		{"h1", "Y", 10},
		{"h2", "Y", 11},
		{"h3", "Y", 12},
		{"b", "X", 5},
	})
	for _, to := range []int{2, 3, 4} {
		require.NoError(t, g.AddEdge(graph.Edge{From: 1, To: to, Weight: 1}))
	}

	step, err := newBuilder(g, idx).Localize(0)
	require.NoError(t, err)

	assert.Equal(t, []int{5}, step.Added)
	assert.LessOrEqual(t, g.Degree(1), 3)
}

func TestLocalizeAlreadyFull(t *testing.T) {
	g, idx := fixture(t, []city{
		{"a", "X", 0},
		{"b", "X", 1},
		{"c", "X", 2},
		{"d", "X", 3},
		{"e", "X", 4},
	})
	for _, to := range []int{1, 2, 3} {
		require.NoError(t, g.AddEdge(graph.Edge{From: 0, To: to, Weight: 1}))
	}

	step, err := newBuilder(g, idx).Localize(0)
	require.NoError(t, err)

	assert.Empty(t, step.Added)
	assert.Empty(t, step.Regions)
	assert.False(t, step.Saturated)
	assert.True(t, g.IsFinalized(0))
}

func TestLocalizeFallbackWalksBreadthFirst(t *testing.T) {
	// A borders B, B borders C. C holds the nearest city overall, but B
	// fills the remaining slots first so C is never scanned.
	g, idx := fixture(t, []city{
		{"origin", "A", 0},
		{"b1", "B", 5},
		{"b2", "B", 6},
		{"b3", "B", 7},
		{"c1", "C", 0.1},
	},
		regions.Pair{A: "A", B: "B"},
		regions.Pair{A: "B", B: "C"},
	)

	step, err := newBuilder(g, idx).Localize(0)
	require.NoError(t, err)

	assert.True(t, step.Fallback)
	assert.Equal(t, []string{"A", "B"}, step.Regions)
	assert.Equal(t, []int{1, 2, 3}, step.Added)
	assert.False(t, g.IsNeighbor(0, 4))
}

func TestLocalizeFallbackSharesSlots(t *testing.T) {
	g, idx := fixture(t, []city{
		{"origin", "A", 0},
		{"a1", "A", 9},
		{"b1", "B", 1},
		{"c1", "C", 2},
		{"c2", "C", 3},
	},
		regions.Pair{A: "A", B: "B"},
		regions.Pair{A: "B", B: "C"},
	)

	step, err := newBuilder(g, idx).Localize(0)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, step.Regions)
	assert.Equal(t, []int{2, 3, 4}, step.Added, "nearer fallback finds displace a1")
	assert.False(t, g.IsNeighbor(0, 1))
}

func TestLocalizeFallbackTerminatesOnCycles(t *testing.T) {
	g, idx := fixture(t, []city{
		{"origin", "A", 0},
		{"b1", "B", 1},
	},
		regions.Pair{A: "A", B: "B"},
		regions.Pair{A: "B", B: "C"},
		regions.Pair{A: "C", B: "A"},
		regions.Pair{A: "C", B: "D"},
	)

	step, err := newBuilder(g, idx).Localize(0)
	require.NoError(t, err)

	assert.Equal(t, []int{1}, step.Added)
	assert.True(t, step.Saturated)
	assert.ElementsMatch(t, []string{"A", "B", "C", "D"}, step.Regions)
	assert.Equal(t, "A", step.Regions[0])
}

func TestLocalizeErrors(t *testing.T) {
	g, idx := fixture(t, []city{{"a", "X", 0}})
	b := newBuilder(g, idx)

	_, err := b.Localize(7)
	assert.ErrorIs(t, err, graph.ErrUnknownVertex)

	_, err = b.Localize(0)
	require.NoError(t, err)
	_, err = b.Localize(0)
	assert.ErrorIs(t, err, ErrFinalized)
}

// =============================================================================
// Build
// =============================================================================

func TestBuildUnknownStart(t *testing.T) {
	g, idx := fixture(t, []city{{"a", "X", 0}, {"b", "X", 1}})

	res, err := newBuilder(g, idx).Build("nowhere")
	assert.ErrorIs(t, err, ErrUnknownEntity)
	assert.Nil(t, res)
	assert.Equal(t, 0, g.EdgeCount())
	assert.Equal(t, 0, g.FinalizedCount())
}

func TestBuildEmptyGraph(t *testing.T) {
	g, idx := fixture(t, nil)

	_, err := newBuilder(g, idx).Build("a")
	assert.ErrorIs(t, err, ErrEmptyGraph)
}

func TestBuildRestartsOnDisconnectedRegions(t *testing.T) {
	g, idx := fixture(t, []city{
		{"x0", "X", 0},
		{"x1", "X", 1},
		{"y0", "Y", 50},
		{"y1", "Y", 51},
	})

	res, err := newBuilder(g, idx).Build("x0")
	require.NoError(t, err)

	assert.Equal(t, 0, res.Start)
	assert.Equal(t, 4, res.Localized)
	assert.Equal(t, 1, res.Restarts)
	assert.Equal(t, 4, res.EdgesAdded)
	assert.True(t, g.AllFinalized())
	assert.True(t, g.IsNeighbor(2, 3))
	assert.False(t, g.IsNeighbor(1, 2))
}

func TestBuildStartAlreadyFinalized(t *testing.T) {
	g, idx := fixture(t, []city{{"a", "X", 0}, {"b", "X", 1}})
	g.Finalize(0)

	res, err := newBuilder(g, idx).Build("a")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Localized)
	assert.True(t, g.AllFinalized())
}

func TestBuildProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	codes := []string{"N", "E", "S", "W", "Z"}
	var cities []city
	g := graph.New()
	for i := range 120 {
		region := codes[rng.IntN(len(codes))]
		loc := geo.Coord{Lat: 30 + rng.Float64()*10, Lon: -100 + rng.Float64()*20}
		_, err := g.AddVertex("c"+strconv.Itoa(i), region, loc)
		require.NoError(t, err)
		cities = append(cities, city{region: region})
	}
	idx := regions.New(codes, []regions.Pair{
		{A: "N", B: "E"}, {A: "E", B: "S"}, {A: "S", B: "W"}, {A: "W", B: "N"},
	})
	idx.IndexVertices(g)

	b := newBuilder(g, idx)
	rec := &recordingHooks{}
	observability.SetBuildHooks(rec)
	t.Cleanup(observability.Reset)

	res, err := b.Build("c0")
	require.NoError(t, err)

	assert.True(t, g.AllFinalized())
	assert.Equal(t, len(cities), res.Localized)
	assert.Equal(t, g.EdgeCount(), res.EdgesAdded)
	assert.Equal(t, len(cities), rec.localized)
	assert.Equal(t, 1, rec.started)
	assert.Equal(t, 1, rec.completed)

	for _, v := range g.Vertices() {
		assert.LessOrEqual(t, v.Degree(), DefaultMaxDegree, v.Name)
		for _, e := range v.Edges {
			assert.Equal(t, DefaultTag, e.Tag)
			assert.GreaterOrEqual(t, e.Weight, 0.0)
			mirror := findEdge(g, e.To, e.From)
			require.NotNil(t, mirror, "mirror of %d->%d", e.From, e.To)
			assert.Equal(t, e.Weight, mirror.Weight)
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	build := func() []graph.Edge {
		g, idx := fixture(t, []city{
			{"a", "X", 0}, {"b", "X", 1}, {"c", "X", 1}, {"d", "Y", 2},
			{"e", "Y", 3}, {"f", "Y", 3}, {"g", "Z", 4}, {"h", "Z", 5},
		}, regions.Pair{A: "X", B: "Y"}, regions.Pair{A: "Y", B: "Z"})
		_, err := newBuilder(g, idx).Build("d")
		require.NoError(t, err)
		return g.UndirectedEdges()
	}
	assert.Equal(t, build(), build())
}

func TestLocalizeTraceHasNoRepeats(t *testing.T) {
	g, idx := fixture(t, []city{
		{"origin", "A", 0},
	},
		regions.Pair{A: "A", B: "B"},
		regions.Pair{A: "A", B: "C"},
		regions.Pair{A: "B", B: "C"},
		regions.Pair{A: "C", B: "D"},
		regions.Pair{A: "D", B: "B"},
	)

	step, err := newBuilder(g, idx).Localize(0)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, r := range step.Regions {
		assert.False(t, seen[r], "region %s scanned twice", r)
		seen[r] = true
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, step.Regions)
}

// =============================================================================
// ConnectNearest
// =============================================================================

func TestConnectNearest(t *testing.T) {
	g, _ := fixture(t, []city{
		{"a", "X", 0},
		{"b", "X", 1},
		{"c", "Y", 3},
		{"twin", "Y", 3},
	})

	added, err := ConnectNearest(g)
	require.NoError(t, err)

	// a->b, b->c, c->a (twin is at zero distance), twin->b.
	assert.Equal(t, 4, added)
	assert.Equal(t, 8, g.EdgeCount())
	assert.True(t, g.IsNeighbor(0, 1))
	assert.True(t, g.IsNeighbor(1, 2))
	assert.True(t, g.IsNeighbor(2, 0))
	assert.True(t, g.IsNeighbor(3, 1))
	assert.False(t, g.IsNeighbor(2, 3))
	for e := range g.Edges() {
		assert.Equal(t, BridgeTag, e.Tag)
	}
}

func TestConnectNearestEmpty(t *testing.T) {
	_, err := ConnectNearest(graph.New())
	assert.ErrorIs(t, err, ErrEmptyGraph)
}

// =============================================================================
// SpanningTree
// =============================================================================

func TestSpanningTree(t *testing.T) {
	g, idx := fixture(t, []city{
		{"a", "X", 0},
		{"b", "X", 1},
		{"c", "Y", 3},
		{"twin", "Y", 3},
		{"d", "Z", 10},
	})
	b := New(g, idx, Options{Tag: "mst", Logger: quiet()})

	res, err := b.SpanningTree("c")
	require.NoError(t, err)

	// One component over five vertices: four connections, eight entries.
	assert.Equal(t, 2, res.Start)
	assert.Equal(t, 8, res.EdgesAdded)
	assert.Equal(t, 5, res.Localized)
	assert.True(t, g.AllFinalized())

	assert.True(t, g.IsNeighbor(2, 3), "twin joins at zero distance")
	assert.True(t, g.IsNeighbor(2, 1))
	assert.True(t, g.IsNeighbor(1, 0))
	assert.True(t, g.IsNeighbor(2, 4))
	assert.False(t, g.IsNeighbor(3, 1), "tie goes to the earlier candidate")
	assert.Equal(t, 3, g.Degree(2))

	for e := range g.Edges() {
		assert.Equal(t, "mst", e.Tag)
	}
	assert.Equal(t, 5, reachable(g, 4))
}

func TestSpanningTreeIgnoresDegreeLimit(t *testing.T) {
	g, idx := fixture(t, []city{
		{"hub", "X", 0},
		{"e", "X", 1},
		{"w", "X", -1},
	})
	_, err := g.AddVertex("n", "X", geo.Coord{Lat: 1, Lon: 0})
	require.NoError(t, err)
	_, err = g.AddVertex("s", "X", geo.Coord{Lat: -1, Lon: 0})
	require.NoError(t, err)

	res, err := New(g, idx, Options{MaxDegree: 1, Logger: quiet()}).SpanningTree("hub")
	require.NoError(t, err)

	assert.Equal(t, 8, res.EdgesAdded)
	assert.Equal(t, 4, g.Degree(0))
	assert.Equal(t, 5, reachable(g, 0))
}

func TestSpanningTreeErrors(t *testing.T) {
	g, idx := fixture(t, []city{{"a", "X", 0}, {"b", "X", 1}})

	res, err := newBuilder(g, idx).SpanningTree("nowhere")
	assert.ErrorIs(t, err, ErrUnknownEntity)
	assert.Nil(t, res)
	assert.Equal(t, 0, g.EdgeCount())

	empty, emptyIdx := fixture(t, nil)
	_, err = newBuilder(empty, emptyIdx).SpanningTree("a")
	assert.ErrorIs(t, err, ErrEmptyGraph)
}

func TestSpanningTreeSingleVertex(t *testing.T) {
	g, idx := fixture(t, []city{{"solo", "X", 0}})

	res, err := newBuilder(g, idx).SpanningTree("solo")
	require.NoError(t, err)
	assert.Equal(t, 0, res.EdgesAdded)
	assert.True(t, g.AllFinalized())
}

// =============================================================================
// Helpers
// =============================================================================

func findEdge(g *graph.Graph, from, to int) *graph.Edge {
	v, ok := g.Vertex(from)
	if !ok {
		return nil
	}
	for i := range v.Edges {
		if v.Edges[i].To == to {
			return &v.Edges[i]
		}
	}
	return nil
}

type recordingHooks struct {
	observability.NoopBuildHooks
	started, localized, completed int
}

func (r *recordingHooks) OnBuildStart(string, int) { r.started++ }

func (r *recordingHooks) OnLocalize(int, int, int, bool, bool) { r.localized++ }

func (r *recordingHooks) OnBuildComplete(int, int, time.Duration, error) { r.completed++ }

// reachable counts the vertices connected to id, id included.
func reachable(g *graph.Graph, id int) int {
	seen := map[int]bool{id: true}
	queue := []int{id}
	for len(queue) > 0 {
		v, _ := g.Vertex(queue[0])
		queue = queue[1:]
		for _, n := range v.Neighbors() {
			if !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return len(seen)
}

package regions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/cityforest/pkg/geo"
	"github.com/matzehuels/cityforest/pkg/graph"
)

func TestNewIsSymmetric(t *testing.T) {
	idx := New([]string{"TX", "OK", "NM", "HI"}, []Pair{
		{A: "TX", B: "OK"},
		{A: "TX", B: "NM"},
		{A: "OK", B: "TX"}, // repeated in the other direction
		{A: "NM", B: "NM"}, // self pair
	})

	assert.Equal(t, []string{"OK", "NM"}, idx.Adjacent("TX"))
	assert.Equal(t, []string{"TX"}, idx.Adjacent("OK"))
	assert.Equal(t, []string{"TX"}, idx.Adjacent("NM"))
	assert.Empty(t, idx.Adjacent("HI"))

	for _, code := range idx.Regions() {
		for _, nb := range idx.Adjacent(code) {
			assert.True(t, idx.Borders(nb, code), "%s borders %s but not the reverse", code, nb)
		}
	}
}

func TestNewImplicitRegions(t *testing.T) {
	idx := New(nil, []Pair{{A: "AA", B: "BB"}})
	assert.True(t, idx.Has("AA"))
	assert.True(t, idx.Has("BB"))
	assert.Equal(t, []string{"AA", "BB"}, idx.Regions())
	assert.Equal(t, 2, idx.Len())
}

func TestIndexVertices(t *testing.T) {
	g := graph.New()
	add := func(name, region string) int {
		id, err := g.AddVertex(name, region, geo.Coord{Lat: 1, Lon: 1})
		require.NoError(t, err)
		return id
	}
	a := add("Austin", "TX")
	b := add("Tulsa", "OK")
	c := add("Dallas", "TX")
	d := add("Hilo", "HI")

	idx := New([]string{"TX", "OK"}, []Pair{{A: "TX", B: "OK"}})
	idx.IndexVertices(g)

	assert.Equal(t, []int{a, c}, idx.VerticesIn("TX"))
	assert.Equal(t, []int{b}, idx.VerticesIn("OK"))
	assert.Equal(t, []int{d}, idx.VerticesIn("HI"))
	assert.True(t, idx.Has("HI"), "undeclared vertex region should be registered")
	assert.Empty(t, idx.Adjacent("HI"))
	assert.Nil(t, idx.VerticesIn("ZZ"))

	// Rebuilding does not duplicate membership.
	idx.IndexVertices(g)
	assert.Equal(t, []int{a, c}, idx.VerticesIn("TX"))
}

func TestParseRegions(t *testing.T) {
	codes, err := ParseRegions(strings.NewReader("TX OK\nNM\n\n  OK LA\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"TX", "OK", "NM", "LA"}, codes)
}

func TestParseRegionsComments(t *testing.T) {
	input := `# western states
CO WY # mountain
#UT
NM#trailing
`
	codes, err := ParseRegions(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"CO", "WY", "NM"}, codes)
}

func TestParseAdjacency(t *testing.T) {
	input := `# region,neighbors
TX,OK,NM , LA
OK,KS

HI
ME,NH,
`
	pairs, err := ParseAdjacency(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []Pair{
		{A: "TX", B: "OK"},
		{A: "TX", B: "NM"},
		{A: "TX", B: "LA"},
		{A: "OK", B: "KS"},
		{A: "ME", B: "NH"},
	}, pairs)
}

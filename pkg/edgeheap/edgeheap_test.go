package edgeheap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/cityforest/pkg/graph"
)

func TestExtractMinOrdersByWeight(t *testing.T) {
	var h Heap
	for i, w := range []float64{30, 10, 50, 20, 40} {
		h.Insert(graph.Edge{From: 0, To: i + 1, Weight: w})
	}
	require.Equal(t, 5, h.Len())

	var got []float64
	for h.Len() > 0 {
		e, err := h.ExtractMin()
		require.NoError(t, err)
		got = append(got, e.Weight)
	}
	assert.Equal(t, []float64{10, 20, 30, 40, 50}, got)
}

func TestExtractMinTiesFirstInsertedWins(t *testing.T) {
	var h Heap
	h.Insert(graph.Edge{From: 0, To: 1, Weight: 5})
	h.Insert(graph.Edge{From: 0, To: 2, Weight: 3})
	h.Insert(graph.Edge{From: 0, To: 3, Weight: 5})
	h.Insert(graph.Edge{From: 0, To: 4, Weight: 3})
	h.Insert(graph.Edge{From: 0, To: 5, Weight: 5})

	var order []int
	for h.Len() > 0 {
		e, err := h.ExtractMin()
		require.NoError(t, err)
		order = append(order, e.To)
	}
	assert.Equal(t, []int{2, 4, 1, 3, 5}, order)
}

func TestExtractMinEmpty(t *testing.T) {
	var h Heap
	_, err := h.ExtractMin()
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = h.Peek()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestDuplicatesKept(t *testing.T) {
	var h Heap
	e := graph.Edge{From: 1, To: 2, Weight: 4}
	h.Insert(e)
	h.Insert(e)
	assert.Equal(t, 2, h.Len())
}

func TestPeekDoesNotRemove(t *testing.T) {
	var h Heap
	h.Insert(graph.Edge{To: 1, Weight: 2})
	h.Insert(graph.Edge{To: 2, Weight: 1})

	e, err := h.Peek()
	require.NoError(t, err)
	assert.Equal(t, 2, e.To)
	assert.Equal(t, 2, h.Len())
}

func TestClearAndReuse(t *testing.T) {
	var h Heap
	h.Insert(graph.Edge{To: 1, Weight: 1})
	h.Insert(graph.Edge{To: 2, Weight: 2})
	h.Clear()
	assert.Equal(t, 0, h.Len())

	_, err := h.ExtractMin()
	assert.ErrorIs(t, err, ErrEmpty)

	h.Insert(graph.Edge{To: 7, Weight: 9})
	h.Insert(graph.Edge{To: 8, Weight: 9})
	e, err := h.ExtractMin()
	require.NoError(t, err)
	assert.Equal(t, 7, e.To)
}

package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendFillsToCapacity(t *testing.T) {
	p := New(make([]byte, 3*Size))
	assert.Equal(t, 3, p.Cap())
	for i := 0; i < 3; i++ {
		require.True(t, p.Append(Edge{Tail: IntId(i), Head: IntId(i + 1)}))
	}
	assert.True(t, p.Full())
	assert.False(t, p.Append(Edge{Tail: 9, Head: 9}))
	assert.Equal(t, 3, p.Count())
}

func TestAtReturnsInsertionOrder(t *testing.T) {
	p := New(make([]byte, 2*Size))
	require.True(t, p.Append(Edge{Tail: 1, Head: 2}))
	require.True(t, p.Append(Edge{Tail: 3, Head: 4}))
	assert.Equal(t, Edge{Tail: 1, Head: 2}, p.At(0))
	assert.Equal(t, Edge{Tail: 3, Head: 4}, p.At(1))
}

func TestResetReusesBufferWithZeroCount(t *testing.T) {
	buf := make([]byte, Size)
	p := New(buf)
	require.True(t, p.Append(Edge{Tail: 7, Head: 8}))
	p.Reset()
	assert.Equal(t, 0, p.Count())
	assert.False(t, p.Full())
	require.True(t, p.Append(Edge{Tail: 1, Head: 2}))
	assert.Equal(t, Edge{Tail: 1, Head: 2}, p.At(0))
}

func TestIncidentUndirectedBothEndpoints(t *testing.T) {
	p := New(make([]byte, Size))
	require.True(t, p.Append(Edge{Tail: 1, Head: 2}))

	var dst []IntId
	dst = p.Incident(dst, 0, 1, false)
	assert.Equal(t, []IntId{2}, dst)

	dst = nil
	dst = p.Incident(dst, 0, 2, false)
	assert.Equal(t, []IntId{1}, dst)
}

func TestIncidentDirectedOnlyTailMatches(t *testing.T) {
	p := New(make([]byte, Size))
	require.True(t, p.Append(Edge{Tail: 1, Head: 2}))

	var dst []IntId
	dst = p.Incident(dst, 0, 2, true)
	assert.Empty(t, dst)

	dst = p.Incident(dst, 0, 1, true)
	assert.Equal(t, []IntId{2}, dst)
}

func TestIncidentSelfLoopUndirectedDoubleCounts(t *testing.T) {
	p := New(make([]byte, Size))
	require.True(t, p.Append(Edge{Tail: 5, Head: 5}))

	var dst []IntId
	dst = p.Incident(dst, 0, 5, false)
	assert.Equal(t, []IntId{5, 5}, dst)
}

func TestEdges(t *testing.T) {
	p := New(make([]byte, 2*Size))
	require.True(t, p.Append(Edge{Tail: 1, Head: 2}))
	require.True(t, p.Append(Edge{Tail: 3, Head: 4}))
	assert.Equal(t, []Edge{{1, 2}, {3, 4}}, p.Edges())
}

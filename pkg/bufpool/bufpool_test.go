package bufpool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextBufferBumpsUntilExhausted(t *testing.T) {
	p, err := New(2, 16)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Capacity())
	assert.Equal(t, 2, p.NumFree())

	b1, ok := p.NextBuffer()
	require.True(t, ok)
	assert.Len(t, b1, 16)
	assert.Equal(t, 1, p.NumFree())

	b2, ok := p.NextBuffer()
	require.True(t, ok)
	assert.Len(t, b2, 16)
	assert.Equal(t, 0, p.NumFree())

	_, ok = p.NextBuffer()
	assert.False(t, ok)
}

func TestBuffersAreDisjoint(t *testing.T) {
	p, err := New(2, 8)
	require.NoError(t, err)
	b1, _ := p.NextBuffer()
	b2, _ := p.NextBuffer()
	b1[0] = 0xAA
	assert.NotEqual(t, byte(0xAA), b2[0])
}

func TestNewRejectsDegenerateGeometry(t *testing.T) {
	_, err := New(0, 8)
	assert.Error(t, err)
	_, err = New(1, 0)
	assert.Error(t, err)
}

func TestOccupancyReportsUsedOverTotal(t *testing.T) {
	p, err := New(4, 8)
	require.NoError(t, err)
	_, _ = p.NextBuffer()
	assert.Contains(t, p.Occupancy(), "/")
}

func TestCloseReleasesArena(t *testing.T) {
	p, err := New(2, 8)
	require.NoError(t, err)
	p.Close()
	_, ok := p.NextBuffer()
	assert.False(t, ok)
	assert.Equal(t, 0, p.NumFree())
}

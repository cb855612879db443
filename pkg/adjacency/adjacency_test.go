package adjacency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/flowgraphdb/flowgraph/pkg/page"
)

func newPage(n int) *page.Page { return page.New(make([]byte, n*page.Size)) }

func TestAttachCoalescesOntoTail(t *testing.T) {
	l := NewList()
	p1 := newPage(2)
	l.Attach(p1)
	l.Attach(p1)
	assert.Equal(t, 1, l.Len())

	p2 := newPage(2)
	l.Attach(p2)
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, []*page.Page{p1, p2}, l.Pages())
}

func TestDetachFirstIfOnlyRemovesHead(t *testing.T) {
	l := NewList()
	p1, p2 := newPage(2), newPage(2)
	l.Attach(p1)
	l.Attach(p2)

	assert.False(t, l.DetachFirstIf(p2), "tail is not head, must not detach")
	assert.Equal(t, 2, l.Len())

	assert.True(t, l.DetachFirstIf(p1))
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, []*page.Page{p2}, l.Pages())
}

func TestDetachFirstIfEmptiesChain(t *testing.T) {
	l := NewList()
	p1 := newPage(1)
	l.Attach(p1)
	assert.True(t, l.DetachFirstIf(p1))
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.Pages())
}

func TestFingerprintOrderIndependent(t *testing.T) {
	a := []page.IntId{3, 1, 2}
	b := []page.IntId{1, 2, 3}
	assert.Equal(t, Fingerprint(a), Fingerprint(b))

	c := []page.IntId{1, 2, 4}
	assert.NotEqual(t, Fingerprint(a), Fingerprint(c))
}

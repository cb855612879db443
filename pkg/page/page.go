// Package page implements the fixed-capacity edge page that the graph
// store appends edges into, and the raw byte layout it shares with the
// buffer pool's bump-allocated arena.
package page

import "encoding/binary"

// IntId is a dense internal node identifier assigned by the graph store
// in order of first appearance.
type IntId uint32

// Edge is one tail/head pair, always stored with internal ids.
type Edge struct {
	Tail IntId
	Head IntId
}

// Size is the on-the-wire byte size of one Edge: two uint32s.
const Size = 8

// Page is a fixed-capacity, append-only array of edges backed by one
// buffer-pool buffer. It does not own that buffer — the pool does — but
// it owns decoding/encoding the edges written into it.
//
// Invariant: once count reaches the buffer's capacity, Append returns
// false; the page transitions FILLING -> FULL (§4.7) and is never
// written to again until its buffer is recycled by the graph store.
type Page struct {
	buf   []byte
	count int
	cap   int
}

// New constructs an empty page on top of buf, whose length must be a
// multiple of Size. The page starts in the FILLING state with count 0.
func New(buf []byte) *Page {
	return &Page{
		buf: buf,
		cap: len(buf) / Size,
	}
}

// Reset reuses p's existing buffer in place with count 0, as the graph
// store does when it recycles an evicted page's backing buffer (§4.4
// new_page, step 3). The buffer's prior bytes are left untouched; they
// are overwritten by subsequent Append calls before being read again.
func (p *Page) Reset() {
	p.count = 0
}

// Append writes edge at the next free slot and returns true, or returns
// false without mutating p if the page is FULL.
func (p *Page) Append(e Edge) bool {
	if p.count >= p.cap {
		return false
	}
	off := p.count * Size
	binary.LittleEndian.PutUint32(p.buf[off:], uint32(e.Tail))
	binary.LittleEndian.PutUint32(p.buf[off+4:], uint32(e.Head))
	p.count++
	return true
}

// Count returns the number of edges currently stored.
func (p *Page) Count() int { return p.count }

// Cap returns the page's edge capacity.
func (p *Page) Cap() int { return p.cap }

// Full reports whether the page has no more room for Append.
func (p *Page) Full() bool { return p.count >= p.cap }

// At returns the i'th edge in insertion order, 0 <= i < Count().
func (p *Page) At(i int) Edge {
	off := i * Size
	return Edge{
		Tail: IntId(binary.LittleEndian.Uint32(p.buf[off:])),
		Head: IntId(binary.LittleEndian.Uint32(p.buf[off+4:])),
	}
}

// Edges returns the page's edges as a freshly allocated slice, in
// insertion order. Used when delivering a batch to a callback that
// expects a plain slice (e.g. the eviction protocol's remove_batch).
func (p *Page) Edges() []Edge {
	out := make([]Edge, p.count)
	for i := range out {
		out[i] = p.At(i)
	}
	return out
}

// Incident appends, to dst, the opposite endpoint of p's i'th edge for
// every way n participates in it, and returns the extended slice.
//
// In DIRECTED mode only a tail match counts. In UNDIRECTED mode a tail
// match and a head match are checked independently (not as an
// else-branch): a self-loop edge (tail == head == n) therefore yields n
// twice. This double count is intentional and preserved from the
// reference implementation (§9) — the community score arithmetic is
// defined in terms of it.
func (p *Page) Incident(dst []IntId, i int, n IntId, directed bool) []IntId {
	e := p.At(i)
	if e.Tail == n {
		dst = append(dst, e.Head)
	}
	if !directed && e.Head == n {
		dst = append(dst, e.Tail)
	}
	return dst
}

// Package bufpool implements the fixed-size raw buffer allocator that
// backs every edge page: one contiguous allocation of NumPages *
// PageBytes bytes, handed out by bump index and never individually
// freed. Recycling a buffer (when the graph store evicts a page) is the
// caller's responsibility — the pool only ever advances forward.
package bufpool

import "github.com/dustin/go-humanize"

// Pool owns a single contiguous byte arena and hands out fixed-size
// slices of it by bump index.
//
// This mirrors the shape of nornicdb's pkg/cache.QueryCache in spirit
// (bounded capacity, simple occupancy accounting) but trades its
// container/list LRU for a pure bump allocator: §4.1 is explicit that
// the pool itself never frees or reorders buffers, only the graph
// store recycles them in place.
type Pool struct {
	arena     []byte
	pageBytes int
	numPages  int
	next      int // bump index: next unused page slot
}

// New allocates the pool's NumPages * PageBytes arena, zeroed.
// It returns an error (InitializationFailure, §7) if the geometry is
// degenerate rather than panicking, so the CLI can exit(1) cleanly.
func New(numPages, pageBytes int) (*Pool, error) {
	if numPages <= 0 || pageBytes <= 0 {
		return nil, errInvalidGeometry(numPages, pageBytes)
	}
	return &Pool{
		arena:     make([]byte, numPages*pageBytes),
		pageBytes: pageBytes,
		numPages:  numPages,
	}, nil
}

// Buffer is a fixed pageBytes-length window into the pool's arena.
type Buffer = []byte

// NextBuffer returns the next unused buffer and advances the bump
// index, or (nil, false) once the arena is exhausted. It never blocks
// and never returns an error: exhaustion past initialization is the
// graph store's problem to solve via eviction (§4.4).
func (p *Pool) NextBuffer() (Buffer, bool) {
	if p.next >= p.numPages {
		return nil, false
	}
	start := p.next * p.pageBytes
	buf := p.arena[start : start+p.pageBytes]
	p.next++
	return buf, true
}

// NumFree returns how many buffers have never been handed out.
func (p *Pool) NumFree() int { return p.numPages - p.next }

// Capacity returns the pool's total page count.
func (p *Pool) Capacity() int { return p.numPages }

// Occupancy renders a human-readable "used/total" byte summary for the
// progress log §6 calls for.
func (p *Pool) Occupancy() string {
	used := uint64(p.next) * uint64(p.pageBytes)
	total := uint64(p.numPages) * uint64(p.pageBytes)
	return humanize.Bytes(used) + "/" + humanize.Bytes(total)
}

// Close releases the whole allocation.
func (p *Pool) Close() {
	p.arena = nil
	p.next = p.numPages
}

type invalidGeometryError struct {
	numPages, pageBytes int
}

func (e invalidGeometryError) Error() string {
	return "bufpool: invalid geometry (num_pages, page_bytes must be > 0)"
}

func errInvalidGeometry(numPages, pageBytes int) error {
	return invalidGeometryError{numPages, pageBytes}
}

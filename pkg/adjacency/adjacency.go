// Package adjacency implements the per-node chain of page references the
// graph store uses to know which pages a node's edges live in, without
// copying page contents (§4.3).
package adjacency

import "github.com/flowgraphdb/flowgraph/pkg/page"

// pageRef is one link in a node's chain, referencing a live page.
type pageRef struct {
	page *page.Page
	prev *pageRef
	next *pageRef
}

// List is the doubly-linked chain of page references for one node.
// A page appears at most once in a node's chain (§3 invariant);
// Attach is responsible for enforcing that by coalescing onto the tail.
type List struct {
	head *pageRef
	tail *pageRef
	len  int
}

// NewList returns an empty adjacency list.
func NewList() *List {
	return &List{}
}

// Attach records that node participates in p. If the chain's current
// tail already references p, this is a no-op — the rationale (§4.3) is
// that successive writes of edges incident on the same node land in the
// same page, since insert_adjacency always writes into the current
// tail page before attaching.
func (l *List) Attach(p *page.Page) {
	if l.tail != nil && l.tail.page == p {
		return
	}
	ref := &pageRef{page: p, prev: l.tail}
	if l.tail != nil {
		l.tail.next = ref
	} else {
		l.head = ref
	}
	l.tail = ref
	l.len++
}

// DetachFirstIf removes the head of the chain if it references p,
// reporting whether it did. Used by the eviction protocol: because the
// store only ever appends and only the chain tail receives writes, the
// oldest (about-to-be-evicted) page can only appear at a chain's head
// (§4.4 new_page, rationale).
func (l *List) DetachFirstIf(p *page.Page) bool {
	if l.head == nil || l.head.page != p {
		return false
	}
	l.head = l.head.next
	if l.head != nil {
		l.head.prev = nil
	} else {
		l.tail = nil
	}
	l.len--
	return true
}

// Len returns the number of pages currently referenced.
func (l *List) Len() int { return l.len }

// Pages returns the chain's pages in order, oldest reference first.
// Allocates; callers on a hot path should prefer Walk.
func (l *List) Pages() []*page.Page {
	out := make([]*page.Page, 0, l.len)
	for r := l.head; r != nil; r = r.next {
		out = append(out, r.page)
	}
	return out
}

// Walk calls fn for every page in the chain, oldest first, stopping
// early if fn returns false.
func (l *List) Walk(fn func(p *page.Page) bool) {
	for r := l.head; r != nil; r = r.next {
		if !fn(r.page) {
			return
		}
	}
}

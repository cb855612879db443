// Package graphstore implements the paged, LRU-evicted adjacency index
// that ingests an edge stream under a fixed memory budget (§4.4).
//
// A Store owns external-to-internal id remapping, allocates edge pages
// from a bufpool.Pool, batches pushed edges for delivery to a Callbacks
// implementation (the community engine), and evicts the oldest page's
// buffer — notifying Callbacks and repairing adjacency chains — whenever
// the pool is exhausted.
package graphstore

import (
	"container/list"
	"errors"

	"github.com/flowgraphdb/flowgraph/pkg/adjacency"
	"github.com/flowgraphdb/flowgraph/pkg/bufpool"
	"github.com/flowgraphdb/flowgraph/pkg/config"
	"github.com/flowgraphdb/flowgraph/pkg/page"
)

// Callbacks is the capability set a community engine implements to
// observe the store's ingestion and eviction, mirroring §4.4's
// insert_batch/remove_batch/node_alloc/node_free function pointers as a
// Go interface (§9, design note on C-style callbacks).
type Callbacks interface {
	// NodeAlloc is called exactly once per internal id, immediately
	// after it is assigned, and returns the opaque per-node state to
	// store in node_state[id].
	NodeAlloc(s *Store, id page.IntId) any
	// NodeFree is called once per known node at Close, in ascending
	// internal-id order, after all pages are freed. This is where the
	// engine emits its final partition (§4.4 close).
	NodeFree(s *Store, id page.IntId, state any)
	// InsertBatch delivers a full (or final, partial) batch of edges
	// in push order, after each edge's adjacency has been recorded.
	InsertBatch(s *Store, edges []page.Edge)
	// RemoveBatch delivers the contents of a page about to be evicted,
	// before any adjacency chain is repaired.
	RemoveBatch(s *Store, edges []page.Edge)
}

// ErrBufferPoolExhausted is returned when a page must be evicted but
// there is no live page to evict either — i.e. NumPages is zero, which
// Config.Validate already rejects, so this only fires if the pool was
// otherwise drained out from under the store. Per §7 this is a
// resource-exhaustion condition the caller should treat as fatal.
var ErrBufferPoolExhausted = errors.New("graphstore: buffer pool exhausted and no page available to evict")

// Store is the paged streaming adjacency index. Its mode is fixed at
// construction and its id mapping is permanent for its lifetime (§3).
type Store struct {
	cfg config.Config
	cb  Callbacks
	pool *bufpool.Pool

	extToInt map[uint64]page.IntId
	intToExt []uint64

	adjacency []*adjacency.List
	nodeState []any

	pagesLRU *list.List // of *page.Page, oldest at Front

	batch []page.Edge

	numPushed       uint64
	numEvictedPages uint64
	closed          bool
}

// New constructs a Store. It allocates the buffer pool's entire arena
// up front; a non-nil error here is an InitializationFailure (§7) the
// CLI should report and exit(1) on.
func New(cfg config.Config, cb Callbacks) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pool, err := bufpool.New(cfg.NumPages, cfg.PageBytes)
	if err != nil {
		return nil, err
	}
	return &Store{
		cfg:      cfg,
		cb:       cb,
		pool:     pool,
		extToInt: make(map[uint64]page.IntId),
		pagesLRU: list.New(),
		batch:    make([]page.Edge, 0, cfg.BatchSize),
	}, nil
}

// Mode returns the store's fixed graph mode.
func (s *Store) Mode() config.Mode { return s.cfg.Mode }

// NumNodes returns the number of distinct internal ids assigned so far.
func (s *Store) NumNodes() int { return len(s.intToExt) }

// NumPushed returns the monotonic count of edges pushed.
func (s *Store) NumPushed() uint64 { return s.numPushed }

// NumEvictedPages returns how many pages have been evicted so far.
func (s *Store) NumEvictedPages() uint64 { return s.numEvictedPages }

// Occupancy renders the buffer pool's "used/total" byte summary.
func (s *Store) Occupancy() string { return s.pool.Occupancy() }

// Remap returns the external id for an internal id.
func (s *Store) Remap(id page.IntId) uint64 { return s.intToExt[id] }

// NodeState returns the opaque per-node state stored by NodeAlloc.
func (s *Store) NodeState(id page.IntId) any { return s.nodeState[id] }

// SetNodeState overwrites the opaque per-node state for id. Engines use
// this when a node changes community membership.
func (s *Store) SetNodeState(id page.IntId, v any) { s.nodeState[id] = v }

// GetInternalID resolves ext to its internal id, assigning a fresh one
// on first sighting and invoking Callbacks.NodeAlloc to seed its state
// (§4.4). The mapping is permanent: once assigned, an id is never
// reused or reassigned.
func (s *Store) GetInternalID(ext uint64) page.IntId {
	if id, ok := s.extToInt[ext]; ok {
		return id
	}
	id := page.IntId(len(s.intToExt))
	s.extToInt[ext] = id
	s.intToExt = append(s.intToExt, ext)
	s.adjacency = append(s.adjacency, adjacency.NewList())
	s.nodeState = append(s.nodeState, nil)
	s.nodeState[id] = s.cb.NodeAlloc(s, id)
	return id
}

// Push resolves extTail/extHead to internal ids, records the edge in
// the adjacency index, and appends it to the current batch, delivering
// the batch to Callbacks.InsertBatch once it reaches BatchSize (§4.4).
//
// weight is accepted but ignored: weighted-edge semantics are an
// explicit non-goal (§1).
func (s *Store) Push(extTail, extHead uint64, weight float64) error {
	t := s.GetInternalID(extTail)
	h := s.GetInternalID(extHead)

	if err := s.insertAdjacency(t, h); err != nil {
		return err
	}

	s.batch = append(s.batch, page.Edge{Tail: t, Head: h})
	if len(s.batch) == s.cfg.BatchSize {
		s.cb.InsertBatch(s, s.batch)
		s.batch = s.batch[:0]
	}
	s.numPushed++
	return nil
}

// insertAdjacency writes (t, h) into the current tail page — allocating
// or evicting one if needed — and attaches that page to t's (and, if
// undirected, h's) adjacency chain (§4.4).
func (s *Store) insertAdjacency(t, h page.IntId) error {
	p := s.tailPage()
	if p == nil || p.Full() {
		np, err := s.newPage()
		if err != nil {
			return err
		}
		p = np
		s.pagesLRU.PushBack(p)
	}

	p.Append(page.Edge{Tail: t, Head: h})
	s.adjacency[t].Attach(p)
	if s.cfg.Mode == config.Undirected {
		s.adjacency[h].Attach(p)
	}
	return nil
}

// tailPage returns the most recently allocated live page, or nil.
func (s *Store) tailPage() *page.Page {
	if back := s.pagesLRU.Back(); back != nil {
		return back.Value.(*page.Page)
	}
	return nil
}

// newPage implements the eviction protocol (§4.4 new_page): ask the
// pool for a fresh buffer, and if none remain, evict the LRU-oldest
// page — delivering its contents to Callbacks.RemoveBatch before any
// adjacency chain is touched, then repairing those chains — and reuse
// its buffer in place.
func (s *Store) newPage() (*page.Page, error) {
	if buf, ok := s.pool.NextBuffer(); ok {
		return page.New(buf), nil
	}

	front := s.pagesLRU.Front()
	if front == nil {
		return nil, ErrBufferPoolExhausted
	}
	victim := front.Value.(*page.Page)
	s.pagesLRU.Remove(front)

	evicted := victim.Edges()
	s.cb.RemoveBatch(s, evicted)

	for _, e := range evicted {
		s.adjacency[e.Tail].DetachFirstIf(victim)
		if s.cfg.Mode == config.Undirected {
			s.adjacency[e.Head].DetachFirstIf(victim)
		}
	}

	victim.Reset()
	s.numEvictedPages++
	return victim, nil
}

// Neighbors appends n's neighbors (per the adjacency iterator contract
// of §4.4) to dst and returns the extended slice. In UNDIRECTED mode
// both endpoints of an incident edge are considered; in DIRECTED mode
// only edges where n is the tail count. Duplicates across pages, or a
// self-loop counted twice, are tolerated by design (§9) — callers that
// need a set should dedupe explicitly.
func (s *Store) Neighbors(n page.IntId, dst []page.IntId) []page.IntId {
	directed := s.cfg.Mode == config.Directed
	s.adjacency[n].Walk(func(p *page.Page) bool {
		for i := 0; i < p.Count(); i++ {
			dst = p.Incident(dst, i, n, directed)
		}
		return true
	})
	return dst
}

// Close flushes any partial batch, drops every page and adjacency chain,
// frees every node's state (this is
// when the community engine emits its final partition), and releases
// the buffer pool. Close on an empty store is valid and delivers
// nothing beyond NodeFree for zero nodes — i.e. nothing at all.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	if len(s.batch) > 0 {
		s.cb.InsertBatch(s, s.batch)
		s.batch = nil
	}
	s.pagesLRU.Init()
	s.adjacency = nil
	for id := range s.nodeState {
		s.cb.NodeFree(s, page.IntId(id), s.nodeState[id])
	}
	s.pool.Close()
	s.closed = true
	return nil
}

// Package engine implements the community-assignment heuristic (§4.6)
// as a graphstore.Callbacks: it allocates one singleton community per
// node, inspects each delivered batch for inter-community edges and
// moves one endpoint when doing so strictly improves the combined
// score, and emits the final partition at teardown.
package engine

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/flowgraphdb/flowgraph/pkg/community"
	"github.com/flowgraphdb/flowgraph/pkg/graphstore"
	"github.com/flowgraphdb/flowgraph/pkg/page"
)

// Engine drives the community engine callbacks (§4.6) against a single
// sink that receives the final partition, one community per line.
type Engine struct {
	sink    io.Writer
	emitted int
}

// New returns an Engine that writes the final partition to sink.
func New(sink io.Writer) *Engine {
	return &Engine{sink: sink}
}

// EmittedCommunities returns how many non-empty communities were
// written to the sink so far (only meaningful after Close).
func (e *Engine) EmittedCommunities() int { return e.emitted }

// NodeAlloc creates the singleton community {id} and installs it as
// the node's state (§4.6).
func (e *Engine) NodeAlloc(s *graphstore.Store, id page.IntId) any {
	return community.New(s, id)
}

// InsertBatch inspects every inter-community edge in the batch and
// moves one endpoint into the other's community when an alternative
// strictly improves on the current combined score (§4.6). Edges are
// processed in arrival order and state is updated in place, so later
// edges in the same batch observe earlier moves.
func (e *Engine) InsertBatch(s *graphstore.Store, edges []page.Edge) {
	for _, edge := range edges {
		t, h := edge.Tail, edge.Head
		tc := s.NodeState(t).(*community.Community)
		hc := s.NodeState(h).(*community.Community)
		if tc.ID() == hc.ID() {
			continue
		}

		current := tc.Score() + hc.Score()
		tToH := tc.TestRemove(t) + hc.TestInsert(t)
		hToT := tc.TestInsert(h) + hc.TestRemove(h)

		if tToH <= current && hToT <= current {
			continue
		}

		// Prefer tail->head only when it is strictly the larger
		// alternative; a tie (§9, scenario S6) falls through to
		// head->tail.
		if tToH > hToT {
			tc.Remove(t)
			hc.Insert(t)
			if tc.Size() == 0 {
				e.NodeFree(s, tc.ID(), tc)
			}
			s.SetNodeState(t, hc)
		} else {
			hc.Remove(h)
			tc.Insert(h)
			if hc.Size() == 0 {
				e.NodeFree(s, hc.ID(), hc)
			}
			s.SetNodeState(h, tc)
		}
	}
}

// RemoveBatch is a deliberate no-op on community state (§4.6, §9): the
// reference engine never "unlearns" structure that aged out of the
// adjacency store. Kin/Kout are not retro-adjusted on eviction.
func (e *Engine) RemoveBatch(s *graphstore.Store, edges []page.Edge) {}

// NodeFree emits state's community if it still has members and has
// not already been emitted, then clears every member's node state so
// the same community is never written twice — a community may be
// aliased from several node_state slots, and Close (or an in-batch
// move that empties a community) can reach it more than once (§4.6).
func (e *Engine) NodeFree(s *graphstore.Store, id page.IntId, state any) {
	if state == nil {
		return
	}
	c, ok := state.(*community.Community)
	if !ok || c.Size() == 0 {
		return
	}

	members := c.Iter()
	parts := make([]string, len(members))
	for i, m := range members {
		parts[i] = strconv.FormatUint(s.Remap(m), 10)
		s.SetNodeState(m, nil)
	}
	fmt.Fprintln(e.sink, strings.Join(parts, " "))
	e.emitted++
}

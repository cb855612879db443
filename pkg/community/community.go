// Package community implements the SCD-style per-community bookkeeping
// (§4.5): a set of nodes plus cached internal/external degree counters,
// a score function, and insert/remove with non-mutating preview
// variants. The community engine (package engine) drives these from
// each delivered edge batch.
package community

import (
	"sort"

	"github.com/flowgraphdb/flowgraph/pkg/page"
)

// DebugAssertions gates the precondition checks on Insert/Remove (§7:
// "in debug builds, insert requires absent, remove requires present;
// violations abort. In release builds, callers are trusted."). It
// defaults to on; production embedders that have already validated
// their call sites may set it to false to skip the check.
var DebugAssertions = true

// NeighborLookup is the slice of graphstore.Store a Community needs: a
// way to scan a node's neighbors. Community depends on this interface
// rather than *graphstore.Store directly so it has no import-cycle on
// the engine that wires the two together.
type NeighborLookup interface {
	Neighbors(n page.IntId, dst []page.IntId) []page.IntId
}

// Community is one SCD community: an ordered set of member node ids
// plus Kin (internal-edge endpoint count) and Kout (external-edge
// endpoint count), cached incrementally rather than recomputed.
type Community struct {
	id      page.IntId
	graph   NeighborLookup
	nodes   []page.IntId // ascending by IntId; the ordered-set iteration order §4.5 requires
	present map[page.IntId]struct{}
	kin     int64
	kout    int64
}

// New creates the singleton community {seed} that node_alloc installs
// for a freshly assigned node (§4.6). Its degrees start at zero: they
// accrue as the node's edges are scanned by later Insert/Remove calls,
// not pre-seeded from existing adjacency.
func New(graph NeighborLookup, seed page.IntId) *Community {
	return &Community{
		id:      seed,
		graph:   graph,
		nodes:   []page.IntId{seed},
		present: map[page.IntId]struct{}{seed: {}},
	}
}

// ID returns the stable id of the community's original seed node.
func (c *Community) ID() page.IntId { return c.id }

// Size returns the number of member nodes.
func (c *Community) Size() int { return len(c.nodes) }

// Exists reports whether n is currently a member.
func (c *Community) Exists(n page.IntId) bool {
	_, ok := c.present[n]
	return ok
}

// Iter returns the members in ascending-IntId order. The returned
// slice is owned by the caller; it is a fresh copy.
func (c *Community) Iter() []page.IntId {
	out := make([]page.IntId, len(c.nodes))
	copy(out, c.nodes)
	return out
}

// Kin and Kout expose the cached degree counters, e.g. for tests.
func (c *Community) Kin() int64  { return c.kin }
func (c *Community) Kout() int64 { return c.kout }

// degreesAgainst scans n's neighbors and classifies each occurrence as
// internal (the neighbor is a current member) or external. A neighbor
// yielded twice by the graph's adjacency iterator — a self-loop, or an
// undirected edge visited from both endpoints — is counted twice here
// too: this is intentional and preserved from the reference
// implementation (§9); the score arithmetic is defined in terms of it.
func (c *Community) degreesAgainst(n page.IntId) (kIn, kOut int) {
	var buf [8]page.IntId
	neighbors := c.graph.Neighbors(n, buf[:0])
	for _, v := range neighbors {
		if c.Exists(v) {
			kIn++
		} else {
			kOut++
		}
	}
	return
}

// score computes Kin'/D given the previewed or committed (Kin', Kout')
// pair and the community size m used for the shared denominator. D is
// written exactly as §4.5 specifies — D = Kin' + Kout' + (m+1)*m − Kin'
// — rather than algebraically cancelled to Kout' + (m+1)*m, so that a
// reader comparing this code against the spec sees the same shape; the
// cancellation is a property of the formula, not an optimization this
// code should take credit for.
func score(kin, kout int64, m int) float64 {
	mm := int64(m)
	d := kin + kout + (mm+1)*mm - kin
	if d <= 0 {
		return 0
	}
	return float64(kin) / float64(d)
}

// Score returns the community's current score (§4.5, §GLOSSARY).
func (c *Community) Score() float64 {
	return score(c.kin, c.kout, len(c.nodes))
}

// TestInsert previews the score as if n were inserted, without
// mutating any state. The denominator uses the community's current
// size, not size+1 (§9: preserved source behavior).
func (c *Community) TestInsert(n page.IntId) float64 {
	kIn, kOut := c.degreesAgainst(n)
	newKin := c.kin + 2*int64(kIn)
	newKout := c.kout - int64(kIn) + int64(kOut)
	return score(newKin, newKout, len(c.nodes))
}

// TestRemove previews the score as if n were removed, without
// mutating any state.
func (c *Community) TestRemove(n page.IntId) float64 {
	kIn, kOut := c.degreesAgainst(n)
	newKin := c.kin - 2*int64(kIn)
	newKout := c.kout + int64(kIn) - int64(kOut)
	return score(newKin, newKout, len(c.nodes))
}

// Insert commits the Kin'/Kout' that TestInsert would preview and adds
// n to the member set. Precondition: !Exists(n).
func (c *Community) Insert(n page.IntId) {
	if DebugAssertions && c.Exists(n) {
		panic("community: Insert precondition violated: node already a member")
	}
	kIn, kOut := c.degreesAgainst(n)
	c.kin += 2 * int64(kIn)
	c.kout += int64(kOut) - int64(kIn)
	c.insertSorted(n)
}

// Remove commits the Kin'/Kout' that TestRemove would preview and
// drops n from the member set. Precondition: Exists(n).
func (c *Community) Remove(n page.IntId) {
	if DebugAssertions && !c.Exists(n) {
		panic("community: Remove precondition violated: node not a member")
	}
	kIn, kOut := c.degreesAgainst(n)
	c.kin -= 2 * int64(kIn)
	c.kout += int64(kIn) - int64(kOut)
	c.removeSorted(n)
}

func (c *Community) insertSorted(n page.IntId) {
	i := sort.Search(len(c.nodes), func(i int) bool { return c.nodes[i] >= n })
	c.nodes = append(c.nodes, 0)
	copy(c.nodes[i+1:], c.nodes[i:])
	c.nodes[i] = n
	c.present[n] = struct{}{}
}

func (c *Community) removeSorted(n page.IntId) {
	i := sort.Search(len(c.nodes), func(i int) bool { return c.nodes[i] >= n })
	if i < len(c.nodes) && c.nodes[i] == n {
		c.nodes = append(c.nodes[:i], c.nodes[i+1:]...)
	}
	delete(c.present, n)
}

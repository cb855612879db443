package adjacency

import (
	"encoding/binary"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/flowgraphdb/flowgraph/pkg/page"
)

// Fingerprint produces a deterministic 64-bit digest of a multiset of
// node ids, independent of the order they were collected in. It exists
// so tests can assert on the contents of a neighbor scan (whose order
// depends on adjacency chain and page layout, not on anything the spec
// promises) without sorting assumptions leaking into production code.
func Fingerprint(ids []page.IntId) uint64 {
	sorted := make([]page.IntId, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	buf := make([]byte, 4*len(sorted))
	for i, id := range sorted {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(id))
	}
	return xxhash.Sum64(buf)
}

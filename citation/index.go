package citation

import "github.com/tidwall/btree"

// timeIndex maps a vertex ID to its issue time. Keys are kept sorted so
// vertex enumeration is stable.
type timeIndex struct {
	times btree.Map[uint64, uint64]
}

// set stores the time for a vertex. A later call for the same vertex
// overwrites the earlier one.
func (ti *timeIndex) set(id, t uint64) {
	ti.times.Set(id, t)
}

func (ti *timeIndex) get(id uint64) (uint64, bool) {
	return ti.times.Get(id)
}

func (ti *timeIndex) len() int {
	return ti.times.Len()
}

func (ti *timeIndex) ids() []uint64 {
	ids := make([]uint64, 0, ti.times.Len())
	ti.times.Scan(func(id, _ uint64) bool {
		ids = append(ids, id)
		return true
	})
	return ids
}

// adjEntry is a single key -> value association of a multimap. seq keeps
// parallel edges apart and preserves their insertion order.
type adjEntry struct {
	key, val uint64
	seq      uint64
}

func adjEntryLess(a, b adjEntry) bool {
	if a.key != b.key {
		return a.key < b.key
	}
	return a.seq < b.seq
}

// multimap is an ordered multi-valued map from a vertex to vertices.
type multimap struct {
	tree *btree.BTreeG[adjEntry]
	seq  uint64
}

func newMultimap() *multimap {
	return &multimap{tree: btree.NewBTreeG[adjEntry](adjEntryLess)}
}

func (m *multimap) insert(key, val uint64) {
	m.tree.Set(adjEntry{key: key, val: val, seq: m.seq})
	m.seq++
}

// equalRange returns every value stored under key in insertion order.
func (m *multimap) equalRange(key uint64) []uint64 {
	var vals []uint64
	m.tree.Ascend(adjEntry{key: key}, func(e adjEntry) bool {
		if e.key != key {
			return false
		}
		vals = append(vals, e.val)
		return true
	})
	return vals
}

func (m *multimap) count(key uint64) int {
	var n int
	m.tree.Ascend(adjEntry{key: key}, func(e adjEntry) bool {
		if e.key != key {
			return false
		}
		n++
		return true
	})
	return n
}

// scan visits every stored association in key order.
func (m *multimap) scan(fn func(key, val uint64) bool) {
	m.tree.Scan(func(e adjEntry) bool {
		return fn(e.key, e.val)
	})
}

// adjacencyIndex keeps both directions of every edge. cited maps a vertex to
// the vertices it cites; citing maps a vertex to the vertices that cite it.
// Both are filled by the same call and never modified afterwards.
type adjacencyIndex struct {
	cited  *multimap
	citing *multimap
}

func newAdjacencyIndex() adjacencyIndex {
	return adjacencyIndex{
		cited:  newMultimap(),
		citing: newMultimap(),
	}
}

func (ai adjacencyIndex) addEdge(src, dst uint64) {
	ai.cited.insert(src, dst)
	ai.citing.insert(dst, src)
}

func (ai adjacencyIndex) citedBy(src uint64) []uint64 {
	return ai.cited.equalRange(src)
}

func (ai adjacencyIndex) citingOf(dst uint64) []uint64 {
	return ai.citing.equalRange(dst)
}

func (ai adjacencyIndex) outdegree(src uint64) int {
	return ai.cited.count(src)
}

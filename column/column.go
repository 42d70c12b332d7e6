// Package column implements the canonical representation of a colour
// class (StableSet) and the append-only, de-duplicated ColumnPool
// shared by every node of the branch-and-price tree.
package column

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/solver4all/sgcp-bp/graph"
)

// StableSet is one candidate colour class: an unordered set of
// ORIGINAL vertex ids, plus a cached per-cluster intersection bitset
// built against a specific graph. Two stable sets compare equal iff
// their id sets are equal (spec.md §3).
type StableSet struct {
	ID         int
	ids        mapset.Set[int]
	Dummy      bool
	intersects graph.Bitset
}

// NewStableSet builds a StableSet from original vertex ids and caches
// its cluster-intersection bitset against g.
func NewStableSet(ids []int, g *graph.Graph) *StableSet {
	s := &StableSet{ids: mapset.NewSet[int](ids...)}
	s.cacheIntersections(g)
	return s
}

// NewDummy returns the dummy column: it intersects every cluster and
// is compatible with every branching rule by construction, at a
// prohibitive cost of 2|V| in the master (spec.md §3, §4.2).
func NewDummy() *StableSet {
	return &StableSet{ids: mapset.NewSet[int](), Dummy: true}
}

func (s *StableSet) cacheIntersections(g *graph.Graph) {
	bs := graph.NewBitset(g.NumClusters())
	for id := range s.ids.Iter() {
		if v, ok := g.ByOriginal(id); ok {
			bs.Set(g.ClusterOf(v.ID))
		}
	}
	s.intersects = bs
}

// IDs returns the original vertex ids in this stable set.
func (s *StableSet) IDs() []int { return s.ids.ToSlice() }

// Contains reports whether id is a member.
func (s *StableSet) Contains(id int) bool { return s.ids.Contains(id) }

// IntersectsCluster reports whether this stable set touches cluster k
// (spec.md §3's cached `intersects[k]`). The dummy column is treated
// as intersecting every cluster.
func (s *StableSet) IntersectsCluster(k int) bool {
	if s.Dummy {
		return true
	}
	return s.intersects.Test(k)
}

// Cost is the master-objective weight of this column: 1 for any real
// stable set, 2|V| for the dummy (spec.md §4.2).
func (s *StableSet) Cost(numVertices int) float64 {
	if s.Dummy {
		return float64(2 * numVertices)
	}
	return 1
}

// Equal implements spec.md §3's set-equality comparison.
func (s *StableSet) Equal(o *StableSet) bool {
	if s.Dummy != o.Dummy {
		return false
	}
	return s.ids.Equal(o.ids)
}

// IsValidFor reports whether every pair of members is non-adjacent in
// g — the fundamental "stable set" invariant of spec.md §8, checked
// in original id space via g's current representatives.
func (s *StableSet) IsValidFor(g *graph.Graph) bool {
	if s.Dummy {
		return true
	}
	return g.IsStableSetCompatible(s.IDs())
}

// Key is a canonical string used for de-duplication in ColumnPool.
func (s *StableSet) Key() string {
	if s.Dummy {
		return "\x00dummy"
	}
	ids := s.ids.ToSlice()
	// sort for a canonical order regardless of set-iteration order.
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	buf := make([]byte, 0, len(ids)*4)
	for _, id := range ids {
		buf = appendInt(buf, id)
		buf = append(buf, ',')
	}
	return string(buf)
}

func appendInt(buf []byte, v int) []byte {
	if v == 0 {
		return append(buf, '0')
	}
	if v < 0 {
		buf = append(buf, '-')
		v = -v
	}
	start := len(buf)
	for v > 0 {
		buf = append(buf, byte('0'+v%10))
		v /= 10
	}
	for i, j := start, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf
}

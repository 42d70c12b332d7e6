package column

import (
	"sync"

	"github.com/solver4all/sgcp-bp/graph"
)

// Pool is the append-only, de-duplicated sequence of StableSets
// shared by every node in the tree. Column ids are stable — once
// assigned, an id is never reused or reassigned, even though the
// node that discovered a column may later be pruned (spec.md §3).
type Pool struct {
	mu      sync.Mutex
	columns []*StableSet
	byKey   map[string]int // canonical key -> column id
}

// NewPool returns an empty pool seeded with the dummy column at id 0.
func NewPool() *Pool {
	p := &Pool{byKey: make(map[string]int)}
	dummy := NewDummy()
	dummy.ID = 0
	p.columns = append(p.columns, dummy)
	p.byKey[dummy.Key()] = 0
	return p
}

// DummyID is always 0: the dummy column is seeded first and never
// removed.
const DummyID = 0

// Len returns the number of columns currently in the pool.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.columns)
}

// Get returns the column with the given id.
func (p *Pool) Get(id int) *StableSet {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.columns[id]
}

// Snapshot returns the current columns in pool order. The slice is a
// fresh copy: columns appended to the pool afterwards do not appear
// in it.
func (p *Pool) Snapshot() []*StableSet {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*StableSet, len(p.columns))
	copy(out, p.columns)
	return out
}

// Add appends ids as a new stable set for g if it isn't already
// present (by original-id set equality), and returns its column id
// plus whether it was newly created.
func (p *Pool) Add(ids []int, g *graph.Graph) (int, bool) {
	s := NewStableSet(ids, g)
	key := s.Key()

	p.mu.Lock()
	defer p.mu.Unlock()
	if existing, ok := p.byKey[key]; ok {
		return existing, false
	}
	s.ID = len(p.columns)
	p.columns = append(p.columns, s)
	p.byKey[key] = s.ID
	return s.ID, true
}

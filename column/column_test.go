package column

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/solver4all/sgcp-bp/graph"
)

func fixtureGraph() *graph.Graph {
	// Complete bipartite across clusters: V={0,1,2,3}, E={(0,2),(0,3),(1,2),(1,3)}.
	return graph.New(4, [][2]int{{0, 2}, {0, 3}, {1, 2}, {1, 3}}, [][]int{{0, 1}, {2, 3}})
}

func TestStableSetValidity(t *testing.T) {
	g := fixtureGraph()
	valid := NewStableSet([]int{0}, g)
	assert.True(t, valid.IsValidFor(g))

	invalid := NewStableSet([]int{0, 2}, g) // adjacent
	assert.False(t, invalid.IsValidFor(g))
}

func TestStableSetEquality(t *testing.T) {
	g := fixtureGraph()
	a := NewStableSet([]int{0, 1}, g)
	b := NewStableSet([]int{1, 0}, g)
	assert.True(t, a.Equal(b))
}

func TestDummyAlwaysIntersects(t *testing.T) {
	d := NewDummy()
	assert.True(t, d.IntersectsCluster(0))
	assert.True(t, d.IntersectsCluster(41))
}

func TestPoolDeduplicates(t *testing.T) {
	g := fixtureGraph()
	pool := NewPool()
	id1, isNew1 := pool.Add([]int{0}, g)
	id2, isNew2 := pool.Add([]int{0}, g)
	assert.True(t, isNew1)
	assert.False(t, isNew2)
	assert.Equal(t, id1, id2)
	assert.Equal(t, 2, pool.Len()) // dummy + {0}
}

func TestPoolIdsAreStable(t *testing.T) {
	g := fixtureGraph()
	pool := NewPool()
	id0, _ := pool.Add([]int{0}, g)
	id1, _ := pool.Add([]int{1}, g)
	assert.NotEqual(t, id0, id1)
	assert.Equal(t, id0, pool.Get(id0).ID)
	assert.Equal(t, id1, pool.Get(id1).ID)
}

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangleClusters() *Graph {
	// Triangle with singleton clusters: optimum colouring needs 3 colours.
	return New(3, [][2]int{{0, 1}, {1, 2}, {0, 2}}, [][]int{{0}, {1}, {2}})
}

func TestVerticesRemoveEmptyIsIsomorphic(t *testing.T) {
	g := triangleClusters()
	ng := g.VerticesRemove(nil)
	assert.Equal(t, g.N(), ng.N())
	for i := 0; i < g.N(); i++ {
		for j := 0; j < g.N(); j++ {
			assert.Equal(t, g.Adjacent(i, j), ng.Adjacent(i, j))
		}
	}
	assert.Equal(t, g.NumClusters(), ng.NumClusters())
}

func TestIsStableSetCompatible(t *testing.T) {
	g := triangleClusters()
	assert.True(t, g.IsStableSetCompatible([]int{0}))
	assert.False(t, g.IsStableSetCompatible([]int{0, 1})) // adjacent
	assert.False(t, g.IsStableSetCompatible([]int{5}))    // no representative
}

func TestVerticesLinkPrecondition(t *testing.T) {
	g := triangleClusters()
	_, err := g.VerticesLink(0, 1) // already adjacent
	require.Error(t, err)
}

func TestVerticesMergePreconditionAdjacent(t *testing.T) {
	g := triangleClusters()
	_, err := g.VerticesMerge(0, 1)
	require.Error(t, err)
}

func TestVerticesMergeUnionsRepresented(t *testing.T) {
	// Two independent clusters {0,1} and {2,3}, no edges: 0 and 2 can
	// merge (different clusters, not adjacent); the merged vertex
	// covers both clusters at once.
	g := New(4, nil, [][]int{{0, 1}, {2, 3}})
	ng, err := g.VerticesMerge(0, 2)
	require.NoError(t, err)
	merged, ok := ng.ByOriginal(0)
	require.True(t, ok)
	same, ok := ng.ByOriginal(2)
	require.True(t, ok)
	assert.Equal(t, merged.ID, same.ID)
	assert.True(t, ng.IsStableSetCompatible([]int{0, 2}))
}

func TestVerticesMergeSameClusterRejected(t *testing.T) {
	// Clusters are cliques, so same-cluster members are always
	// adjacent and can never satisfy the non-adjacency precondition;
	// VerticesMerge also rejects them explicitly up front.
	g := New(3, nil, [][]int{{0, 1, 2}})
	_, err := g.VerticesMerge(0, 1)
	require.Error(t, err)
}

func TestPreprocessTrivialCluster(t *testing.T) {
	// A triangle over three singleton clusters, plus an isolated
	// cluster {3,4} with no edges to the rest of the graph at all:
	// rule A drops {3,4} outright, leaving the triangle untouched.
	g := New(5, [][2]int{{0, 1}, {1, 2}, {0, 2}}, [][]int{{0}, {1}, {2}, {3, 4}})
	pg := Preprocess(g)
	assert.Equal(t, 3, pg.NumClusters())
	_, has3 := pg.ByOriginal(3)
	assert.False(t, has3)

	pg2 := Preprocess(pg)
	assert.Equal(t, pg.N(), pg2.N())
}

func TestPreprocessDominatedVertex(t *testing.T) {
	// spec.md §8 scenario 5: V={0,1,2}, E={(0,2)}, P=[{0,1},{2}].
	// N(0)={2}, N(1)={}, so N(1) ⊆ N(0): vertex 0 is dominated by 1
	// and removed, leaving {1,2} as the optimal stable set.
	g := New(3, [][2]int{{0, 2}}, [][]int{{0, 1}, {2}})
	pg := Preprocess(g)
	_, hasZero := pg.ByOriginal(0)
	assert.False(t, hasZero)
	assert.True(t, pg.IsStableSetCompatible([]int{1, 2}))

	pg2 := Preprocess(pg)
	assert.Equal(t, pg.N(), pg2.N())
}

func TestMetrics(t *testing.T) {
	g := triangleClusters()
	m := g.Metrics()
	assert.Equal(t, 3, m.Vertices)
	assert.Equal(t, 3, m.Edges)
	assert.Equal(t, 1, m.ComponentCount)
}

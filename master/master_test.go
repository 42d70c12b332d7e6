package master

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solver4all/sgcp-bp/column"
	"github.com/solver4all/sgcp-bp/graph"
)

func fixtureGraph() *graph.Graph {
	// Two clusters, no edges between clusters: {0,1} and {2,3}.
	return graph.New(4, nil, [][]int{{0, 1}, {2, 3}})
}

func TestLPSolveUsesDummyWhenPoolEmpty(t *testing.T) {
	g := fixtureGraph()
	pool := column.NewPool()
	o := New(g)
	sol, err := o.Solve(pool.Snapshot(), nil, false, 0, nil)
	require.NoError(t, err)
	assert.True(t, sol.UsesDummy())
}

func TestLPSolveCoversAllClustersWithRealColumns(t *testing.T) {
	g := fixtureGraph()
	pool := column.NewPool()
	pool.Add([]int{0}, g)
	pool.Add([]int{2}, g)
	o := New(g)
	sol, err := o.Solve(pool.Snapshot(), nil, false, 0, nil)
	require.NoError(t, err)
	assert.False(t, sol.UsesDummy())
	assert.Equal(t, 2, sol.ClusterDuals.Len())
}

func TestForbiddenColumnExcludedFromSolution(t *testing.T) {
	g := fixtureGraph()
	pool := column.NewPool()
	id, _ := pool.Add([]int{0}, g)
	pool.Add([]int{2}, g)
	o := New(g)
	sol, err := o.Solve(pool.Snapshot(), map[int]bool{id: true}, false, 0, nil)
	require.NoError(t, err)
	assert.NotContains(t, sol.Active, id)
}

package branch

import (
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solver4all/sgcp-bp/column"
	"github.com/solver4all/sgcp-bp/graph"
)

func fixtureGraph() *graph.Graph {
	// Proper SGCP: cluster {0,1} vs cluster {2,3}, complete bipartite.
	return graph.New(4, [][2]int{{0, 2}, {0, 3}, {1, 2}, {1, 3}}, [][]int{{0, 1}, {2, 3}})
}

func TestSelectVertexInClusterFires(t *testing.T) {
	g := fixtureGraph()
	c0 := column.NewStableSet([]int{0}, g)
	c1 := column.NewStableSet([]int{1}, g)
	c2 := column.NewStableSet([]int{2}, g)
	lp := []LPColumn{
		{Col: c0, Value: 0.5},
		{Col: c1, Value: 0.5},
		{Col: c2, Value: 1.0},
	}
	ok, colourV, colourOther := SelectVertexInCluster(g, lp)
	require.True(t, ok)
	assert.Equal(t, "remove", colourV.String())
	assert.Equal(t, "remove", colourOther.String())
}

func TestRemoveRuleForbidsColumnUsingRemovedVertex(t *testing.T) {
	g := fixtureGraph()
	rule := RemoveRule{Removed: mapset.NewSet[int](0)}
	assert.False(t, rule.Compatible([]int{0, 2}))
	assert.True(t, rule.Compatible([]int{1, 2}))
	child, err := rule.Apply(g)
	require.NoError(t, err)
	_, has0 := child.ByOriginal(0)
	assert.False(t, has0)
}

func TestLinkRuleForbidsColumnCoveringBoth(t *testing.T) {
	g := graph.New(4, nil, [][]int{{0, 1}, {2, 3}})
	rule := LinkRule{I: 0, J: 2}
	assert.False(t, rule.Compatible([]int{0, 2}))
	assert.True(t, rule.Compatible([]int{0, 3}))
	_, err := rule.Apply(g)
	require.NoError(t, err)
}

func TestMergeRuleForbidsColumnCoveringExactlyOne(t *testing.T) {
	g := graph.New(4, nil, [][]int{{0, 1}, {2, 3}})
	rule := MergeRule{I: 0, J: 2}
	assert.False(t, rule.Compatible([]int{0}))
	assert.False(t, rule.Compatible([]int{2}))
	assert.True(t, rule.Compatible([]int{0, 2}))
	assert.True(t, rule.Compatible([]int{1, 3}))
	_, err := rule.Apply(g)
	require.NoError(t, err)
}

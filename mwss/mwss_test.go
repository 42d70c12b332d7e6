package mwss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solver4all/sgcp-bp/graph"
)

func fixtureGraph() *graph.Graph {
	// Complete bipartite across clusters: V={0,1,2,3}, E={(0,2),(0,3),(1,2),(1,3)}.
	return graph.New(4, [][2]int{{0, 2}, {0, 3}, {1, 2}, {1, 3}}, [][]int{{0, 1}, {2, 3}})
}

func TestScaleWeightsSumsDualsPerCluster(t *testing.T) {
	g := fixtureGraph()
	weights, err := ScaleWeights(g, []float64{1.5, 2.5}, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(150), weights[0])
	assert.Equal(t, int64(150), weights[1])
	assert.Equal(t, int64(250), weights[2])
	assert.Equal(t, int64(250), weights[3])
}

func TestScaleWeightsOverflow(t *testing.T) {
	g := fixtureGraph()
	_, err := ScaleWeights(g, []float64{1e10, 1e10}, 1)
	require.Error(t, err)
}

func TestScaleWeightsSumsBothClustersAfterMerge(t *testing.T) {
	g := graph.New(4, nil, [][]int{{0, 1}, {2, 3}})
	merged, err := g.VerticesMerge(0, 2)
	require.NoError(t, err)
	weights, err := ScaleWeights(merged, []float64{1, 1}, 10)
	require.NoError(t, err)
	mv, ok := merged.ByOriginal(0)
	require.True(t, ok)
	assert.Equal(t, int64(20), weights[mv.ID])
}

func TestGreedySolverReturnsStableSet(t *testing.T) {
	g := fixtureGraph()
	s := GreedySolver{}
	ids, err := s.Solve(g, []int64{10, 5, 1, 1})
	require.NoError(t, err)
	require.NotEmpty(t, ids)
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			assert.False(t, g.Adjacent(ids[i], ids[j]))
		}
	}
}

func TestPriceComputesReducedCost(t *testing.T) {
	g := fixtureGraph()
	col, err := Price(GreedySolver{}, g, []float64{1, 1}, 100)
	require.NoError(t, err)
	assert.NotEmpty(t, col.OriginalIDs)
}

func TestPriceFailsWhenOracleFindsNothing(t *testing.T) {
	g := fixtureGraph()
	_, err := Price(zeroSolver{}, g, []float64{0, 0}, 100)
	require.Error(t, err)
}

type zeroSolver struct{}

func (zeroSolver) Solve(*graph.Graph, []int64) ([]int, error) { return nil, nil }

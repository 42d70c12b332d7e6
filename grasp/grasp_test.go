package grasp

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/solver4all/sgcp-bp/graph"
	"github.com/solver4all/sgcp-bp/mwss"
)

func fixtureGraph() *graph.Graph {
	edges := [][2]int{
		{0, 2}, {0, 3}, {0, 4}, {0, 5},
		{1, 2}, {1, 3}, {1, 4}, {1, 5},
		{2, 4}, {2, 5}, {3, 4}, {3, 5},
	}
	clusters := [][]int{{0, 1}, {2, 3}, {4, 5}}
	return graph.New(6, edges, clusters)
}

func TestRunFindsFeasibleColouring(t *testing.T) {
	g := fixtureGraph()
	res, err := Run(g, Params{
		Iterations: 4,
		Threads:    2,
		MaxWeight:  10,
		Solver:     &mwss.GreedySolver{},
		NewRand:    func(trial int) *rand.Rand { return rand.New(rand.NewSource(int64(trial) + 1)) },
	})
	assert.NoError(t, err)
	assert.True(t, res.Best.IsFeasible())
	assert.GreaterOrEqual(t, res.NumColours, 1)
}

func TestGreedyPeelCoversEveryCluster(t *testing.T) {
	g := fixtureGraph()
	rng := rand.New(rand.NewSource(7))
	cols, err := greedyPeel(g, &mwss.GreedySolver{}, rng, 5)
	assert.NoError(t, err)
	covered := make(map[int]bool)
	for _, col := range cols {
		for _, v := range col {
			covered[g.ClusterOf(v)] = true
		}
	}
	assert.Len(t, covered, g.NumClusters())
}

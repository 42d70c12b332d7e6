package initial

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/solver4all/sgcp-bp/graph"
	"github.com/solver4all/sgcp-bp/tabu"
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

func TestRunProducesFeasibleSeedAndPool(t *testing.T) {
	g := fixtureGraph()
	res := Run(g, Params{
		TabuIterationsPerTarget: 50,
		TabuTenure:              2,
		TabuScore:               tabu.ScoreSum,
		ALNSIterations:          20,
		ALNSTenure:              2,
		WorseAcceptP0:           0.3,
		WorseAcceptN:            20,
		Rng:                     func(worker int) *rand.Rand { return rand.New(rand.NewSource(int64(worker) + 10)) },
	})
	assert.NotZero(t, res.NumColours)
	assert.NotEmpty(t, res.SeedColumnIDs)
	assert.GreaterOrEqual(t, res.Pool.Len(), len(res.SeedColumnIDs))
	for _, id := range res.SeedColumnIDs {
		assert.NotNil(t, res.Pool.Get(id))
	}
}

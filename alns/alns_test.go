package alns

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/solver4all/sgcp-bp/colouring"
	"github.com/solver4all/sgcp-bp/graph"
)

func fixtureGraph() *graph.Graph {
	// 3 clusters of 2 mutually-adjacent-across-cluster vertices, plenty
	// of room for destroy/repair to find alternate stable sets.
	edges := [][2]int{
		{0, 2}, {0, 3}, {0, 4}, {0, 5},
		{1, 2}, {1, 3}, {1, 4}, {1, 5},
		{2, 4}, {2, 5}, {3, 4}, {3, 5},
	}
	clusters := [][]int{{0, 1}, {2, 3}, {4, 5}}
	return graph.New(6, edges, clusters)
}

func TestDestroyMovesCountIs17(t *testing.T) {
	assert.Len(t, DestroyMoves(), 17)
}

func TestRepairMovesCountIs9(t *testing.T) {
	assert.Len(t, RepairMoves(), 9)
}

func TestTabuMemoryBlocksWithinTenure(t *testing.T) {
	m := NewMemory(3)
	m.Block(5, 1, 0)
	assert.True(t, m.IsBlocked(5, 1, 2))
	assert.False(t, m.IsBlocked(5, 1, 3))
}

func TestRunProducesFeasibleColouring(t *testing.T) {
	g := fixtureGraph()
	seed := colouring.Greedy(g)
	res := Run(seed, Params{
		MaxIterations: 25,
		TabuTenure:    2,
		Accept:        AcceptNonDeteriorating,
		Rng:           rand.New(rand.NewSource(1)),
	})
	assert.True(t, res.Best.IsFeasible())
	assert.LessOrEqual(t, res.NumColours, seed.NumColours())
}

func TestWorseAcceptDecaysToZero(t *testing.T) {
	rule := WorseAccept(1.0, 100)
	// At iter 0 probability is 0, so a strictly-worse trial is rejected.
	assert.False(t, rule(5, 3, 0, 100))
}

func TestAcceptEverythingAlwaysTrue(t *testing.T) {
	assert.True(t, AcceptEverything(9, 1, 0, 10))
}

package tabu

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/solver4all/sgcp-bp/colouring"
	"github.com/solver4all/sgcp-bp/graph"
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

func TestRunOnSuccessDropsExactlyOneColour(t *testing.T) {
	g := fixtureGraph()
	seed := colouring.Greedy(g)
	res := Run(seed, Params{
		MaxIterations: 200,
		Tenure:        3,
		Score:         ScoreSum,
		Rng:           rand.New(rand.NewSource(1)),
	})
	if res.Success {
		assert.Equal(t, seed.NumColours()-1, res.Colouring.NumColours())
		assert.True(t, res.Colouring.IsFeasible())
	}
}

func TestRunReturnsUnchangedSeedOnFailure(t *testing.T) {
	g := graph.New(2, [][2]int{{0, 1}}, [][]int{{0}, {1}})
	seed := colouring.Greedy(g) // needs 2 colours, cannot drop to 1
	res := Run(seed, Params{MaxIterations: 20, Tenure: 2, Score: ScoreMin, Rng: rand.New(rand.NewSource(2))})
	assert.False(t, res.Success)
	assert.Same(t, seed, res.Colouring)
}

func TestAggregateIsZeroWithNoDisplacement(t *testing.T) {
	g := fixtureGraph()
	c := colouring.New(g)
	assert.Equal(t, 0, aggregate(c, nil, ScoreMin))
	assert.Equal(t, 0, aggregate(c, nil, ScoreSum))
}

package colouring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/solver4all/sgcp-bp/graph"
)

func triangleClusters() *graph.Graph {
	return graph.New(3, [][2]int{{0, 1}, {1, 2}, {0, 2}}, [][]int{{0}, {1}, {2}})
}

func TestGreedyProducesFeasibleColouring(t *testing.T) {
	g := triangleClusters()
	c := Greedy(g)
	assert.True(t, c.IsFeasible())
	assert.Equal(t, 3, c.NumColours())
}

func TestAssignAndUncolourRoundtrip(t *testing.T) {
	g := triangleClusters()
	c := New(g)
	id := c.NewColour(0)
	assert.True(t, c.IsColoured(0))
	c.Uncolour(0)
	assert.False(t, c.IsColoured(0))
	assert.Equal(t, 0, c.NumColours())
	_ = id
}

func TestCanPlaceRejectsAdjacentVertex(t *testing.T) {
	g := triangleClusters()
	c := New(g)
	c.NewColour(0)
	assert.False(t, c.CanPlace(0, 1))
}

func TestDecreaseByOneOnDisconnectedPair(t *testing.T) {
	// Two disjoint edges: 0-1 and 2-3, singleton clusters. Greedy
	// colours it with 2 colours already; force a 3-colour state and
	// verify decrease-by-one recovers 2.
	g := graph.New(4, [][2]int{{0, 1}, {2, 3}}, [][]int{{0}, {1}, {2}, {3}})
	c := New(g)
	id0 := c.NewColour(0)
	c.NewColour(1)
	c.NewColour(2)
	c.Assign(id0, 3)
	trial, ok := c.TryDecreaseByOne()
	assert.True(t, ok)
	assert.Equal(t, 2, trial.NumColours())
}

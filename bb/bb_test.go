package bb

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solver4all/sgcp-bp/column"
	"github.com/solver4all/sgcp-bp/graph"
	"github.com/solver4all/sgcp-bp/master"
	"github.com/solver4all/sgcp-bp/mwss"
)

func triangleGraph() *graph.Graph {
	// Plain colouring (singleton clusters) triangle: optimum is 3 colours,
	// so the fractional LP relaxation should still resolve to an integer
	// root once pricing exhausts improving columns.
	return graph.New(3, [][2]int{{0, 1}, {1, 2}, {0, 2}}, [][]int{{0}, {1}, {2}})
}

func TestNodeSolveTerminatesOnTriangle(t *testing.T) {
	g := triangleGraph()
	pool := column.NewPool()
	oracle := master.New(g)
	solver := mwss.GreedySolver{}
	root := &Node{Graph: g, BoundFromFather: math.Inf(-1)}
	cfg := NodeConfig{Multiplier: 1000, PriceEps: 1e-6, LPTimeLimit: 5}
	res, err := root.Solve(pool, oracle, solver, cfg, time.Now().Add(5*time.Second))
	require.NoError(t, err)
	assert.False(t, res.Infeasible)
}

func TestTreeRunFindsFeasibleColouring(t *testing.T) {
	g := triangleGraph()
	pool := column.NewPool()
	oracle := master.New(g)
	solver := mwss.GreedySolver{}
	cfg := Config{
		Strategy: BestFirst,
		Node:     NodeConfig{Multiplier: 1000, PriceEps: 1e-6, LPTimeLimit: 5},
		Deadline: time.Now().Add(10 * time.Second),
	}
	tree := NewTree(g, pool, oracle, solver, cfg)
	result, err := tree.Run()
	require.NoError(t, err)
	assert.True(t, result.Feasible)
}

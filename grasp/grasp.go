// Package grasp implements the greedy-randomized-adaptive-search
// primal heuristic: each trial draws random vertex weights, greedily
// peels off maximum-weight stable sets (removing their clusters from
// the working graph) until every cluster is covered, then polishes
// the resulting colouring with decrease-by-one until it stops
// improving.
package grasp

import (
	"math/rand"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/solver4all/sgcp-bp/colouring"
	"github.com/solver4all/sgcp-bp/errs"
	"github.com/solver4all/sgcp-bp/graph"
	"github.com/solver4all/sgcp-bp/mwss"
)

// Params configures a GRASP run.
type Params struct {
	Iterations int
	Threads    int
	MaxWeight  int64
	Solver     mwss.Solver
	NewRand    func(trial int) *rand.Rand
}

// Result is the smallest colouring found across every trial.
type Result struct {
	Best       *colouring.Colouring
	NumColours int
}

// Run drives Iterations trials in batches of Threads, keeping the
// smallest feasible colouring seen.
func Run(g *graph.Graph, p Params) (*Result, error) {
	var mu sync.Mutex
	var best *colouring.Colouring

	consider := func(c *colouring.Colouring) {
		mu.Lock()
		defer mu.Unlock()
		if best == nil || c.NumColours() < best.NumColours() {
			best = c
		}
	}

	for start := 0; start < p.Iterations; start += p.Threads {
		end := start + p.Threads
		if end > p.Iterations {
			end = p.Iterations
		}
		var eg errgroup.Group
		for t := start; t < end; t++ {
			t := t
			eg.Go(func() error {
				c, err := oneTrial(g, p, t)
				if err != nil {
					return err
				}
				consider(c)
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	}

	if best == nil {
		return nil, errs.ErrPricingFailed
	}
	return &Result{Best: best, NumColours: best.NumColours()}, nil
}

func oneTrial(g *graph.Graph, p Params, trialIdx int) (*colouring.Colouring, error) {
	rng := p.NewRand(trialIdx)
	columns, err := greedyPeel(g, p.Solver, rng, p.MaxWeight)
	if err != nil {
		return nil, err
	}

	c := colouring.New(g)
	for _, col := range columns {
		id := c.NewColour(col[0])
		for _, v := range col[1:] {
			c.Assign(id, v)
		}
	}

	for {
		improved, ok := c.TryDecreaseByOne()
		if !ok {
			break
		}
		c = improved
	}
	return c, nil
}

// greedyPeel repeatedly solves MWSS on the working graph under random
// weights, removes every cluster the winning stable set touches, and
// stops once no cluster remains.
func greedyPeel(g0 *graph.Graph, solver mwss.Solver, rng *rand.Rand, maxWeight int64) ([][]int, error) {
	g := g0
	var columns [][]int
	for g.NumClusters() > 0 {
		weights := make([]int64, g.N())
		for v := range weights {
			weights[v] = 1 + rng.Int63n(maxWeight)
		}
		ids, err := solver.Solve(g, weights)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return nil, errs.ErrPricingFailed
		}

		touched := make(map[int]bool)
		var original []int
		for _, id := range ids {
			for orig := range g.Vertex(id).Represented.Iter() {
				original = append(original, orig)
			}
			touched[g.ClusterOf(id)] = true
		}
		columns = append(columns, original)

		var removeIDs []int
		for k := range touched {
			removeIDs = append(removeIDs, g.ClusterMembers(k)...)
		}
		g = g.VerticesRemove(removeIDs)
	}
	return columns, nil
}

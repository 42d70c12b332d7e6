// Package initial builds the feasible seed colouring and column pool
// that primes a branch-and-price run: three heuristics race from a
// common greedy start and their combined stable sets become the
// initial pool.
package initial

import (
	"math/rand"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/solver4all/sgcp-bp/alns"
	"github.com/solver4all/sgcp-bp/colouring"
	"github.com/solver4all/sgcp-bp/column"
	"github.com/solver4all/sgcp-bp/graph"
	"github.com/solver4all/sgcp-bp/tabu"
)

// Params configures the three workers. Rng(i) must return an
// independent generator for worker i (0: tabu, 1: ALNS worse-accept,
// 2: ALNS non-deteriorating).
type Params struct {
	TabuIterationsPerTarget int64
	TabuTenure              int64
	TabuScore               tabu.Score

	ALNSIterations int64
	ALNSTenure     int64
	WorseAcceptP0  float64
	WorseAcceptN   int64

	ALNSNewBestMult      float64
	ALNSNewImprovingMult float64
	ALNSWorseningMult    float64
	ALNSDMoves           [17]int
	ALNSRMoves           [9]int
	ALNSLocal            alns.LocalSearch

	Rng func(worker int) *rand.Rand
}

// Result is the union pool of every worker's columns plus the
// winning seed's column ids, reported in pool order for a MIP
// warm-start.
type Result struct {
	Pool          *column.Pool
	SeedColumnIDs []int
	NumColours    int
}

// Run launches the three workers, joins them, and unions their
// distinct stable sets into a fresh pool.
func Run(g *graph.Graph, p Params) *Result {
	seed := colouring.Greedy(g)

	var tabuBest, worseBest, nonDetBest *colouring.Colouring
	var eg errgroup.Group

	eg.Go(func() error {
		tabuBest = runTabuChain(seed, p)
		return nil
	})
	eg.Go(func() error {
		worseBest = alns.Run(seed, alns.Params{
			MaxIterations:    p.ALNSIterations,
			TabuTenure:       p.ALNSTenure,
			Accept:           alns.WorseAccept(p.WorseAcceptP0, p.WorseAcceptN),
			Rng:              p.Rng(1),
			NewBestMult:      p.ALNSNewBestMult,
			NewImprovingMult: p.ALNSNewImprovingMult,
			WorseningMult:    p.ALNSWorseningMult,
			DMoves:           p.ALNSDMoves,
			RMoves:           p.ALNSRMoves,
			Local:            p.ALNSLocal,
		}).Best
		return nil
	})
	eg.Go(func() error {
		nonDetBest = alns.Run(seed, alns.Params{
			MaxIterations:    p.ALNSIterations,
			TabuTenure:       p.ALNSTenure,
			Accept:           alns.AcceptNonDeteriorating,
			Rng:              p.Rng(2),
			NewBestMult:      p.ALNSNewBestMult,
			NewImprovingMult: p.ALNSNewImprovingMult,
			WorseningMult:    p.ALNSWorseningMult,
			DMoves:           p.ALNSDMoves,
			RMoves:           p.ALNSRMoves,
			Local:            p.ALNSLocal,
		}).Best
		return nil
	})
	_ = eg.Wait() // none of the three workers can fail

	// Fixed tie-break order: tabu, then ALNS worse-accept, then ALNS
	// non-deteriorating.
	candidates := []*colouring.Colouring{tabuBest, worseBest, nonDetBest}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.NumColours() < best.NumColours() {
			best = c
		}
	}

	pool := column.NewPool()
	for _, c := range candidates {
		for _, col := range c.ToColumns() {
			pool.Add(col, g)
		}
	}

	var seedIDs []int
	for _, col := range best.ToColumns() {
		id, _ := pool.Add(col, g)
		seedIDs = append(seedIDs, id)
	}
	sort.Ints(seedIDs)

	return &Result{Pool: pool, SeedColumnIDs: seedIDs, NumColours: best.NumColours()}
}

// runTabuChain repeatedly targets one fewer colour than the current
// best until a macro-iteration fails, returning the smallest
// colouring reached.
func runTabuChain(seed *colouring.Colouring, p Params) *colouring.Colouring {
	current := seed
	for {
		res := tabu.Run(current, tabu.Params{
			MaxIterations: p.TabuIterationsPerTarget,
			Tenure:        p.TabuTenure,
			Score:         p.TabuScore,
			Rng:           p.Rng(0),
		})
		if !res.Success {
			return current
		}
		current = res.Colouring
	}
}

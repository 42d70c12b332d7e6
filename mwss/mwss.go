// Package mwss adapts dual prices from the master LP into vertex
// weights, calls an opaque Maximum-Weight Stable-Set solver, and
// translates the result back into original-vertex-id space (spec.md
// §4.3). The MWSS solver itself is an external collaborator: this
// package defines the Solver interface the pricing loop depends on
// and ships one reference implementation good enough to drive
// correct branch-and-price runs end to end.
package mwss

import (
	"math"

	"github.com/solver4all/sgcp-bp/errs"
	"github.com/solver4all/sgcp-bp/graph"
)

// Solver is the opaque MWSS oracle: given integer vertex weights over
// g's current id space, return the ids of a maximum-weight stable
// set. A nil/empty result with err == nil means "no positive-weight
// stable set found", which pricing treats as ErrPricingFailed.
type Solver interface {
	Solve(g *graph.Graph, weights []int64) ([]int, error)
}

// ScaleWeights multiplies dual prices by multiplier and rounds to the
// nearest integer, checking spec.md §8's overflow property: for every
// v, multiplier*dualSum(v) must stay below the solver's integer
// range. Vertices are weighted by the SUM of duals over the clusters
// of their represented original ids (spec.md §4.3).
func ScaleWeights(g *graph.Graph, dualPerCluster []float64, multiplier int) ([]int64, error) {
	weights := make([]int64, g.N())
	for v := 0; v < g.N(); v++ {
		// weight(v) = sum of duals over clusters of v's represented ids.
		// A vertex belongs to exactly one cluster per spec.md §3 in the
		// unmerged case, and to every cluster it was folded into after
		// a Ryan-Foster merge (graph.VerticesMerge registers it in
		// both). We therefore sum over every cluster whose membership
		// bitset contains v, not just ClusterOf(v).
		sum := 0.0
		for _, k := range g.ClustersOf(v) {
			sum += dualPerCluster[k]
		}
		scaled := float64(multiplier) * sum
		if math.Abs(scaled) >= math.MaxInt32 {
			return nil, errs.Precondition("mwss: weight scaling overflow")
		}
		weights[v] = int64(math.Round(scaled))
	}
	return weights, nil
}

// Column is a priced-out stable set already translated into original
// id space, with its reduced cost.
type Column struct {
	OriginalIDs []int
	ReducedCost float64
}

// Price runs the MWSS oracle on g weighted by dualPerCluster and
// returns the resulting column with its reduced cost rc = weight - 1
// (spec.md §4.3's GLOSSARY entry). Returns errs.ErrPricingFailed when
// the oracle finds nothing.
func Price(solver Solver, g *graph.Graph, dualPerCluster []float64, multiplier int) (*Column, error) {
	weights, err := ScaleWeights(g, dualPerCluster, multiplier)
	if err != nil {
		return nil, err
	}
	currentIDs, err := solver.Solve(g, weights)
	if err != nil {
		return nil, err
	}
	if len(currentIDs) == 0 {
		return nil, errs.ErrPricingFailed
	}

	rawWeight := 0.0
	for _, id := range currentIDs {
		rawWeight += float64(weights[id]) / float64(multiplier)
	}

	original := make([]int, 0, len(currentIDs))
	for _, id := range currentIDs {
		for orig := range g.Vertex(id).Represented.Iter() {
			original = append(original, orig)
		}
	}

	return &Column{OriginalIDs: original, ReducedCost: rawWeight - 1}, nil
}

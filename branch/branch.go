// Package branch implements the two branching rules that turn a
// fractional branch-and-price node into two children: vertex-in-
// cluster branching and Ryan-Foster edge branching, plus the child
// graph transforms and column-compatibility checks they imply.
package branch

import (
	"math"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/solver4all/sgcp-bp/column"
	"github.com/solver4all/sgcp-bp/errs"
	"github.com/solver4all/sgcp-bp/graph"
)

const fracEps = 1e-6

// Rule is a branching decision captured against original vertex ids,
// so it can be applied to any descendant graph and used to test
// whether a pool column survives into the child it produced.
type Rule interface {
	// Apply returns the child graph obtained by enforcing this rule
	// on g.
	Apply(g *graph.Graph) (*graph.Graph, error)
	// Compatible reports whether a column (given as original vertex
	// ids) may still be used in the child this rule produces.
	Compatible(ids []int) bool
	String() string
}

// RemoveRule colours every vertex in Removed elsewhere, i.e. forbids
// any column that uses one of them in the child.
type RemoveRule struct {
	Removed mapset.Set[int]
}

func (r RemoveRule) Apply(g *graph.Graph) (*graph.Graph, error) {
	cur := make([]int, 0, r.Removed.Cardinality())
	for orig := range r.Removed.Iter() {
		if id := g.RepresentativeOf(orig); id >= 0 {
			cur = append(cur, id)
		}
	}
	return g.VerticesRemove(cur), nil
}

func (r RemoveRule) Compatible(ids []int) bool {
	for _, id := range ids {
		if r.Removed.Contains(id) {
			return false
		}
	}
	return true
}

func (r RemoveRule) String() string { return "remove" }

// LinkRule forbids I and J from sharing a colour.
type LinkRule struct {
	I, J int
}

func (r LinkRule) Apply(g *graph.Graph) (*graph.Graph, error) {
	i, j := g.RepresentativeOf(r.I), g.RepresentativeOf(r.J)
	if i < 0 || j < 0 {
		return nil, errs.Precondition("LinkRule: vertex no longer present")
	}
	return g.VerticesLink(i, j)
}

func (r LinkRule) Compatible(ids []int) bool {
	hasI, hasJ := false, false
	for _, id := range ids {
		if id == r.I {
			hasI = true
		}
		if id == r.J {
			hasJ = true
		}
	}
	return !(hasI && hasJ)
}

func (r LinkRule) String() string { return "link" }

// MergeRule forces I and J to share a colour. A column covering
// exactly one of them can no longer be used, since selecting either
// merged vertex now satisfies both clusters' covering constraints at
// once (spec's boundary case for merged-branch correctness).
type MergeRule struct {
	I, J int
}

func (r MergeRule) Apply(g *graph.Graph) (*graph.Graph, error) {
	i, j := g.RepresentativeOf(r.I), g.RepresentativeOf(r.J)
	if i < 0 || j < 0 {
		return nil, errs.Precondition("MergeRule: vertex no longer present")
	}
	return g.VerticesMerge(i, j)
}

func (r MergeRule) Compatible(ids []int) bool {
	hasI, hasJ := false, false
	for _, id := range ids {
		if id == r.I {
			hasI = true
		}
		if id == r.J {
			hasJ = true
		}
	}
	return hasI == hasJ
}

func (r MergeRule) String() string { return "merge" }

// LPColumn pairs a column with its LP primal value, the minimum a
// branching selector needs from a master solve.
type LPColumn struct {
	Col   *column.StableSet
	Value float64
}

func isFractional(x float64) bool {
	return x > fracEps && x < 1-fracEps
}

// SelectVertexInCluster implements rule 1 of the branching policy: it
// only applies when the graph is a proper SGCP instance (some cluster
// has more than one vertex). It returns the two children in order
// (colour v*, colour someone else).
func SelectVertexInCluster(g *graph.Graph, lp []LPColumn) (ok bool, colourV, colourOther Rule) {
	proper := false
	for k := 0; k < g.NumClusters(); k++ {
		if g.ClusterSize(k) > 1 {
			proper = true
			break
		}
	}
	if !proper {
		return false, nil, nil
	}

	coverage := coveragePerVertex(g, lp)

	bestCluster, bestFracCount, bestSize := -1, -1, math.MaxInt32
	for k := 0; k < g.NumClusters(); k++ {
		members := g.ClusterMembers(k)
		fracCount := 0
		for _, v := range members {
			if isFractional(coverage[v]) {
				fracCount++
			}
		}
		if fracCount == 0 {
			continue
		}
		size := g.ClusterSize(k)
		if fracCount > bestFracCount ||
			(fracCount == bestFracCount && size < bestSize) ||
			(fracCount == bestFracCount && size == bestSize && k < bestCluster) {
			bestCluster, bestFracCount, bestSize = k, fracCount, size
		}
	}
	if bestCluster < 0 {
		return false, nil, nil
	}

	members := g.ClusterMembers(bestCluster)
	bestVertex, bestCoverage := -1, -1.0
	for _, v := range members {
		if coverage[v] > bestCoverage {
			bestVertex, bestCoverage = v, coverage[v]
		}
	}

	rest := mapset.NewSet[int]()
	for _, v := range members {
		if v == bestVertex {
			continue
		}
		rest = rest.Union(g.Vertex(v).Represented)
	}
	vStar := mapset.NewSet[int]()
	vStar = vStar.Union(g.Vertex(bestVertex).Represented)

	return true, RemoveRule{Removed: rest}, RemoveRule{Removed: vStar}
}

func coveragePerVertex(g *graph.Graph, lp []LPColumn) []float64 {
	cov := make([]float64, g.N())
	for _, e := range lp {
		if e.Col.Dummy {
			continue
		}
		for _, orig := range e.Col.IDs() {
			v := g.RepresentativeOf(orig)
			if v >= 0 {
				cov[v] += e.Value
			}
		}
	}
	return cov
}

// SelectRyanFoster implements rule 2: find the most-fractional basic
// column, a vertex it covers that a second basic column also covers,
// then a vertex covered by exactly one of the two that is
// non-adjacent to the first. Returns ok=false if no such pair exists.
func SelectRyanFoster(g *graph.Graph, lp []LPColumn) (ok bool, merge, link Rule) {
	fractional := make([]LPColumn, 0, len(lp))
	nonzero := make([]LPColumn, 0, len(lp))
	for _, e := range lp {
		if e.Col.Dummy || e.Value <= fracEps {
			continue
		}
		nonzero = append(nonzero, e)
		if isFractional(e.Value) {
			fractional = append(fractional, e)
		}
	}
	if len(fractional) == 0 {
		return false, nil, nil
	}

	// "Most fractional" is the largest LP value strictly below 1, not
	// the value closest to 0.5.
	c1Idx := 0
	bestValue := fractional[0].Value
	for idx, e := range fractional {
		if e.Value > bestValue {
			bestValue, c1Idx = e.Value, idx
		}
	}
	c1 := fractional[c1Idx]

	for _, origI := range c1.Col.IDs() {
		vi := g.RepresentativeOf(origI)
		if vi < 0 {
			continue
		}
		// c2 is drawn from every column with positive value, not just
		// the fractional ones: an integral column can still share a
		// vertex with the fractional c1 and yield a valid pair.
		for _, e := range nonzero {
			if e.Col == c1.Col || !e.Col.Contains(origI) {
				continue
			}
			c2 := e
			for _, origJ := range unionIDs(c1.Col, c2.Col) {
				if origJ == origI {
					continue
				}
				inC1 := c1.Col.Contains(origJ)
				inC2 := c2.Col.Contains(origJ)
				if inC1 == inC2 {
					continue // must be covered by exactly one
				}
				vj := g.RepresentativeOf(origJ)
				if vj < 0 || g.Adjacent(vi, vj) {
					continue
				}
				return true, MergeRule{I: origI, J: origJ}, LinkRule{I: origI, J: origJ}
			}
		}
	}
	return false, nil, nil
}

func unionIDs(a, b *column.StableSet) []int {
	seen := mapset.NewSet[int]()
	seen = seen.Union(mapset.NewSet[int](a.IDs()...))
	seen = seen.Union(mapset.NewSet[int](b.IDs()...))
	return seen.ToSlice()
}

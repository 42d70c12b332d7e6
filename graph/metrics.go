package graph

import (
	"fmt"

	lvcore "github.com/katalvlaran/lvlath/graph/core"
	lvalgo "github.com/katalvlaran/lvlath/graph/algorithms"
)

// Metrics computes structural statistics for the results file
// (spec.md §6): vertex/edge/cluster counts, average degree, and the
// number of connected components. Components are counted by
// projecting this graph onto a github.com/katalvlaran/lvlath
// graph/core.Graph and repeatedly running its BFS until every vertex
// has been visited — this keeps lvlath entirely off the pricing hot
// path while reusing a real graph library for the one place a plain
// traversal is genuinely useful: end-of-run reporting.
func (g *Graph) Metrics() Metrics {
	lv := lvcore.NewGraph(false, false)
	for i := 0; i < g.N(); i++ {
		lv.AddVertex(&lvcore.Vertex{ID: vid(i)})
	}
	edges := 0
	for i := 0; i < g.N(); i++ {
		for _, j := range g.Neighbours(i) {
			if j > i {
				lv.AddEdge(vid(i), vid(j), 1)
				edges++
			}
		}
	}

	visited := make(map[string]bool, g.N())
	components := 0
	for i := 0; i < g.N(); i++ {
		id := vid(i)
		if visited[id] {
			continue
		}
		components++
		res, err := lvalgo.BFS(lv, id, nil)
		if err != nil {
			continue
		}
		for _, v := range res.Order {
			visited[v.ID] = true
		}
	}

	avgDeg := 0.0
	if g.N() > 0 {
		avgDeg = 2 * float64(edges) / float64(g.N())
	}

	return Metrics{
		Vertices:       g.N(),
		Edges:          edges,
		Clusters:       g.NumClusters(),
		AvgDegree:      avgDeg,
		ComponentCount: components,
	}
}

func vid(i int) string { return fmt.Sprintf("v%d", i) }

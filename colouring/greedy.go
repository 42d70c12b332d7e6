package colouring

import "github.com/solver4all/sgcp-bp/graph"

// Greedy builds a feasible starting colouring by visiting clusters in
// index order and, for each, picking any member compatible with the
// lowest-indexed existing colour, opening a new colour when none fit.
// It is the common seed the initial-solution generator's three
// workers all start from.
func Greedy(g *graph.Graph) *Colouring {
	c := New(g)
	colours := []int{}
	for k := 0; k < g.NumClusters(); k++ {
		members := g.ClusterMembers(k)
		placed := false
		for _, id := range colours {
			for _, cur := range members {
				if c.compatible(id, representOne(g, cur)) {
					c.Assign(id, representOne(g, cur))
					placed = true
					break
				}
			}
			if placed {
				break
			}
		}
		if !placed {
			v := representOne(g, members[0])
			id := c.NewColour(v)
			colours = append(colours, id)
		}
	}
	return c
}

// representOne returns one original id represented by current vertex
// cur — any one, since they are interchangeable for compatibility
// checks against a current-id adjacency test.
func representOne(g *graph.Graph, cur int) int {
	for orig := range g.Vertex(cur).Represented.Iter() {
		return orig
	}
	return -1
}

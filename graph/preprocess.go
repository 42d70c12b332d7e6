package graph

// Preprocess applies the two reduction rules of spec.md §3 to a
// fixpoint: rule A removes a cluster outright when one of its members
// has no external edges (it is trivially colourable on its own);
// rule B removes a cluster-mate v dominated by a same-cluster mate u
// (N(u) ⊆ N(v)). Both rules are re-applied until neither fires, which
// is what makes running Preprocess on its own output a no-op
// (spec.md §8's idempotence property).
func Preprocess(g *Graph) *Graph {
	for {
		if trivial, ok := findTriviallyColourableCluster(g); ok {
			g = g.VerticesRemove(g.ClusterMembers(trivial))
			continue
		}
		if dominated, ok := findDominatedVertex(g); ok {
			g = g.VerticesRemove([]int{dominated})
			continue
		}
		return g
	}
}

// findTriviallyColourableCluster returns a cluster index with a
// member that has no edges leaving the cluster.
func findTriviallyColourableCluster(g *Graph) (int, bool) {
	for k := 0; k < g.NumClusters(); k++ {
		members := g.ClusterMembers(k)
		for _, v := range members {
			if !hasExternalEdge(g, v, k) {
				return k, true
			}
		}
	}
	return 0, false
}

func hasExternalEdge(g *Graph, v, cluster int) bool {
	for _, nb := range g.Neighbours(v) {
		if g.ClusterOf(nb) != cluster {
			return true
		}
	}
	return false
}

// findDominatedVertex returns a vertex v such that some cluster-mate
// u satisfies N(u) ⊆ N(v), so v is dominated and safe to remove.
// Neighbourhoods here are EXTERNAL only (edges leaving the cluster):
// cluster-mates are always mutually adjacent by construction (each
// cluster is a clique), so comparing raw adjacency would make every
// pair of mates look mutually "dominating" via that edge alone.
func findDominatedVertex(g *Graph) (int, bool) {
	for k := 0; k < g.NumClusters(); k++ {
		members := g.ClusterMembers(k)
		for _, u := range members {
			nu := externalNeighbourSet(g, u, k)
			for _, v := range members {
				if u == v {
					continue
				}
				if isSubsetOf(nu, externalNeighbourSet(g, v, k)) {
					return v, true
				}
			}
		}
	}
	return 0, false
}

func externalNeighbourSet(g *Graph, v, cluster int) map[int]struct{} {
	set := make(map[int]struct{})
	for _, nb := range g.Neighbours(v) {
		if g.ClusterOf(nb) != cluster {
			set[nb] = struct{}{}
		}
	}
	return set
}

func isSubsetOf(a, b map[int]struct{}) bool {
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

package graph

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/solver4all/sgcp-bp/errs"
)

// VerticesRemove returns a new graph with the given current ids
// deleted. Remaining vertices keep their Represented sets; ids are
// densely reassigned. Clusters lose the removed members; a cluster
// left empty is dropped entirely.
func (g *Graph) VerticesRemove(ids []int) *Graph {
	removed := mapset.NewSet[int](ids...)
	var newVertices []Vertex
	oldToNew := make(map[int]int, g.N())
	for old := 0; old < g.N(); old++ {
		if removed.Contains(old) {
			continue
		}
		oldToNew[old] = len(newVertices)
		newVertices = append(newVertices, Vertex{ID: len(newVertices), Represented: g.vertices[old].Represented.Clone()})
	}

	ng := &Graph{
		vertices:   newVertices,
		adj:        make([]Bitset, len(newVertices)),
		clusterOfV: make([]int, len(newVertices)),
	}
	for i := range ng.adj {
		ng.adj[i] = NewBitset(len(newVertices))
	}
	for old := 0; old < g.N(); old++ {
		nu, ok := oldToNew[old]
		if !ok {
			continue
		}
		for _, oldNbr := range g.adj[old].Bits() {
			if nv, ok := oldToNew[oldNbr]; ok {
				ng.adj[nu].Set(nv)
			}
		}
	}

	for _, oldMembers := range g.clusters {
		var kept []int
		for _, old := range oldMembers.Bits() {
			if nu, ok := oldToNew[old]; ok {
				kept = append(kept, nu)
			}
		}
		if len(kept) == 0 {
			continue // preprocessing rule A: cluster fully consumed
		}
		bs := NewBitset(len(newVertices))
		k := len(ng.clusters)
		for _, v := range kept {
			bs.Set(v)
			ng.clusterOfV[v] = k
		}
		ng.clusters = append(ng.clusters, bs)
	}

	ng.buildOriginalIndex()
	return ng
}

// VerticesLink returns a copy of g with edge (i, j) added. i and j
// must not already be adjacent (spec.md §4.1 precondition).
func (g *Graph) VerticesLink(i, j int) (*Graph, error) {
	if g.Adjacent(i, j) {
		return nil, errs.Precondition("VerticesLink: vertices already adjacent")
	}
	ng := g.clone()
	ng.addEdge(i, j)
	return ng, nil
}

// VerticesMerge returns a copy of g where i and j are replaced by a
// single vertex representing the union of their Represented sets.
// Every edge incident to i or j becomes incident to the merged
// vertex (duplicates dropped). i and j must not be adjacent (spec.md
// §4.1 precondition: same-colour must be feasible) — which, since
// every cluster is a clique, also means i and j can never share a
// cluster: they must come from two different clusters. The merged
// vertex is registered in BOTH original clusters' membership, so
// selecting it in a stable set covers both clusters' constraints at
// once, matching Ryan-Foster's "force i and j to the same colour".
func (g *Graph) VerticesMerge(i, j int) (*Graph, error) {
	if g.Adjacent(i, j) {
		return nil, errs.Precondition("VerticesMerge: vertices are adjacent")
	}
	if g.ClusterOf(i) == g.ClusterOf(j) {
		return nil, errs.Precondition("VerticesMerge: vertices belong to the same cluster")
	}

	lo, hi := i, j
	if lo > hi {
		lo, hi = hi, lo
	}

	var newVertices []Vertex
	oldToNew := make(map[int]int, g.N())
	mergedID := -1
	for old := 0; old < g.N(); old++ {
		if old == hi {
			continue // hi is folded into lo's merged vertex
		}
		nu := len(newVertices)
		oldToNew[old] = nu
		if old == lo {
			mergedID = nu
			newVertices = append(newVertices, Vertex{
				ID:          nu,
				Represented: g.vertices[lo].Represented.Clone().Union(g.vertices[hi].Represented),
			})
			continue
		}
		newVertices = append(newVertices, Vertex{ID: nu, Represented: g.vertices[old].Represented.Clone()})
	}
	oldToNew[hi] = mergedID

	ng := &Graph{
		vertices:   newVertices,
		adj:        make([]Bitset, len(newVertices)),
		clusterOfV: make([]int, len(newVertices)),
	}
	for i := range ng.adj {
		ng.adj[i] = NewBitset(len(newVertices))
	}
	for old := 0; old < g.N(); old++ {
		nu := oldToNew[old]
		for _, oldNbr := range g.adj[old].Bits() {
			nv := oldToNew[oldNbr]
			if nv == nu {
				continue // both endpoints folded into the merged vertex
			}
			ng.adj[nu].Set(nv)
		}
	}

	for _, oldMembers := range g.clusters {
		seen := make(map[int]bool)
		var kept []int
		for _, old := range oldMembers.Bits() {
			nu := oldToNew[old]
			if !seen[nu] {
				seen[nu] = true
				kept = append(kept, nu)
			}
		}
		if len(kept) == 0 {
			continue
		}
		bs := NewBitset(len(newVertices))
		k := len(ng.clusters)
		for _, v := range kept {
			bs.Set(v)
			ng.clusterOfV[v] = k
		}
		ng.clusters = append(ng.clusters, bs)
	}

	ng.buildOriginalIndex()
	return ng, nil
}

func (g *Graph) clone() *Graph {
	ng := &Graph{
		vertices:   make([]Vertex, g.N()),
		adj:        make([]Bitset, g.N()),
		clusterOfV: append([]int(nil), g.clusterOfV...),
		clusters:   append([]Bitset(nil), g.clusters...),
	}
	for i, v := range g.vertices {
		ng.vertices[i] = Vertex{ID: v.ID, Represented: v.Represented.Clone()}
		ng.adj[i] = NewBitset(g.N())
		for _, nb := range g.adj[i].Bits() {
			ng.adj[i].Set(nb)
		}
	}
	ng.buildOriginalIndex()
	return ng
}

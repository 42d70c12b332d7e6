// Package graph implements the clustered undirected graph model that
// underlies the SGCP branch-and-price solver: a graph whose vertices
// carry an identity that survives the three branching transforms
// (remove, link, merge), plus the preprocessing rules that shrink an
// instance before the root node is built.
package graph

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Vertex is one current-id vertex. Represented holds every original
// vertex id (from the instance file) that this vertex still stands
// in for; a fresh instance vertex represents only itself, a merged
// vertex represents the union of its two parents.
type Vertex struct {
	ID          int
	Represented mapset.Set[int]
}

// Graph is the triple (V, E, P) of spec.md §3: current-id vertices,
// an adjacency relation, and an ordered partition into cliques
// (clusters). Immutable once built — every transform returns a new
// Graph.
type Graph struct {
	vertices []Vertex
	adj      []Bitset
	clusterOfV []int
	clusters   []Bitset // dense-id membership per cluster

	origToCurrent map[int]int
}

// New builds a graph from n vertices, an edge list, and a partition
// into clusters (each a slice of vertex ids in [0, n)). Every vertex
// initially represents only itself. Clusters are turned into cliques
// (rule required by spec.md §3): pairwise edges are added between all
// members of the same cluster.
func New(n int, edges [][2]int, clusters [][]int) *Graph {
	g := &Graph{
		vertices:   make([]Vertex, n),
		adj:        make([]Bitset, n),
		clusterOfV: make([]int, n),
		clusters:   make([]Bitset, len(clusters)),
	}
	for i := 0; i < n; i++ {
		g.vertices[i] = Vertex{ID: i, Represented: mapset.NewSet[int](i)}
		g.adj[i] = NewBitset(n)
	}
	for _, e := range edges {
		g.addEdge(e[0], e[1])
	}
	for k, members := range clusters {
		bs := NewBitset(n)
		for _, v := range members {
			bs.Set(v)
			g.clusterOfV[v] = k
		}
		g.clusters[k] = bs
		// A cluster must be a clique so pricing respects at-most-one-per-cluster.
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				g.addEdge(members[i], members[j])
			}
		}
	}
	g.buildOriginalIndex()
	return g
}

func (g *Graph) addEdge(i, j int) {
	if i == j {
		return
	}
	g.adj[i].Set(j)
	g.adj[j].Set(i)
}

func (g *Graph) buildOriginalIndex() {
	g.origToCurrent = make(map[int]int)
	for _, v := range g.vertices {
		for orig := range v.Represented.Iter() {
			g.origToCurrent[orig] = v.ID
		}
	}
}

func (g *Graph) N() int              { return len(g.vertices) }
func (g *Graph) NumClusters() int    { return len(g.clusters) }
func (g *Graph) Vertex(id int) Vertex { return g.vertices[id] }

// ByOriginal looks a vertex up by an original instance id.
func (g *Graph) ByOriginal(origID int) (Vertex, bool) {
	cur, ok := g.origToCurrent[origID]
	if !ok {
		return Vertex{}, false
	}
	return g.vertices[cur], true
}

// Adjacent reports whether current ids i and j are adjacent.
func (g *Graph) Adjacent(i, j int) bool { return g.adj[i].Test(j) }

// ClusterOf returns the cluster index containing current id v.
func (g *Graph) ClusterOf(v int) int { return g.clusterOfV[v] }

// ClusterMembers returns the current ids in cluster k.
func (g *Graph) ClusterMembers(k int) []int { return g.clusters[k].Bits() }

// ClusterSize returns the number of current-id members of cluster k.
func (g *Graph) ClusterSize(k int) int { return g.clusters[k].Count() }

// ClustersOf returns every cluster index whose membership bitset
// contains v. Almost always a single element; a merged vertex
// (spec.md §4.1's VerticesMerge) belongs to both of its parents'
// clusters at once.
func (g *Graph) ClustersOf(v int) []int {
	var out []int
	for k, bs := range g.clusters {
		if bs.Test(v) {
			out = append(out, k)
		}
	}
	return out
}

// Neighbours returns every current id adjacent to v.
func (g *Graph) Neighbours(v int) []int { return g.adj[v].Bits() }

// AntiNeighbours returns every current id NOT adjacent to v, in
// current-id space; includeSelf controls whether v itself is
// included in the result.
func (g *Graph) AntiNeighbours(v int, includeSelf bool) []int {
	res := make([]int, 0, g.N())
	for i := 0; i < g.N(); i++ {
		if i == v {
			if includeSelf {
				res = append(res, i)
			}
			continue
		}
		if !g.Adjacent(v, i) {
			res = append(res, i)
		}
	}
	return res
}

// AntiNeighboursOriginal is AntiNeighbours translated into original
// id space (unioning each anti-neighbour's Represented set).
func (g *Graph) AntiNeighboursOriginal(v int, includeSelf bool) []int {
	out := mapset.NewSet[int]()
	for _, u := range g.AntiNeighbours(v, includeSelf) {
		out = out.Union(g.vertices[u].Represented)
	}
	return out.ToSlice()
}

// IsStableSetCompatible implements spec.md §3's compatibility
// predicate for a stable set S given in ORIGINAL vertex ids: every
// original id must still have a representative (a), any partially
// represented group must be fully present (b), and no two
// representatives may be adjacent (c).
func (g *Graph) IsStableSetCompatible(ids []int) bool {
	s := mapset.NewSet[int](ids...)
	seen := make(map[int]bool)
	reps := make([]int, 0, len(ids))
	for _, id := range ids {
		cur, ok := g.origToCurrent[id]
		if !ok {
			return false // (a)
		}
		if seen[cur] {
			continue
		}
		seen[cur] = true
		if !g.vertices[cur].Represented.IsSubset(s) {
			return false // (b)
		}
		reps = append(reps, cur)
	}
	for i := 0; i < len(reps); i++ { // (c)
		for j := i + 1; j < len(reps); j++ {
			if g.Adjacent(reps[i], reps[j]) {
				return false
			}
		}
	}
	return true
}

// RepresentativeOf returns the current vertex id representing an
// original id in this graph, or -1 if none survives.
func (g *Graph) RepresentativeOf(origID int) int {
	if cur, ok := g.origToCurrent[origID]; ok {
		return cur
	}
	return -1
}

// Metrics summarises graph shape for the results file.
type Metrics struct {
	Vertices, Edges, Clusters int
	AvgDegree                 float64
	ComponentCount            int
}

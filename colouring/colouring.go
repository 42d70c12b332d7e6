// Package colouring is the shared vertex-colouring state ALNS, Tabu,
// and GRASP all mutate: colour classes keyed by a stable id that
// survives class removal, a vertex-to-colour map, and the per-cluster
// coloured/uncoloured bookkeeping the heuristics branch on.
package colouring

import (
	"sort"

	"github.com/solver4all/sgcp-bp/graph"
)

// Colouring holds one feasible-or-partial colouring of g: every
// populated class is a stable set, and at most one vertex per cluster
// is coloured at any time.
type Colouring struct {
	g            *graph.Graph
	classes      map[int][]int // colour id -> original vertex ids
	vertexColour map[int]int   // original vertex id -> colour id
	clusterOf    map[int]int   // original vertex id -> cluster index (cache)
	nextColourID int
}

// New returns an empty colouring over g.
func New(g *graph.Graph) *Colouring {
	c := &Colouring{
		g:            g,
		classes:      make(map[int][]int),
		vertexColour: make(map[int]int),
		clusterOf:    make(map[int]int),
	}
	return c
}

// Clone deep-copies the colouring so a heuristic can try a move and
// revert without touching the caller's state.
func (c *Colouring) Clone() *Colouring {
	n := &Colouring{
		g:            c.g,
		classes:      make(map[int][]int, len(c.classes)),
		vertexColour: make(map[int]int, len(c.vertexColour)),
		clusterOf:    c.clusterOf,
		nextColourID: c.nextColourID,
	}
	for id, members := range c.classes {
		cp := make([]int, len(members))
		copy(cp, members)
		n.classes[id] = cp
	}
	for v, id := range c.vertexColour {
		n.vertexColour[v] = id
	}
	return n
}

func (c *Colouring) Graph() *graph.Graph { return c.g }

// NumColours is the number of non-empty colour classes.
func (c *Colouring) NumColours() int { return len(c.classes) }

// ColourIDs returns every populated colour id, sorted for
// deterministic iteration.
func (c *Colouring) ColourIDs() []int {
	ids := make([]int, 0, len(c.classes))
	for id := range c.classes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// ClassMembers returns the original vertex ids in a colour class.
func (c *Colouring) ClassMembers(colourID int) []int {
	return c.classes[colourID]
}

// ClassSize returns the number of vertices in a colour class.
func (c *Colouring) ClassSize(colourID int) int { return len(c.classes[colourID]) }

// ColourOf returns the colour of a vertex, if coloured.
func (c *Colouring) ColourOf(v int) (int, bool) {
	id, ok := c.vertexColour[v]
	return id, ok
}

// IsColoured reports whether an original vertex id currently carries
// a colour.
func (c *Colouring) IsColoured(v int) bool {
	_, ok := c.vertexColour[v]
	return ok
}

func (c *Colouring) currentOf(v int) int {
	if cur := c.g.RepresentativeOf(v); cur >= 0 {
		return cur
	}
	return -1
}

// ClusterOf caches and returns the cluster index of an original
// vertex id.
func (c *Colouring) ClusterOf(v int) int {
	if k, ok := c.clusterOf[v]; ok {
		return k
	}
	cur := c.currentOf(v)
	k := c.g.ClusterOf(cur)
	c.clusterOf[v] = k
	return k
}

// UncolouredClusters returns every cluster index with no coloured
// representative yet.
func (c *Colouring) UncolouredClusters() []int {
	coloured := make(map[int]bool)
	for v := range c.vertexColour {
		coloured[c.ClusterOf(v)] = true
	}
	var out []int
	for k := 0; k < c.g.NumClusters(); k++ {
		if !coloured[k] {
			out = append(out, k)
		}
	}
	return out
}

// ClusterMembersOriginal returns every original vertex id belonging
// to cluster k.
func (c *Colouring) ClusterMembersOriginal(k int) []int {
	var out []int
	for _, cur := range c.g.ClusterMembers(k) {
		for orig := range c.g.Vertex(cur).Represented.Iter() {
			if c.g.ClusterOf(c.currentOf(orig)) == k {
				out = append(out, orig)
			}
		}
	}
	return out
}

// compatible reports whether v can join colour class id without
// creating an adjacency inside it.
func (c *Colouring) compatible(colourID, v int) bool {
	cv := c.currentOf(v)
	for _, u := range c.classes[colourID] {
		if c.g.Adjacent(cv, c.currentOf(u)) {
			return false
		}
	}
	return true
}

// Assign places v into colour class id, creating it if new. Callers
// must ensure compatibility first (or accept the resulting class is
// no longer a stable set).
func (c *Colouring) Assign(colourID, v int) {
	if colourID >= c.nextColourID {
		c.nextColourID = colourID + 1
	}
	c.classes[colourID] = append(c.classes[colourID], v)
	c.vertexColour[v] = colourID
}

// NewColour opens a fresh colour class containing only v and returns
// its id.
func (c *Colouring) NewColour(v int) int {
	id := c.nextColourID
	c.nextColourID++
	c.Assign(id, v)
	return id
}

// Uncolour removes v from its colour class (deleting the class if it
// becomes empty) and returns the colour id it left.
func (c *Colouring) Uncolour(v int) int {
	id, ok := c.vertexColour[v]
	if !ok {
		return -1
	}
	delete(c.vertexColour, v)
	members := c.classes[id]
	for i, u := range members {
		if u == v {
			members = append(members[:i], members[i+1:]...)
			break
		}
	}
	if len(members) == 0 {
		delete(c.classes, id)
	} else {
		c.classes[id] = members
	}
	return id
}

// RemoveColour uncolours every vertex in a class and returns them.
func (c *Colouring) RemoveColour(colourID int) []int {
	members := append([]int(nil), c.classes[colourID]...)
	for _, v := range members {
		delete(c.vertexColour, v)
	}
	delete(c.classes, colourID)
	return members
}

// CanPlace reports whether v may join colourID without an internal
// adjacency; identical to compatible but exported for the heuristics.
func (c *Colouring) CanPlace(colourID, v int) bool { return c.compatible(colourID, v) }

// ConflictsIn returns the original ids currently in colourID that are
// adjacent to v — the vertices a caller would need to displace to
// place v there instead.
func (c *Colouring) ConflictsIn(colourID, v int) []int {
	cv := c.currentOf(v)
	var out []int
	for _, u := range c.classes[colourID] {
		if c.g.Adjacent(cv, c.currentOf(u)) {
			out = append(out, u)
		}
	}
	return out
}

// ExternalDegree counts v's current-id neighbours in a different
// cluster.
func (c *Colouring) ExternalDegree(v int) int {
	cv := c.currentOf(v)
	own := c.g.ClusterOf(cv)
	count := 0
	for _, nb := range c.g.Neighbours(cv) {
		if c.g.ClusterOf(nb) != own {
			count++
		}
	}
	return count
}

// ColourDegree counts v's current-id neighbours that are already
// coloured.
func (c *Colouring) ColourDegree(v int) int {
	cv := c.currentOf(v)
	count := 0
	for _, nb := range c.g.Neighbours(cv) {
		for orig := range c.g.Vertex(nb).Represented.Iter() {
			if c.IsColoured(orig) {
				count++
				break
			}
		}
	}
	return count
}

// ToColumns exports every colour class as a slice of original vertex
// ids, suitable for seeding a column.Pool.
func (c *Colouring) ToColumns() [][]int {
	out := make([][]int, 0, len(c.classes))
	for _, id := range c.ColourIDs() {
		out = append(out, append([]int(nil), c.classes[id]...))
	}
	return out
}

// IsFeasible reports whether every cluster has exactly one coloured
// representative.
func (c *Colouring) IsFeasible() bool {
	return len(c.UncolouredClusters()) == 0
}

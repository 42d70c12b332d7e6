// Package tabu implements the decrease-target tabu search: starting
// from a colouring, drop its smallest colour class and try to
// re-place every orphan into one fewer colour than before, tabu-
// blocking each committed (colour, vertex) insertion so that vertex
// cannot be inserted into that colour again until the entry expires.
package tabu

import (
	"math/rand"

	"github.com/solver4all/sgcp-bp/colouring"
)

// Score rule aggregating the external degree of the vertices a
// candidate insertion would displace.
type Score int

const (
	ScoreSum Score = iota
	ScoreMin
)

// Params configures one macro-iteration attempting to reach
// numColours-1.
type Params struct {
	MaxIterations        int64
	Tenure               int64
	RandomisedTenure     bool
	MinTenure, MaxTenure int64
	Score                Score
	Rng                  *rand.Rand
}

// tabuKey is the (colour, vertex) pair of a committed insertion.
type tabuKey struct {
	Colour int
	Vertex int
}

// list maps a tabuKey to the iteration it expires at.
type list map[tabuKey]int64

func (l list) blocked(colour, vertex int, iter int64) bool {
	exp, ok := l[tabuKey{Colour: colour, Vertex: vertex}]
	return ok && exp > iter
}

func (l list) record(colour, vertex int, iter int64, tenure int64) {
	l[tabuKey{Colour: colour, Vertex: vertex}] = iter + tenure
}

func (l list) purge(iter int64) {
	for k, exp := range l {
		if exp <= iter {
			delete(l, k)
		}
	}
}

// Result of one attempt to shrink a colouring by one colour.
type Result struct {
	Colouring *colouring.Colouring
	Success   bool
}

// Run drops the smallest colour of seed and tries to recolour every
// orphan into the remaining classes within MaxIterations. seed is not
// mutated.
func Run(seed *colouring.Colouring, p Params) Result {
	if seed.NumColours() == 0 {
		return Result{Colouring: seed, Success: false}
	}
	trial := seed.Clone()

	ids := trial.ColourIDs()
	smallest := ids[0]
	for _, id := range ids[1:] {
		if trial.ClassSize(id) < trial.ClassSize(smallest) {
			smallest = id
		}
	}
	trial.RemoveColour(smallest)

	tabuList := make(list)

	var iter int64
	for iter = 0; iter < p.MaxIterations && len(trial.UncolouredClusters()) > 0; iter++ {
		tabuList.purge(iter)

		// Pick a random uncoloured cluster, then any of its members —
		// not just the one that happened to get displaced last — so the
		// search can try a different representative for that cluster.
		clusters := trial.UncolouredClusters()
		k := clusters[p.Rng.Intn(len(clusters))]
		members := trial.ClusterMembersOriginal(k)
		v := members[p.Rng.Intn(len(members))]

		colours := trial.ColourIDs()
		bestColour := -1
		bestScore := -1
		bestDisplaced := []int(nil)

		for _, id := range colours {
			if tabuList.blocked(id, v, iter) {
				continue
			}
			displaced := trial.ConflictsIn(id, v)
			score := aggregate(trial, displaced, p.Score)
			if bestColour == -1 || score < bestScore {
				bestColour, bestScore, bestDisplaced = id, score, displaced
			}
		}

		// v is blocked from every one of the target's colours: this
		// macro-iteration cannot reach the target, the caller must
		// retry with a smaller one or give up.
		if bestColour == -1 {
			return Result{Colouring: seed, Success: false}
		}

		for _, d := range bestDisplaced {
			trial.Uncolour(d)
		}
		trial.Assign(bestColour, v)

		tenure := p.Tenure
		if p.RandomisedTenure {
			tenure = p.MinTenure + int64(p.Rng.Int63n(p.MaxTenure-p.MinTenure+1))
		}
		tabuList.record(bestColour, v, iter, tenure)
	}

	if len(trial.UncolouredClusters()) == 0 {
		return Result{Colouring: trial, Success: true}
	}
	return Result{Colouring: seed, Success: false}
}

func aggregate(c *colouring.Colouring, displaced []int, s Score) int {
	if len(displaced) == 0 {
		return 0
	}
	switch s {
	case ScoreMin:
		best := c.ExternalDegree(displaced[0])
		for _, v := range displaced[1:] {
			if d := c.ExternalDegree(v); d < best {
				best = d
			}
		}
		return best
	default:
		sum := 0
		for _, v := range displaced {
			sum += c.ExternalDegree(v)
		}
		return sum
	}
}

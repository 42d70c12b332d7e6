package alns

import (
	"math/rand"

	"github.com/solver4all/sgcp-bp/colouring"
)

// DestroyMove uncolours some vertices from c and returns the
// original ids it freed.
type DestroyMove func(rng *rand.Rand, c *colouring.Colouring) []int

// RepairMove colours every currently-uncoloured cluster of c, honouring
// the tabu memory, and records the colour it chose per vertex.
type RepairMove func(rng *rand.Rand, c *colouring.Colouring, tabu *Memory, iter int64)

func coloursSlice(c *colouring.Colouring) []int { return c.ColourIDs() }

func pickRandom(rng *rand.Rand, xs []int) int {
	if len(xs) == 0 {
		return -1
	}
	return xs[rng.Intn(len(xs))]
}

func pickByExtreme(xs []int, key func(int) int, biggest bool) int {
	if len(xs) == 0 {
		return -1
	}
	best := xs[0]
	bestKey := key(best)
	for _, x := range xs[1:] {
		k := key(x)
		if (biggest && k > bestKey) || (!biggest && k < bestKey) {
			best, bestKey = x, k
		}
	}
	return best
}

// pickRoulette selects an item weighted by weight(x); "small" is
// approximated by inverse-proportional weighting, "big" by
// proportional weighting — callers pass the appropriate weight func.
func pickRoulette(rng *rand.Rand, xs []int, weight func(int) float64) int {
	if len(xs) == 0 {
		return -1
	}
	total := 0.0
	weights := make([]float64, len(xs))
	for i, x := range xs {
		w := weight(x)
		if w < 1e-9 {
			w = 1e-9
		}
		weights[i] = w
		total += w
	}
	r := rng.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r <= acc {
			return xs[i]
		}
	}
	return xs[len(xs)-1]
}

func colouredVertices(c *colouring.Colouring) []int {
	var out []int
	for _, id := range c.ColourIDs() {
		out = append(out, c.ClassMembers(id)...)
	}
	return out
}

func degreeOf(c *colouring.Colouring, v int) int      { return c.ExternalDegree(v) }
func colourDegreeOf(c *colouring.Colouring, v int) int { return c.ColourDegree(v) }

func removeVertex(c *colouring.Colouring, v int) []int {
	if v < 0 {
		return nil
	}
	c.Uncolour(v)
	return []int{v}
}

func removeColour(c *colouring.Colouring, id int) []int {
	if id < 0 {
		return nil
	}
	return c.RemoveColour(id)
}

// --- Group A: remove a random vertex from a colour picked by rule ---

func destroyRandomVertexInRandomColour(rng *rand.Rand, c *colouring.Colouring) []int {
	id := pickRandom(rng, coloursSlice(c))
	if id < 0 {
		return nil
	}
	return removeVertex(c, pickRandom(rng, c.ClassMembers(id)))
}

func destroyRandomVertexInColourBySize(biggest bool) DestroyMove {
	return func(rng *rand.Rand, c *colouring.Colouring) []int {
		ids := coloursSlice(c)
		id := pickByExtreme(ids, func(x int) int { return c.ClassSize(x) }, biggest)
		if id < 0 {
			return nil
		}
		return removeVertex(c, pickRandom(rng, c.ClassMembers(id)))
	}
}

// --- Group B: remove a single vertex by a degree criterion, deterministic or roulette ---

func destroyVertexByDegree(useColourDegree, biggest bool) DestroyMove {
	return func(rng *rand.Rand, c *colouring.Colouring) []int {
		vs := colouredVertices(c)
		key := degreeOf
		if useColourDegree {
			key = colourDegreeOf
		}
		v := pickByExtreme(vs, func(x int) int { return key(c, x) }, biggest)
		return removeVertex(c, v)
	}
}

func destroyVertexByDegreeRoulette(useColourDegree, biggest bool) DestroyMove {
	return func(rng *rand.Rand, c *colouring.Colouring) []int {
		vs := colouredVertices(c)
		key := degreeOf
		if useColourDegree {
			key = colourDegreeOf
		}
		weight := func(x int) float64 {
			d := float64(key(c, x)) + 1
			if biggest {
				return d
			}
			return 1 / d
		}
		v := pickRoulette(rng, vs, weight)
		return removeVertex(c, v)
	}
}

// --- Group C: remove a whole colour picked by rule ---

func destroyRandomColour(rng *rand.Rand, c *colouring.Colouring) []int {
	return removeColour(c, pickRandom(rng, coloursSlice(c)))
}

func destroySmallestColour(rng *rand.Rand, c *colouring.Colouring) []int {
	ids := coloursSlice(c)
	return removeColour(c, pickByExtreme(ids, func(x int) int { return c.ClassSize(x) }, false))
}

// --- Group D: remove the colour with the smallest aggregate degree, deterministic or roulette ---

func classDegree(c *colouring.Colouring, id int, useColourDegree bool) int {
	sum := 0
	for _, v := range c.ClassMembers(id) {
		if useColourDegree {
			sum += colourDegreeOf(c, v)
		} else {
			sum += degreeOf(c, v)
		}
	}
	return sum
}

func destroyColourBySmallestDegree(useColourDegree bool) DestroyMove {
	return func(rng *rand.Rand, c *colouring.Colouring) []int {
		ids := coloursSlice(c)
		id := pickByExtreme(ids, func(x int) int { return classDegree(c, x, useColourDegree) }, false)
		return removeColour(c, id)
	}
}

func destroyColourBySmallestDegreeRoulette(useColourDegree bool) DestroyMove {
	return func(rng *rand.Rand, c *colouring.Colouring) []int {
		ids := coloursSlice(c)
		weight := func(x int) float64 { return 1 / (float64(classDegree(c, x, useColourDegree)) + 1) }
		id := pickRoulette(rng, ids, weight)
		return removeColour(c, id)
	}
}

// DestroyMoves returns all 17 destroy variants named in the ALNS
// engine's design, in a fixed order matched by their initial scores:
// 3 remove-vertex-in-{random,smallest,biggest}-colour, 4 remove-vertex
// by {degree,colour-degree}×{smallest,biggest}, 4 roulette variants of
// those, 2 remove-{random,smallest}-colour, 2 remove-colour-by-
// smallest-{degree,colour-degree}, 2 roulette variants of those.
func DestroyMoves() []DestroyMove {
	return []DestroyMove{
		destroyRandomVertexInRandomColour,
		destroyRandomVertexInColourBySize(false),
		destroyRandomVertexInColourBySize(true),
		destroyVertexByDegree(false, false),
		destroyVertexByDegree(false, true),
		destroyVertexByDegree(true, false),
		destroyVertexByDegree(true, true),
		destroyVertexByDegreeRoulette(false, false),
		destroyVertexByDegreeRoulette(false, true),
		destroyVertexByDegreeRoulette(true, false),
		destroyVertexByDegreeRoulette(true, true),
		destroyRandomColour,
		destroySmallestColour,
		destroyColourBySmallestDegree(false),
		destroyColourBySmallestDegree(true),
		destroyColourBySmallestDegreeRoulette(false),
		destroyColourBySmallestDegreeRoulette(true),
	}
}

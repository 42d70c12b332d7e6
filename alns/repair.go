package alns

import (
	"math/rand"

	"github.com/solver4all/sgcp-bp/colouring"
)

// vertexRule picks one member of an uncoloured cluster to try first.
type vertexRule func(rng *rand.Rand, c *colouring.Colouring, members []int) int

func ruleRandomVertex(rng *rand.Rand, c *colouring.Colouring, members []int) int {
	return pickRandom(rng, members)
}

func ruleLowestDegreeVertex(rng *rand.Rand, c *colouring.Colouring, members []int) int {
	return pickByExtreme(members, func(v int) int { return degreeOf(c, v) }, false)
}

func ruleLowestColourDegreeVertex(rng *rand.Rand, c *colouring.Colouring, members []int) int {
	return pickByExtreme(members, func(v int) int { return colourDegreeOf(c, v) }, false)
}

// colourRule picks the destination colour among the ones v may
// legally enter.
type colourRule func(rng *rand.Rand, c *colouring.Colouring, candidates []int) int

func ruleRandomColour(rng *rand.Rand, c *colouring.Colouring, candidates []int) int {
	return pickRandom(rng, candidates)
}

func ruleBiggestColour(rng *rand.Rand, c *colouring.Colouring, candidates []int) int {
	return pickByExtreme(candidates, func(id int) int { return c.ClassSize(id) }, true)
}

func ruleSmallestColour(rng *rand.Rand, c *colouring.Colouring, candidates []int) int {
	return pickByExtreme(candidates, func(id int) int { return c.ClassSize(id) }, false)
}

// newRepairMove builds one insert-{vertex rule}-in-{colour rule}
// repair: for every uncoloured cluster, pick a vertex per vRule, pick
// a destination among non-tabu compatible colours per cRule, or open
// a fresh colour when none qualify.
func newRepairMove(vRule vertexRule, cRule colourRule) RepairMove {
	return func(rng *rand.Rand, c *colouring.Colouring, tabu *Memory, iter int64) {
		for _, k := range c.UncolouredClusters() {
			members := c.ClusterMembersOriginal(k)
			if len(members) == 0 {
				continue
			}
			v := vRule(rng, c, members)
			if v < 0 {
				continue
			}
			var candidates []int
			for _, id := range c.ColourIDs() {
				if c.CanPlace(id, v) && !tabu.IsBlocked(v, id, iter) {
					candidates = append(candidates, id)
				}
			}
			target := cRule(rng, c, candidates)
			if target < 0 {
				target = c.NewColour(v)
			} else {
				c.Assign(target, v)
			}
			tabu.Block(v, target, iter)
		}
	}
}

// RepairMoves returns all 9 insert-{random,lowest-degree,lowest-
// colour-degree}-vertex-in-{random,biggest,smallest}-colour variants.
func RepairMoves() []RepairMove {
	vRules := []vertexRule{ruleRandomVertex, ruleLowestDegreeVertex, ruleLowestColourDegreeVertex}
	cRules := []colourRule{ruleRandomColour, ruleBiggestColour, ruleSmallestColour}
	var out []RepairMove
	for _, v := range vRules {
		for _, c := range cRules {
			out = append(out, newRepairMove(v, c))
		}
	}
	return out
}

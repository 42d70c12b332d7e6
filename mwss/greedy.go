package mwss

import (
	"sort"

	"github.com/solver4all/sgcp-bp/graph"
)

// GreedySolver is the reference MWSS implementation: repeatedly pick
// the highest-remaining-weight vertex, discard its neighbours, and
// finish with a local 1-for-2 swap improvement pass. It is not
// guaranteed optimal — the real "Sewell" routine spec.md treats as an
// opaque external oracle is — but every set it returns is a valid
// stable set, which is all the pricing loop's correctness depends on.
type GreedySolver struct{}

func (GreedySolver) Solve(g *graph.Graph, weights []int64) ([]int, error) {
	n := g.N()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return weights[order[a]] > weights[order[b]] })

	excluded := make([]bool, n)
	chosen := make([]bool, n)
	var set []int
	total := int64(0)
	for _, v := range order {
		if excluded[v] || weights[v] <= 0 {
			continue
		}
		chosen[v] = true
		set = append(set, v)
		total += weights[v]
		excluded[v] = true
		for _, nb := range g.Neighbours(v) {
			excluded[nb] = true
		}
	}

	improveByPairSwap(g, weights, chosen, &set, &total)
	if total <= 0 {
		return nil, nil
	}
	return set, nil
}

// improveByPairSwap tries, for every chosen vertex v, to drop it and
// pick two of its excluded-but-now-free neighbours whose combined
// weight exceeds v's, repeating until no improving swap remains.
func improveByPairSwap(g *graph.Graph, weights []int64, chosen []bool, set *[]int, total *int64) {
	improved := true
	for improved {
		improved = false
		for _, v := range append([]int(nil), *set...) {
			free := freeNeighbours(g, chosen, v)
			best := findBestPair(g, weights, free)
			if best == nil || best.gain <= weights[v] {
				continue
			}
			chosen[v] = false
			removeFromSlice(set, v)
			*total -= weights[v]
			for _, u := range best.pair {
				chosen[u] = true
				*set = append(*set, u)
				*total += weights[u]
			}
			improved = true
		}
	}
}

func freeNeighbours(g *graph.Graph, chosen []bool, v int) []int {
	var free []int
	for _, nb := range g.Neighbours(v) {
		if chosen[nb] {
			continue
		}
		blocked := false
		for _, nb2 := range g.Neighbours(nb) {
			if nb2 != v && chosen[nb2] {
				blocked = true
				break
			}
		}
		if !blocked {
			free = append(free, nb)
		}
	}
	return free
}

type pairCandidate struct {
	pair [2]int
	gain int64
}

func findBestPair(g *graph.Graph, weights []int64, candidates []int) *pairCandidate {
	var best *pairCandidate
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			a, b := candidates[i], candidates[j]
			if g.Adjacent(a, b) {
				continue
			}
			gain := weights[a] + weights[b]
			if best == nil || gain > best.gain {
				best = &pairCandidate{pair: [2]int{a, b}, gain: gain}
			}
		}
	}
	return best
}

func removeFromSlice(set *[]int, v int) {
	for i, u := range *set {
		if u == v {
			*set = append((*set)[:i], (*set)[i+1:]...)
			return
		}
	}
}

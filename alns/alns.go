// Package alns implements the adaptive large-neighbourhood search
// primal heuristic: repeated destroy/repair cycles over a
// colouring.Colouring, guided by roulette-weighted move scores and a
// short-term tabu memory blocking recently vacated (vertex, colour)
// pairs.
package alns

import (
	"math/rand"

	"github.com/solver4all/sgcp-bp/colouring"
)

// AcceptRule decides whether a trial colouring replaces the current
// one, given the trial's colour count, the current one's, and the
// iteration number.
type AcceptRule func(trialColours, currentColours int, iter, maxIter int64) bool

// AcceptEverything always moves to the trial solution.
func AcceptEverything(trialColours, currentColours int, iter, maxIter int64) bool {
	return true
}

// AcceptNonDeteriorating moves only if the trial is no worse.
func AcceptNonDeteriorating(trialColours, currentColours int, iter, maxIter int64) bool {
	return trialColours <= currentColours
}

// WorseAccept accepts a strictly worse trial with probability
// p0*(iter/N), decaying to 0 as iter approaches N; non-worsening
// trials are always accepted.
func WorseAccept(p0 float64, n int64) AcceptRule {
	return func(trialColours, currentColours int, iter, maxIter int64) bool {
		if trialColours <= currentColours {
			return true
		}
		if n <= 0 {
			return false
		}
		p := p0 * (float64(iter) / float64(n))
		return rand.Float64() < p
	}
}

// scoreDecay ages a move's running weight before the next multiplier
// is added in; unlike the three multipliers below, it is not exposed
// as a tuning knob by config.ALNSParams.
const scoreDecay = 0.9

// LocalSearch selects the post-repair local move applied to a trial
// colouring before it is scored.
type LocalSearch int

const (
	// LocalSearchNone leaves the repaired trial as is.
	LocalSearchNone LocalSearch = iota
	// LocalSearchDecreaseByOne runs colouring.TryDecreaseByOne on it.
	LocalSearchDecreaseByOne
)

// Params configures one ALNS run. NewBestMult/NewImprovingMult/
// WorseningMult are the three score multipliers spec.md §4.9 step 4
// updates a move's weight by; DMoves/RMoves mask which of the 17
// destroy and 9 repair moves DestroyMoves()/RepairMoves() return are
// eligible for roulette selection (an all-zero mask means "use every
// move", which is what config.Default()'s zero-valued arrays give).
type Params struct {
	MaxIterations int64
	TabuTenure    int64
	Accept        AcceptRule
	Rng           *rand.Rand

	NewBestMult      float64
	NewImprovingMult float64
	WorseningMult    float64

	DMoves [17]int
	RMoves [9]int

	Local LocalSearch
}

func (p Params) newBestMult() float64 {
	if p.NewBestMult == 0 {
		return 3.0
	}
	return p.NewBestMult
}

func (p Params) newImprovingMult() float64 {
	if p.NewImprovingMult == 0 {
		return 2.0
	}
	return p.NewImprovingMult
}

func (p Params) worseningMult() float64 {
	if p.WorseningMult == 0 {
		return 0.5
	}
	return p.WorseningMult
}

// enabledIndices returns the indices of mask that are nonzero, or
// every index in [0,n) when mask is entirely zero (the default,
// use-everything, config produces).
func enabledIndices(mask []int, n int) []int {
	out := make([]int, 0, n)
	any := false
	for i := 0; i < n; i++ {
		if mask[i] != 0 {
			any = true
		}
	}
	for i := 0; i < n; i++ {
		if !any || mask[i] != 0 {
			out = append(out, i)
		}
	}
	return out
}

// Result is the best colouring found and its size.
type Result struct {
	Best       *colouring.Colouring
	NumColours int
	Iterations int64
}

// Run drives the destroy/repair/decrease loop starting from seed,
// which is not mutated.
func Run(seed *colouring.Colouring, p Params) *Result {
	allDestroy := DestroyMoves()
	allRepair := RepairMoves()
	destroyIdx := enabledIndices(p.DMoves[:], len(allDestroy))
	repairIdx := enabledIndices(p.RMoves[:], len(allRepair))
	destroyScores := make([]float64, len(destroyIdx))
	repairScores := make([]float64, len(repairIdx))
	for i := range destroyScores {
		destroyScores[i] = 1
	}
	for i := range repairScores {
		repairScores[i] = 1
	}

	current := seed.Clone()
	best := seed.Clone()
	tabu := NewMemory(p.TabuTenure)

	var iter int64
	for iter = 0; iter < p.MaxIterations; iter++ {
		tabu.Purge(iter)

		di := rouletteIndex(p.Rng, destroyScores)
		ri := rouletteIndex(p.Rng, repairScores)

		trial := current.Clone()
		allDestroy[destroyIdx[di]](p.Rng, trial)
		allRepair[repairIdx[ri]](p.Rng, trial, tabu, iter)

		if p.Local == LocalSearchDecreaseByOne {
			if improved, ok := trial.TryDecreaseByOne(); ok {
				trial = improved
			}
		}

		mult := p.worseningMult()
		switch {
		case trial.NumColours() < best.NumColours():
			best = trial.Clone()
			mult = p.newBestMult()
		case trial.NumColours() < current.NumColours():
			mult = p.newImprovingMult()
		}
		destroyScores[di] = destroyScores[di]*scoreDecay + mult
		repairScores[ri] = repairScores[ri]*scoreDecay + mult

		if p.Accept(trial.NumColours(), current.NumColours(), iter, p.MaxIterations) {
			current = trial
		}
	}

	return &Result{Best: best, NumColours: best.NumColours(), Iterations: iter}
}

func rouletteIndex(rng *rand.Rand, scores []float64) int {
	total := 0.0
	for _, s := range scores {
		total += s
	}
	if total <= 0 {
		return rng.Intn(len(scores))
	}
	r := rng.Float64() * total
	acc := 0.0
	for i, s := range scores {
		acc += s
		if r <= acc {
			return i
		}
	}
	return len(scores) - 1
}

// Package bb implements the branch-and-bound tree: BBNode runs the
// column-generation pricing loop and gates the MIP primal heuristic;
// BBTree drives the priority queue of open nodes to termination.
package bb

import (
	"errors"
	"math"
	"time"

	"github.com/solver4all/sgcp-bp/branch"
	"github.com/solver4all/sgcp-bp/column"
	"github.com/solver4all/sgcp-bp/errs"
	"github.com/solver4all/sgcp-bp/graph"
	"github.com/solver4all/sgcp-bp/logging"
	"github.com/solver4all/sgcp-bp/master"
	"github.com/solver4all/sgcp-bp/mwss"
)

const eps = 1e-6

// NodeConfig carries the pricing-loop knobs that don't change across
// the tree.
type NodeConfig struct {
	Multiplier   int
	PriceEps     float64
	LPTimeLimit  float64
	MIPTimeLimit float64
}

// Node is one branch-and-bound node: a graph reachable from the root
// by a chain of branching transforms, plus the bound its father's LP
// handed down.
type Node struct {
	ID              int64
	Graph           *graph.Graph
	Depth           int
	BoundFromFather float64 // math.Inf(-1) marks the root, whose father has no bound
	Rule            branch.Rule
}

// IsRoot reports whether this node has no inherited father bound.
func (n *Node) IsRoot() bool { return math.IsInf(n.BoundFromFather, -1) }

// Result is what a pricing loop iteration returns to the tree.
type Result struct {
	Infeasible     bool
	Timeout        bool
	Integer        bool
	Objective      float64
	Bound          float64
	Active         []int
	Children       []*Node
	MaxReducedCost float64

	// RuleKind names the branching rule used to produce Children,
	// "vertex" or "ryan_foster"; empty when there are no children.
	RuleKind string

	// LPTime and PricingTime are this node's own cumulative time in
	// oracle.Solve and mwss.Price respectively, for the results row's
	// per-run timing breakdown. ColumnsPriced counts the columns this
	// node's pricing loop added to the pool.
	LPTime        float64
	PricingTime   float64
	ColumnsPriced int
}

// Solve runs the pricing loop of the node: build the local forbidden
// mask from the pool, alternate LP-master solves and MWSS pricing
// until no improving column remains, then classify the LP optimum as
// infeasible, integer, or in need of branching.
func (n *Node) Solve(pool *column.Pool, oracle *master.Oracle, solver mwss.Solver, cfg NodeConfig, deadline time.Time) (*Result, error) {
	forbidden := make(map[int]bool)
	for _, c := range pool.Snapshot() {
		if !c.IsValidFor(n.Graph) {
			forbidden[c.ID] = true
		}
	}

	var lpSol *master.Solution
	maxReducedCost := 0.0
	var lpTime, pricingTime float64
	columnsPriced := 0

	for {
		if time.Now().After(deadline) {
			r := &Result{Timeout: true, Bound: n.BoundFromFather, MaxReducedCost: maxReducedCost,
				LPTime: lpTime, PricingTime: pricingTime, ColumnsPriced: columnsPriced}
			if lpSol != nil {
				r.Objective = lpSol.Objective
				if maxReducedCost > 1 {
					r.Bound = math.Ceil(lpSol.Objective / maxReducedCost)
				}
			}
			logging.L.Debugf("bb: node %d timed out during pricing", n.ID)
			return r, nil
		}

		// oracle rebuilds the model from scratch every call, so the full
		// forbidden set must be passed every iteration — there is no
		// persisted state to skip re-pinning columns against.
		cols := pool.Snapshot()
		lpStart := time.Now()
		sol, err := oracle.Solve(cols, forbidden, false, cfg.LPTimeLimit, nil)
		lpTime += time.Since(lpStart).Seconds()
		if err != nil {
			if errors.Is(err, errs.ErrLPInfeasible) {
				return nil, errs.Precondition("bb: LP relaxation infeasible despite dummy column")
			}
			return nil, err
		}
		lpSol = sol

		priceStart := time.Now()
		priced, err := mwss.Price(solver, n.Graph, sol.ClusterDuals.RawVector().Data, cfg.Multiplier)
		pricingTime += time.Since(priceStart).Seconds()
		if err != nil {
			if errors.Is(err, errs.ErrPricingFailed) {
				break
			}
			return nil, err
		}
		if priced.ReducedCost > maxReducedCost {
			maxReducedCost = priced.ReducedCost
		}
		if priced.ReducedCost <= cfg.PriceEps {
			break
		}
		pool.Add(priced.OriginalIDs, n.Graph)
		columnsPriced++
	}

	if lpSol.UsesDummy() {
		return &Result{Infeasible: true, LPTime: lpTime, PricingTime: pricingTime, ColumnsPriced: columnsPriced}, nil
	}

	if isIntegral(lpSol.ColumnValues.RawVector().Data) {
		return &Result{Integer: true, Objective: lpSol.Objective, Active: lpSol.Active, Bound: lpSol.Objective,
			LPTime: lpTime, PricingTime: pricingTime, ColumnsPriced: columnsPriced}, nil
	}

	r, err := n.branch(pool, lpSol)
	if err != nil {
		return nil, err
	}
	r.LPTime, r.PricingTime, r.ColumnsPriced = lpTime, pricingTime, columnsPriced
	return r, nil
}

func isIntegral(values []float64) bool {
	for _, v := range values {
		if v > eps && v < 1-eps {
			return false
		}
	}
	return true
}

func (n *Node) branch(pool *column.Pool, lpSol *master.Solution) (*Result, error) {
	cols := pool.Snapshot()
	lp := make([]branch.LPColumn, 0, len(cols))
	for i, c := range cols {
		if v := lpSol.ColumnValues.AtVec(i); v > eps {
			lp = append(lp, branch.LPColumn{Col: c, Value: v})
		}
	}

	var r1, r2 branch.Rule
	var ruleKind string
	ok, a, b := branch.SelectVertexInCluster(n.Graph, lp)
	if ok {
		r1, r2, ruleKind = a, b, "vertex"
	} else if ok, a, b = branch.SelectRyanFoster(n.Graph, lp); ok {
		r1, r2, ruleKind = a, b, "ryan_foster"
	} else {
		return nil, errs.Precondition("bb: no applicable branching rule at a fractional node")
	}

	child1, err := n.child(r1, lpSol.Objective)
	if err != nil {
		return nil, err
	}
	child2, err := n.child(r2, lpSol.Objective)
	if err != nil {
		return nil, err
	}

	return &Result{
		Objective: lpSol.Objective,
		Bound:     lpSol.Objective,
		Children:  []*Node{child1, child2},
		RuleKind:  ruleKind,
	}, nil
}

func (n *Node) child(rule branch.Rule, fatherLP float64) (*Node, error) {
	g, err := rule.Apply(n.Graph)
	if err != nil {
		return nil, err
	}
	return &Node{
		Graph:           g,
		Depth:           n.Depth + 1,
		BoundFromFather: fatherLP,
		Rule:            rule,
	}, nil
}

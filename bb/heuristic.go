package bb

import (
	"math"

	"github.com/solver4all/sgcp-bp/column"
	"github.com/solver4all/sgcp-bp/master"
)

// MIPConfig gates the in-node MIP primal heuristic of spec §4.6.
type MIPConfig struct {
	Enabled        bool
	PoolSizeMax    int
	NodeFrequency  int64
	TimeLimit      float64
}

// MIPResult is the outcome of one gated MIP heuristic attempt.
type MIPResult struct {
	Ran       bool
	Feasible  bool
	Improved  bool
	Objective float64
	Active    []int
}

// TryMIPHeuristic runs the gated conditions of §4.6 and, if all hold,
// solves the 0/1 master MIP over the current pool. A MIP solution is
// feasible iff the dummy column is inactive in it.
func TryMIPHeuristic(oracle *master.Oracle, pool *column.Pool, n *Node, cfg MIPConfig, lpObjective, ub float64, columnsAddedSinceLastMIP bool, mipStart []int) (*MIPResult, error) {
	if !cfg.Enabled {
		return &MIPResult{}, nil
	}
	if !(math.Ceil(lpObjective-eps) < ub-1-eps) {
		return &MIPResult{}, nil
	}
	if !columnsAddedSinceLastMIP {
		return &MIPResult{}, nil
	}
	cols := pool.Snapshot()
	if len(cols) > cfg.PoolSizeMax {
		return &MIPResult{}, nil
	}
	if cfg.NodeFrequency > 0 && n.ID%cfg.NodeFrequency != 0 {
		return &MIPResult{}, nil
	}

	forbidden := make(map[int]bool)
	for _, c := range cols {
		if !c.IsValidFor(n.Graph) {
			forbidden[c.ID] = true
		}
	}

	sol, err := oracle.Solve(cols, forbidden, true, cfg.TimeLimit, mipStart)
	if err != nil {
		return &MIPResult{Ran: true}, nil // "no optimal" surfaces as no heuristic solution, not a fatal error
	}
	res := &MIPResult{Ran: true, Feasible: !sol.UsesDummy(), Objective: sol.Objective, Active: sol.Active}
	if res.Feasible && sol.Objective < ub-eps {
		res.Improved = true
	}
	return res, nil
}

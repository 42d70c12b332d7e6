// Package master wraps the LP/MIP set-cover oracle the pricing loop
// solves at every node: one covering row per cluster, one column per
// stable set in the shared pool, plus the ever-present dummy column
// that keeps the LP relaxation feasible.
package master

import (
	"math"

	"github.com/lanl/highs"
	"gonum.org/v1/gonum/mat"

	"github.com/solver4all/sgcp-bp/column"
	"github.com/solver4all/sgcp-bp/errs"
	"github.com/solver4all/sgcp-bp/graph"
)

// Solution is the oracle's answer for one solve call: primal values
// per column (indexed like the pool), the objective, and — for an LP
// solve — one dual price per cluster row. Both vectors are wrapped as
// mat.VecDense, mirroring how the pack's other HiGHS callers carry
// solver primal/cost vectors, so downstream code that wants BLAS-style
// vector ops (norms, dot products against a weighting vector) gets
// them without a second conversion.
type Solution struct {
	ColumnValues *mat.VecDense
	Objective    float64
	ClusterDuals *mat.VecDense
	// Active lists the column ids with a nonzero primal value.
	Active []int
}

// UsesDummy reports whether the dummy column (id column.DummyID)
// carries positive weight in this solution.
func (s *Solution) UsesDummy() bool {
	if column.DummyID >= s.ColumnValues.Len() {
		return false
	}
	return s.ColumnValues.AtVec(column.DummyID) > dummyEps
}

const dummyEps = 1e-6

// Oracle builds and solves the set-cover master over a fixed graph
// and the pool's current columns. It is stateless between calls: each
// Solve rebuilds the HiGHS model from the pool snapshot, since the
// pool only grows and never reorders existing columns.
type Oracle struct {
	g *graph.Graph
}

func New(g *graph.Graph) *Oracle {
	return &Oracle{g: g}
}

// Solve runs the LP relaxation (mip=false) or the 0/1 MIP (mip=true)
// over cols, with forbidden columns pinned to zero. timeLimit <= 0
// means no limit. mipStart, only honoured when mip is true, hints an
// initial incumbent by column id (add_mipstart).
func (o *Oracle) Solve(cols []*column.StableSet, forbidden map[int]bool, mip bool, timeLimit float64, mipStart []int) (*Solution, error) {
	numCols := len(cols)
	numClusters := o.g.NumClusters()

	model := &highs.Model{
		ColCosts: make([]float64, numCols),
		ColLower: make([]float64, numCols),
		ColUpper: make([]float64, numCols),
		RowLower: make([]float64, numClusters),
		RowUpper: make([]float64, numClusters),
	}
	if mip {
		model.VarTypes = make([]highs.VariableType, numCols)
	}

	for i, c := range cols {
		model.ColCosts[i] = c.Cost(o.g.N())
		model.ColLower[i] = 0
		if forbidden[c.ID] {
			model.ColUpper[i] = 0
		} else if mip {
			model.ColUpper[i] = 1
			model.VarTypes[i] = highs.IntegerType
		} else {
			model.ColUpper[i] = math.Inf(1)
		}
	}

	for k := 0; k < numClusters; k++ {
		model.RowLower[k] = 1
		model.RowUpper[k] = math.Inf(1)
		for i, c := range cols {
			if c.IntersectsCluster(k) {
				model.ConstMatrix = append(model.ConstMatrix, highs.Nonzero{Row: k, Col: i, Val: 1})
			}
		}
	}

	if timeLimit > 0 {
		model.TimeLimit = timeLimit
	}
	if mip && len(mipStart) > 0 {
		hint := make([]float64, numCols)
		for _, id := range mipStart {
			hint[id] = 1
		}
		model.PrimalStart = hint
	}

	sol, err := model.Solve()
	if err != nil {
		return nil, err
	}
	if sol.Status != highs.Optimal {
		// The dummy column has ub=inf and lb=0 with a very high cost,
		// so the LP relaxation can never legitimately come back
		// non-optimal; only the MIP call is expected to fail this way
		// when no 0/1 cover improves on the incumbent.
		if mip {
			return nil, errs.ErrMIPNoSolution
		}
		return nil, errs.ErrLPInfeasible
	}

	out := &Solution{
		ColumnValues: mat.NewVecDense(numCols, sol.ColumnPrimal),
		Objective:    sol.Objective,
	}
	for i, v := range sol.ColumnPrimal {
		if v > dummyEps {
			out.Active = append(out.Active, cols[i].ID)
		}
	}
	if !mip {
		duals := make([]float64, numClusters)
		copy(duals, sol.RowDual)
		out.ClusterDuals = mat.NewVecDense(numClusters, duals)
	}
	return out, nil
}

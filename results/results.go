// Package results appends one CSV row per solver run (grounded on the
// teacher's analyzer CSV emission) and maintains the on-disk
// best-known-solution cache.
package results

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/solver4all/sgcp-bp/errs"
)

// Row is one run's summary, in the exact column order spec.md §6
// names.
type Row struct {
	Instance string

	// graph metrics
	N, M, P    int
	AvgDegree  float64
	Components int

	NodesSolved, NodesOpen int
	MaxDepth               int
	BranchingsVertex       int
	BranchingsRyanFoster   int

	PricingColumnsRoot    int
	AvgPricingColumnsRest float64
	PoolSize              int

	HeuristicUB    int
	UBAfterRootPricing int
	UBAfterRootOverall int
	FinalUB        int
	LBAfterRoot    float64
	FinalLB        float64

	GapRoot  float64
	GapFinal float64

	TotalTime   float64
	RootTime    float64
	LPTime      float64
	PricingTime float64
}

var header = []string{
	"instance", "n", "m", "p", "avg_degree", "components",
	"nodes_solved", "nodes_open", "max_depth",
	"branchings_vertex", "branchings_ryan_foster",
	"pricing_columns_root", "avg_pricing_columns_rest", "pool_size",
	"heuristic_ub", "ub_after_root_pricing", "ub_after_root_overall", "final_ub",
	"lb_after_root", "final_lb",
	"gap_root", "gap_final",
	"total_time", "root_time", "lp_time", "pricing_time",
}

func (r Row) toRecord() []string {
	f := strconv.FormatFloat
	return []string{
		r.Instance,
		strconv.Itoa(r.N), strconv.Itoa(r.M), strconv.Itoa(r.P),
		f(r.AvgDegree, 'f', 4, 64), strconv.Itoa(r.Components),
		strconv.Itoa(r.NodesSolved), strconv.Itoa(r.NodesOpen), strconv.Itoa(r.MaxDepth),
		strconv.Itoa(r.BranchingsVertex), strconv.Itoa(r.BranchingsRyanFoster),
		strconv.Itoa(r.PricingColumnsRoot), f(r.AvgPricingColumnsRest, 'f', 4, 64), strconv.Itoa(r.PoolSize),
		strconv.Itoa(r.HeuristicUB), strconv.Itoa(r.UBAfterRootPricing), strconv.Itoa(r.UBAfterRootOverall), strconv.Itoa(r.FinalUB),
		f(r.LBAfterRoot, 'f', 4, 64), f(r.FinalLB, 'f', 4, 64),
		f(r.GapRoot, 'f', 4, 64), f(r.GapFinal, 'f', 4, 64),
		f(r.TotalTime, 'f', 4, 64), f(r.RootTime, 'f', 4, 64), f(r.LPTime, 'f', 4, 64), f(r.PricingTime, 'f', 4, 64),
	}
}

// Append writes row to dir/file, creating the file with a header row
// if it does not already exist.
func Append(dir, file string, row Row) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errs.Input("results: create dir "+dir, err)
	}
	path := filepath.Join(dir, file)
	needsHeader := true
	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		needsHeader = false
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errs.Input("results: open "+path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if needsHeader {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("results: write header: %w", err)
		}
	}
	if err := w.Write(row.toRecord()); err != nil {
		return fmt.Errorf("results: write row: %w", err)
	}
	w.Flush()
	return w.Error()
}

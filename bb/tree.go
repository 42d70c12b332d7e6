package bb

import (
	"math"
	"time"

	"gopkg.in/dnaeon/go-priorityqueue.v1"

	"github.com/solver4all/sgcp-bp/column"
	"github.com/solver4all/sgcp-bp/graph"
	"github.com/solver4all/sgcp-bp/logging"
	"github.com/solver4all/sgcp-bp/master"
	"github.com/solver4all/sgcp-bp/mwss"
)

// Strategy picks the priority order the tree explores open nodes in.
type Strategy int

const (
	BestFirst Strategy = iota
	DepthFirst
)

// depthPenalty scales depth into the same priority axis as the LP
// bound for depth-first ordering; bounds are objective values well
// under this in any realistic instance.
const depthPenalty = 1e9

// RepairHook lets a caller plug a heuristic repair pass (this
// module's ALNS engine) in after a strictly-improving MIP heuristic
// solution, without the tree depending on the heuristics package
// directly — the same opaque-collaborator shape as mwss.Solver.
type RepairHook func(g *graph.Graph, seed []int) (newCols [][]int, err error)

// Config bundles everything the tree loop needs beyond the pool and
// oracles.
type Config struct {
	Strategy   Strategy
	Node       NodeConfig
	MIP        MIPConfig
	Repair     RepairHook
	Deadline   time.Time
}

// Tree drives the branch-and-bound search to termination.
type Tree struct {
	pool   *column.Pool
	oracle *master.Oracle
	solver mwss.Solver
	cfg    Config

	queue     *priorityqueue.PriorityQueue[*Node, float64]
	queuedLBs map[int64]float64
	nextID    int64

	UB              float64
	LB              float64
	IncumbentActive []int

	lastMIPPoolSize int

	Stats Stats
}

// Stats accumulates the run-level counters spec.md §6's results row
// reports: node/branching/pricing volumes and the timing breakdown.
type Stats struct {
	NodesSolved          int
	MaxDepth             int
	BranchingsVertex     int
	BranchingsRyanFoster int

	PricingColumnsRoot    int
	pricingColumnsRestSum int
	pricingColumnsRestN   int

	UBAfterRootPricing int
	UBAfterRootOverall int
	LBAfterRoot        float64

	RootTime    float64
	LPTime      float64
	PricingTime float64
}

// AvgPricingColumnsRest is the mean number of columns priced per
// non-root node, or 0 when only the root has been solved.
func (s Stats) AvgPricingColumnsRest() float64 {
	if s.pricingColumnsRestN == 0 {
		return 0
	}
	return float64(s.pricingColumnsRestSum) / float64(s.pricingColumnsRestN)
}

// NewTree seeds the tree with the root node built from g.
func NewTree(g *graph.Graph, pool *column.Pool, oracle *master.Oracle, solver mwss.Solver, cfg Config) *Tree {
	t := &Tree{
		pool:      pool,
		oracle:    oracle,
		solver:    solver,
		cfg:       cfg,
		queue:     priorityqueue.New[*Node, float64](priorityqueue.MinHeap),
		queuedLBs: make(map[int64]float64),
		UB:        math.Inf(1),
		LB:        math.Inf(-1),
	}
	root := &Node{ID: t.nextID, Graph: g, Depth: 0, BoundFromFather: math.Inf(-1)}
	t.nextID++
	t.push(root)
	return t
}

func (t *Tree) priority(n *Node) float64 {
	switch t.cfg.Strategy {
	case DepthFirst:
		return -float64(n.Depth)*depthPenalty + n.BoundFromFather
	default:
		return n.BoundFromFather
	}
}

func (t *Tree) push(n *Node) {
	t.queue.Put(n, t.priority(n))
	t.queuedLBs[n.ID] = n.BoundFromFather
}

func (t *Tree) pop() *Node {
	item := t.queue.Get()
	delete(t.queuedLBs, item.Value.ID)
	return item.Value
}

func (t *Tree) minQueuedBound() float64 {
	min := math.Inf(1)
	for _, b := range t.queuedLBs {
		if b < min {
			min = b
		}
	}
	return min
}

// Result is the outcome of a full tree search.
type Result struct {
	Feasible bool
	Timeout  bool
	Active   []int
	UB       float64
	LB       float64

	NodesOpen int
	PoolSize  int
	Stats     Stats
}

// Run executes the main loop of §4.7 to completion or timeout.
func (t *Tree) Run() (*Result, error) {
	timedOut := false

	for t.queue.Len() > 0 {
		if time.Now().After(t.cfg.Deadline) {
			timedOut = true
			break
		}

		n := t.pop()
		if !n.IsRoot() && math.Ceil(n.BoundFromFather-eps) >= t.UB {
			continue
		}

		nodeStart := time.Now()
		res, err := n.Solve(t.pool, t.oracle, t.solver, t.cfg.Node, t.cfg.Deadline)
		if err != nil {
			return nil, err
		}
		t.Stats.NodesSolved++
		if n.Depth > t.Stats.MaxDepth {
			t.Stats.MaxDepth = n.Depth
		}
		t.Stats.LPTime += res.LPTime
		t.Stats.PricingTime += res.PricingTime
		if n.IsRoot() {
			t.Stats.PricingColumnsRoot = res.ColumnsPriced
			t.Stats.RootTime = time.Since(nodeStart).Seconds()
		} else {
			t.Stats.pricingColumnsRestSum += res.ColumnsPriced
			t.Stats.pricingColumnsRestN++
		}
		switch res.RuleKind {
		case "vertex":
			t.Stats.BranchingsVertex++
		case "ryan_foster":
			t.Stats.BranchingsRyanFoster++
		}

		if res.Timeout {
			t.LB = math.Max(t.LB, res.Bound)
			timedOut = true
			break
		}
		if res.Infeasible {
			if n.IsRoot() {
				t.Stats.UBAfterRootPricing = int(t.UB)
				t.Stats.UBAfterRootOverall = int(t.UB)
			}
			continue
		}
		if res.Bound > t.UB+eps {
			if n.IsRoot() {
				t.Stats.UBAfterRootPricing = int(t.UB)
				t.Stats.UBAfterRootOverall = int(t.UB)
			}
			continue
		}
		if res.Integer {
			if res.Objective < t.UB {
				t.UB = res.Objective
				t.IncumbentActive = res.Active
				logging.L.Infof("bb: new incumbent %.2f at node %d", t.UB, n.ID)
			}
			if n.IsRoot() {
				t.Stats.UBAfterRootPricing = int(t.UB)
				t.Stats.UBAfterRootOverall = int(t.UB)
			}
			continue
		}

		if n.IsRoot() {
			t.Stats.UBAfterRootPricing = int(t.UB)
		}
		t.maybeRunMIPHeuristic(n, res.Objective)
		if n.IsRoot() {
			t.Stats.UBAfterRootOverall = int(t.UB)
		}

		for _, c := range res.Children {
			c.ID = t.nextID
			t.nextID++
			t.push(c)
		}

		// The global bound only ever rises: under DepthFirst exploration
		// the queue's minimum can dip below a bound already established
		// by an earlier, now-closed subtree, so raise rather than assign.
		if t.queue.Len() > 0 {
			t.LB = math.Max(t.LB, t.minQueuedBound())
		} else {
			t.LB = math.Max(t.LB, res.Bound)
		}
		if n.IsRoot() {
			t.Stats.LBAfterRoot = t.LB
		}
	}

	if t.IncumbentActive == nil {
		return &Result{Feasible: false, Timeout: timedOut, UB: t.UB, LB: t.LB,
			NodesOpen: t.queue.Len(), PoolSize: t.pool.Len(), Stats: t.Stats}, nil
	}
	return &Result{Feasible: true, Timeout: timedOut, Active: t.IncumbentActive, UB: t.UB, LB: t.LB,
		NodesOpen: t.queue.Len(), PoolSize: t.pool.Len(), Stats: t.Stats}, nil
}

func (t *Tree) maybeRunMIPHeuristic(n *Node, lpObjective float64) {
	poolSize := t.pool.Len()
	addedSince := poolSize != t.lastMIPPoolSize
	res, err := TryMIPHeuristic(t.oracle, t.pool, n, t.cfg.MIP, lpObjective, t.UB, addedSince, t.IncumbentActive)
	if err != nil {
		logging.L.Warnf("bb: MIP heuristic at node %d failed: %v", n.ID, err)
		return
	}
	if !res.Ran {
		return
	}
	t.lastMIPPoolSize = poolSize
	if !res.Improved {
		return
	}
	t.UB = res.Objective
	t.IncumbentActive = res.Active
	logging.L.Infof("bb: MIP heuristic improved incumbent to %.2f at node %d", t.UB, n.ID)

	if t.cfg.Repair == nil {
		return
	}
	extra, err := t.cfg.Repair(n.Graph, res.Active)
	if err != nil {
		logging.L.Debugf("bb: repair pass after MIP heuristic failed: %v", err)
		return
	}
	for _, ids := range extra {
		t.pool.Add(ids, n.Graph)
	}
}

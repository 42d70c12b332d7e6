// Command solver runs the branch-and-price core and its standalone
// primal heuristics against a single SGCP instance.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/urfave/cli/v2"

	"github.com/solver4all/sgcp-bp/alns"
	"github.com/solver4all/sgcp-bp/bb"
	"github.com/solver4all/sgcp-bp/colouring"
	"github.com/solver4all/sgcp-bp/column"
	"github.com/solver4all/sgcp-bp/config"
	"github.com/solver4all/sgcp-bp/grasp"
	"github.com/solver4all/sgcp-bp/graph"
	"github.com/solver4all/sgcp-bp/initial"
	"github.com/solver4all/sgcp-bp/instance"
	"github.com/solver4all/sgcp-bp/logging"
	"github.com/solver4all/sgcp-bp/master"
	"github.com/solver4all/sgcp-bp/mwss"
	"github.com/solver4all/sgcp-bp/results"
	"github.com/solver4all/sgcp-bp/tabu"
)

func main() {
	app := &cli.App{
		Name:      "solver",
		Usage:     "Branch-and-price solver for the Selective Graph Colouring Problem",
		UsageText: "solver <params.json> <instance> <mode>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "log", Value: 2, Usage: "Verbosity 1-4"},
			&cli.IntFlag{Name: "seed", Value: 1, Usage: "PRNG seed for heuristic modes"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.Args().Len() < 3 {
		return cli.Exit("usage: solver <params.json> <instance> <mode>", 1)
	}
	logging.SetVerbosity(c.Int("log"))

	paramsPath := c.Args().Get(0)
	instPath := c.Args().Get(1)
	mode := c.Args().Get(2)

	params, err := config.Load(paramsPath)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	inst, err := instance.Load(instPath)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	g := graph.Preprocess(inst.G)

	switch mode {
	case "bp":
		return runBP(c, inst, g, params)
	case "greedy":
		col := colouring.Greedy(g)
		fmt.Printf("greedy colours: %d\n", col.NumColours())
	case "tabu":
		return runTabu(c, inst, g, params)
	case "alns":
		return runALNS(c, inst, g, params)
	case "alns-stats":
		return runALNSStats(c, inst, g, params)
	case "grasp":
		return runGRASP(c, inst, g, params)
	case "info":
		printInfo(inst, g)
	case "campelo", "compact", "decomposition":
		return cli.Exit(fmt.Sprintf("mode %q is out of scope for this build", mode), 1)
	default:
		return cli.Exit(fmt.Sprintf("unknown mode %q", mode), 1)
	}
	return nil
}

func printInfo(inst *instance.Instance, g *graph.Graph) {
	sysHost, _ := host.Info()
	fmt.Printf("instance: %s\n", inst.Name)
	fmt.Printf("N=%d M=%d P=%d (after preprocessing: N=%d P=%d)\n", inst.N, inst.M, inst.P, g.N(), g.NumClusters())
	m := g.Metrics()
	fmt.Printf("avg degree=%.2f components=%d\n", m.AvgDegree, m.ComponentCount)
	if sysHost != nil {
		fmt.Printf("host: %s\n", sysHost.Platform)
	}
}

func runBP(c *cli.Context, inst *instance.Instance, g *graph.Graph, p config.Params) error {
	start := time.Now()
	deadline := start.Add(time.Duration(p.BranchAndPrice.TimeLimit * float64(time.Second)))
	solver := &mwss.GreedySolver{}
	oracle := master.New(g)

	var pool *column.Pool
	var seedActive []int
	var seedColours int
	if p.BranchAndPrice.UseInitialSolution {
		seedRng := rngFactory(c.Int("seed"))
		res := initial.Run(g, initial.Params{
			TabuIterationsPerTarget: p.Tabu.Iterations,
			TabuTenure:              p.Tabu.Tenure,
			TabuScore:               scoreFromString(p.Tabu.Score),
			ALNSIterations:          p.ALNS.Iterations,
			ALNSTenure:              p.Tabu.Tenure,
			WorseAcceptP0:           p.ALNS.WAInitialProbability,
			WorseAcceptN:            p.ALNS.Iterations,
			ALNSNewBestMult:         p.ALNS.NewBestMult,
			ALNSNewImprovingMult:    p.ALNS.NewImprovingMult,
			ALNSWorseningMult:       p.ALNS.WorseningMult,
			ALNSDMoves:              p.ALNS.DMoves,
			ALNSRMoves:              p.ALNS.RMoves,
			ALNSLocal:               localSearchFromString(p.ALNS.LocalSearch),
			Rng:                     seedRng,
		})
		// res.Pool already unions every worker's distinct stable sets and
		// carries the dummy at id 0; adopt it directly so SeedColumnIDs
		// stays valid for the tree's own pool.
		pool = res.Pool
		seedActive = res.SeedColumnIDs
		seedColours = res.NumColours
		logging.L.Infof("bp: initial solution seeded with %d colours, %d pool columns", seedColours, res.Pool.Len())
	} else {
		pool = column.NewPool()
	}

	tree := bb.NewTree(g, pool, oracle, solver, bb.Config{
		Strategy: strategyFromString(p.BranchAndPrice.BBExplorationStrategy),
		Node: bb.NodeConfig{
			Multiplier:   p.MWSSMultiplier,
			PriceEps:     1e-6,
			LPTimeLimit:  p.BranchAndPrice.MPTimeLimit,
			MIPTimeLimit: p.BranchAndPrice.MIPHeuristic.TimeLimit,
		},
		MIP: bb.MIPConfig{
			Enabled:       p.BranchAndPrice.MIPHeuristic.Active,
			PoolSizeMax:   p.BranchAndPrice.MIPHeuristic.MaxCols,
			NodeFrequency: p.BranchAndPrice.MIPHeuristic.Frequency,
			TimeLimit:     p.BranchAndPrice.MIPHeuristic.TimeLimit,
		},
		Deadline: deadline,
	})
	if seedColours > 0 {
		tree.UB = float64(seedColours)
		tree.IncumbentActive = seedActive
	}

	res, err := tree.Run()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	elapsed := time.Since(start).Seconds()
	if res.Feasible {
		fmt.Printf("UB=%d LB=%.2f timeout=%v time=%.2fs\n", len(res.Active), res.LB, res.Timeout, elapsed)
	} else {
		fmt.Printf("No solution found (timeout=%v)\n", res.Timeout)
	}

	metrics := g.Metrics()
	stats := res.Stats
	finalUB := intOr(len(res.Active), 0)
	row := results.Row{
		Instance:   inst.Name,
		N:          inst.N,
		M:          inst.M,
		P:          inst.P,
		AvgDegree:  metrics.AvgDegree,
		Components: metrics.ComponentCount,

		NodesSolved:          stats.NodesSolved,
		NodesOpen:            res.NodesOpen,
		MaxDepth:             stats.MaxDepth,
		BranchingsVertex:     stats.BranchingsVertex,
		BranchingsRyanFoster: stats.BranchingsRyanFoster,

		PricingColumnsRoot:    stats.PricingColumnsRoot,
		AvgPricingColumnsRest: stats.AvgPricingColumnsRest(),
		PoolSize:              res.PoolSize,

		HeuristicUB:        seedColours,
		UBAfterRootPricing: stats.UBAfterRootPricing,
		UBAfterRootOverall: stats.UBAfterRootOverall,
		FinalUB:            finalUB,
		LBAfterRoot:        stats.LBAfterRoot,
		FinalLB:            res.LB,

		GapRoot:  gap(float64(stats.UBAfterRootOverall), stats.LBAfterRoot),
		GapFinal: gap(float64(finalUB), res.LB),

		TotalTime:   elapsed,
		RootTime:    stats.RootTime,
		LPTime:      stats.LPTime,
		PricingTime: stats.PricingTime,
	}
	if err := results.Append(p.Results.ResultsDir, p.Results.ResultsFile, row); err != nil {
		logging.L.Warnf("bp: could not append results row: %v", err)
	}
	return nil
}

// gap is the relative optimality gap (ub-lb)/ub, 0 when ub is
// non-positive (nothing solved yet).
func gap(ub, lb float64) float64 {
	if ub <= 0 {
		return 0
	}
	return (ub - lb) / ub
}

func runTabu(c *cli.Context, inst *instance.Instance, g *graph.Graph, p config.Params) error {
	seed := colouring.Greedy(g)
	rng := rngFactory(c.Int("seed"))(0)
	current := seed
	for {
		r := tabu.Run(current, tabu.Params{
			MaxIterations:    p.Tabu.Iterations,
			Tenure:           p.Tabu.Tenure,
			RandomisedTenure: p.Tabu.RandomisedTenure,
			MinTenure:        p.Tabu.MinRndTenure,
			MaxTenure:        p.Tabu.MaxRndTenure,
			Score:            scoreFromString(p.Tabu.Score),
			Rng:              rng,
		})
		if !r.Success {
			break
		}
		current = r.Colouring
	}
	fmt.Printf("tabu colours: %d (from greedy %d)\n", current.NumColours(), seed.NumColours())
	return nil
}

func runALNS(c *cli.Context, inst *instance.Instance, g *graph.Graph, p config.Params) error {
	seed := colouring.Greedy(g)
	res := alns.Run(seed, alns.Params{
		MaxIterations:    p.ALNS.Iterations,
		TabuTenure:       p.Tabu.Tenure,
		Accept:           acceptFromString(p.ALNS.Acceptance, p.ALNS.WAInitialProbability, p.ALNS.Iterations),
		Rng:              rngFactory(c.Int("seed"))(0),
		NewBestMult:      p.ALNS.NewBestMult,
		NewImprovingMult: p.ALNS.NewImprovingMult,
		WorseningMult:    p.ALNS.WorseningMult,
		DMoves:           p.ALNS.DMoves,
		RMoves:           p.ALNS.RMoves,
		Local:            localSearchFromString(p.ALNS.LocalSearch),
	})
	fmt.Printf("alns colours: %d (from greedy %d)\n", res.NumColours, seed.NumColours())
	return nil
}

func runALNSStats(c *cli.Context, inst *instance.Instance, g *graph.Graph, p config.Params) error {
	seed := colouring.Greedy(g)
	best := seed.NumColours()
	for i := 0; i < 5; i++ {
		res := alns.Run(seed, alns.Params{
			MaxIterations:    p.ALNS.Iterations,
			TabuTenure:       p.Tabu.Tenure,
			Accept:           acceptFromString(p.ALNS.Acceptance, p.ALNS.WAInitialProbability, p.ALNS.Iterations),
			Rng:              rngFactory(c.Int("seed"))(i),
			NewBestMult:      p.ALNS.NewBestMult,
			NewImprovingMult: p.ALNS.NewImprovingMult,
			WorseningMult:    p.ALNS.WorseningMult,
			DMoves:           p.ALNS.DMoves,
			RMoves:           p.ALNS.RMoves,
			Local:            localSearchFromString(p.ALNS.LocalSearch),
		})
		fmt.Printf("run %d: %d colours\n", i, res.NumColours)
		if res.NumColours < best {
			best = res.NumColours
		}
	}
	fmt.Printf("best of 5: %d\n", best)
	return nil
}

func runGRASP(c *cli.Context, inst *instance.Instance, g *graph.Graph, p config.Params) error {
	res, err := grasp.Run(g, grasp.Params{
		Iterations: p.GRASP.Iterations,
		Threads:    p.GRASP.Threads,
		MaxWeight:  1000,
		Solver:     &mwss.GreedySolver{},
		NewRand:    rngFactory(c.Int("seed")),
	})
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	fmt.Printf("grasp colours: %d\n", res.NumColours)
	return nil
}

func rngFactory(seed int) func(worker int) *rand.Rand {
	return func(worker int) *rand.Rand {
		return rand.New(rand.NewSource(int64(seed)*1000 + int64(worker)))
	}
}

func scoreFromString(s string) tabu.Score {
	if s == "min" {
		return tabu.ScoreMin
	}
	return tabu.ScoreSum
}

func strategyFromString(s string) bb.Strategy {
	if s == "depth-first" {
		return bb.DepthFirst
	}
	return bb.BestFirst
}

func localSearchFromString(s string) alns.LocalSearch {
	if s == "decrease_by_one" {
		return alns.LocalSearchDecreaseByOne
	}
	return alns.LocalSearchNone
}

func acceptFromString(s string, p0 float64, n int64) alns.AcceptRule {
	switch s {
	case "accept_everything":
		return alns.AcceptEverything
	case "worse_accept":
		return alns.WorseAccept(p0, n)
	default:
		return alns.AcceptNonDeteriorating
	}
}

func intOr(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}

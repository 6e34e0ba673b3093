// Package routing drives the end-to-end pipeline that turns demand pairs
// into a routing scheme: formulate the linear program, hand it to the
// external solver, parse the solution, and recover per-commodity paths.
package routing

import (
	"context"
	"errors"
	"strings"

	"github.com/ruasoliveira/yates/logging"
	"github.com/ruasoliveira/yates/paths"
	"github.com/ruasoliveira/yates/solver"
	"github.com/ruasoliveira/yates/topology"
)

var log = logging.Get()

// Config holds the per-run parameters of the pipeline.
type Config struct {
	// K is the number of edge-disjoint paths requested per commodity.
	K int
	// DemandScale and CapacityScale are the divisors applied when
	// interpreting the objective ratio reported by the solver. Zero
	// values default to 1.
	DemandScale   float64
	CapacityScale float64
}

// Scheme maps each commodity to the weighted paths it is routed on.
// Commodities for which no feasible routing was found have no entry.
type Scheme map[solver.Commodity][]paths.Path

// Router solves commodities one at a time over a fixed topology. Each
// solve is fully sequential: build the program, run the solver, parse and
// decompose. No state is shared between solves.
type Router struct {
	topo   *topology.Topology
	runner solver.Runner
	cfg    Config
}

// New returns a Router over the given topology and solver runner.
func New(topo *topology.Topology, runner solver.Runner, cfg Config) *Router {
	if cfg.DemandScale == 0 {
		cfg.DemandScale = 1
	}
	if cfg.CapacityScale == 0 {
		cfg.CapacityScale = 1
	}
	return &Router{topo: topo, runner: runner, cfg: cfg}
}

// RoutePair computes the k edge-disjoint paths of a single commodity. An
// infeasible request yields an empty path list and no error; errors are
// reserved for malformed topologies, solver failures, and unparsable
// solver output.
func (r *Router) RoutePair(ctx context.Context, c solver.Commodity) ([]paths.Path, error) {
	prog, err := solver.BuildProgram(r.topo, c, r.cfg.K)
	if err != nil {
		return nil, err
	}

	result, solveTime, err := r.runner.Run(ctx, prog.String())
	if err != nil {
		return nil, err
	}

	sol, err := solver.ParseSolution(strings.NewReader(result), r.topo, r.cfg.DemandScale, r.cfg.CapacityScale)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("src", r.topo.Name(c.Src)).
		Str("dst", r.topo.Name(c.Dst)).
		Dur("solve_time", solveTime).
		Float64("objective", sol.Objective).
		Int("flows", len(sol.Flows)).
		Msg("commodity solved")

	groups := solver.Partition(sol.Flows, []solver.Commodity{c})
	return paths.Decompose(len(r.topo.Nodes), c.Src, c.Dst, toFlows(groups[c]))
}

// Route computes a scheme for all pairs. Pairs are independent: a failing
// pair is logged with its identity and failure kind and left out of the
// scheme without aborting the others. Infeasible pairs are left out
// silently, since "no path found" is a valid outcome.
func (r *Router) Route(ctx context.Context, pairs []solver.Commodity) Scheme {
	scheme := Scheme{}
	for _, c := range pairs {
		ps, err := r.RoutePair(ctx, c)
		if err != nil {
			log.Error().
				Str("src", r.topo.Name(c.Src)).
				Str("dst", r.topo.Name(c.Dst)).
				Str("kind", failureKind(err)).
				Err(err).
				Msg("commodity failed")
			continue
		}
		if len(ps) == 0 {
			continue
		}
		scheme[c] = ps
	}
	return scheme
}

// failureKind maps an error to its class in the failure taxonomy, so that
// callers reading the logs can tell a broken topology from a broken
// solver.
func failureKind(err error) string {
	switch {
	case errors.Is(err, topology.ErrNoIngress):
		return "malformed-topology"
	case errors.Is(err, solver.ErrSolver):
		return "solver-process"
	case errors.Is(err, solver.ErrParse):
		return "parse"
	default:
		return "internal"
	}
}

func toFlows(group []solver.FlowEdge) []paths.Flow {
	flows := make([]paths.Flow, len(group))
	for i, fe := range group {
		flows[i] = paths.Flow{From: fe.From, To: fe.To, Amount: fe.Amount}
	}
	return flows
}

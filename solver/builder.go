package solver

import (
	"fmt"

	"github.com/ruasoliveira/yates/lp"
	"github.com/ruasoliveira/yates/topology"
)

// ObjectiveVar is the variable minimized by the external solver. The
// objective-link constraint ties it to the total number of edges carrying
// flow, so minimizing it yields the shortest set of disjoint paths.
const ObjectiveVar = "Z"

// BuildProgram returns the complete program requesting k edge-disjoint
// unit flows for commodity c on topology t.
func BuildProgram(t *topology.Topology, c Commodity, k int) (*lp.Program, error) {
	cs, err := BuildConstraints(t, c, k, nil)
	if err != nil {
		return nil, err
	}
	return &lp.Program{Objective: ObjectiveVar, Constraints: cs}, nil
}

// BuildConstraints appends the constraint system of commodity c to acc and
// returns the extended slice. Passing the result back in allows several
// commodities to share one program.
//
// The system is made of four groups:
//
//   - one unit-capacity bound per switch-to-switch edge,
//   - one path-count constraint anchored at the ingress switch,
//   - one flow-conservation constraint per non-terminal node,
//   - one constraint linking [ObjectiveVar] to the total forward flow.
//
// Edges touching a host carry flow variables but no capacity bound: the
// capacity being modeled is a property of the switch fabric, and the host
// uplink must be able to carry all k unit flows at once.
func BuildConstraints(t *topology.Topology, c Commodity, k int, acc []lp.Constraint) ([]lp.Constraint, error) {
	acc = appendCapacity(t, c, acc)
	acc, err := appendPathCount(t, c, k, acc)
	if err != nil {
		return nil, err
	}
	acc = appendConservation(t, c, acc)
	acc = appendObjectiveLink(t, c, acc)
	return acc, nil
}

// appendCapacity bounds the flow on every switch-to-switch edge by one,
// which is what makes the k unit flows edge-disjoint.
func appendCapacity(t *topology.Topology, c Commodity, acc []lp.Constraint) []lp.Constraint {
	for _, e := range t.Edges {
		if !t.IsSwitch(e.From) || !t.IsSwitch(e.To) {
			continue
		}
		name := fmt.Sprintf("cap_%s--%s_%s--%s",
			t.Name(c.Src), t.Name(c.Dst), t.Name(e.From), t.Name(e.To))
		expr := lp.Expr{{Coeff: 1, Var: flowVar(t, c, e)}}
		acc = append(acc, lp.NewBound(name, expr, 1))
	}
	return acc
}

// appendPathCount requires k net units of flow to leave the ingress switch
// toward the rest of the fabric: over all switch-to-switch edges leaving
// the ingress, the sum of forward minus reverse flow must equal exactly k.
func appendPathCount(t *topology.Topology, c Commodity, k int, acc []lp.Constraint) ([]lp.Constraint, error) {
	ingress, err := t.Ingress(c.Src)
	if err != nil {
		return nil, err
	}

	expr := lp.Expr{}
	for _, ei := range t.Nexts[ingress] {
		e := t.Edges[ei]
		if !t.IsSwitch(e.To) {
			continue
		}
		expr = append(expr,
			lp.Term{Coeff: 1, Var: flowVar(t, c, e)},
			lp.Term{Coeff: -1, Var: flowVarRev(t, c, e)},
		)
	}

	name := fmt.Sprintf("paths_%s--%s", t.Name(c.Src), t.Name(c.Dst))
	return append(acc, lp.NewEq(name, expr, float64(k))), nil
}

// appendConservation balances flow at every node that is neither the
// commodity's source nor its destination: outgoing minus incoming flow
// must be zero. The sums range over all incident edges, host links
// included; for a non-terminal host this pins any transit flow through it
// to zero.
func appendConservation(t *topology.Topology, c Commodity, acc []lp.Constraint) []lp.Constraint {
	for v := range t.Nodes {
		if v == c.Src || v == c.Dst {
			continue
		}
		expr := lp.Expr{}
		for _, ei := range t.Nexts[v] {
			expr = append(expr, lp.Term{Coeff: 1, Var: flowVar(t, c, t.Edges[ei])})
		}
		for _, ei := range t.Prevs[v] {
			expr = append(expr, lp.Term{Coeff: -1, Var: flowVar(t, c, t.Edges[ei])})
		}
		name := fmt.Sprintf("cons_%s--%s_%s", t.Name(c.Src), t.Name(c.Dst), t.Name(v))
		acc = append(acc, lp.NewEq(name, expr, 0))
	}
	return acc
}

// appendObjectiveLink ties the objective variable to the sum of all
// forward flow variables of the commodity, i.e. the total path length in
// edges.
func appendObjectiveLink(t *topology.Topology, c Commodity, acc []lp.Constraint) []lp.Constraint {
	expr := lp.Expr{{Coeff: 1, Var: ObjectiveVar}}
	for _, e := range t.Edges {
		expr = append(expr, lp.Term{Coeff: -1, Var: flowVar(t, c, e)})
	}
	name := fmt.Sprintf("obj_%s--%s", t.Name(c.Src), t.Name(c.Dst))
	return append(acc, lp.NewEq(name, expr, 0))
}

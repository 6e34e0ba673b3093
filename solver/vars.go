package solver

import (
	"fmt"
	"strings"

	"github.com/ruasoliveira/yates/topology"
)

// Commodity identifies one (source, destination) demand pair routed
// independently within a program.
type Commodity struct {
	Src int
	Dst int
}

// flowVar returns the LP variable holding the forward flow of commodity c
// on edge e. The name embeds the four node labels so that the originating
// edge and commodity can be recovered unambiguously from the solver's
// output.
func flowVar(t *topology.Topology, c Commodity, e topology.Edge) string {
	return fmt.Sprintf("f_%s--%s_%s--%s",
		t.Name(c.Src), t.Name(c.Dst), t.Name(e.From), t.Name(e.To))
}

// flowVarRev returns the variable holding the notional reverse flow of
// commodity c on edge e, which is the forward variable of the reversed
// edge. The topology does not need to contain the reversed edge for the
// name to be valid: an unmatched reverse variable only ever appears with a
// negative coefficient in the path-count constraint and is kept at zero by
// the minimizing objective.
func flowVarRev(t *topology.Topology, c Commodity, e topology.Edge) string {
	return fmt.Sprintf("f_%s--%s_%s--%s",
		t.Name(c.Src), t.Name(c.Dst), t.Name(e.To), t.Name(e.From))
}

// splitFlowVar splits a flow variable name into its four node labels
// (demand source, demand destination, edge source, edge destination). It
// returns false if the token does not have the flow variable shape.
func splitFlowVar(tok string) ([4]string, bool) {
	rest, ok := strings.CutPrefix(tok, "f_")
	if !ok {
		return [4]string{}, false
	}
	demand, edge, ok := strings.Cut(rest, "_")
	if !ok {
		return [4]string{}, false
	}
	dSrc, dDst, ok := strings.Cut(demand, "--")
	if !ok {
		return [4]string{}, false
	}
	eSrc, eDst, ok := strings.Cut(edge, "--")
	if !ok {
		return [4]string{}, false
	}
	if dSrc == "" || dDst == "" || eSrc == "" || eDst == "" {
		return [4]string{}, false
	}
	return [4]string{dSrc, dDst, eSrc, eDst}, true
}

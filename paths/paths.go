// Package paths reconstructs end-to-end paths from the per-edge flows the
// solver assigned to a single commodity.
package paths

import (
	"fmt"
	"math"
	"strings"

	"github.com/rhartert/sparsesets"
	"github.com/rhartert/yagh"
)

// epsilon is the threshold under which a remaining flow amount is treated
// as exhausted.
const epsilon = 1e-6

// Flow is the amount of flow sent over one edge.
type Flow struct {
	From   int
	To     int
	Amount float64
}

// Path is a weighted node sequence from a commodity's source to its
// destination. Weight is the amount of flow the path carries.
type Path struct {
	Nodes  []int
	Weight float64
}

// String returns the path as a sequence of nodes separated by " -> ".
// For example: "0 -> 4 -> 3 -> 1".
func (p Path) String() string {
	sb := strings.Builder{}
	for i := 0; i < len(p.Nodes)-1; i++ {
		sb.WriteString(fmt.Sprintf("%d -> ", p.Nodes[i]))
	}
	if len(p.Nodes) > 0 {
		sb.WriteString(fmt.Sprintf("%d", p.Nodes[len(p.Nodes)-1]))
	}
	return sb.String()
}

// Decompose greedily extracts weighted paths from the flow group of one
// commodity. While the source still has outgoing flow, a walk follows the
// outgoing flow with the highest remaining amount until it reaches dst;
// the walk's bottleneck amount becomes the path weight and is subtracted
// from every edge along it.
//
// An empty flow group decomposes into no paths and no error: a commodity
// for which the solver found no feasible flow is a valid, empty result.
//
// Decompose returns an error if the flows do not form src-to-dst walks
// (a walk strands before dst or revisits a node), which indicates a
// solution violating flow conservation.
func Decompose(nNodes int, src, dst int, flows []Flow) ([]Path, error) {
	remaining := make([]float64, len(flows))
	outgoing := make([][]int, nNodes)
	for i, f := range flows {
		remaining[i] = f.Amount
		outgoing[f.From] = append(outgoing[f.From], i)
	}

	visited := sparsesets.New(nNodes)
	var result []Path
	for hasOut(outgoing[src], remaining) {
		nodes := []int{src}
		walk := []int{} // flow indices of the current walk
		bottleneck := math.Inf(1)

		visited.Clear()
		visited.Insert(src)

		u := src
		for u != dst {
			i, ok := maxOut(outgoing[u], remaining)
			if !ok {
				return nil, fmt.Errorf("paths: flow stranded at node %d", u)
			}
			v := flows[i].To
			if visited.Contains(v) {
				return nil, fmt.Errorf("paths: flow revisits node %d", v)
			}
			visited.Insert(v)

			walk = append(walk, i)
			nodes = append(nodes, v)
			if remaining[i] < bottleneck {
				bottleneck = remaining[i]
			}
			u = v
		}

		for _, i := range walk {
			remaining[i] -= bottleneck
		}
		result = append(result, Path{Nodes: nodes, Weight: bottleneck})
	}

	return result, nil
}

// maxOut returns the index of the flow with the highest remaining amount
// among the outgoing flows of a node. Amounts are negated so that the
// map's minimum entry is the largest remaining flow.
func maxOut(out []int, remaining []float64) (int, bool) {
	h := yagh.New[float64](len(remaining))
	for _, i := range out {
		if remaining[i] > epsilon {
			h.Put(i, -remaining[i])
		}
	}
	if h.Size() == 0 {
		return 0, false
	}
	return h.Pop().Elem, true
}

// hasOut returns true if the node still has outgoing flow to route.
func hasOut(out []int, remaining []float64) bool {
	for _, i := range out {
		if remaining[i] > epsilon {
			return true
		}
	}
	return false
}

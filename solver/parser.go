package solver

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/ruasoliveira/yates/topology"
)

// ErrParse is returned when the solver's result file cannot be mapped back
// to the topology.
var ErrParse = errors.New("malformed solver output")

// Solution is the parsed content of a solver result file.
type Solution struct {
	Objective float64
	Flows     []FlowRecord
}

// FlowRecord is the amount of flow a commodity sends over one edge.
type FlowRecord struct {
	Commodity Commodity
	From      int
	To        int
	Amount    float64
}

// lineKind tags the classification of a single result file line.
type lineKind int8

const (
	lineComment lineKind = iota
	lineObjective
	lineFlow
	lineOther
)

// resultLine is one classified line of a result file. Only the fields of
// the matching kind are meaningful.
type resultLine struct {
	kind   lineKind
	ratio  float64   // objective ratio (lineObjective)
	names  [4]string // demand src, demand dst, edge src, edge dst (lineFlow)
	amount float64   // flow amount (lineFlow)
}

// classifyLine sorts a line into the result file grammar: "#" comments,
// "Z <ratio>" objective lines, "f_<a>--<b>_<c>--<d> <amount>" flow
// assignments, and everything else. Lines that merely resemble a flow
// assignment without matching its shape are classified as other: the
// grammar stays forward compatible with solver chatter.
func classifyLine(line string) (resultLine, error) {
	switch {
	case strings.HasPrefix(line, "#"):
		return resultLine{kind: lineComment}, nil

	case strings.HasPrefix(line, "Z"):
		ratio, err := strconv.ParseFloat(strings.TrimSpace(line[1:]), 64)
		if err != nil {
			return resultLine{}, fmt.Errorf("%w: objective line %q", ErrParse, line)
		}
		return resultLine{kind: lineObjective, ratio: ratio}, nil

	case strings.HasPrefix(line, "f_"):
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return resultLine{kind: lineOther}, nil
		}
		names, ok := splitFlowVar(fields[0])
		if !ok {
			return resultLine{kind: lineOther}, nil
		}
		amount, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return resultLine{kind: lineOther}, nil
		}
		return resultLine{kind: lineFlow, names: names, amount: amount}, nil

	default:
		return resultLine{kind: lineOther}, nil
	}
}

// ParseSolution reads a solver result file and returns the objective value
// and the list of non-zero flow records. The reported objective ratio is
// scaled by demandScale/capacityScale; only the first objective line is
// authoritative. Node labels are resolved through a fresh index built from
// the topology, and an unresolvable label is a parse error carrying the
// offending line.
//
// Parsing the same content twice yields identical solutions: the parser
// keeps no state between calls.
func ParseSolution(r io.Reader, t *topology.Topology, demandScale, capacityScale float64) (Solution, error) {
	idx := t.NameIndex()
	sol := Solution{}
	haveObjective := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		rl, err := classifyLine(line)
		if err != nil {
			return Solution{}, err
		}

		switch rl.kind {
		case lineObjective:
			if haveObjective {
				continue
			}
			sol.Objective = rl.ratio * demandScale / capacityScale
			haveObjective = true

		case lineFlow:
			if rl.amount == 0 {
				continue // zero flows are not materially significant
			}
			rec, err := resolveFlow(rl, idx)
			if err != nil {
				return Solution{}, pkgerrors.Wrapf(err, "line %q", line)
			}
			sol.Flows = append(sol.Flows, rec)
		}
	}
	if err := scanner.Err(); err != nil {
		return Solution{}, pkgerrors.Wrap(err, "reading solver output")
	}

	return sol, nil
}

// resolveFlow maps the four node labels of a flow line to node IDs.
func resolveFlow(rl resultLine, idx map[string]int) (FlowRecord, error) {
	var ids [4]int
	for i, name := range rl.names {
		v, ok := idx[name]
		if !ok {
			return FlowRecord{}, fmt.Errorf("%w: unknown node %q", ErrParse, name)
		}
		ids[i] = v
	}
	return FlowRecord{
		Commodity: Commodity{Src: ids[0], Dst: ids[1]},
		From:      ids[2],
		To:        ids[3],
		Amount:    rl.amount,
	}, nil
}

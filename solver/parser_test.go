package solver

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassifyLine(t *testing.T) {
	testCases := []struct {
		desc string
		line string
		want lineKind
	}{
		{"comment", "# Solution for model obj", lineComment},
		{"objective", "Z 0.5", lineObjective},
		{"flow", "f_h0--h5_s1--s2 1", lineFlow},
		{"zero flow", "f_h0--h5_s1--s2 0", lineFlow},
		{"blank", "", lineOther},
		{"chatter", "Optimal objective 4e+00", lineOther},
		{"flow shape without amount", "f_h0--h5_s1--s2", lineOther},
		{"flow shape with bad amount", "f_h0--h5_s1--s2 x", lineOther},
		{"flow shape with missing edge", "f_h0--h5 1", lineOther},
		{"flow prefix only", "f_oo 1", lineOther},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			got, err := classifyLine(tc.line)
			if err != nil {
				t.Fatalf("classifyLine(%q): unexpected error: %s", tc.line, err)
			}
			if got.kind != tc.want {
				t.Errorf("classifyLine(%q): want kind %d, got %d", tc.line, tc.want, got.kind)
			}
		})
	}
}

func TestClassifyLineMalformedObjective(t *testing.T) {
	if _, err := classifyLine("Z not-a-number"); !errors.Is(err, ErrParse) {
		t.Errorf("classifyLine(): want ErrParse, got %v", err)
	}
}

func TestVarNameRoundTrip(t *testing.T) {
	topo := diamondTopology()
	c := Commodity{Src: 0, Dst: 5}

	for _, e := range topo.Edges {
		line := flowVar(topo, c, e) + " 1"

		sol, err := ParseSolution(strings.NewReader(line), topo, 1, 1)
		if err != nil {
			t.Fatalf("ParseSolution(%q): unexpected error: %s", line, err)
		}

		want := []FlowRecord{{Commodity: c, From: e.From, To: e.To, Amount: 1}}
		if diff := cmp.Diff(want, sol.Flows); diff != "" {
			t.Errorf("round trip of %q: mismatch (-want +got):\n%s", line, diff)
		}
	}
}

const sampleResult = `# Solution for model obj
# Objective value = 4
Z 0.5
f_h0--h5_h0--s1 1
f_h0--h5_s1--s2 1
f_h0--h5_s1--s3 0
f_h0--h5_s2--s4 1
f_h0--h5_s4--h5 1
some solver chatter
`

func TestParseSolution(t *testing.T) {
	topo := diamondTopology()

	sol, err := ParseSolution(strings.NewReader(sampleResult), topo, 1, 1)
	if err != nil {
		t.Fatalf("ParseSolution(): unexpected error: %s", err)
	}

	c := Commodity{Src: 0, Dst: 5}
	want := Solution{
		Objective: 0.5,
		Flows: []FlowRecord{
			{Commodity: c, From: 0, To: 1, Amount: 1},
			{Commodity: c, From: 1, To: 2, Amount: 1},
			{Commodity: c, From: 2, To: 4, Amount: 1},
			{Commodity: c, From: 4, To: 5, Amount: 1},
		},
	}
	if diff := cmp.Diff(want, sol); diff != "" {
		t.Errorf("ParseSolution(): mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSolutionIdempotent(t *testing.T) {
	topo := diamondTopology()

	first, err := ParseSolution(strings.NewReader(sampleResult), topo, 2, 4)
	if err != nil {
		t.Fatalf("ParseSolution(): unexpected error: %s", err)
	}
	second, err := ParseSolution(strings.NewReader(sampleResult), topo, 2, 4)
	if err != nil {
		t.Fatalf("ParseSolution(): unexpected error: %s", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("ParseSolution() is not idempotent (-first +second):\n%s", diff)
	}
}

func TestParseSolutionDropsZeroFlows(t *testing.T) {
	topo := diamondTopology()
	in := strings.Repeat("f_h0--h5_s1--s2 0\n", 10) + "f_h0--h5_s1--s3 0.0\n"

	sol, err := ParseSolution(strings.NewReader(in), topo, 1, 1)
	if err != nil {
		t.Fatalf("ParseSolution(): unexpected error: %s", err)
	}
	if len(sol.Flows) != 0 {
		t.Errorf("zero flows must be dropped, got %d records", len(sol.Flows))
	}
}

func TestParseSolutionObjectiveOnly(t *testing.T) {
	topo := diamondTopology()

	sol, err := ParseSolution(strings.NewReader("Z 0.5\n"), topo, 8, 2)
	if err != nil {
		t.Fatalf("ParseSolution(): unexpected error: %s", err)
	}
	if want := 0.5 * 8 / 2; sol.Objective != want {
		t.Errorf("objective: want %g, got %g", want, sol.Objective)
	}
	if len(sol.Flows) != 0 {
		t.Errorf("want empty flow list, got %d records", len(sol.Flows))
	}
}

func TestParseSolutionFirstObjectiveWins(t *testing.T) {
	topo := diamondTopology()

	sol, err := ParseSolution(strings.NewReader("Z 0.25\nZ 0.75\n"), topo, 1, 1)
	if err != nil {
		t.Fatalf("ParseSolution(): unexpected error: %s", err)
	}
	if sol.Objective != 0.25 {
		t.Errorf("objective: want 0.25, got %g", sol.Objective)
	}
}

func TestParseSolutionUnknownNode(t *testing.T) {
	topo := diamondTopology()

	_, err := ParseSolution(strings.NewReader("f_h0--h9_s1--s2 1\n"), topo, 1, 1)
	if !errors.Is(err, ErrParse) {
		t.Fatalf("ParseSolution(): want ErrParse, got %v", err)
	}
	if !strings.Contains(err.Error(), "h9") {
		t.Errorf("error should name the unresolvable token, got %q", err)
	}
}

package lp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConstraintString(t *testing.T) {
	testCases := []struct {
		desc       string
		constraint Constraint
		want       string
	}{
		{
			desc:       "upper bound",
			constraint: NewBound("cap_a--b", Expr{{1, "x"}}, 1),
			want:       "cap_a--b: + 1 x <= 1",
		},
		{
			desc:       "equality with mixed signs",
			constraint: NewEq("cons_v", Expr{{1, "x"}, {-1, "y"}}, 0),
			want:       "cons_v: + 1 x - 1 y = 0",
		},
		{
			desc:       "fractional constant",
			constraint: NewEq("k_a--b", Expr{{1, "x"}}, 2.5),
			want:       "k_a--b: + 1 x = 2.5",
		},
		{
			desc:       "empty expression",
			constraint: NewEq("cons_h", nil, 0),
			want:       "cons_h: = 0",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			if got := tc.constraint.String(); got != tc.want {
				t.Errorf("String(): want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestProgramString(t *testing.T) {
	p := &Program{
		Objective: "Z",
		Constraints: []Constraint{
			NewBound("cap_a--b", Expr{{1, "f_x--y_a--b"}}, 1),
			NewEq("obj_x--y", Expr{{1, "Z"}, {-1, "f_x--y_a--b"}}, 0),
		},
	}

	want := "Minimize\n" +
		" obj: Z\n" +
		"Subject To\n" +
		" cap_a--b: + 1 f_x--y_a--b <= 1\n" +
		" obj_x--y: + 1 Z - 1 f_x--y_a--b = 0\n" +
		"End\n"

	if diff := cmp.Diff(want, p.String()); diff != "" {
		t.Errorf("String(): mismatch (-want +got):\n%s", diff)
	}
}

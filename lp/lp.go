// Package lp provides a minimal model of linear programs and their
// serialization in the LP text format understood by command line solvers
// such as gurobi_cl and glpsol.
package lp

import (
	"strconv"
	"strings"
)

// Op is the relation between a constraint's expression and its constant.
type Op int8

const (
	// Eq constrains the expression to equal the constant.
	Eq Op = iota
	// Leq constrains the expression to be at most the constant.
	Leq
)

// Term is a single coefficient/variable product in a linear expression.
type Term struct {
	Coeff float64
	Var   string
}

// Expr is a linear expression over named variables.
type Expr []Term

// Constraint relates a linear expression to a constant. Constraint names
// must be unique within one program; they carry no numeric meaning and
// only help when reading a serialized program.
type Constraint struct {
	Name string
	Expr Expr
	Op   Op
	RHS  float64
}

// NewEq returns the constraint "expr = rhs".
func NewEq(name string, expr Expr, rhs float64) Constraint {
	return Constraint{Name: name, Expr: expr, Op: Eq, RHS: rhs}
}

// NewBound returns the constraint "expr <= bound".
func NewBound(name string, expr Expr, bound float64) Constraint {
	return Constraint{Name: name, Expr: expr, Op: Leq, RHS: bound}
}

// String returns the constraint as one LP format row, e.g.
// "cap_a--b: + 1 x - 1 y <= 1".
func (c Constraint) String() string {
	sb := strings.Builder{}
	sb.WriteString(c.Name)
	sb.WriteString(":")
	for _, t := range c.Expr {
		if t.Coeff < 0 {
			sb.WriteString(" - ")
			sb.WriteString(formatNum(-t.Coeff))
		} else {
			sb.WriteString(" + ")
			sb.WriteString(formatNum(t.Coeff))
		}
		sb.WriteString(" ")
		sb.WriteString(t.Var)
	}
	switch c.Op {
	case Leq:
		sb.WriteString(" <= ")
	default:
		sb.WriteString(" = ")
	}
	sb.WriteString(formatNum(c.RHS))
	return sb.String()
}

// Program is an objective variable to be minimized plus an ordered list of
// constraints. Variables that appear in constraints but are never bounded
// take the LP format's default bounds.
type Program struct {
	Objective   string
	Constraints []Constraint
}

// String serializes the program in the LP text format.
func (p *Program) String() string {
	sb := strings.Builder{}
	sb.WriteString("Minimize\n")
	sb.WriteString(" obj: ")
	sb.WriteString(p.Objective)
	sb.WriteString("\nSubject To\n")
	for _, c := range p.Constraints {
		sb.WriteString(" ")
		sb.WriteString(c.String())
		sb.WriteString("\n")
	}
	sb.WriteString("End\n")
	return sb.String()
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// SPDX-License-Identifier: MIT

package mip

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for model construction and solving.
var (
	ErrBadProgram    = errors.New("mip: malformed program")
	ErrInfeasible    = errors.New("mip: program is infeasible")
	ErrUnbounded     = errors.New("mip: program is unbounded")
	ErrNodeLimit     = errors.New("mip: node limit reached without a feasible solution")
	ErrSolverFailed  = errors.New("mip: solver failure")
	ErrSessionClosed = errors.New("mip: session is closed")
)

// Sense selects minimisation or maximisation.
type Sense int

const (
	// Minimize the objective.
	Minimize Sense = iota
	// Maximize the objective.
	Maximize
)

// Kind is the domain of a variable.
type Kind int

const (
	// Continuous variables take any real value within their bounds.
	Continuous Kind = iota
	// Integer variables take integral values within their bounds.
	Integer
	// Binary variables take 0 or 1.
	Binary
)

// Relation is the comparison of a constraint row.
type Relation int

const (
	// LessEq is Σ a·x ≤ rhs.
	LessEq Relation = iota
	// GreaterEq is Σ a·x ≥ rhs.
	GreaterEq
	// Equal is Σ a·x = rhs.
	Equal
)

// String returns the relation symbol.
func (r Relation) String() string {
	switch r {
	case LessEq:
		return "<="
	case GreaterEq:
		return ">="
	case Equal:
		return "="
	}

	return "?"
}

// Variable is one decision variable. Lower must be finite; Upper may be +Inf.
type Variable struct {
	Name  string
	Kind  Kind
	Lower float64
	Upper float64
}

// Term is a coefficient on a variable index.
type Term struct {
	Var   int
	Coeff float64
}

// Constraint is one linear row: Σ Terms rel RHS.
type Constraint struct {
	Name     string
	Terms    []Term
	Relation Relation
	RHS      float64
}

// Program is a mixed-integer linear program.
type Program struct {
	Sense       Sense
	Variables   []Variable
	Objective   []float64 // one coefficient per variable
	Constraints []Constraint
}

// NewProgram returns an empty program with the given sense.
func NewProgram(sense Sense) *Program {
	return &Program{Sense: sense}
}

// AddVariable appends v with objective coefficient 0 and returns its index.
func (p *Program) AddVariable(v Variable) int {
	if v.Kind == Binary {
		v.Lower, v.Upper = 0, 1
	}
	p.Variables = append(p.Variables, v)
	p.Objective = append(p.Objective, 0)

	return len(p.Variables) - 1
}

// AddBinary appends a {0,1} variable and returns its index.
func (p *Program) AddBinary(name string) int {
	return p.AddVariable(Variable{Name: name, Kind: Binary})
}

// AddContinuous appends a continuous variable with bounds [lower, upper].
func (p *Program) AddContinuous(name string, lower, upper float64) int {
	return p.AddVariable(Variable{Name: name, Kind: Continuous, Lower: lower, Upper: upper})
}

// SetObjective sets the objective coefficient of variable j.
func (p *Program) SetObjective(j int, coeff float64) error {
	if j < 0 || j >= len(p.Variables) {
		return fmt.Errorf("SetObjective(%d): %w", j, ErrBadProgram)
	}
	p.Objective[j] = coeff

	return nil
}

// AddConstraint appends a row after checking its variable indices.
func (p *Program) AddConstraint(c Constraint) error {
	for _, t := range c.Terms {
		if t.Var < 0 || t.Var >= len(p.Variables) {
			return fmt.Errorf("AddConstraint(%q): variable %d: %w", c.Name, t.Var, ErrBadProgram)
		}
	}
	p.Constraints = append(p.Constraints, c)

	return nil
}

// Evaluate returns the objective at x.
func (p *Program) Evaluate(x []float64) float64 {
	var obj float64
	for j, c := range p.Objective {
		obj += c * x[j]
	}

	return obj
}

// Satisfies reports whether x meets every bound and constraint within tol.
func (p *Program) Satisfies(x []float64, tol float64) bool {
	if len(x) != len(p.Variables) {
		return false
	}
	for j, v := range p.Variables {
		if x[j] < v.Lower-tol || x[j] > v.Upper+tol {
			return false
		}
		if v.Kind != Continuous && math.Abs(x[j]-math.Round(x[j])) > tol {
			return false
		}
	}
	for _, c := range p.Constraints {
		var lhs float64
		for _, t := range c.Terms {
			lhs += t.Coeff * x[t.Var]
		}
		if !holds(lhs, c.Relation, c.RHS, tol) {
			return false
		}
	}

	return true
}

// Validate checks bounds, indices and finiteness of every coefficient.
func (p *Program) Validate() error {
	if p.Sense != Minimize && p.Sense != Maximize {
		return fmt.Errorf("sense %d: %w", p.Sense, ErrBadProgram)
	}
	if len(p.Objective) != len(p.Variables) {
		return fmt.Errorf("objective has %d coefficients for %d variables: %w",
			len(p.Objective), len(p.Variables), ErrBadProgram)
	}
	for j, v := range p.Variables {
		if math.IsNaN(v.Lower) || math.IsInf(v.Lower, 0) || math.IsNaN(v.Upper) || v.Upper < v.Lower {
			return fmt.Errorf("variable %q bounds [%g,%g]: %w", v.Name, v.Lower, v.Upper, ErrBadProgram)
		}
		if !finite(p.Objective[j]) {
			return fmt.Errorf("objective of %q: %w", v.Name, ErrBadProgram)
		}
	}
	for _, c := range p.Constraints {
		if !finite(c.RHS) || c.Relation < LessEq || c.Relation > Equal {
			return fmt.Errorf("constraint %q: %w", c.Name, ErrBadProgram)
		}
		for _, t := range c.Terms {
			if t.Var < 0 || t.Var >= len(p.Variables) || !finite(t.Coeff) {
				return fmt.Errorf("constraint %q term %d: %w", c.Name, t.Var, ErrBadProgram)
			}
		}
	}

	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func holds(lhs float64, rel Relation, rhs, tol float64) bool {
	switch rel {
	case LessEq:
		return lhs <= rhs+tol
	case GreaterEq:
		return lhs >= rhs-tol
	}

	return math.Abs(lhs-rhs) <= tol
}

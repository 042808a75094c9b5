// SPDX-License-Identifier: MIT

package mip

import "math"

// Status describes the quality of a returned solution.
type Status int

const (
	// Optimal means the search space was exhausted.
	Optimal Status = iota
	// Feasible means the node budget ran out after an incumbent was found.
	Feasible
)

// Solution is the outcome of a successful Solve.
type Solution struct {
	Status    Status
	Objective float64
	Values    []float64 // one value per program variable
	Nodes     int       // branch-and-bound nodes explored
}

// Value returns the value of variable j.
func (s *Solution) Value(j int) float64 { return s.Values[j] }

// IsSet reports whether an integer or binary variable j is at 1 (rounded).
func (s *Solution) IsSet(j int) bool { return math.Round(s.Values[j]) == 1 }

// Solver opens solver sessions.
type Solver interface {
	Open() (Session, error)
}

// Session solves programs until closed. Close releases the session's
// resources and is safe to call more than once.
type Session interface {
	Solve(p *Program) (*Solution, error)
	Close() error
}

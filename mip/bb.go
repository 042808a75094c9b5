// SPDX-License-Identifier: MIT

// Package mip — Branch-and-Bound over LP relaxations.
//
// The engine keeps per-variable bounds (lo, hi) for the current node and
// tightens them as it branches. Each node:
//  1. Solves the LP relaxation under the node bounds (relax.go).
//  2. Prunes when infeasible or when its bound cannot beat the incumbent.
//  3. Records an incumbent when every integer variable is integral.
//  4. Otherwise branches on the most fractional integer variable,
//     exploring the nearer rounding first (index tie-break).
//
// Internally the engine always minimises sign·cᵀx with sign = -1 for
// Maximize, so pruning uses a single comparison direction.

package mip

import (
	"errors"
	"fmt"
	"math"
)

// Options configures BranchAndBound.
//
// Fields:
//   - Tol      — LP tolerance handed to the simplex and used for pruning.
//   - IntTol   — distance from an integer below which a value counts as integral.
//   - MaxNodes — node budget; 0 means DefaultMaxNodes.
type Options struct {
	Tol      float64
	IntTol   float64
	MaxNodes int
}

// DefaultMaxNodes bounds the search when Options.MaxNodes is zero.
const DefaultMaxNodes = 1 << 16

// DefaultOptions returns the tolerances used by NewBranchAndBound.
func DefaultOptions() Options {
	return Options{Tol: 1e-9, IntTol: 1e-6, MaxNodes: DefaultMaxNodes}
}

// BranchAndBound is a Solver for small programs. It keeps no state between
// sessions.
type BranchAndBound struct {
	opts Options
}

var _ Solver = (*BranchAndBound)(nil)

// NewBranchAndBound returns a solver with the given options.
// Panics on negative tolerances or node budget.
func NewBranchAndBound(opts Options) *BranchAndBound {
	if opts.Tol < 0 || opts.IntTol < 0 || opts.MaxNodes < 0 {
		panic("mip: NewBranchAndBound(negative option)")
	}
	if opts.MaxNodes == 0 {
		opts.MaxNodes = DefaultMaxNodes
	}

	return &BranchAndBound{opts: opts}
}

// Open starts a session.
func (s *BranchAndBound) Open() (Session, error) {
	return &bbSession{opts: s.opts}, nil
}

// bbSession owns the engine scratch buffers between Solve calls.
type bbSession struct {
	opts   Options
	closed bool
	lo, hi []float64
}

// Solve runs branch-and-bound on p.
func (s *bbSession) Solve(p *Program) (*Solution, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	n := len(p.Variables)
	if cap(s.lo) < n {
		s.lo, s.hi = make([]float64, n), make([]float64, n)
	}
	s.lo, s.hi = s.lo[:n], s.hi[:n]
	for j, v := range p.Variables {
		s.lo[j], s.hi[j] = v.Lower, v.Upper
		if v.Kind != Continuous {
			// integral bounds only
			s.lo[j], s.hi[j] = math.Ceil(v.Lower-s.opts.IntTol), math.Floor(v.Upper+s.opts.IntTol)
			if s.lo[j] > s.hi[j] {
				return nil, ErrInfeasible
			}
		}
	}

	e := &bbEngine{
		prog:     p,
		sign:     1,
		tol:      s.opts.Tol,
		intTol:   s.opts.IntTol,
		maxNodes: s.opts.MaxNodes,
		lo:       s.lo,
		hi:       s.hi,
		bestObj:  math.Inf(1),
	}
	if p.Sense == Maximize {
		e.sign = -1
	}

	err := e.search()
	switch {
	case errors.Is(err, ErrNodeLimit) && e.found:
		return e.solution(Feasible), nil
	case err != nil:
		return nil, err
	case !e.found:
		return nil, ErrInfeasible
	}

	return e.solution(Optimal), nil
}

// Close drops the scratch buffers. Subsequent Solve calls fail.
func (s *bbSession) Close() error {
	s.closed = true
	s.lo, s.hi = nil, nil

	return nil
}

// bbEngine holds the search state of one Solve.
type bbEngine struct {
	prog     *Program
	sign     float64
	tol      float64
	intTol   float64
	maxNodes int
	nodes    int

	// current node bounds
	lo, hi []float64

	// incumbent
	found   bool
	bestObj float64 // sign-adjusted
	bestX   []float64
}

// search explores the current node and its subtree.
func (e *bbEngine) search() error {
	e.nodes++
	if e.nodes > e.maxNodes {
		return ErrNodeLimit
	}

	obj, x, err := e.relax()
	if errors.Is(err, ErrInfeasible) {
		return nil
	}
	if errors.Is(err, ErrSolverFailed) {
		// No bound for this node: split an unfixed integer variable blindly.
		if j := e.unfixedVar(); j >= 0 {
			mid := e.lo[j]
			if !math.IsInf(e.hi[j], 1) {
				mid = math.Floor((e.lo[j] + e.hi[j]) / 2)
			}
			return e.branch(j, mid, mid+1, false)
		}
	}
	if err != nil {
		return err
	}
	if e.found && obj >= e.bestObj-e.tol {
		return nil
	}

	j := e.branchVar(x)
	if j < 0 {
		e.record(obj, x)
		return nil
	}

	down, up := math.Floor(x[j]), math.Ceil(x[j])

	return e.branch(j, down, up, x[j]-down > up-x[j])
}

// branch searches x[j] ≤ down and then x[j] ≥ up, or the reverse when
// upFirst is set.
func (e *bbEngine) branch(j int, down, up float64, upFirst bool) error {
	lo, hi := e.lo[j], e.hi[j]
	first, second := [2]float64{lo, down}, [2]float64{up, hi}
	if upFirst {
		first, second = second, first
	}
	for _, b := range [2][2]float64{first, second} {
		if b[0] > b[1] {
			continue
		}
		e.lo[j], e.hi[j] = b[0], b[1]
		err := e.search()
		e.lo[j], e.hi[j] = lo, hi
		if err != nil {
			return err
		}
	}

	return nil
}

// branchVar returns the most fractional integer variable, or -1.
func (e *bbEngine) branchVar(x []float64) int {
	best, bestFrac := -1, 0.0
	for j, v := range e.prog.Variables {
		if v.Kind == Continuous {
			continue
		}
		f := x[j] - math.Floor(x[j])
		frac := math.Min(f, 1-f)
		if frac > e.intTol && frac > bestFrac {
			best, bestFrac = j, frac
		}
	}

	return best
}

// unfixedVar returns the first integer variable whose node bounds still
// differ, or -1.
func (e *bbEngine) unfixedVar() int {
	for j, v := range e.prog.Variables {
		if v.Kind != Continuous && e.hi[j] > e.lo[j] {
			return j
		}
	}

	return -1
}

// record stores x as the incumbent, snapping integer variables.
func (e *bbEngine) record(obj float64, x []float64) {
	e.found = true
	e.bestObj = obj
	e.bestX = make([]float64, len(x))
	copy(e.bestX, x)
	for j, v := range e.prog.Variables {
		if v.Kind != Continuous {
			e.bestX[j] = math.Round(e.bestX[j])
		}
	}
}

func (e *bbEngine) solution(st Status) *Solution {
	return &Solution{
		Status:    st,
		Objective: e.prog.Evaluate(e.bestX),
		Values:    e.bestX,
		Nodes:     e.nodes,
	}
}

// solverErrorf wraps an LP failure as ErrSolverFailed.
func solverErrorf(err error) error {
	return fmt.Errorf("%w: %v", ErrSolverFailed, err)
}

// SPDX-License-Identifier: MIT

package svm

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/multiplicity/dataset"
	"github.com/katalvlaran/multiplicity/linear"
	"github.com/katalvlaran/multiplicity/mip"
)

// DefaultC relaxes the margin of points whose indicator is 0 down to 0.
const DefaultC = 1.0

// ExactOption configures an Exact fitter.
type ExactOption func(*Exact)

// WithC sets the margin relaxation constant. Panics unless c ≥ 0.
func WithC(c float64) ExactOption {
	if !(c >= 0) || math.IsInf(c, 1) {
		panic("svm: WithC(negative)")
	}

	return func(e *Exact) { e.c = c }
}

// WithSolver replaces the default branch-and-bound solver. Panics on nil.
func WithSolver(s mip.Solver) ExactOption {
	if s == nil {
		panic("svm: WithSolver(nil)")
	}

	return func(e *Exact) { e.solver = s }
}

// Exact refits the bias of a fixed hyperplane through a binary program.
type Exact struct {
	init   *linear.Classifier
	c      float64
	solver mip.Solver
}

var _ linear.Fitter = (*Exact)(nil)

// NewExact returns a fitter around the initial classifier. Panics on nil.
func NewExact(init *linear.Classifier, opts ...ExactOption) *Exact {
	if init == nil {
		panic("svm: NewExact(nil)")
	}
	e := &Exact{init: init, c: DefaultC}
	for _, opt := range opts {
		opt(e)
	}
	if e.solver == nil {
		e.solver = mip.NewBranchAndBound(mip.DefaultOptions())
	}

	return e
}

// Program builds the margin program of ds: one binary α_i per row,
// constraint C·α_i ≤ y_i(w·x_i + b) − 1 + C, objective max Σ α_i.
func (e *Exact) Program(ds *dataset.Dataset) (*mip.Program, error) {
	if ds.Len() == 0 {
		return nil, ErrTooFewSamples
	}
	p := mip.NewProgram(mip.Maximize)
	for i := 0; i < ds.Len(); i++ {
		score, err := e.init.DecisionScore(ds.PointView(i))
		if err != nil {
			return nil, fmt.Errorf("Exact.Program: row %d: %w", i, err)
		}
		label, _ := ds.Label(i)
		j := p.AddBinary(fmt.Sprintf("alpha_%d", i))
		if err := p.SetObjective(j, 1); err != nil {
			return nil, err
		}
		err = p.AddConstraint(mip.Constraint{
			Name:     fmt.Sprintf("margin_%d", i),
			Terms:    []mip.Term{{Var: j, Coeff: e.c}},
			Relation: mip.LessEq,
			RHS:      signOf(label)*score - 1 + e.c,
		})
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

// SupportVectors solves the margin program and returns the rows with α_i = 1
// in dataset order.
func (e *Exact) SupportVectors(ds *dataset.Dataset) (sv []int, err error) {
	p, err := e.Program(ds)
	if err != nil {
		return nil, err
	}
	sess, err := e.solver.Open()
	if err != nil {
		return nil, fmt.Errorf("Exact.Fit: open session: %w", err)
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil && err == nil {
			sv, err = nil, fmt.Errorf("Exact.Fit: close session: %w", cerr)
		}
	}()

	sol, err := sess.Solve(p)
	if errors.Is(err, mip.ErrInfeasible) {
		return nil, fmt.Errorf("%w: %w", ErrInfeasible, err)
	}
	if err != nil {
		return nil, fmt.Errorf("Exact.Fit: %w", err)
	}

	for i := range p.Variables {
		if sol.IsSet(i) {
			sv = append(sv, i)
		}
	}
	if len(sv) == 0 {
		return nil, ErrNoSupportVectors
	}

	return sv, nil
}

// Fit keeps the initial weight and sets the bias to the signed label of the
// support vector with the smallest projection w·x (first on ties).
func (e *Exact) Fit(ds *dataset.Dataset) (*linear.Classifier, error) {
	if ds.Len() > 0 && ds.Dim() != e.init.Dim() {
		return nil, fmt.Errorf("Exact.Fit: weight %d vs dataset %d: %w",
			e.init.Dim(), ds.Dim(), linear.ErrDimensionMismatch)
	}
	sv, err := e.SupportVectors(ds)
	if err != nil {
		return nil, err
	}
	w := e.init.Weight()
	best, bestProj := sv[0], math.Inf(1)
	for _, i := range sv {
		if proj := floats.Dot(w, ds.PointView(i)); proj < bestProj {
			best, bestProj = i, proj
		}
	}
	label, _ := ds.Label(best)

	return e.init.WithBias(signOf(label))
}

func signOf(label bool) float64 {
	if label {
		return 1
	}

	return -1
}

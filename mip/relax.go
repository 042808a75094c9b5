// SPDX-License-Identifier: MIT

package mip

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// relax solves the LP relaxation of the current node. It returns the
// sign-adjusted objective and a point in the original variable space.
// ErrInfeasible marks a node without feasible points.
func (e *bbEngine) relax() (float64, []float64, error) {
	p := e.prog
	n := len(p.Variables)

	x := make([]float64, n)
	col := make([]int, n) // variable → standard-form column, -1 when fixed
	active := 0
	obj := 0.0
	for j := 0; j < n; j++ {
		x[j] = e.lo[j]
		obj += e.sign * p.Objective[j] * e.lo[j]
		col[j] = -1
		if e.hi[j] > e.lo[j] {
			col[j] = active
			active++
		}
	}

	// Row layout: constraints first, then finite upper bounds of active vars.
	rows := make([]lpRow, 0, len(p.Constraints)+active)
	for _, c := range p.Constraints {
		r := lpRow{coef: make(map[int]float64, len(c.Terms)), rhs: c.RHS}
		for _, t := range c.Terms {
			r.rhs -= t.Coeff * e.lo[t.Var]
			if k := col[t.Var]; k >= 0 {
				r.coef[k] += t.Coeff
			}
		}
		for k, v := range r.coef {
			if v == 0 {
				delete(r.coef, k)
			}
		}
		switch c.Relation {
		case LessEq:
			r.slack = 1
		case GreaterEq:
			r.slack = -1
		}
		if len(r.coef) == 0 {
			// no free variable left in the row: check it directly
			if !holds(0, c.Relation, r.rhs, e.tol) {
				return 0, nil, ErrInfeasible
			}
			continue
		}
		rows = append(rows, r)
	}
	for j := 0; j < n; j++ {
		if k := col[j]; k >= 0 && !math.IsInf(e.hi[j], 1) {
			rows = append(rows, lpRow{coef: map[int]float64{k: 1}, slack: 1, rhs: e.hi[j] - e.lo[j]})
		}
	}

	rows, err := independentRows(rows, active, e.tol)
	if err != nil {
		return 0, nil, err
	}

	// Active columns touched by no row sit at their lower bound unless
	// decreasing the objective along them is free.
	used := make([]bool, active)
	for _, r := range rows {
		for k := range r.coef {
			used[k] = true
		}
	}
	for j := 0; j < n; j++ {
		if k := col[j]; k >= 0 && !used[k] && e.sign*p.Objective[j] < 0 {
			return 0, nil, ErrUnbounded
		}
	}
	if len(rows) == 0 {
		return obj, x, nil
	}

	// Compact the used columns, then append one slack per inequality.
	std := make([]int, active)
	cols := 0
	for k := range std {
		std[k] = -1
		if used[k] {
			std[k] = cols
			cols++
		}
	}
	slackCol := make([]int, len(rows))
	for i, r := range rows {
		slackCol[i] = -1
		if r.slack != 0 {
			slackCol[i] = cols
			cols++
		}
	}
	if len(rows) > cols {
		return 0, nil, solverErrorf(errNotEnoughColumns)
	}

	A := mat.NewDense(len(rows), cols, nil)
	b := make([]float64, len(rows))
	for i, r := range rows {
		flip := 1.0
		if r.rhs < 0 {
			flip = -1 // keep b ≥ 0
		}
		for k, v := range r.coef {
			A.Set(i, std[k], flip*v)
		}
		if slackCol[i] >= 0 {
			A.Set(i, slackCol[i], flip*r.slack)
		}
		b[i] = flip * r.rhs
	}
	c := make([]float64, cols)
	for j := 0; j < n; j++ {
		if k := col[j]; k >= 0 && std[k] >= 0 {
			c[std[k]] = e.sign * p.Objective[j]
		}
	}

	opt, y, err := lp.Simplex(c, A, b, e.tol, nil)
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return 0, nil, ErrInfeasible
	case errors.Is(err, lp.ErrUnbounded):
		return 0, nil, ErrUnbounded
	case err != nil:
		return 0, nil, solverErrorf(err)
	}

	for j := 0; j < n; j++ {
		if k := col[j]; k >= 0 && std[k] >= 0 {
			x[j] = e.lo[j] + y[std[k]]
		}
	}

	return obj + opt, x, nil
}

var errNotEnoughColumns = errors.New("more equality rows than free columns")

// lpRow is one standard-form row over the active columns of a node.
type lpRow struct {
	coef  map[int]float64
	slack float64 // +1 for ≤, -1 for ≥, 0 for =
	rhs   float64
}

// independentRows drops equality rows that are linear combinations of the
// equality rows before them, so the simplex sees a full row rank matrix.
// A dependent row whose right-hand side disagrees with the combination
// makes the node infeasible. Inequality rows are kept as they are.
func independentRows(rows []lpRow, width int, tol float64) ([]lpRow, error) {
	var (
		basis  [][]float64 // reduced equality rows, rhs in the last slot
		pivots []int
	)
	kept := rows[:0]
	for _, r := range rows {
		if r.slack != 0 {
			kept = append(kept, r)
			continue
		}
		v := make([]float64, width+1)
		for k, c := range r.coef {
			v[k] = c
		}
		v[width] = r.rhs
		thresh := math.Max(tol, 1e-12) * math.Max(1, floats.Norm(v, math.Inf(1)))

		for i, b := range basis {
			if f := v[pivots[i]]; f != 0 {
				floats.AddScaled(v, -f/b[pivots[i]], b)
			}
		}
		piv, best := -1, thresh
		for k, c := range v[:width] {
			if math.Abs(c) > best {
				piv, best = k, math.Abs(c)
			}
		}
		if piv < 0 {
			if math.Abs(v[width]) > thresh {
				return nil, ErrInfeasible
			}
			continue
		}
		basis = append(basis, v)
		pivots = append(pivots, piv)
		kept = append(kept, r)
	}

	return kept, nil
}

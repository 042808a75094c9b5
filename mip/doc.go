// SPDX-License-Identifier: MIT

// Package mip models small mixed-integer linear programs and solves them
// through a scoped solver session.
//
// A Program declares variables (continuous, integer or binary), a linear
// objective and linear constraints (≤, ≥, =). A Solver opens a Session; the
// caller submits programs to it and MUST Close it on every exit path:
//
//	sess, err := solver.Open()
//	if err != nil {
//	  return err
//	}
//	defer sess.Close()
//	sol, err := sess.Solve(prog)
//
// BranchAndBound is the bundled Solver. It enumerates integer assignments
// depth-first and bounds each node with the LP relaxation, solved by the
// revised simplex of gonum.org/v1/gonum/optimize/convex/lp:
//
//  1. Fixed variables (lower == upper) are substituted as constants.
//  2. Remaining variables are shifted to y = x - lower ≥ 0; finite upper
//     bounds become rows y + s = upper - lower.
//  3. Equality rows that depend on earlier ones are dropped; a dependent
//     row with a conflicting right-hand side makes the node infeasible.
//  4. Inequalities receive one slack column each; the standard form
//     min cᵀy s.t. Ay = b, y ≥ 0 is handed to lp.Simplex.
//  5. The most fractional integer variable is branched on, nearer rounding
//     first; nodes whose relaxation cannot beat the incumbent are pruned.
//     A node whose relaxation fails numerically is split on its first
//     unfixed integer variable instead.
//
// Search is deterministic (index tie-breaking, fixed branch order) and is
// capped by Options.MaxNodes.
//
// Errors:
//
//	ErrBadProgram    – malformed program (bounds, indices, NaN coefficients)
//	ErrInfeasible    – no assignment satisfies the constraints
//	ErrUnbounded     – the objective is unbounded in the optimisation sense
//	ErrNodeLimit     – node budget exhausted before any feasible point
//	ErrSolverFailed  – numerical failure inside the LP solver with only
//	                   continuous variables left to branch on
//	ErrSessionClosed – Solve on a closed session
package mip

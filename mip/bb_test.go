// SPDX-License-Identifier: MIT

package mip_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/multiplicity/mip"
)

func solve(t *testing.T, p *mip.Program) (*mip.Solution, error) {
	t.Helper()
	sess, err := mip.NewBranchAndBound(mip.DefaultOptions()).Open()
	require.NoError(t, err)
	defer sess.Close()

	return sess.Solve(p)
}

func TestBranchAndBound_Knapsack(t *testing.T) {
	p := mip.NewProgram(mip.Maximize)
	values := []float64{10, 13, 7}
	weights := []float64{3, 4, 2}
	terms := make([]mip.Term, len(values))
	for i := range values {
		j := p.AddBinary("item")
		require.NoError(t, p.SetObjective(j, values[i]))
		terms[i] = mip.Term{Var: j, Coeff: weights[i]}
	}
	require.NoError(t, p.AddConstraint(mip.Constraint{Name: "cap", Terms: terms, Relation: mip.LessEq, RHS: 6}))

	sol, err := solve(t, p)
	require.NoError(t, err)
	assert.Equal(t, mip.Optimal, sol.Status)
	assert.InDelta(t, 20, sol.Objective, 1e-9)
	assert.False(t, sol.IsSet(0))
	assert.True(t, sol.IsSet(1))
	assert.True(t, sol.IsSet(2))
	assert.True(t, p.Satisfies(sol.Values, 1e-9))
}

func TestBranchAndBound_IntegerGap(t *testing.T) {
	// LP optimum is 1.5, the integer optimum is 1.
	p := mip.NewProgram(mip.Maximize)
	x := p.AddVariable(mip.Variable{Name: "x", Kind: mip.Integer, Lower: 0, Upper: 5})
	y := p.AddVariable(mip.Variable{Name: "y", Kind: mip.Integer, Lower: 0, Upper: 5})
	require.NoError(t, p.SetObjective(x, 1))
	require.NoError(t, p.SetObjective(y, 1))
	require.NoError(t, p.AddConstraint(mip.Constraint{
		Terms:    []mip.Term{{Var: x, Coeff: 2}, {Var: y, Coeff: 2}},
		Relation: mip.LessEq,
		RHS:      3,
	}))

	sol, err := solve(t, p)
	require.NoError(t, err)
	assert.InDelta(t, 1, sol.Objective, 1e-9)
	for _, v := range sol.Values {
		assert.Equal(t, v, math.Round(v))
	}
	assert.Greater(t, sol.Nodes, 1)
}

func TestBranchAndBound_Minimize(t *testing.T) {
	cont := mip.NewProgram(mip.Minimize)
	x := cont.AddContinuous("x", 0, math.Inf(1))
	require.NoError(t, cont.SetObjective(x, 1))
	require.NoError(t, cont.AddConstraint(mip.Constraint{
		Terms: []mip.Term{{Var: x, Coeff: 1}}, Relation: mip.GreaterEq, RHS: 2.5,
	}))
	sol, err := solve(t, cont)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, sol.Value(x), 1e-9)

	integral := mip.NewProgram(mip.Minimize)
	x = integral.AddVariable(mip.Variable{Name: "x", Kind: mip.Integer, Lower: 0, Upper: math.Inf(1)})
	require.NoError(t, integral.SetObjective(x, 1))
	require.NoError(t, integral.AddConstraint(mip.Constraint{
		Terms: []mip.Term{{Var: x, Coeff: 1}}, Relation: mip.GreaterEq, RHS: 2.5,
	}))
	sol, err = solve(t, integral)
	require.NoError(t, err)
	assert.InDelta(t, 3, sol.Value(x), 1e-9)
}

func TestBranchAndBound_Infeasible(t *testing.T) {
	p := mip.NewProgram(mip.Minimize)
	x := p.AddBinary("x")
	require.NoError(t, p.AddConstraint(mip.Constraint{
		Terms: []mip.Term{{Var: x, Coeff: 1}}, Relation: mip.GreaterEq, RHS: 2,
	}))

	_, err := solve(t, p)
	assert.ErrorIs(t, err, mip.ErrInfeasible)
}

func TestBranchAndBound_DependentEqualities(t *testing.T) {
	p := mip.NewProgram(mip.Maximize)
	x, y := p.AddBinary("x"), p.AddBinary("y")
	require.NoError(t, p.SetObjective(x, 3))
	require.NoError(t, p.SetObjective(y, 2))
	for _, k := range []float64{1, 2} {
		require.NoError(t, p.AddConstraint(mip.Constraint{
			Terms:    []mip.Term{{Var: x, Coeff: k}, {Var: y, Coeff: k}},
			Relation: mip.Equal,
			RHS:      k,
		}))
	}

	sol, err := solve(t, p)
	require.NoError(t, err)
	assert.InDelta(t, 3, sol.Objective, 1e-9)
	assert.True(t, sol.IsSet(x))
	assert.False(t, sol.IsSet(y))
}

func TestBranchAndBound_ConflictingEqualities(t *testing.T) {
	p := mip.NewProgram(mip.Minimize)
	x := p.AddContinuous("x", 0, 5)
	y := p.AddContinuous("y", 0, 5)
	require.NoError(t, p.AddConstraint(mip.Constraint{
		Terms: []mip.Term{{Var: x, Coeff: 1}, {Var: y, Coeff: 1}}, Relation: mip.Equal, RHS: 1,
	}))
	require.NoError(t, p.AddConstraint(mip.Constraint{
		Terms: []mip.Term{{Var: x, Coeff: 2}, {Var: y, Coeff: 2}}, Relation: mip.Equal, RHS: 3,
	}))

	_, err := solve(t, p)
	assert.ErrorIs(t, err, mip.ErrInfeasible)
}

func TestBranchAndBound_SingularEqualities(t *testing.T) {
	// The third equality is the first minus the second, so the relaxation
	// is square and singular until the dependent row is dropped.
	p := mip.NewProgram(mip.Maximize)
	x := p.AddVariable(mip.Variable{Name: "x", Kind: mip.Integer, Lower: 0, Upper: 3})
	y := p.AddVariable(mip.Variable{Name: "y", Kind: mip.Integer, Lower: 0, Upper: 3})
	z := p.AddVariable(mip.Variable{Name: "z", Kind: mip.Integer, Lower: 0, Upper: 3})
	require.NoError(t, p.SetObjective(z, 1))
	require.NoError(t, p.AddConstraint(mip.Constraint{
		Terms: []mip.Term{{Var: x, Coeff: 1}, {Var: y, Coeff: 1}, {Var: z, Coeff: 1}}, Relation: mip.Equal, RHS: 3,
	}))
	require.NoError(t, p.AddConstraint(mip.Constraint{
		Terms: []mip.Term{{Var: x, Coeff: 1}, {Var: y, Coeff: -1}}, Relation: mip.Equal, RHS: 0,
	}))
	require.NoError(t, p.AddConstraint(mip.Constraint{
		Terms: []mip.Term{{Var: x, Coeff: 2}, {Var: z, Coeff: 1}}, Relation: mip.Equal, RHS: 3,
	}))

	sol, err := solve(t, p)
	require.NoError(t, err)
	assert.InDelta(t, 3, sol.Objective, 1e-9)
	assert.InDelta(t, 0, sol.Value(x), 1e-9)
	assert.True(t, p.Satisfies(sol.Values, 1e-9))
}

// bruteForce enumerates every assignment of n variables in [0,2].
func bruteForce(p *mip.Program, n int) (float64, bool) {
	best, found := math.Inf(-1), false
	x := make([]float64, n)
	var walk func(j int)
	walk = func(j int) {
		if j == n {
			if p.Satisfies(x, 1e-9) {
				best, found = math.Max(best, p.Evaluate(x)), true
			}
			return
		}
		for v := 0.0; v <= 2; v++ {
			x[j] = v
			walk(j + 1)
		}
	}
	walk(0)

	return best, found
}

func TestBranchAndBound_MatchesEnumeration(t *testing.T) {
	const n = 3
	rng := rand.New(rand.NewSource(7))
	coeff := func() float64 { return float64(rng.Intn(5) - 2) }
	for trial := 0; trial < 200; trial++ {
		p := mip.NewProgram(mip.Maximize)
		for j := 0; j < n; j++ {
			p.AddVariable(mip.Variable{Name: "x", Kind: mip.Integer, Lower: 0, Upper: 2})
			require.NoError(t, p.SetObjective(j, coeff()))
		}
		for i := 0; i < 3; i++ {
			rel := mip.Relation(rng.Intn(3))
			if i == 0 {
				rel = mip.Equal
			}
			terms := make([]mip.Term, n)
			for j := range terms {
				terms[j] = mip.Term{Var: j, Coeff: coeff()}
			}
			require.NoError(t, p.AddConstraint(mip.Constraint{Terms: terms, Relation: rel, RHS: float64(rng.Intn(7) - 2)}))
		}

		want, feasible := bruteForce(p, n)
		sol, err := solve(t, p)
		if !feasible {
			assert.ErrorIs(t, err, mip.ErrInfeasible, "trial %d", trial)
			continue
		}
		require.NoError(t, err, "trial %d", trial)
		assert.InDelta(t, want, sol.Objective, 1e-6, "trial %d", trial)
		assert.True(t, p.Satisfies(sol.Values, 1e-6), "trial %d", trial)
	}
}

func TestBranchAndBound_Unbounded(t *testing.T) {
	p := mip.NewProgram(mip.Maximize)
	x := p.AddContinuous("x", 0, math.Inf(1))
	require.NoError(t, p.SetObjective(x, 1))

	_, err := solve(t, p)
	assert.ErrorIs(t, err, mip.ErrUnbounded)
}

func TestBranchAndBound_BadProgram(t *testing.T) {
	p := mip.NewProgram(mip.Minimize)
	p.AddContinuous("x", 2, 1)

	_, err := solve(t, p)
	assert.ErrorIs(t, err, mip.ErrBadProgram)

	q := mip.NewProgram(mip.Minimize)
	assert.ErrorIs(t, q.SetObjective(0, 1), mip.ErrBadProgram)
	assert.ErrorIs(t, q.AddConstraint(mip.Constraint{Terms: []mip.Term{{Var: 3, Coeff: 1}}}), mip.ErrBadProgram)
}

func TestSession_Closed(t *testing.T) {
	sess, err := mip.NewBranchAndBound(mip.DefaultOptions()).Open()
	require.NoError(t, err)
	require.NoError(t, sess.Close())
	require.NoError(t, sess.Close())

	_, err = sess.Solve(mip.NewProgram(mip.Minimize))
	assert.ErrorIs(t, err, mip.ErrSessionClosed)
}

func TestNewBranchAndBound_PanicsOnNegative(t *testing.T) {
	assert.Panics(t, func() { mip.NewBranchAndBound(mip.Options{Tol: -1}) })
}

func TestRelation_String(t *testing.T) {
	assert.Equal(t, "<=", mip.LessEq.String())
	assert.Equal(t, ">=", mip.GreaterEq.String())
	assert.Equal(t, "=", mip.Equal.String())
}

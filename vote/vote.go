// SPDX-License-Identifier: MIT

// Package vote aggregates the rankings of several models with voting rules
// from social choice theory.
//
// Every Method consumes a score matrix with one row per model (voter) and
// one column per candidate, and returns per-candidate totals plus the
// candidate ranking by descending total (ties: lower index first).
//
//	Majority – each model votes for its best-scoring candidate
//	Borda    – a candidate at rank r (0-based) of n gets n-1-r points per model
//	Range    – each model's row is min-max rescaled to [-1, 1]; rows are summed
package vote

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrNoVoters indicates an empty score matrix.
	ErrNoVoters = errors.New("vote: no voters")

	// ErrRagged indicates rows with different candidate counts (or none).
	ErrRagged = errors.New("vote: ragged score matrix")
)

// Outcome is the result of one voting rule.
type Outcome struct {
	Totals  []float64 // per candidate
	Ranking []int     // candidate indices, best first
}

// Method is a voting rule.
type Method interface {
	Name() string
	Aggregate(scores [][]float64) (Outcome, error)
}

// Methods returns Majority, Borda and Range in table order.
func Methods() []Method { return []Method{Majority{}, Borda{}, Range{}} }

// Majority counts first-choice votes.
type Majority struct{}

// Name implements Method.
func (Majority) Name() string { return "Majority" }

// Aggregate implements Method.
func (Majority) Aggregate(scores [][]float64) (Outcome, error) {
	n, err := shape(scores)
	if err != nil {
		return Outcome{}, err
	}
	totals := make([]float64, n)
	for _, row := range scores {
		totals[floats.MaxIdx(row)]++
	}

	return outcome(totals), nil
}

// Borda awards rank-position points.
type Borda struct{}

// Name implements Method.
func (Borda) Name() string { return "Borda" }

// Aggregate implements Method.
func (Borda) Aggregate(scores [][]float64) (Outcome, error) {
	n, err := shape(scores)
	if err != nil {
		return Outcome{}, err
	}
	totals := make([]float64, n)
	for _, row := range scores {
		for pos, j := range rank(row) {
			totals[j] += float64(n - 1 - pos)
		}
	}

	return outcome(totals), nil
}

// Range sums min-max normalised scores.
type Range struct{}

// Name implements Method.
func (Range) Name() string { return "Range" }

// Aggregate implements Method. A constant row contributes 0 to every
// candidate.
func (Range) Aggregate(scores [][]float64) (Outcome, error) {
	n, err := shape(scores)
	if err != nil {
		return Outcome{}, err
	}
	totals := make([]float64, n)
	norm := make([]float64, n)
	for _, row := range scores {
		lo, hi := floats.Min(row), floats.Max(row)
		for j, v := range row {
			norm[j] = 0
			if hi > lo {
				norm[j] = 2*(v-lo)/(hi-lo) - 1
			}
		}
		floats.Add(totals, norm)
	}

	return outcome(totals), nil
}

func shape(scores [][]float64) (int, error) {
	if len(scores) == 0 {
		return 0, ErrNoVoters
	}
	n := len(scores[0])
	for i, row := range scores {
		if len(row) != n || n == 0 {
			return 0, fmt.Errorf("row %d has %d candidates, want %d: %w", i, len(row), n, ErrRagged)
		}
	}

	return n, nil
}

func rank(xs []float64) []int {
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return xs[idx[a]] > xs[idx[b]] })

	return idx
}

func outcome(totals []float64) Outcome {
	return Outcome{Totals: totals, Ranking: rank(totals)}
}

// SPDX-License-Identifier: MIT

package kg

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Rank returns column indices ordered by descending score; ties keep the
// lower index first.
func Rank(scores []float64) []int {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return scores[idx[a]] > scores[idx[b]] })

	return idx
}

// Position returns the 0-based rank of column j in scores.
func Position(scores []float64, j int) int {
	for pos, i := range Rank(scores) {
		if i == j {
			return pos
		}
	}

	return -1
}

// TopK reports, per row, whether column interest[i] ranks within the top k.
func TopK(scores [][]float64, interest []int, k int) ([]bool, error) {
	if k < 1 {
		return nil, ErrBadK
	}
	if len(scores) != len(interest) {
		return nil, fmt.Errorf("TopK: %d rows, %d elements: %w", len(scores), len(interest), ErrLengthMismatch)
	}
	out := make([]bool, len(scores))
	for i, row := range scores {
		if interest[i] < 0 || interest[i] >= len(row) {
			return nil, fmt.Errorf("TopK: column %d: %w", interest[i], ErrEntityNotFound)
		}
		pos := Position(row, interest[i])
		out[i] = pos < k
	}

	return out, nil
}

// HitsAtK is the share of rows whose element of interest is in the top k.
// Zero rows give 0.
func HitsAtK(scores [][]float64, interest []int, k int) (float64, error) {
	hits, err := TopK(scores, interest, k)
	if err != nil {
		return 0, err
	}
	if len(hits) == 0 {
		return 0, nil
	}
	xs := make([]float64, len(hits))
	for i, h := range hits {
		if h {
			xs[i] = 1
		}
	}

	return stat.Mean(xs, nil), nil
}

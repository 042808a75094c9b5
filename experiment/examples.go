// SPDX-License-Identifier: MIT

// Package experiment runs the predictive-multiplicity scenarios end to end:
// it builds datasets, baselines and epsilon sets, reports accuracies through
// zap and writes the figures with render.
package experiment

import (
	"math"

	"github.com/katalvlaran/multiplicity/dataset"
	"github.com/katalvlaran/multiplicity/linear"
)

// XORGlyphRows are the mesh rows (of a 10×10 grid) that carry a glyph in
// the XOR figure.
var XORGlyphRows = []int{16, 24, 28, 31, 54, 58, 61, 85}

// XORExample returns the hand-built XOR baseline h0 = (0, 1) and its three
// members, the baseline normal rotated clockwise by kπ/5, k = 1..3. All
// biases are zero.
func XORExample() (*linear.Classifier, []*linear.Classifier) {
	h0 := linear.MustNew([]float64{0, 1}, 0)
	members := make([]*linear.Classifier, 3)
	for i := range members {
		a := float64(i+1) * math.Pi / 5
		members[i] = linear.MustNew([]float64{math.Sin(a), math.Cos(a)}, 0)
	}

	return h0, members
}

// DiagExample returns the diagonal-border baseline h0 = (1, -1) and four
// members tilted towards either axis.
func DiagExample() (*linear.Classifier, []*linear.Classifier) {
	h0 := linear.MustNew([]float64{1, -1}, 0)
	var members []*linear.Classifier
	for _, w := range [][]float64{{1, -4}, {1, -2}, {2, -1}, {4, -1}} {
		members = append(members, linear.MustNew(w, 0))
	}

	return h0, members
}

// XORData is the 10×10 XOR mesh over [-1, 1]².
func XORData() (*dataset.Dataset, error) {
	return dataset.Mesh(100, dataset.WithLabels(dataset.XOR))
}

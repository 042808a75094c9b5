// SPDX-License-Identifier: MIT

// Package linear implements binary linear classifiers h(x) = [w·x + b > 0].
//
// A Classifier is immutable: its weight vector and bias are fixed at
// construction (New) or produced atomically by a Fitter (see package svm).
// Every scoring method checks that the point dimension equals len(w) and
// returns ErrDimensionMismatch otherwise, so a malformed input never yields
// a silent score.
//
// Methods:
//
//	DecisionScore(x) — w·x + b
//	Sign(x)          — sign(w·x + b) ∈ {-1, 0, +1}, for boundary rendering
//	Predict(x)       — DecisionScore(x) > 0
//	Accuracy(ds)     — share of rows with Predict == label, in [0,1]
//	EmpiricalRisk(ds)— 1 - Accuracy(ds)
//	Predictions(ds)  — Predict for every row, in row order
//
// Example:
//
//	h0, _ := linear.New([]float64{1, -1}, 0)
//	ok, _ := h0.Predict([]float64{0.6, -0.6}) // true, score 1.2
package linear

// SPDX-License-Identifier: MIT

// Package dataset stores labeled feature vectors and synthesises the small
// 2D datasets used throughout the predictive-multiplicity experiments.
//
// A Dataset is an ordered sequence of (point, label) pairs. Points live in a
// single row-major buffer (offset = i*dim + j) so that scoring loops touch
// contiguous memory, and every point shares the dimension fixed at creation:
//
//	ds, _ := dataset.New(2)
//	_ = ds.Append([]float64{0.5, -0.5}, true)
//	_ = ds.Append([]float64{1, 2, 3}, false) // ErrDimensionMismatch
//
// Synthesis:
//
//	Mesh(n)    — √n×√n grid over [-1,1]², row-major over y then x
//	Uniform(n) — n points drawn uniformly from [-1,1]² (needs WithSeed/WithRand)
//	Diag(n)    — n/2 points in quadrant II (false), n/2 in quadrant IV (true)
//	Custom()   — eight fixed points labeled by x > 0
//
// Labels are assigned by a LabelFunc (XOR by default; RightHalf and
// BelowDiagonal are provided). Randomness is explicit: no builder touches a
// global source, so the same seed always yields the same points.
//
// Errors:
//
//	ErrInvalidDimension  – dimension ≤ 0
//	ErrDimensionMismatch – point length differs from the dataset dimension
//	ErrNaNInf            – NaN or ±Inf coordinate
//	ErrOutOfRange        – row/column index outside the dataset
//	ErrLabelCount        – points and labels of different length
//	ErrTooFewSamples     – synthesis size too small
//	ErrNeedRandSource    – stochastic synthesis without an RNG
package dataset

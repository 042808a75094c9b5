// SPDX-License-Identifier: MIT

// Package svm fits linear classifiers from labeled datasets.
//
// Two linear.Fitter implementations are provided:
//
//   - Pegasos: soft-margin linear SVM trained by stochastic sub-gradient
//     descent on λ/2‖w‖² + mean hinge loss. The bias is learned through an
//     augmented constant feature. Every step draws from an explicit RNG, so
//     fits are reproducible and repeated fits with different seeds give
//     distinct near-optimal classifiers.
//
//   - Exact: keeps a fixed initial hyperplane (w, b) and decides, point by
//     point, whether the margin condition y_i(w·x_i + b) ≥ 1 holds, through a
//     binary program with one indicator α_i per point:
//
//     y_i(w·x_i + b) ≥ 1 − C(1 − α_i),  α_i ∈ {0,1},  maximise Σ α_i
//
//     Points with α_i = 1 are support vectors. The refit classifier keeps w
//     and takes as bias the signed label (±1) of the support vector with the
//     smallest projection onto w. The program goes through a mip.Solver
//     session that is closed on every exit path.
//
// Labels map to y = +1 (true) and y = −1 (false).
//
// Errors:
//
//	ErrTooFewSamples     – dataset without rows
//	ErrSingleClass       – Pegasos on a dataset with one label only
//	ErrInfeasible        – no indicator assignment is feasible (wraps mip.ErrInfeasible)
//	ErrNoSupportVectors  – no point reaches the margin
//	linear.ErrDimensionMismatch – initial weight and dataset dimension differ
package svm

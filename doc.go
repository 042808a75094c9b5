// SPDX-License-Identifier: MIT

// Package multiplicity explores predictive multiplicity: how many linear
// classifiers that are almost as accurate as a baseline still disagree on
// individual points, and how to draw that disagreement.
//
// 🚀 What is in here?
//
//	A small, deterministic, seed-explicit toolkit that brings together:
//		• Datasets: 2D mesh, uniform, diagonal-border and fixed samples
//		• Linear classifiers: decision score, predict, accuracy
//		• Fitters: Pegasos SVM, exact-bias refit over a 0/1 program
//		• Epsilon sets: bounded generate-and-filter search + ambiguity metrics
//		• Glyphs: ring/wedge/disc encoding of one point's predictions
//		• Figures: gonum/plot layers for glyphs, boundaries and graphs
//		• Link prediction: a toy knowledge graph scored by voting rules
//
// Packages:
//
//	dataset/    — labelled point sets and their synthesis
//	linear/     — Classifier, Model and Fitter
//	mip/        — mixed 0/1 linear programs, branch and bound over gonum lp
//	svm/        — Pegasos and exact fitters
//	epsilon/    — epsilon-set construction and multiplicity metrics
//	glyph/      — glyph colours and geometry
//	render/     — figures (PNG, SVG, PDF, EPS)
//	kg/         — knowledge graph, queries, toy embedding models, hits@k
//	vote/       — Majority, Borda and Range aggregation, LaTeX tables
//	config/     — pmx.yaml + PMX_ environment + flags
//	logging/    — zap console and rotated-file loggers
//	experiment/ — XOR, diagonal, fitted and link-prediction scenarios
//	cmd/pmx     — command line
//
// Quick example:
//
//	h0 := linear.MustNew([]float64{1, -1}, 0)
//	ok, _ := h0.Predict([]float64{0.6, -0.6}) // score 1.2 → true
//
//	g := glyph.Encode(true, false, []bool{true, false})
//	// ring green, disc red, wedges 0°–180° green and 180°–360° red
package multiplicity

// SPDX-License-Identifier: MIT

// Package epsilon builds epsilon sets: alternative models whose accuracy on
// a reference dataset lies strictly within Epsilon of a baseline's.
//
// Build is a bounded generate-and-filter loop, generic over the candidate
// type:
//
//	base  := score(baseline)
//	for attempt := 0; attempt < MaxAttempts && len(members) < TargetCount; attempt++ {
//	  c := gen(attempt)            // ErrExhausted ends the loop early
//	  if |base − score(c)| < Epsilon { keep c }
//	}
//
// Members are returned in discovery order. Running out of attempts (or of
// candidates) is not an error; Result.Complete reports whether TargetCount
// was reached.
//
// Generators:
//
//	FromSlice(cs)              — a fixed candidate list, in order
//	FromFitter(f, ds)          — repeated fits of a stochastic linear.Fitter
//	Bootstrap(f, ds, rng)      — fits on bootstrap resamples of ds
//
// Classifiers is the common case: linear classifiers scored by Accuracy.
//
// Ambiguity and Discrepancy quantify how much an epsilon set disagrees with
// its baseline on a dataset.
package epsilon

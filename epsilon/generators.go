// SPDX-License-Identifier: MIT

package epsilon

import (
	"math/rand"

	"github.com/katalvlaran/multiplicity/dataset"
	"github.com/katalvlaran/multiplicity/linear"
)

// FromSlice yields the candidates in order, then ErrExhausted.
func FromSlice[C any](candidates []C) Generator[C] {
	return func(attempt int) (C, error) {
		if attempt >= len(candidates) {
			var zero C
			return zero, ErrExhausted
		}

		return candidates[attempt], nil
	}
}

// FromFitter refits f on ds at every attempt. Useful only with stochastic
// fitters whose state advances between calls.
func FromFitter(f linear.Fitter, ds *dataset.Dataset) Generator[*linear.Classifier] {
	return func(int) (*linear.Classifier, error) { return f.Fit(ds) }
}

// Bootstrap fits f on a stratified bootstrap resample of ds at every
// attempt: each class is resampled with replacement to its original count,
// so every resample keeps both classes. Panics on nil rng.
func Bootstrap(f linear.Fitter, ds *dataset.Dataset, rng *rand.Rand) Generator[*linear.Classifier] {
	if rng == nil {
		panic("epsilon: Bootstrap(nil rng)")
	}
	var pos, neg []int
	for i, label := range ds.Labels() {
		if label {
			pos = append(pos, i)
		} else {
			neg = append(neg, i)
		}
	}

	return func(int) (*linear.Classifier, error) {
		idx := make([]int, 0, len(pos)+len(neg))
		for _, class := range [][]int{neg, pos} {
			for range class {
				idx = append(idx, class[rng.Intn(len(class))])
			}
		}
		sample, err := ds.Subset(idx)
		if err != nil {
			return nil, err
		}

		return f.Fit(sample)
	}
}

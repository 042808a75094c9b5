// SPDX-License-Identifier: MIT

package dataset

import (
	"errors"
	"fmt"
)

// Sentinel errors. Callers match them with errors.Is; call sites attach
// context through datasetErrorf.
var (
	// ErrInvalidDimension is returned when a dataset is created with dim <= 0.
	ErrInvalidDimension = errors.New("dataset: dimension must be > 0")

	// ErrDimensionMismatch indicates a point whose length differs from Dim().
	ErrDimensionMismatch = errors.New("dataset: dimension mismatch")

	// ErrNaNInf indicates a NaN or ±Inf coordinate at ingestion.
	ErrNaNInf = errors.New("dataset: NaN or Inf encountered")

	// ErrOutOfRange indicates a row or column index outside valid bounds.
	ErrOutOfRange = errors.New("dataset: index out of range")

	// ErrLabelCount indicates that points and labels differ in length.
	ErrLabelCount = errors.New("dataset: points and labels differ in length")

	// ErrTooFewSamples indicates a synthesis size below the constructor minimum.
	ErrTooFewSamples = errors.New("dataset: too few samples")

	// ErrNeedRandSource indicates a stochastic constructor was called without
	// WithSeed or WithRand.
	ErrNeedRandSource = errors.New("dataset: rng is required")
)

// datasetErrorf wraps err with the method name and the offending row.
func datasetErrorf(method string, row int, err error) error {
	return fmt.Errorf("Dataset.%s(%d): %w", method, row, err)
}

// SPDX-License-Identifier: MIT

package dataset

import "math"

// validatePoint checks length and the finite-value policy of one point.
// It returns plain sentinels; callers wrap them with row context.
func validatePoint(point []float64, dim int) error {
	if len(point) != dim {
		return ErrDimensionMismatch
	}
	for _, v := range point {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNaNInf
		}
	}

	return nil
}

// ValidateDim reports ErrDimensionMismatch unless ds has dimension dim.
func ValidateDim(ds *Dataset, dim int) error {
	if ds.Dim() != dim {
		return ErrDimensionMismatch
	}

	return nil
}

// SPDX-License-Identifier: MIT

// Package dataset - row-major labeled storage & safe accessors.
//
// Purpose:
//   - Keep all points of a dataset in one flat buffer (offset = i*dim + j).
//   - Return errors instead of panicking at the public surface.
//   - Enforce the finite-value policy in a single place (validatePoint).
//
// Complexity quicksheet:
//   - Append: O(d) amortized; At/Label/PointView: O(1); Point: O(d); Subset: O(k*d).

package dataset

import (
	"fmt"
	"strings"
)

// method tags used in error wrappers
const (
	ctxAppend = "Append"
	ctxPoint  = "Point"
	ctxLabel  = "Label"
	ctxAt     = "At"
	ctxSubset = "Subset"
	ctxColumn = "Column"
)

// Dataset is an ordered sequence of (point, label) pairs of fixed dimension.
//   - d is the shared dimension of every point.
//   - data holds len(labels)*d coordinates in row-major order.
//   - labels[i] is the boolean class of row i.
type Dataset struct {
	d      int
	data   []float64
	labels []bool
}

// New returns an empty dataset of dimension dim.
// Errors: ErrInvalidDimension when dim <= 0.
func New(dim int) (*Dataset, error) {
	if dim <= 0 {
		return nil, ErrInvalidDimension
	}

	return &Dataset{d: dim}, nil
}

// FromSlices builds a dataset from parallel point and label slices.
// The dimension is taken from the first point; every other point must match.
//
// Errors:
//   - ErrLabelCount if len(points) != len(labels).
//   - ErrInvalidDimension if there are no points or the first point is empty.
//   - ErrDimensionMismatch / ErrNaNInf from Append, wrapped with the row index.
func FromSlices(points [][]float64, labels []bool) (*Dataset, error) {
	if len(points) != len(labels) {
		return nil, fmt.Errorf("FromSlices: %d points, %d labels: %w", len(points), len(labels), ErrLabelCount)
	}
	if len(points) == 0 {
		return nil, ErrInvalidDimension
	}
	ds, err := New(len(points[0]))
	if err != nil {
		return nil, err
	}
	ds.data = make([]float64, 0, len(points)*ds.d)
	ds.labels = make([]bool, 0, len(points))
	for i := range points {
		if err = ds.Append(points[i], labels[i]); err != nil {
			return nil, err
		}
	}

	return ds, nil
}

// Append adds one labeled point. The point is copied.
//
// Errors: ErrDimensionMismatch, ErrNaNInf (wrapped with the would-be row index).
func (ds *Dataset) Append(point []float64, label bool) error {
	if err := validatePoint(point, ds.d); err != nil {
		return datasetErrorf(ctxAppend, len(ds.labels), err)
	}
	ds.data = append(ds.data, point...)
	ds.labels = append(ds.labels, label)

	return nil
}

// Len returns the number of labeled points.
func (ds *Dataset) Len() int { return len(ds.labels) }

// Dim returns the shared dimension of every point.
func (ds *Dataset) Dim() int { return ds.d }

// Point returns a copy of row i.
func (ds *Dataset) Point(i int) ([]float64, error) {
	if i < 0 || i >= len(ds.labels) {
		return nil, datasetErrorf(ctxPoint, i, ErrOutOfRange)
	}
	out := make([]float64, ds.d)
	copy(out, ds.data[i*ds.d:(i+1)*ds.d])

	return out, nil
}

// PointView returns row i without copying. The slice aliases the dataset
// buffer and must be treated as read-only. It panics on an invalid index,
// use Point for checked access.
func (ds *Dataset) PointView(i int) []float64 {
	return ds.data[i*ds.d : (i+1)*ds.d : (i+1)*ds.d]
}

// Label returns the label of row i.
func (ds *Dataset) Label(i int) (bool, error) {
	if i < 0 || i >= len(ds.labels) {
		return false, datasetErrorf(ctxLabel, i, ErrOutOfRange)
	}

	return ds.labels[i], nil
}

// Labels returns a copy of all labels in row order.
func (ds *Dataset) Labels() []bool {
	out := make([]bool, len(ds.labels))
	copy(out, ds.labels)

	return out
}

// At returns coordinate j of row i.
func (ds *Dataset) At(i, j int) (float64, error) {
	if i < 0 || i >= len(ds.labels) || j < 0 || j >= ds.d {
		return 0, fmt.Errorf("Dataset.%s(%d,%d): %w", ctxAt, i, j, ErrOutOfRange)
	}

	return ds.data[i*ds.d+j], nil
}

// Column returns a copy of coordinate j across all rows (e.g. all x1 values).
func (ds *Dataset) Column(j int) ([]float64, error) {
	if j < 0 || j >= ds.d {
		return nil, datasetErrorf(ctxColumn, j, ErrOutOfRange)
	}
	out := make([]float64, len(ds.labels))
	for i := range out {
		out[i] = ds.data[i*ds.d+j]
	}

	return out, nil
}

// Subset materialises the rows listed in idx (in that order) as a new dataset.
// Duplicate indices are allowed and copied twice.
func (ds *Dataset) Subset(idx []int) (*Dataset, error) {
	out := &Dataset{
		d:      ds.d,
		data:   make([]float64, 0, len(idx)*ds.d),
		labels: make([]bool, 0, len(idx)),
	}
	for _, i := range idx {
		if i < 0 || i >= len(ds.labels) {
			return nil, datasetErrorf(ctxSubset, i, ErrOutOfRange)
		}
		out.data = append(out.data, ds.PointView(i)...)
		out.labels = append(out.labels, ds.labels[i])
	}

	return out, nil
}

// Each calls fn for every row in order and stops at the first error.
// The point slice is a read-only view.
func (ds *Dataset) Each(fn func(i int, point []float64, label bool) error) error {
	for i := range ds.labels {
		if err := fn(i, ds.PointView(i), ds.labels[i]); err != nil {
			return err
		}
	}

	return nil
}

// Positives returns the number of rows labeled true.
func (ds *Dataset) Positives() int {
	n := 0
	for _, l := range ds.labels {
		if l {
			n++
		}
	}

	return n
}

// String renders one row per line: "[x1, x2] true".
func (ds *Dataset) String() string {
	var sb strings.Builder
	for i := range ds.labels {
		sb.WriteString("[")
		for j, v := range ds.PointView(i) {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", v)
		}
		fmt.Fprintf(&sb, "] %t\n", ds.labels[i])
	}

	return sb.String()
}

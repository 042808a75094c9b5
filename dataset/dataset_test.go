// SPDX-License-Identifier: MIT

package dataset_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/multiplicity/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fourPoints is the right-half-plane set used across packages.
func fourPoints(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.FromSlices(
		[][]float64{{-0.5, -0.5}, {-0.5, 0.5}, {0.5, -0.5}, {0.5, 0.5}},
		[]bool{false, false, true, true},
	)
	require.NoError(t, err)

	return ds
}

func TestNew_InvalidDimension(t *testing.T) {
	_, err := dataset.New(0)
	assert.ErrorIs(t, err, dataset.ErrInvalidDimension)
	_, err = dataset.New(-3)
	assert.ErrorIs(t, err, dataset.ErrInvalidDimension)
}

func TestAppend_Validation(t *testing.T) {
	ds, err := dataset.New(2)
	require.NoError(t, err)

	require.NoError(t, ds.Append([]float64{1, 2}, true))
	assert.ErrorIs(t, ds.Append([]float64{1, 2, 3}, false), dataset.ErrDimensionMismatch)
	assert.ErrorIs(t, ds.Append([]float64{math.NaN(), 0}, false), dataset.ErrNaNInf)
	assert.ErrorIs(t, ds.Append([]float64{0, math.Inf(-1)}, false), dataset.ErrNaNInf)
	assert.Equal(t, 1, ds.Len(), "rejected points must not be stored")
}

func TestAppend_CopiesPoint(t *testing.T) {
	ds, err := dataset.New(2)
	require.NoError(t, err)
	p := []float64{1, 2}
	require.NoError(t, ds.Append(p, true))
	p[0] = 99

	got, err := ds.Point(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, got)
}

func TestFromSlices_Errors(t *testing.T) {
	_, err := dataset.FromSlices([][]float64{{1, 2}}, []bool{true, false})
	assert.ErrorIs(t, err, dataset.ErrLabelCount)

	_, err = dataset.FromSlices(nil, nil)
	assert.ErrorIs(t, err, dataset.ErrInvalidDimension)

	_, err = dataset.FromSlices([][]float64{{1, 2}, {3}}, []bool{true, false})
	assert.ErrorIs(t, err, dataset.ErrDimensionMismatch)
}

func TestAccessors(t *testing.T) {
	ds := fourPoints(t)

	assert.Equal(t, 4, ds.Len())
	assert.Equal(t, 2, ds.Dim())
	assert.Equal(t, 2, ds.Positives())
	assert.Equal(t, []bool{false, false, true, true}, ds.Labels())

	v, err := ds.At(2, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)

	_, err = ds.At(4, 0)
	assert.ErrorIs(t, err, dataset.ErrOutOfRange)
	_, err = ds.At(0, 2)
	assert.ErrorIs(t, err, dataset.ErrOutOfRange)
	_, err = ds.Point(-1)
	assert.ErrorIs(t, err, dataset.ErrOutOfRange)
	_, err = ds.Label(9)
	assert.ErrorIs(t, err, dataset.ErrOutOfRange)

	col, err := ds.Column(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{-0.5, 0.5, -0.5, 0.5}, col)
	_, err = ds.Column(5)
	assert.ErrorIs(t, err, dataset.ErrOutOfRange)

	assert.Equal(t, []float64{0.5, 0.5}, ds.PointView(3))
}

func TestSubset(t *testing.T) {
	ds := fourPoints(t)

	sub, err := ds.Subset([]int{3, 0, 3})
	require.NoError(t, err)
	assert.Equal(t, 3, sub.Len())
	assert.Equal(t, []bool{true, false, true}, sub.Labels())
	p, err := sub.Point(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{-0.5, -0.5}, p)

	_, err = ds.Subset([]int{0, 4})
	assert.ErrorIs(t, err, dataset.ErrOutOfRange)
}

func TestEach_StopsOnError(t *testing.T) {
	ds := fourPoints(t)
	visited := 0
	err := ds.Each(func(i int, _ []float64, _ bool) error {
		visited++
		if i == 1 {
			return dataset.ErrOutOfRange
		}
		return nil
	})
	assert.ErrorIs(t, err, dataset.ErrOutOfRange)
	assert.Equal(t, 2, visited)
}

func TestString(t *testing.T) {
	ds, err := dataset.FromSlices([][]float64{{1, -2}}, []bool{true})
	require.NoError(t, err)
	assert.Equal(t, "[1, -2] true\n", ds.String())
}

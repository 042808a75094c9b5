// SPDX-License-Identifier: MIT

package svm_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/multiplicity/dataset"
	"github.com/katalvlaran/multiplicity/linear"
	"github.com/katalvlaran/multiplicity/mip"
	"github.com/katalvlaran/multiplicity/svm"
)

// recordingSolver wraps branch-and-bound and counts session lifecycles.
type recordingSolver struct {
	inner    mip.Solver
	opened   int
	closed   int
	openErr  error
	closeErr error
}

type recordingSession struct {
	mip.Session
	parent *recordingSolver
}

func (r *recordingSolver) Open() (mip.Session, error) {
	if r.openErr != nil {
		return nil, r.openErr
	}
	s, err := r.inner.Open()
	if err != nil {
		return nil, err
	}
	r.opened++

	return &recordingSession{Session: s, parent: r}, nil
}

func (s *recordingSession) Close() error {
	s.parent.closed++
	if err := s.Session.Close(); err != nil {
		return err
	}

	return s.parent.closeErr
}

func newRecorder() *recordingSolver {
	return &recordingSolver{inner: mip.NewBranchAndBound(mip.DefaultOptions())}
}

func separable(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.FromSlices(
		[][]float64{
			{-1, -0.5}, {-0.8, 0.3}, {-0.6, 0.9}, {-0.9, -0.9},
			{1, 0.5}, {0.8, -0.3}, {0.6, -0.9}, {0.9, 0.9},
		},
		[]bool{false, false, false, false, true, true, true, true},
	)
	require.NoError(t, err)

	return ds
}

func TestPegasos_Separable(t *testing.T) {
	ds := separable(t)
	clf, err := svm.NewPegasos(svm.WithSeed(7)).Fit(ds)
	require.NoError(t, err)

	acc, err := clf.Accuracy(ds)
	require.NoError(t, err)
	assert.Equal(t, 1.0, acc)
	assert.Greater(t, clf.Weight()[0], 0.0)
}

func TestPegasos_Deterministic(t *testing.T) {
	ds := separable(t)
	a, err := svm.NewPegasos(svm.WithSeed(3), svm.WithEpochs(5)).Fit(ds)
	require.NoError(t, err)
	b, err := svm.NewPegasos(svm.WithSeed(3), svm.WithEpochs(5)).Fit(ds)
	require.NoError(t, err)
	assert.Equal(t, a.Weight(), b.Weight())
	assert.Equal(t, a.Bias(), b.Bias())
}

func TestPegasos_Errors(t *testing.T) {
	empty, err := dataset.New(2)
	require.NoError(t, err)
	_, err = svm.NewPegasos().Fit(empty)
	assert.ErrorIs(t, err, svm.ErrTooFewSamples)

	one, err := dataset.FromSlices([][]float64{{1, 1}, {2, 2}}, []bool{true, true})
	require.NoError(t, err)
	_, err = svm.NewPegasos().Fit(one)
	assert.ErrorIs(t, err, svm.ErrSingleClass)

	assert.Panics(t, func() { svm.WithLambda(0) })
	assert.Panics(t, func() { svm.WithEpochs(0) })
	assert.Panics(t, func() { svm.WithRand(nil) })
}

func TestExact_Fit(t *testing.T) {
	ds, err := dataset.FromSlices(
		[][]float64{{2, 0}, {0.5, 0}, {-1, 0}},
		[]bool{true, true, false},
	)
	require.NoError(t, err)
	rec := newRecorder()
	ex := svm.NewExact(linear.MustNew([]float64{1, 0}, 0), svm.WithSolver(rec))

	sv, err := ex.SupportVectors(ds)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, sv)

	clf, err := ex.Fit(ds)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, clf.Weight())
	// smallest projection is row 2, labeled false
	assert.Equal(t, -1.0, clf.Bias())

	assert.Equal(t, 2, rec.opened)
	assert.Equal(t, 2, rec.closed)
}

func TestExact_InfeasibleClosesSession(t *testing.T) {
	ds, err := dataset.FromSlices(
		[][]float64{{2, 0}, {1, 0}},
		[]bool{true, false},
	)
	require.NoError(t, err)
	rec := newRecorder()

	_, err = svm.NewExact(linear.MustNew([]float64{1, 0}, 0), svm.WithSolver(rec)).Fit(ds)
	assert.ErrorIs(t, err, svm.ErrInfeasible)
	assert.ErrorIs(t, err, mip.ErrInfeasible)
	assert.Equal(t, 1, rec.opened)
	assert.Equal(t, 1, rec.closed)
}

func TestExact_WiderC(t *testing.T) {
	// With C = 3 a misclassified point may drop out of the margin instead.
	ds, err := dataset.FromSlices(
		[][]float64{{2, 0}, {1, 0}},
		[]bool{true, false},
	)
	require.NoError(t, err)
	sv, err := svm.NewExact(linear.MustNew([]float64{1, 0}, 0), svm.WithC(3)).SupportVectors(ds)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, sv)
}

func TestExact_NoSupportVectors(t *testing.T) {
	ds, err := dataset.FromSlices([][]float64{{0.5, 0}}, []bool{true})
	require.NoError(t, err)
	rec := newRecorder()

	_, err = svm.NewExact(linear.MustNew([]float64{1, 0}, 0), svm.WithSolver(rec)).Fit(ds)
	assert.ErrorIs(t, err, svm.ErrNoSupportVectors)
	assert.Equal(t, rec.opened, rec.closed)
}

func TestExact_CloseFailure(t *testing.T) {
	boom := errors.New("session lost")
	rec := newRecorder()
	rec.closeErr = boom

	_, err := svm.NewExact(linear.MustNew([]float64{1, 0}, 0), svm.WithSolver(rec)).Fit(separable(t))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, rec.closed)
}

func TestExact_OpenFailure(t *testing.T) {
	ds, err := dataset.FromSlices([][]float64{{1, 0}}, []bool{true})
	require.NoError(t, err)
	boom := errors.New("no licence")
	rec := &recordingSolver{openErr: boom}

	_, err = svm.NewExact(linear.MustNew([]float64{1, 0}, 0), svm.WithSolver(rec)).Fit(ds)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, rec.closed)
}

func TestExact_DimensionMismatch(t *testing.T) {
	ds, err := dataset.FromSlices([][]float64{{1, 0, 0}}, []bool{true})
	require.NoError(t, err)

	_, err = svm.NewExact(linear.MustNew([]float64{1, 0}, 0)).Fit(ds)
	assert.ErrorIs(t, err, linear.ErrDimensionMismatch)
}

// SPDX-License-Identifier: MIT

package linear

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/multiplicity/dataset"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrDimensionMismatch indicates a point whose length differs from len(w).
	ErrDimensionMismatch = errors.New("linear: dimension mismatch")

	// ErrEmptyWeight indicates a classifier constructed without coefficients.
	ErrEmptyWeight = errors.New("linear: weight vector is empty")

	// ErrNaNInf indicates a NaN or ±Inf coefficient.
	ErrNaNInf = errors.New("linear: NaN or Inf coefficient")

	// ErrEmptyDataset indicates Accuracy on a dataset without rows.
	ErrEmptyDataset = errors.New("linear: dataset is empty")
)

// Model is the capability set shared by every classifier variant.
type Model interface {
	Predict(point []float64) (bool, error)
	DecisionScore(point []float64) (float64, error)
	Accuracy(ds *dataset.Dataset) (float64, error)
}

// Fitter produces a classifier from a labeled dataset.
type Fitter interface {
	Fit(ds *dataset.Dataset) (*Classifier, error)
}

// Classifier is an immutable linear binary classifier.
type Classifier struct {
	w []float64
	b float64
}

var _ Model = (*Classifier)(nil)

// New returns a classifier with a private copy of weight.
//
// Errors: ErrEmptyWeight, ErrNaNInf.
func New(weight []float64, bias float64) (*Classifier, error) {
	if len(weight) == 0 {
		return nil, ErrEmptyWeight
	}
	if math.IsNaN(bias) || math.IsInf(bias, 0) || floats.HasNaN(weight) {
		return nil, ErrNaNInf
	}
	for _, v := range weight {
		if math.IsInf(v, 0) {
			return nil, ErrNaNInf
		}
	}
	w := make([]float64, len(weight))
	copy(w, weight)

	return &Classifier{w: w, b: bias}, nil
}

// MustNew is New for literal coefficients; it panics on error.
func MustNew(weight []float64, bias float64) *Classifier {
	c, err := New(weight, bias)
	if err != nil {
		panic(err)
	}

	return c
}

// Weight returns a copy of the weight vector.
func (c *Classifier) Weight() []float64 {
	out := make([]float64, len(c.w))
	copy(out, c.w)

	return out
}

// Bias returns the bias term.
func (c *Classifier) Bias() float64 { return c.b }

// Dim returns the input dimension.
func (c *Classifier) Dim() int { return len(c.w) }

// WithBias returns a new classifier sharing no state with c and carrying bias b.
func (c *Classifier) WithBias(b float64) (*Classifier, error) {
	return New(c.w, b)
}

// DecisionScore returns w·x + b.
func (c *Classifier) DecisionScore(point []float64) (float64, error) {
	if len(point) != len(c.w) {
		return 0, fmt.Errorf("DecisionScore: point has %d features, weight has %d: %w",
			len(point), len(c.w), ErrDimensionMismatch)
	}

	return floats.Dot(c.w, point) + c.b, nil
}

// Sign returns sign(w·x + b) as -1, 0 or +1.
func (c *Classifier) Sign(point []float64) (float64, error) {
	s, err := c.DecisionScore(point)
	if err != nil {
		return 0, err
	}
	switch {
	case s > 0:
		return 1, nil
	case s < 0:
		return -1, nil
	}

	return 0, nil
}

// Predict reports whether w·x + b > 0. A point on the boundary is false.
func (c *Classifier) Predict(point []float64) (bool, error) {
	s, err := c.DecisionScore(point)
	if err != nil {
		return false, err
	}

	return s > 0, nil
}

// Predictions returns Predict for every row of ds in row order.
func (c *Classifier) Predictions(ds *dataset.Dataset) ([]bool, error) {
	if ds.Dim() != len(c.w) {
		return nil, fmt.Errorf("Predictions: dataset has %d features, weight has %d: %w",
			ds.Dim(), len(c.w), ErrDimensionMismatch)
	}
	out := make([]bool, ds.Len())
	for i := range out {
		out[i] = floats.Dot(c.w, ds.PointView(i))+c.b > 0
	}

	return out, nil
}

// Accuracy returns the share of rows whose prediction equals the label.
//
// Errors: ErrEmptyDataset, ErrDimensionMismatch.
func (c *Classifier) Accuracy(ds *dataset.Dataset) (float64, error) {
	if ds.Len() == 0 {
		return 0, ErrEmptyDataset
	}
	preds, err := c.Predictions(ds)
	if err != nil {
		return 0, err
	}
	hits := 0
	for i, p := range preds {
		if l, _ := ds.Label(i); p == l {
			hits++
		}
	}

	return float64(hits) / float64(len(preds)), nil
}

// EmpiricalRisk returns 1 - Accuracy(ds).
func (c *Classifier) EmpiricalRisk(ds *dataset.Dataset) (float64, error) {
	acc, err := c.Accuracy(ds)
	if err != nil {
		return 0, err
	}

	return 1 - acc, nil
}

// String renders "w=[w1, w2] b=b".
func (c *Classifier) String() string {
	parts := make([]string, len(c.w))
	for i, v := range c.w {
		parts[i] = fmt.Sprintf("%.4g", v)
	}

	return fmt.Sprintf("w=[%s] b=%.4g", strings.Join(parts, ", "), c.b)
}

// SPDX-License-Identifier: MIT

package svm

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/multiplicity/dataset"
	"github.com/katalvlaran/multiplicity/linear"
)

// Sentinel errors.
var (
	ErrTooFewSamples    = errors.New("svm: dataset is empty")
	ErrSingleClass      = errors.New("svm: dataset has a single class")
	ErrInfeasible       = errors.New("svm: margin program is infeasible")
	ErrNoSupportVectors = errors.New("svm: no support vectors")
)

// Defaults for Pegasos.
const (
	DefaultLambda = 0.1
	DefaultEpochs = 200
)

// Option configures a Pegasos fitter.
type Option func(*Pegasos)

// WithLambda sets the regularisation strength. Panics unless lambda > 0.
func WithLambda(lambda float64) Option {
	if !(lambda > 0) || math.IsInf(lambda, 1) {
		panic("svm: WithLambda(non-positive)")
	}

	return func(p *Pegasos) { p.lambda = lambda }
}

// WithEpochs sets the number of passes; each pass is Len() stochastic steps.
// Panics unless epochs ≥ 1.
func WithEpochs(epochs int) Option {
	if epochs < 1 {
		panic("svm: WithEpochs(<1)")
	}

	return func(p *Pegasos) { p.epochs = epochs }
}

// WithSeed gives the fitter a fresh RNG.
func WithSeed(seed int64) Option {
	return func(p *Pegasos) { p.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand gives the fitter an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("svm: WithRand(nil)")
	}

	return func(p *Pegasos) { p.rng = r }
}

// Pegasos is a stochastic soft-margin linear SVM.
// The RNG advances across Fit calls; a Pegasos value is not safe for
// concurrent use.
type Pegasos struct {
	lambda float64
	epochs int
	rng    *rand.Rand
}

var _ linear.Fitter = (*Pegasos)(nil)

// NewPegasos returns a fitter with DefaultLambda, DefaultEpochs and seed 1
// unless overridden.
func NewPegasos(opts ...Option) *Pegasos {
	p := &Pegasos{lambda: DefaultLambda, epochs: DefaultEpochs}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		p.rng = rand.New(rand.NewSource(1))
	}

	return p
}

// Fit trains on ds and returns the last iterate.
func (p *Pegasos) Fit(ds *dataset.Dataset) (*linear.Classifier, error) {
	n := ds.Len()
	if n == 0 {
		return nil, ErrTooFewSamples
	}
	if pos := ds.Positives(); pos == 0 || pos == n {
		return nil, fmt.Errorf("Pegasos.Fit: %w", ErrSingleClass)
	}
	d := ds.Dim()

	// w[d] is the bias weight of the constant feature.
	w := make([]float64, d+1)
	x := make([]float64, d+1)
	x[d] = 1
	radius := 1 / math.Sqrt(p.lambda)
	steps := p.epochs * n
	for t := 1; t <= steps; t++ {
		i := p.rng.Intn(n)
		copy(x, ds.PointView(i))
		y := -1.0
		if label, _ := ds.Label(i); label {
			y = 1
		}
		eta := 1 / (p.lambda * float64(t))
		margin := y * floats.Dot(w, x)
		floats.Scale(1-eta*p.lambda, w)
		if margin < 1 {
			floats.AddScaled(w, eta*y, x)
		}
		// projection onto the ball of radius 1/√λ
		if norm := floats.Norm(w, 2); norm > radius {
			floats.Scale(radius/norm, w)
		}
	}

	return linear.New(w[:d], w[d])
}

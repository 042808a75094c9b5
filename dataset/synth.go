// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"
	"math"
)

// customPoints are the eight hand-picked points of the diagonal-border figure.
var customPoints = [][]float64{
	{-0.5, -0.5}, {-0.5, 0.5}, {0.5, -0.5}, {0.5, 0.5},
	{0.3, 0.7}, {-0.75, 0.25}, {-0.1, 0.9}, {0.9, -0.1},
}

// Linspace returns m evenly spaced values over [low, high], both ends included.
// For m == 1 it returns [low].
func Linspace(low, high float64, m int) []float64 {
	if m <= 0 {
		return nil
	}
	out := make([]float64, m)
	if m == 1 {
		out[0] = low
		return out
	}
	step := (high - low) / float64(m-1)
	for i := range out {
		out[i] = low + float64(i)*step
	}
	out[m-1] = high

	return out
}

// Mesh builds a √n×√n grid over the configured range (default [-1,1]²).
// Points are ordered row-major over y then x: row k = (xs[k%m], ys[k/m]),
// which matches reshaping a meshgrid into a point list.
//
// Errors: ErrTooFewSamples when ⌊√n⌋ < 1.
func Mesh(n int, opts ...Option) (*Dataset, error) {
	m := int(math.Sqrt(float64(n)))
	if n < 1 || m < 1 {
		return nil, fmt.Errorf("Mesh(%d): %w", n, ErrTooFewSamples)
	}
	cfg := newSynthConfig(opts...)
	axis := Linspace(cfg.low, cfg.high, m)

	points := make([][]float64, 0, m*m)
	labels := make([]bool, 0, m*m)
	for _, y := range axis {
		for _, x := range axis {
			p := []float64{x, y}
			points = append(points, p)
			labels = append(labels, cfg.labelFn(p))
		}
	}

	return FromSlices(points, labels)
}

// Uniform draws n points uniformly from the configured square.
//
// Errors: ErrTooFewSamples (n < 1), ErrNeedRandSource (no RNG configured).
func Uniform(n int, opts ...Option) (*Dataset, error) {
	if n < 1 {
		return nil, fmt.Errorf("Uniform(%d): %w", n, ErrTooFewSamples)
	}
	cfg := newSynthConfig(opts...)
	if cfg.rng == nil {
		return nil, fmt.Errorf("Uniform: %w", ErrNeedRandSource)
	}
	span := cfg.high - cfg.low

	points := make([][]float64, n)
	labels := make([]bool, n)
	for i := range points {
		p := []float64{cfg.low + span*cfg.rng.Float64(), cfg.low + span*cfg.rng.Float64()}
		points[i] = p
		labels[i] = cfg.labelFn(p)
	}

	return FromSlices(points, labels)
}

// Diag builds the diagonal-border dataset: n/2 points (-u, v) labeled false
// followed by n/2 points (u, -v) labeled true, with u, v ~ U[0,1).
// The label function option is ignored; classes come from the quadrant.
//
// Errors: ErrTooFewSamples (n < 2), ErrNeedRandSource (no RNG configured).
func Diag(n int, opts ...Option) (*Dataset, error) {
	if n < 2 {
		return nil, fmt.Errorf("Diag(%d): %w", n, ErrTooFewSamples)
	}
	cfg := newSynthConfig(opts...)
	if cfg.rng == nil {
		return nil, fmt.Errorf("Diag: %w", ErrNeedRandSource)
	}
	half := n / 2

	points := make([][]float64, 0, 2*half)
	labels := make([]bool, 0, 2*half)
	// quadrant II first, then quadrant IV; each half draws all x then all y
	for _, sign := range []float64{-1, 1} {
		xs := make([]float64, half)
		for i := range xs {
			xs[i] = cfg.rng.Float64()
		}
		for i := 0; i < half; i++ {
			points = append(points, []float64{sign * xs[i], -sign * cfg.rng.Float64()})
			labels = append(labels, sign > 0)
		}
	}

	return FromSlices(points, labels)
}

// Custom returns the eight fixed points of the diagonal-border figure,
// labeled by the configured function (RightHalf unless overridden).
func Custom(opts ...Option) (*Dataset, error) {
	cfg := newSynthConfig(append([]Option{WithLabels(RightHalf)}, opts...)...)
	labels := make([]bool, len(customPoints))
	for i, p := range customPoints {
		labels[i] = cfg.labelFn(p)
	}

	return FromSlices(customPoints, labels)
}

// SPDX-License-Identifier: MIT

// options.go — functional options for dataset synthesis.
//
// Contract:
//   - Option constructors validate and PANIC on meaningless inputs; the
//     synthesis functions themselves never panic.
//   - Determinism is explicit: randomness only through WithSeed or WithRand.

package dataset

import "math/rand"

// Option customizes a synthesis call.
type Option func(*synthConfig)

// LabelFunc assigns the class of a point.
type LabelFunc func(point []float64) bool

// XOR labels a 2D point true when exactly one coordinate is positive.
func XOR(p []float64) bool { return (p[0] > 0) != (p[1] > 0) }

// RightHalf labels a point true when its first coordinate is positive.
func RightHalf(p []float64) bool { return p[0] > 0 }

// BelowDiagonal labels a 2D point true when x1 > x2.
func BelowDiagonal(p []float64) bool { return p[0] > p[1] }

// synthConfig aggregates synthesis knobs. Passed by value.
type synthConfig struct {
	rng     *rand.Rand
	labelFn LabelFunc
	low     float64
	high    float64
}

const (
	defaultLow  = -1.0
	defaultHigh = 1.0
)

func newSynthConfig(opts ...Option) synthConfig {
	cfg := synthConfig{
		labelFn: XOR,
		low:     defaultLow,
		high:    defaultHigh,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithSeed seeds a fresh *rand.Rand for stochastic constructors.
func WithSeed(seed int64) Option {
	return func(c *synthConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand provides an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("dataset: WithRand(nil)")
	}

	return func(c *synthConfig) { c.rng = r }
}

// WithLabels sets the label function. Panics on nil.
func WithLabels(fn LabelFunc) Option {
	if fn == nil {
		panic("dataset: WithLabels(nil)")
	}

	return func(c *synthConfig) { c.labelFn = fn }
}

// WithRange sets the sampling interval [low, high] on every axis.
// Panics unless low < high.
func WithRange(low, high float64) Option {
	if !(low < high) {
		panic("dataset: WithRange(low>=high)")
	}

	return func(c *synthConfig) { c.low, c.high = low, high }
}

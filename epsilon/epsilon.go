// SPDX-License-Identifier: MIT

package epsilon

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/multiplicity/dataset"
	"github.com/katalvlaran/multiplicity/linear"
)

var (
	// ErrBadOptions indicates Epsilon ≤ 0, TargetCount < 1 or MaxAttempts < 1.
	ErrBadOptions = errors.New("epsilon: invalid options")

	// ErrExhausted is returned by a Generator that has no more candidates.
	// Build treats it as the end of the search, not as a failure.
	ErrExhausted = errors.New("epsilon: generator exhausted")
)

// Defaults used by DefaultOptions.
const (
	DefaultEpsilon     = 0.1
	DefaultTargetCount = 3
	DefaultMaxAttempts = 100
)

// Options bounds the search.
type Options struct {
	Epsilon     float64 // strict accuracy tolerance, > 0
	TargetCount int     // stop after this many members, ≥ 1
	MaxAttempts int     // generator calls budget, ≥ 1

	// Logger receives one debug record per attempt; nil means no logging.
	Logger *zap.Logger
}

// DefaultOptions returns ε = 0.1, three members and 100 attempts.
func DefaultOptions() Options {
	return Options{
		Epsilon:     DefaultEpsilon,
		TargetCount: DefaultTargetCount,
		MaxAttempts: DefaultMaxAttempts,
	}
}

// Validate checks the bounds of o.
func (o Options) Validate() error {
	switch {
	case !(o.Epsilon > 0) || math.IsInf(o.Epsilon, 1):
		return fmt.Errorf("Epsilon=%g: %w", o.Epsilon, ErrBadOptions)
	case o.TargetCount < 1:
		return fmt.Errorf("TargetCount=%d: %w", o.TargetCount, ErrBadOptions)
	case o.MaxAttempts < 1:
		return fmt.Errorf("MaxAttempts=%d: %w", o.MaxAttempts, ErrBadOptions)
	}

	return nil
}

// Generator yields the candidate of the given attempt (0-based).
type Generator[C any] func(attempt int) (C, error)

// Scorer returns the accuracy of a candidate on the reference data.
type Scorer[C any] func(c C) (float64, error)

// Result is an epsilon set in discovery order.
type Result[C any] struct {
	Members          []C
	Accuracies       []float64 // Accuracies[i] belongs to Members[i]
	BaselineAccuracy float64
	Attempts         int // generator calls that produced a candidate
	Target           int
}

// Len returns the number of members.
func (r *Result[C]) Len() int { return len(r.Members) }

// Complete reports whether the target cardinality was reached.
func (r *Result[C]) Complete() bool { return len(r.Members) >= r.Target }

// Build runs the bounded generate-and-filter loop.
//
// Errors: ErrBadOptions; scorer and generator errors other than ErrExhausted
// are returned wrapped with the attempt index.
func Build[C any](baseline C, gen Generator[C], score Scorer[C], opts Options) (*Result[C], error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if gen == nil || score == nil {
		return nil, fmt.Errorf("nil generator or scorer: %w", ErrBadOptions)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	base, err := score(baseline)
	if err != nil {
		return nil, fmt.Errorf("epsilon: baseline: %w", err)
	}
	res := &Result[C]{BaselineAccuracy: base, Target: opts.TargetCount}

	for attempt := 0; attempt < opts.MaxAttempts && len(res.Members) < opts.TargetCount; attempt++ {
		c, err := gen(attempt)
		if errors.Is(err, ErrExhausted) {
			log.Debug("generator exhausted", zap.Int("attempt", attempt))
			break
		}
		if err != nil {
			return nil, fmt.Errorf("epsilon: attempt %d: %w", attempt, err)
		}
		res.Attempts++

		acc, err := score(c)
		if err != nil {
			return nil, fmt.Errorf("epsilon: attempt %d: %w", attempt, err)
		}
		keep := math.Abs(base-acc) < opts.Epsilon
		log.Debug("candidate scored",
			zap.Int("attempt", attempt),
			zap.Float64("accuracy", acc),
			zap.Float64("baseline", base),
			zap.Bool("kept", keep),
		)
		if keep {
			res.Members = append(res.Members, c)
			res.Accuracies = append(res.Accuracies, acc)
		}
	}

	return res, nil
}

// AccuracyOn scores linear models by accuracy on ds.
func AccuracyOn[M linear.Model](ds *dataset.Dataset) Scorer[M] {
	return func(m M) (float64, error) { return m.Accuracy(ds) }
}

// Classifiers filters a fixed candidate list of linear classifiers against
// baseline on ds.
func Classifiers(baseline *linear.Classifier, candidates []*linear.Classifier, ds *dataset.Dataset, opts Options) (*Result[*linear.Classifier], error) {
	return Build(baseline, FromSlice(candidates), AccuracyOn[*linear.Classifier](ds), opts)
}

// SPDX-License-Identifier: MIT

package kg

import (
	"fmt"
	"math/rand"
)

// Model is a toy embedding model that memorises its training graph and
// scores candidates with noisy values. Not safe for concurrent use: the RNG
// advances on every score.
type Model struct {
	Name  string
	Mu    float64
	Sigma float64

	rng   *rand.Rand
	train *Graph
}

// NewModel returns an unfitted model. Panics on nil rng or negative sigma.
func NewModel(name string, mu, sigma float64, rng *rand.Rand) *Model {
	if rng == nil {
		panic("kg: NewModel(nil rng)")
	}
	if sigma < 0 {
		panic("kg: NewModel(negative sigma)")
	}

	return &Model{Name: name, Mu: mu, Sigma: sigma, rng: rng}
}

// ToyModels returns the four reference models sharing rng.
func ToyModels(rng *rand.Rand) []*Model {
	return []*Model{
		NewModel("KGE 1", 0, 0.1, rng),
		NewModel("KGE 2", 0, 0.2, rng),
		NewModel("KGE 3", 0.1, 0.1, rng),
		NewModel("KGE 4", -0.1, 0.1, rng),
	}
}

// Fit memorises a snapshot of g.
func (m *Model) Fit(g *Graph) { m.train = g.Clone() }

// Entities returns the column order of the model's score matrices.
func (m *Model) Entities() ([]string, error) {
	if m.train == nil {
		return nil, ErrNotFitted
	}

	return m.train.Entities(), nil
}

// Value returns 2x + N(Mu, Sigma).
func (m *Model) Value(x float64) float64 {
	return 2*x + m.Mu + m.Sigma*m.rng.NormFloat64()
}

// PredictWithTruthProb scores every entity for every query. Row i belongs to
// queries[i]; columns follow Entities(). interest[i] is the entity whose
// truth probability is truthProbs[i].
//
// Errors: ErrNotFitted, ErrLengthMismatch, ErrEntityNotFound.
func (m *Model) PredictWithTruthProb(queries []Query, truthProbs []float64, interest []string) ([][]float64, error) {
	if m.train == nil {
		return nil, ErrNotFitted
	}
	if len(queries) != len(truthProbs) || len(queries) != len(interest) {
		return nil, fmt.Errorf("PredictWithTruthProb: %d queries, %d probabilities, %d elements: %w",
			len(queries), len(truthProbs), len(interest), ErrLengthMismatch)
	}
	entities := m.train.Entities()
	out := make([][]float64, len(queries))
	for i, q := range queries {
		if !m.train.HasEntity(interest[i]) {
			return nil, fmt.Errorf("PredictWithTruthProb: %q: %w", interest[i], ErrEntityNotFound)
		}
		row := make([]float64, len(entities))
		for j, e := range entities {
			switch {
			case m.train.HasTriple(q.Fill(e)):
				row[j] = m.Value(1)
			case e == interest[i]:
				row[j] = m.Value(truthProbs[i])
			default:
				row[j] = m.Value(1 - truthProbs[i])
			}
		}
		out[i] = row
	}

	return out, nil
}

// TopK reports, per query, whether interest[i] ranks among the k best
// entities of scores[i].
func (m *Model) TopK(scores [][]float64, interest []string, k int) ([]bool, error) {
	idx, err := m.interestIndex(interest)
	if err != nil {
		return nil, err
	}

	return TopK(scores, idx, k)
}

// HitsAtK is the mean of TopK.
func (m *Model) HitsAtK(scores [][]float64, interest []string, k int) (float64, error) {
	idx, err := m.interestIndex(interest)
	if err != nil {
		return 0, err
	}

	return HitsAtK(scores, idx, k)
}

func (m *Model) interestIndex(interest []string) ([]int, error) {
	if m.train == nil {
		return nil, ErrNotFitted
	}
	idx := make([]int, len(interest))
	for i, e := range interest {
		j, err := m.train.Index(e)
		if err != nil {
			return nil, err
		}
		idx[i] = j
	}

	return idx, nil
}

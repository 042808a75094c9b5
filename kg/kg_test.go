// SPDX-License-Identifier: MIT

package kg_test

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/multiplicity/kg"
)

func solar(t *testing.T) *kg.Graph {
	t.Helper()
	g := kg.NewGraph()
	for _, e := range []string{"Sun", "Earth", "Mars", "Moon"} {
		require.NoError(t, g.AddEntity(e))
	}
	require.NoError(t, g.AddTriple(kg.Triple{Head: "Earth", Relation: "orbits", Tail: "Sun"}))
	require.NoError(t, g.AddTriple(kg.Triple{Head: "Mars", Relation: "orbits", Tail: "Sun"}))
	require.NoError(t, g.AddTriple(kg.Triple{Head: "Moon", Relation: "orbits", Tail: "Earth"}))

	return g
}

func TestGraph_Entities(t *testing.T) {
	g := solar(t)
	assert.Equal(t, []string{"Sun", "Earth", "Mars", "Moon"}, g.Entities())
	require.NoError(t, g.AddEntity("Sun")) // idempotent
	assert.Equal(t, 4, g.EntityCount())

	i, err := g.Index("Mars")
	require.NoError(t, err)
	assert.Equal(t, 2, i)
	_, err = g.Index("Pluto")
	assert.ErrorIs(t, err, kg.ErrEntityNotFound)
	assert.ErrorIs(t, g.AddEntity(""), kg.ErrEmptyEntity)
}

func TestGraph_Triples(t *testing.T) {
	g := solar(t)
	assert.Equal(t, 3, g.TripleCount())
	assert.Equal(t, []kg.Triple{
		{Head: "Earth", Relation: "orbits", Tail: "Sun"},
		{Head: "Mars", Relation: "orbits", Tail: "Sun"},
		{Head: "Moon", Relation: "orbits", Tail: "Earth"},
	}, g.Triples())
	assert.Equal(t, []string{"orbits"}, g.Relations())
	assert.Equal(t, []string{"Earth", "Mars"}, g.Heads("orbits", "Sun"))
	assert.Equal(t, []string{"Earth"}, g.Tails("Moon", "orbits"))
	assert.Empty(t, g.Tails("Sun", "orbits"))

	err := g.AddTriple(kg.Triple{Head: "Earth", Relation: "orbits", Tail: "Sun"})
	assert.ErrorIs(t, err, kg.ErrDuplicateTriple)
	err = g.AddTriple(kg.Triple{Head: "Hubble", Relation: "orbits", Tail: "Earth"})
	assert.ErrorIs(t, err, kg.ErrEntityNotFound)
	assert.ErrorIs(t, g.AddTriple(kg.Triple{Head: "Earth", Tail: "Sun"}), kg.ErrEmptyRelation)
	assert.ErrorIs(t, g.AddTriple(kg.Triple{Relation: "orbits", Tail: "Sun"}), kg.ErrEmptyEntity)
}

func TestGraph_AutoEntitiesAndClone(t *testing.T) {
	g := kg.NewGraph(kg.WithAutoEntities())
	require.NoError(t, g.AddTriple(kg.Triple{Head: "James Webb", Relation: "observes", Tail: "Jupiter"}))
	assert.Equal(t, []string{"James Webb", "Jupiter"}, g.Entities())

	c := g.Clone()
	require.NoError(t, c.AddTriple(kg.Triple{Head: "Jupiter", Relation: "orbits", Tail: "Sun"}))
	assert.Equal(t, 1, g.TripleCount())
	assert.Equal(t, 2, c.TripleCount())
	assert.False(t, g.HasEntity("Sun"))
	assert.Equal(t, []string{"Sun"}, c.Tails("Jupiter", "orbits"))
}

func TestGraph_Concurrent(t *testing.T) {
	g := kg.NewGraph(kg.WithAutoEntities())
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				_ = g.AddTriple(kg.Triple{Head: fmt.Sprintf("h%d", w), Relation: "r", Tail: fmt.Sprintf("t%d", i)})
				_ = g.Triples()
				_ = g.Entities()
			}
		}(w)
	}
	wg.Wait()
	assert.Equal(t, 400, g.TripleCount())
	assert.Equal(t, 58, g.EntityCount())
}

func TestQuery(t *testing.T) {
	g := solar(t)
	q := kg.Query{Value: "Sun", Relation: "orbits", HeadMissing: true}
	assert.Equal(t, kg.Triple{Head: "Moon", Relation: "orbits", Tail: "Sun"}, q.Fill("Moon"))
	assert.Equal(t, []string{"Earth", "Mars"}, q.Answers(g))

	tail := kg.Query{Value: "Moon", Relation: "orbits"}
	assert.Equal(t, kg.Triple{Head: "Moon", Relation: "orbits", Tail: "Sun"}, tail.Fill("Sun"))
	assert.Equal(t, []string{"Earth"}, tail.Answers(g))
}

func TestModel_PredictNoiseless(t *testing.T) {
	m := kg.NewModel("exact", 0, 0, rand.New(rand.NewSource(1)))
	q := []kg.Query{{Value: "Sun", Relation: "orbits", HeadMissing: true}}
	_, err := m.PredictWithTruthProb(q, []float64{0.4}, []string{"Moon"})
	assert.ErrorIs(t, err, kg.ErrNotFitted)

	m.Fit(solar(t))
	scores, err := m.PredictWithTruthProb(q, []float64{0.4}, []string{"Moon"})
	require.NoError(t, err)
	// Sun, Earth, Mars, Moon
	assert.InDeltaSlice(t, []float64{1.2, 2, 2, 0.8}, scores[0], 1e-12)

	assert.Equal(t, []int{1, 2, 0, 3}, kg.Rank(scores[0]))
	top3, err := m.TopK(scores, []string{"Moon"}, 3)
	require.NoError(t, err)
	assert.Equal(t, []bool{false}, top3)
	hits, err := m.HitsAtK(scores, []string{"Moon"}, 4)
	require.NoError(t, err)
	assert.Equal(t, 1.0, hits)

	_, err = m.PredictWithTruthProb(q, []float64{0.4, 0.5}, []string{"Moon"})
	assert.ErrorIs(t, err, kg.ErrLengthMismatch)
	_, err = m.PredictWithTruthProb(q, []float64{0.4}, []string{"Pluto"})
	assert.ErrorIs(t, err, kg.ErrEntityNotFound)
	_, err = m.TopK(scores, []string{"Moon"}, 0)
	assert.ErrorIs(t, err, kg.ErrBadK)
}

func TestToyModels_Seeded(t *testing.T) {
	run := func() [][]float64 {
		var all [][]float64
		for _, m := range kg.ToyModels(rand.New(rand.NewSource(7))) {
			m.Fit(solar(t))
			s, err := m.PredictWithTruthProb(
				[]kg.Query{{Value: "Sun", Relation: "orbits", HeadMissing: true}},
				[]float64{0.4}, []string{"Moon"})
			require.NoError(t, err)
			all = append(all, s[0])
		}
		return all
	}
	a, b := run(), run()
	require.Len(t, a, 4)
	assert.Equal(t, a, b)
}

func TestHitsAtK_Empty(t *testing.T) {
	h, err := kg.HitsAtK(nil, nil, 1)
	require.NoError(t, err)
	assert.Zero(t, h)
	_, err = kg.TopK([][]float64{{1}}, []int{3}, 1)
	assert.ErrorIs(t, err, kg.ErrEntityNotFound)
}

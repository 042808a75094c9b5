// SPDX-License-Identifier: MIT

package experiment

import (
	"image/color"
	"io"
	"math/rand"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/katalvlaran/multiplicity/glyph"
	"github.com/katalvlaran/multiplicity/kg"
	"github.com/katalvlaran/multiplicity/render"
	"github.com/katalvlaran/multiplicity/vote"
)

// SolarNodes are the entities of the link-prediction example with their
// figure positions, in column order.
var SolarNodes = []render.Node{
	{Name: "Sun", X: 0, Y: 0},
	{Name: "Mars", X: 3, Y: 2},
	{Name: "Jupiter", X: -3, Y: 1},
	{Name: "Titan", X: -1.5, Y: 2},
	{Name: "James Webb", X: 0, Y: -2},
	{Name: "Earth", X: 2.5, Y: -1.5},
	{Name: "Curiosity Rover", X: 4, Y: 0},
	{Name: "Moon", X: 0, Y: 1.5},
	{Name: "Hubble", X: -1.5, Y: -1.5},
	{Name: "Sirius", X: -3, Y: -0.5},
}

// SolarTrain are the known triples.
var SolarTrain = []kg.Triple{
	{Head: "Earth", Relation: "orbits", Tail: "Sun"},
	{Head: "Mars", Relation: "orbits", Tail: "Sun"},
	{Head: "Moon", Relation: "orbits", Tail: "Earth"},
	{Head: "Moon", Relation: "orbits", Tail: "Sun"},
	{Head: "Jupiter", Relation: "orbits", Tail: "Sun"},
	{Head: "James Webb", Relation: "orbits", Tail: "Earth"},
	{Head: "James Webb", Relation: "observes", Tail: "Jupiter"},
}

// SolarTest are the candidate triples drawn dashed, with their truth
// probabilities.
var SolarTest = []struct {
	kg.Triple
	Prob float64
}{
	{kg.Triple{Head: "Earth", Relation: "observes", Tail: "Curiosity Rover"}, 0.9},
	{kg.Triple{Head: "Curiosity Rover", Relation: "observes", Tail: "Mars"}, 0.9},
	{kg.Triple{Head: "Curiosity Rover", Relation: "orbits", Tail: "Sun"}, 0.9},
	{kg.Triple{Head: "Sun", Relation: "orbits", Tail: "James Webb"}, 0.1},
}

// RelationColors colour the two relations of the example.
var RelationColors = map[string]color.Color{
	"orbits":   color.RGBA{R: 0xFF, A: 0xFF},
	"observes": color.RGBA{B: 0xFF, A: 0xFF},
}

// LinkQuery asks what orbits the Sun; Moon is the element of interest with
// truth probability LinkTruthProb.
var LinkQuery = kg.Query{Value: "Sun", Relation: "orbits", HeadMissing: true}

// Element of interest of LinkQuery and its truth probability.
const (
	LinkInterest  = "Moon"
	LinkTruthProb = 0.4
)

// LinkReport summarises the link-prediction scenario.
type LinkReport struct {
	Entities []string
	Scores   [][]float64        // models × entities
	Hits     map[string]float64 // hits@k per model
	Table    *vote.Table
	Figures  []string
}

// SolarGraph builds the training graph, every entity registered up front.
func SolarGraph() (*kg.Graph, error) {
	g := kg.NewGraph()
	for _, n := range SolarNodes {
		if err := g.AddEntity(n.Name); err != nil {
			return nil, err
		}
	}
	for _, t := range SolarTrain {
		if err := g.AddTriple(t); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// LinkPrediction fits the toy models, aggregates their scores for LinkQuery
// with every voting method, writes the LaTeX table to w and the
// knowledge_graph figure. The glyph on the Moon→Sun edge shows the training
// fact as ground truth, the Range-vote top-k verdict as baseline and each
// model's top-k verdict as a slice.
func (r *Runner) LinkPrediction(w io.Writer) (*LinkReport, error) {
	g, err := SolarGraph()
	if err != nil {
		return nil, errors.Wrap(err, "linkpred: graph")
	}
	rep := &LinkReport{Entities: g.Entities(), Hits: make(map[string]float64)}
	interest, err := g.Index(LinkInterest)
	if err != nil {
		return nil, errors.Wrap(err, "linkpred")
	}

	models := kg.ToyModels(rand.New(rand.NewSource(r.cfg.Seed)))
	k := r.cfg.KG.K
	var verdicts []bool
	for _, m := range models {
		m.Fit(g)
		scores, err := m.PredictWithTruthProb([]kg.Query{LinkQuery}, []float64{LinkTruthProb}, []string{LinkInterest})
		if err != nil {
			return nil, errors.Wrapf(err, "linkpred: %s", m.Name)
		}
		hits, err := m.HitsAtK(scores, []string{LinkInterest}, k)
		if err != nil {
			return nil, errors.Wrapf(err, "linkpred: %s", m.Name)
		}
		rep.Scores = append(rep.Scores, scores[0])
		rep.Hits[m.Name] = hits
		verdicts = append(verdicts, hits > 0)
		r.log.Info("model ranking",
			zap.String("model", m.Name),
			zap.Strings("top", topNames(rep.Entities, scores[0], k)),
			zap.Int("k", k),
			zap.Float64("hits", hits),
		)
	}

	rep.Table, err = vote.Tabulate(rep.Entities, rep.Scores)
	if err != nil {
		return nil, errors.Wrap(err, "linkpred: vote")
	}
	if _, err := io.WriteString(w, rep.Table.Latex()); err != nil {
		return nil, errors.Wrap(err, "linkpred: write table")
	}
	ranged, err := vote.Range{}.Aggregate(rep.Scores)
	if err != nil {
		return nil, errors.Wrap(err, "linkpred: vote")
	}
	consensus := kg.Position(ranged.Totals, interest) < k

	f, err := r.graphFigure(g)
	if err != nil {
		return nil, errors.Wrap(err, "linkpred: figure")
	}
	moon, sun := SolarNodes[7], SolarNodes[0]
	gl := glyph.Glyph{
		X:        (moon.X + sun.X) / 2,
		Y:        (moon.Y + sun.Y) / 2,
		Encoding: r.palette.Encode(g.HasTriple(LinkQuery.Fill(LinkInterest)), consensus, verdicts),
	}
	geom := r.geom.Scale(graphGlyphScale)
	f.Glyphs([]glyph.Glyph{gl}, geom)

	tmp := &Report{Scenario: "linkpred"}
	if err := r.save(tmp, f, "knowledge_graph"); err != nil {
		return nil, err
	}
	rep.Figures = tmp.Figures

	return rep, nil
}

// graphGlyphScale enlarges glyphs to the wider data range of the graph.
const graphGlyphScale = 5

func (r *Runner) graphFigure(g *kg.Graph) (*render.Figure, error) {
	var edges []render.Edge
	for _, t := range g.Triples() {
		edges = append(edges, render.Edge{From: t.Head, To: t.Tail, Relation: t.Relation})
	}
	for _, t := range SolarTest {
		edges = append(edges, render.Edge{From: t.Head, To: t.Tail, Relation: t.Relation, Dashed: true})
	}

	return render.NewGraphFigure("", SolarNodes, edges, RelationColors)
}

func topNames(entities []string, scores []float64, k int) []string {
	rank := kg.Rank(scores)
	if k > len(rank) {
		k = len(rank)
	}
	out := make([]string, k)
	for i := range out {
		out[i] = entities[rank[i]]
	}

	return out
}

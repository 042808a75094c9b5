// SPDX-License-Identifier: MIT

package render_test

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/multiplicity/dataset"
	"github.com/katalvlaran/multiplicity/glyph"
	"github.com/katalvlaran/multiplicity/linear"
	"github.com/katalvlaran/multiplicity/render"
)

func TestSegment(t *testing.T) {
	// x2 = x1 through the unit box: corner to corner
	seg, err := render.Segment(1, -1, 0, render.UnitBox)
	require.NoError(t, err)
	require.Len(t, seg, 2)
	assert.InDelta(t, -1, seg[0].X, 1e-12)
	assert.InDelta(t, -1, seg[0].Y, 1e-12)
	assert.InDelta(t, 1, seg[1].X, 1e-12)
	assert.InDelta(t, 1, seg[1].Y, 1e-12)

	// horizontal line x2 = 0.5
	seg, err = render.Segment(0, 1, -0.5, render.UnitBox)
	require.NoError(t, err)
	assert.Equal(t, -1.0, seg[0].X)
	assert.Equal(t, 0.5, seg[0].Y)
	assert.Equal(t, 1.0, seg[1].X)

	_, err = render.Segment(1, 0, -5, render.UnitBox)
	assert.ErrorIs(t, err, render.ErrNoBoundary)
	_, err = render.Segment(0, 0, 1, render.UnitBox)
	assert.ErrorIs(t, err, render.ErrNoBoundary)
}

func TestHalfPlane(t *testing.T) {
	// x1 ≥ 0: right half of the unit box
	poly := render.HalfPlane(1, 0, 0, render.UnitBox)
	require.NotNil(t, poly)
	for _, p := range poly {
		assert.GreaterOrEqual(t, p.X, 0.0)
	}
	area := 0.0
	for i := range poly {
		j := (i + 1) % len(poly)
		area += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	assert.InDelta(t, 2.0, area/2, 1e-12)

	assert.Nil(t, render.HalfPlane(1, 0, -5, render.UnitBox))
	assert.Len(t, render.HalfPlane(1, 0, 5, render.UnitBox), 4)
}

func TestBox_Intersect(t *testing.T) {
	got := render.UnitBox.Intersect(render.Box{XMin: 0, XMax: 3, YMin: -2, YMax: 0.5})
	assert.Equal(t, render.Box{XMin: 0, XMax: 1, YMin: -1, YMax: 0.5}, got)
	assert.True(t, got.Valid())

	assert.False(t, render.UnitBox.Intersect(render.Box{XMin: 2, XMax: 3, YMin: 0, YMax: 1}).Valid())
}

func TestFigure_ShadeBoxClips(t *testing.T) {
	fig := render.NewFigure("", render.UnitBox)
	require.NoError(t, fig.ShadeBox(render.Box{XMin: 0, XMax: 5, YMin: -4, YMax: 5}, glyph.TrueGreen, render.ShadeAlpha))
	require.NoError(t, fig.ShadeBox(render.Box{XMin: 2, XMax: 3, YMin: 2, YMax: 3}, glyph.TrueGreen, render.ShadeAlpha))

	// an unclipped polygon would widen the axes
	p := fig.Plot()
	assert.Equal(t, []float64{-1, 1, -1, 1}, []float64{p.X.Min, p.X.Max, p.Y.Min, p.Y.Max})
}

func TestGlyphPlotter_DataRange(t *testing.T) {
	geom := glyph.DefaultGeometry()
	geom.Ring = true
	gp := render.NewGlyphPlotter([]glyph.Glyph{{X: 0, Y: 0}, {X: 1, Y: -1}}, geom)
	xmin, xmax, ymin, ymax := gp.DataRange()
	assert.InDelta(t, -0.06, xmin, 1e-12)
	assert.InDelta(t, 1.06, xmax, 1e-12)
	assert.InDelta(t, -1.06, ymin, 1e-12)
	assert.InDelta(t, 0.06, ymax, 1e-12)
}

func TestFigure_Save(t *testing.T) {
	ds, err := dataset.Mesh(16)
	require.NoError(t, err)
	h0 := linear.MustNew([]float64{0, 1}, 0)
	alt := linear.MustNew([]float64{1, 1}, 0.2)

	fig := render.NewFigure("xor", render.UnitBox)
	require.NoError(t, fig.ShadeBox(render.Box{XMin: -1, XMax: 0, YMin: 0, YMax: 1}, glyph.TrueGreen, render.ShadeAlpha))
	require.NoError(t, fig.ShadeHalfPlane(h0, glyph.FalseRed, render.ShadeAlpha))
	require.NoError(t, fig.Scatter(ds, glyph.DefaultPalette))
	require.NoError(t, fig.Boundary(h0, color.Black, "h0"))
	require.NoError(t, fig.Boundary(alt, nil, ""))
	gs, err := glyph.ForRows(glyph.DefaultPalette, ds, h0, []*linear.Classifier{alt, h0}, []int{0, 5, 10})
	require.NoError(t, err)
	fig.Glyphs(gs, glyph.DefaultGeometry())
	fig.Glyphs([]glyph.Glyph{{X: 0.5, Y: 0.5, Encoding: glyph.Encode(true, true, nil)}}, glyph.DefaultGeometry())

	for _, name := range []string{"fig.png", "fig.svg", "fig.pdf"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, fig.Save(path, 10*vg.Centimeter, 10*vg.Centimeter))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestFigure_Errors(t *testing.T) {
	fig := render.NewFigure("", render.UnitBox)
	wide := linear.MustNew([]float64{1, 0, 0}, 0)
	assert.ErrorIs(t, fig.Boundary(wide, nil, ""), render.ErrNotPlanar)
	assert.ErrorIs(t, fig.ShadeHalfPlane(wide, color.Black, 1), render.ErrNotPlanar)
	assert.ErrorIs(t, fig.Boundary(linear.MustNew([]float64{1, 0}, 9), nil, ""), render.ErrNoBoundary)
	assert.ErrorIs(t, fig.ShadeBox(render.Box{}, color.Black, 1), render.ErrEmptyBox)

	ds3, err := dataset.New(3)
	require.NoError(t, err)
	assert.ErrorIs(t, fig.Scatter(ds3, glyph.DefaultPalette), dataset.ErrDimensionMismatch)

	assert.Panics(t, func() { render.NewFigure("", render.Box{}) })
}

func TestLegend(t *testing.T) {
	fig, err := render.Legend(glyph.DefaultPalette)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "legend.png")
	require.NoError(t, fig.Save(path, 8*vg.Centimeter, 8*vg.Centimeter))
	assert.FileExists(t, path)
}

func TestGraphFigure(t *testing.T) {
	nodes := []render.Node{{Name: "Sun"}, {Name: "Earth", X: 2.5, Y: -1.5}, {Name: "Moon", Y: 1.5}}
	edges := []render.Edge{
		{From: "Earth", To: "Sun", Relation: "orbits"},
		{From: "Moon", To: "Earth", Relation: "orbits"},
		{From: "Earth", To: "Moon", Relation: "observes", Dashed: true},
	}
	fig, err := render.NewGraphFigure("kg", nodes, edges, map[string]color.Color{"orbits": color.RGBA{R: 0xFF, A: 0xFF}})
	require.NoError(t, err)
	fig.Glyphs([]glyph.Glyph{{X: 1, Y: 0, Encoding: glyph.Encode(true, true, []bool{true, false})}}, glyph.DefaultGeometry().Scale(4))

	path := filepath.Join(t.TempDir(), "kg.png")
	require.NoError(t, fig.Save(path, 12*vg.Centimeter, 9*vg.Centimeter))
	assert.FileExists(t, path)

	_, err = render.NewGraphFigure("", nodes, []render.Edge{{From: "Sun", To: "Pluto"}}, nil)
	assert.ErrorIs(t, err, render.ErrUnknownNode)
	_, err = render.NewGraphFigure("", nil, nil, nil)
	assert.Error(t, err)
}

func TestSearchTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.png")
	require.NoError(t, render.SearchTrace(path, "search", 0.9, 0.1, []float64{0.85, 0.95, 0.5}))
	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, st.Size())

	single := filepath.Join(t.TempDir(), "one.png")
	assert.NoError(t, render.SearchTrace(single, "", 1, 0.1, []float64{1}))

	assert.ErrorIs(t, render.SearchTrace(path, "", 1, 0.1, nil), render.ErrNoData)
}

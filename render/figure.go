// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/katalvlaran/multiplicity/dataset"
	"github.com/katalvlaran/multiplicity/glyph"
	"github.com/katalvlaran/multiplicity/linear"
)

// ShadeAlpha is the opacity of shaded regions (0.4).
const ShadeAlpha uint8 = 102

// Figure is a single-axes plot over a fixed Box.
type Figure struct {
	plot   *plot.Plot
	box    Box
	series int // boundaries drawn so far, selects the next palette color
}

// NewFigure returns a figure whose axes span box. Panics on an empty box.
func NewFigure(title string, box Box) *Figure {
	if !box.Valid() {
		panic("render: NewFigure(empty box)")
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x1"
	p.Y.Label.Text = "x2"
	p.X.Min, p.X.Max = box.XMin, box.XMax
	p.Y.Min, p.Y.Max = box.YMin, box.YMax
	p.Legend.Top = true

	return &Figure{plot: p, box: box}
}

// Plot exposes the underlying plot for further styling.
func (f *Figure) Plot() *plot.Plot { return f.plot }

// Box returns the axes box.
func (f *Figure) Box() Box { return f.box }

// ShadeBox fills r, clipped to the axes box, with col at the given alpha.
// A box entirely outside the axes draws nothing.
func (f *Figure) ShadeBox(r Box, col color.Color, alpha uint8) error {
	if !r.Valid() {
		return ErrEmptyBox
	}
	r = r.Intersect(f.box)
	if !r.Valid() {
		return nil
	}

	return f.polygon(r.Corners(), col, alpha)
}

// ShadeHalfPlane fills the region where c predicts true.
func (f *Figure) ShadeHalfPlane(c *linear.Classifier, col color.Color, alpha uint8) error {
	w, err := planar(c)
	if err != nil {
		return err
	}
	poly := HalfPlane(w[0], w[1], c.Bias(), f.box)
	if poly == nil {
		return nil
	}

	return f.polygon(poly, col, alpha)
}

func (f *Figure) polygon(xys plotter.XYs, col color.Color, alpha uint8) error {
	poly, err := plotter.NewPolygon(xys)
	if err != nil {
		return fmt.Errorf("render: polygon: %w", err)
	}
	poly.Color = withAlpha(col, alpha)
	poly.LineStyle.Width = 0
	f.plot.Add(poly)

	return nil
}

// Scatter plots the rows of a 2D dataset colored by label.
func (f *Figure) Scatter(ds *dataset.Dataset, pal glyph.Palette) error {
	if err := dataset.ValidateDim(ds, 2); err != nil {
		return fmt.Errorf("render: Scatter: %w", err)
	}
	var pos, neg plotter.XYs
	_ = ds.Each(func(_ int, p []float64, label bool) error {
		if label {
			pos = append(pos, plotter.XY{X: p[0], Y: p[1]})
		} else {
			neg = append(neg, plotter.XY{X: p[0], Y: p[1]})
		}
		return nil
	})
	for _, s := range []struct {
		xys  plotter.XYs
		col  color.Color
		name string
	}{{pos, pal.True, "true (1)"}, {neg, pal.False, "false (-1)"}} {
		if len(s.xys) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(s.xys)
		if err != nil {
			return fmt.Errorf("render: Scatter: %w", err)
		}
		sc.GlyphStyle.Color = s.col
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = vg.Points(1.5)
		f.plot.Add(sc)
		f.plot.Legend.Add(s.name, sc)
	}

	return nil
}

// Boundary draws the dashed decision line of c. A nil col picks the next
// color of the plotutil palette. An empty name adds no legend entry.
func (f *Figure) Boundary(c *linear.Classifier, col color.Color, name string) error {
	w, err := planar(c)
	if err != nil {
		return err
	}
	seg, err := Segment(w[0], w[1], c.Bias(), f.box)
	if err != nil {
		return fmt.Errorf("render: Boundary(%s): %w", c, err)
	}
	line, err := plotter.NewLine(seg)
	if err != nil {
		return fmt.Errorf("render: Boundary: %w", err)
	}
	if col == nil {
		col = plotutil.Color(f.series)
		f.series++
	}
	line.LineStyle.Color = col
	line.LineStyle.Width = vg.Points(1)
	line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	f.plot.Add(line)
	if name != "" {
		f.plot.Legend.Add(name, line)
	}

	return nil
}

// Glyphs adds a GlyphPlotter layer.
func (f *Figure) Glyphs(gs []glyph.Glyph, geom glyph.Geometry) {
	f.plot.Add(NewGlyphPlotter(gs, geom))
}

// Save writes the figure; the format follows the extension of path.
func (f *Figure) Save(path string, w, h vg.Length) error {
	if err := f.plot.Save(w, h, path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}

	return nil
}

func planar(c *linear.Classifier) ([]float64, error) {
	if c.Dim() != 2 {
		return nil, fmt.Errorf("render: dimension %d: %w", c.Dim(), ErrNotPlanar)
	}

	return c.Weight(), nil
}

func withAlpha(c color.Color, a uint8) color.NRGBA {
	r, g, b, _ := c.RGBA()

	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: a}
}

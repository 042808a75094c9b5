// SPDX-License-Identifier: MIT

package render

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/katalvlaran/multiplicity/glyph"
)

// GlyphPlotter paints glyphs at data coordinates. Radii are in data units
// measured along the x axis, so figures should keep an equal aspect ratio.
type GlyphPlotter struct {
	Glyphs   []glyph.Glyph
	Geometry glyph.Geometry

	// Outline strokes every disc and wedge.
	Outline draw.LineStyle
}

var (
	_ plot.Plotter    = (*GlyphPlotter)(nil)
	_ plot.DataRanger = (*GlyphPlotter)(nil)
)

// NewGlyphPlotter returns a plotter with a 0.5pt black outline.
func NewGlyphPlotter(gs []glyph.Glyph, geom glyph.Geometry) *GlyphPlotter {
	return &GlyphPlotter{
		Glyphs:   gs,
		Geometry: geom,
		Outline:  draw.LineStyle{Color: color.Black, Width: vg.Points(0.5)},
	}
}

// Plot implements plot.Plotter.
func (gp *GlyphPlotter) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, g := range gp.Glyphs {
		center := vg.Point{X: trX(g.X), Y: trY(g.Y)}
		length := func(r float64) vg.Length { return trX(g.X+r) - center.X }

		if gp.Geometry.Ring {
			gp.disc(&c, center, length(gp.Geometry.Outer()), g.GroundTruth)
		}
		r := length(gp.Geometry.Radius)
		wedges := glyph.Wedges(len(g.Slices))
		if len(wedges) == 1 {
			gp.disc(&c, center, r, g.Slices[0])
		} else {
			for i, w := range wedges {
				start, sweep := w.Radians()
				var p vg.Path
				p.Move(center)
				p.Arc(center, r, start, sweep)
				p.Close()
				gp.paint(&c, p, g.Slices[i])
			}
		}
		gp.disc(&c, center, length(gp.Geometry.InnerRadius), g.Baseline)
	}
}

func (gp *GlyphPlotter) disc(c *draw.Canvas, center vg.Point, r vg.Length, col color.Color) {
	var p vg.Path
	p.Move(vg.Point{X: center.X + r, Y: center.Y})
	p.Arc(center, r, 0, 2*math.Pi)
	p.Close()
	gp.paint(c, p, col)
}

func (gp *GlyphPlotter) paint(c *draw.Canvas, p vg.Path, col color.Color) {
	c.SetColor(col)
	c.Fill(p)
	if gp.Outline.Width > 0 {
		c.SetLineStyle(gp.Outline)
		c.Stroke(p)
	}
}

// DataRange implements plot.DataRanger: glyph centres grown by the outer radius.
func (gp *GlyphPlotter) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	r := gp.Geometry.Outer()
	for _, g := range gp.Glyphs {
		xmin, xmax = math.Min(xmin, g.X-r), math.Max(xmax, g.X+r)
		ymin, ymax = math.Min(ymin, g.Y-r), math.Max(ymax, g.Y+r)
	}

	return xmin, xmax, ymin, ymax
}

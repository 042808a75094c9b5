// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/katalvlaran/multiplicity/glyph"
)

// Legend returns the figure explaining the glyph: one large glyph with three
// slices, annotations for the baseline disc and the epsilon-set wedges, and
// colour swatches for true/false.
func Legend(pal glyph.Palette) (*Figure, error) {
	f := NewFigure("", Box{XMin: 0, XMax: 1, YMin: 0, YMax: 1})
	f.plot.HideAxes()
	f.plot.X.Label.Text, f.plot.Y.Label.Text = "", ""

	const cx, cy = 0.5, 0.5
	geom := glyph.DefaultGeometry().Scale(4)
	geom.Ring = true
	demo := glyph.Glyph{X: cx, Y: cy, Encoding: pal.Encode(false, true, []bool{true, false, true})}
	f.Glyphs([]glyph.Glyph{demo}, geom)

	// arrows from the member label towards each wedge
	for i, w := range glyph.Wedges(len(demo.Slices)) {
		mid := (w.Start + w.End) / 2 * math.Pi / 180
		tip := plotter.XY{X: cx + 0.6*geom.Radius*math.Cos(mid), Y: cy + 0.6*geom.Radius*math.Sin(mid)}
		if err := f.arrow(plotter.XY{X: 0.15, Y: 0.15}, tip, plotutil.Color(i)); err != nil {
			return nil, err
		}
	}
	if err := f.arrow(plotter.XY{X: 0.85, Y: 0.88}, plotter.XY{X: cx, Y: cy}, color.Black); err != nil {
		return nil, err
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs: plotter.XYs{
			{X: 0.85, Y: 0.92},
			{X: 0.15, Y: 0.10},
			{X: cx, Y: 0.97},
			{X: cx, Y: 0.03},
		},
		Labels: []string{"baseline h0", "h in S_eps(h0)", "prediction on T_test", "ground truth ring"},
	})
	if err != nil {
		return nil, fmt.Errorf("render: Legend: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YCenter
	}
	f.plot.Add(labels)

	for _, s := range []struct {
		name string
		col  color.Color
	}{{"true (1)", pal.True}, {"false (-1)", pal.False}} {
		f.plot.Legend.Add(s.name, swatch{s.col})
	}
	f.plot.Legend.Add("DB of h_i", lineSwatch{draw.LineStyle{
		Color:  color.Gray{Y: 0x80},
		Width:  vg.Points(1),
		Dashes: []vg.Length{vg.Points(4), vg.Points(2)},
	}})
	f.plot.Legend.Top = false

	return f, nil
}

// arrow adds a straight line from → to in data units.
func (f *Figure) arrow(from, to plotter.XY, col color.Color) error {
	l, err := plotter.NewLine(plotter.XYs{from, to})
	if err != nil {
		return fmt.Errorf("render: arrow: %w", err)
	}
	l.LineStyle.Color = col
	l.LineStyle.Width = vg.Points(0.8)
	f.plot.Add(l)

	return nil
}

// swatch is a filled-circle legend thumbnail.
type swatch struct{ col color.Color }

func (s swatch) Thumbnail(c *draw.Canvas) {
	c.DrawGlyph(draw.GlyphStyle{Color: s.col, Radius: vg.Points(3), Shape: draw.CircleGlyph{}}, c.Center())
}

// lineSwatch is a line legend thumbnail.
type lineSwatch struct{ sty draw.LineStyle }

func (s lineSwatch) Thumbnail(c *draw.Canvas) {
	y := c.Center().Y
	c.StrokeLine2(s.sty, c.Min.X, y, c.Max.X, y)
}

// SPDX-License-Identifier: MIT

// Package render draws predictive-multiplicity figures with gonum/plot.
//
// A Figure is a plot over a fixed axes Box. Layers are added in paint order:
//
//	fig := render.NewFigure("XOR", render.UnitBox)
//	_ = fig.ShadeBox(render.Box{XMin: -1, XMax: 0, YMin: 0, YMax: 1}, glyph.TrueGreen, render.ShadeAlpha)
//	_ = fig.Scatter(ds, glyph.DefaultPalette)
//	_ = fig.Boundary(h0, color.Black, "h0")
//	fig.Glyphs(glyphs, glyph.DefaultGeometry())
//	_ = fig.Save("xor.png", 10*vg.Centimeter, 10*vg.Centimeter)
//
// GlyphPlotter is the plot.Plotter behind Figure.Glyphs. Each glyph is painted
// ring (when enabled), then wedges in encoding order, then the inner disc,
// each with a thin black outline. A glyph with no slices shows the inner disc
// (and ring) only.
//
// Decision boundaries and shaded half-planes are computed exactly by clipping
// the line w·x + b = 0 against the Box, so only 2D classifiers are accepted.
//
// Legend draws the explanatory glyph figure; NewGraphFigure draws a small
// knowledge graph (entities as boxes, relations as coloured arrows).
//
// The output format follows the file extension passed to Save (png, pdf,
// svg, eps, jpg, tif).
package render

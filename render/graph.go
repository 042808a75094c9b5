// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Node is a named entity at a data position.
type Node struct {
	Name string
	X, Y float64
}

// Edge is a directed relation between two nodes. Dashed edges mark
// predicted (test) relations.
type Edge struct {
	From, To string
	Relation string
	Dashed   bool
}

// Entity box colours.
var (
	NodeStroke = color.RGBA{R: 0xFF, G: 0x80, B: 0x80, A: 0xFF}
	NodeFill   = color.RGBA{R: 0xFF, G: 0xCC, B: 0xCC, A: 0xFF}
)

// NewGraphFigure lays out a knowledge graph. Relations get colours from
// colors, or from the plotutil palette in sorted relation order when absent.
func NewGraphFigure(title string, nodes []Node, edges []Edge, colors map[string]color.Color) (*Figure, error) {
	if len(nodes) == 0 {
		return nil, fmt.Errorf("render: NewGraphFigure: %w", ErrEmptyBox)
	}
	pos := make(map[string]plotter.XY, len(nodes))
	box := Box{XMin: math.Inf(1), XMax: math.Inf(-1), YMin: math.Inf(1), YMax: math.Inf(-1)}
	for _, n := range nodes {
		pos[n.Name] = plotter.XY{X: n.X, Y: n.Y}
		box.XMin, box.XMax = math.Min(box.XMin, n.X), math.Max(box.XMax, n.X)
		box.YMin, box.YMax = math.Min(box.YMin, n.Y), math.Max(box.YMax, n.Y)
	}
	for _, e := range edges {
		for _, name := range []string{e.From, e.To} {
			if _, ok := pos[name]; !ok {
				return nil, fmt.Errorf("render: edge %s→%s: %q: %w", e.From, e.To, name, ErrUnknownNode)
			}
		}
	}

	rels := relationColors(edges, colors)
	f := NewFigure(title, box.Pad(1))
	f.plot.HideAxes()
	f.plot.Add(&graphPlotter{nodes: nodes, edges: edges, pos: pos, colors: rels})

	xys := make(plotter.XYs, len(nodes))
	names := make([]string, len(nodes))
	for i, n := range nodes {
		xys[i], names[i] = pos[n.Name], n.Name
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: names})
	if err != nil {
		return nil, fmt.Errorf("render: NewGraphFigure: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YCenter
	}
	f.plot.Add(labels)

	relNames := make([]string, 0, len(rels))
	for r := range rels {
		relNames = append(relNames, r)
	}
	sort.Strings(relNames)
	for _, r := range relNames {
		f.plot.Legend.Add(r, lineSwatch{draw.LineStyle{Color: rels[r], Width: vg.Points(2)}})
	}
	f.plot.Legend.Top = false

	return f, nil
}

func relationColors(edges []Edge, colors map[string]color.Color) map[string]color.Color {
	seen := map[string]struct{}{}
	for _, e := range edges {
		seen[e.Relation] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for r := range seen {
		names = append(names, r)
	}
	sort.Strings(names)
	out := make(map[string]color.Color, len(names))
	for i, r := range names {
		if c, ok := colors[r]; ok {
			out[r] = c
		} else {
			out[r] = plotutil.Color(i)
		}
	}

	return out
}

// graphPlotter paints edges then entity boxes; labels are a separate layer.
type graphPlotter struct {
	nodes  []Node
	edges  []Edge
	pos    map[string]plotter.XY
	colors map[string]color.Color
}

const (
	nodeHalfHeight = 8   // points
	charWidth      = 3.2 // points per character, half box width
	arrowShrink    = 14  // points kept free at both ends
	headLength     = 7
	headWidth      = 3.5
)

func (gp *graphPlotter) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	at := func(name string) vg.Point {
		p := gp.pos[name]
		return vg.Point{X: trX(p.X), Y: trY(p.Y)}
	}

	for _, e := range gp.edges {
		from, to := at(e.From), at(e.To)
		dx, dy := float64(to.X-from.X), float64(to.Y-from.Y)
		dist := math.Hypot(dx, dy)
		if dist <= 2*arrowShrink {
			continue
		}
		ux, uy := dx/dist, dy/dist
		start := vg.Point{X: from.X + vg.Length(ux*arrowShrink), Y: from.Y + vg.Length(uy*arrowShrink)}
		tip := vg.Point{X: to.X - vg.Length(ux*arrowShrink), Y: to.Y - vg.Length(uy*arrowShrink)}
		base := vg.Point{X: tip.X - vg.Length(ux*headLength), Y: tip.Y - vg.Length(uy*headLength)}

		sty := draw.LineStyle{Color: gp.colors[e.Relation], Width: vg.Points(1.5)}
		if e.Dashed {
			sty.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		}
		c.StrokeLines(sty, []vg.Point{start, base})
		c.FillPolygon(sty.Color, []vg.Point{
			tip,
			{X: base.X - vg.Length(uy*headWidth), Y: base.Y + vg.Length(ux*headWidth)},
			{X: base.X + vg.Length(uy*headWidth), Y: base.Y - vg.Length(ux*headWidth)},
		})
	}

	outline := draw.LineStyle{Color: NodeStroke, Width: vg.Points(1)}
	for _, n := range gp.nodes {
		p := at(n.Name)
		hw := vg.Points(charWidth*float64(len(n.Name)) + 6)
		hh := vg.Points(nodeHalfHeight)
		rect := []vg.Point{
			{X: p.X - hw, Y: p.Y - hh},
			{X: p.X + hw, Y: p.Y - hh},
			{X: p.X + hw, Y: p.Y + hh},
			{X: p.X - hw, Y: p.Y + hh},
		}
		c.FillPolygon(NodeFill, rect)
		c.StrokeLines(outline, append(rect, rect[0]))
	}
}

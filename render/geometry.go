// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/plot/plotter"
)

// Sentinel errors.
var (
	// ErrNotPlanar indicates a classifier whose dimension is not 2.
	ErrNotPlanar = errors.New("render: classifier is not two-dimensional")

	// ErrNoBoundary indicates a boundary line that misses the box (or w = 0).
	ErrNoBoundary = errors.New("render: decision boundary does not cross the box")

	// ErrEmptyBox indicates a box with XMin ≥ XMax or YMin ≥ YMax.
	ErrEmptyBox = errors.New("render: empty box")

	// ErrUnknownNode indicates an edge to a node that was not declared.
	ErrUnknownNode = errors.New("render: unknown node")

	// ErrNoData indicates a chart without any values.
	ErrNoData = errors.New("render: nothing to chart")
)

const eps = 1e-12

// Box is an axis-aligned rectangle in data units.
type Box struct {
	XMin, XMax float64
	YMin, YMax float64
}

// UnitBox is [-1,1]².
var UnitBox = Box{XMin: -1, XMax: 1, YMin: -1, YMax: 1}

// Valid reports whether b has positive area.
func (b Box) Valid() bool { return b.XMin < b.XMax && b.YMin < b.YMax }

// Corners returns the four corners counter-clockwise from (XMin, YMin).
func (b Box) Corners() plotter.XYs {
	return plotter.XYs{
		{X: b.XMin, Y: b.YMin},
		{X: b.XMax, Y: b.YMin},
		{X: b.XMax, Y: b.YMax},
		{X: b.XMin, Y: b.YMax},
	}
}

// Pad grows b by d on every side.
func (b Box) Pad(d float64) Box {
	return Box{XMin: b.XMin - d, XMax: b.XMax + d, YMin: b.YMin - d, YMax: b.YMax + d}
}

// Intersect returns the overlap of b and o. The result is not Valid when
// they do not overlap.
func (b Box) Intersect(o Box) Box {
	return Box{
		XMin: math.Max(b.XMin, o.XMin), XMax: math.Min(b.XMax, o.XMax),
		YMin: math.Max(b.YMin, o.YMin), YMax: math.Min(b.YMax, o.YMax),
	}
}

// Segment clips the line w0·x + w1·y + bias = 0 to b.
// The endpoints are ordered by x, then y.
func Segment(w0, w1, bias float64, b Box) (plotter.XYs, error) {
	if w0 == 0 && w1 == 0 {
		return nil, ErrNoBoundary
	}
	var pts plotter.XYs
	add := func(x, y float64) {
		if x < b.XMin-eps || x > b.XMax+eps || y < b.YMin-eps || y > b.YMax+eps {
			return
		}
		for _, p := range pts {
			if math.Abs(p.X-x) < 1e-9 && math.Abs(p.Y-y) < 1e-9 {
				return
			}
		}
		pts = append(pts, plotter.XY{X: x, Y: y})
	}
	if w1 != 0 {
		add(b.XMin, -(bias+w0*b.XMin)/w1)
		add(b.XMax, -(bias+w0*b.XMax)/w1)
	}
	if w0 != 0 {
		add(-(bias+w1*b.YMin)/w0, b.YMin)
		add(-(bias+w1*b.YMax)/w0, b.YMax)
	}
	if len(pts) < 2 {
		return nil, ErrNoBoundary
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	return plotter.XYs{pts[0], pts[len(pts)-1]}, nil
}

// HalfPlane returns the polygon b ∩ {w0·x + w1·y + bias ≥ 0}
// (Sutherland–Hodgman against a single edge). Empty when the half-plane
// misses b.
func HalfPlane(w0, w1, bias float64, b Box) plotter.XYs {
	f := func(p plotter.XY) float64 { return w0*p.X + w1*p.Y + bias }
	in := b.Corners()
	var out plotter.XYs
	for i := range in {
		cur, next := in[i], in[(i+1)%len(in)]
		fc, fn := f(cur), f(next)
		if fc >= 0 {
			out = append(out, cur)
		}
		if (fc >= 0) != (fn >= 0) {
			t := fc / (fc - fn)
			out = append(out, plotter.XY{X: cur.X + t*(next.X-cur.X), Y: cur.Y + t*(next.Y-cur.Y)})
		}
	}
	if len(out) < 3 {
		return nil
	}

	return out
}

// SPDX-License-Identifier: MIT

package glyph

import "math"

// Wedge is an angular slice in degrees, counter-clockwise, Start < End.
type Wedge struct {
	Start float64
	End   float64
}

// Sweep returns End - Start.
func (w Wedge) Sweep() float64 { return w.End - w.Start }

// Radians returns Start and Sweep in radians.
func (w Wedge) Radians() (start, sweep float64) {
	return w.Start * math.Pi / 180, w.Sweep() * math.Pi / 180
}

// Wedges returns n equal slices covering [0°, 360°) in order. n ≤ 0 gives nil.
func Wedges(n int) []Wedge {
	if n <= 0 {
		return nil
	}
	step := 360 / float64(n)
	out := make([]Wedge, n)
	for i := range out {
		out[i] = Wedge{Start: float64(i) * step, End: float64(i+1) * step}
	}
	out[n-1].End = 360

	return out
}

// Geometry sizes a glyph in data units.
type Geometry struct {
	Radius      float64 // wedge disc
	InnerRadius float64 // baseline disc
	RingWidth   float64 // ground truth ring beyond Radius
	Ring        bool    // draw the ground truth ring
}

// Defaults in data units.
const (
	DefaultRadius      = 0.05
	DefaultInnerRadius = 0.025
	DefaultRingWidth   = 0.01
)

// DefaultGeometry returns the standard glyph size without the ring.
func DefaultGeometry() Geometry {
	return Geometry{Radius: DefaultRadius, InnerRadius: DefaultInnerRadius, RingWidth: DefaultRingWidth}
}

// Scale multiplies every length by k. Panics unless k > 0.
func (g Geometry) Scale(k float64) Geometry {
	if !(k > 0) {
		panic("glyph: Scale(non-positive)")
	}
	g.Radius *= k
	g.InnerRadius *= k
	g.RingWidth *= k

	return g
}

// Outer returns the radius of the outermost drawn element.
func (g Geometry) Outer() float64 {
	if g.Ring {
		return g.Radius + g.RingWidth
	}

	return g.Radius
}

// Spread greedily keeps glyphs in order, dropping any closer than minDist
// to one already kept. Dropped glyphs are not compared against, so a glyph
// whose only close neighbours were dropped survives.
func Spread(glyphs []Glyph, minDist float64) []Glyph {
	kept := make([]Glyph, 0, len(glyphs))
next:
	for _, g := range glyphs {
		for _, k := range kept {
			if math.Hypot(g.X-k.X, g.Y-k.Y) < minDist {
				continue next
			}
		}
		kept = append(kept, g)
	}

	return kept
}

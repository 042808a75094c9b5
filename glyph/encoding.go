// SPDX-License-Identifier: MIT

package glyph

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/katalvlaran/multiplicity/dataset"
	"github.com/katalvlaran/multiplicity/linear"
)

// The two colors of the default palette.
var (
	TrueGreen = color.RGBA{R: 0x8F, G: 0xD1, B: 0x4F, A: 0xFF}
	FalseRed  = color.RGBA{R: 0xF0, G: 0x01, B: 0x01, A: 0xFF}
)

// ErrIndexOutOfRange indicates a glyph requested for a missing dataset row.
var ErrIndexOutOfRange = errors.New("glyph: index out of range")

// Palette maps a boolean to a color.
type Palette struct {
	True  color.RGBA
	False color.RGBA
}

// DefaultPalette is TrueGreen / FalseRed.
var DefaultPalette = Palette{True: TrueGreen, False: FalseRed}

// ColorOf returns the color of v.
func (p Palette) ColorOf(v bool) color.RGBA {
	if v {
		return p.True
	}

	return p.False
}

// Encoding is the color assignment of one glyph.
type Encoding struct {
	GroundTruth color.RGBA
	Baseline    color.RGBA
	Slices      []color.RGBA
}

// Encode maps the three inputs through p. eps may be empty.
func (p Palette) Encode(groundTruth, baseline bool, eps []bool) Encoding {
	slices := make([]color.RGBA, len(eps))
	for i, v := range eps {
		slices[i] = p.ColorOf(v)
	}

	return Encoding{
		GroundTruth: p.ColorOf(groundTruth),
		Baseline:    p.ColorOf(baseline),
		Slices:      slices,
	}
}

// Encode uses DefaultPalette.
func Encode(groundTruth, baseline bool, eps []bool) Encoding {
	return DefaultPalette.Encode(groundTruth, baseline, eps)
}

// Glyph is an Encoding anchored at a 2D position.
type Glyph struct {
	X, Y float64
	Encoding
}

// ForRows encodes rows idx of a 2D dataset: ground truth from the labels,
// baseline and slices from the models' predictions.
func ForRows[M linear.Model](p Palette, ds *dataset.Dataset, baseline M, members []M, idx []int) ([]Glyph, error) {
	if err := dataset.ValidateDim(ds, 2); err != nil {
		return nil, err
	}
	out := make([]Glyph, 0, len(idx))
	eps := make([]bool, len(members))
	for _, i := range idx {
		if i < 0 || i >= ds.Len() {
			return nil, fmt.Errorf("ForRows(%d): %w", i, ErrIndexOutOfRange)
		}
		pt := ds.PointView(i)
		label, _ := ds.Label(i)
		h0, err := baseline.Predict(pt)
		if err != nil {
			return nil, err
		}
		for k, m := range members {
			if eps[k], err = m.Predict(pt); err != nil {
				return nil, err
			}
		}
		out = append(out, Glyph{X: pt[0], Y: pt[1], Encoding: p.Encode(label, h0, eps)})
	}

	return out, nil
}

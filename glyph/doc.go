// SPDX-License-Identifier: MIT

// Package glyph encodes per-point agreement between ground truth, a
// baseline classifier and the members of an epsilon set.
//
// An Encoding carries three pieces, each a color of a two-color Palette:
//
//	GroundTruth – outer ring (optional when rendered)
//	Baseline    – inner disc
//	Slices      – one wedge per epsilon-set member, in member order
//
// Layout contract for renderers: Wedges(n) splits the disc into n equal
// slices of 360/n degrees, slice i spanning [i·360/n, (i+1)·360/n) counter-
// clockwise from 0° (the positive x axis). For n == 0 no wedges are drawn and
// the glyph shows only the inner disc (and the ring when enabled).
//
// Encode is pure: the same inputs always give the same colors, and slice
// order equals input order.
package glyph

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/gg"

// Filter post-processes the output of a [Pass].
//
// Apply reads src, color and depth, and writes color into dst within
// bounds. It may read pixels outside bounds. dst has the size of src.
//
// ExpandBounds returns how far the output of the filter reaches:
//   - Blur expands by its kernel radius
//   - Color matrix does not expand
//
// Filters are not chained within a pass; stacked effects nest their
// stages instead.
type Filter interface {
	Apply(src *Target, dst *gg.Pixmap, bounds Rect)
	ExpandBounds(input Rect) Rect
}

// FilterFunc adapts a function to a non-expanding [Filter].
type FilterFunc func(src *Target, dst *gg.Pixmap, bounds Rect)

// Apply calls f.
func (f FilterFunc) Apply(src *Target, dst *gg.Pixmap, bounds Rect) { f(src, dst, bounds) }

// ExpandBounds returns input unchanged.
func (f FilterFunc) ExpandBounds(input Rect) Rect { return input }

// CopyPixels copies raw pixels from src to dst within bounds, clamped to
// both pixmaps.
func CopyPixels(src, dst *gg.Pixmap, bounds Rect) {
	if src == dst {
		return
	}
	minX := max(int(bounds.MinX), 0)
	minY := max(int(bounds.MinY), 0)
	maxX := min(int(bounds.MaxX), src.Width(), dst.Width())
	maxY := min(int(bounds.MaxY), src.Height(), dst.Height())
	if minX >= maxX {
		return
	}

	s, d := src.Data(), dst.Data()
	for y := minY; y < maxY; y++ {
		so := (y*src.Width() + minX) * 4
		do := (y*dst.Width() + minX) * 4
		n := (maxX - minX) * 4
		copy(d[do:do+n], s[so:so+n])
	}
}

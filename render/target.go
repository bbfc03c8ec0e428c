// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
)

// NoDepth marks a pixel no geometry has covered.
var NoDepth = float32(math.Inf(1))

// Rect is an axis-aligned rectangle in pixel coordinates.
type Rect struct {
	MinX, MinY, MaxX, MaxY float32
}

// FullRect returns the rectangle covering a w x h surface.
func FullRect(w, h int) Rect {
	return Rect{MaxX: float32(w), MaxY: float32(h)}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float32 { return r.MaxX - r.MinX }

// Height returns the height of the rectangle.
func (r Rect) Height() float32 { return r.MaxY - r.MinY }

// IsEmpty returns true if the rectangle has no area.
func (r Rect) IsEmpty() bool { return r.MaxX <= r.MinX || r.MaxY <= r.MinY }

// Target is a CPU render target: an RGBA color pixmap with premultiplied
// alpha and a linear depth buffer holding world-space distances.
type Target struct {
	color  *gg.Pixmap
	depth  []float32
	format gputypes.TextureFormat
}

// NewTarget creates a cleared target.
func NewTarget(width, height int) *Target {
	t := &Target{
		color:  gg.NewPixmap(width, height),
		depth:  make([]float32, width*height),
		format: gputypes.TextureFormatRGBA8Unorm,
	}
	t.Clear(gg.Transparent)
	return t
}

// Width returns the target width in pixels.
func (t *Target) Width() int { return t.color.Width() }

// Height returns the target height in pixels.
func (t *Target) Height() int { return t.color.Height() }

// Format returns the pixel format of the color buffer.
func (t *Target) Format() gputypes.TextureFormat { return t.format }

// Color returns the color buffer.
func (t *Target) Color() *gg.Pixmap { return t.color }

// Depth returns the depth buffer, row-major, one value per pixel.
func (t *Target) Depth() []float32 { return t.depth }

// DepthAt returns the depth at (x, y), or NoDepth outside the target.
func (t *Target) DepthAt(x, y int) float32 {
	if x < 0 || y < 0 || x >= t.Width() || y >= t.Height() {
		return NoDepth
	}
	return t.depth[y*t.Width()+x]
}

// Bounds returns the full target rectangle.
func (t *Target) Bounds() Rect { return FullRect(t.Width(), t.Height()) }

// Clear fills the color buffer with the straight-alpha color c and resets
// depth to NoDepth.
func (t *Target) Clear(c gg.RGBA) {
	t.color.Clear(c)
	for i := range t.depth {
		t.depth[i] = NoDepth
	}
}

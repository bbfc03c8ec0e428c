// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
)

// Material is the payload of a graph.KindMaterial node.
type Material struct {
	Color gg.RGBA
}

// Pass is the payload of a graph.KindStage node.
//
// ColorFormat and DepthFormat describe the offscreen attachments a GPU
// backend would allocate. The software renderer supports RGBA8Unorm color
// and Depth24PlusStencil8 depth; a zero DepthFormat renders without a
// depth attachment.
type Pass struct {
	Filter      Filter
	ColorFormat gputypes.TextureFormat
	DepthFormat gputypes.TextureFormat
}

// NewPass returns a pass with color and depth attachments.
func NewPass(f Filter) Pass {
	return Pass{
		Filter:      f,
		ColorFormat: gputypes.TextureFormatRGBA8Unorm,
		DepthFormat: gputypes.TextureFormatDepth24PlusStencil8,
	}
}

// Style carries inherited render state into a Drawable.
type Style struct {
	tint   gg.RGBA
	tinted bool
}

// WithTint returns a style whose base color is overridden by c.
func (s Style) WithTint(c gg.RGBA) Style {
	return Style{tint: c, tinted: true}
}

// Resolve returns the color to paint with: the material tint when one is
// in effect, own otherwise. The tint keeps the alpha of own.
func (s Style) Resolve(own gg.RGBA) gg.RGBA {
	if !s.tinted {
		return own
	}
	return gg.RGBA{R: s.tint.R, G: s.tint.G, B: s.tint.B, A: own.A * s.tint.A}
}

// Drawable is the payload of a graph.KindGeometry node.
type Drawable interface {
	// Draw paints the shape with dc. dc draws into a transparent layer the
	// size of the target.
	Draw(dc *gg.Context, st Style) error

	// Depth returns the distance of the shape from the eye.
	Depth() float64
}

// Circle is a filled circle at a fixed depth.
type Circle struct {
	X, Y, R float64
	Color   gg.RGBA
	Z       float64
}

// Draw implements Drawable.
func (c Circle) Draw(dc *gg.Context, st Style) error {
	dc.SetColor(st.Resolve(c.Color).Color())
	dc.DrawCircle(c.X, c.Y, c.R)
	return dc.Fill()
}

// Depth implements Drawable.
func (c Circle) Depth() float64 { return c.Z }

// Rectangle is a filled axis-aligned rectangle at a fixed depth.
type Rectangle struct {
	X, Y, W, H float64
	Color      gg.RGBA
	Z          float64
}

// Draw implements Drawable.
func (r Rectangle) Draw(dc *gg.Context, st Style) error {
	dc.SetColor(st.Resolve(r.Color).Color())
	dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	return dc.Fill()
}

// Depth implements Drawable.
func (r Rectangle) Depth() float64 { return r.Z }

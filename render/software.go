// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/graph"
	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
)

// Errors returned by the software renderer.
var (
	// ErrUnsupportedFormat is returned for pass attachments the CPU path
	// cannot allocate.
	ErrUnsupportedFormat = errors.New("render: unsupported attachment format")

	// ErrBadPayload is returned when a node's payload does not match its kind.
	ErrBadPayload = errors.New("render: node payload does not match its kind")
)

// Software renders a graph.Scene on the CPU. It implements graph.Renderer.
//
// Software is NOT thread-safe; use it from the goroutine that ticks the
// scene.
type Software struct {
	width      int
	height     int
	background gg.RGBA
	target     *Target
	free       []*Target
	frames     int
}

// Option configures a Software renderer.
type Option func(*Software)

// WithBackground sets the color the output is cleared to before each frame.
func WithBackground(c gg.RGBA) Option {
	return func(r *Software) {
		r.background = c
	}
}

// NewSoftware creates a renderer producing width x height frames.
func NewSoftware(width, height int, opts ...Option) *Software {
	r := &Software{
		width:      width,
		height:     height,
		background: gg.Transparent,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.target = NewTarget(width, height)
	return r
}

// Render draws s into the output target. It implements graph.Renderer.
func (r *Software) Render(s *graph.Scene) error {
	r.target.Clear(r.background)
	if err := r.renderChildren(s.Root(), r.target, Style{}); err != nil {
		return err
	}
	r.frames++
	fx.Logger().Debug("render: frame complete", "frame", r.frames, "nodes", s.Len())
	return nil
}

// Output returns the color buffer of the last frame.
func (r *Software) Output() *gg.Pixmap { return r.target.color }

// Target returns the output target, including its depth buffer.
func (r *Software) Target() *Target { return r.target }

// Frames returns the number of frames rendered.
func (r *Software) Frames() int { return r.frames }

func (r *Software) renderChildren(n *graph.Node, t *Target, st Style) error {
	for _, c := range n.Children() {
		if err := r.renderNode(c, t, st); err != nil {
			return err
		}
	}
	return nil
}

func (r *Software) renderNode(n *graph.Node, t *Target, st Style) error {
	switch n.Kind() {
	case graph.KindMaterial:
		m, ok := n.Data().(Material)
		if !ok {
			return fmt.Errorf("%w: %s %q", ErrBadPayload, n.Kind(), n.ID())
		}
		st = st.WithTint(m.Color)
	case graph.KindGeometry:
		if err := r.drawGeometry(n, t, st); err != nil {
			return err
		}
	case graph.KindStage:
		return r.renderPass(n, t, st)
	}
	return r.renderChildren(n, t, st)
}

func (r *Software) drawGeometry(n *graph.Node, t *Target, st Style) error {
	d, ok := n.Data().(Drawable)
	if !ok {
		return fmt.Errorf("%w: %s %q", ErrBadPayload, n.Kind(), n.ID())
	}

	layer := r.acquire()
	defer r.release(layer)

	dc := gg.NewContextForPixmap(layer.color)
	err := d.Draw(dc, st)
	// Close flushes batched accelerator work into the layer.
	if cerr := dc.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("render: draw %q: %w", n.ID(), err)
	}

	fillDepth(layer, float32(d.Depth()))
	composite(t, layer)
	return nil
}

func (r *Software) renderPass(n *graph.Node, t *Target, st Style) error {
	p, ok := n.Data().(Pass)
	if !ok {
		return fmt.Errorf("%w: %s %q", ErrBadPayload, n.Kind(), n.ID())
	}
	if err := checkFormats(p); err != nil {
		return fmt.Errorf("render: pass %q: %w", n.ID(), err)
	}

	off := r.acquire()
	defer r.release(off)
	if err := r.renderChildren(n, off, st); err != nil {
		return err
	}
	if p.DepthFormat == 0 {
		clearDepth(off)
	}

	if p.Filter == nil {
		composite(t, off)
		return nil
	}

	out := r.acquire()
	defer r.release(out)
	p.Filter.Apply(off, out.color, off.Bounds())
	copy(out.depth, off.depth)
	composite(t, out)
	return nil
}

func checkFormats(p Pass) error {
	switch p.ColorFormat {
	case 0, gputypes.TextureFormatRGBA8Unorm:
	default:
		return fmt.Errorf("%w: color %v", ErrUnsupportedFormat, p.ColorFormat)
	}
	switch p.DepthFormat {
	case 0, gputypes.TextureFormatDepth24PlusStencil8:
	default:
		return fmt.Errorf("%w: depth %v", ErrUnsupportedFormat, p.DepthFormat)
	}
	return nil
}

// acquire returns a cleared scratch target from the free list.
func (r *Software) acquire() *Target {
	if n := len(r.free); n > 0 {
		t := r.free[n-1]
		r.free = r.free[:n-1]
		t.Clear(gg.Transparent)
		return t
	}
	return NewTarget(r.width, r.height)
}

func (r *Software) release(t *Target) {
	r.free = append(r.free, t)
}

// fillDepth stamps depth z wherever the layer has coverage.
func fillDepth(layer *Target, z float32) {
	px := layer.color.Data()
	for i := range layer.depth {
		if px[i*4+3] > 0 {
			layer.depth[i] = z
		}
	}
}

func clearDepth(t *Target) {
	for i := range t.depth {
		t.depth[i] = NoDepth
	}
}

// composite blends src over dst (premultiplied source-over). Depth follows
// painter order: wherever src has coverage and depth, it replaces dst's.
func composite(dst, src *Target) {
	d, s := dst.color.Data(), src.color.Data()
	for i := range dst.depth {
		o := i * 4
		sa := uint32(s[o+3])
		if sa == 0 {
			continue
		}
		inv := 255 - sa
		d[o+0] = uint8(min(uint32(s[o+0])+(uint32(d[o+0])*inv+127)/255, 255))
		d[o+1] = uint8(min(uint32(s[o+1])+(uint32(d[o+1])*inv+127)/255, 255))
		d[o+2] = uint8(min(uint32(s[o+2])+(uint32(d[o+2])*inv+127)/255, 255))
		d[o+3] = uint8(min(sa+(uint32(d[o+3])*inv+127)/255, 255))
		if z := src.depth[i]; z != NoDepth {
			dst.depth[i] = z
		}
	}
}

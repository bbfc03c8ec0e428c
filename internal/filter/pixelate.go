package filter

import (
	"image"

	"github.com/gogpu/fx/render"
	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
)

// PixelateFilter reduces the image to blocks of Size x Size pixels by
// scaling it down and back up. With Smooth the downscale is bilinear,
// otherwise nearest neighbor.
type PixelateFilter struct {
	Size   int
	Smooth bool
}

// NewPixelateFilter creates a pixelate filter with the given block size.
func NewPixelateFilter(size int) *PixelateFilter {
	return &PixelateFilter{Size: size}
}

// Apply implements render.Filter.
func (f *PixelateFilter) Apply(src *render.Target, dst *gg.Pixmap, bounds render.Rect) {
	if src == nil || dst == nil {
		return
	}
	if f.Size <= 1 {
		render.CopyPixels(src.Color(), dst, bounds)
		return
	}
	r, ok := clip(bounds, src.Width(), src.Height(), dst)
	if !ok {
		return
	}

	rect := image.Rect(r.x, r.y, r.x+r.w, r.y+r.h)
	small := image.NewRGBA(image.Rect(0, 0, ceilDiv(r.w, f.Size), ceilDiv(r.h, f.Size)))

	var down draw.Scaler = draw.NearestNeighbor
	if f.Smooth {
		down = draw.ApproxBiLinear
	}
	down.Scale(small, small.Bounds(), pixmapImage(src.Color()), rect, draw.Src, nil)
	draw.NearestNeighbor.Scale(pixmapImage(dst), rect, small, small.Bounds(), draw.Src, nil)
}

// ExpandBounds returns input unchanged.
func (f *PixelateFilter) ExpandBounds(input render.Rect) render.Rect {
	return input
}

// pixmapImage views the premultiplied bytes of p as an *image.RGBA without
// copying.
func pixmapImage(p *gg.Pixmap) *image.RGBA {
	return &image.RGBA{
		Pix:    p.Data(),
		Stride: p.Width() * 4,
		Rect:   image.Rect(0, 0, p.Width(), p.Height()),
	}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

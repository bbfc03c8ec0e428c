package filter

import (
	"math"

	"github.com/gogpu/fx/render"
	"github.com/gogpu/gg"
)

// DropShadowFilter draws a blurred, tinted copy of the source alpha at an
// offset and composites the source over it.
type DropShadowFilter struct {
	// OffsetX and OffsetY move the shadow, in pixels, rounded to whole
	// pixels.
	OffsetX float64
	OffsetY float64

	// Radius is the Gaussian blur radius of the shadow in pixels.
	Radius float64

	// Color is the straight-alpha shadow color; its alpha scales the
	// shadow opacity.
	Color gg.RGBA
}

// NewDropShadowFilter creates a drop shadow filter.
func NewDropShadowFilter(offsetX, offsetY, radius float64, color gg.RGBA) *DropShadowFilter {
	return &DropShadowFilter{OffsetX: offsetX, OffsetY: offsetY, Radius: radius, Color: color}
}

// Apply implements render.Filter.
func (f *DropShadowFilter) Apply(src *render.Target, dst *gg.Pixmap, bounds render.Rect) {
	if src == nil || dst == nil {
		return
	}
	r, ok := clip(f.ExpandBounds(bounds), src.Width(), src.Height(), dst)
	if !ok {
		return
	}

	alpha := getTempBuffer(r.w * r.h)
	defer putTempBuffer(alpha)

	dx, dy := int(math.Round(f.OffsetX)), int(math.Round(f.OffsetY))
	offsetAlpha(src.Color(), alpha, r, dx, dy)
	if f.Radius > 0 {
		blurAlpha(alpha, r, CachedGaussianKernel(f.Radius))
	}
	compositeUnder(src.Color(), dst, alpha, r, f.Color)
}

// ExpandBounds grows input by the blur reach on every side and by the
// offset on the side the shadow moves to.
func (f *DropShadowFilter) ExpandBounds(input render.Rect) render.Rect {
	e := float32(kernelHalf(f.Radius))
	out := render.Rect{
		MinX: input.MinX - e,
		MinY: input.MinY - e,
		MaxX: input.MaxX + e,
		MaxY: input.MaxY + e,
	}
	if f.OffsetX < 0 {
		out.MinX += float32(f.OffsetX)
	} else {
		out.MaxX += float32(f.OffsetX)
	}
	if f.OffsetY < 0 {
		out.MinY += float32(f.OffsetY)
	} else {
		out.MaxY += float32(f.OffsetY)
	}
	return out
}

// offsetAlpha fills alpha with the source alpha shifted by (dx, dy).
func offsetAlpha(src *gg.Pixmap, alpha []float32, r region, dx, dy int) {
	sw, sh := src.Width(), src.Height()
	data := src.Data()
	for y := 0; y < r.h; y++ {
		sy := r.y + y - dy
		for x := 0; x < r.w; x++ {
			sx := r.x + x - dx
			if sx < 0 || sx >= sw || sy < 0 || sy >= sh {
				alpha[y*r.w+x] = 0
				continue
			}
			alpha[y*r.w+x] = float32(data[(sy*sw+sx)*4+3]) / 255
		}
	}
}

// blurAlpha blurs a single-channel buffer in place, horizontal then
// vertical. Samples outside r count as transparent.
func blurAlpha(alpha []float32, r region, kernel []float32) {
	half := len(kernel) / 2
	temp := getTempBuffer(len(alpha))
	defer putTempBuffer(temp)

	for y := 0; y < r.h; y++ {
		for x := 0; x < r.w; x++ {
			var sum float32
			for k, wt := range kernel {
				if sx := x + k - half; sx >= 0 && sx < r.w {
					sum += alpha[y*r.w+sx] * wt
				}
			}
			temp[y*r.w+x] = sum
		}
	}
	for y := 0; y < r.h; y++ {
		for x := 0; x < r.w; x++ {
			var sum float32
			for k, wt := range kernel {
				if sy := y + k - half; sy >= 0 && sy < r.h {
					sum += temp[sy*r.w+x] * wt
				}
			}
			alpha[y*r.w+x] = sum
		}
	}
}

// compositeUnder writes src over the tinted shadow into dst within r.
func compositeUnder(src, dst *gg.Pixmap, alpha []float32, r region, c gg.RGBA) {
	sw, dw := src.Width(), dst.Width()
	s, d := src.Data(), dst.Data()
	cr, cg, cb := float32(c.R*255), float32(c.G*255), float32(c.B*255)
	ca := float32(c.A)

	for y := 0; y < r.h; y++ {
		for x := 0; x < r.w; x++ {
			px, py := r.x+x, r.y+y
			si := (py*sw + px) * 4
			a := alpha[y*r.w+x] * ca
			inv := 1 - float32(s[si+3])/255

			di := (py*dw + px) * 4
			d[di+0] = clampUint8(float32(s[si+0]) + cr*a*inv)
			d[di+1] = clampUint8(float32(s[si+1]) + cg*a*inv)
			d[di+2] = clampUint8(float32(s[si+2]) + cb*a*inv)
			d[di+3] = clampUint8(float32(s[si+3]) + 255*a*inv)
		}
	}
}

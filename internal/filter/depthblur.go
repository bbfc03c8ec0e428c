package filter

import (
	"math"

	"github.com/gogpu/fx/render"
	"github.com/gogpu/gg"
)

// MaxBlurRadius caps the per-pixel blur of DepthBlurFilter.
const MaxBlurRadius = 60

// DepthBlurFilter blurs each pixel by an amount derived from its depth, a
// thin-lens depth of field. The blur diameter in pixels is
//
//	xd  = |d - FocusDist|
//	xdd = FocusDist - xd  (foreground)  or  FocusDist + xd  (background)
//	b   = BlurCoeff * (xd / xdd) * PPM
//
// floored and capped at MaxBlurRadius. Depth is clamped to [Near, Far];
// pixels without depth are treated as Far. A horizontal pass runs first,
// then a vertical pass, each a box of b taps centered on the pixel.
type DepthBlurFilter struct {
	BlurCoeff float64
	FocusDist float64
	PPM       float64
	Near      float64
	Far       float64
}

// Diameter returns the blur diameter in whole pixels for depth d.
func (f *DepthBlurFilter) Diameter(d float64) int {
	if math.IsInf(d, 1) || d > f.Far {
		d = f.Far
	}
	if d < f.Near {
		d = f.Near
	}

	xd := math.Abs(d - f.FocusDist)
	if xd == 0 {
		return 0
	}
	xdd := f.FocusDist + xd
	if d < f.FocusDist {
		xdd = f.FocusDist - xd
	}
	if xdd <= 0 {
		return MaxBlurRadius
	}

	b := math.Floor(f.BlurCoeff * (xd / xdd) * f.PPM)
	switch {
	case math.IsNaN(b) || b < 0:
		return 0
	case b > MaxBlurRadius:
		return MaxBlurRadius
	}
	return int(b)
}

// Apply implements render.Filter. Without a depth buffer it copies src.
func (f *DepthBlurFilter) Apply(src *render.Target, dst *gg.Pixmap, bounds render.Rect) {
	if src == nil || dst == nil {
		return
	}
	depth := src.Depth()
	if len(depth) == 0 {
		render.CopyPixels(src.Color(), dst, bounds)
		return
	}

	w, h := src.Width(), src.Height()
	r, ok := clip(bounds, w, h, dst)
	if !ok {
		return
	}

	// Diameters are computed once for the whole source so that both passes
	// agree on every pixel.
	diam := make([]int, w*h)
	for i, d := range depth[:w*h] {
		diam[i] = f.Diameter(float64(d))
	}

	temp := getTempBuffer(w * h * 4)
	defer putTempBuffer(temp)

	sd := src.Color().Data()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc [4]float32
			n := boxTaps(x, w, diam[y*w+x], func(sx int) {
				i := (y*w + sx) * 4
				acc[0] += float32(sd[i+0])
				acc[1] += float32(sd[i+1])
				acc[2] += float32(sd[i+2])
				acc[3] += float32(sd[i+3])
			})
			o := (y*w + x) * 4
			if n == 0 {
				temp[o+0], temp[o+1], temp[o+2], temp[o+3] = float32(sd[o+0]), float32(sd[o+1]), float32(sd[o+2]), float32(sd[o+3])
				continue
			}
			inv := 1 / float32(n)
			temp[o+0], temp[o+1], temp[o+2], temp[o+3] = acc[0]*inv, acc[1]*inv, acc[2]*inv, acc[3]*inv
		}
	}

	dd := dst.Data()
	dw := dst.Width()
	for y := r.y; y < r.y+r.h; y++ {
		for x := r.x; x < r.x+r.w; x++ {
			var acc [4]float32
			n := boxTaps(y, h, diam[y*w+x], func(sy int) {
				i := (sy*w + x) * 4
				acc[0] += temp[i+0]
				acc[1] += temp[i+1]
				acc[2] += temp[i+2]
				acc[3] += temp[i+3]
			})
			o := (y*dw + x) * 4
			if n == 0 {
				i := (y*w + x) * 4
				acc = [4]float32{temp[i+0], temp[i+1], temp[i+2], temp[i+3]}
				n = 1
			}
			inv := 1 / float32(n)
			dd[o+0] = clampUint8(acc[0] * inv)
			dd[o+1] = clampUint8(acc[1] * inv)
			dd[o+2] = clampUint8(acc[2] * inv)
			dd[o+3] = clampUint8(acc[3] * inv)
		}
	}
}

// boxTaps visits the b sample positions of a box of diameter b centered on
// p, clamped to [0, size). It returns the number of taps, zero when b < 1.
func boxTaps(p, size, b int, fn func(int)) int {
	if b < 1 {
		return 0
	}
	half := float64(b) * 0.5
	for i := 0; i < b; i++ {
		s := p + int(math.Floor(float64(i)-half+0.5))
		fn(clampInt(s, 0, size-1))
	}
	return b
}

// ExpandBounds grows input by MaxBlurRadius on every side.
func (f *DepthBlurFilter) ExpandBounds(input render.Rect) render.Rect {
	const e = MaxBlurRadius
	return render.Rect{
		MinX: input.MinX - e,
		MinY: input.MinY - e,
		MaxX: input.MaxX + e,
		MaxY: input.MaxY + e,
	}
}

package filter

import (
	"math"
	"sync"

	"github.com/gogpu/fx/render"
	"github.com/gogpu/gg"
)

// BlurFilter applies a separable Gaussian blur. The horizontal and vertical
// passes run independently, O(w*h*(rx+ry)).
type BlurFilter struct {
	// RadiusX is the horizontal blur radius in pixels.
	RadiusX float64

	// RadiusY is the vertical blur radius in pixels.
	RadiusY float64
}

// NewBlurFilter creates a blur filter with equal radius in both directions.
func NewBlurFilter(radius float64) *BlurFilter {
	return &BlurFilter{RadiusX: radius, RadiusY: radius}
}

// NewBlurFilterXY creates a directional blur filter.
func NewBlurFilterXY(radiusX, radiusY float64) *BlurFilter {
	return &BlurFilter{RadiusX: radiusX, RadiusY: radiusY}
}

// Apply implements render.Filter.
func (f *BlurFilter) Apply(src *render.Target, dst *gg.Pixmap, bounds render.Rect) {
	if src == nil || dst == nil {
		return
	}
	if f.RadiusX <= 0 && f.RadiusY <= 0 {
		render.CopyPixels(src.Color(), dst, bounds)
		return
	}

	r, ok := clip(bounds, src.Width(), src.Height(), dst)
	if !ok {
		return
	}

	temp := getTempBuffer(r.w * r.h * 4)
	defer putTempBuffer(temp)

	horizontal(src.Color(), temp, r, CachedGaussianKernel(f.RadiusX))
	vertical(temp, dst, r, CachedGaussianKernel(f.RadiusY))
}

// ExpandBounds grows input by the kernel reach on each axis.
func (f *BlurFilter) ExpandBounds(input render.Rect) render.Rect {
	ex := float32(kernelHalf(f.RadiusX))
	ey := float32(kernelHalf(f.RadiusY))
	return render.Rect{
		MinX: input.MinX - ex,
		MinY: input.MinY - ey,
		MaxX: input.MaxX + ex,
		MaxY: input.MaxY + ey,
	}
}

// region is a clipped pixel rectangle.
type region struct {
	x, y, w, h int
}

// clip intersects bounds with the source size and dst.
func clip(bounds render.Rect, w, h int, dst *gg.Pixmap) (region, bool) {
	minX := clampInt(int(math.Floor(float64(bounds.MinX))), 0, w)
	minY := clampInt(int(math.Floor(float64(bounds.MinY))), 0, h)
	maxX := clampInt(int(math.Ceil(float64(bounds.MaxX))), 0, min(w, dst.Width()))
	maxY := clampInt(int(math.Ceil(float64(bounds.MaxY))), 0, min(h, dst.Height()))
	if minX >= maxX || minY >= maxY {
		return region{}, false
	}
	return region{x: minX, y: minY, w: maxX - minX, h: maxY - minY}, true
}

// horizontal convolves rows of src into temp. Samples outside the source
// are clamped to the edge.
func horizontal(src *gg.Pixmap, temp []float32, r region, kernel []float32) {
	half := len(kernel) / 2
	sw := src.Width()
	data := src.Data()

	for y := 0; y < r.h; y++ {
		row := (r.y + y) * sw
		for x := 0; x < r.w; x++ {
			var cr, cg, cb, ca float32
			for k, wt := range kernel {
				sx := clampInt(r.x+x+k-half, 0, sw-1)
				i := (row + sx) * 4
				cr += float32(data[i+0]) * wt
				cg += float32(data[i+1]) * wt
				cb += float32(data[i+2]) * wt
				ca += float32(data[i+3]) * wt
			}
			o := (y*r.w + x) * 4
			temp[o+0], temp[o+1], temp[o+2], temp[o+3] = cr, cg, cb, ca
		}
	}
}

// vertical convolves columns of temp into dst.
func vertical(temp []float32, dst *gg.Pixmap, r region, kernel []float32) {
	half := len(kernel) / 2
	dw := dst.Width()
	data := dst.Data()

	for y := 0; y < r.h; y++ {
		for x := 0; x < r.w; x++ {
			var cr, cg, cb, ca float32
			for k, wt := range kernel {
				ty := clampInt(y+k-half, 0, r.h-1)
				i := (ty*r.w + x) * 4
				cr += temp[i+0] * wt
				cg += temp[i+1] * wt
				cb += temp[i+2] * wt
				ca += temp[i+3] * wt
			}
			o := ((r.y+y)*dw + r.x + x) * 4
			data[o+0] = clampUint8(cr)
			data[o+1] = clampUint8(cg)
			data[o+2] = clampUint8(cb)
			data[o+3] = clampUint8(ca)
		}
	}
}

type floatBuffer struct {
	data []float32
}

var tempBufferPool = sync.Pool{
	New: func() any {
		return &floatBuffer{}
	},
}

// getTempBuffer returns a zeroed buffer of exactly n floats.
func getTempBuffer(n int) []float32 {
	b := tempBufferPool.Get().(*floatBuffer)
	if cap(b.data) < n {
		b.data = make([]float32, n)
	}
	buf := b.data[:n]
	clear(buf)
	return buf
}

func putTempBuffer(buf []float32) {
	tempBufferPool.Put(&floatBuffer{data: buf[:cap(buf)]})
}

// clampInt clamps v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampUint8 rounds v to the nearest byte value.
func clampUint8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

package filter

import (
	"github.com/gogpu/fx/render"
	"github.com/gogpu/gg"
)

// ColorMatrixFilter applies a 4x5 color matrix to straight-alpha values in
// [0, 255]:
//
//	[R']   [a00 a01 a02 a03 a04]   [R]
//	[G'] = [a10 a11 a12 a13 a14] * [G]
//	[B']   [a20 a21 a22 a23 a24]   [B]
//	[A']   [a30 a31 a32 a33 a34]   [A]
//	                               [1]
type ColorMatrixFilter struct {
	// Matrix is row-major: [0-4] R, [5-9] G, [10-14] B, [15-19] A.
	Matrix [20]float32
}

// NewIdentityColorMatrix returns a filter that leaves colors unchanged.
func NewIdentityColorMatrix() *ColorMatrixFilter {
	return scaleMatrix(1)
}

// NewBrightnessFilter scales RGB by factor: 0 is black, 1 unchanged.
func NewBrightnessFilter(factor float32) *ColorMatrixFilter {
	return scaleMatrix(factor)
}

// NewContrastFilter scales RGB around mid gray: 0 is gray, 1 unchanged.
func NewContrastFilter(factor float32) *ColorMatrixFilter {
	off := 128 * (1 - factor)
	return &ColorMatrixFilter{Matrix: [20]float32{
		factor, 0, 0, 0, off,
		0, factor, 0, 0, off,
		0, 0, factor, 0, off,
		0, 0, 0, 1, 0,
	}}
}

// NewSaturationFilter blends between Rec. 709 luminance (0) and the
// original color (1).
func NewSaturationFilter(factor float32) *ColorMatrixFilter {
	const (
		lr = 0.2126
		lg = 0.7152
		lb = 0.0722
	)
	inv := 1 - factor
	return &ColorMatrixFilter{Matrix: [20]float32{
		lr*inv + factor, lg * inv, lb * inv, 0, 0,
		lr * inv, lg*inv + factor, lb * inv, 0, 0,
		lr * inv, lg * inv, lb*inv + factor, 0, 0,
		0, 0, 0, 1, 0,
	}}
}

// NewSepiaFilter blends toward a sepia tone by amount in [0, 1].
func NewSepiaFilter(amount float32) *ColorMatrixFilter {
	sepia := [20]float32{
		0.393, 0.769, 0.189, 0, 0,
		0.349, 0.686, 0.168, 0, 0,
		0.272, 0.534, 0.131, 0, 0,
		0, 0, 0, 1, 0,
	}
	return lerpMatrix(NewIdentityColorMatrix().Matrix, sepia, clamp01(amount))
}

// NewInvertFilter blends toward the inverted color by amount in [0, 1].
func NewInvertFilter(amount float32) *ColorMatrixFilter {
	invert := [20]float32{
		-1, 0, 0, 0, 255,
		0, -1, 0, 0, 255,
		0, 0, -1, 0, 255,
		0, 0, 0, 1, 0,
	}
	return lerpMatrix(NewIdentityColorMatrix().Matrix, invert, clamp01(amount))
}

// NewTintFilter blends RGB toward tint by the tint's alpha.
func NewTintFilter(tint gg.RGBA) *ColorMatrixFilter {
	f := float32(tint.A)
	inv := 1 - f
	return &ColorMatrixFilter{Matrix: [20]float32{
		inv, 0, 0, 0, float32(tint.R*255) * f,
		0, inv, 0, 0, float32(tint.G*255) * f,
		0, 0, inv, 0, float32(tint.B*255) * f,
		0, 0, 0, 1, 0,
	}}
}

func scaleMatrix(s float32) *ColorMatrixFilter {
	return &ColorMatrixFilter{Matrix: [20]float32{
		s, 0, 0, 0, 0,
		0, s, 0, 0, 0,
		0, 0, s, 0, 0,
		0, 0, 0, 1, 0,
	}}
}

func lerpMatrix(a, b [20]float32, t float32) *ColorMatrixFilter {
	m := &ColorMatrixFilter{}
	for i := range m.Matrix {
		m.Matrix[i] = a[i] + (b[i]-a[i])*t
	}
	return m
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}

// Then returns a filter equivalent to applying f first and next second.
func (f *ColorMatrixFilter) Then(next *ColorMatrixFilter) *ColorMatrixFilter {
	a, b := &f.Matrix, &next.Matrix
	out := &ColorMatrixFilter{}
	m := &out.Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += b[row*5+k] * a[k*5+col]
			}
			m[row*5+col] = sum
		}
		off := b[row*5+4]
		for k := 0; k < 4; k++ {
			off += b[row*5+k] * a[k*5+4]
		}
		m[row*5+4] = off
	}
	return out
}

// Apply implements render.Filter.
func (f *ColorMatrixFilter) Apply(src *render.Target, dst *gg.Pixmap, bounds render.Rect) {
	if src == nil || dst == nil {
		return
	}
	r, ok := clip(bounds, src.Width(), src.Height(), dst)
	if !ok {
		return
	}

	sd, dd := src.Color().Data(), dst.Data()
	sw, dw := src.Width(), dst.Width()
	m := &f.Matrix

	for y := r.y; y < r.y+r.h; y++ {
		for x := r.x; x < r.x+r.w; x++ {
			si := (y*sw + x) * 4
			di := (y*dw + x) * 4

			a := float32(sd[si+3])
			var cr, cg, cb float32
			if a > 0 {
				cr = float32(sd[si+0]) * 255 / a
				cg = float32(sd[si+1]) * 255 / a
				cb = float32(sd[si+2]) * 255 / a
			}

			nr := m[0]*cr + m[1]*cg + m[2]*cb + m[3]*a + m[4]
			ng := m[5]*cr + m[6]*cg + m[7]*cb + m[8]*a + m[9]
			nb := m[10]*cr + m[11]*cg + m[12]*cb + m[13]*a + m[14]
			na := m[15]*cr + m[16]*cg + m[17]*cb + m[18]*a + m[19]

			na = min(max(na, 0), 255)
			k := na / 255
			dd[di+0] = clampUint8(min(max(nr, 0), 255) * k)
			dd[di+1] = clampUint8(min(max(ng, 0), 255) * k)
			dd[di+2] = clampUint8(min(max(nb, 0), 255) * k)
			dd[di+3] = clampUint8(na)
		}
	}
}

// ExpandBounds returns input unchanged.
func (f *ColorMatrixFilter) ExpandBounds(input render.Rect) render.Rect {
	return input
}

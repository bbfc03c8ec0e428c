package filter

import (
	"testing"

	"github.com/gogpu/fx/render"
	"github.com/gogpu/gg"
)

func TestBlurFilterExpandBounds(t *testing.T) {
	tests := []struct {
		name   string
		rx, ry float64
		input  render.Rect
		want   render.Rect
	}{
		{
			name:  "zero radius",
			input: render.Rect{MinX: 10, MinY: 10, MaxX: 100, MaxY: 100},
			want:  render.Rect{MinX: 10, MinY: 10, MaxX: 100, MaxY: 100},
		},
		{
			name:  "symmetric",
			rx:    5,
			ry:    5,
			input: render.Rect{MaxX: 100, MaxY: 100},
			want:  render.Rect{MinX: -15, MinY: -15, MaxX: 115, MaxY: 115},
		},
		{
			name:  "asymmetric",
			rx:    3,
			ry:    10,
			input: render.Rect{MinX: 50, MinY: 50, MaxX: 150, MaxY: 150},
			want:  render.Rect{MinX: 41, MinY: 20, MaxX: 159, MaxY: 180},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewBlurFilterXY(tt.rx, tt.ry).ExpandBounds(tt.input)
			if got != tt.want {
				t.Errorf("ExpandBounds = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBlurFilterUniformColor(t *testing.T) {
	src := filledTarget(16, 16, gg.RGBA{R: 0.2, G: 0.4, B: 0.6, A: 1}, 1)
	dst := gg.NewPixmap(16, 16)

	NewBlurFilter(2).Apply(src, dst, src.Bounds())

	for _, p := range [][2]int{{0, 0}, {8, 8}, {15, 15}} {
		got := dst.GetPixel(p[0], p[1])
		want := src.Color().GetPixel(p[0], p[1])
		if !colorApproxEqual(got, want, 0.01) {
			t.Errorf("pixel %v = %+v, want %+v", p, got, want)
		}
	}
}

func TestBlurFilterSpreadsPoint(t *testing.T) {
	src := filledTarget(21, 21, gg.Transparent, 1)
	src.Color().SetPixel(10, 10, gg.White)
	dst := gg.NewPixmap(21, 21)

	NewBlurFilter(1.5).Apply(src, dst, src.Bounds())

	center := dst.GetPixel(10, 10)
	near := dst.GetPixel(11, 10)
	far := dst.GetPixel(20, 10)
	if center.A >= 1 {
		t.Errorf("center alpha = %v, want < 1", center.A)
	}
	if near.A <= 0 {
		t.Error("neighbor should receive coverage")
	}
	if near.A >= center.A {
		t.Errorf("neighbor alpha %v should be below center %v", near.A, center.A)
	}
	if far.A != 0 {
		t.Errorf("far pixel alpha = %v, want 0", far.A)
	}
}

func TestBlurFilterZeroRadiusCopies(t *testing.T) {
	src := filledTarget(4, 4, gg.Red, 1)
	dst := gg.NewPixmap(4, 4)

	NewBlurFilter(0).Apply(src, dst, src.Bounds())

	if got := dst.GetPixel(2, 2); got != gg.Red {
		t.Errorf("pixel = %+v, want red", got)
	}
}

func TestBlurFilterRespectsBounds(t *testing.T) {
	src := filledTarget(10, 10, gg.White, 1)
	dst := gg.NewPixmap(10, 10)

	NewBlurFilter(1).Apply(src, dst, render.Rect{MinX: 2, MinY: 2, MaxX: 5, MaxY: 5})

	if got := dst.GetPixel(8, 8); got.A != 0 {
		t.Errorf("pixel outside bounds written: %+v", got)
	}
	if got := dst.GetPixel(3, 3); got.A == 0 {
		t.Error("pixel inside bounds not written")
	}
}

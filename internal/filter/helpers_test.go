package filter

import (
	"github.com/gogpu/fx/render"
	"github.com/gogpu/gg"
)

// Test helper functions shared across filter tests.

// filledTarget creates a target cleared to c with every depth set to z.
func filledTarget(w, h int, c gg.RGBA, z float32) *render.Target {
	t := render.NewTarget(w, h)
	t.Clear(c)
	for i := range t.Depth() {
		t.Depth()[i] = z
	}
	return t
}

// stripes paints alternating black and white columns into t.
func stripes(t *render.Target) {
	for y := 0; y < t.Height(); y++ {
		for x := 0; x < t.Width(); x++ {
			c := gg.Black
			if x%2 == 1 {
				c = gg.White
			}
			t.Color().SetPixel(x, y, c)
		}
	}
}

// absf returns the absolute value of a float64.
func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// colorApproxEqual compares two colors with tolerance.
func colorApproxEqual(a, b gg.RGBA, tolerance float64) bool {
	return absf(a.R-b.R) < tolerance &&
		absf(a.G-b.G) < tolerance &&
		absf(a.B-b.B) < tolerance &&
		absf(a.A-b.A) < tolerance
}

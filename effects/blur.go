package effects

import (
	"errors"
	"fmt"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/graph"
	"github.com/gogpu/fx/internal/filter"
)

// Blur applies a Gaussian blur to everything beneath it.
//
// Params:
//   - radius: sets both radii (default 4)
//   - radiusX, radiusY: per-axis radii, applied after radius
type Blur struct {
	passEffect
	radiusX float64
	radiusY float64
}

// NewBlur creates a Blur effect.
func NewBlur() *Blur {
	return &Blur{radiusX: 4, radiusY: 4}
}

// Activate implements fx.Effect.
func (b *Blur) Activate(parent *graph.Node) (*graph.Node, error) {
	return b.activatePass(parent, filter.NewBlurFilterXY(b.radiusX, b.radiusY))
}

// SetParams implements fx.Effect. Negative radii are rejected.
func (b *Blur) SetParams(p fx.Params) error {
	if !b.active() {
		return nil
	}
	rx, ry := b.radiusX, b.radiusY
	var errs []error
	if _, ok := p["radius"]; ok {
		var r float64
		if err := floatParam(p, "radius", &r); err != nil {
			errs = append(errs, err)
		} else {
			rx, ry = r, r
		}
	}
	errs = append(errs, floatParam(p, "radiusX", &rx), floatParam(p, "radiusY", &ry))
	if rx < 0 || ry < 0 {
		errs = append(errs, fmt.Errorf("%w: blur radius must not be negative", ErrBadParam))
		return errors.Join(errs...)
	}
	b.radiusX, b.radiusY = rx, ry
	b.setFilter(filter.NewBlurFilterXY(rx, ry))
	return errors.Join(errs...)
}

// Radius returns the horizontal and vertical blur radii.
func (b *Blur) Radius() (x, y float64) { return b.radiusX, b.radiusY }

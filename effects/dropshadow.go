package effects

import (
	"errors"
	"fmt"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/graph"
	"github.com/gogpu/fx/internal/filter"
	"github.com/gogpu/gg"
)

// DropShadow composites everything beneath it over a blurred, tinted copy
// of its own silhouette.
//
// Params:
//   - offsetX, offsetY: shadow offset in pixels (default 4, 4)
//   - radius: blur radius, >= 0 (default 3)
//   - color: shadow color, see [ParseColor] (default black at half alpha)
type DropShadow struct {
	passEffect
	shadow filter.DropShadowFilter
}

// NewDropShadow creates a DropShadow effect.
func NewDropShadow() *DropShadow {
	return &DropShadow{shadow: filter.DropShadowFilter{
		OffsetX: 4,
		OffsetY: 4,
		Radius:  3,
		Color:   gg.RGBA{A: 0.5},
	}}
}

// Activate implements fx.Effect.
func (d *DropShadow) Activate(parent *graph.Node) (*graph.Node, error) {
	return d.activatePass(parent, d.current())
}

// SetParams implements fx.Effect.
func (d *DropShadow) SetParams(p fx.Params) error {
	if !d.active() {
		return nil
	}
	next := d.shadow
	errs := []error{
		floatParam(p, "offsetX", &next.OffsetX),
		floatParam(p, "offsetY", &next.OffsetY),
		colorParam(p, "color", &next.Color),
	}
	radius := next.Radius
	if err := floatParam(p, "radius", &radius); err != nil {
		errs = append(errs, err)
	} else if radius < 0 {
		errs = append(errs, fmt.Errorf("%w: shadow radius must not be negative", ErrBadParam))
	} else {
		next.Radius = radius
	}
	d.shadow = next
	d.setFilter(d.current())
	return errors.Join(errs...)
}

// Shadow returns the current shadow settings.
func (d *DropShadow) Shadow() filter.DropShadowFilter { return d.shadow }

func (d *DropShadow) current() *filter.DropShadowFilter {
	f := d.shadow
	return &f
}

package effects

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/graph"
	"github.com/gogpu/fx/internal/filter"
)

// Pixelate turns everything beneath it into a block mosaic.
//
// Params:
//   - size: block edge in pixels, >= 1 (default 8)
//   - smooth: average blocks instead of sampling one pixel
type Pixelate struct {
	passEffect
	size   int
	smooth bool
}

// NewPixelate creates a Pixelate effect.
func NewPixelate() *Pixelate {
	return &Pixelate{size: 8}
}

// Activate implements fx.Effect.
func (px *Pixelate) Activate(parent *graph.Node) (*graph.Node, error) {
	return px.activatePass(parent, px.mosaic())
}

// SetParams implements fx.Effect.
func (px *Pixelate) SetParams(p fx.Params) error {
	if !px.active() {
		return nil
	}
	size := float64(px.size)
	errs := []error{
		floatParam(p, "size", &size),
		boolParam(p, "smooth", &px.smooth),
	}
	if size < 1 || math.IsNaN(size) {
		errs = append(errs, fmt.Errorf("%w: pixelate size %v below 1", ErrBadParam, size))
	} else {
		px.size = int(size)
	}
	px.setFilter(px.mosaic())
	return errors.Join(errs...)
}

// Size returns the block size in pixels.
func (px *Pixelate) Size() int { return px.size }

func (px *Pixelate) mosaic() *filter.PixelateFilter {
	return &filter.PixelateFilter{Size: px.size, Smooth: px.smooth}
}

package effects

import (
	"github.com/gogpu/fx"
	"github.com/gogpu/fx/graph"
	"github.com/gogpu/fx/internal/shader"
	"github.com/gogpu/fx/render"
	"github.com/gogpu/gg"
)

// Colorize paints everything beneath it in a single color.
//
// Params:
//   - color: hex string or {r, g, b, a} mapping (default red)
type Colorize struct {
	base
	color    gg.RGBA
	material *graph.Node
}

// NewColorize creates a Colorize effect.
func NewColorize() *Colorize {
	return &Colorize{color: gg.Red}
}

// Init implements fx.Effect.
func (c *Colorize) Init(fx.InitContext) error {
	return c.init()
}

// Activate implements fx.Effect. It attaches material -> shader -> leaf.
func (c *Colorize) Activate(parent *graph.Node) (*graph.Node, error) {
	if err := c.checkActivate(parent); err != nil {
		return nil, err
	}
	nodes, err := attachChain(parent,
		link{kind: graph.KindMaterial, data: render.Material{Color: c.color}},
		link{kind: graph.KindShader, data: shader.Colorize()},
		link{kind: graph.KindGroup},
	)
	if err != nil {
		return nil, err
	}
	c.material = nodes[0]
	c.activated(nodes[0])
	return nodes[2], nil
}

// SetParams implements fx.Effect.
func (c *Colorize) SetParams(p fx.Params) error {
	if !c.active() {
		return nil
	}
	if _, ok := p["color"]; !ok {
		return nil
	}
	if err := colorParam(p, "color", &c.color); err != nil {
		return err
	}
	c.material.SetData(render.Material{Color: c.color})
	return nil
}

// Deactivate implements fx.Effect.
func (c *Colorize) Deactivate() error {
	if err := c.deactivate(); err != nil {
		return err
	}
	c.material = nil
	return nil
}

// Color returns the current override color.
func (c *Colorize) Color() gg.RGBA { return c.color }

package effects

import (
	"github.com/gogpu/fx"
	"github.com/gogpu/fx/graph"
	"github.com/gogpu/fx/render"
)

// passEffect is the shared shape of single-filter effects:
//
//	stage(pass) -> leaf
type passEffect struct {
	base
	stage *graph.Node
}

// Init implements fx.Effect.
func (e *passEffect) Init(fx.InitContext) error {
	return e.init()
}

func (e *passEffect) activatePass(parent *graph.Node, f render.Filter) (*graph.Node, error) {
	if err := e.checkActivate(parent); err != nil {
		return nil, err
	}
	nodes, err := attachChain(parent,
		link{kind: graph.KindStage, data: render.NewPass(f)},
		link{kind: graph.KindGroup},
	)
	if err != nil {
		return nil, err
	}
	e.stage = nodes[0]
	e.activated(nodes[0])
	return nodes[1], nil
}

// setFilter replaces the filter of the live stage.
func (e *passEffect) setFilter(f render.Filter) {
	if e.stage != nil {
		e.stage.SetData(render.NewPass(f))
	}
}

// Deactivate implements fx.Effect.
func (e *passEffect) Deactivate() error {
	if err := e.deactivate(); err != nil {
		return err
	}
	e.stage = nil
	return nil
}

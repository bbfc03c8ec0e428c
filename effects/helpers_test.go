package effects

import (
	"testing"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/graph"
)

// view is a lookAt -> camera -> parent scene for driving effects directly.
type view struct {
	scene  *graph.Scene
	lookAt *graph.Node
	camera *graph.Node
	parent *graph.Node
}

func (v *view) ctx() fx.InitContext {
	return fx.InitContext{LookAt: v.lookAt, Camera: v.camera}
}

func newView(t *testing.T) *view {
	t.Helper()
	s := graph.NewScene()
	look := mustNode(t, s, graph.KindLookAt, graph.LookAt{
		Eye: graph.Vec3{Z: 10},
		Up:  graph.Vec3{Y: 1},
	})
	cam := mustNode(t, s, graph.KindCamera, graph.Optics{Near: 1, Far: 100, FovY: 45})
	parent := mustNode(t, s, graph.KindGroup, nil)

	mustAdd(t, s.Root(), look)
	mustAdd(t, look, cam)
	mustAdd(t, cam, parent)
	return &view{scene: s, lookAt: look, camera: cam, parent: parent}
}

func mustNode(t *testing.T, s *graph.Scene, kind graph.Kind, data any) *graph.Node {
	t.Helper()
	var opts []graph.NodeOption
	if data != nil {
		opts = append(opts, graph.WithData(data))
	}
	n, err := s.NewNode(kind, opts...)
	if err != nil {
		t.Fatalf("NewNode(%s): %v", kind, err)
	}
	return n
}

func mustAdd(t *testing.T, parent *graph.Node, children ...*graph.Node) {
	t.Helper()
	if err := parent.Add(children...); err != nil {
		t.Fatalf("Add to %s: %v", parent.ID(), err)
	}
}

// activate runs Init and Activate on e beneath v.parent.
func activate(t *testing.T, v *view, e fx.Effect) *graph.Node {
	t.Helper()
	if err := e.Init(v.ctx()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	leaf, err := e.Activate(v.parent)
	if err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if leaf == nil || !leaf.HasAncestor(v.parent) {
		t.Fatalf("leaf %v is not beneath the parent", leaf)
	}
	return leaf
}

// stageOf returns the first stage node beneath n.
func stageOf(n *graph.Node) *graph.Node {
	var found *graph.Node
	n.Walk(func(c *graph.Node) bool {
		if found == nil && c.Kind() == graph.KindStage {
			found = c
		}
		return found == nil
	})
	return found
}

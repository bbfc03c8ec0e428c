package effects

import (
	"errors"
	"testing"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/graph"
	"github.com/gogpu/fx/internal/filter"
	"github.com/gogpu/fx/internal/shader"
	"github.com/gogpu/fx/render"
)

func TestDepthOfFieldStructure(t *testing.T) {
	v := newView(t)
	d := NewDepthOfField()
	leaf := activate(t, v, d)

	group := v.parent.Children()[0]
	if group.Kind() != graph.KindGroup {
		t.Fatalf("top node kind = %s, want Group", group.Kind())
	}
	kids := group.Children()
	if len(kids) != 2 || kids[0].Kind() != graph.KindStage || kids[1].Kind() != graph.KindShader {
		t.Fatalf("group children = %v, want [Stage Shader]", kids)
	}
	if leaf.Parent() != kids[0] {
		t.Error("leaf should hang beneath the stage")
	}

	pass, ok := kids[0].Data().(render.Pass)
	if !ok {
		t.Fatalf("stage payload = %T, want render.Pass", kids[0].Data())
	}
	if _, ok := pass.Filter.(*filter.DepthBlurFilter); !ok {
		t.Errorf("pass filter = %T, want *filter.DepthBlurFilter", pass.Filter)
	}
	if src, ok := kids[1].Data().(shader.Source); !ok || src.Name != "dof" {
		t.Errorf("shader payload = %v", kids[1].Data())
	}
}

func TestDepthOfFieldAutofocus(t *testing.T) {
	v := newView(t)
	d := NewDepthOfField()
	activate(t, v, d)

	if got := d.Params().FocusDist; got != 10 {
		t.Errorf("initial FocusDist = %v, want 10 (eye to look)", got)
	}
	if p := d.Params(); p.Near != 1 || p.Far != 100 {
		t.Errorf("Near, Far = %v, %v, want 1, 100", p.Near, p.Far)
	}
	if d.Subscriptions() != 2 {
		t.Errorf("Subscriptions = %d, want 2", d.Subscriptions())
	}

	v.lookAt.SetData(graph.LookAt{Eye: graph.Vec3{Z: 25}, Up: graph.Vec3{Y: 1}})
	if got := d.Params().FocusDist; got != 25 {
		t.Errorf("FocusDist after view change = %v, want 25", got)
	}

	v.camera.SetData(graph.Optics{Near: 2, Far: 50, FovY: 60})
	if p := d.Params(); p.Near != 2 || p.Far != 50 {
		t.Errorf("Near, Far after camera change = %v, %v, want 2, 50", p.Near, p.Far)
	}

	pass := stageOf(v.parent).Data().(render.Pass)
	blur := pass.Filter.(*filter.DepthBlurFilter)
	if blur.FocusDist != 25 || blur.Near != 2 || blur.Far != 50 {
		t.Errorf("filter not synced: %+v", blur)
	}
}

func TestDepthOfFieldDeactivateReleasesSubscriptions(t *testing.T) {
	v := newView(t)
	d := NewDepthOfField()
	activate(t, v, d)

	if err := d.Deactivate(); err != nil {
		t.Fatal(err)
	}
	if d.Subscriptions() != 0 {
		t.Errorf("Subscriptions = %d, want 0", d.Subscriptions())
	}

	v.lookAt.SetData(graph.LookAt{Eye: graph.Vec3{Z: 99}})
	if got := d.Params().FocusDist; got == 99 {
		t.Error("inactive effect still follows the view")
	}
}

func TestDepthOfFieldAutofocusOff(t *testing.T) {
	v := newView(t)
	d := NewDepthOfField()
	activate(t, v, d)

	if err := d.SetParams(fx.Params{"autofocus": false, "focusDist": 3.5}); err != nil {
		t.Fatal(err)
	}
	if d.Subscriptions() != 1 {
		t.Errorf("Subscriptions = %d, want 1 (camera only)", d.Subscriptions())
	}

	v.lookAt.SetData(graph.LookAt{Eye: graph.Vec3{Z: 40}})
	if got := d.Params().FocusDist; got != 3.5 {
		t.Errorf("FocusDist = %v, want 3.5", got)
	}
}

func TestDepthOfFieldWithoutCamera(t *testing.T) {
	v := newView(t)
	d := NewDepthOfField()
	if err := d.Init(fx.InitContext{LookAt: v.lookAt}); err != nil {
		t.Fatal(err)
	}
	if _, err := d.Activate(v.parent); err != nil {
		t.Fatal(err)
	}
	if d.Subscriptions() != 1 {
		t.Errorf("Subscriptions = %d, want 1", d.Subscriptions())
	}
	if p := d.Params(); p.Near != 0.1 || p.Far != 10000 {
		t.Errorf("Near, Far = %v, %v, want defaults", p.Near, p.Far)
	}
}

func TestDepthOfFieldBadParams(t *testing.T) {
	v := newView(t)
	d := NewDepthOfField()
	activate(t, v, d)

	err := d.SetParams(fx.Params{"blurCoeff": "lots", "ppm": 2000})
	if !errors.Is(err, ErrBadParam) {
		t.Errorf("err = %v, want ErrBadParam", err)
	}
	p := d.Params()
	if p.BlurCoeff != 0.0011 {
		t.Errorf("BlurCoeff = %v, want unchanged", p.BlurCoeff)
	}
	if p.PPM != 2000 {
		t.Errorf("PPM = %v, want 2000", p.PPM)
	}
}

package fx_test

import (
	"fmt"
	"testing"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/effects"
	"github.com/gogpu/fx/graph"
	"github.com/gogpu/fx/render"
	"github.com/gogpu/gg"
)

// newDemoScene builds lookAt -> camera -> root -> a small white square at
// the focus distance, rendered by a 32x32 software renderer.
func newDemoScene() (*graph.Scene, *graph.Node, *render.Software) {
	r := render.NewSoftware(32, 32, render.WithBackground(gg.Black))
	s := graph.NewScene(graph.WithRenderer(r))

	look, _ := s.NewNode(graph.KindLookAt, graph.WithData(graph.LookAt{
		Eye: graph.Vec3{Z: 10},
		Up:  graph.Vec3{Y: 1},
	}))
	camera, _ := s.NewNode(graph.KindCamera, graph.WithData(graph.Optics{Near: 1, Far: 100, FovY: 45}))
	root, _ := s.NewNode(graph.KindGroup, graph.WithID("fx"))
	square, _ := s.NewNode(graph.KindGeometry, graph.WithData(render.Rectangle{
		X: 12, Y: 12, W: 8, H: 8, Color: gg.White, Z: 10,
	}))

	_ = s.Root().Add(look)
	_ = look.Add(camera)
	_ = camera.Add(root)
	_ = root.Add(square)
	return s, root, r
}

func ExamplePipeline() {
	scene, root, _ := newDemoScene()

	p, err := fx.New(root)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer p.Close()

	_ = p.Register("dof", effects.NewDepthOfField())
	_ = p.Register("colorize", effects.NewColorize())

	p.Update(fx.Request{Effects: []fx.EffectUpdate{
		{ID: "colorize", Params: fx.Params{"active": true}},
		{ID: "dof", Params: fx.Params{"active": true}},
	}})
	if err := scene.Tick(); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(p.Active())
	// Output: [dof colorize]
}

func TestDepthOfFieldAndColorize(t *testing.T) {
	scene, root, r := newDemoScene()
	p, err := fx.New(root)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = p.Close() })

	dof := effects.NewDepthOfField()
	colorize := effects.NewColorize()
	if err := p.Register("dof", dof); err != nil {
		t.Fatal(err)
	}
	if err := p.Register("colorize", colorize); err != nil {
		t.Fatal(err)
	}

	if err := scene.Tick(); err != nil {
		t.Fatal(err)
	}
	if scene.Frames() != 0 {
		t.Error("an idle pipeline should not force a render")
	}

	p.Update(fx.Request{Effects: []fx.EffectUpdate{
		{ID: "dof", Params: fx.Params{"active": true}},
		{ID: "colorize", Params: fx.Params{"active": true}},
	}})
	if err := scene.Tick(); err != nil {
		t.Fatal(err)
	}

	if dof.State() != effects.StateActive || colorize.State() != effects.StateActive {
		t.Fatalf("states = %s, %s", dof.State(), colorize.State())
	}
	if got := dof.Params().FocusDist; got != 10 {
		t.Errorf("FocusDist = %v, want the eye distance 10", got)
	}

	// The square sits at the focus distance, so it stays sharp and only
	// picks up the colorize tint.
	if got := r.Output().GetPixel(16, 16); got != gg.Red {
		t.Errorf("center = %+v, want red", got)
	}
	if got := r.Output().GetPixel(0, 0); got != gg.Black {
		t.Errorf("corner = %+v, want the background", got)
	}

	// A live color change renders on the next frame without a rebuild.
	version, rebuilds := scene.Version(), p.Rebuilds()
	p.Update(fx.Request{Effects: []fx.EffectUpdate{
		{ID: "colorize", Params: fx.Params{"color": "#00ff00"}},
	}})
	if p.Dirty() {
		t.Fatal("a color change should not require a rebuild")
	}
	if scene.Version() == version {
		t.Error("the live push should change the material payload")
	}
	if err := scene.RenderFrame(false); err != nil {
		t.Fatal(err)
	}
	if got := r.Output().GetPixel(16, 16); got != gg.Green {
		t.Errorf("center after color change = %+v, want green", got)
	}
	if p.Rebuilds() != rebuilds {
		t.Errorf("Rebuilds = %d, want %d", p.Rebuilds(), rebuilds)
	}

	// Switching colorize off restores the square's own color.
	p.Update(fx.Request{Effects: []fx.EffectUpdate{
		{ID: "colorize", Params: fx.Params{"active": false}},
	}})
	if err := scene.Tick(); err != nil {
		t.Fatal(err)
	}
	if got := r.Output().GetPixel(16, 16); got != gg.White {
		t.Errorf("center without colorize = %+v, want white", got)
	}
	if colorize.State() != effects.StateInactive {
		t.Errorf("colorize state = %s, want Inactive", colorize.State())
	}
}

func TestRejectedBlurRadiusKeepsBlurActive(t *testing.T) {
	scene, root, _ := newDemoScene()
	p, err := fx.New(root)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = p.Close() })

	blur := effects.NewBlur()
	if err := p.Register("blur", blur); err != nil {
		t.Fatal(err)
	}
	if err := p.Register("colorize", effects.NewColorize()); err != nil {
		t.Fatal(err)
	}

	p.Update(fx.Request{Effects: []fx.EffectUpdate{
		{ID: "blur", Params: fx.Params{"active": true, "radius": 2.0}},
	}})
	if err := scene.Tick(); err != nil {
		t.Fatal(err)
	}

	p.Update(fx.Request{Effects: []fx.EffectUpdate{{ID: "blur", Params: fx.Params{"radius": -1.0}}}})
	p.Update(fx.Request{Effects: []fx.EffectUpdate{{ID: "colorize", Params: fx.Params{"active": true}}}})
	if err := scene.Tick(); err != nil {
		t.Fatalf("Tick = %v", err)
	}
	if got := p.Active(); len(got) != 2 || got[0] != "blur" || got[1] != "colorize" {
		t.Fatalf("Active = %v, want [blur colorize]", got)
	}
	if x, y := blur.Radius(); x != 2 || y != 2 {
		t.Errorf("radius = %v, %v, want the last valid 2", x, y)
	}

	p.Update(fx.Request{Effects: []fx.EffectUpdate{{ID: "blur", Params: fx.Params{"radius": 3.0}}}})
	if x, _ := blur.Radius(); x != 3 {
		t.Errorf("radius after correction = %v, want 3", x)
	}
}

package main

import (
	"errors"
	"fmt"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/effects"
	"github.com/gogpu/fx/graph"
	"github.com/gogpu/fx/metrics"
	"github.com/gogpu/fx/render"
	"github.com/gogpu/gg"
)

// demo is the scene the commands drive: a view, a camera and a pipeline
// root above a handful of shapes spread over depth.
type demo struct {
	scene    *graph.Scene
	renderer *render.Software
	pipeline *fx.Pipeline
}

// effectIDs lists the registered effects in chain order.
var effectIDs = []string{"dof", "blur", "grade", "colorize", "shadow", "pixelate"}

func newDemo(cfg *Config, rec metrics.Recorder) (*demo, error) {
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return nil, err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}

	r := render.NewSoftware(cfg.Width, cfg.Height, render.WithBackground(bg))
	s := graph.NewScene(graph.WithRenderer(r))

	look, err := s.NewNode(graph.KindLookAt, graph.WithID("view"), graph.WithData(graph.LookAt{
		Eye: graph.Vec3{Z: 10},
		Up:  graph.Vec3{Y: 1},
	}))
	if err != nil {
		return nil, err
	}
	camera, err := s.NewNode(graph.KindCamera, graph.WithID("camera"), graph.WithData(graph.Optics{
		Near: 1, Far: 100, FovY: 45,
	}))
	if err != nil {
		return nil, err
	}
	root, err := s.NewNode(graph.KindGroup, graph.WithID("fx"))
	if err != nil {
		return nil, err
	}
	if err := s.Root().Add(look); err != nil {
		return nil, err
	}
	if err := look.Add(camera); err != nil {
		return nil, err
	}
	if err := camera.Add(root); err != nil {
		return nil, err
	}
	if err := addShapes(s, root, float64(cfg.Width), float64(cfg.Height)); err != nil {
		return nil, err
	}

	p, err := fx.New(root, fx.WithFailurePolicy(policy), fx.WithRecorder(rec))
	if err != nil {
		return nil, err
	}
	for _, id := range effectIDs {
		if err := p.Register(id, newEffect(id)); err != nil {
			return nil, err
		}
	}
	return &demo{scene: s, renderer: r, pipeline: p}, nil
}

func newEffect(id string) fx.Effect {
	switch id {
	case "dof":
		return effects.NewDepthOfField()
	case "blur":
		return effects.NewBlur()
	case "grade":
		return effects.NewColorGrade()
	case "colorize":
		return effects.NewColorize()
	case "shadow":
		return effects.NewDropShadow()
	case "pixelate":
		return effects.NewPixelate()
	}
	panic("unknown effect " + id)
}

// addShapes lays out shapes from far to near so nearer ones paint last.
func addShapes(s *graph.Scene, root *graph.Node, w, h float64) error {
	shapes := []render.Drawable{
		render.Rectangle{X: 0, Y: h * 0.7, W: w, H: h * 0.3, Color: gg.Hex("#16213e"), Z: 60},
		render.Circle{X: w * 0.8, Y: h * 0.3, R: h * 0.18, Color: gg.Hex("#e94560"), Z: 40},
		render.Rectangle{X: w * 0.4, Y: h * 0.3, W: w * 0.2, H: h * 0.4, Color: gg.Hex("#0f3460"), Z: 10},
		render.Circle{X: w * 0.5, Y: h * 0.5, R: h * 0.1, Color: gg.Hex("#f5f5f5"), Z: 10},
		render.Circle{X: w * 0.18, Y: h * 0.62, R: h * 0.22, Color: gg.Hex("#53d769"), Z: 3},
	}
	for i, d := range shapes {
		n, err := s.NewNode(graph.KindGeometry, graph.WithID(fmt.Sprintf("shape-%d", i)), graph.WithData(d))
		if err != nil {
			return err
		}
		if err := root.Add(n); err != nil {
			return err
		}
	}
	return nil
}

// apply issues one request and runs a frame. Isolated effect failures are
// logged by the pipeline and do not stop the demo.
func (d *demo) apply(req fx.Request) error {
	d.pipeline.Update(req)
	if err := d.scene.Tick(); err != nil {
		var re *fx.RebuildError
		if errors.As(err, &re) && !re.Aborted {
			return nil
		}
		return err
	}
	return d.scene.RenderFrame(false)
}

func (d *demo) save(path string) error {
	if err := d.renderer.Output().SavePNG(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func (d *demo) close() error { return d.pipeline.Close() }

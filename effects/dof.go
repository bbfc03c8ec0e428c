package effects

import (
	"errors"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/graph"
	"github.com/gogpu/fx/internal/filter"
	"github.com/gogpu/fx/internal/shader"
	"github.com/gogpu/fx/render"
)

// DOFParams are the depth-of-field settings.
type DOFParams struct {
	// TexelSize is the size of one texel in UV units, used by GPU backends.
	TexelSize float64
	// BlurCoeff is f*ms/N of the thin-lens blur equation.
	BlurCoeff float64
	// FocusDist is the distance to the subject in perfect focus.
	FocusDist float64
	// PPM is pixels per millimetre.
	PPM  float64
	Near float64
	Far  float64
	// Autofocus keeps FocusDist at the eye to look distance of the view.
	Autofocus bool
	// Autoclip keeps Near and Far at the camera clipping planes.
	Autoclip bool
}

// DefaultDOFParams returns the initial depth-of-field settings.
func DefaultDOFParams() DOFParams {
	return DOFParams{
		TexelSize: 0.00099,
		BlurCoeff: 0.0011,
		FocusDist: 5,
		PPM:       10000,
		Near:      0.1,
		Far:       10000,
		Autofocus: true,
		Autoclip:  true,
	}
}

// DepthOfField blurs content in proportion to its distance from the focal
// plane.
//
// Params: texelSize, blurCoeff, focusDist, ppm, near, far (numbers) and
// autofocus, autoclip (bools).
type DepthOfField struct {
	base
	params DOFParams
	view   fx.InitContext
	blur   *filter.DepthBlurFilter
	stage  *graph.Node
	subs   []graph.Subscription
}

// NewDepthOfField creates a DepthOfField effect with default settings.
func NewDepthOfField() *DepthOfField {
	return &DepthOfField{params: DefaultDOFParams()}
}

// Init implements fx.Effect.
func (d *DepthOfField) Init(ctx fx.InitContext) error {
	if err := d.init(); err != nil {
		return err
	}
	d.view = ctx
	return nil
}

// Activate implements fx.Effect. It attaches
//
//	group -> stage(depth blur pass) -> leaf
//	      -> shader
//
// and subscribes to the view nodes for autofocus and autoclip.
func (d *DepthOfField) Activate(parent *graph.Node) (*graph.Node, error) {
	if err := d.checkActivate(parent); err != nil {
		return nil, err
	}

	d.blur = &filter.DepthBlurFilter{}
	nodes, err := attachChain(parent,
		link{kind: graph.KindGroup},
		link{kind: graph.KindStage, data: render.NewPass(d.blur)},
		link{kind: graph.KindGroup},
	)
	if err != nil {
		return nil, err
	}
	group, leaf := nodes[0], nodes[2]

	sh, err := parent.Scene().NewNode(graph.KindShader, graph.WithData(shader.DepthOfField()))
	if err == nil {
		err = group.Add(sh)
	}
	if err != nil {
		group.Destroy()
		return nil, err
	}

	d.stage = nodes[1]
	d.activated(group)
	d.subscribe()
	d.apply()
	return leaf, nil
}

// SetParams implements fx.Effect.
func (d *DepthOfField) SetParams(p fx.Params) error {
	if !d.active() {
		return nil
	}
	prevFocus, prevClip := d.params.Autofocus, d.params.Autoclip
	err := errors.Join(
		floatParam(p, "texelSize", &d.params.TexelSize),
		floatParam(p, "blurCoeff", &d.params.BlurCoeff),
		floatParam(p, "focusDist", &d.params.FocusDist),
		floatParam(p, "ppm", &d.params.PPM),
		floatParam(p, "near", &d.params.Near),
		floatParam(p, "far", &d.params.Far),
		boolParam(p, "autofocus", &d.params.Autofocus),
		boolParam(p, "autoclip", &d.params.Autoclip),
	)
	if d.params.Autofocus != prevFocus || d.params.Autoclip != prevClip {
		d.unsubscribe()
		d.subscribe()
	}
	d.apply()
	return err
}

// Deactivate implements fx.Effect.
func (d *DepthOfField) Deactivate() error {
	if !d.active() {
		return ErrNotActive
	}
	d.unsubscribe()
	d.stage = nil
	d.blur = nil
	return d.deactivate()
}

// Params returns the current settings.
func (d *DepthOfField) Params() DOFParams { return d.params }

// Subscriptions returns the number of live view subscriptions.
func (d *DepthOfField) Subscriptions() int { return len(d.subs) }

func (d *DepthOfField) subscribe() {
	if d.params.Autofocus && d.view.LookAt != nil {
		d.subs = append(d.subs, d.view.LookAt.On(graph.EventMatrix, d.syncLookAt))
		d.syncLookAt(d.view.LookAt)
	}
	if d.params.Autoclip && d.view.Camera != nil {
		d.subs = append(d.subs, d.view.Camera.On(graph.EventMatrix, d.syncCamera))
		d.syncCamera(d.view.Camera)
	}
}

func (d *DepthOfField) unsubscribe() {
	for _, sub := range d.subs {
		sub.Release()
	}
	d.subs = d.subs[:0]
}

func (d *DepthOfField) syncLookAt(n *graph.Node) {
	if l, ok := graph.LookAtOf(n); ok {
		d.params.FocusDist = l.Distance()
		d.apply()
	}
}

func (d *DepthOfField) syncCamera(n *graph.Node) {
	if o, ok := graph.OpticsOf(n); ok {
		d.params.Near, d.params.Far = o.Near, o.Far
		d.apply()
	}
}

// apply pushes the settings into the blur filter and marks the stage
// changed.
func (d *DepthOfField) apply() {
	if d.blur == nil || d.stage == nil {
		return
	}
	d.blur.BlurCoeff = d.params.BlurCoeff
	d.blur.FocusDist = d.params.FocusDist
	d.blur.PPM = d.params.PPM
	d.blur.Near = d.params.Near
	d.blur.Far = d.params.Far
	d.stage.SetData(render.NewPass(d.blur))
}

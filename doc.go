// Package fx composes post-processing effects onto a subtree of a render graph.
//
// # Overview
//
// A [Pipeline] is created on a root node of a [graph.Scene]. Everything
// beneath the root is the content. Effects are registered once, then switched
// on, off and tuned with batched [Request] values. Whenever the set of active
// effects changes the pipeline rebuilds, on the next scene tick, a chain of
// effect subgraphs between the root and the content:
//
//	root -> effect 0 subgraph -> effect 1 subgraph -> ... -> content
//
// Effects always appear in registration order, whatever order the requests
// name them in.
//
// # Quick Start
//
//	scene := graph.NewScene(graph.WithRenderer(render.NewSoftware(640, 480)))
//	look, _ := scene.NewNode(graph.KindLookAt, graph.WithData(graph.LookAt{Look: graph.Vec3{Z: -5}}))
//	root, _ := scene.NewNode(graph.KindGroup)
//	_ = scene.Root().Add(look)
//	_ = look.Add(root)
//	// ... attach content beneath root ...
//
//	p, err := fx.New(root)
//	if err != nil {
//	    return err
//	}
//	_ = p.Register("dof", effects.NewDepthOfField())
//	_ = p.Register("colorize", effects.NewColorize())
//
//	p.Update(fx.Request{Effects: []fx.EffectUpdate{
//	    {ID: "dof", Params: fx.Params{"active": true, "focusDist": 5.0}},
//	}})
//	_ = scene.Tick() // rebuilds the chain and renders
//
// # Effects
//
// Effects implement the four-operation [Effect] contract. Concrete effects
// live in the effects package.
//
// # Failures
//
// A rebuild never leaves the content detached. What happens to a failing
// effect is selected with [WithFailurePolicy].
//
// # Logging
//
// fx is silent by default. See [SetLogger].
package fx

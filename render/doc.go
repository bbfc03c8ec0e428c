// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws a graph.Scene into a gg.Pixmap on the CPU.
//
// # Node Semantics
//
// The [Software] renderer walks the scene depth-first and interprets node
// payloads by kind:
//
//   - graph.KindGeometry: a [Drawable] painted with gg, writing depth
//   - graph.KindMaterial: a [Material] overriding the base color beneath it
//   - graph.KindStage: a [Pass] rendering its subtree into an offscreen
//     [Target] (color and depth), running its [Filter] and compositing the
//     result source-over onto the enclosing target
//   - graph.KindShader: GPU shader source; the software path ignores it
//
// Every other kind only groups its children.
//
// # Filters
//
// Filters read a whole [Target], including its depth buffer, and write
// color into a destination pixmap. Implementations live in internal/filter.
//
// # Usage
//
//	r := render.NewSoftware(640, 480, render.WithBackground(gg.Black))
//	scene := graph.NewScene(graph.WithRenderer(r))
//	// ... build the scene ...
//	_ = scene.RenderFrame(true)
//	_ = r.Output().SavePNG("frame.png")
package render

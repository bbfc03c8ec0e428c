// Package effects provides the stock fx.Effect implementations.
//
//   - [DepthOfField]: depth-aware blur focused on the view's look point
//   - [Colorize]: replaces the base color of everything beneath it
//   - [Blur]: Gaussian blur
//   - [ColorGrade]: brightness, contrast, saturation, sepia and invert
//   - [Pixelate]: block mosaic
//   - [DropShadow]: offset, blurred shadow under everything beneath it
//
// Each effect attaches a small subgraph when activated and destroys it when
// deactivated. Post-processing effects render their subtree through a
// graph.KindStage node whose payload is a render.Pass.
//
// Effects are NOT thread-safe; they are driven by the pipeline that owns
// them.
package effects

// Package filter implements the render.Filter values used by the effects.
//
// Filters:
//   - Gaussian blur (separable, cached kernels)
//   - Depth blur: per-pixel box blur sized from the depth buffer
//   - Color matrix transformations (brightness, contrast, sepia, ...)
//   - Pixelate (downscale and upscale through x/image/draw)
//   - Drop shadow: blurred, tinted alpha composited under the source
//
// All filters read premultiplied RGBA and write premultiplied RGBA.
package filter

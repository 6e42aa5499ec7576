// Package raster implements the CPU rasterization and shader-execution
// pipeline: vertex stage, triangle setup, edge-function rasterization
// with barycentric interpolation, depth/stencil test, fragment stage,
// blend, and format-aware writeback into a bound framebuffer. Shader
// stages are driven through shader.Module.
package raster

import "github.com/vkcpu/vkcpu/shader"

// ScreenVertex is a vertex after perspective divide and viewport
// transform.
type ScreenVertex struct {
	X, Y, Z    float32
	W          float32 // 1/w from the original clip-space vertex.
	Attributes []float32
}

// Triangle is three screen-space vertices.
type Triangle struct {
	V0, V1, V2 ScreenVertex
}

// Viewport is the rectangular render area plus depth range.
type Viewport struct {
	X, Y          int
	Width, Height int
	MinDepth      float32
	MaxDepth      float32
}

// Fragment is an alias of shader.Fragment: the candidate-pixel type the
// rasterizer produces and the fragment stage consumes. Kept as an alias
// rather than a separate type so raster and shader agree on one
// definition without an import cycle (shader has no raster dependency).
type Fragment = shader.Fragment

package raster

import "github.com/vkcpu/vkcpu/devstate"

// ComputeTriangleArea returns the signed area of a triangle in screen
// space: positive for CCW winding, negative for CW.
func ComputeTriangleArea(v0, v1, v2 ScreenVertex) float32 {
	e01 := NewEdgeFunction(v0.X, v0.Y, v1.X, v1.Y)
	return e01.Evaluate(v2.X, v2.Y)
}

// IsBackFacing reports whether tri is back-facing under front.
func IsBackFacing(tri Triangle, front devstate.FrontFace) bool {
	area := ComputeTriangleArea(tri.V0, tri.V1, tri.V2)
	switch front {
	case devstate.FrontFaceCCW:
		return area < 0
	case devstate.FrontFaceCW:
		return area > 0
	}
	return false
}

// ShouldCull reports whether tri should be discarded under cull/front.
func ShouldCull(tri Triangle, cull devstate.CullMode, front devstate.FrontFace) bool {
	if cull == devstate.CullNone {
		return false
	}
	back := IsBackFacing(tri, front)
	switch cull {
	case devstate.CullBack:
		return back
	case devstate.CullFront:
		return !back
	}
	return false
}

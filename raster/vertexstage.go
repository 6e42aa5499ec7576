package raster

import (
	"github.com/vkcpu/vkcpu/shader"
)

// ClipToScreen performs the perspective divide and viewport transform
// on a vertex-shader output, producing the ScreenVertex the rasterizer
// consumes. NDC x,y in [-1,1] map onto [vp.X, vp.X+vp.Width) and
// [vp.Y, vp.Y+vp.Height) with y increasing downward in both spaces,
// and depth in [0,1] maps onto [vp.MinDepth, vp.MaxDepth]. There is no
// clipping: triangles with |x|,|y|,|z| > w produce undefined results.
func ClipToScreen(v shader.ClipSpaceVertex, vp Viewport) ScreenVertex {
	w := v.Position[3]
	if w == 0 {
		w = 1
	}
	invW := 1 / w
	ndcX := v.Position[0] * invW
	ndcY := v.Position[1] * invW
	ndcZ := v.Position[2] * invW

	sx := (ndcX*0.5+0.5)*float32(vp.Width) + float32(vp.X)
	sy := (ndcY*0.5+0.5)*float32(vp.Height) + float32(vp.Y)
	sz := vp.MinDepth + ndcZ*(vp.MaxDepth-vp.MinDepth)

	var attrs []float32
	if n := len(v.Attributes); n > 0 {
		attrs = make([]float32, n)
		copy(attrs, v.Attributes)
	}

	return ScreenVertex{X: sx, Y: sy, Z: sz, W: invW, Attributes: attrs}
}

// VertexInput is one vertex's object-space position and per-vertex
// attribute stream, already decoded from the bound vertex buffers by
// FetchVertexInput (called from Draw).
type VertexInput struct {
	Position   [3]float32
	Attributes []float32
}

// RunVertexStage dispatches entry once per vertex in verts, exposing
// indices[i] as the vertex index builtin, transforms each result to
// screen space through vp, and returns the screen-space vertices in
// the same order.
func RunVertexStage(mod shader.Module, entry string, verts []VertexInput, indices []uint32, instanceIndex uint32, uniforms any, vp Viewport) ([]ScreenVertex, error) {
	out := make([]ScreenVertex, len(verts))
	for i, in := range verts {
		ctx := shader.InvocationContext{
			VertexIndex:   indices[i],
			InstanceIndex: instanceIndex,
			Uniforms:      uniforms,
		}
		clip, err := mod.DispatchVertex(entry, ctx, in.Position, in.Attributes)
		if err != nil {
			return nil, err
		}
		out[i] = ClipToScreen(clip, vp)
	}
	return out, nil
}

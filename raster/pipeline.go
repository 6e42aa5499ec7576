package raster

import (
	"fmt"
	"sync"

	"github.com/vkcpu/vkcpu/devstate"
	"github.com/vkcpu/vkcpu/shader"
	"github.com/vkcpu/vkcpu/types"
)

// ErrUnsupportedTopology rejects draws with any topology other than
// TriangleList. Strip and fan assembly are not implemented.
var ErrUnsupportedTopology = fmt.Errorf("raster: unsupported topology (only TriangleList is implemented)")

// DrawParams bundles everything one Draw/DrawIndexed replay needs. It
// is built by cmdbuf from the bound devstate.State and passed in, so
// this package stays free of any dependency on command records.
type DrawParams struct {
	Pipeline      *devstate.GraphicsPipeline
	VertexBuffers []devstate.VertexBufferBinding
	Uniforms      *shader.Uniforms
	Viewport      Viewport
	Scissor       types.Rect2D
	HasScissor    bool
	ColorTargets  []*ColorTarget
	DepthTarget   *DepthStencilTarget
	StencilRef    uint32

	// BlendConstant overrides every color target's static blend
	// constant when HasBlendConstant is set.
	BlendConstant    [4]float32
	HasBlendConstant bool

	// VertexIndices is the sequence of vertex indices to assemble into
	// triangles, already resolved from either a direct [first,
	// first+count) range (Draw) or a decoded index buffer plus
	// vertexOffset (DrawIndexed). Its length must be a multiple of 3.
	VertexIndices []uint32
	FirstInstance uint32
	InstanceCount uint32
}

func inScissor(x, y int, scissor types.Rect2D) bool {
	return int32(x) >= scissor.X && int32(x) < scissor.X+scissor.Width &&
		int32(y) >= scissor.Y && int32(y) < scissor.Y+scissor.Height
}

// Draw replays one Draw/DrawIndexed command against p: vertex fetch,
// vertex shader, triangle assembly, cull, rasterize, and per-fragment
// shading/writeback.
func Draw(p DrawParams) error {
	gp := p.Pipeline
	if gp.Raster.Topology != types.TopologyTriangleList {
		return fmt.Errorf("%w: got %v", ErrUnsupportedTopology, gp.Raster.Topology)
	}
	if len(p.VertexIndices)%3 != 0 {
		return fmt.Errorf("raster: vertex index count %d is not a multiple of 3", len(p.VertexIndices))
	}

	instanceCount := p.InstanceCount
	if instanceCount == 0 {
		instanceCount = 1
	}

	for instance := p.FirstInstance; instance < p.FirstInstance+instanceCount; instance++ {
		verts := make([]VertexInput, len(p.VertexIndices))
		for i, vi := range p.VertexIndices {
			in, err := FetchVertexInput(gp.VertexBuffers, p.VertexBuffers, vi, instance)
			if err != nil {
				return err
			}
			verts[i] = in
		}

		screen, err := RunVertexStage(gp.VertexShader, gp.VertexEntry, verts, p.VertexIndices, instance, p.Uniforms, p.Viewport)
		if err != nil {
			return err
		}

		for t := 0; t+2 < len(screen); t += 3 {
			tri := Triangle{V0: screen[t], V1: screen[t+1], V2: screen[t+2]}
			if ShouldCull(tri, gp.Raster.CullMode, gp.Raster.FrontFace) {
				continue
			}
			backFacing := IsBackFacing(tri, gp.Raster.FrontFace)

			// The fragment callback runs concurrently across raster
			// bands; the error slot needs its own lock.
			var mu sync.Mutex
			var rasterErr error
			ParallelRasterize(tri, p.Viewport, func(frag shader.Fragment) {
				mu.Lock()
				failed := rasterErr != nil
				mu.Unlock()
				if failed {
					return
				}
				if p.HasScissor && !inScissor(frag.X, frag.Y, p.Scissor) {
					return
				}
				if err := shadeFragment(gp, p, frag, instance, backFacing); err != nil {
					mu.Lock()
					if rasterErr == nil {
						rasterErr = err
					}
					mu.Unlock()
				}
			})
			if rasterErr != nil {
				return rasterErr
			}
		}
	}
	return nil
}

// shadeFragment runs stencil test, depth test, fragment shader, blend
// and writeback for one covered pixel. backFacing selects which of
// DepthStencilState's two StencilFaceStates governs the stencil test.
func shadeFragment(gp *devstate.GraphicsPipeline, p DrawParams, frag shader.Fragment, instance uint32, backFacing bool) error {
	ds := gp.DepthStencil

	var curDepth float32 = 1
	depthTestEnabled := ds != nil && ds.DepthTestEnable && p.DepthTarget != nil
	if depthTestEnabled {
		d, err := p.DepthTarget.ReadDepth(frag.X, frag.Y)
		if err != nil {
			return err
		}
		curDepth = d
	}
	depthPassed := !depthTestEnabled || compareDepth(frag.Depth, curDepth, ds.DepthCompare)

	stencilTestEnabled := ds != nil && ds.StencilTestEnable && p.DepthTarget != nil
	if stencilTestEnabled {
		face := ds.StencilFront
		if backFacing {
			face = ds.StencilBack
		}
		curStencil, err := p.DepthTarget.ReadStencil(frag.X, frag.Y)
		if err != nil {
			return err
		}
		// The read mask scopes only the comparison; the ops and the
		// write-mask merge see the stored value.
		stencilPassed := compareStencil(p.StencilRef&ds.StencilReadMask, curStencil&ds.StencilReadMask, face.Compare)

		var op devstate.StencilOperation
		switch {
		case !stencilPassed:
			op = face.FailOp
		case !depthPassed:
			op = face.DepthFailOp
		default:
			op = face.PassOp
		}
		newStencil := applyStencilOp(op, p.StencilRef, curStencil, ds.StencilWriteMask)
		if err := p.DepthTarget.WriteStencil(frag.X, frag.Y, newStencil); err != nil {
			return err
		}
		if !stencilPassed {
			return nil
		}
	}

	if !depthPassed {
		return nil
	}

	ctx := shader.InvocationContext{InstanceIndex: instance, Uniforms: p.Uniforms}
	out, err := gp.FragmentShader.DispatchFragment(gp.FragmentEntry, ctx, frag)
	if err != nil {
		return err
	}

	if depthTestEnabled && ds.DepthWriteEnable {
		if err := p.DepthTarget.WriteDepth(frag.X, frag.Y, frag.Depth); err != nil {
			return err
		}
	}

	for i, ct := range p.ColorTargets {
		if ct == nil {
			continue
		}
		blendState := devstate.BlendState{}
		writeMask := uint8(0xF)
		if i < len(gp.ColorTargets) {
			blendState = gp.ColorTargets[i].Blend
			writeMask = gp.ColorTargets[i].WriteMask
		}
		if p.HasBlendConstant {
			blendState.Constant = p.BlendConstant
		}
		if writeMask == 0 {
			continue
		}
		dst, err := ct.Read(frag.X, frag.Y)
		if err != nil {
			return err
		}
		// No dual-source output: Module's fragment stage returns one
		// color, so the Src1* factors see zero.
		blended := Blend(out, [4]float32{}, dst, blendState)
		for ch := 0; ch < 4; ch++ {
			if writeMask&(1<<ch) == 0 {
				blended[ch] = dst[ch]
			}
		}
		if err := ct.Write(frag.X, frag.Y, blended); err != nil {
			return err
		}
	}
	return nil
}

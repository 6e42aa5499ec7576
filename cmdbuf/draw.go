package cmdbuf

import (
	"encoding/binary"
	"fmt"

	"github.com/vkcpu/vkcpu/devstate"
	"github.com/vkcpu/vkcpu/raster"
	"github.com/vkcpu/vkcpu/shader"
	"github.com/vkcpu/vkcpu/types"
)

// resolveUniforms builds the resolved shader.Uniforms view a draw or
// dispatch dispatches shaders against, from the descriptor sets and
// dynamic offsets currently bound at bp: for each binding, the buffer
// region (base + dynamic offset) keyed by its (set, binding) pair.
func resolveUniforms(state *devstate.State, bp types.BindPoint) (*shader.Uniforms, error) {
	bs := state.BindState(bp)
	u := shader.NewUniforms()
	u.PushConstants = bs.PushConstants[:]

	for set, ds := range bs.DescriptorSets {
		if ds == nil {
			continue
		}
		for _, lb := range ds.Layout.Bindings {
			dyn := bs.DynamicOffsets[set][lb.Binding]
			res, err := ds.Resolve(lb.Binding, dyn)
			if err != nil {
				continue
			}
			switch r := res.(type) {
			case devstate.BufferResource:
				size := r.Size
				if size == 0 {
					size = r.Buffer.Size() - r.Offset
				}
				b, err := r.Buffer.Data(r.Offset, size)
				if err != nil {
					return nil, err
				}
				u.BindBuffer(uint32(set), lb.Binding, b)
			case devstate.ImageResource:
				ct, err := raster.NewColorTarget(r.View)
				if err != nil {
					return nil, err
				}
				w, h, _, _, _ := r.View.Image.Dimensions()
				u.BindImage(uint32(set), lb.Binding, shader.ImageBinding{
					Width: w, Height: h,
					Read: func(x, y int) [4]float32 {
						c, _ := ct.Read(x, y)
						return c
					},
				})
			}
		}
	}
	return u, nil
}

// subpassTargets resolves the current subpass's bound color and
// depth/stencil attachments into raster.ColorTarget/DepthStencilTarget.
func subpassTargets(state *devstate.State) ([]*raster.ColorTarget, *raster.DepthStencilTarget, error) {
	fb := state.CurrentFramebuffer
	if fb == nil {
		return nil, nil, fmt.Errorf("%w: draw recorded outside a render pass", ErrInvalidRenderPass)
	}
	sp := fb.RenderPass.Subpasses[state.CurrentSubpass]

	colorTargets := make([]*raster.ColorTarget, len(sp.ColorAttachments))
	for i, attIdx := range sp.ColorAttachments {
		ct, err := raster.NewColorTarget(fb.Views[attIdx])
		if err != nil {
			return nil, nil, err
		}
		colorTargets[i] = ct
	}

	var depthTarget *raster.DepthStencilTarget
	if sp.DepthStencilAttachment != nil {
		dt, err := raster.NewDepthStencilTarget(fb.Views[*sp.DepthStencilAttachment])
		if err != nil {
			return nil, nil, err
		}
		depthTarget = dt
	}
	return colorTargets, depthTarget, nil
}

func viewportFor(state *devstate.State) raster.Viewport {
	if state.Dynamic.HasViewport {
		vp := state.Dynamic.Viewport
		return raster.Viewport{X: int(vp.X), Y: int(vp.Y), Width: int(vp.Width), Height: int(vp.Height), MinDepth: 0, MaxDepth: 1}
	}
	ra := state.RenderArea
	return raster.Viewport{X: int(ra.X), Y: int(ra.Y), Width: int(ra.Width), Height: int(ra.Height), MinDepth: 0, MaxDepth: 1}
}

// --- Draw ---

type drawCmd struct {
	firstVertex   uint32
	vertexCount   uint32
	firstInstance uint32
	instanceCount uint32
}

func (c *drawCmd) Kind() CmdKind { return CmdDraw }

func (c *drawCmd) exec(r *replayer) error {
	bs := &r.state.Graphics
	if bs.GraphicsPipeline == nil {
		return fmt.Errorf("%w: Draw with no bound graphics pipeline", ErrInvalidState)
	}
	uniforms, err := resolveUniforms(r.state, types.BindGraphics)
	if err != nil {
		return err
	}
	colorTargets, depthTarget, err := subpassTargets(r.state)
	if err != nil {
		return err
	}
	indices := make([]uint32, c.vertexCount)
	for i := range indices {
		indices[i] = c.firstVertex + uint32(i)
	}
	return raster.Draw(raster.DrawParams{
		Pipeline:         bs.GraphicsPipeline,
		VertexBuffers:    r.state.VertexBuffers[:],
		Uniforms:         uniforms,
		Viewport:         viewportFor(r.state),
		Scissor:          r.state.Dynamic.Scissor,
		HasScissor:       r.state.Dynamic.HasScissor,
		ColorTargets:     colorTargets,
		DepthTarget:      depthTarget,
		StencilRef:       r.state.Dynamic.StencilRef,
		BlendConstant:    r.state.Dynamic.BlendConstant,
		HasBlendConstant: r.state.Dynamic.HasBlendConstant,
		VertexIndices:    indices,
		FirstInstance:    c.firstInstance,
		InstanceCount:    c.instanceCount,
	})
}

// CmdDraw assembles vertexCount vertices starting at firstVertex into
// triangles and rasterizes instanceCount instances starting at
// firstInstance.
func (cb *CmdBuffer) CmdDraw(firstVertex, vertexCount, firstInstance, instanceCount uint32) error {
	if !cb.insideRenderPass {
		return ErrInvalidRenderPass
	}
	return cb.record(&drawCmd{firstVertex: firstVertex, vertexCount: vertexCount, firstInstance: firstInstance, instanceCount: instanceCount})
}

// --- DrawIndexed ---

type drawIndexedCmd struct {
	firstIndex    uint32
	indexCount    uint32
	vertexOffset  int32
	firstInstance uint32
	instanceCount uint32
}

func (c *drawIndexedCmd) Kind() CmdKind { return CmdDrawIndexed }

func decodeIndices(state *devstate.State, firstIndex, count uint32) ([]uint32, error) {
	ib := state.IndexBuffer
	if ib.Buffer == nil {
		return nil, fmt.Errorf("%w: DrawIndexed with no bound index buffer", ErrInvalidState)
	}
	stride := ib.Format.Stride()
	byteOff := ib.Offset + int64(firstIndex)*stride
	raw, err := ib.Buffer.Data(byteOff, int64(count)*stride)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, count)
	for i := range out {
		switch stride {
		case 1:
			out[i] = uint32(raw[i])
		case 2:
			out[i] = uint32(binary.LittleEndian.Uint16(raw[i*2:]))
		case 4:
			out[i] = binary.LittleEndian.Uint32(raw[i*4:])
		}
	}
	return out, nil
}

func (c *drawIndexedCmd) exec(r *replayer) error {
	bs := &r.state.Graphics
	if bs.GraphicsPipeline == nil {
		return fmt.Errorf("%w: DrawIndexed with no bound graphics pipeline", ErrInvalidState)
	}
	rawIndices, err := decodeIndices(r.state, c.firstIndex, c.indexCount)
	if err != nil {
		return err
	}
	indices := make([]uint32, len(rawIndices))
	for i, idx := range rawIndices {
		indices[i] = uint32(int64(idx) + int64(c.vertexOffset))
	}

	uniforms, err := resolveUniforms(r.state, types.BindGraphics)
	if err != nil {
		return err
	}
	colorTargets, depthTarget, err := subpassTargets(r.state)
	if err != nil {
		return err
	}
	return raster.Draw(raster.DrawParams{
		Pipeline:         bs.GraphicsPipeline,
		VertexBuffers:    r.state.VertexBuffers[:],
		Uniforms:         uniforms,
		Viewport:         viewportFor(r.state),
		Scissor:          r.state.Dynamic.Scissor,
		HasScissor:       r.state.Dynamic.HasScissor,
		ColorTargets:     colorTargets,
		DepthTarget:      depthTarget,
		StencilRef:       r.state.Dynamic.StencilRef,
		BlendConstant:    r.state.Dynamic.BlendConstant,
		HasBlendConstant: r.state.Dynamic.HasBlendConstant,
		VertexIndices:    indices,
		FirstInstance:    c.firstInstance,
		InstanceCount:    c.instanceCount,
	})
}

// CmdDrawIndexed draws indexCount indices from the bound index buffer
// starting at firstIndex, adding vertexOffset to each decoded index
// before vertex fetch.
func (cb *CmdBuffer) CmdDrawIndexed(firstIndex, indexCount uint32, vertexOffset int32, firstInstance, instanceCount uint32) error {
	if !cb.insideRenderPass {
		return ErrInvalidRenderPass
	}
	return cb.record(&drawIndexedCmd{firstIndex: firstIndex, indexCount: indexCount, vertexOffset: vertexOffset, firstInstance: firstInstance, instanceCount: instanceCount})
}

// --- Dispatch ---

type dispatchCmd struct {
	groupCountX, groupCountY, groupCountZ uint32
}

func (c *dispatchCmd) Kind() CmdKind { return CmdDispatch }

func (c *dispatchCmd) exec(r *replayer) error {
	bs := &r.state.Compute
	if bs.ComputePipeline == nil {
		return fmt.Errorf("%w: Dispatch with no bound compute pipeline", ErrInvalidState)
	}
	uniforms, err := resolveUniforms(r.state, types.BindCompute)
	if err != nil {
		return err
	}
	return raster.Dispatch(raster.ComputeParams{
		Pipeline:    bs.ComputePipeline,
		Uniforms:    uniforms,
		GroupCountX: c.groupCountX,
		GroupCountY: c.groupCountY,
		GroupCountZ: c.groupCountZ,
	})
}

// CmdDispatch invokes the bound compute pipeline's entry point once per
// work-group in the (x,y,z) grid. Dispatch must not be recorded between
// BeginRenderPass/EndRenderPass.
func (cb *CmdBuffer) CmdDispatch(groupCountX, groupCountY, groupCountZ uint32) error {
	if cb.insideRenderPass {
		return fmt.Errorf("%w: Dispatch recorded inside a render pass", ErrInvalidRenderPass)
	}
	return cb.record(&dispatchCmd{groupCountX: groupCountX, groupCountY: groupCountY, groupCountZ: groupCountZ})
}

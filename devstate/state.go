package devstate

import (
	"github.com/vkcpu/vkcpu/image"
	"github.com/vkcpu/vkcpu/types"
)

// PipelineBindState is the per-bind-point state a command buffer
// replays commands against: the bound pipeline, descriptor sets (with
// their last-applied dynamic offsets) and push constants. Vulkan keeps
// one of these per VK_PIPELINE_BIND_POINT; this driver only has
// Graphics and Compute, so State keeps exactly two.
type PipelineBindState struct {
	GraphicsPipeline *GraphicsPipeline
	ComputePipeline  *ComputePipeline

	DescriptorSets [types.MaxBoundSets]*DescriptorSet
	DynamicOffsets [types.MaxBoundSets]map[uint32]int64
	PushConstants  [256]byte
}

// VertexBufferBinding is one slot of the currently bound vertex buffers.
type VertexBufferBinding struct {
	Buffer *image.Buffer
	Offset int64
}

// IndexBufferBinding is the currently bound index buffer.
type IndexBufferBinding struct {
	Buffer *image.Buffer
	Offset int64
	Format types.IndexFormat
}

// DynamicState holds the pipeline state a command buffer can override
// per-draw without rebuilding the pipeline object, mirroring Vulkan's
// VK_DYNAMIC_STATE_* viewport/scissor/blend-constant/stencil-reference
// set.
type DynamicState struct {
	Viewport         types.Rect2D
	Scissor          types.Rect2D
	BlendConstant    [4]float32
	StencilRef       uint32
	DepthBoundsMin   float32
	DepthBoundsMax   float32
	HasViewport      bool
	HasScissor       bool
	HasBlendConstant bool
}

// State is the complete mutable device-side state a command buffer's
// commands read and write as they replay, the CPU analogue of bound
// GPU register state. The caller passes a State to
// cmdbuf.CmdBuffer.Submit, which replays the buffer's commands against
// it; Submit does not reset or discard it afterwards.
type State struct {
	Graphics PipelineBindState
	Compute  PipelineBindState

	VertexBuffers [types.MaxVertexBindings]VertexBufferBinding
	IndexBuffer   IndexBufferBinding

	Dynamic DynamicState

	CurrentRenderPass  *RenderPass
	CurrentFramebuffer *Framebuffer
	CurrentSubpass     uint32
	ClearValues        []ClearValue
	RenderArea         types.Rect2D
}

// New returns a freshly zeroed device state, the state a command buffer
// begins replay with.
func New() *State {
	return &State{}
}

// BindState returns the PipelineBindState for bp.
func (s *State) BindState(bp types.BindPoint) *PipelineBindState {
	if bp == types.BindCompute {
		return &s.Compute
	}
	return &s.Graphics
}

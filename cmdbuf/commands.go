package cmdbuf

import (
	"fmt"

	"github.com/vkcpu/vkcpu/devstate"
	"github.com/vkcpu/vkcpu/image"
	"github.com/vkcpu/vkcpu/types"
)

// CmdKind tags a recorded Command. The executor dispatches through
// each record's exec method; keeping a Kind() accessor alongside the
// typed struct lets the debug-output path label a command without a
// type switch of its own.
type CmdKind uint8

const (
	CmdBindPipeline CmdKind = iota
	CmdBindDescriptorSets
	CmdBindVertexBuffers
	CmdBindIndexBuffer
	CmdSetViewport
	CmdSetScissor
	CmdSetBlendConstant
	CmdSetDepthBounds
	CmdSetStencilReference
	CmdPushConstants
	CmdPushDescriptorSet
	CmdBeginRenderPass
	CmdEndRenderPass
	CmdCopyBuffer
	CmdCopyImage
	CmdCopyBufferToImage
	CmdCopyImageToBuffer
	CmdBlitImage
	CmdClearColorImage
	CmdClearDepthStencilImage
	CmdClearAttachments
	CmdDraw
	CmdDrawIndexed
	CmdDispatch
	CmdPipelineBarrier
	CmdSetEvent
	CmdResetEvent
	CmdWaitEvents
	CmdExecuteCommands
)

// replayer is the per-submission context a Command's exec method
// mutates, the CPU analogue of the register state a real command
// processor would update in place.
type replayer struct {
	state *devstate.State
	debug DebugSink
	depth int
}

// Command is one recorded operation. Records copy their input arrays
// eagerly at record time, never aliasing caller memory.
type Command interface {
	Kind() CmdKind
	exec(r *replayer) error
}

// --- BindPipeline ---

type bindPipelineCmd struct {
	bindPoint types.BindPoint
	graphics  *devstate.GraphicsPipeline
	compute   *devstate.ComputePipeline
}

func (c *bindPipelineCmd) Kind() CmdKind { return CmdBindPipeline }

func (c *bindPipelineCmd) exec(r *replayer) error {
	bs := r.state.BindState(c.bindPoint)
	if c.bindPoint == types.BindCompute {
		bs.ComputePipeline = c.compute
	} else {
		bs.GraphicsPipeline = c.graphics
	}
	return nil
}

// CmdBindPipeline installs gp into the graphics bind point's slot.
func (cb *CmdBuffer) CmdBindPipeline(gp *devstate.GraphicsPipeline) error {
	return cb.record(&bindPipelineCmd{bindPoint: types.BindGraphics, graphics: gp})
}

// CmdBindComputePipeline installs cp into the compute bind point's slot.
func (cb *CmdBuffer) CmdBindComputePipeline(cp *devstate.ComputePipeline) error {
	return cb.record(&bindPipelineCmd{bindPoint: types.BindCompute, compute: cp})
}

// --- BindDescriptorSets ---

type bindDescriptorSetsCmd struct {
	bindPoint      types.BindPoint
	firstSet       uint32
	sets           []*devstate.DescriptorSet
	dynamicOffsets []int64
}

func (c *bindDescriptorSetsCmd) Kind() CmdKind { return CmdBindDescriptorSets }

func (c *bindDescriptorSetsCmd) exec(r *replayer) error {
	bs := r.state.BindState(c.bindPoint)
	offsetIdx := 0
	for i, set := range c.sets {
		slot := c.firstSet + uint32(i)
		if int(slot) >= len(bs.DescriptorSets) {
			return fmt.Errorf("%w: descriptor set slot %d out of range", ErrUnsupported, slot)
		}
		bs.DescriptorSets[slot] = set
		dyn := make(map[uint32]int64)
		if set != nil {
			for _, b := range set.Layout.Bindings {
				if !b.HasDynamicOffset {
					continue
				}
				if offsetIdx >= len(c.dynamicOffsets) {
					return fmt.Errorf("%w: need offset for binding %d, only %d supplied", ErrDynamicOffsetCount, b.Binding, len(c.dynamicOffsets))
				}
				dyn[b.Binding] = c.dynamicOffsets[offsetIdx]
				offsetIdx++
			}
		}
		bs.DynamicOffsets[slot] = dyn
	}
	if offsetIdx != len(c.dynamicOffsets) {
		return fmt.Errorf("%w: consumed %d of %d dynamic offsets", ErrDynamicOffsetCount, offsetIdx, len(c.dynamicOffsets))
	}
	return nil
}

// CmdBindDescriptorSets installs each of sets into slot first+i,
// consuming dynamicOffsets in binding order for every dynamic binding
// across the sets. Every supplied offset must be consumed.
func (cb *CmdBuffer) CmdBindDescriptorSets(bp types.BindPoint, first uint32, sets []*devstate.DescriptorSet, dynamicOffsets []int64) error {
	setsCopy := append([]*devstate.DescriptorSet(nil), sets...)
	offsCopy := append([]int64(nil), dynamicOffsets...)
	return cb.record(&bindDescriptorSetsCmd{bindPoint: bp, firstSet: first, sets: setsCopy, dynamicOffsets: offsCopy})
}

// --- BindVertexBuffers ---

type bindVertexBuffersCmd struct {
	firstBinding uint32
	buffers      []*image.Buffer
	offsets      []int64
}

func (c *bindVertexBuffersCmd) Kind() CmdKind { return CmdBindVertexBuffers }

func (c *bindVertexBuffersCmd) exec(r *replayer) error {
	for i, buf := range c.buffers {
		slot := c.firstBinding + uint32(i)
		if int(slot) >= len(r.state.VertexBuffers) {
			return fmt.Errorf("%w: vertex binding %d out of range", ErrUnsupported, slot)
		}
		r.state.VertexBuffers[slot] = devstate.VertexBufferBinding{Buffer: buf, Offset: c.offsets[i]}
	}
	return nil
}

// CmdBindVertexBuffers installs each buffer/offset pair at slot
// first+i in the vertex-binding table.
func (cb *CmdBuffer) CmdBindVertexBuffers(first uint32, buffers []*image.Buffer, offsets []int64) error {
	if len(buffers) != len(offsets) {
		return fmt.Errorf("%w: %d buffers, %d offsets", ErrUnsupported, len(buffers), len(offsets))
	}
	return cb.record(&bindVertexBuffersCmd{
		firstBinding: first,
		buffers:      append([]*image.Buffer(nil), buffers...),
		offsets:      append([]int64(nil), offsets...),
	})
}

// --- BindIndexBuffer ---

type bindIndexBufferCmd struct {
	buffer *image.Buffer
	offset int64
	format types.IndexFormat
}

func (c *bindIndexBufferCmd) Kind() CmdKind { return CmdBindIndexBuffer }

func (c *bindIndexBufferCmd) exec(r *replayer) error {
	r.state.IndexBuffer = devstate.IndexBufferBinding{Buffer: c.buffer, Offset: c.offset, Format: c.format}
	return nil
}

// CmdBindIndexBuffer installs (buffer, offset, format) as the bound
// index buffer.
func (cb *CmdBuffer) CmdBindIndexBuffer(buf *image.Buffer, offset int64, format types.IndexFormat) error {
	return cb.record(&bindIndexBufferCmd{buffer: buf, offset: offset, format: format})
}

// --- dynamic state ---

type setViewportCmd struct{ viewport types.Rect2D }

func (c *setViewportCmd) Kind() CmdKind { return CmdSetViewport }
func (c *setViewportCmd) exec(r *replayer) error {
	r.state.Dynamic.Viewport = c.viewport
	r.state.Dynamic.HasViewport = true
	return nil
}

// CmdSetViewport overwrites the dynamic viewport state.
func (cb *CmdBuffer) CmdSetViewport(vp types.Rect2D) error {
	return cb.record(&setViewportCmd{viewport: vp})
}

type setScissorCmd struct{ scissor types.Rect2D }

func (c *setScissorCmd) Kind() CmdKind { return CmdSetScissor }
func (c *setScissorCmd) exec(r *replayer) error {
	r.state.Dynamic.Scissor = c.scissor
	r.state.Dynamic.HasScissor = true
	return nil
}

// CmdSetScissor overwrites the dynamic scissor state.
func (cb *CmdBuffer) CmdSetScissor(rect types.Rect2D) error {
	return cb.record(&setScissorCmd{scissor: rect})
}

type setBlendConstantCmd struct{ constant [4]float32 }

func (c *setBlendConstantCmd) Kind() CmdKind { return CmdSetBlendConstant }
func (c *setBlendConstantCmd) exec(r *replayer) error {
	r.state.Dynamic.BlendConstant = c.constant
	r.state.Dynamic.HasBlendConstant = true
	return nil
}

// CmdSetBlendConstant overwrites the dynamic blend constant.
func (cb *CmdBuffer) CmdSetBlendConstant(c [4]float32) error {
	return cb.record(&setBlendConstantCmd{constant: c})
}

type setDepthBoundsCmd struct{ min, max float32 }

func (c *setDepthBoundsCmd) Kind() CmdKind { return CmdSetDepthBounds }
func (c *setDepthBoundsCmd) exec(r *replayer) error {
	r.state.Dynamic.DepthBoundsMin = c.min
	r.state.Dynamic.DepthBoundsMax = c.max
	return nil
}

// CmdSetDepthBounds overwrites the dynamic depth-bounds range. No
// pipeline state enables the depth-bounds test, so the range is
// recorded but never consulted by the rasterizer.
func (cb *CmdBuffer) CmdSetDepthBounds(min, max float32) error {
	return cb.record(&setDepthBoundsCmd{min: min, max: max})
}

type setStencilReferenceCmd struct{ ref uint32 }

func (c *setStencilReferenceCmd) Kind() CmdKind { return CmdSetStencilReference }
func (c *setStencilReferenceCmd) exec(r *replayer) error {
	r.state.Dynamic.StencilRef = c.ref
	return nil
}

// CmdSetStencilReference overwrites the dynamic stencil reference.
func (cb *CmdBuffer) CmdSetStencilReference(ref uint32) error {
	return cb.record(&setStencilReferenceCmd{ref: ref})
}

// --- PushConstants ---

type pushConstantsCmd struct {
	offset uint32
	data   []byte
}

func (c *pushConstantsCmd) Kind() CmdKind { return CmdPushConstants }

func (c *pushConstantsCmd) exec(r *replayer) error {
	end := c.offset + uint32(len(c.data))
	if end > uint32(len(r.state.Graphics.PushConstants)) {
		return fmt.Errorf("%w: push constants [%d,%d) exceeds region", ErrUnsupported, c.offset, end)
	}
	copy(r.state.Graphics.PushConstants[c.offset:end], c.data)
	copy(r.state.Compute.PushConstants[c.offset:end], c.data)
	return nil
}

// CmdPushConstants copies data into the device's push-constant region
// at [offset, offset+len(data)). The region is shared across bind
// points: a real driver scopes it to pipeline-layout-compatible
// stages, this driver keeps one device-wide byte array visible to
// both.
func (cb *CmdBuffer) CmdPushConstants(offset uint32, data []byte) error {
	if offset+uint32(len(data)) > types.DefaultLimits().MaxPushConstantSize {
		return fmt.Errorf("%w: push constants exceed MAX_PUSH_CONSTANTS_SIZE", ErrUnsupported)
	}
	return cb.record(&pushConstantsCmd{offset: offset, data: append([]byte(nil), data...)})
}

// --- PushDescriptorSet ---

type pushDescriptorSetCmd struct {
	bindPoint types.BindPoint
	set       uint32
	writes    []devstate.Write
}

func (c *pushDescriptorSetCmd) Kind() CmdKind { return CmdPushDescriptorSet }

func writeBindingType(w devstate.Write) devstate.BindingType {
	switch w.Resource.(type) {
	case devstate.ImageResource:
		return devstate.BindingSampledImage
	default:
		return devstate.BindingUniformBuffer
	}
}

func (c *pushDescriptorSetCmd) exec(r *replayer) error {
	bs := r.state.BindState(c.bindPoint)
	if int(c.set) >= len(bs.DescriptorSets) {
		return fmt.Errorf("%w: push descriptor set %d out of range", ErrUnsupported, c.set)
	}
	ds := bs.DescriptorSets[c.set]
	if ds == nil {
		ds = devstate.NewDescriptorSet(&devstate.DescriptorSetLayout{})
		bs.DescriptorSets[c.set] = ds
	}
	for _, w := range c.writes {
		present := false
		for _, b := range ds.Layout.Bindings {
			if b.Binding == w.Binding {
				present = true
				break
			}
		}
		if !present {
			ds.Layout.Bindings = append(ds.Layout.Bindings, devstate.LayoutBinding{Binding: w.Binding, Type: writeBindingType(w)})
		}
	}
	return ds.Update(c.writes)
}

// CmdPushDescriptorSet behaves as if BindDescriptorSets were invoked
// with a lazily-created set owned by the device, then merges writes
// into it.
func (cb *CmdBuffer) CmdPushDescriptorSet(bp types.BindPoint, set uint32, writes []devstate.Write) error {
	return cb.record(&pushDescriptorSetCmd{bindPoint: bp, set: set, writes: append([]devstate.Write(nil), writes...)})
}

// --- barriers / events ---

type noopCmd struct{ kind CmdKind }

func (c *noopCmd) Kind() CmdKind          { return c.kind }
func (c *noopCmd) exec(r *replayer) error { return nil }

// CmdPipelineBarrier is a sequence point only; commands replay
// sequentially on one submission, so barriers have no additional
// observable effect.
func (cb *CmdBuffer) CmdPipelineBarrier() error { return cb.record(&noopCmd{kind: CmdPipelineBarrier}) }

// CmdSetEvent is a no-op; see CmdPipelineBarrier.
func (cb *CmdBuffer) CmdSetEvent() error { return cb.record(&noopCmd{kind: CmdSetEvent}) }

// CmdResetEvent is a no-op; see CmdPipelineBarrier.
func (cb *CmdBuffer) CmdResetEvent() error { return cb.record(&noopCmd{kind: CmdResetEvent}) }

// CmdWaitEvents is a no-op; see CmdPipelineBarrier.
func (cb *CmdBuffer) CmdWaitEvents() error { return cb.record(&noopCmd{kind: CmdWaitEvents}) }

// --- ExecuteCommands ---

type executeCommandsCmd struct {
	secondaries []*CmdBuffer
}

func (c *executeCommandsCmd) Kind() CmdKind { return CmdExecuteCommands }

func (c *executeCommandsCmd) exec(r *replayer) error {
	if r.depth > 0 {
		return fmt.Errorf("%w: secondary command buffers cannot execute further secondaries", ErrUnsupported)
	}
	for _, sec := range c.secondaries {
		if sec.state != StateExecutable && sec.state != StatePending {
			return fmt.Errorf("%w: secondary buffer not executable", ErrInvalidState)
		}
		sub := &replayer{state: r.state, debug: r.debug, depth: r.depth + 1}
		for _, cmd := range sec.commands {
			if sub.debug != nil {
				sub.debug.Record(labelFor(cmd.Kind()))
			}
			if err := cmd.exec(sub); err != nil {
				return err
			}
		}
	}
	return nil
}

// CmdExecuteCommands inlines each secondary buffer's recorded commands
// at this point in the primary buffer's order. Only valid to record on
// a primary buffer.
func (cb *CmdBuffer) CmdExecuteCommands(secondaries []*CmdBuffer) error {
	if cb.level != LevelPrimary {
		return fmt.Errorf("%w: ExecuteCommands recorded on a secondary buffer", ErrUnsupported)
	}
	for _, s := range secondaries {
		if s.level != LevelSecondary {
			return fmt.Errorf("%w: ExecuteCommands argument is not a secondary buffer", ErrUnsupported)
		}
	}
	return cb.record(&executeCommandsCmd{secondaries: append([]*CmdBuffer(nil), secondaries...)})
}

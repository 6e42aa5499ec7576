package cmdbuf

import (
	"fmt"

	"github.com/vkcpu/vkcpu/devstate"
)

type beginRenderPassCmd struct {
	info devstate.RenderPassBeginInfo
}

func (c *beginRenderPassCmd) Kind() CmdKind { return CmdBeginRenderPass }

func (c *beginRenderPassCmd) exec(r *replayer) error {
	fb := c.info.Framebuffer
	r.state.CurrentRenderPass = fb.RenderPass
	r.state.CurrentFramebuffer = fb
	r.state.CurrentSubpass = 0
	r.state.ClearValues = c.info.ClearValues
	r.state.RenderArea = c.info.RenderArea

	sp := fb.RenderPass.Subpasses[0]
	for _, attIdx := range sp.ColorAttachments {
		att := fb.RenderPass.Attachments[attIdx]
		if att.LoadOp != devstate.LoadOpClear {
			continue
		}
		if int(attIdx) >= len(c.info.ClearValues) {
			return fmt.Errorf("%w: missing clear value for attachment %d", ErrInvalidRenderPass, attIdx)
		}
		if err := clearColorView(fb.Views[attIdx], c.info.ClearValues[attIdx].Color); err != nil {
			return err
		}
	}
	if sp.DepthStencilAttachment != nil {
		attIdx := *sp.DepthStencilAttachment
		att := fb.RenderPass.Attachments[attIdx]
		clearDepth := att.LoadOp == devstate.LoadOpClear
		clearStencil := att.StencilLoadOp == devstate.LoadOpClear
		if clearDepth || clearStencil {
			if int(attIdx) >= len(c.info.ClearValues) {
				return fmt.Errorf("%w: missing clear value for attachment %d", ErrInvalidRenderPass, attIdx)
			}
			cv := c.info.ClearValues[attIdx]
			if err := clearDepthStencilView(fb.Views[attIdx], clearDepth, cv.Depth, clearStencil, cv.Stencil); err != nil {
				return err
			}
		}
	}
	return nil
}

// CmdBeginRenderPass begins rendering into info.Framebuffer at subpass
// 0, filling every mip level and layer of each attachment whose load
// op is LoadOpClear. Recording BeginRenderPass while already inside a
// render pass is rejected.
func (cb *CmdBuffer) CmdBeginRenderPass(info devstate.RenderPassBeginInfo) error {
	if cb.insideRenderPass {
		return fmt.Errorf("%w: nested BeginRenderPass", ErrInvalidRenderPass)
	}
	if err := cb.record(&beginRenderPassCmd{info: info}); err != nil {
		return err
	}
	cb.insideRenderPass = true
	return nil
}

type endRenderPassCmd struct{}

func (c *endRenderPassCmd) Kind() CmdKind { return CmdEndRenderPass }

func (c *endRenderPassCmd) exec(r *replayer) error {
	r.state.CurrentRenderPass = nil
	r.state.CurrentFramebuffer = nil
	r.state.CurrentSubpass = 0
	r.state.ClearValues = nil
	return nil
}

// CmdEndRenderPass ends the current render pass. EndRenderPass without
// a matching BeginRenderPass is rejected.
func (cb *CmdBuffer) CmdEndRenderPass() error {
	if !cb.insideRenderPass {
		return fmt.Errorf("%w: EndRenderPass without BeginRenderPass", ErrInvalidRenderPass)
	}
	if err := cb.record(&endRenderPassCmd{}); err != nil {
		return err
	}
	cb.insideRenderPass = false
	return nil
}

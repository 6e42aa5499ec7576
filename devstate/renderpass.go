// Package devstate holds the device-side state a command buffer replays
// against: render passes, framebuffers, descriptor sets and pipelines.
package devstate

import (
	"errors"
	"fmt"

	"github.com/vkcpu/vkcpu/image"
	"github.com/vkcpu/vkcpu/types"
)

// ErrInvalidRenderPass reports a malformed render pass or framebuffer
// description.
var ErrInvalidRenderPass = errors.New("devstate: invalid render pass")

// LoadOp selects what happens to an attachment's contents at the start
// of a subpass.
type LoadOp uint8

const (
	LoadOpLoad LoadOp = iota
	LoadOpClear
	LoadOpDontCare
)

// StoreOp selects whether an attachment's contents survive the end of
// a subpass.
type StoreOp uint8

const (
	StoreOpStore StoreOp = iota
	StoreOpDontCare
)

// ClearValue holds the clear color or depth/stencil value used when an
// attachment's LoadOp is LoadOpClear.
type ClearValue struct {
	Color   [4]float32
	Depth   float32
	Stencil uint32
}

// AttachmentDescription describes one attachment slot of a RenderPass.
type AttachmentDescription struct {
	Format         types.PixelFormat
	LoadOp         LoadOp
	StoreOp        StoreOp
	StencilLoadOp  LoadOp
	StencilStoreOp StoreOp
}

// Subpass names which attachment indices it reads/writes: a set of
// color attachment references plus an optional depth/stencil reference.
type Subpass struct {
	ColorAttachments       []uint32
	DepthStencilAttachment *uint32
}

// RenderPass is an immutable description of attachments and subpasses,
// created once and bound at BeginRenderPass.
type RenderPass struct {
	Attachments []AttachmentDescription
	Subpasses   []Subpass
}

// NewRenderPass validates and constructs a RenderPass.
func NewRenderPass(attachments []AttachmentDescription, subpasses []Subpass) (*RenderPass, error) {
	if len(subpasses) == 0 {
		return nil, fmt.Errorf("%w: render pass has no subpasses", ErrInvalidRenderPass)
	}
	for _, sp := range subpasses {
		for _, idx := range sp.ColorAttachments {
			if int(idx) >= len(attachments) {
				return nil, fmt.Errorf("%w: color attachment index %d out of range", ErrInvalidRenderPass, idx)
			}
		}
		if sp.DepthStencilAttachment != nil && int(*sp.DepthStencilAttachment) >= len(attachments) {
			return nil, fmt.Errorf("%w: depth/stencil attachment index %d out of range", ErrInvalidRenderPass, *sp.DepthStencilAttachment)
		}
	}
	return &RenderPass{Attachments: attachments, Subpasses: subpasses}, nil
}

// Framebuffer binds concrete image views to a RenderPass's attachment
// slots, one view per slot.
type Framebuffer struct {
	RenderPass *RenderPass
	Views      []*image.View
	Width      uint32
	Height     uint32
	Layers     uint32
}

// NewFramebuffer validates that views satisfies rp's attachment count and
// that every view's format matches its slot.
func NewFramebuffer(rp *RenderPass, views []*image.View, width, height, layers uint32) (*Framebuffer, error) {
	if len(views) != len(rp.Attachments) {
		return nil, fmt.Errorf("%w: framebuffer has %d views, render pass wants %d", ErrInvalidRenderPass, len(views), len(rp.Attachments))
	}
	for i, v := range views {
		if v.Image.Format() != rp.Attachments[i].Format {
			return nil, fmt.Errorf("%w: attachment %d format mismatch", ErrInvalidRenderPass, i)
		}
	}
	return &Framebuffer{RenderPass: rp, Views: views, Width: width, Height: height, Layers: layers}, nil
}

// RenderPassBeginInfo is the per-BeginRenderPass argument bundle: which
// framebuffer, the render area and the clear values for attachments
// whose LoadOp is LoadOpClear. Rendering always starts at subpass 0.
type RenderPassBeginInfo struct {
	Framebuffer *Framebuffer
	RenderArea  types.Rect2D
	ClearValues []ClearValue
}

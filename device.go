package vkcpu

import (
	"github.com/vkcpu/vkcpu/cmdbuf"
	"github.com/vkcpu/vkcpu/devstate"
	"github.com/vkcpu/vkcpu/format"
	"github.com/vkcpu/vkcpu/image"
	"github.com/vkcpu/vkcpu/types"
)

// Device is the CPU analogue of a VkDevice: a factory for memory,
// buffers, images, descriptor/render-pass/pipeline objects and command
// buffers, plus a Submit entry point that replays a command buffer
// against a device state value.
//
// Device holds no mutable state of its own beyond the advertised
// limits; all mutable state lives in the devstate.State a caller
// creates and threads through Submit, so a Device is safe to share
// across goroutines that each own their own State and CmdBuffers.
type Device struct {
	limits types.Limits
}

// Limits reports this device's implementation limits.
func (dv *Device) Limits() types.Limits { return dv.limits }

// FormatInfo returns the immutable format-table descriptor for f, the
// CPU analogue of vkGetPhysicalDeviceFormatProperties' format lookup.
func (dv *Device) FormatInfo(f types.PixelFormat) format.Descriptor {
	return format.Info(f)
}

// FormatFeatures returns the linear, optimal and buffer capability
// masks the device advertises for f.
func (dv *Device) FormatFeatures(f types.PixelFormat) format.Features {
	return format.FormatFeatures(f)
}

// AllocateMemory allocates size bytes of zeroed host memory that
// buffers and images can be bound to, the CPU analogue of
// vkAllocateMemory.
func (dv *Device) AllocateMemory(size int64) *image.Memory {
	return image.NewMemory(size)
}

// NewBuffer creates an unbound buffer of the given size and usage.
func (dv *Device) NewBuffer(size int64, usage types.Usage) *image.Buffer {
	return image.NewBuffer(size, usage)
}

// NewImage creates an unbound image with the given format, extent,
// array layer and mip level counts.
func (dv *Device) NewImage(format types.PixelFormat, extent types.Extent3D, layers, mips uint32, usage types.Usage) (*image.Image, error) {
	return image.NewImage(format, extent, layers, mips, usage)
}

// NewState returns a freshly zeroed device state for one command
// buffer submission timeline.
func (dv *Device) NewState() *devstate.State {
	return devstate.New()
}

// NewCmdBuffer returns a command buffer of the given level in
// StateInitial. sink may be nil.
func (dv *Device) NewCmdBuffer(level cmdbuf.Level, sink cmdbuf.DebugSink) *cmdbuf.CmdBuffer {
	return cmdbuf.New(level, sink)
}

// Submit replays cb's recorded commands against state, the CPU
// analogue of vkQueueSubmit followed by an implicit wait (this driver
// has no asynchronous queue: Submit runs to completion before
// returning).
func (dv *Device) Submit(cb *cmdbuf.CmdBuffer, state *devstate.State) error {
	return cb.Submit(state)
}

// Package vkcpu is a from-scratch, software implementation of a
// Vulkan-style installable client driver: command buffer recording and
// replay, a rasterizer/shader runner, and a format-aware pixel codec,
// all executing on the CPU.
//
// # Quick start
//
//	driver := vkcpu.NewDriver()
//	device := driver.CreateDevice()
//	state := device.NewState()
//	cb := device.NewCmdBuffer(cmdbuf.LevelPrimary, nil)
//	cb.Begin(0)
//	// ... record commands ...
//	cb.End()
//	device.Submit(cb, state)
//
// # Layering
//
// Device is a thin factory over four lower packages, in dependency
// order: format (pixel codec), image (buffer/image layout), devstate
// (bound pipeline/descriptor/render-pass state) and cmdbuf (recorded
// command replay). Device does not reimplement a dispatcher, handle
// table or loader trampoline; callers hold Go pointers to the
// resources these packages return directly.
package vkcpu

package vkcpu

import "github.com/vkcpu/vkcpu/types"

// Driver is the entry point for driver operations, the CPU analogue
// of a Vulkan VkInstance/loader pair. It carries no per-submission
// state of its own; all of that lives on the Devices it creates.
type Driver struct {
	limits types.Limits
}

// NewDriver returns a Driver configured with the default implementation
// limits.
func NewDriver() *Driver {
	return &Driver{limits: types.DefaultLimits()}
}

// NewDriverWithLimits returns a Driver configured with custom limits,
// for tests that want to exercise limit-bound error paths.
func NewDriverWithLimits(limits types.Limits) *Driver {
	return &Driver{limits: limits}
}

// Limits reports the implementation limits devices created from this
// driver will report.
func (d *Driver) Limits() types.Limits { return d.limits }

// CreateDevice returns a new Device, the CPU analogue of vkCreateDevice.
// There is no physical-device enumeration step: this driver always
// exposes exactly one device.
func (d *Driver) CreateDevice() *Device {
	return &Device{limits: d.limits}
}

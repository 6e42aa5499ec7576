package types

// Fixed backing-array sizes for per-bind-point state (devstate.State):
// these bound the *compiled-in* capacity of the driver's internal arrays
// and equal the corresponding DefaultLimits() values (MaxBoundDescSets
// and MaxVertexBindings). Limits describe what a device reports; these
// constants fix the array sizes.
const (
	MaxBoundSets      = 8
	MaxVertexBindings = 32
)

// Limits describes implementation limits of the driver: the maximum
// image dimensions, descriptor-set counts, push-constant size and
// similar quantities a device reports and enforces.
type Limits struct {
	MaxImage1D   uint32
	MaxImage2D   uint32
	MaxImage3D   uint32
	MaxImageCube uint32
	MaxLayers    uint32
	MaxMipLevels uint32

	MaxDescriptorSets   int
	MaxBoundDescSets    int
	MaxDynamicOffsets   int
	MaxPushConstantSize uint32

	MaxColorAttachments int
	MaxVertexAttributes int
	MaxVertexBindings   int
	MaxViewports        int

	MaxComputeWorkGroupSize  [3]uint32
	MaxComputeWorkGroupCount [3]uint32
}

// DefaultLimits returns the baseline limits every device supports.
func DefaultLimits() Limits {
	return Limits{
		MaxImage1D:          16384,
		MaxImage2D:          16384,
		MaxImage3D:          2048,
		MaxImageCube:        16384,
		MaxLayers:           2048,
		MaxMipLevels:        15,
		MaxDescriptorSets:   4096,
		MaxBoundDescSets:    8,
		MaxDynamicOffsets:   256,
		MaxPushConstantSize: 256,
		MaxColorAttachments: 8,
		MaxVertexAttributes: 32,
		MaxVertexBindings:   32,
		MaxViewports:        16,

		MaxComputeWorkGroupSize:  [3]uint32{1024, 1024, 64},
		MaxComputeWorkGroupCount: [3]uint32{65535, 65535, 65535},
	}
}

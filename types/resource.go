package types

// Usage is a mask of valid uses for a Buffer or Image.
type Usage uint32

const (
	UShaderRead Usage = 1 << iota
	UShaderWrite
	UShaderConst
	UShaderSample
	UVertexData
	UIndexData
	URenderTarget
	UTransferSrc
	UTransferDst
	UGeneric Usage = 1<<iota - 1
)

// Extent3D is a three-dimensional size in texels.
type Extent3D struct {
	Width, Height, Depth uint32
}

// Offset3D is a three-dimensional integer offset in texels.
type Offset3D struct {
	X, Y, Z int32
}

// Rect2D is an integer screen-space rectangle.
type Rect2D struct {
	X, Y, Width, Height int32
}

// IndexFormat describes the element type of an index buffer.
type IndexFormat uint8

const (
	IndexUint8 IndexFormat = iota
	IndexUint16
	IndexUint32
)

// Stride returns the byte size of one index of this format.
func (f IndexFormat) Stride() int64 {
	switch f {
	case IndexUint8:
		return 1
	case IndexUint16:
		return 2
	case IndexUint32:
		return 4
	default:
		return 0
	}
}

// Topology is the primitive topology used by a graphics pipeline.
// Only TriangleList is implemented by the rasterizer; the others are
// accepted by the type system but rejected at draw time.
type Topology uint8

const (
	TopologyPointList Topology = iota
	TopologyLineList
	TopologyLineStrip
	TopologyTriangleList
	TopologyTriangleStrip
	TopologyTriangleFan
)

// BindPoint selects an independent slot of bound pipeline state.
type BindPoint uint8

const (
	BindGraphics BindPoint = iota
	BindCompute
)

// ShaderStage is a mask of programmable stages a resource is visible to.
type ShaderStage uint32

const (
	StageVertex ShaderStage = 1 << iota
	StageFragment
	StageCompute
)

// CanonicalKind selects which canonical representation a pixel codec
// routine reads or writes.
type CanonicalKind uint8

const (
	CanonicalDepth CanonicalKind = iota
	CanonicalStencil
	CanonicalF32
	CanonicalI32
	CanonicalU32
)

package types

// VertexFormat describes the wire format of one vertex attribute.
type VertexFormat uint8

const (
	VFInt8 VertexFormat = iota
	VFInt8x2
	VFInt8x3
	VFInt8x4
	VFInt16
	VFInt16x2
	VFInt16x3
	VFInt16x4
	VFInt32
	VFInt32x2
	VFInt32x3
	VFInt32x4
	VFUint8
	VFUint8x2
	VFUint8x3
	VFUint8x4
	VFUint16
	VFUint16x2
	VFUint16x3
	VFUint16x4
	VFUint32
	VFUint32x2
	VFUint32x3
	VFUint32x4
	VFFloat32
	VFFloat32x2
	VFFloat32x3
	VFFloat32x4
)

// Size returns the byte size of one value in this format.
func (f VertexFormat) Size() int {
	switch f {
	case VFInt8, VFUint8:
		return 1
	case VFInt8x2, VFUint8x2, VFInt16, VFUint16:
		return 2
	case VFInt8x3, VFUint8x3:
		return 3
	case VFInt8x4, VFUint8x4, VFInt16x2, VFUint16x2, VFInt32, VFUint32, VFFloat32:
		return 4
	case VFInt16x3, VFUint16x3:
		return 6
	case VFInt16x4, VFUint16x4, VFInt32x2, VFUint32x2, VFFloat32x2:
		return 8
	case VFInt32x3, VFUint32x3, VFFloat32x3:
		return 12
	case VFInt32x4, VFUint32x4, VFFloat32x4:
		return 16
	default:
		return 0
	}
}

// Components returns the number of scalar components in this format.
func (f VertexFormat) Components() int {
	switch f {
	case VFInt8, VFInt16, VFInt32, VFUint8, VFUint16, VFUint32, VFFloat32:
		return 1
	case VFInt8x2, VFInt16x2, VFInt32x2, VFUint8x2, VFUint16x2, VFUint32x2, VFFloat32x2:
		return 2
	case VFInt8x3, VFInt16x3, VFInt32x3, VFUint8x3, VFUint16x3, VFUint32x3, VFFloat32x3:
		return 3
	default:
		return 4
	}
}

// VertexAttribute describes a single vertex input, addressed by its
// bound vertex buffer and a shader-visible location. The byte offset of
// vertex v's value is binding.base_offset + binding.stride*v + Offset.
type VertexAttribute struct {
	Location uint32
	Binding  uint32
	Format   VertexFormat
	Offset   uint32
}

// VertexBinding describes one bound vertex buffer's stride and step rate.
type VertexBinding struct {
	Binding     uint32
	Stride      uint32
	PerInstance bool
}

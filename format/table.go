// Package format implements the driver's format table and pixel codec:
// a static per-format descriptor table plus generated get/set routines
// that convert between in-memory encodings and canonical 4-channel
// pixel values.
package format

import "github.com/vkcpu/vkcpu/types"

// InvalidOffset marks a channel as absent: reads of that channel return
// 0 (or 1 for alpha) and writes to it are no-ops.
const InvalidOffset = -1

// NormalLayout describes channel placement for Kind == KindNormal.
// Offsets are in channel (element) units.
type NormalLayout struct {
	RedOffset, GreenOffset, BlueOffset, AlphaOffset int8
}

// PackedLayout describes channel placement for Kind == KindPacked.
// Offsets and widths are in bits, ordered [R, G, B, A].
type PackedLayout struct {
	ChannelOffset [4]uint8
	ChannelBits   [4]uint8
}

// DSLayout describes channel placement for Kind == KindDepthStencil.
// Offsets are in bytes; InvalidOffset marks an absent aspect.
type DSLayout struct {
	DepthOffset, StencilOffset int8
}

// CompressedLayout describes the block shape for Kind == KindCompressed
// or KindPlanar(Samplable).
type CompressedLayout struct {
	BlockWidth, BlockHeight uint8
}

// ChannelMask bits, used for quick channel-presence queries independent
// of the per-kind layout structs.
const (
	ChanRed uint8 = 1 << iota
	ChanGreen
	ChanBlue
	ChanAlpha
	ChanDepth
	ChanStencil
)

// Descriptor is the immutable per-format record. It is a flat struct
// with a Kind discriminator rather than a tagged union, which keeps the
// table a single contiguous array; fields not applicable to a format's
// Kind are left at sentinel values.
type Descriptor struct {
	Kind         types.Kind
	Base         types.BaseType
	ChannelMask  uint8
	TotalSize    int
	ElementSize  int
	Normal       NormalLayout
	Packed       PackedLayout
	DepthStencil DSLayout
	Compressed   CompressedLayout
}

var table = make([]Descriptor, types.Count())

func normal(base types.BaseType, elemSize int, r, g, b, a int8) Descriptor {
	chans := 0
	mask := uint8(0)
	if r != InvalidOffset {
		chans++
		mask |= ChanRed
	}
	if g != InvalidOffset {
		chans++
		mask |= ChanGreen
	}
	if b != InvalidOffset {
		chans++
		mask |= ChanBlue
	}
	if a != InvalidOffset {
		chans++
		mask |= ChanAlpha
	}
	return Descriptor{
		Kind:        types.KindNormal,
		Base:        base,
		ChannelMask: mask,
		TotalSize:   elemSize * chans,
		ElementSize: elemSize,
		Normal:      NormalLayout{RedOffset: r, GreenOffset: g, BlueOffset: b, AlphaOffset: a},
	}
}

func depthStencil(totalSize int, depthOff, stencilOff int8) Descriptor {
	mask := uint8(0)
	if depthOff != InvalidOffset {
		mask |= ChanDepth
	}
	if stencilOff != InvalidOffset {
		mask |= ChanStencil
	}
	return Descriptor{
		Kind:         types.KindDepthStencil,
		Base:         types.BaseUNorm,
		ChannelMask:  mask,
		TotalSize:    totalSize,
		DepthStencil: DSLayout{DepthOffset: depthOff, StencilOffset: stencilOff},
	}
}

func packed(base types.BaseType, totalSize int, off, bits [4]uint8) Descriptor {
	return Descriptor{
		Kind:        types.KindPacked,
		Base:        base,
		ChannelMask: ChanRed | ChanGreen | ChanBlue | ChanAlpha,
		TotalSize:   totalSize,
		Packed:      PackedLayout{ChannelOffset: off, ChannelBits: bits},
	}
}

func compressed(blockBytes int, bw, bh uint8) Descriptor {
	return Descriptor{
		Kind:       types.KindCompressed,
		Base:       types.BaseUNorm,
		TotalSize:  blockBytes,
		Compressed: CompressedLayout{BlockWidth: bw, BlockHeight: bh},
	}
}

func init() {
	I := InvalidOffset

	table[types.FormatR8Unorm] = normal(types.BaseUNorm, 1, 0, int8(I), int8(I), int8(I))
	table[types.FormatR8Snorm] = normal(types.BaseSNorm, 1, 0, int8(I), int8(I), int8(I))
	table[types.FormatR8Uint] = normal(types.BaseUInt, 1, 0, int8(I), int8(I), int8(I))
	table[types.FormatR8Sint] = normal(types.BaseSInt, 1, 0, int8(I), int8(I), int8(I))
	table[types.FormatRG8Unorm] = normal(types.BaseUNorm, 1, 0, 1, int8(I), int8(I))
	table[types.FormatRG8Snorm] = normal(types.BaseSNorm, 1, 0, 1, int8(I), int8(I))
	table[types.FormatRG8Uint] = normal(types.BaseUInt, 1, 0, 1, int8(I), int8(I))
	table[types.FormatRG8Sint] = normal(types.BaseSInt, 1, 0, 1, int8(I), int8(I))
	table[types.FormatRGBA8Unorm] = normal(types.BaseUNorm, 1, 0, 1, 2, 3)
	table[types.FormatRGBA8Snorm] = normal(types.BaseSNorm, 1, 0, 1, 2, 3)
	table[types.FormatRGBA8Uint] = normal(types.BaseUInt, 1, 0, 1, 2, 3)
	table[types.FormatRGBA8Sint] = normal(types.BaseSInt, 1, 0, 1, 2, 3)
	table[types.FormatRGBA8Srgb] = normal(types.BaseSRGB, 1, 0, 1, 2, 3)
	table[types.FormatBGRA8Unorm] = normal(types.BaseUNorm, 1, 2, 1, 0, 3)
	table[types.FormatBGRA8Srgb] = normal(types.BaseSRGB, 1, 2, 1, 0, 3)

	table[types.FormatR16Uint] = normal(types.BaseUInt, 2, 0, int8(I), int8(I), int8(I))
	table[types.FormatR16Sint] = normal(types.BaseSInt, 2, 0, int8(I), int8(I), int8(I))
	table[types.FormatR16Float] = normal(types.BaseSFloat, 2, 0, int8(I), int8(I), int8(I))
	table[types.FormatRG16Uint] = normal(types.BaseUInt, 2, 0, 1, int8(I), int8(I))
	table[types.FormatRG16Sint] = normal(types.BaseSInt, 2, 0, 1, int8(I), int8(I))
	table[types.FormatRG16Float] = normal(types.BaseSFloat, 2, 0, 1, int8(I), int8(I))
	table[types.FormatRGBA16Uint] = normal(types.BaseUInt, 2, 0, 1, 2, 3)
	table[types.FormatRGBA16Sint] = normal(types.BaseSInt, 2, 0, 1, 2, 3)
	table[types.FormatRGBA16Float] = normal(types.BaseSFloat, 2, 0, 1, 2, 3)

	table[types.FormatR32Uint] = normal(types.BaseUInt, 4, 0, int8(I), int8(I), int8(I))
	table[types.FormatR32Sint] = normal(types.BaseSInt, 4, 0, int8(I), int8(I), int8(I))
	table[types.FormatR32Float] = normal(types.BaseSFloat, 4, 0, int8(I), int8(I), int8(I))
	table[types.FormatRG32Uint] = normal(types.BaseUInt, 4, 0, 1, int8(I), int8(I))
	table[types.FormatRG32Sint] = normal(types.BaseSInt, 4, 0, 1, int8(I), int8(I))
	table[types.FormatRG32Float] = normal(types.BaseSFloat, 4, 0, 1, int8(I), int8(I))
	table[types.FormatRGBA32Uint] = normal(types.BaseUInt, 4, 0, 1, 2, 3)
	table[types.FormatRGBA32Sint] = normal(types.BaseSInt, 4, 0, 1, 2, 3)
	table[types.FormatRGBA32Float] = normal(types.BaseSFloat, 4, 0, 1, 2, 3)

	// Packed formats: bit offsets/widths follow the published
	// B10G11R11_UFLOAT / E5B9G9R9 / A2B10G10R10 layouts.
	// B10G11R11 packs R in bits [0,11), G in [11,22), B in [22,32).
	table[types.FormatB10G11R11Ufloat] = packed(types.BaseUFloat, 4,
		[4]uint8{0, 11, 22, 0}, [4]uint8{11, 11, 10, 0})
	table[types.FormatE5B9G9R9Ufloat] = packed(types.BaseUFloat, 4,
		[4]uint8{0, 9, 18, 27}, [4]uint8{9, 9, 9, 5})
	table[types.FormatRGB10A2Unorm] = packed(types.BaseUNorm, 4,
		[4]uint8{0, 10, 20, 30}, [4]uint8{10, 10, 10, 2})
	table[types.FormatRGB10A2Uint] = packed(types.BaseUInt, 4,
		[4]uint8{0, 10, 20, 30}, [4]uint8{10, 10, 10, 2})

	// Depth/stencil.
	table[types.FormatD16Unorm] = depthStencil(2, 0, int8(I))
	table[types.FormatX8D24Unorm] = depthStencil(4, 0, int8(I))
	table[types.FormatD32Float] = depthStencil(4, 0, int8(I))
	table[types.FormatS8Uint] = depthStencil(1, int8(I), 0)
	table[types.FormatD24UnormS8Uint] = depthStencil(4, 0, 3)
	table[types.FormatD32FloatS8Uint] = depthStencil(8, 0, 4)

	// Compressed: table entries exist for every advertised compressed
	// format so Info stays total, but only BC1 has a wired codec
	// (see compressed.go); the rest fail at GetPixelFn/SetPixelFn time
	// with ErrUnsupportedFormat.
	table[types.FormatBC1RGBAUnorm] = compressed(8, 4, 4)
	table[types.FormatBC1RGBAUnormSrgb] = compressed(8, 4, 4)
	table[types.FormatBC2RGBAUnorm] = compressed(16, 4, 4)
	table[types.FormatBC3RGBAUnorm] = compressed(16, 4, 4)
	table[types.FormatBC4RUnorm] = compressed(8, 4, 4)
	table[types.FormatBC5RGUnorm] = compressed(16, 4, 4)
	table[types.FormatBC6HRGBUfloat] = compressed(16, 4, 4)
	table[types.FormatBC7RGBAUnorm] = compressed(16, 4, 4)
	table[types.FormatETC2RGB8Unorm] = compressed(8, 4, 4)
	table[types.FormatEACR11Unorm] = compressed(8, 4, 4)
	table[types.FormatASTC4x4Unorm] = compressed(16, 4, 4)

	// Planar: structure only; no codec.
	table[types.FormatG8B8R83Plane420Unorm] = Descriptor{Kind: types.KindPlanar}
	table[types.FormatG8B8R82Plane420Unorm] = Descriptor{Kind: types.KindPlanarSamplable}
}

// Info returns the immutable descriptor for f. It is a total function
// over the enumerated format set and is O(1).
func Info(f types.PixelFormat) Descriptor {
	if int(f) >= len(table) {
		return Descriptor{}
	}
	return table[f]
}

// Package types holds the value types shared across the driver: pixel
// formats, resource usage flags, extents, vertex formats and descriptor
// kinds. It carries no behavior beyond small helpers.
package types

// PixelFormat identifies a supported pixel format. The enumeration
// spans the normal, packed, depth-stencil, compressed and planar kinds
// the driver's format table distinguishes.
type PixelFormat uint32

// Kind classifies how a PixelFormat's bits are laid out.
type Kind uint8

const (
	KindNormal Kind = iota
	KindPacked
	KindDepthStencil
	KindCompressed
	KindPlanar
	KindPlanarSamplable
)

// BaseType is the numeric interpretation applied to a channel's raw bits.
type BaseType uint8

const (
	BaseUNorm BaseType = iota
	BaseSNorm
	BaseUScaled
	BaseSScaled
	BaseUInt
	BaseSInt
	BaseUFloat
	BaseSFloat
	BaseSRGB
)

// Pixel formats. Values are stable identifiers, not bit layouts.
const (
	FormatUndefined PixelFormat = iota

	// Normal, 8-bit channels.
	FormatR8Unorm
	FormatR8Snorm
	FormatR8Uint
	FormatR8Sint
	FormatRG8Unorm
	FormatRG8Snorm
	FormatRG8Uint
	FormatRG8Sint
	FormatRGBA8Unorm
	FormatRGBA8Snorm
	FormatRGBA8Uint
	FormatRGBA8Sint
	FormatRGBA8Srgb
	FormatBGRA8Unorm
	FormatBGRA8Srgb

	// Normal, 16-bit channels.
	FormatR16Uint
	FormatR16Sint
	FormatR16Float
	FormatRG16Uint
	FormatRG16Sint
	FormatRG16Float
	FormatRGBA16Uint
	FormatRGBA16Sint
	FormatRGBA16Float

	// Normal, 32-bit channels.
	FormatR32Uint
	FormatR32Sint
	FormatR32Float
	FormatRG32Uint
	FormatRG32Sint
	FormatRG32Float
	FormatRGBA32Uint
	FormatRGBA32Sint
	FormatRGBA32Float

	// Packed.
	FormatB10G11R11Ufloat
	FormatE5B9G9R9Ufloat
	FormatRGB10A2Unorm
	FormatRGB10A2Uint

	// Depth/stencil.
	FormatD16Unorm
	FormatX8D24Unorm
	FormatD32Float
	FormatS8Uint
	FormatD24UnormS8Uint
	FormatD32FloatS8Uint

	// Compressed (BC family fully wired for BC1 only, see format package).
	FormatBC1RGBAUnorm
	FormatBC1RGBAUnormSrgb
	FormatBC2RGBAUnorm
	FormatBC3RGBAUnorm
	FormatBC4RUnorm
	FormatBC5RGUnorm
	FormatBC6HRGBUfloat
	FormatBC7RGBAUnorm
	FormatETC2RGB8Unorm
	FormatEACR11Unorm
	FormatASTC4x4Unorm

	// Planar (YUV-style); structure only, codec unsupported.
	FormatG8B8R83Plane420Unorm
	FormatG8B8R82Plane420Unorm

	formatCount
)

// Count returns the number of distinct PixelFormat values, including
// FormatUndefined. Used to size the format table array.
func Count() int { return int(formatCount) }

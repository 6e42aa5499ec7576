package format

import "github.com/vkcpu/vkcpu/types"

// FeatureFlag is one per-format capability bit.
type FeatureFlag uint32

const (
	// FeatureSampledImage marks a format usable as a sampled image.
	FeatureSampledImage FeatureFlag = 1 << iota
	// FeatureStorageImage marks a format usable as a storage image.
	FeatureStorageImage
	// FeatureColorAttachment marks a format usable as a color attachment.
	FeatureColorAttachment
	// FeatureColorAttachmentBlend marks a color attachment format that
	// also supports blending.
	FeatureColorAttachmentBlend
	// FeatureDepthStencilAttachment marks a format usable as a
	// depth/stencil attachment.
	FeatureDepthStencilAttachment
	// FeatureBlitSrc marks a format usable as a blit source.
	FeatureBlitSrc
	// FeatureBlitDst marks a format usable as a blit destination.
	FeatureBlitDst
	// FeatureTransferSrc marks a format usable as a transfer source.
	FeatureTransferSrc
	// FeatureTransferDst marks a format usable as a transfer destination.
	FeatureTransferDst
	// FeatureVertexBuffer marks a format usable for vertex attribute
	// data read through a buffer binding.
	FeatureVertexBuffer
	// FeatureUniformTexelBuffer marks a format readable through a texel
	// buffer binding.
	FeatureUniformTexelBuffer
)

// FeatureFlags is a set of FeatureFlag bits.
type FeatureFlags uint32

// Contains reports whether the set carries flag.
func (f FeatureFlags) Contains(flag FeatureFlag) bool {
	return f&FeatureFlags(flag) != 0
}

// Features holds the per-tiling capability masks a format reports:
// linear-tiled image use, optimal-tiled image use, and buffer use.
// This driver keeps all image data linear in host memory, so the
// linear and optimal masks are identical.
type Features struct {
	Linear  FeatureFlags
	Optimal FeatureFlags
	Buffer  FeatureFlags
}

// FormatFeatures derives f's capability masks from its table descriptor
// and codec support. Formats without a wired codec report no image
// capabilities beyond raw transfers.
func FormatFeatures(f types.PixelFormat) Features {
	desc := Info(f)
	transfer := FeatureFlags(FeatureTransferSrc | FeatureTransferDst)

	switch desc.Kind {
	case types.KindNormal:
		img := transfer | FeatureFlags(FeatureSampledImage|FeatureStorageImage|FeatureColorAttachment|FeatureBlitSrc|FeatureBlitDst)
		if desc.Base != types.BaseUInt && desc.Base != types.BaseSInt {
			img |= FeatureFlags(FeatureColorAttachmentBlend)
		}
		buf := FeatureFlags(FeatureVertexBuffer | FeatureUniformTexelBuffer | FeatureTransferSrc | FeatureTransferDst)
		return Features{Linear: img, Optimal: img, Buffer: buf}
	case types.KindPacked:
		img := transfer | FeatureFlags(FeatureSampledImage|FeatureColorAttachment|FeatureBlitSrc|FeatureBlitDst)
		return Features{Linear: img, Optimal: img, Buffer: transfer}
	case types.KindDepthStencil:
		img := transfer | FeatureFlags(FeatureSampledImage|FeatureDepthStencilAttachment)
		return Features{Linear: img, Optimal: img, Buffer: transfer}
	case types.KindCompressed:
		img := transfer
		if _, err := GetPixelFn(f, types.CanonicalF32); err == nil {
			img |= FeatureFlags(FeatureSampledImage | FeatureBlitSrc)
		}
		return Features{Linear: img, Optimal: img, Buffer: transfer}
	default:
		return Features{}
	}
}

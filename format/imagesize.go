package format

import (
	"fmt"

	"github.com/vkcpu/vkcpu/types"
)

// LevelLayout describes one mip level's placement within a layer.
// Offset is relative to the start of the layer; Width/Height/Depth are
// in texels for Normal/Packed/DepthStencil formats and in blocks for
// Compressed formats.
type LevelLayout struct {
	Offset               int64
	LevelSize            int64
	PlaneSize            int64
	Stride               int64
	Width, Height, Depth uint32
}

// ImageSize is the deterministic layout derived from
// (format, width, height, depth, layers, mips). Layers are contiguous:
// TotalSize = LayerSize * Layers.
type ImageSize struct {
	Format    types.PixelFormat
	Width     uint32
	Height    uint32
	Depth     uint32
	Layers    uint32
	Levels    []LevelLayout
	LayerSize int64
	TotalSize int64
	PixelSize int64
}

// MaxMipLevels returns the maximum number of mip levels an image of the
// given extent can have: floor(log2(max(w,h,d))) + 1. The base level
// always counts, so a 1x1x1 image still has one level.
func MaxMipLevels(w, h, d uint32) uint32 {
	m := w
	if h > m {
		m = h
	}
	if d > m {
		m = d
	}
	if m == 0 {
		return 1
	}
	levels := uint32(1)
	for m > 1 {
		m >>= 1
		levels++
	}
	return levels
}

func mipExtent(base uint32, level uint32) uint32 {
	v := base >> level
	if v == 0 {
		v = 1
	}
	return v
}

// NewImageSize computes the deterministic layout for an image, failing
// when mips exceeds MaxMipLevels. Planar/PlanarSamplable formats are
// rejected with ErrUnsupportedFormat.
func NewImageSize(f types.PixelFormat, w, h, d, layers, mips uint32) (ImageSize, error) {
	desc := Info(f)
	if desc.Kind == types.KindPlanar || desc.Kind == types.KindPlanarSamplable {
		return ImageSize{}, fmt.Errorf("format: %w: planar formats", ErrUnsupportedFormat)
	}
	if mips == 0 {
		mips = 1
	}
	if max := MaxMipLevels(w, h, d); mips > max {
		return ImageSize{}, fmt.Errorf("format: %w: mips=%d exceeds max=%d for %dx%dx%d",
			ErrInvalidMipCount, mips, max, w, h, d)
	}
	if layers == 0 {
		layers = 1
	}

	bw, bh := uint32(1), uint32(1)
	pixelSize := int64(desc.TotalSize)
	if desc.Kind == types.KindCompressed {
		bw, bh = uint32(desc.Compressed.BlockWidth), uint32(desc.Compressed.BlockHeight)
	}

	levels := make([]LevelLayout, mips)
	var offset int64
	for i := uint32(0); i < mips; i++ {
		lw := mipExtent(w, i)
		lh := mipExtent(h, i)
		ld := mipExtent(d, i)

		bwLevel := lw
		bhLevel := lh
		if desc.Kind == types.KindCompressed {
			bwLevel = (lw + bw - 1) / bw
			bhLevel = (lh + bh - 1) / bh
		}

		stride := bwLevel * uint32(pixelSize)
		planeSize := int64(stride) * int64(bhLevel)
		levelSize := planeSize * int64(ld)

		levels[i] = LevelLayout{
			Offset:    offset,
			LevelSize: levelSize,
			PlaneSize: planeSize,
			Stride:    int64(stride),
			Width:     bwLevel,
			Height:    bhLevel,
			Depth:     ld,
		}
		offset += levelSize
	}

	layerSize := offset
	return ImageSize{
		Format:    f,
		Width:     w,
		Height:    h,
		Depth:     d,
		Layers:    layers,
		Levels:    levels,
		LayerSize: layerSize,
		TotalSize: layerSize * int64(layers),
		PixelSize: pixelSize,
	}, nil
}

// PixelOffset returns the absolute byte offset of pixel (x, y, z) at the
// given mip level and array layer:
//
//	layer*layerSize + level.Offset + z*planeSize + y*stride + x*pixelSize
func (s ImageSize) PixelOffset(x, y, z int, level, layer uint32) int64 {
	lv := s.Levels[level]
	return int64(layer)*s.LayerSize + lv.Offset + int64(z)*lv.PlaneSize + int64(y)*lv.Stride + int64(x)*s.PixelSize
}

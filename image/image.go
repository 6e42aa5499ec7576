package image

import (
	"fmt"

	"github.com/vkcpu/vkcpu/format"
	"github.com/vkcpu/vkcpu/types"
)

// Image owns (shares with backing memory) a contiguous byte buffer plus
// an ImageSize describing its mip/layer layout.
type Image struct {
	mem    *Memory
	offset int64
	size   format.ImageSize
	fmt    types.PixelFormat
	usage  types.Usage
}

// NewImage computes the deterministic layout for an image of the given
// extent and creates it unbound. mips == 0 means one mip level (base
// only); layers == 0 means one array layer.
func NewImage(f types.PixelFormat, extent types.Extent3D, layers, mips uint32, usage types.Usage) (*Image, error) {
	size, err := format.NewImageSize(f, extent.Width, extent.Height, extent.Depth, layers, mips)
	if err != nil {
		return nil, err
	}
	return &Image{size: size, fmt: f, usage: usage}, nil
}

// BindMemory binds the image to its backing storage at offset.
func (im *Image) BindMemory(mem *Memory, offset int64) error {
	if offset < 0 || offset+im.size.TotalSize > int64(len(mem.data)) {
		return fmt.Errorf("%w: image bind offset=%d size=%d memory=%d", ErrOutOfRange, offset, im.size.TotalSize, len(mem.data))
	}
	im.mem = mem
	im.offset = offset
	return nil
}

// Format returns the image's pixel format.
func (im *Image) Format() types.PixelFormat { return im.fmt }

// Usage returns the image's usage flags.
func (im *Image) Usage() types.Usage { return im.usage }

// ImageSize returns the image's layout.
func (im *Image) ImageSize() format.ImageSize { return im.size }

// Dimensions returns the image's base extent.
func (im *Image) Dimensions() (width, height, depth, layers, levels uint32) {
	return im.size.Width, im.size.Height, im.size.Depth, im.size.Layers, uint32(len(im.size.Levels))
}

func (im *Image) checkBound() error {
	if im.mem == nil {
		return fmt.Errorf("%w: image not bound", ErrOutOfRange)
	}
	return nil
}

// GetPtr returns a slice of the given length starting at byteOffset
// within the image's backing storage.
func (im *Image) GetPtr(byteOffset, length int64) ([]byte, error) {
	if err := im.checkBound(); err != nil {
		return nil, err
	}
	if byteOffset < 0 || length < 0 || byteOffset+length > im.size.TotalSize {
		return nil, fmt.Errorf("%w: image ptr offset=%d len=%d size=%d", ErrOutOfRange, byteOffset, length, im.size.TotalSize)
	}
	start := im.offset + byteOffset
	return im.mem.data[start : start+length : start+length], nil
}

// PixelPtr returns a slice covering one pixel (or, for compressed
// formats, one block) at (x, y, z, level, layer).
func (im *Image) PixelPtr(x, y, z int, level, layer uint32) ([]byte, error) {
	if int(level) >= len(im.size.Levels) || layer >= im.size.Layers {
		return nil, fmt.Errorf("%w: level=%d layer=%d out of range", ErrOutOfRange, level, layer)
	}
	lv := im.size.Levels[level]
	if x < 0 || y < 0 || z < 0 || uint32(x) >= lv.Width || uint32(y) >= lv.Height || uint32(z) >= lv.Depth {
		return nil, fmt.Errorf("%w: pixel (%d,%d,%d) out of range for level %d", ErrOutOfRange, x, y, z, level)
	}
	off := im.size.PixelOffset(x, y, z, level, layer)
	return im.GetPtr(off, im.size.PixelSize)
}

// View is a typed, range-limited view of an Image, referenced by
// descriptor sets and framebuffer attachments.
type View struct {
	Image      *Image
	BaseLayer  uint32
	LayerCount uint32
	BaseLevel  uint32
	LevelCount uint32
}

// NewView creates a view over a range of layers/levels of im.
func (im *Image) NewView(baseLayer, layerCount, baseLevel, levelCount uint32) (*View, error) {
	if baseLayer+layerCount > im.size.Layers || baseLevel+levelCount > uint32(len(im.size.Levels)) {
		return nil, fmt.Errorf("%w: view range out of bounds", ErrOutOfRange)
	}
	return &View{Image: im, BaseLayer: baseLayer, LayerCount: layerCount, BaseLevel: baseLevel, LevelCount: levelCount}, nil
}

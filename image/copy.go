package image

import (
	"errors"
	"fmt"
)

// ErrIncompatibleCopy reports a copy between images whose per-pixel (or
// per-block, for compressed formats) size differs; source and
// destination regions must describe the same number of bytes per
// texel/block.
var ErrIncompatibleCopy = errors.New("image: incompatible copy pixel size")

// CopySubresource names one mip level/array layer and a (x,y,z) origin
// within it; for Compressed images x/y are already expressed in block
// units.
type CopySubresource struct {
	Level, Layer uint32
	X, Y, Z      int
}

// CopyImage copies a width x height x depth region from src to dst,
// row by row. Both images must share the same per-pixel/block byte
// size.
func CopyImage(src *Image, srcSub CopySubresource, dst *Image, dstSub CopySubresource, width, height, depth int) error {
	ss := src.ImageSize()
	ds := dst.ImageSize()
	if ss.PixelSize != ds.PixelSize {
		return fmt.Errorf("%w: src=%d dst=%d", ErrIncompatibleCopy, ss.PixelSize, ds.PixelSize)
	}
	rowBytes := int64(width) * ss.PixelSize
	for z := 0; z < depth; z++ {
		for y := 0; y < height; y++ {
			srcOff := ss.PixelOffset(srcSub.X, srcSub.Y+y, srcSub.Z+z, srcSub.Level, srcSub.Layer)
			dstOff := ds.PixelOffset(dstSub.X, dstSub.Y+y, dstSub.Z+z, dstSub.Level, dstSub.Layer)
			srcRow, err := src.GetPtr(srcOff, rowBytes)
			if err != nil {
				return err
			}
			dstRow, err := dst.GetPtr(dstOff, rowBytes)
			if err != nil {
				return err
			}
			copy(dstRow, srcRow)
		}
	}
	return nil
}

// CopyBufferToImage copies a tightly packed width*height*depth region
// starting at bufOffset within buf into dst's subresource at dstSub.
func CopyBufferToImage(buf *Buffer, bufOffset int64, dst *Image, dstSub CopySubresource, width, height, depth int) error {
	ds := dst.ImageSize()
	rowBytes := int64(width) * ds.PixelSize
	sliceBytes := rowBytes * int64(height)
	for z := 0; z < depth; z++ {
		for y := 0; y < height; y++ {
			srcOff := bufOffset + int64(z)*sliceBytes + int64(y)*rowBytes
			srcRow, err := buf.Data(srcOff, rowBytes)
			if err != nil {
				return err
			}
			dstOff := ds.PixelOffset(dstSub.X, dstSub.Y+y, dstSub.Z+z, dstSub.Level, dstSub.Layer)
			dstRow, err := dst.GetPtr(dstOff, rowBytes)
			if err != nil {
				return err
			}
			copy(dstRow, srcRow)
		}
	}
	return nil
}

// CopyImageToBuffer is the symmetric counterpart of CopyBufferToImage.
func CopyImageToBuffer(src *Image, srcSub CopySubresource, buf *Buffer, bufOffset int64, width, height, depth int) error {
	ss := src.ImageSize()
	rowBytes := int64(width) * ss.PixelSize
	sliceBytes := rowBytes * int64(height)
	for z := 0; z < depth; z++ {
		for y := 0; y < height; y++ {
			srcOff := ss.PixelOffset(srcSub.X, srcSub.Y+y, srcSub.Z+z, srcSub.Level, srcSub.Layer)
			srcRow, err := src.GetPtr(srcOff, rowBytes)
			if err != nil {
				return err
			}
			dstOff := bufOffset + int64(z)*sliceBytes + int64(y)*rowBytes
			dstRow, err := buf.Data(dstOff, rowBytes)
			if err != nil {
				return err
			}
			copy(dstRow, srcRow)
		}
	}
	return nil
}

// CopyBuffer copies size bytes from src[srcOffset:] to dst[dstOffset:].
func CopyBuffer(src *Buffer, srcOffset int64, dst *Buffer, dstOffset int64, size int64) error {
	srcBytes, err := src.Data(srcOffset, size)
	if err != nil {
		return err
	}
	dstBytes, err := dst.Data(dstOffset, size)
	if err != nil {
		return err
	}
	copy(dstBytes, srcBytes)
	return nil
}

package cmdbuf

import (
	"github.com/vkcpu/vkcpu/image"
	"github.com/vkcpu/vkcpu/raster"
)

// --- CopyBuffer ---

type copyBufferCmd struct {
	src, dst                   *image.Buffer
	srcOffset, dstOffset, size int64
}

func (c *copyBufferCmd) Kind() CmdKind { return CmdCopyBuffer }

func (c *copyBufferCmd) exec(r *replayer) error {
	return image.CopyBuffer(c.src, c.srcOffset, c.dst, c.dstOffset, c.size)
}

// CmdCopyBuffer copies size bytes from src[srcOffset:] to dst[dstOffset:].
func (cb *CmdBuffer) CmdCopyBuffer(src *image.Buffer, srcOffset int64, dst *image.Buffer, dstOffset int64, size int64) error {
	return cb.record(&copyBufferCmd{src: src, srcOffset: srcOffset, dst: dst, dstOffset: dstOffset, size: size})
}

// --- CopyImage ---

type copyImageCmd struct {
	src, dst             *image.Image
	srcSub, dstSub       image.CopySubresource
	width, height, depth int
}

func (c *copyImageCmd) Kind() CmdKind { return CmdCopyImage }

func (c *copyImageCmd) exec(r *replayer) error {
	return image.CopyImage(c.src, c.srcSub, c.dst, c.dstSub, c.width, c.height, c.depth)
}

// CmdCopyImage copies a width x height x depth region between two
// images' subresources.
func (cb *CmdBuffer) CmdCopyImage(src *image.Image, srcSub image.CopySubresource, dst *image.Image, dstSub image.CopySubresource, width, height, depth int) error {
	return cb.record(&copyImageCmd{src: src, srcSub: srcSub, dst: dst, dstSub: dstSub, width: width, height: height, depth: depth})
}

// --- CopyBufferToImage ---

type copyBufferToImageCmd struct {
	buf                  *image.Buffer
	bufOffset            int64
	dst                  *image.Image
	dstSub               image.CopySubresource
	width, height, depth int
}

func (c *copyBufferToImageCmd) Kind() CmdKind { return CmdCopyBufferToImage }

func (c *copyBufferToImageCmd) exec(r *replayer) error {
	return image.CopyBufferToImage(c.buf, c.bufOffset, c.dst, c.dstSub, c.width, c.height, c.depth)
}

// CmdCopyBufferToImage uploads a tightly packed region from buf into
// dst's subresource.
func (cb *CmdBuffer) CmdCopyBufferToImage(buf *image.Buffer, bufOffset int64, dst *image.Image, dstSub image.CopySubresource, width, height, depth int) error {
	return cb.record(&copyBufferToImageCmd{buf: buf, bufOffset: bufOffset, dst: dst, dstSub: dstSub, width: width, height: height, depth: depth})
}

// --- CopyImageToBuffer ---

type copyImageToBufferCmd struct {
	src                  *image.Image
	srcSub               image.CopySubresource
	buf                  *image.Buffer
	bufOffset            int64
	width, height, depth int
}

func (c *copyImageToBufferCmd) Kind() CmdKind { return CmdCopyImageToBuffer }

func (c *copyImageToBufferCmd) exec(r *replayer) error {
	return image.CopyImageToBuffer(c.src, c.srcSub, c.buf, c.bufOffset, c.width, c.height, c.depth)
}

// CmdCopyImageToBuffer downloads src's subresource into a tightly
// packed region of buf.
func (cb *CmdBuffer) CmdCopyImageToBuffer(src *image.Image, srcSub image.CopySubresource, buf *image.Buffer, bufOffset int64, width, height, depth int) error {
	return cb.record(&copyImageToBufferCmd{src: src, srcSub: srcSub, buf: buf, bufOffset: bufOffset, width: width, height: height, depth: depth})
}

// --- BlitImage ---

type blitImageCmd struct {
	params raster.BlitParams
}

func (c *blitImageCmd) Kind() CmdKind { return CmdBlitImage }

func (c *blitImageCmd) exec(r *replayer) error {
	return raster.BlitImage(c.params)
}

// CmdBlitImage resamples a source color attachment view's rectangle
// into a destination color attachment view's rectangle. Both views
// must already have been wrapped as raster.ColorTarget; the driver
// layer above cmdbuf owns that, since ColorTarget caches the format
// codec functions.
func (cb *CmdBuffer) CmdBlitImage(params raster.BlitParams) error {
	return cb.record(&blitImageCmd{params: params})
}

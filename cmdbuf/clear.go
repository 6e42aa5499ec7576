package cmdbuf

import (
	"github.com/vkcpu/vkcpu/format"
	"github.com/vkcpu/vkcpu/image"
	"github.com/vkcpu/vkcpu/raster"
	"github.com/vkcpu/vkcpu/types"
)

// clearColorView fills every pixel of every mip level and layer in
// view's range with color through the format-aware codec, the load-op
// clear path at BeginRenderPass.
func clearColorView(view *image.View, color [4]float32) error {
	img := view.Image
	set, err := format.SetPixelFn(img.Format(), types.CanonicalF32)
	if err != nil {
		return err
	}
	size := img.ImageSize()
	for layer := view.BaseLayer; layer < view.BaseLayer+view.LayerCount; layer++ {
		for level := view.BaseLevel; level < view.BaseLevel+view.LevelCount; level++ {
			lv := size.Levels[level]
			for z := 0; z < int(lv.Depth); z++ {
				for y := 0; y < int(lv.Height); y++ {
					for x := 0; x < int(lv.Width); x++ {
						px, err := img.PixelPtr(x, y, z, level, layer)
						if err != nil {
							return err
						}
						set(px, 0, 0, format.Pixel{F: color})
					}
				}
			}
		}
	}
	return nil
}

// clearDepthStencilView is clearColorView's depth/stencil counterpart.
func clearDepthStencilView(view *image.View, clearDepth bool, depth float32, clearStencil bool, stencil uint32) error {
	img := view.Image
	var setDepth, setStencil format.SetFunc
	var err error
	if clearDepth {
		setDepth, err = format.SetPixelFn(img.Format(), types.CanonicalDepth)
		if err != nil {
			return err
		}
	}
	if clearStencil {
		setStencil, err = format.SetPixelFn(img.Format(), types.CanonicalStencil)
		if err != nil {
			return err
		}
	}
	size := img.ImageSize()
	for layer := view.BaseLayer; layer < view.BaseLayer+view.LayerCount; layer++ {
		for level := view.BaseLevel; level < view.BaseLevel+view.LevelCount; level++ {
			lv := size.Levels[level]
			for z := 0; z < int(lv.Depth); z++ {
				for y := 0; y < int(lv.Height); y++ {
					for x := 0; x < int(lv.Width); x++ {
						px, err := img.PixelPtr(x, y, z, level, layer)
						if err != nil {
							return err
						}
						if setDepth != nil {
							setDepth(px, 0, 0, format.Pixel{F: [4]float32{depth}})
						}
						if setStencil != nil {
							setStencil(px, 0, 0, format.Pixel{U: [4]uint32{stencil}})
						}
					}
				}
			}
		}
	}
	return nil
}

// clearColorRect fills rect of view with color through the format-aware
// codec, the ClearAttachments path.
func clearColorRect(view *image.View, rect types.Rect2D, color [4]float32) error {
	ct, err := raster.NewColorTarget(view)
	if err != nil {
		return err
	}
	for y := rect.Y; y < rect.Y+int32(rect.Height); y++ {
		for x := rect.X; x < rect.X+int32(rect.Width); x++ {
			if err := ct.Write(int(x), int(y), color); err != nil {
				return err
			}
		}
	}
	return nil
}

// clearDepthStencilRect fills rect of view's depth and/or stencil
// aspect, leaving an aspect untouched when its clear flag is false so
// ClearAttachments can clear depth without disturbing stencil or vice
// versa.
func clearDepthStencilRect(view *image.View, rect types.Rect2D, clearDepth bool, depth float32, clearStencil bool, stencil uint32) error {
	dt, err := raster.NewDepthStencilTarget(view)
	if err != nil {
		return err
	}
	for y := rect.Y; y < rect.Y+int32(rect.Height); y++ {
		for x := rect.X; x < rect.X+int32(rect.Width); x++ {
			if clearDepth {
				if err := dt.WriteDepth(int(x), int(y), depth); err != nil {
					return err
				}
			}
			if clearStencil {
				if err := dt.WriteStencil(int(x), int(y), stencil); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// --- ClearColorImage / ClearDepthStencilImage: outside a render pass,
// clear an image's full extent directly. ---

type clearColorImageCmd struct {
	view  *image.View
	color [4]float32
}

func (c *clearColorImageCmd) Kind() CmdKind { return CmdClearColorImage }

func (c *clearColorImageCmd) exec(r *replayer) error {
	w, h, _, _, _ := c.view.Image.Dimensions()
	return clearColorRect(c.view, types.Rect2D{X: 0, Y: 0, Width: int32(w), Height: int32(h)}, c.color)
}

// CmdClearColorImage clears view's full base level/layer to color.
func (cb *CmdBuffer) CmdClearColorImage(view *image.View, color [4]float32) error {
	return cb.record(&clearColorImageCmd{view: view, color: color})
}

type clearDepthStencilImageCmd struct {
	view    *image.View
	depth   float32
	stencil uint32
}

func (c *clearDepthStencilImageCmd) Kind() CmdKind { return CmdClearDepthStencilImage }

func (c *clearDepthStencilImageCmd) exec(r *replayer) error {
	w, h, _, _, _ := c.view.Image.Dimensions()
	return clearDepthStencilRect(c.view, types.Rect2D{X: 0, Y: 0, Width: int32(w), Height: int32(h)}, true, c.depth, true, c.stencil)
}

// CmdClearDepthStencilImage clears view's full base level/layer.
func (cb *CmdBuffer) CmdClearDepthStencilImage(view *image.View, depth float32, stencil uint32) error {
	return cb.record(&clearDepthStencilImageCmd{view: view, depth: depth, stencil: stencil})
}

// --- ClearAttachments: inside an active render pass, clear a rect of
// the bound attachments without ending the subpass. Unlike the
// standalone image clears, only the given rect is cleared; the rect is
// used as given and is not clipped to the render area. ---

type clearAttachmentsCmd struct {
	colorIndices []uint32
	color        [4]float32
	clearDepth   bool
	depth        float32
	clearStencil bool
	stencil      uint32
	rect         types.Rect2D
}

func (c *clearAttachmentsCmd) Kind() CmdKind { return CmdClearAttachments }

func (c *clearAttachmentsCmd) exec(r *replayer) error {
	fb := r.state.CurrentFramebuffer
	if fb == nil {
		return ErrInvalidRenderPass
	}
	sp := fb.RenderPass.Subpasses[r.state.CurrentSubpass]
	for _, idx := range c.colorIndices {
		if int(idx) >= len(sp.ColorAttachments) {
			continue
		}
		view := fb.Views[sp.ColorAttachments[idx]]
		if err := clearColorRect(view, c.rect, c.color); err != nil {
			return err
		}
	}
	if (c.clearDepth || c.clearStencil) && sp.DepthStencilAttachment != nil {
		view := fb.Views[*sp.DepthStencilAttachment]
		if err := clearDepthStencilRect(view, c.rect, c.clearDepth, c.depth, c.clearStencil, c.stencil); err != nil {
			return err
		}
	}
	return nil
}

// CmdClearAttachments clears rect of the named color attachment indices
// (relative to the current subpass's color attachment list) and,
// optionally, the subpass's depth/stencil attachment, without leaving
// the render pass.
func (cb *CmdBuffer) CmdClearAttachments(colorIndices []uint32, color [4]float32, clearDepth bool, depth float32, clearStencil bool, stencil uint32, rect types.Rect2D) error {
	if !cb.insideRenderPass {
		return ErrInvalidRenderPass
	}
	return cb.record(&clearAttachmentsCmd{
		colorIndices: append([]uint32(nil), colorIndices...),
		color:        color,
		clearDepth:   clearDepth,
		depth:        depth,
		clearStencil: clearStencil,
		stencil:      stencil,
		rect:         rect,
	})
}

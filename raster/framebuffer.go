package raster

import (
	"github.com/vkcpu/vkcpu/format"
	"github.com/vkcpu/vkcpu/image"
	"github.com/vkcpu/vkcpu/types"
)

// ColorTarget is a bound color attachment the fragment stage reads and
// writes through the format-aware pixel codec, so any advertised
// PixelFormat can serve as a render target.
type ColorTarget struct {
	View *image.View
	get  format.GetFunc
	set  format.SetFunc
}

// NewColorTarget builds a ColorTarget over view, caching its codec
// functions once up front.
func NewColorTarget(view *image.View) (*ColorTarget, error) {
	f := view.Image.Format()
	get, err := format.GetPixelFn(f, types.CanonicalF32)
	if err != nil {
		return nil, err
	}
	set, err := format.SetPixelFn(f, types.CanonicalF32)
	if err != nil {
		return nil, err
	}
	return &ColorTarget{View: view, get: get, set: set}, nil
}

// Read returns the color at (x,y) within the base mip level/layer.
func (c *ColorTarget) Read(x, y int) ([4]float32, error) {
	px, err := c.View.Image.PixelPtr(x, y, 0, c.View.BaseLevel, c.View.BaseLayer)
	if err != nil {
		return [4]float32{}, err
	}
	p := c.get(px, 0, 0)
	return p.F, nil
}

// Write stores color at (x,y).
func (c *ColorTarget) Write(x, y int, color [4]float32) error {
	px, err := c.View.Image.PixelPtr(x, y, 0, c.View.BaseLevel, c.View.BaseLayer)
	if err != nil {
		return err
	}
	c.set(px, 0, 0, format.Pixel{F: color})
	return nil
}

// Clear fills the entire base level/layer with color, the writeback
// path for a render pass attachment whose LoadOp is clear.
func (c *ColorTarget) Clear(color [4]float32) error {
	lv := c.View.Image.ImageSize().Levels[c.View.BaseLevel]
	for y := 0; y < int(lv.Height); y++ {
		for x := 0; x < int(lv.Width); x++ {
			if err := c.Write(x, y, color); err != nil {
				return err
			}
		}
	}
	return nil
}

// DepthStencilTarget is a bound depth/stencil attachment.
type DepthStencilTarget struct {
	View       *image.View
	hasDepth   bool
	hasStencil bool
	getDepth   format.GetFunc
	setDepth   format.SetFunc
	getStencil format.GetFunc
	setStencil format.SetFunc
}

// NewDepthStencilTarget builds a DepthStencilTarget over view, deriving
// which aspects (depth/stencil) the format actually carries from the
// format table's Kind/DepthStencil descriptor.
func NewDepthStencilTarget(view *image.View) (*DepthStencilTarget, error) {
	f := view.Image.Format()
	desc := format.Info(f)
	t := &DepthStencilTarget{View: view}
	if desc.ChannelMask&format.ChanDepth != 0 {
		t.hasDepth = true
		g, err := format.GetPixelFn(f, types.CanonicalDepth)
		if err != nil {
			return nil, err
		}
		s, err := format.SetPixelFn(f, types.CanonicalDepth)
		if err != nil {
			return nil, err
		}
		t.getDepth, t.setDepth = g, s
	}
	if desc.ChannelMask&format.ChanStencil != 0 {
		t.hasStencil = true
		g, err := format.GetPixelFn(f, types.CanonicalStencil)
		if err != nil {
			return nil, err
		}
		s, err := format.SetPixelFn(f, types.CanonicalStencil)
		if err != nil {
			return nil, err
		}
		t.getStencil, t.setStencil = g, s
	}
	return t, nil
}

func (t *DepthStencilTarget) ReadDepth(x, y int) (float32, error) {
	if !t.hasDepth {
		return 1, nil
	}
	px, err := t.View.Image.PixelPtr(x, y, 0, t.View.BaseLevel, t.View.BaseLayer)
	if err != nil {
		return 0, err
	}
	return t.getDepth(px, 0, 0).F[0], nil
}

func (t *DepthStencilTarget) WriteDepth(x, y int, d float32) error {
	if !t.hasDepth {
		return nil
	}
	px, err := t.View.Image.PixelPtr(x, y, 0, t.View.BaseLevel, t.View.BaseLayer)
	if err != nil {
		return err
	}
	t.setDepth(px, 0, 0, format.Pixel{F: [4]float32{d}})
	return nil
}

func (t *DepthStencilTarget) ReadStencil(x, y int) (uint32, error) {
	if !t.hasStencil {
		return 0, nil
	}
	px, err := t.View.Image.PixelPtr(x, y, 0, t.View.BaseLevel, t.View.BaseLayer)
	if err != nil {
		return 0, err
	}
	return t.getStencil(px, 0, 0).U[0], nil
}

func (t *DepthStencilTarget) WriteStencil(x, y int, s uint32) error {
	if !t.hasStencil {
		return nil
	}
	px, err := t.View.Image.PixelPtr(x, y, 0, t.View.BaseLevel, t.View.BaseLayer)
	if err != nil {
		return err
	}
	t.setStencil(px, 0, 0, format.Pixel{U: [4]uint32{s}})
	return nil
}

// Clear fills the view's entire base level/layer with the given
// depth/stencil values.
func (t *DepthStencilTarget) Clear(depth float32, stencil uint32) error {
	lv := t.View.Image.ImageSize().Levels[t.View.BaseLevel]
	for y := 0; y < int(lv.Height); y++ {
		for x := 0; x < int(lv.Width); x++ {
			if err := t.WriteDepth(x, y, depth); err != nil {
				return err
			}
			if err := t.WriteStencil(x, y, stencil); err != nil {
				return err
			}
		}
	}
	return nil
}

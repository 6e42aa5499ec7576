package raster

import "github.com/vkcpu/vkcpu/internal/num"

// Filter selects the resampling kernel BlitImage uses.
type Filter uint8

const (
	FilterNearest Filter = iota
	FilterLinear
)

// BlitParams bundles one BlitImage command's source/destination
// rectangles. Extents are signed: a negative destination extent means
// flipped iteration on that axis, so the destination rectangle is
// [DstOffset, DstOffset+DstExtent) with DstExtent's sign giving the
// iteration direction.
type BlitParams struct {
	Src                    *ColorTarget
	Dst                    *ColorTarget
	SrcOffsetX, SrcOffsetY int32
	SrcExtentX, SrcExtentY int32
	DstOffsetX, DstOffsetY int32
	DstExtentX, DstExtentY int32
	Filter                 Filter
}

// BlitImage resamples Src's rectangle into Dst's rectangle: for each
// destination pixel, compute
//
//	(u,v) = src_offset + ((dst-dst_offset)+0.5)*(src_extent/dst_extent)
//
// and sample Src via nearest or bilinear filtering, writing the
// converted value through Dst's codec.
func BlitImage(p BlitParams) error {
	if p.DstExtentX == 0 || p.DstExtentY == 0 {
		return nil
	}
	absW := absInt32(p.DstExtentX)
	absH := absInt32(p.DstExtentY)

	for j := int32(0); j < absH; j++ {
		diffY := j
		if p.DstExtentY < 0 {
			diffY = -j
		}
		destY := p.DstOffsetY + diffY
		v := float32(p.SrcOffsetY) + (float32(diffY)+0.5)*(float32(p.SrcExtentY)/float32(p.DstExtentY))

		for i := int32(0); i < absW; i++ {
			diffX := i
			if p.DstExtentX < 0 {
				diffX = -i
			}
			destX := p.DstOffsetX + diffX
			u := float32(p.SrcOffsetX) + (float32(diffX)+0.5)*(float32(p.SrcExtentX)/float32(p.DstExtentX))

			color, err := sampleSrc(p.Src, u, v, p.Filter)
			if err != nil {
				return err
			}
			if err := p.Dst.Write(int(destX), int(destY), color); err != nil {
				return err
			}
		}
	}
	return nil
}

func absInt32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// clampRead reads c at (x,y) with clamp-to-edge addressing.
func clampRead(c *ColorTarget, x, y int) ([4]float32, error) {
	w, h, _, _, _ := c.View.Image.Dimensions()
	x = num.Clamp(x, 0, int(w)-1)
	y = num.Clamp(y, 0, int(h)-1)
	return c.Read(x, y)
}

func sampleSrc(c *ColorTarget, u, v float32, filter Filter) ([4]float32, error) {
	if filter == FilterNearest {
		x := int(u)
		y := int(v)
		if u < 0 {
			x--
		}
		if v < 0 {
			y--
		}
		return clampRead(c, x, y)
	}

	// Bilinear: sample the four texel centers surrounding (u,v).
	fu := u - 0.5
	fv := v - 0.5
	x0 := floorInt(fu)
	y0 := floorInt(fv)
	tx := fu - float32(x0)
	ty := fv - float32(y0)

	c00, err := clampRead(c, x0, y0)
	if err != nil {
		return [4]float32{}, err
	}
	c10, err := clampRead(c, x0+1, y0)
	if err != nil {
		return [4]float32{}, err
	}
	c01, err := clampRead(c, x0, y0+1)
	if err != nil {
		return [4]float32{}, err
	}
	c11, err := clampRead(c, x0+1, y0+1)
	if err != nil {
		return [4]float32{}, err
	}

	var out [4]float32
	for k := 0; k < 4; k++ {
		top := c00[k] + (c10[k]-c00[k])*tx
		bot := c01[k] + (c11[k]-c01[k])*tx
		out[k] = top + (bot-top)*ty
	}
	return out, nil
}

func floorInt(v float32) int {
	i := int(v)
	if v < 0 && float32(i) != v {
		i--
	}
	return i
}

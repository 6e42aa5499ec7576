package format

import (
	"encoding/binary"
	"fmt"

	"github.com/vkcpu/vkcpu/types"
)

// buildCompressedGet decodes BC1 (DXT1) blocks, the one compressed
// family this driver advertises with a wired decoder. Other compressed
// formats are present in the format table (so Info stays total) but
// fail here with ErrUnsupportedFormat.
//
// The whole 4x4 block is decoded into 16 canonical colors per call and
// indexed by the (subX, subY) sub-block coordinate.
func buildCompressedGet(f types.PixelFormat, desc Descriptor, kind types.CanonicalKind) (GetFunc, error) {
	if kind != types.CanonicalF32 {
		return nil, fmt.Errorf("compressed format %v: canonical kind %v: %w", f, kind, ErrUnsupportedFormat)
	}
	switch f {
	case types.FormatBC1RGBAUnorm, types.FormatBC1RGBAUnormSrgb:
		srgb := f == types.FormatBC1RGBAUnormSrgb
		return func(px []byte, subX, subY int) Pixel {
			block := decodeBC1Block(px, srgb)
			return block[subY*4+subX]
		}, nil
	default:
		return nil, fmt.Errorf("compressed format %v: %w", f, ErrUnsupportedFormat)
	}
}

func rgb565(v uint16) (r, g, b float32) {
	r = float32((v>>11)&0x1F) / 31.0
	g = float32((v>>5)&0x3F) / 63.0
	b = float32(v&0x1F) / 31.0
	return
}

func decodeBC1Block(px []byte, srgb bool) [16]Pixel {
	c0 := binary.LittleEndian.Uint16(px[0:])
	c1 := binary.LittleEndian.Uint16(px[2:])
	indices := binary.LittleEndian.Uint32(px[4:])

	r0, g0, b0 := rgb565(c0)
	r1, g1, b1 := rgb565(c1)

	var palette [4][4]float32 // r,g,b,a
	palette[0] = [4]float32{r0, g0, b0, 1}
	palette[1] = [4]float32{r1, g1, b1, 1}
	if c0 > c1 {
		palette[2] = [4]float32{
			(2*r0 + r1) / 3, (2*g0 + g1) / 3, (2*b0 + b1) / 3, 1,
		}
		palette[3] = [4]float32{
			(r0 + 2*r1) / 3, (g0 + 2*g1) / 3, (b0 + 2*b1) / 3, 1,
		}
	} else {
		palette[2] = [4]float32{(r0 + r1) / 2, (g0 + g1) / 2, (b0 + b1) / 2, 1}
		palette[3] = [4]float32{0, 0, 0, 0}
	}

	var out [16]Pixel
	for i := 0; i < 16; i++ {
		idx := (indices >> uint(2*i)) & 0x3
		c := palette[idx]
		if srgb {
			c[0] = srgbToLinear(c[0])
			c[1] = srgbToLinear(c[1])
			c[2] = srgbToLinear(c[2])
		}
		out[i] = Pixel{F: c}
	}
	return out
}

package format

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/chewxy/math32"

	"github.com/vkcpu/vkcpu/types"
)

// Pixel is the canonical 4-channel value produced and consumed by the
// codec. A single routine only ever populates the field matching the
// CanonicalKind it was generated for; the others are left zero.
type Pixel struct {
	F [4]float32
	I [4]int32
	U [4]uint32
}

// GetFunc reads one pixel (or, for compressed formats, one sub-block
// coordinate within a decoded block) from px and returns its canonical
// value.
type GetFunc func(px []byte, subX, subY int) Pixel

// SetFunc writes a canonical value into px, clamping out-of-range
// inputs per the channel's numeric interpretation.
type SetFunc func(px []byte, subX, subY int, p Pixel)

type cacheKey struct {
	f    types.PixelFormat
	kind types.CanonicalKind
}

var (
	getCache sync.Map // cacheKey -> GetFunc
	setCache sync.Map // cacheKey -> SetFunc
)

// GetPixelFn returns a specialized read routine for (format, kind),
// generated at first use and cached thereafter.
func GetPixelFn(f types.PixelFormat, kind types.CanonicalKind) (GetFunc, error) {
	key := cacheKey{f, kind}
	if v, ok := getCache.Load(key); ok {
		return v.(GetFunc), nil
	}
	fn, err := buildGetFn(f, kind)
	if err != nil {
		return nil, err
	}
	actual, _ := getCache.LoadOrStore(key, fn)
	return actual.(GetFunc), nil
}

// SetPixelFn returns a specialized write routine for (format, kind),
// generated at first use and cached thereafter.
func SetPixelFn(f types.PixelFormat, kind types.CanonicalKind) (SetFunc, error) {
	key := cacheKey{f, kind}
	if v, ok := setCache.Load(key); ok {
		return v.(SetFunc), nil
	}
	fn, err := buildSetFn(f, kind)
	if err != nil {
		return nil, err
	}
	actual, _ := setCache.LoadOrStore(key, fn)
	return actual.(SetFunc), nil
}

func buildGetFn(f types.PixelFormat, kind types.CanonicalKind) (GetFunc, error) {
	desc := Info(f)
	switch desc.Kind {
	case types.KindNormal:
		return buildNormalGet(desc, kind)
	case types.KindPacked:
		return buildPackedGet(f, desc, kind)
	case types.KindDepthStencil:
		return buildDepthStencilGet(f, desc, kind)
	case types.KindCompressed:
		return buildCompressedGet(f, desc, kind)
	default:
		return nil, fmt.Errorf("format %v kind %v: %w", f, desc.Kind, ErrUnsupportedFormat)
	}
}

func buildSetFn(f types.PixelFormat, kind types.CanonicalKind) (SetFunc, error) {
	desc := Info(f)
	switch desc.Kind {
	case types.KindNormal:
		return buildNormalSet(desc, kind)
	case types.KindPacked:
		return buildPackedSet(f, desc, kind)
	case types.KindDepthStencil:
		return buildDepthStencilSet(f, desc, kind)
	case types.KindCompressed:
		return nil, fmt.Errorf("format %v: compressed formats are not writable: %w", f, ErrUnsupportedFormat)
	default:
		return nil, fmt.Errorf("format %v kind %v: %w", f, desc.Kind, ErrUnsupportedFormat)
	}
}

// --- channel-level conversions -------------------------------------------------

func readRaw(px []byte, elemSize int, off int8) uint64 {
	if off == InvalidOffset {
		return 0
	}
	base := int(off) * elemSize
	switch elemSize {
	case 1:
		return uint64(px[base])
	case 2:
		return uint64(binary.LittleEndian.Uint16(px[base:]))
	case 4:
		return uint64(binary.LittleEndian.Uint32(px[base:]))
	default:
		return 0
	}
}

func writeRaw(px []byte, elemSize int, off int8, v uint64) {
	if off == InvalidOffset {
		return
	}
	base := int(off) * elemSize
	switch elemSize {
	case 1:
		px[base] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(px[base:], uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(px[base:], uint32(v))
	}
}

// decodeChannel converts a raw bit pattern of width bits to a canonical
// float32 per the channel's numeric interpretation.
func decodeChannel(raw uint64, bits int, base types.BaseType, isAlpha bool) float32 {
	switch base {
	case types.BaseUNorm:
		maxv := float32((uint64(1) << uint(bits)) - 1)
		return float32(raw) / maxv
	case types.BaseSNorm:
		signBit := uint64(1) << uint(bits-1)
		var s int64
		if raw&signBit != 0 {
			s = int64(raw) - int64(uint64(1)<<uint(bits))
		} else {
			s = int64(raw)
		}
		maxv := float32((int64(1) << uint(bits-1)) - 1)
		v := float32(s) / maxv
		if v < -1 {
			v = -1
		}
		return v
	case types.BaseUScaled, types.BaseUInt:
		return float32(raw)
	case types.BaseSScaled, types.BaseSInt:
		signBit := uint64(1) << uint(bits-1)
		var s int64
		if raw&signBit != 0 {
			s = int64(raw) - int64(uint64(1)<<uint(bits))
		} else {
			s = int64(raw)
		}
		return float32(s)
	case types.BaseSRGB:
		maxv := float32((uint64(1) << uint(bits)) - 1)
		v := float32(raw) / maxv
		if isAlpha {
			return v
		}
		return srgbToLinear(v)
	case types.BaseUFloat, types.BaseSFloat:
		switch bits {
		case 16:
			return float16ToFloat32(uint16(raw))
		case 32:
			return math32.Float32frombits(uint32(raw))
		default:
			return 0
		}
	default:
		return 0
	}
}

// encodeChannel is the inverse of decodeChannel, clamping to the
// representable range and rounding to nearest.
func encodeChannel(v float32, bits int, base types.BaseType, isAlpha bool) uint64 {
	switch base {
	case types.BaseUNorm:
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		maxv := float32((uint64(1) << uint(bits)) - 1)
		return uint64(math32.Round(v * maxv))
	case types.BaseSNorm:
		if v < -1 {
			v = -1
		}
		if v > 1 {
			v = 1
		}
		maxv := float32((int64(1) << uint(bits-1)) - 1)
		s := int64(math32.Round(v * maxv))
		return uint64(s) & ((uint64(1) << uint(bits)) - 1)
	case types.BaseUScaled, types.BaseUInt:
		maxv := float32((uint64(1) << uint(bits)) - 1)
		if v < 0 {
			v = 0
		}
		if v > maxv {
			v = maxv
		}
		return uint64(math32.Round(v))
	case types.BaseSScaled, types.BaseSInt:
		half := int64(1) << uint(bits-1)
		minv := float32(-half)
		maxv := float32(half - 1)
		if v < minv {
			v = minv
		}
		if v > maxv {
			v = maxv
		}
		s := int64(math32.Round(v))
		return uint64(s) & ((uint64(1) << uint(bits)) - 1)
	case types.BaseSRGB:
		if !isAlpha {
			v = linearToSrgb(v)
		}
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		maxv := float32((uint64(1) << uint(bits)) - 1)
		return uint64(math32.Round(v * maxv))
	case types.BaseUFloat, types.BaseSFloat:
		switch bits {
		case 16:
			return uint64(float32ToFloat16(v))
		case 32:
			return uint64(math32.Float32bits(v))
		default:
			return 0
		}
	default:
		return 0
	}
}

// --- Normal kind ---------------------------------------------------------------

func normalOffsets(n NormalLayout) (r, g, b, a int8) {
	return n.RedOffset, n.GreenOffset, n.BlueOffset, n.AlphaOffset
}

func buildNormalGet(desc Descriptor, kind types.CanonicalKind) (GetFunc, error) {
	r, g, b, a := normalOffsets(desc.Normal)
	bits := desc.ElementSize * 8
	base := desc.Base
	elemSize := desc.ElementSize

	switch kind {
	case types.CanonicalF32:
		return func(px []byte, _, _ int) Pixel {
			var p Pixel
			p.F = [4]float32{0, 0, 0, 1}
			if r != InvalidOffset {
				p.F[0] = decodeChannel(readRaw(px, elemSize, r), bits, base, false)
			}
			if g != InvalidOffset {
				p.F[1] = decodeChannel(readRaw(px, elemSize, g), bits, base, false)
			}
			if b != InvalidOffset {
				p.F[2] = decodeChannel(readRaw(px, elemSize, b), bits, base, false)
			}
			if a != InvalidOffset {
				p.F[3] = decodeChannel(readRaw(px, elemSize, a), bits, base, true)
			}
			return p
		}, nil
	case types.CanonicalI32, types.CanonicalU32:
		return func(px []byte, _, _ int) Pixel {
			var p Pixel
			p.I = [4]int32{0, 0, 0, 1}
			p.U = [4]uint32{0, 0, 0, 1}
			offs := [4]int8{r, g, b, a}
			for i, off := range offs {
				if off == InvalidOffset {
					continue
				}
				raw := readRaw(px, elemSize, off)
				p.U[i] = uint32(raw)
				p.I[i] = int32(raw)
			}
			return p
		}, nil
	default:
		return nil, fmt.Errorf("normal format: canonical kind %v: %w", kind, ErrUnsupportedFormat)
	}
}

func buildNormalSet(desc Descriptor, kind types.CanonicalKind) (SetFunc, error) {
	r, g, b, a := normalOffsets(desc.Normal)
	bits := desc.ElementSize * 8
	base := desc.Base
	elemSize := desc.ElementSize

	switch kind {
	case types.CanonicalF32:
		return func(px []byte, _, _ int, p Pixel) {
			if r != InvalidOffset {
				writeRaw(px, elemSize, r, encodeChannel(p.F[0], bits, base, false))
			}
			if g != InvalidOffset {
				writeRaw(px, elemSize, g, encodeChannel(p.F[1], bits, base, false))
			}
			if b != InvalidOffset {
				writeRaw(px, elemSize, b, encodeChannel(p.F[2], bits, base, false))
			}
			if a != InvalidOffset {
				writeRaw(px, elemSize, a, encodeChannel(p.F[3], bits, base, true))
			}
		}, nil
	case types.CanonicalI32, types.CanonicalU32:
		return func(px []byte, _, _ int, p Pixel) {
			offs := [4]int8{r, g, b, a}
			for i, off := range offs {
				if off == InvalidOffset {
					continue
				}
				var v uint64
				if kind == types.CanonicalU32 {
					v = uint64(p.U[i])
				} else {
					v = uint64(uint32(p.I[i]))
				}
				writeRaw(px, elemSize, off, v&((uint64(1)<<uint(bits))-1))
			}
		}, nil
	default:
		return nil, fmt.Errorf("normal format: canonical kind %v: %w", kind, ErrUnsupportedFormat)
	}
}

// --- Packed kind -----------------------------------------------------------

func readPackedWord(px []byte, totalSize int) uint64 {
	switch totalSize {
	case 4:
		return uint64(binary.LittleEndian.Uint32(px))
	case 8:
		return binary.LittleEndian.Uint64(px)
	default:
		return 0
	}
}

func writePackedWord(px []byte, totalSize int, v uint64) {
	switch totalSize {
	case 4:
		binary.LittleEndian.PutUint32(px, uint32(v))
	case 8:
		binary.LittleEndian.PutUint64(px, v)
	}
}

func buildPackedGet(f types.PixelFormat, desc Descriptor, kind types.CanonicalKind) (GetFunc, error) {
	if kind != types.CanonicalF32 {
		return nil, fmt.Errorf("packed format %v: canonical kind %v: %w", f, kind, ErrUnsupportedFormat)
	}
	switch f {
	case types.FormatB10G11R11Ufloat:
		return buildB10G11R11Get(desc.Packed), nil
	case types.FormatE5B9G9R9Ufloat:
		return buildE5B9G9R9Get(desc.Packed), nil
	}
	pk := desc.Packed
	base := desc.Base
	total := desc.TotalSize
	return func(px []byte, _, _ int) Pixel {
		word := readPackedWord(px, total)
		var out Pixel
		out.F = [4]float32{0, 0, 0, 1}
		for i := 0; i < 4; i++ {
			bits := int(pk.ChannelBits[i])
			if bits == 0 {
				continue
			}
			mask := (uint64(1) << uint(bits)) - 1
			raw := (word >> pk.ChannelOffset[i]) & mask
			out.F[i] = decodeChannel(raw, bits, base, i == 3)
		}
		return out
	}, nil
}

func buildPackedSet(f types.PixelFormat, desc Descriptor, kind types.CanonicalKind) (SetFunc, error) {
	if kind != types.CanonicalF32 {
		return nil, fmt.Errorf("packed format %v: canonical kind %v: %w", f, kind, ErrUnsupportedFormat)
	}
	switch f {
	case types.FormatB10G11R11Ufloat:
		return buildB10G11R11Set(desc.Packed), nil
	case types.FormatE5B9G9R9Ufloat:
		return buildE5B9G9R9Set(desc.Packed), nil
	}
	pk := desc.Packed
	base := desc.Base
	total := desc.TotalSize
	return func(px []byte, _, _ int, p Pixel) {
		var word uint64
		for i := 0; i < 4; i++ {
			bits := int(pk.ChannelBits[i])
			if bits == 0 {
				continue
			}
			mask := (uint64(1) << uint(bits)) - 1
			v := encodeChannel(p.F[i], bits, base, i == 3) & mask
			word |= v << pk.ChannelOffset[i]
		}
		writePackedWord(px, total, word)
	}, nil
}

// --- Shared-exponent / mini-float packed UFloat formats ---------------------
//
// FormatB10G11R11Ufloat and FormatE5B9G9R9Ufloat cannot be decoded by
// the generic per-channel path above: their channel widths (10/11 and
// 9/5 bits) never match decodeChannel's 16-or-32-bit float cases, and
// E5B9G9R9's exponent is shared across three channels rather than
// carried per-channel. Both get dedicated routines.

// miniFloatExpBits/Bias describe the unsigned mini-float shared by both
// B10G11R11's per-channel fields and E5B9G9R9's shared exponent: 5
// exponent bits, bias 15, no sign bit.
const (
	miniFloatExpBits = 5
	miniFloatExpBias = 15
	miniFloatMaxExp  = (1 << miniFloatExpBits) - 1
)

// decodeMiniFloat decodes an unsigned mini-float of the given mantissa
// width (6 for B10G11R11's 11-bit channels, 5 for its 10-bit channel).
func decodeMiniFloat(raw uint32, mantissaBits int) float32 {
	mantissaMask := uint32(1)<<uint(mantissaBits) - 1
	mant := raw & mantissaMask
	exp := raw >> uint(mantissaBits)
	switch {
	case exp == 0:
		if mant == 0 {
			return 0
		}
		return float32(mant) * math32.Pow(2, float32(1-miniFloatExpBias-mantissaBits))
	case exp == miniFloatMaxExp:
		if mant == 0 {
			return math32.Inf(1)
		}
		return math32.NaN()
	default:
		return (1 + float32(mant)/float32(uint32(1)<<uint(mantissaBits))) *
			math32.Pow(2, float32(int(exp)-miniFloatExpBias))
	}
}

// encodeMiniFloat is the inverse of decodeMiniFloat, rounding to nearest
// and clamping negative/NaN inputs to zero since the format is unsigned.
func encodeMiniFloat(v float32, mantissaBits int) uint32 {
	mantissaMask := uint32(1)<<uint(mantissaBits) - 1
	if !(v > 0) {
		return 0
	}
	if math32.IsInf(v, 1) {
		return uint32(miniFloatMaxExp) << uint(mantissaBits)
	}
	exp := int(math32.Floor(math32.Log2(v)))
	biasedExp := exp + miniFloatExpBias
	if biasedExp <= 0 {
		denom := math32.Pow(2, float32(1-miniFloatExpBias-mantissaBits))
		mant := uint32(math32.Round(v / denom))
		if mant > mantissaMask {
			mant = mantissaMask
		}
		return mant
	}
	denom := math32.Pow(2, float32(exp-mantissaBits))
	mant := uint32(math32.Round(v/denom)) - uint32(1)<<uint(mantissaBits)
	if mant > mantissaMask {
		biasedExp++
		mant = 0
	}
	if biasedExp >= miniFloatMaxExp {
		return uint32(miniFloatMaxExp) << uint(mantissaBits)
	}
	return uint32(biasedExp)<<uint(mantissaBits) | mant
}

func buildB10G11R11Get(pk PackedLayout) GetFunc {
	return func(px []byte, _, _ int) Pixel {
		word := uint32(readPackedWord(px, 4))
		var out Pixel
		out.F = [4]float32{0, 0, 0, 1}
		for i := 0; i < 3; i++ {
			bits := int(pk.ChannelBits[i])
			mask := uint32(1)<<uint(bits) - 1
			raw := (word >> pk.ChannelOffset[i]) & mask
			out.F[i] = decodeMiniFloat(raw, bits-miniFloatExpBits)
		}
		return out
	}
}

func buildB10G11R11Set(pk PackedLayout) SetFunc {
	return func(px []byte, _, _ int, p Pixel) {
		var word uint32
		for i := 0; i < 3; i++ {
			bits := int(pk.ChannelBits[i])
			mask := uint32(1)<<uint(bits) - 1
			raw := encodeMiniFloat(p.F[i], bits-miniFloatExpBits) & mask
			word |= raw << pk.ChannelOffset[i]
		}
		writePackedWord(px, 4, uint64(word))
	}
}

// buildE5B9G9R9Get implements the RGB9E5 shared-exponent decode: a
// single 5-bit biased exponent (offset/width taken from channel index
// 3, the slot the generic packed table reserves for alpha) scales all
// three 9-bit mantissas together.
func buildE5B9G9R9Get(pk PackedLayout) GetFunc {
	expBits := int(pk.ChannelBits[3])
	expMask := uint32(1)<<uint(expBits) - 1
	mantissaBits := int(pk.ChannelBits[0])
	return func(px []byte, _, _ int) Pixel {
		word := uint32(readPackedWord(px, 4))
		exp := int((word >> pk.ChannelOffset[3]) & expMask)
		scale := math32.Pow(2, float32(exp-miniFloatExpBias-mantissaBits))
		var out Pixel
		out.F = [4]float32{0, 0, 0, 1}
		for i := 0; i < 3; i++ {
			bits := int(pk.ChannelBits[i])
			mask := uint32(1)<<uint(bits) - 1
			mant := (word >> pk.ChannelOffset[i]) & mask
			out.F[i] = float32(mant) * scale
		}
		return out
	}
}

// buildE5B9G9R9Set implements the canonical RGB9E5 encode: find the
// smallest shared exponent that represents the largest of the three
// channels, then quantize every channel's mantissa under that exponent,
// bumping the exponent once more if rounding overflows the mantissa.
func buildE5B9G9R9Set(pk PackedLayout) SetFunc {
	mantissaBits := int(pk.ChannelBits[0])
	expBits := int(pk.ChannelBits[3])
	maxExp := uint32(1)<<uint(expBits) - 1
	maxMantissa := uint32(1)<<uint(mantissaBits) - 1
	maxValue := float32(maxMantissa) / float32(uint32(1)<<uint(mantissaBits)) *
		math32.Pow(2, float32(int(maxExp)-miniFloatExpBias))

	clamp := func(v float32) float32 {
		if !(v > 0) {
			return 0
		}
		if v > maxValue {
			return maxValue
		}
		return v
	}

	return func(px []byte, _, _ int, p Pixel) {
		r, g, b := clamp(p.F[0]), clamp(p.F[1]), clamp(p.F[2])
		maxc := r
		if g > maxc {
			maxc = g
		}
		if b > maxc {
			maxc = b
		}

		var expShared int
		if maxc > 0 {
			e := int(math32.Floor(math32.Log2(maxc)))
			if e < -miniFloatExpBias-1 {
				e = -miniFloatExpBias - 1
			}
			expShared = e + 1 + miniFloatExpBias
		}

		denom := math32.Pow(2, float32(expShared-miniFloatExpBias-mantissaBits))
		round := func(v float32) uint32 { return uint32(math32.Round(v / denom)) }
		rm, gm, bm := round(r), round(g), round(b)
		if max3(rm, gm, bm) > maxMantissa {
			expShared++
			denom = math32.Pow(2, float32(expShared-miniFloatExpBias-mantissaBits))
			rm, gm, bm = round(r), round(g), round(b)
		}
		if expShared > int(maxExp) {
			expShared = int(maxExp)
		}

		word := (rm&maxMantissa)<<pk.ChannelOffset[0] |
			(gm&maxMantissa)<<pk.ChannelOffset[1] |
			(bm&maxMantissa)<<pk.ChannelOffset[2] |
			(uint32(expShared)&maxExp)<<pk.ChannelOffset[3]
		writePackedWord(px, 4, uint64(word))
	}
}

func max3(a, b, c uint32) uint32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

// --- DepthStencil kind -------------------------------------------------------

func buildDepthStencilGet(f types.PixelFormat, desc Descriptor, kind types.CanonicalKind) (GetFunc, error) {
	ds := desc.DepthStencil
	switch kind {
	case types.CanonicalDepth:
		if ds.DepthOffset == InvalidOffset {
			return nil, fmt.Errorf("format %v has no depth aspect: %w", f, ErrUnsupportedFormat)
		}
		off := int(ds.DepthOffset)
		switch f {
		case types.FormatD16Unorm:
			return func(px []byte, _, _ int) Pixel {
				raw := binary.LittleEndian.Uint16(px[off:])
				return Pixel{F: [4]float32{float32(raw) / 65535.0, 0, 0, 0}}
			}, nil
		case types.FormatX8D24Unorm, types.FormatD24UnormS8Uint:
			return func(px []byte, _, _ int) Pixel {
				raw := binary.LittleEndian.Uint32(px[off:]) & 0x00FFFFFF
				return Pixel{F: [4]float32{float32(raw) / 16777215.0, 0, 0, 0}}
			}, nil
		case types.FormatD32Float, types.FormatD32FloatS8Uint:
			return func(px []byte, _, _ int) Pixel {
				raw := binary.LittleEndian.Uint32(px[off:])
				return Pixel{F: [4]float32{math32.Float32frombits(raw), 0, 0, 0}}
			}, nil
		default:
			return nil, fmt.Errorf("format %v: %w", f, ErrUnsupportedFormat)
		}
	case types.CanonicalStencil:
		if ds.StencilOffset == InvalidOffset {
			return nil, fmt.Errorf("format %v has no stencil aspect: %w", f, ErrUnsupportedFormat)
		}
		off := int(ds.StencilOffset)
		return func(px []byte, _, _ int) Pixel {
			return Pixel{U: [4]uint32{uint32(px[off]), 0, 0, 0}}
		}, nil
	default:
		return nil, fmt.Errorf("depth/stencil format %v: canonical kind %v: %w", f, kind, ErrUnsupportedFormat)
	}
}

func buildDepthStencilSet(f types.PixelFormat, desc Descriptor, kind types.CanonicalKind) (SetFunc, error) {
	ds := desc.DepthStencil
	switch kind {
	case types.CanonicalDepth:
		if ds.DepthOffset == InvalidOffset {
			return nil, fmt.Errorf("format %v has no depth aspect: %w", f, ErrUnsupportedFormat)
		}
		off := int(ds.DepthOffset)
		switch f {
		case types.FormatD16Unorm:
			return func(px []byte, _, _ int, p Pixel) {
				v := clamp01(p.F[0])
				binary.LittleEndian.PutUint16(px[off:], uint16(math32.Round(v*65535.0)))
			}, nil
		case types.FormatX8D24Unorm, types.FormatD24UnormS8Uint:
			return func(px []byte, _, _ int, p Pixel) {
				v := clamp01(p.F[0])
				raw := uint32(math32.Round(v * 16777215.0))
				existing := binary.LittleEndian.Uint32(px[off:])
				merged := (existing &^ 0x00FFFFFF) | (raw & 0x00FFFFFF)
				binary.LittleEndian.PutUint32(px[off:], merged)
			}, nil
		case types.FormatD32Float, types.FormatD32FloatS8Uint:
			return func(px []byte, _, _ int, p Pixel) {
				binary.LittleEndian.PutUint32(px[off:], math32.Float32bits(p.F[0]))
			}, nil
		default:
			return nil, fmt.Errorf("format %v: %w", f, ErrUnsupportedFormat)
		}
	case types.CanonicalStencil:
		if ds.StencilOffset == InvalidOffset {
			return nil, fmt.Errorf("format %v has no stencil aspect: %w", f, ErrUnsupportedFormat)
		}
		off := int(ds.StencilOffset)
		return func(px []byte, _, _ int, p Pixel) {
			px[off] = byte(p.U[0])
		}, nil
	default:
		return nil, fmt.Errorf("depth/stencil format %v: canonical kind %v: %w", f, kind, ErrUnsupportedFormat)
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// --- sRGB transfer function -------------------------------------------------

func srgbToLinear(c float32) float32 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math32.Pow((c+0.055)/1.055, 2.4)
}

func linearToSrgb(c float32) float32 {
	if c <= 0.0031308 {
		return c * 12.92
	}
	return 1.055*math32.Pow(c, 1.0/2.4) - 0.055
}

// --- IEEE754 half-float conversion, used by decodeChannel/encodeChannel
// for 16-bit float channels (the R16/RG16/RGBA16 Float formats).

func float16ToFloat32(h uint16) float32 {
	sign := uint32(h&0x8000) << 16
	exp := (h >> 10) & 0x1F
	mant := uint32(h & 0x3FF)
	switch exp {
	case 0:
		if mant == 0 {
			return math.Float32frombits(sign)
		}
		// Subnormal half -> normalize.
		e := -1
		for mant&0x400 == 0 {
			mant <<= 1
			e--
		}
		mant &= 0x3FF
		bits := sign | uint32(int32(e+127-15))<<23 | (mant << 13)
		return math.Float32frombits(bits)
	case 0x1F:
		bits := sign | 0xFF<<23 | (mant << 13)
		return math.Float32frombits(bits)
	default:
		bits := sign | (uint32(exp)+127-15)<<23 | (mant << 13)
		return math.Float32frombits(bits)
	}
}

func float32ToFloat16(f float32) uint16 {
	bits := math.Float32bits(f)
	sign := uint16((bits >> 16) & 0x8000)
	exp := int32((bits>>23)&0xFF) - 127 + 15
	mant := bits & 0x7FFFFF
	switch {
	case exp <= 0:
		return sign
	case exp >= 0x1F:
		return sign | 0x7C00
	default:
		return sign | uint16(exp)<<10 | uint16(mant>>13)
	}
}

package raster

import (
	"github.com/vkcpu/vkcpu/devstate"
	"github.com/vkcpu/vkcpu/internal/num"
)

// blendWeight expands a BlendFactor into one weight per channel. The
// same table serves both the color and the alpha equation: when the
// alpha equation names a *Color factor, Vulkan substitutes the
// corresponding alpha factor, which falls out of taking channel 3 of
// the returned vector (channel 3 of SrcColor's weight vector is
// SrcAlpha, of ConstantColor's is ConstantAlpha, and so on). The one
// exception is SrcAlphaSaturate, whose alpha weight is pinned to 1.
func blendWeight(factor devstate.BlendFactor, src, src1, dst, constant [4]float32) [4]float32 {
	switch factor {
	case devstate.BlendZero:
		return [4]float32{}
	case devstate.BlendOne:
		return [4]float32{1, 1, 1, 1}
	case devstate.BlendSrcColor:
		return src
	case devstate.BlendOneMinusSrcColor:
		return oneMinus(src)
	case devstate.BlendDstColor:
		return dst
	case devstate.BlendOneMinusDstColor:
		return oneMinus(dst)
	case devstate.BlendSrcAlpha:
		return splat(src[3])
	case devstate.BlendOneMinusSrcAlpha:
		return splat(1 - src[3])
	case devstate.BlendDstAlpha:
		return splat(dst[3])
	case devstate.BlendOneMinusDstAlpha:
		return splat(1 - dst[3])
	case devstate.BlendConstantColor:
		return constant
	case devstate.BlendOneMinusConstantColor:
		return oneMinus(constant)
	case devstate.BlendConstantAlpha:
		return splat(constant[3])
	case devstate.BlendOneMinusConstantAlpha:
		return splat(1 - constant[3])
	case devstate.BlendSrcAlphaSaturate:
		f := num.Min(src[3], 1-dst[3])
		return [4]float32{f, f, f, 1}
	case devstate.BlendSrc1Color:
		return src1
	case devstate.BlendOneMinusSrc1Color:
		return oneMinus(src1)
	case devstate.BlendSrc1Alpha:
		return splat(src1[3])
	case devstate.BlendOneMinusSrc1Alpha:
		return splat(1 - src1[3])
	default:
		return [4]float32{1, 1, 1, 1}
	}
}

func splat(v float32) [4]float32 {
	return [4]float32{v, v, v, v}
}

func oneMinus(v [4]float32) [4]float32 {
	return [4]float32{1 - v[0], 1 - v[1], 1 - v[2], 1 - v[3]}
}

// blendChannel resolves one channel of a blend equation. Min and Max
// compare the raw source and destination values; the weighted terms
// only feed the arithmetic ops.
func blendChannel(op devstate.BlendOp, s, d, ws, wd float32) float32 {
	switch op {
	case devstate.BlendOpSubtract:
		return s*ws - d*wd
	case devstate.BlendOpReverseSubtract:
		return d*wd - s*ws
	case devstate.BlendOpMin:
		return num.Min(s, d)
	case devstate.BlendOpMax:
		return num.Max(s, d)
	default:
		return s*ws + d*wd
	}
}

// Blend applies state's color and alpha equations to one fragment,
// returning an RGBA value clamped to [0,1]. src1 is the second source
// color consumed by the dual-source Src1* factors; pass zero when the
// fragment stage produces a single output. Blending is always
// performed in float; there is no guarantee of matching hardware
// rounding.
func Blend(src, src1, dst [4]float32, state devstate.BlendState) [4]float32 {
	if !state.Enabled {
		return src
	}

	ws := blendWeight(state.SrcColor, src, src1, dst, state.Constant)
	wd := blendWeight(state.DstColor, src, src1, dst, state.Constant)
	wsa := blendWeight(state.SrcAlpha, src, src1, dst, state.Constant)
	wda := blendWeight(state.DstAlpha, src, src1, dst, state.Constant)

	var out [4]float32
	for ch := 0; ch < 3; ch++ {
		out[ch] = blendChannel(state.ColorOp, src[ch], dst[ch], ws[ch], wd[ch])
	}
	out[3] = blendChannel(state.AlphaOp, src[3], dst[3], wsa[3], wda[3])

	for ch := range out {
		out[ch] = num.Clamp(out[ch], 0, 1)
	}
	return out
}

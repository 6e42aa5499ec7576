package raster

import "github.com/vkcpu/vkcpu/devstate"

// compareDepth evaluates src against dst under compare.
func compareDepth(src, dst float32, compare devstate.CompareFunction) bool {
	switch compare {
	case devstate.CompareNever:
		return false
	case devstate.CompareLess:
		return src < dst
	case devstate.CompareEqual:
		return src == dst
	case devstate.CompareLessEqual:
		return src <= dst
	case devstate.CompareGreater:
		return src > dst
	case devstate.CompareNotEqual:
		return src != dst
	case devstate.CompareGreaterEqual:
		return src >= dst
	case devstate.CompareAlways:
		return true
	default:
		return false
	}
}

func compareStencil(src, dst uint32, compare devstate.CompareFunction) bool {
	switch compare {
	case devstate.CompareNever:
		return false
	case devstate.CompareLess:
		return src < dst
	case devstate.CompareEqual:
		return src == dst
	case devstate.CompareLessEqual:
		return src <= dst
	case devstate.CompareGreater:
		return src > dst
	case devstate.CompareNotEqual:
		return src != dst
	case devstate.CompareGreaterEqual:
		return src >= dst
	case devstate.CompareAlways:
		return true
	default:
		return false
	}
}

// applyStencilOp computes op's result over an 8-bit stencil value,
// then merges it into cur under writeMask: bits outside the mask keep
// their stored value no matter which op ran.
func applyStencilOp(op devstate.StencilOperation, ref, cur uint32, writeMask uint32) uint32 {
	var v uint32
	switch op {
	case devstate.StencilKeep:
		return cur
	case devstate.StencilZero:
		v = 0
	case devstate.StencilReplace:
		v = ref
	case devstate.StencilInvert:
		v = ^cur
	case devstate.StencilIncrementClamp:
		if cur >= 0xFF {
			v = 0xFF
		} else {
			v = cur + 1
		}
	case devstate.StencilDecrementClamp:
		if cur == 0 {
			v = 0
		} else {
			v = cur - 1
		}
	case devstate.StencilIncrementWrap:
		v = (cur + 1) & 0xFF
	case devstate.StencilDecrementWrap:
		if cur == 0 {
			v = 0xFF
		} else {
			v = cur - 1
		}
	default:
		return cur
	}
	return (cur &^ writeMask) | (v & writeMask)
}

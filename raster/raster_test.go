package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vkcpu/vkcpu/devstate"
)

func TestEdgeFunctionEvaluate(t *testing.T) {
	// A CCW triangle (0,0) -> (4,0) -> (0,4): the edge from (0,0) to
	// (4,0) should evaluate positive for points above it (inside) and
	// negative below (outside).
	e := NewEdgeFunction(0, 0, 4, 0)
	assert.Greater(t, e.Evaluate(1, 1), float32(0))
	assert.Less(t, e.Evaluate(1, -1), float32(0))
}

func TestRasterizeCoversInteriorPixels(t *testing.T) {
	tri := Triangle{
		V0: ScreenVertex{X: 0, Y: 0, Z: 0, W: 1},
		V1: ScreenVertex{X: 8, Y: 0, Z: 0, W: 1},
		V2: ScreenVertex{X: 0, Y: 8, Z: 0, W: 1},
	}
	vp := Viewport{X: 0, Y: 0, Width: 8, Height: 8}
	var n int
	Rasterize(tri, vp, func(f Fragment) {
		n++
		assert.GreaterOrEqual(t, f.Bary[0]+f.Bary[1]+f.Bary[2], float32(0.999))
		assert.LessOrEqual(t, f.Bary[0]+f.Bary[1]+f.Bary[2], float32(1.001))
	})
	// Right triangle of area 32 on an 8x8 grid covers roughly half the
	// pixels (exact count depends on the top-left fill rule).
	assert.Greater(t, n, 0)
	assert.Less(t, n, 64)
}

func TestRasterizeEmptyOutsideViewport(t *testing.T) {
	tri := Triangle{
		V0: ScreenVertex{X: 100, Y: 100, W: 1},
		V1: ScreenVertex{X: 108, Y: 100, W: 1},
		V2: ScreenVertex{X: 100, Y: 108, W: 1},
	}
	vp := Viewport{X: 0, Y: 0, Width: 8, Height: 8}
	called := false
	Rasterize(tri, vp, func(Fragment) { called = true })
	assert.False(t, called)
}

func TestIsBackFacingAndCull(t *testing.T) {
	ccw := Triangle{
		V0: ScreenVertex{X: 0, Y: 0},
		V1: ScreenVertex{X: 4, Y: 0},
		V2: ScreenVertex{X: 0, Y: 4},
	}
	cw := Triangle{V0: ccw.V0, V1: ccw.V2, V2: ccw.V1}

	assert.False(t, IsBackFacing(ccw, devstate.FrontFaceCCW))
	assert.True(t, IsBackFacing(cw, devstate.FrontFaceCCW))

	assert.True(t, ShouldCull(cw, devstate.CullBack, devstate.FrontFaceCCW))
	assert.False(t, ShouldCull(cw, devstate.CullFront, devstate.FrontFaceCCW))
	assert.False(t, ShouldCull(cw, devstate.CullNone, devstate.FrontFaceCCW))
}

func TestBlendDisabledPassesSrcThrough(t *testing.T) {
	src := [4]float32{0.5, 0.25, 0.75, 1}
	dst := [4]float32{0, 0, 0, 1}
	got := Blend(src, [4]float32{}, dst, devstate.BlendState{Enabled: false})
	assert.Equal(t, src, got)
}

func TestBlendAlphaOver(t *testing.T) {
	src := [4]float32{1, 0, 0, 0.5}
	dst := [4]float32{0, 1, 0, 1}
	state := devstate.BlendState{
		Enabled:  true,
		SrcColor: devstate.BlendSrcAlpha,
		DstColor: devstate.BlendOneMinusSrcAlpha,
		ColorOp:  devstate.BlendOpAdd,
		SrcAlpha: devstate.BlendOne,
		DstAlpha: devstate.BlendZero,
		AlphaOp:  devstate.BlendOpAdd,
	}
	got := Blend(src, [4]float32{}, dst, state)
	assert.InDelta(t, 0.5, got[0], 0.01)
	assert.InDelta(t, 0.5, got[1], 0.01)
	assert.InDelta(t, 0.5, got[3], 0.01)
}

func TestBlendConstantAlphaDistinctFromConstantColor(t *testing.T) {
	src := [4]float32{1, 1, 1, 1}
	dst := [4]float32{0, 0, 0, 0}
	state := devstate.BlendState{
		Enabled:  true,
		SrcColor: devstate.BlendConstantAlpha,
		DstColor: devstate.BlendZero,
		ColorOp:  devstate.BlendOpAdd,
		SrcAlpha: devstate.BlendConstantColor,
		DstAlpha: devstate.BlendZero,
		AlphaOp:  devstate.BlendOpAdd,
		Constant: [4]float32{0.25, 0.5, 0.75, 0.1},
	}
	got := Blend(src, [4]float32{}, dst, state)
	// Color channels all weight by the constant's alpha, not its rgb.
	assert.InDelta(t, 0.1, got[0], 0.001)
	assert.InDelta(t, 0.1, got[1], 0.001)
	assert.InDelta(t, 0.1, got[2], 0.001)
	// The alpha equation's ConstantColor factor resolves to constant
	// alpha.
	assert.InDelta(t, 0.1, got[3], 0.001)
}

func TestBlendDualSourceFactors(t *testing.T) {
	src := [4]float32{1, 1, 1, 1}
	src1 := [4]float32{0.5, 0.25, 0.75, 0.4}
	dst := [4]float32{0, 0, 0, 0}
	state := devstate.BlendState{
		Enabled:  true,
		SrcColor: devstate.BlendSrc1Color,
		DstColor: devstate.BlendZero,
		ColorOp:  devstate.BlendOpAdd,
		SrcAlpha: devstate.BlendSrc1Alpha,
		DstAlpha: devstate.BlendZero,
		AlphaOp:  devstate.BlendOpAdd,
	}
	got := Blend(src, src1, dst, state)
	assert.InDelta(t, 0.5, got[0], 0.001)
	assert.InDelta(t, 0.25, got[1], 0.001)
	assert.InDelta(t, 0.75, got[2], 0.001)
	assert.InDelta(t, 0.4, got[3], 0.001)
}

func TestBlendMinMaxIgnoreFactors(t *testing.T) {
	src := [4]float32{0.8, 0.2, 0.6, 1}
	dst := [4]float32{0.3, 0.7, 0.6, 0.5}
	state := devstate.BlendState{
		Enabled:  true,
		SrcColor: devstate.BlendZero, // must not zero the comparison
		DstColor: devstate.BlendZero,
		ColorOp:  devstate.BlendOpMin,
		SrcAlpha: devstate.BlendZero,
		DstAlpha: devstate.BlendZero,
		AlphaOp:  devstate.BlendOpMax,
	}
	got := Blend(src, [4]float32{}, dst, state)
	assert.InDelta(t, 0.3, got[0], 0.001)
	assert.InDelta(t, 0.2, got[1], 0.001)
	assert.InDelta(t, 0.6, got[2], 0.001)
	assert.InDelta(t, 1.0, got[3], 0.001)
}

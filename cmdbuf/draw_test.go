package cmdbuf

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkcpu/vkcpu/devstate"
	"github.com/vkcpu/vkcpu/image"
	"github.com/vkcpu/vkcpu/raster"
	"github.com/vkcpu/vkcpu/shader"
	"github.com/vkcpu/vkcpu/types"
)

func float32sToBytes(vals []float32) []byte {
	out := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

// uniformColorModule reads its single output color from a bound uniform
// buffer at (set 0, binding 0), the same shape cmd/vkcpu-demo uses.
func uniformColorModule() *shader.CallbackModule {
	mod := shader.NewCallbackModule()
	mod.AddVertex("vs_main", nil, nil, nil, shader.PassthroughVertex)
	mod.AddFragment("fs_main", nil, nil, nil, func(ctx shader.InvocationContext, _ shader.Fragment) [4]float32 {
		u, _ := ctx.Uniforms.(*shader.Uniforms)
		raw := u.Buffer(0, 0)
		var color [4]float32
		for i := range color {
			color[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4 : i*4+4]))
		}
		return color
	})
	return mod
}

// TestDrawFullScreenTriangle draws a single full-screen triangle,
// solid-colored via a uniform buffer, and checks it covers every pixel
// of the render target.
func TestDrawFullScreenTriangle(t *testing.T) {
	cb, fb := newTestFramebuffer(t)

	positions := []float32{
		-1, -1, 0,
		3, -1, 0,
		-1, 3, 0,
	}
	vtxRaw := float32sToBytes(positions)
	vtxBuf := newTestBuffer(t, int64(len(vtxRaw)), types.UVertexData, vtxRaw)

	color := [4]float32{0.2, 0.4, 0.8, 1}
	uniformRaw := float32sToBytes(color[:])
	uniformBuf := newTestBuffer(t, int64(len(uniformRaw)), types.UShaderConst, uniformRaw)

	setLayout := &devstate.DescriptorSetLayout{Bindings: []devstate.LayoutBinding{
		{Binding: 0, Type: devstate.BindingUniformBuffer, Stages: types.StageFragment},
	}}
	layout := &devstate.PipelineLayout{SetLayouts: []*devstate.DescriptorSetLayout{setLayout}}

	mod := uniformColorModule()
	gp := &devstate.GraphicsPipeline{
		Layout: layout,
		VertexBuffers: []devstate.VertexBindingState{{
			Binding: 0,
			Stride:  12,
			Attributes: []types.VertexAttribute{
				{Location: 0, Binding: 0, Format: types.VFFloat32x3, Offset: 0},
			},
		}},
		VertexShader:   mod,
		VertexEntry:    "vs_main",
		FragmentShader: mod,
		FragmentEntry:  "fs_main",
		Raster:         devstate.RasterState{Topology: types.TopologyTriangleList, CullMode: devstate.CullNone},
		ColorTargets:   []devstate.ColorTarget{{Format: types.FormatRGBA8Unorm, WriteMask: devstate.ColorWriteAll}},
	}

	descSet := devstate.NewDescriptorSet(setLayout)
	require.NoError(t, descSet.Update([]devstate.Write{
		{Binding: 0, Resource: devstate.BufferResource{Buffer: uniformBuf, Size: 16}},
	}))

	require.NoError(t, cb.Begin(0))
	require.NoError(t, cb.CmdBeginRenderPass(devstate.RenderPassBeginInfo{
		Framebuffer: fb,
		RenderArea:  types.Rect2D{Width: testWidth, Height: testHeight},
		ClearValues: []devstate.ClearValue{{Color: [4]float32{0, 0, 0, 1}}},
	}))
	require.NoError(t, cb.CmdBindPipeline(gp))
	require.NoError(t, cb.CmdBindDescriptorSets(types.BindGraphics, 0, []*devstate.DescriptorSet{descSet}, nil))
	require.NoError(t, cb.CmdBindVertexBuffers(0, []*image.Buffer{vtxBuf}, []int64{0}))
	require.NoError(t, cb.CmdSetViewport(types.Rect2D{Width: testWidth, Height: testHeight}))
	require.NoError(t, cb.CmdDraw(0, 3, 0, 1))
	require.NoError(t, cb.CmdEndRenderPass())
	require.NoError(t, cb.End())
	require.NoError(t, cb.Submit(devstate.New()))

	ct, err := raster.NewColorTarget(fb.Views[0])
	require.NoError(t, err)
	for y := 0; y < testHeight; y++ {
		for x := 0; x < testWidth; x++ {
			got, err := ct.Read(x, y)
			require.NoError(t, err)
			assert.InDeltaSlice(t, color[:], got[:], 0.02)
		}
	}
}

func TestDispatchRejectedInsideRenderPass(t *testing.T) {
	cb, fb := newTestFramebuffer(t)
	require.NoError(t, cb.Begin(0))
	require.NoError(t, cb.CmdBeginRenderPass(devstate.RenderPassBeginInfo{Framebuffer: fb}))

	err := cb.CmdDispatch(1, 1, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRenderPass)
}

func TestDrawRejectedOutsideRenderPass(t *testing.T) {
	cb := New(LevelPrimary, nil)
	require.NoError(t, cb.Begin(0))

	err := cb.CmdDraw(0, 3, 0, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRenderPass)
}

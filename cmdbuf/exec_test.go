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

func TestExecuteCommandsInlinesSecondary(t *testing.T) {
	_, view := newTestColorImage(t)

	sec := New(LevelSecondary, nil)
	require.NoError(t, sec.Begin(FlagRenderPassContinue))
	require.NoError(t, sec.CmdClearColorImage(view, [4]float32{1, 0, 1, 1}))
	require.NoError(t, sec.End())

	pri := New(LevelPrimary, nil)
	require.NoError(t, pri.Begin(0))
	require.NoError(t, pri.CmdExecuteCommands([]*CmdBuffer{sec}))
	require.NoError(t, pri.End())
	require.NoError(t, pri.Submit(devstate.New()))

	ct, err := raster.NewColorTarget(view)
	require.NoError(t, err)
	color, err := ct.Read(1, 1)
	require.NoError(t, err)
	assert.Equal(t, [4]float32{1, 0, 1, 1}, color)
}

func TestExecuteCommandsRejectsPrimaryArgument(t *testing.T) {
	pri := New(LevelPrimary, nil)
	other := New(LevelPrimary, nil)
	require.NoError(t, pri.Begin(0))

	err := pri.CmdExecuteCommands([]*CmdBuffer{other})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestExecuteCommandsRejectedOnSecondary(t *testing.T) {
	sec := New(LevelSecondary, nil)
	inner := New(LevelSecondary, nil)
	require.NoError(t, sec.Begin(0))

	err := sec.CmdExecuteCommands([]*CmdBuffer{inner})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupported)
}

// pushConstantColorModule reads its fragment color from the first 16
// bytes of the push-constant region instead of a descriptor binding.
func pushConstantColorModule() *shader.CallbackModule {
	mod := shader.NewCallbackModule()
	mod.AddVertex("vs_main", nil, nil, nil, shader.PassthroughVertex)
	mod.AddFragment("fs_main", nil, nil, nil, func(ctx shader.InvocationContext, _ shader.Fragment) [4]float32 {
		u, _ := ctx.Uniforms.(*shader.Uniforms)
		raw := u.PushConstantBytes()
		var color [4]float32
		for i := range color {
			color[i] = bytesToF32(raw[i*4 : i*4+4])
		}
		return color
	})
	return mod
}

func bytesToF32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

func TestPushConstantsVisibleToShader(t *testing.T) {
	cb, fb := newTestFramebuffer(t)
	vtxBuf := newTestBuffer(t, 36, types.UVertexData, float32sToBytes(fullScreenTriangle(0)))

	mod := pushConstantColorModule()
	gp := &devstate.GraphicsPipeline{
		VertexBuffers: []devstate.VertexBindingState{{
			Binding: 0, Stride: 12,
			Attributes: []types.VertexAttribute{{Location: 0, Binding: 0, Format: types.VFFloat32x3, Offset: 0}},
		}},
		VertexShader:   mod,
		VertexEntry:    "vs_main",
		FragmentShader: mod,
		FragmentEntry:  "fs_main",
		Raster:         devstate.RasterState{Topology: types.TopologyTriangleList, CullMode: devstate.CullNone},
		ColorTargets:   []devstate.ColorTarget{{Format: types.FormatRGBA8Unorm, WriteMask: devstate.ColorWriteAll}},
	}

	color := [4]float32{0.8, 0.2, 0.4, 1}
	require.NoError(t, cb.Begin(0))
	require.NoError(t, cb.CmdBeginRenderPass(devstate.RenderPassBeginInfo{
		Framebuffer: fb,
		RenderArea:  types.Rect2D{Width: testWidth, Height: testHeight},
		ClearValues: []devstate.ClearValue{{Color: [4]float32{0, 0, 0, 1}}},
	}))
	require.NoError(t, cb.CmdBindPipeline(gp))
	require.NoError(t, cb.CmdPushConstants(0, float32sToBytes(color[:])))
	require.NoError(t, cb.CmdBindVertexBuffers(0, []*image.Buffer{vtxBuf}, []int64{0}))
	require.NoError(t, cb.CmdSetViewport(types.Rect2D{Width: testWidth, Height: testHeight}))
	require.NoError(t, cb.CmdDraw(0, 3, 0, 1))
	require.NoError(t, cb.CmdEndRenderPass())
	require.NoError(t, cb.End())
	require.NoError(t, cb.Submit(devstate.New()))

	ct, err := raster.NewColorTarget(fb.Views[0])
	require.NoError(t, err)
	got, err := ct.Read(2, 2)
	require.NoError(t, err)
	assert.InDeltaSlice(t, color[:], got[:], 0.02)
}

func TestPushConstantsRejectedBeyondLimit(t *testing.T) {
	cb := New(LevelPrimary, nil)
	require.NoError(t, cb.Begin(0))

	big := make([]byte, types.DefaultLimits().MaxPushConstantSize+4)
	err := cb.CmdPushConstants(0, big)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestPushDescriptorSetBindsLazySet(t *testing.T) {
	cb, fb := newTestFramebuffer(t)
	vtxBuf := newTestBuffer(t, 36, types.UVertexData, float32sToBytes(fullScreenTriangle(0)))

	color := [4]float32{0.1, 0.9, 0.3, 1}
	uniformBuf := newTestBuffer(t, 16, types.UShaderConst, float32sToBytes(color[:]))

	mod := uniformColorModule()
	gp := &devstate.GraphicsPipeline{
		VertexBuffers: []devstate.VertexBindingState{{
			Binding: 0, Stride: 12,
			Attributes: []types.VertexAttribute{{Location: 0, Binding: 0, Format: types.VFFloat32x3, Offset: 0}},
		}},
		VertexShader:   mod,
		VertexEntry:    "vs_main",
		FragmentShader: mod,
		FragmentEntry:  "fs_main",
		Raster:         devstate.RasterState{Topology: types.TopologyTriangleList, CullMode: devstate.CullNone},
		ColorTargets:   []devstate.ColorTarget{{Format: types.FormatRGBA8Unorm, WriteMask: devstate.ColorWriteAll}},
	}

	require.NoError(t, cb.Begin(0))
	require.NoError(t, cb.CmdBeginRenderPass(devstate.RenderPassBeginInfo{
		Framebuffer: fb,
		RenderArea:  types.Rect2D{Width: testWidth, Height: testHeight},
		ClearValues: []devstate.ClearValue{{Color: [4]float32{0, 0, 0, 1}}},
	}))
	require.NoError(t, cb.CmdBindPipeline(gp))
	require.NoError(t, cb.CmdPushDescriptorSet(types.BindGraphics, 0, []devstate.Write{
		{Binding: 0, Resource: devstate.BufferResource{Buffer: uniformBuf, Size: 16}},
	}))
	require.NoError(t, cb.CmdBindVertexBuffers(0, []*image.Buffer{vtxBuf}, []int64{0}))
	require.NoError(t, cb.CmdSetViewport(types.Rect2D{Width: testWidth, Height: testHeight}))
	require.NoError(t, cb.CmdDraw(0, 3, 0, 1))
	require.NoError(t, cb.CmdEndRenderPass())
	require.NoError(t, cb.End())
	require.NoError(t, cb.Submit(devstate.New()))

	ct, err := raster.NewColorTarget(fb.Views[0])
	require.NoError(t, err)
	got, err := ct.Read(0, 0)
	require.NoError(t, err)
	assert.InDeltaSlice(t, color[:], got[:], 0.02)
}

func TestBlitImageNearestUpscale(t *testing.T) {
	// 2x2 source: left column red, right column green.
	_, srcView := newBoundImage(t, 2, 2)
	srcCT, err := raster.NewColorTarget(srcView)
	require.NoError(t, err)
	for y := 0; y < 2; y++ {
		require.NoError(t, srcCT.Write(0, y, [4]float32{1, 0, 0, 1}))
		require.NoError(t, srcCT.Write(1, y, [4]float32{0, 1, 0, 1}))
	}

	_, dstView := newBoundImage(t, 4, 4)
	dstCT, err := raster.NewColorTarget(dstView)
	require.NoError(t, err)

	cb := New(LevelPrimary, nil)
	require.NoError(t, cb.Begin(0))
	require.NoError(t, cb.CmdBlitImage(raster.BlitParams{
		Src: srcCT, Dst: dstCT,
		SrcExtentX: 2, SrcExtentY: 2,
		DstExtentX: 4, DstExtentY: 4,
		Filter: raster.FilterNearest,
	}))
	require.NoError(t, cb.End())
	require.NoError(t, cb.Submit(devstate.New()))

	left, err := dstCT.Read(0, 2)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{1, 0, 0, 1}, left[:], 0.02)

	right, err := dstCT.Read(3, 2)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{0, 1, 0, 1}, right[:], 0.02)
}

func newBoundImage(t *testing.T, w, h uint32) (*image.Image, *image.View) {
	t.Helper()
	img, err := image.NewImage(types.FormatRGBA8Unorm, types.Extent3D{Width: w, Height: h, Depth: 1}, 1, 1, types.URenderTarget|types.UTransferSrc|types.UTransferDst)
	require.NoError(t, err)
	mem := image.NewMemory(img.ImageSize().TotalSize)
	require.NoError(t, img.BindMemory(mem, 0))
	view, err := img.NewView(0, 1, 0, 1)
	require.NoError(t, err)
	return img, view
}

func TestDispatchIteratesWorkGroups(t *testing.T) {
	// The compute closure doubles each uint32 in a bound storage buffer,
	// one element per work-group along x.
	raw := make([]byte, 16)
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint32(raw[i*4:], uint32(i+1))
	}
	buf := newTestBuffer(t, 16, types.UShaderWrite, raw)

	setLayout := &devstate.DescriptorSetLayout{Bindings: []devstate.LayoutBinding{
		{Binding: 0, Type: devstate.BindingStorageBuffer, Stages: types.StageCompute},
	}}
	descSet := devstate.NewDescriptorSet(setLayout)
	require.NoError(t, descSet.Update([]devstate.Write{
		{Binding: 0, Resource: devstate.BufferResource{Buffer: buf, Size: 16}},
	}))

	mod := shader.NewCallbackModule()
	mod.AddCompute("cs_main", nil, nil, func(ctx shader.InvocationContext) {
		u, _ := ctx.Uniforms.(*shader.Uniforms)
		data := u.Buffer(0, 0)
		i := int(ctx.WorkGroupID[0])
		v := binary.LittleEndian.Uint32(data[i*4:])
		binary.LittleEndian.PutUint32(data[i*4:], v*2)
	})
	cp := &devstate.ComputePipeline{ComputeShader: mod, ComputeEntry: "cs_main"}

	cb := New(LevelPrimary, nil)
	require.NoError(t, cb.Begin(0))
	require.NoError(t, cb.CmdBindComputePipeline(cp))
	require.NoError(t, cb.CmdBindDescriptorSets(types.BindCompute, 0, []*devstate.DescriptorSet{descSet}, nil))
	require.NoError(t, cb.CmdDispatch(4, 1, 1))
	require.NoError(t, cb.End())
	require.NoError(t, cb.Submit(devstate.New()))

	out, err := buf.Data(0, 16)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		assert.Equal(t, uint32((i+1)*2), binary.LittleEndian.Uint32(out[i*4:]))
	}
}

package cmdbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkcpu/vkcpu/devstate"
	"github.com/vkcpu/vkcpu/image"
	"github.com/vkcpu/vkcpu/raster"
	"github.com/vkcpu/vkcpu/shader"
	"github.com/vkcpu/vkcpu/types"
)

// newTestDepthImage allocates and binds a D32_SFLOAT depth attachment the
// same size as newTestColorImage's color target.
func newTestDepthImage(t *testing.T) (*image.Image, *image.View) {
	t.Helper()
	img, err := image.NewImage(types.FormatD32Float, types.Extent3D{Width: testWidth, Height: testHeight, Depth: 1}, 1, 1, types.URenderTarget)
	require.NoError(t, err)
	mem := image.NewMemory(img.ImageSize().TotalSize)
	require.NoError(t, img.BindMemory(mem, 0))
	view, err := img.NewView(0, 1, 0, 1)
	require.NoError(t, err)
	return img, view
}

// newTestFramebufferWithDepth is newTestFramebuffer plus a depth
// attachment at slot 1, both load_op=CLEAR.
func newTestFramebufferWithDepth(t *testing.T) (*CmdBuffer, *devstate.Framebuffer) {
	t.Helper()
	colorImg, colorView := newTestColorImage(t)
	_, depthView := newTestDepthImage(t)
	rp, err := devstate.NewRenderPass(
		[]devstate.AttachmentDescription{
			{Format: colorImg.Format(), LoadOp: devstate.LoadOpClear, StoreOp: devstate.StoreOpStore},
			{Format: types.FormatD32Float, LoadOp: devstate.LoadOpClear, StoreOp: devstate.StoreOpStore},
		},
		[]devstate.Subpass{{ColorAttachments: []uint32{0}, DepthStencilAttachment: uint32Ptr(1)}},
	)
	require.NoError(t, err)
	fb, err := devstate.NewFramebuffer(rp, []*image.View{colorView, depthView}, testWidth, testHeight, 1)
	require.NoError(t, err)
	return New(LevelPrimary, nil), fb
}

func uint32Ptr(v uint32) *uint32 { return &v }

// coveringTriangleModule is a passthrough vertex stage plus a fragment
// shader that always emits a fixed color, used by the depth-culling
// scenario where only the winning triangle's color should survive.
func coveringTriangleModule(color [4]float32) *shader.CallbackModule {
	mod := shader.NewCallbackModule()
	mod.AddVertex("vs_main", nil, nil, nil, shader.PassthroughVertex)
	mod.AddFragment("fs_main", nil, nil, nil, func(shader.InvocationContext, shader.Fragment) [4]float32 {
		return color
	})
	return mod
}

func fullScreenTriangle(z float32) []float32 {
	return []float32{
		-1, -1, z,
		3, -1, z,
		-1, 3, z,
	}
}

// TestDepthCulling draws two full-screen triangles at different depths;
// both cover every pixel. The nearer (z=0.5, red) is drawn first and
// must win the depth test over the farther (z=0.7, blue) drawn second,
// because the second draw's fragments fail the depth compare.
func TestDepthCulling(t *testing.T) {
	cb, fb := newTestFramebufferWithDepth(t)

	red := coveringTriangleModule([4]float32{1, 0, 0, 1})
	blue := coveringTriangleModule([4]float32{0, 0, 1, 1})

	nearBuf := newTestBuffer(t, 36, types.UVertexData, float32sToBytes(fullScreenTriangle(0.5)))
	farBuf := newTestBuffer(t, 36, types.UVertexData, float32sToBytes(fullScreenTriangle(0.7)))

	mkPipeline := func(mod *shader.CallbackModule) *devstate.GraphicsPipeline {
		return &devstate.GraphicsPipeline{
			VertexBuffers: []devstate.VertexBindingState{{
				Binding: 0, Stride: 12,
				Attributes: []types.VertexAttribute{{Location: 0, Binding: 0, Format: types.VFFloat32x3, Offset: 0}},
			}},
			VertexShader:   mod,
			VertexEntry:    "vs_main",
			FragmentShader: mod,
			FragmentEntry:  "fs_main",
			Raster:         devstate.RasterState{Topology: types.TopologyTriangleList, CullMode: devstate.CullNone},
			DepthStencil:   &devstate.DepthStencilState{DepthTestEnable: true, DepthWriteEnable: true, DepthCompare: devstate.CompareLess},
			ColorTargets:   []devstate.ColorTarget{{Format: types.FormatRGBA8Unorm, WriteMask: devstate.ColorWriteAll}},
		}
	}

	require.NoError(t, cb.Begin(0))
	require.NoError(t, cb.CmdBeginRenderPass(devstate.RenderPassBeginInfo{
		Framebuffer: fb,
		RenderArea:  types.Rect2D{Width: testWidth, Height: testHeight},
		ClearValues: []devstate.ClearValue{{Color: [4]float32{0, 0, 0, 1}}, {Depth: 1.0}},
	}))
	require.NoError(t, cb.CmdSetViewport(types.Rect2D{Width: testWidth, Height: testHeight}))

	require.NoError(t, cb.CmdBindPipeline(mkPipeline(red)))
	require.NoError(t, cb.CmdBindVertexBuffers(0, []*image.Buffer{nearBuf}, []int64{0}))
	require.NoError(t, cb.CmdDraw(0, 3, 0, 1))

	require.NoError(t, cb.CmdBindPipeline(mkPipeline(blue)))
	require.NoError(t, cb.CmdBindVertexBuffers(0, []*image.Buffer{farBuf}, []int64{0}))
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
			assert.InDeltaSlice(t, []float32{1, 0, 0, 1}, got[:], 0.02, "pixel (%d,%d) should stay red: nearer triangle must win depth test", x, y)
		}
	}
}

// newTestStencilFramebuffer is newTestFramebufferWithDepth but with a
// combined depth/stencil attachment (FormatD24UnormS8Uint) so the
// stencil aspect is actually backed by storage.
func newTestStencilFramebuffer(t *testing.T) (*CmdBuffer, *devstate.Framebuffer) {
	t.Helper()
	colorImg, colorView := newTestColorImage(t)
	dsImg, err := image.NewImage(types.FormatD24UnormS8Uint, types.Extent3D{Width: testWidth, Height: testHeight, Depth: 1}, 1, 1, types.URenderTarget)
	require.NoError(t, err)
	dsMem := image.NewMemory(dsImg.ImageSize().TotalSize)
	require.NoError(t, dsImg.BindMemory(dsMem, 0))
	dsView, err := dsImg.NewView(0, 1, 0, 1)
	require.NoError(t, err)

	rp, err := devstate.NewRenderPass(
		[]devstate.AttachmentDescription{
			{Format: colorImg.Format(), LoadOp: devstate.LoadOpClear, StoreOp: devstate.StoreOpStore},
			{Format: types.FormatD24UnormS8Uint, LoadOp: devstate.LoadOpClear, StoreOp: devstate.StoreOpStore, StencilLoadOp: devstate.LoadOpClear},
		},
		[]devstate.Subpass{{ColorAttachments: []uint32{0}, DepthStencilAttachment: uint32Ptr(1)}},
	)
	require.NoError(t, err)
	fb, err := devstate.NewFramebuffer(rp, []*image.View{colorView, dsView}, testWidth, testHeight, 1)
	require.NoError(t, err)
	return New(LevelPrimary, nil), fb
}

// TestStencilTestGatesDraw exercises the stencil test wired into
// shadeFragment: a first draw stamps stencil=1 everywhere (Always/
// Replace), then a second draw in the same render pass with a
// mismatched stencil reference must be rejected before its fragment
// shader ever runs, leaving the first draw's color untouched. A second,
// independent framebuffer checks the matching-reference pass path
// (CompareEqual against the cleared stencil=0 default) does let a draw
// through and overwrite color, confirming both legs of compareStencil
// actually gate shadeFragment.
func TestStencilTestGatesDraw(t *testing.T) {
	green := coveringTriangleModule([4]float32{0, 1, 0, 1})
	blue := coveringTriangleModule([4]float32{0, 0, 1, 1})
	red := coveringTriangleModule([4]float32{1, 0, 0, 1})
	tri := newTestBuffer(t, 36, types.UVertexData, float32sToBytes(fullScreenTriangle(0)))

	mkPipeline := func(mod *shader.CallbackModule, ds *devstate.DepthStencilState) *devstate.GraphicsPipeline {
		return &devstate.GraphicsPipeline{
			VertexBuffers: []devstate.VertexBindingState{{
				Binding: 0, Stride: 12,
				Attributes: []types.VertexAttribute{{Location: 0, Binding: 0, Format: types.VFFloat32x3, Offset: 0}},
			}},
			VertexShader:   mod,
			VertexEntry:    "vs_main",
			FragmentShader: mod,
			FragmentEntry:  "fs_main",
			Raster:         devstate.RasterState{Topology: types.TopologyTriangleList, CullMode: devstate.CullNone},
			DepthStencil:   ds,
			ColorTargets:   []devstate.ColorTarget{{Format: types.FormatRGBA8Unorm, WriteMask: devstate.ColorWriteAll}},
		}
	}

	stampDS := &devstate.DepthStencilState{
		StencilTestEnable: true,
		StencilReadMask:   0xFF,
		StencilWriteMask:  0xFF,
		StencilFront:      devstate.StencilFaceState{Compare: devstate.CompareAlways, PassOp: devstate.StencilReplace, FailOp: devstate.StencilKeep, DepthFailOp: devstate.StencilKeep},
		StencilBack:       devstate.StencilFaceState{Compare: devstate.CompareAlways, PassOp: devstate.StencilReplace, FailOp: devstate.StencilKeep, DepthFailOp: devstate.StencilKeep},
	}
	gateDS := &devstate.DepthStencilState{
		StencilTestEnable: true,
		StencilReadMask:   0xFF,
		StencilWriteMask:  0xFF,
		StencilFront:      devstate.StencilFaceState{Compare: devstate.CompareEqual, PassOp: devstate.StencilKeep, FailOp: devstate.StencilKeep, DepthFailOp: devstate.StencilKeep},
		StencilBack:       devstate.StencilFaceState{Compare: devstate.CompareEqual, PassOp: devstate.StencilKeep, FailOp: devstate.StencilKeep, DepthFailOp: devstate.StencilKeep},
	}

	// Leg 1: stamp stencil=1, then a mismatched reference must be
	// rejected and leave the stamped color in place.
	cb, fb := newTestStencilFramebuffer(t)
	require.NoError(t, cb.Begin(0))
	require.NoError(t, cb.CmdBeginRenderPass(devstate.RenderPassBeginInfo{
		Framebuffer: fb,
		RenderArea:  types.Rect2D{Width: testWidth, Height: testHeight},
		ClearValues: []devstate.ClearValue{{Color: [4]float32{0, 0, 0, 1}}, {Depth: 1.0, Stencil: 0}},
	}))
	require.NoError(t, cb.CmdSetViewport(types.Rect2D{Width: testWidth, Height: testHeight}))
	require.NoError(t, cb.CmdBindVertexBuffers(0, []*image.Buffer{tri}, []int64{0}))

	require.NoError(t, cb.CmdSetStencilReference(1))
	require.NoError(t, cb.CmdBindPipeline(mkPipeline(green, stampDS)))
	require.NoError(t, cb.CmdDraw(0, 3, 0, 1))

	require.NoError(t, cb.CmdSetStencilReference(2))
	require.NoError(t, cb.CmdBindPipeline(mkPipeline(red, gateDS)))
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
			assert.InDeltaSlice(t, []float32{0, 1, 0, 1}, got[:], 0.02,
				"pixel (%d,%d) should stay green: mismatched stencil reference must reject the second draw", x, y)
		}
	}

	// Leg 2: a fresh framebuffer clears stencil to 0; a draw referencing
	// 0 with CompareEqual must pass and paint the target.
	cb2, fb2 := newTestStencilFramebuffer(t)
	require.NoError(t, cb2.Begin(0))
	require.NoError(t, cb2.CmdBeginRenderPass(devstate.RenderPassBeginInfo{
		Framebuffer: fb2,
		RenderArea:  types.Rect2D{Width: testWidth, Height: testHeight},
		ClearValues: []devstate.ClearValue{{Color: [4]float32{0, 0, 0, 1}}, {Depth: 1.0, Stencil: 0}},
	}))
	require.NoError(t, cb2.CmdSetViewport(types.Rect2D{Width: testWidth, Height: testHeight}))
	require.NoError(t, cb2.CmdBindVertexBuffers(0, []*image.Buffer{tri}, []int64{0}))
	require.NoError(t, cb2.CmdSetStencilReference(0))
	require.NoError(t, cb2.CmdBindPipeline(mkPipeline(blue, gateDS)))
	require.NoError(t, cb2.CmdDraw(0, 3, 0, 1))
	require.NoError(t, cb2.CmdEndRenderPass())
	require.NoError(t, cb2.End())
	require.NoError(t, cb2.Submit(devstate.New()))

	ct2, err := raster.NewColorTarget(fb2.Views[0])
	require.NoError(t, err)
	for y := 0; y < testHeight; y++ {
		for x := 0; x < testWidth; x++ {
			got, err := ct2.Read(x, y)
			require.NoError(t, err)
			assert.InDeltaSlice(t, []float32{0, 0, 1, 1}, got[:], 0.02,
				"pixel (%d,%d) should turn blue: a matching stencil reference must pass", x, y)
		}
	}
}

// TestCopyBufferToImageRoundTrip checks that a 16-byte buffer copied
// into a 4x4x1 R8_UINT image, then copied back into a fresh buffer, is
// byte-identical to the source.
func TestCopyBufferToImageRoundTrip(t *testing.T) {
	src := make([]byte, 16)
	for i := range src {
		src[i] = byte(i)
	}
	srcBuf := newTestBuffer(t, 16, types.UTransferSrc, src)

	img, err := image.NewImage(types.FormatR8Uint, types.Extent3D{Width: 4, Height: 4, Depth: 1}, 1, 1, types.UTransferDst|types.UTransferSrc)
	require.NoError(t, err)
	mem := image.NewMemory(img.ImageSize().TotalSize)
	require.NoError(t, img.BindMemory(mem, 0))

	dstBuf := image.NewBuffer(16, types.UTransferDst)
	dstMem := image.NewMemory(16)
	require.NoError(t, dstBuf.BindMemory(dstMem, 0))

	cb := New(LevelPrimary, nil)
	require.NoError(t, cb.Begin(0))
	require.NoError(t, cb.CmdCopyBufferToImage(srcBuf, 0, img, image.CopySubresource{}, 4, 4, 1))
	require.NoError(t, cb.CmdCopyImageToBuffer(img, image.CopySubresource{}, dstBuf, 0, 4, 4, 1))
	require.NoError(t, cb.End())
	require.NoError(t, cb.Submit(devstate.New()))

	out, err := dstBuf.Data(0, 16)
	require.NoError(t, err)
	assert.Equal(t, src, []byte(out))
}

// TestDynamicUniformOffset issues two draws that bind the same
// descriptor set but different dynamic offsets into a uniform buffer
// holding two distinct colors, each scissored to half of a wide
// attachment.
func TestDynamicUniformOffset(t *testing.T) {
	const w, h = 4, 2
	img, err := image.NewImage(types.FormatRGBA8Unorm, types.Extent3D{Width: w, Height: h, Depth: 1}, 1, 1, types.URenderTarget)
	require.NoError(t, err)
	mem := image.NewMemory(img.ImageSize().TotalSize)
	require.NoError(t, img.BindMemory(mem, 0))
	view, err := img.NewView(0, 1, 0, 1)
	require.NoError(t, err)
	rp, err := devstate.NewRenderPass(
		[]devstate.AttachmentDescription{{Format: img.Format(), LoadOp: devstate.LoadOpClear, StoreOp: devstate.StoreOpStore}},
		[]devstate.Subpass{{ColorAttachments: []uint32{0}}},
	)
	require.NoError(t, err)
	fb, err := devstate.NewFramebuffer(rp, []*image.View{view}, w, h, 1)
	require.NoError(t, err)

	colorA := [4]float32{1, 0, 0, 1}
	colorB := [4]float32{0, 1, 0, 1}
	const stride = 256 // dynamic uniform offsets are alignment-rounded in real drivers; any positive stride works here since this driver does not enforce a minimum.
	uniformRaw := make([]byte, stride+16)
	copy(uniformRaw[0:], float32sToBytes(colorA[:]))
	copy(uniformRaw[stride:], float32sToBytes(colorB[:]))
	uniformBuf := newTestBuffer(t, int64(len(uniformRaw)), types.UShaderConst, uniformRaw)

	setLayout := &devstate.DescriptorSetLayout{Bindings: []devstate.LayoutBinding{
		{Binding: 0, Type: devstate.BindingUniformBuffer, Stages: types.StageFragment, HasDynamicOffset: true},
	}}
	layout := &devstate.PipelineLayout{SetLayouts: []*devstate.DescriptorSetLayout{setLayout}}
	descSet := devstate.NewDescriptorSet(setLayout)
	require.NoError(t, descSet.Update([]devstate.Write{
		{Binding: 0, Resource: devstate.BufferResource{Buffer: uniformBuf, Size: 16}},
	}))

	mod := uniformColorModule()
	gp := &devstate.GraphicsPipeline{
		Layout: layout,
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
	vtxBuf := newTestBuffer(t, 36, types.UVertexData, float32sToBytes(fullScreenTriangle(0)))

	cb := New(LevelPrimary, nil)
	require.NoError(t, cb.Begin(0))
	require.NoError(t, cb.CmdBeginRenderPass(devstate.RenderPassBeginInfo{
		Framebuffer: fb,
		RenderArea:  types.Rect2D{Width: w, Height: h},
		ClearValues: []devstate.ClearValue{{Color: [4]float32{0, 0, 0, 1}}},
	}))
	require.NoError(t, cb.CmdBindPipeline(gp))
	require.NoError(t, cb.CmdBindVertexBuffers(0, []*image.Buffer{vtxBuf}, []int64{0}))
	require.NoError(t, cb.CmdSetViewport(types.Rect2D{Width: w, Height: h}))

	// Left half gets colorA via dynamic offset 0.
	require.NoError(t, cb.CmdSetScissor(types.Rect2D{X: 0, Y: 0, Width: w / 2, Height: h}))
	require.NoError(t, cb.CmdBindDescriptorSets(types.BindGraphics, 0, []*devstate.DescriptorSet{descSet}, []int64{0}))
	require.NoError(t, cb.CmdDraw(0, 3, 0, 1))

	// Right half gets colorB via dynamic offset `stride`.
	require.NoError(t, cb.CmdSetScissor(types.Rect2D{X: w / 2, Y: 0, Width: w / 2, Height: h}))
	require.NoError(t, cb.CmdBindDescriptorSets(types.BindGraphics, 0, []*devstate.DescriptorSet{descSet}, []int64{stride}))
	require.NoError(t, cb.CmdDraw(0, 3, 0, 1))

	require.NoError(t, cb.CmdEndRenderPass())
	require.NoError(t, cb.End())
	require.NoError(t, cb.Submit(devstate.New()))

	ct, err := raster.NewColorTarget(fb.Views[0])
	require.NoError(t, err)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			got, err := ct.Read(x, y)
			require.NoError(t, err)
			if x < w/2 {
				assert.InDeltaSlice(t, colorA[:], got[:], 0.02, "left half pixel (%d,%d)", x, y)
			} else {
				assert.InDeltaSlice(t, colorB[:], got[:], 0.02, "right half pixel (%d,%d)", x, y)
			}
		}
	}
}

// TestReplayDeterminism submits the same reusable command buffer twice;
// since the render pass clears its attachment on load, both replays
// start from the same effective state and must leave bit-identical
// attachment contents.
func TestReplayDeterminism(t *testing.T) {
	cb, fb := newTestFramebuffer(t)
	vtxBuf := newTestBuffer(t, 36, types.UVertexData, float32sToBytes(fullScreenTriangle(0)))
	mod := coveringTriangleModule([4]float32{0.3, 0.6, 0.9, 1})
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
	require.NoError(t, cb.CmdBindVertexBuffers(0, []*image.Buffer{vtxBuf}, []int64{0}))
	require.NoError(t, cb.CmdSetViewport(types.Rect2D{Width: testWidth, Height: testHeight}))
	require.NoError(t, cb.CmdDraw(0, 3, 0, 1))
	require.NoError(t, cb.CmdEndRenderPass())
	require.NoError(t, cb.End())

	snapshot := func() []byte {
		px, err := fb.Views[0].Image.GetPtr(0, fb.Views[0].Image.ImageSize().TotalSize)
		require.NoError(t, err)
		return append([]byte(nil), px...)
	}

	require.NoError(t, cb.Submit(devstate.New()))
	first := snapshot()
	require.NoError(t, cb.Submit(devstate.New()))
	second := snapshot()

	assert.Equal(t, first, second)
}

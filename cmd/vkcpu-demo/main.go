// Command vkcpu-demo clears a small render target, draws one
// full-screen triangle with a color read from a bound uniform buffer,
// and prints the resulting center pixel for visual verification.
//
// The example is headless: it never touches a window system or a real
// GPU, since vkcpu replays everything on the CPU.
package main

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/vkcpu/vkcpu"
	"github.com/vkcpu/vkcpu/cmdbuf"
	"github.com/vkcpu/vkcpu/devstate"
	"github.com/vkcpu/vkcpu/image"
	"github.com/vkcpu/vkcpu/raster"
	"github.com/vkcpu/vkcpu/shader"
	"github.com/vkcpu/vkcpu/types"
)

const (
	width  = 4
	height = 4
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("FATAL: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fmt.Println("=== vkcpu: solid-color triangle ===")

	fmt.Print("1. Creating device... ")
	driver := vkcpu.NewDriver()
	device := driver.CreateDevice()
	fmt.Println("OK")

	fmt.Print("2. Allocating color target... ")
	colorImg, colorView, err := newColorTarget(device)
	if err != nil {
		return fmt.Errorf("newColorTarget: %w", err)
	}
	fmt.Println("OK")

	fmt.Print("3. Building render pass and framebuffer... ")
	rp, err := devstate.NewRenderPass(
		[]devstate.AttachmentDescription{{
			Format:  colorImg.Format(),
			LoadOp:  devstate.LoadOpClear,
			StoreOp: devstate.StoreOpStore,
		}},
		[]devstate.Subpass{{ColorAttachments: []uint32{0}}},
	)
	if err != nil {
		return fmt.Errorf("NewRenderPass: %w", err)
	}
	fb, err := devstate.NewFramebuffer(rp, []*image.View{colorView}, width, height, 1)
	if err != nil {
		return fmt.Errorf("NewFramebuffer: %w", err)
	}
	fmt.Println("OK")

	fmt.Print("4. Building shader module and pipeline... ")
	mod := solidColorModule()
	setLayout := &devstate.DescriptorSetLayout{Bindings: []devstate.LayoutBinding{
		{Binding: 0, Type: devstate.BindingUniformBuffer, Stages: types.StageFragment},
	}}
	layout := &devstate.PipelineLayout{SetLayouts: []*devstate.DescriptorSetLayout{setLayout}}
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
		ColorTargets:   []devstate.ColorTarget{{Format: colorImg.Format(), WriteMask: devstate.ColorWriteAll}},
	}
	fmt.Println("OK")

	fmt.Print("5. Uploading vertex buffer and uniform color... ")
	vtxBuf, err := newVertexBuffer(device)
	if err != nil {
		return fmt.Errorf("newVertexBuffer: %w", err)
	}
	uniformBuf, err := newUniformColor(device, [4]float32{0.2, 0.4, 0.8, 1})
	if err != nil {
		return fmt.Errorf("newUniformColor: %w", err)
	}
	descSet := devstate.NewDescriptorSet(setLayout)
	if err := descSet.Update([]devstate.Write{
		{Binding: 0, Resource: devstate.BufferResource{Buffer: uniformBuf, Size: 16}},
	}); err != nil {
		return fmt.Errorf("descriptor Update: %w", err)
	}
	fmt.Println("OK")

	fmt.Print("6. Recording and submitting command buffer... ")
	cb := device.NewCmdBuffer(cmdbuf.LevelPrimary, nil)
	if err := cb.Begin(cmdbuf.FlagOneTimeSubmit); err != nil {
		return err
	}
	if err := cb.CmdBeginRenderPass(devstate.RenderPassBeginInfo{
		Framebuffer: fb,
		RenderArea:  types.Rect2D{Width: width, Height: height},
		ClearValues: []devstate.ClearValue{{Color: [4]float32{0, 0, 0, 1}}},
	}); err != nil {
		return err
	}
	if err := cb.CmdBindPipeline(gp); err != nil {
		return err
	}
	if err := cb.CmdBindDescriptorSets(types.BindGraphics, 0, []*devstate.DescriptorSet{descSet}, nil); err != nil {
		return err
	}
	if err := cb.CmdBindVertexBuffers(0, []*image.Buffer{vtxBuf}, []int64{0}); err != nil {
		return err
	}
	if err := cb.CmdSetViewport(types.Rect2D{Width: width, Height: height}); err != nil {
		return err
	}
	if err := cb.CmdDraw(0, 3, 0, 1); err != nil {
		return err
	}
	if err := cb.CmdEndRenderPass(); err != nil {
		return err
	}
	if err := cb.End(); err != nil {
		return err
	}

	state := device.NewState()
	if err := device.Submit(cb, state); err != nil {
		return fmt.Errorf("Submit: %w", err)
	}
	fmt.Println("OK")

	fmt.Print("7. Reading back center pixel... ")
	ct, err := raster.NewColorTarget(colorView)
	if err != nil {
		return err
	}
	color, err := ct.Read(width/2, height/2)
	if err != nil {
		return err
	}
	fmt.Printf("OK: %.2f\n", color)
	return nil
}

func newColorTarget(device *vkcpu.Device) (*image.Image, *image.View, error) {
	img, err := device.NewImage(types.FormatRGBA8Unorm, types.Extent3D{Width: width, Height: height, Depth: 1}, 1, 1, types.URenderTarget)
	if err != nil {
		return nil, nil, err
	}
	mem := device.AllocateMemory(img.ImageSize().TotalSize)
	if err := img.BindMemory(mem, 0); err != nil {
		return nil, nil, err
	}
	view, err := img.NewView(0, 1, 0, 1)
	if err != nil {
		return nil, nil, err
	}
	return img, view, nil
}

func newVertexBuffer(device *vkcpu.Device) (*image.Buffer, error) {
	// Three 2D positions (z=0) covering the whole [-1,1] clip-space
	// square as one large triangle, clipped by the viewport transform.
	data := []float32{
		-1, -1, 0,
		3, -1, 0,
		-1, 3, 0,
	}
	raw := float32sToBytes(data)
	buf := device.NewBuffer(int64(len(raw)), types.UVertexData)
	mem := device.AllocateMemory(buf.Size())
	if err := buf.BindMemory(mem, 0); err != nil {
		return nil, err
	}
	dst, err := buf.Data(0, buf.Size())
	if err != nil {
		return nil, err
	}
	copy(dst, raw)
	return buf, nil
}

func newUniformColor(device *vkcpu.Device, color [4]float32) (*image.Buffer, error) {
	raw := float32sToBytes(color[:])
	buf := device.NewBuffer(int64(len(raw)), types.UShaderConst)
	mem := device.AllocateMemory(buf.Size())
	if err := buf.BindMemory(mem, 0); err != nil {
		return nil, err
	}
	dst, err := buf.Data(0, buf.Size())
	if err != nil {
		return nil, err
	}
	copy(dst, raw)
	return buf, nil
}

func float32sToBytes(vals []float32) []byte {
	out := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

// solidColorModule builds a CallbackModule whose fragment stage reads
// its output color from the resolved uniform buffer at (set 0, binding
// 0), rather than shader.NewSolidColorModule, since that one
// expects its uniform as a concrete Go struct, not a resolved
// descriptor view.
func solidColorModule() *shader.CallbackModule {
	mod := shader.NewCallbackModule()
	mod.AddVertex("vs_main", nil, nil, nil, func(ctx shader.InvocationContext, position [3]float32, attributes []float32) shader.ClipSpaceVertex {
		return shader.ClipSpaceVertex{Position: [4]float32{position[0], position[1], position[2], 1}}
	})
	mod.AddFragment("fs_main", nil, nil, nil, func(ctx shader.InvocationContext, frag shader.Fragment) [4]float32 {
		u, _ := ctx.Uniforms.(*shader.Uniforms)
		raw := u.Buffer(0, 0)
		var color [4]float32
		for i := range color {
			color[i] = bytesToFloat32(raw[i*4 : i*4+4])
		}
		return color
	})
	return mod
}

func bytesToFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

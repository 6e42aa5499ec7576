package devstate

import (
	"github.com/vkcpu/vkcpu/shader"
	"github.com/vkcpu/vkcpu/types"
)

// VertexBindingState describes one vertex buffer binding's stride and
// step rate plus the attributes that fetch from it.
type VertexBindingState struct {
	Binding     uint32
	Stride      uint32
	PerInstance bool
	Attributes  []types.VertexAttribute
}

// ColorTarget is a render-target format plus its blend state and write
// mask.
type ColorTarget struct {
	Format    types.PixelFormat
	Blend     BlendState
	WriteMask uint8
}

// Color channel write-mask bits.
const (
	ColorWriteRed uint8 = 1 << iota
	ColorWriteGreen
	ColorWriteBlue
	ColorWriteAlpha
	ColorWriteAll = ColorWriteRed | ColorWriteGreen | ColorWriteBlue | ColorWriteAlpha
)

// BlendFactor selects a source or destination blend coefficient,
// covering the VkBlendFactor set: constant color and constant alpha
// are distinct factors, and the Src1* entries reference the second
// source color of a dual-source fragment output.
type BlendFactor uint8

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcColor
	BlendOneMinusSrcColor
	BlendDstColor
	BlendOneMinusDstColor
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstAlpha
	BlendOneMinusDstAlpha
	BlendConstantColor
	BlendOneMinusConstantColor
	BlendConstantAlpha
	BlendOneMinusConstantAlpha
	BlendSrcAlphaSaturate
	BlendSrc1Color
	BlendOneMinusSrc1Color
	BlendSrc1Alpha
	BlendOneMinusSrc1Alpha
)

// BlendOp combines the weighted source and destination terms, per
// VkBlendOp. Min and Max operate on the unweighted source and
// destination; the factors do not apply to them.
type BlendOp uint8

const (
	BlendOpAdd BlendOp = iota
	BlendOpSubtract
	BlendOpReverseSubtract
	BlendOpMin
	BlendOpMax
)

// BlendState configures the fixed-function blend stage for one color
// target: independent factor/op pairs for the color and alpha
// equations, plus the blend constant the Constant* factors reference.
type BlendState struct {
	Enabled  bool
	SrcColor BlendFactor
	DstColor BlendFactor
	ColorOp  BlendOp
	SrcAlpha BlendFactor
	DstAlpha BlendFactor
	AlphaOp  BlendOp
	Constant [4]float32
}

// CompareFunction is the comparison applied by depth/stencil tests.
type CompareFunction uint8

const (
	CompareNever CompareFunction = iota
	CompareLess
	CompareEqual
	CompareLessEqual
	CompareGreater
	CompareNotEqual
	CompareGreaterEqual
	CompareAlways
)

// StencilOperation is applied to the stored stencil value when a
// fragment passes or fails the stencil/depth tests.
type StencilOperation uint8

const (
	StencilKeep StencilOperation = iota
	StencilZero
	StencilReplace
	StencilInvert
	StencilIncrementClamp
	StencilDecrementClamp
	StencilIncrementWrap
	StencilDecrementWrap
)

// StencilFaceState holds the per-face stencil compare and the ops run
// on stencil-fail, depth-fail and pass.
type StencilFaceState struct {
	Compare     CompareFunction
	FailOp      StencilOperation
	DepthFailOp StencilOperation
	PassOp      StencilOperation
}

// DepthStencilState configures the depth and stencil tests. There is
// no depth bias: it is a rasterization-hardware concept this driver
// does not model.
type DepthStencilState struct {
	DepthTestEnable   bool
	DepthWriteEnable  bool
	DepthCompare      CompareFunction
	StencilTestEnable bool
	StencilFront      StencilFaceState
	StencilBack       StencilFaceState
	StencilReadMask   uint32
	StencilWriteMask  uint32
}

// RasterState holds the fixed-function rasterizer configuration: cull
// mode, front-face winding and primitive topology.
type RasterState struct {
	Topology  types.Topology
	CullMode  CullMode
	FrontFace FrontFace
}

// CullMode selects which triangle facing, if any, is discarded.
type CullMode uint8

const (
	CullNone CullMode = iota
	CullFront
	CullBack
)

// FrontFace selects which winding order counts as front-facing.
type FrontFace uint8

const (
	FrontFaceCCW FrontFace = iota
	FrontFaceCW
)

// GraphicsPipeline is the bound-together state a Draw/DrawIndexed
// command replays against: vertex input layout, shader stages,
// rasterizer and blend/depth-stencil fixed-function state.
type GraphicsPipeline struct {
	Layout         *PipelineLayout
	VertexBuffers  []VertexBindingState
	VertexShader   shader.Module
	VertexEntry    string
	FragmentShader shader.Module
	FragmentEntry  string
	Raster         RasterState
	DepthStencil   *DepthStencilState
	ColorTargets   []ColorTarget
}

// ComputePipeline is the state a Dispatch command replays against.
type ComputePipeline struct {
	Layout        *PipelineLayout
	ComputeShader shader.Module
	ComputeEntry  string
}

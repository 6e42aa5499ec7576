// Package shader provides callback-based shader execution. There is no
// SPIR-V/WGSL interpreter here: vertex and fragment stages are plain Go
// functions, and "compiling" a shader module means wrapping those
// functions so the rasterizer can look them up by entry point name the
// same way it would look up entry points in a real shader binary.
package shader

import "fmt"

// Kind classifies the shape of a shader-visible value. Code that walks
// a Module's interface switches on Kind rather than type-asserting ad
// hoc.
type Kind uint8

const (
	KindFloat Kind = iota
	KindFloat2
	KindFloat3
	KindFloat4
	KindInt
	KindUint
	KindBuiltin
)

// Builtin names a shader builtin value (vertex index, instance index,
// work-group id, clip-space position, ...).
type Builtin uint8

const (
	BuiltinNone Builtin = iota
	BuiltinVertexIndex
	BuiltinInstanceIndex
	BuiltinWorkGroupID
	BuiltinLocalInvocationID
	BuiltinGlobalInvocationID
	BuiltinPosition
	BuiltinPointSize
	BuiltinFragDepth
)

// Variable is one declared input, output or descriptor binding of a
// shader entry point.
type Variable struct {
	Name     string
	Kind     Kind
	Builtin  Builtin
	Location uint32
	Binding  uint32
}

// ErrUnknownEntryPoint reports a request for an entry point a Module
// does not declare.
var ErrUnknownEntryPoint = fmt.Errorf("shader: unknown entry point")

// Module is a compiled shader: a named set of entry points, each with a
// declared interface (Inputs/Outputs/Descriptors) and an executable
// body. The three Dispatch* methods use typed, stage-specific
// signatures rather than a single flattened []float32 form, since
// clip-space position, barycentric weights and depth are load-bearing
// in the rasterizer and not just "one more attribute".
type Module interface {
	// EntryPoints lists every entry point name this module declares.
	EntryPoints() []string

	// Inputs returns the input variable declarations for entry.
	Inputs(entry string) ([]Variable, error)

	// Outputs returns the output variable declarations for entry.
	Outputs(entry string) ([]Variable, error)

	// Descriptors returns the descriptor bindings entry reads from.
	Descriptors(entry string) ([]Variable, error)

	// DispatchVertex runs entry as a vertex-stage invocation.
	DispatchVertex(entry string, ctx InvocationContext, position [3]float32, attributes []float32) (ClipSpaceVertex, error)

	// DispatchFragment runs entry as a fragment-stage invocation.
	DispatchFragment(entry string, ctx InvocationContext, frag Fragment) ([4]float32, error)

	// DispatchCompute runs entry as one compute work-item invocation.
	DispatchCompute(entry string, ctx InvocationContext) error
}

// ClipSpaceVertex is the output of a vertex-stage invocation.
type ClipSpaceVertex struct {
	Position   [4]float32
	Attributes []float32
}

// Fragment is the input to a fragment-stage invocation.
type Fragment struct {
	X, Y       int
	Depth      float32
	Bary       [3]float32
	Attributes []float32
}

// InvocationContext carries the builtin values available to a single
// shader invocation: which vertex/instance is being processed for a
// vertex stage, or which work-group/local/global id for a compute
// stage. Exactly the fields relevant to the invoking stage are set.
type InvocationContext struct {
	VertexIndex   uint32
	InstanceIndex uint32
	WorkGroupID   [3]uint32
	LocalID       [3]uint32
	GlobalID      [3]uint32

	// Uniforms is the user-defined uniform/descriptor data a shader
	// closure needs, threaded through opaquely by the stage drivers.
	Uniforms any
}

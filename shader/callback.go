package shader

import "fmt"

// VertexFunc transforms one vertex from object space to clip space.
type VertexFunc func(ctx InvocationContext, position [3]float32, attributes []float32) ClipSpaceVertex

// FragmentFunc computes the final color for one fragment.
type FragmentFunc func(ctx InvocationContext, frag Fragment) [4]float32

// ComputeFunc runs one compute work-item. Compute has no fixed-function
// caller expecting a return value; all communication happens by the
// closure writing through ctx.Uniforms to shared buffers.
type ComputeFunc func(ctx InvocationContext)

// entryPoint bundles one named entry's declared interface with
// whichever one of the three stage functions it implements.
type entryPoint struct {
	inputs      []Variable
	outputs     []Variable
	descriptors []Variable
	vertex      VertexFunc
	fragment    FragmentFunc
	compute     ComputeFunc
}

// CallbackModule is a Module built directly from Go closures. There is
// no shader bytecode to parse; each entry point is a function
// registered under a name.
type CallbackModule struct {
	entries map[string]entryPoint
	order   []string
}

// NewCallbackModule returns an empty module; use AddVertex/AddFragment/
// AddCompute to register entry points.
func NewCallbackModule() *CallbackModule {
	return &CallbackModule{entries: make(map[string]entryPoint)}
}

func (m *CallbackModule) register(name string, ep entryPoint) {
	if _, exists := m.entries[name]; !exists {
		m.order = append(m.order, name)
	}
	m.entries[name] = ep
}

// AddVertex registers a vertex-stage entry point.
func (m *CallbackModule) AddVertex(name string, inputs, outputs, descriptors []Variable, fn VertexFunc) {
	m.register(name, entryPoint{inputs: inputs, outputs: outputs, descriptors: descriptors, vertex: fn})
}

// AddFragment registers a fragment-stage entry point.
func (m *CallbackModule) AddFragment(name string, inputs, outputs, descriptors []Variable, fn FragmentFunc) {
	m.register(name, entryPoint{inputs: inputs, outputs: outputs, descriptors: descriptors, fragment: fn})
}

// AddCompute registers a compute-stage entry point.
func (m *CallbackModule) AddCompute(name string, inputs, descriptors []Variable, fn ComputeFunc) {
	m.register(name, entryPoint{inputs: inputs, descriptors: descriptors, compute: fn})
}

func (m *CallbackModule) EntryPoints() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

func (m *CallbackModule) lookup(entry string) (entryPoint, error) {
	ep, ok := m.entries[entry]
	if !ok {
		return entryPoint{}, fmt.Errorf("%w: %q", ErrUnknownEntryPoint, entry)
	}
	return ep, nil
}

func (m *CallbackModule) Inputs(entry string) ([]Variable, error) {
	ep, err := m.lookup(entry)
	return ep.inputs, err
}

func (m *CallbackModule) Outputs(entry string) ([]Variable, error) {
	ep, err := m.lookup(entry)
	return ep.outputs, err
}

func (m *CallbackModule) Descriptors(entry string) ([]Variable, error) {
	ep, err := m.lookup(entry)
	return ep.descriptors, err
}

func (m *CallbackModule) DispatchVertex(entry string, ctx InvocationContext, position [3]float32, attributes []float32) (ClipSpaceVertex, error) {
	ep, err := m.lookup(entry)
	if err != nil {
		return ClipSpaceVertex{}, err
	}
	if ep.vertex == nil {
		return ClipSpaceVertex{}, fmt.Errorf("shader: entry %q is not a vertex stage", entry)
	}
	return ep.vertex(ctx, position, attributes), nil
}

func (m *CallbackModule) DispatchFragment(entry string, ctx InvocationContext, frag Fragment) ([4]float32, error) {
	ep, err := m.lookup(entry)
	if err != nil {
		return [4]float32{}, err
	}
	if ep.fragment == nil {
		return [4]float32{}, fmt.Errorf("shader: entry %q is not a fragment stage", entry)
	}
	return ep.fragment(ctx, frag), nil
}

func (m *CallbackModule) DispatchCompute(entry string, ctx InvocationContext) error {
	ep, err := m.lookup(entry)
	if err != nil {
		return err
	}
	if ep.compute == nil {
		return fmt.Errorf("shader: entry %q is not a compute stage", entry)
	}
	ep.compute(ctx)
	return nil
}

package devstate

import (
	"errors"
	"fmt"

	"github.com/vkcpu/vkcpu/image"
	"github.com/vkcpu/vkcpu/types"
)

// ErrInvalidDescriptor reports a malformed descriptor set layout or write.
var ErrInvalidDescriptor = errors.New("devstate: invalid descriptor")

// BindingType enumerates what kind of resource a descriptor binding
// holds. A single discriminated tag suffices since the command-buffer
// model binds one concrete resource kind per slot.
type BindingType uint8

const (
	BindingUniformBuffer BindingType = iota
	BindingStorageBuffer
	BindingSampledImage
	BindingStorageImage
	BindingSampler
)

// LayoutBinding is one slot in a DescriptorSetLayout.
type LayoutBinding struct {
	Binding          uint32
	Type             BindingType
	Stages           types.ShaderStage
	HasDynamicOffset bool
}

// DescriptorSetLayout is an ordered set of binding slots.
type DescriptorSetLayout struct {
	Bindings []LayoutBinding
}

// Resource is the tagged union of things a descriptor binding can
// point at.
type Resource interface{ isResource() }

// BufferResource binds a byte range of a Buffer.
type BufferResource struct {
	Buffer *image.Buffer
	Offset int64
	Size   int64
}

func (BufferResource) isResource() {}

// ImageResource binds an image view.
type ImageResource struct {
	View *image.View
}

func (ImageResource) isResource() {}

// Write assigns a Resource to one binding of a descriptor set.
type Write struct {
	Binding  uint32
	Resource Resource
}

// DescriptorSet is a concrete set of resource bindings matching a layout.
type DescriptorSet struct {
	Layout    *DescriptorSetLayout
	Resources map[uint32]Resource
}

// NewDescriptorSet allocates an empty descriptor set for layout.
func NewDescriptorSet(layout *DescriptorSetLayout) *DescriptorSet {
	return &DescriptorSet{Layout: layout, Resources: make(map[uint32]Resource)}
}

// Update applies a batch of writes to the set. Writes take effect
// immediately and are visible to any command buffer that subsequently
// binds the set.
func (ds *DescriptorSet) Update(writes []Write) error {
	byBinding := make(map[uint32]LayoutBinding, len(ds.Layout.Bindings))
	for _, b := range ds.Layout.Bindings {
		byBinding[b.Binding] = b
	}
	for _, w := range writes {
		if _, ok := byBinding[w.Binding]; !ok {
			return fmt.Errorf("%w: binding %d not present in layout", ErrInvalidDescriptor, w.Binding)
		}
		ds.Resources[w.Binding] = w.Resource
	}
	return nil
}

// Resolve returns the resource bound at binding, applying a nonzero
// dynamic offset (in bytes) on top of a BufferResource's static offset.
// A zero offset returns the resource unchanged; a nonzero offset on a
// non-buffer resource is an error. The layout entry's HasDynamicOffset
// flag is not consulted here.
func (ds *DescriptorSet) Resolve(binding uint32, dynamicOffset int64) (Resource, error) {
	res, ok := ds.Resources[binding]
	if !ok {
		return nil, fmt.Errorf("%w: binding %d not written", ErrInvalidDescriptor, binding)
	}
	if dynamicOffset == 0 {
		return res, nil
	}
	buf, ok := res.(BufferResource)
	if !ok {
		return nil, fmt.Errorf("%w: dynamic offset on non-buffer binding %d", ErrInvalidDescriptor, binding)
	}
	buf.Offset += dynamicOffset
	return buf, nil
}

// PushConstantRange describes a byte range of the push-constant block
// visible to a set of shader stages.
type PushConstantRange struct {
	Stages types.ShaderStage
	Start  uint32
	End    uint32
}

// PipelineLayout binds together the descriptor set layouts and push
// constant ranges a pipeline was built against.
type PipelineLayout struct {
	SetLayouts         []*DescriptorSetLayout
	PushConstantRanges []PushConstantRange
}

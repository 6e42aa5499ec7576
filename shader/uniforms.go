package shader

// ImageBinding exposes a bound sampled/storage image to a shader
// invocation as a plain read function, rather than the full image.Image
// type, so this package does not import image. cmdbuf builds these
// bindings when it resolves a draw's or dispatch's descriptor sets.
type ImageBinding struct {
	Width, Height uint32
	Read          func(x, y int) [4]float32
}

// bindKey addresses one (set, binding) descriptor slot.
type bindKey struct{ Set, Binding uint32 }

// Uniforms is the resolved view of a draw or dispatch's bound
// descriptor sets and push-constant bytes, exposed to a shader
// invocation through InvocationContext.Uniforms: for each buffer
// binding, the byte region (base + dynamic offset) keyed by its
// (set, binding) pair.
type Uniforms struct {
	Buffers       map[bindKey][]byte
	Images        map[bindKey]ImageBinding
	PushConstants []byte
}

// NewUniforms returns an empty resolved-uniform view.
func NewUniforms() *Uniforms {
	return &Uniforms{Buffers: make(map[bindKey][]byte), Images: make(map[bindKey]ImageBinding)}
}

// BindBuffer records the resolved byte region for (set, binding).
func (u *Uniforms) BindBuffer(set, binding uint32, bytes []byte) {
	u.Buffers[bindKey{set, binding}] = bytes
}

// BindImage records the resolved image binding for (set, binding).
func (u *Uniforms) BindImage(set, binding uint32, img ImageBinding) {
	u.Images[bindKey{set, binding}] = img
}

// Buffer returns the resolved bytes bound at (set, binding), or nil if
// nothing was bound there.
func (u *Uniforms) Buffer(set, binding uint32) []byte {
	if u == nil {
		return nil
	}
	return u.Buffers[bindKey{set, binding}]
}

// Image returns the resolved image bound at (set, binding).
func (u *Uniforms) Image(set, binding uint32) (ImageBinding, bool) {
	if u == nil {
		return ImageBinding{}, false
	}
	b, ok := u.Images[bindKey{set, binding}]
	return b, ok
}

// PushConstantBytes returns the push-constant scratch region.
func (u *Uniforms) PushConstantBytes() []byte {
	if u == nil {
		return nil
	}
	return u.PushConstants
}

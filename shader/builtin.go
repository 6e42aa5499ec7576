package shader

// Mat4MulVec4 multiplies a column-major 4x4 matrix by a vec4.
func Mat4MulVec4(m [16]float32, v [4]float32) [4]float32 {
	return [4]float32{
		m[0]*v[0] + m[4]*v[1] + m[8]*v[2] + m[12]*v[3],
		m[1]*v[0] + m[5]*v[1] + m[9]*v[2] + m[13]*v[3],
		m[2]*v[0] + m[6]*v[1] + m[10]*v[2] + m[14]*v[3],
		m[3]*v[0] + m[7]*v[1] + m[11]*v[2] + m[15]*v[3],
	}
}

// Mat4Identity returns a 4x4 identity matrix.
func Mat4Identity() [16]float32 {
	return [16]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// PassthroughVertex passes position through unchanged, taking it as
// already in clip space. Useful for screen-space rendering and tests.
func PassthroughVertex(_ InvocationContext, position [3]float32, attributes []float32) ClipSpaceVertex {
	return ClipSpaceVertex{Position: [4]float32{position[0], position[1], position[2], 1}, Attributes: attributes}
}

// WhiteFragment returns opaque white for every fragment.
func WhiteFragment(_ InvocationContext, _ Fragment) [4]float32 {
	return [4]float32{1, 1, 1, 1}
}

// DepthFragment visualizes a fragment's depth as grayscale.
func DepthFragment(_ InvocationContext, f Fragment) [4]float32 {
	return [4]float32{f.Depth, f.Depth, f.Depth, 1}
}

// BarycentricFragment visualizes a fragment's barycentric weights.
func BarycentricFragment(_ InvocationContext, f Fragment) [4]float32 {
	return [4]float32{f.Bary[0], f.Bary[1], f.Bary[2], 1}
}

// SolidColorUniforms is the uniform block for NewSolidColorModule.
type SolidColorUniforms struct {
	MVP   [16]float32
	Color [4]float32
}

// NewSolidColorModule returns a module whose vertex stage transforms
// position by MVP and whose fragment stage emits a single uniform
// color, under the entry points "vs_main"/"fs_main".
func NewSolidColorModule() *CallbackModule {
	m := NewCallbackModule()
	m.AddVertex("vs_main", nil, nil, nil, func(ctx InvocationContext, position [3]float32, _ []float32) ClipSpaceVertex {
		u := ctx.Uniforms.(*SolidColorUniforms)
		clip := Mat4MulVec4(u.MVP, [4]float32{position[0], position[1], position[2], 1})
		return ClipSpaceVertex{Position: clip, Attributes: u.Color[:]}
	})
	m.AddFragment("fs_main", nil, nil, nil, func(ctx InvocationContext, f Fragment) [4]float32 {
		if len(f.Attributes) >= 4 {
			return [4]float32{f.Attributes[0], f.Attributes[1], f.Attributes[2], f.Attributes[3]}
		}
		return [4]float32{1, 1, 1, 1}
	})
	return m
}

// VertexColorUniforms is the uniform block for NewVertexColorModule.
type VertexColorUniforms struct {
	MVP [16]float32
}

// NewVertexColorModule interpolates a per-vertex RGBA color (expected
// in attributes[0:4]) across the triangle.
func NewVertexColorModule() *CallbackModule {
	m := NewCallbackModule()
	m.AddVertex("vs_main", nil, nil, nil, func(ctx InvocationContext, position [3]float32, attributes []float32) ClipSpaceVertex {
		u := ctx.Uniforms.(*VertexColorUniforms)
		clip := Mat4MulVec4(u.MVP, [4]float32{position[0], position[1], position[2], 1})
		var attrs []float32
		if len(attributes) >= 4 {
			attrs = append([]float32(nil), attributes[:4]...)
		}
		return ClipSpaceVertex{Position: clip, Attributes: attrs}
	})
	m.AddFragment("fs_main", nil, nil, nil, func(_ InvocationContext, f Fragment) [4]float32 {
		if len(f.Attributes) >= 4 {
			return [4]float32{f.Attributes[0], f.Attributes[1], f.Attributes[2], f.Attributes[3]}
		}
		return [4]float32{1, 1, 1, 1}
	})
	return m
}

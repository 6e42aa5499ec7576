package raster

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/vkcpu/vkcpu/devstate"
	"github.com/vkcpu/vkcpu/types"
)

// decodeComponent reads one scalar component of f starting at raw[0]
// and widens it to float32 without normalization: integer vertex
// formats are exposed to shaders as their raw numeric value, with no
// implicit UNorm conversion (unlike texel reads).
func decodeComponent(raw []byte, base types.VertexFormat) float32 {
	switch base {
	case types.VFInt8, types.VFInt8x2, types.VFInt8x3, types.VFInt8x4:
		return float32(int8(raw[0]))
	case types.VFUint8, types.VFUint8x2, types.VFUint8x3, types.VFUint8x4:
		return float32(raw[0])
	case types.VFInt16, types.VFInt16x2, types.VFInt16x3, types.VFInt16x4:
		return float32(int16(binary.LittleEndian.Uint16(raw)))
	case types.VFUint16, types.VFUint16x2, types.VFUint16x3, types.VFUint16x4:
		return float32(binary.LittleEndian.Uint16(raw))
	case types.VFInt32, types.VFInt32x2, types.VFInt32x3, types.VFInt32x4:
		return float32(int32(binary.LittleEndian.Uint32(raw)))
	case types.VFUint32, types.VFUint32x2, types.VFUint32x3, types.VFUint32x4:
		return float32(binary.LittleEndian.Uint32(raw))
	case types.VFFloat32, types.VFFloat32x2, types.VFFloat32x3, types.VFFloat32x4:
		return math.Float32frombits(binary.LittleEndian.Uint32(raw))
	default:
		return 0
	}
}

func componentSize(f types.VertexFormat) int {
	switch f {
	case types.VFInt8, types.VFUint8, types.VFInt8x2, types.VFUint8x2,
		types.VFInt8x3, types.VFUint8x3, types.VFInt8x4, types.VFUint8x4:
		return 1
	case types.VFInt16, types.VFUint16, types.VFInt16x2, types.VFUint16x2,
		types.VFInt16x3, types.VFUint16x3, types.VFInt16x4, types.VFUint16x4:
		return 2
	default:
		return 4
	}
}

// FetchComponents decodes one vertex attribute's scalar components from
// buf (already sliced to start at the attribute's byte offset) into a
// float32 slice.
func FetchComponents(buf []byte, f types.VertexFormat) ([]float32, error) {
	n := f.Components()
	sz := componentSize(f)
	if len(buf) < n*sz {
		return nil, fmt.Errorf("raster: vertex attribute read overruns buffer: need %d have %d", n*sz, len(buf))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		out[i] = decodeComponent(buf[i*sz:], f)
	}
	return out, nil
}

// FetchVertexInput builds one vertex's VertexInput by walking a
// GraphicsPipeline's VertexBindingState list, computing each attribute's
// byte offset from the bound vertex buffer as
//
//	byte_offset = binding.stride*vertex + attribute.offset + binding.base_offset
//
// The attribute declared at Location 0 supplies Position (its first up
// to 3 components); every other location's components are appended, in
// ascending location order, to Attributes.
func FetchVertexInput(bindings []devstate.VertexBindingState, vbufs []devstate.VertexBufferBinding, vertexIndex, instanceIndex uint32) (VertexInput, error) {
	var in VertexInput
	var attrLocs []uint32
	attrValues := map[uint32][]float32{}

	for _, binding := range bindings {
		if int(binding.Binding) >= len(vbufs) {
			return VertexInput{}, fmt.Errorf("raster: vertex binding %d has no bound buffer", binding.Binding)
		}
		vb := vbufs[binding.Binding]
		if vb.Buffer == nil {
			return VertexInput{}, fmt.Errorf("raster: vertex binding %d not bound", binding.Binding)
		}
		index := vertexIndex
		if binding.PerInstance {
			index = instanceIndex
		}
		baseOffset := vb.Offset + int64(binding.Stride)*int64(index)
		for _, attr := range binding.Attributes {
			off := baseOffset + int64(attr.Offset)
			raw, err := vb.Buffer.Data(off, int64(attr.Format.Size()))
			if err != nil {
				return VertexInput{}, err
			}
			vals, err := FetchComponents(raw, attr.Format)
			if err != nil {
				return VertexInput{}, err
			}
			if attr.Location == 0 {
				for i := 0; i < len(vals) && i < 3; i++ {
					in.Position[i] = vals[i]
				}
				continue
			}
			attrValues[attr.Location] = vals
			attrLocs = append(attrLocs, attr.Location)
		}
	}

	// Flatten attributes in ascending location order so the same
	// pipeline always produces the same attribute layout regardless of
	// binding iteration order.
	seen := map[uint32]bool{}
	var ordered []uint32
	for _, l := range attrLocs {
		if !seen[l] {
			seen[l] = true
			ordered = append(ordered, l)
		}
	}
	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			if ordered[j] < ordered[i] {
				ordered[i], ordered[j] = ordered[j], ordered[i]
			}
		}
	}
	for _, l := range ordered {
		in.Attributes = append(in.Attributes, attrValues[l]...)
	}
	return in, nil
}

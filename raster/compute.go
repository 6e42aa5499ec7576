package raster

import (
	"github.com/vkcpu/vkcpu/devstate"
	"github.com/vkcpu/vkcpu/shader"
)

// ComputeParams bundles one Dispatch command's bound state, mirroring
// DrawParams' role for Draw/DrawIndexed.
type ComputeParams struct {
	Pipeline    *devstate.ComputePipeline
	Uniforms    *shader.Uniforms
	GroupCountX uint32
	GroupCountY uint32
	GroupCountZ uint32
}

// Dispatch invokes the compute entry point once per work-group index
// in (gx, gy, gz), exposing the work-group id through the invocation
// context; descriptor binding works the same as the vertex stage.
//
// Dispatch runs work-groups sequentially: unlike fragment shading,
// compute entry points may alias writable storage buffers across
// work-groups, so the safe default is single-threaded iteration.
func Dispatch(p ComputeParams) error {
	for gz := uint32(0); gz < p.GroupCountZ; gz++ {
		for gy := uint32(0); gy < p.GroupCountY; gy++ {
			for gx := uint32(0); gx < p.GroupCountX; gx++ {
				ctx := shader.InvocationContext{
					WorkGroupID: [3]uint32{gx, gy, gz},
					Uniforms:    p.Uniforms,
				}
				if err := p.Pipeline.ComputeShader.DispatchCompute(p.Pipeline.ComputeEntry, ctx); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

package raster

import "github.com/vkcpu/vkcpu/internal/cpuinfo"

// workersFor returns how many band workers to use for a framebuffer
// region of the given row count, delegating to internal/cpuinfo for
// the GOMAXPROCS- and SIMD-width-aware sizing.
func workersFor(rows int) int {
	return cpuinfo.Workers(rows)
}

// Package cpuinfo sizes the rasterizer's band worker pool from
// runtime.GOMAXPROCS and golang.org/x/sys/cpu feature detection: the
// wider the host's usable SIMD unit, the faster one worker finishes a
// row, so the minimum band height worth paying a goroutine for rises
// with the detected vector width.
package cpuinfo

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// vectorLanes reports how many float32 lanes the host's widest usable
// SIMD unit processes per instruction. Unknown or undetected hosts
// report 1, which disables the band-height floor.
func vectorLanes() int {
	if !cpu.Initialized {
		return 1
	}
	switch {
	case cpu.X86.HasAVX512F:
		return 16
	case cpu.X86.HasAVX2:
		return 8
	case cpu.X86.HasSSE41:
		return 4
	case cpu.ARM64.HasASIMD:
		return 4
	default:
		return 1
	}
}

// MinBandRows returns the smallest band height worth handing one
// worker. A wider SIMD unit drains a row sooner, leaving goroutine
// startup as a larger share of a small band's cost.
func MinBandRows() int {
	return vectorLanes()
}

// Workers returns the number of band workers the parallel rasterizer
// should run for a region of the given row count: bounded above by
// GOMAXPROCS, and by the row count divided by the per-worker band
// floor so no worker is spawned for less than MinBandRows of work.
func Workers(rows int) int {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		n = 1
	}
	if byRows := rows / MinBandRows(); byRows < n {
		n = byRows
	}
	if n < 1 {
		n = 1
	}
	return n
}

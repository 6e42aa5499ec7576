package raster

import "math"

// EdgeFunction is a linear edge equation Ax + By + C = 0, the Pineda
// edge-function rasterization test.
type EdgeFunction struct {
	A, B, C float32
}

// NewEdgeFunction builds the edge from (x0,y0) to (x1,y1). Points left
// of the directed edge evaluate positive.
func NewEdgeFunction(x0, y0, x1, y1 float32) EdgeFunction {
	return EdgeFunction{A: y0 - y1, B: x1 - x0, C: x0*y1 - x1*y0}
}

// Evaluate returns the signed distance of (x,y) from the edge.
func (e EdgeFunction) Evaluate(x, y float32) float32 {
	return e.A*x + e.B*y + e.C
}

// IsTopLeft reports whether this is a "top" or "left" edge, for the
// top-left fill rule that avoids double-rasterizing shared edges
// between adjacent triangles.
func (e EdgeFunction) IsTopLeft() bool {
	if e.A > 0 {
		return true
	}
	return e.A == 0 && e.B < 0
}

// Callback is invoked once per fragment generated during rasterization.
type Callback func(Fragment)

// Rasterize walks every pixel candidate inside tri (clipped to
// viewport) and invokes cb with plain barycentric-interpolated
// attributes and depth. There is no 1/w perspective correction:
// depth and attributes blend as w0*v0 + w1*v1 + w2*v2 in screen space.
func Rasterize(tri Triangle, vp Viewport, cb Callback) {
	minX := min3(tri.V0.X, tri.V1.X, tri.V2.X)
	maxX := max3(tri.V0.X, tri.V1.X, tri.V2.X)
	minY := min3(tri.V0.Y, tri.V1.Y, tri.V2.Y)
	maxY := max3(tri.V0.Y, tri.V1.Y, tri.V2.Y)

	startX := maxInt(int(math.Floor(float64(minX))), vp.X)
	endX := minInt(int(math.Ceil(float64(maxX))), vp.X+vp.Width)
	startY := maxInt(int(math.Floor(float64(minY))), vp.Y)
	endY := minInt(int(math.Ceil(float64(maxY))), vp.Y+vp.Height)
	if startX >= endX || startY >= endY {
		return
	}

	e12 := NewEdgeFunction(tri.V1.X, tri.V1.Y, tri.V2.X, tri.V2.Y)
	e20 := NewEdgeFunction(tri.V2.X, tri.V2.Y, tri.V0.X, tri.V0.Y)
	e01 := NewEdgeFunction(tri.V0.X, tri.V0.Y, tri.V1.X, tri.V1.Y)

	area := e01.Evaluate(tri.V2.X, tri.V2.Y)
	if area == 0 {
		return
	}
	invArea := 1.0 / area

	bias0, bias1, bias2 := float32(0), float32(0), float32(0)
	if !e12.IsTopLeft() {
		bias0 = -1e-6
	}
	if !e20.IsTopLeft() {
		bias1 = -1e-6
	}
	if !e01.IsTopLeft() {
		bias2 = -1e-6
	}

	attrCount := len(tri.V0.Attributes)

	for y := startY; y < endY; y++ {
		for x := startX; x < endX; x++ {
			px := float32(x) + 0.5
			py := float32(y) + 0.5

			w0 := e12.Evaluate(px, py)
			w1 := e20.Evaluate(px, py)
			w2 := e01.Evaluate(px, py)

			if area > 0 {
				if w0 < bias0 || w1 < bias1 || w2 < bias2 {
					continue
				}
			} else {
				if w0 > -bias0 || w1 > -bias1 || w2 > -bias2 {
					continue
				}
				w0, w1, w2 = -w0, -w1, -w2
			}

			b0 := w0 * invArea
			b1 := w1 * invArea
			b2 := w2 * invArea
			if area < 0 {
				b0, b1, b2 = -b0, -b1, -b2
			}

			depth := b0*tri.V0.Z + b1*tri.V1.Z + b2*tri.V2.Z

			var attrs []float32
			if attrCount > 0 {
				attrs = make([]float32, attrCount)
				for i := 0; i < attrCount; i++ {
					attrs[i] = b0*tri.V0.Attributes[i] + b1*tri.V1.Attributes[i] + b2*tri.V2.Attributes[i]
				}
			}

			cb(Fragment{X: x, Y: y, Depth: depth, Bary: [3]float32{b0, b1, b2}, Attributes: attrs})
		}
	}
}

func min3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

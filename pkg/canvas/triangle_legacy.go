package canvas

import (
	"image/color"

	"github.com/taigrr/rasterkit/pkg/math3d"
)

// IVec2 is an integer screen-space point, used by the legacy triangle
// fillers below (the shader-driven rasterizer works in
// math3d.Vec3/Mat3 screen space instead).
type IVec2 struct{ X, Y int }

// FillTriangleLineSweepVerbose fills a triangle by sweeping horizontal
// "rungs" from the bottom vertex to the top, splitting the sweep into a
// lower half (bottom to middle vertex) and an upper half (middle to top
// vertex) and linearly interpolating each half's two edges independently.
// This is the first, most explicit of the three fill algorithms the
// barycentric rasterizer in shader.go eventually replaces; kept as an
// illustrative alternate for the "triangles-compare" scene.
func (c *Canvas) FillTriangleLineSweepVerbose(t0, t1, t2 IVec2, col color.RGBA) {
	if t0.Y == t1.Y && t0.Y == t2.Y {
		return
	}
	t0, t1, t2 = sortByY(t0, t1, t2)
	totalHeight := t2.Y - t0.Y

	segmentHeight := t1.Y - t0.Y
	for y := t0.Y; y <= t1.Y; y++ {
		alpha := float64(y-t0.Y) / float64(totalHeight)
		beta := float64(y-t0.Y) / float64(segmentHeight)
		a := lerpIVec2(t0, t2, alpha)
		b := lerpIVec2(t0, t1, beta)
		c.hline(a, b, y, col)
	}

	segmentHeight = t2.Y - t1.Y
	for y := t1.Y; y <= t2.Y; y++ {
		alpha := float64(y-t0.Y) / float64(totalHeight)
		beta := float64(y-t1.Y) / float64(segmentHeight)
		a := lerpIVec2(t0, t2, alpha)
		b := lerpIVec2(t1, t2, beta)
		c.hline(a, b, y, col)
	}
}

// FillTriangleLineSweepCompact performs the same sweep as
// FillTriangleLineSweepVerbose but as a single loop over total_height,
// selecting which half of the triangle (and thus which two edges) applies
// to each scanline on the fly rather than as two separate loops.
func (c *Canvas) FillTriangleLineSweepCompact(t0, t1, t2 IVec2, col color.RGBA) {
	if t0.Y == t1.Y && t0.Y == t2.Y {
		return
	}
	t0, t1, t2 = sortByY(t0, t1, t2)
	totalHeight := t2.Y - t0.Y

	for i := 0; i < totalHeight; i++ {
		secondHalf := i > t1.Y-t0.Y || t1.Y == t0.Y
		var segmentHeight int
		if secondHalf {
			segmentHeight = t2.Y - t1.Y
		} else {
			segmentHeight = t1.Y - t0.Y
		}

		alpha := float64(i) / float64(totalHeight)
		var beta float64
		var a, b IVec2
		a = lerpIVec2(t0, t2, alpha)
		if secondHalf {
			beta = float64(i-(t1.Y-t0.Y)) / float64(segmentHeight)
			b = lerpIVec2(t1, t2, beta)
		} else {
			beta = float64(i) / float64(segmentHeight)
			b = lerpIVec2(t0, t1, beta)
		}
		c.hline(a, b, t0.Y+i, col)
	}
}

// FillTriangleBarycentricFlat fills a triangle with a constant color using
// the same bounding-box-plus-barycentric approach as the shader-driven
// rasterizer, but without a depth test — the 2D counterpart of
// DrawTriangleShader, used by the "triangles-compare" scene to show the
// same shape produced by all three fill algorithms.
func (c *Canvas) FillTriangleBarycentricFlat(t0, t1, t2 IVec2, col color.RGBA) {
	bboxMin := IVec2{0, 0}
	bboxMax := IVec2{c.width - 1, c.height - 1}
	minX, minY := c.width-1, c.height-1
	maxX, maxY := 0, 0
	for _, p := range [3]IVec2{t0, t1, t2} {
		minX = maxInt(bboxMin.X, minInt(minX, p.X))
		minY = maxInt(bboxMin.Y, minInt(minY, p.Y))
		maxX = minInt(bboxMax.X, maxInt(maxX, p.X))
		maxY = minInt(bboxMax.Y, maxInt(maxY, p.Y))
	}

	a2 := floatPt(t0)
	b2 := floatPt(t1)
	c2 := floatPt(t2)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			bary := Barycentric(a2, b2, c2, floatPt(IVec2{x, y}))
			if bary.X < 0 || bary.Y < 0 || bary.Z < 0 {
				continue
			}
			c.SetPixel(x, y, col)
		}
	}
}

func (c *Canvas) hline(a, b IVec2, y int, col color.RGBA) {
	if a.X > b.X {
		a, b = b, a
	}
	for x := a.X; x <= b.X; x++ {
		c.SetPixel(x, y, col)
	}
}

func sortByY(t0, t1, t2 IVec2) (IVec2, IVec2, IVec2) {
	pts := [3]IVec2{t0, t1, t2}
	for i := 1; i < 3; i++ {
		for j := i; j > 0 && pts[j].Y < pts[j-1].Y; j-- {
			pts[j], pts[j-1] = pts[j-1], pts[j]
		}
	}
	return pts[0], pts[1], pts[2]
}

func lerpIVec2(a, b IVec2, t float64) IVec2 {
	return IVec2{
		X: a.X + int(float64(b.X-a.X)*t),
		Y: a.Y + int(float64(b.Y-a.Y)*t),
	}
}

func floatPt(p IVec2) math3d.Vec2 {
	return math3d.V2(float64(p.X), float64(p.Y))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

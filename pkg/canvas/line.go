package canvas

import "image/color"

// DrawLine rasterizes an integer Bresenham line from (x0,y0) to (x1,y1).
// The major axis is made x by swapping coordinates for steep lines, and
// endpoints are swapped so x0 <= x1; the loop then walks x from x0 to
// x1-1 (exclusive of x1), stepping y by +-1 whenever the accumulated
// integer error exceeds dx.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col color.RGBA) {
	steep := false
	if abs(x0-x1) < abs(y0-y1) {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
		steep = true
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx := x1 - x0
	dy := y1 - y0
	derror2 := abs(dy) * 2
	error2 := 0
	y := y0
	yStep := 1
	if y1 < y0 {
		yStep = -1
	}

	for x := x0; x < x1; x++ {
		if steep {
			c.SetPixel(y, x, col)
		} else {
			c.SetPixel(x, y, col)
		}
		error2 += derror2
		if error2 > dx {
			y += yStep
			error2 -= dx * 2
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

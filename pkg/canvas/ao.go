package canvas

import "math"

// ApplyAmbientOcclusion darkens each pixel by the fraction of sky it has
// occluded, estimated by casting eight rays across the depth buffer and
// measuring the maximum elevation angle blocking each one.
//
// For every pixel whose depth is not the background sentinel (depth <
// -1e5 is treated as background and skipped), eight rays are cast at
// angles k*pi/4 for k in 0..8. Along each ray, stepping one pixel at a
// time for up to `samples` steps, once distance from the origin reaches at
// least 1 the elevation angle atan2(depth(step)-depth(origin), distance)
// is tracked as a running max. The eight (pi/2 - max_angle) terms are
// summed, normalized by dividing by (pi/2)*8, then raised to the `strength`
// power and used to scale every color channel.
func (c *Canvas) ApplyAmbientOcclusion(strength float64, samples int) {
	for y := range c.height {
		for x := range c.width {
			if c.Depth(x, y) < aoSkipThreshold {
				continue
			}

			var total float64
			for a := 0.0; a < 2*math.Pi-1e-4; a += math.Pi / 4 {
				dir := [2]float64{math.Cos(a), math.Sin(a)}
				total += math.Pi/2 - maxElevationAngle(c, x, y, dir, samples)
			}
			total /= math.Pi / 2 * 8
			total = math.Pow(total, strength)

			col := c.Pixel(x, y)
			col.R = scaleChannel(col.R, total)
			col.G = scaleChannel(col.G, total)
			col.B = scaleChannel(col.B, total)
			c.SetPixel(x, y, col)
		}
	}
}

func scaleChannel(v uint8, scale float64) uint8 {
	f := float64(v) * scale
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return uint8(f)
}

func maxElevationAngle(c *Canvas, ox, oy int, dir [2]float64, samples int) float64 {
	maxAngle := 0.0
	originDepth := c.Depth(ox, oy)

	for t := 0.0; t < float64(samples); t++ {
		curX := float64(ox) + dir[0]*t
		curY := float64(oy) + dir[1]*t

		if curX < 0 || curY < 0 || curX >= float64(c.width) || curY >= float64(c.height) {
			return maxAngle
		}

		distance := math.Hypot(float64(ox)-curX, float64(oy)-curY)
		if distance < 1 {
			continue
		}

		elevation := c.Depth(int(curX), int(curY)) - originDepth
		maxAngle = math.Max(maxAngle, math.Atan2(elevation, distance))
	}
	return maxAngle
}

package canvas

import (
	"math"

	"github.com/taigrr/rasterkit/pkg/math3d"
)

// Barycentric computes the barycentric coordinates of p against the
// triangle (a, b, c) by taking the cross product of
// (c.x-a.x, b.x-a.x, a.x-p.x) and (c.y-a.y, b.y-a.y, a.y-p.y). If the
// resulting z component has magnitude less than 1, the triangle is treated
// as degenerate and the sentinel (-1, 1, 1) is returned — its negative
// first component guarantees the rasterizer's negativity test rejects
// every pixel of the triangle.
func Barycentric(a, b, c, p math3d.Vec2) math3d.Vec3 {
	u := math3d.V3(c.X-a.X, b.X-a.X, a.X-p.X).Cross(math3d.V3(c.Y-a.Y, b.Y-a.Y, a.Y-p.Y))
	if math.Abs(u.Z) < 1 {
		return math3d.V3(-1, 1, 1)
	}
	return math3d.V3(1-(u.X+u.Y)/u.Z, u.Y/u.Z, u.X/u.Z)
}

package scene

import (
	"github.com/taigrr/rasterkit/pkg/math3d"
	"github.com/taigrr/rasterkit/pkg/models"
)

// plane is Ax + By + Cz + D = 0, normal pointing inward.
type plane struct {
	Normal math3d.Vec3
	D      float64
}

func (p *plane) normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1.0 / l)
	p.D /= l
}

func (p plane) distanceTo(pt math3d.Vec3) float64 {
	return p.Normal.Dot(pt) + p.D
}

// frustum is the six planes (left, right, bottom, top, near, far) of a
// view-projection matrix, extracted by the Gribb/Hartmann method: each
// plane is a signed combination of the matrix's rows.
type frustum struct {
	planes [6]plane
}

func newFrustum(m math3d.Mat4) frustum {
	row := func(i int) (float64, float64, float64, float64) {
		return m[i], m[i+4], m[i+8], m[i+12]
	}
	r0x, r0y, r0z, r0w := row(0)
	r1x, r1y, r1z, r1w := row(1)
	r2x, r2y, r2z, r2w := row(2)
	r3x, r3y, r3z, r3w := row(3)

	var f frustum
	f.planes[0] = plane{math3d.V3(r3x+r0x, r3y+r0y, r3z+r0z), r3w + r0w} // left
	f.planes[1] = plane{math3d.V3(r3x-r0x, r3y-r0y, r3z-r0z), r3w - r0w} // right
	f.planes[2] = plane{math3d.V3(r3x+r1x, r3y+r1y, r3z+r1z), r3w + r1w} // bottom
	f.planes[3] = plane{math3d.V3(r3x-r1x, r3y-r1y, r3z-r1z), r3w - r1w} // top
	f.planes[4] = plane{math3d.V3(r3x+r2x, r3y+r2y, r3z+r2z), r3w + r2w} // near
	f.planes[5] = plane{math3d.V3(r3x-r2x, r3y-r2y, r3z-r2z), r3w - r2w} // far
	for i := range f.planes {
		f.planes[i].normalize()
	}
	return f
}

// intersectsAABB reports whether any part of the box is on the inward
// side of every plane, using the "positive vertex" test: for each plane,
// only the box corner furthest along the plane's normal can save it from
// rejection.
func (f frustum) intersectsAABB(min, max math3d.Vec3) bool {
	for _, p := range f.planes {
		pos := math3d.V3(
			pick(p.Normal.X >= 0, max.X, min.X),
			pick(p.Normal.Y >= 0, max.Y, min.Y),
			pick(p.Normal.Z >= 0, max.Z, min.Z),
		)
		if p.distanceTo(pos) < 0 {
			return false
		}
	}
	return true
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}

// visibleFaces returns the indices of model's faces whose bounding box
// intersects the frustum of the view-projection matrix vp, used by the
// movable-camera scene to skip off-screen geometry before it ever reaches
// the rasterizer.
func visibleFaces(model *models.Model, vp math3d.Mat4) []int {
	f := newFrustum(vp)
	visible := make([]int, 0, len(model.Faces))
	for i, face := range model.Faces {
		p0 := model.Vertices[face.Points[0].VertexIndex].Pos
		p1 := model.Vertices[face.Points[1].VertexIndex].Pos
		p2 := model.Vertices[face.Points[2].VertexIndex].Pos
		min := p0.Min(p1).Min(p2)
		max := p0.Max(p1).Max(p2)
		if f.intersectsAABB(min, max) {
			visible = append(visible, i)
		}
	}
	return visible
}

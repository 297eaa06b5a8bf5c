package math3d

// DepthMax is the fixed depth range the viewport and shadow/depth shaders
// scale into.
const DepthMax = 255.0

// ModelView builds the camera's model-view matrix by the look-at
// construction: a rotation whose columns are
// x = normalize(up × (eye−center)), y = normalize((eye−center) × x),
// z = normalize(eye−center), composed with a translation by −center.
//
// This is distinct from LookAt (which follows the usual OpenGL forward=
// center−eye convention); ModelView is the exact construction the
// rasterizer's shaders expect for uniform_m, in every scene including the
// movable-camera one.
func ModelView(eye, center, up Vec3) Mat4 {
	z := eye.Sub(center).Normalize()
	x := up.Cross(z).Normalize()
	y := z.Cross(x).Normalize()

	rotation := Mat4{
		x.X, y.X, z.X, 0,
		x.Y, y.Y, z.Y, 0,
		x.Z, y.Z, z.Z, 0,
		0, 0, 0, 1,
	}
	return rotation.Mul(Translate(center.Negate()))
}

// Viewport maps normalized device coordinates in [-1,1]^3 to the pixel
// rectangle [x, x+w] x [y, y+h], scaling z into [0, DepthMax].
func Viewport(x, y, w, h float64) Mat4 {
	return Mat4{
		w / 2, 0, 0, 0,
		0, h / 2, 0, 0,
		0, 0, DepthMax / 2, 0,
		x + w/2, y + h/2, DepthMax / 2, 1,
	}
}

// Projection builds the perspective matrix used by the rasterizer: an
// identity matrix with -1/cameraDistance placed in the (row=3, col=2) slot
// (0-indexed), so that w = 1 - z/cameraDistance and perspective-dividing a
// transformed point by its w component produces the 1/z falloff.
func Projection(cameraDistance float64) Mat4 {
	m := Identity()
	// column-major index for row 3, col 2 is 2*4+3 = 11.
	m[11] = -1 / cameraDistance
	return m
}

// NormalMatrix returns the upper-left 3x3 of m, inverse-transposed, suitable
// for transforming normal vectors under a non-uniform-scale model-view
// transform.
func (m Mat4) NormalMatrix() Mat3 {
	upper := Mat3{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
	return upper.Inverse().Transpose()
}

// ProjectPoint3 applies the matrix to a 3-vector treated as having w=1 and
// perspective-divides by the resulting w.
func (m Mat4) ProjectPoint3(v Vec3) Vec3 {
	r := m.MulVec4(Vec4{v.X, v.Y, v.Z, 1})
	return r.PerspectiveDivide()
}

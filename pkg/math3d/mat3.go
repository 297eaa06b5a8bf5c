package math3d

// Mat3 is a column-major 3x3 float64 matrix: elements are stored
// column-by-column, so Mat3{m00,m10,m20, m01,m11,m21, m02,m12,m22}.
//
// It serves two roles in the rasterizer: as the "triangle-in-flight" value
// returned by a shader's vertex stage (column i holds vertex i's
// screen-space position), and as a 3x3 linear map (e.g. the inverse-transpose
// of a model-view matrix, used to transform normals).
type Mat3 [9]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Mat3FromCols builds a matrix from three column vectors.
func Mat3FromCols(c0, c1, c2 Vec3) Mat3 {
	return Mat3{
		c0.X, c0.Y, c0.Z,
		c1.X, c1.Y, c1.Z,
		c2.X, c2.Y, c2.Z,
	}
}

// Mat3FromRows builds a matrix from three row vectors.
func Mat3FromRows(r0, r1, r2 Vec3) Mat3 {
	return Mat3{
		r0.X, r1.X, r2.X,
		r0.Y, r1.Y, r2.Y,
		r0.Z, r1.Z, r2.Z,
	}
}

// Col returns column i (0, 1, or 2) as a Vec3.
func (m Mat3) Col(i int) Vec3 {
	return Vec3{m[i*3+0], m[i*3+1], m[i*3+2]}
}

// Row returns row i (0, 1, or 2) as a Vec3.
func (m Mat3) Row(i int) Vec3 {
	return Vec3{m[0*3+i], m[1*3+i], m[2*3+i]}
}

// SetCol replaces column i with v.
func (m *Mat3) SetCol(i int, v Vec3) {
	m[i*3+0] = v.X
	m[i*3+1] = v.Y
	m[i*3+2] = v.Z
}

// MulVec3 applies the matrix to a column vector: m * v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat3) Mul(b Mat3) Mat3 {
	var m Mat3
	for col := range 3 {
		for row := range 3 {
			var sum float64
			for k := range 3 {
				sum += a[row+k*3] * b[k+col*3]
			}
			m[row+col*3] = sum
		}
	}
	return m
}

// Transpose returns the transpose of the matrix.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Determinant returns the determinant of the matrix.
func (m Mat3) Determinant() float64 {
	return m[0]*(m[4]*m[8]-m[7]*m[5]) -
		m[3]*(m[1]*m[8]-m[7]*m[2]) +
		m[6]*(m[1]*m[5]-m[4]*m[2])
}

// Inverse returns the inverse of the matrix. The zero matrix is returned for
// a singular input; callers working with near-degenerate triangles (see the
// tangent-space normal construction in the shade package) are expected to
// have already discarded the triangle via the barycentric sentinel before
// reaching this point.
func (m Mat3) Inverse() Mat3 {
	det := m.Determinant()
	if det == 0 {
		return Mat3{}
	}
	invDet := 1.0 / det

	return Mat3{
		(m[4]*m[8] - m[7]*m[5]) * invDet,
		(m[7]*m[2] - m[1]*m[8]) * invDet,
		(m[1]*m[5] - m[4]*m[2]) * invDet,

		(m[6]*m[5] - m[3]*m[8]) * invDet,
		(m[0]*m[8] - m[6]*m[2]) * invDet,
		(m[3]*m[2] - m[0]*m[5]) * invDet,

		(m[3]*m[7] - m[6]*m[4]) * invDet,
		(m[6]*m[1] - m[0]*m[7]) * invDet,
		(m[0]*m[4] - m[3]*m[1]) * invDet,
	}
}

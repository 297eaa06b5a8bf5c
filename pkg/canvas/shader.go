package canvas

import (
	"image/color"

	"github.com/taigrr/rasterkit/pkg/math3d"
	"github.com/taigrr/rasterkit/pkg/models"
)

// Shader is the two-phase callback contract every concrete shader in
// pkg/shade implements. S is the per-triangle state type the vertex stage
// produces and the fragment stage consumes — parameterizing the interface
// on S (rather than a single type-erased uniform struct) means each shader
// carries exactly the data it needs, with no boxing of the per-triangle
// state.
type Shader[S any] interface {
	// Vertex receives one triangle's three assembled vertices and returns
	// the screen-space triangle (column i = vertex i) plus opaque state
	// for the fragment stage. Must be side-effect-free.
	Vertex(tri [3]Vertex) (math3d.Mat3, S)

	// Fragment receives the pixel's barycentric coordinates and a
	// read-only pointer to the vertex stage's state, and either returns a
	// color to write (ok=true) or discards the fragment (ok=false),
	// leaving the depth buffer untouched.
	Fragment(bary math3d.Vec3, state *S) (col color.RGBA, ok bool)
}

// DrawTriangleShader rasterizes one screen-space triangle: it computes the
// clamped bounding box, then for every pixel in it computes barycentric
// coordinates, rejects negative-component pixels, depth-tests with a
// strict '>' comparison (first writer at a given depth wins), and calls
// the shader's fragment stage only for pixels that pass.
func DrawTriangleShader[S any](c *Canvas, pts math3d.Mat3, shader Shader[S], state S) {
	p0, p1, p2 := pts.Col(0), pts.Col(1), pts.Col(2)

	bboxMin := math3d.V2(float64(c.width-1), float64(c.height-1))
	bboxMax := math3d.V2(0, 0)
	clampMax := math3d.V2(float64(c.width-1), float64(c.height-1))

	for _, p := range [3]math3d.Vec3{p0, p1, p2} {
		bboxMin.X = math3d.MaxOrdered(0, math3d.MinOrdered(bboxMin.X, p.X))
		bboxMin.Y = math3d.MaxOrdered(0, math3d.MinOrdered(bboxMin.Y, p.Y))
		bboxMax.X = math3d.MinOrdered(clampMax.X, math3d.MaxOrdered(bboxMax.X, p.X))
		bboxMax.Y = math3d.MinOrdered(clampMax.Y, math3d.MaxOrdered(bboxMax.Y, p.Y))
	}

	a2 := math3d.V2(p0.X, p0.Y)
	b2 := math3d.V2(p1.X, p1.Y)
	c2 := math3d.V2(p2.X, p2.Y)

	for y := int(bboxMin.Y); y <= int(bboxMax.Y); y++ {
		for x := int(bboxMin.X); x <= int(bboxMax.X); x++ {
			bary := Barycentric(a2, b2, c2, math3d.V2(float64(x), float64(y)))
			if bary.X < 0 || bary.Y < 0 || bary.Z < 0 {
				continue
			}
			z := bary.X*p0.Z + bary.Y*p1.Z + bary.Z*p2.Z
			if z <= c.Depth(x, y) {
				continue
			}
			if col, ok := shader.Fragment(bary, &state); ok {
				c.SetDepth(x, y, z)
				c.SetPixel(x, y, col)
			}
		}
	}
}

// DrawModelShader runs shader over every face of model m: for each face it
// assembles the three model-space vertices, calls the vertex stage, and
// rasterizes the resulting triangle.
func DrawModelShader[S any](c *Canvas, m *models.Model, shader Shader[S]) {
	for i := range m.Faces {
		tri := FaceVertices(m, i)
		screenPts, state := shader.Vertex(tri)
		DrawTriangleShader(c, screenPts, shader, state)
	}
}

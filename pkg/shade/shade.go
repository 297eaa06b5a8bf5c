// Package shade implements the concrete shader set: Flat, Gouraud, Normal,
// Phong, Depth, PureColor, and Unlit. Each shader's vertex stage transforms
// positions through viewport*uniform_m (uniform_m = projection*model_view)
// and each pairs with a per-shader state type, implementing
// canvas.Shader[S].
package shade

import (
	"image/color"

	"github.com/taigrr/rasterkit/pkg/canvas"
	"github.com/taigrr/rasterkit/pkg/math3d"
)

// Uniforms holds the per-render-pass transforms shared by every shader
// instantiated for that pass.
type Uniforms struct {
	UniformM  math3d.Mat4 // projection * model_view
	ViewportM math3d.Mat4
}

// Overall returns viewport * uniform_m, the single transform applied to
// every model-space vertex position to produce its screen-space position.
func (u Uniforms) Overall() math3d.Mat4 {
	return u.ViewportM.Mul(u.UniformM)
}

// NormalMatrix returns the inverse-transpose of uniform_m's upper 3x3,
// used to transform normals and normal-map samples correctly under
// non-uniform scale.
func (u Uniforms) NormalMatrix() math3d.Mat3 {
	return u.UniformM.NormalMatrix()
}

// projectScreen applies overall (viewport*uniform_m) to a model-space
// position and returns its screen-space coordinates.
func projectScreen(overall math3d.Mat4, pos math3d.Vec3) math3d.Vec3 {
	return overall.ProjectPoint3(pos)
}

// screenTriangle projects a face's three model-space positions into a
// Mat3 whose column i is vertex i's screen-space position.
func screenTriangle(overall math3d.Mat4, tri [3]canvas.Vertex) math3d.Mat3 {
	return math3d.Mat3FromCols(
		projectScreen(overall, tri[0].Position),
		projectScreen(overall, tri[1].Position),
		projectScreen(overall, tri[2].Position),
	)
}

// white is the fixed color PureColor writes.
var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func addClamped(a, b color.RGBA) color.RGBA {
	return color.RGBA{
		R: clampByte(float64(a.R) + float64(b.R)),
		G: clampByte(float64(a.G) + float64(b.G)),
		B: clampByte(float64(a.B) + float64(b.B)),
		A: 255,
	}
}

func scaleColor(c color.RGBA, s float64) color.RGBA {
	return color.RGBA{
		R: clampByte(float64(c.R) * s),
		G: clampByte(float64(c.G) * s),
		B: clampByte(float64(c.B) * s),
		A: 255,
	}
}

package shade

import (
	"image/color"
	"math"

	"github.com/taigrr/rasterkit/pkg/canvas"
	"github.com/taigrr/rasterkit/pkg/math3d"
	"github.com/taigrr/rasterkit/pkg/models"
)

// Weights are the ambient/diffuse/specular blend weights for Phong.
type Weights struct {
	Ambient, Diffuse, Specular float64
}

// ShadowInput is the Phong shader's optional shadow-map consultation: a
// Depth-shader pre-pass rendered into its own Canvas from the light's point
// of view, plus the transforms used to reproject a fragment's model-space
// position into that canvas.
type ShadowInput struct {
	Buffer    *canvas.Canvas
	UniformM  math3d.Mat4
	ViewportM math3d.Mat4
	Darkness  float64 // shadow_darkness, in [0,1]
	ZFix      float64 // shadow_z_fix, non-negative
}

func (s ShadowInput) overall() math3d.Mat4 {
	return s.ViewportM.Mul(s.UniformM)
}

// PhongState carries the triangle's three UVs, the three inverse-transpose-
// transformed vertex normals (varying_nrm), the screen-space triangle
// (needed to build the Darboux frame and, duplicated from the vertex
// stage's return value, to avoid recomputing it), and the original
// model-space triangle (needed to reproject a fragment into shadow-buffer
// coordinates).
type PhongState struct {
	UV         [3]math3d.Vec2
	VaryingNrm math3d.Mat3
	ScreenTri  math3d.Mat3
	ModelTri   math3d.Mat3
}

// Phong combines ambient, diffuse, and specular lighting, optionally
// sourcing its normal from a tangent-space (Darboux frame) map instead of
// a global-space one, and optionally consulting a shadow map to darken the
// diffuse+specular term (never the ambient term) of occluded fragments.
type Phong struct {
	Uniforms        Uniforms
	Light           math3d.Vec3
	Diffuse         *models.Texture
	NormalGlobal    *models.Texture
	NormalDarboux   *models.Texture
	Specular        *models.Texture
	Glow            *models.Texture // optional, additive
	UseTangentSpace bool
	Weights         Weights
	BaseShininess   float64
	Shadow          *ShadowInput // optional
}

func (s Phong) Vertex(tri [3]canvas.Vertex) (math3d.Mat3, PhongState) {
	overall := s.Uniforms.Overall()
	nMat := s.Uniforms.NormalMatrix()

	screen := screenTriangle(overall, tri)

	var state PhongState
	state.ScreenTri = screen
	state.ModelTri = math3d.Mat3FromCols(tri[0].Position, tri[1].Position, tri[2].Position)
	for i, v := range tri {
		state.UV[i] = v.UV
		state.VaryingNrm.SetCol(i, nMat.MulVec3(v.Normal))
	}
	return screen, state
}

func (s Phong) Fragment(bary math3d.Vec3, state *PhongState) (color.RGBA, bool) {
	uv0, uv1, uv2 := state.UV[0], state.UV[1], state.UV[2]
	uv := uv0.Scale(bary.X).Add(uv1.Scale(bary.Y)).Add(uv2.Scale(bary.Z))

	n := s.fragmentNormal(bary, state, uv0, uv1, uv2)
	l := s.Uniforms.UniformM.MulVec3Dir(s.Light).Normalize()

	diffuse := math.Max(0, n.Dot(l))
	r := n.Scale(2 * n.Dot(l)).Sub(l)
	shininess := math.Max(s.BaseShininess, s.Specular.Specular(uv))
	specular := math.Pow(math.Max(0, r.Z), shininess)

	lit := 1.0
	if s.Shadow != nil {
		lit = s.shadowMultiplier(bary, state)
	}

	intensity := s.Weights.Ambient + lit*s.Weights.Diffuse*diffuse
	specTerm := lit * s.Weights.Specular * specular

	base := s.Diffuse.Sample(uv)
	out := scaleColor(base, intensity)
	out = addClamped(out, scaleColor(white, specTerm))

	if s.Glow != nil {
		out = addClamped(out, s.Glow.Sample(uv))
	}
	return out, true
}

func (s Phong) fragmentNormal(bary math3d.Vec3, state *PhongState, uv0, uv1, uv2 math3d.Vec2) math3d.Vec3 {
	bn := state.VaryingNrm.MulVec3(bary).Normalize()
	if !s.UseTangentSpace {
		uv := uv0.Scale(bary.X).Add(uv1.Scale(bary.Y)).Add(uv2.Scale(bary.Z))
		sample := s.NormalGlobal.Normal(uv)
		return s.Uniforms.NormalMatrix().MulVec3(sample).Normalize()
	}

	tri := state.ScreenTri
	a := math3d.Mat3FromRows(
		tri.Col(1).Sub(tri.Col(0)),
		tri.Col(2).Sub(tri.Col(0)),
		bn,
	)
	aInv := a.Inverse()

	i := aInv.MulVec3(math3d.V3(uv1.X-uv0.X, uv2.X-uv0.X, 0))
	j := aInv.MulVec3(math3d.V3(uv1.Y-uv0.Y, uv2.Y-uv0.Y, 0))

	b := math3d.Mat3FromCols(i.Normalize(), j.Normalize(), bn)

	uv := uv0.Scale(bary.X).Add(uv1.Scale(bary.Y)).Add(uv2.Scale(bary.Z))
	sample := s.NormalDarboux.Normal(uv)
	return b.MulVec3(sample).Normalize()
}

func (s Phong) shadowMultiplier(bary math3d.Vec3, state *PhongState) float64 {
	worldPos := state.ModelTri.Col(0).Scale(bary.X).
		Add(state.ModelTri.Col(1).Scale(bary.Y)).
		Add(state.ModelTri.Col(2).Scale(bary.Z))

	shadowScreen := s.Shadow.overall().ProjectPoint3(worldPos)
	sx, sy, sz := int(shadowScreen.X), int(shadowScreen.Y), shadowScreen.Z

	shadowDepth := float64(s.Shadow.Buffer.Pixel(sx, sy).R)
	if shadowDepth >= sz+s.Shadow.ZFix {
		return 1
	}
	return 1 - s.Shadow.Darkness
}

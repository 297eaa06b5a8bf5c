package shade

import (
	"image/color"
	"math"

	"github.com/taigrr/rasterkit/pkg/canvas"
	"github.com/taigrr/rasterkit/pkg/math3d"
	"github.com/taigrr/rasterkit/pkg/models"
)

// NormalState carries the triangle's three UVs.
type NormalState struct {
	UV [3]math3d.Vec2
}

// Normal samples the global-space normal map, transforms the sample by the
// inverse-transpose of uniform_m, and lights it against the light
// direction (itself transformed by uniform_m).
type Normal struct {
	Uniforms  Uniforms
	Light     math3d.Vec3
	Diffuse   *models.Texture
	NormalMap *models.Texture
}

func (s Normal) Vertex(tri [3]canvas.Vertex) (math3d.Mat3, NormalState) {
	var state NormalState
	for i, v := range tri {
		state.UV[i] = v.UV
	}
	return screenTriangle(s.Uniforms.Overall(), tri), state
}

func (s Normal) Fragment(bary math3d.Vec3, state *NormalState) (color.RGBA, bool) {
	uv := state.UV[0].Scale(bary.X).Add(state.UV[1].Scale(bary.Y)).Add(state.UV[2].Scale(bary.Z))

	sample := s.NormalMap.Normal(uv)
	n := s.Uniforms.NormalMatrix().MulVec3(sample).Normalize()
	l := s.Uniforms.UniformM.MulVec3Dir(s.Light).Normalize()

	intensity := math.Max(0, n.Dot(l))
	return scaleColor(s.Diffuse.Sample(uv), intensity), true
}

package shade

import (
	"image/color"

	"github.com/taigrr/rasterkit/pkg/canvas"
	"github.com/taigrr/rasterkit/pkg/math3d"
	"github.com/taigrr/rasterkit/pkg/models"
)

// UnlitState carries the triangle's three UVs.
type UnlitState struct {
	UV [3]math3d.Vec2
}

// Unlit samples a chosen texture directly with no lighting applied; it
// exists to visualize a model's raw normal or specular maps.
type Unlit struct {
	Uniforms Uniforms
	Texture  *models.Texture
}

func (s Unlit) Vertex(tri [3]canvas.Vertex) (math3d.Mat3, UnlitState) {
	var state UnlitState
	for i, v := range tri {
		state.UV[i] = v.UV
	}
	return screenTriangle(s.Uniforms.Overall(), tri), state
}

func (s Unlit) Fragment(bary math3d.Vec3, state *UnlitState) (color.RGBA, bool) {
	uv := state.UV[0].Scale(bary.X).Add(state.UV[1].Scale(bary.Y)).Add(state.UV[2].Scale(bary.Z))
	return s.Texture.Sample(uv), true
}

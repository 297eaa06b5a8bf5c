package shade

import (
	"image/color"

	"github.com/taigrr/rasterkit/pkg/canvas"
	"github.com/taigrr/rasterkit/pkg/math3d"
)

// PureColorState carries nothing; PureColor only exists to populate the
// depth buffer for a subsequent ambient-occlusion pass.
type PureColorState struct{}

// PureColor writes a constant white to every fragment, relying entirely on
// the depth buffer it fills for whatever post-process follows.
type PureColor struct {
	Uniforms Uniforms
}

func (s PureColor) Vertex(tri [3]canvas.Vertex) (math3d.Mat3, PureColorState) {
	return screenTriangle(s.Uniforms.Overall(), tri), PureColorState{}
}

func (s PureColor) Fragment(_ math3d.Vec3, _ *PureColorState) (color.RGBA, bool) {
	return white, true
}

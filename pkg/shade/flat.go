package shade

import (
	"image/color"

	"github.com/taigrr/rasterkit/pkg/canvas"
	"github.com/taigrr/rasterkit/pkg/math3d"
)

// FlatState carries nothing; Flat's fragment stage is a constant.
type FlatState struct{}

// Flat returns a uniform color for every fragment of every triangle it
// shades.
type Flat struct {
	Uniforms Uniforms
	Color    color.RGBA
}

func (s Flat) Vertex(tri [3]canvas.Vertex) (math3d.Mat3, FlatState) {
	return screenTriangle(s.Uniforms.Overall(), tri), FlatState{}
}

func (s Flat) Fragment(_ math3d.Vec3, _ *FlatState) (color.RGBA, bool) {
	return s.Color, true
}

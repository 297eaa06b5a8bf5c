package shade

import (
	"image/color"

	"github.com/taigrr/rasterkit/pkg/canvas"
	"github.com/taigrr/rasterkit/pkg/math3d"
)

// DepthState carries the triangle's three screen-space z values.
type DepthState struct {
	Z [3]float64
}

// Depth writes grayscale = z/DepthMax into every channel; it is used both
// as a standalone visualization scene and as the shadow pre-pass shader.
type Depth struct {
	Uniforms Uniforms
}

func (s Depth) Vertex(tri [3]canvas.Vertex) (math3d.Mat3, DepthState) {
	screen := screenTriangle(s.Uniforms.Overall(), tri)
	return screen, DepthState{Z: [3]float64{screen.Col(0).Z, screen.Col(1).Z, screen.Col(2).Z}}
}

func (s Depth) Fragment(bary math3d.Vec3, state *DepthState) (color.RGBA, bool) {
	z := state.Z[0]*bary.X + state.Z[1]*bary.Y + state.Z[2]*bary.Z
	g := clampByte(z / math3d.DepthMax * 255)
	return color.RGBA{R: g, G: g, B: g, A: 255}, true
}

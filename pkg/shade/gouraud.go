package shade

import (
	"image/color"

	"github.com/taigrr/rasterkit/pkg/canvas"
	"github.com/taigrr/rasterkit/pkg/math3d"
	"github.com/taigrr/rasterkit/pkg/models"
)

// GouraudState carries the triangle's three UVs and three per-vertex light
// intensities (normal dot light, computed unclamped at the vertex stage).
type GouraudState struct {
	UV        [3]math3d.Vec2
	Intensity [3]float64
	AnyLit    bool
}

// Gouraud interpolates per-vertex lighting intensity across the triangle
// and samples the diffuse texture, optionally bucketing the interpolated
// intensity into a small fixed palette of brightness levels.
type Gouraud struct {
	Uniforms Uniforms
	Light    math3d.Vec3
	Diffuse  *models.Texture
	Bucketed bool
}

func (s Gouraud) Vertex(tri [3]canvas.Vertex) (math3d.Mat3, GouraudState) {
	var state GouraudState
	for i, v := range tri {
		state.UV[i] = v.UV
		intensity := v.Normal.Dot(s.Light)
		state.Intensity[i] = intensity
		if intensity > 0 {
			state.AnyLit = true
		}
	}
	return screenTriangle(s.Uniforms.Overall(), tri), state
}

func (s Gouraud) Fragment(bary math3d.Vec3, state *GouraudState) (color.RGBA, bool) {
	// Invariant: a triangle with every vertex intensity <= 0 writes no
	// pixels at all; the rasterizer still visits its pixels, and every
	// fragment is discarded here.
	if !state.AnyLit {
		return color.RGBA{}, false
	}

	uv := state.UV[0].Scale(bary.X).Add(state.UV[1].Scale(bary.Y)).Add(state.UV[2].Scale(bary.Z))
	intensity := state.Intensity[0]*bary.X + state.Intensity[1]*bary.Y + state.Intensity[2]*bary.Z
	if s.Bucketed {
		intensity = bucketIntensity(intensity)
	}

	var base color.RGBA
	if s.Diffuse != nil {
		base = s.Diffuse.Sample(uv)
	} else {
		base = white
	}
	return scaleColor(base, intensity), true
}

// bucketIntensity maps a continuous intensity into six discrete levels
// using thresholds at 0.15, 0.30, 0.45, 0.60, and 0.85.
func bucketIntensity(i float64) float64 {
	switch {
	case i > 0.85:
		return 1.0
	case i > 0.60:
		return 0.80
	case i > 0.45:
		return 0.60
	case i > 0.30:
		return 0.45
	case i > 0.15:
		return 0.30
	default:
		return 0
	}
}

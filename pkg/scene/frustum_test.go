package scene

import (
	"math"
	"testing"

	"github.com/taigrr/rasterkit/pkg/math3d"
	"github.com/taigrr/rasterkit/pkg/models"
)

func TestFrustumNormalizedPlanes(t *testing.T) {
	proj := math3d.Perspective(math.Pi/3, 16.0/9.0, 0.1, 100)
	view := math3d.Identity()
	f := newFrustum(proj.Mul(view))

	for i, p := range f.planes {
		length := p.Normal.Len()
		if math.Abs(length-1.0) > 1e-6 {
			t.Errorf("plane %d normal length = %v, want 1.0", i, length)
		}
	}
}

func TestFrustumIntersectsAABB(t *testing.T) {
	proj := math3d.Perspective(math.Pi/3, 16.0/9.0, 1.0, 100.0)
	view := math3d.Identity()
	f := newFrustum(proj.Mul(view))

	tests := []struct {
		name     string
		min, max math3d.Vec3
		expected bool
	}{
		{"fully inside", math3d.V3(-1, -1, -10), math3d.V3(1, 1, -5), true},
		{"crosses near plane", math3d.V3(-1, -1, -2), math3d.V3(1, 1, 2), true},
		{"behind camera", math3d.V3(-1, -1, 5), math3d.V3(1, 1, 10), false},
		{"beyond far plane", math3d.V3(-1, -1, -150), math3d.V3(1, 1, -120), false},
		{"far to the side", math3d.V3(100, -1, -10), math3d.V3(110, 1, -5), false},
		{"contains the frustum", math3d.V3(-200, -200, -200), math3d.V3(200, 200, 200), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := f.intersectsAABB(tc.min, tc.max)
			if result != tc.expected {
				t.Errorf("intersectsAABB(%v, %v) = %v, want %v", tc.min, tc.max, result, tc.expected)
			}
		})
	}
}

func TestFrustumWithRotatedCamera(t *testing.T) {
	proj := math3d.Perspective(math.Pi/3, 1.0, 1.0, 100.0)
	eye := math3d.V3(0, 0, 0)
	target := math3d.V3(10, 0, 0)
	up := math3d.V3(0, 1, 0)
	view := math3d.LookAt(eye, target, up)
	f := newFrustum(proj.Mul(view))

	inFront := math3d.V3(10, 0, 0)
	if !f.intersectsAABB(inFront, inFront) {
		t.Error("point in front of rotated camera should be visible")
	}

	behind := math3d.V3(-10, 0, 0)
	if f.intersectsAABB(behind, behind) {
		t.Error("point behind rotated camera should not be visible")
	}
}

func TestVisibleFaces(t *testing.T) {
	model := &models.Model{
		Vertices: []models.Vertex{
			{Pos: math3d.V3(-1, -1, -10)},
			{Pos: math3d.V3(1, -1, -10)},
			{Pos: math3d.V3(0, 1, -10)},
			{Pos: math3d.V3(-1, -1, 50)},
			{Pos: math3d.V3(1, -1, 50)},
			{Pos: math3d.V3(0, 1, 50)},
		},
		Faces: []models.Face{
			{Points: [3]models.FacePoint{{VertexIndex: 0}, {VertexIndex: 1}, {VertexIndex: 2}}},
			{Points: [3]models.FacePoint{{VertexIndex: 3}, {VertexIndex: 4}, {VertexIndex: 5}}},
		},
	}

	proj := math3d.Perspective(math.Pi/3, 1.0, 1.0, 100.0)
	view := math3d.Identity()
	vp := proj.Mul(view)

	visible := visibleFaces(model, vp)
	if len(visible) != 1 || visible[0] != 0 {
		t.Errorf("visibleFaces = %v, want [0]", visible)
	}
}

// Package models provides 3D mesh and texture loading and representation.
package models

import (
	"github.com/taigrr/rasterkit/pkg/math3d"
)

// Mesh represents a 3D mesh with vertices and faces.
type Mesh struct {
	Name     string
	Vertices []MeshVertex
	Faces    []MeshFace

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// MeshFace represents a triangle face with vertex indices.
type MeshFace struct {
	V [3]int // Indices into Mesh.Vertices
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:      name,
		Vertices:  make([]MeshVertex, 0),
		Faces:     make([]MeshFace, 0),
		BoundsMin: math3d.V3(0, 0, 0),
		BoundsMax: math3d.V3(0, 0, 0),
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// CalculateNormals computes face normals and assigns them to vertices.
// This is a simple flat-shading approach; for smooth shading, normals
// should be averaged per-vertex.
func (m *Mesh) CalculateNormals() {
	for i := range m.Faces {
		f := &m.Faces[i]
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position

		edge1 := v1.Sub(v0)
		edge2 := v2.Sub(v0)
		normal := edge1.Cross(edge2).Normalize()

		// Assign to vertices (flat shading - each face has its own normal)
		m.Vertices[f.V[0]].Normal = normal
		m.Vertices[f.V[1]].Normal = normal
		m.Vertices[f.V[2]].Normal = normal
	}
}

// CalculateSmoothNormals computes averaged normals for smooth shading.
func (m *Mesh) CalculateSmoothNormals() {
	// Reset all normals
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}

	// Accumulate face normals per vertex
	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position

		edge1 := v1.Sub(v0)
		edge2 := v2.Sub(v0)
		normal := edge1.Cross(edge2) // Don't normalize yet

		m.Vertices[f.V[0]].Normal = m.Vertices[f.V[0]].Normal.Add(normal)
		m.Vertices[f.V[1]].Normal = m.Vertices[f.V[1]].Normal.Add(normal)
		m.Vertices[f.V[2]].Normal = m.Vertices[f.V[2]].Normal.Add(normal)
	}

	// Normalize all accumulated normals
	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulVec3(m.Vertices[i].Position)
		// Normals go through the upper 3x3 of mat (not its inverse
		// transpose), which is exact for rotations and uniform scaling only.
		m.Vertices[i].Normal = mat.MulVec3Dir(m.Vertices[i].Normal).Normalize()
	}
	m.CalculateBounds()
}

// ToModel converts a unified-index Mesh (as produced by the glTF loader)
// into the separate-index Model the Canvas/shader core consumes. Since a
// Mesh already carries one vertex/uv/normal triple per MeshVertex, every
// FacePoint's three indices collapse to the same value.
func (m *Mesh) ToModel(diffuse, normalGlobal, normalDarboux, specular, glow *Texture) *Model {
	vertices := make([]Vertex, len(m.Vertices))
	normals := make([]math3d.Vec3, len(m.Vertices))
	uvs := make([]math3d.Vec2, len(m.Vertices))
	for i, v := range m.Vertices {
		vertices[i] = Vertex{Pos: v.Position}
		normals[i] = v.Normal
		uvs[i] = v.UV
	}

	faces := make([]Face, len(m.Faces))
	for i, f := range m.Faces {
		for j, idx := range f.V {
			faces[i].Points[j] = FacePoint{VertexIndex: idx, UVIndex: idx, NormalIndex: idx}
		}
	}

	return &Model{
		Vertices:      vertices,
		VertexNormals: normals,
		TextureCoords: uvs,
		Faces:         faces,
		Diffuse:       diffuse,
		NormalGlobal:  normalGlobal,
		NormalDarboux: normalDarboux,
		Specular:      specular,
		Glow:          glow,
	}
}

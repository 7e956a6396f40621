package kernel

import (
	"math"

	"github.com/chazu/sdfcore/pkg/geom"
	"github.com/chazu/sdfcore/pkg/shape"
)

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals and colors have 3 floats per vertex, indices has 3 uint32s per
// triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"`         // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`          // [nx0,ny0,nz0, ...]
	Colors   []float32 `json:"colors,omitempty"` // [r0,g0,b0, ...]
	Indices  []uint32  `json:"indices"`          // [i0,i1,i2, ...] triangles
	PartName string    `json:"partName"`         // which named shape this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Vertex returns vertex i.
func (m *Mesh) Vertex(i int) geom.Point3 {
	return geom.P3(float64(m.Vertices[3*i]), float64(m.Vertices[3*i+1]), float64(m.Vertices[3*i+2]))
}

// Bounds returns the box spanned by the vertices. An empty mesh has a
// zero box.
func (m *Mesh) Bounds() geom.Box {
	if m.IsEmpty() {
		return geom.Box{}
	}
	b := geom.Box{Min: m.Vertex(0), Max: m.Vertex(0)}
	for i := 1; i < m.VertexCount(); i++ {
		b = b.Include(m.Vertex(i))
	}
	return b
}

// Paint fills Colors by sampling s at every vertex.
func (m *Mesh) Paint(s shape.Shape) {
	m.Colors = make([]float32, 0, len(m.Vertices))
	for i := 0; i < m.VertexCount(); i++ {
		c := s.Sample(m.Vertex(i), false).Color
		m.Colors = append(m.Colors, float32(c.R), float32(c.G), float32(c.B))
	}
}

// Meshable reports whether b is a finite box with positive volume.
func Meshable(b geom.Box) bool {
	for _, v := range []float64{b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	s := b.Size()
	return s.X > 0 && s.Y > 0 && s.Z > 0
}

// Package sdfx meshes shapes with the github.com/deadsy/sdfx marching
// cubes renderer.
package sdfx

import (
	"fmt"

	"github.com/chazu/sdfcore/pkg/kernel"
	"github.com/chazu/sdfcore/pkg/shape"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface checks.
var (
	_ kernel.Mesher = (*Mesher)(nil)
	_ sdf.SDF3      = (*adapter)(nil)
)

// defaultMeshCells controls marching cubes tessellation resolution along
// the longest side of the bounding box.
const defaultMeshCells = 100

// adapter presents a shape.Shape as an sdf.SDF3.
type adapter struct {
	s   shape.Shape
	box sdf.Box3
}

// Adapt wraps s so sdfx can evaluate it. Only distances are requested.
func Adapt(s shape.Shape) sdf.SDF3 {
	return &adapter{s: s, box: s.BoundingBox().SDF3()}
}

// Evaluate returns the signed distance at p.
func (a *adapter) Evaluate(p v3.Vec) float64 {
	return a.s.Sample(p, true).Distance
}

// BoundingBox returns the shape's bounding box.
func (a *adapter) BoundingBox() sdf.Box3 {
	return a.box
}

// Mesher implements kernel.Mesher with uniform marching cubes.
type Mesher struct {
	// Cells is the number of cells along the longest box side. Zero
	// means the default.
	Cells int
	// Colors requests per-vertex colors sampled from the shape.
	Colors bool
}

// New returns a Mesher with default settings.
func New() *Mesher {
	return &Mesher{}
}

// ToMesh converts a shape to a triangle mesh using marching cubes. The
// bounding box is padded by one cell so surfaces lying on it still close.
func (m *Mesher) ToMesh(s shape.Shape) (*kernel.Mesh, error) {
	box := s.BoundingBox()
	if !kernel.Meshable(box) {
		return nil, fmt.Errorf("sdfx: %w: %v", kernel.ErrUnbounded, box)
	}
	cells := m.Cells
	if cells <= 0 {
		cells = defaultMeshCells
	}
	size := box.Size()
	pad := max(size.X, size.Y, size.Z) / float64(cells)
	sdf3 := &adapter{s: s, box: box.Enlarge(pad).SDF3()}

	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(sdf3, renderer)

	numTri := len(triangles)
	numVerts := numTri * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	mesh := &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}
	if m.Colors {
		mesh.Paint(s)
	}
	return mesh, nil
}

package sdfx

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/sdfcore/pkg/geom"
	"github.com/chazu/sdfcore/pkg/kernel"
	"github.com/chazu/sdfcore/pkg/recipe"
	"github.com/chazu/sdfcore/pkg/shape"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

func ball(r float64) *recipe.Recipe {
	b := recipe.NewBuilder()
	b.Root(b.Sphere("ball", r))
	return recipe.MustCompile(b.Graph())
}

func plate(withBore bool) *recipe.Recipe {
	b := recipe.NewBuilder()
	p := b.Slab("plate", 2, 0.5, 2)
	if withBore {
		p = b.Subtract(p, b.Cylinder("bore", geom.P3(0, -1, 0), geom.P3(0, 1, 0), 0.75))
	}
	b.Root(p)
	return recipe.MustCompile(b.Graph())
}

func TestAdapt(t *testing.T) {
	r := ball(1)
	s := Adapt(r)

	bb := s.BoundingBox()
	if bb.Min != r.BoundingBox().Min || bb.Max != r.BoundingBox().Max {
		t.Errorf("BoundingBox() = %v, want %v", bb, r.BoundingBox())
	}
	for _, p := range []v3.Vec{{X: 0, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}, {X: 0.3, Y: -0.4, Z: 0.5}} {
		if got, want := s.Evaluate(p), r.Sample(p, true).Distance; got != want {
			t.Errorf("Evaluate(%v) = %g, want %g", p, got, want)
		}
	}
}

// Inside a box the slab bound is exact, so it must agree with sdfx's own
// box; outside only the sign has to.
func TestSlabMatchesSdfxBox(t *testing.T) {
	r := plate(false)
	box, err := sdf.Box3D(v3.Vec{X: 4, Y: 1, Z: 4}, 0)
	if err != nil {
		t.Fatalf("Box3D: %v", err)
	}

	for x := -2.5; x <= 2.5; x += 0.5 {
		for y := -1.0; y <= 1.0; y += 0.25 {
			for z := -2.5; z <= 2.5; z += 0.5 {
				p := geom.P3(x, y, z)
				got := r.Sample(p, true).Distance
				want := box.Evaluate(p)
				if want < 0 {
					if math.Abs(got-want) > 1e-9 {
						t.Fatalf("inside %v: got %g, want %g", p, got, want)
					}
					continue
				}
				if (got > 0) != (want > 0) {
					t.Fatalf("sign differs at %v: got %g, sdfx %g", p, got, want)
				}
			}
		}
	}
}

func TestToMeshSphere(t *testing.T) {
	const cells = 32
	m := &Mesher{Cells: cells}
	mesh, err := m.ToMesh(ball(1))
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != mesh.TriangleCount()*3 {
		t.Fatalf("indices length %d != triCount*3", len(mesh.Indices))
	}
	if mesh.Colors != nil {
		t.Error("colors filled without being requested")
	}

	// Every vertex lies within one cell of the unit sphere.
	cell := 2.0 / cells
	for i := 0; i < mesh.VertexCount(); i++ {
		if d := math.Abs(mesh.Vertex(i).Length() - 1); d > cell {
			t.Fatalf("vertex %d is %g from the surface", i, d)
		}
	}
	t.Logf("sphere triangle count: %d", mesh.TriangleCount())
}

func TestToMeshColors(t *testing.T) {
	b := recipe.NewBuilder()
	b.Root(b.Paint(b.Slab("block", 1, 1, 1), geom.Color{G: 1}))
	m := &Mesher{Cells: 16, Colors: true}
	mesh, err := m.ToMesh(recipe.MustCompile(b.Graph()))
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if len(mesh.Colors) != len(mesh.Vertices) {
		t.Fatalf("len(Colors) = %d, want %d", len(mesh.Colors), len(mesh.Vertices))
	}
	if mesh.Colors[0] != 0 || mesh.Colors[1] != 1 || mesh.Colors[2] != 0 {
		t.Errorf("first color = %v, want green", mesh.Colors[:3])
	}
}

func TestDifference(t *testing.T) {
	m := &Mesher{Cells: 40}
	plain, err := m.ToMesh(plate(false))
	if err != nil {
		t.Fatalf("ToMesh(plate) failed: %v", err)
	}
	bored, err := m.ToMesh(plate(true))
	if err != nil {
		t.Fatalf("ToMesh(bored) failed: %v", err)
	}
	// A plate with a hole has more surface than a plain one.
	if bored.TriangleCount() <= plain.TriangleCount() {
		t.Fatalf("bored (%d triangles) should have more triangles than plain (%d triangles)",
			bored.TriangleCount(), plain.TriangleCount())
	}
}

func TestToMeshUnbounded(t *testing.T) {
	s := &shape.Func{Dist: func(geom.Point3) float64 { return -1 }}
	_, err := New().ToMesh(s)
	if !errors.Is(err, kernel.ErrUnbounded) {
		t.Errorf("ToMesh() error = %v, want ErrUnbounded", err)
	}
}

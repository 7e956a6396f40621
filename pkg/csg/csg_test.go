package csg

import (
	"math"
	"math/rand"
	"testing"

	"github.com/chazu/sdfcore/pkg/geom"
	"github.com/chazu/sdfcore/pkg/prim"
)

func TestScalarOperators(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"union", Union(1, -2), -2},
		{"intersection", Intersection(1, -2), 1},
		{"subtraction", Subtraction(1, -2), 2},
		{"subtraction keeps a", Subtraction(-3, 1), -1},
		{"complement", Complement(4), -4},
		{"union all", UnionAll(3, 1, 2), 1},
		{"intersection all", IntersectionAll(3, 1, 2), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %f, want %f", tt.got, tt.want)
			}
		})
	}
	if !math.IsInf(UnionAll(), 1) {
		t.Error("empty UnionAll should be +Inf")
	}
	if !math.IsInf(IntersectionAll(), -1) {
		t.Error("empty IntersectionAll should be -Inf")
	}
}

// Sign laws over two overlapping primitives sampled at random points.
func TestSignLaws(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	sphere := func(p geom.Point3) float64 { return prim.Sphere(p, geom.P3(0, 0, 0), 1.5) }
	slab := func(p geom.Point3) float64 { return prim.Slab(p.Sub(geom.P3(1, 0, 0)), 1, 1, 1) }

	for i := 0; i < 5000; i++ {
		p := geom.P3(r.Float64()*6-3, r.Float64()*6-3, r.Float64()*6-3)
		a, b := sphere(p), slab(p)

		if got, want := Union(a, b) < 0, a < 0 || b < 0; got != want {
			t.Fatalf("union sign at %v: got %v, want %v (a=%f b=%f)", p, got, want, a, b)
		}
		if got, want := Intersection(a, b) < 0, a < 0 && b < 0; got != want {
			t.Fatalf("intersection sign at %v: got %v, want %v", p, got, want)
		}
		if got, want := Subtraction(a, b) < 0, a < 0 && b >= 0; got != want {
			t.Fatalf("subtraction sign at %v: got %v, want %v", p, got, want)
		}
		if got, want := Complement(a) < 0, a > 0; got != want {
			t.Fatalf("complement sign at %v: got %v, want %v", p, got, want)
		}
	}
}

func TestSampleOperators(t *testing.T) {
	red := geom.Color{R: 1}
	blue := geom.Color{B: 1}
	a := geom.Sample{Distance: 1, Color: red}
	b := geom.Sample{Distance: -2, Color: blue}

	if got := UnionSample(a, b); got != b {
		t.Errorf("UnionSample = %v, want %v", got, b)
	}
	if got := IntersectSample(a, b); got != a {
		t.Errorf("IntersectSample = %v, want %v", got, a)
	}
	if got := SubtractSample(a, b); got.Distance != 2 || got.Color != blue {
		t.Errorf("SubtractSample = %v, want distance 2 in cutter color", got)
	}
	if got := SubtractSample(geom.Sample{Distance: -3, Color: red}, geom.Sample{Distance: 1, Color: blue}); got.Distance != -1 || got.Color != blue {
		t.Errorf("SubtractSample near cut = %v", got)
	}
	if got := ComplementSample(a); got.Distance != -1 || got.Color != red {
		t.Errorf("ComplementSample = %v", got)
	}
	// Ties keep the left operand.
	c := geom.Sample{Distance: 1, Color: blue}
	if got := UnionSample(a, c); got.Color != red {
		t.Errorf("tie should keep left color, got %v", got.Color)
	}
}

func TestSampleDistanceMatchesScalar(t *testing.T) {
	r := rand.New(rand.NewSource(12))
	for i := 0; i < 1000; i++ {
		a := geom.Sample{Distance: r.NormFloat64()}
		b := geom.Sample{Distance: r.NormFloat64()}
		if UnionSample(a, b).Distance != Union(a.Distance, b.Distance) {
			t.Fatal("UnionSample distance mismatch")
		}
		if IntersectSample(a, b).Distance != Intersection(a.Distance, b.Distance) {
			t.Fatal("IntersectSample distance mismatch")
		}
		if SubtractSample(a, b).Distance != Subtraction(a.Distance, b.Distance) {
			t.Fatal("SubtractSample distance mismatch")
		}
	}
}

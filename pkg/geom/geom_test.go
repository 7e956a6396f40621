package geom

import (
	"math"
	"testing"
)

func TestBoxContainsAndExtend(t *testing.T) {
	a := NewBox(P3(0, 0, 0), P3(2, 2, 2))
	b := NewBox(P3(3, 0, 0), P3(2, 2, 2))

	if !a.Contains(P3(1, 1, 1)) {
		t.Error("corner should be contained")
	}
	if a.Contains(P3(1.01, 0, 0)) {
		t.Error("point past +X face should not be contained")
	}

	u := a.Extend(b)
	if u.Min != P3(-1, -1, -1) || u.Max != P3(4, 1, 1) {
		t.Errorf("Extend = %v, want min (-1,-1,-1) max (4,1,1)", u)
	}
	if got := u.Size(); got != P3(5, 2, 2) {
		t.Errorf("Size = %v, want (5,2,2)", got)
	}
	if got := u.Center(); got != P3(1.5, 0, 0) {
		t.Errorf("Center = %v, want (1.5,0,0)", got)
	}
}

func TestBoxTranslateEnlarge(t *testing.T) {
	b := NewBox(P3(0, 0, 0), P3(2, 4, 6)).Translate(P3(10, 0, 0)).Enlarge(1)
	if b.Min != P3(8, -3, -4) || b.Max != P3(12, 3, 4) {
		t.Errorf("got %v", b)
	}
	bb := b.SDF3()
	if bb.Min.X != 8 || bb.Max.Z != 4 {
		t.Errorf("SDF3 = %v", bb)
	}
}

func TestMat3(t *testing.T) {
	c, s := math.Cos(0.3), math.Sin(0.3)
	rz := Mat3{
		{c, -s, 0},
		{s, c, 0},
		{0, 0, 1},
	}
	id := rz.Mul(rz.Transpose())
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(id[i][j]-Identity3()[i][j]) > 1e-12 {
				t.Fatalf("R·Rᵀ[%d][%d] = %f", i, j, id[i][j])
			}
		}
	}
	v := rz.MulVec(P3(1, 0, 0))
	if math.Abs(v.X-c) > 1e-12 || math.Abs(v.Y-s) > 1e-12 || v.Z != 0 {
		t.Errorf("MulVec = %v", v)
	}
}

func TestSampleInside(t *testing.T) {
	if (Sample{Distance: 0}).Inside() {
		t.Error("boundary sample should not be inside")
	}
	if !(Sample{Distance: -1e-9}).Inside() {
		t.Error("negative sample should be inside")
	}
}

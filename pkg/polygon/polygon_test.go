package polygon

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/chazu/sdfcore/pkg/geom"
)

var square = []geom.Point2{geom.P2(1, 1), geom.P2(1, 2), geom.P2(2, 2), geom.P2(2, 1)}

func TestSquare(t *testing.T) {
	pg, err := New(square)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		p    geom.Point2
		want float64
		eps  float64
	}{
		{"outside corner", geom.P2(0, 0), math.Sqrt2, 0.01},
		{"center", geom.P2(1.5, 1.5), -0.5, 0.05},
		{"inside near edge", geom.P2(1.9, 1.5), -0.1, 1e-9},
		{"outside right", geom.P2(3, 1.5), 1, 1e-9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pg.SDF(tt.p); math.Abs(got-tt.want) > tt.eps {
				t.Errorf("SDF(%v) = %f, want %f", tt.p, got, tt.want)
			}
		})
	}
}

func TestTooFewVertices(t *testing.T) {
	_, err := New(square[:2])
	if !errors.Is(err, ErrTooFewVertices) {
		t.Fatalf("err = %v, want ErrTooFewVertices", err)
	}
}

func TestConcave(t *testing.T) {
	// U shape opening upward.
	u := MustNew(
		geom.P2(0, 0), geom.P2(3, 0), geom.P2(3, 3), geom.P2(2, 3),
		geom.P2(2, 1), geom.P2(1, 1), geom.P2(1, 3), geom.P2(0, 3),
	)
	if !u.Inside(geom.P2(0.5, 2)) {
		t.Error("left arm should be inside")
	}
	if u.Inside(geom.P2(1.5, 2)) {
		t.Error("notch should be outside")
	}
	if got := u.SDF(geom.P2(1.5, 2)); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("notch distance = %f, want 0.5", got)
	}
}

func TestHorizontalEdgeAtSampleHeight(t *testing.T) {
	// The ray from (0.5, 1) runs along the top edge of the square below
	// it; horizontal edges must not count as crossings.
	pg := MustNew(geom.P2(0, 0), geom.P2(1, 0), geom.P2(1, 1), geom.P2(0, 1))
	if got := pg.Distance(geom.P2(-1, 1)); got != 1 {
		t.Errorf("distance = %f, want 1", got)
	}
	if pg.Inside(geom.P2(-1, 1)) {
		t.Error("point level with the top edge and left of it should be outside")
	}
}

func TestOnEdgeIsZero(t *testing.T) {
	pg := MustNew(square...)
	if got := pg.SDF(geom.P2(1.5, 1)); got != 0 {
		t.Errorf("on-edge SDF = %f, want ±0", got)
	}
}

func TestWindingIndependent(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	cw := MustNew(square...)
	rev := make([]geom.Point2, len(square))
	for i := range square {
		rev[i] = square[len(square)-1-i]
	}
	ccw := MustNew(rev...)
	for i := 0; i < 1000; i++ {
		p := geom.P2(r.Float64()*4-1, r.Float64()*4-1)
		if cw.Inside(p) != ccw.Inside(p) || math.Abs(cw.SDF(p)-ccw.SDF(p)) > 1e-12 {
			t.Fatalf("winding changed SDF at %v", p)
		}
	}
}

func TestBounds(t *testing.T) {
	lo, hi := MustNew(square...).Bounds()
	if lo != geom.P2(1, 1) || hi != geom.P2(2, 2) {
		t.Errorf("Bounds = %v %v", lo, hi)
	}
}

func TestVerticesCopy(t *testing.T) {
	pg := MustNew(square...)
	v := pg.Vertices()
	v[0] = geom.P2(100, 100)
	if pg.Vertices()[0] != square[0] {
		t.Error("Vertices must return a copy")
	}
}

func TestPath(t *testing.T) {
	pg, err := NewPath(geom.P2(0, 0)).
		LineTo(geom.P2(4, 0)).
		BezierTo(8, geom.P2(4, 4), geom.P2(0, 4)).
		LineTo(geom.P2(0, 0)).
		Close()
	if err != nil {
		t.Fatal(err)
	}
	// start + line end + 8 curve points, closing vertex dropped
	if pg.Len() != 10 {
		t.Errorf("Len = %d, want 10", pg.Len())
	}
	if !pg.Inside(geom.P2(1, 1)) {
		t.Error("(1,1) should be inside the curved profile")
	}
	if pg.Inside(geom.P2(3.9, 3.9)) {
		t.Error("(3.9,3.9) lies outside the quadratic shoulder")
	}
}

func TestPathTooShort(t *testing.T) {
	_, err := NewPath(geom.P2(0, 0)).LineTo(geom.P2(1, 0)).Close()
	if !errors.Is(err, ErrTooFewVertices) {
		t.Errorf("err = %v, want ErrTooFewVertices", err)
	}
}

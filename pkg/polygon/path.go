package polygon

import (
	"github.com/chazu/sdfcore/pkg/curve"
	"github.com/chazu/sdfcore/pkg/geom"
)

// Path accumulates straight and curved boundary pieces into a polygon.
// Curves are flattened as they are added, so a closed Path costs the
// same per sample as a hand-written vertex list.
type Path struct {
	pts []geom.Point2
}

// NewPath starts a path at p.
func NewPath(p geom.Point2) *Path {
	return &Path{pts: []geom.Point2{p}}
}

// LineTo adds a straight edge to p.
func (b *Path) LineTo(p geom.Point2) *Path {
	b.pts = append(b.pts, p)
	return b
}

// BezierTo adds a Bezier edge from the current point through ctrl, whose
// last element is the end point, flattened into segments pieces.
func (b *Path) BezierTo(segments int, ctrl ...geom.Point2) *Path {
	if len(ctrl) == 0 {
		return b
	}
	full := make([]geom.Point2, 0, len(ctrl)+1)
	full = append(full, b.current())
	full = append(full, ctrl...)
	// The first flattened point is the current point.
	b.pts = append(b.pts, curve.Flatten(full, segments)[1:]...)
	return b
}

// Points returns a copy of the vertices gathered so far.
func (b *Path) Points() []geom.Point2 {
	out := make([]geom.Point2, len(b.pts))
	copy(out, b.pts)
	return out
}

// Close builds the polygon. A final vertex equal to the first is dropped
// since the ring closes implicitly.
func (b *Path) Close() (*Polygon, error) {
	pts := b.pts
	if len(pts) > 1 && pts[len(pts)-1] == pts[0] {
		pts = pts[:len(pts)-1]
	}
	return New(pts)
}

func (b *Path) current() geom.Point2 {
	return b.pts[len(b.pts)-1]
}

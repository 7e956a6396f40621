// Package polygon computes signed distances to closed 2D polygons.
//
// The unsigned distance is the minimum point-to-segment distance over
// all edges; the sign comes from a ray-casting parity test. A point
// exactly on an edge has distance zero and may be classified either way
// by the parity test.
package polygon

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/sdfcore/pkg/geom"
	"github.com/chazu/sdfcore/pkg/prim"
)

// ErrTooFewVertices is returned when building a polygon from fewer than
// three points.
var ErrTooFewVertices = errors.New("polygon: at least 3 vertices required")

// Polygon is an implicitly closed, immutable vertex ring.
type Polygon struct {
	v []geom.Point2
}

// New copies pts into a Polygon. The last vertex connects back to the
// first; a repeated closing vertex is accepted but not required.
func New(pts []geom.Point2) (*Polygon, error) {
	if len(pts) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewVertices, len(pts))
	}
	v := make([]geom.Point2, len(pts))
	copy(v, pts)
	return &Polygon{v: v}, nil
}

// MustNew is New for literal vertex lists; it panics on error.
func MustNew(pts ...geom.Point2) *Polygon {
	p, err := New(pts)
	if err != nil {
		panic(err)
	}
	return p
}

// Len returns the number of vertices.
func (pg *Polygon) Len() int {
	return len(pg.v)
}

// Vertices returns a copy of the vertex ring.
func (pg *Polygon) Vertices() []geom.Point2 {
	v := make([]geom.Point2, len(pg.v))
	copy(v, pg.v)
	return v
}

// Distance returns the unsigned distance from p to the nearest edge.
func (pg *Polygon) Distance(p geom.Point2) float64 {
	return Distance(p, pg.v)
}

// Inside reports the ray-casting parity of p.
func (pg *Polygon) Inside(p geom.Point2) bool {
	return Inside(p, pg.v)
}

// SDF returns the signed distance from p, negative inside.
func (pg *Polygon) SDF(p geom.Point2) float64 {
	return SDF(p, pg.v)
}

// Bounds returns the 2D extent of the vertices.
func (pg *Polygon) Bounds() (lo, hi geom.Point2) {
	lo, hi = pg.v[0], pg.v[0]
	for _, q := range pg.v[1:] {
		lo = geom.P2(math.Min(lo.X, q.X), math.Min(lo.Y, q.Y))
		hi = geom.P2(math.Max(hi.X, q.X), math.Max(hi.Y, q.Y))
	}
	return lo, hi
}

// Distance returns the unsigned distance from p to the closed ring v.
// An empty ring is infinitely far away.
func Distance(p geom.Point2, v []geom.Point2) float64 {
	n := len(v)
	d := math.Inf(1)
	for i := 0; i < n; i++ {
		d = math.Min(d, prim.Segment2(p, v[i], v[(i+1)%n]))
	}
	return d
}

// Inside casts a ray from p towards +X and reports whether it crosses
// the ring an odd number of times. An edge counts when exactly one of
// its endpoints lies strictly above p.Y and p.X is left of the edge's
// intercept at p.Y, so horizontal edges never count.
func Inside(p geom.Point2, v []geom.Point2) bool {
	inside := false
	n := len(v)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := v[i], v[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			x := (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// SDF returns the signed distance from p to the ring v.
func SDF(p geom.Point2, v []geom.Point2) float64 {
	d := Distance(p, v)
	if Inside(p, v) {
		return -d
	}
	return d
}

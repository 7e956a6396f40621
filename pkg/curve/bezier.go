// Package curve flattens Bezier curves into polylines.
package curve

import "github.com/chazu/sdfcore/pkg/geom"

// Eval returns the point at parameter t on the Bezier curve with the
// given control points, using de Casteljau's repeated linear
// interpolation. The cost is quadratic in len(ctrl). At t=0 and t=1 the
// first and last control points are returned exactly.
func Eval(ctrl []geom.Point2, t float64) geom.Point2 {
	switch {
	case len(ctrl) == 0:
		return geom.Point2{}
	case t == 0:
		return ctrl[0]
	case t == 1:
		return ctrl[len(ctrl)-1]
	}
	// Small fixed buffer covers the cubic and lower curves without
	// allocating.
	var buf [4]geom.Point2
	var pts []geom.Point2
	if len(ctrl) <= len(buf) {
		pts = buf[:len(ctrl)]
	} else {
		pts = make([]geom.Point2, len(ctrl))
	}
	copy(pts, ctrl)
	for n := len(pts) - 1; n > 0; n-- {
		for i := 0; i < n; i++ {
			pts[i] = lerp(pts[i], pts[i+1], t)
		}
	}
	return pts[0]
}

// Flatten samples the curve at t = i/segments for i in 0..segments and
// returns the segments+1 points. Segment counts below 1 are raised to 1.
func Flatten(ctrl []geom.Point2, segments int) []geom.Point2 {
	if len(ctrl) == 0 {
		return nil
	}
	if segments < 1 {
		segments = 1
	}
	out := make([]geom.Point2, segments+1)
	for i := 0; i <= segments; i++ {
		out[i] = Eval(ctrl, float64(i)/float64(segments))
	}
	return out
}

func lerp(a, b geom.Point2, t float64) geom.Point2 {
	return geom.Point2{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

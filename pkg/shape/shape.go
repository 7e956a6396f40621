// Package shape defines the interface a shape recipe presents to a host
// renderer, together with a host-owned registry of shape factories.
package shape

import "github.com/chazu/sdfcore/pkg/geom"

// Shape is an implicit solid.
//
// Sample must be safe to call from many goroutines at once; it builds
// any per-sample state itself. When distanceOnly is true the color may
// be left zero, but the distance must be the same either way.
type Shape interface {
	// BoundingBox returns a box containing the zero level set.
	BoundingBox() geom.Box
	// Sample evaluates the shape at p.
	Sample(p geom.Point3, distanceOnly bool) geom.Sample
}

// DistanceFunc is a signed distance function.
type DistanceFunc func(p geom.Point3) float64

// Func adapts a distance function with a fixed bounding box and a single
// color into a Shape.
type Func struct {
	Dist  DistanceFunc
	Box   geom.Box
	Color geom.Color
}

// BoundingBox implements Shape.
func (f *Func) BoundingBox() geom.Box {
	return f.Box
}

// Sample implements Shape.
func (f *Func) Sample(p geom.Point3, distanceOnly bool) geom.Sample {
	s := geom.Sample{Distance: f.Dist(p)}
	if !distanceOnly {
		s.Color = f.Color
	}
	return s
}

// Distance is a convenience for callers that only need the distance.
func Distance(s Shape, p geom.Point3) float64 {
	return s.Sample(p, true).Distance
}

var _ Shape = (*Func)(nil)

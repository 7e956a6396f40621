// Package prim provides closed-form distance functions for basic solids.
//
// Several of these are bounds rather than true Euclidean distances:
// Trapezoid and Slab intersect half-spaces and are exact only on their
// flat faces. Shape recipes are tuned against this behavior.
package prim

import (
	"math"

	"github.com/chazu/sdfcore/pkg/geom"
)

// minSpine2 is the squared spine length below which a cylinder collapses
// to a sphere.
const minSpine2 = 1e-6

// Sphere returns the distance from p to a sphere of radius r around c.
func Sphere(p, c geom.Point3, r float64) float64 {
	return p.Sub(c).Length() - r
}

// CylinderBetween returns the distance from p to a capped cylinder whose
// spine runs from a to b. The cap is the clamped spine end, so the ends
// are rounded rather than flat. Spines shorter than 1e-3 are treated as
// a sphere centered on a.
func CylinderBetween(p, a, b geom.Point3, radius float64) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 < minSpine2 {
		return Sphere(p, a, radius)
	}
	t := clamp01(p.Sub(a).Dot(ab) / l2)
	closest := a.Add(ab.MulScalar(t))
	return p.Sub(closest).Length() - radius
}

// Trapezoid returns a bound on the distance from (x, y) to a trapezoid
// that sits on y=0 with bottom width w1, top width w2 at y=h, centered on
// x=0. It is the maximum of four half-plane constraints. A zero height
// degenerates to the flat strip of half width w1/2.
func Trapezoid(x, y, w1, w2, h float64) float64 {
	k := w1 / 2
	if h != 0 {
		k = (w1 + y*(w2-w1)/h) / 2
	}
	return max(x-k, -k-x, -y, y-h)
}

// TrapezoidPrism extrudes Trapezoid symmetrically along Z to a total
// depth.
func TrapezoidPrism(p geom.Point3, w1, w2, h, depth float64) float64 {
	return max(Trapezoid(p.X, p.Y, w1, w2, h), math.Abs(p.Z)-depth/2)
}

// Slab returns a bound on the distance to an axis-aligned box centered
// at the origin with half extents w (X), t (Y) and h (Z).
func Slab(p geom.Point3, w, h, t float64) float64 {
	return max(math.Abs(p.X)-w, math.Abs(p.Z)-h, math.Abs(p.Y)-t)
}

// Segment2 returns the unsigned distance from p to the segment a→b.
// A zero-length segment is the point a.
func Segment2(p, a, b geom.Point2) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Sub(a).Length()
	}
	t := clamp01(p.Sub(a).Dot(ab) / l2)
	return p.Sub(a.Add(ab.MulScalar(t))).Length()
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

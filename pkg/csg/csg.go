// Package csg implements the boolean combinator algebra over signed
// distances (negative inside).
//
// The operators are plain min/max/negation. They preserve the sign of the
// combined region exactly but not its distance: near the boundaries of
// non-convex combinations the result may fall short of, or overshoot, the
// true Euclidean distance. Shapes built from these operators inherit that
// limitation from their primitives, and recipes are tuned against it.
package csg

import (
	"math"

	"github.com/chazu/sdfcore/pkg/geom"
)

var inf = math.Inf(1)

// Union is inside wherever a or b is inside.
func Union(a, b float64) float64 {
	return min(a, b)
}

// Intersection is inside only where both a and b are inside.
func Intersection(a, b float64) float64 {
	return max(a, b)
}

// Subtraction removes b from a.
func Subtraction(a, b float64) float64 {
	return max(a, -b)
}

// Complement swaps inside and outside.
func Complement(a float64) float64 {
	return -a
}

// UnionAll folds Union over ds. With no arguments the result is +Inf,
// the empty solid.
func UnionAll(ds ...float64) float64 {
	d := inf
	for _, x := range ds {
		d = min(d, x)
	}
	return d
}

// IntersectionAll folds Intersection over ds. With no arguments the
// result is -Inf, all of space.
func IntersectionAll(ds ...float64) float64 {
	d := -inf
	for _, x := range ds {
		d = max(d, x)
	}
	return d
}

// UnionSample is Union carrying the color of the nearer operand.
// Ties keep a.
func UnionSample(a, b geom.Sample) geom.Sample {
	if b.Distance < a.Distance {
		return b
	}
	return a
}

// IntersectSample is Intersection carrying the color of the operand that
// bounds the result. Ties keep a.
func IntersectSample(a, b geom.Sample) geom.Sample {
	if b.Distance > a.Distance {
		return b
	}
	return a
}

// SubtractSample removes b from a. Where the cut surface determines the
// result, the cutter's color is used so carved faces can be tinted.
func SubtractSample(a, b geom.Sample) geom.Sample {
	if -b.Distance > a.Distance {
		return geom.Sample{Distance: -b.Distance, Color: b.Color}
	}
	return a
}

// ComplementSample negates the distance and keeps the color.
func ComplementSample(a geom.Sample) geom.Sample {
	return geom.Sample{Distance: -a.Distance, Color: a.Color}
}

// Package geom defines the value types shared by every part of the
// evaluation core: points, colors, samples, boxes and 3x3 matrices.
// Points are the deadsy/sdfx vector types so shapes can be handed to
// sdfx renderers without conversion.
package geom

import (
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Point2 is a 2D coordinate used for profile geometry.
type Point2 = v2.Vec

// Point3 is a 3D coordinate used for sample points and offsets.
type Point3 = v3.Vec

// P2 is shorthand for a Point2 literal.
func P2(x, y float64) Point2 {
	return Point2{X: x, Y: y}
}

// P3 is shorthand for a Point3 literal.
func P3(x, y, z float64) Point3 {
	return Point3{X: x, Y: y, Z: z}
}

// Color is a linear RGB material color with components in [0,1].
type Color struct {
	R, G, B float64
}

// Gray returns a color with all three components set to v.
func Gray(v float64) Color {
	return Color{R: v, G: v, B: v}
}

// Sample is the result of evaluating a shape at one point.
// Distance is negative inside the solid, zero on the boundary and
// positive outside.
type Sample struct {
	Distance float64
	Color    Color
}

// Inside reports whether the sample lies strictly inside the solid.
func (s Sample) Inside() bool {
	return s.Distance < 0
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max Point3
}

// NewBox returns the box centered on center with the given full size.
func NewBox(center, size Point3) Box {
	half := size.MulScalar(0.5)
	return Box{Min: center.Sub(half), Max: center.Add(half)}
}

// Contains reports whether p lies inside or on the box.
func (b Box) Contains(p Point3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Extend returns the smallest box containing both b and o.
func (b Box) Extend(o Box) Box {
	return Box{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Include returns the smallest box containing b and p.
func (b Box) Include(p Point3) Box {
	return Box{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Translate returns b moved by off.
func (b Box) Translate(off Point3) Box {
	return Box{Min: b.Min.Add(off), Max: b.Max.Add(off)}
}

// Enlarge grows the box by d on every side.
func (b Box) Enlarge(d float64) Box {
	e := Point3{X: d, Y: d, Z: d}
	return Box{Min: b.Min.Sub(e), Max: b.Max.Add(e)}
}

// Size returns the extent of the box along each axis.
func (b Box) Size() Point3 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b Box) Center() Point3 {
	return b.Min.Add(b.Max).MulScalar(0.5)
}

// Vertices returns the eight corners of the box.
func (b Box) Vertices() [8]Point3 {
	return [8]Point3{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}
}

// SDF3 converts the box to the sdfx representation.
func (b Box) SDF3() sdf.Box3 {
	return sdf.Box3{Min: b.Min, Max: b.Max}
}

// Package xform implements point-space transforms.
//
// Every function maps a sample point to the point at which the
// untransformed shape must be evaluated, i.e. it applies the inverse of
// the transform that would be applied to the shape. Moving a shape by
// +offset therefore means evaluating it at Translate(p, offset) = p-offset.
package xform

import (
	"math"

	"github.com/chazu/sdfcore/pkg/geom"
)

// minAxisLength2 is the squared length below which a rotation axis is
// treated as degenerate.
const minAxisLength2 = 1e-24

var (
	unitX = geom.P3(1, 0, 0)
	unitY = geom.P3(0, 1, 0)
	unitZ = geom.P3(0, 0, 1)
)

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Translate returns the sample point for a shape moved by offset.
func Translate(p, offset geom.Point3) geom.Point3 {
	return p.Sub(offset)
}

// RotateAxis returns the sample point for a shape rotated by angle
// (radians, right-handed) around axis. The axis need not be unit length.
// A zero axis has no defined rotation; p is returned unchanged.
func RotateAxis(p, axis geom.Point3, angle float64) geom.Point3 {
	l2 := axis.Dot(axis)
	if l2 < minAxisLength2 {
		return p
	}
	k := axis.MulScalar(1 / math.Sqrt(l2))
	c := math.Cos(-angle)
	s := math.Sin(-angle)
	// Rodrigues: p·cosθ + (k×p)·sinθ + k·(k·p)·(1−cosθ)
	return p.MulScalar(c).
		Add(k.Cross(p).MulScalar(s)).
		Add(k.MulScalar(k.Dot(p) * (1 - c)))
}

// RotateX rotates the sample point for a shape turned by angle about X.
func RotateX(p geom.Point3, angle float64) geom.Point3 {
	return RotateAxis(p, unitX, angle)
}

// RotateY rotates the sample point for a shape turned by angle about Y.
func RotateY(p geom.Point3, angle float64) geom.Point3 {
	return RotateAxis(p, unitY, angle)
}

// RotateZ rotates the sample point for a shape turned by angle about Z.
func RotateZ(p geom.Point3, angle float64) geom.Point3 {
	return RotateAxis(p, unitZ, angle)
}

// EulerMatrix returns the forward rotation Rz(roll)·Ry(yaw)·Rx(pitch),
// the rotation a shape undergoes when placed with these angles.
func EulerMatrix(pitch, yaw, roll float64) geom.Mat3 {
	cx, sx := math.Cos(pitch), math.Sin(pitch)
	cy, sy := math.Cos(yaw), math.Sin(yaw)
	cz, sz := math.Cos(roll), math.Sin(roll)
	rx := geom.Mat3{
		{1, 0, 0},
		{0, cx, -sx},
		{0, sx, cx},
	}
	ry := geom.Mat3{
		{cy, 0, sy},
		{0, 1, 0},
		{-sy, 0, cy},
	}
	rz := geom.Mat3{
		{cz, -sz, 0},
		{sz, cz, 0},
		{0, 0, 1},
	}
	return rz.Mul(ry).Mul(rx)
}

// RotateEuler returns the sample point for a shape rotated by pitch
// (about X), yaw (about Y) and roll (about Z), applied X first. The
// inverse is Rx(−pitch)·Ry(−yaw)·Rz(−roll), which is the same as
// RotateX(RotateY(RotateZ(p, roll), yaw), pitch).
func RotateEuler(p geom.Point3, pitch, yaw, roll float64) geom.Point3 {
	return RotateMatrix(p, EulerMatrix(pitch, yaw, roll))
}

// RotateMatrix returns the sample point for a shape rotated by the
// orthonormal matrix m. The transpose stands in for the inverse.
func RotateMatrix(p geom.Point3, m geom.Mat3) geom.Point3 {
	return m.Transpose().MulVec(p)
}

// Bounds returns an axis-aligned box containing b after the forward
// rotation m has been applied to it.
func Bounds(b geom.Box, m geom.Mat3) geom.Box {
	v := b.Vertices()
	out := geom.Box{Min: m.MulVec(v[0]), Max: m.MulVec(v[0])}
	for _, c := range v[1:] {
		out = out.Include(m.MulVec(c))
	}
	return out
}

// AxisMatrix returns the forward rotation matrix for angle about axis.
// A zero axis yields the identity.
func AxisMatrix(axis geom.Point3, angle float64) geom.Mat3 {
	// Columns are the images of the basis vectors under the forward
	// rotation, which is RotateAxis with the angle negated.
	ex := RotateAxis(unitX, axis, -angle)
	ey := RotateAxis(unitY, axis, -angle)
	ez := RotateAxis(unitZ, axis, -angle)
	return geom.Mat3{
		{ex.X, ey.X, ez.X},
		{ex.Y, ey.Y, ez.Y},
		{ex.Z, ey.Z, ez.Z},
	}
}

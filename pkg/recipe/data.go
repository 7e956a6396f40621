package recipe

import "github.com/chazu/sdfcore/pkg/geom"

// ---------------------------------------------------------------------------
// Primitives
// ---------------------------------------------------------------------------

// SphereData is a sphere centered at the origin.
type SphereData struct {
	Radius float64
}

func (SphereData) nodeData() {}

// CylinderData is a capped cylinder along the segment From→To.
type CylinderData struct {
	From, To geom.Point3
	Radius   float64
}

func (CylinderData) nodeData() {}

// SlabData is an origin-centered box given by half extents.
type SlabData struct {
	HalfX, HalfY, HalfZ float64
}

func (SlabData) nodeData() {}

// TrapezoidData is a trapezoid standing on y=0 in the XY plane,
// extruded symmetrically along Z.
type TrapezoidData struct {
	Bottom, Top, Height float64
	Depth               float64
}

func (TrapezoidData) nodeData() {}

// PolygonData is a closed XY polygon extruded symmetrically along Z.
// Curved edges are flattened into Points before the node is built.
type PolygonData struct {
	Points []geom.Point2
	Depth  float64
}

func (PolygonData) nodeData() {}

// ---------------------------------------------------------------------------
// Transforms
// ---------------------------------------------------------------------------

// TranslateData moves the child by Offset.
type TranslateData struct {
	Offset geom.Point3
}

func (TranslateData) nodeData() {}

// RotateData turns the child by Angle radians about Axis.
type RotateData struct {
	Axis  geom.Point3
	Angle float64
}

func (RotateData) nodeData() {}

// EulerData turns the child by pitch (X), yaw (Y) and roll (Z), radians.
type EulerData struct {
	Pitch, Yaw, Roll float64
}

func (EulerData) nodeData() {}

// ---------------------------------------------------------------------------
// Operators
// ---------------------------------------------------------------------------

// OpKind enumerates the combinators.
type OpKind int

const (
	OpUnion        OpKind = iota // any child
	OpIntersection               // every child
	OpSubtraction                // first child minus the rest
	OpComplement                 // everything but the single child
)

func (k OpKind) String() string {
	switch k {
	case OpUnion:
		return "union"
	case OpIntersection:
		return "intersection"
	case OpSubtraction:
		return "subtraction"
	case OpComplement:
		return "complement"
	default:
		return "unknown"
	}
}

// OpData combines the node's children.
type OpData struct {
	Op OpKind
}

func (OpData) nodeData() {}

// ---------------------------------------------------------------------------
// Paint
// ---------------------------------------------------------------------------

// PaintData colors the child.
type PaintData struct {
	Color geom.Color
}

func (PaintData) nodeData() {}

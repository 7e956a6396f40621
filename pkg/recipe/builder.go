package recipe

import (
	"fmt"

	"github.com/chazu/sdfcore/pkg/geom"
)

// Builder adds nodes to a Graph with generated IDs. Named nodes get IDs
// derived from kind and name; unnamed ones are numbered by the builder,
// so two builders fed the same calls produce identical graphs.
//
// Names are unique within a graph. Reusing one keeps both nodes, records
// an error returned by Err, and leaves a finding for Validate.
type Builder struct {
	g    *Graph
	anon int
	dup  int
	err  error
}

// NewBuilder starts a new graph.
func NewBuilder() *Builder {
	return &Builder{g: New()}
}

// Graph returns the graph built so far.
func (b *Builder) Graph() *Graph {
	return b.g
}

// Err returns the first naming error, or nil.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *Builder) add(kind NodeKind, prefix, name string, data NodeData, children ...NodeID) NodeID {
	path := prefix + "/" + name
	switch {
	case name == "":
		b.anon++
		path = fmt.Sprintf("%s/_anon_%d", prefix, b.anon)
	case b.g.Lookup(name) != nil:
		b.fail(fmt.Errorf("recipe: name %q already defined", name))
		b.dup++
		path = fmt.Sprintf("%s/%s#%d", prefix, name, b.dup)
	}
	id := NewNodeID(path)
	b.g.AddNode(&Node{
		ID:       id,
		Kind:     kind,
		Name:     name,
		Children: children,
		Data:     data,
	})
	return id
}

// Sphere adds a sphere of radius r at the origin.
func (b *Builder) Sphere(name string, r float64) NodeID {
	return b.add(NodePrimitive, "sphere", name, SphereData{Radius: r})
}

// Cylinder adds a capped cylinder between two points.
func (b *Builder) Cylinder(name string, from, to geom.Point3, r float64) NodeID {
	return b.add(NodePrimitive, "cylinder", name, CylinderData{From: from, To: to, Radius: r})
}

// Slab adds an origin-centered box with the given half extents.
func (b *Builder) Slab(name string, hx, hy, hz float64) NodeID {
	return b.add(NodePrimitive, "slab", name, SlabData{HalfX: hx, HalfY: hy, HalfZ: hz})
}

// Trapezoid adds a trapezoidal prism.
func (b *Builder) Trapezoid(name string, bottom, top, height, depth float64) NodeID {
	return b.add(NodePrimitive, "trapezoid", name, TrapezoidData{Bottom: bottom, Top: top, Height: height, Depth: depth})
}

// Polygon adds an extruded polygon. pts is copied.
func (b *Builder) Polygon(name string, pts []geom.Point2, depth float64) NodeID {
	c := make([]geom.Point2, len(pts))
	copy(c, pts)
	return b.add(NodePrimitive, "polygon", name, PolygonData{Points: c, Depth: depth})
}

// Translate moves child by off.
func (b *Builder) Translate(child NodeID, off geom.Point3) NodeID {
	return b.add(NodeTransform, "translate", "", TranslateData{Offset: off}, child)
}

// Rotate turns child by angle radians about axis.
func (b *Builder) Rotate(child NodeID, axis geom.Point3, angle float64) NodeID {
	return b.add(NodeTransform, "rotate", "", RotateData{Axis: axis, Angle: angle}, child)
}

// RotateEuler turns child by pitch, yaw and roll radians.
func (b *Builder) RotateEuler(child NodeID, pitch, yaw, roll float64) NodeID {
	return b.add(NodeTransform, "euler", "", EulerData{Pitch: pitch, Yaw: yaw, Roll: roll}, child)
}

// Op combines children with op.
func (b *Builder) Op(op OpKind, children ...NodeID) NodeID {
	return b.add(NodeOperator, op.String(), "", OpData{Op: op}, children...)
}

// Union is Op(OpUnion, ...).
func (b *Builder) Union(children ...NodeID) NodeID {
	return b.Op(OpUnion, children...)
}

// Intersection is Op(OpIntersection, ...).
func (b *Builder) Intersection(children ...NodeID) NodeID {
	return b.Op(OpIntersection, children...)
}

// Subtract removes cutters from base.
func (b *Builder) Subtract(base NodeID, cutters ...NodeID) NodeID {
	return b.Op(OpSubtraction, append([]NodeID{base}, cutters...)...)
}

// Complement inverts child.
func (b *Builder) Complement(child NodeID) NodeID {
	return b.Op(OpComplement, child)
}

// Paint colors child.
func (b *Builder) Paint(child NodeID, c geom.Color) NodeID {
	return b.add(NodePaint, "paint", "", PaintData{Color: c}, child)
}

// Name gives an existing node a name so it can be looked up later.
func (b *Builder) Name(id NodeID, name string) {
	if other, ok := b.g.NameIndex[name]; ok && other != id {
		b.fail(fmt.Errorf("recipe: name %q already defined", name))
		return
	}
	if n := b.g.Get(id); n != nil {
		n.Name = name
		b.g.NameIndex[name] = id
	}
}

// Root marks id as a root of the recipe.
func (b *Builder) Root(id NodeID) {
	b.g.AddRoot(id)
}

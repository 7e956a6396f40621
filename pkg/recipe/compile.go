package recipe

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/sdfcore/pkg/csg"
	"github.com/chazu/sdfcore/pkg/geom"
	"github.com/chazu/sdfcore/pkg/memo"
	"github.com/chazu/sdfcore/pkg/polygon"
	"github.com/chazu/sdfcore/pkg/prim"
	"github.com/chazu/sdfcore/pkg/shape"
	"github.com/chazu/sdfcore/pkg/xform"
)

// DefaultColor is the color of surfaces no Paint node reaches.
var DefaultColor = geom.Gray(0.7)

// ErrUnbounded is returned by Compile when the root of a recipe has no
// finite bounding box, e.g. a bare complement.
var ErrUnbounded = errors.New("recipe: root is unbounded")

// Recipe is a compiled graph. It implements shape.Shape and is safe for
// concurrent use.
type Recipe struct {
	root   evalFunc
	box    geom.Box
	shared int // number of per-sample cache slots
}

var _ shape.Shape = (*Recipe)(nil)

// BoundingBox implements shape.Shape.
func (r *Recipe) BoundingBox() geom.Box {
	return r.box
}

// Sample implements shape.Shape.
func (r *Recipe) Sample(p geom.Point3, distanceOnly bool) geom.Sample {
	c := sampleCtx{}
	if r.shared > 0 {
		c.slots = make([]slot, r.shared)
	}
	s := r.root(&c, p)
	if distanceOnly {
		s.Color = geom.Color{}
	}
	return s
}

// ---- per-sample state ----

// slot caches the result of a node reached from more than one parent.
// A shared node under two different transforms sees two different
// points, so the cached value is only reused for the same point.
type slot struct {
	p    geom.Point3
	cell memo.Cell[geom.Sample]
}

type sampleCtx struct {
	slots []slot
}

type evalFunc func(c *sampleCtx, p geom.Point3) geom.Sample

// ---- compilation ----

type compiled struct {
	eval evalFunc
	box  geom.Box
}

type compiler struct {
	g       *Graph
	parents map[NodeID]int
	done    map[NodeID]compiled
	shared  int
}

// Compile validates g and turns it into a Recipe. Validation warnings
// are ignored; any error-severity finding is returned as *InvalidError.
// Nodes reachable through several parents are compiled once and their
// samples are cached per call to Sample.
func Compile(g *Graph) (*Recipe, error) {
	if findings := Validate(g); HasErrors(findings) {
		var errs []ValidationError
		for _, f := range findings {
			if f.Severity == SeverityError {
				errs = append(errs, f)
			}
		}
		return nil, &InvalidError{Findings: errs}
	}

	c := &compiler{
		g:       g,
		parents: make(map[NodeID]int),
		done:    make(map[NodeID]compiled),
	}
	c.countParents()

	roots := make([]compiled, 0, len(g.Roots))
	seen := make(map[NodeID]bool)
	for _, rid := range g.Roots {
		if seen[rid] {
			continue
		}
		seen[rid] = true
		roots = append(roots, c.node(rid))
	}

	root := roots[0]
	if len(roots) > 1 {
		root = unionOf(roots)
	}
	if !finite(root.box) {
		return nil, ErrUnbounded
	}
	return &Recipe{root: root.eval, box: root.box, shared: c.shared}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(g *Graph) *Recipe {
	r, err := Compile(g)
	if err != nil {
		panic(err)
	}
	return r
}

func (c *compiler) countParents() {
	visited := make(map[NodeID]bool)
	var walk func(id NodeID)
	walk = func(id NodeID) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, cid := range c.g.Nodes[id].Children {
			c.parents[cid]++
			walk(cid)
		}
	}
	for _, rid := range c.g.Roots {
		c.parents[rid]++
		walk(rid)
	}
}

func (c *compiler) node(id NodeID) compiled {
	if out, ok := c.done[id]; ok {
		return out
	}
	n := c.g.Nodes[id]
	out := c.build(n)
	if c.parents[id] > 1 {
		out.eval = cached(c.shared, out.eval)
		c.shared++
	}
	c.done[id] = out
	return out
}

func cached(idx int, fn evalFunc) evalFunc {
	return func(c *sampleCtx, p geom.Point3) geom.Sample {
		s := &c.slots[idx]
		if s.cell.Filled() && s.p != p {
			*s = slot{}
		}
		s.p = p
		return s.cell.Get(func() geom.Sample { return fn(c, p) })
	}
}

func (c *compiler) children(n *Node) []compiled {
	out := make([]compiled, len(n.Children))
	for i, cid := range n.Children {
		out[i] = c.node(cid)
	}
	return out
}

func (c *compiler) build(n *Node) compiled {
	switch d := n.Data.(type) {
	case SphereData:
		r := d.Radius
		return leaf(func(p geom.Point3) float64 {
			return prim.Sphere(p, geom.Point3{}, r)
		}, geom.NewBox(geom.Point3{}, geom.P3(2*r, 2*r, 2*r)))

	case CylinderData:
		box := geom.Box{Min: d.From, Max: d.From}.Include(d.To).Enlarge(d.Radius)
		return leaf(func(p geom.Point3) float64 {
			return prim.CylinderBetween(p, d.From, d.To, d.Radius)
		}, box)

	case SlabData:
		return leaf(func(p geom.Point3) float64 {
			return prim.Slab(p, d.HalfX, d.HalfZ, d.HalfY)
		}, geom.Box{
			Min: geom.P3(-d.HalfX, -d.HalfY, -d.HalfZ),
			Max: geom.P3(d.HalfX, d.HalfY, d.HalfZ),
		})

	case TrapezoidData:
		hw := max(d.Bottom, d.Top) / 2
		return leaf(func(p geom.Point3) float64 {
			return prim.TrapezoidPrism(p, d.Bottom, d.Top, d.Height, d.Depth)
		}, geom.Box{
			Min: geom.P3(-hw, 0, -d.Depth/2),
			Max: geom.P3(hw, d.Height, d.Depth/2),
		})

	case PolygonData:
		pg, err := polygon.New(d.Points)
		if err != nil {
			// Validate rejects short polygons before we get here.
			panic(fmt.Sprintf("recipe: node %s: %v", n.ID.Short(), err))
		}
		lo, hi := pg.Bounds()
		half := d.Depth / 2
		return leaf(func(p geom.Point3) float64 {
			return max(pg.SDF(geom.P2(p.X, p.Y)), math.Abs(p.Z)-half)
		}, geom.Box{
			Min: geom.P3(lo.X, lo.Y, -half),
			Max: geom.P3(hi.X, hi.Y, half),
		})

	case TranslateData:
		child := c.node(n.Children[0])
		off := d.Offset
		return compiled{
			eval: func(sc *sampleCtx, p geom.Point3) geom.Sample {
				return child.eval(sc, xform.Translate(p, off))
			},
			box: translateBox(child.box, off),
		}

	case RotateData:
		return c.rotate(n, xform.AxisMatrix(d.Axis, d.Angle))

	case EulerData:
		return c.rotate(n, xform.EulerMatrix(d.Pitch, d.Yaw, d.Roll))

	case OpData:
		return c.op(d.Op, c.children(n))

	case PaintData:
		child := c.node(n.Children[0])
		col := d.Color
		return compiled{
			eval: func(sc *sampleCtx, p geom.Point3) geom.Sample {
				s := child.eval(sc, p)
				s.Color = col
				return s
			},
			box: child.box,
		}
	}
	panic(fmt.Sprintf("recipe: node %s: unexpected data %T", n.ID.Short(), n.Data))
}

func leaf(dist func(geom.Point3) float64, box geom.Box) compiled {
	return compiled{
		eval: func(_ *sampleCtx, p geom.Point3) geom.Sample {
			return geom.Sample{Distance: dist(p), Color: DefaultColor}
		},
		box: box,
	}
}

func (c *compiler) rotate(n *Node, m geom.Mat3) compiled {
	child := c.node(n.Children[0])
	inv := m.Transpose()
	box := child.box
	if finite(box) {
		box = xform.Bounds(box, m)
	}
	return compiled{
		eval: func(sc *sampleCtx, p geom.Point3) geom.Sample {
			return child.eval(sc, inv.MulVec(p))
		},
		box: box,
	}
}

func (c *compiler) op(op OpKind, kids []compiled) compiled {
	switch op {
	case OpUnion:
		return unionOf(kids)

	case OpIntersection:
		box := kids[0].box
		for _, k := range kids[1:] {
			box = intersectBox(box, k.box)
		}
		return compiled{
			eval: func(sc *sampleCtx, p geom.Point3) geom.Sample {
				s := kids[0].eval(sc, p)
				for _, k := range kids[1:] {
					s = csg.IntersectSample(s, k.eval(sc, p))
				}
				return s
			},
			box: box,
		}

	case OpSubtraction:
		return compiled{
			eval: func(sc *sampleCtx, p geom.Point3) geom.Sample {
				s := kids[0].eval(sc, p)
				for _, k := range kids[1:] {
					s = csg.SubtractSample(s, k.eval(sc, p))
				}
				return s
			},
			box: kids[0].box,
		}

	case OpComplement:
		child := kids[0]
		return compiled{
			eval: func(sc *sampleCtx, p geom.Point3) geom.Sample {
				return csg.ComplementSample(child.eval(sc, p))
			},
			box: infiniteBox(),
		}
	}
	panic(fmt.Sprintf("recipe: unknown operator %d", int(op)))
}

func unionOf(kids []compiled) compiled {
	box := kids[0].box
	for _, k := range kids[1:] {
		box = box.Extend(k.box)
	}
	return compiled{
		eval: func(sc *sampleCtx, p geom.Point3) geom.Sample {
			s := kids[0].eval(sc, p)
			for _, k := range kids[1:] {
				s = csg.UnionSample(s, k.eval(sc, p))
			}
			return s
		},
		box: box,
	}
}

// ---- boxes ----

func infiniteBox() geom.Box {
	inf := math.Inf(1)
	return geom.Box{Min: geom.P3(-inf, -inf, -inf), Max: geom.P3(inf, inf, inf)}
}

func finite(b geom.Box) bool {
	for _, v := range []float64{b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}

func translateBox(b geom.Box, off geom.Point3) geom.Box {
	if !finite(b) {
		return b
	}
	return b.Translate(off)
}

// intersectBox returns the overlap of a and b. Disjoint boxes collapse to
// a degenerate box at the nearest corner rather than going inside out.
func intersectBox(a, b geom.Box) geom.Box {
	lo := a.Min.Max(b.Min)
	hi := a.Max.Min(b.Max)
	return geom.Box{Min: lo, Max: lo.Max(hi)}
}

// Package mug is a fluted mug: a cylindrical body whose radius ripples
// with the polar angle, hollowed from the top, with a ring handle on the
// +X side.
package mug

import (
	"fmt"
	"math"

	"github.com/chazu/sdfcore/pkg/config"
	"github.com/chazu/sdfcore/pkg/csg"
	"github.com/chazu/sdfcore/pkg/geom"
	"github.com/chazu/sdfcore/pkg/memo"
	"github.com/chazu/sdfcore/pkg/shape"
)

// Name is the registry name of the mug.
const Name = "mug"

// Schema lists the mug parameters. flutes is the number of ripples
// around the body; colors are RGB triples in [0, 1].
var Schema = config.NewSchema().
	Float("radius", 3).
	Float("height", 5).
	Float("wall", 0.3).
	Float("floor", 0.4).
	Float("flute_depth", 0.1).
	Int("flutes", 12).
	Float("handle_reach", 1.5).
	Float("handle_thickness", 0.3).
	FloatList("color", 0.9, 0.9, 0.85).
	FloatList("inner_color", 0.6, 0.3, 0.2)

// Mug is an immutable mug instance.
type Mug struct {
	cfg               *config.Config
	box               geom.Box
	color, innerColor geom.Color
}

var _ shape.Shape = (*Mug)(nil)

// New builds a mug from a configuration parsed against Schema. The wall
// must fit inside the radius with the flutes on both faces.
func New(cfg *config.Config) (shape.Shape, error) {
	r, h, w := cfg.Float("radius"), cfg.Float("height"), cfg.Float("wall")
	amp := cfg.Float("flute_depth")
	switch {
	case r <= 0 || h <= 0:
		return nil, fmt.Errorf("mug: radius and height must be positive")
	case w <= 0 || w+amp >= r-amp:
		return nil, fmt.Errorf("mug: wall %g does not fit inside radius %g", w, r)
	case cfg.Float("floor") <= 0 || cfg.Float("floor") >= h:
		return nil, fmt.Errorf("mug: floor %g must be within (0, height)", cfg.Float("floor"))
	case cfg.Int("flutes") < 0:
		return nil, fmt.Errorf("mug: flutes must not be negative")
	}

	m := &Mug{cfg: cfg}
	var err error
	if m.color, err = rgb(cfg, "color"); err != nil {
		return nil, err
	}
	if m.innerColor, err = rgb(cfg, "inner_color"); err != nil {
		return nil, err
	}

	outer := r + math.Abs(amp)
	reach := cfg.Float("handle_reach") + cfg.Float("handle_thickness")
	depth := math.Max(outer, cfg.Float("handle_thickness"))
	m.box = geom.Box{
		Min: geom.P3(-outer, math.Min(0, h/2-reach), -depth),
		Max: geom.P3(math.Max(outer, r+reach), math.Max(h, h/2+reach), depth),
	}.Enlarge(0.01)
	return m, nil
}

func rgb(cfg *config.Config, key string) (geom.Color, error) {
	c := cfg.Floats(key)
	if len(c) != 3 {
		return geom.Color{}, fmt.Errorf("mug: %s needs 3 components, got %d", key, len(c))
	}
	return geom.Color{R: c[0], G: c[1], B: c[2]}, nil
}

// BoundingBox implements shape.Shape.
func (m *Mug) BoundingBox() geom.Box {
	return m.box
}

// Sample implements shape.Shape. The cavity takes the inner color.
func (m *Mug) Sample(p geom.Point3, distanceOnly bool) geom.Sample {
	c := ctx{Context: memo.NewContext(p, m.cfg)}
	if distanceOnly {
		return geom.Sample{Distance: c.Distance()}
	}
	outside := geom.Sample{Distance: csg.Union(c.Body(), c.Handle()), Color: m.color}
	cavity := geom.Sample{Distance: c.Cavity(), Color: m.innerColor}
	return csg.SubtractSample(outside, cavity)
}

// ctx caches the derived quantities of one sample. Accessors only call
// accessors declared above them.
type ctx struct {
	memo.Context

	radial    memo.Cell[float64]
	angle     memo.Cell[float64]
	wave      memo.Cell[float64]
	projected memo.Cell[geom.Point2]
	body      memo.Cell[float64]
	cavity    memo.Cell[float64]
	handle    memo.Cell[float64]
}

// Radial is the distance from the Y axis.
func (c *ctx) Radial() float64 {
	return c.radial.Get(func() float64 {
		return math.Hypot(c.P.X, c.P.Z)
	})
}

// Angle is the polar angle around Y.
func (c *ctx) Angle() float64 {
	return c.angle.Get(func() float64 {
		return math.Atan2(c.P.Z, c.P.X)
	})
}

// Wave is the flute offset of the wall at this angle. Outer and inner
// wall share it so the wall keeps its thickness.
func (c *ctx) Wave() float64 {
	return c.wave.Get(func() float64 {
		return c.Float("flute_depth") * math.Cos(float64(c.Config.Int("flutes"))*c.Angle())
	})
}

// Projected is the sample in the handle plane, relative to the handle
// ring's center on the body wall.
func (c *ctx) Projected() geom.Point2 {
	return c.projected.Get(func() geom.Point2 {
		return geom.P2(c.P.X-c.Float("radius"), c.P.Y-c.Float("height")/2)
	})
}

// Body is the solid fluted cylinder from y = 0 to the rim.
func (c *ctx) Body() float64 {
	return c.body.Get(func() float64 {
		side := c.Radial() - (c.Float("radius") + c.Wave())
		return max(side, -c.P.Y, c.P.Y-c.Float("height"))
	})
}

// Cavity is the hollow, following the flutes at constant wall
// thickness down to the floor.
func (c *ctx) Cavity() float64 {
	return c.cavity.Get(func() float64 {
		side := c.Radial() - (c.Float("radius") - c.Float("wall") + c.Wave())
		// Open at the top: the cavity runs past the rim.
		return max(side, c.Float("floor")-c.P.Y)
	})
}

// Handle is a ring in the XY plane, clipped to the part outside the
// body's center so it does not show inside the cavity.
func (c *ctx) Handle() float64 {
	return c.handle.Get(func() float64 {
		q := c.Projected()
		reach := c.Float("handle_reach")
		ring := math.Hypot(q.Length()-reach, c.P.Z) - c.Float("handle_thickness")
		return csg.Intersection(ring, -q.X)
	})
}

// Distance is the finished mug.
func (c *ctx) Distance() float64 {
	return csg.Subtraction(csg.Union(c.Body(), c.Handle()), c.Cavity())
}

// Register adds the mug to r.
func Register(r *shape.Registry) error {
	return r.Register(Name, Schema, New)
}

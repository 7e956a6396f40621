// Package holder is a tool holder: a trapezoidal foot carrying an upright
// whose curved shoulders come from flattened Bezier curves, with a bore
// cut down from the top. The whole part can be tilted about X.
package holder

import (
	"fmt"
	"math"

	"github.com/chazu/sdfcore/pkg/config"
	"github.com/chazu/sdfcore/pkg/csg"
	"github.com/chazu/sdfcore/pkg/geom"
	"github.com/chazu/sdfcore/pkg/memo"
	"github.com/chazu/sdfcore/pkg/polygon"
	"github.com/chazu/sdfcore/pkg/prim"
	"github.com/chazu/sdfcore/pkg/shape"
	"github.com/chazu/sdfcore/pkg/xform"
)

// Name is the registry name of the holder.
const Name = "holder"

// Schema lists the holder parameters. Lengths are in model units, the
// tilt in degrees.
var Schema = config.NewSchema().
	Float("base_bottom", 6).
	Float("base_top", 4).
	Float("base_height", 1).
	Float("depth", 3).
	Float("upright_width", 3).
	Float("neck_width", 1.6).
	Float("upright_height", 4).
	Float("shoulder", 0.6).
	Int("segments", 12).
	Float("bore_radius", 0.5).
	Float("bore_depth", 2).
	Float("tilt", 0).
	FloatList("base_color", 0.55, 0.35, 0.2).
	FloatList("upright_color", 0.7, 0.5, 0.3).
	FloatList("bore_color", 0.2, 0.15, 0.1)

// Holder is an immutable holder instance.
type Holder struct {
	cfg     *config.Config
	profile *polygon.Polygon
	tilt    geom.Mat3
	box     geom.Box

	baseColor, uprightColor, boreColor geom.Color
	boreFrom, boreTo                   geom.Point3
}

var _ shape.Shape = (*Holder)(nil)

// New builds a holder from a configuration parsed against Schema.
func New(cfg *config.Config) (shape.Shape, error) {
	for _, k := range []string{"base_bottom", "base_top", "base_height", "depth", "upright_width", "neck_width", "upright_height"} {
		if cfg.Float(k) <= 0 {
			return nil, fmt.Errorf("holder: %s must be positive, got %g", k, cfg.Float(k))
		}
	}
	if r := cfg.Float("bore_radius"); r < 0 || 2*r >= cfg.Float("neck_width") {
		return nil, fmt.Errorf("holder: bore_radius %g must be non-negative and narrower than the neck", r)
	}
	if s := cfg.Float("shoulder"); s < 0 || s > 1 {
		return nil, fmt.Errorf("holder: shoulder %g must be within [0,1]", s)
	}

	h := &Holder{cfg: cfg}
	var err error
	if h.baseColor, err = color(cfg, "base_color"); err != nil {
		return nil, err
	}
	if h.uprightColor, err = color(cfg, "upright_color"); err != nil {
		return nil, err
	}
	if h.boreColor, err = color(cfg, "bore_color"); err != nil {
		return nil, err
	}

	h.profile, err = uprightProfile(cfg)
	if err != nil {
		return nil, fmt.Errorf("holder: profile: %w", err)
	}

	top := cfg.Float("base_height") + cfg.Float("upright_height")
	h.boreFrom = geom.P3(0, top-cfg.Float("bore_depth"), 0)
	h.boreTo = geom.P3(0, top+cfg.Float("bore_radius")+1, 0)

	h.tilt = xform.EulerMatrix(xform.Radians(cfg.Float("tilt")), 0, 0)
	halfW := math.Max(cfg.Float("base_bottom"), math.Max(cfg.Float("base_top"), cfg.Float("upright_width"))) / 2
	local := geom.Box{
		Min: geom.P3(-halfW, 0, -cfg.Float("depth")/2),
		Max: geom.P3(halfW, top, cfg.Float("depth")/2),
	}
	h.box = xform.Bounds(local, h.tilt).Enlarge(0.01)
	return h, nil
}

// uprightProfile traces the upright outline in the XY plane: straight
// sides rising from the foot, Bezier shoulders narrowing to the neck.
func uprightProfile(cfg *config.Config) (*polygon.Polygon, error) {
	y0 := cfg.Float("base_height")
	y1 := y0 + cfg.Float("upright_height")
	uw := cfg.Float("upright_width") / 2
	nw := cfg.Float("neck_width") / 2
	ys := y0 + cfg.Float("upright_height")*(1-cfg.Float("shoulder"))
	n := cfg.Int("segments")

	return polygon.NewPath(geom.P2(-uw, y0)).
		LineTo(geom.P2(uw, y0)).
		LineTo(geom.P2(uw, ys)).
		BezierTo(n, geom.P2(uw, y1), geom.P2(nw, y1)).
		LineTo(geom.P2(-nw, y1)).
		BezierTo(n, geom.P2(-uw, y1), geom.P2(-uw, ys)).
		Close()
}

func color(cfg *config.Config, key string) (geom.Color, error) {
	c := cfg.Floats(key)
	if len(c) != 3 {
		return geom.Color{}, fmt.Errorf("holder: %s needs 3 components, got %d", key, len(c))
	}
	return geom.Color{R: c[0], G: c[1], B: c[2]}, nil
}

// BoundingBox implements shape.Shape.
func (h *Holder) BoundingBox() geom.Box {
	return h.box
}

// Sample implements shape.Shape.
func (h *Holder) Sample(p geom.Point3, distanceOnly bool) geom.Sample {
	c := sampleCtx{Context: memo.NewContext(p, h.cfg), h: h}
	if distanceOnly {
		return geom.Sample{Distance: c.Distance()}
	}
	base := geom.Sample{Distance: c.Base(), Color: h.baseColor}
	upright := geom.Sample{Distance: c.Upright(), Color: h.uprightColor}
	bore := geom.Sample{Distance: c.Bore(), Color: h.boreColor}
	return csg.SubtractSample(csg.UnionSample(base, upright), bore)
}

// sampleCtx holds the quantities shared between the distance and color
// paths of one sample.
type sampleCtx struct {
	memo.Context
	h *Holder

	local   memo.Cell[geom.Point3]
	base    memo.Cell[float64]
	upright memo.Cell[float64]
	bore    memo.Cell[float64]
}

// Local is the sample point in the untilted frame.
func (c *sampleCtx) Local() geom.Point3 {
	return c.local.Get(func() geom.Point3 {
		return xform.RotateMatrix(c.P, c.h.tilt)
	})
}

// Base is the trapezoidal foot.
func (c *sampleCtx) Base() float64 {
	return c.base.Get(func() float64 {
		return prim.TrapezoidPrism(c.Local(),
			c.Float("base_bottom"), c.Float("base_top"), c.Float("base_height"), c.Float("depth"))
	})
}

// Upright is the profile polygon extruded through the depth.
func (c *sampleCtx) Upright() float64 {
	return c.upright.Get(func() float64 {
		q := c.Local()
		d2 := c.h.profile.SDF(geom.P2(q.X, q.Y))
		return csg.Intersection(d2, math.Abs(q.Z)-c.Float("depth")/2)
	})
}

// Bore is the cutter running down from the top.
func (c *sampleCtx) Bore() float64 {
	return c.bore.Get(func() float64 {
		return prim.CylinderBetween(c.Local(), c.h.boreFrom, c.h.boreTo, c.Float("bore_radius"))
	})
}

// Distance is the finished part.
func (c *sampleCtx) Distance() float64 {
	return csg.Subtraction(csg.Union(c.Base(), c.Upright()), c.Bore())
}

// Register adds the holder to r.
func Register(r *shape.Registry) error {
	return r.Register(Name, Schema, New)
}

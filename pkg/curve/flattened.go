package curve

import "github.com/chazu/sdfcore/pkg/geom"

// Flattened is a polyline computed once from a set of control points.
// Shapes build it when their configuration is loaded and read it from
// every sample, so it must not be modified after construction.
type Flattened struct {
	ctrl []geom.Point2
	pts  []geom.Point2
}

// NewFlattened flattens ctrl into segments pieces.
func NewFlattened(ctrl []geom.Point2, segments int) *Flattened {
	c := make([]geom.Point2, len(ctrl))
	copy(c, ctrl)
	return &Flattened{ctrl: c, pts: Flatten(c, segments)}
}

// Points returns the polyline. Callers must treat it as read-only.
func (f *Flattened) Points() []geom.Point2 {
	return f.pts
}

// Control returns a copy of the control points.
func (f *Flattened) Control() []geom.Point2 {
	c := make([]geom.Point2, len(f.ctrl))
	copy(c, f.ctrl)
	return c
}

// Len returns the number of polyline points.
func (f *Flattened) Len() int {
	return len(f.pts)
}

// Package kernel defines how a host turns a shape into triangles. The
// evaluation core never meshes; hosts pick a Mesher implementation (see
// the sdfx subpackage) and hand it shapes.
package kernel

import (
	"errors"

	"github.com/chazu/sdfcore/pkg/shape"
)

// ErrUnbounded is returned when a shape's bounding box is empty or not
// finite, so there is no region to mesh.
var ErrUnbounded = errors.New("kernel: shape has no finite bounding box")

// Mesher converts a shape to a triangle mesh.
type Mesher interface {
	ToMesh(s shape.Shape) (*Mesh, error)
}

// Package tessellate runs shapes through a mesher for a host: one mesh per
// named part, plus dense grid sampling for hosts that do their own
// surface extraction.
package tessellate

import (
	"context"
	"fmt"

	"github.com/chazu/sdfcore/pkg/kernel"
	"github.com/chazu/sdfcore/pkg/recipe"
	"github.com/chazu/sdfcore/pkg/shape"
	"golang.org/x/sync/errgroup"
)

// Part is a shape to be meshed under a name.
type Part struct {
	Name  string
	Shape shape.Shape
}

// Tessellate meshes every part with m, running parts concurrently. The
// meshes come back in the order of parts, each tagged with its part
// name. m must be safe for concurrent use.
func Tessellate(ctx context.Context, parts []Part, m kernel.Mesher) ([]*kernel.Mesh, error) {
	meshes := make([]*kernel.Mesh, len(parts))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range parts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			mesh, err := m.ToMesh(p.Shape)
			if err != nil {
				return fmt.Errorf("tessellate: part %q: %w", p.Name, err)
			}
			mesh.PartName = p.Name
			meshes[i] = mesh
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return meshes, nil
}

// Parts compiles each root of g on its own, so a recipe with several
// roots yields several parts instead of their union. The graph is
// read-only and never mutated.
func Parts(g *recipe.Graph) ([]Part, error) {
	if g == nil {
		return nil, nil
	}

	var parts []Part
	seen := make(map[recipe.NodeID]bool)
	for _, rid := range g.Roots {
		if seen[rid] {
			continue
		}
		seen[rid] = true

		sub := &recipe.Graph{Nodes: g.Nodes, Roots: []recipe.NodeID{rid}, NameIndex: g.NameIndex}
		r, err := recipe.Compile(sub)
		if err != nil {
			return nil, fmt.Errorf("tessellate: root %s: %w", rid.Short(), err)
		}
		parts = append(parts, Part{Name: partName(g, rid), Shape: r})
	}
	return parts, nil
}

// partName prefers the root's own name, then follows single-child
// wrappers (transforms, paint) and the base of subtractions down to a
// named node. Otherwise it is the short ID.
func partName(g *recipe.Graph, id recipe.NodeID) string {
	for n := g.Get(id); n != nil; n = g.Get(n.Children[0]) {
		if n.Name != "" {
			return n.Name
		}
		if !passThrough(n) {
			break
		}
	}
	return id.Short()
}

func passThrough(n *recipe.Node) bool {
	switch n.Kind {
	case recipe.NodeTransform, recipe.NodePaint:
		return true
	case recipe.NodeOperator:
		d, ok := n.Data.(recipe.OpData)
		return ok && d.Op == recipe.OpSubtraction
	}
	return false
}

package recipe

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chazu/sdfcore/pkg/geom"
)

// ValidationSeverity indicates whether a validation finding blocks
// compilation or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks compilation
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	NodeID   NodeID             // which node has the problem (zero if graph-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.NodeID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] node %s: %s", e.Severity, e.NodeID.Short(), e.Message)
}

// InvalidError is returned by Compile when validation finds errors.
type InvalidError struct {
	Findings []ValidationError
}

func (e *InvalidError) Error() string {
	msgs := make([]string, len(e.Findings))
	for i, f := range e.Findings {
		msgs[i] = f.Error()
	}
	return "recipe: invalid graph: " + strings.Join(msgs, "; ")
}

// HasErrors reports whether any finding has SeverityError.
func HasErrors(findings []ValidationError) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate runs the structural and parameter checks on g and returns the
// findings in a stable order. An empty slice means the graph is valid.
// Validate never mutates g.
func Validate(g *Graph) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateDAG(g)...)
	errs = append(errs, validateReferences(g)...)
	errs = append(errs, validateRoots(g)...)
	errs = append(errs, validateNames(g)...)
	errs = append(errs, validateArity(g)...)
	errs = append(errs, validateParams(g)...)
	errs = append(errs, validateReachable(g)...)
	return errs
}

// sortedIDs returns the node IDs of g in lexical order so findings are
// reported deterministically.
func sortedIDs(g *Graph) []NodeID {
	ids := make([]NodeID, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// validateDAG checks for cycles using DFS with 3-color marking.
// White = unvisited, gray = on the current path, black = fully explored.
// Reaching a gray node means a cycle.
func validateDAG(g *Graph) []ValidationError {
	const (
		white = iota
		gray
		black
	)

	color := make(map[NodeID]int)
	var errs []ValidationError

	var visit func(id NodeID) bool
	visit = func(id NodeID) bool {
		switch color[id] {
		case black:
			return false
		case gray:
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("cycle detected: node %s is part of a cycle", id.Short()),
				Severity: SeverityError,
			})
			return true
		}

		color[id] = gray
		node, ok := g.Nodes[id]
		if !ok {
			// Dangling; reported by validateReferences.
			color[id] = black
			return false
		}
		for _, childID := range node.Children {
			if visit(childID) {
				return true
			}
		}
		color[id] = black
		return false
	}

	for _, id := range sortedIDs(g) {
		if color[id] == white && visit(id) {
			break // one cycle is enough
		}
	}
	return errs
}

// validateReferences checks that every child and root ID exists.
func validateReferences(g *Graph) []ValidationError {
	var errs []ValidationError
	for _, id := range sortedIDs(g) {
		node := g.Nodes[id]
		for _, childID := range node.Children {
			if _, ok := g.Nodes[childID]; !ok {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("child reference %s does not exist", childID.Short()),
					Severity: SeverityError,
				})
			}
		}
	}
	for _, rid := range g.Roots {
		if _, ok := g.Nodes[rid]; !ok {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("root reference %s does not exist", rid.Short()),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

func validateRoots(g *Graph) []ValidationError {
	if len(g.Roots) == 0 {
		return []ValidationError{{
			Message:  "graph has no root",
			Severity: SeverityError,
		}}
	}
	var errs []ValidationError
	seen := make(map[NodeID]bool, len(g.Roots))
	for _, rid := range g.Roots {
		if seen[rid] {
			errs = append(errs, ValidationError{
				NodeID:   rid,
				Message:  "node is registered as a root more than once",
				Severity: SeverityWarning,
			})
		}
		seen[rid] = true
	}
	return errs
}

// validateArity checks child counts against node kind and operator.
// validateNames reports names carried by more than one node.
func validateNames(g *Graph) []ValidationError {
	var errs []ValidationError
	byName := make(map[string][]NodeID)
	for _, id := range sortedIDs(g) {
		if n := g.Nodes[id]; n.Name != "" {
			byName[n.Name] = append(byName[n.Name], id)
		}
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if ids := byName[name]; len(ids) > 1 {
			errs = append(errs, ValidationError{
				NodeID:   ids[1],
				Message:  fmt.Sprintf("duplicate name %q assigned to %d nodes", name, len(ids)),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

func validateArity(g *Graph) []ValidationError {
	var errs []ValidationError
	bad := func(n *Node, format string, args ...any) {
		errs = append(errs, ValidationError{
			NodeID:   n.ID,
			Message:  fmt.Sprintf(format, args...),
			Severity: SeverityError,
		})
	}

	for _, id := range sortedIDs(g) {
		n := g.Nodes[id]
		count := len(n.Children)
		switch n.Kind {
		case NodePrimitive:
			if count != 0 {
				bad(n, "primitive has %d children, want 0", count)
			}
		case NodeTransform, NodePaint:
			if count != 1 {
				bad(n, "%s has %d children, want 1", n.Kind, count)
			}
		case NodeOperator:
			d, ok := n.Data.(OpData)
			if !ok {
				bad(n, "operator node carries %T", n.Data)
				continue
			}
			switch d.Op {
			case OpComplement:
				if count != 1 {
					bad(n, "complement has %d children, want 1", count)
				}
			case OpSubtraction:
				if count < 2 {
					bad(n, "subtraction has %d children, want at least 2", count)
				}
			case OpUnion, OpIntersection:
				if count < 1 {
					bad(n, "%s has no children", d.Op)
				}
			default:
				bad(n, "unknown operator %d", int(d.Op))
			}
		default:
			bad(n, "unknown node kind %d", int(n.Kind))
		}
	}
	return errs
}

// validateParams checks kind-specific payloads: dimensions must be
// positive and polygons need three vertices. Degenerate cylinders and
// zero rotation axes are only warned about.
func validateParams(g *Graph) []ValidationError {
	var errs []ValidationError
	bad := func(n *Node, format string, args ...any) {
		errs = append(errs, ValidationError{
			NodeID:   n.ID,
			Message:  fmt.Sprintf(format, args...),
			Severity: SeverityError,
		})
	}
	positive := func(n *Node, name string, v float64) {
		if !(v > 0) {
			bad(n, "%s must be positive, got %g", name, v)
		}
	}

	for _, id := range sortedIDs(g) {
		n := g.Nodes[id]
		switch d := n.Data.(type) {
		case SphereData:
			positive(n, "radius", d.Radius)
		case CylinderData:
			positive(n, "radius", d.Radius)
			if dist2(d.From, d.To) < 1e-6 {
				errs = append(errs, ValidationError{
					NodeID:   n.ID,
					Message:  "cylinder endpoints coincide; evaluated as a sphere",
					Severity: SeverityWarning,
				})
			}
		case SlabData:
			positive(n, "half x", d.HalfX)
			positive(n, "half y", d.HalfY)
			positive(n, "half z", d.HalfZ)
		case TrapezoidData:
			positive(n, "bottom width", d.Bottom)
			positive(n, "height", d.Height)
			positive(n, "depth", d.Depth)
			if d.Top < 0 {
				bad(n, "top width must not be negative, got %g", d.Top)
			}
		case PolygonData:
			if len(d.Points) < 3 {
				bad(n, "polygon has %d vertices, want at least 3", len(d.Points))
			}
			positive(n, "depth", d.Depth)
		case RotateData:
			if d.Axis.Dot(d.Axis) < 1e-24 {
				errs = append(errs, ValidationError{
					NodeID:   n.ID,
					Message:  "rotation axis is zero; rotation is ignored",
					Severity: SeverityWarning,
				})
			}
		case nil:
			bad(n, "node has no data")
		}
	}
	return errs
}

// validateReachable warns about nodes no root can reach.
func validateReachable(g *Graph) []ValidationError {
	seen := make(map[NodeID]bool, len(g.Nodes))
	var walk func(id NodeID)
	walk = func(id NodeID) {
		if seen[id] {
			return
		}
		seen[id] = true
		if n := g.Nodes[id]; n != nil {
			for _, c := range n.Children {
				walk(c)
			}
		}
	}
	for _, rid := range g.Roots {
		walk(rid)
	}

	var errs []ValidationError
	for _, id := range sortedIDs(g) {
		if !seen[id] {
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  "node is not reachable from any root",
				Severity: SeverityWarning,
			})
		}
	}
	return errs
}

func dist2(a, b geom.Point3) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}

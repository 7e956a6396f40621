package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/sdfcore/pkg/geom"
	"github.com/chazu/sdfcore/pkg/polygon"
	"github.com/chazu/sdfcore/pkg/recipe"
	"github.com/chazu/sdfcore/pkg/xform"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms recipe source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: rotate-euler -> rotate_euler
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpNodeRef wraps a recipe.NodeID so it can be passed between builtins.
type sexpNodeRef struct {
	id   recipe.NodeID
	name string // human-readable name for error messages
}

func (n *sexpNodeRef) SexpString(ps *zygo.PrintState) string {
	if n.name != "" {
		return fmt.Sprintf("(noderef %q)", n.name)
	}
	return fmt.Sprintf("(noderef %s)", n.id.Short())
}
func (n *sexpNodeRef) Type() *zygo.RegisteredType { return nil }

// sexpVec2 wraps a geom.Point2.
type sexpVec2 struct {
	vec geom.Point2
}

func (v *sexpVec2) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec2 %g %g)", v.vec.X, v.vec.Y)
}
func (v *sexpVec2) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps a geom.Point3.
type sexpVec3 struct {
	vec geom.Point3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpBezier is a curved polygon edge: control points after the current
// point, the last being the end point.
type sexpBezier struct {
	segments int
	ctrl     []geom.Point2
}

func (b *sexpBezier) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(bezier %d ...%d points)", b.segments, len(b.ctrl))
}
func (b *sexpBezier) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Trailing keyword with no value.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// name returns the :name keyword, or "".
func (a kwArgs) name() (string, error) {
	v, ok := a.kw["name"]
	if !ok {
		return "", nil
	}
	return toString(v)
}

// floats converts the first n positional arguments to float64, naming
// each by label in errors.
func (a kwArgs) floats(fn string, labels ...string) ([]float64, error) {
	if len(a.positional) != len(labels) {
		return nil, fmt.Errorf("%s requires %d arguments (%s), got %d",
			fn, len(labels), strings.Join(labels, " "), len(a.positional))
	}
	out := make([]float64, len(labels))
	for i, l := range labels {
		f, err := toFloat64(a.positional[i])
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", fn, l, err)
		}
		out[i] = f
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toNodeRef extracts a NodeID from a sexpNodeRef.
func toNodeRef(s zygo.Sexp) (recipe.NodeID, error) {
	if ref, ok := s.(*sexpNodeRef); ok {
		return ref.id, nil
	}
	return recipe.ZeroID, fmt.Errorf("expected node reference, got %T (%s)", s, s.SexpString(nil))
}

// toNodeRefs converts every element of args to a NodeID.
func toNodeRefs(fn string, args []zygo.Sexp) ([]recipe.NodeID, error) {
	ids := make([]recipe.NodeID, len(args))
	for i, a := range args {
		id, err := toNodeRef(a)
		if err != nil {
			return nil, fmt.Errorf("%s: child %d: %w", fn, i, err)
		}
		ids[i] = id
	}
	return ids, nil
}

// toVec2 extracts a Point2 from a sexpVec2.
func toVec2(s zygo.Sexp) (geom.Point2, error) {
	if v, ok := s.(*sexpVec2); ok {
		return v.vec, nil
	}
	return geom.Point2{}, fmt.Errorf("expected vec2, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a Point3 from a sexpVec3.
func toVec3(s zygo.Sexp) (geom.Point3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return geom.Point3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// flattenOutline expands lists and arrays in an outline argument list so
// that vertices can be generated by user code, e.g. with map.
func flattenOutline(args []zygo.Sexp) ([]zygo.Sexp, error) {
	var out []zygo.Sexp
	for _, a := range args {
		switch a.(type) {
		case *zygo.SexpPair, *zygo.SexpArray:
			items, err := sexpListToSlice(a)
			if err != nil {
				return nil, err
			}
			out = append(out, items...)
		default:
			out = append(out, a)
		}
	}
	return out, nil
}

// buildOutline turns vec2 vertices and bezier edges into polygon points.
// The outline must start with a vertex.
func buildOutline(items []zygo.Sexp) ([]geom.Point2, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("outline is empty")
	}
	start, err := toVec2(items[0])
	if err != nil {
		return nil, fmt.Errorf("outline must start with a vertex: %w", err)
	}
	path := polygon.NewPath(start)
	for i, it := range items[1:] {
		switch v := it.(type) {
		case *sexpVec2:
			path.LineTo(v.vec)
		case *sexpBezier:
			path.BezierTo(v.segments, v.ctrl...)
		default:
			return nil, fmt.Errorf("outline item %d: expected vec2 or bezier, got %T (%s)",
				i+1, it, it.SexpString(nil))
		}
	}
	pg, err := path.Close()
	if err != nil {
		return nil, err
	}
	return pg.Vertices(), nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// nodeResult wraps a freshly added named node, failing if the builder
// rejected its name.
func nodeResult(b *recipe.Builder, id recipe.NodeID, n string) (zygo.Sexp, error) {
	if err := b.Err(); err != nil {
		return zygo.SexpNull, err
	}
	return &sexpNodeRef{id: id, name: n}, nil
}

// registerBuiltins installs the recipe builtins into a zygomys environment.
// The builtins add nodes through b as the program runs.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, b *recipe.Builder) {

	// (vec2 1 2)
	env.AddFunction("vec2", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := parseArgs(args).floats("vec2", "x", "y")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpVec2{vec: geom.P2(f[0], f[1])}, nil
	})

	// (vec3 1 2 3)
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := parseArgs(args).floats("vec3", "x", "y", "z")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpVec3{vec: geom.P3(f[0], f[1], f[2])}, nil
	})

	// (radians 90)
	env.AddFunction("radians", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := parseArgs(args).floats("radians", "degrees")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpFloat{Val: xform.Radians(f[0])}, nil
	})

	// -----------------------------------------------------------------------
	// Primitives
	// -----------------------------------------------------------------------

	// (sphere 1.5 :name "ball")
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		n, err := pa.name()
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: name: %w", err)
		}
		f, err := pa.floats("sphere", "radius")
		if err != nil {
			return zygo.SexpNull, err
		}
		return nodeResult(b, b.Sphere(n, f[0]), n)
	})

	// (cylinder (vec3 0 0 0) (vec3 0 2 0) 0.5 :name "peg")
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		n, err := pa.name()
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: name: %w", err)
		}
		if len(pa.positional) != 3 {
			return zygo.SexpNull, fmt.Errorf("cylinder requires 3 arguments (from to radius), got %d", len(pa.positional))
		}
		from, err := toVec3(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: from: %w", err)
		}
		to, err := toVec3(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: to: %w", err)
		}
		r, err := toFloat64(pa.positional[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: radius: %w", err)
		}
		return nodeResult(b, b.Cylinder(n, from, to, r), n)
	})

	// (slab 2 0.25 2 :name "plate") half extents x y z
	env.AddFunction("slab", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		n, err := pa.name()
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("slab: name: %w", err)
		}
		f, err := pa.floats("slab", "x", "y", "z")
		if err != nil {
			return zygo.SexpNull, err
		}
		return nodeResult(b, b.Slab(n, f[0], f[1], f[2]), n)
	})

	// (trapezoid 6 4 1 3 :name "base") bottom top height depth
	env.AddFunction("trapezoid", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		n, err := pa.name()
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("trapezoid: name: %w", err)
		}
		f, err := pa.floats("trapezoid", "bottom", "top", "height", "depth")
		if err != nil {
			return zygo.SexpNull, err
		}
		return nodeResult(b, b.Trapezoid(n, f[0], f[1], f[2], f[3]), n)
	})

	// (bezier 8 (vec2 1 2) (vec2 2 2))
	env.AddFunction("bezier", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("bezier requires a segment count and at least one point")
		}
		segs, err := toInt(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("bezier: segments: %w", err)
		}
		ctrl := make([]geom.Point2, 0, len(args)-1)
		for i, a := range args[1:] {
			p, err := toVec2(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("bezier: point %d: %w", i, err)
			}
			ctrl = append(ctrl, p)
		}
		return &sexpBezier{segments: segs, ctrl: ctrl}, nil
	})

	// (polygon :depth 1 (vec2 0 0) (vec2 2 0) (bezier 8 (vec2 2 2) (vec2 0 2)))
	env.AddFunction("polygon", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		n, err := pa.name()
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polygon: name: %w", err)
		}
		dv, ok := pa.kw["depth"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("polygon requires :depth")
		}
		depth, err := toFloat64(dv)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polygon: depth: %w", err)
		}
		items, err := flattenOutline(pa.positional)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polygon: %w", err)
		}
		pts, err := buildOutline(items)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polygon: %w", err)
		}
		return nodeResult(b, b.Polygon(n, pts, depth), n)
	})

	// -----------------------------------------------------------------------
	// Transforms
	// -----------------------------------------------------------------------

	// (translate child (vec3 1 0 0))
	env.AddFunction("translate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("translate requires a node and an offset, got %d arguments", len(args))
		}
		child, err := toNodeRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: %w", err)
		}
		off, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: offset: %w", err)
		}
		return &sexpNodeRef{id: b.Translate(child, off)}, nil
	})

	// (rotate child (vec3 0 0 1) (radians 90))
	env.AddFunction("rotate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("rotate requires a node, an axis and an angle, got %d arguments", len(args))
		}
		child, err := toNodeRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: %w", err)
		}
		axis, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: axis: %w", err)
		}
		angle, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: angle: %w", err)
		}
		return &sexpNodeRef{id: b.Rotate(child, axis, angle)}, nil
	})

	// (rotate-euler child pitch yaw roll)
	//
	// Registered as "rotate_euler"; the preprocessor rewrites the hyphen.
	env.AddFunction("rotate_euler", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("rotate-euler requires a node and 3 angles, got %d arguments", len(args))
		}
		child, err := toNodeRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate-euler: %w", err)
		}
		f, err := kwArgs{positional: args[1:]}.floats("rotate-euler", "pitch", "yaw", "roll")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpNodeRef{id: b.RotateEuler(child, f[0], f[1], f[2])}, nil
	})

	// -----------------------------------------------------------------------
	// Operators
	// -----------------------------------------------------------------------

	// (union a b ...), (intersection a b ...)
	for fn, op := range map[string]recipe.OpKind{
		"union":        recipe.OpUnion,
		"intersection": recipe.OpIntersection,
	} {
		env.AddFunction(fn, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) == 0 {
				return zygo.SexpNull, fmt.Errorf("%s requires at least one node", fn)
			}
			ids, err := toNodeRefs(fn, args)
			if err != nil {
				return zygo.SexpNull, err
			}
			return &sexpNodeRef{id: b.Op(op, ids...)}, nil
		})
	}

	// (subtract base cutter ...)
	env.AddFunction("subtract", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("subtract requires a base and at least one cutter")
		}
		ids, err := toNodeRefs("subtract", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpNodeRef{id: b.Subtract(ids[0], ids[1:]...)}, nil
	})

	// (complement a)
	env.AddFunction("complement", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("complement requires exactly one node, got %d", len(args))
		}
		id, err := toNodeRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("complement: %w", err)
		}
		return &sexpNodeRef{id: b.Complement(id)}, nil
	})

	// (paint child 1 0 0)
	env.AddFunction("paint", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("paint requires a node and r g b, got %d arguments", len(args))
		}
		child, err := toNodeRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("paint: %w", err)
		}
		f, err := kwArgs{positional: args[1:]}.floats("paint", "r", "g", "b")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpNodeRef{id: b.Paint(child, geom.Color{R: f[0], G: f[1], B: f[2]})}, nil
	})

	// (root node) marks node as part of the finished shape.
	env.AddFunction("root", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("root requires exactly one node, got %d", len(args))
		}
		id, err := toNodeRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("root: %w", err)
		}
		b.Root(id)
		return args[0], nil
	})
}

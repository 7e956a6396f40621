// Package host is the pipeline a renderer drives: recipe source or a
// registered shape goes in, triangle meshes with colors come out. It
// owns the shape registry and the current root surface.
package host

import (
	"context"
	"fmt"
	"image"
	"log"
	"sync"

	"github.com/chazu/sdfcore/pkg/engine"
	"github.com/chazu/sdfcore/pkg/geom"
	"github.com/chazu/sdfcore/pkg/kernel"
	"github.com/chazu/sdfcore/pkg/kernel/sdfx"
	"github.com/chazu/sdfcore/pkg/recipe"
	"github.com/chazu/sdfcore/pkg/shape"
	"github.com/chazu/sdfcore/pkg/shapes/holder"
	"github.com/chazu/sdfcore/pkg/shapes/mug"
	"github.com/chazu/sdfcore/pkg/tessellate"
)

// colorPalette is a default palette used to assign distinct colors to parts.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// previewFactor is the downsampling used by Preview.
const previewFactor = 4

// App wires the engine, the registry and a mesher together.
type App struct {
	engine   *engine.Engine
	mesher   kernel.Mesher
	registry *shape.Registry

	mu   sync.RWMutex
	root shape.Shape
}

var _ shape.Host = (*App)(nil)

// MeshData is the JSON-serializable mesh format sent to the renderer.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Colors   []float32 `json:"colors,omitempty"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable error or warning.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result returned to the renderer.
type EvalResult struct {
	Meshes   []MeshData      `json:"meshes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

func newResult() EvalResult {
	return EvalResult{
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}
}

func (r *EvalResult) fail(msg string) EvalResult {
	r.Errors = append(r.Errors, EvalErrorData{Message: msg})
	return *r
}

// NewApp creates an App with the built-in shapes registered and the
// sdfx mesher.
func NewApp() *App {
	return NewAppWith(&sdfx.Mesher{Colors: true})
}

// NewAppWith creates an App that meshes with m.
func NewAppWith(m kernel.Mesher) *App {
	reg := shape.NewRegistry()
	for _, register := range []func(*shape.Registry) error{holder.Register, mug.Register} {
		if err := register(reg); err != nil {
			// Only reachable if two packages claim the same name.
			panic(err)
		}
	}
	return &App{
		engine:   engine.NewEngine(),
		mesher:   m,
		registry: reg,
	}
}

// Registry returns the App's shape registry so callers can add shapes.
func (a *App) Registry() *shape.Registry {
	return a.registry
}

// SetRoot implements shape.Host.
func (a *App) SetRoot(s shape.Shape) {
	a.mu.Lock()
	a.root = s
	a.mu.Unlock()
}

// Root returns the current root surface, or nil.
func (a *App) Root() shape.Shape {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.root
}

// Install builds a registered shape from key=value configuration text,
// makes it the root, and meshes it.
func (a *App) Install(name, cfgText string) EvalResult {
	result := newResult()
	if err := a.registry.Install(a, name, cfgText); err != nil {
		return result.fail(err.Error())
	}
	return a.meshParts(result, []tessellate.Part{{Name: name, Shape: a.Root()}})
}

// Evaluate takes recipe source and returns mesh data + errors. Each root
// of the recipe becomes its own mesh; their union becomes the App's root.
func (a *App) Evaluate(source string) EvalResult {
	result := newResult()

	// Step 1: Evaluate the Lisp source into a recipe graph.
	g, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		log.Printf("host: evaluate fatal error: %v", err)
		return result.fail(err.Error())
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}
	if len(g.Roots) == 0 {
		// Nothing to show yet.
		return result
	}

	// Step 2: Validate, keeping warnings for the renderer.
	for _, f := range recipe.Validate(g) {
		d := EvalErrorData{Message: f.Error()}
		if f.Severity == recipe.SeverityWarning {
			result.Warnings = append(result.Warnings, d)
		} else {
			result.Errors = append(result.Errors, d)
		}
	}
	if len(result.Errors) > 0 {
		return result
	}

	whole, err := recipe.Compile(g)
	if err != nil {
		return result.fail(err.Error())
	}
	a.SetRoot(whole)

	// Step 3: Split into parts and mesh them.
	parts, err := tessellate.Parts(g)
	if err != nil {
		return result.fail(err.Error())
	}
	return a.meshParts(result, parts)
}

func (a *App) meshParts(result EvalResult, parts []tessellate.Part) EvalResult {
	meshes, err := tessellate.Tessellate(context.Background(), parts, a.mesher)
	if err != nil {
		log.Printf("host: tessellate error: %v", err)
		return result.fail("tessellation failed: " + err.Error())
	}

	for i, m := range meshes {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Colors:   m.Colors,
			Indices:  m.Indices,
			PartName: m.PartName,
			Color:    colorPalette[i%len(colorPalette)],
		})
	}
	return result
}

// Preview renders the cross-section of the root at height z, sampled
// coarsely and scaled to w×h.
func (a *App) Preview(z float64, w, h int) (*image.RGBA, error) {
	root := a.Root()
	if root == nil {
		return nil, fmt.Errorf("host: no root surface")
	}
	return tessellate.Preview(context.Background(), root, z, w, h, previewFactor, 0)
}

// Probe samples the current root at p, for picking and tooltips.
func (a *App) Probe(p geom.Point3) (geom.Sample, error) {
	root := a.Root()
	if root == nil {
		return geom.Sample{}, fmt.Errorf("host: no root surface")
	}
	return root.Sample(p, false), nil
}

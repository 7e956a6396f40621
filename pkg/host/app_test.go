package host

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/chazu/sdfcore/pkg/geom"
	"github.com/chazu/sdfcore/pkg/kernel/sdfx"
)

func newTestApp() *App {
	return NewAppWith(&sdfx.Mesher{Cells: 24, Colors: true})
}

const washerSource = `
;; plate with a bore, and a peg beside it
(def plate (slab 2 0.25 2 :name "plate"))
(def bore (cylinder (vec3 0 -1 0) (vec3 0 1 0) 0.5))
(root (paint (subtract plate bore) 0.8 0.2 0.2))
(root (translate (cylinder (vec3 0 0 0) (vec3 0 2 0) 0.4 :name "peg") (vec3 4 0 0)))
`

// TestE2EWasher exercises the full pipeline: Lisp source → engine →
// recipe → tessellate → meshes.
func TestE2EWasher(t *testing.T) {
	app := newTestApp()
	result := app.Evaluate(washerSource)

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}
	if len(result.Meshes) != 2 {
		t.Fatalf("expected 2 meshes, got %d", len(result.Meshes))
	}

	want := []string{"plate", "peg"}
	for i, m := range result.Meshes {
		if m.PartName != want[i] {
			t.Errorf("mesh %d: part name %q, want %q", i, m.PartName, want[i])
		}
		if len(m.Vertices) == 0 || len(m.Normals) == 0 || len(m.Indices) == 0 {
			t.Errorf("part %q: empty geometry", m.PartName)
		}
		if len(m.Colors) != len(m.Vertices) {
			t.Errorf("part %q: %d colors for %d vertex floats", m.PartName, len(m.Colors), len(m.Vertices))
		}
		if m.Color == "" {
			t.Errorf("part %q: no color assigned", m.PartName)
		}
	}

	// The plate is painted, the peg keeps the default color.
	if c := result.Meshes[0].Colors; c[0] != float32(0.8) || c[1] != float32(0.2) {
		t.Errorf("plate color = %v", c[:3])
	}

	// The root is the union of both parts.
	s, err := app.Probe(geom.P3(4, 1, 0))
	if err != nil {
		t.Fatal(err)
	}
	if !s.Inside() {
		t.Errorf("peg center should be inside, got %g", s.Distance)
	}
}

// TestE2EEmptySource ensures the pipeline handles empty input gracefully.
func TestE2EEmptySource(t *testing.T) {
	app := newTestApp()
	result := app.Evaluate("")

	if len(result.Errors) != 0 || len(result.Meshes) != 0 || len(result.Warnings) != 0 {
		t.Errorf("unexpected output for empty source: %+v", result)
	}
	// Slices stay non-nil so JSON has [] rather than null.
	if result.Meshes == nil || result.Errors == nil || result.Warnings == nil {
		t.Error("result slices should be non-nil")
	}
	if _, err := app.Probe(geom.Point3{}); err == nil {
		t.Error("Probe without a root should fail")
	}
}

func TestE2ENoRootYet(t *testing.T) {
	result := newTestApp().Evaluate(`(def ball (sphere 1))`)
	if len(result.Errors) != 0 || len(result.Meshes) != 0 {
		t.Errorf("expected nothing for a recipe without roots, got %+v", result)
	}
}

// TestE2ESyntaxError ensures eval errors are reported, not fatal errors.
func TestE2ESyntaxError(t *testing.T) {
	result := newTestApp().Evaluate("(+ 1 2)\n(sphere 1")
	if len(result.Errors) == 0 {
		t.Fatal("expected at least one eval error for unmatched parens")
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes on syntax error, got %d", len(result.Meshes))
	}
	if result.Errors[0].Message == "" {
		t.Error("syntax error should have a non-empty message")
	}
}

func TestE2EValidationErrors(t *testing.T) {
	result := newTestApp().Evaluate(`(root (sphere -1 :name "bad"))`)
	if len(result.Errors) == 0 {
		t.Fatal("expected a validation error")
	}
	if !strings.Contains(result.Errors[0].Message, "radius must be positive") {
		t.Errorf("message = %q", result.Errors[0].Message)
	}
}

func TestE2EWarnings(t *testing.T) {
	result := newTestApp().Evaluate(`
(sphere 1 :name "spare")
(root (sphere 1 :name "ball"))
`)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0].Message, "not reachable") {
		t.Errorf("warnings = %v", result.Warnings)
	}
	if len(result.Meshes) != 1 {
		t.Errorf("expected 1 mesh, got %d", len(result.Meshes))
	}
}

func TestE2EUnboundedRoot(t *testing.T) {
	result := newTestApp().Evaluate(`(root (complement (sphere 1)))`)
	if len(result.Errors) == 0 || !strings.Contains(result.Errors[0].Message, "unbounded") {
		t.Errorf("errors = %v", result.Errors)
	}
}

func TestE2EColorPaletteWrapping(t *testing.T) {
	var src strings.Builder
	n := len(colorPalette) + 2
	for i := 0; i < n; i++ {
		fmt.Fprintf(&src, "(root (translate (sphere 0.5) (vec3 %d 0 0)))\n", i*2)
	}
	result := newTestApp().Evaluate(src.String())
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Meshes) != n {
		t.Fatalf("expected %d meshes, got %d", n, len(result.Meshes))
	}
	for i, m := range result.Meshes {
		if want := colorPalette[i%len(colorPalette)]; m.Color != want {
			t.Errorf("mesh %d color = %q, want %q", i, m.Color, want)
		}
	}
}

func TestInstallRegisteredShapes(t *testing.T) {
	app := newTestApp()
	names := app.Registry().Names()
	if len(names) != 2 || names[0] != "holder" || names[1] != "mug" {
		t.Fatalf("Names() = %v", names)
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			result := app.Install(name, "")
			if len(result.Errors) != 0 {
				t.Fatalf("errors: %v", result.Errors)
			}
			if len(result.Meshes) != 1 || result.Meshes[0].PartName != name {
				t.Fatalf("meshes = %d", len(result.Meshes))
			}
			if app.Root() == nil {
				t.Error("root not set")
			}
		})
	}
}

func TestInstallBadConfig(t *testing.T) {
	app := newTestApp()
	result := app.Install("mug", "no_such_key=1")
	if len(result.Errors) == 0 {
		t.Fatal("expected an error for an unknown key")
	}
	if app.Root() != nil {
		t.Error("root should stay unset after a failed install")
	}
	if result := app.Install("teapot", ""); len(result.Errors) == 0 {
		t.Error("expected an error for an unregistered shape")
	}
}

func TestE2ERapidEvaluation(t *testing.T) {
	app := newTestApp()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result := app.Evaluate(`(root (sphere 1 :name "ball"))`)
			for _, e := range result.Errors {
				// Overlapping evaluations may supersede each other.
				if !strings.Contains(e.Message, "superseded") {
					t.Errorf("unexpected error: %s", e.Message)
				}
			}
		}()
	}
	wg.Wait()
}

func TestPreview(t *testing.T) {
	app := newTestApp()
	if _, err := app.Preview(0, 32, 32); err == nil {
		t.Error("Preview without a root should fail")
	}
	result := app.Evaluate(`(root (paint (sphere 1 :name "ball") 0 0 1))`)
	if len(result.Errors) != 0 {
		t.Fatalf("errors: %v", result.Errors)
	}
	img, err := app.Preview(0, 32, 32)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if c := img.RGBAAt(16, 16); c.B < 200 || c.R > 50 {
		t.Errorf("center pixel = %v, want blue", c)
	}
}

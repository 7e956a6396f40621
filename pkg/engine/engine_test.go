package engine

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{name: "unclosed form", source: `(root (sphere 1`},
		{name: "undefined symbol", source: `(root (sphere undefined_r))`},
		{name: "unknown builtin", source: `(root (torus 1 2))`},
		{name: "bad argument type", source: `(root (sphere "big"))`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, evalErrs, err := NewEngine().Evaluate(tt.source)
			if err != nil {
				t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
			}
			if g != nil {
				t.Fatal("expected nil graph on eval error")
			}
			if len(evalErrs) == 0 {
				t.Fatal("expected at least one eval error")
			}
			if evalErrs[0].Message == "" {
				t.Error("eval error message should not be empty")
			}
		})
	}
}

func TestEvaluateErrorLineInfo(t *testing.T) {
	source := "(def plate (slab 2 0.25 2 :name \"plate\"))\n(root (union plate"
	_, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error")
	}
	// zygomys reports a line only for some parse errors.
	if e := evalErrs[0]; e.Line < 0 || e.Line > 2 {
		t.Errorf("line = %d, want 0 (unknown) or within the source", e.Line)
	}
}

func TestEvalErrorImplementsError(t *testing.T) {
	e := EvalError{Line: 5, Col: 0, Message: "something went wrong"}
	s := e.Error()
	if !strings.Contains(s, "line 5") {
		t.Errorf("Error() should contain line info, got: %s", s)
	}
	if !strings.Contains(s, "something went wrong") {
		t.Errorf("Error() should contain message, got: %s", s)
	}

	// No line info.
	e2 := EvalError{Line: 0, Col: 0, Message: "no location"}
	s2 := e2.Error()
	if strings.Contains(s2, "line") {
		t.Errorf("Error() with no line should not contain 'line', got: %s", s2)
	}
}

func TestEvaluateTimeout(t *testing.T) {
	// waitWithTimeout is exercised directly with a channel that never
	// sends, since zygomys cannot be made to hang reliably from source.
	var mu sync.Mutex
	var gen uint64 = 1
	ch := make(chan evalResult)

	start := time.Now()
	_, _, err := waitWithTimeout(ch, 1, &mu, &gen, 50*time.Millisecond)
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("expected timeout error message, got: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout took %s", elapsed)
	}
}

func TestEvaluateGenerationDiscardsStale(t *testing.T) {
	var mu sync.Mutex
	gen := uint64(2) // current generation

	ch := make(chan evalResult, 1)
	ch <- evalResult{}

	// Generation 1 is stale.
	_, _, err := waitWithTimeout(ch, 1, &mu, &gen, EvalTimeout)
	if !errors.Is(err, ErrSuperseded) {
		t.Errorf("expected ErrSuperseded, got: %v", err)
	}
}

func TestEvaluateConcurrentCallers(t *testing.T) {
	eng := NewEngine()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g, evalErrs, err := eng.Evaluate(`(root (sphere 1))`)
			if errors.Is(err, ErrSuperseded) {
				return
			}
			if err != nil || len(evalErrs) > 0 {
				t.Errorf("Evaluate: %v %v", err, evalErrs)
				return
			}
			if g.NodeCount() != 1 {
				t.Errorf("NodeCount = %d, want 1", g.NodeCount())
			}
		}()
	}
	wg.Wait()
}

func TestParseZygomysError(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		wantLine int
		wantMsg  string
	}{
		{
			name:     "error on line format",
			msg:      "Error on line 5: unexpected token\n",
			wantLine: 5,
			wantMsg:  "unexpected token",
		},
		{
			name:     "no line info",
			msg:      "some generic error",
			wantLine: 0,
			wantMsg:  "some generic error",
		},
		{
			name:     "line format lowercase",
			msg:      "error on line 12: missing paren",
			wantLine: 12,
			wantMsg:  "missing paren",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := parseZygomysError(errString(tt.msg))
			if len(errs) == 0 {
				t.Fatal("expected at least one error")
			}
			e := errs[0]
			if e.Line != tt.wantLine {
				t.Errorf("line = %d, want %d", e.Line, tt.wantLine)
			}
			if !strings.Contains(e.Message, tt.wantMsg) {
				t.Errorf("message = %q, want containing %q", e.Message, tt.wantMsg)
			}
		})
	}
}

// errString is a simple error type for testing.
type errString string

func (e errString) Error() string { return string(e) }

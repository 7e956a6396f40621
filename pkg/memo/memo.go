// Package memo provides the per-sample computation context used by shape
// recipes to share derived quantities across a combinator tree.
//
// A shape declares its own context struct that embeds Context and holds
// one Cell per derived quantity, with one method per accessor:
//
//	type mugCtx struct {
//		memo.Context
//		radius memo.Cell[float64]
//	}
//
//	func (c *mugCtx) Radius() float64 {
//		return c.radius.Get(func() float64 {
//			return math.Hypot(c.P.X, c.P.Z)
//		})
//	}
//
// Accessors may call other accessors, which makes the accessor set a DAG
// fixed at compile time; an accessor must only call accessors declared
// before it. A context is built at the top of Sample, lives on the
// stack, and is never shared between samples or goroutines, so no
// locking is involved.
package memo

import (
	"github.com/chazu/sdfcore/pkg/config"
	"github.com/chazu/sdfcore/pkg/geom"
)

// Cell holds one lazily computed value. The zero Cell is empty. Once
// filled it is never recomputed or cleared.
type Cell[T any] struct {
	v  T
	ok bool
}

// Get returns the cached value, running fn to compute it on first use.
// fn must be a deterministic function of the sample, the configuration
// and other cells.
func (c *Cell[T]) Get(fn func() T) T {
	if !c.ok {
		c.v = fn()
		c.ok = true
	}
	return c.v
}

// Filled reports whether the value has been computed.
func (c *Cell[T]) Filled() bool {
	return c.ok
}

// Context carries the sample point and a borrowed configuration.
type Context struct {
	P      geom.Point3
	Config *config.Config
}

// NewContext returns the base context for one sample.
func NewContext(p geom.Point3, cfg *config.Config) Context {
	return Context{P: p, Config: cfg}
}

// Float reads a float parameter from the configuration.
func (c *Context) Float(key string) float64 {
	return c.Config.Float(key)
}

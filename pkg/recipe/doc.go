// Package recipe describes shapes as data: an immutable DAG of
// primitive, transform, operator and paint nodes that Compile turns into
// a shape.Shape evaluated with the core geometry packages.
//
// Shape variations become different graphs rather than different code.
// Graphs are built in Go with a Builder or from Lisp source by the engine
// package.
package recipe

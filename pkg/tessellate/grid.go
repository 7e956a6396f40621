package tessellate

import (
	"context"
	"errors"
	"fmt"

	"github.com/chazu/sdfcore/pkg/geom"
	"github.com/chazu/sdfcore/pkg/shape"
	"golang.org/x/sync/errgroup"
)

// ErrBadGrid is returned for grids with a non-positive node count.
var ErrBadGrid = errors.New("tessellate: grid needs at least one node per axis")

// Grid is a regular lattice of sample points spanning Box, corners
// included. An axis with a single node samples the box center.
type Grid struct {
	Box        geom.Box
	Nx, Ny, Nz int
	// DistanceOnly skips color computation.
	DistanceOnly bool
}

// Len returns the number of nodes.
func (g Grid) Len() int {
	return g.Nx * g.Ny * g.Nz
}

// Index returns the flat index of node (i, j, k), x fastest.
func (g Grid) Index(i, j, k int) int {
	return (k*g.Ny+j)*g.Nx + i
}

// Point returns the position of node (i, j, k).
func (g Grid) Point(i, j, k int) geom.Point3 {
	return geom.P3(
		axis(g.Box.Min.X, g.Box.Max.X, i, g.Nx),
		axis(g.Box.Min.Y, g.Box.Max.Y, j, g.Ny),
		axis(g.Box.Min.Z, g.Box.Max.Z, k, g.Nz),
	)
}

func axis(lo, hi float64, i, n int) float64 {
	if n == 1 {
		return (lo + hi) / 2
	}
	return lo + (hi-lo)*float64(i)/float64(n-1)
}

// SampleGrid evaluates s at every node of grid and returns the samples
// in Index order. Rows of constant y and z are spread over at most
// workers goroutines (workers < 1 means no limit). Each sample builds its
// own evaluation state, so the result does not depend on scheduling.
func SampleGrid(ctx context.Context, s shape.Shape, grid Grid, workers int) ([]geom.Sample, error) {
	if grid.Nx < 1 || grid.Ny < 1 || grid.Nz < 1 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrBadGrid, grid.Nx, grid.Ny, grid.Nz)
	}

	out := make([]geom.Sample, grid.Len())
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for row := 0; row < grid.Ny*grid.Nz; row++ {
		j, k := row%grid.Ny, row/grid.Ny
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := 0; i < grid.Nx; i++ {
				out[grid.Index(i, j, k)] = s.Sample(grid.Point(i, j, k), grid.DistanceOnly)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

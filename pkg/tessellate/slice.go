package tessellate

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/chazu/sdfcore/pkg/geom"
	"github.com/chazu/sdfcore/pkg/shape"
	xdraw "golang.org/x/image/draw"
)

// bandWidth is the spacing of the distance contours drawn outside a
// surface, as a fraction of the largest box side.
const bandWidth = 0.05

// Slice renders the cross-section of s at height z over its bounding
// box as a w×h image. Inside pixels take the surface color; outside
// pixels are gray contour bands of the distance. Row 0 is the top
// (largest y).
func Slice(ctx context.Context, s shape.Shape, z float64, w, h, workers int) (*image.RGBA, error) {
	box := s.BoundingBox()
	grid := Grid{
		Box: geom.Box{Min: geom.P3(box.Min.X, box.Min.Y, z), Max: geom.P3(box.Max.X, box.Max.Y, z)},
		Nx:  w, Ny: h, Nz: 1,
	}
	samples, err := SampleGrid(ctx, s, grid, workers)
	if err != nil {
		return nil, fmt.Errorf("tessellate: slice: %w", err)
	}

	size := box.Size()
	band := bandWidth * max(size.X, size.Y, size.Z)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			img.SetRGBA(i, h-1-j, shade(samples[grid.Index(i, j, 0)], band))
		}
	}
	return img, nil
}

func shade(s geom.Sample, band float64) color.RGBA {
	if s.Inside() {
		return color.RGBA{R: channel(s.Color.R), G: channel(s.Color.G), B: channel(s.Color.B), A: 255}
	}
	v := uint8(200)
	if band > 0 && math.Mod(s.Distance, band) < band/2 {
		v = 230
	}
	return color.RGBA{R: v, G: v, B: v, A: 255}
}

func channel(v float64) uint8 {
	return uint8(math.Round(255 * min(max(v, 0), 1)))
}

// Preview is Slice sampled at 1/factor resolution and scaled up to w×h,
// for interactive views where sampling every pixel is too slow.
func Preview(ctx context.Context, s shape.Shape, z float64, w, h, factor, workers int) (*image.RGBA, error) {
	if factor < 1 {
		factor = 1
	}
	small, err := Slice(ctx, s, z, max(w/factor, 2), max(h/factor, 2), workers)
	if err != nil {
		return nil, err
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), small, small.Bounds(), xdraw.Over, nil)
	return dst, nil
}

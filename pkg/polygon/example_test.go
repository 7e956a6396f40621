package polygon_test

import (
	"fmt"

	"github.com/chazu/sdfcore/pkg/geom"
	"github.com/chazu/sdfcore/pkg/polygon"
)

func ExampleSDF() {
	square := []geom.Point2{geom.P2(1, 1), geom.P2(1, 2), geom.P2(2, 2), geom.P2(2, 1)}
	fmt.Printf("%.5f\n", polygon.SDF(geom.P2(0, 0), square))
	fmt.Printf("%.5f\n", polygon.SDF(geom.P2(1.5, 1.5), square))
	// Output:
	// 1.41421
	// -0.50000
}
